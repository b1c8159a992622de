package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestCommuteRequestEvent_Validate(t *testing.T) {
	tests := []struct {
		name        string
		event       CommuteRequestEvent
		wantErr     bool
		description string
	}{
		{
			name: "complete event",
			event: CommuteRequestEvent{
				RequestID:          uuid.New(),
				OriginPostcode:     "BR76PT",
				DestinationAddress: "SW1W 0DT",
			},
			wantErr:     false,
			description: "Should accept an event with all fields present",
		},
		{
			name: "missing request id",
			event: CommuteRequestEvent{
				OriginPostcode:     "BR76PT",
				DestinationAddress: "SW1W 0DT",
			},
			wantErr:     true,
			description: "Should reject an event without request_id",
		},
		{
			name: "blank origin postcode",
			event: CommuteRequestEvent{
				RequestID:          uuid.New(),
				OriginPostcode:     "   ",
				DestinationAddress: "SW1W 0DT",
			},
			wantErr:     true,
			description: "Should reject a whitespace-only postcode",
		},
		{
			name: "missing destination",
			event: CommuteRequestEvent{
				RequestID:      uuid.New(),
				OriginPostcode: "BR76PT",
			},
			wantErr:     true,
			description: "Should reject an event without destination",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.event.Validate()
			if tt.wantErr {
				assert.Error(t, err, tt.description)
			} else {
				assert.NoError(t, err, tt.description)
			}
		})
	}
}

func TestCommuteRequestEvent_Normalize(t *testing.T) {
	event := CommuteRequestEvent{
		RequestID:          uuid.New(),
		OriginPostcode:     "  BR76PT ",
		DestinationAddress: "\tSW1W 0DT\n",
	}

	event.Normalize()

	assert.Equal(t, "BR76PT", event.OriginPostcode)
	assert.Equal(t, "SW1W 0DT", event.DestinationAddress)
}

func TestCoordinate_Valid(t *testing.T) {
	assert.True(t, Coordinate{Lat: 51.40, Lon: 0.02}.Valid())
	assert.True(t, Coordinate{Lat: -90, Lon: 180}.Valid())
	assert.False(t, Coordinate{Lat: 90.1, Lon: 0}.Valid())
	assert.False(t, Coordinate{Lat: 0, Lon: -180.5}.Valid())
}

func TestCoordinate_String(t *testing.T) {
	assert.Equal(t, "51.400000,0.020000", Coordinate{Lat: 51.40, Lon: 0.02}.String())
}

func TestDirectionsResponse_FirstLeg(t *testing.T) {
	var empty *DirectionsResponse
	_, ok := empty.FirstLeg()
	assert.False(t, ok)

	_, ok = (&DirectionsResponse{Status: MapsStatusOK, Routes: []Route{{}}}).FirstLeg()
	assert.False(t, ok)

	resp := &DirectionsResponse{
		Status: MapsStatusOK,
		Routes: []Route{{Legs: []RouteLeg{{Duration: TextValue{Text: "45 mins"}}}}},
	}
	leg, ok := resp.FirstLeg()
	assert.True(t, ok)
	assert.Equal(t, "45 mins", leg.Duration.Text)
}

func TestDirectionsQuery_DestinationParam(t *testing.T) {
	addr := DirectionsQuery{DestinationAddress: "SW1W 0DT"}
	assert.Equal(t, "SW1W 0DT", addr.DestinationParam())

	coord := DirectionsQuery{
		Destination:        &Coordinate{Lat: 51.41, Lon: 0.03},
		DestinationAddress: "ignored",
	}
	assert.Equal(t, "51.410000,0.030000", coord.DestinationParam())
}

func TestCommuteInfo_Available(t *testing.T) {
	unavailable := CommuteUnavailable
	ok := "45 mins"

	assert.False(t, CommuteInfo{}.Available())
	assert.False(t, CommuteInfo{DurationText: &unavailable}.Available())
	assert.True(t, CommuteInfo{DurationText: &ok}.Available())
}

func TestUnresolvedReport(t *testing.T) {
	report := UnresolvedReport("SW1W 0DT")

	assert.False(t, report.OriginResolved)
	assert.Nil(t, report.Origin)
	assert.Equal(t, "SW1W 0DT", report.DestinationAddress)
	assert.Nil(t, report.Commute.DurationText)
	assert.Nil(t, report.Commute.TransitLegCount)
	assert.NotNil(t, report.Stations)
	assert.Empty(t, report.Stations)
	assert.NotNil(t, report.PrimarySchools)
	assert.Empty(t, report.PrimarySchools)
}
