package domain

// PlaceCategory - категория точки интереса в отчёте
type PlaceCategory string

const (
	PlaceCategoryStation       PlaceCategory = "station"
	PlaceCategoryPrimarySchool PlaceCategory = "primary_school"
)

// CommuteUnavailable - метка длительности, когда маршрут на транспорте не найден
const CommuteUnavailable = "unavailable"

// PlaceOfInterest - станция или школа рядом с точкой отправления.
// WalkingDistance == nil означает, что расстояние не удалось посчитать (не ошибка).
type PlaceOfInterest struct {
	Name            string        `json:"name"`
	Coordinate      Coordinate    `json:"coordinate"`
	Category        PlaceCategory `json:"category"`
	WalkingDistance *string       `json:"walking_distance"`
}

// CommuteInfo - длительность поездки на транспорте и количество транспортных участков.
// Оба поля nil - поездка не запрашивалась (origin не найден).
type CommuteInfo struct {
	DurationText    *string `json:"duration_text"`
	TransitLegCount *int    `json:"transit_leg_count"`
}

// Available сообщает, удалось ли получить маршрут
func (c CommuteInfo) Available() bool {
	return c.DurationText != nil && *c.DurationText != CommuteUnavailable
}

// CommuteReport - итоговый отчёт по одному вызову Build
type CommuteReport struct {
	OriginResolved     bool              `json:"origin_resolved"`
	Origin             *Coordinate       `json:"origin"`
	DestinationAddress string            `json:"destination_address"`
	Commute            CommuteInfo       `json:"commute"`
	Stations           []PlaceOfInterest `json:"stations"`
	PrimarySchools     []PlaceOfInterest `json:"primary_schools"`
}

// UnresolvedReport строит отчёт для случая, когда почтовый индекс не геокодировался
func UnresolvedReport(destinationAddress string) *CommuteReport {
	return &CommuteReport{
		OriginResolved:     false,
		DestinationAddress: destinationAddress,
		Stations:           []PlaceOfInterest{},
		PrimarySchools:     []PlaceOfInterest{},
	}
}
