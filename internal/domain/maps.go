package domain

// Статусы ответов Google Maps API
const (
	MapsStatusOK           = "OK"
	MapsStatusZeroResults  = "ZERO_RESULTS"
	MapsStatusInvalid      = "INVALID_REQUEST"
	MapsStatusDenied       = "REQUEST_DENIED"
	MapsStatusUnknownError = "UNKNOWN_ERROR"
)

// TravelMode - режим передвижения для Directions API
type TravelMode string

const (
	TravelModeWalking TravelMode = "walking"
	TravelModeTransit TravelMode = "transit"
)

// StepTravelModeTransit - travel_mode шага маршрута, выполняемого на общественном транспорте
const StepTravelModeTransit = "TRANSIT"

// LatLng - координата в формате Google Maps
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Coordinate конвертирует LatLng в доменную координату
func (l LatLng) Coordinate() Coordinate {
	return Coordinate{Lat: l.Lat, Lon: l.Lng}
}

// Geometry - геометрия результата геокодинга или поиска мест
type Geometry struct {
	Location LatLng `json:"location"`
}

// GeocodeResponse - ответ Geocoding API
type GeocodeResponse struct {
	Status       string          `json:"status"`
	ErrorMessage string          `json:"error_message,omitempty"`
	Results      []GeocodeResult `json:"results"`
}

// GeocodeResult - один результат геокодинга
type GeocodeResult struct {
	FormattedAddress string   `json:"formatted_address"`
	Geometry         Geometry `json:"geometry"`
}

// DirectionsQuery - параметры запроса маршрута.
// Destination задаётся либо координатой, либо адресной строкой (передаётся как есть).
type DirectionsQuery struct {
	Origin             Coordinate
	Destination        *Coordinate
	DestinationAddress string
	Mode               TravelMode
}

// DestinationParam возвращает значение query-параметра destination
func (q DirectionsQuery) DestinationParam() string {
	if q.Destination != nil {
		return q.Destination.String()
	}
	return q.DestinationAddress
}

// DirectionsResponse - ответ Directions API
type DirectionsResponse struct {
	Status       string  `json:"status"`
	ErrorMessage string  `json:"error_message,omitempty"`
	Routes       []Route `json:"routes"`
}

// FirstLeg возвращает legs[0] маршрута routes[0], если он есть
func (r *DirectionsResponse) FirstLeg() (*RouteLeg, bool) {
	if r == nil || len(r.Routes) == 0 || len(r.Routes[0].Legs) == 0 {
		return nil, false
	}
	return &r.Routes[0].Legs[0], true
}

// Route - маршрут
type Route struct {
	Summary string     `json:"summary"`
	Legs    []RouteLeg `json:"legs"`
}

// TextValue - пара "человекочитаемый текст / числовое значение"
type TextValue struct {
	Text  string  `json:"text"`
	Value float64 `json:"value"`
}

// RouteLeg - участок маршрута между двумя точками
type RouteLeg struct {
	Duration TextValue   `json:"duration"`
	Distance TextValue   `json:"distance"`
	Steps    []RouteStep `json:"steps"`
}

// RouteStep - шаг маршрута
type RouteStep struct {
	TravelMode string `json:"travel_mode"`
}

// NearbyQuery - параметры поиска мест рядом с точкой
type NearbyQuery struct {
	Location     Coordinate
	RadiusMeters int
	PlaceType    string
	Keyword      *string
}

// NearbySearchResponse - ответ Places Nearby Search API
type NearbySearchResponse struct {
	Status       string        `json:"status"`
	ErrorMessage string        `json:"error_message,omitempty"`
	Results      []PlaceResult `json:"results"`
}

// PlaceResult - одно место из результата поиска
type PlaceResult struct {
	Name     string   `json:"name"`
	PlaceID  string   `json:"place_id,omitempty"`
	Geometry Geometry `json:"geometry"`
}
