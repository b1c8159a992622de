package domain

// MatrixResponse - ответ Mapbox Matrix API
type MatrixResponse struct {
	Code         string       `json:"code"`
	Distances    [][]*float64 `json:"distances"` // в метрах, null - маршрута нет
	Durations    [][]*float64 `json:"durations"` // в секундах
	Destinations []Location   `json:"destinations"`
	Sources      []Location   `json:"sources"`
}

// Location - локация в ответе Mapbox
type Location struct {
	Name     string    `json:"name"`
	Location []float64 `json:"location"` // [lon, lat]
}
