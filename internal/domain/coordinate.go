package domain

import "fmt"

// Coordinate - географическая точка (WGS84), неизменяемое значение
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Valid проверяет диапазоны широты (-90..90) и долготы (-180..180)
func (c Coordinate) Valid() bool {
	return c.Lat >= -90 && c.Lat <= 90 && c.Lon >= -180 && c.Lon <= 180
}

// String возвращает координату в формате "lat,lng", который ожидают query-параметры Maps API
func (c Coordinate) String() string {
	return fmt.Sprintf("%f,%f", c.Lat, c.Lon)
}
