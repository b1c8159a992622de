package utils

import (
	"fmt"
	"math"
)

// ValidateRadiusMeters проверяет радиус поиска мест (Places API допускает до 50 км)
func ValidateRadiusMeters(radius int) bool {
	return radius > 0 && radius <= 50000
}

// FormatWalkingDistance форматирует расстояние в метрах так же, как Google Maps:
// "350 m" до километра и "1.2 km" начиная с километра
func FormatWalkingDistance(meters float64) string {
	rounded := math.Round(math.Max(meters, 0))
	if rounded < 1000 {
		return fmt.Sprintf("%d m", int(rounded))
	}
	return fmt.Sprintf("%.1f km", meters/1000)
}
