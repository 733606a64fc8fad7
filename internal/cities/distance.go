package cities

import (
	"math"

	"github.com/cuenta-regresiva/backend/internal/models"
)

// EarthRadius is the WGS84 semi-major axis in metres.
const EarthRadius = 6378137.0

func degreesToRadians(d float64) float64 {
	return d * math.Pi / 180.0
}

// Distance returns the great-circle distance in metres between two cities.
func Distance(a, b models.CityRecord) float64 {
	lat1 := degreesToRadians(a.Latitude)
	lon1 := degreesToRadians(a.Longitude)
	lat2 := degreesToRadians(b.Latitude)
	lon2 := degreesToRadians(b.Longitude)

	dLat := lat2 - lat1
	dLon := lon2 - lon1
	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	return EarthRadius * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}
