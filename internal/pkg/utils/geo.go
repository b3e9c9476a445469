package utils

import "math"

const (
	earthRadiusKm = 6371.0
	degToRad      = math.Pi / 180
)

// HaversineDistance - расстояние по дуге большого круга в километрах
func HaversineDistance(lat1, lon1, lat2, lon2 float64) float64 {
	phi1, phi2 := lat1*degToRad, lat2*degToRad
	sinDPhi := math.Sin((phi2 - phi1) / 2)
	sinDLambda := math.Sin((lon2 - lon1) * degToRad / 2)

	h := sinDPhi*sinDPhi + math.Cos(phi1)*math.Cos(phi2)*sinDLambda*sinDLambda
	return 2 * earthRadiusKm * math.Asin(math.Min(1, math.Sqrt(h)))
}

// ValidateCoordinates: конечные числа в пределах [-90, 90] и [-180, 180]
func ValidateCoordinates(lat, lon float64) bool {
	if !IsFinite(lat) || !IsFinite(lon) {
		return false
	}
	return math.Abs(lat) <= 90 && math.Abs(lon) <= 180
}

func IsFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
