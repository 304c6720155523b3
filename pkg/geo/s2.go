package geo

import (
	"github.com/golang/geo/s2"
)

// GreatCircleDistance returns the spherical distance in meters using the mean earth radius.
// same sphere as GetDestinationPoint.
func GreatCircleDistance(lat1, lon1, lat2, lon2 float64) float64 {
	p1 := s2.LatLngFromDegrees(lat1, lon1)
	p2 := s2.LatLngFromDegrees(lat2, lon2)
	return p1.Distance(p2).Radians() * earthRadiusKM * 1000
}
