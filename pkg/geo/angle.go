package geo

import (
	"math"

	"github.com/lintang-b-s/Postmanx/pkg/util"
)

/*
BearingTo. initial compass bearing in [0, 360) for the segment (lon1,lat1) -> (lon2,lat2).
https://www.movable-type.co.uk/scripts/latlong.html
*/
func BearingTo(lon1, lat1, lon2, lat2 float64) float64 {

	dLon := util.DegreeToRadians(lon2 - lon1)

	phi1 := util.DegreeToRadians(lat1)
	phi2 := util.DegreeToRadians(lat2)

	y := math.Sin(dLon) * math.Cos(phi2)
	x := math.Cos(phi1)*math.Sin(phi2) -
		math.Sin(phi1)*math.Cos(phi2)*math.Cos(dLon)
	brng := math.Mod(util.RadiansToDegree(math.Atan2(y, x))+360, 360.0)
	if brng >= 360 {
		brng = 0
	}

	return brng
}
