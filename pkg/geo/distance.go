package geo

import (
	"fmt"
	"math"

	"github.com/lintang-b-s/Postmanx/pkg/util"
	"github.com/tidwall/geodesic"
)

// Coordinate is a geographic point in degrees.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

func (c Coordinate) GetLat() float64 {
	return c.Lat
}

func (c Coordinate) GetLon() float64 {
	return c.Lon
}

func NewCoordinate(lat, lon float64) Coordinate {
	return Coordinate{
		Lat: lat,
		Lon: lon,
	}
}

// Unit is the length unit every distance of a run is expressed in.
type Unit uint8

const (
	Miles Unit = iota
	Kilometers
	Meters
)

const (
	metersPerMile      = 1609.344
	metersPerKilometer = 1000.0
)

func (u Unit) String() string {
	switch u {
	case Miles:
		return "miles"
	case Kilometers:
		return "kilometers"
	case Meters:
		return "meters"
	default:
		return fmt.Sprintf("Unit(%d)", uint8(u))
	}
}

// FromMeters converts a length in meters into u.
func (u Unit) FromMeters(m float64) float64 {
	switch u {
	case Kilometers:
		return m / metersPerKilometer
	case Meters:
		return m
	default:
		return m / metersPerMile
	}
}

// ParseUnit. empty string means miles.
func ParseUnit(s string) (Unit, error) {
	switch s {
	case "", "miles", "mile", "mi":
		return Miles, nil
	case "kilometers", "kilometer", "km":
		return Kilometers, nil
	case "meters", "meter", "m":
		return Meters, nil
	default:
		return Miles, util.WrapErrorf(util.ErrUnknownUnit, util.ErrBadParamInput,
			"unknown distance unit %q, expected miles or kilometers", s)
	}
}

// Distance returns the geodesic distance between (lon1, lat1) and (lon2, lat2) on the WGS84 ellipsoid, in unit.
func Distance(lon1, lat1, lon2, lat2 float64, unit Unit) float64 {
	return unit.FromMeters(GeodesicDistance(lat1, lon1, lat2, lon2))
}

// GeodesicDistance solves the inverse geodesic problem on WGS84 (Karney), returns meters.
func GeodesicDistance(lat1, lon1, lat2, lon2 float64) float64 {
	var m float64
	geodesic.WGS84.Inverse(lat1, lon1, lat2, lon2, &m, nil, nil)
	return m
}

const (
	earthRadiusKM = 6371.0
)

func radToDeg(r float64) float64 {
	return 180.0 * r / math.Pi
}

// GetDestinationPoint returns the destination point given the starting point, bearing and distance
// dist in km
func GetDestinationPoint(lat1, lon1 float64, bearing float64, dist float64) (float64, float64) {

	dr := dist / earthRadiusKM

	bearing = util.DegreeToRadians(bearing)

	lat1 = util.DegreeToRadians(lat1)
	lon1 = util.DegreeToRadians(lon1)

	lat2Part1 := math.Sin(lat1) * math.Cos(dr)
	lat2Part2 := math.Cos(lat1) * math.Sin(dr) * math.Cos(bearing)

	lat2 := math.Asin(lat2Part1 + lat2Part2)

	lon2Part1 := math.Sin(bearing) * math.Sin(dr) * math.Cos(lat1)
	lon2Part2 := math.Cos(dr) - (math.Sin(lat1) * math.Sin(lat2))

	lon2 := lon1 + math.Atan2(lon2Part1, lon2Part2)

	return radToDeg(lat2), normalizeLongitude(radToDeg(lon2))
}

// normalizeLongitude. long in degree
func normalizeLongitude(long float64) float64 {
	return math.Mod((long+540), 360) - 180.0
}
