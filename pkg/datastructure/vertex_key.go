package datastructure

import (
	"math"
	"strings"

	"github.com/lintang-b-s/Postmanx/pkg/geo"
	"github.com/lintang-b-s/Postmanx/pkg/util"
)

// VertexKey identifies a vertex by its exact coordinate. two keys are the same vertex only if both floats
// compare equal with ==, no epsilon. -0 and +0 are therefore the same vertex.
type VertexKey struct {
	Lon float64 `json:"lon"`
	Lat float64 `json:"lat"`
}

func NewVertexKey(lon, lat float64) VertexKey {
	return VertexKey{Lon: lon, Lat: lat}
}

// String renders "(lon, lat)" using the shortest float text that parses back to the same value.
func (k VertexKey) String() string {
	return "(" + util.FormatFloat(k.Lon) + ", " + util.FormatFloat(k.Lat) + ")"
}

// Less orders keys by longitude then latitude.
func (k VertexKey) Less(o VertexKey) bool {
	if k.Lon != o.Lon {
		return k.Lon < o.Lon
	}
	return k.Lat < o.Lat
}

func (k VertexKey) Coordinate() geo.Coordinate {
	return geo.NewCoordinate(k.Lat, k.Lon)
}

// ParseVertexKey accepts "(lon, lat)", "[lon, lat]" or "lon,lat". a third (elevation) component is ignored.
func ParseVertexKey(s string) (VertexKey, error) {
	t := strings.TrimSpace(s)
	if len(t) >= 2 && ((t[0] == '(' && t[len(t)-1] == ')') || (t[0] == '[' && t[len(t)-1] == ']')) {
		t = t[1 : len(t)-1]
	}
	parts := strings.Split(t, ",")
	if len(parts) != 2 && len(parts) != 3 {
		return VertexKey{}, util.WrapErrorf(util.ErrInvalidCoordinate, util.ErrBadParamInput,
			"malformed vertex key %q: expected (lon, lat)", s)
	}
	lon, err := util.StringToFloat64(strings.TrimSpace(parts[0]))
	if err != nil {
		return VertexKey{}, util.WrapErrorf(util.ErrInvalidCoordinate, util.ErrBadParamInput,
			"malformed longitude in vertex key %q", s)
	}
	lat, err := util.StringToFloat64(strings.TrimSpace(parts[1]))
	if err != nil {
		return VertexKey{}, util.WrapErrorf(util.ErrInvalidCoordinate, util.ErrBadParamInput,
			"malformed latitude in vertex key %q", s)
	}
	return NewCheckedVertexKey(lon, lat)
}

// NewCheckedVertexKey rejects non-finite or out of range coordinates.
func NewCheckedVertexKey(lon, lat float64) (VertexKey, error) {
	if math.IsNaN(lon) || math.IsInf(lon, 0) || math.IsNaN(lat) || math.IsInf(lat, 0) ||
		math.Abs(lon) > 180 || math.Abs(lat) > 90 {
		return VertexKey{}, util.WrapErrorf(util.ErrInvalidCoordinate, util.ErrBadParamInput,
			"coordinate (%v, %v) is out of range", lon, lat)
	}
	return NewVertexKey(lon, lat), nil
}
