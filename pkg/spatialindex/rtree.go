package spatialindex

import (
	"math"

	da "github.com/lintang-b-s/Postmanx/pkg/datastructure"
	"github.com/lintang-b-s/Postmanx/pkg/geo"
	"github.com/tidwall/rtree"
	"go.uber.org/zap"
)

const (
	initialSearchRadius = 0.05    // km
	maxSearchRadius     = 20037.5 // km, half the equator
)

// Rtree indexes graph vertices by coordinate so a free coordinate can be snapped to the closest vertex.
type Rtree struct {
	tr    *rtree.RTreeG[da.Index]
	graph *da.Graph
}

func NewRtree() *Rtree {
	var tr rtree.RTreeG[da.Index]
	return &Rtree{
		tr: &tr,
	}
}

// Build inserts every vertex that has at least one edge. isolated vertices cannot start a route.
func (rt *Rtree) Build(graph *da.Graph, log *zap.Logger) {
	rt.graph = graph
	for v, k := range graph.Vertices() {
		if graph.Degree(v) == 0 {
			continue
		}
		p := [2]float64{k.Lon, k.Lat}
		rt.tr.Insert(p, p, v)
	}
	log.Info("R-tree spatial index built.", zap.Int("vertices", rt.tr.Len()))
}

func (rt *Rtree) Len() int {
	return rt.tr.Len()
}

// SearchWithinRadius returns at most limit vertices inside the box spanned by radius (in km) around (qLat, qLon).
func (rt *Rtree) SearchWithinRadius(qLat, qLon, radius float64, limit int) []da.Index {
	lowerLat, lowerLon := geo.GetDestinationPoint(qLat, qLon, 225, radius)
	upperLat, upperLon := geo.GetDestinationPoint(qLat, qLon, 45, radius)

	results := make([]da.Index, 0, 10)
	rt.tr.Search([2]float64{lowerLon, lowerLat}, [2]float64{upperLon, upperLat},
		func(min, max [2]float64, v da.Index) bool {
			results = append(results, v)
			return len(results) < limit
		})
	return results
}

// Nearest snaps (qLat, qLon) to the closest indexed vertex, ties going to the smaller VertexKey.
func (rt *Rtree) Nearest(qLat, qLon float64) (da.Index, bool) {
	if rt.tr.Len() == 0 {
		return da.INVALID_VERTEX_ID, false
	}

	// the box corners sit at radius, so only points within radius/sqrt2 are guaranteed inside.
	radius := initialSearchRadius
	for radius < maxSearchRadius {
		best, bestDist, ok := rt.closest(qLat, qLon, rt.SearchWithinRadius(qLat, qLon, radius, math.MaxInt))
		if ok && bestDist <= radius/math.Sqrt2 {
			return best, true
		}
		if ok {
			radius = math.Max(radius*2, bestDist*math.Sqrt2*1.01)
		} else {
			radius *= 4
		}
	}

	all := make([]da.Index, 0, rt.tr.Len())
	rt.tr.Scan(func(min, max [2]float64, v da.Index) bool {
		all = append(all, v)
		return true
	})
	best, _, ok := rt.closest(qLat, qLon, all)
	return best, ok
}

func (rt *Rtree) closest(qLat, qLon float64, candidates []da.Index) (da.Index, float64, bool) {
	best, bestDist := da.INVALID_VERTEX_ID, math.Inf(1)
	for _, v := range candidates {
		k := rt.graph.GetVertexKey(v)
		// same sphere as the search box
		d := geo.GreatCircleDistance(qLat, qLon, k.Lat, k.Lon) / 1000
		if d < bestDist || (d == bestDist && k.Less(rt.graph.GetVertexKey(best))) {
			best, bestDist = v, d
		}
	}
	return best, bestDist, best != da.INVALID_VERTEX_ID
}
