package report

import (
	da "github.com/lintang-b-s/Postmanx/pkg/datastructure"
	"github.com/lintang-b-s/Postmanx/pkg/engine/eulerian"
	"github.com/lintang-b-s/Postmanx/pkg/geo"
)

const UNNAMED_ROAD = "unnamed"

// RouteStep is one traversal of the final route with the road it follows.
type RouteStep struct {
	// Order groups consecutive steps on the same road, it increments whenever the road name changes.
	Order      int          `json:"order"`
	From       da.VertexKey `json:"from"`
	To         da.VertexKey `json:"to"`
	EdgeID     da.Index     `json:"edge_id"`
	Name       string       `json:"name"`
	Type       string       `json:"type,omitempty"`
	Length     float64      `json:"length"`
	Cumulative float64      `json:"cumulative"`
	Bearing    float64      `json:"bearing"`
	Artificial bool         `json:"artificial"`
	Duplicate  bool         `json:"duplicate"`
}

type Report struct {
	TotalDistance       float64 `json:"total_distance"`
	OldTotalDistance    float64 `json:"old_total_distance"`
	DistanceMultiplier  float64 `json:"distance_multiplier"`
	ArtificialEdgeCount int     `json:"artificial_edge_count"`
	DuplicatedEdgeCount int     `json:"duplicated_edge_count"`
	EdgeCount           int     `json:"edge_count"`
	Unit                string  `json:"unit"`

	Steps []RouteStep `json:"-"`
}

// Build walks circuit over the eulerized graph g. oldTotal is the summed length of the graph before augmentation.
//
// a step over a synthetic edge has no road behind it: it is named "unnamed", counted as artificial and
// measured straight between its endpoints.
func Build(g *da.Graph, circuit []eulerian.CircuitStep, oldTotal float64, unit geo.Unit) *Report {
	rep := &Report{
		OldTotalDistance: oldTotal,
		EdgeCount:        len(circuit),
		Unit:             unit.String(),
		Steps:            make([]RouteStep, 0, len(circuit)),
	}

	order := 0
	prevName := ""
	for i, c := range circuit {
		e := g.GetEdge(c.EdgeID)
		step := RouteStep{
			From:    c.From,
			To:      c.To,
			EdgeID:  c.EdgeID,
			Name:    e.GetName(),
			Type:    e.GetType(),
			Length:  e.GetLength(),
			Bearing: geo.BearingTo(c.From.Lon, c.From.Lat, c.To.Lon, c.To.Lat),
		}

		if e.IsSynthetic() {
			step.Artificial = true
			step.Length = geo.Distance(c.From.Lon, c.From.Lat, c.To.Lon, c.To.Lat, unit)
			rep.ArtificialEdgeCount++
		}
		if e.IsDuplicate() {
			step.Duplicate = true
			rep.DuplicatedEdgeCount++
		}
		if step.Name == "" {
			step.Name = UNNAMED_ROAD
		}

		if i > 0 && step.Name != prevName {
			order++
		}
		prevName = step.Name
		step.Order = order

		rep.TotalDistance += step.Length
		step.Cumulative = rep.TotalDistance
		rep.Steps = append(rep.Steps, step)
	}

	if rep.OldTotalDistance > 0 {
		rep.DistanceMultiplier = rep.TotalDistance / rep.OldTotalDistance
	}
	return rep
}

// Coordinates returns the route as a vertex sequence, first From then every To.
func (r *Report) Coordinates() []geo.Coordinate {
	if len(r.Steps) == 0 {
		return []geo.Coordinate{}
	}
	coords := make([]geo.Coordinate, 0, len(r.Steps)+1)
	coords = append(coords, r.Steps[0].From.Coordinate())
	for _, s := range r.Steps {
		coords = append(coords, s.To.Coordinate())
	}
	return coords
}
