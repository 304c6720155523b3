package osmparser

import (
	"context"
	"io"
	"os"

	"github.com/lintang-b-s/Postmanx/pkg"
	da "github.com/lintang-b-s/Postmanx/pkg/datastructure"
	"github.com/lintang-b-s/Postmanx/pkg/geo"
	"github.com/lintang-b-s/Postmanx/pkg/util"
	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
	"go.uber.org/zap"
)

type NodeCoord struct {
	lat float64
	lon float64
}

func NewNodeCoord(lat, lon float64) NodeCoord {
	return NodeCoord{lat, lon}
}

type osmWay struct {
	id    int64
	nodes []int64
	name  string
	hwTag string
}

// OsmParser loads the street network of an OSM PBF extract as an undirected multigraph, one edge per way segment.
// one-way tags are ignored, an inspection route covers every street segment regardless of direction.
type OsmParser struct {
	logger          *zap.Logger
	unit            geo.Unit
	ways            []osmWay
	wayNodeMap      map[int64]struct{}
	acceptedNodeMap map[int64]NodeCoord
}

func NewOSMParser(logger *zap.Logger, unit geo.Unit) *OsmParser {
	return &OsmParser{
		logger:          logger,
		unit:            unit,
		ways:            make([]osmWay, 0),
		wayNodeMap:      make(map[int64]struct{}),
		acceptedNodeMap: make(map[int64]NodeCoord),
	}
}

func (p *OsmParser) Parse(ctx context.Context, mapFile string) (*da.Graph, error) {
	f, err := os.Open(mapFile)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return p.ParseReader(ctx, f)
}

// ParseReader scans rs twice: ways first, then only the nodes those ways reference.
func (p *OsmParser) ParseReader(ctx context.Context, rs io.ReadSeeker) (*da.Graph, error) {
	scanner := osmpbf.New(ctx, rs, 0)
	scanner.SkipNodes = true
	scanner.SkipRelations = true
	countWays := 0
	for scanner.Scan() {
		way, ok := scanner.Object().(*osm.Way)
		if !ok || len(way.Nodes) < 2 || !acceptOsmWay(way) {
			continue
		}
		if (countWays+1)%50000 == 0 {
			p.logger.Sugar().Infof("scanning openstreetmap ways: %d...", countWays+1)
		}
		countWays++
		p.addWay(way)
	}
	if err := scanner.Err(); err != nil {
		scanner.Close()
		return nil, util.WrapErrorf(err, util.ErrBadParamInput, "scanning osm ways: %v", err)
	}
	scanner.Close()

	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}
	scanner = osmpbf.New(ctx, rs, 0)
	defer scanner.Close()
	scanner.SkipWays = true
	scanner.SkipRelations = true
	for scanner.Scan() {
		node, ok := scanner.Object().(*osm.Node)
		if !ok {
			continue
		}
		if _, ok := p.wayNodeMap[int64(node.ID)]; ok {
			p.acceptedNodeMap[int64(node.ID)] = NewNodeCoord(node.Lat, node.Lon)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, util.WrapErrorf(err, util.ErrBadParamInput, "scanning osm nodes: %v", err)
	}

	g := p.buildGraph()
	p.logger.Info("openstreetmap street network loaded",
		zap.Int("ways", countWays),
		zap.Int("vertices", g.NumberOfVertices()),
		zap.Int("edges", g.NumberOfEdges()))
	return g, nil
}

func (p *OsmParser) addWay(way *osm.Way) {
	nodes := make([]int64, 0, len(way.Nodes))
	for _, n := range way.Nodes {
		nodes = append(nodes, int64(n.ID))
		p.wayNodeMap[int64(n.ID)] = struct{}{}
	}
	name := way.Tags.Find("name")
	if name == "" {
		name = way.Tags.Find("ref")
	}
	p.ways = append(p.ways, osmWay{
		id:    int64(way.ID),
		nodes: nodes,
		name:  name,
		hwTag: way.Tags.Find("highway"),
	})
}

// buildGraph adds one edge per consecutive node pair. segments touching a node outside the extract are dropped.
func (p *OsmParser) buildGraph() *da.Graph {
	g := da.NewGraphWithSize(len(p.acceptedNodeMap), len(p.acceptedNodeMap))
	skipped := 0
	for _, w := range p.ways {
		for i := 1; i < len(w.nodes); i++ {
			from, okFrom := p.acceptedNodeMap[w.nodes[i-1]]
			to, okTo := p.acceptedNodeMap[w.nodes[i]]
			if !okFrom || !okTo {
				skipped++
				continue
			}
			if w.nodes[i-1] == w.nodes[i] {
				continue
			}
			length := geo.Distance(from.lon, from.lat, to.lon, to.lat, p.unit)
			g.AddEdge(da.NewVertexKey(from.lon, from.lat), da.NewVertexKey(to.lon, to.lat),
				da.NewEdgeAttributes(w.name, length, w.hwTag))
		}
	}
	if skipped > 0 {
		p.logger.Sugar().Infof("skipped %d way segments with nodes outside the extract", skipped)
	}
	return g
}

// acceptOsmWay keeps public streets a vehicle can drive along.
func acceptOsmWay(way *osm.Way) bool {
	highway := way.Tags.Find("highway")
	if highway == "" {
		return way.Tags.Find("junction") != ""
	}
	if pkg.GetHighwayType(highway) == pkg.UNKNOWN {
		return false
	}
	if way.Tags.Find("area") == "yes" {
		return false
	}
	switch way.Tags.Find("access") {
	case "no", "private":
		return false
	}
	return true
}
