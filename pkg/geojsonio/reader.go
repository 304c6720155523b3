package geojsonio

import (
	"fmt"
	"io"
	"os"

	da "github.com/lintang-b-s/Postmanx/pkg/datastructure"
	"github.com/lintang-b-s/Postmanx/pkg/geo"
	"github.com/lintang-b-s/Postmanx/pkg/util"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

type ReaderOptions struct {
	// NameProperty is the feature property holding the road name, "FullStName" in many county datasets.
	NameProperty string
	TypeProperty string
	Unit         geo.Unit
}

func DefaultReaderOptions() ReaderOptions {
	return ReaderOptions{NameProperty: "name", TypeProperty: "highway", Unit: geo.Miles}
}

func ReadGraphFile(path string, opts ReaderOptions) (*da.Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadGraph(f, opts)
}

func ReadGraph(r io.Reader, opts ReaderOptions) (*da.Graph, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, util.WrapErrorf(err, util.ErrBadParamInput, "invalid geojson feature collection: %v", err)
	}
	return GraphFromFeatureCollection(fc, opts)
}

// GraphFromFeatureCollection turns every LineString and MultiLineString feature into one edge per segment,
// named after opts.NameProperty and measured geodesically in opts.Unit. other geometry types are skipped.
// vertices are the exact segment endpoint coordinates, so lines that share an endpoint share a vertex.
func GraphFromFeatureCollection(fc *geojson.FeatureCollection, opts ReaderOptions) (*da.Graph, error) {
	g := da.NewGraph()
	for i, f := range fc.Features {
		var lines []orb.LineString
		switch geom := f.Geometry.(type) {
		case orb.LineString:
			lines = []orb.LineString{geom}
		case orb.MultiLineString:
			lines = geom
		default:
			continue
		}

		name := propertyString(f.Properties, opts.NameProperty)
		roadType := propertyString(f.Properties, opts.TypeProperty)
		for _, line := range lines {
			if err := addLine(g, line, name, roadType, opts.Unit); err != nil {
				return nil, util.WrapErrorf(err, util.ErrBadParamInput, "feature %d: %v", i, err)
			}
		}
	}
	return g, nil
}

func addLine(g *da.Graph, line orb.LineString, name, roadType string, unit geo.Unit) error {
	for j := 1; j < len(line); j++ {
		from, err := da.NewCheckedVertexKey(line[j-1].Lon(), line[j-1].Lat())
		if err != nil {
			return err
		}
		to, err := da.NewCheckedVertexKey(line[j].Lon(), line[j].Lat())
		if err != nil {
			return err
		}
		if from == to {
			continue
		}
		length := geo.Distance(from.Lon, from.Lat, to.Lon, to.Lat, unit)
		g.AddEdge(from, to, da.NewEdgeAttributes(name, length, roadType))
	}
	return nil
}

func propertyString(props geojson.Properties, key string) string {
	if key == "" || props == nil {
		return ""
	}
	switch v := props[key].(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}
