package geojsonio

import (
	"io"
	"os"

	da "github.com/lintang-b-s/Postmanx/pkg/datastructure"
	"github.com/lintang-b-s/Postmanx/pkg/engine/report"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// RouteFeatureCollection renders each route step as a two-point LineString, in walking order.
func RouteFeatureCollection(rep *report.Report) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, s := range rep.Steps {
		f := geojson.NewFeature(orb.LineString{toPoint(s.From), toPoint(s.To)})
		f.Properties["order"] = s.Order
		f.Properties["name"] = s.Name
		f.Properties["length"] = s.Length
		f.Properties["cumulative"] = s.Cumulative
		f.Properties["bearing"] = s.Bearing
		f.Properties["artificial"] = s.Artificial
		f.Properties["duplicate"] = s.Duplicate
		if s.Type != "" {
			f.Properties["type"] = s.Type
		}
		fc.Append(f)
	}
	return fc
}

func WriteRoute(w io.Writer, rep *report.Report) error {
	data, err := RouteFeatureCollection(rep).MarshalJSON()
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

func WriteRouteFile(path string, rep *report.Report) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteRoute(f, rep); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func toPoint(k da.VertexKey) orb.Point {
	return orb.Point{k.Lon, k.Lat}
}
