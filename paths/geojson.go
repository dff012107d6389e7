package paths

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

func lineStringToPath(ls []orb.Point) Path {
	p := Path{V: make([]Vec2, len(ls))}
	for i, pt := range ls {
		p.V[i] = Vec2(pt)
	}
	return p
}

func pathToLineString(p Path) orb.LineString {
	ls := make(orb.LineString, len(p.V))
	for i, v := range p.V {
		ls[i] = orb.Point(v)
	}
	return ls
}

// addGeometry appends every line of g. Polygon rings become
// closed paths; points are ignored.
func (ps *Paths) addGeometry(g orb.Geometry) error {
	switch g := g.(type) {
	case nil:
	case orb.Point, orb.MultiPoint:
	case orb.LineString:
		ps.P = append(ps.P, lineStringToPath(g))
	case orb.MultiLineString:
		for _, ls := range g {
			ps.P = append(ps.P, lineStringToPath(ls))
		}
	case orb.Ring:
		ps.P = append(ps.P, lineStringToPath(g))
	case orb.Polygon:
		for _, r := range g {
			ps.P = append(ps.P, lineStringToPath(r))
		}
	case orb.MultiPolygon:
		for _, poly := range g {
			if err := ps.addGeometry(poly); err != nil {
				return err
			}
		}
	case orb.Collection:
		for _, c := range g {
			if err := ps.addGeometry(c); err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("unsupported geometry %s", g.GeoJSONType())
	}
	return nil
}

// FromGeoJSON reads a FeatureCollection, a Feature or a bare
// geometry. Each line string (or polygon ring) becomes a path
// with vertices Vec2{lng, lat}, in document order.
func FromGeoJSON(r io.Reader) (*Paths, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(raw, &head); err != nil {
		return nil, fmt.Errorf("geojson: %w", err)
	}
	ps := &Paths{}
	switch head.Type {
	case "FeatureCollection":
		fc, err := geojson.UnmarshalFeatureCollection(raw)
		if err != nil {
			return nil, err
		}
		for i, f := range fc.Features {
			if err := ps.addGeometry(f.Geometry); err != nil {
				return nil, fmt.Errorf("feature %d: %w", i, err)
			}
		}
	case "Feature":
		f, err := geojson.UnmarshalFeature(raw)
		if err != nil {
			return nil, err
		}
		if err := ps.addGeometry(f.Geometry); err != nil {
			return nil, err
		}
	case "":
		return nil, fmt.Errorf("geojson: missing type")
	default:
		g, err := geojson.UnmarshalGeometry(raw)
		if err != nil {
			return nil, err
		}
		if err := ps.addGeometry(g.Geometry()); err != nil {
			return nil, err
		}
	}
	ps.TightenBounds()
	return ps, nil
}

// FeatureCollection returns a collection with one LineString
// feature per path.
func (ps *Paths) FeatureCollection() *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, p := range ps.P {
		fc.Append(geojson.NewFeature(pathToLineString(p)))
	}
	return fc
}

// GeoJSON writes the paths as a FeatureCollection.
func (ps *Paths) GeoJSON(w io.Writer) error {
	return WriteFeatureCollection(w, ps.FeatureCollection())
}

// WriteFeatureCollection encodes fc to w, followed by a newline.
func WriteFeatureCollection(w io.Writer, fc *geojson.FeatureCollection) error {
	b, err := fc.MarshalJSON()
	if err != nil {
		return err
	}
	b = append(b, '\n')
	_, err = w.Write(b)
	return err
}
