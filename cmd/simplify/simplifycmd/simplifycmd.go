// Package simplifycmd provides the functionality for the
// simplify binary as a library.
package simplifycmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/paulhankin/simplify/paths"
	"go.uber.org/zap"
)

type Config struct {
	In  string
	Out string

	Tolerance float64
	Quality   paths.Quality
	Metric    string // perpendicular, segment or area
	SVG       string // simple or full

	// Style for svg output.
	Stroke    string
	DashArray string
}

// Stats summarizes one simplification.
type Stats struct {
	Original   int
	Simplified int
}

// ReductionPercent is the share of vertices removed, in percent.
// It is 0 when there were no vertices to begin with.
func (s Stats) ReductionPercent() float64 {
	if s.Original == 0 {
		return 0
	}
	return float64(s.Original-s.Simplified) / float64(s.Original) * 100
}

func (s Stats) String() string {
	return fmt.Sprintf("Original points: %d, Simplified points: %d, Reduction: %.1f%%",
		s.Original, s.Simplified, s.ReductionPercent())
}

type format int

const (
	formatSVG format = 1 + iota
	formatGeoJSON
	formatPolyline
)

func formatOf(name string) (format, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".svg":
		return formatSVG, nil
	case ".geojson", ".json":
		return formatGeoJSON, nil
	case ".polyline", ".txt":
		return formatPolyline, nil
	}
	return 0, fmt.Errorf("can't tell the format of %q from its extension (want .svg, .geojson, .json, .polyline or .txt)", name)
}

func read(cfg *Config, f format, r io.Reader) (*paths.Paths, error) {
	switch f {
	case formatSVG:
		switch cfg.SVG {
		case "", "simple":
			return paths.FromSVG(r)
		case "full":
			return paths.FromSVGDrawing(r)
		}
		return nil, fmt.Errorf("unknown svg parser %q (want simple or full)", cfg.SVG)
	case formatGeoJSON:
		return paths.FromGeoJSON(r)
	case formatPolyline:
		return paths.FromPolylines(r)
	}
	return nil, fmt.Errorf("unknown input format %d", f)
}

func write(cfg *Config, f format, w io.Writer, ps *paths.Paths, orig []int) error {
	switch f {
	case formatSVG:
		st := paths.DefaultSVGStyle
		if cfg.Stroke != "" {
			st.Stroke = cfg.Stroke
		}
		st.DashArray = cfg.DashArray
		return ps.SVGWithStyle(w, st)
	case formatGeoJSON:
		fc := ps.FeatureCollection()
		for i, feat := range fc.Features {
			feat.Properties["originalCount"] = orig[i]
			feat.Properties["simplifiedCount"] = len(ps.P[i].V)
		}
		return paths.WriteFeatureCollection(w, fc)
	case formatPolyline:
		return ps.Polylines(w)
	}
	return fmt.Errorf("unknown output format %d", f)
}

// Convert reads cfg.In, simplifies every path in it and writes
// the result to cfg.Out. The output file is not created if
// reading or simplification fails.
func Convert(cfg *Config, log *zap.Logger) (Stats, error) {
	if cfg.In == "" {
		return Stats{}, fmt.Errorf("input file must be specified")
	}
	inFormat, err := formatOf(cfg.In)
	if err != nil {
		return Stats{}, err
	}
	outFormat, err := formatOf(cfg.Out)
	if err != nil {
		return Stats{}, err
	}
	metric, err := paths.ParseMetric(cfg.Metric)
	if err != nil {
		return Stats{}, err
	}

	ps, err := func() (*paths.Paths, error) {
		f, err := os.Open(cfg.In)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return read(cfg, inFormat, f)
	}()
	if err != nil {
		return Stats{}, fmt.Errorf("failed to read %s: %w", cfg.In, err)
	}

	orig := make([]int, len(ps.P))
	for i, p := range ps.P {
		orig[i] = len(p.V)
	}
	st := Stats{Original: ps.Count()}

	s := &paths.Simplifier{
		Tolerance: cfg.Tolerance,
		Quality:   cfg.Quality,
		Metric:    metric,
	}
	if err := ps.SimplifyWith(s); err != nil {
		return Stats{}, fmt.Errorf("failed to simplify %s: %w", cfg.In, err)
	}
	st.Simplified = ps.Count()

	for i, p := range ps.P {
		pst := Stats{Original: orig[i], Simplified: len(p.V)}
		log.Debug("simplified path",
			zap.Int("path", i),
			zap.Int("original", pst.Original),
			zap.Int("simplified", pst.Simplified),
			zap.Float64("reduction_percent", pst.ReductionPercent()))
	}
	log.Info("simplified",
		zap.String("in", cfg.In),
		zap.Int("paths", len(ps.P)),
		zap.Float64("tolerance", cfg.Tolerance),
		zap.Stringer("quality", cfg.Quality),
		zap.Int("original", st.Original),
		zap.Int("simplified", st.Simplified),
		zap.Float64("reduction_percent", st.ReductionPercent()))

	out, err := os.Create(cfg.Out)
	if err != nil {
		return Stats{}, fmt.Errorf("failed to open output file: %w", err)
	}
	if err := write(cfg, outFormat, out, ps, orig); err != nil {
		out.Close()
		return Stats{}, fmt.Errorf("failed to write %s: %w", cfg.Out, err)
	}
	if err := out.Close(); err != nil {
		return Stats{}, fmt.Errorf("failed to write %s: %w", cfg.Out, err)
	}
	return st, nil
}
