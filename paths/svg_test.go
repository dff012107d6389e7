package paths

import (
	"bytes"
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// A simple test svg that contains paths and groups that have
// transforms applied to them.
var testSVG = `
<svg width="2000" height="1000">
   <path d="M 123, 456 321, 654"/>
   <g transform="translate(200, 100) scale(2)" stroke="black" fill="none">
	   <path d="M100,50 300, 200"/>
	   <g transform="translate(50,50)">
		   <path d="M 50, 50 250, 50 150, 100"/>
	   </g>
   </g>
</svg>`

func TestSVG(t *testing.T) {
	got, err := FromSVG(strings.NewReader(testSVG))
	if err != nil {
		t.Fatalf("failed to parse svg: %v", err)
	}
	want := &Paths{
		Bounds: Bounds{Max: Vec2{2000, 1000}},
		P: []Path{
			{V: []Vec2{{123, 456}, {321, 654}}},
			{V: []Vec2{{400, 200}, {800, 500}}},
			{V: []Vec2{{400, 300}, {800, 300}, {600, 400}}},
		},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("svg parse. Got:\n%v\nWant:\n%v\n", got, want)
	}
}

// Relative commands, shapes and element transforms.
var testSVGShapes = `<?xml version="1.0" encoding="UTF-8"?>
<svg viewBox="-10 -20 100 200" xmlns="http://www.w3.org/2000/svg">
  <title>shapes</title>
  <path d="m 10,10 l 5,0 h 5 v 5 z"/>
  <polyline points="0,0 1,1 2,0"/>
  <polygon points="0,0 4,0 4,4" transform="translate(-1, -2)"/>
  <path d="M0 0L10 0 10 10H0Z" transform="matrix(1 0 0 -1 0 0)"/>
  <line x1="1" y1="2" x2="3" y2="4"/>
</svg>`

func TestSVGShapes(t *testing.T) {
	got, err := FromSVG(strings.NewReader(testSVGShapes))
	require.NoError(t, err)
	want := &Paths{
		Bounds: Bounds{Min: Vec2{-10, -20}, Max: Vec2{90, 180}},
		P: []Path{
			{V: []Vec2{{10, 10}, {15, 10}, {20, 10}, {20, 15}, {10, 10}}},
			{V: []Vec2{{0, 0}, {1, 1}, {2, 0}}},
			{V: []Vec2{{-1, -2}, {3, -2}, {3, 2}, {-1, -2}}},
			{V: []Vec2{{0, 0}, {10, 0}, {10, -10}, {0, -10}, {0, 0}}},
			{V: []Vec2{{1, 2}, {3, 4}}},
		},
	}
	assert.Equal(t, want, got)
}

func TestSVGErrors(t *testing.T) {
	cases := []struct {
		desc, svg string
	}{
		{"curve", `<svg width="1" height="1"><path d="M 0 0 C 1 1 2 2 3 3"/></svg>`},
		{"stray coordinate", `<svg width="1" height="1"><path d="M 0 0 1"/></svg>`},
		{"line before move", `<svg width="9" height="9"><path d="M 0 0 1 1"/><path d="L 5 5"/></svg>`},
		{"horizontal before move", `<svg width="9" height="9"><path d="M 0 0 1 1"/><path d="h 5"/></svg>`},
		{"close before move", `<svg width="9" height="9"><path d="z"/></svg>`},
		{"odd polyline", `<svg width="1" height="1"><polyline points="0,0 1"/></svg>`},
		{"bad transform", `<svg width="1" height="1"><g transform="rotate(45)"><path d="M 0 0 1 1"/></g></svg>`},
		{"short viewBox", `<svg viewBox="0 0 1"></svg>`},
		{"no size", `<svg></svg>`},
	}
	for _, c := range cases {
		t.Run(c.desc, func(t *testing.T) {
			_, err := FromSVG(strings.NewReader(c.svg))
			assert.Error(t, err)
		})
	}
}

// TestSVGRoundTrip parses paths out of an svg, writes them back
// to a new svg file, parses the paths out of that, and then checks
// that the paths (or bounds) don't change.
func TestSVGRoundTrip(t *testing.T) {
	for _, src := range []string{testSVG, testSVGShapes} {
		got, err := FromSVG(strings.NewReader(src))
		if err != nil {
			t.Fatalf("failed to parse svg: %v", err)
		}
		if len(got.P) == 0 {
			t.Fatalf("expected some paths")
		}
		var bb bytes.Buffer
		if err := got.SVG(&bb); err != nil {
			t.Fatalf("failed to write back svg: %v", err)
		}
		got2, err := FromSVG(&bb)
		if err != nil {
			t.Fatalf("failed to re-parse svg: %v", err)
		}
		if !reflect.DeepEqual(got, got2) {
			t.Errorf("svg round-trip not identity. Started with:\n%v\nGot:\n%v", got, got2)
		}
	}
}

func TestSVGWithStyle(t *testing.T) {
	ps := &Paths{
		Bounds: Bounds{Max: Vec2{1, 1}},
		P:      []Path{{V: []Vec2{{0.123456789, 0}, {1, 1}}}, {}},
	}
	var bb bytes.Buffer
	require.NoError(t, ps.SVGWithStyle(&bb, SVGStyle{Stroke: "#ff3300", StrokeWidth: 4, DashArray: "5, 10"}))
	s := bb.String()
	assert.Contains(t, s, `stroke="#ff3300"`)
	assert.Contains(t, s, `stroke-dasharray="5, 10"`)
	assert.Contains(t, s, `M 0.123456789, 0 1, 1`)
	assert.Equal(t, 1, strings.Count(s, "<path"))
}

func TestSimplifySVG(t *testing.T) {
	ps, err := FromSVG(strings.NewReader(`<svg width="10" height="10">
		<path d="M -1,-1 0,-1.1 1,-1 0.9,0 1,1 0,1.1 -1,1 -0.9,0 -1,-1"/>
	</svg>`))
	require.NoError(t, err)
	require.NoError(t, ps.Simplify(0.2, HighQuality))
	assert.Equal(t, []Path{{V: []Vec2{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}, {-1, -1}}}}, ps.P)
}

func TestSVGDrawing(t *testing.T) {
	ps, err := FromSVGDrawing(strings.NewReader(`<svg width="100" height="100">
		<g>
			<path d="M 10 10 L 20 10 L 20 20 Z"/>
		</g>
	</svg>`))
	require.NoError(t, err)
	require.NotEmpty(t, ps.P)
	assert.Equal(t, Bounds{Min: Vec2{10, 10}, Max: Vec2{20, 20}}, ps.Bounds)
	for _, p := range ps.P {
		for _, v := range p.V {
			assert.Contains(t, []Vec2{{10, 10}, {20, 10}, {20, 20}}, v)
		}
	}
}

func TestSVGDrawingError(t *testing.T) {
	// Run it repeatedly: the parser reports errors and instructions
	// on separate channels.
	for i := 0; i < 200; i++ {
		_, err := FromSVGDrawing(strings.NewReader(`<svg width="10" height="10">
			<path d="M 1 1 L 2 2"/>
			<path d="M 0 0 Q 1"/>
		</svg>`))
		require.Error(t, err, "run %d", i)
	}
}
