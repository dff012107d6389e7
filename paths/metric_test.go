package paths

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics(t *testing.T) {
	cases := []struct {
		desc    string
		a, b, p Vec2
		perp    float64
		seg     float64
		area    float64
	}{
		{"above the middle", Vec2{0, 0}, Vec2{4, 0}, Vec2{2, 3}, 3, 3, 6},
		{"past the end", Vec2{0, 0}, Vec2{4, 0}, Vec2{10, 3}, 3, math.Sqrt(45), 6},
		{"before the start", Vec2{0, 0}, Vec2{4, 0}, Vec2{-3, -4}, 4, 5, 8},
		{"on the line", Vec2{1, 1}, Vec2{3, 3}, Vec2{7, 7}, 0, math.Sqrt(32), 0},
		{"diagonal", Vec2{0, 0}, Vec2{2, 2}, Vec2{0, 2}, math.Sqrt2, math.Sqrt2, 2},
		{"zero length segment", Vec2{1, 1}, Vec2{1, 1}, Vec2{4, 5}, 5, 5, 0},
		{"point on zero length segment", Vec2{1, 1}, Vec2{1, 1}, Vec2{1, 1}, 0, 0, 0},
		{"far from the origin", Vec2{1e6, 1e6}, Vec2{1e6 + 1, 1e6 + 1}, Vec2{1e6 + 0.5, 1e6 + 0.5}, 0, 0, 0},
	}
	for _, c := range cases {
		t.Run(c.desc, func(t *testing.T) {
			assert.InDelta(t, c.perp, PerpendicularDistance(c.a, c.b, c.p), 1e-12)
			assert.InDelta(t, c.seg, SegmentDistance(c.a, c.b, c.p), 1e-12)
			assert.InDelta(t, c.area, TriangleArea(c.a, c.b, c.p), 1e-12)
			// the anchors are interchangeable.
			assert.InDelta(t, c.perp, PerpendicularDistance(c.b, c.a, c.p), 1e-12)
			assert.InDelta(t, c.seg, SegmentDistance(c.b, c.a, c.p), 1e-12)
		})
	}
}

func TestParseMetric(t *testing.T) {
	a, b, p := Vec2{0, 0}, Vec2{4, 0}, Vec2{10, 3}
	for name, want := range map[string]float64{
		"":              3,
		"perpendicular": 3,
		"segment":       math.Sqrt(45),
		"area":          6,
	} {
		m, err := ParseMetric(name)
		require.NoError(t, err, name)
		assert.InDelta(t, want, m(a, b, p), 1e-12, name)
	}
	_, err := ParseMetric("hausdorff")
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestMetricsLargeCoordinates(t *testing.T) {
	a, b := Vec2{0, 0}, Vec2{3e200, 1e200}
	want := 2e200 / math.Sqrt(10)
	for _, p := range []Vec2{{1e200, 1e200}, {2e200, 0}} {
		assert.InEpsilon(t, want, PerpendicularDistance(a, b, p), 1e-9, "%v", p)
		assert.InEpsilon(t, want, SegmentDistance(a, b, p), 1e-9, "%v", p)
		assert.True(t, math.IsInf(TriangleArea(a, b, p), 1), "%v", p)
	}
}
