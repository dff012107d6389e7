package paths

import (
	"fmt"
	"math"
)

// A Metric scores how far p deviates from the straight line
// joining the anchors a and b. It must be non-negative, and
// zero when p lies on the line.
type Metric func(a, b, p Vec2) float64

func vec2dist(v0, v1 Vec2) float64 {
	return math.Hypot(v0[0]-v1[0], v0[1]-v1[1])
}

// unit returns the direction from a to b scaled to length 1,
// and the distance from a to b. a and b must differ.
func unit(a, b Vec2) (Vec2, float64) {
	d := vec2dist(a, b)
	return Vec2{(b[0] - a[0]) / d, (b[1] - a[1]) / d}, d
}

// PerpendicularDistance is the distance from p to the infinite
// line through a and b. If a == b it's the distance from p to a.
func PerpendicularDistance(a, b, p Vec2) float64 {
	if a == b {
		return vec2dist(p, a)
	}
	u, _ := unit(a, b)
	return math.Abs(u[0]*(p[1]-a[1]) - u[1]*(p[0]-a[0]))
}

// SegmentDistance is the distance from p to the closest point
// of the segment from a to b.
func SegmentDistance(a, b, p Vec2) float64 {
	if a == b {
		return vec2dist(p, a)
	}
	u, d := unit(a, b)
	qx, qy := p[0]-a[0], p[1]-a[1]
	s := qx*u[0] + qy*u[1]
	switch {
	case s <= 0:
		return vec2dist(p, a)
	case s >= d:
		return vec2dist(p, b)
	}
	return math.Hypot(qx-s*u[0], qy-s*u[1])
}

// TriangleArea is the area of the triangle a, b, p: the area
// lost from the outline by dropping p.
func TriangleArea(a, b, p Vec2) float64 {
	if a == b {
		return 0
	}
	return vec2dist(a, b) * PerpendicularDistance(a, b, p) / 2
}

// ParseMetric returns the metric called name: "perpendicular",
// "segment" or "area".
func ParseMetric(name string) (Metric, error) {
	switch name {
	case "", "perpendicular":
		return PerpendicularDistance, nil
	case "segment":
		return SegmentDistance, nil
	case "area":
		return TriangleArea, nil
	}
	return nil, fmt.Errorf("%w: unknown metric %q", ErrInvalidArgument, name)
}
