package paths

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument is returned (wrapped) when a tolerance is
// negative or not finite, or a vertex has a NaN or infinite
// coordinate.
var ErrInvalidArgument = errors.New("invalid argument")

// Quality selects the reduction algorithm.
type Quality int

const (
	// Fast drops every vertex that is within the tolerance of the
	// previously kept vertex. It's a single linear pass.
	Fast Quality = iota
	// HighQuality runs Ramer-Douglas-Peucker over the whole path.
	HighQuality
)

func (q Quality) String() string {
	switch q {
	case Fast:
		return "fast"
	case HighQuality:
		return "high"
	}
	return fmt.Sprintf("Quality(%d)", int(q))
}

// ParseQuality is the inverse of Quality.String.
func ParseQuality(s string) (Quality, error) {
	switch s {
	case "fast":
		return Fast, nil
	case "high":
		return HighQuality, nil
	}
	return 0, fmt.Errorf("%w: unknown quality %q (want fast or high)", ErrInvalidArgument, s)
}

// A Simplifier removes vertices from paths, keeping the first
// and last vertex of each path.
// The zero value is a Fast simplifier with zero tolerance, which
// only drops repeated vertices.
type Simplifier struct {
	Tolerance float64
	Quality   Quality
	Metric    Metric // used by HighQuality; nil means PerpendicularDistance
}

func (s *Simplifier) validate(v []Vec2) error {
	if !isFinite(s.Tolerance) || s.Tolerance < 0 {
		return fmt.Errorf("%w: tolerance %v must be finite and non-negative", ErrInvalidArgument, s.Tolerance)
	}
	if s.Quality != Fast && s.Quality != HighQuality {
		return fmt.Errorf("%w: %v", ErrInvalidArgument, s.Quality)
	}
	return validateVertices(v)
}

// Indices returns the indices of the vertices of v that
// survive simplification, in increasing order.
func (s *Simplifier) Indices(v []Vec2) ([]int, error) {
	if err := s.validate(v); err != nil {
		return nil, err
	}
	if len(v) <= 2 {
		idx := make([]int, len(v))
		for i := range idx {
			idx[i] = i
		}
		return idx, nil
	}
	if s.Quality == Fast {
		return radial(v, s.Tolerance), nil
	}
	m := s.Metric
	if m == nil {
		m = PerpendicularDistance
	}
	keep := make([]bool, len(v))
	keep[0] = true
	keep[len(v)-1] = true
	rdp(v, 0, len(v)-1, s.Tolerance, m, keep)
	var idx []int
	for i, k := range keep {
		if k {
			idx = append(idx, i)
		}
	}
	return idx, nil
}

// Path returns the simplified copy of v. v is not modified.
func (s *Simplifier) Path(v []Vec2) ([]Vec2, error) {
	idx, err := s.Indices(v)
	if err != nil {
		return nil, err
	}
	r := make([]Vec2, len(idx))
	for i, j := range idx {
		r[i] = v[j]
	}
	return r, nil
}

// SimplifyPath removes vertices from v, with the guarantee
// that each removed vertex is within tol of the new path
// (under PerpendicularDistance for HighQuality, and of a
// kept neighbour for Fast).
func SimplifyPath(v []Vec2, tol float64, q Quality) ([]Vec2, error) {
	s := Simplifier{Tolerance: tol, Quality: q}
	return s.Path(v)
}

// radial keeps each vertex further than tol from the last
// kept vertex. The final vertex is always kept.
func radial(v []Vec2, tol float64) []int {
	idx := []int{0}
	last := 0
	for i := 1; i < len(v); i++ {
		if vec2dist(v[last], v[i]) > tol {
			idx = append(idx, i)
			last = i
		}
	}
	if last != len(v)-1 {
		idx = append(idx, len(v)-1)
	}
	return idx
}

// rdp marks the vertices strictly between lo and hi that must
// be kept so that every vertex in that range scores at most tol
// against the chord it's replaced by. lo and hi are already kept.
// On ties the lowest index wins.
func rdp(v []Vec2, lo, hi int, tol float64, m Metric, keep []bool) {
	if hi-lo < 2 {
		return
	}
	worst := -1
	worstD := 0.0
	for i := lo + 1; i < hi; i++ {
		d := m(v[lo], v[hi], v[i])
		if worst < 0 || d > worstD {
			worst = i
			worstD = d
		}
	}
	if worstD <= tol {
		return
	}
	keep[worst] = true
	rdp(v, lo, worst, tol, m, keep)
	rdp(v, worst, hi, tol, m, keep)
}

// Simplify removes vertices from every path, with the same
// guarantee as SimplifyPath. Nothing is changed if any path
// is invalid.
func (ps *Paths) Simplify(tol float64, q Quality) error {
	s := Simplifier{Tolerance: tol, Quality: q}
	return ps.SimplifyWith(&s)
}

// SimplifyWith is like Simplify, but with a configured Simplifier.
func (ps *Paths) SimplifyWith(s *Simplifier) error {
	for i, p := range ps.P {
		if err := s.validate(p.V); err != nil {
			return fmt.Errorf("path %d: %w", i, err)
		}
	}
	np := make([]Path, len(ps.P))
	for i, p := range ps.P {
		v, err := s.Path(p.V)
		if err != nil {
			return fmt.Errorf("path %d: %w", i, err)
		}
		np[i] = Path{V: v}
	}
	ps.P = np
	return nil
}
