package paths

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/twpayne/go-polyline"
)

// FromPolylines reads Google encoded polylines, one per line.
// Blank lines are skipped. Encoded coordinates are (lat, lng);
// they're stored as Vec2{lng, lat} like every other geographic
// source.
func FromPolylines(r io.Reader) (*Paths, error) {
	ps := &Paths{}
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)
	line := 0
	for sc.Scan() {
		line++
		s := strings.TrimSpace(sc.Text())
		if s == "" {
			continue
		}
		coords, rest, err := polyline.DecodeCoords([]byte(s))
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if len(rest) != 0 {
			return nil, fmt.Errorf("line %d: %d trailing bytes after polyline", line, len(rest))
		}
		p := Path{V: make([]Vec2, len(coords))}
		for i, c := range coords {
			p.V[i] = Vec2{c[1], c[0]}
		}
		ps.P = append(ps.P, p)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	ps.TightenBounds()
	return ps, nil
}

// Polylines writes each path as a Google encoded polyline on
// its own line. Precision is 5 decimal places.
func (ps *Paths) Polylines(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for _, p := range ps.P {
		coords := make([][]float64, len(p.V))
		for i, v := range p.V {
			coords[i] = []float64{v[1], v[0]}
		}
		if _, err := bw.Write(polyline.EncodeCoords(coords)); err != nil {
			return err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}
