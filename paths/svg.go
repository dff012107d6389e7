package paths

import (
	"bufio"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/scanner"
	"unicode"

	"github.com/JoshVarga/svgparser"
	"golang.org/x/net/html/charset"
)

// parseBounds uses the viewBox if there is one, and otherwise
// the width and height.
func parseBounds(e *svgparser.Element) (Bounds, error) {
	if vb := e.Attributes["viewBox"]; vb != "" {
		f, err := parseFloats(splitNumbers(vb))
		if err != nil {
			return Bounds{}, fmt.Errorf("bad viewBox %q: %w", vb, err)
		}
		if len(f) != 4 {
			return Bounds{}, fmt.Errorf("viewBox %q should have 4 numbers", vb)
		}
		return Bounds{
			Min: Vec2{f[0], f[1]},
			Max: Vec2{f[0] + f[2], f[1] + f[3]},
		}, nil
	}
	width, werr := strconv.ParseFloat(e.Attributes["width"], 64)
	height, herr := strconv.ParseFloat(e.Attributes["height"], 64)
	if werr != nil {
		return Bounds{}, werr
	}
	if herr != nil {
		return Bounds{}, herr
	}
	return Bounds{
		Max: Vec2{width, height},
	}, nil
}

// splitNumbers splits on whitespace and commas.
func splitNumbers(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
}

func parseFloats(a []string) ([]float64, error) {
	var r []float64
	for _, x := range a {
		f, err := strconv.ParseFloat(x, 64)
		if err != nil {
			return nil, err
		}
		r = append(r, f)
	}
	return r, nil
}

func parseLine(ps *Paths, xform *svgXform, e *svgparser.Element) error {
	var ferr error
	pf := func(s string) float64 {
		if ferr != nil {
			return 0
		}
		f, err := strconv.ParseFloat(s, 64)
		ferr = err
		return f
	}
	x1 := pf(e.Attributes["x1"])
	x2 := pf(e.Attributes["x2"])
	y1 := pf(e.Attributes["y1"])
	y2 := pf(e.Attributes["y2"])
	ps.move(xform.Apply(Vec2{x1, y1}))
	ps.line(xform.Apply(Vec2{x2, y2}))
	return ferr
}

// parsePolyline reads the points of a <polyline> or <polygon>.
func parsePolyline(ps *Paths, xform *svgXform, e *svgparser.Element, closed bool) error {
	f, err := parseFloats(splitNumbers(e.Attributes["points"]))
	if err != nil {
		return err
	}
	if len(f)%2 != 0 {
		return fmt.Errorf("%s has an odd number of coordinates", e.Name)
	}
	if len(f) == 0 {
		return nil
	}
	var p Path
	for i := 0; i < len(f); i += 2 {
		p.V = append(p.V, xform.Apply(Vec2{f[i], f[i+1]}))
	}
	if closed {
		p.V = append(p.V, p.V[0])
	}
	ps.P = append(ps.P, p)
	return nil
}

type xformScannerState int

const (
	xfsName xformScannerState = 1 + iota
	xfsBra
	xfsMaybeComma
	xfsArg
)

func svgXformTranslate(x, y float64) *svgXform {
	return &svgXform{
		M: [3][3]float64{
			{1, 0, x},
			{0, 1, y},
			{0, 0, 1},
		},
	}
}

func svgXformScale(x, y float64) *svgXform {
	return &svgXform{
		M: [3][3]float64{
			{x, 0, 0},
			{0, y, 0},
			{0, 0, 1},
		},
	}
}

func parseSingleXform(name string, args []string) (*svgXform, error) {
	fa, err := parseFloats(args)
	if err != nil {
		return nil, err
	}
	switch name {
	case "translate":
		if len(fa) != 1 && len(fa) != 2 {
			return nil, fmt.Errorf("translate should have one or two parameters: got %s", args)
		}
		if len(fa) == 1 {
			fa = append(fa, 0)
		}
		return svgXformTranslate(fa[0], fa[1]), nil
	case "scale":
		if len(fa) != 1 && len(fa) != 2 {
			return nil, fmt.Errorf("scale should have one or two parameters: got %s", args)
		}
		if len(fa) == 1 {
			fa = append(fa, fa[0])
		}
		return svgXformScale(fa[0], fa[1]), nil
	case "matrix":
		if len(fa) != 6 {
			return nil, fmt.Errorf("matrix should have six parameters: got %s", args)
		}
		return &svgXform{M: [3][3]float64{
			{fa[0], fa[2], fa[4]},
			{fa[1], fa[3], fa[5]},
			{0, 0, 1},
		}}, nil
	default:
		return nil, fmt.Errorf("unknown transform function %q", name)
	}
}

func parseSVGXForm(x string) (*svgXform, error) {
	var s scanner.Scanner
	xf := svgIdentity
	s.Init(strings.NewReader(x))
	state := xfsName
	fname := ""
	var args []string
	neg := false
	for tok := s.Scan(); tok != scanner.EOF; tok = s.Scan() {
		switch state {
		case xfsName:
			if tok != scanner.Ident {
				return nil, fmt.Errorf("failed to parse transform: expected transform name, but got %q", s.TokenText())
			}
			fname = s.TokenText()
			state = xfsBra
		case xfsBra:
			if tok != '(' {
				return nil, fmt.Errorf("failed to parse transform: expected (, but got %q", s.TokenText())
			}
			state = xfsArg
		case xfsMaybeComma:
			if tok == ',' {
				continue
			}
			fallthrough
		case xfsArg:
			if tok == ')' && !neg {
				newxform, err := parseSingleXform(fname, args)
				if err != nil {
					return nil, err
				}
				xf = xf.Compose(newxform)
				state = xfsName
				args = nil
			} else if tok == '-' && !neg {
				neg = true
			} else if tok == scanner.Float || tok == scanner.Int {
				arg := s.TokenText()
				if neg {
					arg = "-" + arg
					neg = false
				}
				args = append(args, arg)
				state = xfsMaybeComma
			} else {
				return nil, fmt.Errorf("unexpected token %q parsing transform %q", s.TokenText(), x)
			}
		}
	}
	if state != xfsName {
		return nil, fmt.Errorf("failed to parse transform: %q", x)
	}
	return xf, nil
}

// pathTokens splits path data into single-letter commands
// and numbers.
func pathTokens(d string) []string {
	var toks []string
	for _, f := range splitNumbers(d) {
		start := 0
		for i, r := range f {
			if unicode.IsLetter(r) && r != 'e' && r != 'E' {
				if i > start {
					toks = append(toks, f[start:i])
				}
				toks = append(toks, string(r))
				start = i + 1
			}
		}
		if start < len(f) {
			toks = append(toks, f[start:])
		}
	}
	return toks
}

// parsePath understands the straight-line subset of the path
// grammar: M, L, H, V and Z, absolute or relative.
// Use FromSVGDrawing for files with curves.
func parsePath(ps *Paths, xf *svgXform, e *svgparser.Element) error {
	var (
		cmd      byte
		cur      Vec2 // untransformed current point
		subStart Vec2
		args     []float64
		started  bool
	)
	emit := func(v Vec2, move bool) {
		cur = v
		if move {
			subStart = v
			ps.P = append(ps.P, Path{})
		}
		p := &ps.P[len(ps.P)-1]
		p.V = append(p.V, xf.Apply(v))
	}
	for _, tok := range pathTokens(e.Attributes["d"]) {
		if len(tok) == 1 && unicode.IsLetter(rune(tok[0])) {
			if len(args) != 0 {
				return fmt.Errorf("got stray component in path before %s", tok)
			}
			cmd = tok[0]
			if !started && cmd != 'M' && cmd != 'm' {
				return fmt.Errorf("path data must start with a moveto, got %q", tok)
			}
			switch cmd {
			case 'M', 'm', 'L', 'l', 'H', 'h', 'V', 'v':
			case 'Z', 'z':
				if cur != subStart {
					emit(subStart, false)
				}
				cur = subStart
			default:
				return fmt.Errorf("unsupported path command %q", tok)
			}
			continue
		}
		x, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return err
		}
		if cmd == 0 {
			// a bare coordinate list is a polyline.
			cmd = 'M'
		}
		args = append(args, x)
		var rel Vec2
		if cmd >= 'a' && cmd <= 'z' {
			rel = cur
		}
		switch cmd {
		case 'M', 'm', 'L', 'l':
			if len(args) < 2 {
				continue
			}
			v := Vec2{rel[0] + args[0], rel[1] + args[1]}
			emit(v, cmd == 'M' || cmd == 'm')
			started = true
			// subsequent pairs after a move are implicit lines.
			if cmd == 'M' {
				cmd = 'L'
			} else if cmd == 'm' {
				cmd = 'l'
			}
		case 'H', 'h':
			emit(Vec2{rel[0] + args[0], cur[1]}, false)
		case 'V', 'v':
			emit(Vec2{cur[0], rel[1] + args[0]}, false)
		default:
			return fmt.Errorf("unexpected number %q after command %q", tok, cmd)
		}
		args = args[:0]
	}
	if len(args) != 0 {
		return fmt.Errorf("got stray component in path")
	}
	return nil
}

type svgXform struct {
	M [3][3]float64
}

func (xf *svgXform) Compose(xf2 *svgXform) *svgXform {
	var a svgXform
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			for k := 0; k < 3; k++ {
				a.M[i][k] += xf.M[i][j] * xf2.M[j][k]
			}
		}
	}
	return &a
}

func (xf *svgXform) Apply(v Vec2) Vec2 {
	x := [3]float64{v[0], v[1], 1.0}
	var r [3]float64
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			r[i] += xf.M[i][j] * x[j]
		}
	}
	return Vec2{r[0] / r[2], r[1] / r[2]}
}

var svgIdentity = &svgXform{
	M: [3][3]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}},
}

func parsePaths(p *Paths, xform *svgXform, e *svgparser.Element) error {
	for _, c := range e.Children {
		xf := xform
		if t := c.Attributes["transform"]; t != "" {
			cxf, err := parseSVGXForm(t)
			if err != nil {
				return err
			}
			xf = xform.Compose(cxf)
		}
		var err error
		switch c.Name {
		case "g":
			err = parsePaths(p, xf, c)
		case "path":
			err = parsePath(p, xf, c)
		case "line":
			err = parseLine(p, xf, c)
		case "polyline":
			err = parsePolyline(p, xf, c, false)
		case "polygon":
			err = parsePolyline(p, xf, c, true)
		}
		// Anything else (defs, text, title, ...) has no vertices.
		if err != nil {
			return fmt.Errorf("<%s>: %w", c.Name, err)
		}
	}
	return nil
}

// FromSVG parses an SVG file, extracting paths.
// This provides only limited SVG parsing support, and
// will fail or produce incorrect results if the SVG file
// uses features that it doesn't understand.
func FromSVG(r io.Reader) (p *Paths, rerr error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	decoder := xml.NewDecoder(bytes.NewReader(raw))
	decoder.CharsetReader = charset.NewReaderLabel
	elt, err := svgparser.DecodeFirst(decoder)
	if err != nil {
		return nil, err
	}
	if err := elt.Decode(decoder); err != nil && err != io.EOF {
		return nil, err
	}
	bs, err := parseBounds(elt)
	if err != nil {
		return nil, err
	}
	p = &Paths{Bounds: bs}
	return p, parsePaths(p, svgIdentity, elt)
}

const svgh = `<svg width="%s" height="%s" viewBox="%s %s %s %s" version="1.1" xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink">`

func fmtFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// SVGStyle sets the stroke of paths written by SVG.
type SVGStyle struct {
	Stroke      string
	StrokeWidth float64
	DashArray   string // optional
}

// DefaultSVGStyle is a thin black line.
var DefaultSVGStyle = SVGStyle{Stroke: "black", StrokeWidth: 0.1}

// SVG writes an SVG file that contains black strokes along the paths.
func (ps *Paths) SVG(w io.Writer) error {
	return ps.SVGWithStyle(w, DefaultSVGStyle)
}

// SVGWithStyle writes an SVG file with the paths stroked in the
// given style. Coordinates are written at full precision.
func (ps *Paths) SVGWithStyle(w io.Writer, st SVGStyle) error {
	var werr error
	bi := bufio.NewWriter(w)
	wr := func(f string, args ...interface{}) {
		if werr != nil {
			return
		}
		_, werr = fmt.Fprintf(bi, f, args...)
	}
	b := ps.Bounds
	wr(svgh, fmtFloat(b.Max[0]), fmtFloat(b.Max[1]),
		fmtFloat(b.Min[0]), fmtFloat(b.Min[1]), fmtFloat(b.Max[0]-b.Min[0]), fmtFloat(b.Max[1]-b.Min[1]))
	wr("\n")
	wr(`<g fill="none" stroke="%s" stroke-width="%s"`, st.Stroke, fmtFloat(st.StrokeWidth))
	if st.DashArray != "" {
		wr(` stroke-dasharray="%s"`, st.DashArray)
	}
	wr(">\n")
	for _, p := range ps.P {
		if len(p.V) == 0 {
			continue
		}
		wr(`<path d="`)
		for i, v := range p.V {
			if i == 0 {
				wr("M %s, %s", fmtFloat(v[0]), fmtFloat(v[1]))
			} else {
				wr(" %s, %s", fmtFloat(v[0]), fmtFloat(v[1]))
			}
		}
		wr("\"/>\n")
	}
	wr("</g>")
	wr("</svg>\n")
	if werr == nil {
		werr = bi.Flush()
	}
	return werr
}
