package paths

import (
	"fmt"
	"io"

	"github.com/rustyoz/svg"
)

// FromSVGDrawing parses an SVG file using the full path grammar
// (relative commands, arcs, curves and shapes). Curves are replaced
// by the chord to their end point, so files with curves should be
// flattened first if their shape matters. The bounds are tightened
// around the parsed paths.
func FromSVGDrawing(r io.Reader) (*Paths, error) {
	doc, err := svg.ParseSvgFromReader(r, "", 1.0)
	if err != nil {
		return nil, err
	}
	dis, errs := doc.ParseDrawingInstructions()
	ps := &Paths{}
	var start Vec2
	for {
		select {
		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			if err != nil {
				// unblock the parser so it can finish.
				for range dis {
				}
				return nil, fmt.Errorf("svg drawing: %w", err)
			}
		case di, ok := <-dis:
			if !ok {
				// errs is closed before dis, but may still hold an error.
				if errs != nil {
					for err := range errs {
						if err != nil {
							return nil, fmt.Errorf("svg drawing: %w", err)
						}
					}
				}
				ps.TightenBounds()
				return ps, nil
			}
			switch di.Kind {
			case svg.MoveInstruction:
				start = Vec2(*di.M)
				ps.move(start)
			case svg.LineInstruction:
				ps.lineOrMove(Vec2(*di.M))
			case svg.CurveInstruction:
				if di.CurvePoints != nil && di.CurvePoints.T != nil {
					ps.lineOrMove(Vec2(*di.CurvePoints.T))
				}
			case svg.CloseInstruction:
				ps.lineOrMove(start)
			}
		}
	}
}

// lineOrMove extends the last path to x, starting one at x if
// there are no paths yet.
func (ps *Paths) lineOrMove(x Vec2) {
	if len(ps.P) == 0 {
		ps.move(x)
		return
	}
	ps.line(x)
}
