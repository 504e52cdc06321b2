package astifilter

import (
	"strings"

	"github.com/asticode/go-astikit"
)

// Parser parses filter graph descriptions such as
// "[0:v]scale=640:480[a];[a][1:v]overlay=10:10" into a Graph
type Parser struct {
	l astikit.SeverityLogger
	r Registry
}

// ParserOptions represents parser options
type ParserOptions struct {
	Logger   astikit.StdLogger
	Registry Registry
}

// NewParser creates a new parser. When no registry is provided the default
// static registry is used.
func NewParser(o ParserOptions) (p *Parser) {
	p = &Parser{
		l: astikit.AdaptStdLogger(o.Logger),
		r: o.Registry,
	}
	if p.r == nil {
		p.r = NewStaticRegistry()
	}
	return
}

// Parse parses a graph description with the default static registry
func Parse(desc string) (*Graph, error) {
	return NewParser(ParserOptions{}).Parse(desc)
}

// graphParser holds the state of one parse invocation. Pools are fresh on
// every invocation, nothing is shared between parses.
type graphParser struct {
	// curr threads the pads produced by the previous filter of the chain
	// to the next one
	curr        []InOut
	g           *Graph
	l           astikit.SeverityLogger
	openInputs  []InOut
	openOutputs []InOut
	r           Registry
	sc          *scanner
}

// Parse parses a graph description. It either succeeds as a whole or fails
// on the first structural error, there is no partial result.
func (p *Parser) Parse(desc string) (g *Graph, err error) {
	gp := &graphParser{
		g:  &Graph{},
		l:  p.l,
		r:  p.r,
		sc: newScanner(desc),
	}
	return gp.parse()
}

func (gp *graphParser) parse() (g *Graph, err error) {
	// Optional global directive
	gp.sc.skipWhitespace()
	if err = gp.parseSwsFlags(); err != nil {
		return
	}

	// Loop through filter specs
	for index := 0; ; index++ {
		// Named inputs
		gp.sc.skipWhitespace()
		if err = gp.parseInputs(); err != nil {
			return
		}

		// Filter spec
		var f Filter
		if f, err = gp.parseFilter(index); err != nil {
			return
		}

		// Link pads
		if err = gp.linkFilterPads(&f); err != nil {
			return
		}

		// Named outputs
		if err = gp.parseOutputs(&f); err != nil {
			return
		}
		gp.sc.skipWhitespace()

		// Add filter
		gp.g.Filters = append(gp.g.Filters, f)

		// Dispatch on the separator
		b, ok := gp.sc.peek()
		if !ok {
			break
		}
		switch b {
		case ',':
			gp.sc.skip(1)
		case ';':
			// End of chain, leftover pads stay collectible by label only
			gp.openOutputs = append(gp.openOutputs, gp.curr...)
			gp.curr = nil
			gp.sc.skip(1)
		default:
			err = TrailingTextError{Remaining: gp.sc.remaining()}
			return
		}
	}

	// Pads of the last chain become terminal open outputs
	gp.openOutputs = append(gp.openOutputs, gp.curr...)
	gp.curr = nil

	gp.g.Inputs = gp.openInputs
	gp.g.Outputs = gp.openOutputs
	g = gp.g
	return
}

// parseSwsFlags parses the optional leading "sws_flags=...;" directive. The
// "flags=" part is kept in the stored value.
func (gp *graphParser) parseSwsFlags() (err error) {
	if v, ok := gp.sc.peekLen(10); !ok || v != "sws_flags=" {
		return
	}
	gp.sc.skip(4)

	v, ok := gp.sc.peekUntil(func(b byte) bool { return b == ';' })
	if !ok {
		err = ErrUnterminatedSwsFlags
		return
	}
	gp.g.ScaleSwsOpts = v
	gp.sc.skip(len(v) + 1)
	return
}

// parseInputs parses the "[label]" tokens preceding a filter spec. Labels
// matching an open output claim it, other labels become unbound references.
// Named pads come before pads carried over from the previous filter of the
// chain.
func (gp *graphParser) parseInputs() (err error) {
	var parsed []InOut
	for pad := 0; ; pad++ {
		if b, ok := gp.sc.peek(); !ok || b != '[' {
			break
		}
		gp.sc.skip(1)

		name, ok := gp.sc.peekUntil(func(b byte) bool { return b == ']' })
		if !ok {
			err = TrailingTextError{Remaining: gp.sc.remaining()}
			return
		}
		gp.sc.skip(len(name) + 1)

		if in := gp.takeOpenOutput(name); in != nil {
			parsed = append(parsed, *in)
		} else {
			parsed = append(parsed, InOut{
				Filter: NoFilter,
				Name:   name,
				Pad:    pad,
			})
		}
		gp.sc.skipWhitespace()
	}
	gp.curr = append(parsed, gp.curr...)
	return
}

// parseFilter parses "name" or "name=args" and builds the filter instance
func (gp *graphParser) parseFilter(index int) (f Filter, err error) {
	name := gp.sc.peekUntilEnd(func(b byte) bool {
		return b == '=' || b == ',' || b == ';' || b == '['
	})
	gp.sc.skip(len(name))

	var args string
	if b, ok := gp.sc.peek(); ok && b == '=' {
		gp.sc.skip(1)
		args = gp.sc.peekUntilEnd(func(b byte) bool {
			return b == '[' || b == ']' || b == ',' || b == ';'
		})
		gp.sc.skip(len(args))
	}

	const cutset = " \t\n"
	return gp.createFilter(strings.Trim(name, cutset), strings.Trim(args, cutset), index)
}

// linkFilterPads feeds the current pads into the new filter's input pads,
// creating links for bound pads and deferring unbound ones to the open
// inputs pool, then exposes the filter's output pads as the new current
// pads
func (gp *graphParser) linkFilterPads(f *Filter) (err error) {
	for pad := 0; pad < f.NbInputs; pad++ {
		in := InOut{Filter: NoFilter}
		if len(gp.curr) > 0 {
			in = gp.curr[0]
			gp.curr = gp.curr[1:]
		}

		if in.Filter != NoFilter {
			gp.g.Links = append(gp.g.Links, Link{
				FromFilter: in.Filter,
				FromPad:    in.Pad,
				ToFilter:   f.Index,
				ToPad:      pad,
			})
		} else {
			in.Filter = f.Index
			in.Pad = pad
			gp.openInputs = append(gp.openInputs, in)
		}
	}

	if len(gp.curr) > 0 {
		err = TooManyInputsError{Filter: f.Name}
		return
	}

	for pad := 0; pad < f.NbOutputs; pad++ {
		gp.curr = append(gp.curr, InOut{
			Filter: f.Index,
			Pad:    pad,
		})
	}
	return
}

// parseOutputs parses the "[label]" tokens following a filter spec. Each
// label claims the next current pad, links it to a matching open input if
// an earlier chain required that label, and exposes it as an open output
// otherwise.
func (gp *graphParser) parseOutputs(f *Filter) (err error) {
	for {
		if b, ok := gp.sc.peek(); !ok || b != '[' {
			break
		}
		gp.sc.skip(1)

		name, ok := gp.sc.peekUntil(func(b byte) bool { return b == ']' })
		if !ok {
			err = TrailingTextError{Remaining: gp.sc.remaining()}
			return
		}
		gp.sc.skip(len(name) + 1)

		if len(gp.curr) == 0 {
			err = TooFewOutputsError{Label: name}
			return
		}
		out := gp.curr[0]
		gp.curr = gp.curr[1:]

		if in := gp.takeOpenInput(name); in != nil {
			gp.g.Links = append(gp.g.Links, Link{
				FromFilter: f.Index,
				FromPad:    out.Pad,
				ToFilter:   in.Filter,
				ToPad:      in.Pad,
			})
		} else {
			out.Name = name
			gp.openOutputs = append(gp.openOutputs, out)
		}
		gp.sc.skipWhitespace()
	}
	return
}
