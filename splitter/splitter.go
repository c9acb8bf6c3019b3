// Package splitter implements the pattern-driven split engine.
//
// A Cursor walks the line source under an ordered pattern list, resolving
// cut points and emitting the segments between them to a Sink. Cut points
// never move backward; an offset that would land before the previous cut
// clamps to it.
package splitter

import (
	"regexp"

	"csplit/lines"
	"csplit/pattern"
)

// A Segment is the run of input lines [From, To) between two cut points.
// Suppressed segments advance the cursor but are discarded by the sink.
type Segment struct {
	From, To   int
	Suppressed bool
}

// A Sink consumes segments in emission order.
type Sink interface {
	Consume(Segment) error
}

// Options is a set of options to initialize a Cursor.
type Options struct {
	// Source is the input to split.
	Source *lines.Source

	// Patterns is the ordered list of split directives.
	Patterns []pattern.Pattern
}

// New initializes a Cursor.
func New(opts Options) *Cursor {
	return &Cursor{src: opts.Source, pats: opts.Patterns}
}

// A Cursor is the stateful engine of one split run.
type Cursor struct {
	src  *lines.Source
	pats []pattern.Pattern

	prevCut   int // index of the last resolved cut
	searchPos int // next line index pattern scans may consider
}

// Run applies every pattern in order, then emits the remaining input as a
// final segment. Patterns past a failed match are abandoned, not errors.
func (c *Cursor) Run(sink Sink) error {
	end := c.src.Len()
	if end == 0 {
		return nil
	}
	for i := 0; i < len(c.pats); i++ {
		var rep pattern.Repeat
		if i+1 < len(c.pats) {
			if r, ok := c.pats[i+1].(pattern.Repeat); ok {
				rep = r
			}
		}
		var abandoned bool
		var err error
		switch p := c.pats[i].(type) {
		case pattern.LineNum:
			abandoned, err = c.applyLine(p, rep, sink)
		case pattern.Match:
			abandoned, err = c.applyMatch(p, rep, sink)
		default:
			// A Repeat, consumed by the directive before it.
			continue
		}
		if err != nil {
			return err
		}
		if abandoned {
			break
		}
	}
	if c.prevCut < end {
		if err := sink.Consume(Segment{From: c.prevCut, To: end}); err != nil {
			return err
		}
		c.prevCut = end
	}
	return nil
}

// applyLine cuts before absolute line p.N, then before 2N, 3N, … for each
// repetition. A target at or past end of input abandons the rest of the
// pattern list.
func (c *Cursor) applyLine(p pattern.LineNum, rep pattern.Repeat, sink Sink) (bool, error) {
	end := c.src.Len()
	for k := 0; rep.Unbounded || k <= rep.Count; k++ {
		target := (k+1)*p.N - 1
		if target >= end {
			return true, nil
		}
		if target < c.prevCut {
			target = c.prevCut
		}
		if err := sink.Consume(Segment{From: c.prevCut, To: target}); err != nil {
			return false, err
		}
		c.prevCut = target
		if c.searchPos < target {
			c.searchPos = target
		}
	}
	return false, nil
}

// applyMatch scans forward for p.RE, emitting one segment per application.
// Under an unbounded repeat a stalled cut emits nothing, and consecutive
// stalls end the repeat instead of rescanning the same context forever.
func (c *Cursor) applyMatch(p pattern.Match, rep pattern.Repeat, sink Sink) (bool, error) {
	end := c.src.Len()
	var g guard
	for k := 0; rep.Unbounded || k <= rep.Count; k++ {
		m := c.find(p.RE)
		if m < 0 {
			return true, nil
		}
		cut := m + p.Offset
		if cut > end {
			cut = end
		}
		if cut < c.prevCut {
			cut = c.prevCut
		}
		// The scan never moves backward: the next application starts past
		// the matched line or at the cut, whichever is further.
		if c.searchPos < m+1 {
			c.searchPos = m + 1
		}
		if c.searchPos < cut {
			c.searchPos = cut
		}
		if cut == c.prevCut && rep.Unbounded {
			if g.stall() {
				return true, nil
			}
			continue
		}
		g.advance()
		if err := sink.Consume(Segment{From: c.prevCut, To: cut, Suppressed: p.Suppress}); err != nil {
			return false, err
		}
		c.prevCut = cut
	}
	return false, nil
}

// find returns the index of the next line at or after the scan position
// matching re, or -1.
func (c *Cursor) find(re *regexp.Regexp) int {
	for i := c.searchPos; i < c.src.Len(); i++ {
		if re.Match(c.src.Text(i)) {
			return i
		}
	}
	return -1
}

// graceStalls is how many consecutive non-progressing attempts an unbounded
// repeat gets before it is cut off.
const graceStalls = 2

// A guard detects unbounded repeats that stop advancing the cut.
type guard struct {
	stalls int
}

func (g *guard) advance() {
	g.stalls = 0
}

// stall records a non-progressing attempt and reports whether the repeat
// must terminate.
func (g *guard) stall() bool {
	g.stalls++
	return g.stalls >= graceStalls
}
