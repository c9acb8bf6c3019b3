// Package pattern parses csplit operands into split directives.
package pattern

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ErrInvalidPattern is returned for operands that cannot be parsed.
var ErrInvalidPattern = errors.New("invalid pattern")

// A Pattern is one parsed split directive.
type Pattern interface {
	fmt.Stringer
	isPattern()
}

// A LineNum cuts immediately before an absolute 1-based line number.
type LineNum struct {
	N int
}

func (LineNum) isPattern() {}

func (p LineNum) String() string {
	return strconv.Itoa(p.N)
}

// A Match cuts at the next line matching RE, shifted by Offset lines.
// If Suppress is set the resulting segment is discarded instead of written.
type Match struct {
	RE       *regexp.Regexp
	Offset   int
	Suppress bool
}

func (Match) isPattern() {}

func (p Match) String() string {
	d := "/"
	if p.Suppress {
		d = "%"
	}
	if p.Offset == 0 {
		return d + p.RE.String() + d
	}
	return fmt.Sprintf("%v%v%v%+d", d, p.RE.String(), d, p.Offset)
}

// A Repeat re-applies the directive immediately preceding it, either Count
// additional times or, if Unbounded, until the cut stops advancing or the
// input runs out.
type Repeat struct {
	Count     int
	Unbounded bool
}

func (Repeat) isPattern() {}

func (p Repeat) String() string {
	if p.Unbounded {
		return "{*}"
	}
	return fmt.Sprintf("{%d}", p.Count)
}

// Parse converts operand strings into an ordered Pattern list.
// Line numbers must be positive and strictly increasing relative to earlier
// line numbers; a repetition must follow a line number or regexp directive.
func Parse(args []string) ([]Pattern, error) {
	var (
		pats    []Pattern
		lastNum int
	)
	for _, arg := range args {
		p, err := parseOne(arg)
		if err != nil {
			return nil, err
		}
		switch p := p.(type) {
		case LineNum:
			if p.N <= lastNum {
				return nil, fmt.Errorf("%w: line number %q not greater than %v", ErrInvalidPattern, arg, lastNum)
			}
			lastNum = p.N
		case Repeat:
			if len(pats) == 0 {
				return nil, fmt.Errorf("%w: %q has no pattern to repeat", ErrInvalidPattern, arg)
			}
			if _, ok := pats[len(pats)-1].(Repeat); ok {
				return nil, fmt.Errorf("%w: %q follows another repetition", ErrInvalidPattern, arg)
			}
		}
		pats = append(pats, p)
	}
	return pats, nil
}

func parseOne(s string) (Pattern, error) {
	switch {
	case s == "":
		return nil, fmt.Errorf("%w: empty operand", ErrInvalidPattern)
	case s[0] == '/' || s[0] == '%':
		return parseMatch(s)
	case s[0] == '{':
		return parseRepeat(s)
	default:
		n, err := strconv.Atoi(s)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidPattern, s)
		}
		if n <= 0 {
			return nil, fmt.Errorf("%w: line number %q must be positive", ErrInvalidPattern, s)
		}
		return LineNum{N: n}, nil
	}
}

func parseMatch(s string) (Pattern, error) {
	delim := s[0]
	end := strings.LastIndexByte(s, delim)
	if end == 0 {
		return nil, fmt.Errorf("%w: %q has no closing %q", ErrInvalidPattern, s, string(delim))
	}
	re, err := regexp.Compile(s[1:end])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPattern, err)
	}
	var off int
	if rest := s[end+1:]; rest != "" {
		if off, err = strconv.Atoi(rest); err != nil {
			return nil, fmt.Errorf("%w: bad offset in %q", ErrInvalidPattern, s)
		}
	}
	return Match{RE: re, Offset: off, Suppress: delim == '%'}, nil
}

func parseRepeat(s string) (Pattern, error) {
	if len(s) < 3 || s[len(s)-1] != '}' {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPattern, s)
	}
	inner := s[1 : len(s)-1]
	if inner == "*" {
		return Repeat{Unbounded: true}, nil
	}
	n, err := strconv.Atoi(inner)
	if err != nil || n < 1 {
		return nil, fmt.Errorf("%w: bad repetition count %q", ErrInvalidPattern, s)
	}
	return Repeat{Count: n}, nil
}
