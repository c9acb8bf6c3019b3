// Package lines provides an indexed, re-readable view of line-oriented input.
package lines

import (
	"bufio"
	"bytes"
	"io"
)

// maxLine bounds the length of a single input line.
const maxLine = 16 << 20

// splitKeep is a bufio.SplitFunc that yields lines with their terminators
// intact; a final unterminated line is yielded as-is.
func splitKeep(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		return i + 1, data[:i+1], nil
	}
	if atEOF && len(data) > 0 {
		return len(data), data, nil
	}
	return 0, nil, nil
}

// A Source holds the whole input as indexed lines. Negative offsets and
// repeat detection revisit earlier positions, so the input is materialized
// rather than streamed.
type Source struct {
	lines [][]byte
	offs  []int64 // offs[i] is the byte offset of line i, offs[Len()] the total size
}

// ReadFrom materializes r into a Source, preserving line breaks verbatim.
func ReadFrom(r io.Reader) (*Source, error) {
	src := &Source{offs: []int64{0}}
	s := bufio.NewScanner(r)
	s.Buffer(nil, maxLine)
	s.Split(splitKeep)
	var off int64
	for s.Scan() {
		b := append([]byte(nil), s.Bytes()...)
		off += int64(len(b))
		src.lines = append(src.lines, b)
		src.offs = append(src.offs, off)
	}
	if err := s.Err(); err != nil {
		return nil, err
	}
	return src, nil
}

// Len returns the number of lines.
func (s *Source) Len() int {
	return len(s.lines)
}

// Line returns line i with its terminator.
func (s *Source) Line(i int) []byte {
	return s.lines[i]
}

// Text returns line i without its terminator, the form patterns match on.
func (s *Source) Text(i int) []byte {
	return bytes.TrimSuffix(s.lines[i], []byte("\n"))
}

// Size returns the byte length of the line range [from, to).
func (s *Source) Size(from, to int) int64 {
	return s.offs[to] - s.offs[from]
}

// WriteRange copies the line range [from, to) to w.
func (s *Source) WriteRange(w io.Writer, from, to int) (int64, error) {
	var n int64
	for i := from; i < to; i++ {
		m, err := w.Write(s.lines[i])
		n += int64(m)
		if err != nil {
			return n, err
		}
	}
	return n, nil
}
