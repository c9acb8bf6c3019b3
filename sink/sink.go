// Package sink writes split segments to numbered destination files.
package sink

import (
	"fmt"
	"os"

	"csplit/lines"
	"csplit/splitter"
)

// Options is a set of options to initialize a FileSink.
type Options struct {
	// Source is the line source segments refer into.
	Source *lines.Source

	// Prefix is prepended to every destination name; it may carry a path.
	Prefix string

	// Digits is the width of the zero-padded numeric suffix.
	Digits int
}

// New initializes a FileSink.
func New(opts Options) *FileSink {
	return &FileSink{opts: opts}
}

// A FileSink persists non-suppressed segments as sequentially numbered
// files. Suppressed segments are discarded and consume no number.
type FileSink struct {
	opts  Options
	seq   int
	sizes []int64
	names []string
}

// Consume implements splitter.Sink. Files already created are kept when a
// later segment fails to write.
func (fs *FileSink) Consume(seg splitter.Segment) error {
	if seg.Suppressed {
		return nil
	}
	name := fmt.Sprintf("%v%0*d", fs.opts.Prefix, fs.opts.Digits, fs.seq)
	f, err := os.Create(name)
	if err != nil {
		return fmt.Errorf("create %v: %w", name, err)
	}
	n, err := fs.opts.Source.WriteRange(f, seg.From, seg.To)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("write %v: %w", name, err)
	}
	fs.seq++
	fs.sizes = append(fs.sizes, n)
	fs.names = append(fs.names, name)
	return nil
}

// Sizes returns the byte length of each destination in creation order.
func (fs *FileSink) Sizes() []int64 {
	return fs.sizes
}

// Names returns the destination paths in creation order.
func (fs *FileSink) Names() []string {
	return fs.names
}
