package sink

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kylelemons/godebug/pretty"

	"csplit/lines"
	"csplit/splitter"
)

func mustRead(t *testing.T, s string) *lines.Source {
	t.Helper()
	src, err := lines.ReadFrom(strings.NewReader(s))
	if err != nil {
		t.Fatalf("lines.ReadFrom() error = %v", err)
	}
	return src
}

func TestConsume(t *testing.T) {
	src := mustRead(t, "aa\nbb\ncc\ndd\n")
	fs := New(Options{Source: src, Prefix: filepath.Join(t.TempDir(), "xx"), Digits: 2})
	segs := []splitter.Segment{
		{From: 0, To: 1},
		{From: 1, To: 3, Suppressed: true},
		{From: 3, To: 4},
	}
	for _, seg := range segs {
		if err := fs.Consume(seg); err != nil {
			t.Fatalf("Consume(%+v) error = %v", seg, err)
		}
	}
	if diff := pretty.Compare(fs.Sizes(), []int64{3, 3}); diff != "" {
		t.Errorf("Sizes() -got +want:\n%v", diff)
	}
	// Suppressed segments consume no number.
	var got []string
	for _, name := range fs.Names() {
		b, err := os.ReadFile(name)
		if err != nil {
			t.Fatalf("ReadFile(%v) error = %v", name, err)
		}
		got = append(got, fmt.Sprintf("%v:%s", filepath.Base(name), b))
	}
	want := []string{"xx00:aa\n", "xx01:dd\n"}
	if diff := pretty.Compare(got, want); diff != "" {
		t.Errorf("Consume() -got +want:\n%v", diff)
	}
}

func TestConsumeEmptySegment(t *testing.T) {
	src := mustRead(t, "aa\n")
	fs := New(Options{Source: src, Prefix: filepath.Join(t.TempDir(), "xx"), Digits: 2})
	if err := fs.Consume(splitter.Segment{}); err != nil {
		t.Fatalf("Consume() error = %v", err)
	}
	if diff := pretty.Compare(fs.Sizes(), []int64{0}); diff != "" {
		t.Errorf("Sizes() -got +want:\n%v", diff)
	}
}

func TestDigits(t *testing.T) {
	src := mustRead(t, "aa\nbb\n")
	fs := New(Options{Source: src, Prefix: filepath.Join(t.TempDir(), "piece."), Digits: 3})
	for _, seg := range []splitter.Segment{{From: 0, To: 1}, {From: 1, To: 2}} {
		if err := fs.Consume(seg); err != nil {
			t.Fatalf("Consume(%+v) error = %v", seg, err)
		}
	}
	var got []string
	for _, name := range fs.Names() {
		got = append(got, filepath.Base(name))
	}
	if diff := pretty.Compare(got, []string{"piece.000", "piece.001"}); diff != "" {
		t.Errorf("Names() -got +want:\n%v", diff)
	}
}

func TestConsumeCreateError(t *testing.T) {
	src := mustRead(t, "aa\n")
	fs := New(Options{Source: src, Prefix: filepath.Join(t.TempDir(), "missing", "xx"), Digits: 2})
	if err := fs.Consume(splitter.Segment{From: 0, To: 1}); err == nil {
		t.Error("Consume() error = nil")
	}
	if len(fs.Sizes()) != 0 {
		t.Errorf("Sizes() = %v, want empty", fs.Sizes())
	}
}
