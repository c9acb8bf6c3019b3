// csplit splits a file into pieces determined by pattern operands.
//
// Usage:
//   $ csplit [-s] [-f prefix] [-n digits] file operand...
//
// Operands are absolute line numbers, /regexp/ or %regexp% patterns with
// optional signed line offsets, and {count} or {*} repetitions of the
// preceding operand.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"csplit/lines"
	"csplit/pattern"
	"csplit/report"
	"csplit/sink"
	"csplit/splitter"
)

var (
	prefix string
	digits int
	quiet  bool
)

var rootCmd = &cobra.Command{
	Use:   "csplit file operand...",
	Short: "Split a file into pieces determined by context lines",
	Long: `csplit reads a file (or standard input when file is -) and splits it into
numbered pieces named by a prefix and a zero-padded suffix. Operands are
absolute line numbers, /regexp/ or %regexp% patterns with optional line
offsets, and {count} or {*} repetitions. Pieces made by a %regexp% operand
are discarded and consume no number.`,
	Args:          cobra.MinimumNArgs(2),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(args[0], args[1:], cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.Flags().StringVarP(&prefix, "prefix", "f", "xx", "prefix for created pieces")
	rootCmd.Flags().IntVarP(&digits, "digits", "n", 2, "width of the numeric suffix on created pieces")
	rootCmd.Flags().BoolVarP(&quiet, "quiet", "s", false, "suppress the size report")
}

func openInput(name string) (io.ReadCloser, error) {
	if name == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	return os.Open(name)
}

// run splits the named input under the given operands, writing the size
// report to out. Pieces created before a failure are left in place.
func run(name string, operands []string, out io.Writer) error {
	pats, err := pattern.Parse(operands)
	if err != nil {
		return err
	}
	r, err := openInput(name)
	if err != nil {
		return err
	}
	defer r.Close()
	src, err := lines.ReadFrom(r)
	if err != nil {
		return err
	}
	fs := sink.New(sink.Options{Source: src, Prefix: prefix, Digits: digits})
	c := splitter.New(splitter.Options{Source: src, Patterns: pats})
	if err := c.Run(fs); err != nil {
		return err
	}
	if quiet {
		return nil
	}
	return report.Write(out, fs.Sizes())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "csplit:", err)
		os.Exit(1)
	}
}
