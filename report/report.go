// Package report prints the size of each created piece.
package report

import (
	"fmt"
	"io"
)

// Write prints one decimal byte count per piece in creation order, each
// followed by a blank line.
func Write(w io.Writer, sizes []int64) error {
	for _, n := range sizes {
		if _, err := fmt.Fprintf(w, "%d\n\n", n); err != nil {
			return err
		}
	}
	return nil
}
