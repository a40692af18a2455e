package atlas

import (
	"fmt"
	"io"
)

// Entry names the contiguous slot range one group occupies.
type Entry struct {
	Name  string
	First int
	Count int
}

// Last returns the final slot of the entry. For an entry with no tiles it is
// First-1.
func (e Entry) Last() int {
	return e.First + e.Count - 1
}

// Span is the input to BuildIndex: a group name and the number of slots it
// claims.
type Span struct {
	Name  string
	Count int
}

// BuildIndex assigns slot ranges to spans in order, starting at slot 1.
func BuildIndex(spans []Span) []Entry {
	entries := make([]Entry, 0, len(spans))
	next := 1
	for _, s := range spans {
		entries = append(entries, Entry{Name: s.Name, First: next, Count: s.Count})
		next += s.Count
	}
	return entries
}

// WriteIndex prints the human-readable tile index map.
func WriteIndex(w io.Writer, entries []Entry) error {
	if _, err := fmt.Fprintln(w, "=== TILE INDEX MAP ==="); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, "(index 0 = empty, index 1 = first tile)"); err != nil {
		return err
	}
	for _, e := range entries {
		if _, err := fmt.Fprintf(w, "  %s: tiles %d..%d\n", e.Name, e.First, e.Last()); err != nil {
			return err
		}
	}
	return nil
}
