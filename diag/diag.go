// Package diag collects the compiler's semantic diagnostics.
package diag

import (
	"fmt"
	"io"
	"sort"
)

// Diagnostic is one reported error.
type Diagnostic struct {
	Message string
	Line    int
	Column  int
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%d:%d: error: %s", d.Line, d.Column, d.Message)
}

// List accumulates diagnostics in the order they were reported. The zero
// List is ready to use.
type List struct {
	items []Diagnostic
}

// AddError records an error. It never fails, so the caller can keep going.
func (l *List) AddError(message string, line, column int) {
	l.items = append(l.items, Diagnostic{Message: message, Line: line, Column: column})
}

func (l *List) Len() int { return len(l.items) }

// Items returns the diagnostics in report order.
func (l *List) Items() []Diagnostic { return l.items }

// Sorted returns a copy ordered by position. Diagnostics at the same
// position keep report order.
func (l *List) Sorted() []Diagnostic {
	out := append([]Diagnostic(nil), l.items...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Line != out[j].Line {
			return out[i].Line < out[j].Line
		}
		return out[i].Column < out[j].Column
	})
	return out
}

// Fprint writes one diagnostic per line. At most limit diagnostics are
// written when limit > 0, followed by a count of the rest.
func Fprint(w io.Writer, items []Diagnostic, limit int) error {
	shown := items
	if limit > 0 && len(items) > limit {
		shown = items[:limit]
	}
	for _, d := range shown {
		if _, err := fmt.Fprintln(w, d); err != nil {
			return err
		}
	}
	if rest := len(items) - len(shown); rest > 0 {
		if _, err := fmt.Fprintf(w, "(%d more errors)\n", rest); err != nil {
			return err
		}
	}
	return nil
}
