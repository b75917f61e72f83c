package diag

import (
	"strings"
	"testing"

	"github.com/nalgeon/be"
)

func TestListKeepsReportOrder(t *testing.T) {
	var l List
	l.AddError("second", 5, 1)
	l.AddError("first", 2, 3)

	be.Equal(t, l.Len(), 2)
	be.Equal(t, l.Items()[0].Message, "second")
	be.Equal(t, l.Items()[1].Message, "first")
}

func TestSorted(t *testing.T) {
	var l List
	l.AddError("c", 3, 1)
	l.AddError("b", 1, 9)
	l.AddError("a", 1, 2)
	l.AddError("a2", 1, 2)

	sorted := l.Sorted()
	var messages []string
	for _, d := range sorted {
		messages = append(messages, d.Message)
	}
	be.Equal(t, messages, []string{"a", "a2", "b", "c"})
	be.Equal(t, l.Items()[0].Message, "c")
}

func TestFprint(t *testing.T) {
	items := []Diagnostic{
		{Message: "redefinition of function 'f'", Line: 4, Column: 1},
		{Message: "identifier 'x' already taken by variable", Line: 7, Column: 5},
		{Message: "identifier 'y' already taken by function", Line: 9, Column: 5},
	}

	var all strings.Builder
	be.Err(t, Fprint(&all, items, 0), nil)
	be.Equal(t, all.String(), "4:1: error: redefinition of function 'f'\n"+
		"7:5: error: identifier 'x' already taken by variable\n"+
		"9:5: error: identifier 'y' already taken by function\n")

	var limited strings.Builder
	be.Err(t, Fprint(&limited, items, 1), nil)
	be.Equal(t, limited.String(), "4:1: error: redefinition of function 'f'\n(2 more errors)\n")
}
