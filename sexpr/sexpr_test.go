package sexpr

import (
	"testing"

	"github.com/nalgeon/be"
)

func TestParseAtoms(t *testing.T) {
	tests := []struct {
		input    string
		expected NodeType
		text     string
	}{
		{"int", NodeSymbol, "int"},
		{"do-while", NodeSymbol, "do-while"},
		{"char*", NodeSymbol, "char*"},
		{`"stdio.h"`, NodeString, "stdio.h"},
		{"42", NodeInteger, "42"},
		{"-7", NodeInteger, "-7"},
		{"1.5", NodeFloat, "1.5"},
		{"-0.25", NodeFloat, "-0.25"},
		{"+", NodeSymbol, "+"},
	}

	for _, test := range tests {
		t.Run(test.input, func(t *testing.T) {
			node, err := Parse(test.input)
			be.Err(t, err, nil)
			be.Equal(t, node.Type, test.expected)
			be.Equal(t, node.Text, test.text)
		})
	}
}

func TestParseList(t *testing.T) {
	node, err := Parse(`(binary "+" (int 1) (variable "x"))`)
	be.Err(t, err, nil)
	be.Equal(t, node.Type, NodeList)
	be.Equal(t, node.Head(), "binary")
	be.Equal(t, len(node.Args()), 3)
	be.Equal(t, node.Args()[1].Head(), "int")
	be.Equal(t, node.String(), `(binary "+" (int 1) (variable "x"))`)
}

func TestParseMetadata(t *testing.T) {
	node, err := Parse(`(declaration ^{line: 3, column: 5} int "f" ^{line: 4})`)
	be.Err(t, err, nil)
	be.Equal(t, node.MetaKeys, []string{"line", "column"})
	line, err := node.Meta("line").Int()
	be.Err(t, err, nil)
	be.Equal(t, line, int64(4))
	be.True(t, node.Meta("const") == nil)
	be.Equal(t, len(node.Args()), 2)
	be.Equal(t, node.String(), `(declaration ^{line: 4, column: 5} int "f")`)
}

func TestStringRoundTrip(t *testing.T) {
	inputs := []string{
		`(declaration ^{line: 4, column: 5} int "f")`,
		`(parameter ^{const: true, array: true, length: 4} char "buf")`,
		`(var int (declarator ^{array: true} "xs" (int 3)) (declarator "y"))`,
		`(header ["stdio.h"] [])`,
		`(^{line: 1})`,
		`()`,
	}
	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			node, err := Parse(input)
			be.Err(t, err, nil)
			be.Equal(t, node.String(), input)

			again, err := Parse(node.String())
			be.Err(t, err, nil)
			be.Equal(t, again.String(), node.String())
		})
	}
}

func TestParseArray(t *testing.T) {
	node, err := Parse(`(header ["stdio.h" "stdlib.h"] [])`)
	be.Err(t, err, nil)
	be.Equal(t, node.Args()[0].Type, NodeArray)
	be.Equal(t, len(node.Args()[0].Items), 2)
	be.Equal(t, len(node.Args()[1].Items), 0)
	be.Equal(t, node.String(), `(header ["stdio.h" "stdlib.h"] [])`)
}

func TestParsePositions(t *testing.T) {
	node, err := Parse("(program\n  (functions))")
	be.Err(t, err, nil)
	be.Equal(t, node.Line, 1)
	be.Equal(t, node.Column, 1)
	inner := node.Args()[0]
	be.Equal(t, inner.Line, 2)
	be.Equal(t, inner.Column, 3)
}

func TestParseComments(t *testing.T) {
	node, err := Parse("; leading comment\n(statements ; trailing\n)")
	be.Err(t, err, nil)
	be.Equal(t, node.Head(), "statements")
}

func TestParseStringEscapes(t *testing.T) {
	node, err := Parse(`"a\"b\\c\n"`)
	be.Err(t, err, nil)
	be.Equal(t, node.Text, "a\"b\\c\n")
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		input   string
		message string
	}{
		{"(int 1", "line 1, column 7: expected ')' but got EOF"},
		{"(a) (b)", "line 1, column 5: expected EOF but got '('"},
		{"(a @)", "line 1, column 4: unexpected character '@'"},
		{`"open`, "line 1, column 1: unterminated string"},
		{"(a ^[1])", "line 1, column 5: expected '{' after '^' but got '['"},
		{"{1: 2}", "line 1, column 2: expected symbol for map key but got integer"},
	}

	for _, test := range tests {
		t.Run(test.input, func(t *testing.T) {
			_, err := Parse(test.input)
			be.True(t, err != nil)
			be.Equal(t, err.Error(), test.message)
		})
	}
}

func TestErrorf(t *testing.T) {
	node, err := Parse("\n  (bogus)")
	be.Err(t, err, nil)
	be.Equal(t, node.Errorf("unknown form '%s'", node.Head()).Error(), "line 2, column 3: unknown form 'bogus'")
}
