package symtab

import (
	"strings"
	"testing"

	"github.com/nalgeon/be"
	"github.com/strager/smallc/ast"
	"github.com/strager/smallc/ctype"
	"github.com/strager/smallc/diag"
)

func TestDeclarationThenMatchingDefinition(t *testing.T) {
	var errs diag.List
	st := New(&errs)

	be.True(t, st.InsertFunction(declaration(ctype.Int, "f", params(ctype.Int), 1)))
	def := definition(ctype.Int, "f", params(ctype.Int), 5)
	be.True(t, st.InsertFunction(def))

	be.Equal(t, errs.Len(), 0)
	sym := st.Root().Lookup("f")
	be.True(t, sym.Node() == ast.Node(def))
	be.True(t, sym.Defined())
	be.Equal(t, st.Root().Len(), 1)
}

func TestDeclarationThenMismatchedDefinition(t *testing.T) {
	var errs diag.List
	st := New(&errs)

	decl := declaration(ctype.Int, "f", params(ctype.Int), 1)
	st.InsertFunction(decl)
	be.True(t, !st.InsertFunction(definition(ctype.Int, "f", params(ctype.Float), 5)))

	be.Equal(t, errs.Len(), 1)
	d := errs.Items()[0]
	be.True(t, strings.Contains(d.Message, "parameters don't match previous declaration"))
	be.Equal(t, d.Line, 5)
	be.True(t, st.Root().Lookup("f").Node() == ast.Node(decl))
}

func TestDoubleDefinition(t *testing.T) {
	var errs diag.List
	st := New(&errs)

	first := definition(ctype.Int, "f", params(), 1)
	st.InsertFunction(first)
	be.True(t, !st.InsertFunction(definition(ctype.Int, "f", params(), 4)))
	be.True(t, !st.InsertFunction(definition(ctype.Float, "f", params(), 8)))

	be.Equal(t, errs.Len(), 2)
	be.Equal(t, errs.Items()[0].Message, "redefinition of function 'f'")
	be.Equal(t, errs.Items()[0].Line, 4)
	be.Equal(t, errs.Items()[1].Message, "conflicting types for function definition 'f'")
	be.Equal(t, errs.Items()[1].Line, 8)
	be.True(t, st.Root().Lookup("f").Node() == ast.Node(first))
}

func TestDeclarationAfterDefinition(t *testing.T) {
	tests := []struct {
		name    string
		ret     ctype.Basic
		params  []ctype.Basic
		message string
	}{
		{"matching", ctype.Int, []ctype.Basic{ctype.Int}, ""},
		{"conflicting return type", ctype.Char, []ctype.Basic{ctype.Int}, "conflicting types for function declaration 'f'"},
		{"conflicting return type wins over parameters", ctype.Char, nil, "conflicting types for function declaration 'f'"},
		{"mismatched parameters", ctype.Int, []ctype.Basic{ctype.Int, ctype.Int}, "function declaration parameters don't match previous definition of 'f'"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			var errs diag.List
			st := New(&errs)
			def := definition(ctype.Int, "f", params(ctype.Int), 1)
			st.InsertFunction(def)

			be.True(t, !st.InsertFunction(declaration(test.ret, "f", params(test.params...), 3)))
			be.True(t, st.Root().Lookup("f").Node() == ast.Node(def))
			if test.message == "" {
				be.Equal(t, errs.Len(), 0)
				return
			}
			be.Equal(t, errs.Len(), 1)
			be.Equal(t, errs.Items()[0].Message, test.message)
		})
	}
}

func TestIdempotentRedeclaration(t *testing.T) {
	var errs diag.List
	st := New(&errs)

	first := declaration(ctype.Void, "g", params(ctype.Char), 1)
	be.True(t, st.InsertFunction(first))
	be.True(t, !st.InsertFunction(declaration(ctype.Void, "g", params(ctype.Char), 2)))

	be.Equal(t, errs.Len(), 0)
	be.Equal(t, st.Root().Len(), 1)
	be.True(t, st.Root().Lookup("g").Node() == ast.Node(first))
}

func TestRedeclarationWithDifferentParameters(t *testing.T) {
	var errs diag.List
	st := New(&errs)

	st.InsertFunction(declaration(ctype.Void, "g", params(ctype.Char), 1))
	be.True(t, !st.InsertFunction(declaration(ctype.Void, "g", params(), 2)))

	be.Equal(t, errs.Len(), 1)
	be.Equal(t, errs.Items()[0].Message, "function declaration parameters don't match previous declaration of 'g'")
}

func TestRedeclarationIgnoresParameterNames(t *testing.T) {
	var errs diag.List
	st := New(&errs)

	a := &ast.Parameters{}
	ast.Attach(a, &ast.Parameter{Type: ctype.Int, Identifier: "count"})
	b := &ast.Parameters{}
	ast.Attach(b, &ast.Parameter{Type: ctype.Int, Identifier: "n"})

	st.InsertFunction(declaration(ctype.Int, "h", a, 1))
	be.True(t, st.InsertFunction(definition(ctype.Int, "h", b, 2)))
	be.Equal(t, errs.Len(), 0)
}

func TestVariablePrecedence(t *testing.T) {
	var errs diag.List
	st := New(&errs)

	st.InsertVariable(variable(ctype.Int, "x", nil))
	be.True(t, !st.InsertFunction(declaration(ctype.Int, "x", params(), 2)))
	be.True(t, !st.InsertFunction(definition(ctype.Int, "x", params(), 3)))

	be.Equal(t, errs.Len(), 2)
	for _, d := range errs.Items() {
		be.Equal(t, d.Message, "identifier 'x' already taken by variable")
	}
	_, isVar := st.Root().Lookup("x").(*VariableSymbol)
	be.True(t, isVar)
}

func TestVariableAfterFunction(t *testing.T) {
	var errs diag.List
	st := New(&errs)

	st.InsertFunction(declaration(ctype.Int, "f", params(), 1))
	v := variable(ctype.Int, "f", nil)
	v.SetPos(ast.Pos{Line: 6, Column: 2})
	be.True(t, !st.InsertVariable(v))

	be.Equal(t, errs.Items(), []diag.Diagnostic{
		{Message: "identifier 'f' already taken by function", Line: 6, Column: 2},
	})
}

func TestConflictsOnlyWithinOneScope(t *testing.T) {
	var errs diag.List
	st := New(&errs)

	st.InsertFunction(definition(ctype.Int, "f", params(), 1))
	st.OpenScope("main")
	be.True(t, st.InsertVariable(variable(ctype.Int, "f", nil)))
	st.OpenScope("")
	be.True(t, st.InsertFunction(definition(ctype.Float, "f", params(ctype.Int), 4)))
	be.Equal(t, errs.Len(), 0)
}

func TestErrorsAccumulate(t *testing.T) {
	var errs diag.List
	st := New(&errs)

	st.InsertVariable(variable(ctype.Int, "x", nil))
	st.InsertVariable(variable(ctype.Int, "x", nil))
	st.InsertFunction(definition(ctype.Int, "f", params(), 1))
	st.InsertFunction(definition(ctype.Int, "f", params(), 2))
	st.InsertVariable(variable(ctype.Int, "y", nil))

	be.Equal(t, errs.Len(), 2)
	be.True(t, st.Resolve("y") != nil)
}
