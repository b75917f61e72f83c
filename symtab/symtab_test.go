package symtab

import (
	"strings"
	"testing"

	"github.com/nalgeon/be"
	"github.com/strager/smallc/ast"
	"github.com/strager/smallc/ctype"
	"github.com/strager/smallc/diag"
)

func variable(typ ctype.Basic, name string, init ast.Expression) *ast.DeclaratorInitializer {
	decl := &ast.VariableDeclaration{Type: typ}
	d := &ast.DeclaratorInitializer{Identifier: name}
	ast.Attach(decl, d)
	if init != nil {
		ast.Attach(d, init)
	}
	return d
}

func params(types ...ctype.Basic) *ast.Parameters {
	list := &ast.Parameters{}
	for i, typ := range types {
		ast.Attach(list, &ast.Parameter{Type: typ, Identifier: string(rune('a' + i))})
	}
	return list
}

func declaration(ret ctype.Basic, name string, ps *ast.Parameters, line int) *ast.FunctionDeclaration {
	fn := &ast.FunctionDeclaration{Type: ret, Identifier: name}
	fn.SetPos(ast.Pos{Line: line, Column: 1})
	ast.Attach(fn, ps)
	return fn
}

func definition(ret ctype.Basic, name string, ps *ast.Parameters, line int) *ast.FunctionDefinition {
	fn := &ast.FunctionDefinition{Type: ret, Identifier: name}
	fn.SetPos(ast.Pos{Line: line, Column: 1})
	ast.Attach(fn, ps)
	ast.Attach(fn, &ast.Statements{})
	return fn
}

func TestNewSymbolTable(t *testing.T) {
	st := New(nil)
	be.True(t, st.Root() != nil)
	be.True(t, st.Current() == st.Root())
	be.Equal(t, st.Root().Len(), 0)
	be.True(t, st.Resolve("x") == nil)
}

func TestInsertVariable(t *testing.T) {
	var errs diag.List
	st := New(&errs)

	x := variable(ctype.Int, "x", nil)
	be.True(t, st.InsertVariable(x))
	be.Equal(t, errs.Len(), 0)

	sym := st.Resolve("x")
	be.True(t, sym != nil)
	be.Equal(t, sym.Name(), "x")
	be.Equal(t, sym.Type(), ast.Type(ctype.Int))
	be.True(t, sym.Node() == ast.Node(x))
	be.True(t, !sym.Defined())
}

func TestVariableDefinedWithInitializer(t *testing.T) {
	st := New(nil)
	st.InsertVariable(variable(ctype.Float, "f", &ast.FloatLiteral{Value: 1.5}))
	be.True(t, st.Resolve("f").Defined())
}

func TestInsertVariableDuplicate(t *testing.T) {
	var errs diag.List
	st := New(&errs)

	be.True(t, st.InsertVariable(variable(ctype.Int, "x", nil)))
	second := variable(ctype.Int, "x", nil)
	second.SetPos(ast.Pos{Line: 3, Column: 9})
	be.True(t, !st.InsertVariable(second))

	be.Equal(t, errs.Len(), 1)
	be.Equal(t, errs.Items()[0], diag.Diagnostic{
		Message: "identifier 'x' already taken by variable",
		Line:    3,
		Column:  9,
	})
}

func TestResolveEmptyName(t *testing.T) {
	st := New(nil)
	be.True(t, st.Resolve("") == nil)
	be.True(t, st.Root().Lookup("") == nil)
}

func TestShadowing(t *testing.T) {
	var errs diag.List
	st := New(&errs)

	outer := variable(ctype.Int, "x", nil)
	be.True(t, st.InsertVariable(outer))

	st.OpenScope("block")
	inner := variable(ctype.Char, "x", nil)
	be.True(t, st.InsertVariable(inner))
	be.Equal(t, errs.Len(), 0)
	be.True(t, st.Resolve("x").Node() == ast.Node(inner))

	st.CloseScope()
	be.True(t, st.Resolve("x").Node() == ast.Node(outer))
}

func TestDeepShadowing(t *testing.T) {
	var errs diag.List
	st := New(&errs)

	var decls []*ast.DeclaratorInitializer
	for depth := 0; depth < 4; depth++ {
		if depth > 0 {
			st.OpenScope("")
		}
		d := variable(ctype.Int, "x", nil)
		decls = append(decls, d)
		be.True(t, st.InsertVariable(d))
	}
	for depth := 3; depth >= 0; depth-- {
		be.True(t, st.Resolve("x").Node() == ast.Node(decls[depth]))
		if depth > 0 {
			st.CloseScope()
		}
	}
	be.Equal(t, errs.Len(), 0)
}

func TestResolveFindsOuterSymbols(t *testing.T) {
	st := New(nil)
	st.InsertFunction(declaration(ctype.Int, "f", params(), 1))
	st.OpenScope("main")
	st.OpenScope("")
	sym := st.Resolve("f")
	be.True(t, sym != nil)
	_, isFunc := sym.(*FunctionSymbol)
	be.True(t, isFunc)
	be.True(t, st.Current().Lookup("f") == nil)
}

func TestCloseRootScopePanics(t *testing.T) {
	st := New(nil)
	defer func() {
		r := recover()
		be.True(t, r != nil)
		be.Equal(t, r.(string), "symtab: CloseScope called on the root scope")
	}()
	st.CloseScope()
}

func TestParameterSymbol(t *testing.T) {
	st := New(nil)
	ps := params(ctype.Int)
	be.True(t, st.InsertParameter(ps.List()[0]))
	sym := st.Resolve("a")
	be.True(t, sym.Defined())
	be.Equal(t, sym.Type(), ast.Type(ctype.Int))
}

func TestScopeTreeString(t *testing.T) {
	st := New(nil)
	st.InsertFunction(definition(ctype.Int, "f", params(ctype.Int), 1))
	st.OpenScope("f")
	st.InsertParameter(&ast.Parameter{Type: ctype.Int, Identifier: "a"})
	st.OpenScope("")
	st.InsertVariable(variable(ctype.Char, "c", nil))
	st.CloseScope()
	st.CloseScope()
	st.OpenScope("main")
	st.CloseScope()

	want := "Scope:\n" +
		"    f: int\n" +
		"    Scope f:\n" +
		"        a: int\n" +
		"        Scope:\n" +
		"            c: char\n" +
		"    Scope main:\n"
	be.Equal(t, st.String(), want)
	be.Equal(t, len(st.Root().Children()), 2)
	be.Equal(t, st.Root().Children()[0].Name(), "f")
	be.True(t, st.Root().Children()[0].Parent() == st.Root())
}

func TestScopeOrderSurvivesSupersede(t *testing.T) {
	st := New(nil)
	st.InsertFunction(declaration(ctype.Int, "f", params(), 1))
	st.InsertVariable(variable(ctype.Int, "x", nil))
	st.InsertFunction(definition(ctype.Int, "f", params(), 2))
	be.Equal(t, st.Root().Names(), []string{"f", "x"})
	be.True(t, strings.HasPrefix(st.String(), "Scope:\n    f: int\n    x: int\n"))
}
