// Package symtab implements the lexically scoped symbol table that checks
// declarations and definitions against each other.
package symtab

import "github.com/strager/smallc/ast"

// ErrorSink receives semantic errors. AddError must not fail; checking
// continues after every call.
type ErrorSink interface {
	AddError(message string, line, column int)
}

// Symbol is an identifier's binding in a scope. It is implemented by
// *VariableSymbol and *FunctionSymbol.
type Symbol interface {
	Name() string
	Type() ast.Type
	// Node is the AST node the symbol was created from.
	Node() ast.Node
	Defined() bool
	Pos() ast.Pos

	symbol()
}

// VariableSymbol binds a variable declarator or a function parameter.
type VariableSymbol struct {
	decl ast.Node
}

func NewVariableSymbol(d *ast.DeclaratorInitializer) *VariableSymbol {
	return &VariableSymbol{decl: d}
}

// NewParameterSymbol binds a parameter inside its function's scope.
func NewParameterSymbol(p *ast.Parameter) *VariableSymbol {
	return &VariableSymbol{decl: p}
}

func (v *VariableSymbol) Name() string {
	switch d := v.decl.(type) {
	case *ast.DeclaratorInitializer:
		return d.Identifier
	case *ast.Parameter:
		return d.Identifier
	}
	return ""
}

func (v *VariableSymbol) Type() ast.Type {
	switch d := v.decl.(type) {
	case *ast.DeclaratorInitializer:
		return d.Type()
	case *ast.Parameter:
		return d.Type
	}
	return nil
}

func (v *VariableSymbol) Node() ast.Node { return v.decl }
func (v *VariableSymbol) Pos() ast.Pos   { return v.decl.Pos() }

// Defined reports whether the declarator has an expression child.
// Parameters are always defined.
func (v *VariableSymbol) Defined() bool {
	if d, ok := v.decl.(*ast.DeclaratorInitializer); ok {
		return d.HasExpression()
	}
	return true
}

func (*VariableSymbol) symbol() {}

// FunctionSymbol binds a function declaration or definition.
type FunctionSymbol struct {
	fn ast.Function
}

func NewFunctionSymbol(fn ast.Function) *FunctionSymbol {
	return &FunctionSymbol{fn: fn}
}

func (f *FunctionSymbol) Function() ast.Function { return f.fn }
func (f *FunctionSymbol) Name() string           { return f.fn.Name() }
func (f *FunctionSymbol) Type() ast.Type         { return f.fn.ReturnType() }
func (f *FunctionSymbol) Node() ast.Node         { return f.fn }
func (f *FunctionSymbol) Pos() ast.Pos           { return f.fn.Pos() }

// Defined reports whether the function has a body.
func (f *FunctionSymbol) Defined() bool { return f.fn.IsDefinition() }

func (*FunctionSymbol) symbol() {}
