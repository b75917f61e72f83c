package symtab

import "github.com/strager/smallc/ast"

// SymbolTable owns the scope tree and a cursor on the current scope.
// Scopes must be closed in the reverse order they were opened.
type SymbolTable struct {
	root    *Scope
	current *Scope
	sink    ErrorSink
}

type discard struct{}

func (discard) AddError(string, int, int) {}

// New creates a table with an unnamed root scope. Errors go to sink; a nil
// sink drops them.
func New(sink ErrorSink) *SymbolTable {
	if sink == nil {
		sink = discard{}
	}
	root := newScope(nil, "")
	return &SymbolTable{root: root, current: root, sink: sink}
}

func (t *SymbolTable) Root() *Scope    { return t.root }
func (t *SymbolTable) Current() *Scope { return t.current }

// OpenScope enters a new child of the current scope and returns it.
func (t *SymbolTable) OpenScope(name string) *Scope {
	t.current = t.current.addChild(name)
	return t.current
}

// CloseScope returns to the parent of the current scope.
//
// Panics if the current scope is the root.
func (t *SymbolTable) CloseScope() *Scope {
	if t.current.parent == nil {
		panic("symtab: CloseScope called on the root scope")
	}
	t.current = t.current.parent
	return t.current
}

// InsertVariable binds a declarator in the current scope.
func (t *SymbolTable) InsertVariable(d *ast.DeclaratorInitializer) bool {
	return t.current.Insert(NewVariableSymbol(d), t.sink)
}

// InsertParameter binds a parameter in the current scope.
func (t *SymbolTable) InsertParameter(p *ast.Parameter) bool {
	return t.current.Insert(NewParameterSymbol(p), t.sink)
}

// InsertFunction binds a function declaration or definition in the current
// scope.
func (t *SymbolTable) InsertFunction(fn ast.Function) bool {
	return t.current.Insert(NewFunctionSymbol(fn), t.sink)
}

// Resolve looks name up from the current scope outward. It returns nil if
// no enclosing scope binds name.
func (t *SymbolTable) Resolve(name string) Symbol {
	return t.current.Resolve(name)
}

// String renders the whole scope tree.
func (t *SymbolTable) String() string {
	return t.root.String()
}
