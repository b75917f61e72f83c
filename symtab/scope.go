package symtab

import (
	"fmt"
	"strings"

	"github.com/strager/smallc/ast"
)

// Scope is a lexical region owning a name to symbol mapping.
type Scope struct {
	name     string
	parent   *Scope
	children []*Scope
	symbols  map[string]Symbol
	order    []string
}

func newScope(parent *Scope, name string) *Scope {
	return &Scope{name: name, parent: parent, symbols: make(map[string]Symbol)}
}

// Name is empty for unnamed scopes.
func (s *Scope) Name() string       { return s.name }
func (s *Scope) Parent() *Scope     { return s.parent }
func (s *Scope) Children() []*Scope { return s.children }
func (s *Scope) Len() int           { return len(s.order) }

// Names lists the scope's identifiers in first-insertion order.
func (s *Scope) Names() []string { return s.order }

func (s *Scope) addChild(name string) *Scope {
	child := newScope(s, name)
	s.children = append(s.children, child)
	return child
}

// Lookup finds name in this scope only.
func (s *Scope) Lookup(name string) Symbol {
	if name == "" {
		return nil
	}
	return s.symbols[name]
}

// Resolve finds name in this scope or the nearest enclosing scope that has
// it.
func (s *Scope) Resolve(name string) Symbol {
	for scope := s; scope != nil; scope = scope.parent {
		if sym := scope.Lookup(name); sym != nil {
			return sym
		}
	}
	return nil
}

// Insert adds sym unless it conflicts with an existing binding of the same
// name in this scope. Conflicts are reported to sink, except for a
// repeated declaration matching what is already there, which is dropped
// silently. Insert reports whether sym was stored.
func (s *Scope) Insert(sym Symbol, sink ErrorSink) bool {
	if sink == nil {
		sink = discard{}
	}
	name := sym.Name()
	old, exists := s.symbols[name]
	if !exists {
		s.symbols[name] = sym
		s.order = append(s.order, name)
		return true
	}
	if !s.allowed(sym, old, sink) {
		return false
	}
	s.symbols[name] = sym
	return true
}

// allowed decides whether sym may replace old.
func (s *Scope) allowed(sym, old Symbol, sink ErrorSink) bool {
	report := func(format string, args ...any) bool {
		pos := sym.Pos()
		sink.AddError(fmt.Sprintf(format, args...), pos.Line, pos.Column)
		return false
	}

	if _, ok := old.(*VariableSymbol); ok {
		return report("identifier '%s' already taken by variable", old.Name())
	}
	fn, ok := sym.(*FunctionSymbol)
	if !ok {
		return report("identifier '%s' already taken by function", old.Name())
	}
	prev := old.(*FunctionSymbol)

	sameParams := prev.fn.Parameters().SameSignature(fn.fn.Parameters())
	sameReturn := compatible(prev.Type(), fn.Type())

	switch {
	case fn.Defined() && !prev.Defined():
		if sameParams {
			return true
		}
		return report("function definition parameters don't match previous declaration of '%s'", fn.Name())
	case fn.Defined():
		if !sameReturn {
			return report("conflicting types for function definition '%s'", fn.Name())
		}
		return report("redefinition of function '%s'", fn.Name())
	case prev.Defined():
		if !sameReturn {
			return report("conflicting types for function declaration '%s'", fn.Name())
		}
		if sameParams {
			return false
		}
		return report("function declaration parameters don't match previous definition of '%s'", fn.Name())
	default:
		if sameParams {
			return false
		}
		return report("function declaration parameters don't match previous declaration of '%s'", fn.Name())
	}
}

func compatible(a, b ast.Type) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.IsCompatible(b)
}

// format writes the scope tree starting at the given level.
func (s *Scope) format(sb *strings.Builder, level int) {
	indent := strings.Repeat("    ", level)
	sb.WriteString(indent + "Scope")
	if s.name != "" {
		sb.WriteString(" " + s.name)
	}
	sb.WriteString(":\n")
	for _, name := range s.order {
		typ := ""
		if t := s.symbols[name].Type(); t != nil {
			typ = t.String()
		}
		sb.WriteString(indent + "    " + name + ": " + typ + "\n")
	}
	for _, child := range s.children {
		child.format(sb, level+1)
	}
}

func (s *Scope) String() string {
	var sb strings.Builder
	s.format(&sb, 0)
	return sb.String()
}
