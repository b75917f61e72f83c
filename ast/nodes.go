package ast

// find returns the first child of n with dynamic type T.
func find[T Node](n Node) T {
	var zero T
	for _, child := range n.Children() {
		if c, ok := child.(T); ok {
			return c
		}
	}
	return zero
}

// expressions returns the expression children of n in order.
func expressions(n Node) []Expression {
	var exprs []Expression
	for _, child := range n.Children() {
		if e, ok := child.(Expression); ok {
			exprs = append(exprs, e)
		}
	}
	return exprs
}

// Program is the root: an optional Header followed by Functions.
type Program struct {
	node
	branch
}

func (*Program) Kind() Kind { return KindProgram }

// Header returns the include header, or nil.
func (p *Program) Header() *Header { return find[*Header](p) }

func (p *Program) Functions() *Functions { return find[*Functions](p) }

// Header lists the program's includes.
type Header struct {
	node
	branch
	StdIncludes    []string
	CustomIncludes []string
}

func (*Header) Kind() Kind { return KindHeader }

// Include is a single #include line. Standard is true for <...> includes.
type Include struct {
	node
	leaf
	Name     string
	Standard bool
}

func (*Include) Kind() Kind { return KindInclude }

// Functions holds the top-level function declarations and definitions.
type Functions struct {
	node
	branch
}

func (*Functions) Kind() Kind { return KindFunctions }

// Function is implemented by *FunctionDeclaration and *FunctionDefinition.
type Function interface {
	Node
	Name() string
	ReturnType() Type
	Parameters() *Parameters
	IsDefinition() bool
}

// MainFunction is the program entry point.
type MainFunction struct {
	node
	branch
}

func (*MainFunction) Kind() Kind { return KindMainFunction }

func (m *MainFunction) Parameters() *Parameters { return find[*Parameters](m) }
func (m *MainFunction) Statements() *Statements { return find[*Statements](m) }

// FunctionDeclaration is a prototype without a body.
type FunctionDeclaration struct {
	node
	branch
	Type       Type
	Identifier string
}

func (*FunctionDeclaration) Kind() Kind                { return KindFunctionDeclaration }
func (f *FunctionDeclaration) Name() string            { return f.Identifier }
func (f *FunctionDeclaration) ReturnType() Type        { return f.Type }
func (f *FunctionDeclaration) Parameters() *Parameters { return find[*Parameters](f) }
func (*FunctionDeclaration) IsDefinition() bool        { return false }

// FunctionDefinition is a function with a body.
type FunctionDefinition struct {
	node
	branch
	Type       Type
	Identifier string
}

func (*FunctionDefinition) Kind() Kind                { return KindFunctionDefinition }
func (f *FunctionDefinition) Name() string            { return f.Identifier }
func (f *FunctionDefinition) ReturnType() Type        { return f.Type }
func (f *FunctionDefinition) Parameters() *Parameters { return find[*Parameters](f) }
func (f *FunctionDefinition) Statements() *Statements { return find[*Statements](f) }
func (*FunctionDefinition) IsDefinition() bool        { return true }

// Parameter is one formal parameter. ArrayLength is 0 when the parameter is
// not an array or its length was omitted.
type Parameter struct {
	node
	leaf
	Type         Type
	Identifier   string
	IsArray      bool
	ArrayLength  int
	Constant     bool
	Indirections int
}

func (*Parameter) Kind() Kind { return KindParameter }

// SetArray marks the parameter as an array. A length <= 0 means the length
// was omitted.
func (p *Parameter) SetArray(length int) {
	p.IsArray = true
	if length > 0 {
		p.ArrayLength = length
	}
}

// SameSignature reports whether p and q are interchangeable in a function
// signature. Identifiers are ignored.
func (p *Parameter) SameSignature(q *Parameter) bool {
	return sameType(p.Type, q.Type) &&
		p.Indirections == q.Indirections &&
		p.IsArray == q.IsArray &&
		p.Constant == q.Constant
}

func sameType(a, b Type) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.String() == b.String()
}

type Parameters struct {
	node
	branch
}

func (*Parameters) Kind() Kind { return KindParameters }

// List returns the Parameter children in order.
func (p *Parameters) List() []*Parameter {
	var params []*Parameter
	for _, child := range p.children {
		if param, ok := child.(*Parameter); ok {
			params = append(params, param)
		}
	}
	return params
}

// SameSignature compares two parameter lists positionally. A nil list is
// the same as an empty one.
func (p *Parameters) SameSignature(q *Parameters) bool {
	var a, b []*Parameter
	if p != nil {
		a = p.List()
	}
	if q != nil {
		b = q.List()
	}
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].SameSignature(b[i]) {
			return false
		}
	}
	return true
}

type Arguments struct {
	node
	branch
}

func (*Arguments) Kind() Kind { return KindArguments }

func (a *Arguments) List() []Expression { return expressions(a) }
