package ast

// Statements is an ordered statement list (a function body or the inside of
// a compound statement).
type Statements struct {
	node
	branch
}

func (*Statements) Kind() Kind { return KindStatements }

// Statement wraps an expression statement or a compound statement. It is
// transparent in the dump.
type Statement struct {
	node
	branch
}

func (*Statement) Kind() Kind { return KindStatement }

// If holds a condition, a then-branch and an optional Else.
type If struct {
	node
	branch
}

func (*If) Kind() Kind { return KindIf }

func (i *If) Condition() Expression { return find[Expression](i) }

// Then returns the first statement child.
func (i *If) Then() Node {
	for _, child := range i.children {
		if IsStatement(child) {
			return child
		}
	}
	return nil
}

func (i *If) Else() *Else { return find[*Else](i) }

type Else struct {
	node
	branch
}

func (*Else) Kind() Kind { return KindElse }

// Body returns the single statement of the else branch, or nil.
func (e *Else) Body() Node {
	if len(e.children) == 0 {
		return nil
	}
	return e.children[0]
}

type While struct {
	node
	branch
}

func (*While) Kind() Kind             { return KindWhile }
func (w *While) Condition() Expression { return find[Expression](w) }
func (w *While) Body() Node            { return loopBody(w) }

type DoWhile struct {
	node
	branch
}

func (*DoWhile) Kind() Kind             { return KindDoWhile }
func (d *DoWhile) Condition() Expression { return find[Expression](d) }
func (d *DoWhile) Body() Node            { return loopBody(d) }

func loopBody(n Node) Node {
	for _, child := range n.Children() {
		if _, ok := child.(Expression); !ok {
			return child
		}
	}
	return nil
}

// VariableDeclaration declares one or more variables sharing a type.
type VariableDeclaration struct {
	node
	branch
	Type     Type
	Constant bool
}

func (*VariableDeclaration) Kind() Kind { return KindVariableDeclaration }

func (v *VariableDeclaration) Declarators() []*DeclaratorInitializer {
	var decls []*DeclaratorInitializer
	for _, child := range v.children {
		if d, ok := child.(*DeclaratorInitializer); ok {
			decls = append(decls, d)
		}
	}
	return decls
}

// DeclaratorInitializer is one declarator of a VariableDeclaration. For an
// array the first expression child is the length; any other expression
// child is the initializer.
type DeclaratorInitializer struct {
	node
	branch
	Identifier   string
	IsArray      bool
	Indirections int
}

func (*DeclaratorInitializer) Kind() Kind { return KindDeclaratorInitializer }

// SetArray marks the declarator as an array. A nil length means the length
// was omitted.
func (d *DeclaratorInitializer) SetArray(length Expression) {
	d.IsArray = true
	if length != nil {
		Attach(d, length)
	}
}

// Type returns the declared type, taken from the enclosing
// VariableDeclaration.
func (d *DeclaratorInitializer) Type() Type {
	if decl, ok := d.parent.(*VariableDeclaration); ok {
		return decl.Type
	}
	return nil
}

// Constant reports whether the enclosing declaration is const.
func (d *DeclaratorInitializer) Constant() bool {
	if decl, ok := d.parent.(*VariableDeclaration); ok {
		return decl.Constant
	}
	return false
}

// HasExpression reports whether any expression child is attached.
func (d *DeclaratorInitializer) HasExpression() bool {
	return find[Expression](d) != nil
}

// ArrayLength returns the length expression of an array declarator, or nil.
func (d *DeclaratorInitializer) ArrayLength() Expression {
	if !d.IsArray {
		return nil
	}
	return find[Expression](d)
}

// Initializer returns the initialization value, or nil.
func (d *DeclaratorInitializer) Initializer() Expression {
	exprs := expressions(d)
	if d.IsArray {
		if len(exprs) < 2 {
			return nil
		}
		return exprs[1]
	}
	if len(exprs) == 0 {
		return nil
	}
	return exprs[0]
}

type Return struct {
	node
	branch
}

func (*Return) Kind() Kind { return KindReturn }

// Value returns the returned expression, or nil for a bare return.
func (r *Return) Value() Expression { return find[Expression](r) }

// IsStatement reports whether n is one of the statement variants.
func IsStatement(n Node) bool {
	switch n.(type) {
	case *Statement, *If, *While, *DoWhile, *VariableDeclaration, *Return:
		return true
	}
	return false
}
