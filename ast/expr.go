package ast

type IntegerLiteral struct {
	node
	leaf
	Value int64
}

func (*IntegerLiteral) Kind() Kind { return KindIntegerLiteral }
func (*IntegerLiteral) expression() {}

type FloatLiteral struct {
	node
	leaf
	Value float64
}

func (*FloatLiteral) Kind() Kind { return KindFloatLiteral }
func (*FloatLiteral) expression() {}

// CharacterLiteral keeps the literal's source spelling.
type CharacterLiteral struct {
	node
	leaf
	Value string
}

func (*CharacterLiteral) Kind() Kind { return KindCharacterLiteral }
func (*CharacterLiteral) expression() {}

// StringLiteral keeps the literal's source spelling.
type StringLiteral struct {
	node
	leaf
	Value string
}

func (*StringLiteral) Kind() Kind { return KindStringLiteral }
func (*StringLiteral) expression() {}

// Variable is a use of a named variable.
type Variable struct {
	node
	leaf
	Identifier string
}

func (*Variable) Kind() Kind { return KindVariable }
func (*Variable) expression() {}

type FunctionCall struct {
	node
	branch
	Identifier string
}

func (*FunctionCall) Kind() Kind { return KindFunctionCall }
func (*FunctionCall) expression() {}

func (c *FunctionCall) Arguments() *Arguments { return find[*Arguments](c) }

// UnaryOp is the subtype of a UnaryOperator.
type UnaryOp int

const (
	AddressOf UnaryOp = iota
	Dereference
	LogicalNot
	Increment
	Decrement
)

func (op UnaryOp) String() string {
	switch op {
	case AddressOf:
		return "&"
	case Dereference:
		return "*"
	case LogicalNot:
		return "!"
	case Increment:
		return "++"
	case Decrement:
		return "--"
	default:
		return "?"
	}
}

// Fixity tells prefix from postfix unary operators.
type Fixity int

const (
	Prefix Fixity = iota
	Postfix
)

func (f Fixity) String() string {
	if f == Postfix {
		return "postfix"
	}
	return "prefix"
}

// UnaryOperator has exactly one operand slot.
type UnaryOperator struct {
	node
	Op      UnaryOp
	Fixity  Fixity
	Operand Expression
}

func (*UnaryOperator) Kind() Kind { return KindUnaryOperator }
func (*UnaryOperator) expression() {}

func (u *UnaryOperator) Children() []Node { return slots(u.Operand) }

func (u *UnaryOperator) accept(child Node) (bool, string) {
	e, ok := child.(Expression)
	if !ok {
		return false, "operand is not an expression"
	}
	if u.Operand != nil {
		return false, "unary operator already has its operand"
	}
	u.Operand = e
	return true, ""
}

// BinaryOp is the subtype of a BinaryOperator.
type BinaryOp int

const (
	Assign BinaryOp = iota
	LogicalAnd
	LogicalOr
	Less
	Greater
	LessEqual
	GreaterEqual
	Equal
	NotEqual
	Add
	Subtract
	Multiply
	Divide
	Remainder
)

var binaryOpNames = [...]string{
	Assign:       "=",
	LogicalAnd:   "and",
	LogicalOr:    "or",
	Less:         "<",
	Greater:      ">",
	LessEqual:    "<=",
	GreaterEqual: ">=",
	Equal:        "==",
	NotEqual:     "!=",
	Add:          "+",
	Subtract:     "-",
	Multiply:     "*",
	Divide:       "/",
	Remainder:    "%",
}

func (op BinaryOp) String() string {
	if op < 0 || int(op) >= len(binaryOpNames) {
		return "?"
	}
	return binaryOpNames[op]
}

// BinaryOperator has exactly two operand slots, filled first then second.
type BinaryOperator struct {
	node
	Op     BinaryOp
	First  Expression
	Second Expression
}

func (*BinaryOperator) Kind() Kind { return KindBinaryOperator }
func (*BinaryOperator) expression() {}

func (b *BinaryOperator) Children() []Node { return slots(b.First, b.Second) }

func (b *BinaryOperator) accept(child Node) (bool, string) {
	e, ok := child.(Expression)
	if !ok {
		return false, "operand is not an expression"
	}
	switch {
	case b.First == nil:
		b.First = e
	case b.Second == nil:
		b.Second = e
	default:
		return false, "binary operator already has both operands"
	}
	return true, ""
}

// TernaryConditionalOperator is cond ? first : second, with three slots
// filled in order.
type TernaryConditionalOperator struct {
	node
	First  Expression
	Second Expression
	Third  Expression
}

func (*TernaryConditionalOperator) Kind() Kind { return KindTernaryConditionalOperator }
func (*TernaryConditionalOperator) expression() {}

func (t *TernaryConditionalOperator) Children() []Node {
	return slots(t.First, t.Second, t.Third)
}

func (t *TernaryConditionalOperator) accept(child Node) (bool, string) {
	e, ok := child.(Expression)
	if !ok {
		return false, "operand is not an expression"
	}
	switch {
	case t.First == nil:
		t.First = e
	case t.Second == nil:
		t.Second = e
	case t.Third == nil:
		t.Third = e
	default:
		return false, "ternary operator already has all three operands"
	}
	return true, ""
}

func slots(operands ...Expression) []Node {
	var children []Node
	for _, op := range operands {
		if op != nil {
			children = append(children, op)
		}
	}
	return children
}
