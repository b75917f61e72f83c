// Package ast holds the small-C syntax tree built by the tree-construction
// pass, together with its construction protocol and textual dump.
package ast

import "fmt"

// Pos is a 1-based source position. The zero Pos means "unknown".
type Pos struct {
	Line   int
	Column int
}

// Type is the capability the type system provides to the tree. Only
// compatibility is consulted here; everything else is the type system's
// business.
type Type interface {
	String() string
	IsCompatible(other Type) bool
}

// Kind identifies the variant of a Node.
type Kind int

const (
	KindInvalid Kind = iota
	KindProgram
	KindHeader
	KindInclude
	KindFunctions
	KindMainFunction
	KindFunctionDeclaration
	KindFunctionDefinition
	KindParameter
	KindParameters
	KindArguments
	KindStatements
	KindStatement
	KindIf
	KindElse
	KindWhile
	KindDoWhile
	KindVariableDeclaration
	KindDeclaratorInitializer
	KindReturn
	KindIntegerLiteral
	KindFloatLiteral
	KindCharacterLiteral
	KindStringLiteral
	KindVariable
	KindFunctionCall
	KindUnaryOperator
	KindBinaryOperator
	KindTernaryConditionalOperator
)

var kindNames = [...]string{
	KindInvalid:                    "Invalid",
	KindProgram:                    "Program",
	KindHeader:                     "Header",
	KindInclude:                    "Include",
	KindFunctions:                  "Functions",
	KindMainFunction:               "MainFunction",
	KindFunctionDeclaration:        "FunctionDeclaration",
	KindFunctionDefinition:         "FunctionDefinition",
	KindParameter:                  "Parameter",
	KindParameters:                 "Parameters",
	KindArguments:                  "Arguments",
	KindStatements:                 "Statements",
	KindStatement:                  "Statement",
	KindIf:                         "If",
	KindElse:                       "Else",
	KindWhile:                      "While",
	KindDoWhile:                    "DoWhile",
	KindVariableDeclaration:        "VariableDeclaration",
	KindDeclaratorInitializer:      "DeclaratorInitializer",
	KindReturn:                     "Return",
	KindIntegerLiteral:             "IntegerLiteral",
	KindFloatLiteral:               "FloatLiteral",
	KindCharacterLiteral:           "CharacterLiteral",
	KindStringLiteral:              "StringLiteral",
	KindVariable:                   "Variable",
	KindFunctionCall:               "FunctionCall",
	KindUnaryOperator:              "UnaryOperator",
	KindBinaryOperator:             "BinaryOperator",
	KindTernaryConditionalOperator: "TernaryConditionalOperator",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Node is implemented by every tree variant in this package and only by
// those.
type Node interface {
	Kind() Kind
	// Parent is nil for the root.
	Parent() Node
	// Children lists the attached children in program order.
	Children() []Node
	Pos() Pos
	SetPos(pos Pos)

	setParent(parent Node)
	// accept stores child in the next free slot and reports whether there
	// was one. It must not touch child's parent.
	accept(child Node) (ok bool, reason string)
}

// Expression is implemented by the expression variants.
type Expression interface {
	Node
	expression()
}

// node carries the fields every variant shares.
type node struct {
	parent Node
	pos    Pos
}

func (n *node) Parent() Node          { return n.parent }
func (n *node) Pos() Pos              { return n.pos }
func (n *node) SetPos(pos Pos)        { n.pos = pos }
func (n *node) setParent(parent Node) { n.parent = parent }

// branch is an unbounded ordered child list.
type branch struct {
	children []Node
}

func (b *branch) Children() []Node { return b.children }

func (b *branch) accept(child Node) (bool, string) {
	b.children = append(b.children, child)
	return true, ""
}

// leaf never accepts children.
type leaf struct{}

func (leaf) Children() []Node { return nil }

func (leaf) accept(Node) (bool, string) { return false, "node takes no children" }

// StructuralViolation reports misuse of the construction protocol. It is
// raised with panic by Attach and indicates a bug in the caller, never a
// problem in the compiled source.
type StructuralViolation struct {
	Parent Kind
	Child  Kind
	Reason string
}

func (e *StructuralViolation) Error() string {
	return fmt.Sprintf("structural violation: attaching %s to %s: %s", e.Child, e.Parent, e.Reason)
}

func violate(parent, child Node, reason string) {
	v := &StructuralViolation{Reason: reason}
	if parent != nil {
		v.Parent = parent.Kind()
	}
	if child != nil {
		v.Child = child.Kind()
	}
	panic(v)
}

// Attach links child under parent and returns child.
//
// Panics with *StructuralViolation if either node is nil, if child already
// has a parent, if the link would create a cycle, or if parent has no
// free slot left for child.
func Attach(parent, child Node) Node {
	if isNil(parent) || isNil(child) {
		violate(parent, child, "nil node")
	}
	if child.Parent() != nil {
		violate(parent, child, "child is already attached")
	}
	for n := parent; n != nil; n = n.Parent() {
		if n == child {
			violate(parent, child, "child is an ancestor of parent")
		}
	}
	if ok, reason := parent.accept(child); !ok {
		violate(parent, child, reason)
	}
	child.setParent(parent)
	return child
}

// isNil reports whether n is nil or a nil pointer of a node type. Kind is
// the only method safe to call on the latter.
func isNil(n Node) bool {
	switch n := n.(type) {
	case *Program:
		return n == nil
	case *Header:
		return n == nil
	case *Include:
		return n == nil
	case *Functions:
		return n == nil
	case *MainFunction:
		return n == nil
	case *FunctionDeclaration:
		return n == nil
	case *FunctionDefinition:
		return n == nil
	case *Parameter:
		return n == nil
	case *Parameters:
		return n == nil
	case *Arguments:
		return n == nil
	case *Statements:
		return n == nil
	case *Statement:
		return n == nil
	case *If:
		return n == nil
	case *Else:
		return n == nil
	case *While:
		return n == nil
	case *DoWhile:
		return n == nil
	case *VariableDeclaration:
		return n == nil
	case *DeclaratorInitializer:
		return n == nil
	case *Return:
		return n == nil
	case *IntegerLiteral:
		return n == nil
	case *FloatLiteral:
		return n == nil
	case *CharacterLiteral:
		return n == nil
	case *StringLiteral:
		return n == nil
	case *Variable:
		return n == nil
	case *FunctionCall:
		return n == nil
	case *UnaryOperator:
		return n == nil
	case *BinaryOperator:
		return n == nil
	case *TernaryConditionalOperator:
		return n == nil
	default:
		return n == nil
	}
}

// Root walks parent links up from n.
func Root(n Node) Node {
	for n.Parent() != nil {
		n = n.Parent()
	}
	return n
}

// Walk calls fn for n and then for each descendant in depth-first program
// order. Returning false from fn skips the node's children.
func Walk(n Node, fn func(Node) bool) {
	if !fn(n) {
		return
	}
	for _, child := range n.Children() {
		Walk(child, fn)
	}
}

// New creates an empty node of the given kind. Operator kinds get their
// zero operator subtype and must be configured before use.
func New(kind Kind) Node {
	switch kind {
	case KindProgram:
		return &Program{}
	case KindHeader:
		return &Header{}
	case KindInclude:
		return &Include{}
	case KindFunctions:
		return &Functions{}
	case KindMainFunction:
		return &MainFunction{}
	case KindFunctionDeclaration:
		return &FunctionDeclaration{}
	case KindFunctionDefinition:
		return &FunctionDefinition{}
	case KindParameter:
		return &Parameter{}
	case KindParameters:
		return &Parameters{}
	case KindArguments:
		return &Arguments{}
	case KindStatements:
		return &Statements{}
	case KindStatement:
		return &Statement{}
	case KindIf:
		return &If{}
	case KindElse:
		return &Else{}
	case KindWhile:
		return &While{}
	case KindDoWhile:
		return &DoWhile{}
	case KindVariableDeclaration:
		return &VariableDeclaration{}
	case KindDeclaratorInitializer:
		return &DeclaratorInitializer{}
	case KindReturn:
		return &Return{}
	case KindIntegerLiteral:
		return &IntegerLiteral{}
	case KindFloatLiteral:
		return &FloatLiteral{}
	case KindCharacterLiteral:
		return &CharacterLiteral{}
	case KindStringLiteral:
		return &StringLiteral{}
	case KindVariable:
		return &Variable{}
	case KindFunctionCall:
		return &FunctionCall{}
	case KindUnaryOperator:
		return &UnaryOperator{}
	case KindBinaryOperator:
		return &BinaryOperator{}
	case KindTernaryConditionalOperator:
		return &TernaryConditionalOperator{}
	default:
		panic(fmt.Sprintf("ast: New called with %s", kind))
	}
}
