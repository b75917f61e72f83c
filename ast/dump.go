package ast

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

const indentUnit = "    "

// Tree is a finished syntax tree.
type Tree struct {
	Root Node
}

// String renders the tree under an "AST:" header, the root at level 1.
func (t *Tree) String() string {
	return "AST:\n" + Format(t.Root, 1)
}

// Format renders n and its subtree starting at the given indentation level.
// Rendering only reads the tree, so repeated calls give identical output.
func Format(n Node, level int) string {
	var p printer
	p.node(n, level)
	return p.String()
}

// Fprint writes Format(n, level) to w.
func Fprint(w io.Writer, n Node, level int) error {
	_, err := io.WriteString(w, Format(n, level))
	return err
}

// Label returns the dump label of n.
func Label(n Node) string {
	switch n := n.(type) {
	case *Program:
		return "program"
	case *Header:
		return "header"
	case *Include:
		if n.Standard {
			return "stdInclude"
		}
		return "customInclude"
	case *Functions:
		return "functions"
	case *MainFunction:
		return "main"
	case *FunctionDeclaration:
		return "functionDeclaration"
	case *FunctionDefinition:
		return "functionDefinition"
	case *Parameter:
		return "parameter"
	case *Parameters:
		return "parameters"
	case *Arguments:
		return "arguments"
	case *Statements:
		return "statements"
	case *Statement:
		return "statement"
	case *If:
		return "if"
	case *Else:
		return "else"
	case *While:
		return "while"
	case *DoWhile:
		return "doWhile"
	case *VariableDeclaration:
		return "variableDeclaration"
	case *DeclaratorInitializer:
		return "declaratorInitializer"
	case *Return:
		return "return"
	case *IntegerLiteral:
		return "int"
	case *FloatLiteral:
		return "float"
	case *CharacterLiteral:
		return "char"
	case *StringLiteral:
		return "char*"
	case *Variable:
		return "variable"
	case *FunctionCall:
		return "function call"
	case *UnaryOperator:
		switch n.Op {
		case Increment, Decrement:
			return n.Op.String() + "|" + n.Fixity.String()
		default:
			return n.Op.String()
		}
	case *BinaryOperator:
		return n.Op.String()
	case *TernaryConditionalOperator:
		return "?:"
	default:
		return "?"
	}
}

type printer struct {
	strings.Builder
}

func (p *printer) indent(level int) {
	p.WriteString(strings.Repeat(indentUnit, level))
}

// line writes an indented line.
func (p *printer) line(level int, text string) {
	p.indent(level)
	p.WriteString(text)
	p.WriteByte('\n')
}

// children writes every child one level deeper, or a blank line if there
// are none.
func (p *printer) children(n Node, level int) {
	kids := n.Children()
	for _, child := range kids {
		p.node(child, level+1)
	}
	if len(kids) == 0 {
		p.WriteByte('\n')
	}
}

// operands writes every child one level deeper without the blank line.
func (p *printer) operands(n Node, level int) {
	for _, child := range n.Children() {
		p.node(child, level+1)
	}
}

func (p *printer) node(n Node, level int) {
	switch n := n.(type) {
	case *Header:
		p.line(level, Label(n))
		if len(n.StdIncludes) > 0 {
			p.line(level, "std includes:    "+fmt.Sprintf("%q", n.StdIncludes))
		}
		if len(n.CustomIncludes) > 0 {
			p.line(level, "custom includes: "+fmt.Sprintf("%q", n.CustomIncludes))
		}
		p.children(n, level)
	case *FunctionDeclaration:
		p.function(n, n.Type, n.Identifier, level)
	case *FunctionDefinition:
		p.function(n, n.Type, n.Identifier, level)
	case *Parameter:
		p.parameter(n, level)
	case *Parameters:
		p.line(level, Label(n))
		p.children(n, level)
		p.WriteByte('\n')
	case *Arguments:
		p.line(level, Label(n))
		p.operands(n, level)
		p.WriteByte('\n')
	case *Statements:
		p.line(level, Label(n))
		if len(n.children) == 0 {
			p.line(level+1, "None")
			p.WriteByte('\n')
			return
		}
		p.operands(n, level)
	case *Statement:
		// Transparent: the wrapped nodes appear at the wrapper's level.
		p.children(n, level-1)
	case *If:
		p.ifNode(n, level)
	case *VariableDeclaration:
		p.line(level, Label(n))
		p.line(level+1, "return type: "+typeString(n.Type)+", const:  "+strconv.FormatBool(n.Constant))
		p.WriteByte('\n')
		p.children(n, level)
	case *DeclaratorInitializer:
		p.declarator(n, level)
	case *IntegerLiteral:
		p.line(level, Label(n)+" | "+strconv.FormatInt(n.Value, 10))
		if grandparentIsStatement(n) || underVariableDeclaration(n) {
			p.WriteByte('\n')
		}
	case *FloatLiteral:
		p.literal(n, formatFloat(n.Value), level)
	case *CharacterLiteral:
		p.literal(n, n.Value, level)
	case *StringLiteral:
		p.literal(n, n.Value, level)
	case *Variable:
		p.literal(n, n.Identifier, level)
	case *FunctionCall:
		p.line(level, Label(n)+" | "+n.Identifier)
		p.children(n, level)
	case *UnaryOperator, *TernaryConditionalOperator:
		p.line(level, Label(n))
		p.operands(n, level)
	case *BinaryOperator:
		p.line(level, Label(n))
		p.operands(n, level)
		p.WriteByte('\n')
	default:
		p.line(level, Label(n))
		p.children(n, level)
	}
}

func (p *printer) function(n Node, typ Type, identifier string, level int) {
	p.line(level, Label(n))
	p.line(level+1, "return type: "+typeString(typ))
	p.line(level+1, "identifier:  "+identifier)
	p.WriteByte('\n')
	p.children(n, level)
}

func (p *printer) parameter(n *Parameter, level int) {
	p.indent(level)
	p.WriteString("parameter | " + typeString(n.Type))
	if n.Constant {
		p.WriteString(" | const")
	}
	p.WriteString(" | " + n.Identifier)
	if n.IsArray {
		p.WriteString(" | array:  true")
		if n.ArrayLength > 0 {
			p.WriteString(" | arrayLength: " + strconv.Itoa(n.ArrayLength))
		}
	}
	p.WriteByte('\n')
}

func (p *printer) ifNode(n *If, level int) {
	p.line(level, Label(n))
	for _, child := range n.children {
		switch {
		case isExpression(child):
			p.line(level+1, "condition")
			p.node(child, level+2)
		case IsStatement(child):
			p.line(level+1, "then")
			p.node(child, level+2)
		default:
			p.node(child, level+1)
		}
	}
	if _, underBinary := n.parent.(*BinaryOperator); len(n.children) == 0 && !underBinary {
		p.WriteByte('\n')
	}
}

func (p *printer) declarator(n *DeclaratorInitializer, level int) {
	p.line(level, Label(n))
	p.indent(level + 1)
	p.WriteString("identifier: " + n.Identifier)
	if n.IsArray {
		p.WriteString(" | array: true")
	}
	p.WriteString("\n\n")

	sawLength := false
	for _, child := range n.children {
		switch {
		case n.IsArray && !sawLength && isExpression(child):
			sawLength = true
			p.line(level+1, "arrayLength")
			p.node(child, level+2)
		case isExpression(child):
			p.line(level+1, "initialization value")
			p.node(child, level+2)
		default:
			p.node(child, level+1)
		}
	}
	if len(n.children) == 0 {
		p.WriteByte('\n')
	}
}

// literal writes a single-line leaf, followed by a blank line when the leaf
// sits directly inside a statement's expression.
func (p *printer) literal(n Node, value string, level int) {
	p.line(level, Label(n)+" | "+value)
	if grandparentIsStatement(n) {
		p.WriteByte('\n')
	}
}

func isExpression(n Node) bool {
	_, ok := n.(Expression)
	return ok
}

func grandparentIsStatement(n Node) bool {
	parent := n.Parent()
	if parent == nil {
		return false
	}
	grandparent := parent.Parent()
	return grandparent != nil && IsStatement(grandparent)
}

func underVariableDeclaration(n Node) bool {
	for i := 0; i < 3; i++ {
		n = n.Parent()
		if n == nil {
			return false
		}
	}
	_, ok := n.(*VariableDeclaration)
	return ok
}

func typeString(t Type) string {
	if t == nil {
		return ""
	}
	return t.String()
}

// formatFloat always keeps a fractional part so that 2.0 does not print as
// an integer. Exponent form is used only below 1e-4 and from 1e16 on.
func formatFloat(v float64) string {
	format := byte('f')
	if abs := math.Abs(v); abs != 0 && (abs < 1e-4 || abs >= 1e16) {
		format = 'g'
	}
	s := strconv.FormatFloat(v, format, -1, 64)
	if !strings.ContainsAny(s, ".eEnN") {
		s += ".0"
	}
	return s
}
