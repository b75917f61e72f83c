// Package build is the tree-construction pass: it walks a parse tree written
// as s-expressions, builds the AST bottom-up and left to right, and fills
// the symbol table as declarations are met.
package build

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/strager/smallc/ast"
	"github.com/strager/smallc/ctype"
	"github.com/strager/smallc/sexpr"
	"github.com/strager/smallc/symtab"
)

// Result is what a construction pass hands to later phases.
type Result struct {
	Tree    *ast.Tree
	Symbols *symtab.SymbolTable
	// Bindings maps each Variable and FunctionCall to the symbol it
	// resolved to when it was built. Unresolved uses are absent.
	Bindings map[ast.Node]symtab.Symbol
}

// ErrForm is wrapped by errors about malformed tree descriptions.
var ErrForm = errors.New("malformed tree description")

type formError struct {
	err error
}

// BuildString parses input and builds it. See Build.
func BuildString(input string, sink symtab.ErrorSink) (*Result, error) {
	src, err := sexpr.Parse(input)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrForm, err)
	}
	return Build(src, sink)
}

// Build runs the construction pass over src. Semantic errors go to sink and
// do not stop the pass. A structural violation aborts it and is returned
// wrapped, so errors.As finds the *ast.StructuralViolation.
func Build(src *sexpr.Node, sink symtab.ErrorSink) (res *Result, err error) {
	b := &builder{
		symbols:  symtab.New(sink),
		bindings: make(map[ast.Node]symtab.Symbol),
	}

	defer func() {
		r := recover()
		if r == nil {
			return
		}
		switch e := r.(type) {
		case *ast.StructuralViolation:
			res, err = nil, fmt.Errorf("building %s: %w", src.Head(), e)
		case *formError:
			res, err = nil, e.err
		default:
			panic(r)
		}
	}()

	root := b.program(src)
	return &Result{
		Tree:     &ast.Tree{Root: root},
		Symbols:  b.symbols,
		Bindings: b.bindings,
	}, nil
}

type builder struct {
	symbols  *symtab.SymbolTable
	bindings map[ast.Node]symtab.Symbol
}

func (b *builder) fail(n *sexpr.Node, format string, args ...any) {
	panic(&formError{err: fmt.Errorf("%w: %w", ErrForm, n.Errorf(format, args...))})
}

// place sets the node position from ^{line, column} metadata, falling back
// to where the form starts in the description.
func (b *builder) place(node ast.Node, src *sexpr.Node) {
	pos := ast.Pos{Line: src.Line, Column: src.Column}
	if line := src.Meta("line"); line != nil {
		pos.Line = int(b.integer(line))
	}
	if column := src.Meta("column"); column != nil {
		pos.Column = int(b.integer(column))
	}
	node.SetPos(pos)
}

func (b *builder) integer(n *sexpr.Node) int64 {
	v, err := n.Int()
	if err != nil {
		b.fail(n, "%s", err)
	}
	return v
}

func (b *builder) flag(src *sexpr.Node, key string) bool {
	v := src.Meta(key)
	if v == nil {
		return false
	}
	if v.Type != sexpr.NodeSymbol || (v.Text != "true" && v.Text != "false") {
		b.fail(v, "%s must be true or false", key)
	}
	return v.Text == "true"
}

func (b *builder) count(src *sexpr.Node, key string) int {
	v := src.Meta(key)
	if v == nil {
		return 0
	}
	return int(b.integer(v))
}

func (b *builder) typ(n *sexpr.Node) ctype.Basic {
	if n.Type != sexpr.NodeSymbol {
		b.fail(n, "expected type name but got %s", n.Type)
	}
	t, err := ctype.Lookup(n.Text)
	if err != nil {
		b.fail(n, "%s", err)
	}
	return t
}

func (b *builder) str(n *sexpr.Node) string {
	if n.Type != sexpr.NodeString {
		b.fail(n, "expected string but got %s", n.Type)
	}
	return n.Text
}

// args checks the argument count of a form and returns the arguments.
func (b *builder) args(src *sexpr.Node, min, max int) []*sexpr.Node {
	args := src.Args()
	if len(args) < min || (max >= 0 && len(args) > max) {
		b.fail(src, "wrong number of arguments to '%s'", src.Head())
	}
	return args
}

func (b *builder) program(src *sexpr.Node) ast.Node {
	if src.Head() != "program" {
		b.fail(src, "expected (program ...) at the root")
	}
	program := &ast.Program{}
	b.place(program, src)
	for _, arg := range src.Args() {
		switch arg.Head() {
		case "header":
			b.header(program, arg)
		case "functions":
			b.functions(program, arg)
		default:
			b.fail(arg, "unexpected '%s' in program", arg.Head())
		}
	}
	return program
}

func (b *builder) header(parent ast.Node, src *sexpr.Node) {
	header := &ast.Header{}
	b.place(header, src)
	ast.Attach(parent, header)

	lists := b.args(src, 0, 2)
	for i, list := range lists {
		if list.Type != sexpr.NodeArray {
			b.fail(list, "expected include list but got %s", list.Type)
		}
		for _, item := range list.Items {
			include := &ast.Include{Name: b.str(item), Standard: i == 0}
			b.place(include, item)
			ast.Attach(header, include)
			if include.Standard {
				header.StdIncludes = append(header.StdIncludes, include.Name)
			} else {
				header.CustomIncludes = append(header.CustomIncludes, include.Name)
			}
		}
	}
}

func (b *builder) functions(parent ast.Node, src *sexpr.Node) {
	functions := &ast.Functions{}
	b.place(functions, src)
	ast.Attach(parent, functions)

	for _, arg := range src.Args() {
		switch arg.Head() {
		case "declaration":
			b.declaration(functions, arg)
		case "definition":
			b.definition(functions, arg)
		case "main":
			b.mainFunction(functions, arg)
		default:
			b.fail(arg, "unexpected '%s' in functions", arg.Head())
		}
	}
}

func (b *builder) declaration(parent ast.Node, src *sexpr.Node) {
	args := b.args(src, 3, 3)
	fn := &ast.FunctionDeclaration{Type: b.typ(args[0]), Identifier: b.str(args[1])}
	b.place(fn, src)
	ast.Attach(parent, fn)
	b.parameters(fn, args[2])
	b.symbols.InsertFunction(fn)
}

func (b *builder) definition(parent ast.Node, src *sexpr.Node) {
	args := b.args(src, 4, 4)
	fn := &ast.FunctionDefinition{Type: b.typ(args[0]), Identifier: b.str(args[1])}
	b.place(fn, src)
	ast.Attach(parent, fn)
	params := b.parameters(fn, args[2])

	b.symbols.InsertFunction(fn)
	b.symbols.OpenScope(fn.Identifier)
	for _, p := range params.List() {
		b.symbols.InsertParameter(p)
	}
	b.statements(fn, args[3])
	b.symbols.CloseScope()
}

func (b *builder) mainFunction(parent ast.Node, src *sexpr.Node) {
	args := b.args(src, 2, 2)
	fn := &ast.MainFunction{}
	b.place(fn, src)
	ast.Attach(parent, fn)
	params := b.parameters(fn, args[0])

	b.symbols.OpenScope("main")
	for _, p := range params.List() {
		b.symbols.InsertParameter(p)
	}
	b.statements(fn, args[1])
	b.symbols.CloseScope()
}

func (b *builder) parameters(parent ast.Node, src *sexpr.Node) *ast.Parameters {
	if src.Head() != "parameters" {
		b.fail(src, "expected (parameters ...) but got '%s'", src.Head())
	}
	params := &ast.Parameters{}
	b.place(params, src)
	ast.Attach(parent, params)

	for _, arg := range src.Args() {
		if arg.Head() != "parameter" {
			b.fail(arg, "expected (parameter ...) but got '%s'", arg.Head())
		}
		pargs := b.args(arg, 2, 2)
		p := &ast.Parameter{
			Type:         b.typ(pargs[0]),
			Identifier:   b.str(pargs[1]),
			Constant:     b.flag(arg, "const"),
			Indirections: b.count(arg, "indirections"),
		}
		if b.flag(arg, "array") {
			p.SetArray(b.count(arg, "length"))
		}
		b.place(p, arg)
		ast.Attach(params, p)
	}
	return params
}

func (b *builder) statements(parent ast.Node, src *sexpr.Node) *ast.Statements {
	if src.Head() != "statements" {
		b.fail(src, "expected (statements ...) but got '%s'", src.Head())
	}
	stmts := &ast.Statements{}
	b.place(stmts, src)
	ast.Attach(parent, stmts)
	for _, arg := range src.Args() {
		b.any(stmts, arg)
	}
	return stmts
}

// any builds a statement or an expression, whichever src is, under parent.
func (b *builder) any(parent ast.Node, src *sexpr.Node) ast.Node {
	if src.Type != sexpr.NodeList {
		b.fail(src, "expected a form but got %s", src.Type)
	}
	switch src.Head() {
	case "statements":
		return b.statements(parent, src)
	case "block":
		return b.block(parent, src)
	case "expr":
		stmt := &ast.Statement{}
		b.place(stmt, src)
		ast.Attach(parent, stmt)
		for _, arg := range b.args(src, 1, 1) {
			b.expression(stmt, arg)
		}
		return stmt
	case "if":
		return b.nested(parent, src, &ast.If{}, 2, 3)
	case "else":
		return b.nested(parent, src, &ast.Else{}, 1, 1)
	case "while":
		return b.nested(parent, src, &ast.While{}, 2, 2)
	case "do-while":
		return b.nested(parent, src, &ast.DoWhile{}, 2, 2)
	case "return":
		return b.nested(parent, src, &ast.Return{}, 0, 1)
	case "var":
		return b.variableDeclaration(parent, src)
	default:
		return b.expression(parent, src)
	}
}

// nested attaches node under parent and builds each argument of src under
// node, in order.
func (b *builder) nested(parent ast.Node, src *sexpr.Node, node ast.Node, min, max int) ast.Node {
	b.place(node, src)
	ast.Attach(parent, node)
	for _, arg := range b.args(src, min, max) {
		b.any(node, arg)
	}
	return node
}

// block is a compound statement. It opens an unnamed scope.
func (b *builder) block(parent ast.Node, src *sexpr.Node) ast.Node {
	stmt := &ast.Statement{}
	b.place(stmt, src)
	ast.Attach(parent, stmt)
	stmts := &ast.Statements{}
	b.place(stmts, src)
	ast.Attach(stmt, stmts)

	b.symbols.OpenScope("")
	for _, arg := range src.Args() {
		b.any(stmts, arg)
	}
	b.symbols.CloseScope()
	return stmt
}

func (b *builder) variableDeclaration(parent ast.Node, src *sexpr.Node) ast.Node {
	args := b.args(src, 2, -1)
	decl := &ast.VariableDeclaration{Type: b.typ(args[0]), Constant: b.flag(src, "const")}
	b.place(decl, src)
	ast.Attach(parent, decl)

	for _, arg := range args[1:] {
		if arg.Head() != "declarator" {
			b.fail(arg, "expected (declarator ...) but got '%s'", arg.Head())
		}
		dargs := b.args(arg, 1, 3)
		d := &ast.DeclaratorInitializer{
			Identifier:   b.str(dargs[0]),
			IsArray:      b.flag(arg, "array"),
			Indirections: b.count(arg, "indirections"),
		}
		b.place(d, arg)
		ast.Attach(decl, d)
		for _, e := range dargs[1:] {
			b.expression(d, e)
		}
		b.symbols.InsertVariable(d)
	}
	return decl
}

func (b *builder) expression(parent ast.Node, src *sexpr.Node) ast.Node {
	var node ast.Node
	var operands []*sexpr.Node

	switch src.Head() {
	case "int":
		v := b.args(src, 1, 1)[0]
		node = &ast.IntegerLiteral{Value: b.integer(v)}
	case "float":
		v := b.args(src, 1, 1)[0]
		if v.Type != sexpr.NodeFloat && v.Type != sexpr.NodeInteger {
			b.fail(v, "expected number but got %s", v.Type)
		}
		f, err := strconv.ParseFloat(v.Text, 64)
		if err != nil {
			b.fail(v, "%s", err)
		}
		node = &ast.FloatLiteral{Value: f}
	case "char":
		node = &ast.CharacterLiteral{Value: b.str(b.args(src, 1, 1)[0])}
	case "string":
		node = &ast.StringLiteral{Value: b.str(b.args(src, 1, 1)[0])}
	case "variable":
		v := &ast.Variable{Identifier: b.str(b.args(src, 1, 1)[0])}
		b.bind(v, v.Identifier)
		node = v
	case "call":
		return b.call(parent, src)
	case "prefix", "postfix":
		args := b.args(src, 2, -1)
		node = b.unary(src, args[0])
		operands = args[1:]
	case "binary":
		args := b.args(src, 1, -1)
		op, ok := binaryOps[b.str(args[0])]
		if !ok {
			b.fail(args[0], "unknown binary operator '%s'", args[0].Text)
		}
		node = &ast.BinaryOperator{Op: op}
		operands = args[1:]
	case "ternary":
		node = &ast.TernaryConditionalOperator{}
		operands = src.Args()
	default:
		b.fail(src, "unknown form '%s'", src.Head())
	}

	b.place(node, src)
	ast.Attach(parent, node)
	for _, operand := range operands {
		b.any(node, operand)
	}
	return node
}

func (b *builder) call(parent ast.Node, src *sexpr.Node) ast.Node {
	args := b.args(src, 1, -1)
	call := &ast.FunctionCall{Identifier: b.str(args[0])}
	b.place(call, src)
	ast.Attach(parent, call)
	b.bind(call, call.Identifier)

	arguments := &ast.Arguments{}
	b.place(arguments, src)
	ast.Attach(call, arguments)
	for _, arg := range args[1:] {
		b.any(arguments, arg)
	}
	return call
}

func (b *builder) bind(use ast.Node, name string) {
	if sym := b.symbols.Resolve(name); sym != nil {
		b.bindings[use] = sym
	}
}

var binaryOps = map[string]ast.BinaryOp{
	"=":   ast.Assign,
	"and": ast.LogicalAnd,
	"&&":  ast.LogicalAnd,
	"or":  ast.LogicalOr,
	"||":  ast.LogicalOr,
	"<":   ast.Less,
	">":   ast.Greater,
	"<=":  ast.LessEqual,
	">=":  ast.GreaterEqual,
	"==":  ast.Equal,
	"!=":  ast.NotEqual,
	"+":   ast.Add,
	"-":   ast.Subtract,
	"*":   ast.Multiply,
	"/":   ast.Divide,
	"%":   ast.Remainder,
}

func (b *builder) unary(src, opNode *sexpr.Node) *ast.UnaryOperator {
	op := b.str(opNode)
	u := &ast.UnaryOperator{Fixity: ast.Prefix}
	if src.Head() == "postfix" {
		u.Fixity = ast.Postfix
	}
	switch op {
	case "++":
		u.Op = ast.Increment
	case "--":
		u.Op = ast.Decrement
	case "&", "*", "!":
		if u.Fixity == ast.Postfix {
			b.fail(opNode, "'%s' is not a postfix operator", op)
		}
		u.Op = map[string]ast.UnaryOp{"&": ast.AddressOf, "*": ast.Dereference, "!": ast.LogicalNot}[op]
	default:
		b.fail(opNode, "unknown unary operator '%s'", op)
	}
	return u
}
