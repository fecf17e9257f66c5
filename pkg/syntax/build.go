package syntax

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// builder lowers a tree-sitter CST into the typed AST.
type builder struct {
	source []byte
}

func (b *builder) text(n *sitter.Node) string {
	if n == nil {
		return ""
	}
	start, end := n.StartByte(), n.EndByte()
	if start > end || end > uint32(len(b.source)) {
		return ""
	}
	return string(b.source[start:end])
}

func lineOf(n *sitter.Node) pos {
	return pos{LineNo: int(n.StartPoint().Row) + 1}
}

// statements converts the named statement children of a block-like node.
func (b *builder) statements(block *sitter.Node) []Stmt {
	if block == nil {
		return nil
	}
	var out []Stmt
	for i := 0; i < int(block.NamedChildCount()); i++ {
		child := block.NamedChild(i)
		if child.Type() == "comment" {
			continue
		}
		if s := b.statement(child); s != nil {
			out = append(out, s)
		}
	}
	return out
}

func (b *builder) statement(n *sitter.Node) Stmt {
	switch n.Type() {
	case "decorated_definition":
		if def := n.ChildByFieldName("definition"); def != nil {
			return b.statement(def)
		}
		return nil
	case "function_definition":
		return b.functionDef(n)
	case "class_definition":
		return &ClassDef{
			pos:  lineOf(n),
			Name: b.text(n.ChildByFieldName("name")),
			Body: b.statements(n.ChildByFieldName("body")),
		}
	case "if_statement":
		return b.ifStatement(n)
	case "for_statement":
		return &For{
			pos:    lineOf(n),
			Target: b.expr(n.ChildByFieldName("left"), false),
			Iter:   b.expr(n.ChildByFieldName("right"), true),
			Body:   b.statements(n.ChildByFieldName("body")),
			Else:   b.elseBlock(n),
		}
	case "while_statement":
		return &While{
			pos:  lineOf(n),
			Test: b.expr(n.ChildByFieldName("condition"), true),
			Body: b.statements(n.ChildByFieldName("body")),
			Else: b.elseBlock(n),
		}
	case "with_statement":
		return b.withStatement(n)
	case "try_statement":
		return b.tryStatement(n)
	case "return_statement":
		return &Return{pos: lineOf(n), Value: b.firstExpr(n)}
	case "raise_statement":
		return &Raise{pos: lineOf(n), Exc: b.firstExpr(n)}
	case "break_statement":
		return &Break{pos: lineOf(n)}
	case "continue_statement":
		return &Continue{pos: lineOf(n)}
	case "pass_statement":
		return &Pass{pos: lineOf(n)}
	case "assert_statement":
		st := &Assert{pos: lineOf(n)}
		if n.NamedChildCount() > 0 {
			st.Test = b.expr(n.NamedChild(0), true)
		}
		if n.NamedChildCount() > 1 {
			st.Msg = b.expr(n.NamedChild(1), true)
		}
		return st
	case "import_statement", "import_from_statement", "future_import_statement":
		return b.importStatement(n)
	case "expression_statement":
		return b.expressionStatement(n)
	case "global_statement", "nonlocal_statement", "delete_statement",
		"exec_statement", "print_statement", "type_alias_statement":
		return &OtherStmt{pos: lineOf(n), Children: b.namedExprs(n, true)}
	default:
		// Unknown statement kinds still count as one logical statement and
		// keep their expressions visible to walks.
		return &OtherStmt{pos: lineOf(n), Children: b.namedExprs(n, true)}
	}
}

func (b *builder) functionDef(n *sitter.Node) *FunctionDef {
	fn := &FunctionDef{
		pos:              lineOf(n),
		Name:             b.text(n.ChildByFieldName("name")),
		ReturnsAnnotated: n.ChildByFieldName("return_type") != nil,
		Body:             b.statements(n.ChildByFieldName("body")),
	}
	params := n.ChildByFieldName("parameters")
	if params == nil {
		return fn
	}
	for i := 0; i < int(params.NamedChildCount()); i++ {
		p := params.NamedChild(i)
		switch p.Type() {
		case "identifier":
			fn.Params = append(fn.Params, Param{Name: b.text(p)})
		case "default_parameter":
			fn.Params = append(fn.Params, Param{Name: b.text(p.ChildByFieldName("name"))})
		case "typed_parameter", "typed_default_parameter":
			name := p.ChildByFieldName("name")
			if name == nil && p.NamedChildCount() > 0 {
				name = p.NamedChild(0)
			}
			fn.Params = append(fn.Params, Param{Name: b.text(name), Annotated: true})
		case "list_splat_pattern", "dictionary_splat_pattern":
			// *args / **kwargs are not positional parameters.
		}
	}
	return fn
}

// ifStatement folds elif clauses into nested If statements in Else, matching
// how the construct reads.
func (b *builder) ifStatement(n *sitter.Node) *If {
	st := &If{
		pos:  lineOf(n),
		Test: b.expr(n.ChildByFieldName("condition"), true),
		Body: b.statements(n.ChildByFieldName("consequence")),
	}
	tail := st
	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		switch child.Type() {
		case "elif_clause":
			elif := &If{
				pos:  lineOf(child),
				Test: b.expr(child.ChildByFieldName("condition"), true),
				Body: b.statements(child.ChildByFieldName("consequence")),
			}
			tail.Else = []Stmt{elif}
			tail = elif
		case "else_clause":
			tail.Else = b.statements(child.ChildByFieldName("body"))
		}
	}
	return st
}

func (b *builder) elseBlock(n *sitter.Node) []Stmt {
	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		if child.Type() == "else_clause" {
			return b.statements(child.ChildByFieldName("body"))
		}
	}
	return nil
}

func (b *builder) withStatement(n *sitter.Node) *With {
	st := &With{pos: lineOf(n), Body: b.statements(n.ChildByFieldName("body"))}
	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		if child.Type() != "with_clause" {
			continue
		}
		for j := 0; j < int(child.NamedChildCount()); j++ {
			item := child.NamedChild(j)
			if item.Type() == "with_item" {
				if v := item.ChildByFieldName("value"); v != nil {
					st.Items = append(st.Items, b.expr(v, true))
				} else if item.NamedChildCount() > 0 {
					st.Items = append(st.Items, b.expr(item.NamedChild(0), true))
				}
			}
		}
	}
	return st
}

func (b *builder) tryStatement(n *sitter.Node) *Try {
	st := &Try{pos: lineOf(n), Body: b.statements(n.ChildByFieldName("body"))}
	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		switch child.Type() {
		case "except_clause", "except_group_clause":
			st.Handlers = append(st.Handlers, b.exceptHandler(child))
		case "else_clause":
			st.Else = b.statements(child.ChildByFieldName("body"))
		case "finally_clause":
			st.Finally = b.statements(b.childBlock(child))
		}
	}
	return st
}

func (b *builder) exceptHandler(n *sitter.Node) *ExceptHandler {
	h := &ExceptHandler{pos: lineOf(n), Body: b.statements(b.childBlock(n))}
	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		if child.Type() == "block" || child.Type() == "comment" {
			continue
		}
		typeNode := child
		// `except E as e` wraps the type in an as_pattern.
		if typeNode.Type() == "as_pattern" && typeNode.NamedChildCount() > 0 {
			typeNode = typeNode.NamedChild(0)
		}
		if typeNode.Type() == "identifier" {
			h.TypeName = b.text(typeNode)
		} else {
			h.TypeName = strings.TrimSpace(b.text(typeNode))
		}
		break
	}
	return h
}

func (b *builder) childBlock(n *sitter.Node) *sitter.Node {
	for i := 0; i < int(n.NamedChildCount()); i++ {
		if child := n.NamedChild(i); child.Type() == "block" {
			return child
		}
	}
	return nil
}

// importStatement extracts the top-level names an import introduces. Plain
// imports bind the first component of the dotted path; from-imports bind
// the imported names themselves.
func (b *builder) importStatement(n *sitter.Node) *Import {
	st := &Import{pos: lineOf(n)}
	fromImport := n.Type() != "import_statement"
	moduleStart := uint32(0)
	hasModule := false
	if fromImport {
		if mod := n.ChildByFieldName("module_name"); mod != nil {
			moduleStart = mod.StartByte()
			hasModule = true
		}
	}
	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		if hasModule && child.StartByte() == moduleStart {
			continue
		}
		switch child.Type() {
		case "dotted_name":
			st.Names = append(st.Names, b.topLevelName(b.text(child)))
		case "aliased_import":
			// A plain `import a.b as c` still binds `a` for usage
			// tracking; from-imports bind the alias.
			if fromImport {
				if alias := child.ChildByFieldName("alias"); alias != nil {
					st.Names = append(st.Names, b.text(alias))
					continue
				}
			}
			if name := child.ChildByFieldName("name"); name != nil {
				st.Names = append(st.Names, b.topLevelName(b.text(name)))
			}
		case "wildcard_import":
			// `from x import *` introduces no statically known names.
		}
	}
	return st
}

func (b *builder) topLevelName(dotted string) string {
	if idx := strings.IndexByte(dotted, '.'); idx >= 0 {
		return dotted[:idx]
	}
	return dotted
}

func (b *builder) expressionStatement(n *sitter.Node) Stmt {
	if n.NamedChildCount() == 0 {
		return &OtherStmt{pos: lineOf(n)}
	}
	inner := n.NamedChild(0)
	switch inner.Type() {
	case "assignment":
		return b.assignment(inner)
	case "augmented_assignment":
		return &OtherStmt{pos: lineOf(inner), Children: []Expr{
			b.expr(inner.ChildByFieldName("left"), false),
			b.expr(inner.ChildByFieldName("right"), true),
		}}
	default:
		return &ExprStmt{pos: lineOf(n), X: b.expr(inner, true)}
	}
}

func (b *builder) assignment(n *sitter.Node) *Assign {
	st := &Assign{
		pos:       lineOf(n),
		Annotated: n.ChildByFieldName("type") != nil,
	}
	if left := n.ChildByFieldName("left"); left != nil {
		st.Targets = b.targets(left)
	}
	if right := n.ChildByFieldName("right"); right != nil {
		st.Value = b.expr(right, true)
	}
	return st
}

// targets converts an assignment left-hand side, unpacking tuple and list
// patterns into individual store-context targets.
func (b *builder) targets(n *sitter.Node) []Expr {
	switch n.Type() {
	case "pattern_list", "tuple_pattern", "list_pattern", "expression_list", "tuple", "list":
		var out []Expr
		for i := 0; i < int(n.NamedChildCount()); i++ {
			out = append(out, b.targets(n.NamedChild(i))...)
		}
		return out
	default:
		return []Expr{b.expr(n, false)}
	}
}

func (b *builder) firstExpr(n *sitter.Node) Expr {
	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		if child.Type() == "comment" {
			continue
		}
		return b.expr(child, true)
	}
	return nil
}

func (b *builder) namedExprs(n *sitter.Node, load bool) []Expr {
	var out []Expr
	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		if child.Type() == "comment" {
			continue
		}
		out = append(out, b.expr(child, load))
	}
	return out
}

func (b *builder) expr(n *sitter.Node, load bool) Expr {
	if n == nil {
		return nil
	}
	switch n.Type() {
	case "identifier":
		return &Name{pos: lineOf(n), ID: b.text(n), Load: load}
	case "attribute":
		// The base is read even when the attribute is a store target.
		return &Attribute{
			pos:  lineOf(n),
			Base: b.expr(n.ChildByFieldName("object"), true),
			Attr: b.text(n.ChildByFieldName("attribute")),
		}
	case "binary_operator":
		return &BinaryOp{
			pos:   lineOf(n),
			Op:    b.text(n.ChildByFieldName("operator")),
			Left:  b.expr(n.ChildByFieldName("left"), true),
			Right: b.expr(n.ChildByFieldName("right"), true),
		}
	case "boolean_operator":
		return b.boolOp(n)
	case "call":
		return b.call(n)
	case "string", "concatenated_string":
		return b.stringExpr(n)
	case "parenthesized_expression":
		if n.NamedChildCount() > 0 {
			return b.expr(n.NamedChild(0), load)
		}
		return &OtherExpr{pos: lineOf(n), Kind: n.Type()}
	default:
		return &OtherExpr{
			pos:      lineOf(n),
			Kind:     n.Type(),
			Children: b.namedExprs(n, load),
		}
	}
}

// boolOp flattens nested boolean operators of the same kind into one chain,
// so `a and b and c` yields a single BoolOp with three values.
func (b *builder) boolOp(n *sitter.Node) *BoolOp {
	op := b.text(n.ChildByFieldName("operator"))
	st := &BoolOp{pos: lineOf(n), Op: op}
	var collect func(node *sitter.Node)
	collect = func(node *sitter.Node) {
		if node.Type() == "boolean_operator" && b.text(node.ChildByFieldName("operator")) == op {
			collect(node.ChildByFieldName("left"))
			collect(node.ChildByFieldName("right"))
			return
		}
		st.Values = append(st.Values, b.expr(node, true))
	}
	collect(n)
	return st
}

func (b *builder) call(n *sitter.Node) *Call {
	c := &Call{pos: lineOf(n), Fn: b.expr(n.ChildByFieldName("function"), true)}
	if args := n.ChildByFieldName("arguments"); args != nil {
		for i := 0; i < int(args.NamedChildCount()); i++ {
			arg := args.NamedChild(i)
			if arg.Type() == "comment" {
				continue
			}
			if arg.Type() == "keyword_argument" {
				if v := arg.ChildByFieldName("value"); v != nil {
					c.Args = append(c.Args, b.expr(v, true))
				}
				continue
			}
			c.Args = append(c.Args, b.expr(arg, true))
		}
	}
	return c
}

// stringExpr keeps plain strings as literals but preserves f-string
// interpolations so identifier references inside them stay visible.
func (b *builder) stringExpr(n *sitter.Node) Expr {
	var interps []Expr
	var scan func(node *sitter.Node)
	scan = func(node *sitter.Node) {
		for i := 0; i < int(node.NamedChildCount()); i++ {
			child := node.NamedChild(i)
			if child.Type() == "interpolation" {
				if child.NamedChildCount() > 0 {
					interps = append(interps, b.expr(child.NamedChild(0), true))
				}
				continue
			}
			scan(child)
		}
	}
	scan(n)
	if len(interps) > 0 {
		return &OtherExpr{pos: lineOf(n), Kind: "string", Children: interps}
	}
	return &StringLit{pos: lineOf(n)}
}
