package syntax

// Blocks returns the nested statement blocks of a statement. Conditional
// branches, loop bodies and else clauses, context-manager bodies, exception
// handler bodies, and finally blocks are all returned as separate blocks.
func Blocks(s Stmt) [][]Stmt {
	switch st := s.(type) {
	case *FunctionDef:
		return [][]Stmt{st.Body}
	case *ClassDef:
		return [][]Stmt{st.Body}
	case *If:
		return [][]Stmt{st.Body, st.Else}
	case *For:
		return [][]Stmt{st.Body, st.Else}
	case *While:
		return [][]Stmt{st.Body, st.Else}
	case *With:
		return [][]Stmt{st.Body}
	case *Try:
		blocks := [][]Stmt{st.Body}
		for _, h := range st.Handlers {
			blocks = append(blocks, h.Body)
		}
		blocks = append(blocks, st.Else, st.Finally)
		return blocks
	default:
		return nil
	}
}

// ChildExprs returns the expressions directly held by a statement, without
// descending into nested statement blocks.
func ChildExprs(s Stmt) []Expr {
	switch st := s.(type) {
	case *If:
		return []Expr{st.Test}
	case *For:
		return []Expr{st.Target, st.Iter}
	case *While:
		return []Expr{st.Test}
	case *With:
		return st.Items
	case *Return:
		return []Expr{st.Value}
	case *Raise:
		return []Expr{st.Exc}
	case *Assign:
		return append(append([]Expr{}, st.Targets...), st.Value)
	case *Assert:
		return []Expr{st.Test, st.Msg}
	case *ExprStmt:
		return []Expr{st.X}
	case *OtherStmt:
		return st.Children
	default:
		return nil
	}
}

// WalkStmts visits every statement under body in depth-first order,
// including statements inside nested function and class bodies. Returning
// false from fn skips the statement's nested blocks.
func WalkStmts(body []Stmt, fn func(Stmt) bool) {
	for _, s := range body {
		if s == nil {
			continue
		}
		if !fn(s) {
			continue
		}
		for _, block := range Blocks(s) {
			WalkStmts(block, fn)
		}
	}
}

// WalkExprs visits every expression reachable from body, including
// expressions nested inside other expressions and inside nested statement
// blocks.
func WalkExprs(body []Stmt, fn func(Expr) bool) {
	WalkStmts(body, func(s Stmt) bool {
		for _, e := range ChildExprs(s) {
			walkExpr(e, fn)
		}
		return true
	})
}

func walkExpr(e Expr, fn func(Expr) bool) {
	if e == nil {
		return
	}
	if !fn(e) {
		return
	}
	switch ex := e.(type) {
	case *Attribute:
		walkExpr(ex.Base, fn)
	case *BinaryOp:
		walkExpr(ex.Left, fn)
		walkExpr(ex.Right, fn)
	case *BoolOp:
		for _, v := range ex.Values {
			walkExpr(v, fn)
		}
	case *Call:
		walkExpr(ex.Fn, fn)
		for _, a := range ex.Args {
			walkExpr(a, fn)
		}
	case *OtherExpr:
		for _, c := range ex.Children {
			walkExpr(c, fn)
		}
	}
}

// Functions returns every function definition under body, including methods
// and functions nested inside other functions.
func Functions(body []Stmt) []*FunctionDef {
	var funcs []*FunctionDef
	WalkStmts(body, func(s Stmt) bool {
		if fn, ok := s.(*FunctionDef); ok {
			funcs = append(funcs, fn)
		}
		return true
	})
	return funcs
}

// Classes returns every class definition under body.
func Classes(body []Stmt) []*ClassDef {
	var classes []*ClassDef
	WalkStmts(body, func(s Stmt) bool {
		if cls, ok := s.(*ClassDef); ok {
			classes = append(classes, cls)
		}
		return true
	})
	return classes
}
