// Package syntax parses Python source into a typed abstract syntax tree.
//
// Tree-sitter produces an untyped concrete syntax tree; this package lowers
// it into a closed set of node kinds so that analysis code can dispatch with
// exhaustive type switches instead of string comparisons on node types.
package syntax

// Node is the interface implemented by every AST node.
type Node interface {
	// Line returns the 1-based source line the node starts on.
	Line() int
}

// Stmt is a statement-level node. Statement nodes are the unit of logical
// size: one Stmt counts as one logical statement.
type Stmt interface {
	Node
	stmtNode()
}

// Expr is an expression-level node.
type Expr interface {
	Node
	exprNode()
}

type pos struct {
	LineNo int
}

func (p pos) Line() int { return p.LineNo }

// Module is the root of a parsed source file.
type Module struct {
	pos
	Path string
	Body []Stmt
}

// Param is a single function parameter.
type Param struct {
	Name      string
	Annotated bool
}

// FunctionDef is a function or method definition, including async variants.
type FunctionDef struct {
	pos
	Name             string
	Params           []Param
	ReturnsAnnotated bool
	Body             []Stmt
}

// ClassDef is a class definition.
type ClassDef struct {
	pos
	Name string
	Body []Stmt
}

// If is a conditional statement. Elif chains are represented as a nested If
// in Else.
type If struct {
	pos
	Test Expr
	Body []Stmt
	Else []Stmt
}

// For is a for loop, including async variants.
type For struct {
	pos
	Target Expr
	Iter   Expr
	Body   []Stmt
	Else   []Stmt
}

// While is a while loop.
type While struct {
	pos
	Test Expr
	Body []Stmt
	Else []Stmt
}

// With is a context-manager block, including async variants.
type With struct {
	pos
	Items []Expr
	Body  []Stmt
}

// Try is an exception-handling statement.
type Try struct {
	pos
	Body     []Stmt
	Handlers []*ExceptHandler
	Else     []Stmt
	Finally  []Stmt
}

// ExceptHandler is a single except clause. TypeName is the matched exception
// type when it is a simple identifier, or empty for a bare except.
type ExceptHandler struct {
	pos
	TypeName string
	Body     []Stmt
}

// Return is a return statement.
type Return struct {
	pos
	Value Expr
}

// Raise is a raise statement.
type Raise struct {
	pos
	Exc Expr
}

// Break is a break statement.
type Break struct{ pos }

// Continue is a continue statement.
type Continue struct{ pos }

// Pass is a pass statement.
type Pass struct{ pos }

// Assign is a simple or annotated assignment. Annotated marks `x: T = v`
// forms; Targets are in store context.
type Assign struct {
	pos
	Targets   []Expr
	Value     Expr
	Annotated bool
}

// Assert is an assert statement.
type Assert struct {
	pos
	Test Expr
	Msg  Expr
}

// Import is an import or from-import statement. Names holds the top-level
// names the statement introduces into the module namespace.
type Import struct {
	pos
	Names []string
}

// ExprStmt is a bare expression used as a statement.
type ExprStmt struct {
	pos
	X Expr
}

// OtherStmt covers statement kinds the analyzers have no special handling
// for (global, nonlocal, delete, augmented assignment, ...). Children holds
// the statement's expressions so expression walks still see them.
type OtherStmt struct {
	pos
	Children []Expr
}

// ExceptHandler is deliberately not a Stmt: handlers are clauses of a Try,
// not statements, and must not count toward logical statement totals.

func (*FunctionDef) stmtNode() {}
func (*ClassDef) stmtNode()    {}
func (*If) stmtNode()          {}
func (*For) stmtNode()         {}
func (*While) stmtNode()       {}
func (*With) stmtNode()        {}
func (*Try) stmtNode()         {}
func (*Return) stmtNode()      {}
func (*Raise) stmtNode()       {}
func (*Break) stmtNode()       {}
func (*Continue) stmtNode()    {}
func (*Pass) stmtNode()        {}
func (*Assign) stmtNode()      {}
func (*Assert) stmtNode()      {}
func (*Import) stmtNode()      {}
func (*ExprStmt) stmtNode()    {}
func (*OtherStmt) stmtNode()   {}

// Name is an identifier reference. Load is true when the identifier is read
// rather than assigned to.
type Name struct {
	pos
	ID   string
	Load bool
}

// Attribute is an attribute access `base.attr`. The base expression is
// always in read context, even when the attribute itself is an assignment
// target.
type Attribute struct {
	pos
	Base Expr
	Attr string
}

// BinaryOp is an arithmetic or bitwise binary operation.
type BinaryOp struct {
	pos
	Op    string
	Left  Expr
	Right Expr
}

// BoolOp is a short-circuit boolean combination. Chains of the same operator
// are flattened, so `a and b and c` has three Values.
type BoolOp struct {
	pos
	Op     string
	Values []Expr
}

// Call is a function or method call.
type Call struct {
	pos
	Fn   Expr
	Args []Expr
}

// StringLit is a string literal. Detected separately so docstring coverage
// can recognize a string expression at the start of a body.
type StringLit struct{ pos }

// OtherExpr covers expression kinds the analyzers treat opaquely. Kind is
// the syntactic kind name, used as the operand label in volume calculation.
type OtherExpr struct {
	pos
	Kind     string
	Children []Expr
}

func (*Name) exprNode()      {}
func (*Attribute) exprNode() {}
func (*BinaryOp) exprNode()  {}
func (*BoolOp) exprNode()    {}
func (*Call) exprNode()      {}
func (*StringLit) exprNode() {}
func (*OtherExpr) exprNode() {}
