package parser

// Expr represents an expression node. Expression nodes form a strict tree
// and are immutable once built.
type Expr interface {
	exprNode()
}

// Stmt represents a statement node.
type Stmt interface {
	stmtNode()
}

// LiteralExpr holds a literal value decoded by the scanner: float64, string,
// bool, or nil.
type LiteralExpr struct {
	Value interface{}
}

func (*LiteralExpr) exprNode() {}

// GroupingExpr is a parenthesized expression.
type GroupingExpr struct {
	Expression Expr
}

func (*GroupingExpr) exprNode() {}

// UnaryExpr represents prefix operator application.
type UnaryExpr struct {
	Operator Token
	Right    Expr
}

func (*UnaryExpr) exprNode() {}

// BinaryExpr represents infix operator application, including the comma
// sequencing operator and the :+ concatenation operator.
type BinaryExpr struct {
	Left     Expr
	Operator Token
	Right    Expr
}

func (*BinaryExpr) exprNode() {}

// LogicalExpr is a short-circuiting and/or expression.
type LogicalExpr struct {
	Left     Expr
	Operator Token
	Right    Expr
}

func (*LogicalExpr) exprNode() {}

// TernaryExpr is the right-associative ?: conditional expression.
type TernaryExpr struct {
	Condition Expr
	Then      Expr
	Else      Expr
}

func (*TernaryExpr) exprNode() {}

// VariableExpr refers to a variable by name.
type VariableExpr struct {
	Name Token
}

func (*VariableExpr) exprNode() {}

// AssignExpr mutates an existing binding. Operator is one of = += -= *= /=.
type AssignExpr struct {
	Name     Token
	Operator Token
	Value    Expr
}

func (*AssignExpr) exprNode() {}

// ExpressionStmt evaluates an expression for side effects.
type ExpressionStmt struct {
	Expression Expr
}

func (*ExpressionStmt) stmtNode() {}

// PrintStmt evaluates an expression and emits its display form.
type PrintStmt struct {
	Expression Expr
}

func (*PrintStmt) stmtNode() {}

// VarStmt declares a variable. A nil Initializer leaves the variable in the
// uninitialized state, which is distinct from nil.
type VarStmt struct {
	Name        Token
	Initializer Expr // may be nil
}

func (*VarStmt) stmtNode() {}

// BlockStmt is a brace-delimited statement sequence with its own scope.
type BlockStmt struct {
	Statements []Stmt
}

func (*BlockStmt) stmtNode() {}

// IfStmt conditionally executes one of two branches. A dangling else binds
// to the nearest preceding unmatched if.
type IfStmt struct {
	Condition Expr
	Then      Stmt
	Else      Stmt // may be nil
}

func (*IfStmt) stmtNode() {}

// WhileStmt repeats its body while the condition is truthy. The loop/until
// sugar lowers to this construct during parsing.
type WhileStmt struct {
	Condition Expr
	Body      Stmt
}

func (*WhileStmt) stmtNode() {}

// BreakStmt terminates the nearest dynamically enclosing loop.
type BreakStmt struct {
	Keyword Token
}

func (*BreakStmt) stmtNode() {}
