package parser

import (
	"strconv"
	"strings"
)

// AstPrinter renders AST nodes in a parenthesized prefix form, e.g.
// (* (- 123) (group 45.67)). Useful for debugging grammar changes and for
// the --ast flag of the driver.
type AstPrinter struct{}

// Print renders a whole program, one statement per line.
func (pr AstPrinter) Print(stmts []Stmt) string {
	lines := make([]string, 0, len(stmts))
	for _, stmt := range stmts {
		lines = append(lines, pr.PrintStmt(stmt))
	}
	return strings.Join(lines, "\n")
}

// PrintStmt renders a single statement.
func (pr AstPrinter) PrintStmt(stmt Stmt) string {
	switch s := stmt.(type) {
	case *ExpressionStmt:
		return pr.parenthesize(";", s.Expression)
	case *PrintStmt:
		return pr.parenthesize("print", s.Expression)
	case *VarStmt:
		if s.Initializer == nil {
			return "(var " + s.Name.Lexeme + ")"
		}
		return "(var " + s.Name.Lexeme + " = " + pr.PrintExpr(s.Initializer) + ")"
	case *BlockStmt:
		var sb strings.Builder
		sb.WriteString("(block")
		for _, inner := range s.Statements {
			sb.WriteString(" ")
			sb.WriteString(pr.PrintStmt(inner))
		}
		sb.WriteString(")")
		return sb.String()
	case *IfStmt:
		if s.Else == nil {
			return "(if " + pr.PrintExpr(s.Condition) + " " + pr.PrintStmt(s.Then) + ")"
		}
		return "(if-else " + pr.PrintExpr(s.Condition) + " " +
			pr.PrintStmt(s.Then) + " " + pr.PrintStmt(s.Else) + ")"
	case *WhileStmt:
		return "(while " + pr.PrintExpr(s.Condition) + " " + pr.PrintStmt(s.Body) + ")"
	case *BreakStmt:
		return "(break)"
	default:
		return "(unknown)"
	}
}

// PrintExpr renders a single expression.
func (pr AstPrinter) PrintExpr(expr Expr) string {
	switch e := expr.(type) {
	case *LiteralExpr:
		return literalString(e.Value)
	case *GroupingExpr:
		return pr.parenthesize("group", e.Expression)
	case *UnaryExpr:
		return pr.parenthesize(e.Operator.Lexeme, e.Right)
	case *BinaryExpr:
		return pr.parenthesize(e.Operator.Lexeme, e.Left, e.Right)
	case *LogicalExpr:
		return pr.parenthesize(e.Operator.Lexeme, e.Left, e.Right)
	case *TernaryExpr:
		return pr.parenthesize("?:", e.Condition, e.Then, e.Else)
	case *VariableExpr:
		return e.Name.Lexeme
	case *AssignExpr:
		return "(" + e.Operator.Lexeme + " " + e.Name.Lexeme + " " + pr.PrintExpr(e.Value) + ")"
	default:
		return "(unknown)"
	}
}

func (pr AstPrinter) parenthesize(name string, exprs ...Expr) string {
	var sb strings.Builder
	sb.WriteString("(")
	sb.WriteString(name)
	for _, expr := range exprs {
		sb.WriteString(" ")
		sb.WriteString(pr.PrintExpr(expr))
	}
	sb.WriteString(")")
	return sb.String()
}

// RpnPrinter renders expressions in reverse Polish notation:
// (1 + 2) * (4 - 3) becomes "1 2 + 4 3 - *".
type RpnPrinter struct{}

// PrintExpr renders a single expression in postfix order.
func (pr RpnPrinter) PrintExpr(expr Expr) string {
	switch e := expr.(type) {
	case *LiteralExpr:
		return literalString(e.Value)
	case *GroupingExpr:
		return pr.PrintExpr(e.Expression)
	case *UnaryExpr:
		return pr.PrintExpr(e.Right) + " " + e.Operator.Lexeme
	case *BinaryExpr:
		return pr.PrintExpr(e.Left) + " " + pr.PrintExpr(e.Right) + " " + e.Operator.Lexeme
	case *LogicalExpr:
		return pr.PrintExpr(e.Left) + " " + pr.PrintExpr(e.Right) + " " + e.Operator.Lexeme
	case *TernaryExpr:
		return pr.PrintExpr(e.Condition) + " " + pr.PrintExpr(e.Then) + " " +
			pr.PrintExpr(e.Else) + " ?:"
	case *VariableExpr:
		return e.Name.Lexeme
	case *AssignExpr:
		return pr.PrintExpr(e.Value) + " " + e.Name.Lexeme + " " + e.Operator.Lexeme
	default:
		return "?"
	}
}

func literalString(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return "nil"
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	case string:
		return v
	default:
		return "?"
	}
}
