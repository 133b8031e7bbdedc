package parser

import "testing"

func TestAstPrinterPrefixForm(t *testing.T) {
	// -123 * (45.67), built by hand to pin the rendering independently of
	// the parser.
	expr := &BinaryExpr{
		Left: &UnaryExpr{
			Operator: Token{Type: Minus, Lexeme: "-", Line: 1},
			Right:    &LiteralExpr{Value: float64(123)},
		},
		Operator: Token{Type: Star, Lexeme: "*", Line: 1},
		Right: &GroupingExpr{
			Expression: &LiteralExpr{Value: 45.67},
		},
	}

	want := "(* (- 123) (group 45.67))"
	if got := (AstPrinter{}).PrintExpr(expr); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestAstPrinterLiterals(t *testing.T) {
	tests := []struct {
		value interface{}
		want  string
	}{
		{nil, "nil"},
		{true, "true"},
		{false, "false"},
		{float64(120), "120"},
		{3.5, "3.5"},
		{"hi", "hi"},
	}
	for _, tt := range tests {
		got := (AstPrinter{}).PrintExpr(&LiteralExpr{Value: tt.value})
		if got != tt.want {
			t.Errorf("literal %v: expected %q, got %q", tt.value, tt.want, got)
		}
	}
}

func TestAstPrinterProgram(t *testing.T) {
	stmts := mustParse(t, "var x = 1; print x;")
	want := "(var x = 1)\n(print x)"
	if got := (AstPrinter{}).Print(stmts); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestRpnPrinter(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"(1 + 2) * (4 - 3)", "1 2 + 4 3 - *"},
		{"1 + 2 * 3", "1 2 3 * +"},
		{"-1", "1 -"},
		{"a ? b : c", "a b c ?:"},
	}
	for _, tt := range tests {
		stmts := mustParse(t, tt.src+";")
		es := stmts[0].(*ExpressionStmt)
		if got := (RpnPrinter{}).PrintExpr(es.Expression); got != tt.want {
			t.Errorf("%q: expected %q, got %q", tt.src, tt.want, got)
		}
	}
}
