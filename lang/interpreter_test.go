package lang

import (
	"bytes"
	"strings"
	"testing"

	"github.com/slate-lang/slate/parser"
)

func runProgram(t *testing.T, src string) (string, error) {
	t.Helper()
	tokens, scanErrs := parser.Scan(src)
	if len(scanErrs) != 0 {
		t.Fatalf("scan errors: %v", scanErrs)
	}
	stmts, parseErrs := parser.Parse(tokens)
	if len(parseErrs) != 0 {
		t.Fatalf("parse errors: %v", parseErrs)
	}
	var out bytes.Buffer
	in := NewInterpreter(&out)
	err := in.Interpret(stmts, nil)
	return out.String(), err
}

func expectOutput(t *testing.T, src, want string) {
	t.Helper()
	got, err := runProgram(t, src)
	if err != nil {
		t.Fatalf("unexpected runtime error: %v", err)
	}
	if got != want {
		t.Errorf("expected output %q, got %q", want, got)
	}
}

func expectRuntimeError(t *testing.T, src, wantMsg string) {
	t.Helper()
	_, err := runProgram(t, src)
	if err == nil {
		t.Fatalf("expected a runtime error containing %q", wantMsg)
	}
	rtErr, ok := err.(*RuntimeError)
	if !ok {
		t.Fatalf("expected *RuntimeError, got %T: %v", err, err)
	}
	if rtErr.Message != wantMsg {
		t.Errorf("expected message %q, got %q", wantMsg, rtErr.Message)
	}
}

func TestInterpretArithmetic(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"print 1 + 2 * 3;", "7\n"},
		{"print (1 + 2) * 3;", "9\n"},
		{"print 10 - 4 - 3;", "3\n"},
		{"print 7 / 2;", "3.5\n"},
		{"print -(-3);", "3\n"},
		{"print \"foo\" + \"bar\";", "foobar\n"},
	}
	for _, tt := range tests {
		expectOutput(t, tt.src, tt.want)
	}
}

func TestInterpretOperandErrors(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"print 1 + \"a\";", "Operands must be two numbers or two strings."},
		{"print \"a\" + 1;", "Operands must be two numbers or two strings."},
		{"print true + true;", "Operands must be two numbers or two strings."},
		{"print 1 - \"a\";", "Operands must be numbers."},
		{"print \"a\" * 2;", "Operands must be numbers."},
		{"print 1 < \"a\";", "Operands must be numbers."},
		{"print -\"a\";", "Operand must be a number."},
	}
	for _, tt := range tests {
		expectRuntimeError(t, tt.src, tt.want)
	}
}

func TestInterpretDivisionByZero(t *testing.T) {
	expectRuntimeError(t, "print 1 / 0;", "Division by zero.")
	expectRuntimeError(t, "var x = 4; x /= 0;", "Division by zero.")
}

func TestInterpretRuntimeErrorFormat(t *testing.T) {
	_, err := runProgram(t, "print 1;\nprint 2 / 0;")
	if err == nil {
		t.Fatal("expected a runtime error")
	}
	want := "Division by zero.\n[line 2]"
	if err.Error() != want {
		t.Errorf("expected %q, got %q", want, err.Error())
	}
}

func TestInterpretHaltsOnFirstRuntimeError(t *testing.T) {
	got, err := runProgram(t, "print 1; print 2 / 0; print 3;")
	if err == nil {
		t.Fatal("expected a runtime error")
	}
	if got != "1\n" {
		t.Errorf("expected only output before the error, got %q", got)
	}
}

func TestInterpretConcatenation(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"print 6699 :+ \", Name: \" :+ \"Ned\";", "6699, Name: Ned\n"},
		{"print 1 :+ 2;", "12\n"},
		{"print nil :+ true;", "niltrue\n"},
		{"print \"n=\" :+ 1 + 2;", "n=3\n"},
	}
	for _, tt := range tests {
		expectOutput(t, tt.src, tt.want)
	}
}

func TestInterpretComparisonAndEquality(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"print 1 < 2;", "true\n"},
		{"print 2 <= 2;", "true\n"},
		{"print 3 > 4;", "false\n"},
		{"print 1 == 1;", "true\n"},
		{"print 1 != 1;", "false\n"},
		{"print 1 == \"1\";", "false\n"},
		{"print nil == nil;", "true\n"},
		{"print nil == false;", "false\n"},
		{"print \"a\" == \"a\";", "true\n"},
	}
	for _, tt := range tests {
		expectOutput(t, tt.src, tt.want)
	}
}

func TestInterpretLogicalOperators(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		// and/or return an operand value, not a normalized boolean.
		{"print nil or \"fallback\";", "fallback\n"},
		{"print 1 or 2;", "1\n"},
		{"print 0 and 1;", "1\n"},
		{"print false and 1;", "false\n"},
		{"print !nil;", "true\n"},
		{"print !0;", "false\n"},
	}
	for _, tt := range tests {
		expectOutput(t, tt.src, tt.want)
	}
}

func TestInterpretShortCircuit(t *testing.T) {
	// The right operand must not be evaluated when the left decides.
	expectOutput(t, "var a = 0; true or (a = 1); print a;", "0\n")
	expectOutput(t, "var a = 0; false and (a = 1); print a;", "0\n")
	expectOutput(t, "var a = 0; false or (a = 1); print a;", "1\n")
	expectOutput(t, "var a = 0; true and (a = 1); print a;", "1\n")
}

func TestInterpretTernary(t *testing.T) {
	expectOutput(t, "print true ? 1 : 2;", "1\n")
	expectOutput(t, "print false ? 1 : 2;", "2\n")
	expectOutput(t, "print false ? 1 : true ? 2 : 3;", "2\n")
	// Only the taken branch is evaluated.
	expectOutput(t, "var a = 0; var b = true ? 1 : (a = 9); print a;", "0\n")
}

func TestInterpretCommaOperator(t *testing.T) {
	expectOutput(t, "print (1, 2, 3);", "3\n")
	// Discarded operands still evaluate, in order.
	expectOutput(t, "var a = 0; var b = (a = 1, a + 10); print a; print b;", "1\n11\n")
}

func TestInterpretUninitializedVariable(t *testing.T) {
	expectRuntimeError(t, "var x; print x;", "Uninitialized variable 'x'.")
	expectRuntimeError(t, "var x; var y = x + 1;", "Uninitialized variable 'x'.")
	expectRuntimeError(t, "var x; x += 1;", "Uninitialized variable 'x'.")
	// Assignment heals the sentinel.
	expectOutput(t, "var x; x = 1; print x;", "1\n")
	// nil is a value, not the sentinel.
	expectOutput(t, "var x = nil; print x;", "nil\n")
}

func TestInterpretUndefinedVariable(t *testing.T) {
	expectRuntimeError(t, "print q;", "Undefined variable 'q'.")
	expectRuntimeError(t, "q = 1;", "Undefined variable 'q'.")
}

func TestInterpretAssignment(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"var x = 1; print x = 2;", "2\n"},
		{"var a; var b; a = b = 5; print a; print b;", "5\n5\n"},
		{"var x = 1; x += 2; print x;", "3\n"},
		{"var x = 5; x -= 2; print x;", "3\n"},
		{"var x = 3; x *= 4; print x;", "12\n"},
		{"var x = 9; x /= 3; print x;", "3\n"},
		{"var s = \"a\"; s += \"b\"; print s;", "ab\n"},
	}
	for _, tt := range tests {
		expectOutput(t, tt.src, tt.want)
	}
	expectRuntimeError(t, "var x = 1; x += \"a\";", "Operands must be two numbers or two strings.")
}

func TestInterpretShadowing(t *testing.T) {
	// The initializer runs in the enclosing scope, so the inner a reads the
	// outer binding, and leaving the block uncovers it.
	src := `var a = 1;
{
	var a = a + 2;
	print a;
}
print a;`
	expectOutput(t, src, "3\n1\n")
}

func TestInterpretBlocks(t *testing.T) {
	expectOutput(t, "var a = 1; { a = 2; } print a;", "2\n")
	expectRuntimeError(t, "{ var b = 1; } print b;", "Undefined variable 'b'.")
}

func TestInterpretWhile(t *testing.T) {
	src := `var i = 0;
while (i < 3) {
	print i;
	i = i + 1;
}`
	expectOutput(t, src, "0\n1\n2\n")
	expectOutput(t, "while (false) print 1; print \"done\";", "done\n")
}

func TestInterpretBreak(t *testing.T) {
	src := `var i = 0;
while (true) {
	{
		if (i >= 2) break;
	}
	i = i + 1;
}
print i;`
	expectOutput(t, src, "2\n")

	// break exits only the innermost loop.
	nested := `var total = 0;
var i = 0;
while (i < 3) {
	var j = 0;
	while (true) {
		if (j >= 2) break;
		j = j + 1;
		total = total + 1;
	}
	i = i + 1;
}
print total;`
	expectOutput(t, nested, "6\n")
}

func TestInterpretLoopUntil(t *testing.T) {
	// Post-test: the body always runs at least once.
	expectOutput(t, "loop { print \"x\"; } until (true);", "x\n")

	src := `var i = 0;
loop {
	print i;
	i = i + 1;
} until (i >= 3);`
	expectOutput(t, src, "0\n1\n2\n")

	expectOutput(t, "var i = 0; loop { i = i + 1; if (i >= 4) break; } print i;", "4\n")
}

func TestInterpretNumberDisplay(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"print 120;", "120\n"},
		{"print 2.5 + 1;", "3.5\n"},
		{"print 0 - 0.5;", "-0.5\n"},
		{"print 100 * 100;", "10000\n"},
	}
	for _, tt := range tests {
		expectOutput(t, tt.src, tt.want)
	}
}

func TestInterpreterGlobalPersists(t *testing.T) {
	// Interactive sessions reuse one interpreter; definitions from an
	// earlier chunk stay visible to later ones.
	var out bytes.Buffer
	in := NewInterpreter(&out)

	run := func(src string) {
		t.Helper()
		tokens, _ := parser.Scan(src)
		stmts, errs := parser.Parse(tokens)
		if len(errs) != 0 {
			t.Fatalf("parse errors: %v", errs)
		}
		if err := in.Interpret(stmts, nil); err != nil {
			t.Fatalf("runtime error: %v", err)
		}
	}

	run("var x = 40;")
	run("x = x + 2;")
	run("print x;")
	if got := out.String(); got != "42\n" {
		t.Errorf("expected %q, got %q", "42\n", got)
	}
}

func TestInterpreterRecoversAfterError(t *testing.T) {
	// A REPL session keeps its state after a failed chunk.
	var out bytes.Buffer
	in := NewInterpreter(&out)

	tokens, _ := parser.Scan("var x = 1; print y;")
	stmts, _ := parser.Parse(tokens)
	err := in.Interpret(stmts, nil)
	if err == nil || !strings.Contains(err.Error(), "Undefined variable 'y'.") {
		t.Fatalf("expected undefined variable error, got %v", err)
	}

	tokens, _ = parser.Scan("print x;")
	stmts, _ = parser.Parse(tokens)
	if err := in.Interpret(stmts, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := out.String(); got != "1\n" {
		t.Errorf("expected %q, got %q", "1\n", got)
	}
}
