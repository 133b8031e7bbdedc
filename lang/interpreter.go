package lang

import (
	"fmt"
	"io"
	"os"

	"github.com/slate-lang/slate/parser"
)

// RuntimeError reports an operation undefined for its operand kinds. The
// first runtime error halts interpretation; there is no recovery.
type RuntimeError struct {
	Token   parser.Token
	Message string
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("%s\n[line %d]", e.Message, e.Token.Line)
}

// control is the non-error transfer a statement can request. Break unwinds
// to the innermost enclosing loop and no further; it is carried separately
// from the error return so the two signals can never be conflated.
type control int

const (
	ctrlNone control = iota
	ctrlBreak
)

// Interpreter walks statement and expression nodes against an environment
// chain. Execution is single-threaded and strictly sequential.
type Interpreter struct {
	// Global is the top-level frame. Callers wanting a persistent REPL
	// session keep the interpreter and reuse it across Interpret calls.
	Global *Env

	out io.Writer
}

// NewInterpreter constructs an interpreter rooted at a fresh global
// environment. Print output goes to out, or stdout when out is nil.
func NewInterpreter(out io.Writer) *Interpreter {
	if out == nil {
		out = os.Stdout
	}
	return &Interpreter{
		Global: NewEnv(nil),
		out:    out,
	}
}

// Interpret executes statements in order against env, defaulting to the
// global environment when env is nil. The first runtime error is returned
// and execution stops immediately.
func (in *Interpreter) Interpret(stmts []parser.Stmt, env *Env) error {
	if env == nil {
		env = in.Global
	}
	for _, stmt := range stmts {
		if _, err := in.execute(stmt, env); err != nil {
			return err
		}
	}
	return nil
}

// Evaluate evaluates a single expression against env (global when nil).
// The REPL uses it to echo the value of a lone expression statement.
func (in *Interpreter) Evaluate(expr parser.Expr, env *Env) (Value, error) {
	if env == nil {
		env = in.Global
	}
	return in.evaluate(expr, env)
}

func (in *Interpreter) execute(stmt parser.Stmt, env *Env) (control, error) {
	switch s := stmt.(type) {
	case *parser.ExpressionStmt:
		_, err := in.evaluate(s.Expression, env)
		return ctrlNone, err

	case *parser.PrintStmt:
		val, err := in.evaluate(s.Expression, env)
		if err != nil {
			return ctrlNone, err
		}
		fmt.Fprintln(in.out, val.String())
		return ctrlNone, nil

	case *parser.VarStmt:
		value := Uninitialized
		if s.Initializer != nil {
			val, err := in.evaluate(s.Initializer, env)
			if err != nil {
				return ctrlNone, err
			}
			value = val
		}
		env.Define(s.Name.Lexeme, value)
		return ctrlNone, nil

	case *parser.BlockStmt:
		return in.executeBlock(s.Statements, NewEnv(env))

	case *parser.IfStmt:
		cond, err := in.evaluate(s.Condition, env)
		if err != nil {
			return ctrlNone, err
		}
		if cond.Truthy() {
			return in.execute(s.Then, env)
		}
		if s.Else != nil {
			return in.execute(s.Else, env)
		}
		return ctrlNone, nil

	case *parser.WhileStmt:
		for {
			cond, err := in.evaluate(s.Condition, env)
			if err != nil {
				return ctrlNone, err
			}
			if !cond.Truthy() {
				return ctrlNone, nil
			}
			ctrl, err := in.execute(s.Body, env)
			if err != nil {
				return ctrlNone, err
			}
			if ctrl == ctrlBreak {
				// The loop is the unwind boundary: break stops here.
				return ctrlNone, nil
			}
		}

	case *parser.BreakStmt:
		return ctrlBreak, nil

	default:
		return ctrlNone, fmt.Errorf("unhandled statement %T", stmt)
	}
}

func (in *Interpreter) executeBlock(stmts []parser.Stmt, env *Env) (control, error) {
	for _, stmt := range stmts {
		ctrl, err := in.execute(stmt, env)
		if err != nil {
			return ctrlNone, err
		}
		if ctrl != ctrlNone {
			return ctrl, nil
		}
	}
	return ctrlNone, nil
}

func (in *Interpreter) evaluate(expr parser.Expr, env *Env) (Value, error) {
	switch e := expr.(type) {
	case *parser.LiteralExpr:
		return literalValue(e.Value), nil

	case *parser.GroupingExpr:
		return in.evaluate(e.Expression, env)

	case *parser.UnaryExpr:
		right, err := in.evaluate(e.Right, env)
		if err != nil {
			return Value{}, err
		}
		switch e.Operator.Type {
		case parser.Minus:
			if right.Type != TypeNumber {
				return Value{}, &RuntimeError{Token: e.Operator, Message: "Operand must be a number."}
			}
			return NumberValue(-right.Number()), nil
		case parser.Bang:
			return BoolValue(!right.Truthy()), nil
		}
		return Value{}, fmt.Errorf("unhandled unary operator %s", e.Operator.Type)

	case *parser.BinaryExpr:
		if e.Operator.Type == parser.Comma {
			// Sequencing: evaluate and discard the left operand.
			if _, err := in.evaluate(e.Left, env); err != nil {
				return Value{}, err
			}
			return in.evaluate(e.Right, env)
		}
		left, err := in.evaluate(e.Left, env)
		if err != nil {
			return Value{}, err
		}
		right, err := in.evaluate(e.Right, env)
		if err != nil {
			return Value{}, err
		}
		return in.binaryOp(e.Operator, left, right)

	case *parser.LogicalExpr:
		left, err := in.evaluate(e.Left, env)
		if err != nil {
			return Value{}, err
		}
		// Short circuit, returning the original operand value rather than
		// a normalized boolean.
		if e.Operator.Type == parser.Or {
			if left.Truthy() {
				return left, nil
			}
		} else if !left.Truthy() {
			return left, nil
		}
		return in.evaluate(e.Right, env)

	case *parser.TernaryExpr:
		cond, err := in.evaluate(e.Condition, env)
		if err != nil {
			return Value{}, err
		}
		if cond.Truthy() {
			return in.evaluate(e.Then, env)
		}
		return in.evaluate(e.Else, env)

	case *parser.VariableExpr:
		return in.lookup(e.Name, env)

	case *parser.AssignExpr:
		value, err := in.evaluate(e.Value, env)
		if err != nil {
			return Value{}, err
		}
		if e.Operator.Type != parser.Equal {
			current, err := in.lookup(e.Name, env)
			if err != nil {
				return Value{}, err
			}
			value, err = in.binaryOp(e.Operator, current, value)
			if err != nil {
				return Value{}, err
			}
		}
		if err := env.Assign(e.Name, value); err != nil {
			return Value{}, err
		}
		return value, nil
	}
	return Value{}, fmt.Errorf("unhandled expression %T", expr)
}

// lookup resolves a variable read, rejecting the uninitialized sentinel.
func (in *Interpreter) lookup(name parser.Token, env *Env) (Value, error) {
	val, err := env.Get(name)
	if err != nil {
		return Value{}, err
	}
	if val.Type == TypeUninitialized {
		return Value{}, &RuntimeError{
			Token:   name,
			Message: "Uninitialized variable '" + name.Lexeme + "'.",
		}
	}
	return val, nil
}

// binaryOp applies an infix operator to already-evaluated operands. The
// compound assignment operators share the semantics of their base operator.
func (in *Interpreter) binaryOp(op parser.Token, left, right Value) (Value, error) {
	switch op.Type {
	case parser.BangEqual:
		return BoolValue(!left.Equal(right)), nil
	case parser.EqualEqual:
		return BoolValue(left.Equal(right)), nil

	case parser.Concat:
		// :+ converts both operands to their display form, whatever their kind.
		return StringValue(left.String() + right.String()), nil

	case parser.Plus, parser.PlusEqual:
		if left.Type == TypeNumber && right.Type == TypeNumber {
			return NumberValue(left.Number() + right.Number()), nil
		}
		if left.Type == TypeString && right.Type == TypeString {
			return StringValue(left.Str() + right.Str()), nil
		}
		return Value{}, &RuntimeError{Token: op, Message: "Operands must be two numbers or two strings."}

	case parser.Minus, parser.MinusEqual:
		if err := checkNumberOperands(op, left, right); err != nil {
			return Value{}, err
		}
		return NumberValue(left.Number() - right.Number()), nil

	case parser.Star, parser.StarEqual:
		if err := checkNumberOperands(op, left, right); err != nil {
			return Value{}, err
		}
		return NumberValue(left.Number() * right.Number()), nil

	case parser.Slash, parser.SlashEqual:
		if err := checkNumberOperands(op, left, right); err != nil {
			return Value{}, err
		}
		if right.Number() == 0 {
			return Value{}, &RuntimeError{Token: op, Message: "Division by zero."}
		}
		return NumberValue(left.Number() / right.Number()), nil

	case parser.Greater:
		if err := checkNumberOperands(op, left, right); err != nil {
			return Value{}, err
		}
		return BoolValue(left.Number() > right.Number()), nil
	case parser.GreaterEqual:
		if err := checkNumberOperands(op, left, right); err != nil {
			return Value{}, err
		}
		return BoolValue(left.Number() >= right.Number()), nil
	case parser.Less:
		if err := checkNumberOperands(op, left, right); err != nil {
			return Value{}, err
		}
		return BoolValue(left.Number() < right.Number()), nil
	case parser.LessEqual:
		if err := checkNumberOperands(op, left, right); err != nil {
			return Value{}, err
		}
		return BoolValue(left.Number() <= right.Number()), nil
	}
	return Value{}, fmt.Errorf("unhandled binary operator %s", op.Type)
}

func checkNumberOperands(op parser.Token, left, right Value) error {
	if left.Type == TypeNumber && right.Type == TypeNumber {
		return nil
	}
	return &RuntimeError{Token: op, Message: "Operands must be numbers."}
}

func literalValue(value interface{}) Value {
	switch v := value.(type) {
	case nil:
		return Nil
	case bool:
		return BoolValue(v)
	case float64:
		return NumberValue(v)
	case string:
		return StringValue(v)
	default:
		return Nil
	}
}
