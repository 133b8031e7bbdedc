package lang

import "github.com/slate-lang/slate/parser"

// Env implements a lexical environment chain. A block or loop body creates
// a child environment on entry; the child becomes unreachable when the
// block exits.
type Env struct {
	enclosing *Env
	values    map[string]Value
}

// NewEnv creates an environment with an optional enclosing parent.
func NewEnv(enclosing *Env) *Env {
	return &Env{
		enclosing: enclosing,
		values:    make(map[string]Value),
	}
}

// Define binds name to value in the current frame, shadowing any outer
// binding of the same name. Redefinition within the same frame overwrites.
func (e *Env) Define(name string, val Value) {
	e.values[name] = val
}

// Get returns the bound value by walking outward from the current frame.
func (e *Env) Get(name parser.Token) (Value, error) {
	if val, ok := e.values[name.Lexeme]; ok {
		return val, nil
	}
	if e.enclosing != nil {
		return e.enclosing.Get(name)
	}
	return Value{}, &RuntimeError{
		Token:   name,
		Message: "Undefined variable '" + name.Lexeme + "'.",
	}
}

// Assign mutates the nearest frame that already defines name. Assignment
// never implicitly creates a new binding.
func (e *Env) Assign(name parser.Token, val Value) error {
	if _, ok := e.values[name.Lexeme]; ok {
		e.values[name.Lexeme] = val
		return nil
	}
	if e.enclosing != nil {
		return e.enclosing.Assign(name, val)
	}
	return &RuntimeError{
		Token:   name,
		Message: "Undefined variable '" + name.Lexeme + "'.",
	}
}

// Enclosing returns the parent environment.
func (e *Env) Enclosing() *Env {
	return e.enclosing
}
