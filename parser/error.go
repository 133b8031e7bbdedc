package parser

import "fmt"

// Error is a diagnostic produced by the scanner or the parser. It carries
// enough context to format a user-facing message on its own.
type Error struct {
	Line    int
	Where   string // " at 'lexeme'", " at end", or empty for lexical errors
	Message string

	// Incomplete marks errors caused by input that ended too early
	// (unterminated string or block comment, syntax error at EOF). The REPL
	// uses it to keep buffering instead of reporting.
	Incomplete bool
}

func (e *Error) Error() string {
	return fmt.Sprintf("[line %d] Error%s: %s", e.Line, e.Where, e.Message)
}

func errorOnLine(line int, message string) *Error {
	return &Error{Line: line, Message: message}
}

func errorAt(tok Token, message string) *Error {
	if tok.Type == EOF {
		return &Error{Line: tok.Line, Where: " at end", Message: message, Incomplete: true}
	}
	return &Error{Line: tok.Line, Where: fmt.Sprintf(" at '%s'", tok.Lexeme), Message: message}
}

// HasIncomplete reports whether any diagnostic was caused by input that
// ended too early.
func HasIncomplete(errs []*Error) bool {
	for _, e := range errs {
		if e.Incomplete {
			return true
		}
	}
	return false
}
