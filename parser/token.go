package parser

import "fmt"

// TokenType enumerates lexical categories recognised by the Slate scanner.
type TokenType int

const (
	EOF TokenType = iota

	// Single-character tokens
	LeftParen  // (
	RightParen // )
	LeftBrace  // {
	RightBrace // }
	Comma      // ,
	Dot        // .
	Minus      // -
	Plus       // +
	Semicolon  // ;
	Slash      // /
	Star       // *
	Bang       // !
	Question   // ?
	Colon      // :
	Equal      // =
	Less       // <
	Greater    // >

	// Two-character tokens
	BangEqual    // !=
	EqualEqual   // ==
	GreaterEqual // >=
	LessEqual    // <=
	Concat       // :+
	PlusEqual    // +=
	MinusEqual   // -=
	StarEqual    // *=
	SlashEqual   // /=

	// Literals
	Identifier
	String
	Number

	// Keywords
	And
	Break
	Else
	False
	For
	If
	Loop
	Nil
	Or
	Print
	True
	Until
	Var
	While
)

func (tt TokenType) String() string {
	switch tt {
	case EOF:
		return "EOF"
	case LeftParen:
		return "("
	case RightParen:
		return ")"
	case LeftBrace:
		return "{"
	case RightBrace:
		return "}"
	case Comma:
		return ","
	case Dot:
		return "."
	case Minus:
		return "-"
	case Plus:
		return "+"
	case Semicolon:
		return ";"
	case Slash:
		return "/"
	case Star:
		return "*"
	case Bang:
		return "!"
	case Question:
		return "?"
	case Colon:
		return ":"
	case Equal:
		return "="
	case Less:
		return "<"
	case Greater:
		return ">"
	case BangEqual:
		return "!="
	case EqualEqual:
		return "=="
	case GreaterEqual:
		return ">="
	case LessEqual:
		return "<="
	case Concat:
		return ":+"
	case PlusEqual:
		return "+="
	case MinusEqual:
		return "-="
	case StarEqual:
		return "*="
	case SlashEqual:
		return "/="
	case Identifier:
		return "identifier"
	case String:
		return "string"
	case Number:
		return "number"
	case And:
		return "and"
	case Break:
		return "break"
	case Else:
		return "else"
	case False:
		return "false"
	case For:
		return "for"
	case If:
		return "if"
	case Loop:
		return "loop"
	case Nil:
		return "nil"
	case Or:
		return "or"
	case Print:
		return "print"
	case True:
		return "true"
	case Until:
		return "until"
	case Var:
		return "var"
	case While:
		return "while"
	default:
		return "unknown"
	}
}

// Token is a single lexical unit produced by the scanner.
type Token struct {
	Type    TokenType
	Lexeme  string      // raw source substring the token was scanned from
	Literal interface{} // decoded literal value for numbers and strings
	Line    int         // one-based line number
}

func (t Token) String() string {
	if t.Literal != nil {
		return fmt.Sprintf("%s %s %v", t.Type, t.Lexeme, t.Literal)
	}
	return fmt.Sprintf("%s %s", t.Type, t.Lexeme)
}
