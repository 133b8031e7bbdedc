package parser

import (
	"strconv"
	"unicode"
	"unicode/utf8"
)

var keywords = map[string]TokenType{
	"and":   And,
	"break": Break,
	"else":  Else,
	"false": False,
	"for":   For,
	"if":    If,
	"loop":  Loop,
	"nil":   Nil,
	"or":    Or,
	"print": Print,
	"true":  True,
	"until": Until,
	"var":   Var,
	"while": While,
}

// Scanner converts source text into a flat token stream in a single
// left-to-right pass. Lexical errors are accumulated, not fatal: scanning
// continues so the stream stays as complete as possible for downstream
// reporting.
type Scanner struct {
	src     string
	tokens  []Token
	errs    []*Error
	start   int // byte offset of the lexeme being scanned
	current int // byte offset of the next unread rune
	line    int
}

// NewScanner creates a scanner over the full source text.
func NewScanner(src string) *Scanner {
	return &Scanner{src: src, line: 1}
}

// Scan tokenizes source text and returns the token stream together with any
// lexical errors. The stream is always terminated by exactly one EOF token.
func Scan(src string) ([]Token, []*Error) {
	s := NewScanner(src)
	return s.ScanTokens(), s.Errors()
}

// ScanTokens runs the scanner over the whole source.
func (s *Scanner) ScanTokens() []Token {
	for !s.isAtEnd() {
		s.start = s.current
		s.scanToken()
	}
	s.tokens = append(s.tokens, Token{Type: EOF, Line: s.line})
	return s.tokens
}

// Errors returns the lexical errors encountered so far.
func (s *Scanner) Errors() []*Error {
	return s.errs
}

func (s *Scanner) scanToken() {
	r := s.advance()
	switch r {
	case '(':
		s.addToken(LeftParen)
	case ')':
		s.addToken(RightParen)
	case '{':
		s.addToken(LeftBrace)
	case '}':
		s.addToken(RightBrace)
	case ',':
		s.addToken(Comma)
	case '.':
		s.addToken(Dot)
	case ';':
		s.addToken(Semicolon)
	case '?':
		s.addToken(Question)
	case '+':
		if s.match('=') {
			s.addToken(PlusEqual)
		} else {
			s.addToken(Plus)
		}
	case '-':
		if s.match('=') {
			s.addToken(MinusEqual)
		} else {
			s.addToken(Minus)
		}
	case '*':
		if s.match('=') {
			s.addToken(StarEqual)
		} else {
			s.addToken(Star)
		}
	case ':':
		if s.match('+') {
			s.addToken(Concat)
		} else {
			s.addToken(Colon)
		}
	case '!':
		if s.match('=') {
			s.addToken(BangEqual)
		} else {
			s.addToken(Bang)
		}
	case '=':
		if s.match('=') {
			s.addToken(EqualEqual)
		} else {
			s.addToken(Equal)
		}
	case '<':
		if s.match('=') {
			s.addToken(LessEqual)
		} else {
			s.addToken(Less)
		}
	case '>':
		if s.match('=') {
			s.addToken(GreaterEqual)
		} else {
			s.addToken(Greater)
		}
	case '/':
		switch {
		case s.match('/'):
			for s.peek() != '\n' && !s.isAtEnd() {
				s.advance()
			}
		case s.match('*'):
			s.blockComment()
		case s.match('='):
			s.addToken(SlashEqual)
		default:
			s.addToken(Slash)
		}
	case ' ', '\r', '\t':
		// whitespace
	case '\n':
		s.line++
	case '"':
		s.stringLiteral()
	default:
		switch {
		case isDigit(r):
			s.number()
		case isAlpha(r):
			s.identifier()
		default:
			s.errs = append(s.errs, errorOnLine(s.line, "Unexpected character."))
		}
	}
}

// blockComment consumes a /* ... */ comment, allowing arbitrary nesting.
// Reaching end-of-input with the nesting depth still positive is a lexical
// error, but it does not abort the remaining scan.
func (s *Scanner) blockComment() {
	depth := 1
	for depth > 0 {
		if s.isAtEnd() {
			s.errs = append(s.errs, &Error{
				Line:       s.line,
				Message:    "Unterminated block comment.",
				Incomplete: true,
			})
			return
		}
		switch {
		case s.peek() == '\n':
			s.line++
			s.advance()
		case s.peek() == '/' && s.peekNext() == '*':
			s.advance()
			s.advance()
			depth++
		case s.peek() == '*' && s.peekNext() == '/':
			s.advance()
			s.advance()
			depth--
		default:
			s.advance()
		}
	}
}

func (s *Scanner) stringLiteral() {
	for s.peek() != '"' && !s.isAtEnd() {
		if s.peek() == '\n' {
			s.line++
		}
		s.advance()
	}
	if s.isAtEnd() {
		s.errs = append(s.errs, &Error{
			Line:       s.line,
			Message:    "Unterminated string.",
			Incomplete: true,
		})
		return
	}
	// The closing quote.
	s.advance()
	value := s.src[s.start+1 : s.current-1]
	s.addLiteralToken(String, value)
}

func (s *Scanner) number() {
	for isDigit(s.peek()) {
		s.advance()
	}
	// A fractional part requires a digit after the dot, so that `1.` scans
	// as a number followed by a dot.
	if s.peek() == '.' && isDigit(s.peekNext()) {
		s.advance()
		for isDigit(s.peek()) {
			s.advance()
		}
	}
	value, err := strconv.ParseFloat(s.src[s.start:s.current], 64)
	if err != nil {
		s.errs = append(s.errs, errorOnLine(s.line, "Invalid number literal."))
		return
	}
	s.addLiteralToken(Number, value)
}

func (s *Scanner) identifier() {
	for isAlphaNumeric(s.peek()) {
		s.advance()
	}
	text := s.src[s.start:s.current]
	if keyword, ok := keywords[text]; ok {
		s.addToken(keyword)
		return
	}
	s.addToken(Identifier)
}

func (s *Scanner) addToken(tt TokenType) {
	s.addLiteralToken(tt, nil)
}

func (s *Scanner) addLiteralToken(tt TokenType, literal interface{}) {
	s.tokens = append(s.tokens, Token{
		Type:    tt,
		Lexeme:  s.src[s.start:s.current],
		Literal: literal,
		Line:    s.line,
	})
}

func (s *Scanner) isAtEnd() bool {
	return s.current >= len(s.src)
}

func (s *Scanner) advance() rune {
	r, w := utf8.DecodeRuneInString(s.src[s.current:])
	s.current += w
	return r
}

func (s *Scanner) match(expected rune) bool {
	if s.isAtEnd() {
		return false
	}
	r, w := utf8.DecodeRuneInString(s.src[s.current:])
	if r != expected {
		return false
	}
	s.current += w
	return true
}

func (s *Scanner) peek() rune {
	if s.isAtEnd() {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(s.src[s.current:])
	return r
}

func (s *Scanner) peekNext() rune {
	if s.isAtEnd() {
		return 0
	}
	_, w := utf8.DecodeRuneInString(s.src[s.current:])
	if s.current+w >= len(s.src) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(s.src[s.current+w:])
	return r
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isAlpha(r rune) bool {
	return unicode.IsLetter(r) || r == '_'
}

func isAlphaNumeric(r rune) bool {
	return isAlpha(r) || isDigit(r)
}
