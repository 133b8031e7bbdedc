package parser

// Parse translates a token stream into an ordered sequence of statement
// nodes plus any syntax errors encountered. It never stops at the first
// error: panic-mode recovery discards tokens to the next statement boundary
// so later statements still parse, bounding the cascade to one diagnostic
// per malformed statement.
func Parse(tokens []Token) ([]Stmt, []*Error) {
	p := &parser{tokens: tokens}
	var stmts []Stmt
	for !p.isAtEnd() {
		if stmt := p.declaration(); stmt != nil {
			stmts = append(stmts, stmt)
		}
	}
	return stmts, p.errs
}

type parser struct {
	tokens    []Token
	current   int
	errs      []*Error
	loopDepth int
}

// declaration is the synchronization boundary: any syntax error below it has
// already been recorded, so recovery is just a resync and a nil statement.
func (p *parser) declaration() Stmt {
	var stmt Stmt
	var err error
	if p.match(Var) {
		stmt, err = p.varDeclaration()
	} else {
		stmt, err = p.statement()
	}
	if err != nil {
		p.synchronize()
		return nil
	}
	return stmt
}

func (p *parser) varDeclaration() (Stmt, error) {
	name, err := p.consume(Identifier, "Expect variable name.")
	if err != nil {
		return nil, err
	}
	var initializer Expr
	if p.match(Equal) {
		initializer, err = p.expression()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.consume(Semicolon, "Expect ';' after variable declaration."); err != nil {
		return nil, err
	}
	return &VarStmt{Name: name, Initializer: initializer}, nil
}

func (p *parser) statement() (Stmt, error) {
	switch {
	case p.match(Print):
		return p.printStatement()
	case p.match(If):
		return p.ifStatement()
	case p.match(While):
		return p.whileStatement()
	case p.match(Loop):
		return p.loopStatement()
	case p.match(Break):
		return p.breakStatement()
	case p.match(LeftBrace):
		stmts, err := p.block()
		if err != nil {
			return nil, err
		}
		return &BlockStmt{Statements: stmts}, nil
	default:
		return p.expressionStatement()
	}
}

func (p *parser) printStatement() (Stmt, error) {
	value, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(Semicolon, "Expect ';' after value."); err != nil {
		return nil, err
	}
	return &PrintStmt{Expression: value}, nil
}

func (p *parser) ifStatement() (Stmt, error) {
	if _, err := p.consume(LeftParen, "Expect '(' after 'if'."); err != nil {
		return nil, err
	}
	condition, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(RightParen, "Expect ')' after if condition."); err != nil {
		return nil, err
	}
	then, err := p.statement()
	if err != nil {
		return nil, err
	}
	// The dangling else binds to the nearest unmatched if, which falls out
	// of parsing the else here, eagerly.
	var elseBranch Stmt
	if p.match(Else) {
		elseBranch, err = p.statement()
		if err != nil {
			return nil, err
		}
	}
	return &IfStmt{Condition: condition, Then: then, Else: elseBranch}, nil
}

func (p *parser) whileStatement() (Stmt, error) {
	if _, err := p.consume(LeftParen, "Expect '(' after 'while'."); err != nil {
		return nil, err
	}
	condition, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(RightParen, "Expect ')' after condition."); err != nil {
		return nil, err
	}
	p.loopDepth++
	body, err := p.statement()
	p.loopDepth--
	if err != nil {
		return nil, err
	}
	return &WhileStmt{Condition: condition, Body: body}, nil
}

// loopStatement parses the loop/until sugar and lowers it to the runtime
// while construct. A bare `loop { ... }` becomes `while (true) { ... }`;
// with an until clause the body runs once before the condition is first
// tested, so the check is appended after the body:
//
//	loop B until (c);  =>  while (true) { B if (c) break; }
func (p *parser) loopStatement() (Stmt, error) {
	keyword := p.previous()
	p.loopDepth++
	body, err := p.statement()
	p.loopDepth--
	if err != nil {
		return nil, err
	}
	always := &LiteralExpr{Value: true}
	if !p.match(Until) {
		return &WhileStmt{Condition: always, Body: body}, nil
	}
	if _, err := p.consume(LeftParen, "Expect '(' after 'until'."); err != nil {
		return nil, err
	}
	condition, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(RightParen, "Expect ')' after until condition."); err != nil {
		return nil, err
	}
	if _, err := p.consume(Semicolon, "Expect ';' after until clause."); err != nil {
		return nil, err
	}
	exit := &IfStmt{
		Condition: condition,
		Then: &BreakStmt{Keyword: Token{
			Type:   Break,
			Lexeme: keyword.Lexeme,
			Line:   keyword.Line,
		}},
	}
	return &WhileStmt{
		Condition: always,
		Body:      &BlockStmt{Statements: []Stmt{body, exit}},
	}, nil
}

func (p *parser) breakStatement() (Stmt, error) {
	keyword := p.previous()
	if p.loopDepth == 0 {
		return nil, p.error(keyword, "Cannot use 'break' outside of a loop.")
	}
	if _, err := p.consume(Semicolon, "Expect ';' after 'break'."); err != nil {
		return nil, err
	}
	return &BreakStmt{Keyword: keyword}, nil
}

func (p *parser) block() ([]Stmt, error) {
	var stmts []Stmt
	for !p.check(RightBrace) && !p.isAtEnd() {
		if stmt := p.declaration(); stmt != nil {
			stmts = append(stmts, stmt)
		}
	}
	if _, err := p.consume(RightBrace, "Expect '}' after block."); err != nil {
		return nil, err
	}
	return stmts, nil
}

func (p *parser) expressionStatement() (Stmt, error) {
	expr, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(Semicolon, "Expect ';' after expression."); err != nil {
		return nil, err
	}
	return &ExpressionStmt{Expression: expr}, nil
}

func (p *parser) expression() (Expr, error) {
	return p.comma()
}

// comma is the lowest-precedence tier: every operand is evaluated, all but
// the last discarded. Left-associative.
func (p *parser) comma() (Expr, error) {
	expr, err := p.ternary()
	if err != nil {
		return nil, err
	}
	for p.match(Comma) {
		operator := p.previous()
		right, err := p.ternary()
		if err != nil {
			return nil, err
		}
		expr = &BinaryExpr{Left: expr, Operator: operator, Right: right}
	}
	return expr, nil
}

// ternary is right-associative: a ? b : c ? d : e groups as a ? b : (c ? d : e).
func (p *parser) ternary() (Expr, error) {
	expr, err := p.assignment()
	if err != nil {
		return nil, err
	}
	if p.match(Question) {
		then, err := p.expression()
		if err != nil {
			return nil, err
		}
		if _, err := p.consume(Colon, "Expect ':' after then branch of ternary expression."); err != nil {
			return nil, err
		}
		elseExpr, err := p.ternary()
		if err != nil {
			return nil, err
		}
		expr = &TernaryExpr{Condition: expr, Then: then, Else: elseExpr}
	}
	return expr, nil
}

func (p *parser) assignment() (Expr, error) {
	expr, err := p.or()
	if err != nil {
		return nil, err
	}
	if p.match(Equal, PlusEqual, MinusEqual, StarEqual, SlashEqual) {
		operator := p.previous()
		value, err := p.assignment()
		if err != nil {
			return nil, err
		}
		if variable, ok := expr.(*VariableExpr); ok {
			return &AssignExpr{Name: variable.Name, Operator: operator, Value: value}, nil
		}
		// Report without unwinding: the right-hand side parsed cleanly, so
		// the parser is still aligned.
		p.error(operator, "Invalid assignment target.")
	}
	return expr, nil
}

func (p *parser) or() (Expr, error) {
	expr, err := p.and()
	if err != nil {
		return nil, err
	}
	for p.match(Or) {
		operator := p.previous()
		right, err := p.and()
		if err != nil {
			return nil, err
		}
		expr = &LogicalExpr{Left: expr, Operator: operator, Right: right}
	}
	return expr, nil
}

func (p *parser) and() (Expr, error) {
	expr, err := p.equality()
	if err != nil {
		return nil, err
	}
	for p.match(And) {
		operator := p.previous()
		right, err := p.equality()
		if err != nil {
			return nil, err
		}
		expr = &LogicalExpr{Left: expr, Operator: operator, Right: right}
	}
	return expr, nil
}

func (p *parser) equality() (Expr, error) {
	expr, err := p.comparison()
	if err != nil {
		return nil, err
	}
	for p.match(BangEqual, EqualEqual) {
		operator := p.previous()
		right, err := p.comparison()
		if err != nil {
			return nil, err
		}
		expr = &BinaryExpr{Left: expr, Operator: operator, Right: right}
	}
	return expr, nil
}

func (p *parser) comparison() (Expr, error) {
	expr, err := p.concatenation()
	if err != nil {
		return nil, err
	}
	for p.match(Greater, GreaterEqual, Less, LessEqual) {
		operator := p.previous()
		right, err := p.concatenation()
		if err != nil {
			return nil, err
		}
		expr = &BinaryExpr{Left: expr, Operator: operator, Right: right}
	}
	return expr, nil
}

// concatenation is right-associative by direct recursion.
func (p *parser) concatenation() (Expr, error) {
	expr, err := p.term()
	if err != nil {
		return nil, err
	}
	if p.match(Concat) {
		operator := p.previous()
		right, err := p.concatenation()
		if err != nil {
			return nil, err
		}
		expr = &BinaryExpr{Left: expr, Operator: operator, Right: right}
	}
	return expr, nil
}

func (p *parser) term() (Expr, error) {
	expr, err := p.factor()
	if err != nil {
		return nil, err
	}
	for p.match(Minus, Plus) {
		operator := p.previous()
		right, err := p.factor()
		if err != nil {
			return nil, err
		}
		expr = &BinaryExpr{Left: expr, Operator: operator, Right: right}
	}
	return expr, nil
}

func (p *parser) factor() (Expr, error) {
	expr, err := p.unary()
	if err != nil {
		return nil, err
	}
	for p.match(Slash, Star) {
		operator := p.previous()
		right, err := p.unary()
		if err != nil {
			return nil, err
		}
		expr = &BinaryExpr{Left: expr, Operator: operator, Right: right}
	}
	return expr, nil
}

func (p *parser) unary() (Expr, error) {
	if p.match(Bang, Minus) {
		operator := p.previous()
		right, err := p.unary()
		if err != nil {
			return nil, err
		}
		return &UnaryExpr{Operator: operator, Right: right}, nil
	}
	return p.primary()
}

func (p *parser) primary() (Expr, error) {
	switch {
	case p.match(False):
		return &LiteralExpr{Value: false}, nil
	case p.match(True):
		return &LiteralExpr{Value: true}, nil
	case p.match(Nil):
		return &LiteralExpr{Value: nil}, nil
	case p.match(Number, String):
		return &LiteralExpr{Value: p.previous().Literal}, nil
	case p.match(Identifier):
		return &VariableExpr{Name: p.previous()}, nil
	case p.match(LeftParen):
		expr, err := p.expression()
		if err != nil {
			return nil, err
		}
		if _, err := p.consume(RightParen, "Expect ')' after expression."); err != nil {
			return nil, err
		}
		return &GroupingExpr{Expression: expr}, nil
	}
	return p.errorProduction()
}

// errorProduction matches a binary operator appearing with no left operand.
// It reports at the operator, then parses and discards a right operand at
// the matching precedence tier so the parser's position stays aligned with
// the grammar.
func (p *parser) errorProduction() (Expr, error) {
	switch {
	case p.match(BangEqual, EqualEqual):
		err := p.error(p.previous(), "Missing left-hand operand.")
		p.equality() // discard
		return nil, err
	case p.match(Greater, GreaterEqual, Less, LessEqual):
		err := p.error(p.previous(), "Missing left-hand operand.")
		p.comparison() // discard
		return nil, err
	case p.match(Concat):
		err := p.error(p.previous(), "Missing left-hand operand.")
		p.concatenation() // discard
		return nil, err
	case p.match(Plus):
		err := p.error(p.previous(), "Missing left-hand operand.")
		p.term() // discard
		return nil, err
	case p.match(Slash, Star):
		err := p.error(p.previous(), "Missing left-hand operand.")
		p.factor() // discard
		return nil, err
	}
	return nil, p.error(p.peek(), "Expect expression.")
}

// synchronize discards tokens until a statement boundary: a semicolon just
// consumed, or a token that begins a new statement.
func (p *parser) synchronize() {
	p.advance()
	for !p.isAtEnd() {
		if p.previous().Type == Semicolon {
			return
		}
		switch p.peek().Type {
		case Var, If, While, For, Print, Loop, LeftBrace:
			return
		}
		p.advance()
	}
}

func (p *parser) consume(tt TokenType, message string) (Token, error) {
	if p.check(tt) {
		return p.advance(), nil
	}
	return Token{}, p.error(p.peek(), message)
}

// error records a diagnostic at the given token and returns it so callers
// can unwind to the synchronization boundary.
func (p *parser) error(tok Token, message string) *Error {
	e := errorAt(tok, message)
	p.errs = append(p.errs, e)
	return e
}

func (p *parser) match(types ...TokenType) bool {
	for _, tt := range types {
		if p.check(tt) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *parser) check(tt TokenType) bool {
	if p.isAtEnd() {
		return tt == EOF
	}
	return p.peek().Type == tt
}

func (p *parser) advance() Token {
	if !p.isAtEnd() {
		p.current++
	}
	return p.previous()
}

func (p *parser) isAtEnd() bool {
	return p.peek().Type == EOF
}

func (p *parser) peek() Token {
	return p.tokens[p.current]
}

func (p *parser) previous() Token {
	return p.tokens[p.current-1]
}
