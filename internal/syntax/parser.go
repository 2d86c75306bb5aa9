package syntax

import (
	"go.uber.org/zap"
)

// Parser builds an AST from a token sequence by recursive descent.
// A Parser is single-use: call Parse once.
type Parser struct {
	toks []Token
	pos  int // index of the current content token
	line int // line of the current token, advanced as newlines are skipped

	marks []checkpoint   // checkpoint stack, strictly LIFO
	errs  []*SyntaxError // diagnostics in the order they were recorded

	log *zap.Logger
}

// Option configures a Parser.
type Option func(*Parser)

// WithLogger makes the parser log backtracking and its outcome at debug level.
func WithLogger(l *zap.Logger) Option {
	return func(p *Parser) {
		if l != nil {
			p.log = l
		}
	}
}

// NewParser creates a Parser over toks. If toks does not end with an EOF
// token one is appended.
func NewParser(toks []Token, opts ...Option) *Parser {
	if n := len(toks); n == 0 || toks[n-1].Kind != EOF {
		line := 1
		if n > 0 {
			line = toks[n-1].Line
		}
		toks = append(toks[:n:n], Token{Kind: EOF, Line: line})
	}
	p := &Parser{
		toks: toks,
		line: 1,
		log:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.skipNewlines()
	return p
}

// Parse parses toks as a whole program.
func Parse(toks []Token, opts ...Option) (*Program, error) {
	return NewParser(toks, opts...).Parse()
}

// ParseSource scans and parses src. The error is either a *LexError or
// an ErrorList.
func ParseSource(src []byte, opts ...Option) (*Program, error) {
	toks, err := Scan(src)
	if err != nil {
		return nil, err
	}
	return Parse(toks, opts...)
}

// Parse parses the token sequence. On failure it returns a nil Program and
// an ErrorList with the diagnostics of the failing call chain.
func (p *Parser) Parse() (*Program, error) {
	p.log.Debug("parse started", zap.Int("tokens", len(p.toks)))
	prog := p.program()
	if prog == nil {
		errs := p.Errors()
		p.log.Debug("parse failed", zap.Int("line", p.line), zap.Int("diagnostics", len(errs)))
		return nil, errs
	}
	p.log.Debug("parse finished", zap.Int("declarations", len(prog.Decls)), zap.Int("lines", p.line))
	return prog, nil
}

// Errors returns the recorded diagnostics, most recent first.
func (p *Parser) Errors() ErrorList {
	list := make(ErrorList, len(p.errs))
	for i, e := range p.errs {
		list[len(p.errs)-1-i] = e
	}
	return list
}

// ----------------------------------------------------------------------------
// Token navigation

// current returns the token at the cursor. The cursor never moves past EOF.
func (p *Parser) current() Token {
	return p.toks[p.pos]
}

// advance moves to the next content token, skipping newlines.
func (p *Parser) advance() {
	if p.toks[p.pos].Kind == EOF {
		return
	}
	p.pos++
	p.skipNewlines()
}

func (p *Parser) skipNewlines() {
	for p.toks[p.pos].Kind == Newline {
		p.pos++
		p.line++
	}
}

// match consumes the current token if its text is lit.
func (p *Parser) match(lit string) bool {
	if tok := p.current(); tok.Kind != EOF && tok.Lit == lit {
		p.advance()
		return true
	}
	return false
}

// expect is like match but records a diagnostic when the token is missing.
func (p *Parser) expect(lit string) bool {
	if p.match(lit) {
		return true
	}
	p.error("Expected '"+lit+"'", true)
	return false
}

// identifier consumes a non-keyword name.
func (p *Parser) identifier() (string, bool) {
	tok := p.current()
	if tok.Kind != Name || IsKeyword(tok.Lit) {
		return "", false
	}
	p.advance()
	return tok.Lit, true
}

// numericLiteral consumes an all-digit token.
func (p *Parser) numericLiteral() (string, bool) {
	tok := p.current()
	if tok.Kind != Literal {
		return "", false
	}
	p.advance()
	return tok.Lit, true
}

// ----------------------------------------------------------------------------
// Checkpoints

// checkpoint is a saved parser state. Diagnostics recorded after the save
// belong to the speculative attempt and are dropped on rollback.
type checkpoint struct {
	depth int // stack depth including this checkpoint
	pos   int
	line  int
	nerrs int
}

// save pushes the current state.
func (p *Parser) save() checkpoint {
	cp := checkpoint{depth: len(p.marks) + 1, pos: p.pos, line: p.line, nerrs: len(p.errs)}
	p.marks = append(p.marks, cp)
	p.log.Debug("save", zap.Int("pos", p.pos), zap.Int("line", p.line), zap.Int("depth", cp.depth))
	return cp
}

// rollback pops cp and restores the state it saved.
func (p *Parser) rollback(cp checkpoint) {
	p.pop(cp, "rollback")
	if p.pos != cp.pos {
		p.log.Debug("rollback", zap.Int("from", p.pos), zap.Int("to", cp.pos), zap.Int("line", cp.line))
	}
	p.pos = cp.pos
	p.line = cp.line
	p.errs = p.errs[:cp.nerrs]
}

// discard pops cp and keeps the current state.
func (p *Parser) discard(cp checkpoint) {
	p.pop(cp, "discard")
}

func (p *Parser) pop(cp checkpoint, op string) {
	n := len(p.marks)
	if n == 0 {
		internalError("%s with empty checkpoint stack", op)
	}
	if top := p.marks[n-1]; top != cp {
		internalError("%s of checkpoint at depth %d, top is at depth %d", op, cp.depth, top.depth)
	}
	p.marks = p.marks[:n-1]
}

// ----------------------------------------------------------------------------
// Diagnostics

// error records msg at the current line, naming the current token if
// withToken is set.
func (p *Parser) error(msg string, withToken bool) {
	e := &SyntaxError{Line: p.line, Msg: msg}
	if withToken {
		e.Token = p.current().String()
	}
	p.errs = append(p.errs, e)
}

// errorAt records a context diagnostic for a construct starting at line.
func (p *Parser) errorAt(line int, msg string) {
	p.errs = append(p.errs, &SyntaxError{Line: line, Msg: msg})
}

// ----------------------------------------------------------------------------
// Program and declarations

// program parses declarations up to EOF.
func (p *Parser) program() *Program {
	prog := &Program{}
	prog.line = p.line
	for p.current().Kind != EOF {
		d := p.declaration()
		if d == nil {
			return nil
		}
		prog.Decls = append(prog.Decls, d)
	}
	return prog
}

// declaration dispatches on the leading keyword.
func (p *Parser) declaration() Decl {
	line := p.line
	switch p.current().Lit {
	case "func":
		if d := p.functionDeclaration(); d != nil {
			return d
		}
		p.errorAt(line, "Invalid function declaration")
	case "struct":
		if d := p.structDeclaration(); d != nil {
			return d
		}
		p.errorAt(line, "Invalid struct declaration")
	case "var":
		if d := p.variableDeclarationStmt(); d != nil {
			return d
		}
	default:
		p.error("Expected declaration", true)
	}
	return nil
}

// variableDeclarationStmt parses VariableDeclaration ";".
func (p *Parser) variableDeclarationStmt() *VariableDeclaration {
	line := p.line
	d := p.variableDeclaration()
	if d == nil || !p.expect(";") {
		p.errorAt(line, "Invalid variable declaration")
		return nil
	}
	return d
}

// variableDeclaration parses var Type Name ( [Size] | = Init )?.
func (p *Parser) variableDeclaration() *VariableDeclaration {
	line := p.line
	if !p.expect("var") {
		return nil
	}
	typ := p.typeSpecifier()
	if typ == nil {
		return nil
	}
	name, ok := p.identifier()
	if !ok {
		p.error("Expected variable name", true)
		return nil
	}
	d := &VariableDeclaration{Type: typ, Name: name}
	d.line = line
	switch {
	case p.match("["):
		if d.ArraySize = p.conditionalExpression(); d.ArraySize == nil || !p.expect("]") {
			return nil
		}
	case p.match("="):
		if d.Init = p.conditionalExpression(); d.Init == nil {
			return nil
		}
	}
	return d
}

// typeSpecifier parses (int | void | struct Name) "*"?.
func (p *Parser) typeSpecifier() *TypeSpecifier {
	t := &TypeSpecifier{}
	t.line = p.line
	switch lit := p.current().Lit; lit {
	case "int", "void":
		t.Name = lit
		p.advance()
	case "struct":
		p.advance()
		name, ok := p.identifier()
		if !ok {
			p.error("Expected struct name", true)
			return nil
		}
		t.Name = lit
		t.StructName = name
	default:
		p.error("Expected type specifier", true)
		return nil
	}
	t.Pointer = p.match("*")
	return t
}

// functionDeclaration parses func Result Name(Params) { Body }.
func (p *Parser) functionDeclaration() *FunctionDeclaration {
	d := &FunctionDeclaration{}
	d.line = p.line
	if !p.expect("func") {
		return nil
	}
	if d.Result = p.typeSpecifier(); d.Result == nil {
		return nil
	}
	name, ok := p.identifier()
	if !ok {
		p.error("Expected function name", true)
		return nil
	}
	d.Name = name
	if !p.expect("(") {
		return nil
	}
	if !p.match(")") {
		if d.Params, ok = p.paramList(); !ok || !p.expect(")") {
			return nil
		}
	}
	if d.Body = p.compoundStatement(); d.Body == nil {
		return nil
	}
	return d
}

// paramList parses Parameter ("," Parameter)*.
func (p *Parser) paramList() ([]*Parameter, bool) {
	var params []*Parameter
	for {
		prm := p.parameter()
		if prm == nil {
			return nil, false
		}
		params = append(params, prm)
		if !p.match(",") {
			return params, true
		}
	}
}

// parameter parses Type Name ("[" "]")?.
func (p *Parser) parameter() *Parameter {
	line := p.line
	typ := p.typeSpecifier()
	if typ == nil {
		return nil
	}
	name, ok := p.identifier()
	if !ok {
		p.error("Expected parameter name", true)
		return nil
	}
	prm := &Parameter{Type: typ, Name: name}
	prm.line = line
	if p.match("[") {
		if !p.expect("]") {
			return nil
		}
		prm.Array = true
	}
	return prm
}

// structDeclaration parses struct Name { Member* }.
func (p *Parser) structDeclaration() *StructDeclaration {
	d := &StructDeclaration{}
	d.line = p.line
	if !p.expect("struct") {
		return nil
	}
	name, ok := p.identifier()
	if !ok {
		p.error("Expected struct name", true)
		return nil
	}
	d.Name = name
	if !p.expect("{") {
		return nil
	}
	for !p.match("}") {
		m := p.member()
		if m == nil {
			return nil
		}
		d.Members = append(d.Members, m)
	}
	return d
}

// member parses Type Name ("[" Size? "]")? ";".
func (p *Parser) member() *Member {
	line := p.line
	typ := p.typeSpecifier()
	if typ == nil {
		return nil
	}
	name, ok := p.identifier()
	if !ok {
		p.error("Expected member name", true)
		return nil
	}
	m := &Member{Type: typ, Name: name}
	m.line = line
	if p.match("[") {
		m.Array = true
		if !p.match("]") {
			if m.Size = p.conditionalExpression(); m.Size == nil || !p.expect("]") {
				return nil
			}
		}
	}
	if !p.expect(";") {
		return nil
	}
	return m
}

// ----------------------------------------------------------------------------
// Statements

// compoundStatement parses { Statement* }.
func (p *Parser) compoundStatement() *CompoundStatement {
	b := &CompoundStatement{}
	b.line = p.line
	if !p.expect("{") {
		return nil
	}
	for !p.match("}") {
		if p.current().Kind == EOF {
			p.error("Expected '}'", true)
			return nil
		}
		s := p.statement()
		if s == nil {
			return nil
		}
		b.Stmts = append(b.Stmts, s)
	}
	return b
}

// statement dispatches on the leading keyword; anything else is an
// expression statement.
func (p *Parser) statement() Stmt {
	line := p.line
	switch p.current().Lit {
	case "if":
		if s := p.ifStatement(); s != nil {
			return s
		}
		p.errorAt(line, "Invalid if statement")
	case "while":
		if s := p.whileStatement(); s != nil {
			return s
		}
		p.errorAt(line, "Invalid while statement")
	case "for":
		if s := p.forStatement(); s != nil {
			return s
		}
		p.errorAt(line, "Invalid for statement")
	case "return":
		if s := p.returnStatement(); s != nil {
			return s
		}
		p.errorAt(line, "Invalid return statement")
	case "var":
		if d := p.variableDeclarationStmt(); d != nil {
			return d
		}
	default:
		if s := p.expressionStatement(); s != nil {
			return s
		}
		p.errorAt(line, "Invalid expression statement")
	}
	return nil
}

// ifStatement parses if (Cond) Body (else ElseBody)?.
func (p *Parser) ifStatement() *IfStatement {
	s := &IfStatement{}
	s.line = p.line
	if !p.expect("if") || !p.expect("(") {
		return nil
	}
	if s.Cond = p.conditionalExpression(); s.Cond == nil || !p.expect(")") {
		return nil
	}
	if s.Body = p.compoundStatement(); s.Body == nil {
		return nil
	}
	if p.match("else") {
		if s.ElseBody = p.compoundStatement(); s.ElseBody == nil {
			return nil
		}
	}
	return s
}

// whileStatement parses while (Cond) Body.
func (p *Parser) whileStatement() *WhileStatement {
	s := &WhileStatement{}
	s.line = p.line
	if !p.expect("while") || !p.expect("(") {
		return nil
	}
	if s.Cond = p.conditionalExpression(); s.Cond == nil || !p.expect(")") {
		return nil
	}
	if s.Body = p.compoundStatement(); s.Body == nil {
		return nil
	}
	return s
}

// forStatement parses for (Init? ; Cond ; Step) Body.
func (p *Parser) forStatement() *ForStatement {
	s := &ForStatement{}
	s.line = p.line
	if !p.expect("for") || !p.expect("(") {
		return nil
	}
	if p.current().Lit != ";" {
		if s.Init = p.forInit(); s.Init == nil {
			return nil
		}
	}
	if !p.expect(";") {
		return nil
	}
	if s.Cond = p.expression(); s.Cond == nil || !p.expect(";") {
		return nil
	}
	if s.Step = p.assignmentExpression(p.line, false); s.Step == nil || !p.expect(")") {
		return nil
	}
	if s.Body = p.compoundStatement(); s.Body == nil {
		return nil
	}
	return s
}

// forInit parses a variable declaration if the init starts with "var",
// an expression otherwise.
func (p *Parser) forInit() Node {
	if p.current().Lit == "var" {
		if d := p.variableDeclaration(); d != nil {
			return d
		}
		return nil
	}
	if x := p.expression(); x != nil {
		return x
	}
	return nil
}

// returnStatement parses return Value? ;.
func (p *Parser) returnStatement() *ReturnStatement {
	s := &ReturnStatement{}
	s.line = p.line
	if !p.expect("return") {
		return nil
	}
	if p.match(";") {
		return s
	}
	if s.Value = p.conditionalExpression(); s.Value == nil || !p.expect(";") {
		return nil
	}
	return s
}

// expressionStatement parses Expression ;.
func (p *Parser) expressionStatement() *ExpressionStatement {
	s := &ExpressionStatement{}
	s.line = p.line
	if s.X = p.expression(); s.X == nil || !p.expect(";") {
		return nil
	}
	return s
}

// ----------------------------------------------------------------------------
// Expressions

// expression parses "let" Assignment, a bare Assignment, or a
// ConditionalExpression. A bare assignment shares its leading identifier
// with a conditional expression; the two are told apart by the "=" that
// follows, and once that prefix is seen the assignment is committed.
func (p *Parser) expression() Expr {
	line := p.line
	if p.match("let") {
		if a := p.assignmentExpression(line, true); a != nil {
			return a
		}
		return nil
	}
	if p.assignmentAhead() {
		if a := p.assignmentExpression(line, false); a != nil {
			return a
		}
		return nil
	}
	if c := p.conditionalExpression(); c != nil {
		return c
	}
	return nil
}

// assignmentAhead reports whether the next tokens are Name "=". The cursor
// is left unchanged.
func (p *Parser) assignmentAhead() bool {
	cp := p.save()
	_, ok := p.identifier()
	ok = ok && p.match("=")
	p.rollback(cp)
	return ok
}

// assignmentExpression parses Name = Expression.
func (p *Parser) assignmentExpression(line int, let bool) *AssignmentExpression {
	name, ok := p.identifier()
	if !ok {
		p.error("Expected identifier", true)
		return nil
	}
	if !p.expect("=") {
		return nil
	}
	value := p.expression()
	if value == nil {
		return nil
	}
	a := &AssignmentExpression{Let: let, Name: name, Value: value}
	a.line = line
	return a
}

// conditionalExpression parses the full operator cascade and wraps it.
func (p *Parser) conditionalExpression() *ConditionalExpression {
	line := p.line
	x := p.logicalOr()
	if x == nil {
		return nil
	}
	c := &ConditionalExpression{X: x}
	c.line = line
	return c
}

// binary parses operand (op self)?. The right operand recurses into the
// same level, so every binary operator is right-associative.
func (p *Parser) binary(operand, self func() Expr, ops ...string) Expr {
	x := operand()
	if x == nil {
		return nil
	}
	for _, op := range ops {
		if p.match(op) {
			y := self()
			if y == nil {
				return nil
			}
			b := &BinaryExpression{Op: op, X: x, Y: y}
			b.line = x.Line()
			return b
		}
	}
	return x
}

func (p *Parser) logicalOr() Expr {
	return p.binary(p.logicalAnd, p.logicalOr, "||")
}

func (p *Parser) logicalAnd() Expr {
	return p.binary(p.equality, p.logicalAnd, "&&")
}

func (p *Parser) equality() Expr {
	return p.binary(p.relational, p.equality, "==", "!=")
}

func (p *Parser) relational() Expr {
	return p.binary(p.additive, p.relational, "<", ">", "<=", ">=")
}

func (p *Parser) additive() Expr {
	return p.binary(p.multiplicative, p.additive, "+", "-")
}

func (p *Parser) multiplicative() Expr {
	return p.binary(p.unary, p.multiplicative, "*", "/", "%")
}

// unary parses an optional prefix operator applied to a Term.
func (p *Parser) unary() Expr {
	line := p.line
	tok := p.current()
	if tok.Kind == Operator {
		switch tok.Lit {
		case "-", "!", "&", "*":
			p.advance()
			x := p.term()
			if x == nil {
				return nil
			}
			u := &UnaryExpression{Op: tok.Lit, X: x}
			u.line = line
			return u
		}
	}
	return p.term()
}

// term parses a parenthesized expression, a literal or a postfix expression.
func (p *Parser) term() Expr {
	line := p.line
	if p.match("(") {
		c := p.conditionalExpression()
		if c == nil || !p.expect(")") {
			return nil
		}
		return c
	}
	if lit, ok := p.numericLiteral(); ok {
		n := &NumericLiteral{Value: lit}
		n.line = line
		return n
	}
	return p.postfix()
}

// postfix parses Name optionally followed by an index, a member access or
// a call.
func (p *Parser) postfix() Expr {
	line := p.line
	name, ok := p.identifier()
	if !ok {
		p.error("Expected expression", true)
		return nil
	}
	switch op := p.current().Lit; op {
	case "[":
		p.advance()
		idx := p.conditionalExpression()
		if idx == nil || !p.expect("]") {
			return nil
		}
		x := &IndexExpression{Name: name, Index: idx}
		x.line = line
		return x
	case "->", ".":
		p.advance()
		member, ok := p.identifier()
		if !ok {
			p.error("Expected member name", true)
			return nil
		}
		x := &MemberExpression{Name: name, Op: op, Member: member}
		x.line = line
		return x
	case "(":
		p.advance()
		args, ok := p.argumentList()
		if !ok || !p.expect(")") {
			return nil
		}
		x := &CallExpression{Name: name, Args: args}
		x.line = line
		return x
	}
	x := &Identifier{Name: name}
	x.line = line
	return x
}

// argumentList parses a possibly empty comma-separated list of expressions.
func (p *Parser) argumentList() ([]*ConditionalExpression, bool) {
	var args []*ConditionalExpression
	if p.current().Lit == ")" {
		return args, true
	}
	for {
		a := p.conditionalExpression()
		if a == nil {
			return nil, false
		}
		args = append(args, a)
		if !p.match(",") {
			return args, true
		}
	}
}
