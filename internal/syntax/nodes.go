package syntax

// ----------------------------------------------------------------------------
// Interfaces
//
// Every grammar production has its own node type. Declarations, statements
// and expressions additionally implement Decl, Stmt and Expr, which keeps
// the set of node types closed to this package.

// Node is the interface implemented by all AST nodes.
type Node interface {
	Tag() string   // name of the grammar production
	Line() int     // line of the first token belonging to the node
	Attrs() []Attr // ordered attribute view, see attrs.go
	aNode()
}

// Decl is a top-level declaration.
type Decl interface {
	Node
	aDecl()
}

// Stmt is a statement inside a compound statement.
type Stmt interface {
	Node
	aStmt()
}

// Expr is an expression.
type Expr interface {
	Node
	aExpr()
}

// ----------------------------------------------------------------------------
// Base node types

type node struct {
	line int
}

func (n *node) Line() int { return n.line }
func (n *node) aNode()    {}

type decl struct{ node }

func (*decl) aDecl() {}

type stmt struct{ node }

func (*stmt) aStmt() {}

type expr struct{ node }

func (*expr) aExpr() {}

// ----------------------------------------------------------------------------
// Program and declarations

// Program is the root of every successfully parsed source.
type Program struct {
	node
	Decls []Decl
}

// VariableDeclaration represents var Type Name [Size] or var Type Name = Init.
// It appears both at top level and as a statement.
type VariableDeclaration struct {
	node
	Type      *TypeSpecifier
	Name      string
	ArraySize *ConditionalExpression // nil unless declared as an array
	Init      *ConditionalExpression // nil unless initialized
}

func (*VariableDeclaration) aDecl() {}
func (*VariableDeclaration) aStmt() {}

// TypeSpecifier represents int, void or struct Name, optionally followed by *.
type TypeSpecifier struct {
	node
	Name       string // "int", "void" or "struct"
	StructName string // set only when Name is "struct"
	Pointer    bool
}

// String returns the type as written in source.
func (t *TypeSpecifier) String() string {
	s := t.Name
	if t.StructName != "" {
		s += " " + t.StructName
	}
	if t.Pointer {
		s += "*"
	}
	return s
}

// FunctionDeclaration represents func Result Name(Params) { Body }.
type FunctionDeclaration struct {
	decl
	Result *TypeSpecifier
	Name   string
	Params []*Parameter
	Body   *CompoundStatement
}

// Parameter represents Type Name or Type Name[].
type Parameter struct {
	node
	Type  *TypeSpecifier
	Name  string
	Array bool
}

// StructDeclaration represents struct Name { Members }.
type StructDeclaration struct {
	decl
	Name    string
	Members []*Member
}

// Member represents a struct field: Type Name, Type Name[] or Type Name[Size].
type Member struct {
	node
	Type  *TypeSpecifier
	Name  string
	Array bool
	Size  *ConditionalExpression // nil for scalars and unsized arrays
}

// ----------------------------------------------------------------------------
// Statements

// CompoundStatement represents { Stmts }.
type CompoundStatement struct {
	stmt
	Stmts []Stmt
}

// IfStatement represents if (Cond) Body [else ElseBody].
type IfStatement struct {
	stmt
	Cond     *ConditionalExpression
	Body     *CompoundStatement
	ElseBody *CompoundStatement // nil without else
}

// WhileStatement represents while (Cond) Body.
type WhileStatement struct {
	stmt
	Cond *ConditionalExpression
	Body *CompoundStatement
}

// ForStatement represents for (Init; Cond; Step) Body.
type ForStatement struct {
	stmt
	Init Node // nil, *VariableDeclaration or Expr
	Cond Expr
	Step *AssignmentExpression
	Body *CompoundStatement
}

// ReturnStatement represents return [Value];.
type ReturnStatement struct {
	stmt
	Value *ConditionalExpression // nil for a bare return
}

// ExpressionStatement represents X;.
type ExpressionStatement struct {
	stmt
	X Expr
}

// ----------------------------------------------------------------------------
// Expressions

// AssignmentExpression represents [let] Name = Value.
type AssignmentExpression struct {
	expr
	Let   bool
	Name  string
	Value Expr
}

// ConditionalExpression wraps the top of every operator cascade.
type ConditionalExpression struct {
	expr
	X Expr
}

// BinaryExpression represents X Op Y.
type BinaryExpression struct {
	expr
	Op string
	X  Expr
	Y  Expr
}

// UnaryExpression represents Op X for -, !, & and *.
type UnaryExpression struct {
	expr
	Op string
	X  Expr
}

// NumericLiteral is a decimal integer literal.
type NumericLiteral struct {
	expr
	Value string
}

// Identifier is a name used as an operand.
type Identifier struct {
	expr
	Name string
}

// IndexExpression represents Name[Index].
type IndexExpression struct {
	expr
	Name  string
	Index *ConditionalExpression
}

// MemberExpression represents Name.Member or Name->Member.
type MemberExpression struct {
	expr
	Name   string
	Op     string // "." or "->"
	Member string
}

// CallExpression represents Name(Args).
type CallExpression struct {
	expr
	Name string
	Args []*ConditionalExpression
}

// ----------------------------------------------------------------------------
// Tags

func (*Program) Tag() string               { return "Program" }
func (*VariableDeclaration) Tag() string   { return "VariableDeclaration" }
func (*TypeSpecifier) Tag() string         { return "TypeSpecifier" }
func (*FunctionDeclaration) Tag() string   { return "FunctionDeclaration" }
func (*Parameter) Tag() string             { return "Parameter" }
func (*StructDeclaration) Tag() string     { return "StructDeclaration" }
func (*Member) Tag() string                { return "Member" }
func (*CompoundStatement) Tag() string     { return "CompoundStatement" }
func (*IfStatement) Tag() string           { return "ifStatement" }
func (*WhileStatement) Tag() string        { return "whileStatement" }
func (*ForStatement) Tag() string          { return "forStatement" }
func (*ReturnStatement) Tag() string       { return "returnStatement" }
func (*ExpressionStatement) Tag() string   { return "expressionStatement" }
func (*AssignmentExpression) Tag() string  { return "assignmentExpression" }
func (*ConditionalExpression) Tag() string { return "ConditionalExpression" }
func (*BinaryExpression) Tag() string      { return "binaryExpression" }
func (*UnaryExpression) Tag() string       { return "unaryExpression" }
func (*NumericLiteral) Tag() string        { return "numericLiteral" }
func (*Identifier) Tag() string            { return "identifier" }
func (*IndexExpression) Tag() string       { return "arrayAccess" }
func (*MemberExpression) Tag() string      { return "memberAccess" }
func (*CallExpression) Tag() string        { return "functionCall" }
