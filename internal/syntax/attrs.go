package syntax

import "strings"

// Attribute name suffixes. The suffix tells how to interpret the value:
//
//	.node  a single child Node, or nil when an optional child is absent
//	.list  a []Node of children
//	.lit   a scalar: string or bool
const (
	NodeSuffix = ".node"
	ListSuffix = ".list"
	LitSuffix  = ".lit"
)

// Attr is one named attribute of a node.
type Attr struct {
	Name  string
	Value interface{}
}

// Key returns the attribute name without its suffix.
func (a Attr) Key() string {
	if i := strings.LastIndexByte(a.Name, '.'); i >= 0 {
		return a.Name[:i]
	}
	return a.Name
}

// IsNode reports whether a holds a single (possibly nil) child.
func (a Attr) IsNode() bool { return strings.HasSuffix(a.Name, NodeSuffix) }

// IsList reports whether a holds a list of children.
func (a Attr) IsList() bool { return strings.HasSuffix(a.Name, ListSuffix) }

// Lookup returns the value of the attribute called name.
// It panics if n has no such attribute.
func Lookup(n Node, name string) interface{} {
	for _, a := range n.Attrs() {
		if a.Name == name {
			return a.Value
		}
	}
	internalError("attribute %s doesn't exist on %s", name, n.Tag())
	return nil
}

// Children returns the non-nil structural children of n in attribute order.
func Children(n Node) []Node {
	var kids []Node
	for _, a := range n.Attrs() {
		switch {
		case a.IsNode():
			if c, _ := a.Value.(Node); c != nil {
				kids = append(kids, c)
			}
		case a.IsList():
			list, _ := a.Value.([]Node)
			kids = append(kids, list...)
		}
	}
	return kids
}

// opt converts a possibly nil node pointer to a Node without producing a
// non-nil interface around a nil pointer.
func opt[T any, P interface {
	*T
	Node
}](p P) Node {
	if p == nil {
		return nil
	}
	return p
}

// nodes converts a typed slice of nodes to []Node.
func nodes[S ~[]E, E Node](s S) []Node {
	list := make([]Node, len(s))
	for i, n := range s {
		list[i] = n
	}
	return list
}

// ----------------------------------------------------------------------------
// Per-node attribute lists

func (n *Program) Attrs() []Attr {
	return []Attr{
		{"declarations.list", nodes(n.Decls)},
	}
}

func (n *VariableDeclaration) Attrs() []Attr {
	return []Attr{
		{"type.node", opt(n.Type)},
		{"identifier.lit", n.Name},
		{"arraySize.node", opt(n.ArraySize)},
		{"expression.node", opt(n.Init)},
	}
}

func (n *TypeSpecifier) Attrs() []Attr {
	return []Attr{
		{"name.lit", n.Name},
		{"structName.lit", n.StructName},
		{"pointer.lit", n.Pointer},
	}
}

func (n *FunctionDeclaration) Attrs() []Attr {
	return []Attr{
		{"returnType.node", opt(n.Result)},
		{"identifier.lit", n.Name},
		{"parameters.list", nodes(n.Params)},
		{"body.node", opt(n.Body)},
	}
}

func (n *Parameter) Attrs() []Attr {
	return []Attr{
		{"type.node", opt(n.Type)},
		{"identifier.lit", n.Name},
		{"array.lit", n.Array},
	}
}

func (n *StructDeclaration) Attrs() []Attr {
	return []Attr{
		{"identifier.lit", n.Name},
		{"members.list", nodes(n.Members)},
	}
}

func (n *Member) Attrs() []Attr {
	return []Attr{
		{"type.node", opt(n.Type)},
		{"identifier.lit", n.Name},
		{"array.lit", n.Array},
		{"arraySize.node", opt(n.Size)},
	}
}

func (n *CompoundStatement) Attrs() []Attr {
	return []Attr{
		{"statements.list", nodes(n.Stmts)},
	}
}

func (n *IfStatement) Attrs() []Attr {
	return []Attr{
		{"condition.node", opt(n.Cond)},
		{"body.node", opt(n.Body)},
		{"elseBody.node", opt(n.ElseBody)},
	}
}

func (n *WhileStatement) Attrs() []Attr {
	return []Attr{
		{"condition.node", opt(n.Cond)},
		{"body.node", opt(n.Body)},
	}
}

func (n *ForStatement) Attrs() []Attr {
	return []Attr{
		{"init.node", n.Init},
		{"condition.node", Node(n.Cond)},
		{"step.node", opt(n.Step)},
		{"body.node", opt(n.Body)},
	}
}

func (n *ReturnStatement) Attrs() []Attr {
	return []Attr{
		{"value.node", opt(n.Value)},
	}
}

func (n *ExpressionStatement) Attrs() []Attr {
	return []Attr{
		{"expression.node", Node(n.X)},
	}
}

func (n *AssignmentExpression) Attrs() []Attr {
	return []Attr{
		{"let.lit", n.Let},
		{"identifier.lit", n.Name},
		{"value.node", Node(n.Value)},
	}
}

func (n *ConditionalExpression) Attrs() []Attr {
	return []Attr{
		{"expression.node", Node(n.X)},
	}
}

func (n *BinaryExpression) Attrs() []Attr {
	return []Attr{
		{"operator.lit", n.Op},
		{"left.node", Node(n.X)},
		{"right.node", Node(n.Y)},
	}
}

func (n *UnaryExpression) Attrs() []Attr {
	return []Attr{
		{"operator.lit", n.Op},
		{"operand.node", Node(n.X)},
	}
}

func (n *NumericLiteral) Attrs() []Attr {
	return []Attr{
		{"value.lit", n.Value},
	}
}

func (n *Identifier) Attrs() []Attr {
	return []Attr{
		{"name.lit", n.Name},
	}
}

func (n *IndexExpression) Attrs() []Attr {
	return []Attr{
		{"identifier.lit", n.Name},
		{"index.node", opt(n.Index)},
	}
}

func (n *MemberExpression) Attrs() []Attr {
	return []Attr{
		{"identifier.lit", n.Name},
		{"operator.lit", n.Op},
		{"member.lit", n.Member},
	}
}

func (n *CallExpression) Attrs() []Attr {
	return []Attr{
		{"identifier.lit", n.Name},
		{"arguments.list", nodes(n.Args)},
	}
}
