package syntax

import (
	"fmt"
	"io"
	"strings"
)

// DefaultIndent is the per-level indentation used by Fprint.
const DefaultIndent = "   "

// Fprint writes the tree rooted at node to w, one node per line: the tag,
// or the operator for binary expressions, indented one level per depth.
func Fprint(w io.Writer, node Node) error {
	return (&Printer{}).Fprint(w, node)
}

// Printer configures tree printing.
type Printer struct {
	Indent   string // per-depth indentation; DefaultIndent if empty
	Literals bool   // append scalar attributes as name=value
}

// Fprint writes the tree rooted at node to w.
func (cfg *Printer) Fprint(w io.Writer, node Node) error {
	p := &printer{w: w, indent: cfg.Indent, literals: cfg.Literals}
	if p.indent == "" {
		p.indent = DefaultIndent
	}
	WalkDepth(node, func(n Node, depth int) bool {
		p.print(n, depth)
		return p.err == nil
	})
	return p.err
}

type printer struct {
	w        io.Writer
	indent   string
	literals bool
	err      error
}

func (p *printer) printf(depth int, format string, args ...interface{}) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, "%s%s", strings.Repeat(p.indent, depth), fmt.Sprintf(format, args...))
}

func (p *printer) print(n Node, depth int) {
	label := n.Tag()
	bin, isBinary := n.(*BinaryExpression)
	if isBinary {
		label = bin.Op
	}
	if !p.literals {
		p.printf(depth, "%s\n", label)
		return
	}
	var b strings.Builder
	b.WriteString(label)
	for _, a := range n.Attrs() {
		if a.IsNode() || a.IsList() || isBinary && a.Key() == "operator" {
			continue
		}
		fmt.Fprintf(&b, " %s=%s", a.Key(), litString(a.Value))
	}
	p.printf(depth, "%s\n", b.String())
}

// litString formats a scalar attribute value.
func litString(v interface{}) string {
	switch v := v.(type) {
	case string:
		return fmt.Sprintf("%q", v)
	default:
		return fmt.Sprint(v)
	}
}
