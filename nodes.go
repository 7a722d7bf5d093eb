package xmatch

import (
	"math/big"
	"strconv"
	"strings"
)

// node is a node in the abstract syntax tree of an expression.
type node struct {
	kind nodeKind

	// text is the source text of a num or name leaf.
	text string
	// val is the numeric value of a num leaf. It is used only to compare
	// constants for equality, never for arithmetic.
	val *big.Float

	left  *node
	right *node
}

type nodeKind int8

const (
	nodeNone nodeKind = iota

	nodeNum  // numeric literal
	nodeName // identifier

	nodeNeg // unary minus
	nodeNop // unary plus

	nodeAdd
	nodeSub
	nodeMul
	nodeDiv
	nodePow
)

// binary reports whether the kind is a binary operator.
func (k nodeKind) binary() bool {
	return k >= nodeAdd
}

// prec is the kind's precedence when rendering. Higher is more binding.
// Binary operator values match the parser's operator table; leaves never
// need parentheses.
func (k nodeKind) prec() int8 {
	switch k {
	case nodeNum, nodeName:
		return 127
	case nodeNeg, nodeNop:
		return 10
	case nodeAdd, nodeSub:
		return 1
	case nodeMul, nodeDiv:
		return 5
	case nodePow:
		return 15
	default:
		panic("xmatch: no precedence for node kind " + k.String())
	}
}

// opstr is the canonical spelling of a binary operator, with spacing.
func (k nodeKind) opstr() string {
	switch k {
	case nodeAdd:
		return " + "
	case nodeSub:
		return " - "
	case nodeMul:
		return " * "
	case nodeDiv:
		return " / "
	case nodePow:
		return " ** "
	default:
		panic("xmatch: no operator for node kind " + k.String())
	}
}

func (k nodeKind) String() string {
	switch k {
	case nodeNone:
		return "None"
	case nodeNum:
		return "Num"
	case nodeName:
		return "Name"
	case nodeNeg:
		return "Neg"
	case nodeNop:
		return "Nop"
	case nodeAdd:
		return "Add"
	case nodeSub:
		return "Sub"
	case nodeMul:
		return "Mul"
	case nodeDiv:
		return "Div"
	case nodePow:
		return "Pow"
	default:
		return "nodeKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// String renders the subtree as canonical infix text. Leaves reproduce their
// source text verbatim; operators are re-printed with explicit tokens and
// minimal parenthesization, so structurally equal subtrees render equal no
// matter how the input was spaced or bracketed.
func (n *node) String() string {
	var b strings.Builder
	n.fmt(&b)
	return b.String()
}

func (n *node) fmt(b *strings.Builder) {
	switch n.kind {
	case nodeNum, nodeName:
		b.WriteString(n.text)
	case nodeNeg, nodeNop:
		if n.kind == nodeNeg {
			b.WriteByte('-')
		} else {
			b.WriteByte('+')
		}
		n.fmtchild(b, n.left, n.left.kind.prec() < n.kind.prec())
	case nodeAdd, nodeSub, nodeMul, nodeDiv:
		// Left-associative: equal precedence needs no parens on the left,
		// but preserves explicit grouping on the right (a - (b - c)).
		p := n.kind.prec()
		n.fmtchild(b, n.left, n.left.kind.prec() < p)
		b.WriteString(n.kind.opstr())
		n.fmtchild(b, n.right, n.right.kind.prec() <= p)
	case nodePow:
		// Right-associative, so the mirror rule, with one exception: a unary
		// exponent stays bare, as in a ** -2.
		p := n.kind.prec()
		n.fmtchild(b, n.left, n.left.kind.prec() <= p)
		b.WriteString(n.kind.opstr())
		unary := n.right.kind == nodeNeg || n.right.kind == nodeNop
		n.fmtchild(b, n.right, n.right.kind.prec() < p && !unary)
	default:
		panic("xmatch: cannot render node kind " + n.kind.String() + " after writing " + b.String())
	}
}

func (n *node) fmtchild(b *strings.Builder, child *node, paren bool) {
	if paren {
		b.WriteByte('(')
		child.fmt(b)
		b.WriteByte(')')
		return
	}
	child.fmt(b)
}
