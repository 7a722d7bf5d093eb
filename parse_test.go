package xmatch

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"testing"
)

// diff finds the first in-order node of n that differs from m, or nil, nil if
// the two ASTs are equal. If any node is nodeNone, it is returned.
func (n *node) diff(m *node) (*node, *node) {
	if n == nil {
		if m != nil {
			return n, m
		}
		return nil, nil
	}
	if m == nil {
		return n, m
	}
	if n.kind == nodeNone || m.kind == nodeNone {
		return n, m
	}
	if n.kind != m.kind {
		return n, m
	}
	switch n.kind {
	case nodeNum, nodeName:
		if n.text != m.text {
			return n, m
		}
	case nodeNeg, nodeNop:
		if d, e := n.left.diff(m.left); d != nil || e != nil {
			return d, e
		}
	case nodeAdd, nodeSub, nodeMul, nodeDiv, nodePow:
		if d, e := n.left.diff(m.left); d != nil || e != nil {
			return d, e
		}
		if d, e := n.right.diff(m.right); d != nil || e != nil {
			return d, e
		}
	default:
		panic(fmt.Errorf("invalid node kind: n=%+v m=%+v", n, m))
	}
	return nil, nil
}

func TestOpPrecsExist(t *testing.T) {
	for _, r := range Operators {
		b := binop(string(r))
		u := unop(string(r))
		if b.op == nodeNone && u.op == nodeNone {
			t.Errorf("no operator for %c", r)
		}
	}
	if binop("**").op != nodePow {
		t.Error("no binary operator for **")
	}
}

func TestTermPrecMatchesMultiplication(t *testing.T) {
	if p := binop("*").prec; p != termprec.prec {
		t.Errorf("terms have prec %d but * has prec %d", termprec.prec, p)
	}
	if p := binop("×").prec; p != termprec.prec {
		t.Errorf("terms have prec %d but × has prec %d", termprec.prec, p)
	}
}

func TestParseTrees(t *testing.T) {
	cases := []struct {
		name string
		a, b string
	}{
		{"paren", "(x)", "x"},
		{"square", "[x]", "x"},
		{"curly", "{x}", "x"},
		{"multi", "([{{[((x))]}}])", "x"},

		{"plus", "+x", "(+(x))"},
		{"neg", "-x", "(-(x))"},
		{"negnum", "-1", "(-(1))"},
		{"add", "x+y", "((x)+(y))"},
		{"sub", "x-y", "((x)-(y))"},
		{"mul", "x*y", "((x)*(y))"},
		{"div", "x/y", "((x)/(y))"},
		{"pow", "x^y", "((x)^(y))"},
		{"starstar", "x**y", "x^y"},
		{"altmul", "x×y", "x*y"},
		{"altdiv", "x÷y", "x/y"},
		{"terms", "x y", "x*y"},
		{"parenterms", "x(y)", "x*y"},

		{"add4", "w+x+y+z", "((w+x)+y)+z"},
		{"sub4", "w-x-y-z", "((w-x)-y)-z"},
		{"mul4", "w*x*y*z", "((w*x)*y)*z"},
		{"div4", "w/x/y/z", "((w/x)/y)/z"},
		{"pow4", "w^x^y^z", "w^(x^(y^z))"},
		{"starstar4", "w**x**y**z", "w^(x^(y^z))"},
		{"terms4", "w x y z", "w*(x*(y*z))"},

		{"negpow", "-1^n", "-(1^n)"},
		{"negstarstar", "-x**2", "-(x**2)"},
		{"desc", "w^x*y+z", "((w^x)*y)+z"},
		{"asc", "w+x*y^z", "w+(x*(y^z))"},
		{"descasc", "w^x*y+z+a*b^c", "(((w^x)*y)+z)+a*(b^c)"},
		{"ascdesc", "w+x*y^z^a*b+c", "w+((x*(y^(z^a)))*b)+c"},
		{"negneg", "--x", "-(-x)"},
		{"negsub", "-x-x", "(-x)-x"},
		{"powparen", "x^y(z)", "(x^y)*z"},
		{"powneg", "x^-1", "x^(-1)"},
		{"powstarneg", "x**-1", "x^(-1)"},
		{"powterms", "x y^z", "x*(y^z)"},
		{"pownegpow", "x^-y^-z", "x^(-(y^(-z)))"},
		{"pownegneg", "x^--y", "x^(-(-y))"},

		{"parentermsplus", "x(y+z)", "x*(y+z)"},
		{"mulparenterms", "x*y(z*w)", "x*(y*(z*w))"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a, err := ParseString(c.a)
			if err != nil {
				t.Fatalf("failed to parse %q: %v", c.a, err)
			}
			b, err := ParseString(c.b)
			if err != nil {
				t.Fatalf("failed to parse %q: %v", c.b, err)
			}
			d, e := a.n.diff(b.n)
			if d != nil || e != nil {
				t.Errorf("mismatched AST:\n\t%q parses %v has %v\n\t%q parses %v has %v", c.a, a.n, d, c.b, b.n, e)
			}
		})
	}
}

func TestParseExact(t *testing.T) {
	cases := []struct {
		name string
		src  string
		n    *node
	}{
		{
			name: "pow",
			src:  "x**2",
			n: &node{
				kind:  nodePow,
				left:  &node{kind: nodeName, text: "x"},
				right: &node{kind: nodeNum, text: "2"},
			},
		},
		{
			name: "neg",
			src:  "-a",
			n: &node{
				kind: nodeNeg,
				left: &node{kind: nodeName, text: "a"},
			},
		},
		{
			name: "nop",
			src:  "+a",
			n: &node{
				kind: nodeNop,
				left: &node{kind: nodeName, text: "a"},
			},
		},
		{
			name: "terms",
			src:  "2 x",
			n: &node{
				kind:  nodeMul,
				left:  &node{kind: nodeNum, text: "2"},
				right: &node{kind: nodeName, text: "x"},
			},
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a, err := ParseString(c.src)
			if err != nil {
				t.Fatalf("%q failed to parse: %v", c.src, err)
			}
			d, e := a.n.diff(c.n)
			if d != nil || e != nil {
				t.Errorf("mismatched AST:\n\twant %v which has %v\n\tgot  %v which has %v from %q", c.n, e, a.n, d, c.src)
			}
		})
	}
}

func TestCanonicalString(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want string
	}{
		{"add", "a+b", "a + b"},
		{"subterm", "a - b*c", "a - b * c"},
		{"parenleft", "(a+b)*c", "(a + b) * c"},
		{"groupright", "a+(b+c)", "a + (b + c)"},
		{"flatleft", "a - b - c", "a - b - c"},
		{"groupsub", "a-(b-c)", "a - (b - c)"},
		{"altops", "x×y÷z", "x * y / z"},
		{"divgroup", "a/(b/c)", "a / (b / c)"},
		{"terms", "2 x", "2 * x"},
		{"parenterms", "x(y+z)", "x * (y + z)"},
		{"pow", "a**2+b", "a ** 2 + b"},
		{"caretpow", "a^2+b", "a ** 2 + b"},
		{"powright", "a^b^c", "a ** b ** c"},
		{"powleft", "(a**b)**c", "(a ** b) ** c"},
		{"pownum", "x^-1", "x ** -1"},
		{"negpow", "-x**2", "-x ** 2"},
		{"negparen", "-(x+y)", "-(x + y)"},
		{"negneg", "--x", "--x"},
		{"negbase", "(-x)**2", "(-x) ** 2"},
		{"nop", "+x", "+x"},
		{"pownegpow", "x^-y^-z", "x ** -y ** -z"},
		{"numtext", "1.5e-3*x", "1.5e-3 * x"},
		{"brackets", "[a+b]{c}", "(a + b) * c"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a, err := ParseString(c.src)
			if err != nil {
				t.Fatalf("%q failed to parse: %v", c.src, err)
			}
			if got := a.String(); got != c.want {
				t.Errorf("%q renders %q, want %q", c.src, got, c.want)
			}
			// The canonical form must parse back to the same tree.
			b, err := ParseString(a.String())
			if err != nil {
				t.Fatalf("%q -> %q failed to parse: %v", c.src, a.String(), err)
			}
			d, e := a.n.diff(b.n)
			if d != nil || e != nil {
				t.Errorf("mismatched AST:\n\t%q parses %v has %v\n\t%q parses %v has %v", c.src, a.n, d, a.String(), b.n, e)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
		err  InputError
		res  []string
		excl []string
	}{
		{"empty", "", new(EmptyExpressionError), []string{`(?i)\b(no|empty)\b.*\bexpression\b`}, []string{`(?i)\bend\b`}},
		{"emptyparen", "()", new(EmptyExpressionError), []string{`(?i)\b(no|empty)\b.*\bexpression\b`, `\)`}, nil},
		{"emptyterm", "x()", new(EmptyExpressionError), []string{`(?i)\b(no|empty)\b.*\bexpression\b`, `\)`}, nil},
		{"emptyoperand", "x*", new(EmptyExpressionError), []string{`(?i)\b(no|empty)\b.*\bexpression\b`, `(?i)\bend\b`}, nil},
		{"emptypow", "x**", new(EmptyExpressionError), []string{`(?i)\b(no|empty)\b.*\bexpression\b`, `(?i)\bend\b`}, nil},
		{"emptyunary", "x*-", new(EmptyExpressionError), []string{`(?i)\b(no|empty)\b.*\bexpression\b`, `(?i)\bend\b`}, nil},
		{"left", "(x", new(BracketError), []string{`(?i)\bbracket\b`, `\(`}, nil},
		{"right", "x)", new(BracketError), []string{`(?i)\bbracket\b`, `\)`}, nil},
		{"mismatch", "(x]", new(BracketError), []string{`(?i)\bbracket\b`, `\(`, `]`}, nil},
		{"mismatch-mul", "x*(y]", new(BracketError), []string{`(?i)\bbracket\b`, `\(`, `]`}, nil},
		{"mismatch-terms", "x(y]", new(BracketError), []string{`(?i)\bbracket\b`, `\(`, `]`}, nil},
		{"nonunary", "*x", new(OperatorError), []string{`(?i)\bunary\b`, `(?i)\bop`, `\*`}, nil},
		{"nonunarypow", "**x", new(OperatorError), []string{`(?i)\bunary\b`, `(?i)\bop`, `\*\*`}, nil},
		{"sep", "x, y", new(SeparatorError), []string{`","`}, nil},
		{"sepbrackets", "(x, y)", new(SeparatorError), []string{`","`}, nil},
		{"lexer", "2^(-$)", new(LexError), []string{`\$`}, nil},

		{"op-paren", "(b*)", new(EmptyExpressionError), []string{`\)`}, nil},
		{"haskell", "(+)", new(EmptyExpressionError), []string{`\)`}, nil},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a, err := ParseString(c.src)
			if a != nil {
				t.Errorf("%q parsed non-nil to %v", c.src, a.n)
			}
			if reflect.TypeOf(err) != reflect.TypeOf(c.err) {
				t.Errorf("wrong error type from %q: want %T, got %T", c.src, c.err, err)
			}
			if err == nil {
				return
			}
			msg := err.Error()
			for _, re := range c.res {
				if !regexp.MustCompile(re).MatchString(msg) {
					t.Errorf("error message %q does not match %s", msg, re)
				}
			}
			for _, re := range c.excl {
				if regexp.MustCompile(re).MatchString(msg) {
					t.Errorf("error message %q matches %s", msg, re)
				}
			}
		})
	}
}

func TestStopOn(t *testing.T) {
	cases := []struct {
		name string
		src  string
		stop rune
		n    int
	}{
		{"newline", "x\nx", '\n', 2},
		{"comma", "x+y,x", ',', 2},
		{"semi", "x;x", ';', 2},
		{"num", "1\n1", '\n', 2},
		{"multinl", "x\n\nx", '\n', 2},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			src := strings.NewReader(c.src)
			for i := 0; i < c.n; i++ {
				if _, err := Parse(src, StopOn(c.stop)); err != nil {
					t.Fatalf("%q iter %d didn't parse: %v", c.src, i, err)
				}
			}
			a, err := Parse(src, StopOn(c.stop))
			if _, ok := err.(*EmptyExpressionError); !ok {
				t.Errorf("%q after %d iters parsed with error %#v and parse tree %v", c.src, c.n, err, a)
			}
		})
	}
	t.Run("start-sep", func(t *testing.T) {
		for _, src := range []string{",", ";"} {
			_, err := ParseString(src, StopOn([]rune(src)[0]))
			if _, ok := err.(*EmptyExpressionError); !ok {
				t.Errorf("%q parsed with error %#v", src, err)
			}
		}
	})
}

func TestVars(t *testing.T) {
	a, err := ParseString("b*a + c/a ** 2")
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"a", "b", "c"}
	if got := a.Vars(); !reflect.DeepEqual(got, want) {
		t.Errorf("wrong vars: want %v, got %v", want, got)
	}
}

func BenchmarkParse(b *testing.B) {
	cases := []struct {
		name string
		src  string
	}{
		{"descasc", "w^x*y+z+a*b^c"},
		{"descasc-parens", "(((w^x)*y)+z)+a*(b^c)"},
		{"ascdesc", "w+x*y^z^a*b+c"},
		{"ascdesc-parens", "w+((x*(y^(z^a)))*b)+c"},
		{"descasc-nums", "1^1.1*1.1e1+1.1e-1+.1"},
		{"starstar", "a**2+b**2+2 a b"},
	}
	for _, c := range cases {
		b.Run(c.name, func(b *testing.B) {
			b.ReportAllocs()
			var src strings.Reader
			for i := 0; i < b.N; i++ {
				src.Reset(c.src)
				Parse(&src)
			}
		})
	}
}
