package xmatch

import (
	"log/slog"
	"sort"
)

// Pair is one correspondence produced by matching: A is a sub-expression of
// the first input and B the aligned sub-expression of the second. Both sides
// are canonical renderings, except for the whole-input base cases, which
// reproduce the inputs verbatim.
type Pair struct {
	A, B string
}

// PairSet is a set of correspondence pairs. The zero map is empty; matching
// never returns a nil set.
type PairSet map[Pair]struct{}

// Add inserts a pair into the set.
func (s PairSet) Add(a, b string) {
	s[Pair{a, b}] = struct{}{}
}

// Contains reports whether the set contains the pair (a, b).
func (s PairSet) Contains(a, b string) bool {
	_, ok := s[Pair{a, b}]
	return ok
}

// Equal reports whether two sets contain exactly the same pairs.
func (s PairSet) Equal(t PairSet) bool {
	if len(s) != len(t) {
		return false
	}
	for p := range s {
		if _, ok := t[p]; !ok {
			return false
		}
	}
	return true
}

// Pairs returns the set's pairs sorted by A, then B.
func (s PairSet) Pairs() []Pair {
	v := make([]Pair, 0, len(s))
	for p := range s {
		v = append(v, p)
	}
	sort.Slice(v, func(i, j int) bool {
		if v[i].A != v[j].A {
			return v[i].A < v[j].A
		}
		return v[i].B < v[j].B
	})
	return v
}

// ShallowMatch aligns the operator trees of two expressions and returns the
// set of corresponding sub-expression pairs.
//
// Two binary expressions match if they share the same operator shape. A single
// mismatched operator anywhere fails the whole match with an empty set, except
// that when powerAsAtomic is true a power on either side of a mismatch is
// treated as an opaque substitution site and paired whole. A matched power is
// likewise paired whole when powerAsAtomic is true; with powerAsAtomic false,
// powers decompose like any other operator, so their shapes must agree
// exactly.
//
// Unparsable input degrades to an empty set rather than an error, so "no
// match" and "not an expression" are indistinguishable to the caller.
//
//	ShallowMatch("a+b", "x+y", true)      ⇒ {(a, x), (b, y)}
//	ShallowMatch("a**2+b", "x**2+y", true) ⇒ {(a ** 2, x ** 2), (b, y)}
//	ShallowMatch("a+b", "x-y", true)      ⇒ {}
func ShallowMatch(expr1, expr2 string, powerAsAtomic bool) PairSet {
	return structMatch(expr1, expr2, false, powerAsAtomic)
}

// DeepMatch works like ShallowMatch but decomposes matched powers instead of
// pairing them whole. For powers a**b and x**y with powerAsAtomic true: if the
// bases agree, the pair is (b, y); if the exponents agree, the pair is (a, x);
// if the bases and exponents both differ, the powers pair whole; and a fully
// identical power contributes nothing.
//
//	DeepMatch("a**2", "x**2", true)       ⇒ {(a, x)}
//	DeepMatch("a**2+b", "x**2+y", true)   ⇒ {(a, x), (b, y)}
func DeepMatch(expr1, expr2 string, powerAsAtomic bool) PairSet {
	return structMatch(expr1, expr2, true, powerAsAtomic)
}

// structMatch is the traversal shared by both policies. deep selects the
// matched-power behavior, the only place the two differ.
func structMatch(expr1, expr2 string, deep, powerAsAtomic bool) PairSet {
	res := PairSet{}
	t1, err := ParseString(expr1)
	if err != nil {
		slog.Debug("xmatch: unparsable expression", "expr", expr1, "err", err)
		return res
	}
	t2, err := ParseString(expr2)
	if err != nil {
		slog.Debug("xmatch: unparsable expression", "expr", expr2, "err", err)
		return res
	}

	if !t1.n.kind.binary() || !t2.n.kind.binary() {
		// Two bare terms are trivially matched as a whole, verbatim.
		res[Pair{expr1, expr2}] = struct{}{}
		return res
	}
	if t1.n.kind != t2.n.kind {
		if !powerAsAtomic {
			return res
		}
		if t1.n.kind == nodePow || t2.n.kind == nodePow {
			res[Pair{expr1, expr2}] = struct{}{}
			return res
		}
		// The traversal below reports the failure.
	}

	work := [][2]*node{{t1.n, t2.n}}
	for len(work) > 0 {
		x, y := work[len(work)-1][0], work[len(work)-1][1]
		work = work[:len(work)-1]

		if !x.kind.binary() || !y.kind.binary() {
			// Leaf against leaf, or a leaf reached where the other tree still
			// has structure. Identical constants add no information once some
			// pair has been found, but an otherwise empty result keeps them so
			// that a successful match is never empty.
			if x.kind == nodeNum && y.kind == nodeNum && x.val.Cmp(y.val) == 0 && len(res) > 0 {
				continue
			}
			res.Add(x.String(), y.String())
			continue
		}

		if x.kind != y.kind {
			if (x.kind != nodePow && y.kind != nodePow) || !powerAsAtomic {
				// One incompatible operator pair fails the entire match.
				return PairSet{}
			}
			res.Add(x.String(), y.String())
			continue
		}
		if x.kind == nodePow && powerAsAtomic {
			if deep {
				matchPow(res, x, y)
			} else {
				res.Add(x.String(), y.String())
			}
			continue
		}
		work = append(work, [2]*node{x.right, y.right}, [2]*node{x.left, y.left})
	}
	return res
}

// matchPow pairs two matched powers under the deep policy, comparing base and
// exponent independently by their canonical renderings.
func matchPow(res PairSet, x, y *node) {
	xb, xp := x.left.String(), x.right.String()
	yb, yp := y.left.String(), y.right.String()
	switch {
	case xb == yb:
		if xp != yp {
			res.Add(xp, yp)
		}
		// Fully identical powers contribute nothing.
	case xp == yp:
		res.Add(xb, yb)
	default:
		// Neither side agrees, so the power cannot be decomposed.
		res.Add(x.String(), y.String())
	}
}
