package xmatch

// Theorem pairs a known statement with the matching policy used to align
// candidate expressions against it.
type Theorem struct {
	// Stmt is the theorem's expression text.
	Stmt string
	// Deep selects DeepMatch over ShallowMatch.
	Deep bool
	// PowerAsAtomic controls whether powers are treated as opaque leaves.
	PowerAsAtomic bool
}

// NewTheorem creates a theorem that matches deeply with atomic powers.
func NewTheorem(stmt string) *Theorem {
	return &Theorem{Stmt: stmt, Deep: true, PowerAsAtomic: true}
}

// Match aligns a candidate expression against the theorem and returns the
// correspondence pairs, theorem side first.
//
// TODO(theoremtool): deciding whether the candidate is an instance of the
// theorem needs a substitution-consistency check over the returned pairs.
// That check lives with the caller for now.
func (t *Theorem) Match(expr string) PairSet {
	if t.Deep {
		return DeepMatch(t.Stmt, expr, t.PowerAsAtomic)
	}
	return ShallowMatch(t.Stmt, expr, t.PowerAsAtomic)
}
