package reasoner

// variable holds the per-variable solver state: its current value, the
// decision level at which it was instantiated, the clause that implied it
// (nil for decisions and for the start-level unit-clause roots), a host
// mark bit, and the bookkeeping needed to answer identity and irrelevance
// queries in constant or linear-in-occurrences time.
type variable struct {
	index  VarIndex
	value  LBool
	level  int // decision level; 0 when the variable is unset
	reason *Clause
	mark   bool

	posLit, negLit Literal

	// occursIn lists every original clause mentioning this variable,
	// in either polarity. Used by the "irrelevant variable" query.
	occursIn []*Clause
}

// literalEntry holds the per-literal state: the clauses in which this
// literal (with this exact polarity) occurs, used as the static backbone of
// the two-watched-literal scheme (propagation of a literal walks exactly
// this list), and a transient redundant flag. Conflict analysis does not
// read or set the flag: it dedupes with Reasoner.seen instead.
type literalEntry struct {
	lit       Literal
	variable  VarIndex
	occursIn  []*Clause
	redundant bool
}

// Clause is a disjunction of literals. Clauses with index <= the number of
// original clauses are part of the formula as loaded; clauses with a higher
// index were learned during conflict analysis.
//
// The clause's two watched-literal slots (spec.md §3's l1, l2) are not
// separate fields: by convention literals[0] and literals[1] are always the
// current watches for a clause of size >= 2, and propagate (propagate.go)
// maintains that invariant by swapping entries as watches move. Unit
// clauses (size 1) have no watches at all, matching invariant #4.
type Clause struct {
	index    ClauseIndex
	literals []Literal

	// assertionLevel is meaningful only for learned clauses: the decision
	// level the host must backjump to before the clause can be asserted.
	// It is 1 for learned unit clauses.
	assertionLevel int

	learned bool
	mark    bool
}

// Index returns the clause's identifier.
func (c *Clause) Index() ClauseIndex { return c.index }

// Literals returns the clause's literals. For a clause of size >= 2,
// Literals()[0] and Literals()[1] are always the clause's current two
// watched literals.
func (c *Clause) Literals() []Literal { return c.literals }

// Watch1 and Watch2 return the clause's two watched literals and true, or
// (0, false) if the clause is a unit clause (no watches, per invariant #4).
func (c *Clause) Watch1() (Literal, bool) {
	if c.IsUnit() {
		return 0, false
	}
	return c.literals[0], true
}

func (c *Clause) Watch2() (Literal, bool) {
	if c.IsUnit() {
		return 0, false
	}
	return c.literals[1], true
}

// Size returns the number of literals in the clause.
func (c *Clause) Size() int { return len(c.literals) }

// IsUnit reports whether the clause is a unit clause (no watched literals).
func (c *Clause) IsUnit() bool { return len(c.literals) == 1 }

// IsLearned reports whether the clause was learned via conflict analysis.
func (c *Clause) IsLearned() bool { return c.learned }

// AssertionLevel returns the clause's assertion (backjump) level. Only
// meaningful for learned clauses.
func (c *Clause) AssertionLevel() int { return c.assertionLevel }

// Mark returns the host-controlled mark bit.
func (c *Clause) Mark() bool { return c.mark }

// SetMark sets the host-controlled mark bit.
func (c *Clause) SetMark(v bool) { c.mark = v }

// newReasoner allocates the entity pools for a formula over n variables:
// n variables and 2n literals (paired). The original clause pool is
// allocated and filled by Construct.
func newReasoner(n int) *Reasoner {
	r := &Reasoner{
		vars: make([]variable, n+1), // index 0 unused
		lits: make([]literalEntry, 2*n),
		seen: &resetSet{},

		pending: newQueue[Literal](128),
		level:   1,
	}
	r.seen.Expand() // slot 0, unused, keeps resetSet indexable by VarIndex
	for v := 1; v <= n; v++ {
		vi := VarIndex(v)
		r.vars[v] = variable{
			index:  vi,
			posLit: PosLiteral(vi),
			negLit: NegLiteral(vi),
		}
		r.seen.Expand()

		pos := slotOf(PosLiteral(vi))
		neg := slotOf(NegLiteral(vi))
		r.lits[pos] = literalEntry{lit: PosLiteral(vi), variable: vi}
		r.lits[neg] = literalEntry{lit: NegLiteral(vi), variable: vi}
	}
	return r
}

// entry returns the literalEntry backing literal l.
func (r *Reasoner) entry(l Literal) *literalEntry {
	return &r.lits[slotOf(l)]
}

// constructClause builds a Clause from lits, picking its initial two
// watches per spec.md §4.1 (the first two literals) or, for learned
// clauses, per the first-UIP construction in analyze.go (the FUIP first,
// the literal with the highest remaining level second). It does not
// register the clause in any occurrence list: the clause is not yet
// discoverable by Propagate until registerClause is called on it. This
// split exists because a learned clause is merely "published" by conflict
// analysis (spec.md §4.7) and only becomes part of the two-watched index
// when the host actually asserts it (spec.md §4.5) -- a discarded asserting
// clause must never have participated in propagation.
func (r *Reasoner) constructClause(lits []Literal, learned bool) *Clause {
	c := &Clause{
		literals: append([]Literal(nil), lits...),
		learned:  learned,
	}

	if learned && len(c.literals) >= 2 {
		maxLevel, at := -1, 1
		for i := 1; i < len(c.literals); i++ {
			if lvl := r.vars[c.literals[i].Var()].level; lvl > maxLevel {
				maxLevel, at = lvl, i
			}
		}
		c.literals[1], c.literals[at] = c.literals[at], c.literals[1]
	}

	return c
}

// registerClause assigns c its permanent index and makes it discoverable by
// Propagate: every literal it contains is added to that literal's
// occurrence list (skipped for unit clauses, which have no watches and are
// never revisited by Propagate once their single literal is assigned), and,
// for original (non-learned) clauses, to every mentioned variable's
// occurrence list (used by the "irrelevant variable" query).
func (r *Reasoner) registerClause(c *Clause) {
	// r.clauses[0] is an unused dummy so that original clauses are
	// addressable 1..m; its length already accounts for the "+1" offset.
	c.index = ClauseIndex(len(r.clauses) + len(r.learned))

	if !c.IsUnit() {
		for _, l := range c.literals {
			e := r.entry(l)
			e.occursIn = append(e.occursIn, c)
		}
	}
	if !c.learned {
		for _, l := range c.literals {
			v := &r.vars[l.Var()]
			v.occursIn = append(v.occursIn, c)
		}
	}
}

// litValue returns the current truth value of literal l under the partial
// assignment.
func (r *Reasoner) litValue(l Literal) LBool {
	v := r.vars[l.Var()].value
	if v == Unknown {
		return Unknown
	}
	if l.IsPositive() {
		return v
	}
	return v.Opposite()
}
