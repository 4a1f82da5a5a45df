package reasoner

// propagate re-examines clause c because literal falsified just became
// false. It maintains the convention that c.literals[0] and c.literals[1]
// are always the clause's two current watches for a clause of size >= 2:
// if falsified was at position 0, it is swapped into position 1 first so
// the rest of the function only has to reason about a single "other
// watch" at position 0.
//
// It returns true if the watch invariant still holds afterward (possibly
// by moving a watch, or because the clause is already satisfied by its
// other watch), and false if c is now completely falsified -- a conflict.
func (c *Clause) propagate(r *Reasoner, falsified Literal) bool {
	if c.literals[0] == falsified {
		c.literals[0], c.literals[1] = c.literals[1], c.literals[0]
	} else if c.literals[1] != falsified {
		return true // falsified is not currently watched; nothing to do
	}

	if r.litValue(c.literals[0]) == True {
		return true // clause already satisfied by its other watch
	}

	for i := 2; i < len(c.literals); i++ {
		if r.litValue(c.literals[i]) != False {
			c.literals[1], c.literals[i] = c.literals[i], c.literals[1]
			return true
		}
	}

	// No replacement literal found: the other watch must become true if
	// the clause is to remain satisfiable. enqueue reports false exactly
	// when that watch is already false, i.e. a conflict.
	return r.enqueue(c.literals[0], c)
}

// Propagate drains the pending queue, advancing watches and detecting unit
// clauses and conflicts per the two-watched-literal scheme of SPEC_FULL.md.
// Propagation of literal l visits exactly the clauses in which l's negation
// occurs (via the literal's static occurrence list), filtering in constant
// time on whether the falsified occurrence is currently watched.
//
// Propagate returns the falsified clause on conflict, or nil once the
// pending queue is empty with no conflict found. It does not itself publish
// an asserting clause: callers route a non-nil result through recordConflict.
func (r *Reasoner) Propagate() *Clause {
	for !r.pending.IsEmpty() {
		l := r.pending.Pop()
		falsified := l.Opposite()

		for _, c := range r.entry(falsified).occursIn {
			if !c.propagate(r, falsified) {
				r.pending.Clear()
				return c
			}
		}
	}
	return nil
}

// recordConflict runs first-UIP conflict analysis on the falsified clause
// conflict, builds and publishes the resulting asserting clause, and
// returns it. It is the single place where a falsified clause becomes the
// reasoner's published asserting clause, whether that clause was found by
// watch-driven propagation or by a direct unit-clause contradiction at
// construction time.
//
// The published clause is built (constructClause) but deliberately not
// registered in any occurrence list: it only becomes part of the
// two-watched index once the host actually asserts it (see AssertClause),
// matching spec.md §4.7's "publish" semantics and §4.5's "updates the
// two-watched index" happening at assert time.
func (r *Reasoner) recordConflict(conflict *Clause) *Clause {
	lits, level := r.analyze(conflict)

	c := r.constructClause(lits, true)
	c.assertionLevel = level

	r.asserting = c
	return c
}
