package reasoner

// explainConflict returns, for the falsified clause c, the literals
// responsible for the conflict in their currently-true form: every literal
// of c is false under the assignment, so its opposite is the trail entry
// that must be visited next.
func (r *Reasoner) explainConflict(c *Clause) []Literal {
	r.explainBuf = r.explainBuf[:0]
	for _, l := range c.literals {
		r.explainBuf = append(r.explainBuf, l.Opposite())
	}
	return r.explainBuf
}

// explainAssign returns, for the reason clause c that implied literal
// c.literals[0], the clause's remaining literals in their currently-true
// form -- the facts that made c unit and forced the implication.
func (r *Reasoner) explainAssign(c *Clause) []Literal {
	r.explainBuf = r.explainBuf[:0]
	for _, l := range c.literals[1:] {
		r.explainBuf = append(r.explainBuf, l.Opposite())
	}
	return r.explainBuf
}

// analyze performs first-UIP conflict analysis on the falsified clause
// conflict, per spec.md §4.7: starting from conflict as the working clause,
// it repeatedly resolves against the reason clause of the most-recently
// assigned trail literal whose negation the working clause still contains,
// until only one literal at the current decision level remains (the first
// unique implication point). It returns the resulting clause's literals,
// the FUIP first, and its assertion (backjump) level.
//
// The resolution is performed one pass over the trail rather than by
// materializing each intermediate resolvent: r.seen (a resetSet, spec.md
// §9's "transient per-literal flag") dedupes literals as they are folded
// into r.resolve, which accumulates exactly the literals a sequence of
// resolution steps would have produced.
func (r *Reasoner) analyze(conflict *Clause) ([]Literal, int) {
	level := r.level

	r.seen.Clear()
	r.resolve = r.resolve[:0]
	r.resolve = append(r.resolve, 0) // placeholder, filled with the FUIP below

	implicationPoints := 0
	trailPos := len(r.trail) - 1
	pivot := Literal(0) // sentinel: explain the conflict clause itself

	for {
		var explained []Literal
		if pivot == 0 {
			explained = r.explainConflict(conflict)
		} else {
			explained = r.explainAssign(conflict)
		}

		for _, q := range explained {
			v := q.Var()
			if r.seen.Contains(v) {
				continue
			}
			r.seen.Add(v)

			if r.vars[v].level == level {
				implicationPoints++
				continue
			}
			r.resolve = append(r.resolve, q.Opposite())
		}

		// Find the most recently assigned trail literal not yet folded in.
		var v VarIndex
		for {
			pivot = r.trail[trailPos]
			trailPos--
			v = pivot.Var()
			if r.seen.Contains(v) {
				break
			}
		}
		conflict = r.vars[v].reason

		implicationPoints--
		if implicationPoints <= 0 {
			break
		}
	}

	r.resolve[0] = pivot.Opposite()

	learned := append([]Literal(nil), r.resolve...)
	return learned, r.assertionLevelOf(learned)
}

// assertionLevelOf returns the second-highest decision level among lits, or
// 1 if fewer than two distinct levels occur (a learned unit, or the
// degenerate all-level-1 case at the start level). This is the spec-
// mandated fix (SPEC_FULL.md Open Question #1) for the source's ambiguous
// "return max" draft: grounded on
// original_source/primitives/src/sat_api.c's get_assertion_level, which
// tracks max and second-highest while skipping re-visits of either.
func (r *Reasoner) assertionLevelOf(lits []Literal) int {
	max, second := 1, 1
	for _, l := range lits {
		lvl := r.vars[l.Var()].level
		switch {
		case lvl == max || lvl == second:
			// already accounted for
		case lvl > max:
			second, max = max, lvl
		case lvl > second:
			second = lvl
		}
	}
	return second
}
