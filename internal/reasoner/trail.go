package reasoner

// Reasoner owns the variable, literal, and clause pools for one formula
// along with the mutable search state: the trail, the decision stack, the
// pending propagation queue, the current decision level, and the currently
// published asserting clause (non-nil only right after a conflict).
type Reasoner struct {
	vars    []variable     // index 0 unused; variables are 1..n
	lits    []literalEntry // indexed by litSlot; length 2n
	clauses []*Clause      // index 0 unused; original clauses are 1..m
	learned []*Clause      // learned clauses, growable, indices above m

	// decisionStack holds one literal per level above the start level: the
	// decision made at level L occupies decisionStack[L-2] for L >= 2 (see
	// SPEC_FULL.md Open Question #2).
	decisionStack []Literal

	// trail holds every implied (including decided) literal in assignment
	// order, across all levels.
	trail []Literal

	pending *queue[Literal]

	level int // current decision level; the start level is 1

	asserting *Clause // published asserting clause; nil except after a conflict

	seen       *resetSet // scratch set reused by analyze to dedupe literals
	resolve    []Literal // scratch buffer reused by analyze to build a resolvent
	explainBuf []Literal // scratch buffer reused by explainConflict/explainAssign
}

// decisionLevel returns the reasoner's current decision level.
func (r *Reasoner) decisionLevel() int {
	return r.level
}

// assign instantiates the variable underlying l so that l becomes true at
// the given decision level with the given reason, and appends l to the
// trail. It does not touch the pending propagation queue; callers that need
// l to trigger further propagation must push it themselves.
func (r *Reasoner) assign(l Literal, level int, reason *Clause) {
	v := &r.vars[l.Var()]
	if l.IsPositive() {
		v.value = True
	} else {
		v.value = False
	}
	v.level = level
	v.reason = reason
	r.trail = append(r.trail, l)
}

// enqueue attempts to make literal l true as implied by reason. It returns
// false iff l is already false under the current assignment, i.e. the
// clause that is trying to assert l (reason, or the caller's own falsified
// clause) is in conflict. A literal that is already true is a harmless
// no-op (the clause that tried to assert it is simply already satisfied).
func (r *Reasoner) enqueue(l Literal, reason *Clause) bool {
	switch r.litValue(l) {
	case False:
		return false
	case True:
		return true
	default:
		r.assign(l, r.level, reason)
		r.pending.Push(l)
		return true
	}
}

// pushDecision instantiates literal l as a decision at a new, incremented
// decision level and enqueues it for propagation.
func (r *Reasoner) pushDecision(l Literal) {
	r.level++
	r.decisionStack = append(r.decisionStack, l)
	r.assign(l, r.level, nil)
	r.pending.Push(l)
}

// undoLast un-instantiates every trail entry assigned at the current
// (topmost) decision level -- the decision itself and everything it
// implied -- then decrements the decision level. It returns the literals
// that were undone, in assignment order (the decision first), so a caller
// doing phase-saving can recover each one's prior value directly from its
// sign: trail entries are always the literal that was made true.
func (r *Reasoner) undoLast() []Literal {
	start := len(r.trail)
	for start > 0 && r.vars[r.trail[start-1].Var()].level == r.level {
		start--
	}

	undone := append([]Literal(nil), r.trail[start:]...)
	for _, l := range undone {
		v := &r.vars[l.Var()]
		v.value = Unknown
		v.level = 0
		v.reason = nil
	}
	r.trail = r.trail[:start]

	r.decisionStack = r.decisionStack[:len(r.decisionStack)-1]
	r.level--

	return undone
}
