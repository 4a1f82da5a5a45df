package reasoner

import (
	"fmt"
	"strings"

	"github.com/rhartert/yasskernel/internal/dimacsio"
)

// Construct loads a DIMACS CNF instance from path and returns a Reasoner
// holding the resulting entity store, with start-level unit propagation
// already run (spec.md §4.1, §4.6). A ".gz"-suffixed path is read as
// gzip-compressed input, mirroring the teacher's reader() helper.
//
// If an original unit clause is already false when it is loaded, start-level
// propagation is skipped and that clause is published as the conflict; if
// start-level propagation falsifies a clause, that clause is. Either way
// Construct returns the reasoner with ConflictExists and AtStartLevel both
// true: the formula is unsatisfiable and there is no higher level to
// backjump to (SPEC_FULL.md Open Question #3).
func Construct(path string) (*Reasoner, error) {
	inst, err := dimacsio.Parse(path, strings.HasSuffix(path, ".gz"))
	if err != nil {
		return nil, fmt.Errorf("reasoner: construct %q: %w: %w", path, ErrMalformedHeader, err)
	}

	r := newReasoner(inst.NumVars)
	r.clauses = make([]*Clause, 1, len(inst.Clauses)+1) // index 0 unused

	var contradiction *Clause // first original unit clause found already false
	for _, tokens := range inst.Clauses {
		if len(tokens) == 0 {
			continue // spec.md §4.1: empty input clauses are discarded
		}

		literals := make([]Literal, len(tokens))
		for i, t := range tokens {
			if t > 0 {
				literals[i] = PosLiteral(VarIndex(t))
			} else {
				literals[i] = NegLiteral(VarIndex(-t))
			}
		}

		c := r.constructClause(literals, false)
		r.registerClause(c)
		r.clauses = append(r.clauses, c)

		if c.IsUnit() && contradiction == nil && !r.enqueue(c.literals[0], c) {
			contradiction = c
		}
	}

	if contradiction != nil {
		r.pending.Clear()
		r.recordConflict(contradiction)
	} else if conflict := r.Propagate(); conflict != nil {
		r.recordConflict(conflict)
	}

	return r, nil
}

// Close releases the reasoner's pools. The Go runtime reclaims the memory
// once r is unreachable; Close exists for API parity with the source's
// free(reasoner) and to let callers make the end of a reasoner's lifetime
// explicit.
func (r *Reasoner) Close() {
	r.vars = nil
	r.lits = nil
	r.clauses = nil
	r.learned = nil
	r.decisionStack = nil
	r.trail = nil
	r.pending = nil
}

// VarCount returns the number of variables in the formula.
func (r *Reasoner) VarCount() int {
	return len(r.vars) - 1
}

// ClauseCount returns the number of original clauses.
func (r *Reasoner) ClauseCount() int {
	return len(r.clauses) - 1
}

// LearnedCount returns the number of clauses learned so far.
func (r *Reasoner) LearnedCount() int {
	return len(r.learned)
}

// VarAt returns the i-th variable (1-based).
func (r *Reasoner) VarAt(i VarIndex) VarIndex {
	return r.vars[i].index
}

// LiteralAt returns the literal stored at the given paired slot: slot
// 2*(v-1) is the positive literal of variable v, slot 2*(v-1)+1 the
// negative one (spec.md §4.2).
func (r *Reasoner) LiteralAt(slot int) Literal {
	return r.lits[slot].lit
}

// ClauseAt returns the i-th original clause (1-based).
func (r *Reasoner) ClauseAt(i ClauseIndex) *Clause {
	return r.clauses[i]
}

// LearnedAt returns the i-th learned clause (0-based).
func (r *Reasoner) LearnedAt(i int) *Clause {
	return r.learned[i]
}

// PosLiteralOf returns the positive literal of variable v.
func (r *Reasoner) PosLiteralOf(v VarIndex) Literal {
	return r.vars[v].posLit
}

// NegLiteralOf returns the negative literal of variable v.
func (r *Reasoner) NegLiteralOf(v VarIndex) Literal {
	return r.vars[v].negLit
}

// Instantiated reports whether v currently has a value.
func (r *Reasoner) Instantiated(v VarIndex) bool {
	return r.vars[v].value != Unknown
}

// Value returns v's current value (Unknown if v is free), mirroring the
// teacher's VarValue.
func (r *Reasoner) Value(v VarIndex) LBool {
	return r.vars[v].value
}

// Implied reports whether l is currently implied, i.e. whether its
// underlying variable is instantiated.
func (r *Reasoner) Implied(l Literal) bool {
	return r.Instantiated(l.Var())
}

// Subsumed reports whether c is satisfied under the current assignment: a
// convenience query over litValue, since the engine itself never tracks
// clause satisfaction explicitly.
func (r *Reasoner) Subsumed(c *Clause) bool {
	for _, l := range c.literals {
		if r.litValue(l) == True {
			return true
		}
	}
	return false
}

// Irrelevant reports whether every clause mentioning v is subsumed under
// the current assignment, i.e. v no longer constrains satisfiability.
func (r *Reasoner) Irrelevant(v VarIndex) bool {
	for _, c := range r.vars[v].occursIn {
		if !r.Subsumed(c) {
			return false
		}
	}
	return true
}

// AtAssertionLevel reports whether c's assertion level is the reasoner's
// current decision level, i.e. c is ready to be asserted.
func (r *Reasoner) AtAssertionLevel(c *Clause) bool {
	return c.assertionLevel == r.level
}

// AtStartLevel reports whether the reasoner is at the start level (no
// decisions pending undo).
func (r *Reasoner) AtStartLevel() bool {
	return r.level == 1
}

// ConflictExists reports whether a conflict's asserting clause is currently
// published and awaiting host action.
func (r *Reasoner) ConflictExists() bool {
	return r.asserting != nil
}

// AssertingClause returns the currently published asserting clause, or nil
// if no conflict is pending.
func (r *Reasoner) AssertingClause() *Clause {
	return r.asserting
}

// DecideLiteral instantiates l as a new decision (spec.md §4.3) and runs
// unit propagation. It returns the freshly published asserting clause if
// propagation conflicts, or nil otherwise.
//
// Precondition: l's variable is free and no conflict is currently
// published. DecideLiteral does not check this; callers are expected to
// guard with Instantiated/ConflictExists.
func (r *Reasoner) DecideLiteral(l Literal) *Clause {
	r.pushDecision(l)
	if conflict := r.Propagate(); conflict != nil {
		return r.recordConflict(conflict)
	}
	return nil
}

// UndoDecideLiteral pops the top decision and undoes everything it implied
// (spec.md §4.4), returning every literal that was undone in assignment
// order (the decision first). Any clause currently published as the
// asserting clause remains published; the host consumes it or undoes past
// its level.
func (r *Reasoner) UndoDecideLiteral() []Literal {
	return r.undoLast()
}

// AssertClause appends c to the learned pool, installs its watches, clears
// the published asserting clause, and runs propagation at the current
// level (spec.md §4.5).
//
// Precondition: AtAssertionLevel(c) holds -- the host has backjumped to
// exactly c's assertion level before calling AssertClause.
func (r *Reasoner) AssertClause(c *Clause) *Clause {
	r.registerClause(c)
	r.learned = append(r.learned, c)
	r.asserting = nil

	// By construction every literal of c besides literals[0] (the FUIP) was
	// false at or below c's assertion level and remains so after the host's
	// backjump to exactly that level: c is already unit on literals[0].
	if !r.enqueue(c.literals[0], c) {
		return r.recordConflict(c)
	}

	if conflict := r.Propagate(); conflict != nil {
		return r.recordConflict(conflict)
	}
	return nil
}
