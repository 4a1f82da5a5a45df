package host

import "github.com/rhartert/yasskernel/internal/reasoner"

// Status is the outcome of a completed search.
type Status int

const (
	StatusUnknown Status = iota
	StatusSat
	StatusUnsat
)

func (s Status) String() string {
	switch s {
	case StatusSat:
		return "SAT"
	case StatusUnsat:
		return "UNSAT"
	default:
		return "UNKNOWN"
	}
}

// Driver runs an iterative CDCL search loop over a Reasoner: decide,
// propagate, and on conflict either backjump and assert the learned clause
// or report UNSAT once the conflict cannot be resolved above the start
// level. It is an explicit loop rather than recursion, per spec.md §9's
// note that a systems implementation should avoid the source's recursive
// DPLL to keep stack use flat on deep formulas.
//
// Restarts, clause deletion, and multi-model enumeration are out of scope:
// the driver stops at the first model or the first start-level conflict.
type Driver struct {
	r     *reasoner.Reasoner
	order *VarOrder

	conflicts int
}

// NewDriver returns a Driver over r, with a fresh VarOrder seeded from r's
// variable count.
func NewDriver(r *reasoner.Reasoner) *Driver {
	return &Driver{
		r:     r,
		order: NewVarOrder(r.VarCount(), 0.95, true),
	}
}

// Conflicts returns the number of conflicts encountered so far.
func (d *Driver) Conflicts() int {
	return d.conflicts
}

// Solve runs the search to completion.
//
// A reasoner built from an already-contradictory formula (Construct itself
// published a start-level asserting clause) is reported UNSAT without
// making any decision.
func (d *Driver) Solve() Status {
	if d.r.ConflictExists() {
		return StatusUnsat
	}

	for {
		lit, ok := d.order.NextDecision(d.r)
		if !ok {
			return StatusSat
		}

		if status, done := d.resolve(d.r.DecideLiteral(lit)); done {
			return status
		}
	}
}

// resolve drives a chain of conflicts to resolution: backjumping and
// asserting learned clauses until propagation is conflict-free again, or
// until a conflict reaches the start level. done reports whether the
// search has reached a terminal state the caller should return directly.
func (d *Driver) resolve(conflict *reasoner.Clause) (status Status, done bool) {
	for conflict != nil {
		d.conflicts++
		for _, l := range conflict.Literals() {
			d.order.BumpScore(l.Var())
		}
		d.order.DecayScores()

		if d.r.AtStartLevel() {
			return StatusUnsat, true
		}

		for !d.r.AtAssertionLevel(conflict) {
			for _, l := range d.r.UndoDecideLiteral() {
				d.order.Reinsert(l.Var(), reasoner.Lift(l.IsPositive()))
			}
		}

		conflict = d.r.AssertClause(conflict)
	}
	return StatusUnknown, false
}
