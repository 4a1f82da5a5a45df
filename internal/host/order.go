// Package host implements the branching driver that sits outside the core
// reasoner: variable/phase selection and the iterative search loop. Neither
// is part of the reasoner's contract (spec.md's core kernel takes decisions
// as given), but a CNF solver needs both to be runnable end to end.
package host

import (
	"github.com/rhartert/yagh"
	"github.com/rhartert/yasskernel/internal/reasoner"
)

// VarOrder maintains the order in which free variables are offered to the
// search as decisions: a VSIDS-style binary heap keyed on activity score,
// with phase saving so a variable re-decided after backtracking first tries
// the value it last held. Adapted from the teacher's ordering.go, re-keyed
// on reasoner.VarIndex instead of a bare int and driven by the reasoner's
// Instantiated query instead of an embedded Solver reference.
type VarOrder struct {
	order *yagh.IntMap[float64]

	scores     []float64 // in [0, 1e100), index 0 unused
	scoreInc   float64
	scoreDecay float64

	phases      []reasoner.LBool
	phaseSaving bool
}

// NewVarOrder returns a VarOrder over variables 1..n, all ties initially
// broken by declaration order and all phases defaulting to true.
func NewVarOrder(n int, decay float64, phaseSaving bool) *VarOrder {
	vo := &VarOrder{
		order:       yagh.New[float64](0),
		scoreInc:    1,
		scoreDecay:  decay,
		phaseSaving: phaseSaving,
	}

	vo.scores = make([]float64, n+1)
	vo.phases = make([]reasoner.LBool, n+1)
	vo.order.GrowBy(n + 1)
	for v := 1; v <= n; v++ {
		vo.order.Put(v, 0)
	}

	return vo
}

// Reinsert adds variable v back to the set of candidates to be selected,
// recording val as the phase to try next time. Hosts call this for every
// literal UndoDecideLiteral reports as undone, since the heap only removes
// a variable lazily (on NextDecision) and never reinserts it on its own.
func (vo *VarOrder) Reinsert(v reasoner.VarIndex, val reasoner.LBool) {
	if vo.phaseSaving {
		vo.phases[v] = val
	}
	vo.order.Put(int(v), -vo.scores[v])
}

// BumpScore increases v's activity score, possibly triggering a rescale of
// every score if v's exceeds a threshold; the rescale preserves relative
// ordering. Hosts call this for every variable involved in a learned clause
// so that recently conflicting variables are preferred by future decisions.
func (vo *VarOrder) BumpScore(v reasoner.VarIndex) {
	newScore := vo.scores[v] + vo.scoreInc
	vo.scores[v] = newScore
	if vo.order.Contains(int(v)) {
		vo.order.Put(int(v), -newScore)
	}
	if newScore > 1e100 {
		vo.rescaleScoresAndIncrement()
	}
}

// DecayScores slightly increases the weight of future BumpScore calls
// relative to past ones, so that variables involved in recent conflicts
// matter more than ones that mattered long ago.
func (vo *VarOrder) DecayScores() {
	vo.scoreInc /= vo.scoreDecay
	if vo.scoreInc > 1e100 {
		vo.rescaleScoresAndIncrement()
	}
}

func (vo *VarOrder) rescaleScoresAndIncrement() {
	vo.scoreInc *= 1e-100
	for v, s := range vo.scores {
		newScore := s * 1e-100
		vo.scores[v] = newScore
		if vo.order.Contains(v) {
			vo.order.Put(v, -newScore)
		}
	}
}

// NextDecision pops the highest-activity still-free variable and returns
// the literal to decide next (its saved phase, defaulting to positive). It
// returns ok=false once every variable has been popped and found
// instantiated -- i.e. the formula is fully assigned, a satisfying model.
func (vo *VarOrder) NextDecision(r *reasoner.Reasoner) (l reasoner.Literal, ok bool) {
	for {
		next, popped := vo.order.Pop()
		if !popped {
			return 0, false
		}
		v := reasoner.VarIndex(next.Elem)
		if r.Instantiated(v) {
			continue // assigned by propagation since it was last inserted
		}

		if vo.phases[v] == reasoner.False {
			return reasoner.NegLiteral(v), true
		}
		return reasoner.PosLiteral(v), true
	}
}
