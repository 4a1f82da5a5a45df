package reasoner

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func mustConstruct(t *testing.T, cnf string) *Reasoner {
	t.Helper()
	path := filepath.Join(t.TempDir(), "instance.cnf")
	if err := os.WriteFile(path, []byte(cnf), 0o644); err != nil {
		t.Fatalf("WriteFile(): %s", err)
	}
	r, err := Construct(path)
	if err != nil {
		t.Fatalf("Construct(): want no error, got %s", err)
	}
	return r
}

// Scenario 1: { (x1) }. Start-level unit propagation alone is satisfying.
func TestConstruct_singleUnit(t *testing.T) {
	r := mustConstruct(t, "p cnf 1 1\n1 0\n")

	if got := r.Value(1); got != True {
		t.Errorf("Value(1) = %s, want true", got)
	}
	if lvl := r.vars[1].level; lvl != 1 {
		t.Errorf("level of x1 = %d, want 1", lvl)
	}
	if !r.AtStartLevel() {
		t.Errorf("AtStartLevel() = false, want true")
	}
	if r.ConflictExists() {
		t.Errorf("ConflictExists() = true, want false")
	}
}

// Scenario 2: { (x1), (¬x1) }. Directly contradictory units.
func TestConstruct_contradictoryUnits(t *testing.T) {
	path := filepath.Join(t.TempDir(), "instance.cnf")
	if err := os.WriteFile(path, []byte("p cnf 1 2\n1 0\n-1 0\n"), 0o644); err != nil {
		t.Fatalf("WriteFile(): %s", err)
	}

	r, err := Construct(path)
	if err != nil {
		t.Fatalf("Construct(): want no error, got %s", err)
	}
	if !r.ConflictExists() || !r.AtStartLevel() {
		t.Errorf("want conflict at start level, got ConflictExists=%v AtStartLevel=%v",
			r.ConflictExists(), r.AtStartLevel())
	}
}

// Scenario 3: { (x1∨x2), (¬x1∨x2), (¬x2) }. Chained start-level conflict.
func TestConstruct_chainedStartLevelConflict(t *testing.T) {
	r := mustConstruct(t, "p cnf 2 3\n1 2 0\n-1 2 0\n-2 0\n")

	if !r.ConflictExists() {
		t.Fatalf("ConflictExists() = false, want true")
	}
	if !r.AtStartLevel() {
		t.Errorf("AtStartLevel() = false, want true")
	}
	if lvl := r.AssertingClause().AssertionLevel(); lvl != 1 {
		t.Errorf("AssertingClause().AssertionLevel() = %d, want 1", lvl)
	}
}

// Scenario 4: no start-level units; deciding x1 conflicts and learns (¬x1).
func TestDecideLiteral_conflictLearnsUnit(t *testing.T) {
	r := mustConstruct(t, "p cnf 2 4\n1 2 0\n-1 2 0\n1 -2 0\n-1 -2 0\n")

	conflict := r.DecideLiteral(PosLiteral(1))
	if conflict == nil {
		t.Fatalf("DecideLiteral(x1) = nil, want an asserting clause")
	}
	if diff := cmp.Diff([]Literal{NegLiteral(1)}, conflict.Literals()); diff != "" {
		t.Errorf("learned clause mismatch (-want +got):\n%s", diff)
	}
	if lvl := conflict.AssertionLevel(); lvl != 1 {
		t.Errorf("AssertionLevel() = %d, want 1", lvl)
	}
	if conflict.IsUnit() != true {
		t.Errorf("IsUnit() = false, want true")
	}

	// Backjump to the assertion level and assert; the formula is UNSAT
	// once clauses 1 and 3 conflict again at the start level.
	for !r.AtAssertionLevel(conflict) {
		r.UndoDecideLiteral()
	}
	chained := r.AssertClause(conflict)
	if chained == nil {
		t.Fatalf("AssertClause(): want a chained conflict, got nil")
	}
	if !r.AtStartLevel() {
		t.Errorf("AtStartLevel() = false, want true")
	}
}

// Scenario 5: { (x1∨x2) }, decide x1=false propagates x2=true; undo restores
// the pre-decide state.
func TestDecideLiteral_undoRestoresState(t *testing.T) {
	r := mustConstruct(t, "p cnf 2 1\n1 2 0\n")

	before := &Reasoner{
		vars:  append([]variable(nil), r.vars...),
		level: r.level,
		trail: append([]Literal(nil), r.trail...),
	}

	conflict := r.DecideLiteral(NegLiteral(1))
	if conflict != nil {
		t.Fatalf("DecideLiteral(¬x1) = %v, want nil", conflict)
	}
	if got := r.Value(2); got != True {
		t.Errorf("Value(x2) = %s, want true (implied by clause 1)", got)
	}
	if r.level != 2 {
		t.Errorf("level = %d, want 2", r.level)
	}

	r.UndoDecideLiteral()

	opts := cmp.Options{
		cmp.AllowUnexported(variable{}),
		cmpopts.IgnoreFields(variable{}, "occursIn"),
	}
	if diff := cmp.Diff(before.vars, r.vars, opts...); diff != "" {
		t.Errorf("vars mismatch after undo (-want +got):\n%s", diff)
	}
	if r.level != before.level {
		t.Errorf("level after undo = %d, want %d", r.level, before.level)
	}
	if len(r.trail) != len(before.trail) {
		t.Errorf("trail length after undo = %d, want %d", len(r.trail), len(before.trail))
	}
}

// Scenario 6: { (x1∨x2∨x3), (¬x1∨x2), (¬x2∨x3), (¬x3) }. Chained unit
// propagation falsifies the first clause at the start level.
func TestConstruct_chainedThroughThreeClauses(t *testing.T) {
	r := mustConstruct(t, "p cnf 3 4\n1 2 3 0\n-1 2 0\n-2 3 0\n-3 0\n")

	if !r.ConflictExists() || !r.AtStartLevel() {
		t.Fatalf("want conflict at start level, got ConflictExists=%v AtStartLevel=%v",
			r.ConflictExists(), r.AtStartLevel())
	}
}

func TestQueries(t *testing.T) {
	r := mustConstruct(t, "p cnf 3 3\n1 2 0\n-1 -2 0\n2 3 0\n")

	if got := r.VarCount(); got != 3 {
		t.Errorf("VarCount() = %d, want 3", got)
	}
	if got := r.ClauseCount(); got != 3 {
		t.Errorf("ClauseCount() = %d, want 3", got)
	}
	if got := r.LearnedCount(); got != 0 {
		t.Errorf("LearnedCount() = %d, want 0", got)
	}
	if r.Instantiated(1) {
		t.Errorf("Instantiated(1) = true, want false")
	}
	if r.Implied(PosLiteral(1)) {
		t.Errorf("Implied(x1) = true, want false")
	}
	if r.PosLiteralOf(1) != PosLiteral(1) || r.NegLiteralOf(1) != NegLiteral(1) {
		t.Errorf("PosLiteralOf/NegLiteralOf mismatch")
	}

	c := r.ClauseAt(1)
	if w1, ok := c.Watch1(); !ok || w1 != PosLiteral(1) {
		t.Errorf("Watch1() = (%v, %v), want (1, true)", w1, ok)
	}
	if w2, ok := c.Watch2(); !ok || w2 != PosLiteral(2) {
		t.Errorf("Watch2() = (%v, %v), want (2, true)", w2, ok)
	}

	// Deciding x1=true satisfies clause 1 directly, falsifies ¬x1 in clause
	// 2 (propagating x2=false), which in turn falsifies x2 in clause 3 and
	// propagates x3=true: the whole formula ends up fully assigned with no
	// conflict.
	conflict := r.DecideLiteral(PosLiteral(1))
	if conflict != nil {
		t.Fatalf("DecideLiteral(x1): want nil, got %v", conflict.Literals())
	}
	if !r.Subsumed(r.ClauseAt(1)) {
		t.Errorf("Subsumed(clause 1) = false, want true (x1 satisfies it)")
	}
	if !r.Subsumed(r.ClauseAt(2)) {
		t.Errorf("Subsumed(clause 2) = false, want true (¬x2 satisfies it)")
	}
	if !r.Subsumed(r.ClauseAt(3)) {
		t.Errorf("Subsumed(clause 3) = false, want true (x3 satisfies it)")
	}
	if !r.Instantiated(3) {
		t.Errorf("Instantiated(3) = false, want true: clause 3 forces x3 once x2 is false")
	}
}

// TestIrrelevant isolates the Irrelevant query from any propagation chain:
// a single clause is unsatisfied (and so irrelevant is false) until its
// variable is decided to satisfy it directly.
func TestIrrelevant(t *testing.T) {
	r := mustConstruct(t, "p cnf 2 1\n1 2 0\n")

	if r.Irrelevant(1) {
		t.Errorf("Irrelevant(1) = true, want false: clause 1 is unsatisfied")
	}

	conflict := r.DecideLiteral(PosLiteral(1))
	if conflict != nil {
		t.Fatalf("DecideLiteral(x1): want nil, got %v", conflict.Literals())
	}
	if !r.Irrelevant(1) {
		t.Errorf("Irrelevant(1) = false, want true: clause 1 is now subsumed by x1")
	}
}

func TestSize2Clause_falsifiedWatchPropagatesOther(t *testing.T) {
	r := mustConstruct(t, "p cnf 2 1\n1 2 0\n")

	conflict := r.DecideLiteral(NegLiteral(1))
	if conflict != nil {
		t.Fatalf("DecideLiteral(¬x1): want nil, got conflict")
	}
	if got := r.Value(2); got != True {
		t.Errorf("Value(x2) = %s, want true: the only watch left free must propagate", got)
	}
}
