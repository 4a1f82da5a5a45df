package host

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rhartert/yasskernel/internal/reasoner"
)

func mustConstruct(t *testing.T, cnf string) *reasoner.Reasoner {
	t.Helper()
	path := filepath.Join(t.TempDir(), "instance.cnf")
	if err := os.WriteFile(path, []byte(cnf), 0o644); err != nil {
		t.Fatalf("WriteFile(): %s", err)
	}
	r, err := reasoner.Construct(path)
	if err != nil {
		t.Fatalf("Construct(): want no error, got %s", err)
	}
	return r
}

func TestSolve_satisfiable(t *testing.T) {
	r := mustConstruct(t, "p cnf 3 2\n1 2 0\n-2 3 0\n")

	status := NewDriver(r).Solve()
	if status != StatusSat {
		t.Fatalf("Solve() = %s, want SAT", status)
	}
	for v := reasoner.VarIndex(1); v <= 3; v++ {
		if !r.Instantiated(v) {
			t.Errorf("variable %d not instantiated in a reported model", v)
		}
	}
	for c := reasoner.ClauseIndex(1); c <= reasoner.ClauseIndex(r.ClauseCount()); c++ {
		if !r.Subsumed(r.ClauseAt(c)) {
			t.Errorf("clause %d not subsumed by the reported model", c)
		}
	}
}

// Scenario 2: directly contradictory units, unsatisfiable before any
// decision is made.
func TestSolve_unsatAtConstruction(t *testing.T) {
	r := mustConstruct(t, "p cnf 1 2\n1 0\n-1 0\n")

	d := NewDriver(r)
	if status := d.Solve(); status != StatusUnsat {
		t.Fatalf("Solve() = %s, want UNSAT", status)
	}
	if d.Conflicts() != 0 {
		t.Errorf("Conflicts() = %d, want 0: the conflict was found by Construct, not a decision", d.Conflicts())
	}
}

// Scenario 6: chained start-level unit propagation falsifies a clause
// before any decision, same shape as TestSolve_unsatAtConstruction but
// reached through propagation rather than a direct unit clash.
func TestSolve_unsatAfterStartLevelPropagation(t *testing.T) {
	r := mustConstruct(t, "p cnf 3 4\n1 2 3 0\n-1 2 0\n-2 3 0\n-3 0\n")

	if status := NewDriver(r).Solve(); status != StatusUnsat {
		t.Fatalf("Solve() = %s, want UNSAT", status)
	}
}

// All four 2-clauses over x1,x2: no assignment of x1,x2 satisfies every
// clause, so the search must learn its way back to the start level.
func TestSolve_unsatAfterSearch(t *testing.T) {
	r := mustConstruct(t, "p cnf 2 4\n1 2 0\n-1 2 0\n1 -2 0\n-1 -2 0\n")

	d := NewDriver(r)
	status := d.Solve()
	if status != StatusUnsat {
		t.Fatalf("Solve() = %s, want UNSAT", status)
	}
	if d.Conflicts() == 0 {
		t.Errorf("Conflicts() = 0, want at least one conflict from the search")
	}
}

func TestSolve_singleUnitSatisfiesDirectly(t *testing.T) {
	r := mustConstruct(t, "p cnf 1 1\n1 0\n")

	d := NewDriver(r)
	if status := d.Solve(); status != StatusSat {
		t.Fatalf("Solve() = %s, want SAT", status)
	}
	if d.Conflicts() != 0 {
		t.Errorf("Conflicts() = %d, want 0", d.Conflicts())
	}
}

func TestStatus_String(t *testing.T) {
	cases := map[Status]string{
		StatusUnknown: "UNKNOWN",
		StatusSat:     "SAT",
		StatusUnsat:   "UNSAT",
	}
	for status, want := range cases {
		if got := status.String(); got != want {
			t.Errorf("Status(%d).String() = %q, want %q", status, got, want)
		}
	}
}
