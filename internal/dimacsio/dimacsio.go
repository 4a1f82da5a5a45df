// Package dimacsio reads DIMACS CNF instances. It is a pure producer: it
// knows nothing about the reasoning kernel, only about turning a DIMACS
// file into a variable count and a list of signed-integer clauses. What the
// kernel does with that output is entirely its own concern.
package dimacsio

import (
	"compress/gzip"
	"fmt"
	"io"
	"os"

	"github.com/rhartert/dimacs"
)

// Instance is the parsed content of a DIMACS CNF file: the declared number
// of variables and the list of clauses, each a slice of signed, nonzero,
// 1-based literal tokens exactly as they appeared in the file (negative for
// negated literals), with the trailing "0" terminator already stripped.
type Instance struct {
	NumVars int
	Clauses [][]int
}

func reader(filename string, gzipped bool) (io.ReadCloser, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	rc := io.ReadCloser(file)
	if gzipped {
		rc, err = gzip.NewReader(rc)
		if err != nil {
			return nil, err
		}
	}
	return rc, nil
}

// Parse reads the DIMACS CNF instance at filename. Lines beginning with
// "c" or "%" are comments. The "p cnf N M" header line declares N variables
// and M clauses; whitespace-separated signed integers, terminated by a
// literal "0", form the clauses that follow (possibly spanning lines).
// Clauses left empty once their terminator is stripped are dropped.
func Parse(filename string, gzipped bool) (*Instance, error) {
	r, err := reader(filename, gzipped)
	if err != nil {
		return nil, fmt.Errorf("dimacsio: error reading file %q: %w", filename, err)
	}
	defer r.Close()

	b := &builder{}
	if err := dimacs.ReadBuilder(r, b); err != nil {
		return nil, fmt.Errorf("dimacsio: %w", err)
	}
	if !b.sawProblem {
		return nil, fmt.Errorf("dimacsio: %w", ErrNoProblemLine)
	}

	return &Instance{NumVars: b.numVars, Clauses: b.clauses}, nil
}

// builder implements dimacs.Builder, accumulating the instance described by
// the token stream.
type builder struct {
	sawProblem bool
	numVars    int
	clauses    [][]int
}

func (b *builder) Problem(problem string, nVars int, nClauses int) error {
	if problem != "cnf" {
		return fmt.Errorf("dimacsio: instance of type %q is not supported", problem)
	}
	b.sawProblem = true
	b.numVars = nVars
	b.clauses = make([][]int, 0, nClauses)
	return nil
}

func (b *builder) Clause(tmpClause []int) error {
	if len(tmpClause) == 0 {
		return nil // drop trailing empty clauses, per spec.md §9
	}
	clause := make([]int, len(tmpClause))
	copy(clause, tmpClause)
	b.clauses = append(b.clauses, clause)
	return nil
}

func (b *builder) Comment(_ string) error {
	return nil
}
