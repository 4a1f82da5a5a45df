package dimacsio

import "errors"

// ErrNoProblemLine is returned by Parse when the input never produced a
// "p cnf N M" problem line.
var ErrNoProblemLine = errors.New("missing \"p cnf\" problem line")
