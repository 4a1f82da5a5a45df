package reasoner

import "errors"

// ErrMalformedHeader wraps every input error Construct can encounter: an
// unreadable file, a non-integer token, or a missing "p cnf N M" problem
// line (spec.md §7 treats all three as one "input error" kind, fatal and
// surfaced at construction). The underlying internal/dimacsio error is
// always chained alongside it, so callers can errors.Is against either the
// specific cause or this general one.
var ErrMalformedHeader = errors.New("reasoner: malformed dimacs input")

// ErrContradiction names a formula that contradicts itself at the start
// level. Construct does not return it: an original unit clause that is
// already false when loaded, like any other start-level conflict, is
// published as the asserting clause, so ConflictExists and AtStartLevel
// both report true on the constructed reasoner.
var ErrContradiction = errors.New("reasoner: contradiction at start level")
