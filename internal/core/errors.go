package core

import "errors"

// ErrCyclicPrecedence indicates the successor relation contains a cycle.
// Surfaced by graph construction; no schedule exists for such an instance.
var ErrCyclicPrecedence = errors.New("precedence relation contains a cycle")

// ErrInfeasible indicates no feasible schedule exists, e.g. an activity
// whose own demand exceeds a resource capacity.
var ErrInfeasible = errors.New("instance admits no feasible schedule")

// ErrCapacityExceeded indicates a resource capacity violation. Inside the
// solver this is an invariant failure (a placement was made without a
// feasibility check), not a user-facing condition.
var ErrCapacityExceeded = errors.New("resource capacity exceeded")
