package quadtree

import "fmt"

// UsageError is the panic value raised when a call breaks the traversal
// contract, e.g. starting a mutable traversal while another is running.
// These are programmer errors; the index state is not recoverable afterwards.
type UsageError struct {
	Op    string
	State traversalState
	Const int // read-only traversals in progress
}

func (e *UsageError) Error() string {
	if e.Const > 0 && e.State == stateIdle {
		return fmt.Sprintf("quadtree: %s called during ForEachConst", e.Op)
	}
	return fmt.Sprintf("quadtree: %s called while %s", e.Op, e.State)
}

// traversalState is the reentrancy guard. The only legal transitions are
// idle -> traversingMutable (ForEachMutable entry) and back (its first pass
// finishing).
type traversalState uint8

const (
	stateIdle traversalState = iota
	stateTraversingMutable
)

func (s traversalState) String() string {
	switch s {
	case stateIdle:
		return "idle"
	case stateTraversingMutable:
		return "traversing mutably"
	}
	return fmt.Sprintf("traversalState(%d)", uint8(s))
}

// mustBeIdle panics unless no traversal of any kind is in progress.
func (t *Index) mustBeIdle(op string) {
	if t.state != stateIdle || t.constDepth > 0 {
		panic(&UsageError{Op: op, State: t.state, Const: t.constDepth})
	}
}
