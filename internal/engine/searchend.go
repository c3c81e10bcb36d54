package engine

import (
	"time"
)

// Context carries the information a SearchEnd predicate needs to decide
// whether to stop, per §6: when the search started, the depth of the
// iteration in progress, and a monotonically increasing cursor (node count)
// the predicate can sample cheaply without a time.Now() call on every node.
type Context struct {
	StartTime time.Time
	Depth     int
	Cursor    uint64
}

// SearchEnd decides whether the search should stop at the current node.
// Implementations are consulted at the top of every Negascout call.
type SearchEnd interface {
	ShouldEnd(ctx Context) bool
}

// DurationLimit ends the search once more than the given duration has
// elapsed since ctx.StartTime.
type DurationLimit time.Duration

func (d DurationLimit) ShouldEnd(ctx Context) bool {
	return time.Since(ctx.StartTime) > time.Duration(d)
}

// DepthLimit ends the search once the iteration depth exceeds Max.
type DepthLimit struct {
	Max int
}

func (d DepthLimit) ShouldEnd(ctx Context) bool {
	return ctx.Depth > d.Max
}

// NodeLimit ends the search once the node cursor exceeds Max, useful for
// deterministic tests that don't want to depend on wall-clock time.
type NodeLimit struct {
	Max uint64
}

func (n NodeLimit) ShouldEnd(ctx Context) bool {
	return ctx.Cursor > n.Max
}

// All is the conjunction of several predicates: stop as soon as any one of
// them says to.
type All []SearchEnd

func (a All) ShouldEnd(ctx Context) bool {
	for _, p := range a {
		if p.ShouldEnd(ctx) {
			return true
		}
	}
	return false
}

// SignalEnd polls an external stop flag that the caller sets to cancel a
// search. The flag is a plain bool read without synchronization, so setting
// it from another goroutine while the search runs is a data race.
type SignalEnd struct {
	Stop *bool
}

func (s SignalEnd) ShouldEnd(Context) bool {
	return s.Stop != nil && *s.Stop
}
