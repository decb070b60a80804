package tolerance

import (
	"context"
	"sync"
)

// Stack is a stack of tolerance overrides owned by a single goroutine.
//
// Stack is not safe for concurrent use. Each goroutine that wants ambient
// tolerances keeps its own Stack; the zero value is an empty stack.
type Stack struct {
	sets []Set
}

// Push makes set the current tolerances until the returned release
// function is called. Release restores the stack to the depth it had
// before Push, so it also drops overrides pushed later and never released.
// Calling release more than once has no further effect.
//
//	defer stack.Push(tight)()
func (st *Stack) Push(set Set) (release func()) {
	depth := len(st.sets)
	st.sets = append(st.sets, set)
	var once sync.Once
	return func() {
		once.Do(func() {
			if len(st.sets) > depth {
				clear(st.sets[depth:])
				st.sets = st.sets[:depth]
			}
		})
	}
}

// Current returns the top of the stack, or [Default] if the stack is empty.
func (st *Stack) Current() Set {
	if st == nil || len(st.sets) == 0 {
		return Default()
	}
	return st.sets[len(st.sets)-1]
}

// Depth returns the number of overrides on the stack.
func (st *Stack) Depth() int {
	if st == nil {
		return 0
	}
	return len(st.sets)
}

type contextKey struct{}

// NewContext returns a copy of ctx carrying set. Lookups through the
// returned context see set until a descendant context carries another one.
func NewContext(ctx context.Context, set Set) context.Context {
	return context.WithValue(ctx, contextKey{}, set)
}

// FromContext returns the Set carried by ctx, or [Default] if there is none.
func FromContext(ctx context.Context) Set {
	if ctx != nil {
		if set, ok := ctx.Value(contextKey{}).(Set); ok && !set.IsZero() {
			return set
		}
	}
	return Default()
}
