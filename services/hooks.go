package services

import (
	"sort"
	"sync"
	"time"
)

// TransitionEvent describes one committed submission status change.
type TransitionEvent struct {
	SubmissionID int
	OldStatus    string
	NewStatus    string
	ActorID      int
	OccurredAt   time.Time
}

// TransitionObserver is the extension point fired after a lifecycle transition
// commits. Observers run synchronously in ascending priority order and must
// not assume they share the transition's transaction.
type TransitionObserver interface {
	SubmissionTransition(event TransitionEvent)
}

// TransitionObserverFunc adapts a function to the TransitionObserver interface.
type TransitionObserverFunc func(event TransitionEvent)

func (f TransitionObserverFunc) SubmissionTransition(event TransitionEvent) {
	f(event)
}

type transitionRegistration struct {
	observer TransitionObserver
	priority int
	order    int
}

// HookRegistry holds typed extension-point registrations resolved at startup.
// It replaces string-keyed callback lists: each extension point is a method
// with a concrete observer interface.
type HookRegistry struct {
	mu          sync.RWMutex
	transitions []transitionRegistration
}

func NewHookRegistry() *HookRegistry {
	return &HookRegistry{}
}

// OnTransition registers an observer for submission transitions. Lower
// priority values run first; equal priorities keep registration order.
func (r *HookRegistry) OnTransition(observer TransitionObserver, priority int) {
	if r == nil || observer == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.transitions = append(r.transitions, transitionRegistration{
		observer: observer,
		priority: priority,
		order:    len(r.transitions),
	})
	sort.SliceStable(r.transitions, func(i, j int) bool {
		if r.transitions[i].priority != r.transitions[j].priority {
			return r.transitions[i].priority < r.transitions[j].priority
		}
		return r.transitions[i].order < r.transitions[j].order
	})
}

// EmitTransition fires every registered transition observer. A nil registry
// is a no-op so services can run without hooks wired.
func (r *HookRegistry) EmitTransition(event TransitionEvent) {
	if r == nil {
		return
	}
	r.mu.RLock()
	registrations := make([]transitionRegistration, len(r.transitions))
	copy(registrations, r.transitions)
	r.mu.RUnlock()

	for _, reg := range registrations {
		reg.observer.SubmissionTransition(event)
	}
}
