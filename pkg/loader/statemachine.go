package loader

import (
	"io"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/abhi266raj/gridlayout/pkg/errors"
)

// State is a content-loading state.
type State string

const (
	// StateInitial is the state before any load has started.
	StateInitial State = "initial"

	// StateLoading is the first load.
	StateLoading State = "loading"

	// StateRefreshing is a reload after content was already presented.
	StateRefreshing State = "refreshing"

	// StateLoaded means content is presented.
	StateLoaded State = "loaded"

	// StateNoContent means the load succeeded but found nothing.
	StateNoContent State = "noContent"

	// StateError means the last load failed.
	StateError State = "error"
)

// validTransitions enumerates the legal state changes.
var validTransitions = map[State][]State{
	StateInitial:    {StateLoading},
	StateLoading:    {StateLoading, StateLoaded, StateNoContent, StateError},
	StateRefreshing: {StateRefreshing, StateLoaded, StateNoContent, StateError},
	StateLoaded:     {StateRefreshing},
	StateNoContent:  {StateRefreshing, StateLoading},
	StateError:      {StateRefreshing, StateLoading},
}

// StateMachine tracks content-loading state with validated transitions.
// It is safe for concurrent use.
type StateMachine struct {
	logger *log.Logger

	mu      sync.Mutex
	current State
}

// NewStateMachine creates a machine in StateInitial.
func NewStateMachine(logger *log.Logger) *StateMachine {
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &StateMachine{logger: logger, current: StateInitial}
}

// State returns the current state.
func (m *StateMachine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

// Transition moves to the target state, failing with ErrCodeInvalidState
// when the step is not legal from the current state.
func (m *StateMachine) Transition(to State) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, allowed := range validTransitions[m.current] {
		if allowed == to {
			m.logger.Debug("state transition", "from", string(m.current), "to", string(to))
			m.current = to
			return nil
		}
	}
	return errors.New(errors.ErrCodeInvalidState, "cannot transition from %s to %s", m.current, to)
}
