// Package loader coordinates asynchronous content loading for grid-backed
// views. A load is represented by a Progress token that fires exactly once;
// the outcome is handed to an executor supplied by the owner, which routes
// the update back onto the owning goroutine.
//
// # Usage
//
//	l := loader.New(loader.Options{})
//	l.LoadContent(ctx, func(ctx context.Context, p *loader.Progress) {
//	    items, err := fetch(ctx)
//	    if err != nil {
//	        p.DoneWithError(err)
//	        return
//	    }
//	    p.Done(func() { store.Replace(items) })
//	})
package loader

import (
	"context"
	"io"
	"sync"

	"github.com/charmbracelet/log"
)

// Result classifies how a load finished.
type Result uint8

const (
	// ResultUpdate means content arrived and the update closure applies it.
	ResultUpdate Result = iota

	// ResultNoContent means the load succeeded but found nothing.
	ResultNoContent

	// ResultError means the load failed.
	ResultError

	// ResultIgnored means the load was superseded or cancelled; its outcome
	// must not be applied.
	ResultIgnored
)

func (r Result) String() string {
	switch r {
	case ResultUpdate:
		return "update"
	case ResultNoContent:
		return "noContent"
	case ResultError:
		return "error"
	case ResultIgnored:
		return "ignored"
	default:
		return "unknown"
	}
}

// Executor receives the single outcome of a load. update is non-nil for
// ResultUpdate and ResultNoContent and must run on the goroutine that owns
// the content.
type Executor func(result Result, err error, update func())

// Progress is a fire-once completion token. The first Done* call wins;
// later completions are silent no-ops. Cancel may be called any number of
// times from any goroutine and downgrades the eventual outcome to
// ResultIgnored.
type Progress struct {
	mu        sync.Mutex
	consumed  bool
	cancelled bool
	exec      Executor
	logger    *log.Logger
}

// NewProgress creates a token that reports its outcome to exec.
func NewProgress(exec Executor, logger *log.Logger) *Progress {
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Progress{exec: exec, logger: logger}
}

// Cancel marks the load as superseded. Any later completion fires as
// ResultIgnored and its update closure is dropped.
func (p *Progress) Cancel() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cancelled = true
}

// Done completes the load with content; update applies it.
func (p *Progress) Done(update func()) {
	p.fire(ResultUpdate, nil, update)
}

// DoneWithNoContent completes the load successfully but empty; update puts
// the owner into its no-content presentation.
func (p *Progress) DoneWithNoContent(update func()) {
	p.fire(ResultNoContent, nil, update)
}

// DoneWithError completes the load with a failure.
func (p *Progress) DoneWithError(err error) {
	p.fire(ResultError, err, nil)
}

// Ignore completes the load without any effect.
func (p *Progress) Ignore() {
	p.fire(ResultIgnored, nil, nil)
}

func (p *Progress) fire(result Result, err error, update func()) {
	p.mu.Lock()
	if p.consumed {
		p.mu.Unlock()
		p.logger.Debug("progress already completed, dropping", "result", result.String())
		return
	}
	p.consumed = true
	if p.cancelled {
		result = ResultIgnored
		err = nil
		update = nil
	}
	exec := p.exec
	p.exec = nil
	p.mu.Unlock()

	p.logger.Debug("load finished", "result", result.String())
	if exec != nil {
		exec(result, err, update)
	}
}

// Options configures a Loader.
type Options struct {
	// Logger receives debug traces of load lifecycle events.
	// Defaults to a discarding logger.
	Logger *log.Logger
}

func (o *Options) setDefaults() {
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// Loader serializes content loads against a state machine. Starting a new
// load cancels the one in flight; only the newest load's outcome is applied.
type Loader struct {
	logger *log.Logger

	mu      sync.Mutex
	machine *StateMachine
	current *Progress
}

// New creates an idle loader.
func New(opts Options) *Loader {
	opts.setDefaults()
	return &Loader{
		logger:  opts.Logger,
		machine: NewStateMachine(opts.Logger),
	}
}

// State returns the current content state.
func (l *Loader) State() State {
	return l.machine.State()
}

// LoadContent starts a load. The load function runs on its own goroutine and
// must complete the given Progress exactly once. apply, when non-nil, is
// invoked with each outcome's update closure; it is the owner's chance to
// route the closure onto its goroutine before running it.
func (l *Loader) LoadContent(ctx context.Context, apply func(update func()), load func(context.Context, *Progress)) error {
	l.mu.Lock()
	from := l.machine.State()
	to := StateLoading
	if from == StateLoaded || from == StateNoContent || from == StateError {
		to = StateRefreshing
	}
	if err := l.machine.Transition(to); err != nil {
		l.mu.Unlock()
		return err
	}

	// A newer load supersedes the one in flight.
	if l.current != nil {
		l.current.Cancel()
	}

	var p *Progress
	p = NewProgress(func(result Result, err error, update func()) {
		l.finish(p, result, err, update, apply)
	}, l.logger)
	l.current = p
	l.mu.Unlock()

	l.logger.Debug("load started", "from", string(from), "to", string(to))
	go func() {
		if ctx.Err() != nil {
			p.Cancel()
			p.Ignore()
			return
		}
		load(ctx, p)
	}()
	return nil
}

func (l *Loader) finish(p *Progress, result Result, err error, update func(), apply func(update func())) {
	l.mu.Lock()
	switch result {
	case ResultUpdate:
		_ = l.machine.Transition(StateLoaded)
	case ResultNoContent:
		_ = l.machine.Transition(StateNoContent)
	case ResultError:
		_ = l.machine.Transition(StateError)
	case ResultIgnored:
		// Superseded: the newer load owns the state now.
	}
	if l.current == p {
		l.current = nil
	}
	l.mu.Unlock()

	if err != nil {
		l.logger.Warn("load failed", "err", err)
	}
	if result == ResultIgnored || update == nil {
		return
	}
	if apply != nil {
		apply(update)
		return
	}
	update()
}
