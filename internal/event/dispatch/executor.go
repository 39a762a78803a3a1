package dispatch

import (
	"context"
	"runtime/debug"
	"time"
)

// Func is a unit of handler work bound to a single event.
type Func func(ctx context.Context) error

// Result is the outcome of one handler run.
type Result struct {
	// Error is what the handler returned, or ctx.Err() when Skipped.
	Error error

	// Panicked is set when the handler panicked. PanicValue and PanicStack
	// describe the panic.
	Panicked   bool
	PanicValue any
	PanicStack []byte

	Duration time.Duration

	// Skipped means the context was already done and the handler never ran.
	Skipped bool
}

// Executor runs handlers, recovering panics and timing each run.
type Executor struct {
	now func() time.Time
}

// ExecutorOption configures an Executor.
type ExecutorOption func(*Executor)

// WithNow overrides the time source used for durations.
func WithNow(now func() time.Time) ExecutorOption {
	return func(e *Executor) {
		if now != nil {
			e.now = now
		}
	}
}

// NewExecutor creates an executor.
func NewExecutor(opts ...ExecutorOption) *Executor {
	e := &Executor{now: time.Now}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Execute runs fn in the calling goroutine.
func (e *Executor) Execute(ctx context.Context, fn Func) (result Result) {
	if err := ctx.Err(); err != nil {
		return Result{Error: err, Skipped: true}
	}

	start := e.now()
	defer func() {
		result.Duration = e.now().Sub(start)
		if r := recover(); r != nil {
			result.Panicked = true
			result.PanicValue = r
			result.PanicStack = debug.Stack()
		}
	}()

	result.Error = fn(ctx)
	return result
}
