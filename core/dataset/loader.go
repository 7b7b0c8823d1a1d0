package dataset

import (
	"context"
	"sync"

	perrors "policy-lookup/internal/errors"
)

// LoadState is the phase of a one-time dataset load
type LoadState int

const (
	// StatePending means the load has not reached a terminal state
	StatePending LoadState = iota

	// StateReady means the dataset loaded and validated
	StateReady

	// StateFailed means the fetch or validation failed
	StateFailed
)

func (s LoadState) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateReady:
		return "ready"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// ErrNotReady is returned when the dataset is requested before Ready
var ErrNotReady = perrors.New(perrors.TypeNotReady, "dataset is not ready")

// Loader performs a single fetch-then-validate and settles into Ready or
// Failed exactly once. There is no retry and no cancellation of a running
// load beyond the context given to Start.
type Loader struct {
	source Source

	once sync.Once
	done chan struct{}

	mu      sync.RWMutex
	state   LoadState
	dataset *Dataset
	err     error
}

// NewLoader creates a loader for a source
func NewLoader(source Source) *Loader {
	return &Loader{
		source: source,
		done:   make(chan struct{}),
	}
}

// Start begins the load in the background. Calls after the first are no-ops.
func (l *Loader) Start(ctx context.Context) {
	l.once.Do(func() {
		go l.run(ctx)
	})
}

func (l *Loader) run(ctx context.Context) {
	ds, err := l.load(ctx)

	l.mu.Lock()
	if err != nil {
		l.state = StateFailed
		l.err = err
	} else {
		l.state = StateReady
		l.dataset = ds
	}
	l.mu.Unlock()

	close(l.done)
}

func (l *Loader) load(ctx context.Context) (*Dataset, error) {
	raw, err := l.source.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	return Load(raw)
}

// Wait blocks until the load settles or ctx is done, starting it if needed
func (l *Loader) Wait(ctx context.Context) (*Dataset, error) {
	l.Start(ctx)
	select {
	case <-l.done:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	return l.Dataset()
}

// Done is closed once the load settles
func (l *Loader) Done() <-chan struct{} {
	return l.done
}

// State returns the current phase
func (l *Loader) State() LoadState {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.state
}

// Dataset returns the loaded dataset, the load error, or ErrNotReady
func (l *Loader) Dataset() (*Dataset, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	switch l.state {
	case StateReady:
		return l.dataset, nil
	case StateFailed:
		return nil, l.err
	default:
		return nil, ErrNotReady
	}
}
