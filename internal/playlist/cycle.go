package playlist

import (
	"errors"
	"fmt"
	"sync"
)

// Phase of a single render cycle
type Phase int

const (
	Idle Phase = iota
	Fetching
	Done
	Failed
)

func (p Phase) String() string {
	switch p {
	case Fetching:
		return "loading"
	case Done:
		return "loaded"
	case Failed:
		return "load error"
	default:
		return "idle"
	}
}

var (
	ErrInFlight          = errors.New("a load is already in flight")
	ErrInvalidTransition = errors.New("invalid render cycle transition")
)

// Cycle tracks one render of the playlist region.
// A failed load only starts again on an explicit Retry.
type Cycle struct {
	mu    sync.Mutex
	phase Phase
}

func NewCycle() *Cycle {
	return &Cycle{phase: Idle}
}

func (c *Cycle) Phase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

// Fetch starts a load, Loaded goes back through Idle first
func (c *Cycle) Fetch() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch c.phase {
	case Done:
		c.phase = Idle
		fallthrough
	case Idle:
		c.phase = Fetching
		return nil
	case Fetching:
		return ErrInFlight
	default:
		return fmt.Errorf("%w: fetch from %s", ErrInvalidTransition, c.phase)
	}
}

// Retry starts a load after a failed one
func (c *Cycle) Retry() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.phase != Failed {
		return fmt.Errorf("%w: retry from %s", ErrInvalidTransition, c.phase)
	}

	c.phase = Fetching
	return nil
}

// Complete ends the load in flight with its outcome
func (c *Cycle) Complete(err error) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.phase != Fetching {
		return fmt.Errorf("%w: complete from %s", ErrInvalidTransition, c.phase)
	}

	c.phase = Done
	if err != nil {
		c.phase = Failed
	}

	return nil
}
