// Package circuitbreaker guards calls to external collaborators (the Redis
// broker, the calendar API) so a dead dependency fails fast instead of tying
// up request handlers and workers.
package circuitbreaker

import (
	"errors"
	"fmt"
	"sync"
	"time"
)

// ErrOpen is returned without invoking the call while the breaker is open.
var ErrOpen = errors.New("circuit breaker is open")

type State int

const (
	StateClosed State = iota
	StateOpen
	StateHalfOpen
)

func (s State) String() string {
	switch s {
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half-open"
	default:
		return "closed"
	}
}

type Settings struct {
	Name             string
	FailureThreshold int
	CoolDown         time.Duration
}

// Breaker trips open after FailureThreshold consecutive failures and lets a
// single probe call through once CoolDown has elapsed.
type Breaker struct {
	name      string
	threshold int
	coolDown  time.Duration

	mu       sync.Mutex
	state    State
	failures int
	openedAt time.Time
}

func New(settings Settings) *Breaker {
	if settings.FailureThreshold <= 0 {
		settings.FailureThreshold = 5
	}
	if settings.CoolDown <= 0 {
		settings.CoolDown = 30 * time.Second
	}
	return &Breaker{
		name:      settings.Name,
		threshold: settings.FailureThreshold,
		coolDown:  settings.CoolDown,
		state:     StateClosed,
	}
}

func (b *Breaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// Do runs fn unless the breaker is open. The fn error is passed through
// unchanged so callers keep their own error handling.
func (b *Breaker) Do(fn func() error) error {
	b.mu.Lock()
	if b.state == StateOpen {
		if time.Since(b.openedAt) < b.coolDown {
			b.mu.Unlock()
			return fmt.Errorf("%s: %w", b.name, ErrOpen)
		}
		b.state = StateHalfOpen
	}
	b.mu.Unlock()

	err := fn()

	b.mu.Lock()
	defer b.mu.Unlock()

	if err != nil {
		b.failures++
		if b.state == StateHalfOpen || b.failures >= b.threshold {
			b.state = StateOpen
			b.openedAt = time.Now()
		}
		return err
	}

	b.state = StateClosed
	b.failures = 0
	return nil
}
