package insight

import (
	"fmt"
	"sync"
	"time"
)

type breakerState string

const (
	stateClosed   breakerState = "closed"
	stateOpen     breakerState = "open"
	stateHalfOpen breakerState = "half-open"
)

var errBreakerOpen = fmt.Errorf("insight breaker is open")

// breaker stops hammering the provider after consecutive failures. After
// the cooldown one probe request is allowed through; success closes the
// breaker again.
type breaker struct {
	maxFailures int
	cooldown    time.Duration

	mu          sync.Mutex
	failures    int
	lastFailure time.Time
	state       breakerState
}

func newBreaker(maxFailures int, cooldown time.Duration) *breaker {
	return &breaker{
		maxFailures: maxFailures,
		cooldown:    cooldown,
		state:       stateClosed,
	}
}

func (b *breaker) execute(fn func() error) error {
	b.mu.Lock()
	if b.state == stateOpen {
		if time.Since(b.lastFailure) < b.cooldown {
			b.mu.Unlock()
			return errBreakerOpen
		}
		b.state = stateHalfOpen
	}
	b.mu.Unlock()

	err := fn()

	b.mu.Lock()
	defer b.mu.Unlock()

	if err != nil {
		b.failures++
		b.lastFailure = time.Now()
		if b.failures >= b.maxFailures {
			b.state = stateOpen
		}
		return err
	}

	b.state = stateClosed
	b.failures = 0
	return nil
}
