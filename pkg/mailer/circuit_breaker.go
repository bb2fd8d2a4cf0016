package mailer

import (
	"errors"
	"fmt"
	"sync"
	"time"
)

// ErrCircuitOpen is returned without dialing while the SMTP relay is considered down
var ErrCircuitOpen = errors.New("smtp circuit breaker is open")

const (
	defaultBreakerThreshold = 3
	defaultBreakerCooldown  = time.Minute
)

// CircuitBreaker stops dialing the relay after Threshold consecutive delivery failures.
// The circuit closes again once the cooldown has elapsed since the last failure.
type CircuitBreaker struct {
	mutex     sync.Mutex
	threshold int
	cooldown  time.Duration
	now       func() time.Time

	failures    int
	lastFailure time.Time
	lastError   error
	isOpen      bool
}

func NewCircuitBreaker(threshold int, cooldown time.Duration) *CircuitBreaker {
	if threshold <= 0 {
		threshold = defaultBreakerThreshold
	}
	if cooldown <= 0 {
		cooldown = defaultBreakerCooldown
	}
	return &CircuitBreaker{
		threshold: threshold,
		cooldown:  cooldown,
		now:       time.Now,
	}
}

// IsOpen reports whether calls should be refused, resetting the circuit when the cooldown passed
func (cb *CircuitBreaker) IsOpen() bool {
	cb.mutex.Lock()
	defer cb.mutex.Unlock()

	if cb.isOpen && cb.now().Sub(cb.lastFailure) > cb.cooldown {
		cb.isOpen = false
		cb.failures = 0
		cb.lastError = nil
	}
	return cb.isOpen
}

func (cb *CircuitBreaker) RecordSuccess() {
	cb.mutex.Lock()
	defer cb.mutex.Unlock()

	cb.failures = 0
	cb.lastError = nil
	cb.isOpen = false
}

func (cb *CircuitBreaker) RecordFailure(err error) {
	cb.mutex.Lock()
	defer cb.mutex.Unlock()

	cb.failures++
	cb.lastFailure = cb.now()
	cb.lastError = err
	if cb.failures >= cb.threshold {
		cb.isOpen = true
	}
}

// Failures returns the consecutive failure count
func (cb *CircuitBreaker) Failures() int {
	cb.mutex.Lock()
	defer cb.mutex.Unlock()
	return cb.failures
}

// openError describes the refusal with the failure that tripped the circuit
func (cb *CircuitBreaker) openError() error {
	cb.mutex.Lock()
	defer cb.mutex.Unlock()
	if cb.lastError == nil {
		return ErrCircuitOpen
	}
	return fmt.Errorf("%w: last failure: %v", ErrCircuitOpen, cb.lastError)
}
