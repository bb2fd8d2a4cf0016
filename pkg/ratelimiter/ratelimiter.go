package ratelimiter

import (
	"sync"
	"time"
)

// Policy allows MaxAttempts per sliding Window
type Policy struct {
	MaxAttempts int
	Window      time.Duration
}

type bucketKey struct {
	namespace string
	key       string
}

// Limiter is an in-memory sliding window limiter. Each namespace has its own
// policy and keys are counted independently within a namespace.
//
//	rl := ratelimiter.New(time.Minute)
//	rl.SetPolicy("test_send", ratelimiter.Policy{MaxAttempts: 5, Window: 10 * time.Minute})
//
//	if ok, retry := rl.Allow("test_send", sessionID); !ok {
//	    // refuse, retry after retry
//	}
type Limiter struct {
	mu       sync.Mutex
	attempts map[bucketKey][]time.Time
	policies map[string]Policy
	now      func() time.Time

	stopOnce sync.Once
	stop     chan struct{}
}

// Option configures a Limiter
type Option func(*Limiter)

// WithClock replaces time.Now
func WithClock(now func() time.Time) Option {
	return func(l *Limiter) {
		l.now = now
	}
}

// New creates a limiter that drops stale buckets every sweepInterval.
// A zero interval disables the background sweep.
func New(sweepInterval time.Duration, opts ...Option) *Limiter {
	l := &Limiter{
		attempts: make(map[bucketKey][]time.Time),
		policies: make(map[string]Policy),
		now:      time.Now,
		stop:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(l)
	}
	if sweepInterval > 0 {
		go l.sweepLoop(sweepInterval)
	}
	return l
}

// SetPolicy configures a namespace, replacing any previous policy
func (l *Limiter) SetPolicy(namespace string, policy Policy) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.policies[namespace] = policy
}

// Allow records an attempt for key and reports whether it fits the policy.
// When it does not, the returned duration is the time until the oldest
// attempt leaves the window. Namespaces without a policy are refused.
func (l *Limiter) Allow(namespace, key string) (bool, time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()

	policy, ok := l.policies[namespace]
	if !ok || policy.MaxAttempts <= 0 {
		return false, 0
	}

	now := l.now()
	k := bucketKey{namespace: namespace, key: key}
	valid := recent(l.attempts[k], now.Add(-policy.Window))

	if len(valid) >= policy.MaxAttempts {
		l.attempts[k] = valid
		return false, valid[0].Add(policy.Window).Sub(now)
	}

	l.attempts[k] = append(valid, now)
	return true, 0
}

// Remaining returns how many attempts key has left in the current window
func (l *Limiter) Remaining(namespace, key string) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	policy, ok := l.policies[namespace]
	if !ok {
		return 0
	}
	used := len(recent(l.attempts[bucketKey{namespace, key}], l.now().Add(-policy.Window)))
	if used >= policy.MaxAttempts {
		return 0
	}
	return policy.MaxAttempts - used
}

// Reset forgets the attempts of key
func (l *Limiter) Reset(namespace, key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.attempts, bucketKey{namespace, key})
}

// Sweep drops buckets without attempts inside their window
func (l *Limiter) Sweep() {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	for k, times := range l.attempts {
		policy, ok := l.policies[k.namespace]
		if !ok || len(recent(times, now.Add(-policy.Window))) == 0 {
			delete(l.attempts, k)
		}
	}
}

// Len returns the number of tracked buckets
func (l *Limiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.attempts)
}

// Stop ends the background sweep, it is safe to call more than once
func (l *Limiter) Stop() {
	l.stopOnce.Do(func() { close(l.stop) })
}

func (l *Limiter) sweepLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			l.Sweep()
		case <-l.stop:
			return
		}
	}
}

// recent returns the attempts after cutoff. Attempts are kept in order.
func recent(times []time.Time, cutoff time.Time) []time.Time {
	i := 0
	for i < len(times) && !times[i].After(cutoff) {
		i++
	}
	return times[i:]
}
