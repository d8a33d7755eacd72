// Copyright 2026 The reprise Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package retry

import (
	"math/rand"
	"net/http"
	"strconv"
	"sync"
	"time"

	"reprise/attempt"
)

// A Waiter computes how long to wait before retrying a failed attempt.
// It is consulted only after the Decider returns a Retry verdict.
//
// Implementations of Waiter must be safe for concurrent use by
// multiple goroutines.
//
// The standard waiter is built with NewHintWaiter wrapped around
// NewBackoffWaiter: rate limited responses follow the server's
// Retry-After hint, everything else follows jittered exponential
// backoff. DefaultWaiter is a ready-made instance.
type Waiter interface {
	Wait(o *attempt.Outcome, c *attempt.Context) time.Duration
}

// DefaultBase is the backoff unit of the default waiter: attempt n
// backs off 2^(n-1) times this duration, plus jitter.
const DefaultBase = time.Second

// DefaultJitterSpan is the width of the uniformly random jitter the
// default waiter adds to each backoff.
const DefaultJitterSpan = time.Second

// DefaultWaiter is the standard retry wait calculator: Retry-After
// hints on rate limited responses, jittered exponential backoff with a
// one second base otherwise.
var DefaultWaiter = NewHintWaiter(NewBackoffWaiter(DefaultBase, DefaultJitterSpan, time.Now()))

// NewFixedWaiter constructs a Waiter that always returns the given
// duration. Use it to obtain a constant retry backoff.
func NewFixedWaiter(d time.Duration) Waiter {
	return fixedWaiter(d)
}

type fixedWaiter time.Duration

func (w fixedWaiter) Wait(_ *attempt.Outcome, _ *attempt.Context) time.Duration {
	return time.Duration(w)
}

// NewBackoffWaiter constructs a Waiter implementing exponential
// backoff with additive jitter. For the attempt numbered n (1-based),
// the wait is:
//
//	2^(n-1) * base + uniform[0, jitterSpan)
//
// The randomized jitter desynchronizes concurrent callers retrying
// against the same server, avoiding synchronized retry storms. Base
// must be positive. A jitterSpan of zero disables jitter.
//
// Parameter jitter seeds the jitter calculation. Pass nil to disable
// jitter regardless of jitterSpan. Otherwise pass a random number
// generator seed (as a time.Time, int, or int64), a rand.Source, or a
// *rand.Rand.
func NewBackoffWaiter(base, jitterSpan time.Duration, jitter interface{}) Waiter {
	if base < 1 {
		panic("reprise/retry: base must be positive")
	}
	if jitterSpan < 0 {
		panic("reprise/retry: jitterSpan must not be negative")
	}
	return &backoffWaiter{
		base:       base,
		jitterSpan: jitterSpan,
		rand:       jitterToRand(jitter),
	}
}

type backoffWaiter struct {
	base       time.Duration
	jitterSpan time.Duration
	rand       *rand.Rand
	lock       sync.Mutex
}

func (w *backoffWaiter) Wait(_ *attempt.Outcome, c *attempt.Context) time.Duration {
	n := c.Attempt
	if n < 1 {
		n = 1
	}

	exp := int64(1) << (n - 1)
	if exp < 1 {
		exp = 1<<63 - 1
	}

	wait := int64(w.base) * exp
	if wait/exp != int64(w.base) {
		wait = 1<<63 - 1
	}

	if w.rand != nil && w.jitterSpan > 0 {
		w.lock.Lock()
		j := w.rand.Int63n(int64(w.jitterSpan))
		w.lock.Unlock()
		if wait+j > wait {
			wait += j
		}
	}

	return time.Duration(wait)
}

// NewHintWaiter constructs the standard Waiter for rate limit aware
// waiting. For any outcome other than a 429 response it defers to the
// backoff waiter. For a 429 response it consults the Retry-After
// header (header lookup is case-insensitive):
//
//   - absent: the backoff waiter's wait;
//   - an all-digit value: that many seconds;
//   - an HTTP-date: the interval from now until that date, which may
//     be non-positive and is then treated as an immediate retry;
//   - anything unparseable: the backoff waiter's wait.
//
// Any stale recorded wait is cleared from the context at the start of
// each call, and the wait computed for a 429 is recorded on the
// context so a later terminal error can report it.
func NewHintWaiter(backoff Waiter) Waiter {
	if backoff == nil {
		panic("reprise/retry: nil backoff waiter")
	}
	return &hintWaiter{backoff: backoff, now: time.Now}
}

type hintWaiter struct {
	backoff Waiter
	now     func() time.Time
}

func (w *hintWaiter) Wait(o *attempt.Outcome, c *attempt.Context) time.Duration {
	c.ClearLastWait()
	if o == nil || o.StatusCode() != http.StatusTooManyRequests {
		return w.backoff.Wait(o, c)
	}

	wait := w.hint(o, c)
	c.SetLastWait(wait)
	return wait
}

func (w *hintWaiter) hint(o *attempt.Outcome, c *attempt.Context) time.Duration {
	h := o.Header().Get("Retry-After")
	if h == "" {
		return w.backoff.Wait(o, c)
	}
	if allDigits(h) {
		secs, err := strconv.ParseInt(h, 10, 64)
		if err == nil {
			return time.Duration(secs) * time.Second
		}
		return w.backoff.Wait(o, c)
	}
	if at, err := http.ParseTime(h); err == nil {
		return at.Sub(w.now())
	}
	return w.backoff.Wait(o, c)
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func jitterToRand(jitter interface{}) *rand.Rand {
	var s rand.Source
	switch j := jitter.(type) {
	case nil:
		return nil
	case time.Time:
		s = rand.NewSource(j.UnixNano())
	case int:
		s = rand.NewSource(int64(j))
	case int64:
		s = rand.NewSource(j)
	case *rand.Rand:
		if j == nil {
			panic("reprise/retry: jitter may not be a typed nil")
		}
		return j
	case rand.Source:
		s = j
	default:
		panic("reprise/retry: invalid jitter type")
	}
	return rand.New(s)
}
