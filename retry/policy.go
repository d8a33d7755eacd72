// Copyright 2026 The reprise Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package retry

import (
	"time"

	"reprise/attempt"
)

// A Policy controls if and how retries are done for a logical request.
// After every attempt, the Policy decides whether a retry should be
// done (Decide), how long to wait before retrying (Wait), and how long
// a single wait may be before the retry is abandoned instead (MaxWait).
//
// Implementations of Policy must be safe for concurrent use by
// multiple goroutines.
//
// Build a Policy from a Config with FromConfig, or compose your own
// Decider and Waiter with NewPolicy.
type Policy interface {
	Decider
	Waiter

	// MaxWait returns the ceiling on a single retry wait. When a
	// computed wait exceeds the ceiling, the attempt loop abandons the
	// retry and fails the request instead of sleeping. A zero return
	// disables the guard.
	MaxWait() time.Duration
}

// DefaultPolicy is the policy built from DefaultConfig: the standard
// rule-based decider, the standard hint-plus-backoff waiter, and a
// five second wait ceiling.
var DefaultPolicy = FromConfig(DefaultConfig())

// Never is a policy that never retries. It is useful for callers that
// want the attempt loop's terminal error synthesis without retries.
var Never Policy = NewPolicy(
	DeciderFunc(func(o *attempt.Outcome, c *attempt.Context) Verdict {
		if code := o.StatusCode(); code >= 200 && code <= 399 {
			return Succeed
		}
		return Fail
	}),
	NewFixedWaiter(0),
	0,
)

type policy struct {
	decider Decider
	waiter  Waiter
	ceiling time.Duration
}

// NewPolicy composes a Decider and a Waiter into a Policy with the
// given wait ceiling. A ceiling of zero disables the maximum-wait
// guard.
func NewPolicy(d Decider, w Waiter, ceiling time.Duration) Policy {
	if d == nil {
		panic("reprise/retry: nil decider")
	}
	if w == nil {
		panic("reprise/retry: nil waiter")
	}
	return policy{decider: d, waiter: w, ceiling: ceiling}
}

// FromConfig builds the standard Policy for cfg: the ordered rule
// decider, Retry-After hints with jittered exponential backoff, and
// cfg.MaxWait as the wait ceiling. FromConfig panics if cfg fails
// validation; use Config.Validate first when the config comes from
// outside the program.
func FromConfig(cfg Config) Policy {
	if err := cfg.Validate(); err != nil {
		panic(err)
	}
	return NewPolicy(
		NewDecider(cfg),
		NewHintWaiter(NewBackoffWaiter(DefaultBase, DefaultJitterSpan, time.Now())),
		cfg.MaxWait,
	)
}

func (p policy) Decide(o *attempt.Outcome, c *attempt.Context) Verdict {
	return p.decider.Decide(o, c)
}

func (p policy) Wait(o *attempt.Outcome, c *attempt.Context) time.Duration {
	return p.waiter.Wait(o, c)
}

func (p policy) MaxWait() time.Duration {
	return p.ceiling
}
