// Copyright 2026 The reprise Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package retry

import (
	"strings"

	"reprise/attempt"
	"reprise/fault"
)

// A Decider produces the retry verdict for a completed attempt.
//
// Implementations of Decider must be safe for concurrent use by
// multiple goroutines. The attempt Context is owned by a single
// logical request, so concurrent calls always receive distinct
// contexts.
//
// Use NewDecider to build the standard rule-based decider from a
// Config, or DeciderFunc to convert an ordinary function into a
// Decider.
type Decider interface {
	Decide(o *attempt.Outcome, c *attempt.Context) Verdict
}

// The DeciderFunc type is an adapter to allow the use of ordinary
// functions as retry deciders.
//
// Every DeciderFunc must be safe for concurrent use by multiple
// goroutines.
type DeciderFunc func(o *attempt.Outcome, c *attempt.Context) Verdict

// Decide returns the verdict for the attempt by calling f.
func (f DeciderFunc) Decide(o *attempt.Outcome, c *attempt.Context) Verdict {
	return f(o, c)
}

// DefaultDecider is the rule-based decider built from DefaultConfig.
var DefaultDecider = NewDecider(DefaultConfig())

// A rule examines an attempt outcome and either produces a verdict or
// defers to the next rule.
type rule func(o *attempt.Outcome, c *attempt.Context, cfg Config) (Verdict, bool)

// rules is the decision order. The first rule with an opinion wins.
var rules = []rule{
	transportRule,
	contractRule,
	successRule,
	unsafeServerRule,
	serverRule,
	rateLimitRule,
	clientRule,
	budgetRule,
}

// NewDecider builds the standard decider from cfg. The decider applies
// an ordered rule list; the first matching rule produces the verdict:
//
//  1. A proxy/tunnel establishment failure fails immediately (when
//     cfg.ProxyFailFast is set), regardless of the attempt budget.
//  2. Any other transport-level error retries until the context's
//     attempt budget is spent.
//  3. A response violating the caller's JSON expectation fails: a
//     content contract violation cannot be fixed by retrying. This is
//     checked before the success range, so even a 200 fails when a
//     structured body was required and not received.
//  4. A status code in [200, 399] succeeds.
//  5. A 500 on a non-GET request fails: the request may have partially
//     applied, so retrying a non-idempotent method is unsafe.
//  6. Any 5xx retries while the attempt count is below
//     cfg.ServerErrorCap, then fails.
//  7. A 429 retries while the attempt count is below cfg.RateLimitCap,
//     then fails.
//  8. Any other 4xx fails: the request is malformed and will not
//     succeed on retry.
//  9. A spent attempt budget fails; anything remaining retries.
//
// The global budget is read from the attempt Context (MaxAttempts),
// which the attempt loop stamps into each logical request; the
// narrower per-class caps come from cfg.
func NewDecider(cfg Config) DeciderFunc {
	return func(o *attempt.Outcome, c *attempt.Context) Verdict {
		for _, r := range rules {
			if v, ok := r(o, c, cfg); ok {
				return v
			}
		}
		return Retry
	}
}

func transportRule(o *attempt.Outcome, c *attempt.Context, cfg Config) (Verdict, bool) {
	if o.Err == nil {
		return 0, false
	}
	if cfg.ProxyFailFast && fault.IsProxyError(o.Err) {
		return Fail, true
	}
	if c.Exhausted() {
		return Fail, true
	}
	return Retry, true
}

func contractRule(o *attempt.Outcome, c *attempt.Context, _ Config) (Verdict, bool) {
	if c.ExpectJSON && !fault.StructuredJSON(o.Body()) {
		return Fail, true
	}
	return 0, false
}

func successRule(o *attempt.Outcome, _ *attempt.Context, _ Config) (Verdict, bool) {
	if code := o.StatusCode(); code >= 200 && code <= 399 {
		return Succeed, true
	}
	return 0, false
}

func unsafeServerRule(o *attempt.Outcome, c *attempt.Context, _ Config) (Verdict, bool) {
	if o.StatusCode() == 500 && !strings.EqualFold(c.Method, "GET") {
		return Fail, true
	}
	return 0, false
}

func serverRule(o *attempt.Outcome, c *attempt.Context, cfg Config) (Verdict, bool) {
	if code := o.StatusCode(); code >= 500 && code <= 599 {
		if c.Attempt < cfg.ServerErrorCap {
			return Retry, true
		}
		return Fail, true
	}
	return 0, false
}

func rateLimitRule(o *attempt.Outcome, c *attempt.Context, cfg Config) (Verdict, bool) {
	if o.StatusCode() == 429 {
		if c.Attempt < cfg.RateLimitCap {
			return Retry, true
		}
		return Fail, true
	}
	return 0, false
}

func clientRule(o *attempt.Outcome, _ *attempt.Context, _ Config) (Verdict, bool) {
	if code := o.StatusCode(); code >= 400 && code <= 499 {
		return Fail, true
	}
	return 0, false
}

func budgetRule(_ *attempt.Outcome, c *attempt.Context, _ Config) (Verdict, bool) {
	if c.Exhausted() {
		return Fail, true
	}
	return 0, false
}
