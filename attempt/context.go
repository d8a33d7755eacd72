// Copyright 2026 The reprise Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package attempt

import "time"

// A Context carries the state of one logical request across all of its
// attempts. It is created when the logical request starts and mutated
// only by the attempt loop driving it (the attempt counter) and by the
// retry wait calculator (the last computed wait).
//
// A Context is owned exclusively by one logical request's lifecycle.
// It is not safe for concurrent use, and does not need to be: attempts
// within one logical request are strictly sequential. Independent
// requests each get their own Context.
type Context struct {
	// Attempt is the one-based number of the current attempt. The
	// attempt loop increments it before each try, so it is 1 during the
	// initial attempt, 2 during the first retry, and so on.
	Attempt int

	// MaxAttempts is the global attempt budget for the logical request.
	// It is set once at construction and never changes.
	MaxAttempts int

	// Method is the HTTP method of the logical request (GET, POST,
	// etc.). It never changes between attempts.
	Method string

	// ExpectJSON indicates the caller requires the response body to be
	// a structured JSON value (object or array). When set, a response
	// whose body is absent or not structured JSON is a contract
	// violation and is never retried.
	ExpectJSON bool

	lastWait    time.Duration
	hasLastWait bool
}

// NewContext returns a Context for a logical request with the given
// attempt budget and method. The attempt counter starts at zero; the
// attempt loop increments it before the first try.
func NewContext(maxAttempts int, method string, expectJSON bool) *Context {
	return &Context{
		MaxAttempts: maxAttempts,
		Method:      method,
		ExpectJSON:  expectJSON,
	}
}

// SetLastWait records the wait most recently computed for a
// server-hinted (rate limited) retry. A terminal error synthesized
// later in the same logical request reports this value.
func (c *Context) SetLastWait(d time.Duration) {
	c.lastWait = d
	c.hasLastWait = true
}

// ClearLastWait discards any recorded wait. The wait calculator clears
// the value at the start of every invocation that does not set it, so
// a stale wait from an earlier attempt cannot leak into an unrelated
// failure.
func (c *Context) ClearLastWait() {
	c.lastWait = 0
	c.hasLastWait = false
}

// LastWait returns the recorded wait and whether one is recorded.
func (c *Context) LastWait() (time.Duration, bool) {
	return c.lastWait, c.hasLastWait
}

// Exhausted reports whether the attempt budget is spent, i.e. the
// current attempt is the last one permitted.
func (c *Context) Exhausted() bool {
	return c.Attempt >= c.MaxAttempts
}
