// Copyright 2026 The reprise Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package fault

import (
	"fmt"
	"net/http"
	"time"

	"reprise/attempt"
)

// A TerminalError is the single error surfaced to the caller once
// retrying stops. It carries the diagnostic context of the final
// attempt: the status code and body when a response was observed, the
// total attempt count, and the last server-hinted wait when one was
// computed.
//
// StatusCode is non-zero if and only if a response was received, and
// Body is non-nil only when a response was received. RetryAfter is
// meaningful only when HasRetryAfter is true.
type TerminalError struct {
	// Message is a short description of why the request failed.
	Message string

	// Category is the failure class of the final outcome.
	Category Category

	// StatusCode is the status code of the final response, or 0 if the
	// final attempt ended without a response.
	StatusCode int

	// Body is the buffered body of the final response, or nil if the
	// final attempt ended without a response.
	Body []byte

	// Attempts is the number of attempts made before retrying stopped.
	Attempts int

	// RetryAfter is the wait most recently computed from a rate limit
	// hint during the logical request, valid only if HasRetryAfter is
	// true. It is reported even when the wait was abandoned because it
	// exceeded the configured ceiling.
	RetryAfter    time.Duration
	HasRetryAfter bool

	// Cause is the transport error from the final attempt, if any.
	Cause error
}

// Error returns a one-line description of the terminal error.
func (e *TerminalError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("reprise: %s (status %d, %d attempts)", e.Message, e.StatusCode, e.Attempts)
	}
	return fmt.Sprintf("reprise: %s (%d attempts)", e.Message, e.Attempts)
}

// Unwrap returns the transport error from the final attempt, or nil if
// the final attempt received a response.
func (e *TerminalError) Unwrap() error {
	return e.Cause
}

// Synthesize builds the terminal error for a logical request whose
// retrying has stopped. The outcome is the final attempt's outcome and
// may be nil if no attempt outcome is available.
//
// The message is taken from the final response's status text when a
// response exists, from the transport error when one exists, and is a
// generic "too many failed attempts" otherwise. The status code and
// body are populated only when a response was observed; the attempt
// count is always populated; the retry-after wait is populated only
// when a rate limit wait was recorded on the context.
func Synthesize(o *attempt.Outcome, c *attempt.Context) *TerminalError {
	te := &TerminalError{
		Category: Categorize(o, c),
		Attempts: c.Attempt,
	}
	if wait, ok := c.LastWait(); ok {
		te.RetryAfter = wait
		te.HasRetryAfter = true
	}

	switch {
	case o == nil:
		te.Message = "too many failed attempts"
		te.Category = BudgetExhausted
	case o.Err != nil:
		te.Message = o.Err.Error()
		te.Cause = o.Err
	default:
		te.StatusCode = o.StatusCode()
		te.Body = o.Body()
		te.Message = statusMessage(o.StatusCode())
	}
	return te
}

func statusMessage(code int) string {
	if text := http.StatusText(code); text != "" {
		return text
	}
	return fmt.Sprintf("unexpected status %d", code)
}
