// Copyright 2026 The reprise Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package reprise

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"reprise/attempt"
	"reprise/fault"
	"reprise/retry"
)

// An Attempter executes a single request attempt. It is the external
// request-execution collaborator: socket I/O, TLS, proxying, request
// construction, and response body buffering all live behind this
// interface, outside the policy engine.
//
// Attempt must return a non-nil Outcome describing how the attempt
// ended: attempt.TransportError when no response was received,
// attempt.HTTPResponse when one was. Implementations must be safe for
// concurrent use by multiple goroutines.
type Attempter interface {
	Attempt(ctx context.Context, c *attempt.Context) *attempt.Outcome
}

// The AttempterFunc type is an adapter to allow the use of ordinary
// functions as attempters.
type AttempterFunc func(ctx context.Context, c *attempt.Context) *attempt.Outcome

// Attempt calls f(ctx, c).
func (f AttempterFunc) Attempt(ctx context.Context, c *attempt.Context) *attempt.Outcome {
	return f(ctx, c)
}

// A Completion receives the terminal result of a logical request: the
// final response on success, or the terminal error when retrying
// stopped. Exactly one of the two is non-nil. A Completion installed
// on a Runner is invoked at most once per Run.
type Completion func(*attempt.Response, error)

// A Runner drives the attempt loop for logical requests: it executes
// attempts through an Attempter, consults the retry policy after every
// attempt, sleeps between retries, and synthesizes the single terminal
// error when retrying stops. Its zero value is a valid configuration
// using retry.DefaultPolicy and no logging.
//
// Attempts within one logical request are strictly sequential and
// monotonically numbered; no attempt begins before the previous
// attempt's verdict and wait have been resolved. Independent requests
// may run concurrently through the same Runner, each with its own
// attempt context. Runner is safe for concurrent use by multiple
// goroutines.
type Runner struct {
	// Policy decides whether to retry, how long to wait, and the
	// ceiling past which a wait is abandoned. If nil,
	// retry.DefaultPolicy is used.
	Policy retry.Policy

	// MaxAttempts is the global attempt budget stamped into each
	// logical request's context. If zero, the budget from
	// retry.DefaultConfig is used.
	MaxAttempts int

	// Handlers allows custom handler chains to be invoked at
	// designated events in the attempt loop. If nil, no handlers run.
	Handlers *HandlerGroup

	// Logger receives structured records of verdicts, waits, and
	// terminal failures, correlated by a per-run id. If nil, nothing
	// is logged.
	Logger *zerolog.Logger

	// OnDone, if non-nil, receives the terminal result of every Run in
	// addition to Run's return values. It is invoked at most once per
	// Run, guarded by the run's completion latch.
	OnDone Completion
}

// NewRunner returns a Runner whose policy and attempt budget both come
// from cfg. NewRunner panics if cfg fails validation.
func NewRunner(cfg retry.Config) *Runner {
	return &Runner{
		Policy:      retry.FromConfig(cfg),
		MaxAttempts: cfg.MaxAttempts,
	}
}

// Run executes one logical request through the attempter, retrying
// per the Runner's policy, and returns the final response or the
// terminal error. Exactly one of the two return values is non-nil.
//
// The method and expectJSON flag describe the caller's request intent:
// the method gates the unsafe-to-retry rule for 500 responses, and
// expectJSON requires every accepted response to carry a structured
// JSON body.
//
// Run sleeps between retries and honors ctx during the sleep: if ctx
// is done before the wait elapses, the pending retry timer is stopped
// and ctx's error is delivered as the terminal result. The engine
// performs no other blocking work.
//
// Any returned error is a *fault.TerminalError, except when ctx was
// cancelled during a wait, in which case it is ctx.Err().
func (r *Runner) Run(ctx context.Context, a Attempter, method string, expectJSON bool) (*attempt.Response, error) {
	if a == nil {
		panic("reprise: nil attempter")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	pol := r.policy()
	c := attempt.NewContext(r.maxAttempts(), method, expectJSON)
	lt := &Latch{}
	log := r.logger().With().
		Str("run_id", uuid.NewString()).
		Str("method", method).
		Logger()
	handlers := r.handlers()

	handlers.run(BeforeRunStart, c, nil)

	for {
		c.Attempt++
		handlers.run(BeforeAttempt, c, nil)
		o := a.Attempt(ctx, c)
		if o == nil {
			o = attempt.TransportError(errors.New("reprise: attempter returned no outcome"))
		}
		handlers.run(AfterAttempt, c, o)

		v := pol.Decide(o, c)
		evt := log.Debug().
			Int("attempt", c.Attempt).
			Int("status", o.StatusCode()).
			Stringer("verdict", v)
		if o.Err != nil {
			evt = evt.Stringer("transience", fault.Transient(o.Err))
		}
		evt.Msg("attempt concluded")

		switch v {
		case retry.Succeed:
			handlers.run(AfterRunEnd, c, o)
			return r.deliver(lt, o.Response, nil)
		case retry.Fail:
			return r.fail(lt, o, c, handlers, &log)
		}

		wait := pol.Wait(o, c)
		if ceiling := pol.MaxWait(); ceiling > 0 && wait > ceiling {
			// The computed wait stays recorded on the context so the
			// terminal error can report what the server asked for.
			log.Warn().
				Dur("wait", wait).
				Dur("ceiling", ceiling).
				Msg("retry wait exceeds ceiling, abandoning retry")
			return r.fail(lt, o, c, handlers, &log)
		}
		if wait > 0 {
			handlers.run(BeforeWait, c, o)
			log.Debug().Int("attempt", c.Attempt).Dur("wait", wait).Msg("waiting before retry")
			timer := time.NewTimer(wait)
			select {
			case <-timer.C:
			case <-ctx.Done():
				timer.Stop()
				handlers.run(AfterRunEnd, c, o)
				return r.deliver(lt, nil, ctx.Err())
			}
		}
	}
}

func (r *Runner) fail(lt *Latch, o *attempt.Outcome, c *attempt.Context, handlers *HandlerGroup, log *zerolog.Logger) (*attempt.Response, error) {
	te := fault.Synthesize(o, c)
	log.Error().
		Int("attempts", te.Attempts).
		Int("status", te.StatusCode).
		Stringer("category", te.Category).
		Msg(te.Message)
	handlers.run(AfterRunEnd, c, o)
	return r.deliver(lt, nil, te)
}

// deliver hands the terminal result back through the latch, so a
// result reaches the OnDone hook at most once even if a late delivery
// path races a cancellation.
func (r *Runner) deliver(lt *Latch, resp *attempt.Response, err error) (*attempt.Response, error) {
	if lt.Fire() && r.OnDone != nil {
		r.OnDone(resp, err)
	}
	return resp, err
}

func (r *Runner) policy() retry.Policy {
	if r.Policy == nil {
		return retry.DefaultPolicy
	}
	return r.Policy
}

func (r *Runner) maxAttempts() int {
	if r.MaxAttempts < 1 {
		return retry.DefaultConfig().MaxAttempts
	}
	return r.MaxAttempts
}

var nopLogger = zerolog.Nop()

func (r *Runner) logger() *zerolog.Logger {
	if r.Logger == nil {
		return &nopLogger
	}
	return r.Logger
}

var emptyHandlers = HandlerGroup{}

func (r *Runner) handlers() *HandlerGroup {
	if r.Handlers == nil {
		return &emptyHandlers
	}
	return r.Handlers
}
