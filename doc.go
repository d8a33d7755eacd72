// Copyright 2026 The reprise Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package reprise is a retry-policy engine for HTTP requests. It decides,
after every request attempt, whether to retry, how long to wait before
the next attempt, and how to produce a single informative terminal
error once retrying stops. The mechanics of actually sending requests
(sockets, TLS, proxying) stay behind the Attempter interface, supplied
by the caller.

Create a Runner and hand it an Attempter to begin making requests:

	runner := reprise.NewRunner(retry.DefaultConfig())
	resp, err := runner.Run(ctx, myAttempter, "GET", true)

For control over retry decisions, thresholds, and timing, build the
policy from an explicit configuration:

	cfg := retry.Config{
		MaxAttempts:    5,
		ServerErrorCap: 3,
		RateLimitCap:   2,
		MaxWait:        10 * time.Second,
		ProxyFailFast:  true,
	}
	runner := reprise.NewRunner(cfg)

or load the thresholds from YAML:

	cfg, err := retry.ConfigFromYAML(data)

For full control, compose a retry.Policy from your own Decider and
Waiter implementations:

	waiter := retry.NewHintWaiter(retry.NewBackoffWaiter(
		500*time.Millisecond, time.Second, time.Now()))
	runner := &reprise.Runner{
		Policy: retry.NewPolicy(retry.DefaultDecider, waiter, 5*time.Second),
	}

To observe the attempt loop, install handlers and a logger:

	handlers := &reprise.HandlerGroup{}
	handlers.PushBack(reprise.AfterAttempt, reprise.HandlerFunc(
		func(_ reprise.Event, c *attempt.Context, o *attempt.Outcome) {
			fmt.Printf("attempt %d: status %d\n", c.Attempt, o.StatusCode())
		}))
	runner.Handlers = handlers
	runner.Logger = &logger

When retrying stops without a final response, the error returned by
Run is a *fault.TerminalError carrying the final status code and body,
the attempt count, and the last server-hinted wait, so callers never
observe intermediate failed attempts, only the final outcome.
*/
package reprise
