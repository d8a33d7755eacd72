// Copyright 2026 The reprise Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package retry implements the retry decision and wait calculation for
// the reprise attempt loop.
//
// A Decider turns a completed attempt's outcome into a Verdict (Retry,
// Succeed, or Fail), a Waiter computes how long to wait before the
// next attempt, and a Policy bundles both together with the
// maximum-wait ceiling.
//
// The standard decider is an ordered rule list built from a Config,
// whose numeric thresholds tier the retry budgets: a global attempt
// budget, plus tighter caps for server errors and rate limiting. The
// standard waiter honors Retry-After hints on rate limited responses
// and otherwise applies exponential backoff with randomized jitter.
package retry
