// Copyright 2026 The reprise Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package fault classifies failed request attempts and synthesizes the
// single terminal error surfaced to the caller once retrying stops.
//
// The taxonomy distinguishes failure classes with different retry
// semantics: proxy establishment failures and client errors are fatal,
// transport faults are retried up to the global budget, server faults
// and rate limiting are retried up to tighter per-class budgets, and
// anything left over is reported as an exhausted attempt budget.
package fault
