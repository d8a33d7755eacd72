// Copyright 2026 The reprise Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package attempt contains the state shared between the retry policy
// engine and the request-execution collaborator: the per-request
// Context threaded through every attempt, and the per-attempt Outcome
// describing how a single attempt ended.
package attempt
