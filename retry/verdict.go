// Copyright 2026 The reprise Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package retry

// A Verdict is the retry decision for a completed attempt. Exactly one
// verdict is produced per attempt: the wait calculator is consulted
// only after a Retry verdict, and the terminal error synthesizer only
// after a Fail verdict.
type Verdict int

const (
	// Retry indicates the attempt failed in a way that may succeed on
	// a later try. The attempt loop waits and tries again.
	Retry Verdict = iota
	// Succeed indicates the attempt produced a final response. The
	// attempt loop stops and returns it.
	Succeed
	// Fail indicates retrying stopped or never started. The attempt
	// loop stops and synthesizes a terminal error.
	Fail
)

var verdictNames = []string{
	"Retry",
	"Succeed",
	"Fail",
}

// String returns the name of the verdict.
func (v Verdict) String() string {
	if v < Retry || int(v) >= len(verdictNames) {
		return "Unknown"
	}
	return verdictNames[v]
}
