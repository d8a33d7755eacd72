// Copyright 2026 The reprise Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package reprise

// An Event identifies the event type when installing or running a
// Handler. Install event handlers in a Runner to observe or extend the
// attempt loop.
type Event int

const (
	// BeforeRunStart identifies the event that occurs before the first
	// attempt of a logical request. The attempt context has been
	// constructed but its attempt counter is still zero, and there is
	// no outcome yet.
	BeforeRunStart Event = iota
	// BeforeAttempt identifies the event that occurs before each
	// individual attempt. The context's attempt counter has been
	// incremented to the attempt about to run; there is no outcome for
	// it yet.
	BeforeAttempt
	// AfterAttempt identifies the event that occurs after each attempt
	// concludes, before the retry policy is consulted. The handler
	// receives the attempt's outcome.
	AfterAttempt
	// BeforeWait identifies the event that occurs after a Retry
	// verdict, once the wait has been computed and accepted, just
	// before the loop sleeps. It does not fire when the wait is
	// non-positive or when the wait was abandoned for exceeding the
	// ceiling.
	BeforeWait
	// AfterRunEnd identifies the event that occurs once per logical
	// request, after the final attempt, just before the terminal
	// result is delivered. The handler receives the final attempt's
	// outcome.
	AfterRunEnd
	// eventSentinel provides the total number of events typed as an
	// Event.
	eventSentinel

	// numEvents provides the total number of events typed as an int.
	numEvents = int(eventSentinel)
)

var eventNames = []string{
	"BeforeRunStart",
	"BeforeAttempt",
	"AfterAttempt",
	"BeforeWait",
	"AfterRunEnd",
}

// Events returns a slice containing all events which can occur during
// a logical request, in the order in which they would occur.
func Events() []Event {
	return []Event{
		BeforeRunStart,
		BeforeAttempt,
		AfterAttempt,
		BeforeWait,
		AfterRunEnd,
	}
}

// Name returns the name of the event.
func (evt Event) Name() string {
	return eventNames[int(evt)]
}

// String returns the name of the event.
func (evt Event) String() string {
	return evt.Name()
}
