// Copyright 2026 The reprise Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package reprise

import "reprise/attempt"

// A HandlerGroup is a group of event handler chains which can be
// installed in a Runner.
type HandlerGroup struct {
	handlers [][]Handler
}

// PushBack adds an event handler to the back of the event handler
// chain for a specific event type.
func (g *HandlerGroup) PushBack(evt Event, h Handler) {
	if h == nil {
		panic("reprise: nil handler")
	}

	if g.handlers == nil {
		g.handlers = make([][]Handler, numEvents)
	}

	g.handlers[evt] = append(g.handlers[evt], h)
}

func (g *HandlerGroup) run(evt Event, c *attempt.Context, o *attempt.Outcome) {
	i := int(evt)
	if i < len(g.handlers) {
		for _, h := range g.handlers[i] {
			h.Handle(evt, c, o)
		}
	}
}

// A Handler handles the occurrence of an event during a logical
// request. The outcome is nil for events that fire before an attempt
// has concluded (BeforeRunStart, BeforeAttempt).
type Handler interface {
	Handle(evt Event, c *attempt.Context, o *attempt.Outcome)
}

// The HandlerFunc type is an adapter to allow the use of ordinary
// functions as event handlers.
type HandlerFunc func(evt Event, c *attempt.Context, o *attempt.Outcome)

// Handle calls f(evt, c, o).
func (f HandlerFunc) Handle(evt Event, c *attempt.Context, o *attempt.Outcome) {
	f(evt, c, o)
}
