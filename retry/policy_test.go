// Copyright 2026 The reprise Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package retry

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"reprise/attempt"
)

func TestNewPolicy(t *testing.T) {
	t.Run("nil components", func(t *testing.T) {
		assert.Panics(t, func() { NewPolicy(nil, NewFixedWaiter(0), 0) })
		assert.Panics(t, func() { NewPolicy(DefaultDecider, nil, 0) })
	})
	t.Run("delegates to components", func(t *testing.T) {
		p := NewPolicy(DefaultDecider, NewFixedWaiter(time.Second), 5*time.Second)
		o := attempt.HTTPResponse(503, nil, nil)
		assert.Equal(t, Retry, p.Decide(o, ctxAt(1, "GET", false)))
		assert.Equal(t, time.Second, p.Wait(o, ctxAt(1, "GET", false)))
		assert.Equal(t, 5*time.Second, p.MaxWait())
	})
	t.Run("zero ceiling disables the guard", func(t *testing.T) {
		p := NewPolicy(DefaultDecider, NewFixedWaiter(0), 0)
		assert.Equal(t, time.Duration(0), p.MaxWait())
	})
}

func TestFromConfig(t *testing.T) {
	t.Run("invalid config panics", func(t *testing.T) {
		assert.Panics(t, func() { FromConfig(Config{}) })
	})
	t.Run("standard policy", func(t *testing.T) {
		p := FromConfig(DefaultConfig())
		assert.Equal(t, DefaultConfig().MaxWait, p.MaxWait())
		assert.Equal(t, Succeed, p.Decide(attempt.HTTPResponse(200, nil, nil), ctxAt(1, "GET", false)))
	})
}

func TestDefaultPolicy(t *testing.T) {
	assert.Equal(t, 5*time.Second, DefaultPolicy.MaxWait())
	assert.Equal(t, Fail, DefaultPolicy.Decide(attempt.HTTPResponse(404, nil, nil), ctxAt(1, "GET", false)))
}

func TestNever(t *testing.T) {
	assert.Equal(t, Succeed, Never.Decide(attempt.HTTPResponse(200, nil, nil), ctxAt(1, "GET", false)))
	assert.Equal(t, Fail, Never.Decide(attempt.HTTPResponse(503, nil, nil), ctxAt(1, "GET", false)))
	assert.Equal(t, Fail, Never.Decide(attempt.TransportError(errNever), ctxAt(1, "GET", false)))
}

var errNever = assertableError("no response")

type assertableError string

func (e assertableError) Error() string { return string(e) }
