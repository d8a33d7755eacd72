// Copyright 2026 The reprise Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package retry

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"reprise/attempt"
)

func testConfig() Config {
	return Config{
		MaxAttempts:    3,
		ServerErrorCap: 2,
		RateLimitCap:   2,
		ProxyFailFast:  true,
	}
}

func ctxAt(n int, method string, expectJSON bool) *attempt.Context {
	c := attempt.NewContext(3, method, expectJSON)
	c.Attempt = n
	return c
}

func TestNewDecider(t *testing.T) {
	d := NewDecider(testConfig())

	t.Run("transport errors retry up to the budget", func(t *testing.T) {
		o := attempt.TransportError(errors.New("connection reset by peer"))
		for n := 1; n < 3; n++ {
			assert.Equal(t, Retry, d(o, ctxAt(n, "GET", false)), fmt.Sprintf("attempt %d", n))
		}
		assert.Equal(t, Fail, d(o, ctxAt(3, "GET", false)))
		assert.Equal(t, Fail, d(o, ctxAt(4, "GET", false)))
	})

	t.Run("proxy failures never retry", func(t *testing.T) {
		o := attempt.TransportError(errors.New("proxyconnect tcp: connection refused"))
		for n := 1; n <= 3; n++ {
			assert.Equal(t, Fail, d(o, ctxAt(n, "GET", false)), fmt.Sprintf("attempt %d", n))
		}
	})

	t.Run("proxy fail fast disabled treats proxy as transport", func(t *testing.T) {
		cfg := testConfig()
		cfg.ProxyFailFast = false
		lenient := NewDecider(cfg)
		o := attempt.TransportError(errors.New("proxyconnect tcp: connection refused"))
		assert.Equal(t, Retry, lenient(o, ctxAt(1, "GET", false)))
		assert.Equal(t, Fail, lenient(o, ctxAt(3, "GET", false)))
	})

	t.Run("success range", func(t *testing.T) {
		codes := []int{200, 201, 204, 301, 302, 399}
		for _, code := range codes {
			o := attempt.HTTPResponse(code, nil, nil)
			assert.Equal(t, Succeed, d(o, ctxAt(1, "GET", false)), fmt.Sprintf("code %d", code))
			assert.Equal(t, Succeed, d(o, ctxAt(99, "GET", false)), fmt.Sprintf("code %d exhausted", code))
		}
	})

	t.Run("json contract beats success range", func(t *testing.T) {
		html := attempt.HTTPResponse(200, nil, []byte("<html></html>"))
		assert.Equal(t, Fail, d(html, ctxAt(1, "GET", true)))
		empty := attempt.HTTPResponse(200, nil, nil)
		assert.Equal(t, Fail, d(empty, ctxAt(1, "GET", true)))
		structured := attempt.HTTPResponse(200, nil, []byte(`{"ok":true}`))
		assert.Equal(t, Succeed, d(structured, ctxAt(1, "GET", true)))
	})

	t.Run("500 is unsafe on non-idempotent methods", func(t *testing.T) {
		o := attempt.HTTPResponse(500, nil, nil)
		assert.Equal(t, Fail, d(o, ctxAt(1, "POST", false)))
		assert.Equal(t, Fail, d(o, ctxAt(1, "PUT", false)))
		assert.Equal(t, Retry, d(o, ctxAt(1, "GET", false)))
		assert.Equal(t, Retry, d(o, ctxAt(1, "get", false)), "method comparison ignores case")
	})

	t.Run("server errors retry up to the server cap", func(t *testing.T) {
		for _, code := range []int{500, 502, 503, 504, 599} {
			o := attempt.HTTPResponse(code, nil, nil)
			assert.Equal(t, Retry, d(o, ctxAt(1, "GET", false)), fmt.Sprintf("code %d", code))
			assert.Equal(t, Fail, d(o, ctxAt(2, "GET", false)), fmt.Sprintf("code %d", code))
		}
	})

	t.Run("rate limiting retries up to the rate cap", func(t *testing.T) {
		o := attempt.HTTPResponse(429, nil, nil)
		assert.Equal(t, Retry, d(o, ctxAt(1, "GET", false)))
		assert.Equal(t, Fail, d(o, ctxAt(2, "GET", false)))
		assert.Equal(t, Fail, d(o, ctxAt(3, "GET", false)))
	})

	t.Run("other client errors fail unconditionally", func(t *testing.T) {
		for _, code := range []int{400, 401, 403, 404, 418, 499} {
			o := attempt.HTTPResponse(code, nil, nil)
			assert.Equal(t, Fail, d(o, ctxAt(1, "GET", false)), fmt.Sprintf("code %d", code))
		}
	})

	t.Run("unclassified statuses retry until the budget", func(t *testing.T) {
		o := attempt.HTTPResponse(101, nil, nil)
		assert.Equal(t, Retry, d(o, ctxAt(1, "GET", false)))
		assert.Equal(t, Retry, d(o, ctxAt(2, "GET", false)))
		assert.Equal(t, Fail, d(o, ctxAt(3, "GET", false)))
	})
}

func TestNewDecider_Scenarios(t *testing.T) {
	d := NewDecider(testConfig())

	t.Run("GET 503 503 200 with server cap 2 fails before the 200", func(t *testing.T) {
		o := attempt.HTTPResponse(503, nil, nil)
		assert.Equal(t, Retry, d(o, ctxAt(1, "GET", false)))
		assert.Equal(t, Fail, d(o, ctxAt(2, "GET", false)), "second 503 must fail, never reaching the 200")
	})

	t.Run("404 on first attempt fails immediately", func(t *testing.T) {
		o := attempt.HTTPResponse(404, nil, nil)
		assert.Equal(t, Fail, d(o, ctxAt(1, "GET", false)))
	})
}

func TestDeciderFunc(t *testing.T) {
	var got *attempt.Outcome
	f := DeciderFunc(func(o *attempt.Outcome, _ *attempt.Context) Verdict {
		got = o
		return Succeed
	})
	o := attempt.HTTPResponse(200, nil, nil)
	assert.Equal(t, Succeed, f.Decide(o, ctxAt(1, "GET", false)))
	assert.Same(t, o, got)
}

func TestDefaultDecider(t *testing.T) {
	assert.Equal(t, Succeed, DefaultDecider(attempt.HTTPResponse(200, nil, nil), ctxAt(1, "GET", false)))
	assert.Equal(t, Fail, DefaultDecider(attempt.HTTPResponse(400, nil, nil), ctxAt(1, "GET", false)))
}
