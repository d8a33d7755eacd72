// Copyright 2026 The reprise Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package fault

import (
	"strings"

	"reprise/attempt"
)

// A Category is the failure class of a request attempt outcome, as
// reported by Categorize. The category determines whether and how much
// the attempt may be retried.
type Category int

const (
	// None indicates a successful outcome (status code in [200, 399]).
	None Category = iota
	// Proxy indicates a proxy or tunnel establishment failure. Proxy
	// failures are configuration errors, not transient faults, and are
	// never retried.
	Proxy
	// Transport indicates a transport-level failure where no HTTP
	// response was received. Retried up to the global attempt budget.
	Transport
	// ContentContract indicates the caller required a structured JSON
	// body and the response did not carry one. Retrying cannot fix a
	// content contract violation.
	ContentContract
	// Server indicates a 5xx response. Retried up to the server error
	// cap, which is typically tighter than the global budget.
	Server
	// RateLimited indicates a 429 response. Retried up to the rate
	// limit cap, with the wait driven by the Retry-After hint when the
	// server provides one.
	RateLimited
	// Client indicates a 4xx response other than 429. A malformed
	// request will not succeed on retry.
	Client
	// BudgetExhausted indicates no more specific class applies and the
	// attempt budget is the operative limit.
	BudgetExhausted
)

var categoryNames = []string{
	"None",
	"Proxy",
	"Transport",
	"ContentContract",
	"Server",
	"RateLimited",
	"Client",
	"BudgetExhausted",
}

// String returns the name of the category.
func (c Category) String() string {
	if c < None || int(c) >= len(categoryNames) {
		return "Unknown"
	}
	return categoryNames[c]
}

// Categorize returns the failure class of the given attempt outcome.
//
// Classification follows the same precedence the retry decider uses:
// transport errors are classified before the response is examined, the
// JSON content contract is checked before the status code ranges, and
// BudgetExhausted is the residual class for outcomes that fit nowhere
// else.
func Categorize(o *attempt.Outcome, c *attempt.Context) Category {
	if o == nil {
		return BudgetExhausted
	}
	if o.Err != nil {
		if IsProxyError(o.Err) {
			return Proxy
		}
		return Transport
	}
	if c != nil && c.ExpectJSON && !StructuredJSON(o.Body()) {
		return ContentContract
	}
	code := o.StatusCode()
	switch {
	case code >= 200 && code <= 399:
		return None
	case code >= 500 && code <= 599:
		return Server
	case code == 429:
		return RateLimited
	case code >= 400 && code <= 499:
		return Client
	}
	return BudgetExhausted
}

// proxyIndicators are the error message fragments that mark a failure
// to establish a proxy tunnel. The Go standard transport reports proxy
// CONNECT failures with the "proxyconnect" operation, and tunneling
// agents report variations on "tunneling socket could not be
// established".
var proxyIndicators = []string{
	"proxyconnect",
	"tunneling socket",
	"tunnel establishment",
}

// IsProxyError reports whether err indicates a proxy or tunnel
// establishment failure. IsProxyError examines the full message of err,
// including wrapped causes rendered into it.
func IsProxyError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	for _, ind := range proxyIndicators {
		if strings.Contains(msg, ind) {
			return true
		}
	}
	return false
}
