// Copyright 2026 The reprise Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package fault

import (
	"errors"
	"syscall"
)

// A Transience is the fine-grained kind of a transport-level error, as
// reported by Transient. Every non-proxy transport error is retried up
// to the global attempt budget regardless of kind; the kind is surfaced
// for diagnostics and logging.
type Transience int

const (
	// Other indicates a transport error of no more specific kind.
	Other Transience = iota
	// Timeout indicates a client-side timeout. The server may be going
	// through a temporary period of slowness, or a future attempt may
	// succeed within the same deadline.
	//
	// Transient returns Timeout if the error or any of its wrapped
	// causes has a Timeout() function that reports true.
	Timeout
	// ConnRefused indicates the remote host refused the connection
	// (POSIX ECONNREFUSED). Refusal can be a permanent condition, but
	// it also happens while a service is starting or restarting, so it
	// is treated as a network-class fault.
	ConnRefused
	// ConnReset indicates the remote host reset a previously active
	// TCP connection (POSIX ECONNRESET). Resets are common when a
	// service behind a load balancer is redeployed, and tend to
	// indicate a high probability of success on retry.
	ConnReset
)

var transienceNames = []string{
	"Other",
	"Timeout",
	"ConnRefused",
	"ConnReset",
}

// String returns the name of the transience kind.
func (t Transience) String() string {
	if t < Other || int(t) >= len(transienceNames) {
		return "Unknown"
	}
	return transienceNames[t]
}

// Transient returns the fine-grained kind of a transport error. It
// looks at wrapped cause errors contained within err, not just err
// itself. It never checks for a Temporary() function, as the semantics
// of Temporary() are not entirely clear.
func Transient(err error) Transience {
	if err == nil {
		return Other
	}

	var timeout hasTimeout
	if errors.As(err, &timeout) && timeout.Timeout() {
		return Timeout
	}

	var errno syscall.Errno
	if errors.As(err, &errno) {
		if errno == syscall.ECONNRESET {
			return ConnReset
		} else if errno == syscall.ECONNREFUSED {
			return ConnRefused
		}
	}

	return Other
}

type hasTimeout interface {
	Timeout() bool
}
