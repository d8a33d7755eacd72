// Copyright 2026 The reprise Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package attempt

import "net/http"

// An Outcome describes how a single request attempt ended: either with
// a transport-level error (no response was received) or with an HTTP
// response. Exactly one of Err and Response is non-nil.
//
// An Outcome is produced fresh for every attempt and must be treated
// as immutable once constructed.
type Outcome struct {
	// Err is the transport-level error from the attempt. It is non-nil
	// if and only if no HTTP response was received (socket, tunnel, or
	// other network failure).
	Err error

	// Response is the HTTP response received in the attempt, with its
	// body fully buffered by the collaborator. It is nil if and only if
	// Err is non-nil.
	Response *Response
}

// A Response is the buffered result of a single successful exchange.
// The collaborator is responsible for reading and closing the wire
// response; the policy engine only inspects this snapshot.
type Response struct {
	// StatusCode is the HTTP response status code.
	StatusCode int

	// Header contains the response headers. Lookups through
	// http.Header are case-insensitive.
	Header http.Header

	// Body is the complete buffered response body. It may be nil or
	// empty.
	Body []byte
}

// TransportError returns an Outcome for an attempt that failed before
// any HTTP response was received.
func TransportError(err error) *Outcome {
	return &Outcome{Err: err}
}

// HTTPResponse returns an Outcome for an attempt that received an HTTP
// response.
func HTTPResponse(statusCode int, header http.Header, body []byte) *Outcome {
	if header == nil {
		header = make(http.Header)
	}
	return &Outcome{Response: &Response{
		StatusCode: statusCode,
		Header:     header,
		Body:       body,
	}}
}

// StatusCode returns the response status code, or 0 if the attempt
// ended in a transport error and no response exists.
func (o *Outcome) StatusCode() int {
	if o.Response == nil {
		return 0
	}
	return o.Response.StatusCode
}

// Header returns the response headers, or the nil header if no
// response exists. The nil header is safe for read-only use since
// http.Header is a map type.
func (o *Outcome) Header() http.Header {
	if o.Response == nil {
		var nilHeader http.Header
		return nilHeader
	}
	return o.Response.Header
}

// Body returns the buffered response body, or nil if no response
// exists.
func (o *Outcome) Body() []byte {
	if o.Response == nil {
		return nil
	}
	return o.Response.Body
}
