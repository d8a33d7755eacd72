// Copyright 2026 The reprise Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package reprise

import "sync/atomic"

// A Latch is a single-fire completion guard. One Latch is shared by
// all delivery paths of a logical request; every path calls Fire
// before delivering, and only the first caller wins. This keeps
// terminal delivery at-most-once even when a late retry timer races a
// cancellation.
//
// The zero value is an unfired Latch, ready for use. A Latch must not
// be copied after first use. It is safe for concurrent use by multiple
// goroutines.
type Latch struct {
	fired atomic.Bool
}

// Fire attempts to fire the latch. It returns true exactly once, for
// the first caller; every later call returns false.
func (l *Latch) Fire() bool {
	return l.fired.CompareAndSwap(false, true)
}

// Fired reports whether the latch has fired.
func (l *Latch) Fired() bool {
	return l.fired.Load()
}
