// MIT License
//
// Copyright (c) 2022-2026 GoAkt Team
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package process

import (
	"math"
	"time"

	"github.com/tochemey/beamlet/term"
)

// Timeout is the wait bound of one receive operation: either infinite or an
// absolute deadline on the monotonic clock. It is computed once at
// receive-start and immutable afterwards.
type Timeout struct {
	infinite bool
	deadline time.Duration
}

// newTimeout derives a Timeout from the caller-supplied term and the
// current clock reading. The only legal shapes, per `receive … after`, are
// the infinity atom and a non-negative integer of milliseconds.
func newTimeout(now time.Duration, value term.Term) (Timeout, error) {
	switch v := value.(type) {
	case term.Atom:
		if v == term.Infinity {
			return Timeout{infinite: true}, nil
		}
	case term.Int:
		if v >= 0 {
			wait := time.Duration(math.MaxInt64)
			if int64(v) <= math.MaxInt64/int64(time.Millisecond) {
				wait = time.Duration(v) * time.Millisecond
			}
			return Timeout{deadline: saturatingAdd(now, wait)}, nil
		}
	}
	return Timeout{}, NewErrBadTimeoutValue(value)
}

// Infinite reports whether the timeout never expires.
func (t Timeout) Infinite() bool {
	return t.infinite
}

// Deadline returns the absolute expiry on the monotonic clock. Meaningless
// for an infinite timeout.
func (t Timeout) Deadline() time.Duration {
	return t.deadline
}

// Expired reports whether the deadline has passed at the given clock
// reading. An infinite timeout never expires.
func (t Timeout) Expired(now time.Duration) bool {
	return !t.infinite && now >= t.deadline
}

// saturatingAdd adds two durations, clamping at the maximum instead of
// overflowing on pathologically large timeouts.
func saturatingAdd(a, b time.Duration) time.Duration {
	if b > math.MaxInt64-a {
		return math.MaxInt64
	}
	return a + b
}
