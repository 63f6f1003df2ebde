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
	"go.uber.org/atomic"

	"github.com/tochemey/beamlet/term"
)

// ReceiveState is the discriminated state of a receive operation.
type ReceiveState uint8

const (
	// StateFailed indicates an unrecoverable error occurred.
	StateFailed ReceiveState = iota
	// StateReady is the initial state, prior to the first wait.
	StateReady
	// StateReceived indicates a message was delivered.
	StateReceived
	// StateTimedOut indicates the receive timed out.
	StateTimedOut
)

// String returns the display name of the state.
func (s ReceiveState) String() string {
	switch s {
	case StateReady:
		return "Ready"
	case StateReceived:
		return "Received"
	case StateTimedOut:
		return "TimedOut"
	default:
		return "Failed"
	}
}

// Terminal reports whether the state can never be left again.
func (s ReceiveState) Terminal() bool {
	return s != StateReady
}

// ReceiveContext tracks one in-flight receive operation. It is created by
// ReceiveStart, mutated only by the owning process during ReceiveWait, and
// consumed by ReceiveDone. It is never shared across processes and must not
// outlive the operation it represents.
//
// Invariants:
//   - message is non-nil iff state is StateReceived
//   - timeout is fixed after construction
//   - state transitions are monotonic: Ready moves to exactly one of
//     Received, TimedOut or Failed and terminal states are never left
type ReceiveContext struct {
	timeout   Timeout
	message   *Message
	needsMove bool
	state     ReceiveState
	owner     *Process

	// done enforces exactly one ReceiveDone per ReceiveStart
	done *atomic.Bool
}

func newReceiveContext(owner *Process, timeout Timeout) *ReceiveContext {
	return &ReceiveContext{
		timeout: timeout,
		state:   StateReady,
		owner:   owner,
		done:    atomic.NewBool(false),
	}
}

// State returns the current state of the operation.
func (rctx *ReceiveContext) State() ReceiveState {
	return rctx.state
}

// Timeout returns the wait bound fixed at receive-start.
func (rctx *ReceiveContext) Timeout() Timeout {
	return rctx.timeout
}

// Message returns the delivered payload term. The second return is false
// unless the operation is in StateReceived. Read-only, it never mutates the
// context.
func (rctx *ReceiveContext) Message() (term.Term, bool) {
	if rctx.state != StateReceived {
		return term.None, false
	}
	return rctx.message.Payload(), true
}

// withMessage records a delivered message and moves to StateReceived.
func (rctx *ReceiveContext) withMessage(msg *Message) {
	rctx.state = StateReceived
	rctx.message = msg
	rctx.needsMove = msg.Class() == FragmentResident
}

// withTimeout clears any partially recorded message and moves to
// StateTimedOut.
func (rctx *ReceiveContext) withTimeout() {
	rctx.state = StateTimedOut
	rctx.message = nil
	rctx.needsMove = false
}

// fail moves to StateFailed.
func (rctx *ReceiveContext) fail() {
	rctx.state = StateFailed
	rctx.message = nil
	rctx.needsMove = false
}
