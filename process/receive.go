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
	"fmt"

	"github.com/tochemey/beamlet/term"
)

// The four-phase receive protocol. The executing process calls
// ReceiveStart, then ReceiveWait until a terminal state, reads the payload
// with ReceiveContext.Message, and commits with ReceiveDone. Each operation
// recovers any panic from lower layers and converts it into its error
// return; a fault never unwinds across this boundary.

// ReceiveStart validates the timeout term against the current clock
// reading, registers a receive scan with the mailbox and returns the
// context handle for the operation. Exactly one ReceiveDone must follow
// every successful ReceiveStart.
func (p *Process) ReceiveStart(timeoutValue term.Term) (rctx *ReceiveContext, err error) {
	defer func() {
		if r := recover(); r != nil {
			rctx = nil
			err = fmt.Errorf("receive start panicked: %v", r)
			p.logger.Errorf("process=(%s) %v", p.id, err)
		}
	}()

	timeout, err := newTimeout(p.clock.Now(), timeoutValue)
	if err != nil {
		return nil, err
	}

	p.mailbox.Lock()
	p.mailbox.BeginScan()
	p.mailbox.Unlock()

	return newReceiveContext(p, timeout), nil
}

// ReceiveWait runs the cooperative receive loop to completion: it polls the
// mailbox, checks the timeout and yields to the scheduler when neither is
// satisfied, resuming the poll when next scheduled. It returns the terminal
// state of the operation. Calling it on an already terminal context returns
// that state unchanged.
func (p *Process) ReceiveWait(rctx *ReceiveContext) (state ReceiveState) {
	defer func() {
		if r := recover(); r != nil {
			if rctx != nil {
				rctx.fail()
			}
			state = StateFailed
			p.logger.Errorf("process=(%s) receive wait panicked: %v", p.id, r)
		}
	}()

	if rctx == nil {
		return StateFailed
	}
	if rctx.owner != p {
		// never touch the foreign context: it stays valid for its owner
		p.logger.Warnf("process=(%s) %v", p.id, ErrNotOwner)
		return StateFailed
	}
	if rctx.state.Terminal() {
		return rctx.state
	}

	for {
		p.mailbox.Lock()
		if msg := p.mailbox.PeekNext(); msg != nil {
			p.mailbox.AdvanceCursor()
			rctx.withMessage(msg)
			p.mailbox.Unlock()
			return StateReceived
		}
		if rctx.timeout.Expired(p.clock.Now()) {
			rctx.withTimeout()
			p.mailbox.Unlock()
			return StateTimedOut
		}
		p.mailbox.Unlock()
		// nothing to read and not expired: park until mail arrives or the
		// scheduler gives us another timeslice. The lock is released first;
		// a sender racing the park leaves a wake token behind, so the wake
		// is never lost.
		p.markWaiting()
		if err := p.scheduler.Yield(p); err != nil {
			// the scheduler is gone: no resume will ever come, so the
			// operation can only terminate here
			p.logger.Warnf("process=(%s) %v", p.id, err)
			rctx.fail()
			return StateFailed
		}
	}
}

// ReceiveMessage returns the payload delivered to a received context. The
// second return is false when the context belongs to another process or is
// not in StateReceived. Read-only and repeatable.
func (p *Process) ReceiveMessage(rctx *ReceiveContext) (term.Term, bool) {
	if rctx == nil || rctx.owner != p {
		return term.None, false
	}
	return rctx.Message()
}

// ReceiveDone commits the receive operation and consumes the context. For a
// received fragment-resident message the payload is first relocated into
// the owning heap, then the mailbox read is committed and the fragment
// released. A timed-out operation only discards the scan. A context still
// in StateReady (started but never waited to completion) is cleaned up the
// same way but reported as false, as is any repeated call on the same
// context.
func (p *Process) ReceiveDone(rctx *ReceiveContext) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			ok = false
			p.logger.Errorf("process=(%s) receive done panicked: %v", p.id, r)
		}
	}()

	if rctx == nil || rctx.owner != p {
		return false
	}
	if !rctx.done.CompareAndSwap(false, true) {
		// second finish on the same handle: never double-commits
		return false
	}

	switch rctx.state {
	case StateReceived:
		fragment := rctx.message.Fragment()
		if rctx.needsMove {
			moved, err := p.relocate(rctx.message)
			if err != nil {
				// mandatory relocation failed: leave the message in the
				// mailbox rather than commit a dangling payload
				p.logger.Errorf("process=(%s) %v", p.id, err)
				rctx.fail()
				p.mailbox.Lock()
				p.mailbox.EndScan()
				p.mailbox.Unlock()
				return false
			}
			rctx.message.relocated(moved)
			rctx.needsMove = false
		}
		p.mailbox.Lock()
		p.mailbox.CommitRead()
		p.mailbox.EndScan()
		p.mailbox.Unlock()
		if fragment != nil {
			if err := fragment.Release(); err != nil {
				p.logger.Errorf("process=(%s) fragment release failed: %v", p.id, err)
			}
		}
		return true
	case StateTimedOut:
		p.mailbox.Lock()
		p.mailbox.EndScan()
		p.mailbox.Unlock()
		return true
	case StateReady, StateFailed:
		// abandoned Ready context or a failed operation: discard the scan
		// without touching any message
		p.mailbox.Lock()
		p.mailbox.EndScan()
		p.mailbox.Unlock()
		return false
	default:
		p.logger.Errorf("process=(%s) state=(%d) %v", p.id, rctx.state, ErrUnreachableState)
		return false
	}
}
