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

// Package process implements the process-local message receive engine of
// the runtime: per-process mailboxes with a receive cursor, the timeout
// model, the cooperative receive loop and the relocation of messages that
// arrive outside the receiving heap. Scheduling and clock are injected
// capabilities; the package never consults ambient state.
package process

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/atomic"

	"github.com/tochemey/beamlet/heap"
	"github.com/tochemey/beamlet/internal/errorschain"
	"github.com/tochemey/beamlet/log"
	"github.com/tochemey/beamlet/term"
)

// Clock supplies strictly increasing timestamps used for timeout deadlines.
type Clock interface {
	// Now returns the current monotonic reading.
	Now() time.Duration
}

// Scheduler is the cooperative scheduling capability injected into a
// process. Yield is the only suspension point of the receive loop; Wake
// signals a process that a message was appended to its mailbox.
type Scheduler interface {
	// Yield hands control back to the scheduler. It returns nil when the
	// process is next scheduled, or ErrSchedulerStopped when the scheduler
	// has shut down and will never resume the process. Must never be
	// called while holding the mailbox lock.
	Yield(p *Process) error
	// Wake signals the process that mail has arrived. Safe to call from
	// any goroutine; never blocks.
	Wake(p *Process)
}

// Process is a lightweight, independently scheduled unit of execution with
// its own heap and mailbox.
type Process struct {
	id        string
	heap      *heap.Heap
	mailbox   *Mailbox
	clock     Clock
	scheduler Scheduler
	logger    log.Logger

	waiting *atomic.Bool
	stopped *atomic.Bool
	wakeC   chan struct{}
	resumeC chan struct{}
}

// Option configures a Process at creation time.
type Option func(*Process)

// WithLogger sets the process logger.
func WithLogger(logger log.Logger) Option {
	return func(p *Process) {
		p.logger = logger
	}
}

// WithHeap sets the process heap.
func WithHeap(h *heap.Heap) Option {
	return func(p *Process) {
		p.heap = h
	}
}

// New creates a process bound to the given scheduler and clock.
func New(scheduler Scheduler, clock Clock, opts ...Option) *Process {
	p := &Process{
		id:        uuid.NewString(),
		mailbox:   NewMailbox(),
		clock:     clock,
		scheduler: scheduler,
		logger:    log.DefaultLogger,
		waiting:   atomic.NewBool(false),
		stopped:   atomic.NewBool(false),
		wakeC:     make(chan struct{}, 1),
		resumeC:   make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.heap == nil {
		p.heap = heap.New(heap.DefaultCapacity)
	}
	return p
}

// ID returns the unique identifier of the process.
func (p *Process) ID() string {
	return p.id
}

// Heap returns the process heap.
func (p *Process) Heap() *heap.Heap {
	return p.heap
}

// Mailbox returns the process mailbox.
func (p *Process) Mailbox() *Mailbox {
	return p.mailbox
}

// Logger returns the process logger.
func (p *Process) Logger() log.Logger {
	return p.logger
}

// Deliver sends a payload to the process. The payload is copied into the
// receiving heap when it fits; otherwise it is placed in a fresh heap
// fragment and the message is marked fragment-resident, to be relocated on
// receipt. Safe to call from any process, including the receiver itself.
func (p *Process) Deliver(payload term.Term) error {
	if p.stopped.Load() {
		return ErrDead
	}

	msg := &Message{}
	copied, err := term.CloneInto(payload, p.heap)
	switch {
	case err == nil:
		msg.payload = copied
		msg.class = HeapResident
	default:
		// the receiving heap has no room: fall back to a fragment, which
		// always has room
		fragment := heap.NewFragment()
		copied, err = term.CloneInto(payload, fragment)
		if err != nil {
			return err
		}
		fragment.Hold(copied)
		msg.payload = copied
		msg.class = FragmentResident
		msg.fragment = fragment
	}

	// re-check the flag at append time: a shutdown racing this send drains
	// the mailbox under the same lock, so a message admitted here is
	// guaranteed to be drained and one rejected here never leaks
	p.mailbox.Lock()
	if p.stopped.Load() {
		p.mailbox.Unlock()
		if msg.fragment != nil {
			_ = msg.fragment.Release()
		}
		return ErrDead
	}
	p.mailbox.appendLocked(msg)
	p.mailbox.Unlock()
	p.scheduler.Wake(p)
	return nil
}

// Shutdown stops the process. Unconsumed fragment-resident messages are
// drained and their fragments released so no transient allocation outlives
// the process. Idempotent.
func (p *Process) Shutdown() error {
	if !p.stopped.CompareAndSwap(false, true) {
		return nil
	}

	p.mailbox.Lock()
	drained := p.mailbox.drainLocked()
	p.mailbox.Unlock()

	chain := errorschain.New(errorschain.ReturnAll())
	for _, msg := range drained {
		if fragment := msg.Fragment(); fragment != nil {
			chain.AddError(fragment.Release())
		}
	}
	if err := chain.Error(); err != nil {
		p.logger.Errorf("process=(%s) shutdown cleanup failed: %v", p.id, err)
		return err
	}
	return nil
}

// Stopped reports whether the process has been shut down.
func (p *Process) Stopped() bool {
	return p.stopped.Load()
}

// markWaiting flags the process as waiting for a message so the scheduler
// can park it until mail arrives or its timeslice elapses.
func (p *Process) markWaiting() {
	p.waiting.Store(true)
}

// Waiting reports whether the process is waiting for a message. Used by the
// scheduler.
func (p *Process) Waiting() bool {
	return p.waiting.Load()
}

// ClearWaiting resets the waiting flag. Used by the scheduler when the
// process resumes.
func (p *Process) ClearWaiting() {
	p.waiting.Store(false)
}

// Notify deposits a wake token for the process. Never blocks; a token is
// retained even when the process has not parked yet, so a wake racing the
// park is not lost.
func (p *Process) Notify() {
	select {
	case p.wakeC <- struct{}{}:
	default:
	}
}

// WakeChan returns the channel carrying wake tokens. Used by the scheduler.
func (p *Process) WakeChan() <-chan struct{} {
	return p.wakeC
}

// Resume deposits a resume token for the process. Used by the scheduler's
// dispatch loop to hand the process its next turn.
func (p *Process) Resume() {
	select {
	case p.resumeC <- struct{}{}:
	default:
	}
}

// ResumeChan returns the channel carrying resume tokens. Used by the
// scheduler.
func (p *Process) ResumeChan() <-chan struct{} {
	return p.resumeC
}
