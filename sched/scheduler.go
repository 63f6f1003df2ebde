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

// Package sched provides the cooperative scheduler processes are
// multiplexed on. Processes only hand control back at explicit yield
// points; the scheduler parks waiting processes until mail arrives or a
// timeslice elapses and dispatches ready processes in FIFO order.
package sched

import (
	"sync"
	"time"

	gods "github.com/Workiva/go-datastructures/queue"
	goset "github.com/deckarep/golang-set/v2"
	"go.uber.org/atomic"

	"github.com/tochemey/beamlet/log"
	"github.com/tochemey/beamlet/process"
)

const (
	// defaultResolution is the timeslice granted to a parked process, and
	// therefore the polling granularity of bounded receive timeouts.
	defaultResolution = 10 * time.Millisecond

	// defaultRunQueueCapacity bounds the ready queue.
	defaultRunQueueCapacity = 1024
)

// Scheduler cooperatively multiplexes processes. The ready queue is a
// bounded ring buffer drained by a single dispatch loop; waiting processes
// sit in a membership set until woken by a mailbox append or released by
// the timeslice tick.
type Scheduler struct {
	clock      *Monotonic
	runQueue   *gods.RingBuffer
	sleepers   goset.Set[string]
	resolution time.Duration
	logger     log.Logger

	started *atomic.Bool
	stopped *atomic.Bool
	doneC   chan struct{}
	wg      sync.WaitGroup
}

// enforce compilation error
var _ process.Scheduler = (*Scheduler)(nil)

// Option configures a Scheduler at creation time.
type Option func(*Scheduler)

// WithResolution sets the timeslice granted to parked processes. Bounded
// receive timeouts are observed with this granularity.
func WithResolution(resolution time.Duration) Option {
	return func(s *Scheduler) {
		s.resolution = resolution
	}
}

// WithLogger sets the scheduler logger.
func WithLogger(logger log.Logger) Option {
	return func(s *Scheduler) {
		s.logger = logger
	}
}

// WithRunQueueCapacity sets the capacity of the ready queue.
func WithRunQueueCapacity(capacity uint64) Option {
	return func(s *Scheduler) {
		s.runQueue = gods.NewRingBuffer(capacity)
	}
}

// New creates a scheduler. Call Start before spawning processes and Stop to
// release it.
func New(opts ...Option) *Scheduler {
	s := &Scheduler{
		clock:      NewMonotonic(),
		runQueue:   gods.NewRingBuffer(defaultRunQueueCapacity),
		sleepers:   goset.NewSet[string](),
		resolution: defaultResolution,
		logger:     log.DefaultLogger,
		started:    atomic.NewBool(false),
		stopped:    atomic.NewBool(false),
		doneC:      make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start launches the dispatch loop. Idempotent.
func (s *Scheduler) Start() {
	if !s.started.CompareAndSwap(false, true) {
		return
	}
	s.wg.Add(1)
	go s.dispatch()
	s.logger.Infof("scheduler started with resolution=(%v)", s.resolution)
}

// Stop tears the scheduler down. Parked and queued processes are released;
// further yields return immediately. Idempotent.
func (s *Scheduler) Stop() {
	if !s.stopped.CompareAndSwap(false, true) {
		return
	}
	close(s.doneC)
	s.runQueue.Dispose()
	s.wg.Wait()
	s.logger.Info("scheduler stopped")
}

// Clock returns the monotonic clock processes derive deadlines from.
func (s *Scheduler) Clock() *Monotonic {
	return s.clock
}

// Spawn creates a process bound to this scheduler and its clock.
func (s *Scheduler) Spawn(opts ...process.Option) *process.Process {
	return process.New(s, s.clock, opts...)
}

// Sleeping returns the number of processes currently parked waiting for a
// message.
func (s *Scheduler) Sleeping() int {
	return s.sleepers.Cardinality()
}

// Wake signals a process that mail has arrived. A token is retained when
// the process has not parked yet, so a wake racing the park is never lost.
// Never blocks; safe from any goroutine.
func (s *Scheduler) Wake(p *process.Process) {
	p.Notify()
}

// Yield hands control back to the scheduler. A process flagged as waiting
// is parked until a wake token arrives or its timeslice elapses; it then
// takes its FIFO turn through the ready queue. Returns nil when the process
// is dispatched again, or process.ErrSchedulerStopped once the scheduler
// has shut down: a stopped scheduler will never resume anyone, so the
// caller must treat the yield as terminal.
func (s *Scheduler) Yield(p *process.Process) error {
	if s.stopped.Load() {
		p.ClearWaiting()
		return process.ErrSchedulerStopped
	}

	if p.Waiting() {
		s.sleepers.Add(p.ID())
		timer := time.NewTimer(s.resolution)
		select {
		case <-p.WakeChan():
			timer.Stop()
		case <-timer.C:
		case <-s.doneC:
			timer.Stop()
		}
		s.sleepers.Remove(p.ID())
		p.ClearWaiting()
	}

	if err := s.runQueue.Put(p); err != nil {
		// scheduler stopped, the ready queue is disposed
		return process.ErrSchedulerStopped
	}
	select {
	case <-p.ResumeChan():
		return nil
	case <-s.doneC:
		return process.ErrSchedulerStopped
	}
}

// dispatch is the scheduler run loop: it drains the ready queue in FIFO
// order and resumes each process in turn. It exits when the queue is
// disposed by Stop.
func (s *Scheduler) dispatch() {
	defer s.wg.Done()
	for {
		item, err := s.runQueue.Get()
		if err != nil {
			return
		}
		if p, ok := item.(*process.Process); ok {
			p.Resume()
		}
	}
}
