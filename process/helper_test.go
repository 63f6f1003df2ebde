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
	"runtime"
	"time"

	"go.uber.org/atomic"

	"github.com/tochemey/beamlet/log"
)

// manualClock is a test clock advanced by hand.
type manualClock struct {
	now *atomic.Int64
}

func newManualClock() *manualClock {
	return &manualClock{now: atomic.NewInt64(0)}
}

func (c *manualClock) Now() time.Duration {
	return time.Duration(c.now.Load())
}

func (c *manualClock) Advance(d time.Duration) {
	c.now.Add(int64(d))
}

// inlineScheduler never parks: Yield runs the optional hook and hands the
// thread back immediately. It keeps receive-loop tests single-threaded and
// deterministic.
type inlineScheduler struct {
	yields   *atomic.Int64
	onYield  func(p *Process)
	yieldErr error
}

func newInlineScheduler() *inlineScheduler {
	return &inlineScheduler{yields: atomic.NewInt64(0)}
}

func (s *inlineScheduler) Yield(p *Process) error {
	s.yields.Inc()
	if s.onYield != nil {
		s.onYield(p)
	}
	p.ClearWaiting()
	runtime.Gosched()
	return s.yieldErr
}

func (s *inlineScheduler) Wake(p *Process) {
	p.Notify()
}

// newTestProcess wires a process to an inline scheduler and a manual clock.
func newTestProcess(opts ...Option) (*Process, *inlineScheduler, *manualClock) {
	scheduler := newInlineScheduler()
	clock := newManualClock()
	opts = append([]Option{WithLogger(log.DiscardLogger)}, opts...)
	return New(scheduler, clock, opts...), scheduler, clock
}
