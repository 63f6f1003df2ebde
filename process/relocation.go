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
	"errors"
	"time"

	"github.com/flowchartsman/retry"

	"github.com/tochemey/beamlet/heap"
	"github.com/tochemey/beamlet/term"
)

const (
	// relocationMaxRetries bounds how many times a relocation is retried
	// after growing the heap.
	relocationMaxRetries = 5
	relocationRetryDelay = time.Millisecond
)

// relocate deep-copies a fragment-resident payload into the owning heap.
// The copy is structural: shared substructures stay shared and cycles are
// preserved. When the heap is full it is grown and the copy retried; a heap
// that cannot grow any further makes the relocation fail without any
// partial commit. The process runs single-threaded, so nothing observes the
// message between copy and commit.
func (p *Process) relocate(msg *Message) (term.Term, error) {
	var moved term.Term
	need := int64(term.DeepSize(msg.Payload()))
	retrier := retry.NewRetrier(relocationMaxRetries, relocationRetryDelay, relocationRetryDelay)
	err := retrier.Run(func() error {
		copied, err := term.CloneInto(msg.Payload(), p.heap)
		if err == nil {
			moved = copied
			return nil
		}
		if errors.Is(err, heap.ErrHeapFull) {
			// grow until the copy fits, then retry the charge
			for p.heap.Capacity() < p.heap.Used()+need {
				if growErr := p.heap.Grow(); growErr != nil {
					return retry.Stop(NewErrRelocationFailure(growErr))
				}
			}
			return err
		}
		return retry.Stop(NewErrRelocationFailure(err))
	})
	if err != nil {
		if errors.Is(err, ErrRelocationFailure) {
			return nil, err
		}
		return nil, NewErrRelocationFailure(err)
	}
	return moved, nil
}
