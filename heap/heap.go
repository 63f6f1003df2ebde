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

// Package heap provides per-process heap accounting and heap fragments.
// A Heap tracks how many bytes of term storage a process owns against a
// growable capacity; a Fragment is an independently released allocation a
// sender falls back to when the receiving heap is full.
package heap

import (
	"errors"

	"go.uber.org/atomic"

	"github.com/tochemey/beamlet/memory"
	"github.com/tochemey/beamlet/term"
)

var (
	// ErrHeapFull is returned by Charge when the requested bytes do not
	// fit in the current capacity. Callers may Grow and retry.
	ErrHeapFull = errors.New("heap is full")

	// ErrHeapExhausted is returned by Grow when the heap has reached its
	// ceiling and cannot grow any further.
	ErrHeapExhausted = errors.New("heap ceiling reached")

	// ErrFragmentReleased is returned when charging against or releasing
	// an already released fragment.
	ErrFragmentReleased = errors.New("heap fragment already released")
)

const (
	// DefaultCapacity is the initial capacity of a process heap.
	DefaultCapacity int64 = 64 << 10

	// fallbackCeiling caps heap growth when the system memory cannot be
	// inspected.
	fallbackCeiling int64 = 256 << 20
)

// Heap tracks the term storage owned by a single process. The owning
// process is the only grower, but any process may charge against it when
// delivering a message, so accounting is atomic.
type Heap struct {
	used     *atomic.Int64
	capacity *atomic.Int64
	ceiling  int64
}

// enforce compilation error
var _ term.Allocator = (*Heap)(nil)

// Option configures a Heap at creation time.
type Option func(*Heap)

// WithCeiling sets the maximum capacity the heap may grow to.
func WithCeiling(ceiling int64) Option {
	return func(h *Heap) {
		h.ceiling = ceiling
	}
}

// New creates a heap with the given initial capacity. A non-positive
// capacity falls back to DefaultCapacity. The growth ceiling defaults to a
// quarter of the free system memory.
func New(capacity int64, opts ...Option) *Heap {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	h := &Heap{
		used:     atomic.NewInt64(0),
		capacity: atomic.NewInt64(capacity),
		ceiling:  defaultCeiling(),
	}
	for _, opt := range opts {
		opt(h)
	}
	if h.ceiling < capacity {
		h.ceiling = capacity
	}
	return h
}

// Charge reserves n bytes on the heap. It returns ErrHeapFull when the
// reservation does not fit in the current capacity; the heap is left
// unchanged in that case.
func (h *Heap) Charge(n int) error {
	need := int64(n)
	for {
		used := h.used.Load()
		if used+need > h.capacity.Load() {
			return ErrHeapFull
		}
		if h.used.CompareAndSwap(used, used+need) {
			return nil
		}
	}
}

// Release returns n previously charged bytes to the heap.
func (h *Heap) Release(n int) {
	h.used.Sub(int64(n))
}

// Grow doubles the heap capacity, clamped to the ceiling. It returns
// ErrHeapExhausted when the heap is already at its ceiling. Only the owning
// process grows its heap.
func (h *Heap) Grow() error {
	capacity := h.capacity.Load()
	if capacity >= h.ceiling {
		return ErrHeapExhausted
	}
	next := capacity * 2
	if next > h.ceiling || next < capacity {
		next = h.ceiling
	}
	h.capacity.Store(next)
	return nil
}

// Used returns the number of charged bytes.
func (h *Heap) Used() int64 {
	return h.used.Load()
}

// Capacity returns the current capacity in bytes.
func (h *Heap) Capacity() int64 {
	return h.capacity.Load()
}

// Ceiling returns the maximum capacity the heap may grow to.
func (h *Heap) Ceiling() int64 {
	return h.ceiling
}

// defaultCeiling derives the heap growth ceiling from the free system
// memory, falling back to a fixed cap when the platform query fails.
func defaultCeiling() int64 {
	free, err := memory.Free()
	if err != nil || free == 0 {
		return fallbackCeiling
	}
	ceiling := int64(free / 4)
	if ceiling < DefaultCapacity {
		return DefaultCapacity
	}
	return ceiling
}
