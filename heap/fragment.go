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

package heap

import (
	"go.uber.org/atomic"

	"github.com/tochemey/beamlet/term"
)

// Fragment is a transient allocation created by a sender when the
// receiving heap has no room at send time. A fragment always has room; its
// term must be relocated into the receiving heap before the fragment is
// released, or the content is lost.
type Fragment struct {
	used     *atomic.Int64
	released *atomic.Bool
	root     term.Term
}

// enforce compilation error
var _ term.Allocator = (*Fragment)(nil)

// NewFragment creates an empty heap fragment.
func NewFragment() *Fragment {
	return &Fragment{
		used:     atomic.NewInt64(0),
		released: atomic.NewBool(false),
		root:     term.None,
	}
}

// Charge reserves n bytes in the fragment. Fragments are sized to fit, so
// the only failure is charging a released fragment.
func (f *Fragment) Charge(n int) error {
	if f.released.Load() {
		return ErrFragmentReleased
	}
	f.used.Add(int64(n))
	return nil
}

// Hold records the term the fragment owns so Release can poison it.
func (f *Fragment) Hold(root term.Term) {
	f.root = root
}

// Root returns the term owned by the fragment.
func (f *Fragment) Root() term.Term {
	return f.root
}

// Used returns the number of bytes charged against the fragment.
func (f *Fragment) Used() int64 {
	return f.used.Load()
}

// Released reports whether the fragment has been released.
func (f *Fragment) Released() bool {
	return f.released.Load()
}

// Release frees the fragment. The owned term is scrubbed so any alias that
// skipped relocation observes poisoned content rather than stale bytes.
// Releasing twice is an error.
func (f *Fragment) Release() error {
	if !f.released.CompareAndSwap(false, true) {
		return ErrFragmentReleased
	}
	term.Scrub(f.root)
	return nil
}
