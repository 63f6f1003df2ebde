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

package term

// wordSize is the accounting unit of heap charges, in bytes.
const wordSize = 8

// Allocator is the destination of a structural copy. Charge reserves n
// bytes and fails when the destination cannot hold them.
type Allocator interface {
	Charge(n int) error
}

// DeepSize returns the total number of bytes a structural copy of t will
// charge against an Allocator. Shared substructures are counted once and
// cyclic structures terminate.
func DeepSize(t Term) int {
	return deepSize(t, make(map[Term]struct{}))
}

func deepSize(t Term, seen map[Term]struct{}) int {
	switch v := t.(type) {
	case *Binary:
		if _, dup := seen[t]; dup {
			return 0
		}
		seen[t] = struct{}{}
		return 2*wordSize + v.Size()
	case *Tuple:
		if _, dup := seen[t]; dup {
			return 0
		}
		seen[t] = struct{}{}
		size := 2*wordSize + wordSize*v.Arity()
		for i := 0; i < v.Arity(); i++ {
			size += deepSize(v.Element(i), seen)
		}
		return size
	case *List:
		if _, dup := seen[t]; dup {
			return 0
		}
		seen[t] = struct{}{}
		return 2*wordSize + deepSize(v.Head(), seen) + deepSize(v.Tail(), seen)
	default:
		// immediates occupy a single word and are never boxed
		return wordSize
	}
}

// CloneInto performs a structural deep copy of t against the given
// allocator. The full deep size is charged up front so a failed charge
// leaves the allocator untouched. Shared substructures stay shared in the
// copy and cyclic structures are preserved, not unrolled.
func CloneInto(t Term, alloc Allocator) (Term, error) {
	if err := alloc.Charge(DeepSize(t)); err != nil {
		return nil, err
	}
	return clone(t, make(map[Term]Term)), nil
}

func clone(t Term, seen map[Term]Term) Term {
	switch v := t.(type) {
	case *Binary:
		if dup, ok := seen[t]; ok {
			return dup
		}
		out := NewBinary(v.Bytes())
		seen[t] = out
		return out
	case *Tuple:
		if dup, ok := seen[t]; ok {
			return dup
		}
		out := &Tuple{elements: make([]Term, v.Arity())}
		seen[t] = out
		for i := 0; i < v.Arity(); i++ {
			out.elements[i] = clone(v.Element(i), seen)
		}
		return out
	case *List:
		if dup, ok := seen[t]; ok {
			return dup
		}
		out := &List{}
		seen[t] = out
		out.head = clone(v.Head(), seen)
		out.tail = clone(v.Tail(), seen)
		return out
	default:
		// immediates are shared by value
		return t
	}
}

// Scrub zeroes every binary payload reachable from t. It models releasing
// the allocation that owned the term: any alias still pointing into the
// released storage observes poisoned content instead of stale bytes.
func Scrub(t Term) {
	scrub(t, make(map[Term]struct{}))
}

func scrub(t Term, seen map[Term]struct{}) {
	if _, dup := seen[t]; dup {
		return
	}
	switch v := t.(type) {
	case *Binary:
		seen[t] = struct{}{}
		clear(v.data)
	case *Tuple:
		seen[t] = struct{}{}
		for i := 0; i < v.Arity(); i++ {
			scrub(v.Element(i), seen)
		}
	case *List:
		seen[t] = struct{}{}
		scrub(v.Head(), seen)
		scrub(v.Tail(), seen)
	}
}

// Equal reports deep structural equality of two terms. Cyclic terms are
// compared up to the first revisited pair.
func Equal(a, b Term) bool {
	return equal(a, b, make(map[[2]Term]struct{}))
}

func equal(a, b Term, seen map[[2]Term]struct{}) bool {
	if a.Kind() != b.Kind() {
		return false
	}
	key := [2]Term{a, b}
	if _, dup := seen[key]; dup {
		return true
	}
	switch va := a.(type) {
	case *Binary:
		seen[key] = struct{}{}
		vb := b.(*Binary)
		if va.Size() != vb.Size() {
			return false
		}
		ab, bb := va.Bytes(), vb.Bytes()
		for i := range ab {
			if ab[i] != bb[i] {
				return false
			}
		}
		return true
	case *Tuple:
		seen[key] = struct{}{}
		vb := b.(*Tuple)
		if va.Arity() != vb.Arity() {
			return false
		}
		for i := 0; i < va.Arity(); i++ {
			if !equal(va.Element(i), vb.Element(i), seen) {
				return false
			}
		}
		return true
	case *List:
		seen[key] = struct{}{}
		vb := b.(*List)
		return equal(va.Head(), vb.Head(), seen) && equal(va.Tail(), vb.Tail(), seen)
	default:
		return a == b
	}
}
