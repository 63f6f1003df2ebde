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

// Package term implements the immutable value model of the runtime: atoms,
// integers, floats, binaries, tuples and cons lists. Terms are the payloads
// carried by process messages. The package also provides structural deep
// copy against an Allocator, which is how messages are moved between heaps.
package term

// Kind identifies the concrete shape of a Term.
type Kind uint8

const (
	// KindNone is the absence of a value. It is what a receive operation
	// exposes when no message was delivered.
	KindNone Kind = iota
	// KindAtom is an interned symbolic constant.
	KindAtom
	// KindInt is a signed 64-bit integer.
	KindInt
	// KindFloat is a 64-bit float.
	KindFloat
	// KindBinary is an immutable byte sequence.
	KindBinary
	// KindTuple is a fixed-arity sequence of terms.
	KindTuple
	// KindList is a cons cell.
	KindList
	// KindNil is the empty list.
	KindNil
)

// Term is a single runtime value. Implementations are either immediate
// values (Atom, Int, Float, Nil, None) or boxed containers (Binary, Tuple,
// List) whose identity matters for structural sharing.
type Term interface {
	Kind() Kind
}

type noneTerm struct{}

func (noneTerm) Kind() Kind { return KindNone }

// None is the absent value.
var None Term = noneTerm{}

type nilTerm struct{}

func (nilTerm) Kind() Kind { return KindNil }

// Nil is the empty list.
var Nil Term = nilTerm{}

// Int is a signed 64-bit integer term.
type Int int64

// Kind implements Term.
func (Int) Kind() Kind { return KindInt }

// Float is a 64-bit float term.
type Float float64

// Kind implements Term.
func (Float) Kind() Kind { return KindFloat }

// Binary is an immutable byte sequence allocated on some heap.
type Binary struct {
	data []byte
}

// NewBinary creates a binary term owning a copy of the given bytes.
func NewBinary(data []byte) *Binary {
	owned := make([]byte, len(data))
	copy(owned, data)
	return &Binary{data: owned}
}

// Kind implements Term.
func (*Binary) Kind() Kind { return KindBinary }

// Bytes returns the underlying byte sequence. Callers must not mutate it.
func (b *Binary) Bytes() []byte { return b.data }

// Size returns the number of bytes in the binary.
func (b *Binary) Size() int { return len(b.data) }

// Tuple is a fixed-arity sequence of terms.
type Tuple struct {
	elements []Term
}

// NewTuple creates a tuple from the given elements.
func NewTuple(elements ...Term) *Tuple {
	return &Tuple{elements: elements}
}

// Kind implements Term.
func (*Tuple) Kind() Kind { return KindTuple }

// Arity returns the number of elements in the tuple.
func (t *Tuple) Arity() int { return len(t.elements) }

// Element returns the i-th element of the tuple.
func (t *Tuple) Element(i int) Term { return t.elements[i] }

// List is a cons cell. A proper list is a chain of cells whose final tail
// is Nil; an improper list carries any other term in its final tail.
type List struct {
	head Term
	tail Term
}

// Cons creates a single cons cell.
func Cons(head, tail Term) *List {
	return &List{head: head, tail: tail}
}

// NewList builds a proper list from the given elements. An empty call
// yields Nil.
func NewList(elements ...Term) Term {
	out := Nil
	for i := len(elements) - 1; i >= 0; i-- {
		out = Cons(elements[i], out)
	}
	return out
}

// Kind implements Term.
func (*List) Kind() Kind { return KindList }

// Head returns the head of the cons cell.
func (l *List) Head() Term { return l.head }

// Tail returns the tail of the cons cell.
func (l *List) Tail() Term { return l.tail }
