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
	"github.com/tochemey/beamlet/heap"
	"github.com/tochemey/beamlet/term"
)

// StorageClass tells where a delivered message's payload lives.
type StorageClass uint8

const (
	// HeapResident marks a payload already owned by the receiving
	// process's heap.
	HeapResident StorageClass = iota
	// FragmentResident marks a payload owned by a transient fragment
	// created because the receiving heap had no room at send time. Such a
	// payload must be relocated before the fragment is released.
	FragmentResident
)

// Message is a single mailbox entry: an immutable payload term plus its
// storage class. Messages are produced by senders and consumed exactly once
// by the owning process.
type Message struct {
	payload  term.Term
	class    StorageClass
	fragment *heap.Fragment
	next     *Message
}

// Payload returns the message's payload term.
func (m *Message) Payload() term.Term {
	return m.payload
}

// Class returns the storage class of the payload.
func (m *Message) Class() StorageClass {
	return m.class
}

// Fragment returns the fragment owning the payload, or nil for a
// heap-resident message.
func (m *Message) Fragment() *heap.Fragment {
	return m.fragment
}

// relocated rebinds the message to its heap-resident copy after relocation.
func (m *Message) relocated(payload term.Term) {
	m.payload = payload
	m.class = HeapResident
}
