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

import "sync"

// Mailbox is the per-process inbox of messages sent by other processes.
//
// Concurrency model:
//   - Multi-Producer, Single-Consumer: any process (including the owner,
//     for self-sends) may Append; only the owning process reads.
//   - Every mutation happens inside a short critical section under the
//     mailbox lock. The lock is never held across a suspension point.
//
// Read position:
//   - A receive scan holds a cursor marking the next unread message,
//     distinct from the append tail. PeekNext, AdvanceCursor and CommitRead
//     must be called with the lock held; the cursor never moves backward
//     within one scan.
type Mailbox struct {
	mu sync.Mutex

	head *Message
	tail *Message
	size int

	// scan state, valid between BeginScan and EndScan
	scanning   bool
	cursor     *Message // next unread message
	cursorPrev *Message // node before cursor, needed for unlinking
	read       *Message // most recently advanced-past message
	readPrev   *Message
}

// NewMailbox creates an empty mailbox.
func NewMailbox() *Mailbox {
	return &Mailbox{}
}

// Lock acquires the mailbox lock. Callers must pair it with Unlock and must
// not suspend while holding it.
func (mb *Mailbox) Lock() {
	mb.mu.Lock()
}

// Unlock releases the mailbox lock.
func (mb *Mailbox) Unlock() {
	mb.mu.Unlock()
}

// Append inserts a message at the tail. Safe to call from any process; the
// critical section is O(1).
func (mb *Mailbox) Append(msg *Message) {
	mb.mu.Lock()
	mb.appendLocked(msg)
	mb.mu.Unlock()
}

// appendLocked inserts a message at the tail. Caller must hold the lock.
func (mb *Mailbox) appendLocked(msg *Message) {
	prevTail := mb.tail
	if mb.tail == nil {
		mb.head = msg
	} else {
		mb.tail.next = msg
	}
	mb.tail = msg
	mb.size++
	// a scan that ran past the end picks up the new message
	if mb.scanning && mb.cursor == nil {
		mb.cursor = msg
		mb.cursorPrev = prevTail
	}
}

// BeginScan starts a receive scan: the cursor is placed on the oldest
// not-yet-consumed message. Caller must hold the lock.
func (mb *Mailbox) BeginScan() {
	mb.scanning = true
	mb.cursor = mb.head
	mb.cursorPrev = nil
	mb.read = nil
	mb.readPrev = nil
}

// PeekNext returns the message at the cursor without removing it, or nil
// when every message has been read. Caller must hold the lock; only the
// owning process may call it.
func (mb *Mailbox) PeekNext() *Message {
	return mb.cursor
}

// AdvanceCursor moves the cursor past the just-peeked message, marking it
// logically read so a later CommitRead can drop it. Caller must hold the
// lock.
func (mb *Mailbox) AdvanceCursor() {
	if mb.cursor == nil {
		return
	}
	mb.read = mb.cursor
	mb.readPrev = mb.cursorPrev
	mb.cursorPrev = mb.cursor
	mb.cursor = mb.cursor.next
}

// CommitRead removes the most recently advanced-past message from the
// mailbox. Caller must hold the lock and must have called AdvanceCursor
// during the current scan.
func (mb *Mailbox) CommitRead() {
	read := mb.read
	if read == nil {
		return
	}
	if mb.readPrev == nil {
		mb.head = read.next
	} else {
		mb.readPrev.next = read.next
	}
	if mb.tail == read {
		mb.tail = mb.readPrev
	}
	if mb.cursorPrev == read {
		mb.cursorPrev = mb.readPrev
	}
	read.next = nil
	mb.size--
	mb.read = nil
	mb.readPrev = nil
}

// EndScan finishes a receive scan and discards the cursor state. Caller
// must hold the lock.
func (mb *Mailbox) EndScan() {
	mb.scanning = false
	mb.cursor = nil
	mb.cursorPrev = nil
	mb.read = nil
	mb.readPrev = nil
}

// Len returns the number of messages in the mailbox.
func (mb *Mailbox) Len() int {
	mb.mu.Lock()
	defer mb.mu.Unlock()
	return mb.size
}

// IsEmpty reports whether the mailbox currently has no messages.
func (mb *Mailbox) IsEmpty() bool {
	return mb.Len() == 0
}

// drainLocked unlinks and returns every message. Caller must hold the lock;
// used during process shutdown.
func (mb *Mailbox) drainLocked() []*Message {
	out := make([]*Message, 0, mb.size)
	for msg := mb.head; msg != nil; {
		next := msg.next
		msg.next = nil
		out = append(out, msg)
		msg = next
	}
	mb.head = nil
	mb.tail = nil
	mb.size = 0
	mb.EndScan()
	return out
}
