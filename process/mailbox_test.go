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
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tochemey/beamlet/term"
)

func intMessage(v int64) *Message {
	return &Message{payload: term.Int(v), class: HeapResident}
}

func TestMailboxAppendAndLen(t *testing.T) {
	mb := NewMailbox()
	assert.True(t, mb.IsEmpty())

	mb.Append(intMessage(1))
	mb.Append(intMessage(2))
	assert.Equal(t, 2, mb.Len())
	assert.False(t, mb.IsEmpty())
}

func TestMailboxScanReadsInArrivalOrder(t *testing.T) {
	mb := NewMailbox()
	mb.Append(intMessage(1))
	mb.Append(intMessage(2))

	mb.Lock()
	mb.BeginScan()
	first := mb.PeekNext()
	require.NotNil(t, first)
	assert.Equal(t, term.Int(1), first.Payload())

	// peek without advance is stable
	assert.Equal(t, first, mb.PeekNext())

	mb.AdvanceCursor()
	second := mb.PeekNext()
	require.NotNil(t, second)
	assert.Equal(t, term.Int(2), second.Payload())
	mb.EndScan()
	mb.Unlock()

	// nothing was committed, both messages remain
	assert.Equal(t, 2, mb.Len())
}

func TestMailboxCommitRemovesOnlyTheReadMessage(t *testing.T) {
	mb := NewMailbox()
	mb.Append(intMessage(1))
	mb.Append(intMessage(2))
	mb.Append(intMessage(3))

	mb.Lock()
	mb.BeginScan()
	mb.AdvanceCursor() // reads 1
	mb.CommitRead()
	mb.EndScan()
	mb.Unlock()

	require.Equal(t, 2, mb.Len())

	// the next scan starts at the oldest survivor
	mb.Lock()
	mb.BeginScan()
	next := mb.PeekNext()
	require.NotNil(t, next)
	assert.Equal(t, term.Int(2), next.Payload())
	mb.EndScan()
	mb.Unlock()
}

func TestMailboxCommitLastMessageFixesTail(t *testing.T) {
	mb := NewMailbox()
	mb.Append(intMessage(1))

	mb.Lock()
	mb.BeginScan()
	mb.AdvanceCursor()
	mb.CommitRead()
	mb.EndScan()
	mb.Unlock()

	require.True(t, mb.IsEmpty())

	// appends after the tail was removed still work
	mb.Append(intMessage(2))
	assert.Equal(t, 1, mb.Len())
}

func TestMailboxCommitWithoutAdvanceIsNoop(t *testing.T) {
	mb := NewMailbox()
	mb.Append(intMessage(1))

	mb.Lock()
	mb.BeginScan()
	mb.CommitRead()
	mb.EndScan()
	mb.Unlock()

	assert.Equal(t, 1, mb.Len())
}

func TestMailboxAppendDuringScanExtendsCursor(t *testing.T) {
	mb := NewMailbox()

	mb.Lock()
	mb.BeginScan()
	assert.Nil(t, mb.PeekNext())
	mb.Unlock()

	// a message arriving while the scan ran past the end becomes visible
	mb.Append(intMessage(42))

	mb.Lock()
	got := mb.PeekNext()
	require.NotNil(t, got)
	assert.Equal(t, term.Int(42), got.Payload())
	mb.AdvanceCursor()
	mb.CommitRead()
	mb.EndScan()
	mb.Unlock()

	assert.True(t, mb.IsEmpty())
}

func TestMailboxConcurrentProducers(t *testing.T) {
	const producers = 8
	const perProducer = 200

	mb := NewMailbox()

	var wg sync.WaitGroup
	for sender := 0; sender < producers; sender++ {
		sender := sender
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perProducer; i++ {
				mb.Append(intMessage(int64(sender*perProducer + i)))
			}
		}()
	}
	wg.Wait()

	require.Equal(t, producers*perProducer, mb.Len())

	// drain through the scan protocol: every message exactly once, and
	// each producer's own messages in its send order
	lastPerSender := make(map[int64]int64)
	seen := make(map[int64]struct{})
	for n := 0; n < producers*perProducer; n++ {
		mb.Lock()
		mb.BeginScan()
		msg := mb.PeekNext()
		require.NotNil(t, msg)
		mb.AdvanceCursor()
		mb.CommitRead()
		mb.EndScan()
		mb.Unlock()

		value := int64(msg.Payload().(term.Int))
		_, dup := seen[value]
		require.False(t, dup)
		seen[value] = struct{}{}

		sender := value / perProducer
		if last, ok := lastPerSender[sender]; ok {
			require.Greater(t, value, last)
		}
		lastPerSender[sender] = value
	}
	assert.True(t, mb.IsEmpty())
}
