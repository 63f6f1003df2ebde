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
	"bytes"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tochemey/beamlet/heap"
	"github.com/tochemey/beamlet/log"
	"github.com/tochemey/beamlet/term"
)

func TestProcessDefaults(t *testing.T) {
	p, _, _ := newTestProcess()
	assert.NotEmpty(t, p.ID())
	assert.NotNil(t, p.Heap())
	assert.NotNil(t, p.Mailbox())
	assert.NotNil(t, p.Logger())
	assert.False(t, p.Stopped())
	assert.False(t, p.Waiting())
}

func TestProcessIDsAreUnique(t *testing.T) {
	seen := make(map[string]bool)
	for n := 0; n < 100; n++ {
		p, _, _ := newTestProcess()
		require.False(t, seen[p.ID()])
		seen[p.ID()] = true
	}
}

func TestProcessOptions(t *testing.T) {
	h := heap.New(128)
	p, _, _ := newTestProcess(WithHeap(h), WithLogger(log.DiscardLogger))
	assert.Same(t, h, p.Heap())
	assert.Equal(t, log.DiscardLogger, p.Logger())
}

func TestDeliverAppendsAndWakes(t *testing.T) {
	p, _, _ := newTestProcess()
	require.NoError(t, p.Deliver(term.Int(1)))
	require.NoError(t, p.Deliver(term.Int(2)))
	assert.Equal(t, 2, p.Mailbox().Len())

	// a wake token must be pending for the sleeping receiver
	select {
	case <-p.WakeChan():
	default:
		t.Fatal("expected a pending wake token after delivery")
	}
}

func TestDeliverCopiesThePayload(t *testing.T) {
	p, _, _ := newTestProcess()

	data := []byte("sender-owned")
	require.NoError(t, p.Deliver(term.NewBinary(data)))

	// mutating the sender's buffer must not affect the delivered copy
	data[0] = 'X'

	rctx, err := p.ReceiveStart(term.Infinity)
	require.NoError(t, err)
	require.Equal(t, StateReceived, p.ReceiveWait(rctx))
	payload, ok := rctx.Message()
	require.True(t, ok)
	assert.Equal(t, []byte("sender-owned"), payload.(*term.Binary).Bytes())
	require.True(t, p.ReceiveDone(rctx))
}

func TestDeliverToStoppedProcess(t *testing.T) {
	p, _, _ := newTestProcess()
	require.NoError(t, p.Shutdown())
	assert.ErrorIs(t, p.Deliver(term.Int(1)), ErrDead)
}

func TestShutdownReleasesPendingFragments(t *testing.T) {
	p, _, _ := newTestProcess(WithHeap(heap.New(32, heap.WithCeiling(32))))

	require.NoError(t, p.Deliver(term.NewBinary(bytes.Repeat([]byte("z"), 256))))

	p.Mailbox().Lock()
	p.Mailbox().BeginScan()
	msg := p.Mailbox().PeekNext()
	p.Mailbox().EndScan()
	p.Mailbox().Unlock()
	require.NotNil(t, msg)
	fragment := msg.Fragment()
	require.NotNil(t, fragment)

	require.NoError(t, p.Shutdown())
	assert.True(t, p.Stopped())
	assert.True(t, fragment.Released())
	assert.True(t, p.Mailbox().IsEmpty())
}

func TestDeliverRacingShutdownLeavesNothingBehind(t *testing.T) {
	// every message is fragment-resident, so a send slipping past the
	// shutdown drain would strand an unreleased fragment in the mailbox
	payload := bytes.Repeat([]byte("w"), 256)
	for n := 0; n < 25; n++ {
		p, _, _ := newTestProcess(WithHeap(heap.New(32, heap.WithCeiling(32))))

		var wg sync.WaitGroup
		wg.Add(1)
		go func() {
			defer wg.Done()
			for n := 0; n < 20; n++ {
				if err := p.Deliver(term.NewBinary(payload)); err != nil {
					assert.ErrorIs(t, err, ErrDead)
					return
				}
			}
		}()

		require.NoError(t, p.Shutdown())
		wg.Wait()
		assert.True(t, p.Mailbox().IsEmpty())
	}
}

func TestShutdownIsIdempotent(t *testing.T) {
	p, _, _ := newTestProcess()
	require.NoError(t, p.Shutdown())
	require.NoError(t, p.Shutdown())
}

func TestWaitingFlagRoundTrip(t *testing.T) {
	p, _, _ := newTestProcess()
	p.markWaiting()
	assert.True(t, p.Waiting())
	p.ClearWaiting()
	assert.False(t, p.Waiting())
}

func TestNotifyNeverBlocks(t *testing.T) {
	p, _, _ := newTestProcess()
	// repeated notifications with nobody listening must coalesce, not block
	for n := 0; n < 10; n++ {
		p.Notify()
	}
	select {
	case <-p.WakeChan():
	default:
		t.Fatal("expected a pending wake token")
	}
}

func TestResumeNeverBlocks(t *testing.T) {
	p, _, _ := newTestProcess()
	for n := 0; n < 10; n++ {
		p.Resume()
	}
	select {
	case <-p.ResumeChan():
	default:
		t.Fatal("expected a pending resume token")
	}
}
