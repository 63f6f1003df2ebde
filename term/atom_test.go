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

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAtomInterning(t *testing.T) {
	a := NewAtom("interning")
	b := NewAtom("interning")
	assert.Equal(t, a, b)
	assert.Equal(t, "interning", a.String())
}

func TestAtomDistinctNames(t *testing.T) {
	a := NewAtom("apple")
	b := NewAtom("banana")
	assert.NotEqual(t, a, b)
}

func TestWellKnownAtoms(t *testing.T) {
	assert.Equal(t, "infinity", Infinity.String())
	assert.Equal(t, "true", True.String())
	assert.Equal(t, "false", False.String())
	assert.Equal(t, "ok", Ok.String())
	assert.NotEqual(t, True, False)
}

func TestUnknownAtomID(t *testing.T) {
	assert.Empty(t, Atom(1<<30).String())
}

func TestConcurrentInterning(t *testing.T) {
	const workers = 8
	const perWorker = 100

	var wg sync.WaitGroup
	results := make([][]Atom, workers)
	for w := 0; w < workers; w++ {
		w := w
		wg.Add(1)
		go func() {
			defer wg.Done()
			out := make([]Atom, perWorker)
			for i := 0; i < perWorker; i++ {
				out[i] = NewAtom(fmt.Sprintf("concurrent-%d", i))
			}
			results[w] = out
		}()
	}
	wg.Wait()

	// all workers must have observed the same id per name
	for w := 1; w < workers; w++ {
		require.Equal(t, results[0], results[w])
	}
}

func TestAtomCount(t *testing.T) {
	before := AtomCount()
	NewAtom("count-probe-a")
	NewAtom("count-probe-b")
	NewAtom("count-probe-a")
	assert.Equal(t, before+2, AtomCount())
}
