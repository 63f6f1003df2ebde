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
	"sync"

	csmap "github.com/mhmtszr/concurrent-swiss-map"
	"github.com/zeebo/xxh3"
)

// Atom is an interned symbolic constant. Two atoms with the same name are
// always equal, process heaps never own atom storage, and an atom survives
// any relocation untouched.
type Atom uint32

// Kind implements Term.
func (Atom) Kind() Kind { return KindAtom }

// String returns the name of the atom.
func (a Atom) String() string {
	return table.name(a)
}

// atomTable is the global atom interning table. Names are mapped to ids
// through a sharded swiss map keyed with xxh3; the reverse mapping is an
// append-only slice guarded by a mutex, ids are its indices.
type atomTable struct {
	ids *csmap.CsMap[string, Atom]

	mu    sync.RWMutex
	names []string
}

const atomTableShards = 32

var table = newAtomTable()

func newAtomTable() *atomTable {
	ids := csmap.Create[string, Atom](
		csmap.WithShardCount[string, Atom](atomTableShards),
		csmap.WithCustomHasher[string, Atom](func(key string) uint64 {
			return xxh3.Hash([]byte(key))
		}),
	)
	return &atomTable{ids: ids}
}

// intern returns the id of the named atom, creating it on first use.
func (t *atomTable) intern(name string) Atom {
	if id, ok := t.ids.Load(name); ok {
		return id
	}

	t.mu.Lock()
	// re-check: another goroutine may have interned the name while we
	// were waiting for the write lock
	if id, ok := t.ids.Load(name); ok {
		t.mu.Unlock()
		return id
	}
	id := Atom(len(t.names))
	t.names = append(t.names, name)
	t.ids.Store(name, id)
	t.mu.Unlock()
	return id
}

// name resolves an atom id back to its name.
func (t *atomTable) name(a Atom) string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if int(a) >= len(t.names) {
		return ""
	}
	return t.names[a]
}

// count returns the number of interned atoms.
func (t *atomTable) count() int {
	return t.ids.Count()
}

// NewAtom interns the given name and returns its atom.
func NewAtom(name string) Atom {
	return table.intern(name)
}

// AtomCount returns the number of atoms interned so far.
func AtomCount() int {
	return table.count()
}

// Well-known atoms used by the runtime.
var (
	// Infinity is the timeout sentinel of `receive … after`.
	Infinity = NewAtom("infinity")
	// True is the boolean true atom.
	True = NewAtom("true")
	// False is the boolean false atom.
	False = NewAtom("false")
	// Ok is the conventional success marker.
	Ok = NewAtom("ok")
)
