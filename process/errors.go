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
	"errors"
	"fmt"

	"github.com/tochemey/beamlet/term"
)

var (
	// ErrBadTimeoutValue is returned by ReceiveStart when the timeout term
	// is neither the infinity atom nor a non-negative integer.
	ErrBadTimeoutValue = errors.New("timeout must be the atom 'infinity' or a non-negative integer")

	// ErrUnreachableState indicates the receive machinery observed a
	// combination of conditions the state machine declares impossible.
	ErrUnreachableState = errors.New("receive reached an impossible state")

	// ErrRelocationFailure is returned when a fragment-resident message
	// could not be copied into the receiving heap.
	ErrRelocationFailure = errors.New("message relocation failed")

	// ErrDead is returned when delivering a message to a process that has
	// shut down.
	ErrDead = errors.New("process is not alive")

	// ErrNotOwner is returned when a receive operation is driven through a
	// process that did not start it.
	ErrNotOwner = errors.New("receive context does not belong to this process")

	// ErrSchedulerStopped is returned by a yield when the scheduler has
	// shut down and will never resume the process.
	ErrSchedulerStopped = errors.New("scheduler is stopped")
)

// NewErrBadTimeoutValue formats an ErrBadTimeoutValue with the offending term kind.
func NewErrBadTimeoutValue(value term.Term) error {
	return fmt.Errorf("kind=(%d) %w", value.Kind(), ErrBadTimeoutValue)
}

// NewErrRelocationFailure wraps a base error with ErrRelocationFailure for additional context.
func NewErrRelocationFailure(err error) error {
	return errors.Join(ErrRelocationFailure, err)
}
