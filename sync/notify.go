// Copyright 2015 The go-ethereum Authors
// This file is part of the go-ethereum library.
//
// The go-ethereum library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The go-ethereum library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the go-ethereum library. If not, see <http://www.gnu.org/licenses/>.

package sync

import "context"

// Notifier is a single-slot wake notification between the sync component
// and the importer. NotifyOne records a pending wake; any number of calls
// before the wake is consumed coalesce into one. Wait consumes a pending
// wake, or suspends until one arrives or ctx is done.
type Notifier struct {
	ch chan struct{}
}

// NewNotifier returns a ready-to-use Notifier.
func NewNotifier() *Notifier {
	return &Notifier{ch: make(chan struct{}, 1)}
}

// NotifyOne records a pending wake. It never blocks.
func (n *Notifier) NotifyOne() {
	select {
	case n.ch <- struct{}{}:
	default:
	}
}

// Wait blocks until a wake is pending (returning true) or ctx is done
// (returning false).
func (n *Notifier) Wait(ctx context.Context) bool {
	select {
	case <-n.ch:
		return true
	case <-ctx.Done():
		return false
	}
}
