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

// Package importstate holds the mutable record shared between the sync
// component and the importer: observed tip, committed tip, the range
// currently in progress and the set of ranges that failed this session.
package importstate

import (
	"fmt"
	"sync"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/abeychain/blockimporter/chaintypes"
)

// State is the shared import state. Construct it with New or NewAt: the zero
// value has no failed-range set, and Failed, Commit and FailedToProcess
// panic on it.
//
// State must only be mutated through Apply; lock-holding sections are
// constant-work (no awaits, no I/O) so the mutex is never a scheduling
// point.
type State struct {
	mu sync.Mutex

	observedTip  *chaintypes.BlockHeight
	committedTip *chaintypes.BlockHeight
	inProgress   *chaintypes.HeightRange
	failed       mapset.Set[chaintypes.HeightRange]
}

// New returns a State with no observed tip and no committed tip: nothing is
// known yet. ProcessRange returns None until ObserveTip has been called.
func New() *State {
	return &State{failed: mapset.NewSet[chaintypes.HeightRange]()}
}

// NewAt returns a State resuming from committedTip, the height already
// durable in local storage at startup. This is the usual constructor for a
// running node: sync resumes above whatever height was last persisted, not
// from genesis.
func NewAt(committedTip chaintypes.BlockHeight) *State {
	s := New()
	s.committedTip = &committedTip
	return s
}

// Apply runs fn while holding the state's lock and returns whatever fn
// returns. fn must not block: no network calls, no channel receives, no
// further locking.
func Apply[T any](s *State, fn func(*State) T) T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s)
}

// ObservedTip returns the highest height any peer has claimed this session.
func (s *State) ObservedTip() (chaintypes.BlockHeight, bool) {
	if s.observedTip == nil {
		return 0, false
	}
	return *s.observedTip, true
}

// CommittedTip returns the highest height committed locally.
func (s *State) CommittedTip() (chaintypes.BlockHeight, bool) {
	if s.committedTip == nil {
		return 0, false
	}
	return *s.committedTip, true
}

// InProgress returns the range currently being drained, if any.
func (s *State) InProgress() (chaintypes.HeightRange, bool) {
	if s.inProgress == nil {
		return chaintypes.HeightRange{}, false
	}
	return *s.inProgress, true
}

// Failed returns the set of ranges that aborted this session. Retry policy
// for these belongs to the sync component, not this package.
func (s *State) Failed() []chaintypes.HeightRange {
	return s.failed.ToSlice()
}

// ObserveTip records the highest height some peer has advertised. It never
// lowers the observed tip.
func (s *State) ObserveTip(h chaintypes.BlockHeight) {
	if s.observedTip == nil || h > *s.observedTip {
		v := h
		s.observedTip = &v
	}
}

// ProcessRange returns Some((committedTip+1)..=observedTip) iff that
// interval is non-empty, recording it as InProgress. Otherwise it returns
// (zero, false) and leaves InProgress untouched.
func (s *State) ProcessRange() (chaintypes.HeightRange, bool) {
	if s.observedTip == nil {
		return chaintypes.HeightRange{}, false
	}
	var start chaintypes.BlockHeight
	if s.committedTip != nil {
		start = *s.committedTip + 1
	}
	end := *s.observedTip
	if start > end {
		return chaintypes.HeightRange{}, false
	}
	r := chaintypes.HeightRange{Start: start, End: end}
	s.inProgress = &r
	return r, true
}

// Commit advances the committed tip to h. h must be exactly one greater
// than the current committed tip (or the first height ever, i.e. 0) — the
// pipeline is responsible for only calling Commit in contiguous order; this
// method enforces it with a panic, since a violation is a programming error
// in the caller, not a recoverable runtime condition.
//
// Any failed range covering h has h cleared from it.
func (s *State) Commit(h chaintypes.BlockHeight) {
	if s.committedTip != nil && h != *s.committedTip+1 {
		panic(fmt.Sprintf("importstate: non-contiguous commit: committed_tip=%d, got %d", *s.committedTip, h))
	}
	if s.committedTip == nil && h != 0 {
		panic(fmt.Sprintf("importstate: non-contiguous first commit: got %d, want 0", h))
	}
	v := h
	s.committedTip = &v

	for _, r := range s.failed.ToSlice() {
		if h < r.Start || h > r.End {
			continue
		}
		s.failed.Remove(r)
		if h > r.Start {
			s.failed.Add(chaintypes.HeightRange{Start: r.Start, End: h - 1})
		}
		if h < r.End {
			s.failed.Add(chaintypes.HeightRange{Start: h + 1, End: r.End})
		}
	}
}

// FailedToProcess records r as failed. It never mutates the committed tip;
// retry is a decision for the sync component.
func (s *State) FailedToProcess(r chaintypes.HeightRange) {
	if r.Len() == 0 {
		return
	}
	s.failed.Add(r)
}
