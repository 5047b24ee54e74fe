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

// Package sync implements the block synchronization importer: the pipeline
// that turns an inclusive range of block heights into a sequence of
// committed blocks, in strict height order, with bounded concurrency,
// backpressure and cooperative cancellation.
package sync

import (
	"context"

	log "github.com/inconshreveable/log15"

	"github.com/abeychain/blockimporter/chaintypes"
	"github.com/abeychain/blockimporter/importstate"
	"github.com/abeychain/blockimporter/ports"
)

// Importer wires the ports into a bounded-concurrency, order-preserving,
// cancellable pipeline and aggregates its result. One Importer runs one
// cycle at a time; a supervising loop calls RunOneCycle repeatedly.
type Importer struct {
	state     *importstate.State
	notify    *Notifier
	cfg       Config
	p2p       ports.PeerToPeer
	executor  ports.BlockImporter
	consensus ports.Consensus
}

// New builds an Importer over the given shared state, wake notifier,
// configuration and ports.
func New(state *importstate.State, notify *Notifier, cfg Config, p2p ports.PeerToPeer, executor ports.BlockImporter, consensus ports.Consensus) *Importer {
	return &Importer{
		state:     state,
		notify:    notify,
		cfg:       cfg,
		p2p:       p2p,
		executor:  executor,
		consensus: consensus,
	}
}

// NotifyOne wakes a cycle that is waiting at step 4 of RunOneCycle. Any
// number of calls before the wake is consumed coalesce into one.
func (im *Importer) NotifyOne() {
	im.notify.NotifyOne()
}

// RunOneCycle runs one importer cycle: drain whatever range is currently
// owed, then wait for either a wake notification or shutdown. The returned
// bool reports which one fired — true for notification, false for
// shutdown — and is only meaningful when err is nil.
func (im *Importer) RunOneCycle(ctx context.Context) (bool, error) {
	next := importstate.Apply(im.state, func(s *importstate.State) rangeOrNone {
		rng, ok := s.ProcessRange()
		return rangeOrNone{rng, ok}
	})
	if next.ok {
		r := next.r
		count, err := im.drainRange(ctx, r)
		rangeLen := r.Len()
		if uint32(count) < rangeLen {
			failed := chaintypes.HeightRange{Start: r.Start + chaintypes.BlockHeight(count), End: r.End}
			importstate.Apply(im.state, func(s *importstate.State) struct{} {
				s.FailedToProcess(failed)
				return struct{}{}
			})
			rangeFailedMeter.Mark(1)
			log.Error("failed to import range of blocks", "range", failed)
		}
		if err != nil {
			return false, err
		}
	}

	return im.notify.Wait(ctx), nil
}

type rangeOrNone struct {
	r  chaintypes.HeightRange
	ok bool
}

// drainRange fuses stages 1-3 over r and returns how many blocks were
// committed and the first error observed, if any. Cancelling the derived
// context (done once stage 3 stops, via defer) tears down any still-running
// stage 1/2 workers promptly — they are not needed once the commit stage has
// decided to stop.
func (im *Importer) drainRange(ctx context.Context, r chaintypes.HeightRange) (int, error) {
	stageCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	heights := heightStream(stageCtx, r)
	headers := mapOrdered(stageCtx, heights, im.cfg.MaxGetHeaderRequests, im.fetchHeader)
	blocks := mapOrdered(stageCtx, headers, im.cfg.MaxGetTxnsRequests, im.assembleBlock)

	return im.commitStage(ctx, blocks)
}
