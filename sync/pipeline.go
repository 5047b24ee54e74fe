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

import (
	"context"
	"errors"
	"time"

	log "github.com/inconshreveable/log15"
	"golang.org/x/sync/semaphore"

	"github.com/abeychain/blockimporter/chaintypes"
)

// stageResult is the Ok(Some)/Ok(None)/Err sum type each pipeline stage
// produces for one item: ok=false with err=nil means "no error, but nothing
// here" — e.g. a peer gap or a rejected seal; err != nil means the stage
// failed outright.
type stageResult[T any] struct {
	value T
	ok    bool
	err   error
}

func okResult[T any](v T) stageResult[T]  { return stageResult[T]{value: v, ok: true} }
func noneResult[T any]() stageResult[T]   { var z T; return stageResult[T]{value: z, ok: false} }
func errResult[T any](err error) stageResult[T] {
	var z T
	return stageResult[T]{value: z, err: err}
}

// closed reports whether this result ends the pipeline (an error, or a
// graceful None).
func (r stageResult[T]) closed() bool { return r.err != nil || !r.ok }

// heightStream emits every height in r, in order, as an Ok result, then
// closes. It closes early, without emitting the remainder, if ctx is
// cancelled.
func heightStream(ctx context.Context, r chaintypes.HeightRange) <-chan stageResult[chaintypes.BlockHeight] {
	out := make(chan stageResult[chaintypes.BlockHeight])
	go func() {
		defer close(out)
		n := r.Len()
		for i := uint32(0); i < n; i++ {
			h := r.Start + chaintypes.BlockHeight(i)
			select {
			case out <- okResult(h):
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}

// mapOrdered applies work to every item read from in, running up to
// concurrency calls at once, but releasing results downstream in the same
// order items were read — never completion order. It stops (without
// draining the rest of in) at the first result for which closed() is true,
// or when ctx is cancelled.
//
// This is an order-preserving bounded buffer: its critical path is bounded
// by the slowest in-window request, not by their sum, because up to
// `concurrency` calls to work overlap.
func mapOrdered[In, Out any](
	ctx context.Context,
	in <-chan stageResult[In],
	concurrency int,
	work func(context.Context, In) stageResult[Out],
) <-chan stageResult[Out] {
	sem := semaphore.NewWeighted(int64(concurrency))
	order := make(chan chan stageResult[Out], concurrency)
	out := make(chan stageResult[Out])

	go func() {
		defer close(order)
		for {
			select {
			case item, ok := <-in:
				if !ok {
					return
				}
				if err := sem.Acquire(ctx, 1); err != nil {
					return
				}
				slot := make(chan stageResult[Out], 1)
				select {
				case order <- slot:
				case <-ctx.Done():
					sem.Release(1)
					return
				}
				go func(item stageResult[In]) {
					defer sem.Release(1)
					if item.closed() {
						slot <- stageResult[Out]{err: item.err, ok: item.ok}
						return
					}
					slot <- work(ctx, item.value)
				}(item)
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		defer close(out)
		for slot := range order {
			select {
			case res := <-slot:
				select {
				case out <- res:
				case <-ctx.Done():
					return
				}
				if res.closed() {
					return
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	return out
}

// fetchHeader is stage 1: fetch and height-validate one sealed header.
func (im *Importer) fetchHeader(ctx context.Context, h chaintypes.BlockHeight) stageResult[chaintypes.SourcePeer[chaintypes.SealedBlockHeader]] {
	start := time.Now()
	header, ok, err := im.p2p.GetSealedBlockHeader(ctx, h)
	headerReqTimer.UpdateSince(start)
	if err != nil {
		headerErrMeter.Mark(1)
		log.Error("get_sealed_block_header failed", "stage", "header", "height", h, "outcome", "err", "err", err)
		return errResult[chaintypes.SourcePeer[chaintypes.SealedBlockHeader]](newError(KindTransport, uint32(h), err))
	}
	if !ok {
		headerDropMeter.Mark(1)
		log.Warn("no peer supplied a header", "stage", "header", "height", h, "outcome", "none")
		return noneResult[chaintypes.SourcePeer[chaintypes.SealedBlockHeader]]()
	}
	if header.Data.Entity.Height != h {
		headerDropMeter.Mark(1)
		log.Warn("header height mismatch, dropping", "stage", "header", "height", h, "got", header.Data.Entity.Height, "peer", header.PeerID, "outcome", "none")
		return noneResult[chaintypes.SourcePeer[chaintypes.SealedBlockHeader]]()
	}
	headerInMeter.Mark(1)
	log.Debug("fetched header", "stage", "header", "height", h, "peer", header.PeerID, "outcome", "ok")
	return okResult(*header)
}

// assembleBlock is stage 2: verify the seal, await data availability, fetch
// transactions and assemble a sealed block.
func (im *Importer) assembleBlock(ctx context.Context, header chaintypes.SourcePeer[chaintypes.SealedBlockHeader]) stageResult[chaintypes.SealedBlock] {
	h := header.Data.Entity.Height

	valid, err := im.consensus.CheckSealedHeader(ctx, &header.Data)
	if err != nil {
		blockErrMeter.Mark(1)
		log.Error("check_sealed_header failed", "stage", "block", "height", h, "outcome", "err", "err", err)
		return errResult[chaintypes.SealedBlock](newError(KindConsensusEvaluator, uint32(h), err))
	}
	if !valid {
		blockDropMeter.Mark(1)
		log.Warn("header failed consensus check", "stage", "block", "height", h, "peer", header.PeerID, "outcome", "none")
		return noneResult[chaintypes.SealedBlock]()
	}

	if shuttingDown(ctx) {
		return noneResult[chaintypes.SealedBlock]()
	}
	if err := im.consensus.AwaitDaHeight(ctx, header.Data.Entity.DaHeight); err != nil {
		if shuttingDown(ctx) || errors.Is(err, context.Canceled) {
			log.Warn("await_da_height interrupted by shutdown", "stage", "block", "height", h, "outcome", "none")
			return noneResult[chaintypes.SealedBlock]()
		}
		blockErrMeter.Mark(1)
		log.Error("await_da_height failed", "stage", "block", "height", h, "outcome", "err", "err", err)
		return errResult[chaintypes.SealedBlock](newError(KindConsensusEvaluator, uint32(h), err))
	}

	blockID := chaintypes.SourcePeer[chaintypes.BlockID]{
		PeerID: header.PeerID,
		Data:   header.Data.Entity.ID(),
	}
	start := time.Now()
	txs, ok, err := im.p2p.GetTransactions(ctx, blockID)
	blockReqTimer.UpdateSince(start)
	if err != nil {
		blockErrMeter.Mark(1)
		log.Error("get_transactions failed", "stage", "block", "height", h, "peer", header.PeerID, "outcome", "err", "err", err)
		return errResult[chaintypes.SealedBlock](newError(KindTransport, uint32(h), err))
	}
	if !ok {
		blockDropMeter.Mark(1)
		log.Warn("peer had no transactions for block", "stage", "block", "height", h, "peer", header.PeerID, "outcome", "none")
		return noneResult[chaintypes.SealedBlock]()
	}

	block, ok := chaintypes.TryAssembleBlock(header.Data.Entity, txs)
	if !ok {
		blockDropMeter.Mark(1)
		log.Warn("block assembly rejected transactions", "stage", "block", "height", h, "outcome", "none")
		return noneResult[chaintypes.SealedBlock]()
	}
	blockInMeter.Mark(1)
	log.Debug("assembled block", "stage", "block", "height", h, "outcome", "ok")
	return okResult(chaintypes.SealedBlock{Entity: block, Consensus: header.Data.Consensus})
}
