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
	"sync"

	"github.com/abeychain/blockimporter/chaintypes"
)

// fakeP2P is an in-memory test double for the PeerToPeer port: a map of
// heights to headers/transactions, with knobs for missing data, transport
// errors, and height mismatches.
type fakeP2P struct {
	mu sync.Mutex

	headers map[chaintypes.BlockHeight]chaintypes.SourcePeer[chaintypes.SealedBlockHeader]
	txs     map[chaintypes.BlockHeight][]chaintypes.Transaction

	missingHeaders map[chaintypes.BlockHeight]bool
	missingTxs     map[chaintypes.BlockHeight]bool
	errorHeaders   map[chaintypes.BlockHeight]error
	errorTxs       map[chaintypes.BlockHeight]error
	mismatchAt     map[chaintypes.BlockHeight]chaintypes.BlockHeight // height -> height actually reported
}

func newFakeP2P() *fakeP2P {
	return &fakeP2P{
		headers:        make(map[chaintypes.BlockHeight]chaintypes.SourcePeer[chaintypes.SealedBlockHeader]),
		txs:            make(map[chaintypes.BlockHeight][]chaintypes.Transaction),
		missingHeaders: make(map[chaintypes.BlockHeight]bool),
		missingTxs:     make(map[chaintypes.BlockHeight]bool),
		errorHeaders:   make(map[chaintypes.BlockHeight]error),
		errorTxs:       make(map[chaintypes.BlockHeight]error),
		mismatchAt:     make(map[chaintypes.BlockHeight]chaintypes.BlockHeight),
	}
}

// addHeight registers a valid header and a single transaction for h, from
// peer "peer".
func (f *fakeP2P) addHeight(h chaintypes.BlockHeight) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.headers[h] = chaintypes.SourcePeer[chaintypes.SealedBlockHeader]{
		PeerID: "peer",
		Data: chaintypes.SealedBlockHeader{
			Entity: chaintypes.BlockHeader{Height: h, DaHeight: chaintypes.DaHeight(h)},
		},
	}
	f.txs[h] = []chaintypes.Transaction{{Payload: []byte{byte(h)}}}
}

func (f *fakeP2P) GetSealedBlockHeader(_ context.Context, h chaintypes.BlockHeight) (*chaintypes.SourcePeer[chaintypes.SealedBlockHeader], bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err, ok := f.errorHeaders[h]; ok {
		return nil, false, err
	}
	if f.missingHeaders[h] {
		return nil, false, nil
	}
	header, ok := f.headers[h]
	if !ok {
		return nil, false, nil
	}
	if reported, ok := f.mismatchAt[h]; ok {
		header.Data.Entity.Height = reported
	}
	return &header, true, nil
}

func (f *fakeP2P) GetTransactions(_ context.Context, block chaintypes.SourcePeer[chaintypes.BlockID]) ([]chaintypes.Transaction, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	h := heightFromBlockID(block.Data)
	if err, ok := f.errorTxs[h]; ok {
		return nil, false, err
	}
	if f.missingTxs[h] {
		return nil, false, nil
	}
	txs, ok := f.txs[h]
	if !ok {
		return nil, false, nil
	}
	return txs, true, nil
}

// heightFromBlockID inverts BlockHeader.ID for the fake: the id's first
// four bytes are the little-endian height, exactly as BlockHeader.ID embeds
// it.
func heightFromBlockID(id chaintypes.BlockID) chaintypes.BlockHeight {
	return chaintypes.BlockHeight(id[0]) | chaintypes.BlockHeight(id[1])<<8 | chaintypes.BlockHeight(id[2])<<16 | chaintypes.BlockHeight(id[3])<<24
}

// fakeConsensus is a test double for the Consensus port.
type fakeConsensus struct {
	mu sync.Mutex

	invalid      map[chaintypes.BlockHeight]bool
	errAt        map[chaintypes.BlockHeight]error
	daErrAt      map[chaintypes.DaHeight]error
	blockForever map[chaintypes.DaHeight]bool
}

func newFakeConsensus() *fakeConsensus {
	return &fakeConsensus{
		invalid:      make(map[chaintypes.BlockHeight]bool),
		errAt:        make(map[chaintypes.BlockHeight]error),
		daErrAt:      make(map[chaintypes.DaHeight]error),
		blockForever: make(map[chaintypes.DaHeight]bool),
	}
}

func (c *fakeConsensus) CheckSealedHeader(_ context.Context, header *chaintypes.SealedBlockHeader) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	h := header.Entity.Height
	if err, ok := c.errAt[h]; ok {
		return false, err
	}
	return !c.invalid[h], nil
}

func (c *fakeConsensus) AwaitDaHeight(ctx context.Context, da chaintypes.DaHeight) error {
	c.mu.Lock()
	block := c.blockForever[da]
	err := c.daErrAt[da]
	c.mu.Unlock()
	if block {
		<-ctx.Done()
		return ctx.Err()
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}
	return err
}

// fakeExecutor is a test double for the BlockImporter port.
type fakeExecutor struct {
	mu        sync.Mutex
	committed []chaintypes.BlockHeight
	failAt    map[chaintypes.BlockHeight]error
	onExecute func(h chaintypes.BlockHeight)
}

func newFakeExecutor() *fakeExecutor {
	return &fakeExecutor{failAt: make(map[chaintypes.BlockHeight]error)}
}

func (e *fakeExecutor) ExecuteAndCommit(_ context.Context, block chaintypes.SealedBlock) error {
	h := block.Entity.Header.Height
	if e.onExecute != nil {
		e.onExecute(h)
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if err, ok := e.failAt[h]; ok {
		return err
	}
	e.committed = append(e.committed, h)
	return nil
}
