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

// Package ports declares the abstract contracts the sync pipeline consumes:
// the p2p transport, the consensus evaluator and the executor/storage
// engine. All three are external collaborators implemented elsewhere; the
// pipeline only depends on these interfaces. Implementations must be safe
// for concurrent use — the pipeline shares one handle to each port across
// every in-flight request.
package ports

import (
	"context"

	"github.com/abeychain/blockimporter/chaintypes"
)

// PeerToPeer is the network transport port.
type PeerToPeer interface {
	// GetSealedBlockHeader fetches the sealed header at height from some
	// connected peer. It returns (nil, false, nil) if no peer supplied one,
	// and a non-nil error on transport failure.
	GetSealedBlockHeader(ctx context.Context, height chaintypes.BlockHeight) (*chaintypes.SourcePeer[chaintypes.SealedBlockHeader], bool, error)

	// GetTransactions fetches the transactions for the given block,
	// preferably from the peer that supplied the header. It returns
	// (nil, false, nil) if that peer had no such block.
	GetTransactions(ctx context.Context, block chaintypes.SourcePeer[chaintypes.BlockID]) ([]chaintypes.Transaction, bool, error)
}

// Consensus is the consensus-rule evaluator port.
type Consensus interface {
	// CheckSealedHeader reports whether the header's seal is valid under
	// current consensus rules. A false result is not an error — it means
	// the header is not admissible.
	CheckSealedHeader(ctx context.Context, header *chaintypes.SealedBlockHeader) (bool, error)

	// AwaitDaHeight suspends until the node has observed the external
	// data-availability layer at least to da. It must honor ctx
	// cancellation.
	AwaitDaHeight(ctx context.Context, da chaintypes.DaHeight) error
}

// BlockImporter is the executor/storage port.
type BlockImporter interface {
	// ExecuteAndCommit atomically executes block and persists the result.
	// Success is required before the caller may advance its committed tip;
	// failure must leave local state unchanged with respect to this block.
	ExecuteAndCommit(ctx context.Context, block chaintypes.SealedBlock) error
}
