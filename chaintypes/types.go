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

// Package chaintypes holds the wire-level data model shared by the p2p,
// consensus and executor ports and the sync pipeline that drives them.
package chaintypes

import "fmt"

// BlockHeight is a chain height. Heights are dense and start at zero.
type BlockHeight uint32

// DaHeight is a watermark on the external data-availability layer.
type DaHeight uint64

// BlockID is a deterministic identifier derived from a block header.
type BlockID [32]byte

func (id BlockID) String() string {
	return fmt.Sprintf("%x", [32]byte(id))
}

// HeightRange is an inclusive range of block heights, [Start, End].
type HeightRange struct {
	Start BlockHeight
	End   BlockHeight
}

// Len returns the number of heights covered by the range.
func (r HeightRange) Len() uint32 {
	if r.End < r.Start {
		return 0
	}
	return uint32(r.End-r.Start) + 1
}

func (r HeightRange) String() string {
	return fmt.Sprintf("%d..=%d", r.Start, r.End)
}

// BlockHeader carries the minimum fields the pipeline needs to reason about a
// block before its transactions are known.
type BlockHeader struct {
	Height BlockHeight
	// DaHeight is the data-availability watermark the header requires before
	// its transactions can be trusted to be retrievable.
	DaHeight DaHeight
	// ApplicationHash is purely for observability; it is never interpreted.
	ApplicationHash [32]byte
}

// ID derives the block identifier for this header.
func (h BlockHeader) ID() BlockID {
	var id BlockID
	id[0] = byte(h.Height)
	id[1] = byte(h.Height >> 8)
	id[2] = byte(h.Height >> 16)
	id[3] = byte(h.Height >> 24)
	copy(id[4:], h.ApplicationHash[:])
	return id
}

// ConsensusSeal is the proposer/committee attestation bound to a header or
// block. Its internal shape is opaque to the importer; only the Consensus
// port interprets it.
type ConsensusSeal struct {
	Signature []byte
}

// SealedBlockHeader is a header bundled with its consensus seal.
type SealedBlockHeader struct {
	Entity    BlockHeader
	Consensus ConsensusSeal
}

// Transaction is an opaque, ordered unit of execution. The importer never
// inspects transaction contents; it only threads them from p2p to the
// executor.
type Transaction struct {
	Payload []byte
}

// Block is a header plus the ordered transaction list executed against it.
type Block struct {
	Header       BlockHeader
	Transactions []Transaction
}

// TryAssembleBlock builds a Block from a validated header and the
// transactions fetched for it. It returns false only when txs is nil; it
// does not check that the transactions belong to this header.
func TryAssembleBlock(header BlockHeader, txs []Transaction) (Block, bool) {
	if txs == nil {
		return Block{}, false
	}
	return Block{Header: header, Transactions: txs}, true
}

// SealedBlock is a fully assembled block plus its consensus seal.
type SealedBlock struct {
	Entity    Block
	Consensus ConsensusSeal
}

// SourcePeer tags a value with the peer that supplied it. The peer id is
// opaque to the core: it exists so the transport layer can bias follow-up
// requests toward the same peer and so it can attribute reputation.
type SourcePeer[T any] struct {
	PeerID string
	Data   T
}
