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
	"fmt"

	"github.com/pkg/errors"
)

// Kind classifies the origin of an Error so callers can switch on failure
// class without string matching.
type Kind int

const (
	// KindTransport is a p2p transport failure. Recoverable across cycles.
	KindTransport Kind = iota
	// KindConsensusEvaluator is a failure of the consensus port's own
	// machinery, as opposed to a negative (but valid) seal check.
	KindConsensusEvaluator
	// KindExecutor is a failure to execute or commit a block.
	KindExecutor
	// KindInternal classifies internal task-plumbing failures. No code path
	// in this package produces it, and worker goroutine panics are not
	// recovered.
	KindInternal
)

func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindConsensusEvaluator:
		return "consensus_evaluator"
	case KindExecutor:
		return "executor"
	case KindInternal:
		return "internal"
	default:
		return "unknown"
	}
}

// Error is the error type surfaced by this package. It carries a Kind and
// the height it was observed at, and wraps its cause with a stack trace via
// github.com/pkg/errors.
type Error struct {
	Kind   Kind
	Height uint32
	cause  error
}

func newError(kind Kind, height uint32, cause error) *Error {
	return &Error{Kind: kind, Height: height, cause: errors.WithStack(cause)}
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s at height %d: %v", e.Kind, e.Height, e.cause)
}

func (e *Error) Unwrap() error { return e.cause }

// Cause supports github.com/pkg/errors.Cause.
func (e *Error) Cause() error { return e.cause }

// InvalidHeader is not a Kind: a false seal check, a height mismatch, or a
// refused block assembly is treated as "missing", not errored — the
// pipeline emits none at that height rather than surfacing this as an
// *Error.
