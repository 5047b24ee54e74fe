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
	"time"

	log "github.com/inconshreveable/log15"

	"github.com/abeychain/blockimporter/chaintypes"
	"github.com/abeychain/blockimporter/importstate"
)

// commitStage is stage 3: strictly serial, in height order, at most one
// ExecuteAndCommit outstanding at a time. It stops at the first error or
// graceful None from upstream, or once shutdown fires, and reports how many
// blocks it committed.
func (im *Importer) commitStage(ctx context.Context, in <-chan stageResult[chaintypes.SealedBlock]) (int, error) {
	count := 0
	for res := range in {
		// Shutdown takes priority over a pending error: an upstream stage
		// can race its own cancellation-induced error against teardown, and
		// a cancellation is not a genuine failure (it must not surface as
		// one here).
		if shuttingDown(ctx) {
			log.Info("import stream shutting down before commit", "stage", "commit")
			return count, nil
		}
		if res.err != nil {
			commitErrMeter.Mark(1)
			return count, res.err
		}
		if !res.ok {
			return count, nil
		}

		height := res.value.Entity.Header.Height

		// execute_and_commit must run to completion once started: it is
		// never wrapped in a cancellation race, so it gets a context
		// detached from the pipeline's own cancellation.
		start := time.Now()
		err := im.executor.ExecuteAndCommit(context.WithoutCancel(ctx), res.value)
		commitTimer.UpdateSince(start)
		if err != nil {
			commitErrMeter.Mark(1)
			log.Error("execute_and_commit failed", "stage", "commit", "height", height, "outcome", "err", "err", err)
			return count, newError(KindExecutor, uint32(height), err)
		}

		importstate.Apply(im.state, func(s *importstate.State) struct{} {
			s.Commit(height)
			return struct{}{}
		})
		count++
		commitMeter.Mark(1)
		log.Debug("committed block", "stage", "commit", "height", height, "outcome", "ok")
	}
	return count, nil
}
