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

// shuttingDown reports whether ctx has already been cancelled, without
// blocking. The commit stage checks it before every commit, and stage 2
// checks it before awaiting the DA height, so at those two points shutdown
// wins when both a result and shutdown are ready. The header and
// transaction fetches and the hand-off between stages do not check it; they
// see shutdown only through ctx, with no priority over a ready result.
func shuttingDown(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return true
	default:
		return false
	}
}
