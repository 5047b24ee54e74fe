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

// Contains the metrics collected by the importer.

package sync

import (
	metrics "github.com/rcrowley/go-metrics"
)

var (
	headerInMeter   = metrics.NewRegisteredMeter("sync/importer/headers/in", nil)
	headerDropMeter = metrics.NewRegisteredMeter("sync/importer/headers/drop", nil)
	headerErrMeter  = metrics.NewRegisteredMeter("sync/importer/headers/err", nil)
	headerReqTimer  = metrics.NewRegisteredTimer("sync/importer/headers/req", nil)

	blockInMeter   = metrics.NewRegisteredMeter("sync/importer/blocks/in", nil)
	blockDropMeter = metrics.NewRegisteredMeter("sync/importer/blocks/drop", nil)
	blockErrMeter  = metrics.NewRegisteredMeter("sync/importer/blocks/err", nil)
	blockReqTimer  = metrics.NewRegisteredTimer("sync/importer/blocks/req", nil)

	commitMeter      = metrics.NewRegisteredMeter("sync/importer/commits/ok", nil)
	commitErrMeter   = metrics.NewRegisteredMeter("sync/importer/commits/err", nil)
	commitTimer      = metrics.NewRegisteredTimer("sync/importer/commits/req", nil)
	rangeFailedMeter = metrics.NewRegisteredMeter("sync/importer/ranges/failed", nil)
)
