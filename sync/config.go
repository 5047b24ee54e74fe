// Copyright 2017 The go-ethereum Authors
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

// Config holds the tunables recognized by the importer.
type Config struct {
	// MaxGetHeaderRequests bounds outstanding stage-1 header fetches.
	MaxGetHeaderRequests int
	// MaxGetTxnsRequests bounds outstanding stage-2 transaction fetches.
	MaxGetTxnsRequests int
}

// DefaultConfig contains the default settings for the importer.
var DefaultConfig = Config{
	MaxGetHeaderRequests: 10,
	MaxGetTxnsRequests:   10,
}
