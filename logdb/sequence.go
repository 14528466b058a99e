// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package logdb

import "math"

const indexBits = 31

// sequence is the primary key of event and transfer rows. The block number takes the high
// bits and the position of the record within its block the low 31 bits, so rows sort by
// block first.
type sequence int64

func newSequence(blockNum uint32, index uint32) sequence {
	if index > math.MaxInt32 {
		panic("logdb: record index overflows sequence")
	}
	return sequence(blockNum)<<indexBits | sequence(index)
}

// blockBounds returns the first and last sequence a block can hold.
func blockBounds(blockNum uint32) (first, last sequence) {
	return newSequence(blockNum, 0), newSequence(blockNum, math.MaxInt32)
}

func (s sequence) BlockNumber() uint32 {
	return uint32(s >> indexBits)
}

func (s sequence) Index() uint32 {
	return uint32(s & math.MaxInt32)
}
