// This file is part of Motifplay.
//
// Motifplay is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Motifplay is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Motifplay.  If not, see <https://www.gnu.org/licenses/>.

package objective

import (
	"fmt"

	"github.com/motifplay/motifplay/curated"
)

// Progress returns the fraction of consecutive snapshot pairs in which the
// memory strictly advances under the ordering. Pairs that duplicate their
// predecessor are skipped, matching the miner's look list.
func Progress(memories [][]byte, order []int) float64 {
	var pairs, advanced int

	prev := -1
	for i := range memories {
		if i > 0 && bytesEqual(memories[i], memories[prev]) {
			continue
		}
		if prev >= 0 {
			pairs++
			if compare(memories[prev], memories[i], order) < 0 {
				advanced++
			}
		}
		prev = i
	}

	if pairs == 0 {
		return 0
	}
	return float64(advanced) / float64(pairs)
}

// MineWeighted mines the snapshot sequence for maximal orderings, both
// increasing and decreasing, and weights each by how often the sequence
// strictly advances under it. Orderings that never strictly advance are
// dropped.
func MineWeighted(memories [][]byte, limit int, seed int) (*WeightedObjectives, error) {
	miner, err := NewMiner(memories)
	if err != nil {
		return nil, err
	}

	weighted := NewWeighted()
	miner.EnumerateFullAllWithDecreasing(func(ordering []int) {
		if len(ordering) == 0 {
			return
		}
		weighted.Add(ordering, Progress(memories, ordering))
	}, limit, seed)

	if weighted.Size() == 0 {
		return nil, curated.Errorf(MinerError, fmt.Errorf("mining produced no objectives"))
	}

	return weighted, nil
}
