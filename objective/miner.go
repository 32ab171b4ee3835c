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

// sentinel errors returned by functions in the objective package.
const (
	MinerError = "miner: %v"
)

// Miner enumerates orderings of memory indices under which a recorded
// sequence of memory snapshots is monotonically non-decreasing.
//
// An ordering is a list of distinct indices into a snapshot. Snapshot a is
// at-most snapshot b under an ordering if, reading the bytes at the listed
// indices in order, a compares lexicographically less than or equal to b.
// Only maximal orderings are yielded: appending any further index to a
// yielded ordering would break the at-most relation for some consecutive
// snapshot pair.
type Miner struct {
	memories [][]byte
}

// NewMiner is the preferred method of initialisation for the Miner type.
// All snapshots must be the same non-zero length.
func NewMiner(memories [][]byte) (*Miner, error) {
	if len(memories) == 0 {
		return nil, curated.Errorf(MinerError, fmt.Errorf("no memories"))
	}
	if len(memories[0]) == 0 {
		return nil, curated.Errorf(MinerError, fmt.Errorf("empty memory"))
	}
	for i := 1; i < len(memories); i++ {
		if len(memories[i]) != len(memories[0]) {
			return nil, curated.Errorf(MinerError,
				fmt.Errorf("memory %d has length %d, want %d", i, len(memories[i]), len(memories[0])))
		}
	}

	return &Miner{memories: memories}, nil
}

func equalOnPrefix(mem1 []byte, mem2 []byte, prefix []int) bool {
	for _, p := range prefix {
		if mem1[p] != mem2[p] {
			return false
		}
	}
	return true
}

func lessEqual(mem1 []byte, mem2 []byte, order []int) bool {
	for _, p := range order {
		if mem1[p] > mem2[p] {
			return false
		}
		if mem1[p] < mem2[p] {
			return true
		}
	}
	return true
}

// enumeratePartial splits left into the candidate extensions of prefix and
// the indices that may still become candidates deeper in the tree.
//
// For c to be a candidate there must be a consecutive pair in look, equal on
// the prefix, where the byte at c strictly increases, and no pair equal on
// the prefix where it decreases. A decrease only disqualifies while the pair
// is equal on the prefix, and deeper prefixes have fewer equal pairs, so a
// decreasing index stays in remain. An index that never changes on any equal
// pair is uninteresting at every deeper node and is dropped outright.
func (o *Miner) enumeratePartial(look []int, prefix []int, left []int) (candidates []int, remain []int) {
	// consecutive pairs in look that are equal on the prefix
	lequal := make([]int, 0, len(look)-1)
	for lo := 0; lo < len(look)-1; lo++ {
		i, j := look[lo], look[lo+1]
		if equalOnPrefix(o.memories[i], o.memories[j], prefix) {
			lequal = append(lequal, lo)
		}
	}

next:
	for _, c := range left {
		// indices already in the prefix are always equal on the prefix and
		// would be filtered below, but skipping them here is clearer
		for _, p := range prefix {
			if p == c {
				continue next
			}
		}

		less := false
		for _, lo := range lequal {
			i, j := look[lo], look[lo+1]
			if o.memories[i][c] > o.memories[j][c] {
				// not a candidate here, but may become one deeper
				remain = append(remain, c)
				continue next
			}
			less = less || o.memories[i][c] < o.memories[j][c]
		}

		if less {
			candidates = append(candidates, c)
			remain = append(remain, c)
		}
		// always equal: filtered, can never become interesting
	}

	return candidates, remain
}

// crapHash is the per-index mixing hash used to order candidates when a
// non-zero seed is given. It has no semantic weight; it only needs to be
// deterministic and well distributed.
func crapHash(a int, seed uint64) uint64 {
	ret := ^uint64(a)
	for i := 0; i < (a&3)+1; i++ {
		shift := uint(i & 63)
		ret = (ret >> shift) | (ret << ((64 - shift) & 63))
		ret *= 31337
		ret += (seed << 7) | (seed >> (64 - 7))
		ret ^= 0xDEADBEEF
		ret = (ret >> 17) | (ret << (64 - 17))
		ret -= 911911911911
		ret *= 65537
		ret ^= 0xCAFEBABE
	}
	return ret
}

func shuffleByHash(v []int, seed int) {
	// insertion sort by hash value. candidate lists are short and the sort
	// must be deterministic
	for i := 1; i < len(v); i++ {
		for j := i; j > 0 && crapHash(v[j], uint64(seed)) < crapHash(v[j-1], uint64(seed)); j-- {
			v[j], v[j-1] = v[j-1], v[j]
		}
	}
}

func (o *Miner) enumeratePartialRec(look []int, prefix *[]int, left []int,
	emit func(ordering []int), limit *int, seed int) {

	candidates, remain := o.enumeratePartial(look, *prefix, left)

	if seed != 0 {
		seed += *limit + len(*prefix)
		if len(look) > 0 {
			seed += look[0] << 3
		}
		seed ^= len(look)
		shuffleByHash(candidates, seed)
	}

	// a maximal prefix is output. anything else is extended
	if len(candidates) == 0 {
		if *limit == 0 {
			return
		}
		o.checkOrdering(look, *prefix)
		out := make([]int, len(*prefix))
		copy(out, *prefix)
		emit(out)
		if *limit > 0 {
			*limit--
		}
		return
	}

	*prefix = append(*prefix, 0)
	for _, c := range candidates {
		(*prefix)[len(*prefix)-1] = c
		o.enumeratePartialRec(look, prefix, remain, emit, limit, seed)
		if *limit == 0 {
			*prefix = (*prefix)[:len(*prefix)-1]
			return
		}
	}
	*prefix = (*prefix)[:len(*prefix)-1]
}

// EnumerateFull yields every maximal ordering for the snapshot pairs named
// by look. The limit is the maximum number of orderings to yield; a
// negative limit means no limit. A non-zero seed randomises the order in
// which the tree is explored (deterministically for a given seed).
func (o *Miner) EnumerateFull(look []int, emit func(ordering []int), limit int, seed int) {
	prefix := make([]int, 0)
	left := make([]int, len(o.memories[0]))
	for i := range left {
		left[i] = i
	}
	o.enumeratePartialRec(look, &prefix, left, emit, &limit, seed)
}

// look returns the snapshot indices to consider, with snapshots that
// exactly duplicate their predecessor dropped.
func (o *Miner) look() []int {
	look := make([]int, 0, len(o.memories))
	for i := range o.memories {
		if i > 0 && bytesEqual(o.memories[i], o.memories[i-1]) {
			continue
		}
		look = append(look, i)
	}
	return look
}

func bytesEqual(a []byte, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// EnumerateFullAll yields every maximal ordering over the whole snapshot
// sequence, after duplicate suppression.
func (o *Miner) EnumerateFullAll(emit func(ordering []int), limit int, seed int) {
	o.EnumerateFull(o.look(), emit, limit, seed)
}

// EnumerateFullAllWithDecreasing splits the limit in half: the first half
// of the budget yields orderings of the snapshot sequence as recorded; the
// second half yields orderings of the complemented sequence (each byte b
// replaced with 255-b), which correspond to monotonically non-increasing
// progressions in the original. Indices of a decreasing ordering are
// reported as -(i+1) so that index 0 is representable in both directions.
func (o *Miner) EnumerateFullAllWithDecreasing(emit func(ordering []int), limit int, seed int) {
	halfLimit := -1
	if limit >= 0 {
		halfLimit = limit / 2
	}
	o.EnumerateFullAll(emit, halfLimit, seed)

	inverted := make([][]byte, len(o.memories))
	for i := range o.memories {
		inv := make([]byte, len(o.memories[i]))
		for j := range o.memories[i] {
			inv[j] = 255 - o.memories[i][j]
		}
		inverted[i] = inv
	}

	// the inverted sequence has the same length profile so NewMiner cannot
	// fail here
	invMiner, _ := NewMiner(inverted)

	remaining := -1
	if limit >= 0 {
		remaining = limit - halfLimit
	}

	invSeed := seed
	if seed != 0 {
		invSeed = seed + 12345
	}

	invMiner.EnumerateFullAll(func(ordering []int) {
		negated := make([]int, len(ordering))
		for i, idx := range ordering {
			negated[i] = -(idx + 1)
		}
		emit(negated)
	}, remaining, invSeed)
}

// checkOrdering verifies the at-most relation for a yielded ordering over
// every consecutive pair in look. An objective set that violates it would
// silently corrupt play, so a violation is fatal.
func (o *Miner) checkOrdering(look []int, ordering []int) {
	for lo := 0; lo < len(look)-1; lo++ {
		i, j := look[lo], look[lo+1]
		if !lessEqual(o.memories[i], o.memories[j], ordering) {
			panic(fmt.Sprintf("miner: ordering %v violated at memories #%d and #%d", ordering, i, j))
		}
	}
}
