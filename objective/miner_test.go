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
	"testing"

	"github.com/motifplay/motifplay/test"
)

// collect every non-empty ordering yielded by an enumeration
func collect(enumerate func(emit func([]int), limit int, seed int)) [][]int {
	collected := make([][]int, 0)
	enumerate(func(ordering []int) {
		if len(ordering) > 0 {
			collected = append(collected, ordering)
		}
	}, -1, 0)
	return collected
}

func ordersEqual(a []int, b []int) bool {
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

func containsOrder(orders [][]int, want []int) bool {
	for _, o := range orders {
		if ordersEqual(o, want) {
			return true
		}
	}
	return false
}

func TestHandcraftedTrajectory(t *testing.T) {
	memories := [][]byte{
		{0, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 1, 0, 1},
		{0, 1, 1, 1},
	}

	miner, err := NewMiner(memories)
	test.DemandSuccess(t, err)

	orders := collect(miner.EnumerateFullAll)
	test.ExpectSuccess(t, len(orders) > 0)

	// index 0 never increases so it must never appear
	for _, o := range orders {
		for _, idx := range o {
			test.ExpectInequality(t, idx, 0)
		}
	}

	// the expected ordering is among the yields
	test.ExpectSuccess(t, containsOrder(orders, []int{1, 3, 2}))

	// every yield satisfies the at-most relation over every consecutive
	// pair. checkOrdering inside the enumeration panics on violation; this
	// restates the property against the public comparison
	for _, o := range orders {
		for i := 0; i < len(memories)-1; i++ {
			test.ExpectSuccess(t, lessEqual(memories[i], memories[i+1], o))
		}
	}
}

func TestMaximality(t *testing.T) {
	memories := [][]byte{
		{0, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 1, 0, 1},
		{0, 1, 1, 1},
	}

	miner, err := NewMiner(memories)
	test.DemandSuccess(t, err)

	// appending any index that strictly changes somewhere must break
	// soundness for some consecutive pair (an always-equal index like 0 is
	// uninteresting rather than violating)
	for _, o := range collect(miner.EnumerateFullAll) {
		for c := 1; c < 4; c++ {
			inPrefix := false
			for _, idx := range o {
				if idx == c {
					inPrefix = true
				}
			}
			if inPrefix {
				continue
			}

			extended := append(append([]int{}, o...), c)
			sound := true
			for i := 0; i < len(memories)-1; i++ {
				sound = sound && lessEqual(memories[i], memories[i+1], extended)
			}
			test.ExpectFailure(t, sound)
		}
	}
}

func TestDuplicateSuppression(t *testing.T) {
	base := [][]byte{
		{0, 0}, {0, 1}, {1, 1},
	}
	duplicated := [][]byte{
		{0, 0}, {0, 1}, {0, 1}, {1, 1},
	}

	m1, err := NewMiner(base)
	test.DemandSuccess(t, err)
	m2, err := NewMiner(duplicated)
	test.DemandSuccess(t, err)

	a := collect(m1.EnumerateFullAll)
	b := collect(m2.EnumerateFullAll)

	test.DemandEquality(t, len(a), len(b))
	for i := range a {
		test.ExpectSuccess(t, ordersEqual(a[i], b[i]))
	}
}

func TestDecreasing(t *testing.T) {
	// a single byte counting down. the increasing sweep finds nothing; the
	// decreasing sweep finds index 0, reported as -1
	memories := [][]byte{{3}, {2}, {1}}

	miner, err := NewMiner(memories)
	test.DemandSuccess(t, err)

	orders := collect(miner.EnumerateFullAllWithDecreasing)
	test.DemandEquality(t, len(orders), 1)
	test.ExpectSuccess(t, ordersEqual(orders[0], []int{-1}))
}

func TestYieldLimit(t *testing.T) {
	// a trajectory with many maximal orderings
	memories := [][]byte{
		{0, 0, 0, 0, 0, 0},
		{1, 1, 1, 1, 1, 1},
		{2, 2, 2, 2, 2, 2},
	}

	miner, err := NewMiner(memories)
	test.DemandSuccess(t, err)

	count := 0
	miner.EnumerateFullAll(func(ordering []int) {
		count++
	}, 5, 0)
	test.ExpectEquality(t, count, 5)
}

func TestSeedDeterminism(t *testing.T) {
	memories := [][]byte{
		{0, 0, 0},
		{1, 0, 1},
		{2, 1, 1},
	}

	run := func(seed int) [][]int {
		miner, err := NewMiner(memories)
		test.DemandSuccess(t, err)

		collected := make([][]int, 0)
		miner.EnumerateFullAll(func(ordering []int) {
			collected = append(collected, ordering)
		}, -1, seed)
		return collected
	}

	a := run(99)
	b := run(99)
	test.DemandEquality(t, len(a), len(b))
	for i := range a {
		test.ExpectSuccess(t, ordersEqual(a[i], b[i]))
	}
}

func TestBadInput(t *testing.T) {
	_, err := NewMiner(nil)
	test.ExpectFailure(t, err)

	_, err = NewMiner([][]byte{{}})
	test.ExpectFailure(t, err)

	_, err = NewMiner([][]byte{{0, 0}, {0}})
	test.ExpectFailure(t, err)
}
