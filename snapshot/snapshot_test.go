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

package snapshot_test

import (
	"math/rand"
	"testing"

	"github.com/motifplay/motifplay/snapshot"
	"github.com/motifplay/motifplay/test"
)

func roundTrip(t *testing.T, state []byte, basis []byte) {
	t.Helper()

	compressed := snapshot.Compress(state, basis)
	test.ExpectEquality(t, snapshot.UncompressedLen(compressed), len(state))

	restored := snapshot.Decompress(compressed, basis)
	test.DemandEquality(t, len(restored), len(state))
	for i := range restored {
		if restored[i] != state[i] {
			t.Fatalf("round trip mismatch at byte %d", i)
		}
	}
}

func TestRoundTripFuzz(t *testing.T) {
	// fixed seed keeps failures reproducible
	rnd := rand.New(rand.NewSource(1))

	for n := 0; n < 1000; n++ {
		state := make([]byte, 4096)
		basis := make([]byte, 4096)
		rnd.Read(state)
		rnd.Read(basis)
		roundTrip(t, state, basis)
	}
}

func TestRoundTripEmptyBasis(t *testing.T) {
	state := make([]byte, 4096)
	rand.New(rand.NewSource(2)).Read(state)

	roundTrip(t, state, nil)
	roundTrip(t, state, []byte{})
}

func TestRoundTripShortBasis(t *testing.T) {
	// differencing covers only the overlap
	state := make([]byte, 4096)
	basis := make([]byte, 100)
	rnd := rand.New(rand.NewSource(3))
	rnd.Read(state)
	rnd.Read(basis)

	roundTrip(t, state, basis)
}

func TestRoundTripLongBasis(t *testing.T) {
	state := make([]byte, 100)
	basis := make([]byte, 4096)
	rnd := rand.New(rand.NewSource(4))
	rnd.Read(state)
	rnd.Read(basis)

	roundTrip(t, state, basis)
}

func TestRoundTripEmptyState(t *testing.T) {
	roundTrip(t, []byte{}, nil)
}

func TestBasisImprovesCompression(t *testing.T) {
	// a state near its basis should compress far better with differencing
	// than without
	state := make([]byte, 4096)
	rand.New(rand.NewSource(5)).Read(state)

	near := make([]byte, len(state))
	copy(near, state)
	near[100]++
	near[2000] += 3

	with := snapshot.Compress(near, state)
	without := snapshot.Compress(near, nil)
	test.ExpectSuccess(t, len(with) < len(without))
}

func TestDecompressCorruptIsFatal(t *testing.T) {
	defer func() {
		test.ExpectSuccess(t, recover() != nil)
	}()
	snapshot.Decompress([]byte{0x10, 0x00, 0x00, 0x00, 0xde, 0xad, 0xbe, 0xef}, nil)
}
