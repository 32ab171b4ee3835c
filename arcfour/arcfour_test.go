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

package arcfour_test

import (
	"testing"

	"github.com/motifplay/motifplay/arcfour"
	"github.com/motifplay/motifplay/test"
)

func TestDeterminism(t *testing.T) {
	a := arcfour.New("motifplay")
	b := arcfour.New("motifplay")

	for i := 0; i < 1000; i++ {
		test.ExpectEquality(t, a.Byte(), b.Byte())
	}

	// a different key diverges almost immediately. check a run of bytes
	// rather than a single byte, which has a 1 in 256 chance of matching
	c := arcfour.New("different")
	d := arcfour.New("motifplay")
	same := true
	for i := 0; i < 16; i++ {
		same = same && c.Byte() == d.Byte()
	}
	test.ExpectFailure(t, same)
}

func TestIntn(t *testing.T) {
	rc := arcfour.New("motifplay")
	for i := 0; i < 1000; i++ {
		v := rc.Intn(10)
		test.ExpectSuccess(t, v >= 0 && v < 10)
	}

	test.ExpectEquality(t, rc.Intn(0), 0)
	test.ExpectEquality(t, rc.Intn(-5), 0)
	test.ExpectEquality(t, rc.Intn(1), 0)
}

func TestShuffle(t *testing.T) {
	a := []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}
	b := []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}

	arcfour.Shuffle(arcfour.New("motifplay"), a)
	arcfour.Shuffle(arcfour.New("motifplay"), b)

	// same key, same permutation
	test.DemandEquality(t, len(a), len(b))
	for i := range a {
		test.ExpectEquality(t, a[i], b[i])
	}

	// shuffling must preserve the elements
	var seen [10]bool
	for _, v := range a {
		seen[v] = true
	}
	for i := range seen {
		test.ExpectSuccess(t, seen[i])
	}
}

func TestFloat64(t *testing.T) {
	rc := arcfour.New("motifplay")
	for i := 0; i < 1000; i++ {
		f := rc.Float64()
		test.ExpectSuccess(t, f >= 0.0 && f < 1.0)
	}
}
