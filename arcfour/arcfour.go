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

// Package arcfour provides a deterministic stream of pseudo-random bytes:
// the RC4 keystream for a caller-supplied key, with the first 1024 bytes
// discarded. Two instances created with the same key produce the same
// sequence on any platform, which is what makes played movies
// reproducible.
//
// The stream drives shuffling and weighted sampling only. Nothing about
// emulation determinism depends on it, and nothing about it is
// cryptographic.
package arcfour

// the number of initial keystream bytes thrown away. the early RC4 stream
// is biased towards the key
const discard = 1024

// ArcFour is a deterministic byte stream.
type ArcFour struct {
	s    [256]byte
	i, j byte
}

// New is the preferred method of initialisation for the ArcFour type. Any
// key string works; an empty key is treated as a single zero byte.
func New(key string) *ArcFour {
	k := []byte(key)
	if len(k) == 0 {
		k = []byte{0}
	}

	rc := &ArcFour{}
	for i := range rc.s {
		rc.s[i] = byte(i)
	}

	var j byte
	for i := 0; i < 256; i++ {
		j += rc.s[i] + k[i%len(k)]
		rc.s[i], rc.s[j] = rc.s[j], rc.s[i]
	}

	for i := 0; i < discard; i++ {
		rc.Byte()
	}

	return rc
}

// Byte returns the next byte in the stream.
func (rc *ArcFour) Byte() byte {
	rc.i++
	rc.j += rc.s[rc.i]
	rc.s[rc.i], rc.s[rc.j] = rc.s[rc.j], rc.s[rc.i]
	return rc.s[rc.s[rc.i]+rc.s[rc.j]]
}

// Uint32 returns the next four stream bytes as a big-endian unsigned value.
func (rc *ArcFour) Uint32() uint32 {
	return uint32(rc.Byte())<<24 | uint32(rc.Byte())<<16 | uint32(rc.Byte())<<8 | uint32(rc.Byte())
}

// Intn returns a value in the range [0, n). Returns 0 if n is not positive.
func (rc *ArcFour) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(rc.Uint32() % uint32(n))
}

// Float64 returns a value in the range [0.0, 1.0).
func (rc *ArcFour) Float64() float64 {
	return float64(rc.Uint32()) / (1 << 32)
}

// Shuffle performs a Fisher-Yates shuffle of s using the rc stream.
func Shuffle[T any](rc *ArcFour, s []T) {
	for i := len(s) - 1; i > 0; i-- {
		j := rc.Intn(i + 1)
		s[i], s[j] = s[j], s[i]
	}
}
