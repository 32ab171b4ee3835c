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

// Package statecache memoises emulator steps. The key is an input byte and
// the serialised state the input is applied to; the value is the serialised
// state one frame later. Because the emulator is deterministic, a hit is
// indistinguishable from performing the step.
//
// The cache is bounded approximately: entries carry a monotonic sequence
// number, refreshed on every hit, and once the entry count exceeds
// limit+slop everything below the sequence threshold that retains the limit
// highest entries is evicted in one sweep.
package statecache

import (
	"fmt"
	"io"
	"sort"

	"github.com/go-faster/city"
)

type entry struct {
	input byte
	pre   []byte
	seq   uint64
	post  []byte
}

// Cache maps (input, state) pairs to the resulting state.
type Cache struct {
	// buckets of entries keyed by hash. collisions are resolved by byte
	// comparison of the pre-state
	table map[uint64][]entry

	limit   uint64
	slop    uint64
	count   uint64
	nextSeq uint64
	hits    uint64
	misses  uint64
}

// NewCache is the preferred method of initialisation for the Cache type.
// The cache starts empty with a zero limit; call Reset to size it.
func NewCache() *Cache {
	return &Cache{table: make(map[uint64][]entry)}
}

// Reset empties the cache and sets the entry limit and the overshoot
// tolerated before a collection pass.
func (c *Cache) Reset(limit uint64, slop uint64) {
	c.table = make(map[uint64][]entry)
	c.limit = limit
	c.slop = slop
	c.count = 0
	c.nextSeq = 0
	c.hits = 0
	c.misses = 0
}

func key(input byte, pre []byte) uint64 {
	return city.Hash64WithSeed(pre, uint64(input))
}

// Remember records that stepping pre with input produces post. Both blobs
// are copied into the cache.
func (c *Cache) Remember(input byte, pre []byte, post []byte) {
	preCopy := make([]byte, len(pre))
	copy(preCopy, pre)
	postCopy := make([]byte, len(post))
	copy(postCopy, post)

	k := key(input, pre)
	c.table[k] = append(c.table[k], entry{
		input: input,
		pre:   preCopy,
		seq:   c.nextSeq,
		post:  postCopy,
	})
	c.nextSeq++
	c.count++

	c.maybeGC()
}

// GetKnown returns the result of stepping pre with input, or nil if the
// step has not been remembered. A hit refreshes the entry's sequence
// number. The returned slice aliases cache storage and must not be
// modified.
func (c *Cache) GetKnown(input byte, pre []byte) []byte {
	bucket := c.table[key(input, pre)]
	for i := range bucket {
		if bucket[i].input == input && bytesEqual(bucket[i].pre, pre) {
			bucket[i].seq = c.nextSeq
			c.nextSeq++
			c.hits++
			return bucket[i].post
		}
	}

	c.misses++
	return nil
}

// maybeGC evicts the oldest entries once the count exceeds limit+slop,
// retaining the limit entries with the highest sequence numbers.
func (c *Cache) maybeGC() {
	if c.count <= c.limit+c.slop {
		return
	}

	seqs := make([]uint64, 0, c.count)
	for _, bucket := range c.table {
		for i := range bucket {
			seqs = append(seqs, bucket[i].seq)
		}
	}
	sort.Slice(seqs, func(i, j int) bool { return seqs[i] < seqs[j] })

	numRemove := c.count - c.limit

	// a zero limit removes everything
	minSeq := c.nextSeq
	if numRemove < uint64(len(seqs)) {
		minSeq = seqs[numRemove]
	}

	for k, bucket := range c.table {
		retained := bucket[:0]
		for i := range bucket {
			if bucket[i].seq >= minSeq {
				retained = append(retained, bucket[i])
			} else {
				c.count--
			}
		}
		if len(retained) == 0 {
			delete(c.table, k)
		} else {
			c.table[k] = retained
		}
	}
}

// Count returns the number of entries currently in the cache.
func (c *Cache) Count() uint64 {
	return c.count
}

// Hits returns the number of successful GetKnown calls since the last
// Reset.
func (c *Cache) Hits() uint64 {
	return c.hits
}

// Misses returns the number of unsuccessful GetKnown calls since the last
// Reset.
func (c *Cache) Misses() uint64 {
	return c.misses
}

func (c *Cache) String() string {
	return fmt.Sprintf("cache: %d/%d, seq %d, %d hits, %d misses",
		c.count, c.limit, c.nextSeq, c.hits, c.misses)
}

// WriteStats writes a one line summary of cache occupancy and traffic.
func (c *Cache) WriteStats(output io.Writer) {
	io.WriteString(output, c.String()+"\n")
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
