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

// Package motif maintains the library of input motifs explored by the
// player. A motif is a short fixed sequence of input bytes with a
// probability weight; the library can sample motifs in proportion to their
// weight.
//
// The file format is one motif per line: the weight followed by the input
// bytes, space separated.
package motif

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/motifplay/motifplay/arcfour"
	"github.com/motifplay/motifplay/curated"
)

// sentinel errors returned by functions in the motif package.
const (
	LoadError = "motifs: load: %v"
	SaveError = "motifs: save: %v"
)

// Motif is a short sequence of input bytes sampled as a unit.
type Motif struct {
	Weight float64
	Inputs []byte
}

// Motifs is the library of motifs available to the player.
type Motifs struct {
	motifs []Motif
	total  float64

	// sampling stream. separate from the player's selection stream so that
	// rollout sampling and motif-set selection don't interleave
	rc *arcfour.ArcFour
}

// NewMotifs creates an empty library. Motifs are added with Add.
func NewMotifs() *Motifs {
	return &Motifs{
		motifs: make([]Motif, 0),
		rc:     arcfour.New("motifs"),
	}
}

// LoadFromFile is the preferred method of initialisation for the Motifs
// type.
func LoadFromFile(filename string) (*Motifs, error) {
	buffer, err := os.ReadFile(filename)
	if err != nil {
		return nil, curated.Errorf(LoadError, err)
	}

	m := NewMotifs()

	for i, line := range strings.Split(string(buffer), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) < 2 {
			return nil, curated.Errorf(LoadError,
				fmt.Errorf("too few fields at line %d", i+1))
		}

		weight, err := strconv.ParseFloat(fields[0], 64)
		if err != nil || weight < 0 {
			return nil, curated.Errorf(LoadError,
				fmt.Errorf("bad weight at line %d", i+1))
		}

		inputs := make([]byte, 0, len(fields)-1)
		for _, f := range fields[1:] {
			v, err := strconv.ParseUint(f, 10, 8)
			if err != nil {
				return nil, curated.Errorf(LoadError,
					fmt.Errorf("bad input byte at line %d", i+1))
			}
			inputs = append(inputs, byte(v))
		}

		m.Add(weight, inputs)
	}

	if m.Size() == 0 {
		return nil, curated.Errorf(LoadError, fmt.Errorf("no motifs in %s", filename))
	}

	return m, nil
}

// SaveToFile writes the library in the format read by LoadFromFile.
func (m *Motifs) SaveToFile(filename string) error {
	s := strings.Builder{}
	for _, mt := range m.motifs {
		s.WriteString(strconv.FormatFloat(mt.Weight, 'f', -1, 64))
		for _, b := range mt.Inputs {
			s.WriteString(fmt.Sprintf(" %d", b))
		}
		s.WriteString("\n")
	}

	if err := os.WriteFile(filename, []byte(s.String()), 0644); err != nil {
		return curated.Errorf(SaveError, err)
	}

	return nil
}

// Add a motif to the library. Empty input sequences are ignored.
func (m *Motifs) Add(weight float64, inputs []byte) {
	if len(inputs) == 0 {
		return
	}

	cp := make([]byte, len(inputs))
	copy(cp, inputs)
	m.motifs = append(m.motifs, Motif{Weight: weight, Inputs: cp})
	m.total += weight
}

// Size returns the number of motifs in the library.
func (m *Motifs) Size() int {
	return len(m.motifs)
}

// TotalWeight returns the sum of all motif weights.
func (m *Motifs) TotalWeight() float64 {
	return m.total
}

// AllMotifs returns the input sequences of every motif, in insertion order.
// The returned slices alias the library's storage and must not be modified.
func (m *Motifs) AllMotifs() [][]byte {
	all := make([][]byte, len(m.motifs))
	for i := range m.motifs {
		all[i] = m.motifs[i].Inputs
	}
	return all
}

// RandomWeightedMotif samples a motif in proportion to its weight. The
// sampling stream is deterministic; a library loaded twice from the same
// file yields the same sample sequence.
func (m *Motifs) RandomWeightedMotif() []byte {
	if len(m.motifs) == 0 {
		return nil
	}

	r := m.rc.Float64() * m.total
	for i := range m.motifs {
		r -= m.motifs[i].Weight
		if r < 0 {
			return m.motifs[i].Inputs
		}
	}

	// rounding can walk past the final motif
	return m.motifs[len(m.motifs)-1].Inputs
}

// FromMovie derives a motif library from a played input sequence: every
// window of motifLen consecutive inputs becomes a motif weighted by the
// number of times it occurs in the movie.
func FromMovie(inputs []byte, motifLen int) *Motifs {
	m := NewMotifs()
	if motifLen <= 0 || len(inputs) < motifLen {
		return m
	}

	counts := make(map[string]int)
	order := make([]string, 0)

	for i := 0; i+motifLen <= len(inputs); i++ {
		w := string(inputs[i : i+motifLen])
		if _, ok := counts[w]; !ok {
			order = append(order, w)
		}
		counts[w]++
	}

	for _, w := range order {
		m.Add(float64(counts[w]), []byte(w))
	}

	return m
}
