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
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	svg "github.com/ajstarks/svgo"
	"github.com/motifplay/motifplay/curated"
)

// sentinel errors returned by the weighted objectives functions.
const (
	WeightedLoadError = "objectives: load: %v"
	WeightedSaveError = "objectives: save: %v"
)

// a single ordering and its weight. indices are signed: index -(i+1)
// reads byte i complemented, marking an objective that decreases over time.
type weightedObjective struct {
	order  []int
	weight float64
}

// WeightedObjectives is a finite set of (ordering, weight) pairs. The set is
// exposed only through its scoring functions; the player never inspects
// individual objectives.
type WeightedObjectives struct {
	objs  []weightedObjective
	total float64
}

// NewWeighted creates an empty objective set. Objectives are added with Add.
func NewWeighted() *WeightedObjectives {
	return &WeightedObjectives{objs: make([]weightedObjective, 0)}
}

// LoadFromFile is the preferred method of initialisation for the
// WeightedObjectives type. The file format is one objective per line: the
// weight followed by the signed indices, space separated.
func LoadFromFile(filename string) (*WeightedObjectives, error) {
	buffer, err := os.ReadFile(filename)
	if err != nil {
		return nil, curated.Errorf(WeightedLoadError, err)
	}

	w := NewWeighted()

	for i, line := range strings.Split(string(buffer), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) < 2 {
			return nil, curated.Errorf(WeightedLoadError,
				fmt.Errorf("too few fields at line %d", i+1))
		}

		weight, err := strconv.ParseFloat(fields[0], 64)
		if err != nil || weight < 0 {
			return nil, curated.Errorf(WeightedLoadError,
				fmt.Errorf("bad weight at line %d", i+1))
		}

		order := make([]int, 0, len(fields)-1)
		for _, f := range fields[1:] {
			idx, err := strconv.Atoi(f)
			if err != nil {
				return nil, curated.Errorf(WeightedLoadError,
					fmt.Errorf("bad index at line %d", i+1))
			}
			order = append(order, idx)
		}

		w.Add(order, weight)
	}

	if w.Size() == 0 {
		return nil, curated.Errorf(WeightedLoadError, fmt.Errorf("no objectives in %s", filename))
	}

	return w, nil
}

// SaveToFile writes the set in the format read by LoadFromFile.
func (w *WeightedObjectives) SaveToFile(filename string) error {
	s := strings.Builder{}
	for _, o := range w.objs {
		s.WriteString(strconv.FormatFloat(o.weight, 'f', -1, 64))
		for _, idx := range o.order {
			s.WriteString(fmt.Sprintf(" %d", idx))
		}
		s.WriteString("\n")
	}

	if err := os.WriteFile(filename, []byte(s.String()), 0644); err != nil {
		return curated.Errorf(WeightedSaveError, err)
	}

	return nil
}

// Add an ordering with the given weight. Empty orderings and non-positive
// weights are ignored.
func (w *WeightedObjectives) Add(order []int, weight float64) {
	if len(order) == 0 || weight <= 0 {
		return
	}

	cp := make([]int, len(order))
	copy(cp, order)
	w.objs = append(w.objs, weightedObjective{order: cp, weight: weight})
	w.total += weight
}

// Size returns the number of objectives in the set.
func (w *WeightedObjectives) Size() int {
	return len(w.objs)
}

// valueAt reads the byte a signed index refers to, complementing it for
// decreasing indices so that progress always reads as an increase.
func valueAt(mem []byte, idx int) byte {
	if idx < 0 {
		return 255 - mem[-idx-1]
	}
	return mem[idx]
}

// compare returns -1, 0 or 1 as mem1 is less than, equal to or greater than
// mem2 under the ordering.
func compare(mem1 []byte, mem2 []byte, order []int) int {
	for _, idx := range order {
		v1 := valueAt(mem1, idx)
		v2 := valueAt(mem2, idx)
		if v1 < v2 {
			return -1
		}
		if v1 > v2 {
			return 1
		}
	}
	return 0
}

// Evaluate scores the transition from mem1 to mem2 in binary mode: each
// objective contributes its full weight if mem2 is strictly greater, half
// its weight if the memories are equal under the ordering, and nothing
// otherwise. The result is normalised to [0, 1].
func (w *WeightedObjectives) Evaluate(mem1 []byte, mem2 []byte) float64 {
	if w.total == 0 {
		return 0
	}

	var sum float64
	for _, o := range w.objs {
		switch compare(mem1, mem2, o.order) {
		case -1:
			sum += o.weight
		case 0:
			sum += o.weight / 2
		}
	}
	return sum / w.total
}

// EvaluateMagnitude scores the transition from mem1 to mem2 by how far each
// objective moved: the first index where the memories differ contributes the
// objective's weight scaled by the byte distance. The result is normalised
// to [0, 1], with 0.5 meaning no movement.
func (w *WeightedObjectives) EvaluateMagnitude(mem1 []byte, mem2 []byte) float64 {
	if w.total == 0 {
		return 0
	}

	var sum float64
	for _, o := range w.objs {
		frac := 0.5
		for _, idx := range o.order {
			v1 := float64(valueAt(mem1, idx))
			v2 := float64(valueAt(mem2, idx))
			if v1 != v2 {
				frac = 0.5 + (v2-v1)/510
				break
			}
		}
		sum += o.weight * frac
	}
	return sum / w.total
}

// valueFrac maps a memory to [0, 1) under an ordering by reading the bytes
// at the listed indices as a base-256 fraction. Used by the SVG plot.
func valueFrac(mem []byte, order []int) float64 {
	var v float64
	scale := 1.0
	for _, idx := range order {
		scale /= 256
		v += float64(valueAt(mem, idx)) * scale
	}
	return v
}

// dimensions of the SVG plot
const (
	svgWidth  = 1024
	svgHeight = 512
)

// SaveSVG plots the value of every objective across the memory sequence as
// an SVG polyline per objective. Heavier objectives are drawn more opaque.
func (w *WeightedObjectives) SaveSVG(memories [][]byte, filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return curated.Errorf(WeightedSaveError, err)
	}
	defer f.Close()

	bw := bufio.NewWriter(f)
	canvas := svg.New(bw)
	canvas.Start(svgWidth, svgHeight)
	canvas.Rect(0, 0, svgWidth, svgHeight, "fill:white")

	if len(memories) > 1 {
		var maxWeight float64
		for _, o := range w.objs {
			if o.weight > maxWeight {
				maxWeight = o.weight
			}
		}

		xs := make([]int, len(memories))
		ys := make([]int, len(memories))
		for oi, o := range w.objs {
			for i, mem := range memories {
				xs[i] = i * (svgWidth - 1) / (len(memories) - 1)
				ys[i] = svgHeight - 1 - int(valueFrac(mem, o.order)*float64(svgHeight-1))
			}

			opacity := 0.2
			if maxWeight > 0 {
				opacity = 0.2 + 0.8*(o.weight/maxWeight)
			}
			hue := (oi * 77) % 360
			canvas.Polyline(xs, ys, fmt.Sprintf(
				"fill:none;stroke:hsl(%d,80%%,40%%);stroke-width:1;stroke-opacity:%.2f", hue, opacity))
		}
	}

	canvas.End()

	if err := bw.Flush(); err != nil {
		return curated.Errorf(WeightedSaveError, err)
	}

	return nil
}
