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

// Package learn is the offline half of the system: it replays recorded
// example play, records the memory at every frame, mines the recording for
// objective functions and derives the motif library the player samples
// from. The artifacts are written to <game>.objectives and <game>.motifs.
package learn

import (
	"fmt"
	"io"

	"github.com/motifplay/motifplay/emulator"
	"github.com/motifplay/motifplay/logger"
	"github.com/motifplay/motifplay/motif"
	"github.com/motifplay/motifplay/objective"
)

// Options for a learning run.
type Options struct {
	// maximum number of orderings mined, split between the increasing and
	// decreasing sweeps. negative means unlimited
	Limit int

	// non-zero randomises the order the enumeration explores candidates
	Seed int

	// length of the input windows that become motifs
	MotifLen int
}

// Run replays inputs on the emulator, mines objectives from the memory
// trajectory and derives motifs from the inputs, writing both artifacts.
func Run(emu *emulator.Emulator, inputs []byte, game string, opts Options, output io.Writer) error {
	memories := make([][]byte, 0, len(inputs)+1)
	memories = append(memories, emu.Memory())

	for _, input := range inputs {
		emu.Step(input)
		memories = append(memories, emu.Memory())
	}
	fmt.Fprintf(output, "replayed %d frames\n", len(inputs))

	weighted, err := objective.MineWeighted(memories, opts.Limit, opts.Seed)
	if err != nil {
		return err
	}
	fmt.Fprintf(output, "mined %d objectives\n", weighted.Size())

	if err := weighted.SaveToFile(game + ".objectives"); err != nil {
		return err
	}

	motifs := motif.FromMovie(inputs, opts.MotifLen)
	if motifs.Size() == 0 {
		logger.Logf("learn", "movie too short for motifs of length %d", opts.MotifLen)
	}
	fmt.Fprintf(output, "derived %d motifs\n", motifs.Size())

	if err := motifs.SaveToFile(game + ".motifs"); err != nil {
		return err
	}

	return nil
}
