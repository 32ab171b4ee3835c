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

package learn_test

import (
	"io"
	"path/filepath"
	"testing"

	"github.com/motifplay/motifplay/emulator"
	"github.com/motifplay/motifplay/learn"
	"github.com/motifplay/motifplay/motif"
	"github.com/motifplay/motifplay/objective"
	"github.com/motifplay/motifplay/test"
)

// scripted is a deterministic stand-in for a core. byte 0 counts steps so
// there is a monotonic value to mine.
type scripted struct {
	ram [8]byte
}

func (s *scripted) Step(input byte) {
	s.ram[0]++
	s.ram[1] = input
}

func (s *scripted) StepFull(input byte) { s.Step(input) }
func (s *scripted) RAM() []byte         { return s.ram[:] }
func (s *scripted) SerializeSize() int  { return len(s.ram) }

func (s *scripted) Serialize(out []byte) bool {
	if len(out) < len(s.ram) {
		return false
	}
	copy(out, s.ram[:])
	return true
}

func (s *scripted) Unserialize(in []byte) bool {
	if len(in) < len(s.ram) {
		return false
	}
	copy(s.ram[:], in)
	return true
}

func TestRun(t *testing.T) {
	emu := emulator.New(&scripted{})
	game := filepath.Join(t.TempDir(), "testgame")

	inputs := []byte{0x01, 0x02, 0x01, 0x02, 0x01, 0x02, 0x01, 0x02}
	opts := learn.Options{Limit: -1, Seed: 0, MotifLen: 2}

	test.DemandSuccess(t, learn.Run(emu, inputs, game, opts, io.Discard))

	// the artifacts load back through their libraries
	w, err := objective.LoadFromFile(game + ".objectives")
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, w.Size() > 0)

	// byte 0 counted up every frame: advancing it must score well
	test.ExpectSuccess(t, w.Evaluate([]byte{1, 0, 0, 0, 0, 0, 0, 0}, []byte{2, 0, 0, 0, 0, 0, 0, 0}) > 0.5)

	m, err := motif.LoadFromFile(game + ".motifs")
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, m.Size() > 0)
}
