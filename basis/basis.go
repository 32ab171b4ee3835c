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

// Package basis produces the reference state used for differential
// compression. The basis is the machine state at a designated frame of a
// known input script; any state reached during play differs from it in few
// places, so differencing against it makes compressed states small.
//
// The basis is cached on disk. Failing to write it is fatal: the basis
// anchors the determinism of every compressed state that references it,
// and silently recomputing a different one later would poison caches.
package basis

import (
	"fmt"
	"os"

	"github.com/motifplay/motifplay/curated"
	"github.com/motifplay/motifplay/emulator"
	"github.com/motifplay/motifplay/logger"
)

// sentinel error returned by LoadOrCompute.
const BasisError = "basis: %v"

// LoadOrCompute returns the basis state for the input script. If a file
// exists at path its contents are the basis. Otherwise the emulator plays
// min(frame, len(script)) inputs of the script, captures the state, writes
// it to path, and rewinds to where it started.
func LoadOrCompute(emu *emulator.Emulator, script []byte, frame int, path string) ([]byte, error) {
	if b, err := os.ReadFile(path); err == nil {
		logger.Logf("basis", "loaded basis file %s", path)
		return b, nil
	}

	logger.Logf("basis", "computing basis file %s", path)

	start, err := emu.Save()
	if err != nil {
		return nil, curated.Errorf(BasisError, err)
	}

	if frame > len(script) {
		frame = len(script)
	}
	for i := 0; i < frame; i++ {
		emu.Step(script[i])
	}

	b, err := emu.SaveUncompressed()
	if err != nil {
		return nil, curated.Errorf(BasisError, err)
	}

	if err := os.WriteFile(path, b, 0644); err != nil {
		logger.Logf("basis", "%v", err)
		panic(fmt.Sprintf("basis: cannot write %s: %v", path, err))
	}

	if err := emu.Load(start); err != nil {
		return nil, curated.Errorf(BasisError, err)
	}

	return b, nil
}
