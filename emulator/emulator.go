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

// Package emulator composes the core host, the snapshot codec and the state
// cache into the engine the player speculates with. The backend is an
// interface so that the engine can be exercised without a core shared
// library; libretro.Host is the production implementation.
//
// Because the backend is a pure function of state and input, a step can be
// memoised: CachingStep consults the state cache before running the core
// and a hit restores the cached result instead. A hit is observationally
// identical to performing the step.
package emulator

import (
	"fmt"

	"github.com/go-faster/city"
	"github.com/motifplay/motifplay/curated"
	"github.com/motifplay/motifplay/snapshot"
	"github.com/motifplay/motifplay/statecache"
)

// sentinel errors returned by functions in the emulator package.
const (
	SaveError = "emulator: save: %v"
	LoadError = "emulator: load: %v"
)

// Backend is the frame-stepping machine underneath the engine. It must be
// deterministic: stepping the same serialised state with the same input
// always produces the same next state and RAM.
type Backend interface {
	Step(input byte)
	StepFull(input byte)
	RAM() []byte
	SerializeSize() int
	Serialize(out []byte) bool
	Unserialize(in []byte) bool
}

// Emulator owns a Backend and memoises its steps.
type Emulator struct {
	backend Backend
	cache   *statecache.Cache
}

// New is the preferred method of initialisation for the Emulator type.
func New(backend Backend) *Emulator {
	return &Emulator{
		backend: backend,
		cache:   statecache.NewCache(),
	}
}

// Step the backend one frame with the given input.
func (emu *Emulator) Step(input byte) {
	emu.backend.Step(input)
}

// StepFull steps the backend one frame, signalling that the audiovisual
// output of the frame will be consumed.
func (emu *Emulator) StepFull(input byte) {
	emu.backend.StepFull(input)
}

// Memory returns a copy of the backend's system RAM.
func (emu *Emulator) Memory() []byte {
	ram := emu.backend.RAM()
	mem := make([]byte, len(ram))
	copy(mem, ram)
	return mem
}

// RAMChecksum returns a 64-bit content hash of the current system RAM.
func (emu *Emulator) RAMChecksum() uint64 {
	ram := emu.backend.RAM()
	if len(ram) == 0 {
		return 0
	}
	return city.CH64(ram)
}

// SaveUncompressed returns the serialised machine state.
func (emu *Emulator) SaveUncompressed() ([]byte, error) {
	state := make([]byte, emu.backend.SerializeSize())
	if !emu.backend.Serialize(state) {
		return nil, curated.Errorf(SaveError, fmt.Errorf("backend declined to serialise"))
	}
	return state, nil
}

// LoadUncompressed replaces the machine state with a previously saved one.
func (emu *Emulator) LoadUncompressed(state []byte) error {
	if !emu.backend.Unserialize(state) {
		return curated.Errorf(LoadError, fmt.Errorf("backend declined to deserialise"))
	}
	return nil
}

// Save returns the compressed machine state with no basis differencing.
func (emu *Emulator) Save() ([]byte, error) {
	return emu.SaveEx(nil)
}

// Load replaces the machine state from a compressed state with no basis
// differencing.
func (emu *Emulator) Load(data []byte) error {
	return emu.LoadEx(data, nil)
}

// SaveEx returns the compressed machine state, differenced against basis.
func (emu *Emulator) SaveEx(basis []byte) ([]byte, error) {
	state, err := emu.SaveUncompressed()
	if err != nil {
		return nil, err
	}
	return snapshot.Compress(state, basis), nil
}

// LoadEx replaces the machine state from a compressed state differenced
// against basis. The basis must be the one used by the corresponding
// SaveEx.
func (emu *Emulator) LoadEx(data []byte, basis []byte) error {
	return emu.LoadUncompressed(snapshot.Decompress(data, basis))
}

// ResetCache empties the state cache and sets its entry limit and
// overshoot tolerance.
func (emu *Emulator) ResetCache(limit uint64, slop uint64) {
	emu.cache.Reset(limit, slop)
}

// CachingStep is Step through the state cache: the pre-state is saved and
// looked up; a hit restores the remembered post-state without running the
// backend, a miss runs the backend and remembers the result.
func (emu *Emulator) CachingStep(input byte) error {
	pre, err := emu.SaveUncompressed()
	if err != nil {
		return err
	}

	if post := emu.cache.GetKnown(input, pre); post != nil {
		return emu.LoadUncompressed(post)
	}

	emu.Step(input)

	post, err := emu.SaveUncompressed()
	if err != nil {
		return err
	}
	emu.cache.Remember(input, pre, post)

	return nil
}

// CacheStats returns a one line summary of cache occupancy and traffic.
func (emu *Emulator) CacheStats() string {
	return emu.cache.String()
}

// CacheHits returns the number of cache hits since the last ResetCache.
func (emu *Emulator) CacheHits() uint64 {
	return emu.cache.Hits()
}

// Backend returns the backend the emulator was created with.
func (emu *Emulator) Backend() Backend {
	return emu.backend
}
