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

// Package snapshot implements the compressed save state format: a four byte
// little-endian length header followed by a zlib stream of the serialised
// emulator state.
//
// States can be differenced against a basis state before compression.
// Nearby states differ from the basis in few places so the difference
// compresses much better than the raw state. Differencing is per byte,
// modulo 256, over the overlap of state and basis; an empty basis means no
// differencing. The basis used to compress a state must be the one used to
// decompress it.
//
// A state that fails to decompress cannot be recovered and the search that
// depends on it cannot continue, so decompression faults are fatal.
package snapshot

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/klauspost/compress/zlib"
	"github.com/motifplay/motifplay/logger"
)

// number of bytes in the length header
const headerLen = 4

// Compress returns the compressed form of state, differenced against basis.
// A nil or empty basis means no differencing.
func Compress(state []byte, basis []byte) []byte {
	raw := make([]byte, len(state))
	copy(raw, state)

	for i := 0; i < len(basis) && i < len(raw); i++ {
		raw[i] -= basis[i]
	}

	buf := &bytes.Buffer{}
	buf.Write(make([]byte, headerLen))

	w := zlib.NewWriter(buf)
	if _, err := w.Write(raw); err != nil {
		fatal(fmt.Sprintf("compress: %v", err))
	}
	if err := w.Close(); err != nil {
		fatal(fmt.Sprintf("compress: %v", err))
	}

	// the header is written after the deflate stream has settled. the
	// buffer may have reallocated during compression so the header bytes
	// are addressed through the final slice
	out := buf.Bytes()
	binary.LittleEndian.PutUint32(out[:headerLen], uint32(len(raw)))

	return out
}

// Decompress returns the original state for data produced by Compress with
// the same basis. Corrupt data is fatal.
func Decompress(data []byte, basis []byte) []byte {
	if len(data) < headerLen {
		fatal(fmt.Sprintf("decompress: %d bytes is too short", len(data)))
	}

	uncompressedLen := binary.LittleEndian.Uint32(data[:headerLen])

	r, err := zlib.NewReader(bytes.NewReader(data[headerLen:]))
	if err != nil {
		fatal(fmt.Sprintf("decompress: %v", err))
	}
	defer r.Close()

	state := make([]byte, uncompressedLen)
	if _, err := io.ReadFull(r, state); err != nil {
		fatal(fmt.Sprintf("decompress: %v", err))
	}

	for i := 0; i < len(basis) && i < len(state); i++ {
		state[i] += basis[i]
	}

	return state
}

// UncompressedLen returns the length recorded in the header of compressed
// data, without decompressing.
func UncompressedLen(data []byte) int {
	if len(data) < headerLen {
		return 0
	}
	return int(binary.LittleEndian.Uint32(data[:headerLen]))
}

func fatal(detail string) {
	logger.Log("snapshot", detail)
	panic(fmt.Sprintf("snapshot: %s", detail))
}
