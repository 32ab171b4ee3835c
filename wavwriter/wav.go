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

// Package wavwriter allows writing of audio data to disk as a WAV file.
// Note that audio data is buffered in memory in its entirety and written
// to disk on End(). It is therefore only suitable for bounded sessions.
package wavwriter

import (
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/motifplay/motifplay/curated"
	"github.com/motifplay/motifplay/logger"
)

// sentinel error returned by functions in the wavwriter package.
const WriteError = "wavwriter: %v"

// WavWriter accumulates mono 16-bit samples and writes them out as a WAV
// file.
type WavWriter struct {
	filename   string
	sampleRate int
	buffer     []int
}

// New is the preferred method of initialisation for the WavWriter type.
func New(filename string, sampleRate int) *WavWriter {
	return &WavWriter{
		filename:   filename,
		sampleRate: sampleRate,
		buffer:     make([]int, 0),
	}
}

// Add mono samples to the buffer. Suitable as a Host audio hook.
func (aw *WavWriter) Add(mono []int16) {
	for _, s := range mono {
		aw.buffer = append(aw.buffer, int(s))
	}
}

// End writes the buffered samples to disk.
func (aw *WavWriter) End() (rerr error) {
	f, err := os.Create(aw.filename)
	if err != nil {
		return curated.Errorf(WriteError, err)
	}
	defer func() {
		if err := f.Close(); err != nil && rerr == nil {
			rerr = curated.Errorf(WriteError, err)
		}
	}()

	enc := wav.NewEncoder(f, aw.sampleRate, 16, 1, 1)

	buf := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: 1,
			SampleRate:  aw.sampleRate,
		},
		Data:           aw.buffer,
		SourceBitDepth: 16,
	}

	if err := enc.Write(buf); err != nil {
		enc.Close()
		return curated.Errorf(WriteError, err)
	}
	if err := enc.Close(); err != nil {
		return curated.Errorf(WriteError, err)
	}

	logger.Logf("wavwriter", "written %d samples to %s", len(aw.buffer), aw.filename)
	return nil
}
