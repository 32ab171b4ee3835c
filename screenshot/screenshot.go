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

// Package screenshot writes captured video frames to disk as PNG files.
package screenshot

import (
	"image"
	"image/png"
	"os"

	"github.com/motifplay/motifplay/curated"
)

// sentinel error returned by Save.
const SaveError = "screenshot: %v"

// Save an RGBA8 pixel buffer of the given dimensions as a PNG file.
func Save(rgba []byte, width int, height int, filename string) (rerr error) {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	copy(img.Pix, rgba)

	f, err := os.Create(filename)
	if err != nil {
		return curated.Errorf(SaveError, err)
	}
	defer func() {
		if err := f.Close(); err != nil && rerr == nil {
			rerr = curated.Errorf(SaveError, err)
		}
	}()

	if err := png.Encode(f, img); err != nil {
		return curated.Errorf(SaveError, err)
	}

	return nil
}
