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

package screenshot_test

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/motifplay/motifplay/screenshot"
	"github.com/motifplay/motifplay/test"
)

func TestSave(t *testing.T) {
	const w, h = 4, 2

	rgba := make([]byte, w*h*4)
	rgba[0] = 0xff // one red pixel
	rgba[3] = 0xff

	filename := filepath.Join(t.TempDir(), "frame.png")
	test.DemandSuccess(t, screenshot.Save(rgba, w, h, filename))

	f, err := os.Open(filename)
	test.DemandSuccess(t, err)
	defer f.Close()

	img, err := png.Decode(f)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, img.Bounds().Dx(), w)
	test.ExpectEquality(t, img.Bounds().Dy(), h)

	r, _, _, a := img.At(0, 0).RGBA()
	test.ExpectEquality(t, r>>8, uint32(0xff))
	test.ExpectEquality(t, a>>8, uint32(0xff))
}

func TestBadPath(t *testing.T) {
	err := screenshot.Save(make([]byte, 4), 1, 1, filepath.Join(t.TempDir(), "no", "dir", "frame.png"))
	test.ExpectFailure(t, err)
}
