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

package movie_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/motifplay/motifplay/movie"
	"github.com/motifplay/motifplay/test"
)

func TestInputToString(t *testing.T) {
	test.ExpectEquality(t, movie.InputToString(0x00), "........")
	test.ExpectEquality(t, movie.InputToString(0x01), ".......A")
	test.ExpectEquality(t, movie.InputToString(0x02), "......B.")
	test.ExpectEquality(t, movie.InputToString(0x80), "R.......")
	test.ExpectEquality(t, movie.InputToString(0x81), "R......A")
	test.ExpectEquality(t, movie.InputToString(0xff), "RLDUTSBA")
}

func TestRoundTrip(t *testing.T) {
	inputs := []byte{0x00, 0x00, 0x81, 0x02, 0xff, 0x08, 0x00}

	filename := filepath.Join(t.TempDir(), "roundtrip.fm2")
	err := movie.WriteInputs(filename, "game.nes", movie.ROMChecksum([]byte("rom")), inputs)
	test.DemandSuccess(t, err)

	read, err := movie.ReadInputs(filename)
	test.DemandSuccess(t, err)

	test.DemandEquality(t, len(read), len(inputs))
	for i := range read {
		test.ExpectEquality(t, read[i], inputs[i])
	}
}

func TestHeader(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "header.fm2")
	err := movie.WriteInputs(filename, "game.nes", "base64:AAAAAAAAAAAAAAAAAAAAAA==", []byte{0x00, 0x01})
	test.DemandSuccess(t, err)

	b, err := os.ReadFile(filename)
	test.DemandSuccess(t, err)
	content := string(b)

	test.ExpectSuccess(t, strings.Contains(content, "version 3\n"))
	test.ExpectSuccess(t, strings.Contains(content, "romFilename game.nes\n"))
	test.ExpectSuccess(t, strings.Contains(content, "romChecksum base64:AAAAAAAAAAAAAAAAAAAAAA==\n"))

	// the first frame carries the power-on command
	test.ExpectSuccess(t, strings.Contains(content, "|2|........||\n"))
	test.ExpectSuccess(t, strings.Contains(content, "|0|.......A||\n"))
}

func TestReadMissingFile(t *testing.T) {
	_, err := movie.ReadInputs(filepath.Join(t.TempDir(), "no-such-file.fm2"))
	test.ExpectFailure(t, err)
}

func TestROMChecksum(t *testing.T) {
	// MD5 is sixteen bytes so the base64 encoding is always 24 characters
	s := movie.ROMChecksum([]byte{0x01, 0x02, 0x03})
	test.ExpectSuccess(t, strings.HasPrefix(s, "base64:"))
	test.ExpectEquality(t, len(s), len("base64:")+24)
}
