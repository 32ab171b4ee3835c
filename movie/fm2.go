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

// Package movie reads and writes FM2 input scripts. Only a single gamepad is
// supported and the movie is assumed to start from hard power-on in the
// first frame. All other FM2 features are ignored.
//
// An input is one byte per frame. Reading from most to least significant
// bit: Right, Left, Down, Up, Start, Select, B, A.
package movie

import (
	"crypto/md5"
	"encoding/base64"
	"fmt"
	"os"
	"strings"

	"github.com/motifplay/motifplay/curated"
)

// sentinel errors returned by functions in the movie package.
const (
	ReadError  = "fm2 read: %v"
	WriteError = "fm2 write: %v"
)

// the order the buttons appear in an FM2 input field, most significant bit
// first.
const buttonField = "RLDUTSBA"

// the emulator version recorded in the header. the field must be numeric
// for other FM2 consumers to accept the file.
const emuVersion = 9828

// ReadInputs returns the sequence of gamepad-0 input bytes in the named FM2
// file. Header lines are not validated; any line that is not an input
// record is skipped.
func ReadInputs(filename string) ([]byte, error) {
	buffer, err := os.ReadFile(filename)
	if err != nil {
		return nil, curated.Errorf(ReadError, err)
	}

	inputs := make([]byte, 0, 1024)

	for i, line := range strings.Split(string(buffer), "\n") {
		if !strings.HasPrefix(line, "|") {
			continue
		}

		// input records look like |commands|RLDUTSBA|...|. the second field
		// is the first gamepad
		fields := strings.Split(line, "|")
		if len(fields) < 3 {
			return nil, curated.Errorf(ReadError,
				fmt.Errorf("too few fields at line %d", i+1))
		}

		var input byte
		for j, c := range fields[2] {
			if j >= len(buttonField) {
				break
			}
			if c != '.' && c != ' ' {
				input |= 1 << uint(len(buttonField)-1-j)
			}
		}
		inputs = append(inputs, input)
	}

	return inputs, nil
}

// WriteInputs writes the sequence of input bytes to the named file as an FM2
// movie. romName and romChecksum appear in the file header; use ROMChecksum
// to derive the checksum string from the ROM image.
func WriteInputs(filename string, romName string, romChecksum string, inputs []byte) error {
	return WriteInputsWithSubtitles(filename, romName, romChecksum, inputs, nil)
}

// WriteInputsWithSubtitles is the same as WriteInputs with a subtitle track.
// Subtitle i is displayed from frame i. A nil or short subtitle list is fine.
func WriteInputsWithSubtitles(filename string, romName string, romChecksum string,
	inputs []byte, subtitles []string) error {

	s := strings.Builder{}
	s.WriteString("version 3\n")
	s.WriteString(fmt.Sprintf("emuVersion %d\n", emuVersion))
	s.WriteString("palFlag 0\n")
	s.WriteString(fmt.Sprintf("romFilename %s\n", romName))
	s.WriteString(fmt.Sprintf("romChecksum %s\n", romChecksum))
	s.WriteString("guid 00000000-0000-0000-0000-000000000000\n")
	s.WriteString("fourscore 0\n")
	s.WriteString("port0 1\n")
	s.WriteString("port1 0\n")
	s.WriteString("port2 0\n")

	for i, sub := range subtitles {
		if sub != "" {
			s.WriteString(fmt.Sprintf("subtitle %d %s\n", i, sub))
		}
	}

	for i, input := range inputs {
		// the first frame carries the hard power-on command
		command := 0
		if i == 0 {
			command = 2
		}
		s.WriteString(fmt.Sprintf("|%d|%s||\n", command, InputToString(input)))
	}

	if err := os.WriteFile(filename, []byte(s.String()), 0644); err != nil {
		return curated.Errorf(WriteError, err)
	}

	return nil
}

// InputToString returns the eight character field for an input byte. Pressed
// buttons show their letter, unpressed buttons show a full stop.
func InputToString(input byte) string {
	field := []byte(buttonField)
	for i := range field {
		if input&(1<<uint(len(field)-1-i)) == 0 {
			field[i] = '.'
		}
	}
	return string(field)
}

// ROMChecksum returns the checksum header string for a ROM image: the base64
// encoding of the image's 16 byte MD5 digest, prefixed "base64:".
func ROMChecksum(rom []byte) string {
	sum := md5.Sum(rom)
	return "base64:" + base64.StdEncoding.EncodeToString(sum[:])
}
