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

package libretro

// tests that need a real core shared library do not belong here; what can
// be tested is the pure plumbing around it: button translation, pixel
// conversion and core discovery.

import (
	"os"
	"testing"
	"unsafe"

	"github.com/motifplay/motifplay/test"
)

func TestButtonPressed(t *testing.T) {
	test.ExpectSuccess(t, buttonPressed(InputA, joypadIDA))
	test.ExpectSuccess(t, buttonPressed(InputStart, joypadIDStart))
	test.ExpectSuccess(t, buttonPressed(InputRight, joypadIDRight))
	test.ExpectFailure(t, buttonPressed(InputA, joypadIDB))
	test.ExpectFailure(t, buttonPressed(0, joypadIDA))

	// buttons the controller does not have
	test.ExpectFailure(t, buttonPressed(0xff, joypadIDX))
	test.ExpectFailure(t, buttonPressed(0xff, joypadIDY))
}

func TestJoypadMask(t *testing.T) {
	test.ExpectEquality(t, joypadMask(0), int16(0))

	m := joypadMask(InputA | InputUp)
	test.ExpectEquality(t, m, int16(1<<joypadIDA|1<<joypadIDUp))

	m = joypadMask(0xff)
	var want int16
	for _, id := range []uint32{joypadIDA, joypadIDB, joypadIDSelect, joypadIDStart,
		joypadIDUp, joypadIDDown, joypadIDLeft, joypadIDRight} {
		want |= 1 << id
	}
	test.ExpectEquality(t, m, want)
}

func TestConvertFrameXRGB8888(t *testing.T) {
	// a 2x1 frame: one red pixel, one blue pixel
	frame := []byte{
		0x00, 0x00, 0xff, 0x00, // red in BGRX order
		0xff, 0x00, 0x00, 0x00, // blue
	}

	rgba := make([]byte, ImageWidth*ImageHeight*4)
	convertFrame(rgba, frame, 2, 1, 8, pixelFormatXRGB8888)

	test.ExpectEquality(t, rgba[0], byte(0xff)) // R
	test.ExpectEquality(t, rgba[1], byte(0x00)) // G
	test.ExpectEquality(t, rgba[2], byte(0x00)) // B
	test.ExpectEquality(t, rgba[3], byte(0xff)) // A

	test.ExpectEquality(t, rgba[4], byte(0x00))
	test.ExpectEquality(t, rgba[6], byte(0xff))

	// pixels the frame does not cover stay black
	test.ExpectEquality(t, rgba[8], byte(0x00))
	test.ExpectEquality(t, rgba[11], byte(0x00))
}

func TestConvertFrameRGB565(t *testing.T) {
	// full red is the top five bits
	frame := []byte{0x00, 0xf8}

	rgba := make([]byte, ImageWidth*ImageHeight*4)
	convertFrame(rgba, frame, 1, 1, 2, pixelFormatRGB565)

	test.ExpectEquality(t, rgba[0], byte(0xff))
	test.ExpectEquality(t, rgba[1], byte(0x00))
	test.ExpectEquality(t, rgba[2], byte(0x00))
	test.ExpectEquality(t, rgba[3], byte(0xff))
}

func TestConvertFrame0RGB1555(t *testing.T) {
	// full green is bits 5 to 9
	frame := []byte{0xe0, 0x03}

	rgba := make([]byte, ImageWidth*ImageHeight*4)
	convertFrame(rgba, frame, 1, 1, 2, pixelFormat0RGB1555)

	test.ExpectEquality(t, rgba[0], byte(0x00))
	test.ExpectEquality(t, rgba[1], byte(0xff))
	test.ExpectEquality(t, rgba[2], byte(0x00))
}

func TestConvertFrameEmpty(t *testing.T) {
	rgba := make([]byte, ImageWidth*ImageHeight*4)
	rgba[0] = 0xaa

	convertFrame(rgba, nil, 0, 0, 0, pixelFormatXRGB8888)
	test.ExpectEquality(t, rgba[0], byte(0x00))
}

func TestFindCoreEnvironment(t *testing.T) {
	t.Setenv(coreEnvVar, "/path/to/some_core.so")

	path, err := FindCore()
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, path, "/path/to/some_core.so")
}

func TestFindCoreMissing(t *testing.T) {
	t.Setenv(coreEnvVar, "")
	t.Setenv("HOME", t.TempDir())

	// the search list includes relative and /tmp locations that could
	// exist on the machine running the tests. run from an empty directory
	// so at least the relative entry cannot match
	wd, err := os.Getwd()
	test.DemandSuccess(t, err)
	defer os.Chdir(wd)
	test.DemandSuccess(t, os.Chdir(t.TempDir()))

	if _, err := os.Stat("/tmp/fceumm_libretro.so"); err == nil {
		t.Skip("a well-known core exists on this machine")
	}
	if _, err := os.Stat("/usr/lib/libretro/fceumm_libretro.so"); err == nil {
		t.Skip("a well-known core exists on this machine")
	}
	if _, err := os.Stat("/usr/local/lib/libretro/fceumm_libretro.so"); err == nil {
		t.Skip("a well-known core exists on this machine")
	}

	_, err = FindCore()
	test.ExpectFailure(t, err)
}

func TestExpandHome(t *testing.T) {
	t.Setenv("HOME", "/home/player")
	test.ExpectEquality(t, expandHome("~/cores/x.so"), "/home/player/cores/x.so")
	test.ExpectEquality(t, expandHome("/absolute/x.so"), "/absolute/x.so")

	t.Setenv("HOME", "")
	test.ExpectEquality(t, expandHome("~/cores/x.so"), "~/cores/x.so")
}

func TestGoString(t *testing.T) {
	test.ExpectEquality(t, goString(0), "")

	b := append([]byte("fceumm"), 0)
	test.ExpectEquality(t, goString(uintptr(unsafe.Pointer(&b[0]))), "fceumm")
}
