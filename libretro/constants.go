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

// the libretro API version this host targets. cores reporting any other
// version are rejected at load time.
const expectedAPIVersion = 1

// Input bits of the controller byte. Reading from most to least significant
// bit: Right, Left, Down, Up, Start, Select, B, A.
const (
	InputA      byte = 1 << 0
	InputB      byte = 1 << 1
	InputSelect byte = 1 << 2
	InputStart  byte = 1 << 3
	InputUp     byte = 1 << 4
	InputDown   byte = 1 << 5
	InputLeft   byte = 1 << 6
	InputRight  byte = 1 << 7
)

// device types
const (
	deviceJoypad = 1
)

// memory regions
const (
	memorySystemRAM = 2
)

// joypad button IDs as used by the input state callback
const (
	joypadIDB      = 0
	joypadIDY      = 1
	joypadIDSelect = 2
	joypadIDStart  = 3
	joypadIDUp     = 4
	joypadIDDown   = 5
	joypadIDLeft   = 6
	joypadIDRight  = 7
	joypadIDA      = 8
	joypadIDX      = 9

	// aggregate query: every pressed button as one bitmask
	joypadIDMask = 256
)

// environment commands the host responds to
const (
	envGetCanDupe             = 3
	envGetSystemDirectory     = 9
	envSetPixelFormat         = 10
	envSetInputDescriptors    = 11
	envGetVariable            = 15
	envSetVariables           = 16
	envSetSupportNoGame       = 18
	envGetLogInterface        = 27
	envGetCoreAssetsDirectory = 30
	envGetSaveDirectory       = 31
	envSetMemoryMaps          = 36
)

// pixel formats the host can convert
const (
	pixelFormat0RGB1555 = 0
	pixelFormatXRGB8888 = 1
	pixelFormatRGB565   = 2
)

// dimensions of the RGBA buffer filled by the Image function
const (
	ImageWidth  = 256
	ImageHeight = 256
)
