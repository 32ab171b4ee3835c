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

import (
	"sync"
	"unsafe"

	"github.com/ebitengine/purego"
	"github.com/motifplay/motifplay/logger"
)

// the host reachable from the callback trampolines. refreshed on every
// host-to-core call by Host.enter(). the core only ever calls back from the
// thread that called into it, so a plain pointer is enough.
var currentHost *Host

// the trampolines are C function pointers and are created once for the
// process. purego limits the number of callbacks that can ever be created
// so they cannot be per-Host.
var (
	trampolineOnce sync.Once

	environmentTrampoline uintptr
	videoTrampoline       uintptr
	audioSampleTrampoline uintptr
	audioBatchTrampoline  uintptr
	inputPollTrampoline   uintptr
	inputStateTrampoline  uintptr
	logTrampoline         uintptr
)

func makeTrampolines() {
	trampolineOnce.Do(func() {
		environmentTrampoline = purego.NewCallback(environmentCallback)
		videoTrampoline = purego.NewCallback(videoCallback)
		audioSampleTrampoline = purego.NewCallback(audioSampleCallback)
		audioBatchTrampoline = purego.NewCallback(audioBatchCallback)
		inputPollTrampoline = purego.NewCallback(inputPollCallback)
		inputStateTrampoline = purego.NewCallback(inputStateCallback)

		// cores log through this when they ask for a log interface.
		// swallowed: core chatter is not part of the central log. note that
		// the C declaration is variadic; the extra arguments are never read
		logTrampoline = purego.NewCallback(func(level uint32, format uintptr) {})
	})
}

// environmentCallback answers the environment queries the host supports and
// declines everything else.
func environmentCallback(cmd uint32, data uintptr) bool {
	if currentHost == nil {
		return false
	}

	switch cmd {
	case envGetLogInterface:
		// struct retro_log_callback is a single function pointer
		*(*uintptr)(unsafe.Pointer(data)) = logTrampoline
		return true

	case envGetCanDupe:
		*(*bool)(unsafe.Pointer(data)) = true
		return true

	case envSetPixelFormat:
		format := *(*int32)(unsafe.Pointer(data))
		switch format {
		case pixelFormat0RGB1555, pixelFormatXRGB8888, pixelFormatRGB565:
			currentHost.pixelFormat = format
			return true
		}
		logger.Logf("libretro", "core requested unsupported pixel format %d", format)
		return false

	case envGetSystemDirectory, envGetSaveDirectory, envGetCoreAssetsDirectory:
		// no directories are offered to the core
		*(*uintptr)(unsafe.Pointer(data)) = 0
		return false

	case envSetInputDescriptors, envSetVariables, envSetSupportNoGame, envSetMemoryMaps:
		// accepted but unused
		return true
	}

	return false
}

// videoCallback copies the frame out of the core's buffer. The buffer is
// only valid for the duration of the callback.
func videoCallback(data uintptr, width uint32, height uint32, pitch uintptr) {
	if currentHost == nil || data == 0 {
		return
	}

	host := currentHost
	size := int(height) * int(pitch)
	if cap(host.frameData) < size {
		host.frameData = make([]byte, size)
	}
	host.frameData = host.frameData[:size]
	copy(host.frameData, unsafe.Slice((*byte)(unsafe.Pointer(data)), size))

	host.frameWidth = int(width)
	host.frameHeight = int(height)
	host.framePitch = int(pitch)

	if host.videoHook != nil {
		host.videoHook(host.frameData, host.frameWidth, host.frameHeight, host.framePitch)
	}
}

func audioSampleCallback(left int16, right int16) {
	if currentHost == nil {
		return
	}
	currentHost.audio = append(currentHost.audio, left, right)
}

func audioBatchCallback(data uintptr, frames uintptr) uintptr {
	if currentHost == nil || data == 0 {
		return frames
	}
	samples := unsafe.Slice((*int16)(unsafe.Pointer(data)), int(frames)*2)
	currentHost.audio = append(currentHost.audio, samples...)
	return frames
}

func inputPollCallback() {
}

// inputStateCallback translates the cached per-port input byte into the
// discrete button states the core asks for.
func inputStateCallback(port uint32, device uint32, index uint32, id uint32) int16 {
	if currentHost == nil || port >= 2 || device != deviceJoypad || index != 0 {
		return 0
	}

	mask := currentHost.input[port]

	if id == joypadIDMask {
		return joypadMask(mask)
	}

	if buttonPressed(mask, id) {
		return 1
	}
	return 0
}

// buttonPressed checks the input byte for the button named by a joypad ID.
func buttonPressed(mask byte, id uint32) bool {
	switch id {
	case joypadIDA:
		return mask&InputA != 0
	case joypadIDB:
		return mask&InputB != 0
	case joypadIDSelect:
		return mask&InputSelect != 0
	case joypadIDStart:
		return mask&InputStart != 0
	case joypadIDUp:
		return mask&InputUp != 0
	case joypadIDDown:
		return mask&InputDown != 0
	case joypadIDLeft:
		return mask&InputLeft != 0
	case joypadIDRight:
		return mask&InputRight != 0
	}
	return false
}

// joypadMask aggregates every pressed button into the bitmask form of the
// input state query.
func joypadMask(mask byte) int16 {
	var result int16
	for _, b := range []struct {
		input byte
		id    uint32
	}{
		{InputA, joypadIDA},
		{InputB, joypadIDB},
		{InputSelect, joypadIDSelect},
		{InputStart, joypadIDStart},
		{InputUp, joypadIDUp},
		{InputDown, joypadIDDown},
		{InputLeft, joypadIDLeft},
		{InputRight, joypadIDRight},
	} {
		if mask&b.input != 0 {
			result |= 1 << b.id
		}
	}
	return result
}
