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
	"fmt"
	"unsafe"

	"github.com/ebitengine/purego"
)

// coreFunctions holds the resolved entry points of a loaded core. size_t
// values travel as uintptr; C pointers travel as uintptr and are converted
// at the point of use.
type coreFunctions struct {
	init                    func()
	deinit                  func()
	apiVersion              func() uint32
	getSystemInfo           func(info *systemInfo)
	getSystemAVInfo         func(info *systemAVInfo)
	setEnvironment          func(cb uintptr)
	setVideoRefresh         func(cb uintptr)
	setAudioSample          func(cb uintptr)
	setAudioSampleBatch     func(cb uintptr)
	setInputPoll            func(cb uintptr)
	setInputState           func(cb uintptr)
	setControllerPortDevice func(port uint32, device uint32)
	reset                   func()
	run                     func()
	serializeSize           func() uintptr
	serialize               func(data unsafe.Pointer, size uintptr) bool
	unserialize             func(data unsafe.Pointer, size uintptr) bool
	loadGame                func(game *gameInfo) bool
	unloadGame              func()
	getMemoryData           func(id uint32) uintptr
	getMemorySize           func(id uint32) uintptr
}

// mirror of struct retro_system_info. the string fields are C pointers
// owned by the core.
type systemInfo struct {
	libraryName     uintptr
	libraryVersion  uintptr
	validExtensions uintptr
	needFullpath    bool
	blockExtract    bool
}

// mirror of struct retro_game_info.
type gameInfo struct {
	path uintptr
	data uintptr
	size uintptr
	meta uintptr
}

// mirror of struct retro_system_av_info.
type systemAVInfo struct {
	geometry struct {
		baseWidth   uint32
		baseHeight  uint32
		maxWidth    uint32
		maxHeight   uint32
		aspectRatio float32
	}
	timing struct {
		fps        float64
		sampleRate float64
	}
}

// resolve binds every required entry point, failing on the first missing
// symbol so the error names it.
func (fns *coreFunctions) resolve(handle uintptr) error {
	register := func(fptr interface{}, name string) error {
		addr, err := purego.Dlsym(handle, name)
		if err != nil || addr == 0 {
			return fmt.Errorf("missing symbol %s", name)
		}
		purego.RegisterFunc(fptr, addr)
		return nil
	}

	for _, sym := range []struct {
		fptr interface{}
		name string
	}{
		{&fns.init, "retro_init"},
		{&fns.deinit, "retro_deinit"},
		{&fns.apiVersion, "retro_api_version"},
		{&fns.getSystemInfo, "retro_get_system_info"},
		{&fns.getSystemAVInfo, "retro_get_system_av_info"},
		{&fns.setEnvironment, "retro_set_environment"},
		{&fns.setVideoRefresh, "retro_set_video_refresh"},
		{&fns.setAudioSample, "retro_set_audio_sample"},
		{&fns.setAudioSampleBatch, "retro_set_audio_sample_batch"},
		{&fns.setInputPoll, "retro_set_input_poll"},
		{&fns.setInputState, "retro_set_input_state"},
		{&fns.setControllerPortDevice, "retro_set_controller_port_device"},
		{&fns.reset, "retro_reset"},
		{&fns.run, "retro_run"},
		{&fns.serializeSize, "retro_serialize_size"},
		{&fns.serialize, "retro_serialize"},
		{&fns.unserialize, "retro_unserialize"},
		{&fns.loadGame, "retro_load_game"},
		{&fns.unloadGame, "retro_unload_game"},
		{&fns.getMemoryData, "retro_get_memory_data"},
		{&fns.getMemorySize, "retro_get_memory_size"},
	} {
		if err := register(sym.fptr, sym.name); err != nil {
			return err
		}
	}

	return nil
}

// goString copies a NUL-terminated C string. Returns the empty string for a
// null pointer.
func goString(p uintptr) string {
	if p == 0 {
		return ""
	}

	var n int
	for *(*byte)(unsafe.Pointer(p + uintptr(n))) != 0 {
		n++
	}

	return string(unsafe.Slice((*byte)(unsafe.Pointer(p)), n))
}
