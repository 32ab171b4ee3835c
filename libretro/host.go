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
	"os"
	"runtime"
	"unsafe"

	"github.com/ebitengine/purego"
	"github.com/go-faster/city"
	"github.com/motifplay/motifplay/curated"
	"github.com/motifplay/motifplay/logger"
)

// sentinel errors returned by functions in the libretro package.
const (
	CoreLoadFailed     = "libretro: core: %v"
	ROMLoadFailed      = "libretro: rom: %v"
	AlreadyInitialised = "libretro: already initialised"
	NotInitialised     = "libretro: not initialised"
)

// Host drives a loaded libretro core. The zero value is unusable; create
// with NewHost and arm with Initialize.
type Host struct {
	handle uintptr
	fns    coreFunctions

	coreName    string
	coreVersion string

	// the ROM image and its NUL-terminated path, both kept alive for the
	// core for the whole session
	romData []byte
	romPath []byte

	avInfo systemAVInfo

	// per-port input bytes served to the input state callback
	input [2]byte

	// pixel format announced by the core through the environment callback.
	// 0RGB1555 is the libretro default for cores that never announce one
	pixelFormat int32

	// latest video frame, copied during the video callback
	frameData   []byte
	frameWidth  int
	frameHeight int
	framePitch  int

	// interleaved stereo samples accumulated during the current run
	audio []int16

	// optional hooks invoked from the low level callbacks
	videoHook func(data []byte, width int, height int, pitch int)
	audioHook func(mono []int16)

	loaded    bool
	romLoaded bool
}

// NewHost is the preferred method of initialisation for the Host type.
func NewHost() *Host {
	return &Host{}
}

// enter publishes the host to the callback trampolines before a call into
// the core.
func (host *Host) enter() {
	currentHost = host
}

// Initialize loads the core from pluginPath, verifies its API version,
// registers the callback trampolines, and loads the ROM at romPath. On
// success both controller ports are configured as joypads.
//
// Errors carry the CoreLoadFailed or ROMLoadFailed sentinel. A core load
// failure leaves the host cleanly unloaded; a ROM load failure leaves the
// core loaded. Initialising a host while one is active is an error and
// changes nothing.
func (host *Host) Initialize(pluginPath string, romPath string) error {
	if currentHost != nil && currentHost.loaded {
		return curated.Errorf(AlreadyInitialised)
	}

	// the core must always be entered from the same thread that registered
	// the callbacks
	runtime.LockOSThread()

	makeTrampolines()

	if err := host.loadCore(pluginPath); err != nil {
		runtime.UnlockOSThread()
		return err
	}

	if err := host.loadROM(romPath); err != nil {
		return err
	}

	return nil
}

func (host *Host) loadCore(pluginPath string) error {
	handle, err := purego.Dlopen(pluginPath, purego.RTLD_NOW|purego.RTLD_GLOBAL)
	if err != nil {
		return curated.Errorf(CoreLoadFailed, err)
	}
	host.handle = handle

	if err := host.fns.resolve(handle); err != nil {
		purego.Dlclose(handle)
		host.handle = 0
		return curated.Errorf(CoreLoadFailed, err)
	}

	if v := host.fns.apiVersion(); v != expectedAPIVersion {
		purego.Dlclose(handle)
		host.handle = 0
		return curated.Errorf(CoreLoadFailed,
			curated.Errorf("api version %d, want %d", v, expectedAPIVersion))
	}

	host.pixelFormat = pixelFormat0RGB1555

	// callbacks are registered before init and before any game is loaded
	host.enter()
	host.fns.setEnvironment(environmentTrampoline)
	host.fns.setVideoRefresh(videoTrampoline)
	host.fns.setAudioSample(audioSampleTrampoline)
	host.fns.setAudioSampleBatch(audioBatchTrampoline)
	host.fns.setInputPoll(inputPollTrampoline)
	host.fns.setInputState(inputStateTrampoline)
	host.fns.init()

	var info systemInfo
	host.fns.getSystemInfo(&info)
	host.coreName = goString(info.libraryName)
	host.coreVersion = goString(info.libraryVersion)

	host.loaded = true
	logger.Logf("libretro", "loaded core: %s v%s", host.coreName, host.coreVersion)

	return nil
}

func (host *Host) loadROM(romPath string) error {
	data, err := os.ReadFile(romPath)
	if err != nil {
		return curated.Errorf(ROMLoadFailed, err)
	}

	host.romData = data
	host.romPath = append([]byte(romPath), 0)

	game := gameInfo{
		path: uintptr(unsafe.Pointer(&host.romPath[0])),
		data: uintptr(unsafe.Pointer(&host.romData[0])),
		size: uintptr(len(host.romData)),
	}

	host.enter()
	if !host.fns.loadGame(&game) {
		return curated.Errorf(ROMLoadFailed, curated.Errorf("core rejected %s", romPath))
	}
	host.romLoaded = true

	host.fns.getSystemAVInfo(&host.avInfo)
	host.fns.setControllerPortDevice(0, deviceJoypad)
	host.fns.setControllerPortDevice(1, deviceJoypad)

	return nil
}

// Shutdown unloads the ROM and the core. The host can be initialised again
// afterwards.
func (host *Host) Shutdown() {
	if !host.loaded {
		return
	}

	host.enter()
	if host.romLoaded {
		host.fns.unloadGame()
		host.romLoaded = false
	}
	host.fns.deinit()
	purego.Dlclose(host.handle)

	host.handle = 0
	host.romData = nil
	host.romPath = nil
	host.frameData = nil
	host.audio = nil
	host.loaded = false
	currentHost = nil

	runtime.UnlockOSThread()
}

// Step runs the core for one frame with the given input byte on port 0.
// Port 1 is held at zero.
func (host *Host) Step(input byte) {
	host.enter()
	host.input[0] = input
	host.input[1] = 0
	host.audio = host.audio[:0]
	host.fns.run()

	if host.audioHook != nil && len(host.audio) > 0 {
		host.audioHook(host.Sound())
	}
}

// StepFull is identical to Step. The video and audio trampolines always
// record; the distinction exists so call sites can say whether they intend
// to consume the audiovisual output of the frame.
func (host *Host) StepFull(input byte) {
	host.Step(input)
}

// Reset the loaded game.
func (host *Host) Reset() {
	host.enter()
	host.fns.reset()
}

// RAM returns a zero-copy view of the core's system RAM region. The length
// is fixed for the session. Returns nil if the core exposes no system RAM.
func (host *Host) RAM() []byte {
	host.enter()
	data := host.fns.getMemoryData(memorySystemRAM)
	size := host.fns.getMemorySize(memorySystemRAM)
	if data == 0 || size == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(data)), int(size))
}

// RAMChecksum returns a 64-bit content hash of the current system RAM.
func (host *Host) RAMChecksum() uint64 {
	ram := host.RAM()
	if len(ram) == 0 {
		return 0
	}
	return city.CH64(ram)
}

// SerializeSize returns the byte length of the core's serialised state.
func (host *Host) SerializeSize() int {
	host.enter()
	return int(host.fns.serializeSize())
}

// Serialize the machine state into out, which must be at least
// SerializeSize() bytes. Returns false if the core declines.
func (host *Host) Serialize(out []byte) bool {
	if len(out) < host.SerializeSize() {
		return false
	}
	host.enter()
	return host.fns.serialize(unsafe.Pointer(&out[0]), uintptr(len(out)))
}

// Unserialize replaces the machine state with a previously serialised one.
// Returns false if the core declines.
func (host *Host) Unserialize(in []byte) bool {
	if len(in) == 0 {
		return false
	}
	host.enter()
	return host.fns.unserialize(unsafe.Pointer(&in[0]), uintptr(len(in)))
}

// Image converts the latest captured video frame into rgba, a 256x256
// RGBA8 buffer aligned top-left. Rows and columns the frame does not cover
// are black.
func (host *Host) Image(rgba []byte) {
	convertFrame(rgba, host.frameData, host.frameWidth, host.frameHeight,
		host.framePitch, host.pixelFormat)
}

// Sound returns the audio of the last step mixed down to mono, each sample
// (left+right)/2.
func (host *Host) Sound() []int16 {
	mono := make([]int16, len(host.audio)/2)
	for i := range mono {
		mono[i] = int16((int32(host.audio[i*2]) + int32(host.audio[i*2+1])) / 2)
	}
	return mono
}

// SampleRate of the core's audio output.
func (host *Host) SampleRate() int {
	return int(host.avInfo.timing.sampleRate)
}

// CoreName reported by the loaded core.
func (host *Host) CoreName() string {
	return host.coreName
}

// CoreVersion reported by the loaded core.
func (host *Host) CoreVersion() string {
	return host.coreVersion
}

// ROM returns the loaded ROM image.
func (host *Host) ROM() []byte {
	return host.romData
}

// SetVideoHook registers a function called with every captured frame, after
// the frame has been copied out of the core's buffer.
func (host *Host) SetVideoHook(hook func(data []byte, width int, height int, pitch int)) {
	host.videoHook = hook
}

// SetAudioHook registers a function called with the mono audio of every
// step that produced sound.
func (host *Host) SetAudioHook(hook func(mono []int16)) {
	host.audioHook = hook
}
