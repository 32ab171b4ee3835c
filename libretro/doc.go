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

// Package libretro hosts a frame-stepping emulator core loaded from a
// shared library at runtime. The Host type resolves the core's well-known
// entry points by name, registers the callback trampolines the core
// expects, and presents a small synchronous interface: step one frame with
// an input byte, read the system RAM, serialise and deserialise the
// opaque machine state, and fetch the video frame and audio of the last
// step.
//
// Everything is single threaded. The core is not re-entrant and all Host
// operations must be serialised by the caller. The callback trampolines
// locate the host through a package-level pointer refreshed on every
// host-to-core call; a core that spawns its own threads and invokes
// callbacks from them is unsupported. Only one Host may be active in a
// process at a time.
package libretro
