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
	"os"
	"strings"

	"github.com/motifplay/motifplay/curated"
)

// sentinel error returned by FindCore.
const NoCoreFound = "libretro: no core found: %v"

// the environment variable consulted before searching well-known locations.
const coreEnvVar = "LIBRETRO_CORE"

// well-known locations for a NES core, searched in order.
var wellKnownCores = []string{
	"/tmp/fceumm_libretro.so",
	"/usr/lib/libretro/fceumm_libretro.so",
	"/usr/local/lib/libretro/fceumm_libretro.so",
	"~/.config/retroarch/cores/fceumm_libretro.so",
	"./fceumm_libretro.so",
}

// FindCore locates a core shared library: the LIBRETRO_CORE environment
// variable if set, otherwise the first well-known location that exists. A
// leading tilde in a well-known location expands to the HOME environment
// variable.
func FindCore() (string, error) {
	if path := os.Getenv(coreEnvVar); path != "" {
		return path, nil
	}

	for _, path := range wellKnownCores {
		path = expandHome(path)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}

	return "", curated.Errorf(NoCoreFound,
		fmt.Errorf("set %s or use the core flag", coreEnvVar))
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}

	home := os.Getenv("HOME")
	if home == "" {
		return path
	}

	return home + path[1:]
}
