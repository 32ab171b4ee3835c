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

// Package version records the version number of the binary. The version
// string is printed by the VERSION mode. It is not written to movie files,
// whose emulator version field is a fixed number.
package version

// Version number of the current release.
const Version = "0.1.0"
