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

// Package curated implements a pattern-keyed error type. Errors are created
// with Errorf() in the same way as fmt.Errorf() but the format string is kept
// with the error and acts as its identity:
//
//	err := curated.Errorf(libretro.CoreLoadFailed, path)
//	...
//	if curated.Is(err, libretro.CoreLoadFailed) {
//		...
//	}
//
// Wrapped curated errors are searched by Has(). Error messages are normalised
// on output so that repeated message parts caused by wrapping at several
// levels appear only once.
package curated
