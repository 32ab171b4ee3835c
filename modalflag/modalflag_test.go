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

package modalflag_test

import (
	"strings"
	"testing"

	"github.com/motifplay/motifplay/modalflag"
	"github.com/motifplay/motifplay/test"
)

func TestDefaultMode(t *testing.T) {
	md := &modalflag.Modes{}
	md.NewArgs([]string{"smb"})
	md.AddSubModes("PLAY", "LEARN")

	p, err := md.Parse()
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, p, modalflag.ParseContinue)
	test.ExpectEquality(t, md.Mode(), "PLAY")
	test.ExpectEquality(t, md.GetArg(0), "smb")
}

func TestNamedMode(t *testing.T) {
	md := &modalflag.Modes{}
	md.NewArgs([]string{"learn", "smb"})
	md.AddSubModes("PLAY", "LEARN")

	p, err := md.Parse()
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, p, modalflag.ParseContinue)
	test.ExpectEquality(t, md.Mode(), "LEARN")
	test.ExpectEquality(t, md.GetArg(0), "smb")
}

func TestModeFlags(t *testing.T) {
	md := &modalflag.Modes{}
	md.NewArgs([]string{"play", "-magnitude", "smb", "walk.fm2"})
	md.AddSubModes("PLAY", "LEARN")

	p, err := md.Parse()
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, p, modalflag.ParseContinue)
	test.DemandEquality(t, md.Mode(), "PLAY")

	// flags belong to the layer of the chosen mode
	md.NewMode()
	magnitude := md.AddBool("magnitude", false, "use magnitude-weighted scoring")

	p, err = md.Parse()
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, p, modalflag.ParseContinue)
	test.ExpectSuccess(t, *magnitude)
	test.ExpectEquality(t, md.GetArg(0), "smb")
	test.ExpectEquality(t, md.GetArg(1), "walk.fm2")
	test.ExpectEquality(t, md.GetArg(2), "")
}

func TestHelp(t *testing.T) {
	w := &strings.Builder{}
	md := &modalflag.Modes{Output: w}
	md.NewArgs([]string{"-help"})
	md.AddSubModes("PLAY", "LEARN")
	md.AddBool("magnitude", false, "use magnitude-weighted scoring")

	p, err := md.Parse()
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, p, modalflag.ParseHelp)
	test.ExpectSuccess(t, strings.Contains(w.String(), "PLAY"))
	test.ExpectSuccess(t, strings.Contains(w.String(), "magnitude"))
}

func TestBadFlag(t *testing.T) {
	md := &modalflag.Modes{}
	md.NewArgs([]string{"-no-such-flag"})

	p, err := md.Parse()
	test.ExpectEquality(t, p, modalflag.ParseError)
	test.ExpectFailure(t, err)
}

func TestLayeredModes(t *testing.T) {
	md := &modalflag.Modes{}
	md.NewArgs([]string{"learn", "-limit", "10", "smb"})
	md.AddSubModes("PLAY", "LEARN")

	p, err := md.Parse()
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, p, modalflag.ParseContinue)
	test.DemandEquality(t, md.Mode(), "LEARN")

	// flags of the chosen mode are declared in a new layer
	md.NewMode()
	limit := md.AddInt("limit", 50, "maximum number of orderings to mine")

	p, err = md.Parse()
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, p, modalflag.ParseContinue)
	test.ExpectEquality(t, *limit, 10)
	test.ExpectEquality(t, md.GetArg(0), "smb")
	test.ExpectEquality(t, md.Path(), "LEARN")
}
