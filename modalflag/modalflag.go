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

// Package modalflag layers sub-modes on top of the flag package from the
// standard library. A program using it parses in rounds: declare the
// sub-modes and flags of the current layer, Parse(), inspect Mode(), then
// declare the next layer with NewMode() and Parse() again:
//
//	md := &modalflag.Modes{Output: os.Stdout}
//	md.NewArgs(os.Args[1:])
//	md.NewMode()
//	md.AddSubModes("PLAY", "LEARN")
//	p, err := md.Parse()
//	...
//	switch md.Mode() {
//	...
package modalflag

import (
	"flag"
	"fmt"
	"io"
	"strings"
)

// Modes is the top level of the command line handler.
type Modes struct {
	// where to print help messages. defaults to io.Discard if not set
	Output io.Writer

	// the underlying flagset for the current mode. recreated on every call
	// to NewMode()
	flags *flag.FlagSet

	args    []string
	argsIdx int

	// sub-modes valid in the current mode; the first is the default
	subModes []string

	// the series of sub-modes encountered over successive calls to Parse()
	path []string

	// the last call to Parse() consumed a sub-mode word from the arguments
	modeConsumed bool

	additionalHelp string
}

// ParseResult is returned from the Parse() function.
type ParseResult int

// a list of valid ParseResult values.
const (
	// continue with command line processing
	ParseContinue ParseResult = iota

	// help was requested and has been printed
	ParseHelp

	// an error has occurred and is returned as the second return value
	ParseError
)

// NewArgs initialises the handler with a list of arguments, and starts the
// first mode.
func (md *Modes) NewArgs(args []string) {
	md.args = args
	md.argsIdx = 0
	md.NewMode()
}

// NewMode indicates that further arguments should be considered part of a
// new mode.
func (md *Modes) NewMode() {
	md.subModes = nil
	md.flags = flag.NewFlagSet("", flag.ContinueOnError)
	md.flags.SetOutput(io.Discard)
	md.additionalHelp = ""
}

// AddSubModes declares the sub-modes valid in the current mode. The first
// sub-mode listed is the default when the arguments name none of them.
func (md *Modes) AddSubModes(subModes ...string) {
	md.subModes = append(md.subModes, subModes...)
}

// AdditionalHelp adds text displayed after the flag summary in help output.
func (md *Modes) AdditionalHelp(help string) {
	md.additionalHelp = help
}

// AddString defines a string flag in the current mode.
func (md *Modes) AddString(name string, value string, usage string) *string {
	return md.flags.String(name, value, usage)
}

// AddBool defines a boolean flag in the current mode.
func (md *Modes) AddBool(name string, value bool, usage string) *bool {
	return md.flags.Bool(name, value, usage)
}

// AddInt defines an integer flag in the current mode.
func (md *Modes) AddInt(name string, value int, usage string) *int {
	return md.flags.Int(name, value, usage)
}

// Mode returns the last mode to be encountered.
func (md *Modes) Mode() string {
	if len(md.path) == 0 {
		return ""
	}
	return md.path[len(md.path)-1]
}

// Path returns all the modes encountered during parsing.
func (md *Modes) Path() string {
	return strings.Join(md.path, "/")
}

func (md *Modes) String() string {
	return md.Path()
}

// RemainingArgs returns the arguments that are not flags or a listed
// sub-mode, after a call to Parse().
func (md *Modes) RemainingArgs() []string {
	args := md.flags.Args()
	if md.modeConsumed && len(args) > 0 {
		return args[1:]
	}
	return args
}

// GetArg returns the remaining argument at idx, or the empty string.
func (md *Modes) GetArg(idx int) string {
	args := md.RemainingArgs()
	if idx >= len(args) {
		return ""
	}
	return args[idx]
}

// Parse the current layer of arguments.
func (md *Modes) Parse() (ParseResult, error) {
	output := md.Output
	if output == nil {
		output = io.Discard
	}

	md.modeConsumed = false

	err := md.flags.Parse(md.args[md.argsIdx:])
	if err != nil {
		if err == flag.ErrHelp {
			md.printHelp(output)
			return ParseHelp, nil
		}
		return ParseError, err
	}

	if len(md.subModes) > 0 {
		arg := strings.ToUpper(md.flags.Arg(0))

		// assume the default mode until the argument proves otherwise. the
		// mode word is consumed; everything after it is parsed by the next
		// layer
		mode := md.subModes[0]
		for _, sub := range md.subModes {
			if sub == arg {
				mode = arg
				md.argsIdx++
				md.modeConsumed = true
				break
			}
		}

		md.path = append(md.path, mode)
	}

	return ParseContinue, nil
}

func (md *Modes) printHelp(output io.Writer) {
	if len(md.subModes) > 0 {
		fmt.Fprintf(output, "available sub-modes: %s\n", strings.Join(md.subModes, ", "))
		fmt.Fprintf(output, "    default: %s\n", md.subModes[0])
	}

	// temporarily redirect the flagset's output for the default summary
	md.flags.SetOutput(output)
	md.flags.PrintDefaults()
	md.flags.SetOutput(io.Discard)

	if md.additionalHelp != "" {
		fmt.Fprintf(output, "\n%s\n", md.additionalHelp)
	}
}
