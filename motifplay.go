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

// Motifplay plays deterministic retro console games by itself. A libretro
// core supplies the emulation; mined objective functions supply the notion
// of progress; a greedy rollout search supplies the inputs.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/motifplay/motifplay/emulator"
	"github.com/motifplay/motifplay/learn"
	"github.com/motifplay/motifplay/libretro"
	"github.com/motifplay/motifplay/logger"
	"github.com/motifplay/motifplay/modalflag"
	"github.com/motifplay/motifplay/motif"
	"github.com/motifplay/motifplay/movie"
	"github.com/motifplay/motifplay/objective"
	"github.com/motifplay/motifplay/player"
	"github.com/motifplay/motifplay/screenshot"
	"github.com/motifplay/motifplay/statsview"
	"github.com/motifplay/motifplay/version"
	"github.com/motifplay/motifplay/wavwriter"
)

const defaultGame = "smb"

func main() {
	md := &modalflag.Modes{Output: os.Stdout}
	md.NewArgs(os.Args[1:])
	md.AddSubModes("PLAY", "LEARN", "VERSION")
	md.AdditionalHelp(
		"usage: motifplay [mode] [flags] <game> [movie.fm2]\n" +
			"    the trailing .nes of the game name is stripped\n" +
			"    the movie defaults to <game>-walk.fm2")

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		os.Exit(0)
	case modalflag.ParseError:
		fmt.Printf("* error: %v\n", err)
		os.Exit(10)
	}

	switch md.Mode() {
	case "PLAY":
		err = play(md)
	case "LEARN":
		err = learnMode(md)
	case "VERSION":
		fmt.Printf("motifplay v%s\n", version.Version)
	}

	if err != nil {
		fmt.Printf("* error in %s mode: %v\n", md, err)
		os.Exit(1)
	}
}

// gameAndMovie resolves the positional arguments common to both modes.
func gameAndMovie(md *modalflag.Modes) (string, string) {
	game := md.GetArg(0)
	if game == "" {
		game = defaultGame
	}
	game = strings.TrimSuffix(game, ".nes")

	movieFile := md.GetArg(1)
	if movieFile == "" {
		movieFile = game + "-walk.fm2"
	}

	return game, movieFile
}

// initEmulator loads the core and the game ROM. The returned shutdown
// function is safe to defer immediately.
func initEmulator(corePath string, game string) (*emulator.Emulator, *libretro.Host, func(), error) {
	if corePath == "" {
		var err error
		corePath, err = libretro.FindCore()
		if err != nil {
			return nil, nil, func() {}, err
		}
	}

	host := libretro.NewHost()
	if err := host.Initialize(corePath, game+".nes"); err != nil {
		return nil, nil, func() {}, err
	}

	return emulator.New(host), host, host.Shutdown, nil
}

func play(md *modalflag.Modes) error {
	md.NewMode()

	core := md.AddString("core", "", "path to the libretro core shared library")
	magnitude := md.AddBool("magnitude", false, "use magnitude-weighted scoring")
	frames := md.AddInt("frames", 10000, "number of committed frames to play")
	cacheLimit := md.AddInt("cache", 100000, "state cache entry limit")
	cacheSlop := md.AddInt("slop", 10000, "state cache overshoot tolerance")
	seed := md.AddString("seed", "motifplay", "key for the motif selection stream")
	wavFile := md.AddString("wav", "", "record audio of committed frames to wav file")
	shots := md.AddInt("screenshot", 0, "write a png every n committed frames")
	stats := md.AddBool("stats", false, "launch the stats server")
	log := md.AddBool("log", false, "echo debugging log to stdout")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if *log {
		logger.SetEcho(os.Stdout, true)
	}

	game, movieFile := gameAndMovie(md)

	emu, host, shutdown, err := initEmulator(*core, game)
	if err != nil {
		return err
	}
	defer shutdown()

	if *stats {
		statsview.Launch(os.Stdout)
	}

	emu.ResetCache(uint64(*cacheLimit), uint64(*cacheSlop))

	objectives, err := objective.LoadFromFile(game + ".objectives")
	if err != nil {
		return err
	}
	fmt.Printf("loaded %d objective functions\n", objectives.Size())

	motifs, err := motif.LoadFromFile(game + ".motifs")
	if err != nil {
		return err
	}
	fmt.Printf("loaded %d motifs\n", motifs.Size())

	solution, err := movie.ReadInputs(movieFile)
	if err != nil {
		return err
	}

	ply := player.New(emu, objectives, motifs, game, game+".nes",
		movie.ROMChecksum(host.ROM()), *seed, *magnitude, os.Stdout)

	if *wavFile != "" {
		aw := wavwriter.New(*wavFile, host.SampleRate())
		host.SetAudioHook(aw.Add)
		ply.SetMediaSteps(true)
		defer func() {
			if err := aw.End(); err != nil {
				logger.Logf("play", "%v", err)
			}
		}()
	}

	if *shots > 0 {
		rgba := make([]byte, libretro.ImageWidth*libretro.ImageHeight*4)
		ply.SetMediaSteps(true)
		ply.SetFrameHook(*shots, func(committed int) {
			host.Image(rgba)
			filename := fmt.Sprintf("%s-%06d.png", game, committed)
			if err := screenshot.Save(rgba, libretro.ImageWidth, libretro.ImageHeight, filename); err != nil {
				logger.Logf("play", "%v", err)
			}
		})
	}

	ply.FastForward(solution)
	return ply.Greedy(*frames)
}

func learnMode(md *modalflag.Modes) error {
	md.NewMode()

	core := md.AddString("core", "", "path to the libretro core shared library")
	limit := md.AddInt("limit", 50, "maximum number of orderings to mine")
	seed := md.AddInt("seed", 0, "mining exploration seed (0 for natural order)")
	motifLen := md.AddInt("motiflen", 10, "length of derived motifs")
	log := md.AddBool("log", false, "echo debugging log to stdout")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if *log {
		logger.SetEcho(os.Stdout, true)
	}

	game, movieFile := gameAndMovie(md)

	emu, _, shutdown, err := initEmulator(*core, game)
	if err != nil {
		return err
	}
	defer shutdown()

	inputs, err := movie.ReadInputs(movieFile)
	if err != nil {
		return err
	}

	opts := learn.Options{
		Limit:    *limit,
		Seed:     *seed,
		MotifLen: *motifLen,
	}
	return learn.Run(emu, inputs, game, opts, os.Stdout)
}
