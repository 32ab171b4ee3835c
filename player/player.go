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

// Package player is the greedy search loop that plays the game. Each
// committed frame it tries a selection of motifs from the current state,
// scores the immediate memory change of each against the objective set,
// estimates the future beyond it with bounded rollouts, and commits the
// motif with the best total. There is no backtracking; a committed input
// is final.
//
// The rollout depths adapt to a moving window of recent future scores:
// when futures look bad the search goes wider and shallower, when they
// look good it goes deeper and narrower. The set of motifs tried per frame
// shrinks over time to the historically useful ones, tracked by an
// exponential moving average of each motif's score.
package player

import (
	"fmt"
	"io"
	"sort"

	"github.com/motifplay/motifplay/arcfour"
	"github.com/motifplay/motifplay/emulator"
	"github.com/motifplay/motifplay/logger"
	"github.com/motifplay/motifplay/motif"
	"github.com/motifplay/motifplay/movie"
	"github.com/motifplay/motifplay/objective"
)

const (
	// the number of recent future scores averaged by depth adaptation
	historySize = 50

	// exponential moving average factor for per-motif utility
	emaNew = 0.05

	// every motif is tried every frame until this many trials have been
	// recorded; after that selection prunes to the useful ones
	fullExplorationUses = 100

	// probability (out of 256) that a motif from the bottom half of the
	// utility table is tried anyway
	bottomHalfChance = 64

	// progress artifacts are written every this many committed frames
	artifactEvery = 10
)

// Player holds the state of the greedy search.
type Player struct {
	emu        *emulator.Emulator
	objectives *objective.WeightedObjectives
	motifs     *motif.Motifs
	motifVec   [][]byte

	// selection stream. weighted motif sampling uses the library's own
	// stream so that rollouts and selection stay independent
	rc *arcfour.ArcFour

	magnitude bool

	game        string
	romName     string
	romChecksum string

	// the committed input timeline and the memory at each committed frame
	movie    []byte
	memories [][]byte

	recentFutures []float64
	avoidDepths   [2]int
	seekDepths    [3]int

	motifScores []float64
	motifUses   int

	output io.Writer

	// commit steps through StepFull so the audiovisual hooks fire. cache
	// hits skip emulation, which silences any audio hook, so this is off
	// unless media is being recorded
	mediaSteps bool

	// optional hook called after every frameHookEvery committed frames
	frameHook      func(committed int)
	frameHookEvery int
}

// New is the preferred method of initialisation for the Player type. The
// seed keys the motif selection stream; a fixed seed makes the committed
// movie reproducible.
func New(emu *emulator.Emulator, objectives *objective.WeightedObjectives, motifs *motif.Motifs,
	game string, romName string, romChecksum string, seed string, magnitude bool,
	output io.Writer) *Player {

	return &Player{
		emu:         emu,
		objectives:  objectives,
		motifs:      motifs,
		motifVec:    motifs.AllMotifs(),
		rc:          arcfour.New(seed),
		magnitude:   magnitude,
		game:        game,
		romName:     romName,
		romChecksum: romChecksum,
		movie:       make([]byte, 0, 1024),
		memories:    make([][]byte, 0, 1024),
		avoidDepths: [2]int{20, 75},
		seekDepths:  [3]int{30, 30, 50},
		motifScores: make([]float64, len(motifs.AllMotifs())),
		output:      output,
	}
}

// SetMediaSteps makes committed frames run through StepFull so that audio
// and video hooks observe them.
func (p *Player) SetMediaSteps(on bool) {
	p.mediaSteps = on
}

// SetFrameHook registers a function called after every n committed frames.
func (p *Player) SetFrameHook(n int, hook func(committed int)) {
	if n < 1 {
		n = 1
	}
	p.frameHookEvery = n
	p.frameHook = hook
}

// Movie returns the committed input timeline so far.
func (p *Player) Movie() []byte {
	return p.movie
}

// FastForward replays the leading frames of an example movie, up to and
// including the first non-zero input. Games idle through menus at the
// start; searching there wastes the budget.
func (p *Player) FastForward(solution []byte) int {
	var skipped int
	for skipped < len(solution) {
		input := solution[skipped]
		p.commitStep(input)
		p.movie = append(p.movie, input)
		skipped++
		if input != 0 {
			break
		}
	}

	logger.Logf("player", "skipped %d frames until first keypress", skipped)
	return skipped
}

func (p *Player) scoreChange(mem1 []byte, mem2 []byte) float64 {
	if p.magnitude {
		return p.objectives.EvaluateMagnitude(mem1, mem2)
	}
	return p.objectives.Evaluate(mem1, mem2)
}

func (p *Player) commitStep(input byte) {
	if p.mediaSteps {
		p.emu.StepFull(input)
		return
	}

	if err := p.emu.CachingStep(input); err != nil {
		logger.Logf("player", "%v", err)
		p.emu.Step(input)
	}
}

// avoidBadFutures estimates how wrong things can go from the current
// state: two rollouts of weight-sampled motifs, scored against baseMemory
// at every single step, aggregated as the minimum observed. The emulator
// is left wherever the last rollout ended.
func (p *Player) avoidBadFutures(baseMemory []byte) (float64, error) {
	baseState, err := p.emu.SaveUncompressed()
	if err != nil {
		return 0, err
	}

	total := 1.0
	first := true
	for i := 0; i < len(p.avoidDepths); i++ {
		if i > 0 {
			if err := p.emu.LoadUncompressed(baseState); err != nil {
				return 0, err
			}
		}
		for d := 0; d < p.avoidDepths[i]; d++ {
			for _, input := range p.motifs.RandomWeightedMotif() {
				if err := p.emu.CachingStep(input); err != nil {
					return 0, err
				}
				score := p.scoreChange(baseMemory, p.emu.Memory())
				if first || score < total {
					total = score
				}
				first = false
			}
		}
	}

	return total, nil
}

// seekGoodFutures estimates how well things can go: three rollouts of
// weight-sampled motifs played end to end, scored against baseMemory only
// at the end, aggregated as the maximum. The emulator is left wherever the
// last rollout ended.
func (p *Player) seekGoodFutures(baseMemory []byte) (float64, error) {
	baseState, err := p.emu.SaveUncompressed()
	if err != nil {
		return 0, err
	}

	total := 1.0
	first := true
	for i := 0; i < len(p.seekDepths); i++ {
		if i > 0 {
			if err := p.emu.LoadUncompressed(baseState); err != nil {
				return 0, err
			}
		}
		for d := 0; d < p.seekDepths[i]; d++ {
			for _, input := range p.motifs.RandomWeightedMotif() {
				if err := p.emu.CachingStep(input); err != nil {
					return 0, err
				}
			}
		}

		score := p.scoreChange(baseMemory, p.emu.Memory())
		if first || score > total {
			total = score
		}
		first = false
	}

	return total, nil
}

// selectMotifs returns the indices of the motifs to try this frame. Until
// enough trials have been recorded every motif is tried. After that the
// top half by utility is always tried and each of the rest joins with a
// small probability. The result is shuffled either way.
func (p *Player) selectMotifs() []int {
	n := len(p.motifVec)
	indices := make([]int, n)
	for i := range indices {
		indices[i] = i
	}

	if p.motifUses < fullExplorationUses {
		arcfour.Shuffle(p.rc, indices)
		return indices
	}

	// sort by utility, best first. ties resolve by index so the sort is
	// deterministic
	sort.SliceStable(indices, func(a, b int) bool {
		return p.motifScores[indices[a]] > p.motifScores[indices[b]]
	})

	selected := make([]int, 0, n)
	selected = append(selected, indices[:n/2]...)
	for _, idx := range indices[n/2:] {
		if p.rc.Byte() < bottomHalfChance {
			selected = append(selected, idx)
		}
	}

	arcfour.Shuffle(p.rc, selected)
	return selected
}

func (p *Player) updateMotifScore(idx int, score float64) {
	p.motifScores[idx] = p.motifScores[idx]*(1-emaNew) + score*emaNew
	p.motifUses++
}

func (p *Player) recordFutureScore(score float64) {
	p.recentFutures = append(p.recentFutures, score)
	if len(p.recentFutures) > historySize {
		p.recentFutures = p.recentFutures[len(p.recentFutures)-historySize:]
	}
}

func (p *Player) averageFutureScore() float64 {
	if len(p.recentFutures) == 0 {
		return 0.0
	}
	var sum float64
	for _, s := range p.recentFutures {
		sum += s
	}
	return sum / float64(len(p.recentFutures))
}

// adaptFutureDepths switches the rollout depth tables on the windowed mean
// of recent future scores. Bad futures get a wider, shallower search; good
// futures a deeper, narrower one. Nothing changes until the window is half
// full.
func (p *Player) adaptFutureDepths() {
	if len(p.recentFutures) < historySize/2 {
		return
	}

	avg := p.averageFutureScore()
	switch {
	case avg < 0.3:
		p.avoidDepths = [2]int{10, 30}
		p.seekDepths = [3]int{15, 15, 25}
	case avg > 0.7:
		p.avoidDepths = [2]int{40, 150}
		p.seekDepths = [3]int{50, 50, 100}
	default:
		p.avoidDepths = [2]int{20, 75}
		p.seekDepths = [3]int{30, 30, 50}
	}
}

// Greedy runs frames rounds of the search. Each round commits every input
// of the best motif, so the movie grows by one motif length per round.
func (p *Player) Greedy(frames int) error {
	for frame := 0; frame < frames; frame++ {
		currentState, err := p.emu.SaveUncompressed()
		if err != nil {
			return err
		}
		currentMemory := p.emu.Memory()
		p.memories = append(p.memories, currentMemory)

		motifsToTry := p.selectMotifs()

		bestScore := -999999999.0
		var bestImmediate, bestFuture float64
		bestMotif := 0

		for trial, idx := range motifsToTry {
			if trial != 0 {
				if err := p.emu.LoadUncompressed(currentState); err != nil {
					return err
				}
			}

			for _, input := range p.motifVec[idx] {
				if err := p.emu.CachingStep(input); err != nil {
					return err
				}
			}

			newMemory := p.emu.Memory()
			newState, err := p.emu.SaveUncompressed()
			if err != nil {
				return err
			}

			immediate := p.scoreChange(currentMemory, newMemory)

			future, err := p.avoidBadFutures(newMemory)
			if err != nil {
				return err
			}

			if err := p.emu.LoadUncompressed(newState); err != nil {
				return err
			}

			seek, err := p.seekGoodFutures(newMemory)
			if err != nil {
				return err
			}
			future += seek

			score := immediate + future
			p.updateMotifScore(idx, score)

			if score > bestScore {
				bestScore = score
				bestImmediate = immediate
				bestFuture = future
				bestMotif = idx
			}
		}

		fmt.Fprintf(p.output, "%8d best score %.2f (%.2f + %.2f future) [tried %d/%d]\n",
			len(p.movie), bestScore, bestImmediate, bestFuture,
			len(motifsToTry), len(p.motifVec))

		p.recordFutureScore(bestFuture)
		p.adaptFutureDepths()

		if frame%100 == 0 {
			fmt.Fprintf(p.output, "         [adaptive: avg_future=%.2f, avoid=[%d,%d], seek=[%d,%d,%d]]\n",
				p.averageFutureScore(),
				p.avoidDepths[0], p.avoidDepths[1],
				p.seekDepths[0], p.seekDepths[1], p.seekDepths[2])
		}

		if err := p.emu.LoadUncompressed(currentState); err != nil {
			return err
		}
		for _, input := range p.motifVec[bestMotif] {
			p.commitStep(input)
			p.movie = append(p.movie, input)
		}

		if frame%artifactEvery == 0 {
			if err := p.writeProgress(); err != nil {
				return err
			}
		}

		if p.frameHook != nil && frame%p.frameHookEvery == 0 {
			p.frameHook(len(p.movie))
		}
	}

	return movie.WriteInputs(p.game+"-playfun-motif-final.fm2",
		p.romName, p.romChecksum, p.movie)
}

func (p *Player) writeProgress() error {
	err := movie.WriteInputs(p.game+"-playfun-motif-progress.fm2",
		p.romName, p.romChecksum, p.movie)
	if err != nil {
		return err
	}

	err = p.objectives.SaveSVG(p.memories, p.game+"-playfun.svg")
	if err != nil {
		return err
	}

	logger.Log("player", p.emu.CacheStats())
	return nil
}
