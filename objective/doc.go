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

// Package objective derives and evaluates the objective functions that give
// the player its notion of progress.
//
// The Miner type works offline: given a sequence of memory snapshots
// recorded from example play, it enumerates the maximal orderings of memory
// indices under which the sequence never decreases. Orderings over
// byte-complemented snapshots capture values that decrease during play
// (timers counting down, distance remaining); their indices are reported
// as -(i+1).
//
// The WeightedObjectives type is the online half: a set of orderings with
// weights, scoring a memory transition either in binary mode (did each
// objective advance?) or magnitude mode (how far did it move?). Scores are
// normalised to [0, 1]. It also renders the trajectory of every objective
// across a memory sequence as an SVG plot.
package objective
