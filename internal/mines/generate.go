package mines

import (
	"github.com/sirupsen/logrus"

	"github.com/vancomm/quantum-mines/internal/circuit"
)

// placeMines lays out the mines, none of which is at anchor or within one
// square of it, then re-derives every unresolved hint from the real layout.
func (g *Grid) placeMines(anchor int) {
	ax, ay := g.coords(anchor)

	/*
	 * Write down the list of possible mine locations.
	 */
	candidates := make([]int, 0, len(g.cells))
	for i := range g.cells {
		x, y := g.coords(i)
		if absDiff(ay, y) > 1 || absDiff(ax, x) > 1 {
			candidates = append(candidates, i)
		}
	}

	/*
	 * Partial Fisher-Yates: the first mineCount slots end up holding a
	 * uniform sample of the candidates.
	 */
	n := len(candidates)
	k := min(g.mineCount, n)
	for i := range k {
		j := i + g.rng.IntN(n-i)
		candidates[i], candidates[j] = candidates[j], candidates[i]
	}
	for _, i := range candidates[:k] {
		g.mines[i] = true
	}
	g.minesPlaced = true

	placed := 0
	for _, m := range g.mines {
		if m {
			placed++
		}
	}
	if placed != g.mineCount {
		panic(AssertionError{"placed mine count differs from requested"})
	}

	Log.WithFields(logrus.Fields{
		"anchor": anchor,
		"mines":  placed,
	}).Debug("placed mines")

	g.recalculateProbabilities()
}

// recalculateProbabilities blends local mine density with the global
// baseline for every unresolved cell, adds noise and scrambles the result.
// Ground truth never leaves the grid except through these hints.
func (g *Grid) recalculateProbabilities() {
	baseline := float64(g.mineCount) / float64(len(g.cells))
	for i := range g.cells {
		if !g.cells[i].Unresolved() {
			continue
		}
		local := baseline
		if n := g.neighbourCount(i); n > 0 {
			local = float64(g.adjacentMines(i)) / float64(n)
		}
		blended := local*0.6 + baseline*0.4
		noise := g.rng.Range(-0.03, 0.03)
		raw := circuit.Clamp(blended+noise, 0.01, 0.99)
		g.cells[i].State = Superposition{Probability: g.circuit.Apply(raw)}
	}
}
