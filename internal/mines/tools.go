package mines

import (
	"fmt"

	"github.com/vancomm/quantum-mines/internal/circuit"
)

func (g *Grid) superposed(x, y int) (int, Superposition, error) {
	i, ok := g.index(x, y)
	if !ok {
		return 0, Superposition{}, fmt.Errorf("%w: %d:%d", ErrOutOfBounds, x, y)
	}
	sp, ok := g.cells[i].State.(Superposition)
	if !ok {
		return 0, Superposition{}, fmt.Errorf("%w: %d:%d is %s", ErrInvalidState, x, y, g.cells[i].State.Name())
	}
	return i, sp, nil
}

// ApplyFlipTool replaces the displayed probability p of an unresolved cell
// with 1-p and returns it. The layout is untouched.
func (g *Grid) ApplyFlipTool(x, y int) (float64, error) {
	i, sp, err := g.superposed(x, y)
	if err != nil {
		return 0, err
	}
	p := 1 - sp.Probability
	g.cells[i].State = Superposition{Probability: p}
	return p, nil
}

// WeakMeasure returns the displayed probability of an unresolved cell, then
// disturbs it by up to 0.04 either way.
func (g *Grid) WeakMeasure(x, y int) (float64, error) {
	i, sp, err := g.superposed(x, y)
	if err != nil {
		return 0, err
	}
	noise := g.rng.Range(-0.04, 0.04)
	g.cells[i].State = Superposition{
		Probability: circuit.Clamp(sp.Probability+noise, 0.01, 0.99),
	}
	return sp.Probability, nil
}
