// Package replay records the actions taken on a grid so that a game can be
// shared as its parameters plus an ordered action log and rebuilt anywhere.
package replay

import (
	"errors"
	"fmt"

	"github.com/vancomm/quantum-mines/internal/mines"
)

type ActionKind string

const (
	Reveal  ActionKind = "reveal"
	Contain ActionKind = "contain"
	Flip    ActionKind = "flip"
	Measure ActionKind = "measure"
)

var ErrUnknownAction = errors.New("unknown action")

func ParseActionKind(s string) (ActionKind, error) {
	switch k := ActionKind(s); k {
	case Reveal, Contain, Flip, Measure:
		return k, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownAction, s)
}

type Action struct {
	Kind ActionKind `json:"kind"`
	X    int        `json:"x"`
	Y    int        `json:"y"`
}

// Result is what one replayed action produced. Outcome is set for reveal and
// contain; Value and Err for the tools.
type Result struct {
	Action  Action
	Outcome mines.Outcome
	Value   float64
	Err     error
}

// Apply performs a on g.
func (a Action) Apply(g *mines.Grid) (Result, error) {
	res := Result{Action: a}
	switch a.Kind {
	case Reveal:
		res.Outcome = g.RevealCell(a.X, a.Y)
	case Contain:
		res.Outcome = g.ContainCell(a.X, a.Y)
	case Flip:
		res.Value, res.Err = g.ApplyFlipTool(a.X, a.Y)
	case Measure:
		res.Value, res.Err = g.WeakMeasure(a.X, a.Y)
	default:
		return res, fmt.Errorf("%w: %q", ErrUnknownAction, a.Kind)
	}
	return res, nil
}

type Replay struct {
	Seed       uint64   `json:"seed,string"`
	Difficulty string   `json:"difficulty"`
	Width      int      `json:"width"`
	Height     int      `json:"height"`
	MineCount  int      `json:"mine_count"`
	Actions    []Action `json:"actions"`
}

func New(p mines.Params) *Replay {
	return &Replay{
		Seed:       p.Seed,
		Difficulty: p.Difficulty,
		Width:      p.Width,
		Height:     p.Height,
		MineCount:  p.MineCount,
	}
}

func (r *Replay) Params() mines.Params {
	return mines.Params{
		Width:      r.Width,
		Height:     r.Height,
		MineCount:  r.MineCount,
		Seed:       r.Seed,
		Difficulty: r.Difficulty,
	}
}

func (r *Replay) Record(a Action) {
	r.Actions = append(r.Actions, a)
}

// Play rebuilds the grid from scratch and re-runs every recorded action.
// Since the grid is deterministic the result matches the recorded game.
func (r *Replay) Play() (*mines.Grid, []Result, error) {
	g, err := mines.New(r.Params())
	if err != nil {
		return nil, nil, err
	}
	results := make([]Result, 0, len(r.Actions))
	for i, a := range r.Actions {
		res, err := a.Apply(g)
		if err != nil {
			return nil, nil, fmt.Errorf("action %d: %w", i, err)
		}
		results = append(results, res)
	}
	return g, results, nil
}
