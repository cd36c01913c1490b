// Package calibrate measures how well the displayed probabilities track the
// hidden layout. Each game is played in isolation: the truth of a cell is
// learned by revealing it on a throwaway clone, never by reading the grid's
// internals.
package calibrate

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"time"

	"github.com/cheggaaa/pb/v3"
	"golang.org/x/sync/errgroup"

	"github.com/vancomm/quantum-mines/internal/mines"
)

type Options struct {
	// Params describes every game; its Seed is replaced per game.
	Params    mines.Params
	Games     int
	FirstSeed uint64
	Workers   int
	// Confidence of the mine rate interval, 0.95 when unset.
	Confidence float64
	// Progress receives a progress bar; nil keeps it silent.
	Progress io.Writer
}

func (o Options) withDefaults() Options {
	if o.Workers <= 0 {
		o.Workers = runtime.GOMAXPROCS(0)
	}
	if o.Confidence <= 0 || o.Confidence >= 1 {
		o.Confidence = 0.95
	}
	return o
}

// sample is what one game contributes.
type sample struct {
	firstClickSafe bool
	chainContained int
	hints          []float64
	truths         []bool
}

// Run plays opts.Games games starting at opts.FirstSeed and summarizes them.
// It stops early with ctx's error when ctx is cancelled.
func Run(ctx context.Context, opts Options) (*Report, error) {
	opts = opts.withDefaults()
	if opts.Games < 1 {
		return nil, errors.New("games must be positive")
	}
	if opts.Params.Width < 1 || opts.Params.Height < 1 {
		return nil, fmt.Errorf("%w: %dx%d", mines.ErrInvalidDimensions, opts.Params.Width, opts.Params.Height)
	}

	bar := pb.New(opts.Games)
	if opts.Progress != nil {
		bar.SetWriter(opts.Progress)
	} else {
		bar.SetWriter(io.Discard)
	}
	bar.Start()

	samples := make([]sample, opts.Games)
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Workers)
	for i := range opts.Games {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			p := opts.Params
			p.Seed = opts.FirstSeed + uint64(i)
			s, err := playOne(p)
			if err != nil {
				return fmt.Errorf("seed %d: %w", p.Seed, err)
			}
			samples[i] = s
			bar.Increment()
			return nil
		})
	}
	err := g.Wait()
	used := time.Since(bar.StartTime())
	bar.Finish()
	if err != nil {
		return nil, err
	}

	r := summarize(opts, samples)
	r.Duration = used
	return r, nil
}

// playOne reveals the centre cell, then probes every cell still in
// superposition.
func playOne(p mines.Params) (sample, error) {
	grid, err := mines.New(p)
	if err != nil {
		return sample{}, err
	}

	var s sample
	out := grid.RevealCell(grid.Width()/2, grid.Height()/2)
	_, detonated := out.(mines.MineDetonated)
	s.firstClickSafe = !detonated
	if detonated {
		return s, nil
	}

	for y := range grid.Height() {
		for x := range grid.Width() {
			c, _ := grid.Cell(x, y)
			sp, ok := c.State.(mines.Superposition)
			if !ok {
				continue
			}
			isMine, err := probe(grid, x, y)
			if err != nil {
				return sample{}, err
			}
			s.hints = append(s.hints, sp.Probability)
			s.truths = append(s.truths, isMine)
		}
	}

	// only hard chains can contain a mine during the opening
	for _, c := range grid.Snapshot().Cells {
		if _, ok := c.State.(mines.Contained); ok {
			s.chainContained++
		}
	}
	return s, nil
}

func probe(grid *mines.Grid, x, y int) (bool, error) {
	switch o := grid.Clone().RevealCell(x, y).(type) {
	case mines.MineDetonated:
		return true, nil
	case mines.CellRevealed:
		return false, nil
	default:
		return false, fmt.Errorf("probe %d:%d got %s", x, y, o.Kind())
	}
}
