package mines

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"slices"

	"github.com/vancomm/quantum-mines/internal/circuit"
	"github.com/vancomm/quantum-mines/internal/entanglement"
	"github.com/vancomm/quantum-mines/internal/rng"
)

const (
	kindSuperposition uint8 = iota
	kindRevealed
	kindContained
	kindDetonated
)

type cellRecord struct {
	X, Y        int
	Kind        uint8
	Probability float64
	Adjacent    int
}

type gridRecord struct {
	Width, Height, MineCount int
	Difficulty               string
	Seed                     uint64
	GameOver, Won            bool
	Charges                  int
	Cells                    []cellRecord
	Circuit                  circuit.Circuit
	Links                    []entanglement.Link
	RNG                      []byte
	Mines                    []bool
	MinesPlaced              bool
}

// validate rejects records that would index outside the grid or break the
// mine and charge bookkeeping once play resumes.
func (rec gridRecord) validate() error {
	if !fits(rec.Width, rec.Height) {
		return fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, rec.Width, rec.Height)
	}
	total := rec.Width * rec.Height
	if len(rec.Cells) != total || len(rec.Mines) != total {
		return fmt.Errorf("%dx%d grid with %d cells and %d mine points",
			rec.Width, rec.Height, len(rec.Cells), len(rec.Mines))
	}
	if rec.MineCount < 0 || rec.MineCount > total {
		return fmt.Errorf("mine count %d out of range", rec.MineCount)
	}
	if rec.Charges < 0 {
		return fmt.Errorf("negative containment charges %d", rec.Charges)
	}
	for i, l := range rec.Links {
		if l.Left < 0 || l.Left >= total || l.Right < 0 || l.Right >= total {
			return fmt.Errorf("link %d (%d-%d) outside the grid", i, l.Left, l.Right)
		}
	}
	placed := 0
	for _, m := range rec.Mines {
		if m {
			placed++
		}
	}
	switch {
	case rec.MinesPlaced && placed != rec.MineCount:
		return fmt.Errorf("%d mines placed, want %d", placed, rec.MineCount)
	case !rec.MinesPlaced && placed != 0:
		return fmt.Errorf("%d mines set before placement", placed)
	}
	return nil
}

// Bytes encodes the whole grid, generator state included, so that a grid
// restored with [Decode] continues exactly where this one stands.
func (g *Grid) Bytes() ([]byte, error) {
	state, err := g.rng.MarshalBinary()
	if err != nil {
		return nil, err
	}
	rec := gridRecord{
		Width:       g.width,
		Height:      g.height,
		MineCount:   g.mineCount,
		Difficulty:  g.difficulty,
		Seed:        g.seed,
		GameOver:    g.gameOver,
		Won:         g.won,
		Charges:     g.charges,
		Cells:       make([]cellRecord, len(g.cells)),
		Circuit:     g.circuit,
		Links:       g.links.Links(),
		RNG:         state,
		Mines:       g.mines,
		MinesPlaced: g.minesPlaced,
	}
	for i, c := range g.cells {
		r := cellRecord{X: c.X, Y: c.Y}
		switch s := c.State.(type) {
		case Superposition:
			r.Kind, r.Probability = kindSuperposition, s.Probability
		case Revealed:
			r.Kind, r.Adjacent = kindRevealed, s.AdjacentMines
		case Contained:
			r.Kind = kindContained
		case Detonated:
			r.Kind = kindDetonated
		}
		rec.Cells[i] = r
	}

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(rec); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func Decode(buf []byte) (*Grid, error) {
	var rec gridRecord
	if err := gob.NewDecoder(bytes.NewReader(buf)).Decode(&rec); err != nil {
		return nil, err
	}
	if err := rec.validate(); err != nil {
		return nil, fmt.Errorf("malformed grid state: %w", err)
	}
	total := rec.Width * rec.Height

	r := &rng.SplitMix64{}
	if err := r.UnmarshalBinary(rec.RNG); err != nil {
		return nil, err
	}
	g := &Grid{
		width:       rec.Width,
		height:      rec.Height,
		mineCount:   rec.MineCount,
		difficulty:  rec.Difficulty,
		seed:        rec.Seed,
		gameOver:    rec.GameOver,
		won:         rec.Won,
		charges:     rec.Charges,
		cells:       make([]Cell, total),
		circuit:     rec.Circuit,
		links:       entanglement.FromLinks(rec.Links),
		rng:         r,
		mines:       rec.Mines,
		minesPlaced: rec.MinesPlaced,
	}
	for i, c := range rec.Cells {
		var s CellState
		switch c.Kind {
		case kindSuperposition:
			s = Superposition{Probability: c.Probability}
		case kindRevealed:
			s = Revealed{AdjacentMines: c.Adjacent}
		case kindContained:
			s = Contained{}
		case kindDetonated:
			s = Detonated{}
		default:
			return nil, fmt.Errorf("unknown cell kind %d at %d", c.Kind, i)
		}
		g.cells[i] = Cell{X: c.X, Y: c.Y, State: s}
	}
	return g, nil
}

// Clone returns an independent copy sharing no mutable state with g.
func (g *Grid) Clone() *Grid {
	c := *g
	c.cells = slices.Clone(g.cells)
	c.mines = slices.Clone(g.mines)
	c.circuit = circuit.Circuit{Gates: slices.Clone(g.circuit.Gates)}
	c.links = entanglement.FromLinks(g.links.Links())
	r := *g.rng
	c.rng = &r
	return &c
}
