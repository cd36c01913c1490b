package mines

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/vancomm/quantum-mines/internal/circuit"
	"github.com/vancomm/quantum-mines/internal/entanglement"
	"github.com/vancomm/quantum-mines/internal/rng"
)

var Log = logrus.New()

// safeZone is the 3x3 block around the placement anchor kept free of mines.
const safeZone = 9

// MaxCells bounds width*height of a single grid.
const MaxCells = 1 << 22

// fits reports whether a width x height grid is non-empty and at most
// MaxCells large, without computing the product.
func fits(width, height int) bool {
	return width >= 1 && height >= 1 && width <= MaxCells/height
}

type Params struct {
	Width, Height, MineCount int
	Seed                     uint64
	Difficulty               string
}

func (p Params) Unpack() (w int, h int, mc int) {
	return p.Width, p.Height, p.MineCount
}

// Grid is one self-contained game. It performs no locking; a caller sharing
// a grid between goroutines must serialize access itself.
type Grid struct {
	width, height int
	mineCount     int
	difficulty    string
	seed          uint64

	gameOver, won bool
	charges       int

	cells   []Cell
	circuit circuit.Circuit
	links   *entanglement.Registry
	rng     *rng.SplitMix64

	mines       []bool /* real mine points */
	minesPlaced bool
}

// New builds a grid with every cell in superposition. Mines are placed on
// the first reveal or containment so that cell and its neighbours are safe.
func New(p Params) (*Grid, error) {
	width, height, mineCount := p.Unpack()
	if !fits(width, height) {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	total := width * height
	mineCount = max(min(mineCount, total-safeZone), 0)
	baseline := circuit.Clamp(float64(mineCount)/float64(total), 0, 1)

	g := &Grid{
		width:      width,
		height:     height,
		mineCount:  mineCount,
		difficulty: p.Difficulty,
		seed:       p.Seed,
		charges:    mineCount,
		cells:      make([]Cell, total),
		circuit:    circuit.ForDifficulty(p.Difficulty),
		links:      entanglement.ForDifficulty(total, p.Difficulty),
		rng:        rng.New(p.Seed),
		mines:      make([]bool, total),
	}

	for i := range g.cells {
		x, y := g.coords(i)
		noise := g.rng.Range(-0.05, 0.05)
		raw := circuit.Clamp(baseline+noise, 0, 1)
		g.cells[i] = Cell{X: x, Y: y, State: Superposition{g.circuit.Apply(raw)}}
	}

	Log.WithFields(logrus.Fields{
		"grid":    fmt.Sprintf("%dx%d(%d)", width, height, mineCount),
		"seed":    p.Seed,
		"circuit": g.circuit.String(),
		"links":   g.links.Len(),
	}).Debug("new grid")

	return g, nil
}

// RevealCell observes a cell. The first observation places the mines.
func (g *Grid) RevealCell(x, y int) Outcome {
	if g.gameOver || g.won {
		return GameAlreadyOver{}
	}
	i, ok := g.index(x, y)
	if !ok {
		return OutOfBounds{}
	}
	if !g.cells[i].Unresolved() {
		return AlreadyResolved{}
	}

	if !g.minesPlaced {
		g.placeMines(i)
	}

	if g.mines[i] {
		g.cells[i].State = Detonated{}
		g.gameOver = true
		g.propagate(i, true)
		return MineDetonated{X: x, Y: y}
	}

	return CellRevealed{Cell: g.resolveSafe(i)}
}

// ContainCell spends one charge guessing that the cell is a mine. A wrong
// guess reveals the cell and the charge stays spent.
func (g *Grid) ContainCell(x, y int) Outcome {
	if g.gameOver || g.won {
		return GameAlreadyOver{}
	}
	if g.charges == 0 {
		return NoChargesRemaining{}
	}
	i, ok := g.index(x, y)
	if !ok {
		return OutOfBounds{}
	}
	if !g.cells[i].Unresolved() {
		return AlreadyResolved{}
	}

	if !g.minesPlaced {
		g.placeMines(i)
	}

	g.charges--
	if g.charges < 0 {
		panic(AssertionError{"negative containment charges"})
	}

	if g.mines[i] {
		g.cells[i].State = Contained{}
		g.propagate(i, true)
		g.won = g.winConditionMet()
		return ContainmentSuccess{X: x, Y: y}
	}

	return ContainmentFailed{Cell: g.resolveSafe(i)}
}

// resolveSafe reveals a cell known to be safe, floods outward from zero
// counts and re-checks the win condition.
func (g *Grid) resolveSafe(i int) Cell {
	x, y := g.coords(i)
	adj := g.adjacentMines(i)
	g.cells[i].State = Revealed{AdjacentMines: adj}
	g.propagate(i, false)

	if adj == 0 {
		g.floodFill(i)
	}

	g.won = g.winConditionMet()
	return Cell{X: x, Y: y, State: Revealed{AdjacentMines: adj}}
}

func (g *Grid) floodFill(start int) {
	stack := []int{start}
	opened := 0
	for len(stack) > 0 {
		c := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		for j := range g.neighbours(c) {
			if !g.cells[j].Unresolved() || g.mines[j] {
				continue
			}
			adj := g.adjacentMines(j)
			g.cells[j].State = Revealed{AdjacentMines: adj}
			opened++
			if adj == 0 {
				stack = append(stack, j)
			}
		}
	}
	Log.WithField("opened", opened).Debug("flood fill")
}

func (g *Grid) winConditionMet() bool {
	if g.gameOver {
		return false
	}
	for _, c := range g.cells {
		if c.Unresolved() {
			return false
		}
	}
	return true
}
