package mines

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// CellState is one of [Superposition], [Revealed], [Contained] or
// [Detonated]. A cell leaves Superposition exactly once and never returns.
type CellState interface {
	Name() string
	isCellState()
}

// Superposition is an unresolved cell; the player only sees Probability.
type Superposition struct {
	Probability float64
}

// Revealed is a cell observed safe.
type Revealed struct {
	AdjacentMines int
}

// Contained is a mine the player (or a hard chain) locked down.
type Contained struct{}

// Detonated is the mine that ended the game.
type Detonated struct{}

func (Superposition) Name() string { return "superposition" }
func (Revealed) Name() string      { return "revealed" }
func (Contained) Name() string     { return "contained" }
func (Detonated) Name() string     { return "detonated" }

func (Superposition) isCellState() {}
func (Revealed) isCellState()      {}
func (Contained) isCellState()     {}
func (Detonated) isCellState()     {}

type Cell struct {
	X, Y  int
	State CellState
}

func (c Cell) Unresolved() bool {
	_, ok := c.State.(Superposition)
	return ok
}

// [Cell] implements [fmt.Stringer]
func (c Cell) String() string {
	switch s := c.State.(type) {
	case Superposition:
		return "."
	case Revealed:
		if s.AdjacentMines == 0 {
			return " "
		}
		return strconv.Itoa(s.AdjacentMines)
	case Contained:
		return "*"
	case Detonated:
		return "X"
	default:
		return "!"
	}
}

type cellJSON struct {
	X             int      `json:"x"`
	Y             int      `json:"y"`
	State         string   `json:"state"`
	Probability   *float64 `json:"probability,omitempty"`
	AdjacentMines *int     `json:"adjacent_mines,omitempty"`
}

// [Cell] implements [json.Marshaler]
func (c Cell) MarshalJSON() ([]byte, error) {
	if c.State == nil {
		return nil, fmt.Errorf("cell %d:%d has no state", c.X, c.Y)
	}
	w := cellJSON{X: c.X, Y: c.Y, State: c.State.Name()}
	switch s := c.State.(type) {
	case Superposition:
		w.Probability = &s.Probability
	case Revealed:
		w.AdjacentMines = &s.AdjacentMines
	}
	return json.Marshal(w)
}

func (c *Cell) UnmarshalJSON(data []byte) error {
	var w cellJSON
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	c.X, c.Y = w.X, w.Y
	switch w.State {
	case "superposition":
		if w.Probability == nil {
			return fmt.Errorf("superposition cell %d:%d without probability", w.X, w.Y)
		}
		c.State = Superposition{Probability: *w.Probability}
	case "revealed":
		if w.AdjacentMines == nil {
			return fmt.Errorf("revealed cell %d:%d without adjacent_mines", w.X, w.Y)
		}
		c.State = Revealed{AdjacentMines: *w.AdjacentMines}
	case "contained":
		c.State = Contained{}
	case "detonated":
		c.State = Detonated{}
	default:
		return fmt.Errorf("unknown cell state %q", w.State)
	}
	return nil
}

// Board renders cells row by row, one character per cell.
func Board(cells []Cell, width int) string {
	var b strings.Builder
	for y := range len(cells) / width {
		for x := range width {
			fmt.Fprint(&b, cells[y*width+x].String()+" ")
		}
		fmt.Fprint(&b, "\n")
	}
	return b.String()
}
