package mines

import "slices"

// Snapshot is the read-only view handed to hosts. Its fields are the
// contract any serialized form has to keep.
type Snapshot struct {
	Width              int     `json:"width"`
	Height             int     `json:"height"`
	GameOver           bool    `json:"game_over"`
	Won                bool    `json:"won"`
	Seed               uint64  `json:"seed,string"`
	ContainmentCharges int     `json:"containment_charges"`
	Entropy            float64 `json:"entropy"`
	Cells              []Cell  `json:"cells"`
}

func (g *Grid) Snapshot() Snapshot {
	return Snapshot{
		Width:              g.width,
		Height:             g.height,
		GameOver:           g.gameOver,
		Won:                g.won,
		Seed:               g.seed,
		ContainmentCharges: g.charges,
		Entropy:            g.Entropy(),
		Cells:              slices.Clone(g.cells),
	}
}

// ProbabilityCloud maps every cell to one float: its hint while unresolved,
// 1 for contained or detonated mines and 0 for revealed cells.
func (g *Grid) ProbabilityCloud() []float64 {
	cloud := make([]float64, len(g.cells))
	for i, c := range g.cells {
		switch s := c.State.(type) {
		case Superposition:
			cloud[i] = s.Probability
		case Contained, Detonated:
			cloud[i] = 1
		case Revealed:
			cloud[i] = 0
		}
	}
	return cloud
}

// Entropy is the fraction of cells still in superposition.
func (g *Grid) Entropy() float64 {
	if len(g.cells) == 0 {
		return 0
	}
	unresolved := 0
	for _, c := range g.cells {
		if c.Unresolved() {
			unresolved++
		}
	}
	return float64(unresolved) / float64(len(g.cells))
}

// IsWin holds when the game is not lost and no cell is left unresolved.
func (g *Grid) IsWin() bool {
	return g.winConditionMet()
}

func (g *Grid) Cell(x, y int) (Cell, bool) {
	i, ok := g.index(x, y)
	if !ok {
		return Cell{}, false
	}
	return g.cells[i], true
}

func (g *Grid) Width() int              { return g.width }
func (g *Grid) Height() int             { return g.height }
func (g *Grid) MineCount() int          { return g.mineCount }
func (g *Grid) Seed() uint64            { return g.seed }
func (g *Grid) Difficulty() string      { return g.difficulty }
func (g *Grid) ContainmentCharges() int { return g.charges }
func (g *Grid) GameOver() bool          { return g.gameOver }
func (g *Grid) Won() bool               { return g.won }
func (g *Grid) MinesPlaced() bool       { return g.minesPlaced }

// [Grid] implements [fmt.Stringer]
func (g *Grid) String() string {
	return Board(g.cells, g.width)
}
