package mines

// Outcome is the result of [Grid.RevealCell] or [Grid.ContainCell]. The set
// of implementations is closed; switch on the concrete type.
type Outcome interface {
	Kind() string
	isOutcome()
}

type (
	OutOfBounds        struct{}
	GameAlreadyOver    struct{}
	AlreadyResolved    struct{}
	NoChargesRemaining struct{}

	// CellRevealed carries the cell as it was resolved.
	CellRevealed struct{ Cell Cell }

	MineDetonated struct{ X, Y int }

	ContainmentSuccess struct{ X, Y int }

	// ContainmentFailed means the contained cell was safe. It was revealed
	// and the charge is spent anyway.
	ContainmentFailed struct{ Cell Cell }
)

func (OutOfBounds) Kind() string        { return "out_of_bounds" }
func (GameAlreadyOver) Kind() string    { return "game_already_over" }
func (AlreadyResolved) Kind() string    { return "already_resolved" }
func (NoChargesRemaining) Kind() string { return "no_charges_remaining" }
func (CellRevealed) Kind() string       { return "revealed" }
func (MineDetonated) Kind() string      { return "mine_detonated" }
func (ContainmentSuccess) Kind() string { return "containment_success" }
func (ContainmentFailed) Kind() string  { return "containment_failed" }

func (OutOfBounds) isOutcome()        {}
func (GameAlreadyOver) isOutcome()    {}
func (AlreadyResolved) isOutcome()    {}
func (NoChargesRemaining) isOutcome() {}
func (CellRevealed) isOutcome()       {}
func (MineDetonated) isOutcome()      {}
func (ContainmentSuccess) isOutcome() {}
func (ContainmentFailed) isOutcome()  {}

// Rejected reports whether o refused the action without touching the grid.
func Rejected(o Outcome) bool {
	switch o.(type) {
	case OutOfBounds, GameAlreadyOver, AlreadyResolved, NoChargesRemaining:
		return true
	}
	return false
}
