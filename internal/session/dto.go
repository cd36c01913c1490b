package session

import (
	"github.com/vancomm/quantum-mines/internal/mines"
)

// OutcomeDTO is the wire form of a [mines.Outcome]. Cell is absent when the
// action was rejected.
type OutcomeDTO struct {
	Kind string      `json:"kind"`
	Cell *mines.Cell `json:"cell,omitempty"`
}

func NewOutcomeDTO(o mines.Outcome) *OutcomeDTO {
	dto := &OutcomeDTO{Kind: o.Kind()}
	var c mines.Cell
	switch o := o.(type) {
	case mines.CellRevealed:
		c = o.Cell
	case mines.ContainmentFailed:
		c = o.Cell
	case mines.MineDetonated:
		c = mines.Cell{X: o.X, Y: o.Y, State: mines.Detonated{}}
	case mines.ContainmentSuccess:
		c = mines.Cell{X: o.X, Y: o.Y, State: mines.Contained{}}
	default:
		return dto
	}
	dto.Cell = &c
	return dto
}

type Response struct {
	Command   string          `json:"command"`
	Outcome   *OutcomeDTO     `json:"outcome,omitempty"`
	Value     *float64        `json:"value,omitempty"`
	Cell      *mines.Cell     `json:"cell,omitempty"`
	Snapshot  *mines.Snapshot `json:"snapshot,omitempty"`
	Cloud     []float64       `json:"probability_cloud,omitempty"`
	Inspector *bool           `json:"inspector,omitempty"`
	Code      string          `json:"code,omitempty"`
	Board     string          `json:"board,omitempty"`
	Error     string          `json:"error,omitempty"`
}
