package session

import (
	"encoding/json"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/quantum-mines/internal/mines"
	"github.com/vancomm/quantum-mines/internal/replay"
)

var params = mines.Params{Width: 8, Height: 8, MineCount: 10, Seed: 42, Difficulty: "researcher"}

func newSession(t *testing.T) *Session {
	t.Helper()
	s, err := New(params, rand.New(rand.NewPCG(1, 2)))
	require.NoError(t, err)
	return s
}

func exec(t *testing.T, s *Session, line string) *Response {
	t.Helper()
	resp, err := s.Exec(line)
	require.NoError(t, err, line)
	return resp
}

func TestNewRejectsInvalidParams(t *testing.T) {
	_, err := New(mines.Params{Width: 0, Height: 3}, nil)
	assert.ErrorIs(t, err, mines.ErrInvalidDimensions)
}

func TestSnapshotCommand(t *testing.T) {
	s := newSession(t)
	resp := exec(t, s, "g")
	assert.Equal(t, "g", resp.Command)
	require.NotNil(t, resp.Snapshot)
	assert.Equal(t, 8, resp.Snapshot.Width)
	assert.Equal(t, uint64(42), resp.Snapshot.Seed)
	assert.Len(t, resp.Snapshot.Cells, 64)
	assert.Nil(t, resp.Cloud)
}

func TestRevealAndContainAreRecorded(t *testing.T) {
	s := newSession(t)

	resp := exec(t, s, "o 4 4")
	require.NotNil(t, resp.Outcome)
	assert.Equal(t, "revealed", resp.Outcome.Kind)
	require.NotNil(t, resp.Outcome.Cell)
	assert.Equal(t, 4, resp.Outcome.Cell.X)
	assert.Len(t, s.Replay().Actions, 1)

	resp = exec(t, s, "o 4 4")
	assert.Equal(t, "already_resolved", resp.Outcome.Kind)
	assert.Nil(t, resp.Outcome.Cell)

	resp = exec(t, s, "c 99 0")
	assert.Equal(t, "out_of_bounds", resp.Outcome.Kind)
	assert.Len(t, s.Replay().Actions, 1, "rejected actions are not logged")

	resp = exec(t, s, "c 0 0")
	assert.Contains(t, []string{"containment_success", "containment_failed", "already_resolved"}, resp.Outcome.Kind)
}

func TestTools(t *testing.T) {
	s := newSession(t)
	before, ok := s.Grid().Cell(0, 0)
	require.True(t, ok)
	p := before.State.(mines.Superposition).Probability

	resp := exec(t, s, "f 0 0")
	require.NotNil(t, resp.Value)
	assert.InDelta(t, 1-p, *resp.Value, 1e-12)
	require.NotNil(t, resp.Cell)
	assert.Equal(t, mines.Superposition{Probability: *resp.Value}, resp.Cell.State)

	resp = exec(t, s, "m 0 0")
	require.NotNil(t, resp.Value)
	assert.InDelta(t, 1-p, *resp.Value, 1e-12)
	assert.Len(t, s.Replay().Actions, 2)

	exec(t, s, "o 4 4")
	resp = exec(t, s, "f 4 4")
	assert.Nil(t, resp.Value)
	assert.Equal(t, "cell is not in superposition: 4:4 is revealed", resp.Error)
	assert.Len(t, s.Replay().Actions, 3)
}

func TestMalformedCommands(t *testing.T) {
	cases := map[string]error{
		"":        ErrUnknownCommand,
		"x":       ErrUnknownCommand,
		"r":       ErrUnknownCommand,
		"o 1":     ErrArgCount,
		"g 1":     ErrArgCount,
		"i":       ErrArgCount,
		"o a 1":   ErrBadArgument,
		"f 1 b":   ErrBadArgument,
		"i maybe": ErrBadArgument,
		"m 1 2 3": ErrArgCount,
	}
	for line, want := range cases {
		t.Run(line, func(t *testing.T) {
			s := newSession(t)
			_, err := s.Exec(line)
			assert.ErrorIs(t, err, want)
			assert.Empty(t, s.Replay().Actions)
		})
	}
}

func TestInspector(t *testing.T) {
	s := newSession(t)
	resp := exec(t, s, "i on")
	require.NotNil(t, resp.Inspector)
	assert.True(t, *resp.Inspector)
	assert.Len(t, resp.Cloud, 64)

	resp = exec(t, s, "o 4 4")
	assert.Equal(t, s.Grid().ProbabilityCloud(), resp.Cloud)

	resp = exec(t, s, "i off")
	assert.False(t, *resp.Inspector)
	assert.Nil(t, resp.Cloud)
	assert.Nil(t, exec(t, s, "g").Cloud)

	assert.Len(t, exec(t, s, "p").Cloud, 64)
}

func TestShareCodeReplaysSession(t *testing.T) {
	s := newSession(t)
	_, err := s.ExecAll("m 1 1\no 4 4\nf 7 7\nc 0 7\nm 6 6")
	require.NoError(t, err)

	resp := exec(t, s, "s")
	require.NotEmpty(t, resp.Code)

	r, err := replay.Decode(resp.Code)
	require.NoError(t, err)
	g, _, err := r.Play()
	require.NoError(t, err)
	assert.Equal(t, s.Grid().Snapshot(), g.Snapshot())

	resumed, err := FromReplay(r, nil)
	require.NoError(t, err)
	assert.Equal(t, s.Grid().Snapshot(), resumed.Grid().Snapshot())
	assert.Equal(t, s.Replay(), resumed.Replay())
}

func TestNewGameKeepsParams(t *testing.T) {
	s := newSession(t)
	exec(t, s, "o 4 4")

	resp := exec(t, s, "n")
	require.NotNil(t, resp.Snapshot)
	assert.NotEqual(t, params.Seed, resp.Snapshot.Seed)
	assert.Equal(t, 1.0, resp.Snapshot.Entropy)
	assert.Empty(t, s.Replay().Actions)
	assert.Equal(t, resp.Snapshot.Seed, s.Replay().Seed)
	assert.Equal(t, "researcher", s.Grid().Difficulty())
	assert.Equal(t, 10, s.Grid().MineCount())
}

func TestExecAll(t *testing.T) {
	s := newSession(t)
	out, err := s.ExecAll("g\n\n o 4 4 \nb\n")
	require.NoError(t, err)
	require.Len(t, out, 3)
	assert.Equal(t, "b", out[2].Command)
	assert.Equal(t, s.Grid().String(), out[2].Board)

	out, err = s.ExecAll("g\nzz\no 0 0")
	assert.ErrorIs(t, err, ErrUnknownCommand)
	assert.ErrorContains(t, err, "line 2")
	assert.Len(t, out, 1)
}

func TestResponseJSON(t *testing.T) {
	s := newSession(t)
	data, err := json.Marshal(exec(t, s, "o 4 4"))
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, "o", raw["command"])
	outcome := raw["outcome"].(map[string]any)
	assert.Equal(t, "revealed", outcome["kind"])
	cell := outcome["cell"].(map[string]any)
	assert.Equal(t, "revealed", cell["state"])
	assert.Equal(t, "42", raw["snapshot"].(map[string]any)["seed"])
	assert.NotContains(t, raw, "error")
	assert.NotContains(t, raw, "probability_cloud")
}

func TestNewOutcomeDTO(t *testing.T) {
	revealed := mines.Cell{X: 1, Y: 2, State: mines.Revealed{AdjacentMines: 3}}
	cases := []struct {
		outcome mines.Outcome
		cell    *mines.Cell
	}{
		{mines.CellRevealed{Cell: revealed}, &revealed},
		{mines.ContainmentFailed{Cell: revealed}, &revealed},
		{mines.MineDetonated{X: 3, Y: 4}, &mines.Cell{X: 3, Y: 4, State: mines.Detonated{}}},
		{mines.ContainmentSuccess{X: 5, Y: 6}, &mines.Cell{X: 5, Y: 6, State: mines.Contained{}}},
		{mines.OutOfBounds{}, nil},
		{mines.NoChargesRemaining{}, nil},
	}
	for _, c := range cases {
		t.Run(c.outcome.Kind(), func(t *testing.T) {
			dto := NewOutcomeDTO(c.outcome)
			assert.Equal(t, c.outcome.Kind(), dto.Kind)
			assert.Equal(t, c.cell, dto.Cell)
		})
	}
}
