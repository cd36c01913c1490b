// Package session drives one grid through the text command protocol used by
// the terminal and WebSocket hosts. Every command yields a JSON-ready
// [Response]. A Session is not safe for concurrent use.
package session

import (
	"fmt"
	"hash/maphash"
	"math/rand/v2"
	"strings"

	"github.com/vancomm/quantum-mines/internal/mines"
	"github.com/vancomm/quantum-mines/internal/replay"
)

type Session struct {
	grid      *mines.Grid
	log       *replay.Replay
	inspector bool
	rnd       *rand.Rand
}

// NewRand returns a generator seeded from the runtime's hash seed, for hosts
// that let the session pick seeds.
func NewRand() *rand.Rand {
	return rand.New(rand.NewPCG(
		new(maphash.Hash).Sum64(), new(maphash.Hash).Sum64(),
	))
}

// New starts a game with p. rnd supplies seeds for the "n" command.
func New(p mines.Params, rnd *rand.Rand) (*Session, error) {
	g, err := mines.New(p)
	if err != nil {
		return nil, err
	}
	if rnd == nil {
		rnd = NewRand()
	}
	return &Session{grid: g, log: replay.New(p), rnd: rnd}, nil
}

// FromReplay resumes the game a replay describes. Further commands extend
// the same log.
func FromReplay(r *replay.Replay, rnd *rand.Rand) (*Session, error) {
	g, _, err := r.Play()
	if err != nil {
		return nil, err
	}
	if rnd == nil {
		rnd = NewRand()
	}
	log := replay.New(r.Params())
	log.Actions = append(log.Actions, r.Actions...)
	return &Session{grid: g, log: log, rnd: rnd}, nil
}

func (s *Session) Grid() *mines.Grid      { return s.grid }
func (s *Session) Replay() *replay.Replay { return s.log }
func (s *Session) Inspector() bool        { return s.inspector }

// Exec runs one command line. Malformed commands return an error and leave
// the game untouched; a tool refused by the grid is reported in
// [Response.Error] instead.
func (s *Session) Exec(line string) (*Response, error) {
	cmd, err := parseCommand(line)
	if err != nil {
		return nil, err
	}
	resp := &Response{Command: cmd.name}

	switch cmd.name {
	case "g":
		resp.Snapshot = s.snapshot()
	case "o", "c":
		x, y, err := parseXY(cmd.args)
		if err != nil {
			return nil, err
		}
		kind := replay.Reveal
		if cmd.name == "c" {
			kind = replay.Contain
		}
		res, err := s.apply(replay.Action{Kind: kind, X: x, Y: y})
		if err != nil {
			return nil, err
		}
		resp.Outcome = NewOutcomeDTO(res.Outcome)
		resp.Snapshot = s.snapshot()
	case "f", "m":
		x, y, err := parseXY(cmd.args)
		if err != nil {
			return nil, err
		}
		kind := replay.Flip
		if cmd.name == "m" {
			kind = replay.Measure
		}
		res, err := s.apply(replay.Action{Kind: kind, X: x, Y: y})
		if err != nil {
			return nil, err
		}
		if res.Err != nil {
			resp.Error = res.Err.Error()
			break
		}
		v := res.Value
		resp.Value = &v
		if c, ok := s.grid.Cell(x, y); ok {
			resp.Cell = &c
		}
	case "p":
		resp.Cloud = s.grid.ProbabilityCloud()
	case "i":
		on, err := parseSwitch(cmd.args[0])
		if err != nil {
			return nil, err
		}
		s.inspector = on
		resp.Inspector = &on
	case "s":
		code, err := s.log.Encode()
		if err != nil {
			return nil, fmt.Errorf("unable to encode share code: %w", err)
		}
		resp.Code = code
	case "b":
		resp.Board = s.grid.String()
	case "n":
		if err := s.restart(); err != nil {
			return nil, err
		}
		resp.Snapshot = s.snapshot()
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownCommand, cmd.name)
	}

	if s.inspector && resp.Cloud == nil {
		resp.Cloud = s.grid.ProbabilityCloud()
	}
	return resp, nil
}

// ExecAll runs newline separated commands in order, skipping blank lines.
// It stops at the first malformed command and returns what ran before it.
func (s *Session) ExecAll(text string) ([]*Response, error) {
	var out []*Response
	for i, line := range iterBySep(strings.TrimSpace(text), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		resp, err := s.Exec(line)
		if err != nil {
			return out, fmt.Errorf("line %d: %w", i+1, err)
		}
		out = append(out, resp)
	}
	return out, nil
}

// apply runs a on the grid and logs it unless the grid refused it.
func (s *Session) apply(a replay.Action) (replay.Result, error) {
	res, err := a.Apply(s.grid)
	if err != nil {
		return res, err
	}
	if res.Err == nil && (res.Outcome == nil || !mines.Rejected(res.Outcome)) {
		s.log.Record(a)
	}
	return res, nil
}

func (s *Session) restart() error {
	p := s.log.Params()
	p.Seed = s.rnd.Uint64()
	g, err := mines.New(p)
	if err != nil {
		return err
	}
	s.grid = g
	s.log = replay.New(p)
	return nil
}

func (s *Session) snapshot() *mines.Snapshot {
	snap := s.grid.Snapshot()
	return &snap
}
