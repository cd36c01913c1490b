package handlers

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/gorilla/schema"

	"github.com/vancomm/quantum-mines/internal/circuit"
	"github.com/vancomm/quantum-mines/internal/config"
	"github.com/vancomm/quantum-mines/internal/mines"
	"github.com/vancomm/quantum-mines/internal/replay"
	"github.com/vancomm/quantum-mines/internal/rng"
	"github.com/vancomm/quantum-mines/internal/session"
)

// maxCells keeps a single connection from asking for an absurd grid.
const maxCells = 1 << 16

var ErrGridTooLarge = errors.New("grid too large")

// tooLarge compares against maxCells without multiplying, so huge sides
// cannot wrap around. Non-positive sides are left for mines.New to reject.
func tooLarge(width, height int) bool {
	return height > 0 && width > maxCells/height
}

var decoder = func() *schema.Decoder {
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)
	return dec
}()

// PlayDTO is the query of a /play request. Missing keys keep the configured
// defaults. Seed is either a number or any text, which is hashed. Code
// resumes a shared game and overrides everything else.
type PlayDTO struct {
	Width      int    `schema:"width"`
	Height     int    `schema:"height"`
	MineCount  int    `schema:"mine_count"`
	Difficulty string `schema:"difficulty"`
	Seed       string `schema:"seed"`
	Code       string `schema:"code"`
}

func ParsePlayDTO(defaults config.GameConfig, src map[string][]string) (PlayDTO, error) {
	dto := PlayDTO{
		Width:      defaults.Width,
		Height:     defaults.Height,
		MineCount:  defaults.MineCount,
		Difficulty: defaults.Difficulty,
	}
	if err := decoder.Decode(&dto, src); err != nil {
		return dto, err
	}
	if dto.Code != "" {
		return dto, nil
	}
	if dto.Width < 1 || dto.Height < 1 {
		return dto, fmt.Errorf("%w: %dx%d", mines.ErrInvalidDimensions, dto.Width, dto.Height)
	}
	if tooLarge(dto.Width, dto.Height) {
		return dto, fmt.Errorf("%w: %dx%d", ErrGridTooLarge, dto.Width, dto.Height)
	}
	if dto.MineCount < 0 {
		return dto, fmt.Errorf("mine_count must not be negative")
	}
	if !circuit.Difficulty(dto.Difficulty).Valid() {
		return dto, fmt.Errorf("unknown difficulty %q", dto.Difficulty)
	}
	return dto, nil
}

// ResolveSeed reads Seed as a number, then as text. An empty Seed takes one
// from fallback.
func (dto PlayDTO) ResolveSeed(fallback func() uint64) uint64 {
	if dto.Seed == "" {
		return fallback()
	}
	if n, err := strconv.ParseUint(dto.Seed, 10, 64); err == nil {
		return n
	}
	return rng.SeedFromString(dto.Seed)
}

// Session starts the game the request describes.
func (dto PlayDTO) Session() (*session.Session, error) {
	rnd := session.NewRand()
	if dto.Code != "" {
		r, err := replay.Decode(dto.Code)
		if err != nil {
			return nil, err
		}
		if tooLarge(r.Width, r.Height) {
			return nil, fmt.Errorf("%w: %dx%d", ErrGridTooLarge, r.Width, r.Height)
		}
		return session.FromReplay(r, rnd)
	}
	return session.New(mines.Params{
		Width:      dto.Width,
		Height:     dto.Height,
		MineCount:  dto.MineCount,
		Seed:       dto.ResolveSeed(rnd.Uint64),
		Difficulty: dto.Difficulty,
	}, rnd)
}

type ReplayDTO struct {
	Code string `schema:"code,required"`
}

func ParseReplayDTO(src map[string][]string) (ReplayDTO, error) {
	var dto ReplayDTO
	err := decoder.Decode(&dto, src)
	return dto, err
}

type ReplayResponse struct {
	Replay   *replay.Replay `json:"replay"`
	Outcomes []string       `json:"outcomes"`
	Snapshot mines.Snapshot `json:"snapshot"`
}

// PlayReply answers one WebSocket message. Error is set when a command in
// the batch was malformed; Responses then holds what ran before it.
type PlayReply struct {
	Responses []*session.Response `json:"responses"`
	Error     string              `json:"error,omitempty"`
}
