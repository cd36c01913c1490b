package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gorilla/websocket"

	"github.com/vancomm/quantum-mines/internal/config"
	"github.com/vancomm/quantum-mines/internal/mines"
	"github.com/vancomm/quantum-mines/internal/replay"
	"github.com/vancomm/quantum-mines/internal/session"
)

type GameHandler struct {
	logger   *slog.Logger
	ws       *config.WebSocket
	defaults config.GameConfig
}

func NewGameHandler(
	logger *slog.Logger,
	ws *config.WebSocket,
	defaults config.GameConfig,
) *GameHandler {
	return &GameHandler{
		logger:   logger,
		ws:       ws,
		defaults: defaults,
	}
}

// Play upgrades to a WebSocket bound to one fresh game. Each text message is
// a newline separated batch of session commands answered by one
// [PlayReply]. The game ends with the connection.
func (g GameHandler) Play(w http.ResponseWriter, r *http.Request) {
	dto, err := ParsePlayDTO(g.defaults, r.URL.Query())
	if err != nil {
		sendErrorOrLog(w, g.logger, http.StatusBadRequest, err)
		return
	}

	s, err := dto.Session()
	if err != nil {
		sendErrorOrLog(w, g.logger, http.StatusBadRequest, err)
		return
	}

	c, err := g.ws.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		g.logger.Error("unable to upgrade", slog.Any("error", err))
		return
	}
	defer c.Close()
	c.SetReadLimit(g.ws.MaxMessageSize)

	grid := s.Grid()
	logger := g.logger.With(
		slog.String("grid", fmt.Sprintf("%dx%d(%d)", grid.Width(), grid.Height(), grid.MineCount())),
		slog.Uint64("seed", grid.Seed()),
		slog.String("difficulty", grid.Difficulty()),
	)
	logger.Debug("game started")

	first, err := s.Exec("g")
	if err != nil {
		logger.Error("unable to snapshot new game", slog.Any("error", err))
		return
	}
	if err := c.WriteJSON(PlayReply{Responses: []*session.Response{first}}); err != nil {
		logger.Warn("unable to send initial state", slog.Any("error", err))
		return
	}

	for {
		mt, message, err := c.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.Warn("abnormal ws break", slog.Any("error", err))
			}
			break
		}
		if mt != websocket.TextMessage {
			break
		}
		text := strings.TrimSpace(string(message))
		logger.Debug(fmt.Sprintf("\t> %s", text))

		responses, err := s.ExecAll(text)
		reply := PlayReply{Responses: responses}
		if err != nil {
			reply.Error = err.Error()
		}
		if reply.Responses == nil {
			reply.Responses = []*session.Response{}
		}
		if err := c.WriteJSON(reply); err != nil {
			logger.Warn("unable to send reply", slog.Any("error", err))
			break
		}
	}

	grid = s.Grid()
	logger.Debug("game closed",
		slog.Bool("won", grid.Won()),
		slog.Bool("game_over", grid.GameOver()),
		slog.Float64("entropy", grid.Entropy()),
	)
}

// Replay rebuilds a shared game and returns its final state along with the
// outcome of every logged action.
func (g GameHandler) Replay(w http.ResponseWriter, r *http.Request) {
	dto, err := ParseReplayDTO(r.URL.Query())
	if err != nil {
		sendErrorOrLog(w, g.logger, http.StatusBadRequest, err)
		return
	}

	rp, err := replay.Decode(dto.Code)
	if err != nil {
		sendErrorOrLog(w, g.logger, http.StatusBadRequest, err)
		return
	}
	if tooLarge(rp.Width, rp.Height) {
		sendErrorOrLog(w, g.logger, http.StatusBadRequest,
			fmt.Errorf("%w: %dx%d", ErrGridTooLarge, rp.Width, rp.Height))
		return
	}

	grid, results, err := rp.Play()
	if errors.Is(err, mines.ErrInvalidDimensions) {
		sendErrorOrLog(w, g.logger, http.StatusBadRequest, err)
		return
	}
	if err != nil {
		sendErrorOrLog(w, g.logger, http.StatusUnprocessableEntity, err)
		return
	}

	outcomes := make([]string, len(results))
	for i, res := range results {
		switch {
		case res.Outcome != nil:
			outcomes[i] = res.Outcome.Kind()
		case res.Err != nil:
			outcomes[i] = "error"
		default:
			outcomes[i] = string(res.Action.Kind)
		}
	}

	sendJSONOrLog(w, g.logger, ReplayResponse{
		Replay:   rp,
		Outcomes: outcomes,
		Snapshot: grid.Snapshot(),
	})
}
