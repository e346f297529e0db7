// Package bot serves moves over NATS. A request carries a position and the
// player on turn; the reply is the column the search picks.
package bot

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog/log"

	"github.com/domino14/connect4/board"
	"github.com/domino14/connect4/config"
	"github.com/domino14/connect4/search/alphabeta"
)

// MaxPlies caps the depth a request may ask for.
const MaxPlies = 12

type MoveRequest struct {
	// Rows is the board, top row first, as in board.FromRows.
	Rows   []string `json:"rows"`
	Player string   `json:"player"`
	// Plies overrides the bot's configured depth when positive.
	Plies int `json:"plies,omitempty"`
}

type MoveResponse struct {
	Score  float64 `json:"score"`
	Column int     `json:"column"`
	PV     []int   `json:"pv,omitempty"`
	Error  string  `json:"error,omitempty"`
}

type Bot struct {
	config *config.Config
	solver *alphabeta.Solver
}

func NewBot(cfg *config.Config) *Bot {
	return &Bot{config: cfg, solver: alphabeta.NewSolver(cfg)}
}

func errorResponse(message string, err error) *MoveResponse {
	msg := message
	if err != nil {
		msg = fmt.Sprintf("%s: %s", msg, err.Error())
	}
	return &MoveResponse{Column: -1, Error: msg}
}

// Deserialize decodes a request into the board and the player on turn.
func (bot *Bot) Deserialize(data []byte) (*board.Board, board.Stone, int, error) {
	req := MoveRequest{}
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, board.Empty, 0, err
	}
	b, err := board.FromRows(req.Rows)
	if err != nil {
		return nil, board.Empty, 0, err
	}
	player, err := board.StoneFromString(req.Player)
	if err != nil {
		return nil, board.Empty, 0, err
	}
	plies := bot.config.Plies()
	if req.Plies > 0 {
		plies = min(req.Plies, MaxPlies)
	}
	return b, player, plies, nil
}

// handle answers a single request. It is not safe for concurrent use;
// NATS delivers a subscription's messages one at a time.
func (bot *Bot) handle(data []byte) *MoveResponse {
	b, player, plies, err := bot.Deserialize(data)
	if err != nil {
		return errorResponse("Could not parse request", err)
	}
	bot.solver.SetPlies(plies)
	score, col, err := bot.solver.BestMove(b, player)
	if err != nil {
		return errorResponse("Could not find a move", err)
	}
	pv := bot.solver.PrincipalVariation()
	log.Info().Int("column", col).Float64("score", score).
		Str("player", player.String()).Int("plies", plies).Msg("generated-move")
	return &MoveResponse{
		Score:  score,
		Column: col,
		PV:     append([]int(nil), pv.Columns...),
	}
}

// Connect dials the NATS server, retrying with backoff.
func Connect(ctx context.Context, url string) (*nats.Conn, error) {
	return retry.DoWithData(
		func() (*nats.Conn, error) {
			return nats.Connect(url, nats.Name("connect4-bot"))
		},
		retry.Context(ctx),
		retry.Attempts(5),
		retry.Delay(200*time.Millisecond),
		retry.DelayType(func(n uint, err error, config *retry.Config) time.Duration {
			log.Err(err).Uint("n", n).Str("url", url).Msg("nats-connect-failed-try-again")
			return retry.BackOffDelay(n, err, config)
		}),
	)
}

// Main serves move requests on channel until ctx is done.
func Main(ctx context.Context, channel string, bot *Bot) error {
	nc, err := Connect(ctx, bot.config.GetString(config.ConfigNatsURL))
	if err != nil {
		return err
	}
	defer nc.Close()

	_, err = nc.Subscribe(channel, func(m *nats.Msg) {
		log.Info().Msgf("RECV: %d bytes", len(m.Data))
		resp := bot.handle(m.Data)
		data, err := json.Marshal(resp)
		if err != nil {
			// Should never happen, ideally, but we need to do something sensible here.
			m.Respond([]byte(err.Error()))
			return
		}
		if err := m.Respond(data); err != nil {
			log.Err(err).Msg("respond-failed")
		}
	})
	if err != nil {
		return err
	}
	if err := nc.Flush(); err != nil {
		return err
	}
	if err := nc.LastError(); err != nil {
		return err
	}
	log.Info().Msgf("Listening on [%s]", channel)

	<-ctx.Done()
	log.Info().Msg("bot-draining")
	return nc.Drain()
}
