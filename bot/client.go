package bot

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog/log"

	"github.com/domino14/connect4/game"
)

const requestTimeout = 10 * time.Second

var ErrBotError = errors.New("bot returned an error")

type Client struct {
	// NATS connection
	nc      *nats.Conn
	channel string
	plies   int
}

// NewClient sends requests on channel. plies of 0 leaves the depth to the
// bot.
func NewClient(nc *nats.Conn, channel string, plies int) *Client {
	return &Client{nc: nc, channel: channel, plies: plies}
}

func MakeRequest(g *game.Game, plies int) ([]byte, error) {
	req := MoveRequest{
		Rows:   g.Board().Rows(),
		Player: g.PlayerOnTurn().String(),
		Plies:  plies,
	}
	return json.Marshal(req)
}

// decodeResponse turns a reply into a response, or an error wrapping
// ErrBotError if the bot could not answer.
func decodeResponse(data []byte) (*MoveResponse, error) {
	resp := &MoveResponse{}
	if err := json.Unmarshal(data, resp); err != nil {
		return nil, err
	}
	if resp.Error != "" {
		return nil, errors.Join(ErrBotError, errors.New(resp.Error))
	}
	return resp, nil
}

// RequestMove sends a game to the bot and gets a move back. Timeouts and
// missing responders are retried; a bot-side error is not.
func (c *Client) RequestMove(ctx context.Context, g *game.Game) (*MoveResponse, error) {
	data, err := MakeRequest(g, c.plies)
	if err != nil {
		return nil, err
	}
	return retry.DoWithData(
		func() (*MoveResponse, error) {
			rctx, cancel := context.WithTimeout(ctx, requestTimeout)
			defer cancel()
			res, err := c.nc.RequestWithContext(rctx, c.channel, data)
			if err != nil {
				if c.nc.LastError() != nil {
					log.Error().Msgf("%v for request", c.nc.LastError())
				}
				return nil, err
			}
			log.Debug().Msgf("res: %v", string(res.Data))
			resp, err := decodeResponse(res.Data)
			if err != nil {
				return nil, retry.Unrecoverable(err)
			}
			return resp, nil
		},
		retry.Context(ctx),
		retry.Attempts(3),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool {
			return errors.Is(err, nats.ErrTimeout) || errors.Is(err, nats.ErrNoResponders) ||
				errors.Is(err, context.DeadlineExceeded)
		}),
		retry.DelayType(func(n uint, err error, config *retry.Config) time.Duration {
			log.Err(err).Uint("n", n).Msg("bot-request-failed-try-again")
			return retry.BackOffDelay(n, err, config)
		}),
	)
}

// RemotePlayer asks a bot over NATS for its moves.
type RemotePlayer struct {
	client    *Client
	lastScore float64
}

func NewRemotePlayer(client *Client) *RemotePlayer {
	return &RemotePlayer{client: client}
}

func (p *RemotePlayer) Name() string {
	return "remote"
}

func (p *RemotePlayer) LastScore() float64 {
	return p.lastScore
}

func (p *RemotePlayer) ChooseMove(ctx context.Context, g *game.Game) (int, error) {
	if !g.Playing() {
		return -1, game.ErrGameOver
	}
	resp, err := p.client.RequestMove(ctx, g)
	if err != nil {
		return -1, err
	}
	p.lastScore = resp.Score
	return resp.Column, nil
}
