package bot

import (
	"encoding/json"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/matryer/is"
	"github.com/rs/zerolog"

	"github.com/domino14/connect4/ai/player"
	"github.com/domino14/connect4/board"
	"github.com/domino14/connect4/config"
	"github.com/domino14/connect4/game"
)

var _ player.Player = (*RemotePlayer)(nil)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	os.Exit(m.Run())
}

func request(t *testing.T, req MoveRequest) []byte {
	data, err := json.Marshal(req)
	if err != nil {
		t.Fatal(err)
	}
	return data
}

func TestHandleTakesWin(t *testing.T) {
	is := is.New(t)
	bot := NewBot(config.DefaultConfig())
	resp := bot.handle(request(t, MoveRequest{
		Rows: []string{
			".......",
			".......",
			".......",
			".......",
			".......",
			"xxx.ooo",
		},
		Player: "o",
		Plies:  3,
	}))
	is.Equal(resp.Error, "")
	is.Equal(resp.Column, 3)
	is.Equal(resp.Score, 1.0)
	is.Equal(resp.PV[0], 3)
}

func TestHandleBadRequests(t *testing.T) {
	is := is.New(t)
	bot := NewBot(config.DefaultConfig())

	resp := bot.handle([]byte("not json"))
	is.Equal(resp.Column, -1)
	is.True(strings.HasPrefix(resp.Error, "Could not parse request"))

	resp = bot.handle(request(t, MoveRequest{Rows: []string{"x..", "..."}, Player: "o"}))
	is.True(strings.HasPrefix(resp.Error, "Could not parse request"))

	resp = bot.handle(request(t, MoveRequest{Rows: []string{"...", "..."}, Player: "q"}))
	is.True(strings.HasPrefix(resp.Error, "Could not parse request"))

	resp = bot.handle(request(t, MoveRequest{Rows: []string{"xo", "ox"}, Player: "x"}))
	is.True(strings.HasPrefix(resp.Error, "Could not find a move"))
	is.Equal(resp.Column, -1)
}

func TestDeserializeCapsPlies(t *testing.T) {
	is := is.New(t)
	cfg := config.DefaultConfig()
	bot := NewBot(cfg)
	_, p, plies, err := bot.Deserialize(request(t, MoveRequest{Rows: []string{"..."}, Player: "x", Plies: 99}))
	is.NoErr(err)
	is.Equal(p, board.PlayerX)
	is.Equal(plies, MaxPlies)

	_, _, plies, err = bot.Deserialize(request(t, MoveRequest{Rows: []string{"..."}, Player: "x"}))
	is.NoErr(err)
	is.Equal(plies, cfg.Plies())
}

func TestRequestRoundTrip(t *testing.T) {
	is := is.New(t)
	g, err := game.NewGame(board.DefaultWidth, board.DefaultHeight, board.PlayerX)
	is.NoErr(err)
	is.NoErr(g.PlayMove(3))
	data, err := MakeRequest(g, 2)
	is.NoErr(err)

	bot := NewBot(config.DefaultConfig())
	b, p, plies, err := bot.Deserialize(data)
	is.NoErr(err)
	is.True(b.Equal(g.Board()))
	is.Equal(p, board.PlayerO)
	is.Equal(plies, 2)

	out, err := json.Marshal(bot.handle(data))
	is.NoErr(err)
	resp, err := decodeResponse(out)
	is.NoErr(err)
	is.True(resp.Column >= 0 && resp.Column < board.DefaultWidth)
}

func TestDecodeResponseError(t *testing.T) {
	is := is.New(t)
	_, err := decodeResponse([]byte(`{"column":-1,"error":"Could not parse request"}`))
	is.True(errors.Is(err, ErrBotError))
	is.True(strings.Contains(err.Error(), "Could not parse request"))
}
