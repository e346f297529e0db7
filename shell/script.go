package shell

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/cjoudrey/gluahttp"
	"github.com/rs/zerolog/log"
	lua "github.com/yuin/gopher-lua"
	luajson "layeh.com/gopher-json"

	"github.com/domino14/connect4/board"
	"github.com/domino14/connect4/posfile"
)

const scriptHTTPTimeout = 30 * time.Second

func getShell(L *lua.LState) *ShellController {
	shell := L.GetGlobal("c4_shell")
	ud, ok := shell.(*lua.LUserData)
	if !ok {
		panic("luserdata not right type")
	}
	sc, ok := ud.Value.(*ShellController)
	if !ok {
		panic("shellcontroller not right type")
	}
	return sc
}

// shellFunc exposes a shell command to lua. The lua function takes the
// command's arguments as one string and returns the command's output, or
// a string starting with ERROR.
func shellFunc(name string) lua.LGFunction {
	return func(L *lua.LState) int {
		lv := L.ToString(1)
		sc := getShell(L)
		cmd, err := extractFields(name + " " + lv)
		if err == nil {
			var r *Response
			r, err = sc.handle(cmd)
			if err == nil {
				out := ""
				if r != nil {
					out = r.message
				}
				L.Push(lua.LString(out))
				return 1
			}
		}
		log.Err(err).Msgf("error-executing-%s", name)
		L.Push(lua.LString("ERROR: " + err.Error()))
		// return number of results pushed to stack.
		return 1
	}
}

// Best returns the score and column of the best move for the side on turn,
// or nil and an error message.
func Best(L *lua.LState) int {
	sc := getShell(L)
	if sc.game == nil {
		L.Push(lua.LNil)
		L.Push(lua.LString(errNoGame.Error()))
		return 2
	}
	score, col, err := sc.solver.BestMove(sc.game.Board(), sc.game.PlayerOnTurn())
	if err != nil {
		L.Push(lua.LNil)
		L.Push(lua.LString(err.Error()))
		return 2
	}
	L.Push(lua.LNumber(score))
	L.Push(lua.LNumber(col))
	return 2
}

type scriptState struct {
	Width   int      `json:"width"`
	Height  int      `json:"height"`
	ToMove  string   `json:"tomove"`
	Plies   int      `json:"plies"`
	Rows    []string `json:"rows"`
	Playing bool     `json:"playing"`
	Result  string   `json:"result"`
	Winner  string   `json:"winner"`
	History []int    `json:"history"`
}

// State returns the current game as a lua table with the fields of a
// position file plus playing, result, winner and history.
func State(L *lua.LState) int {
	sc := getShell(L)
	if sc.game == nil {
		L.Push(lua.LNil)
		return 1
	}
	pos := posfile.FromGame(sc.game, sc.solver.Plies())
	st := scriptState{
		Width:   pos.Width,
		Height:  pos.Height,
		ToMove:  pos.ToMove,
		Plies:   pos.Plies,
		Rows:    pos.Rows,
		Playing: sc.game.Playing(),
		Result:  sc.game.Result().String(),
		History: sc.game.History(),
	}
	if sc.game.Winner() != board.Empty {
		st.Winner = sc.game.Winner().String()
	}
	data, err := json.Marshal(st)
	if err != nil {
		L.RaiseError("encoding state: %v", err)
		return 0
	}
	v, err := luajson.Decode(L, data)
	if err != nil {
		L.RaiseError("decoding state: %v", err)
		return 0
	}
	L.Push(v)
	return 1
}

func (sc *ShellController) script(cmd *shellcmd) (*Response, error) {
	if cmd.args == nil {
		return nil, errors.New("need arguments for script")
	}

	filepath := cmd.args[0]

	L := lua.NewState()
	defer L.Close()

	L.PreloadModule("http", gluahttp.NewHttpModule(&http.Client{Timeout: scriptHTTPTimeout}).Loader)
	luajson.Preload(L)

	lsc := L.NewUserData()
	lsc.Value = sc

	L.SetGlobal("c4_shell", lsc)
	for _, name := range []string{"new", "play", "ai", "show", "set", "load", "save", "undo", "autoplay"} {
		L.SetGlobal("c4_"+name, L.NewFunction(shellFunc(name)))
	}
	L.SetGlobal("c4_best", L.NewFunction(Best))
	L.SetGlobal("c4_state", L.NewFunction(State))
	// Scripts can pass extra arguments after the file name.
	argt := L.NewTable()
	for _, a := range cmd.args[1:] {
		argt.Append(lua.LString(a))
	}
	L.SetGlobal("arg", argt)

	if err := L.DoFile(filepath); err != nil {
		log.Err(err).Msg("there was a error")
		return nil, err
	}
	if ret := L.GetGlobal("result"); ret != lua.LNil {
		return msg(strings.TrimRight(ret.String(), "\n")), nil
	}
	return nil, nil
}
