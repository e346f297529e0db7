package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync/atomic"
	"syscall"

	"github.com/chzyer/readline"
	"github.com/kballard/go-shellquote"
	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog/log"

	"github.com/domino14/connect4/ai/player"
	"github.com/domino14/connect4/board"
	"github.com/domino14/connect4/config"
	"github.com/domino14/connect4/game"
	"github.com/domino14/connect4/search/alphabeta"
)

var (
	errNoData            = errors.New("no data in this line")
	errWrongOptionSyntax = errors.New("wrong format; all options need arguments")
	errNoGame            = errors.New("no game is loaded; use new or load")
)

type ShellController struct {
	l      *readline.Instance
	out    io.Writer
	config *config.Config

	execPath   string
	gitVersion string

	game *game.Game
	// human is the side typed in at the prompt. The bot answers for the
	// other side; Empty means nobody answers automatically.
	human board.Stone

	solver  *alphabeta.Solver
	bot     player.Player
	botName string
	nc      *nats.Conn

	gameRunnerCtx     context.Context
	gameRunnerCancel  context.CancelFunc
	gameRunnerRunning atomic.Bool
}

type shellcmd struct {
	cmd     string
	args    []string
	options map[string]string
}

func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

func writeln(msg string, w io.Writer) {
	io.WriteString(w, msg)
	io.WriteString(w, "\n")
}

// newController sets up everything but the terminal.
func newController(cfg *config.Config, execPath, gitVersion string) *ShellController {
	sc := &ShellController{
		out:        os.Stdout,
		config:     cfg,
		execPath:   execPath,
		gitVersion: gitVersion,
		solver:     alphabeta.NewSolver(cfg),
		human:      board.PlayerX,
	}
	sc.bot = player.NewSearchPlayer(cfg)
	sc.botName = botSearch
	return sc
}

func NewShellController(cfg *config.Config, execPath, gitVersion string) *ShellController {
	prompt := "connect4"
	if gitVersion != "" {
		prompt += "-" + gitVersion
	}
	sc := newController(cfg, execPath, gitVersion)
	l, err := readline.NewEx(&readline.Config{
		Prompt:          "\033[31m" + prompt + ">\033[0m ",
		HistoryFile:     cfg.GetString(config.ConfigHistoryFile),
		EOFPrompt:       "exit",
		InterruptPrompt: "^C",
		AutoComplete:    NewShellCompleter(sc),

		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})
	if err != nil {
		panic(err)
	}
	sc.l = l
	sc.out = l.Stderr()
	return sc
}

func (sc *ShellController) showMessage(msg string) {
	writeln(msg, sc.out)
}

func (sc *ShellController) showError(err error) {
	sc.showMessage("Error: " + err.Error())
}

// Cleanup releases the bot connection, if any, and stops any running
// autoplay.
func (sc *ShellController) Cleanup() {
	if sc.gameRunnerCancel != nil {
		sc.gameRunnerCancel()
	}
	if sc.nc != nil {
		sc.nc.Close()
		sc.nc = nil
	}
}

// extractFields splits a line into a command, its positional arguments and
// its -option value pairs. Negative numbers are arguments, not options.
func extractFields(line string) (*shellcmd, error) {
	fields, err := shellquote.Split(line)
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, errNoData
	}
	cmd := fields[0]
	var args []string
	options := map[string]string{}
	for idx := 1; idx < len(fields); idx++ {
		f := fields[idx]
		if _, err := strconv.Atoi(f); err != nil && strings.HasPrefix(f, "-") && len(f) > 1 {
			if idx == len(fields)-1 {
				return nil, errWrongOptionSyntax
			}
			options[f[1:]] = fields[idx+1]
			idx++
			continue
		}
		args = append(args, f)
	}
	return &shellcmd{cmd: cmd, args: args, options: options}, nil
}

func (sc *ShellController) handle(cmd *shellcmd) (*Response, error) {
	switch cmd.cmd {
	case "new":
		return sc.newGame(cmd)
	case "play", "p":
		return sc.play(cmd)
	case "ai":
		return sc.ai(cmd)
	case "show", "s":
		return sc.show(cmd)
	case "best":
		return sc.best(cmd)
	case "undo":
		return sc.undo(cmd)
	case "set":
		return sc.set(cmd)
	case "load":
		return sc.load(cmd)
	case "save":
		return sc.save(cmd)
	case "gid":
		return sc.gid(cmd)
	case "autoplay":
		return sc.autoplay(cmd)
	case "autoanalyze":
		return sc.autoAnalyze(cmd)
	case "script":
		return sc.script(cmd)
	case "help":
		return sc.help(cmd)
	default:
		// A bare column number plays it.
		if _, err := strconv.Atoi(cmd.cmd); err == nil {
			return sc.play(&shellcmd{cmd: "play", args: []string{cmd.cmd}, options: cmd.options})
		}
		log.Debug().Msgf("you said: %v", strconv.Quote(cmd.cmd))
		return nil, fmt.Errorf("command %v not found", strconv.Quote(cmd.cmd))
	}
}

func (sc *ShellController) standardModeSwitch(line string, sig chan os.Signal) error {
	cmd, err := extractFields(line)
	if err != nil {
		if err != errNoData {
			sc.showError(err)
		}
		return nil
	}
	if cmd.cmd == "exit" || cmd.cmd == "quit" {
		sig <- syscall.SIGINT
		return errors.New("sending quit signal")
	}
	resp, err := sc.handle(cmd)
	if err != nil {
		sc.showError(err)
		return nil
	}
	if resp != nil && resp.message != "" {
		sc.showMessage(resp.message)
	}
	return nil
}

// Execute runs a single command line, for non-interactive use.
func (sc *ShellController) Execute(sig chan os.Signal, line string) {
	if err := sc.standardModeSwitch(line, sig); err != nil {
		log.Debug().Err(err).Msg("execute-returned")
	}
}

func (sc *ShellController) Loop(sig chan os.Signal) {
	defer sc.l.Close()

	sc.showMessage("Connect four. Type help for a list of commands.")
	for {
		line, err := sc.l.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				sig <- syscall.SIGINT
				break
			}
			continue
		} else if err == io.EOF {
			sig <- syscall.SIGINT
			break
		}
		line = strings.TrimSpace(line)

		if err := sc.standardModeSwitch(line, sig); err != nil {
			log.Debug().Err(err).Msg("")
			break
		}
	}
	log.Debug().Msgf("Exiting readline loop...")
}
