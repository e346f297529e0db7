package shell

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/domino14/connect4/ai/player"
	"github.com/domino14/connect4/automatic"
	"github.com/domino14/connect4/board"
	"github.com/domino14/connect4/bot"
	"github.com/domino14/connect4/config"
	"github.com/domino14/connect4/game"
	"github.com/domino14/connect4/posfile"
)

const (
	botSearch = "search"
	botRandom = "random"
	botRemote = "remote"
)

type Response struct {
	message string
}

func msg(message string) *Response {
	return &Response{message: message}
}

// intOption parses an integer option, falling back to defaultI when it was not
// given.
func (cmd *shellcmd) intOption(key string, defaultI int) (int, error) {
	v, ok := cmd.options[key]
	if !ok {
		return defaultI, nil
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("option -%s: %w", key, err)
	}
	return i, nil
}

func (cmd *shellcmd) stringOption(key, defaultS string) string {
	if v, ok := cmd.options[key]; ok {
		return v
	}
	return defaultS
}

func parseOnOff(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "on":
		return true, nil
	case "off":
		return false, nil
	}
	return strconv.ParseBool(s)
}

func parseSide(s string) (board.Stone, error) {
	if strings.EqualFold(s, "none") {
		return board.Empty, nil
	}
	return board.StoneFromString(s)
}

func (sc *ShellController) newGame(cmd *shellcmd) (*Response, error) {
	human := board.PlayerX
	if len(cmd.args) > 0 {
		var err error
		human, err = parseSide(cmd.args[0])
		if err != nil {
			return nil, err
		}
	}
	first, err := board.StoneFromString(cmd.stringOption("first", "x"))
	if err != nil {
		return nil, err
	}
	g, err := game.NewGame(sc.config.Width(), sc.config.Height(), first)
	if err != nil {
		return nil, err
	}
	sc.game = g
	sc.human = human
	return sc.afterMove("")
}

// afterMove lets the bot answer if it is its turn, then shows the game.
func (sc *ShellController) afterMove(prefix string) (*Response, error) {
	var sb strings.Builder
	sb.WriteString(prefix)
	for sc.game.Playing() && sc.human != board.Empty && sc.game.PlayerOnTurn() != sc.human {
		onturn := sc.game.PlayerOnTurn()
		col, err := sc.bot.ChooseMove(context.Background(), sc.game)
		if err != nil {
			return nil, fmt.Errorf("bot could not move: %w", err)
		}
		if err := sc.game.PlayMove(col); err != nil {
			return nil, err
		}
		fmt.Fprintf(&sb, "%s (%s) plays column %d.\n", sc.bot.Name(), onturn, col)
	}
	sb.WriteString(sc.game.ToDisplayText())
	return msg(sb.String()), nil
}

func (sc *ShellController) play(cmd *shellcmd) (*Response, error) {
	if sc.game == nil {
		return nil, errNoGame
	}
	if len(cmd.args) == 0 {
		return nil, errors.New("play needs a column")
	}
	if !sc.game.Playing() {
		return nil, game.ErrGameOver
	}
	col, err := sc.game.ParseColumn(cmd.args[0])
	if err != nil {
		// Input errors are shown as is.
		return msg(err.Error()), nil
	}
	if err := sc.game.PlayMove(col); err != nil {
		return nil, err
	}
	return sc.afterMove("")
}

// ai plays the engine's choice for the side on turn.
func (sc *ShellController) ai(cmd *shellcmd) (*Response, error) {
	if sc.game == nil {
		return nil, errNoGame
	}
	if !sc.game.Playing() {
		return nil, game.ErrGameOver
	}
	onturn := sc.game.PlayerOnTurn()
	score, col, err := sc.solver.BestMove(sc.game.Board(), onturn)
	if err != nil {
		return nil, err
	}
	if err := sc.game.PlayMove(col); err != nil {
		return nil, err
	}
	return sc.afterMove(fmt.Sprintf("Engine (%s) plays column %d, score %.3f.\n", onturn, col, score))
}

func (sc *ShellController) show(cmd *shellcmd) (*Response, error) {
	if sc.game == nil {
		return nil, errNoGame
	}
	return msg(sc.game.ToDisplayText()), nil
}

func (sc *ShellController) best(cmd *shellcmd) (*Response, error) {
	if sc.game == nil {
		return nil, errNoGame
	}
	if !sc.game.Playing() {
		return nil, game.ErrGameOver
	}
	score, col, err := sc.solver.BestMove(sc.game.Board(), sc.game.PlayerOnTurn())
	if err != nil {
		return nil, err
	}
	st := sc.solver.Stats()
	var sb strings.Builder
	fmt.Fprintf(&sb, "Best column: %d (score %.3f)\n", col, score)
	sb.WriteString(sc.solver.PrincipalVariation().String())
	fmt.Fprintf(&sb, "Nodes: %d  Leaves: %d  Cutoffs: %d  Time: %v\n",
		st.Nodes, st.Leaves, st.Cutoffs, st.Elapsed)
	return msg(sb.String()), nil
}

// undo takes moves back until the human is on turn again.
func (sc *ShellController) undo(cmd *shellcmd) (*Response, error) {
	if sc.game == nil {
		return nil, errNoGame
	}
	if err := sc.game.UnplayLastMove(); err != nil {
		return nil, err
	}
	for sc.human != board.Empty && sc.game.PlayerOnTurn() != sc.human && sc.game.Turn() > 0 {
		if err := sc.game.UnplayLastMove(); err != nil {
			return nil, err
		}
	}
	return msg(sc.game.ToDisplayText()), nil
}

func (sc *ShellController) settings() string {
	human := "none"
	if sc.human != board.Empty {
		human = sc.human.String()
	}
	var sb strings.Builder
	sb.WriteString("Settings:\n")
	fmt.Fprintf(&sb, "  plies: %d\n", sc.solver.Plies())
	fmt.Fprintf(&sb, "  pruning: %v\n", !sc.solver.PruningDisabled())
	fmt.Fprintf(&sb, "  bot: %s\n", sc.botName)
	fmt.Fprintf(&sb, "  human: %s\n", human)
	fmt.Fprintf(&sb, "  board: %dx%d\n", sc.config.Width(), sc.config.Height())
	return sb.String()
}

func (sc *ShellController) set(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) == 0 {
		return msg(sc.settings()), nil
	}
	if len(cmd.args) < 2 {
		return nil, errors.New("usage: set <option> <value>")
	}
	opt, val := cmd.args[0], cmd.args[1]
	switch opt {
	case "plies":
		plies, err := strconv.Atoi(val)
		if err != nil {
			return nil, err
		}
		if plies < 1 {
			return nil, fmt.Errorf("plies must be at least 1, got %d", plies)
		}
		sc.config.Set(config.ConfigPlies, plies)
		sc.solver.SetPlies(plies)
		if sp, ok := sc.bot.(*player.SearchPlayer); ok {
			sp.Solver().SetPlies(plies)
		}
	case "pruning":
		on, err := parseOnOff(val)
		if err != nil {
			return nil, err
		}
		sc.solver.SetPruningDisabled(!on)
		if sp, ok := sc.bot.(*player.SearchPlayer); ok {
			sp.Solver().SetPruningDisabled(!on)
		}
	case "bot":
		if err := sc.setBot(val); err != nil {
			return nil, err
		}
	case "human":
		human, err := parseSide(val)
		if err != nil {
			return nil, err
		}
		sc.human = human
	case "width", "height":
		n, err := strconv.Atoi(val)
		if err != nil {
			return nil, err
		}
		if n < 1 {
			return nil, fmt.Errorf("%s must be positive", opt)
		}
		sc.config.Set(opt, n)
		return msg(fmt.Sprintf("%s set to %d; takes effect on the next new game", opt, n)), nil
	default:
		return nil, fmt.Errorf("no such option: %s", opt)
	}
	return msg(fmt.Sprintf("%s set to %s", opt, val)), nil
}

func (sc *ShellController) setBot(name string) error {
	switch name {
	case botSearch:
		sp := player.NewSearchPlayer(sc.config)
		sp.Solver().SetPlies(sc.solver.Plies())
		sp.Solver().SetPruningDisabled(sc.solver.PruningDisabled())
		sc.bot = sp
	case botRandom:
		sc.bot = player.NewRandomPlayer(nil)
	case botRemote:
		if sc.nc == nil {
			nc, err := bot.Connect(context.Background(), sc.config.GetString(config.ConfigNatsURL))
			if err != nil {
				return err
			}
			sc.nc = nc
		}
		client := bot.NewClient(sc.nc, sc.config.GetString(config.ConfigNatsChannel), sc.solver.Plies())
		sc.bot = bot.NewRemotePlayer(client)
	default:
		return fmt.Errorf("unknown bot %q; use search, random or remote", name)
	}
	sc.botName = name
	return nil
}

func (sc *ShellController) load(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) == 0 {
		return nil, errors.New("need a position file to load")
	}
	pos, err := posfile.Load(cmd.args[0])
	if err != nil {
		return nil, err
	}
	g, err := pos.Game()
	if err != nil {
		return nil, err
	}
	sc.game = g
	if pos.Plies > 0 {
		if _, err := sc.set(&shellcmd{cmd: "set", args: []string{"plies", strconv.Itoa(pos.Plies)}}); err != nil {
			return nil, err
		}
	}
	// The loaded side to move is the human's.
	if sc.human != board.Empty {
		sc.human = g.PlayerOnTurn()
	}
	log.Debug().Str("file", cmd.args[0]).Str("gid", g.Uid()).Msg("loaded-position")
	return msg(g.ToDisplayText()), nil
}

func (sc *ShellController) save(cmd *shellcmd) (*Response, error) {
	if sc.game == nil {
		return nil, errNoGame
	}
	if len(cmd.args) == 0 {
		return nil, errors.New("need a file to save to")
	}
	if err := posfile.FromGame(sc.game, sc.solver.Plies()).Save(cmd.args[0]); err != nil {
		return nil, err
	}
	return msg("Saved position to " + cmd.args[0]), nil
}

func (sc *ShellController) gid(cmd *shellcmd) (*Response, error) {
	if sc.game == nil {
		return nil, errNoGame
	}
	return msg(sc.game.Uid()), nil
}

func (sc *ShellController) autoplay(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) > 0 && cmd.args[0] == "stop" {
		if !sc.gameRunnerRunning.Load() {
			return nil, errors.New("automatic game runner is not running")
		}
		sc.gameRunnerCancel()
		return msg("Stopping automatic game runner..."), nil
	}
	if sc.gameRunnerRunning.Load() {
		return nil, errors.New("automatic game runner is already running; use autoplay stop")
	}
	numGames, err := cmd.intOption("games", 100)
	if err != nil {
		return nil, err
	}
	threads, err := cmd.intOption("threads", sc.config.GetInt(config.ConfigAutoplayThreads))
	if err != nil {
		return nil, err
	}
	outputFile := cmd.stringOption("file", sc.config.GetString(config.ConfigAutoplayFile))
	player1 := cmd.stringOption("player1", automatic.SearchPlayerName)
	player2 := cmd.stringOption("player2", automatic.RandomPlayerName)
	var seeds [][32]byte
	if seedFile, ok := cmd.options["seedfile"]; ok {
		seeds, err = automatic.LoadSeeds(seedFile)
		if err != nil {
			return nil, err
		}
	}
	// The games run in the background while set may change the config,
	// so they get their own copy of the settings.
	settings := automatic.SettingsFromConfig(sc.config)
	// Fail now rather than in the background.
	for _, name := range []string{player1, player2} {
		if _, err := automatic.NewPlayer(name, settings.Plies, nil); err != nil {
			return nil, err
		}
	}

	sc.gameRunnerCtx, sc.gameRunnerCancel = context.WithCancel(context.Background())
	ctx, cancel := sc.gameRunnerCtx, sc.gameRunnerCancel
	sc.gameRunnerRunning.Store(true)
	go func() {
		defer func() {
			sc.gameRunnerRunning.Store(false)
			cancel()
		}()
		err := automatic.StartCompVComp(ctx, settings, numGames, threads,
			outputFile, player1, player2, seeds)
		if err != nil {
			log.Err(err).Msg("autoplay-failed")
			return
		}
		log.Info().Str("file", outputFile).Msg("autoplay-finished")
	}()
	return msg(fmt.Sprintf("Started %d games of %s vs %s on %d threads, logging to %s",
		numGames, player1, player2, threads, outputFile)), nil
}

func (sc *ShellController) autoAnalyze(cmd *shellcmd) (*Response, error) {
	file := sc.config.GetString(config.ConfigAutoplayFile)
	if len(cmd.args) > 0 {
		file = cmd.args[0]
	}
	analysis, err := automatic.AnalyzeLogFile(file)
	if err != nil {
		return nil, err
	}
	return msg(analysis), nil
}

func (sc *ShellController) help(cmd *shellcmd) (*Response, error) {
	var sb strings.Builder
	if len(cmd.args) == 0 {
		usage(&sb)
	} else {
		usageTopic(&sb, cmd.args[0])
	}
	return msg(sb.String()), nil
}
