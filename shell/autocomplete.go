package shell

import (
	"strconv"
	"strings"

	"github.com/kballard/go-shellquote"
)

// ShellCompleter provides context-aware autocomplete for shell commands
type ShellCompleter struct {
	sc *ShellController
}

func NewShellCompleter(sc *ShellController) *ShellCompleter {
	return &ShellCompleter{sc: sc}
}

// CommandMetadata holds autocomplete information for a command
type CommandMetadata struct {
	Options []string // Available options, e.g. "-games"
	Args    []string // Possible argument values
}

var commandNames = []string{
	"new", "play", "ai", "show", "best", "undo", "set", "load", "save",
	"gid", "autoplay", "autoanalyze", "script", "help", "exit",
}

var commandMetadata = map[string]CommandMetadata{
	"new": {
		Options: []string{"-first"},
		Args:    sides,
	},
	"set": {
		Args: []string{"plies", "pruning", "bot", "human", "width", "height"},
	},
	"autoplay": {
		Options: []string{"-games", "-threads", "-file", "-player1", "-player2", "-seedfile"},
		Args:    []string{"stop"},
	},
	"help": {
		Args: helpTopics,
	},
}

var (
	sides       = []string{"x", "o", "none"}
	botNames    = []string{botSearch, botRandom, botRemote}
	playerNames = []string{"search", "random"}
	onOff       = []string{"on", "off"}
)

// Do implements the readline.AutoComplete interface
func (c *ShellCompleter) Do(line []rune, pos int) ([][]rune, int) {
	text := string(line[:pos])

	fields, err := shellquote.Split(text)
	if err != nil {
		// An unterminated quote; fall back to simple space splitting.
		fields = strings.Fields(text)
	}
	endsWithSpace := len(text) > 0 && text[len(text)-1] == ' '

	var prefix string
	var completions []string

	if len(fields) == 0 || (len(fields) == 1 && !endsWithSpace) {
		if len(fields) == 1 {
			prefix = fields[0]
		}
		completions = commandNames
	} else {
		cmdName := fields[0]
		if !endsWithSpace {
			prefix = fields[len(fields)-1]
		}
		var lastCompleteField string
		if endsWithSpace {
			lastCompleteField = fields[len(fields)-1]
		} else if len(fields) > 1 {
			lastCompleteField = fields[len(fields)-2]
		}

		switch {
		case strings.HasPrefix(lastCompleteField, "-"):
			switch strings.TrimPrefix(lastCompleteField, "-") {
			case "first":
				completions = []string{"x", "o"}
			case "player1", "player2":
				completions = playerNames
			}
		case cmdName == "play" && c.sc.game != nil:
			completions = c.openColumns()
		case cmdName == "set" && lastCompleteField != cmdName:
			switch lastCompleteField {
			case "pruning":
				completions = onOff
			case "bot":
				completions = botNames
			case "human":
				completions = sides
			}
		}

		if completions == nil && (lastCompleteField == cmdName || strings.HasPrefix(prefix, "-")) {
			if metadata, exists := commandMetadata[cmdName]; exists {
				if strings.HasPrefix(prefix, "-") || len(metadata.Args) == 0 {
					completions = metadata.Options
				} else {
					completions = metadata.Args
				}
			}
		}
	}

	var matches [][]rune
	for _, completion := range completions {
		if strings.HasPrefix(completion, prefix) {
			// Return only the part that needs to be added
			matches = append(matches, []rune(completion[len(prefix):]))
		}
	}
	return matches, len(prefix)
}

func (c *ShellCompleter) openColumns() []string {
	cols := c.sc.game.Board().LegalColumns()
	out := make([]string, len(cols))
	for i, col := range cols {
		out[i] = strconv.Itoa(col)
	}
	return out
}
