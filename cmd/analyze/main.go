// analyze solves a position file and prints the chosen column, its score
// and the expected line of play.
package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/domino14/connect4/config"
	"github.com/domino14/connect4/posfile"
	"github.com/domino14/connect4/search/alphabeta"
)

func main() {
	cfg := config.DefaultConfig()
	if err := cfg.Load(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if cfg.GetBool(config.ConfigDebug) {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	if len(cfg.Args()) != 1 {
		fmt.Fprintln(os.Stderr, "usage: analyze [flags] <position.yaml>")
		os.Exit(2)
	}

	pos, err := posfile.Load(cfg.Args()[0])
	if err != nil {
		log.Fatal().Err(err).Msg("loading-position")
	}
	b, err := pos.Board()
	if err != nil {
		log.Fatal().Err(err).Msg("building-board")
	}
	toMove, err := pos.Player()
	if err != nil {
		log.Fatal().Err(err).Msg("reading-player")
	}

	solver := alphabeta.NewSolver(cfg)
	if pos.Plies > 0 {
		solver.SetPlies(pos.Plies)
	}
	score, col, err := solver.BestMove(b, toMove)
	if err != nil {
		log.Fatal().Err(err).Msg("searching")
	}
	st := solver.Stats()

	fmt.Print(b.ToDisplayText())
	fmt.Printf("%s to move, %d plies\n", toMove, solver.Plies())
	fmt.Printf("Best column: %d (score %.3f)\n", col, score)
	fmt.Print(solver.PrincipalVariation().String())
	fmt.Printf("Nodes: %d  Leaves: %d  Cutoffs: %d  Time: %v\n",
		st.Nodes, st.Leaves, st.Cutoffs, st.Elapsed)
}
