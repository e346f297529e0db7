package automatic

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"github.com/domino14/connect4/stats"
)

var ErrBadLogFile = errors.New("bad autoplay log file")

const histogramBins = 10

// AnalyzeLogFile analyzes the given game CSV file and spits out a bunch of
// statistics.
func AnalyzeLogFile(filepath string) (string, error) {
	file, err := os.Open(filepath)
	if err != nil {
		return "", err
	}
	defer file.Close()
	return analyze(file)
}

func analyze(in io.Reader) (string, error) {
	r := csv.NewReader(in)

	// Record looks like:
	// gameID,xplayer,oplayer,first,winner,turns,moves
	lengths := &stats.Statistic{}
	var lengthVals []float64
	var p1Name, p2Name string
	p1wins, p2wins, draws := 0, 0, 0
	p1first, firstWins := 0, 0
	gamesPlayed := 0
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("%w: %w", ErrBadLogFile, err)
		}
		if record[0] == "gameID" {
			continue
		}
		if len(record) < 6 {
			return "", fmt.Errorf("%w: short record %v", ErrBadLogFile, record)
		}
		p1Name, p2Name = record[1], record[2]
		turns, err := strconv.Atoi(record[5])
		if err != nil {
			return "", fmt.Errorf("%w: %w", ErrBadLogFile, err)
		}
		first, winner := record[3], record[4]
		switch winner {
		case "x":
			p1wins++
		case "o":
			p2wins++
		case "draw":
			draws++
		default:
			return "", fmt.Errorf("%w: unknown winner %q", ErrBadLogFile, winner)
		}
		if first == "x" {
			p1first++
		}
		if winner == first {
			firstWins++
		}
		lengths.Push(float64(turns))
		lengthVals = append(lengthVals, float64(turns))
		gamesPlayed++
	}
	if gamesPlayed == 0 {
		return "No games played.\n", nil
	}

	pct := func(n int) float64 {
		return 100.0 * float64(n) / float64(gamesPlayed)
	}
	// Strip the "-1" / "-2" seat suffixes for display.
	p1Name = strings.TrimSuffix(p1Name, "-1")
	p2Name = strings.TrimSuffix(p2Name, "-2")

	var sb strings.Builder
	fmt.Fprintf(&sb, "Games played: %d\n", gamesPlayed)
	p, lo95, hi95 := stats.ProportionInterval(p1wins, gamesPlayed, 95)
	fmt.Fprintf(&sb, "%v (x) wins: %d (%.3f%%, 95%% CI %.3f%% - %.3f%%)\n",
		p1Name, p1wins, 100*p, 100*lo95, 100*hi95)
	p, lo95, hi95 = stats.ProportionInterval(p2wins, gamesPlayed, 95)
	fmt.Fprintf(&sb, "%v (o) wins: %d (%.3f%%, 95%% CI %.3f%% - %.3f%%)\n",
		p2Name, p2wins, 100*p, 100*lo95, 100*hi95)
	fmt.Fprintf(&sb, "Draws: %d (%.3f%%)\n", draws, pct(draws))
	fmt.Fprintf(&sb, "%v went first: %d (%.3f%%)\n", p1Name, p1first, pct(p1first))
	fmt.Fprintf(&sb, "Player who went first wins: %d (%.3f%%)\n", firstWins, pct(firstWins))
	fmt.Fprintf(&sb, "Game length Mean: %.3f  Stdev: %.3f  Min: %.0f  Max: %.0f\n",
		lengths.Mean(), lengths.Stdev(), lo.Min(lengthVals), lo.Max(lengthVals))
	sb.WriteString(stats.HistogramText(lengthVals, histogramBins))
	return sb.String(), nil
}
