package automatic

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

const sampleLog = `gameID,xplayer,oplayer,first,winner,turns,moves
a1,search-1,random-2,x,x,7,3 0 3 1 3 2 3
a2,search-1,random-2,o,x,10,0 3 1 3 2 3 6 3 5 4
a3,search-1,random-2,x,o,12,0 1 0 1 0 2 6 3 6 4 6 5
a4,search-1,random-2,o,draw,42,
`

func TestAnalyze(t *testing.T) {
	summary, err := analyze(strings.NewReader(sampleLog))
	assert.Nil(t, err)
	assert.Contains(t, summary, "Games played: 4\n")
	assert.Contains(t, summary, "search (x) wins: 2 (50.000%")
	assert.Contains(t, summary, "random (o) wins: 1 (25.000%")
	assert.Contains(t, summary, "Draws: 1 (25.000%)\n")
	assert.Contains(t, summary, "search went first: 2 (50.000%)\n")
	// Only a1.
	assert.Contains(t, summary, "Player who went first wins: 1 (25.000%)\n")
	assert.Contains(t, summary, "Min: 7  Max: 42\n")
}

func TestAnalyzeEmpty(t *testing.T) {
	summary, err := analyze(strings.NewReader("gameID,xplayer,oplayer,first,winner,turns,moves\n"))
	assert.Nil(t, err)
	assert.Equal(t, "No games played.\n", summary)
}

func TestAnalyzeBadWinner(t *testing.T) {
	_, err := analyze(strings.NewReader("a1,p1,p2,x,z,3,1 2 3\n"))
	assert.True(t, errors.Is(err, ErrBadLogFile))
}

func TestAnalyzeMissingFile(t *testing.T) {
	_, err := AnalyzeLogFile(filepath.Join(t.TempDir(), "nope.csv"))
	assert.NotNil(t, err)
}
