package common

import (
	"fmt"
	"strings"
)

// Credit: MIT-licensed https://github.com/algerbrex/blunder/blob/main/engine/search.go
type PVLine struct {
	Columns []int
	score   float64
}

// Clear the principal variation line.
func (pvLine *PVLine) Clear() {
	pvLine.Columns = nil
	pvLine.score = 0
}

// Update the principal variation line with a new best column,
// and a new line of best play after the best column.
func (pvLine *PVLine) Update(column int, newPVLine PVLine, score float64) {
	pvLine.Columns = append(pvLine.Columns[:0], column)
	pvLine.Columns = append(pvLine.Columns, newPVLine.Columns...)
	pvLine.score = score
}

// GetPVMove returns the first column of the line, or -1 if it is empty.
func (pvLine *PVLine) GetPVMove() int {
	if len(pvLine.Columns) == 0 {
		return -1
	}
	return pvLine.Columns[0]
}

func (pvLine *PVLine) Score() float64 {
	return pvLine.score
}

// Convert the principal variation line to a string.
func (pvLine PVLine) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "PV; val %.3f\n", pvLine.score)
	for i, c := range pvLine.Columns {
		fmt.Fprintf(&sb, "%d: column %d\n", i+1, c)
	}
	return sb.String()
}

func (pvLine PVLine) NLBString() string {
	// no line breaks
	cols := make([]string, len(pvLine.Columns))
	for i, c := range pvLine.Columns {
		cols[i] = fmt.Sprint(c)
	}
	return fmt.Sprintf("PV; val %.3f; %s", pvLine.score, strings.Join(cols, " "))
}
