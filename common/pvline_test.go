package common

import (
	"testing"

	"github.com/matryer/is"
)

func TestPVLineUpdate(t *testing.T) {
	is := is.New(t)
	var child PVLine
	child.Update(4, PVLine{}, -0.5)
	var root PVLine
	root.Update(3, child, 0.5)
	is.Equal(root.Columns, []int{3, 4})
	is.Equal(root.Score(), 0.5)
	is.Equal(root.GetPVMove(), 3)
	is.Equal(root.NLBString(), "PV; val 0.500; 3 4")
	is.Equal(root.String(), "PV; val 0.500\n1: column 3\n2: column 4\n")

	// Updating must not alias the child's slice.
	root.Update(1, PVLine{}, 1)
	is.Equal(child.Columns, []int{4})
	root.Clear()
	is.Equal(root.GetPVMove(), -1)
}
