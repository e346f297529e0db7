package automatic

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/matryer/is"
)

func TestSeedsRoundTrip(t *testing.T) {
	is := is.New(t)
	seeds := GenerateSeeds(5)
	is.Equal(len(seeds), 5)
	is.True(seeds[0] != seeds[1])

	path := filepath.Join(t.TempDir(), "seeds.txt")
	is.NoErr(SaveSeeds(seeds, path))
	loaded, err := LoadSeeds(path)
	is.NoErr(err)
	is.Equal(loaded, seeds)
}

func TestLoadSeedsRejectsShortSeed(t *testing.T) {
	is := is.New(t)
	path := filepath.Join(t.TempDir(), "seeds.txt")
	is.NoErr(os.WriteFile(path, []byte("# comment\n\nAAAA\n"), 0644))
	_, err := LoadSeeds(path)
	is.True(err != nil)
}
