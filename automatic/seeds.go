package automatic

import (
	"bufio"
	"encoding/base64"
	"fmt"
	"os"
	"strings"

	"lukechampine.com/frand"
)

// GenerateSeeds creates n random 32-byte seeds for repeatable autoplay runs.
func GenerateSeeds(n int) [][32]byte {
	seeds := make([][32]byte, n)
	for i := range seeds {
		frand.Read(seeds[i][:])
	}
	return seeds
}

// SaveSeeds writes seeds to a file, one URL-safe base64 seed per line.
func SaveSeeds(seeds [][32]byte, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating seed file: %w", err)
	}
	defer file.Close()

	w := bufio.NewWriter(file)
	if _, err := w.WriteString("# autoplay seeds, base64 URL-safe, 32 bytes each\n"); err != nil {
		return err
	}
	for _, seed := range seeds {
		if _, err := w.WriteString(base64.RawURLEncoding.EncodeToString(seed[:]) + "\n"); err != nil {
			return err
		}
	}
	return w.Flush()
}

// LoadSeeds reads a file written by SaveSeeds. Blank lines and lines
// starting with # are skipped.
func LoadSeeds(path string) ([][32]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening seed file: %w", err)
	}
	defer file.Close()

	var seeds [][32]byte
	scanner := bufio.NewScanner(file)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		decoded, err := base64.RawURLEncoding.DecodeString(line)
		if err != nil {
			return nil, fmt.Errorf("seed at line %d: %w", lineNum, err)
		}
		if len(decoded) != 32 {
			return nil, fmt.Errorf("seed at line %d has %d bytes, expected 32", lineNum, len(decoded))
		}
		var seed [32]byte
		copy(seed[:], decoded)
		seeds = append(seeds, seed)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return seeds, nil
}
