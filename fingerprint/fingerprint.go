// Package fingerprint computes CurseForge file fingerprints: MurmurHash2 with
// seed 1 over the file contents with all whitespace bytes removed.
package fingerprint

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aviddiviner/go-murmur"
)

const seed = 1

func isWhitespace(b byte) bool {
	return b == 9 || b == 10 || b == 13 || b == 32
}

// Compute returns the fingerprint of everything read from r.
func Compute(r io.Reader) (uint32, error) {
	var normalized []byte
	br := bufio.NewReader(r)
	for {
		b, err := br.ReadByte()
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, fmt.Errorf("failed to read input: %w", err)
		}
		if !isWhitespace(b) {
			normalized = append(normalized, b)
		}
	}
	return murmur.MurmurHash2(normalized, seed), nil
}

// File returns the fingerprint of the file at path.
func File(path string) (uint32, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()
	return Compute(f)
}

// Dir fingerprints every file in dir with the given extension (".jar" when
// ext is empty), sorted by file name. Subdirectories are not visited.
func Dir(dir, ext string) (map[string]uint32, []string, error) {
	if ext == "" {
		ext = ".jar"
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	prints := make(map[string]uint32)
	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ext) {
			continue
		}
		fp, err := File(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, nil, fmt.Errorf("failed to fingerprint %s: %w", entry.Name(), err)
		}
		prints[entry.Name()] = fp
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	return prints, names, nil
}
