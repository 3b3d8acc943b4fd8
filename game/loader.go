package game

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/moffa90/go-spade/protocol"
)

// Load reads a game source from the given file path.
//
// Example:
//
//	g, err := game.Load("breakout", "breakout.js")
func Load(name, path string) (*Game, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return LoadReader(name, f)
}

// LoadReader reads a game source from any io.Reader until EOF.
// The source is read in full before the game is validated.
func LoadReader(name string, r io.Reader) (*Game, error) {
	if len(name) > protocol.MaxNameLength {
		return nil, &NameTooLongError{Name: name}
	}

	source, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read source: %w", err)
	}

	g := &Game{Name: name, Source: source}
	if err := g.Validate(); err != nil {
		return nil, err
	}
	return g, nil
}

// NameFromPath derives a game name from a file path: the base name without
// its extension, cut to at most 100 bytes on a UTF-8 boundary.
func NameFromPath(path string) string {
	base := filepath.Base(path)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	if name == "." || name == string(filepath.Separator) {
		return ""
	}
	return truncate(name, protocol.MaxNameLength)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
