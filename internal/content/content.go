// Package content loads the immutable card and motif pools the game deals
// from. Pools are read once at startup and shared across every room
// without synchronization; nothing in this package mutates after Load.
package content

import (
	"embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

//go:embed data/*.json
var defaultData embed.FS

// Motif is a secret alliance phrase plus the words players are banned
// from saying while signalling it during discussion.
type Motif struct {
	Text     string   `json:"text"`
	Keywords []string `json:"keywords"`
}

// Pool holds the full content inventory: image card URLs, word card
// phrases and motif entries.
type Pool struct {
	Images []string
	Words  []string
	Motifs []Motif
}

// MinMotifs is the smallest motif pool that can run a game: one phrase
// per alliance.
const MinMotifs = 2

// Default returns the pool built from the embedded content files.
func Default() (*Pool, error) {
	var p Pool
	if err := decodeEmbedded("data/images.json", &p.Images); err != nil {
		return nil, err
	}
	if err := decodeEmbedded("data/words.json", &p.Words); err != nil {
		return nil, err
	}
	if err := decodeEmbedded("data/motifs.json", &p.Motifs); err != nil {
		return nil, err
	}
	return &p, p.validate()
}

// Load reads images.json, words.json and motifs.json from dir. An empty
// dir falls back to the embedded defaults.
func Load(dir string) (*Pool, error) {
	if dir == "" {
		return Default()
	}

	var p Pool
	if err := decodeFile(filepath.Join(dir, "images.json"), &p.Images); err != nil {
		return nil, err
	}
	if err := decodeFile(filepath.Join(dir, "words.json"), &p.Words); err != nil {
		return nil, err
	}
	if err := decodeFile(filepath.Join(dir, "motifs.json"), &p.Motifs); err != nil {
		return nil, err
	}
	return &p, p.validate()
}

func decodeEmbedded(name string, v any) error {
	raw, err := defaultData.ReadFile(name)
	if err != nil {
		return fmt.Errorf("embedded content %s: %w", name, err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("embedded content %s: %w", name, err)
	}
	return nil
}

func decodeFile(path string, v any) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("content file: %w", err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("content file %s: %w", path, err)
	}
	return nil
}

func (p *Pool) validate() error {
	if len(p.Images) == 0 {
		return fmt.Errorf("content pool has no image cards")
	}
	if len(p.Words) == 0 {
		return fmt.Errorf("content pool has no word cards")
	}
	if len(p.Motifs) < MinMotifs {
		return fmt.Errorf("content pool needs at least %d motifs, got %d", MinMotifs, len(p.Motifs))
	}
	return nil
}
