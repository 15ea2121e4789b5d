// Package seeder loads flashcard decks from JSON files into a user's
// collection. It runs offline via cmd/seeder, not as part of the server.
package seeder

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/asvabprep/backend/internal/domain"
)

// Deck is one JSON deck file: a category plus its cards.
type Deck struct {
	Category string     `json:"category"`
	Cards    []DeckCard `json:"cards"`
}

// DeckCard is a single flashcard definition inside a deck file.
type DeckCard struct {
	Front      string `json:"front"`
	Back       string `json:"back"`
	Difficulty string `json:"difficulty,omitempty"`
}

// ParseDeck decodes and validates one deck file.
func ParseDeck(data []byte) (*Deck, error) {
	var deck Deck
	if err := json.Unmarshal(data, &deck); err != nil {
		return nil, fmt.Errorf("decode deck: %w", err)
	}

	category := domain.AsvabCategory(deck.Category)
	if !category.IsValid() {
		return nil, fmt.Errorf("unknown ASVAB category %q", deck.Category)
	}
	if len(deck.Cards) == 0 {
		return nil, fmt.Errorf("deck %s has no cards", deck.Category)
	}

	for i, card := range deck.Cards {
		if strings.TrimSpace(card.Front) == "" {
			return nil, fmt.Errorf("card %d: front is empty", i)
		}
		if strings.TrimSpace(card.Back) == "" {
			return nil, fmt.Errorf("card %d (%s): back is empty", i, card.Front)
		}
		if card.Difficulty != "" && !domain.DifficultyTier(card.Difficulty).IsValid() {
			return nil, fmt.Errorf("card %d (%s): unknown difficulty %q", i, card.Front, card.Difficulty)
		}
	}

	return &deck, nil
}

// LoadDecks reads every *.json file under dir (sorted by name) and parses it.
func LoadDecks(fsys fs.FS) ([]*Deck, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("read deck dir: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".json" {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	decks := make([]*Deck, 0, len(names))
	for _, name := range names {
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		deck, err := ParseDeck(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		decks = append(decks, deck)
	}

	return decks, nil
}
