package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/optcgx/engine/internal/engine"
)

// DeckFile is the top-level YAML structure for a deck list file: a list
// of named decks.
type DeckFile struct {
	Decks []DeckEntry `yaml:"decks"`
}

// DeckEntry is a single named deck: the Leader card id and the main
// deck's card ids with counts.
type DeckEntry struct {
	Name   string          `yaml:"name"`
	Leader string          `yaml:"leader"`
	Cards  []DeckCardEntry `yaml:"cards"`
}

// DeckCardEntry names a card id and how many copies the deck runs.
type DeckCardEntry struct {
	ID    string `yaml:"id"`
	Count int    `yaml:"count"`
}

// ParseDeckFile parses a YAML deck list and validates every card id
// against the given catalog, returning a ready-to-shuffle
// engine.DeckList per named deck.
func ParseDeckFile(path string, cat *Registry) (map[string]engine.DeckList, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return parseDeckFile(data, cat)
}

func parseDeckFile(data []byte, cat *Registry) (map[string]engine.DeckList, error) {
	var df DeckFile
	if err := yaml.Unmarshal(data, &df); err != nil {
		return nil, fmt.Errorf("parse deck YAML: %w", err)
	}

	decks := make(map[string]engine.DeckList, len(df.Decks))
	for _, entry := range df.Decks {
		if _, ok := cat.Get(entry.Leader); !ok {
			return nil, fmt.Errorf("deck %q: unknown leader id %q", entry.Name, entry.Leader)
		}
		var cardIDs []string
		total := 0
		for _, c := range entry.Cards {
			def, ok := cat.Get(c.ID)
			if !ok {
				return nil, fmt.Errorf("deck %q: unknown card id %q", entry.Name, c.ID)
			}
			if def.Category == engine.CategoryLeader {
				return nil, fmt.Errorf("deck %q: %q is a Leader and cannot be in the main deck", entry.Name, c.ID)
			}
			for i := 0; i < c.Count; i++ {
				cardIDs = append(cardIDs, c.ID)
			}
			total += c.Count
		}
		if total != 50 {
			return nil, fmt.Errorf("deck %q: main deck has %d cards, want 50", entry.Name, total)
		}
		decks[entry.Name] = engine.DeckList{LeaderID: entry.Leader, CardIDs: cardIDs}
	}
	return decks, nil
}

// DeckByName returns a single named deck from a YAML deck list file.
func DeckByName(path, name string, cat *Registry) (engine.DeckList, error) {
	decks, err := ParseDeckFile(path, cat)
	if err != nil {
		return engine.DeckList{}, err
	}
	dl, ok := decks[name]
	if !ok {
		return engine.DeckList{}, fmt.Errorf("deck %q not found in %s", name, path)
	}
	return dl, nil
}
