package wordbank

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"os"
)

//go:embed data/categories.json
var embeddedCatalog []byte

// WordEntry is one secret word plus the hint shown to impostors. The Es
// fields carry the Spanish rendering when the catalog provides one.
type WordEntry struct {
	Word           string `json:"word"`
	WordEs         string `json:"wordEs,omitempty"`
	ImpostorClue   string `json:"impostorClue"`
	ImpostorClueEs string `json:"impostorClueEs,omitempty"`
}

// Category groups words under a theme shown to every player.
type Category struct {
	Name  string      `json:"name"`
	Words []WordEntry `json:"words"`
}

// Bank is the immutable catalog loaded once at process start.
type Bank struct {
	categories []Category
}

// New builds a bank from the given categories. Every category must hold at
// least one word.
func New(categories []Category) (*Bank, error) {
	if len(categories) == 0 {
		return nil, errors.New("wordbank: catalog has no categories")
	}
	for _, c := range categories {
		if len(c.Words) == 0 {
			return nil, fmt.Errorf("wordbank: category %q has no words", c.Name)
		}
	}
	return &Bank{categories: categories}, nil
}

// Default returns the bank built from the embedded catalog. The embedded
// data is validated at build time by the package tests, so a failure here is
// a corrupted binary and panics.
func Default() *Bank {
	b, err := parse(embeddedCatalog)
	if err != nil {
		panic(err)
	}
	return b
}

// LoadFile reads a catalog override from disk.
func LoadFile(path string) (*Bank, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog: %w", err)
	}
	return parse(data)
}

func parse(data []byte) (*Bank, error) {
	var categories []Category
	if err := json.Unmarshal(data, &categories); err != nil {
		return nil, fmt.Errorf("parsing catalog: %w", err)
	}
	return New(categories)
}

// Categories returns the full catalog.
func (b *Bank) Categories() []Category {
	return b.categories
}

// PickCategory selects a category uniformly at random.
func (b *Bank) PickCategory(rng *rand.Rand) Category {
	return b.categories[rng.Intn(len(b.categories))]
}

// PickWord selects a word from the category uniformly at random.
func (b *Bank) PickWord(rng *rand.Rand, c Category) WordEntry {
	return c.Words[rng.Intn(len(c.Words))]
}
