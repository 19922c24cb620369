//go:build ignore

// Package main generates a synthetic card catalog for benchmarking.
// Usage: go run scripts/generate-test-catalog.go -sets 50 -cards 200 -output testdata/bench
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
)

var (
	numSets     = flag.Int("sets", 50, "Number of sets to generate")
	cardsPerSet = flag.Int("cards", 200, "Number of cards per set")
	outputDir   = flag.String("output", "testdata/bench", "Output directory")
	seed        = flag.Int64("seed", 42, "Random seed for reproducibility")
)

var (
	firstNames = []string{
		"Char", "Bulba", "Squir", "Pika", "Eev", "Mew", "Snor", "Gyara",
		"Dragon", "Alaka", "Mach", "Gol", "Onix", "Hitmon", "Lapra", "Vapor",
	}
	lastNames = []string{
		"mander", "saur", "tle", "chu", "ee", "two", "lax", "dos",
		"ite", "zam", "amp", "em", "ix", "chan", "s", "eon",
	}
	suffixes   = []string{"", "", "", " ex", " V", " VMAX", " GX"}
	types      = []string{"Fire", "Water", "Grass", "Lightning", "Psychic", "Fighting", "Darkness", "Metal", "Colorless"}
	rarities   = []string{"Common", "Uncommon", "Rare", "Rare Holo", "Ultra Rare", "Secret Rare"}
	supertypes = []string{"Pokémon", "Pokémon", "Pokémon", "Trainer", "Energy"}
	series     = []string{"Base", "Neo", "EX", "Diamond & Pearl", "Black & White", "Sun & Moon", "Sword & Shield", "Scarlet & Violet"}
)

type set struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Series      string `json:"series"`
	ReleaseDate string `json:"releaseDate"`
}

type card struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Number    string   `json:"number"`
	Rarity    string   `json:"rarity,omitempty"`
	Types     []string `json:"types,omitempty"`
	Supertype string   `json:"supertype,omitempty"`
	Subtypes  []string `json:"subtypes,omitempty"`
	Set       struct {
		ID string `json:"id"`
	} `json:"set"`
}

func main() {
	flag.Parse()
	rng := rand.New(rand.NewSource(*seed))

	cardsDir := filepath.Join(*outputDir, "cards")
	if err := os.MkdirAll(cardsDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "mkdir: %v\n", err)
		os.Exit(1)
	}

	sets := make([]set, *numSets)
	for i := range sets {
		sets[i] = set{
			ID:          fmt.Sprintf("gen%d", i+1),
			Name:        fmt.Sprintf("Generated Set %d", i+1),
			Series:      series[rng.Intn(len(series))],
			ReleaseDate: fmt.Sprintf("%d/%02d/%02d", 1999+i%25, 1+rng.Intn(12), 1+rng.Intn(28)),
		}
	}
	writeJSON(filepath.Join(*outputDir, "sets.json"), sets)

	total := 0
	for _, s := range sets {
		cards := make([]card, *cardsPerSet)
		for i := range cards {
			name := firstNames[rng.Intn(len(firstNames))] +
				lastNames[rng.Intn(len(lastNames))] +
				suffixes[rng.Intn(len(suffixes))]

			c := card{
				ID:        fmt.Sprintf("%s-%d", s.ID, i+1),
				Name:      name,
				Number:    fmt.Sprintf("%d", i+1),
				Supertype: supertypes[rng.Intn(len(supertypes))],
			}
			// Leave some cards without rarity or types, as real
			// catalogs do.
			if rng.Float64() < 0.9 {
				c.Rarity = rarities[rng.Intn(len(rarities))]
			}
			if c.Supertype == "Pokémon" {
				c.Types = []string{types[rng.Intn(len(types))]}
				if rng.Float64() < 0.5 {
					c.Types = append(c.Types, types[rng.Intn(len(types))])
				}
			}
			c.Set.ID = s.ID
			cards[i] = c
		}
		writeJSON(filepath.Join(cardsDir, s.ID+".json"), cards)
		total += len(cards)
	}

	fmt.Printf("Generated %d sets, %d cards in %s\n", len(sets), total, *outputDir)
}

func writeJSON(path string, v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "marshal %s: %v\n", path, err)
		os.Exit(1)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "write %s: %v\n", path, err)
		os.Exit(1)
	}
}
