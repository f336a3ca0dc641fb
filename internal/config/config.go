// Package config holds the flag/env wiring for the local simulator
// entry point. The engine itself takes everything through constructor
// parameters; this package only exists so cmd binaries share one
// parsing path.
package config

import (
	"flag"
	"os"
	"strconv"
)

// Config is the simulator's runtime configuration.
type Config struct {
	DecksFile string // YAML deck list path
	Deck1     string // first player's deck name
	Deck2     string // second player's deck name
	Seed      uint64 // 0 = cryptographically seeded shuffles
	Verbose   bool   // structured JSON logging instead of plain text
}

// FromFlags parses the given argument list, with OPTCGX_DECKS as the
// environment fallback for the deck file path.
func FromFlags(args []string) (Config, error) {
	fs := flag.NewFlagSet("optcgx-sim", flag.ContinueOnError)

	decksDefault := "decks.yaml"
	if env := os.Getenv("OPTCGX_DECKS"); env != "" {
		decksDefault = env
	}

	var cfg Config
	fs.StringVar(&cfg.DecksFile, "decks", decksDefault, "path to the YAML deck list")
	fs.StringVar(&cfg.Deck1, "deck1", "crimson-fleet", "deck name for player 1")
	fs.StringVar(&cfg.Deck2, "deck2", "tidecaller-depths", "deck name for player 2")
	fs.Uint64Var(&cfg.Seed, "seed", envSeed(), "RNG seed; 0 uses an unpredictable source")
	fs.BoolVar(&cfg.Verbose, "verbose", false, "emit structured JSON logs")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func envSeed() uint64 {
	if env := os.Getenv("OPTCGX_SEED"); env != "" {
		if v, err := strconv.ParseUint(env, 10, 64); err == nil {
			return v
		}
	}
	return 0
}
