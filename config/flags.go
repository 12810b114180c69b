package config

import (
	"flag"
	"log"
	"time"
)

// Flags are the command line overrides shared by both frontends
type Flags struct {
	Path     string
	Remember bool

	gridSize int
	tick     time.Duration
	frame    time.Duration
	seed     uint64
	noSound  bool
}

// RegisterFlags defines the override flags on fs
func RegisterFlags(fs *flag.FlagSet) *Flags {
	f := &Flags{}
	fs.StringVar(&f.Path, "config", "", "path to a YAML config file")
	fs.BoolVar(&f.Remember, "remember", false, "save the resulting settings as the new defaults")
	fs.IntVar(&f.gridSize, "size", DefaultGridSize, "board side length in cells")
	fs.DurationVar(&f.tick, "tick", DefaultTickInterval, "logic tick interval")
	fs.DurationVar(&f.frame, "frame", DefaultFrameInterval, "frame interval")
	fs.Uint64Var(&f.seed, "seed", 0, "random seed (0 = time based)")
	fs.BoolVar(&f.noSound, "mute", false, "disable sound cues")
	return f
}

// Resolve builds the session config. Precedence, lowest first: defaults,
// remembered preferences, -config file, explicitly set flags.
// fs must already be parsed; store may be nil.
func (f *Flags) Resolve(fs *flag.FlagSet, store *Store) (*Config, error) {
	cfg := Default()

	if store != nil {
		stored, ok, err := store.Load()
		if err != nil {
			log.Printf("[Config] ignoring remembered preferences: %v", err)
		} else if ok {
			cfg = stored
		}
	}

	if f.Path != "" {
		loaded, err := Load(f.Path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "size":
			cfg.GridSize = f.gridSize
		case "tick":
			cfg.TickInterval = f.tick
		case "frame":
			cfg.FrameInterval = f.frame
		case "seed":
			cfg.Seed = f.seed
		case "mute":
			cfg.Sound = !f.noSound
		}
	})

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if f.Remember && store != nil {
		if err := store.Save(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}
