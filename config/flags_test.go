package config

import (
	"errors"
	"flag"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func parseFlags(t *testing.T, args ...string) (*Flags, *flag.FlagSet) {
	t.Helper()
	fs := flag.NewFlagSet("snake", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	f := RegisterFlags(fs)
	if err := fs.Parse(args); err != nil {
		t.Fatalf("Parse(%v) failed: %v", args, err)
	}
	return f, fs
}

func TestResolveDefaults(t *testing.T) {
	f, fs := parseFlags(t)
	cfg, err := f.Resolve(fs, nil)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if *cfg != *Default() {
		t.Errorf("Resolve() = %+v, want defaults", cfg)
	}
}

func TestResolveFlagsOverrideFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snake.yaml")
	if err := os.WriteFile(path, []byte("gridSize: 8\ntickInterval: 50ms\n"), 0644); err != nil {
		t.Fatal(err)
	}

	f, fs := parseFlags(t, "-config", path, "-size", "30", "-mute")
	cfg, err := f.Resolve(fs, nil)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	if cfg.GridSize != 30 {
		t.Errorf("GridSize = %d, want flag value 30", cfg.GridSize)
	}
	if cfg.TickInterval != 50*time.Millisecond {
		t.Errorf("TickInterval = %v, want file value 50ms", cfg.TickInterval)
	}
	if cfg.Sound {
		t.Error("-mute did not disable sound")
	}
}

func TestResolveRejectsInvalidFlag(t *testing.T) {
	f, fs := parseFlags(t, "-size", "1")
	if _, err := f.Resolve(fs, nil); !errors.Is(err, ErrInvalid) {
		t.Errorf("Resolve error = %v, want ErrInvalid", err)
	}
}

func TestResolveRemembers(t *testing.T) {
	tempDir := t.TempDir()
	t.Setenv("HOME", tempDir)
	t.Setenv("XDG_DATA_HOME", tempDir)

	store, err := OpenStore("gridsnake_flags_test")
	if err != nil {
		t.Fatalf("OpenStore failed: %v", err)
	}

	f, fs := parseFlags(t, "-size", "14", "-remember")
	if _, err := f.Resolve(fs, store); err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	// A later run without flags picks up the remembered size
	f, fs = parseFlags(t)
	cfg, err := f.Resolve(fs, store)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if cfg.GridSize != 14 {
		t.Errorf("GridSize = %d, want remembered 14", cfg.GridSize)
	}
}
