// Command snake-term plays the game in a terminal
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/gdamore/tcell/v2"

	"gridsnake/config"
	"gridsnake/engine"
	"gridsnake/game"
	"gridsnake/game/manager"
	"gridsnake/ui/sound"
	"gridsnake/ui/term"
)

const (
	appName        = "gridsnake"
	defaultLogFile = "snake-term.log"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			engine.HandleCrash(r)
		}
	}()

	flags := config.RegisterFlags(flag.CommandLine)
	flag.Parse()

	store, err := config.OpenStore(appName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "preferences unavailable: %v\n", err)
		store = nil
	}
	cfg, err := flags.Resolve(flag.CommandLine, store)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(2)
	}

	// The screen owns stdout, so logs go to a file
	logPath := cfg.LogFile
	if logPath == "" {
		logPath = defaultLogFile
	}
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open log file: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()
	log.SetOutput(logFile)

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	engine.RegisterCrashCleanup(screen.Fini)
	defer screen.Fini()

	history := manager.NewStateManager()

	var cues *sound.Cues
	if cfg.Sound {
		player := sound.NewPlayer()
		if err := player.Initialize(); err != nil {
			// Non-fatal, the game runs without sound
			log.Printf("[Main] audio initialization failed: %v", err)
		} else {
			defer player.Cleanup()
			cues = sound.NewCues(player)
		}
	}

	presenter := term.NewPresenter(screen, cues, history)
	sim := game.NewSimulation(cfg.GridSize, game.WithSeed(cfg.EffectiveSeed()))
	sched := engine.NewScheduler(sim, presenter,
		engine.WithIntervals(cfg.TickInterval, cfg.FrameInterval),
		engine.WithRoundEndHook(history.RecordRound),
	)
	sched.Start()
	defer sched.Stop()

	term.RunInput(screen, sched)

	log.Printf("[Main] %d rounds played, best score %d", len(history.GetHistory()), history.GetHighScore())
}
