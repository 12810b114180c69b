package main

import (
	"flag"
	"log"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"

	"gridsnake/config"
	"gridsnake/engine"
	"gridsnake/game"
	"gridsnake/game/manager"
	"gridsnake/ui"
	"gridsnake/ui/sound"
)

const appName = "gridsnake"

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
		log.Printf("[Main] preferences unavailable: %v", err)
		store = nil
	}
	cfg, err := flags.Resolve(flag.CommandLine, store)
	if err != nil {
		log.Fatalf("[Main] %v", err)
	}

	if cfg.LogFile != "" {
		logFile, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			log.Fatalf("[Main] failed to open log file: %v", err)
		}
		defer logFile.Close()
		log.SetOutput(logFile)
	}

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

	rl.InitWindow(1024, 768, "Snake")
	rl.SetWindowState(rl.FlagWindowResizable)
	defer rl.CloseWindow()
	rl.SetTargetFPS(60)
	engine.RegisterCrashCleanup(rl.CloseWindow)

	renderer := ui.NewRenderer(cues, history)
	sim := game.NewSimulation(cfg.GridSize, game.WithSeed(cfg.EffectiveSeed()))
	sched := engine.NewScheduler(sim, renderer,
		engine.WithIntervals(cfg.TickInterval, cfg.FrameInterval),
		engine.WithRoundEndHook(history.RecordRound),
	)
	sched.Start()
	defer sched.Stop()

	for !rl.WindowShouldClose() {
		if !renderer.PollInput(sched) {
			break
		}
		renderer.Draw()
	}

	log.Printf("[Main] %d rounds played, best score %d", len(history.GetHistory()), history.GetHighScore())
}
