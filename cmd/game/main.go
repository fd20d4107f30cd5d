package main

import (
	"embed"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/younwookim/platformer/internal/application/game"
	"github.com/younwookim/platformer/internal/application/replay"
	"github.com/younwookim/platformer/internal/application/scene/playing"
	"github.com/younwookim/platformer/internal/infrastructure/config"
)

//go:embed configs
var configFS embed.FS

// loadConfig loads the embedded configs, or configDir when set, then
// applies an optional TOML tuning file and start stage override
func loadConfig(configDir, tuningPath, stage string) (*config.GameConfig, *config.Loader, error) {
	var loader *config.Loader
	if configDir != "" {
		loader = config.NewLoader(configDir)
	} else {
		fsys, err := fs.Sub(configFS, "configs")
		if err != nil {
			return nil, nil, fmt.Errorf("failed to get config subfs: %w", err)
		}
		loader = config.NewFSLoader(fsys, "configs")
	}

	cfg, err := loader.LoadAll()
	if err != nil {
		return nil, nil, err
	}

	if tuningPath != "" {
		if err := config.ApplyTuningFile(cfg, tuningPath); err != nil {
			return nil, nil, err
		}
		log.Printf("Tuning applied: %s", tuningPath)
	}
	if stage != "" {
		cfg.Physics.Session.StartStage = stage
	}

	return cfg, loader, nil
}

func main() {
	// Parse command line flags
	stageFlag := flag.String("stage", "", "Start on this stage instead of the configured one")
	configFlag := flag.String("config", "", "Load configs from this directory instead of the embedded set")
	recordFlag := flag.String("record", "", "Record input to file (e.g., -record replay.json or replay.msgpack)")
	replayFlag := flag.String("replay", "", "Play back a recorded input file")
	headlessFlag := flag.Bool("headless", false, "With -replay, simulate without a window and print the result")
	tuningFlag := flag.String("tuning", "", "Apply a TOML tuning override file")
	schemaFlag := flag.String("schema", "", "Print the JSON schema of a config document (physics, entities, stage) and exit")
	flag.Parse()

	if *schemaFlag != "" {
		out, err := config.Schema(*schemaFlag)
		if err != nil {
			log.Fatalf("Failed to build schema: %v", err)
		}
		fmt.Println(string(out))
		return
	}

	cfg, loader, err := loadConfig(*configFlag, *tuningFlag, *stageFlag)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	opts := playing.Options{RecordPath: *recordFlag}

	if *replayFlag != "" {
		data, err := replay.LoadReplay(*replayFlag)
		if err != nil {
			log.Fatalf("Failed to load replay: %v", err)
		}
		if *headlessFlag {
			result, err := RunReplay(cfg, loader, *data)
			if err != nil {
				log.Fatalf("Replay failed: %v", err)
			}
			fmt.Println(result)
			return
		}
		cfg = replayConfig(cfg, *data)
		opts.Input = playing.NewReplaySource(replay.NewReplayer(*data))
		log.Printf("Replaying %s (%d frames)", *replayFlag, len(data.Frames))
	} else if *headlessFlag {
		fmt.Fprintln(os.Stderr, "-headless requires -replay")
		os.Exit(2)
	}

	scene, err := playing.New(cfg, loader, opts)
	if err != nil {
		log.Fatalf("Failed to start: %v", err)
	}

	display := cfg.Physics.Display
	g := game.New(scene, display.ScreenWidth, display.ScreenHeight, display.Framerate)
	defer g.Close()

	// Set up ebiten
	ebiten.SetWindowSize(display.ScreenWidth*display.Scale, display.ScreenHeight*display.Scale)
	ebiten.SetWindowTitle("Platformer")
	ebiten.SetTPS(display.Framerate)

	// Run game
	if err := ebiten.RunGame(g); err != nil {
		log.Printf("Game stopped: %v", err)
	}
}
