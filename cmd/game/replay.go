package main

import (
	"fmt"
	"math"

	"github.com/younwookim/platformer/internal/application/replay"
	"github.com/younwookim/platformer/internal/application/scene/playing"
	"github.com/younwookim/platformer/internal/application/state"
	"github.com/younwookim/platformer/internal/domain/entity"
	"github.com/younwookim/platformer/internal/infrastructure/config"
)

// ReplayResult is the end state of a headless replay
type ReplayResult struct {
	Frames   int
	Ticks    int
	Stage    string
	State    state.GameState
	Score    int
	Lives    int
	TimeLeft int
	Player   entity.ActorPhysicsState
}

func (r ReplayResult) String() string {
	p := r.Player.Position
	return fmt.Sprintf("frames=%d ticks=%d stage=%s state=%s score=%d lives=%d time=%d player=(%.4f, %.4f)",
		r.Frames, r.Ticks, r.Stage, r.State, r.Score, r.Lives, r.TimeLeft, p.X(), p.Y())
}

// replayConfig returns a copy of cfg that starts on the recorded stage and
// steps frames at the recorded rate
func replayConfig(cfg *config.GameConfig, data replay.ReplayData) *config.GameConfig {
	phys := *cfg.Physics
	if data.Stage != "" {
		phys.Session.StartStage = data.Stage
	}
	if data.FrameDt > 0 {
		phys.Display.Framerate = int(math.Round(1 / data.FrameDt))
	}
	return &config.GameConfig{Physics: &phys, Entities: cfg.Entities}
}

// RunReplay feeds every recorded frame through a playing scene without a
// window and reports where the run ended
func RunReplay(cfg *config.GameConfig, stages playing.StageLoader, data replay.ReplayData) (ReplayResult, error) {
	src := playing.NewReplaySource(replay.NewReplayer(data))
	scene, err := playing.New(replayConfig(cfg, data), stages, playing.Options{Input: src})
	if err != nil {
		return ReplayResult{}, err
	}

	frames := 0
	for !src.Done() {
		if _, err := scene.Update(0); err != nil {
			return ReplayResult{}, fmt.Errorf("frame %d: %w", frames, err)
		}
		frames++
	}

	sess := scene.Session()
	return ReplayResult{
		Frames:   frames,
		Ticks:    scene.Level().Ticks(),
		Stage:    sess.Stage(),
		State:    scene.State(),
		Score:    sess.Score(),
		Lives:    sess.Lives(),
		TimeLeft: sess.TimeLeft(),
		Player:   scene.Level().Player().State(),
	}, nil
}
