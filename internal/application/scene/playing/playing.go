// Package playing provides the main gameplay scene.
package playing

import (
	"fmt"
	"image/color"
	"log"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/younwookim/platformer/internal/application/level"
	"github.com/younwookim/platformer/internal/application/scene"
	"github.com/younwookim/platformer/internal/application/session"
	"github.com/younwookim/platformer/internal/application/state"
	"github.com/younwookim/platformer/internal/application/system"
	"github.com/younwookim/platformer/internal/domain/entity"
	"github.com/younwookim/platformer/internal/infrastructure/config"
)

// Colors for rendering
var (
	colorWall   = color.RGBA{80, 80, 100, 255}
	colorGround = color.RGBA{90, 140, 70, 255}
	colorPlayer = color.RGBA{100, 200, 100, 255}
	colorEnemy  = color.RGBA{200, 100, 100, 255}
	colorIdle   = color.RGBA{140, 90, 90, 255}
	colorBG     = color.RGBA{26, 26, 46, 255}
)

// stageClearDelay is how long the clear banner shows before the next stage
const stageClearDelay = 1.5

// StageLoader resolves a stage name to its config
type StageLoader interface {
	LoadStage(name string) (*config.StageConfig, error)
}

// InputSource supplies one frame of input
type InputSource interface {
	GetInput() system.InputState
}

// Options configures a Playing scene
type Options struct {
	// RecordPath enables input recording to this file when not empty
	RecordPath string
	// Input defaults to the keyboard
	Input InputSource
}

// Playing is the main gameplay scene
type Playing struct {
	config   *config.GameConfig
	stages   StageLoader
	stageCfg *config.StageConfig
	session  *session.Session
	level    *level.Level
	state    state.GameState
	input    InputSource
	screenW  int
	screenH  int
	ppu      float64
	dt       float64

	clearTimer float64

	// Input recording
	recorder       *Recorder
	recordFilename string
}

// New creates a new Playing scene on the session's start stage
func New(cfg *config.GameConfig, stages StageLoader, opts Options) (*Playing, error) {
	sess, err := session.New(cfg.Physics.Session)
	if err != nil {
		return nil, err
	}

	display := cfg.Physics.Display
	framerate := display.Framerate
	if framerate <= 0 {
		framerate = 60
	}
	ppu := float64(display.PixelsPerUnit)
	if ppu <= 0 {
		ppu = 1
	}

	input := opts.Input
	if input == nil {
		input = system.NewInputSystem()
	}

	p := &Playing{
		config:         cfg,
		stages:         stages,
		session:        sess,
		state:          state.StatePlaying,
		input:          input,
		screenW:        display.ScreenWidth,
		screenH:        display.ScreenHeight,
		ppu:            ppu,
		dt:             1.0 / float64(framerate),
		recordFilename: opts.RecordPath,
	}

	if err := p.loadStage(sess.Stage()); err != nil {
		return nil, err
	}

	// Initialize recorder if recording is enabled
	if opts.RecordPath != "" {
		p.recorder = NewRecorder(sess.Stage(), p.dt)
		log.Printf("Recording enabled: %s", opts.RecordPath)
	}

	return p, nil
}

func (p *Playing) loadStage(name string) error {
	stageCfg, err := p.stages.LoadStage(name)
	if err != nil {
		return err
	}

	lvl, err := level.New(level.Deps{Sink: p.session}, level.Spec{
		Physics:  *p.config.Physics,
		Entities: *p.config.Entities,
		Stage:    stageCfg,
	})
	if err != nil {
		return err
	}
	lvl.OnStomp(func(enemy system.Stompable) {
		log.Printf("Stomp: +%d (score %d)", enemy.DeathScore(), p.session.Score())
	})
	lvl.OnPlayerKilled(func() {
		log.Printf("Player died: %d lives left", p.session.Lives())
	})

	p.stageCfg = stageCfg
	p.level = lvl
	return nil
}

// Update proceeds the game state (implements scene.Scene)
func (p *Playing) Update(_ float64) (scene.Scene, error) {
	input := p.input.GetInput()

	// Every frame is recorded so playback sees pauses and banners too
	if p.recorder != nil {
		p.recorder.RecordFrame(input)
	}

	switch p.state {
	case state.StatePlaying:
		if input.Pause {
			p.state = state.StatePaused
			return nil, nil
		}
		if err := p.updatePlaying(input); err != nil {
			return nil, err
		}
	case state.StatePaused:
		if input.Pause {
			p.state = state.StatePlaying
		}
	case state.StateStageClear:
		p.clearTimer -= p.dt
		if p.clearTimer <= 0 {
			if err := p.nextStage(); err != nil {
				return nil, err
			}
		}
	case state.StateGameOver:
		if input.Restart {
			if err := p.restart(); err != nil {
				return nil, err
			}
		}
	}

	return nil, nil // nil = stay on this scene
}

func (p *Playing) updatePlaying(input system.InputState) error {
	ticks := p.level.Advance(input.Intent(), p.dt)
	if ticks > 0 && !p.level.PlayerDead() {
		p.session.Tick(float64(ticks) * p.level.FixedStep())
	}

	switch p.session.TakeOutcome() {
	case session.OutcomeRestartLevel:
		return p.loadStage(p.session.Stage())
	case session.OutcomeRestartGame:
		p.state = state.StateGameOver
		p.saveRecording()
		return nil
	}

	if p.level.Cleared() {
		p.state = state.StateStageClear
		p.clearTimer = stageClearDelay
		log.Printf("Stage %s cleared (score %d)", p.stageCfg.ID, p.session.Score())
	}
	return nil
}

func (p *Playing) nextStage() error {
	next := p.stageCfg.Next
	if next == "" {
		next = p.stageCfg.ID
	}
	p.session.SetStage(next)
	if err := p.loadStage(next); err != nil {
		return err
	}
	p.state = state.StatePlaying
	return nil
}

func (p *Playing) restart() error {
	if err := p.loadStage(p.session.Stage()); err != nil {
		return err
	}
	p.state = state.StatePlaying
	return nil
}

// saveRecording saves the current recording to file
func (p *Playing) saveRecording() {
	if p.recorder == nil || p.recorder.FrameCount() == 0 {
		return
	}

	filename := p.recordFilename
	if filename == "" {
		filename = GenerateFilename()
	}

	if err := p.recorder.Save(filename); err != nil {
		log.Printf("Failed to save recording: %v", err)
	} else {
		log.Printf("Recording saved: %s (%d frames)", filename, p.recorder.FrameCount())
	}
}

// Draw renders the game screen
func (p *Playing) Draw(screen *ebiten.Image) {
	screen.Fill(colorBG)

	p.drawTiles(screen)
	p.drawEnemies(screen)
	p.drawPlayer(screen)
	p.drawUI(screen)

	switch p.state {
	case state.StatePaused:
		p.drawOverlay(screen, color.RGBA{0, 0, 0, 128}, "PAUSED\n\nPress ESC to resume")
	case state.StateStageClear:
		p.drawOverlay(screen, color.RGBA{0, 60, 0, 128}, fmt.Sprintf("STAGE CLEAR\n\nScore: %d", p.session.Score()))
	case state.StateGameOver:
		p.drawOverlay(screen, color.RGBA{100, 0, 0, 180}, fmt.Sprintf("GAME OVER\n\nScore: %d\n\nPress R to restart", p.session.Score()))
	}
}

// toScreen maps a world rect (y-up) to screen pixels (y-down)
func (p *Playing) toScreen(r entity.Rect) (x, y, w, h float64) {
	cam := p.level.Camera().Bounds()
	x = (r.Min.X() - cam.Min.X()) * p.ppu
	y = (cam.Max.Y() - r.Max.Y()) * p.ppu
	return x, y, r.Width() * p.ppu, r.Height() * p.ppu
}

func (p *Playing) drawTiles(screen *ebiten.Image) {
	stage := p.level.Stage()
	cam := p.level.Camera().Bounds()
	startX := int(math.Floor(cam.Min.X()))
	endX := int(math.Ceil(cam.Max.X()))

	for ty := 0; ty < stage.Height; ty++ {
		for tx := startX; tx <= endX && tx < stage.Width; tx++ {
			if tx < 0 {
				continue
			}
			tile := stage.GetTile(tx, ty)
			if tile.Type == entity.TileEmpty {
				continue
			}

			c := colorWall
			if tile.Type == entity.TileGround {
				c = colorGround
			}
			x, y, w, h := p.toScreen(stage.TileRect(tx, ty))
			ebitenutil.DrawRect(screen, x, y, w, h, c)
		}
	}
}

func (p *Playing) drawPlayer(screen *ebiten.Image) {
	if p.level.PlayerDead() {
		return
	}
	x, y, w, h := p.toScreen(p.level.Player().State().Rect())
	ebitenutil.DrawRect(screen, x, y, w, h, colorPlayer)
}

func (p *Playing) drawEnemies(screen *ebiten.Image) {
	for _, enemy := range p.level.Enemies() {
		c := colorEnemy
		if enemy.Controller.Phase() == system.PatrolIdle {
			c = colorIdle
		}
		x, y, w, h := p.toScreen(enemy.Controller.State().Rect())
		ebitenutil.DrawRect(screen, x, y, w, h, c)
	}
}

func (p *Playing) drawUI(screen *ebiten.Image) {
	hud := fmt.Sprintf("SCORE %d  LIVES %d  TIME %d  LEVEL %d",
		p.session.Score(), p.session.Lives(), p.session.TimeLeft(), p.session.Level())
	ebitenutil.DebugPrintAt(screen, hud, 4, 2)

	ebitenutil.DebugPrintAt(screen, "A/D: Move | Space: Jump | ESC: Pause", 4, p.screenH-16)
}

func (p *Playing) drawOverlay(screen *ebiten.Image, c color.Color, text string) {
	ebitenutil.DrawRect(screen, 0, 0, float64(p.screenW), float64(p.screenH), c)
	ebitenutil.DebugPrintAt(screen, text, p.screenW/2-50, p.screenH/2-30)
}

// OnEnter is called when entering this scene
func (p *Playing) OnEnter() {
	// Scene is already initialized in New
}

// OnExit is called when leaving this scene
func (p *Playing) OnExit() {
	p.saveRecording()
}

// State returns the scene state
func (p *Playing) State() state.GameState { return p.state }

// Session returns the run bookkeeping
func (p *Playing) Session() *session.Session { return p.session }

// Level returns the running level
func (p *Playing) Level() *level.Level { return p.level }

// Recorder returns the input recorder, nil when not recording
func (p *Playing) Recorder() *Recorder { return p.recorder }
