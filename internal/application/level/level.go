// Package level runs one stage: the physics world, the player and enemy
// controllers, and the encounter rules between them, advanced in fixed ticks.
package level

import (
	"fmt"
	"log"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/younwookim/platformer/internal/application/camera"
	"github.com/younwookim/platformer/internal/application/system"
	"github.com/younwookim/platformer/internal/domain/entity"
	"github.com/younwookim/platformer/internal/infrastructure/config"
	"github.com/younwookim/platformer/internal/infrastructure/physics"
)

// worldMargin extends the collision area past the tile grid so actors
// leaving the stage still collide until they are culled
var worldMargin = mgl64.Vec2{4, 8}

// Deps are the collaborators a level reports to
type Deps struct {
	Sink system.SessionSink
}

// Spec is everything needed to build a level
type Spec struct {
	Physics  config.PhysicsConfig
	Entities config.EntitiesConfig
	Stage    *config.StageConfig
}

// Enemy is a spawned enemy: its config name and controller
type Enemy struct {
	Type       string
	Controller *system.PatrolController
}

// Level is one running stage
type Level struct {
	stage    *entity.Stage
	world    *physics.World
	camera   *camera.Camera
	resolver *system.EncounterResolver

	player   *system.PlatformController
	enemies  []Enemy
	enemyIDs map[entity.EntityID]*system.PatrolController

	latch    system.IntentLatch
	step     float64
	maxTicks int
	acc      float64
	ticks    int
}

// New builds the world for spec.Stage and spawns its actors
func New(deps Deps, spec Spec) (*Level, error) {
	if deps.Sink == nil {
		return nil, fmt.Errorf("failed to create level: %w: session sink", entity.ErrMissingDependency)
	}
	if spec.Stage == nil {
		return nil, fmt.Errorf("failed to create level: %w: stage", entity.ErrMissingDependency)
	}
	settings := spec.Physics.Physics
	if settings.FixedStep <= 0 {
		return nil, fmt.Errorf("failed to create level: %w: fixedStep must be > 0, got %v", entity.ErrInvalidConfig, settings.FixedStep)
	}

	stage, err := system.LoadStage(spec.Stage)
	if err != nil {
		return nil, fmt.Errorf("failed to create level: %w", err)
	}

	bounds := stage.WorldBounds()
	world, err := physics.NewWorld(physics.WorldConfig{
		Bounds:  entity.Rect{Min: bounds.Min.Sub(worldMargin), Max: bounds.Max.Add(worldMargin)},
		Gravity: mgl64.Vec2{0, -settings.Gravity},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create level: %w", err)
	}
	world.AddStage(stage)

	cam, err := fitCamera(spec.Physics, stage)
	if err != nil {
		return nil, fmt.Errorf("failed to create level: %w", err)
	}

	resolver, err := system.NewEncounterResolver(deps.Sink)
	if err != nil {
		return nil, fmt.Errorf("failed to create level: %w", err)
	}

	l := &Level{
		stage:    stage,
		world:    world,
		camera:   cam,
		resolver: resolver,
		enemyIDs: make(map[entity.EntityID]*system.PatrolController),
		step:     settings.FixedStep,
		maxTicks: max(settings.MaxTicksPerFrame, 1),
	}

	if err := l.spawnPlayer(spec.Entities.Player); err != nil {
		return nil, fmt.Errorf("failed to create level: %w", err)
	}
	for i, spawn := range spec.Stage.Enemies {
		if err := l.spawnEnemy(spec.Entities.Enemies, spawn); err != nil {
			return nil, fmt.Errorf("failed to create level: enemy %d: %w", i, err)
		}
	}

	log.Printf("Level %s: %dx%d tiles, %d enemies", spec.Stage.ID, stage.Width, stage.Height, len(l.enemies))
	return l, nil
}

// fitCamera centers the view on the spawn point, clamped to the stage
func fitCamera(cfg config.PhysicsConfig, stage *entity.Stage) (*camera.Camera, error) {
	viewW, viewH := cfg.Display.ViewSize()
	cam, err := camera.New(cfg.Camera, mgl64.Vec2{stage.SpawnX, float64(stage.Height) / 2}, viewW, viewH)
	if err != nil {
		return nil, err
	}
	cam.Limit(0, float64(stage.Width))
	return cam, nil
}

func (l *Level) spawnPlayer(cfg config.PlayerConfig) error {
	half := mgl64.Vec2{cfg.Hitbox.Width / 2, cfg.Hitbox.Height / 2}
	body, err := l.world.AddBody(physics.BodySpec{
		Kind:       entity.KindPlayer,
		Position:   mgl64.Vec2{l.stage.SpawnX, l.stage.SpawnY + half.Y()},
		HalfExtent: half,
	})
	if err != nil {
		return fmt.Errorf("player: %w", err)
	}

	l.player, err = system.NewPlatformController(system.MovementFromConfig(cfg.Movement), body, l.camera, system.PlatformOptions{
		AllowBacktracking:      cfg.AllowBacktracking,
		RevalidateGroundOnExit: cfg.RevalidateGroundOnExit,
	})
	if err != nil {
		return fmt.Errorf("player: %w", err)
	}
	return nil
}

func (l *Level) spawnEnemy(types map[string]config.EnemyConfig, spawn config.EnemySpawnConfig) error {
	cfg, ok := types[spawn.Type]
	if !ok {
		return fmt.Errorf("%w: unknown enemy type %q", entity.ErrInvalidConfig, spawn.Type)
	}
	patrol, err := system.PatrolFromConfig(cfg.Patrol, spawn.Direction)
	if err != nil {
		return fmt.Errorf("%s: %w", spawn.Type, err)
	}

	half := mgl64.Vec2{cfg.Hitbox.Width / 2, cfg.Hitbox.Height / 2}
	foot := system.TileToWorld(l.stage, spawn.X, spawn.Y)
	body, err := l.world.AddBody(physics.BodySpec{
		Kind:         entity.KindEnemy,
		Position:     mgl64.Vec2{foot.X(), foot.Y() + half.Y()},
		HalfExtent:   half,
		GravityScale: 1,
	})
	if err != nil {
		return fmt.Errorf("%s: %w", spawn.Type, err)
	}

	ctrl, err := system.NewPatrolController(patrol, body, l.world, l.camera)
	if err != nil {
		return fmt.Errorf("%s: %w", spawn.Type, err)
	}
	l.enemies = append(l.enemies, Enemy{Type: spawn.Type, Controller: ctrl})
	l.enemyIDs[body.ID()] = ctrl
	return nil
}

// Advance latches one frame of input and runs the fixed ticks that fit in
// frameDt. It returns the number of ticks run.
func (l *Level) Advance(in system.Intent, frameDt float64) int {
	l.latch.Sample(in)
	l.acc += frameDt

	n := 0
	for l.acc >= l.step && n < l.maxTicks {
		l.Tick()
		l.acc -= l.step
		n++
	}
	// Drop the backlog after a stall instead of spiralling
	if l.acc >= l.step {
		l.acc = 0
	}
	return n
}

// Tick runs one fixed simulation step
func (l *Level) Tick() {
	dt := l.step
	l.ticks++

	l.player.Step(l.latch.Consume(), dt)
	for _, e := range l.enemies {
		e.Controller.Step(dt)
	}

	for _, ev := range l.world.Step(dt) {
		l.dispatch(ev)
	}

	l.checkPlayerFall()
	if !l.player.Disabled() {
		l.camera.Follow(l.player.State().Position.X(), dt)
	}
	l.pruneEnemies()
}

// dispatch routes one contact event to the actor it was reported to
func (l *Level) dispatch(ev entity.CollisionEvent) {
	if ev.Self == l.player.Body().ID() {
		l.player.OnContact(ev)
		return
	}

	enemy, ok := l.enemyIDs[ev.Self]
	if !ok || enemy.Dead() {
		return
	}
	if ev.OtherKind == entity.KindPlayer {
		if ev.Phase == entity.ContactBegin {
			l.resolver.Resolve(ev, l.player, enemy)
		}
		return
	}
	enemy.OnContact(ev)
}

func (l *Level) checkPlayerFall() {
	if l.player.Disabled() {
		return
	}
	st := l.player.State()
	if st.Position.Y() < l.camera.Bounds().Min.Y()-st.HalfExtent.Y() {
		l.resolver.KillPlayer(l.player)
	}
}

func (l *Level) pruneEnemies() {
	live := l.enemies[:0]
	for _, e := range l.enemies {
		if e.Controller.Dead() {
			delete(l.enemyIDs, e.Controller.Body().ID())
			continue
		}
		live = append(live, e)
	}
	for i := len(live); i < len(l.enemies); i++ {
		l.enemies[i] = Enemy{}
	}
	l.enemies = live
}

// OnStomp registers a hook run after an enemy is stomped
func (l *Level) OnStomp(fn func(enemy system.Stompable)) { l.resolver.OnStomp = fn }

// OnPlayerKilled registers a hook run once when the player dies
func (l *Level) OnPlayerKilled(fn func()) { l.resolver.OnPlayerKilled = fn }

// Player returns the player controller
func (l *Level) Player() *system.PlatformController { return l.player }

// Enemies returns the live enemies in spawn order
func (l *Level) Enemies() []Enemy { return l.enemies }

// Cleared reports whether the player has reached the last open column of
// the stage
func (l *Level) Cleared() bool {
	if l.player.Disabled() {
		return false
	}
	return l.player.State().Position.X() >= float64(l.stage.Width)-2
}

// PlayerDead reports whether the player has been killed
func (l *Level) PlayerDead() bool { return l.player.Disabled() }

// Ticks returns the number of fixed ticks run so far
func (l *Level) Ticks() int { return l.ticks }

// FixedStep returns the tick length in seconds
func (l *Level) FixedStep() float64 { return l.step }

// Stage returns the tile grid
func (l *Level) Stage() *entity.Stage { return l.stage }

// Camera returns the level viewport
func (l *Level) Camera() *camera.Camera { return l.camera }

// World returns the physics world
func (l *Level) World() *physics.World { return l.world }
