package config

import (
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const configDir = "../../../cmd/game/configs"

func TestLoader_LoadPhysics(t *testing.T) {
	loader := NewLoader(configDir)

	cfg, err := loader.LoadPhysics()
	require.NoError(t, err)

	assert.Equal(t, 320, cfg.Display.ScreenWidth)
	assert.Equal(t, 240, cfg.Display.ScreenHeight)
	assert.Equal(t, 60, cfg.Display.Framerate)
	assert.Equal(t, 16, cfg.Display.PixelsPerUnit)
	assert.Equal(t, 0.02, cfg.Physics.FixedStep)
	assert.Equal(t, 9.81, cfg.Physics.Gravity)
	assert.Equal(t, 3, cfg.Session.TotalLives)
	assert.Equal(t, 120, cfg.Session.StartTime)
	assert.Equal(t, "level1", cfg.Session.StartStage)
	assert.Equal(t, 0.1, cfg.Camera.FollowTime)
	assert.False(t, cfg.Camera.AllowBacktracking)

	w, h := cfg.Display.ViewSize()
	assert.Equal(t, 20.0, w)
	assert.Equal(t, 15.0, h)
}

func TestLoader_LoadEntities(t *testing.T) {
	loader := NewLoader(configDir)

	cfg, err := loader.LoadEntities()
	require.NoError(t, err)

	assert.Equal(t, "player", cfg.Player.ID)
	assert.Equal(t, 0.8, cfg.Player.Hitbox.Width)
	assert.Equal(t, 15.0, cfg.Player.Movement.MoveAcceleration)
	assert.Equal(t, 3.2, cfg.Player.Movement.MaxJumpHeight)
	assert.Equal(t, 5.0, cfg.Player.Movement.JumpCancelFactor)

	walker, ok := cfg.Enemies["walker"]
	require.True(t, ok)
	assert.Equal(t, 1.5, walker.Patrol.MoveSpeed)
	assert.Equal(t, "left", walker.Patrol.StartDirection)
	assert.True(t, walker.Patrol.IdleOffScreen)
	assert.False(t, walker.Patrol.AvoidFalling)
	assert.Equal(t, 100, walker.Patrol.DeathScore)

	cautious, ok := cfg.Enemies["cautious"]
	require.True(t, ok)
	assert.True(t, cautious.Patrol.AvoidFalling)
}

func TestLoader_LoadStage(t *testing.T) {
	loader := NewLoader(configDir)

	cfg, err := loader.LoadStage("level1")
	require.NoError(t, err)

	assert.Equal(t, "level1", cfg.ID)
	assert.Equal(t, 60, cfg.Size.Width)
	assert.Equal(t, 15, cfg.Size.Height)
	assert.Equal(t, 3, cfg.PlayerSpawn.X)
	assert.Equal(t, 12, cfg.PlayerSpawn.Y)
	assert.Len(t, cfg.Layers.Collision, 15)
	assert.Len(t, cfg.Enemies, 4)

	wall, ok := cfg.TileMapping["#"]
	require.True(t, ok)
	assert.True(t, wall.Solid)
	assert.Equal(t, "wall", wall.Type)
}

func TestLoader_LoadStage_Missing(t *testing.T) {
	loader := NewLoader(configDir)

	_, err := loader.LoadStage("nope")
	assert.Error(t, err)
}

func TestLoader_LoadAll(t *testing.T) {
	loader := NewLoader(configDir)

	cfg, err := loader.LoadAll()
	require.NoError(t, err)

	assert.NotNil(t, cfg.Physics)
	assert.NotNil(t, cfg.Entities)
}

func TestNewFSLoader(t *testing.T) {
	fsys := fstest.MapFS{
		"physics.json":  {Data: []byte(`{"physics": {"fixedStep": 0.01}}`)},
		"entities.json": {Data: []byte(`{"player": {"id": "p"}}`)},
	}
	loader := NewFSLoader(fsys, "")

	cfg, err := loader.LoadAll()
	require.NoError(t, err)
	assert.Equal(t, 0.01, cfg.Physics.Physics.FixedStep)
	assert.Equal(t, "p", cfg.Entities.Player.ID)

	broken := NewFSLoader(fstest.MapFS{"physics.json": {Data: []byte(`{`)}}, "")
	_, err = broken.LoadPhysics()
	assert.ErrorContains(t, err, "failed to parse physics.json")
}

func TestApplyTuning(t *testing.T) {
	cfg, err := NewLoader(configDir).LoadAll()
	require.NoError(t, err)

	tuning := `
[physics.physics]
fixedStep = 0.01

[player.movement]
maxJumpHeight = 4.0

[enemies.walker.patrol]
moveSpeed = 2.5
avoidFalling = true
`
	require.NoError(t, ApplyTuning(cfg, strings.NewReader(tuning)))

	assert.Equal(t, 0.01, cfg.Physics.Physics.FixedStep)
	assert.Equal(t, 9.81, cfg.Physics.Physics.Gravity, "untouched keys keep JSON values")
	assert.Equal(t, 4.0, cfg.Entities.Player.Movement.MaxJumpHeight)
	assert.Equal(t, 15.0, cfg.Entities.Player.Movement.FallAcceleration)

	walker := cfg.Entities.Enemies["walker"]
	assert.Equal(t, 2.5, walker.Patrol.MoveSpeed)
	assert.True(t, walker.Patrol.AvoidFalling)
	assert.Equal(t, 100, walker.Patrol.DeathScore)
}

func TestApplyTuning_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		tuning string
	}{
		{"unknown key", "[player.movement]\njumpPower = 3\n"},
		{"unknown enemy", "[enemies.ghost.patrol]\nmoveSpeed = 1\n"},
		{"bad syntax", "[player\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := NewLoader(configDir).LoadAll()
			require.NoError(t, err)
			assert.Error(t, ApplyTuning(cfg, strings.NewReader(tt.tuning)))
		})
	}
}

func TestApplyTuning_ErrorLeavesConfigUntouched(t *testing.T) {
	tests := []struct {
		name   string
		tuning string
	}{
		{"unknown key after valid ones", "[physics.physics]\nfixedStep = 0.5\n\n[player.movement]\nmaxJumpHeight = 9.0\njumpPower = 3\n"},
		{"unknown enemy after known one", "[player.movement]\nmaxJumpHeight = 9.0\n\n[enemies.walker.patrol]\nmoveSpeed = 7.0\n\n[enemies.ghost.patrol]\nmoveSpeed = 1.0\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := NewLoader(configDir).LoadAll()
			require.NoError(t, err)
			before, err := NewLoader(configDir).LoadAll()
			require.NoError(t, err)

			require.Error(t, ApplyTuning(cfg, strings.NewReader(tt.tuning)))

			assert.Equal(t, before.Physics, cfg.Physics)
			assert.Equal(t, before.Entities, cfg.Entities)
		})
	}
}

func TestApplyTuningFile_Example(t *testing.T) {
	cfg, err := NewLoader(configDir).LoadAll()
	require.NoError(t, err)

	require.NoError(t, ApplyTuningFile(cfg, configDir+"/tuning.example.toml"))
	assert.Equal(t, 3.6, cfg.Entities.Player.Movement.MaxJumpHeight)
	assert.Equal(t, 2.0, cfg.Entities.Enemies["walker"].Patrol.MoveSpeed)
}

func TestSchema(t *testing.T) {
	data, err := Schema("entities")
	require.NoError(t, err)
	assert.Contains(t, string(data), "moveAcceleration")
	assert.Contains(t, string(data), "deathBounceHeight")

	data, err = Schema("stage")
	require.NoError(t, err)
	assert.Contains(t, string(data), "playerSpawn")

	_, err = Schema("nope")
	assert.Error(t, err)
}
