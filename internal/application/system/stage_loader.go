package system

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/younwookim/platformer/internal/domain/entity"
	"github.com/younwookim/platformer/internal/infrastructure/config"
)

// LoadStage converts a StageConfig into a Stage entity
func LoadStage(cfg *config.StageConfig) (*entity.Stage, error) {
	tileHeight := len(cfg.Layers.Collision)
	if tileHeight == 0 {
		return nil, fmt.Errorf("stage %s: %w: empty collision layer", cfg.ID, entity.ErrInvalidConfig)
	}
	tileWidth := cfg.Size.Width
	if tileWidth <= 0 {
		for _, row := range cfg.Layers.Collision {
			tileWidth = max(tileWidth, len(row))
		}
	}

	tiles := make([][]entity.Tile, tileHeight)
	for y, row := range cfg.Layers.Collision {
		tiles[y] = make([]entity.Tile, tileWidth)
		for x, char := range row {
			if x >= tileWidth {
				break
			}
			mapping, ok := cfg.TileMapping[string(char)]
			if !ok {
				continue
			}

			var tileType entity.TileType
			switch mapping.Type {
			case "wall":
				tileType = entity.TileWall
			case "ground":
				tileType = entity.TileGround
			default:
				tileType = entity.TileEmpty
			}

			tiles[y][x] = entity.Tile{
				Type:  tileType,
				Solid: mapping.Solid,
			}
		}
	}

	stage := &entity.Stage{
		Width:  tileWidth,
		Height: tileHeight,
		Tiles:  tiles,
	}
	spawn := TileToWorld(stage, cfg.PlayerSpawn.X, cfg.PlayerSpawn.Y)
	stage.SpawnX, stage.SpawnY = spawn.X(), spawn.Y()
	return stage, nil
}

// TileToWorld returns the bottom-center of a tile, where spawned actors stand
func TileToWorld(stage *entity.Stage, col, row int) mgl64.Vec2 {
	return mgl64.Vec2{float64(col) + 0.5, float64(stage.Height - 1 - row)}
}

// MovementFromConfig maps the JSON movement block to controller tuning
func MovementFromConfig(cfg config.MovementConfig) entity.MovementConfig {
	return entity.MovementConfig{
		MoveAcceleration:        cfg.MoveAcceleration,
		MaxMoveSpeed:            cfg.MaxMoveSpeed,
		HorizontalDrag:          cfg.HorizontalDrag,
		HorizontalStopThreshold: cfg.HorizontalStopThreshold,
		FallAcceleration:        cfg.FallAcceleration,
		MaxFallSpeed:            cfg.MaxFallSpeed,
		MaxJumpHeight:           cfg.MaxJumpHeight,
		JumpCancelFactor:        cfg.JumpCancelFactor,
		JumpVelocityThreshold:   cfg.JumpVelocityThreshold,
	}
}

// PatrolFromConfig maps the JSON patrol block to controller tuning.
// A non-empty direction overrides the configured start direction.
func PatrolFromConfig(cfg config.PatrolConfig, direction string) (entity.PatrolConfig, error) {
	if direction == "" {
		direction = cfg.StartDirection
	}
	dir, err := entity.ParseDirection(direction)
	if err != nil {
		return entity.PatrolConfig{}, err
	}
	return entity.PatrolConfig{
		MoveSpeed:               cfg.MoveSpeed,
		StartDirection:          dir,
		IdleOffScreen:           cfg.IdleOffScreen,
		AvoidFalling:            cfg.AvoidFalling,
		DirectionChangeCooldown: cfg.DirectionChangeCooldown,
		ProbeDistance:           cfg.ProbeDistance,
		DeathBounceHeight:       cfg.DeathBounceHeight,
		DeathScore:              cfg.DeathScore,
	}, nil
}
