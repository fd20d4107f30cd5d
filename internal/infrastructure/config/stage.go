package config

// StageConfig is the root config for stage JSON files
type StageConfig struct {
	ID          string                       `json:"id"`
	Name        string                       `json:"name"`
	Size        StageSizeConfig              `json:"size"`
	PlayerSpawn PositionConfig               `json:"playerSpawn"`
	Layers      LayersConfig                 `json:"layers"`
	TileMapping map[string]TileMappingConfig `json:"tileMapping"`
	Enemies     []EnemySpawnConfig           `json:"enemies"`
	Next        string                       `json:"next,omitempty"`
}

// StageSizeConfig is measured in tiles; one tile is one world unit
type StageSizeConfig struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// PositionConfig is a tile column and row, row 0 being the top of the collision layer
type PositionConfig struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type LayersConfig struct {
	Collision []string `json:"collision"`
}

type TileMappingConfig struct {
	Type  string `json:"type"`
	Solid bool   `json:"solid"`
}

type EnemySpawnConfig struct {
	Type      string `json:"type"`
	X         int    `json:"x"`
	Y         int    `json:"y"`
	Direction string `json:"direction,omitempty"` // Overrides the enemy type's start direction
}
