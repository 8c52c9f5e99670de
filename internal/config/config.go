// Package config provides YAML-based game configuration loading and
// difficulty presets for the shooter.
package config

// ShooterConfig contains all tunables for one shooter mode.
type ShooterConfig struct {
	World   World   `yaml:"world"`
	Player  Player  `yaml:"player"`
	Bullets Bullets `yaml:"bullets"`
	Enemies Enemies `yaml:"enemies"`
	Pickups Pickups `yaml:"pickups"`
	Boss    Boss    `yaml:"boss"`
	Levels  Levels  `yaml:"levels"`
	Scoring Scoring `yaml:"scoring"`
	Session Session `yaml:"session"`
}

// World defines the playfield in pixels.
type World struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// Player defines the ship.
type Player struct {
	Width        int `yaml:"width"`
	Height       int `yaml:"height"`
	BottomOffset int `yaml:"bottom_offset"` // Distance from the bottom of the world to the ship's top edge
	Speed        int `yaml:"speed"`
	FireInterval int `yaml:"fire_interval"` // Ticks between volleys
	MaxHealth    int `yaml:"max_health"`
}

// Bullets defines both player and boss projectiles.
type Bullets struct {
	Width      int   `yaml:"width"`
	Height     int   `yaml:"height"`
	Speed      int   `yaml:"speed"`       // Player bullets, upward
	BossSpeed  int   `yaml:"boss_speed"`  // Boss bullets, downward
	Spread     []int `yaml:"spread"`      // Horizontal offsets of a player volley
	BossSpread []int `yaml:"boss_spread"` // Horizontal offsets of a boss volley
}

// Enemies defines regular enemy spawning and movement.
type Enemies struct {
	Width             int `yaml:"width"`
	Height            int `yaml:"height"`
	Speed             int `yaml:"speed"`
	SpawnInterval     int `yaml:"spawn_interval"`      // Ticks between spawns at level 1
	MinSpawnInterval  int `yaml:"min_spawn_interval"`  // Floor for the spawn interval
	SpawnIntervalStep int `yaml:"spawn_interval_step"` // Reduction applied at level-up
	SpeedStep         int `yaml:"speed_step"`          // Speed increase applied at level-up
	SpawnMinY         int `yaml:"spawn_min_y"`
	SpawnMaxY         int `yaml:"spawn_max_y"`
}

// Pickups defines health pickups.
type Pickups struct {
	Size     int `yaml:"size"`
	Speed    int `yaml:"speed"`
	Interval int `yaml:"interval"` // Ticks between pickups
	SpawnY   int `yaml:"spawn_y"`
}

// Boss defines the level-3 adversary.
type Boss struct {
	Width        int `yaml:"width"`
	Height       int `yaml:"height"`
	StartY       int `yaml:"start_y"`
	Health       int `yaml:"health"`
	Speed        int `yaml:"speed"`
	FireInterval int `yaml:"fire_interval"`
}

// Levels defines the score thresholds for level progression.
type Levels struct {
	LevelOneScore int `yaml:"level_one_score"` // Score at which level 2 starts
	LevelTwoScore int `yaml:"level_two_score"` // Score at which level 3 (boss) starts
}

// Scoring defines points awarded.
type Scoring struct {
	EnemyPoints int `yaml:"enemy_points"`
	BossPoints  int `yaml:"boss_points"`
}

// Session defines terminal screen behavior between rounds.
type Session struct {
	OverHoldTicks int `yaml:"over_hold_ticks"` // Ticks after a win during which restart is ignored
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ParsePreset converts a CLI string into a preset.
// Unknown or empty strings yield "" which means "use the config as loaded".
func ParsePreset(s string) DifficultyPreset {
	switch DifficultyPreset(s) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard:
		return DifficultyPreset(s)
	default:
		return ""
	}
}
