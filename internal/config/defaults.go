package config

import (
	_ "embed"
)

// Mode identifiers. Each mode has its own embedded YAML.
const (
	ModeClassic = "shooter"
	ModeBlitz   = "shooter_blitz"
)

//go:embed defaults/shooter.yaml
var defaultShooterYAML []byte

//go:embed defaults/blitz.yaml
var defaultBlitzYAML []byte

// DefaultShooterConfig returns the classic configuration.
func DefaultShooterConfig() ShooterConfig {
	return ShooterConfig{
		World: World{
			Width:  600,
			Height: 800,
		},
		Player: Player{
			Width:        50,
			Height:       30,
			BottomOffset: 60,
			Speed:        5,
			FireInterval: 10,
			MaxHealth:    3,
		},
		Bullets: Bullets{
			Width:      4,
			Height:     10,
			Speed:      7,
			BossSpeed:  5,
			Spread:     []int{-10, 0, 10},
			BossSpread: []int{-20, 0, 20},
		},
		Enemies: Enemies{
			Width:             40,
			Height:            30,
			Speed:             3,
			SpawnInterval:     30,
			MinSpawnInterval:  10,
			SpawnIntervalStep: 5,
			SpeedStep:         1,
			SpawnMinY:         -100,
			SpawnMaxY:         -40,
		},
		Pickups: Pickups{
			Size:     25,
			Speed:    2,
			Interval: 300,
			SpawnY:   -30,
		},
		Boss: Boss{
			Width:        100,
			Height:       60,
			StartY:       50,
			Health:       50,
			Speed:        4,
			FireInterval: 60,
		},
		Levels: Levels{
			LevelOneScore: 200,
			LevelTwoScore: 500,
		},
		Scoring: Scoring{
			EnemyPoints: 10,
			BossPoints:  100,
		},
		Session: Session{
			OverHoldTicks: 60,
		},
	}
}

// DefaultBlitzConfig returns the short-thresholds configuration.
func DefaultBlitzConfig() ShooterConfig {
	cfg := DefaultShooterConfig()
	cfg.Levels = Levels{
		LevelOneScore: 50,
		LevelTwoScore: 150,
	}
	return cfg
}

// DefaultFor returns the hard-coded configuration for a mode.
func DefaultFor(mode string) ShooterConfig {
	if mode == ModeBlitz {
		return DefaultBlitzConfig()
	}
	return DefaultShooterConfig()
}

// GetDefaultYAML returns the embedded default YAML for a mode.
func GetDefaultYAML(mode string) []byte {
	switch mode {
	case ModeClassic:
		return defaultShooterYAML
	case ModeBlitz:
		return defaultBlitzYAML
	default:
		return nil
	}
}
