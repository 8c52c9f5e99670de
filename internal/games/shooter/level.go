package shooter

import "github.com/vovakirdan/space-shooter/internal/config"

// MaxLevel is the boss level.
const MaxLevel = 3

// Difficulty holds the parameters that change as the player levels up.
type Difficulty struct {
	Level         int
	EnemySpeed    int
	SpawnInterval int // Ticks between enemy spawns
}

// StartDifficulty returns level 1 parameters.
func StartDifficulty(en config.Enemies) Difficulty {
	return Difficulty{
		Level:         1,
		EnemySpeed:    en.Speed,
		SpawnInterval: en.SpawnInterval,
	}
}

// Progress returns the difficulty for the given score. It advances at most one
// level per call: 1->2 speeds enemies up and shortens the spawn interval
// (floored at MinSpawnInterval), 2->3 starts the boss level.
func Progress(score int, d Difficulty, lv config.Levels, en config.Enemies) Difficulty {
	switch {
	case d.Level == 1 && score >= lv.LevelOneScore:
		d.Level = 2
		d.EnemySpeed += en.SpeedStep
		d.SpawnInterval = max(en.MinSpawnInterval, d.SpawnInterval-en.SpawnIntervalStep)
	case d.Level == 2 && score >= lv.LevelTwoScore:
		d.Level = MaxLevel
	}
	return d
}
