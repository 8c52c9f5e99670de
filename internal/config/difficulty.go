package config

// ApplyPreset modifies the config based on a difficulty preset.
// Level thresholds are left alone: they belong to the mode, not the preset.
func ApplyPreset(cfg *ShooterConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Player.MaxHealth = 5
		cfg.Enemies.Speed = max(1, cfg.Enemies.Speed-1)
		cfg.Boss.Health = 35
	case DifficultyHard:
		cfg.Player.MaxHealth = 2
		cfg.Enemies.Speed++
		cfg.Enemies.SpawnInterval = max(cfg.Enemies.MinSpawnInterval, cfg.Enemies.SpawnInterval-5)
		cfg.Boss.Health = 70
		cfg.Boss.FireInterval = max(1, cfg.Boss.FireInterval-15)
	}
}
