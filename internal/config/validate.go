package config

import "fmt"

// ValidationError contains details about validation failure.
type ValidationError struct {
	Code    string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Validate checks that the configuration describes a playable game.
// The first failing check is returned.
func (c ShooterConfig) Validate() error {
	positives := []struct {
		name  string
		value int
	}{
		{"world.width", c.World.Width},
		{"world.height", c.World.Height},
		{"player.width", c.Player.Width},
		{"player.height", c.Player.Height},
		{"player.speed", c.Player.Speed},
		{"player.fire_interval", c.Player.FireInterval},
		{"player.max_health", c.Player.MaxHealth},
		{"bullets.width", c.Bullets.Width},
		{"bullets.height", c.Bullets.Height},
		{"bullets.speed", c.Bullets.Speed},
		{"bullets.boss_speed", c.Bullets.BossSpeed},
		{"enemies.width", c.Enemies.Width},
		{"enemies.height", c.Enemies.Height},
		{"enemies.speed", c.Enemies.Speed},
		{"enemies.spawn_interval", c.Enemies.SpawnInterval},
		{"enemies.min_spawn_interval", c.Enemies.MinSpawnInterval},
		{"pickups.size", c.Pickups.Size},
		{"pickups.speed", c.Pickups.Speed},
		{"pickups.interval", c.Pickups.Interval},
		{"boss.width", c.Boss.Width},
		{"boss.height", c.Boss.Height},
		{"boss.health", c.Boss.Health},
		{"boss.speed", c.Boss.Speed},
		{"boss.fire_interval", c.Boss.FireInterval},
	}
	for _, p := range positives {
		if p.value <= 0 {
			return ValidationError{
				Code:    "NOT_POSITIVE",
				Message: fmt.Sprintf("%s must be > 0, got %d", p.name, p.value),
			}
		}
	}

	if c.Player.Width > c.World.Width || c.Enemies.Width > c.World.Width ||
		c.Pickups.Size > c.World.Width || c.Boss.Width > c.World.Width {
		return ValidationError{
			Code:    "TOO_WIDE",
			Message: fmt.Sprintf("entities must fit in a %d pixel wide world", c.World.Width),
		}
	}

	if c.Player.BottomOffset < c.Player.Height || c.Player.BottomOffset > c.World.Height {
		return ValidationError{
			Code:    "PLAYER_OFFSCREEN",
			Message: fmt.Sprintf("player.bottom_offset must be in [%d, %d], got %d", c.Player.Height, c.World.Height, c.Player.BottomOffset),
		}
	}

	if c.Enemies.SpawnMinY > c.Enemies.SpawnMaxY {
		return ValidationError{
			Code:    "SPAWN_RANGE",
			Message: fmt.Sprintf("enemies.spawn_min_y (%d) must not exceed spawn_max_y (%d)", c.Enemies.SpawnMinY, c.Enemies.SpawnMaxY),
		}
	}

	if len(c.Bullets.Spread) == 0 || len(c.Bullets.BossSpread) == 0 {
		return ValidationError{
			Code:    "EMPTY_VOLLEY",
			Message: "bullets.spread and bullets.boss_spread need at least one offset",
		}
	}

	if c.Levels.LevelOneScore <= 0 || c.Levels.LevelTwoScore <= c.Levels.LevelOneScore {
		return ValidationError{
			Code:    "LEVEL_THRESHOLDS",
			Message: fmt.Sprintf("need 0 < level_one_score < level_two_score, got %d and %d", c.Levels.LevelOneScore, c.Levels.LevelTwoScore),
		}
	}

	if c.Scoring.EnemyPoints < 0 || c.Scoring.BossPoints < 0 || c.Session.OverHoldTicks < 0 {
		return ValidationError{
			Code:    "NEGATIVE",
			Message: "scoring points and session.over_hold_ticks must not be negative",
		}
	}

	return nil
}
