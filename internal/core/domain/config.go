package domain

import "time"

// GameConfig holds the tuning constants of the progression engine.
// It is treated as immutable once the engine is constructed.
type GameConfig struct {
	MaxDailyXP            int           `yaml:"max_daily_xp" json:"max_daily_xp"`
	XPPerLevel            int           `yaml:"xp_per_level" json:"xp_per_level"`
	SkillXPPerLevel       int           `yaml:"skill_xp_per_level" json:"skill_xp_per_level"`
	MinHabitsForWAHD      int           `yaml:"min_habits_for_wahd" json:"min_habits_for_wahd"`
	StreakForgivenessDays int           `yaml:"streak_forgiveness_days" json:"streak_forgiveness_days"`
	QuestHistoryDays      int           `yaml:"quest_history_days" json:"quest_history_days"`
	RecentQuestDays       int           `yaml:"recent_quest_days" json:"recent_quest_days"`
	MaxPlayerLevel        int           `yaml:"max_player_level" json:"max_player_level"`
	MaxSkillLevel         int           `yaml:"max_skill_level" json:"max_skill_level"`
	AutoSaveInterval      time.Duration `yaml:"auto_save_interval" json:"auto_save_interval"`
}

const (
	MinDailyXP          = 50
	MinAutoSaveInterval = 10 * time.Second
)

func DefaultGameConfig() GameConfig {
	return GameConfig{
		MaxDailyXP:            200,
		XPPerLevel:            100,
		SkillXPPerLevel:       50,
		MinHabitsForWAHD:      3,
		StreakForgivenessDays: 1,
		QuestHistoryDays:      30,
		RecentQuestDays:       3,
		MaxPlayerLevel:        100,
		MaxSkillLevel:         50,
		AutoSaveInterval:      30 * time.Second,
	}
}

// Normalized returns a copy with unset values defaulted and out-of-range values clamped.
func (c GameConfig) Normalized() GameConfig {
	def := DefaultGameConfig()

	if c.MaxDailyXP <= 0 {
		c.MaxDailyXP = def.MaxDailyXP
	} else if c.MaxDailyXP < MinDailyXP {
		c.MaxDailyXP = MinDailyXP
	}
	if c.XPPerLevel <= 0 {
		c.XPPerLevel = def.XPPerLevel
	}
	if c.SkillXPPerLevel <= 0 {
		c.SkillXPPerLevel = def.SkillXPPerLevel
	}
	if c.MinHabitsForWAHD <= 0 {
		c.MinHabitsForWAHD = def.MinHabitsForWAHD
	}
	if c.MinHabitsForWAHD > len(Categories) {
		c.MinHabitsForWAHD = len(Categories)
	}
	if c.StreakForgivenessDays < 0 {
		c.StreakForgivenessDays = 0
	}
	if c.QuestHistoryDays <= 0 {
		c.QuestHistoryDays = def.QuestHistoryDays
	}
	if c.RecentQuestDays < 0 {
		c.RecentQuestDays = 0
	}
	if c.MaxPlayerLevel <= 1 {
		c.MaxPlayerLevel = def.MaxPlayerLevel
	}
	if c.MaxSkillLevel <= 1 {
		c.MaxSkillLevel = def.MaxSkillLevel
	}
	if c.AutoSaveInterval <= 0 {
		c.AutoSaveInterval = def.AutoSaveInterval
	} else if c.AutoSaveInterval < MinAutoSaveInterval {
		c.AutoSaveInterval = MinAutoSaveInterval
	}
	return c
}
