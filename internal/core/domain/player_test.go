package domain_test

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/comitanigiacomo/kanso-quest/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var createdAt = time.Date(2024, 3, 13, 9, 0, 0, 0, time.UTC)

func TestNewPlayer(t *testing.T) {
	cfg := domain.DefaultGameConfig()

	t.Run("Success: Fresh profile starts at level 1 with all skills", func(t *testing.T) {
		p, err := domain.NewPlayer("p1", "  Ada  ", cfg, createdAt)

		require.NoError(t, err)
		assert.Equal(t, "Ada", p.Name)
		assert.Equal(t, 1, p.Level)
		assert.Equal(t, 0, p.TotalXP)
		assert.Len(t, p.Skills, len(domain.Skills))
		for _, s := range domain.Skills {
			assert.Equal(t, 1, p.Skills[s].Level, "skill %s", s)
		}
		assert.Equal(t, cfg.StreakForgivenessDays, p.Stats.Streak.Forgiveness)
		assert.Equal(t, "2024-03-04", p.Stats.Streak.RefillWeek)
		assert.Equal(t, "🌱", p.Avatar.Emoji)
		assert.Equal(t, []string{"dark"}, p.Inventory.Themes)
		assert.True(t, p.IsNew())
	})

	t.Run("Edge Case: Empty name falls back to default", func(t *testing.T) {
		p, err := domain.NewPlayer("p1", "   ", cfg, createdAt)

		require.NoError(t, err)
		assert.Equal(t, domain.DefaultPlayerName, p.Name)
	})

	t.Run("Fail: Name too long", func(t *testing.T) {
		_, err := domain.NewPlayer("p1", strings.Repeat("a", 51), cfg, createdAt)
		assert.ErrorIs(t, err, domain.ErrInvalidPlayerName)
	})

	t.Run("Fail: Empty id", func(t *testing.T) {
		_, err := domain.NewPlayer("", "Ada", cfg, createdAt)
		assert.ErrorIs(t, err, domain.ErrInvalidPlayerState)
	})
}

func TestPlayer_Achievements(t *testing.T) {
	p, _ := domain.NewPlayer("p1", "Ada", domain.DefaultGameConfig(), createdAt)

	assert.True(t, p.AddAchievement(domain.AchFirstQuest))
	assert.False(t, p.AddAchievement(domain.AchFirstQuest), "set semantics")
	assert.True(t, p.AddAchievement(domain.AchStreak3))

	assert.True(t, p.HasAchievement(domain.AchFirstQuest))
	assert.False(t, p.HasAchievement(domain.AchQuests10))
	assert.Equal(t, []domain.AchievementID{domain.AchFirstQuest, domain.AchStreak3}, p.Achievements)
}

func TestPlayer_Validate(t *testing.T) {
	cfg := domain.DefaultGameConfig()

	tests := []struct {
		name    string
		mutate  func(p *domain.Player)
		wantErr bool
	}{
		{name: "Success: Fresh player", mutate: func(p *domain.Player) {}},
		{name: "Fail: Level zero", mutate: func(p *domain.Player) { p.Level = 0 }, wantErr: true},
		{name: "Fail: Level above max", mutate: func(p *domain.Player) { p.Level = cfg.MaxPlayerLevel + 1 }, wantErr: true},
		{name: "Fail: Daily xp above cap", mutate: func(p *domain.Player) { p.DailyXP = cfg.MaxDailyXP + 1 }, wantErr: true},
		{name: "Fail: Negative total", mutate: func(p *domain.Player) { p.TotalXP = -1 }, wantErr: true},
		{name: "Fail: Skill level above max", mutate: func(p *domain.Player) { p.Skills[domain.SkillCardio].Level = 51 }, wantErr: true},
		{name: "Fail: WAHD above seven", mutate: func(p *domain.Player) { p.Stats.WAHD.Current = 8 }, wantErr: true},
		{name: "Fail: Empty name", mutate: func(p *domain.Player) { p.Name = "" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, _ := domain.NewPlayer("p1", "Ada", cfg, createdAt)
			tt.mutate(p)

			err := p.Validate(cfg)
			if tt.wantErr {
				assert.True(t, errors.Is(err, domain.ErrInvalidPlayerState))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestPlayer_CloneIsDeep(t *testing.T) {
	p, _ := domain.NewPlayer("p1", "Ada", domain.DefaultGameConfig(), createdAt)
	p.AddAchievement(domain.AchFirstQuest)
	p.Today.Mark(domain.CategoryMovement)

	c := p.Clone()
	c.Skills[domain.SkillCardio].XP = 40
	c.Achievements[0] = domain.AchQuests100
	c.Today.Categories[0] = domain.CategoryRecovery
	c.Inventory.Themes[0] = "ocean"

	assert.Equal(t, 0, p.Skills[domain.SkillCardio].XP)
	assert.Equal(t, domain.AchFirstQuest, p.Achievements[0])
	assert.Equal(t, domain.CategoryMovement, p.Today.Categories[0])
	assert.Equal(t, "dark", p.Inventory.Themes[0])
}

func TestPlayer_JSONRoundTrip(t *testing.T) {
	cfg := domain.DefaultGameConfig()
	p, _ := domain.NewPlayer("p1", "Ada", cfg, createdAt)
	p.Level = 4
	p.TotalXP = 612
	p.CurrentXP = 12
	p.DailyXP = 80
	p.Skills[domain.SkillMindfulness].Level = 3
	p.Skills[domain.SkillMindfulness].XP = 7
	p.Stats.Streak.Current = 5
	p.Stats.Streak.Best = 9
	p.Stats.Streak.LastActiveDate = "2024-03-13"
	p.AddAchievement(domain.AchStreak3)

	data, err := json.Marshal(p)
	require.NoError(t, err)

	var back domain.Player
	require.NoError(t, json.Unmarshal(data, &back))
	back.Normalize(cfg)

	assert.Equal(t, p.Level, back.Level)
	assert.Equal(t, p.TotalXP, back.TotalXP)
	assert.Equal(t, p.CurrentXP, back.CurrentXP)
	assert.Equal(t, p.DailyXP, back.DailyXP)
	assert.Equal(t, p.Skills, back.Skills)
	assert.Equal(t, p.Stats.Streak, back.Stats.Streak)
	assert.Equal(t, p.Achievements, back.Achievements)
	assert.NoError(t, back.Validate(cfg))
}

func TestDayActivity(t *testing.T) {
	d := domain.NewDayActivity("2024-03-13")

	assert.True(t, d.Mark(domain.CategoryNutrition))
	assert.False(t, d.Mark(domain.CategoryNutrition))
	assert.True(t, d.Mark(domain.CategoryRecovery))

	assert.Equal(t, 2, d.CategoryCount())
	assert.True(t, d.Has(domain.CategoryRecovery))
	assert.False(t, d.Has(domain.CategoryMovement))
}
