package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/kanso-quest/internal/core/domain"
)

func TestProgressionService_GrantExperience(t *testing.T) {
	t.Run("Success: Multi level up in a single grant", func(t *testing.T) {
		cfg := uncappedConfig()
		svc, rec := newTestProgression(cfg)
		p := newTestPlayer(t, cfg)

		res := svc.GrantExperience(p, 350, domain.SourceTracking)

		assert.True(t, res.Accepted)
		assert.NoError(t, res.Err())
		assert.Equal(t, 3, p.Level)
		assert.Equal(t, 50, p.CurrentXP)
		assert.Equal(t, 350, p.TotalXP)
		assert.Equal(t, 2, res.LevelsGained)

		levelUps := 0
		for _, e := range rec.Events() {
			if lu, ok := e.(domain.LevelUp); ok {
				levelUps++
				assert.Equal(t, 1, lu.From)
				assert.Equal(t, 3, lu.To)
			}
		}
		assert.Equal(t, 1, levelUps, "one level-up event per grant")
	})

	t.Run("Success: Thresholds scale linearly with level", func(t *testing.T) {
		cfg := uncappedConfig()
		svc, _ := newTestProgression(cfg)
		p := newTestPlayer(t, cfg)

		svc.GrantExperience(p, 250, domain.SourceTracking)

		assert.Equal(t, 2, p.Level)
		assert.Equal(t, 150, p.CurrentXP)
		assert.Equal(t, 200, p.NextLevelXP(cfg))
	})

	t.Run("Success: Skill track advances with its own threshold", func(t *testing.T) {
		cfg := uncappedConfig()
		svc, rec := newTestProgression(cfg)
		p := newTestPlayer(t, cfg)

		res := svc.GrantExperience(p, 60, domain.SourceMeal)

		nutrition := p.Skill(domain.SkillNutrition)
		assert.Equal(t, 2, nutrition.Level)
		assert.Equal(t, 10, nutrition.XP)
		assert.Equal(t, 60, nutrition.TotalXP)
		require.Len(t, res.SkillLevelUps, 1)
		assert.Equal(t, SkillGain{Skill: domain.SkillNutrition, Level: 2}, res.SkillLevelUps[0])
		assert.Equal(t, []domain.EventType{domain.EventSkillLevelUp, domain.EventExperienceGained}, rec.Types())
	})

	t.Run("Success: Perk unlocks at skill level 5", func(t *testing.T) {
		cfg := uncappedConfig()
		svc, rec := newTestProgression(cfg)
		p := newTestPlayer(t, cfg)

		// 50 + 100 + 150 + 200 reaches level 5.
		res := svc.GrantExperience(p, 500, domain.SourceMeditation)

		mind := p.Skill(domain.SkillMindfulness)
		assert.Equal(t, 5, mind.Level)
		require.Len(t, res.Perks, 1)
		assert.Equal(t, "present", res.Perks[0].ID)
		assert.Equal(t, 5, res.Perks[0].Level)
		assert.Contains(t, rec.Types(), domain.EventPerkUnlocked)
		assert.Len(t, mind.Milestones, 4)
	})

	t.Run("Success: Avatar evolves and reward unlocks at level 5", func(t *testing.T) {
		cfg := uncappedConfig()
		svc, rec := newTestProgression(cfg)
		p := newTestPlayer(t, cfg)

		res := svc.GrantExperience(p, 1000, domain.SourceTracking)

		assert.Equal(t, 5, p.Level)
		assert.Equal(t, 0, p.CurrentXP)
		assert.Equal(t, 5, p.Avatar.Stage)
		require.Len(t, res.Rewards, 1)
		assert.Contains(t, p.Inventory.Titles, "Dedicated Seeker")
		assert.Equal(t, []domain.EventType{
			domain.EventAvatarEvolved,
			domain.EventRewardUnlocked,
			domain.EventLevelUp,
			domain.EventExperienceGained,
		}, rec.Types())
	})

	t.Run("Success: Achievement experience feeds no skill", func(t *testing.T) {
		cfg := uncappedConfig()
		svc, _ := newTestProgression(cfg)
		p := newTestPlayer(t, cfg)

		svc.GrantExperience(p, 500, domain.SourceAchievement)

		for _, s := range domain.Skills {
			assert.Equal(t, 0, p.Skill(s).TotalXP, s)
		}
	})

	t.Run("Fail: Non-positive amount is rejected", func(t *testing.T) {
		cfg := domain.DefaultGameConfig()
		svc, rec := newTestProgression(cfg)
		p := newTestPlayer(t, cfg)

		res := svc.GrantExperience(p, 0, domain.SourceMeal)

		assert.False(t, res.Accepted)
		assert.NotEmpty(t, res.Reason)
		assert.Equal(t, 0, p.TotalXP)
		assert.Empty(t, rec.Events())
	})

	t.Run("Edge: Level is clamped at the maximum", func(t *testing.T) {
		cfg := uncappedConfig()
		cfg.MaxPlayerLevel = 3
		svc, _ := newTestProgression(cfg)
		p := newTestPlayer(t, cfg)

		svc.GrantExperience(p, 10_000, domain.SourceTracking)

		assert.Equal(t, 3, p.Level)
		assert.Equal(t, 299, p.CurrentXP)
		assert.Less(t, p.CurrentXP, p.NextLevelXP(cfg))
	})
}

func TestProgressionService_DailyCap(t *testing.T) {
	t.Run("Edge: Grant crossing the cap is clamped", func(t *testing.T) {
		cfg := domain.DefaultGameConfig()
		svc, rec := newTestProgression(cfg)
		p := newTestPlayer(t, cfg)
		p.DailyXP = 180

		res := svc.GrantExperience(p, 50, domain.SourceMeal)

		assert.True(t, res.Accepted)
		assert.True(t, res.Capped)
		assert.Equal(t, 20, res.Granted)
		assert.Equal(t, 200, p.DailyXP)
		assert.Equal(t, ReasonDailyLimit, res.Reason)
		assert.ErrorIs(t, res.Err(), domain.ErrDailyLimitReached)
		kind, ok := domain.KindOf(res.Err())
		require.True(t, ok)
		assert.Equal(t, domain.KindCapacityExceeded, kind)
		assert.Equal(t, res.Reason, domain.ReasonOf(res.Err()))

		types := rec.Types()
		require.NotEmpty(t, types)
		assert.Equal(t, domain.EventDailyLimitReached, types[len(types)-1])
	})

	t.Run("Fail: Grant at the cap is rejected without mutation", func(t *testing.T) {
		cfg := domain.DefaultGameConfig()
		svc, rec := newTestProgression(cfg)
		p := newTestPlayer(t, cfg)
		p.DailyXP = cfg.MaxDailyXP
		before := p.TotalXP

		res := svc.GrantExperience(p, 25, domain.SourceMeal)

		assert.False(t, res.Accepted)
		assert.True(t, res.Capped)
		assert.Equal(t, ReasonDailyLimit, res.Reason)
		assert.ErrorIs(t, res.Err(), domain.ErrDailyLimitReached)
		assert.Equal(t, before, p.TotalXP)
		assert.Equal(t, []domain.EventType{domain.EventDailyLimitReached}, rec.Types())
	})

	t.Run("Invariant: Daily experience never exceeds the cap", func(t *testing.T) {
		cfg := domain.DefaultGameConfig()
		svc, _ := newTestProgression(cfg)
		p := newTestPlayer(t, cfg)

		for _, amount := range []int{15, 80, 45, 30, 70, 10, 500} {
			svc.GrantExperience(p, amount, domain.SourceRun)
			assert.LessOrEqual(t, p.DailyXP, cfg.MaxDailyXP)
			assert.Less(t, p.CurrentXP, p.NextLevelXP(cfg))
		}
		assert.Equal(t, cfg.MaxDailyXP, p.TotalXP)
	})
}
