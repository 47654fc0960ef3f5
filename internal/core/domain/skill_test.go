package domain_test

import (
	"testing"

	"github.com/comitanigiacomo/kanso-quest/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestSource_Skill(t *testing.T) {
	tests := []struct {
		source domain.Source
		want   domain.Skill
		ok     bool
	}{
		{domain.SourceMeal, domain.SkillNutrition, true},
		{domain.SourceWeights, domain.SkillStrength, true},
		{domain.SourceRun, domain.SkillCardio, true},
		{domain.SourceMovement, domain.SkillCardio, true},
		{domain.SourceSleep, domain.SkillRecovery, true},
		{domain.SourceGratitude, domain.SkillMindfulness, true},
		{domain.SourceAchievement, "", false},
		{domain.SourceChallenge, "", false},
		{domain.SourceTracking, "", false},
		{domain.Source("juggling"), "", false},
	}

	for _, tt := range tests {
		t.Run(string(tt.source), func(t *testing.T) {
			got, ok := tt.source.Skill()
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEveryCategoryFeedsASkill(t *testing.T) {
	for _, c := range domain.Categories {
		_, ok := c.Source().Skill()
		assert.True(t, ok, "category %s", c)
	}
}

func TestPerkAt(t *testing.T) {
	perk, ok := domain.PerkAt(domain.SkillRecovery, 25)
	assert.True(t, ok)
	assert.Equal(t, "phoenix", perk.ID)
	assert.Equal(t, 25, perk.Level)

	_, ok = domain.PerkAt(domain.SkillRecovery, 7)
	assert.False(t, ok)
}

func TestAvatarForLevel(t *testing.T) {
	assert.Equal(t, 1, domain.AvatarForLevel(1).Stage)
	assert.Equal(t, 1, domain.AvatarForLevel(4).Stage)
	assert.Equal(t, 5, domain.AvatarForLevel(5).Stage)
	assert.Equal(t, 30, domain.AvatarForLevel(39).Stage)
	assert.Equal(t, 100, domain.AvatarForLevel(100).Stage)
}

func TestInventory_Add(t *testing.T) {
	inv := domain.NewInventory()
	r, _ := domain.RewardForLevel(10)

	assert.True(t, inv.Add(r))
	assert.False(t, inv.Add(r))
	assert.Equal(t, []string{"dark", "ocean"}, inv.Themes)
}
