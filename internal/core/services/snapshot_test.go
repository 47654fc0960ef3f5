package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/kanso-quest/internal/core/domain"
)

func TestSnapshot_RoundTrip(t *testing.T) {
	cfg := domain.DefaultGameConfig()
	p := newTestPlayer(t, cfg)
	p.TotalXP = 420
	p.CurrentXP = 20
	p.Level = 4
	p.LastActiveDate = "2024-03-13"
	p.AddAchievement(domain.AchFirstQuest)
	p.Stats.QuestsCompleted = 12

	cardio := p.Skill(domain.SkillCardio)
	cardio.Level = 5
	cardio.XP = 30
	cardio.TotalXP = 530
	perk, ok := domain.PerkAt(domain.SkillCardio, 5)
	require.True(t, ok)
	cardio.Perks = append(cardio.Perks, perk)
	cardio.Milestones = append(cardio.Milestones,
		domain.Milestone{Level: 2, ReachedAt: fixedNow.Add(-72 * time.Hour)},
		domain.Milestone{Level: 5, ReachedAt: fixedNow},
	)

	p.Stats.Streak = domain.StreakState{
		Current:        6,
		Best:           9,
		Forgiveness:    1,
		LastActiveDate: "2024-03-13",
		RefillWeek:     "2024-03-11",
		History:        []domain.StreakRecord{{Streak: 9, StartDate: "2024-02-01", EndDate: "2024-02-09"}},
	}
	p.Stats.WAHD = domain.WAHDState{
		Current:   2,
		Best:      5,
		Average:   3.5,
		WeekStart: "2024-03-11",
		History: []domain.WAHDEntry{
			{Date: "2024-03-11", Habits: 3, Week: "2024-03-11"},
			{Date: "2024-03-12", Habits: 4, Week: "2024-03-11"},
		},
	}

	raw, err := EncodeSnapshot(p, fixedNow)
	require.NoError(t, err)

	var got domain.Player
	require.NoError(t, DecodeSnapshot(raw, &got))

	assert.Equal(t, p, &got)
	assert.NoError(t, got.Validate(cfg))
}

func TestSnapshot_Corrupt(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "Fail: Not JSON", raw: `{{{`},
		{name: "Fail: Unknown version", raw: `{"version":99,"data":{}}`},
		{name: "Fail: Missing version", raw: `{"data":{}}`},
		{name: "Fail: Null document", raw: `{"version":1,"data":null}`},
		{name: "Fail: Empty document", raw: `{"version":1}`},
		{name: "Fail: Wrong shape", raw: `{"version":1,"data":{"level":"high"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p domain.Player
			err := DecodeSnapshot([]byte(tt.raw), &p)
			assert.ErrorIs(t, err, domain.ErrCorruptSnapshot)
		})
	}
}
