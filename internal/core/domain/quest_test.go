package domain_test

import (
	"testing"
	"time"

	"github.com/comitanigiacomo/kanso-quest/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func newLog() *domain.QuestLog {
	l := domain.NewQuestLog()
	l.Date = "2024-03-13"
	for i, c := range domain.Categories {
		tpl := domain.QuestTemplate{ID: string(c) + "_tpl", Title: "T", XP: 10 + i, Difficulty: domain.DifficultyEasy, Category: c}
		q := domain.NewQuest(tpl, tpl.ID+"_id", l.Date)
		l.Daily = append(l.Daily, q)
		l.History = append(l.History, domain.QuestHistoryEntry{QuestID: q.ID, TemplateID: tpl.ID, Category: c, Date: l.Date, XP: q.XP})
	}
	return l
}

func TestQuestLog_Completion(t *testing.T) {
	l := newLog()
	at := time.Date(2024, 3, 13, 10, 0, 0, 0, time.UTC)

	assert.False(t, l.AllCompleted())

	q, ok := l.Find("movement_tpl_id")
	assert.True(t, ok)
	q.Complete(at)
	l.MarkHistoryCompleted(q.ID)

	assert.Equal(t, []domain.Category{domain.CategoryMovement}, l.CompletedCategories())
	assert.Equal(t, 1, q.Progress)
	assert.Equal(t, 1, l.CompletedTemplatesSince("2024-03-07"))

	for _, q := range l.Daily {
		q.Complete(at)
	}
	assert.True(t, l.AllCompleted())

	_, ok = l.Find("missing")
	assert.False(t, ok)
}

func TestQuestLog_PruneAndUsage(t *testing.T) {
	l := domain.NewQuestLog()
	l.History = []domain.QuestHistoryEntry{
		{TemplateID: "old", Date: "2024-02-01"},
		{TemplateID: "a", Date: "2024-03-10"},
		{TemplateID: "b", Date: "2024-03-12"},
	}

	used := l.UsedSince("2024-03-11")
	assert.Equal(t, map[string]bool{"b": true}, used)

	l.Prune("2024-02-12")
	assert.Len(t, l.History, 2)
	assert.Equal(t, "a", l.History[0].TemplateID)
}

func TestQuestLog_CloneIsDeep(t *testing.T) {
	l := newLog()
	l.Challenge = domain.NewWeeklyChallenge(domain.ChallengeTemplate{ID: "wc", Target: 3}, "wc_1", time.Now())

	c := l.Clone()
	c.Daily[0].Completed = true
	c.Challenge.Progress = 2
	c.History[0].Completed = true

	assert.False(t, l.Daily[0].Completed)
	assert.Equal(t, 0, l.Challenge.Progress)
	assert.False(t, l.History[0].Completed)
}

func TestWeeklyChallenge(t *testing.T) {
	start := time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC)
	c := domain.NewWeeklyChallenge(domain.ChallengeTemplate{ID: "wc", Target: 4, XP: 200}, "wc_1", start)

	assert.Equal(t, start.Add(7*24*time.Hour), c.EndAt)
	assert.True(t, c.Active(start.Add(time.Hour)))
	assert.False(t, c.Active(c.EndAt))

	c.Progress = 3
	assert.Equal(t, 75, c.PercentComplete())
	assert.False(t, c.Reached())
	c.Progress = 6
	assert.Equal(t, 100, c.PercentComplete())
	assert.True(t, c.Reached())
}
