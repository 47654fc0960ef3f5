package services

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/kanso-quest/internal/core/clock"
	"github.com/comitanigiacomo/kanso-quest/internal/core/domain"
	"github.com/comitanigiacomo/kanso-quest/internal/core/events"
)

// Wednesday morning.
var fixedNow = time.Date(2024, 3, 13, 9, 0, 0, 0, time.UTC)

func newTestPlayer(t *testing.T, cfg domain.GameConfig) *domain.Player {
	t.Helper()
	p, err := domain.NewPlayer("player-1", "Tester", cfg, fixedNow)
	require.NoError(t, err)
	return p
}

func newTestProgression(cfg domain.GameConfig) (*ProgressionService, *events.Recorder) {
	rec := &events.Recorder{}
	return NewProgressionService(cfg, clock.NewFake(fixedNow), rec), rec
}

// uncappedConfig lifts the daily cap so level arithmetic can be tested in isolation.
func uncappedConfig() domain.GameConfig {
	cfg := domain.DefaultGameConfig()
	cfg.MaxDailyXP = 1_000_000
	return cfg
}

type stubCatalog struct {
	templates  map[domain.Category][]domain.QuestTemplate
	challenges []domain.ChallengeTemplate
}

func (c *stubCatalog) Templates(category domain.Category) []domain.QuestTemplate {
	return append([]domain.QuestTemplate(nil), c.templates[category]...)
}

func (c *stubCatalog) Challenges() []domain.ChallengeTemplate {
	return append([]domain.ChallengeTemplate(nil), c.challenges...)
}

// newStubCatalog builds n easy level-1 templates per category.
func newStubCatalog(n int) *stubCatalog {
	c := &stubCatalog{templates: make(map[domain.Category][]domain.QuestTemplate)}
	for _, cat := range domain.Categories {
		for i := 0; i < n; i++ {
			c.templates[cat] = append(c.templates[cat], domain.QuestTemplate{
				ID:         string(cat) + "_" + string(rune('a'+i)),
				Title:      "Quest " + string(rune('A'+i)),
				Category:   cat,
				Difficulty: domain.DifficultyEasy,
				XP:         10,
				MinLevel:   1,
			})
		}
	}
	c.challenges = []domain.ChallengeTemplate{
		{ID: "wc_balanced", Title: "Balanced", XP: 200, Target: 5, Objective: domain.ObjectiveBalanced, MinLevel: 1},
	}
	return c
}

func seededRand() *rand.Rand {
	return rand.New(rand.NewSource(42))
}

