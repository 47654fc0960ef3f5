package services

import (
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/comitanigiacomo/kanso-quest/internal/core/clock"
	"github.com/comitanigiacomo/kanso-quest/internal/core/domain"
)

// DifficultyWeights is the selection weight of each difficulty. The three
// weights of a band sum to 1.
type DifficultyWeights map[domain.Difficulty]float64

const fallbackWeight = 0.33

// WeightsForLevel shifts selection toward harder quests as the level grows.
func WeightsForLevel(level int) DifficultyWeights {
	switch {
	case level < 5:
		return DifficultyWeights{domain.DifficultyEasy: 0.7, domain.DifficultyMedium: 0.25, domain.DifficultyHard: 0.05}
	case level < 10:
		return DifficultyWeights{domain.DifficultyEasy: 0.4, domain.DifficultyMedium: 0.45, domain.DifficultyHard: 0.15}
	case level < 20:
		return DifficultyWeights{domain.DifficultyEasy: 0.2, domain.DifficultyMedium: 0.5, domain.DifficultyHard: 0.3}
	default:
		return DifficultyWeights{domain.DifficultyEasy: 0.1, domain.DifficultyMedium: 0.4, domain.DifficultyHard: 0.5}
	}
}

type QuestGenerator struct {
	catalog domain.QuestCatalog
	cfg     domain.GameConfig
	events  domain.EventSink

	mu  sync.Mutex
	rng *rand.Rand
}

// NewQuestGenerator uses rng for every draw. A nil rng is seeded from the wall clock.
func NewQuestGenerator(catalog domain.QuestCatalog, cfg domain.GameConfig, rng *rand.Rand, events domain.EventSink) *QuestGenerator {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &QuestGenerator{
		catalog: catalog,
		cfg:     cfg,
		events:  events,
		rng:     rng,
	}
}

// GenerateDaily fills log with one quest per category for the day of now.
// A log already generated for that day is returned unchanged.
func (g *QuestGenerator) GenerateDaily(p *domain.Player, log *domain.QuestLog, now time.Time) []*domain.Quest {
	today := clock.Day(now)
	if log.Date == today && len(log.Daily) > 0 {
		return log.Daily
	}

	recentFrom, err := clock.AddDays(today, -g.cfg.RecentQuestDays)
	if err != nil {
		recentFrom = today
	}
	used := log.UsedSince(recentFrom)

	quests := make([]*domain.Quest, 0, len(domain.Categories))
	for _, category := range domain.Categories {
		tpl, ok := g.selectTemplate(category, p.Level, used)
		if !ok {
			continue
		}
		q := domain.NewQuest(tpl, tpl.ID+"_"+uuid.NewString(), today)
		quests = append(quests, q)
		log.History = append(log.History, domain.QuestHistoryEntry{
			QuestID:    q.ID,
			TemplateID: tpl.ID,
			Category:   category,
			Date:       today,
			XP:         q.XP,
		})
	}

	log.Date = today
	log.Daily = quests
	if cutoff, err := clock.AddDays(today, -g.cfg.QuestHistoryDays); err == nil {
		log.Prune(cutoff)
	}
	return quests
}

func (g *QuestGenerator) selectTemplate(category domain.Category, level int, used map[string]bool) (domain.QuestTemplate, bool) {
	var eligible, fresh []domain.QuestTemplate
	for _, tpl := range g.catalog.Templates(category) {
		if tpl.MinLevel > level {
			continue
		}
		eligible = append(eligible, tpl)
		if !used[tpl.ID] {
			fresh = append(fresh, tpl)
		}
	}
	if len(eligible) == 0 {
		return domain.QuestTemplate{}, false
	}
	// Every eligible template was used recently: allow repeats rather than skip the category.
	if len(fresh) == 0 {
		fresh = eligible
	}
	return g.weightedSelect(fresh, WeightsForLevel(level)), true
}

func (g *QuestGenerator) weightedSelect(candidates []domain.QuestTemplate, weights DifficultyWeights) domain.QuestTemplate {
	total := 0.0
	for _, tpl := range candidates {
		total += weightOf(tpl, weights)
	}

	g.mu.Lock()
	r := g.rng.Float64() * total
	g.mu.Unlock()

	cumulative := 0.0
	for _, tpl := range candidates {
		cumulative += weightOf(tpl, weights)
		if r <= cumulative {
			return tpl
		}
	}
	return candidates[len(candidates)-1]
}

func weightOf(tpl domain.QuestTemplate, weights DifficultyWeights) float64 {
	if w, ok := weights[tpl.Difficulty]; ok && w > 0 {
		return w
	}
	return fallbackWeight
}

// GenerateChallenge replaces the weekly challenge with a uniformly chosen,
// level-gated template spanning seven days from now.
func (g *QuestGenerator) GenerateChallenge(p *domain.Player, log *domain.QuestLog, now time.Time) *domain.WeeklyChallenge {
	var eligible []domain.ChallengeTemplate
	for _, tpl := range g.catalog.Challenges() {
		if tpl.MinLevel <= p.Level {
			eligible = append(eligible, tpl)
		}
	}
	if len(eligible) == 0 {
		log.Challenge = nil
		return nil
	}

	g.mu.Lock()
	tpl := eligible[g.rng.Intn(len(eligible))]
	g.mu.Unlock()

	ch := domain.NewWeeklyChallenge(tpl, tpl.ID+"_"+uuid.NewString(), now)
	log.Challenge = ch

	g.events.Publish(domain.ChallengeGenerated{
		EventBase:   domain.EventBase{Player: p.ID},
		ChallengeID: ch.ID,
		Objective:   ch.Objective,
	})
	return ch
}
