package services

import (
	"math"

	"github.com/comitanigiacomo/kanso-quest/internal/core/domain"
)

type StatsService struct{}

func NewStatsService() *StatsService {
	return &StatsService{}
}

// QuestStats aggregates the retained quest history.
func (s *StatsService) QuestStats(log *domain.QuestLog) domain.QuestStats {
	stats := domain.QuestStats{
		ByCategory: make(map[domain.Category]domain.CategoryStats, len(domain.Categories)),
	}
	for _, c := range domain.Categories {
		stats.ByCategory[c] = domain.CategoryStats{}
	}

	for _, h := range log.History {
		stats.Total++
		cs := stats.ByCategory[h.Category]
		cs.Total++
		if h.Completed {
			stats.Completed++
			stats.XPEarned += h.XP
			cs.Completed++
		}
		stats.ByCategory[h.Category] = cs
	}

	if stats.Total > 0 {
		rate := float64(stats.Completed) / float64(stats.Total) * 100
		stats.CompletionRate = math.Round(rate*10) / 10
	}
	return stats
}
