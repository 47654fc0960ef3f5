package services

import (
	"math"
	"time"

	"github.com/comitanigiacomo/kanso-quest/internal/core/clock"
	"github.com/comitanigiacomo/kanso-quest/internal/core/domain"
)

const wahdRetentionDays = 30

type WAHDService struct {
	cfg    domain.GameConfig
	events domain.EventSink
}

func NewWAHDService(cfg domain.GameConfig, events domain.EventSink) *WAHDService {
	return &WAHDService{cfg: cfg, events: events}
}

// Update counts today as an active healthy day when enough distinct
// categories are done. It reports whether today was newly counted.
func (s *WAHDService) Update(p *domain.Player, completedCategories int, now time.Time) bool {
	w := &p.Stats.WAHD

	if week := clock.WeekStart(now); w.WeekStart != week {
		w.Current = 0
		w.WeekStart = week
	}

	today := clock.Day(now)
	if completedCategories < s.cfg.MinHabitsForWAHD || w.HasEntry(today) {
		return false
	}

	if w.Current < domain.MaxWAHD {
		w.Current++
	}
	if w.Current > w.Best {
		w.Best = w.Current
	}

	w.History = append(w.History, domain.WAHDEntry{
		Date:   today,
		Habits: completedCategories,
		Week:   w.WeekStart,
	})
	s.prune(w, today)

	s.events.Publish(domain.WAHDAchieved{
		EventBase: domain.EventBase{Player: p.ID},
		Date:      today,
		Current:   w.Current,
	})
	return true
}

// ResetWeek zeroes the weekly counter at the week boundary.
func (s *WAHDService) ResetWeek(p *domain.Player, now time.Time) {
	p.Stats.WAHD.Current = 0
	p.Stats.WAHD.WeekStart = clock.WeekStart(now)
	s.prune(&p.Stats.WAHD, clock.Day(now))
}

// prune keeps the last 30 days and recomputes the weekly average over them.
func (s *WAHDService) prune(w *domain.WAHDState, today string) {
	cutoff, err := clock.AddDays(today, -(wahdRetentionDays - 1))
	if err == nil {
		kept := w.History[:0]
		for _, e := range w.History {
			if e.Date >= cutoff {
				kept = append(kept, e)
			}
		}
		w.History = kept
	}

	perWeek := float64(len(w.History)) * 7 / wahdRetentionDays
	w.Average = math.Round(perWeek*10) / 10
}
