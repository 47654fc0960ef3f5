package services

import (
	"time"

	"github.com/comitanigiacomo/kanso-quest/internal/core/clock"
	"github.com/comitanigiacomo/kanso-quest/internal/core/domain"
)

// StreakOutcome reports which transition fired for the day.
type StreakOutcome struct {
	Changed         bool `json:"changed"`
	Continued       bool `json:"continued"`
	ForgivenessUsed bool `json:"forgiveness_used"`
	Broken          bool `json:"broken"`
	Previous        int  `json:"previous"`
	Refilled        bool `json:"refilled"`
}

type StreakService struct {
	cfg    domain.GameConfig
	events domain.EventSink
}

func NewStreakService(cfg domain.GameConfig, events domain.EventSink) *StreakService {
	return &StreakService{cfg: cfg, events: events}
}

// Update runs the once-per-day streak transition. Calling it again on the
// same calendar day is a no-op.
func (s *StreakService) Update(p *domain.Player, now time.Time) StreakOutcome {
	st := &p.Stats.Streak
	today := clock.Day(now)

	var out StreakOutcome
	if st.LastActiveDate == today {
		return out
	}

	if st.LastActiveDate == "" {
		st.Current = 1
	} else {
		gap, err := clock.DaysBetween(st.LastActiveDate, today)
		switch {
		case err != nil:
			// An unreadable marker restarts the streak.
			s.breakStreak(p, st.LastActiveDate, &out)
		case gap < 0:
			// Clock moved backwards; keep the newer marker.
			return out
		case gap == 1:
			st.Current++
			out.Continued = true
		case st.Forgiveness > 0:
			st.Forgiveness--
			out.ForgivenessUsed = true
			s.events.Publish(domain.StreakForgivenessUsed{
				EventBase: domain.EventBase{Player: p.ID},
				Streak:    st.Current,
				Remaining: st.Forgiveness,
			})
			// One token covers a single missed day only.
			if gap > 2 {
				s.breakStreak(p, st.LastActiveDate, &out)
			}
		default:
			s.breakStreak(p, st.LastActiveDate, &out)
		}
	}

	if st.Current > st.Best {
		st.Best = st.Current
	}
	st.LastActiveDate = today
	out.Changed = true

	out.Refilled = s.refill(st, now)
	return out
}

func (s *StreakService) breakStreak(p *domain.Player, lastActive string, out *StreakOutcome) {
	st := &p.Stats.Streak
	previous := st.Current

	if previous > 0 {
		start, err := clock.AddDays(lastActive, -(previous - 1))
		if err != nil {
			start = lastActive
		}
		st.History = append(st.History, domain.StreakRecord{
			Streak:    previous,
			StartDate: start,
			EndDate:   lastActive,
		})
		s.events.Publish(domain.StreakBroken{
			EventBase: domain.EventBase{Player: p.ID},
			Previous:  previous,
		})
	}

	st.Current = 1
	out.Broken = true
	out.Previous = previous
}

// refill restores the weekly allotment on Sunday, or on the first active day
// after a week whose Sunday was missed.
func (s *StreakService) refill(st *domain.StreakState, now time.Time) bool {
	if clock.IsSunday(now) {
		st.Forgiveness = s.cfg.StreakForgivenessDays
		st.RefillWeek = clock.WeekStart(now)
		return true
	}

	previousWeek := clock.WeekStart(now.AddDate(0, 0, -7))
	if st.RefillWeek < previousWeek {
		st.Forgiveness = s.cfg.StreakForgivenessDays
		st.RefillWeek = previousWeek
		return true
	}
	return false
}
