package services

import (
	"math"
	"strings"
	"time"

	"github.com/comitanigiacomo/kanso-quest/internal/core/domain"
)

type HabitService struct {
	progression *ProgressionService
	events      domain.EventSink
}

func NewHabitService(progression *ProgressionService, events domain.EventSink) *HabitService {
	return &HabitService{
		progression: progression,
		events:      events,
	}
}

type LogHabitInput struct {
	Kind     string
	Activity string
	Minutes  int
	Hours    float64
	Weight   float64
	Mood     int
	Notes    string
}

type HabitResult struct {
	Log            domain.HabitLog  `json:"log"`
	Experience     ExperienceResult `json:"experience"`
	CategoryMarked bool             `json:"category_marked"`
}

// Log validates and applies a habit log: counters, experience and today's
// category mark.
func (s *HabitService) Log(p *domain.Player, input LogHabitInput, now time.Time) (*HabitResult, error) {
	kind, err := domain.ParseHabitKind(input.Kind)
	if err != nil {
		return nil, domain.NewValidationError("Unknown habit type", err)
	}

	entry := domain.HabitLog{
		Kind:     kind,
		Minutes:  input.Minutes,
		Hours:    input.Hours,
		Weight:   input.Weight,
		Mood:     input.Mood,
		Notes:    strings.TrimSpace(input.Notes),
		LoggedAt: now,
	}
	if kind == domain.HabitActivity {
		activity, err := domain.ParseActivity(input.Activity)
		if err != nil {
			return nil, domain.NewValidationError("Unknown activity type", err)
		}
		entry.Activity = activity
	}
	if err := entry.Validate(); err != nil {
		return nil, domain.NewValidationError(err.Error(), err)
	}

	applyCounters(p, entry)

	xp := s.progression.GrantExperience(p, kind.XP(), entry.Source())

	res := &HabitResult{Log: entry, Experience: xp}
	if category, ok := kind.Category(); ok {
		res.CategoryMarked = p.Today.Mark(category)
	}
	if entry.IsLate() {
		p.Today.LoggedLate = true
	}

	s.events.Publish(domain.HabitLogged{
		EventBase: domain.EventBase{Player: p.ID},
		Kind:      kind,
		XP:        xp.Granted,
	})
	return res, nil
}

func applyCounters(p *domain.Player, entry domain.HabitLog) {
	st := &p.Stats
	switch entry.Kind {
	case domain.HabitMeal:
		st.MealsLogged++
	case domain.HabitActivity:
		st.ActivitiesLogged++
		st.MinutesActive += entry.Minutes
	case domain.HabitSleep:
		st.SleepLogged++
		total := st.AverageSleepHours*float64(st.SleepLogged-1) + entry.Hours
		st.AverageSleepHours = math.Round(total/float64(st.SleepLogged)*100) / 100
	case domain.HabitMood:
		st.MoodCheckins++
	case domain.HabitMeditation:
		st.MeditationsLogged++
		st.MinutesMeditation += entry.Minutes
	case domain.HabitWeight:
		st.WeighIns++
		w := entry.Weight
		st.Weight = &w
	}
}
