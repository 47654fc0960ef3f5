package domain

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// HabitKind is a loggable wellness activity outside of daily quests.
type HabitKind string

const (
	HabitMeal       HabitKind = "meal"
	HabitActivity   HabitKind = "activity"
	HabitSleep      HabitKind = "sleep"
	HabitMood       HabitKind = "mood"
	HabitMeditation HabitKind = "meditation"
	HabitWeight     HabitKind = "weight"
)

var HabitKinds = []HabitKind{HabitMeal, HabitActivity, HabitSleep, HabitMood, HabitMeditation, HabitWeight}

const (
	MinActivityMinutes   = 5
	MaxActivityMinutes   = 300
	MinMeditationMinutes = 1
	MaxMeditationMinutes = 120
	MinSleepHours        = 3.0
	MaxSleepHours        = 14.0
	MinWeight            = 50.0
	MaxWeight            = 500.0
	MinMood              = 1
	MaxMood              = 10
	MaxNotesLen          = 500
	LateLogHour          = 22
)

func ParseHabitKind(s string) (HabitKind, error) {
	k := HabitKind(strings.ToLower(strings.TrimSpace(s)))
	switch k {
	case HabitMeal, HabitActivity, HabitSleep, HabitMood, HabitMeditation, HabitWeight:
		return k, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidHabitKind, s)
}

// XP is the fixed reward for one log of this kind.
func (k HabitKind) XP() int {
	switch k {
	case HabitMeal, HabitSleep:
		return 10
	case HabitActivity:
		return 15
	case HabitMood, HabitMeditation:
		return 12
	case HabitWeight:
		return 5
	}
	return 0
}

// Category is the habit category marked done for today. Weight tracking marks none.
func (k HabitKind) Category() (Category, bool) {
	switch k {
	case HabitMeal:
		return CategoryNutrition, true
	case HabitActivity:
		return CategoryMovement, true
	case HabitSleep:
		return CategoryRecovery, true
	case HabitMood, HabitMeditation:
		return CategoryMindfulness, true
	case HabitWeight:
		return "", false
	}
	return "", false
}

// ActivitySources are the activity types accepted for HabitActivity logs.
var ActivitySources = []Source{SourceWalk, SourceRun, SourceBike, SourceSwim, SourceCardio, SourceStrength, SourceWeights, SourceMovement}

func ParseActivity(s string) (Source, error) {
	if strings.TrimSpace(s) == "" {
		return SourceMovement, nil
	}
	src := Source(strings.ToLower(strings.TrimSpace(s)))
	for _, a := range ActivitySources {
		if a == src {
			return src, nil
		}
	}
	return "", fmt.Errorf("%w: unknown activity %q", ErrInvalidHabitLog, s)
}

// HabitLog is a single validated log entry.
type HabitLog struct {
	Kind     HabitKind `json:"kind"`
	Activity Source    `json:"activity,omitempty"`
	Minutes  int       `json:"minutes,omitempty"`
	Hours    float64   `json:"hours,omitempty"`
	Weight   float64   `json:"weight,omitempty"`
	Mood     int       `json:"mood,omitempty"`
	Notes    string    `json:"notes,omitempty"`
	LoggedAt time.Time `json:"logged_at"`
}

// Source is the experience source the log grants under.
func (l HabitLog) Source() Source {
	switch l.Kind {
	case HabitMeal:
		return SourceMeal
	case HabitActivity:
		if l.Activity == "" {
			return SourceMovement
		}
		return l.Activity
	case HabitSleep:
		return SourceSleep
	case HabitMood:
		return SourceMindfulness
	case HabitMeditation:
		return SourceMeditation
	case HabitWeight:
		return SourceTracking
	}
	return ""
}

func (l HabitLog) Validate() error {
	if utf8.RuneCountInString(l.Notes) > MaxNotesLen {
		return fmt.Errorf("%w: notes longer than %d characters", ErrInvalidHabitLog, MaxNotesLen)
	}

	switch l.Kind {
	case HabitMeal:
		return nil
	case HabitActivity:
		if l.Minutes < MinActivityMinutes || l.Minutes > MaxActivityMinutes {
			return fmt.Errorf("%w: activity duration must be %d-%d minutes", ErrInvalidHabitLog, MinActivityMinutes, MaxActivityMinutes)
		}
		if _, err := ParseActivity(string(l.Activity)); err != nil {
			return err
		}
	case HabitMeditation:
		if l.Minutes < MinMeditationMinutes || l.Minutes > MaxMeditationMinutes {
			return fmt.Errorf("%w: meditation duration must be %d-%d minutes", ErrInvalidHabitLog, MinMeditationMinutes, MaxMeditationMinutes)
		}
	case HabitSleep:
		if l.Hours < MinSleepHours || l.Hours > MaxSleepHours {
			return fmt.Errorf("%w: sleep must be %.0f-%.0f hours", ErrInvalidHabitLog, MinSleepHours, MaxSleepHours)
		}
	case HabitMood:
		if l.Mood != 0 && (l.Mood < MinMood || l.Mood > MaxMood) {
			return fmt.Errorf("%w: mood must be %d-%d", ErrInvalidHabitLog, MinMood, MaxMood)
		}
	case HabitWeight:
		if l.Weight < MinWeight || l.Weight > MaxWeight {
			return fmt.Errorf("%w: weight must be %.0f-%.0f", ErrInvalidHabitLog, MinWeight, MaxWeight)
		}
	default:
		return fmt.Errorf("%w: %q", ErrInvalidHabitKind, l.Kind)
	}
	return nil
}

// IsLate reports whether the log counts as a late-night entry.
func (l HabitLog) IsLate() bool {
	return l.LoggedAt.Hour() >= LateLogHour
}
