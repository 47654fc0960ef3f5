package domain

import "time"

// Objective selects how a weekly challenge counts progress.
type Objective string

const (
	ObjectiveBalanced     Objective = "balanced"
	ObjectiveStreak       Objective = "streak"
	ObjectiveSkill        Objective = "skill"
	ObjectiveVariety      Objective = "variety"
	ObjectiveAchievements Objective = "achievements"
	ObjectiveWAHD         Objective = "wahd"
)

func (o Objective) Valid() bool {
	switch o {
	case ObjectiveBalanced, ObjectiveStreak, ObjectiveSkill, ObjectiveVariety, ObjectiveAchievements, ObjectiveWAHD:
		return true
	}
	return false
}

const ChallengeDuration = 7 * 24 * time.Hour

type ChallengeTemplate struct {
	ID          string    `yaml:"id" json:"id"`
	Title       string    `yaml:"title" json:"title"`
	Description string    `yaml:"description" json:"description"`
	XP          int       `yaml:"xp" json:"xp"`
	Target      int       `yaml:"target" json:"target"`
	Objective   Objective `yaml:"objective" json:"objective"`
	MinLevel    int       `yaml:"min_level" json:"min_level"`
}

// WeeklyChallenge is the single active longer-horizon objective.
// Once Completed it is frozen until replaced by the next weekly reset.
type WeeklyChallenge struct {
	ID               string     `json:"id"`
	TemplateID       string     `json:"template_id"`
	Title            string     `json:"title"`
	Description      string     `json:"description"`
	Objective        Objective  `json:"objective"`
	Progress         int        `json:"progress"`
	Target           int        `json:"target"`
	XP               int        `json:"xp"`
	StartAt          time.Time  `json:"start_at"`
	EndAt            time.Time  `json:"end_at"`
	Completed        bool       `json:"completed"`
	CompletedAt      *time.Time `json:"completed_at,omitempty"`
	LastProgressDate string     `json:"last_progress_date,omitempty"`
}

func NewWeeklyChallenge(tpl ChallengeTemplate, id string, start time.Time) *WeeklyChallenge {
	target := tpl.Target
	if target < 1 {
		target = 1
	}
	return &WeeklyChallenge{
		ID:          id,
		TemplateID:  tpl.ID,
		Title:       tpl.Title,
		Description: tpl.Description,
		Objective:   tpl.Objective,
		Target:      target,
		XP:          tpl.XP,
		StartAt:     start.UTC(),
		EndAt:       start.UTC().Add(ChallengeDuration),
	}
}

// Active reports whether the challenge still accepts progress at t.
func (c *WeeklyChallenge) Active(t time.Time) bool {
	return !c.Completed && t.Before(c.EndAt)
}

func (c *WeeklyChallenge) Reached() bool {
	return c.Progress >= c.Target
}

// PercentComplete is capped at 100.
func (c *WeeklyChallenge) PercentComplete() int {
	if c.Target <= 0 {
		return 0
	}
	pct := c.Progress * 100 / c.Target
	if pct > 100 {
		pct = 100
	}
	return pct
}
