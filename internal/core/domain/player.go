package domain

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/comitanigiacomo/kanso-quest/internal/core/clock"
)

const (
	DefaultPlayerName = "Health Seeker"
	MaxPlayerNameLen  = 50
)

// DayActivity tracks what happened on the current calendar day.
// It is cleared by the daily reset.
type DayActivity struct {
	Date            string     `json:"date"`
	Categories      []Category `json:"categories"`
	QuestBeforeNoon bool       `json:"quest_before_noon"`
	LoggedLate      bool       `json:"logged_late"`
	AllQuestsDone   bool       `json:"all_quests_done"`
}

func NewDayActivity(day string) DayActivity {
	return DayActivity{Date: day, Categories: []Category{}}
}

// Mark records c as done today and reports whether it was new.
func (d *DayActivity) Mark(c Category) bool {
	if d.Has(c) {
		return false
	}
	d.Categories = append(d.Categories, c)
	return true
}

func (d *DayActivity) Has(c Category) bool {
	for _, done := range d.Categories {
		if done == c {
			return true
		}
	}
	return false
}

func (d *DayActivity) CategoryCount() int {
	return len(d.Categories)
}

type Stats struct {
	Streak              StreakState `json:"streak"`
	WAHD                WAHDState   `json:"wahd"`
	QuestsCompleted     int         `json:"quests_completed"`
	ChallengesCompleted int         `json:"challenges_completed"`
	PerfectDays         int         `json:"perfect_days"`
	MealsLogged         int         `json:"meals_logged"`
	ActivitiesLogged    int         `json:"activities_logged"`
	SleepLogged         int         `json:"sleep_logged"`
	MoodCheckins        int         `json:"mood_checkins"`
	MeditationsLogged   int         `json:"meditations_logged"`
	WeighIns            int         `json:"weigh_ins"`
	MinutesActive       int         `json:"minutes_active"`
	MinutesMeditation   int         `json:"minutes_meditation"`
	AverageSleepHours   float64     `json:"average_sleep_hours"`
	Weight              *float64    `json:"weight,omitempty"`
}

// Player is the root aggregate of the progression engine.
type Player struct {
	ID             string                   `json:"id"`
	Name           string                   `json:"name"`
	CreatedAt      time.Time                `json:"created_at"`
	LastActiveDate string                   `json:"last_active_date,omitempty"`
	WeekStart      string                   `json:"week_start,omitempty"`
	Level          int                      `json:"level"`
	TotalXP        int                      `json:"total_xp"`
	CurrentXP      int                      `json:"current_xp"`
	DailyXP        int                      `json:"daily_xp"`
	Avatar         Avatar                   `json:"avatar"`
	Skills         map[Skill]*SkillProgress `json:"skills"`
	Stats          Stats                    `json:"stats"`
	Achievements   []AchievementID          `json:"achievements"`
	Settings       Settings                 `json:"settings"`
	Inventory      Inventory                `json:"inventory"`
	Today          DayActivity              `json:"today"`
}

func normalizeName(name string) (string, error) {
	trimmed := strings.TrimSpace(name)
	n := utf8.RuneCountInString(trimmed)
	if n == 0 || n > MaxPlayerNameLen {
		return "", ErrInvalidPlayerName
	}
	return trimmed, nil
}

// NewPlayer creates a fresh level 1 profile. An empty name falls back to DefaultPlayerName.
func NewPlayer(id, name string, cfg GameConfig, now time.Time) (*Player, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("%w: empty id", ErrInvalidPlayerState)
	}
	if strings.TrimSpace(name) == "" {
		name = DefaultPlayerName
	}
	cleanName, err := normalizeName(name)
	if err != nil {
		return nil, err
	}

	p := &Player{
		ID:           id,
		Name:         cleanName,
		CreatedAt:    now.UTC(),
		Level:        1,
		Avatar:       AvatarForLevel(1),
		Skills:       make(map[Skill]*SkillProgress, len(Skills)),
		Achievements: []AchievementID{},
		Settings:     DefaultSettings(),
		Inventory:    NewInventory(),
	}
	for _, s := range Skills {
		p.Skills[s] = NewSkillProgress()
	}
	p.Stats.Streak.Forgiveness = cfg.StreakForgivenessDays
	p.Stats.Streak.RefillWeek = clock.WeekStart(now.AddDate(0, 0, -7))
	p.Stats.Streak.History = []StreakRecord{}
	p.Stats.WAHD.History = []WAHDEntry{}
	p.Today = NewDayActivity("")

	return p, nil
}

func (p *Player) Rename(name string) error {
	cleanName, err := normalizeName(name)
	if err != nil {
		return err
	}
	p.Name = cleanName
	return nil
}

// Skill returns the progress of s, creating it if a snapshot predates the skill.
func (p *Player) Skill(s Skill) *SkillProgress {
	if p.Skills == nil {
		p.Skills = make(map[Skill]*SkillProgress, len(Skills))
	}
	sp, ok := p.Skills[s]
	if !ok || sp == nil {
		sp = NewSkillProgress()
		p.Skills[s] = sp
	}
	return sp
}

// NextLevelXP is the experience needed within the current level to level up.
func (p *Player) NextLevelXP(cfg GameConfig) int {
	return p.Level * cfg.XPPerLevel
}

func (p *Player) HasAchievement(id AchievementID) bool {
	for _, a := range p.Achievements {
		if a == id {
			return true
		}
	}
	return false
}

// AddAchievement appends id keeping set semantics. It reports whether id was new.
func (p *Player) AddAchievement(id AchievementID) bool {
	if p.HasAchievement(id) {
		return false
	}
	p.Achievements = append(p.Achievements, id)
	return true
}

// IsNew reports whether the player has not made any progress yet.
func (p *Player) IsNew() bool {
	return p.Level == 1 && p.TotalXP == 0 && p.Stats.QuestsCompleted == 0
}

// Normalize fills collections that may be missing from older snapshots.
func (p *Player) Normalize(cfg GameConfig) {
	for _, s := range Skills {
		sp := p.Skill(s)
		if sp.Perks == nil {
			sp.Perks = []Perk{}
		}
		if sp.Milestones == nil {
			sp.Milestones = []Milestone{}
		}
	}
	if p.Achievements == nil {
		p.Achievements = []AchievementID{}
	}
	if p.Stats.Streak.History == nil {
		p.Stats.Streak.History = []StreakRecord{}
	}
	if p.Stats.WAHD.History == nil {
		p.Stats.WAHD.History = []WAHDEntry{}
	}
	if p.Today.Categories == nil {
		p.Today.Categories = []Category{}
	}
	if p.Inventory.Titles == nil && p.Inventory.Themes == nil && p.Inventory.Badges == nil && p.Inventory.Powerups == nil {
		p.Inventory = NewInventory()
	}
	if p.Settings.Gameplay.Difficulty == "" {
		p.Settings.Gameplay.Difficulty = "normal"
	}
	if p.Settings.Display.Theme == "" {
		p.Settings.Display.Theme = "dark"
	}
	if p.Stats.Streak.Forgiveness > cfg.StreakForgivenessDays {
		p.Stats.Streak.Forgiveness = cfg.StreakForgivenessDays
	}
	p.Avatar = AvatarForLevel(p.Level)
}

// Validate checks the invariants a hydrated snapshot must satisfy.
func (p *Player) Validate(cfg GameConfig) error {
	var problems []string

	if strings.TrimSpace(p.ID) == "" {
		problems = append(problems, "missing id")
	}
	if _, err := normalizeName(p.Name); err != nil {
		problems = append(problems, "invalid name")
	}
	if p.Level < 1 || p.Level > cfg.MaxPlayerLevel {
		problems = append(problems, fmt.Sprintf("level %d out of range", p.Level))
	}
	if p.TotalXP < 0 || p.CurrentXP < 0 || p.DailyXP < 0 {
		problems = append(problems, "negative experience")
	}
	if p.DailyXP > cfg.MaxDailyXP {
		problems = append(problems, fmt.Sprintf("daily xp %d exceeds cap %d", p.DailyXP, cfg.MaxDailyXP))
	}
	for s, sp := range p.Skills {
		if sp == nil {
			continue
		}
		if sp.Level < 1 || sp.Level > cfg.MaxSkillLevel {
			problems = append(problems, fmt.Sprintf("skill %s level %d out of range", s, sp.Level))
		}
		if sp.XP < 0 || sp.TotalXP < 0 {
			problems = append(problems, fmt.Sprintf("skill %s has negative experience", s))
		}
	}
	if p.Stats.WAHD.Current < 0 || p.Stats.WAHD.Current > MaxWAHD {
		problems = append(problems, "wahd out of range")
	}
	if p.Stats.Streak.Forgiveness < 0 {
		problems = append(problems, "negative forgiveness")
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidPlayerState, strings.Join(problems, "; "))
	}
	return nil
}

// Clone returns a deep copy safe to hand out while the original keeps mutating.
func (p *Player) Clone() *Player {
	c := *p

	c.Skills = make(map[Skill]*SkillProgress, len(p.Skills))
	for s, sp := range p.Skills {
		if sp == nil {
			continue
		}
		cp := *sp
		cp.Perks = append(make([]Perk, 0, len(sp.Perks)), sp.Perks...)
		cp.Milestones = append(make([]Milestone, 0, len(sp.Milestones)), sp.Milestones...)
		c.Skills[s] = &cp
	}

	c.Achievements = append(make([]AchievementID, 0, len(p.Achievements)), p.Achievements...)
	c.Stats.Streak.History = append(make([]StreakRecord, 0, len(p.Stats.Streak.History)), p.Stats.Streak.History...)
	c.Stats.WAHD.History = append(make([]WAHDEntry, 0, len(p.Stats.WAHD.History)), p.Stats.WAHD.History...)
	c.Today.Categories = append(make([]Category, 0, len(p.Today.Categories)), p.Today.Categories...)
	c.Inventory = Inventory{
		Badges:   append(make([]string, 0, len(p.Inventory.Badges)), p.Inventory.Badges...),
		Titles:   append(make([]string, 0, len(p.Inventory.Titles)), p.Inventory.Titles...),
		Themes:   append(make([]string, 0, len(p.Inventory.Themes)), p.Inventory.Themes...),
		Powerups: append(make([]string, 0, len(p.Inventory.Powerups)), p.Inventory.Powerups...),
	}
	if p.Stats.Weight != nil {
		w := *p.Stats.Weight
		c.Stats.Weight = &w
	}
	return &c
}
