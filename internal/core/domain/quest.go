package domain

import (
	"time"
)

// QuestTemplate is a catalogue entry that daily quests are stamped from.
type QuestTemplate struct {
	ID          string     `yaml:"id" json:"id"`
	Title       string     `yaml:"title" json:"title"`
	Description string     `yaml:"description" json:"description"`
	XP          int        `yaml:"xp" json:"xp"`
	Difficulty  Difficulty `yaml:"difficulty" json:"difficulty"`
	MinLevel    int        `yaml:"min_level" json:"min_level"`
	Focus       string     `yaml:"focus" json:"focus,omitempty"`
	Category    Category   `yaml:"-" json:"category"`
}

// QuestCatalog supplies the template pools used by the generators.
type QuestCatalog interface {
	Templates(category Category) []QuestTemplate
	Challenges() []ChallengeTemplate
}

type Quest struct {
	ID          string     `json:"id"`
	TemplateID  string     `json:"template_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Category    Category   `json:"category"`
	Difficulty  Difficulty `json:"difficulty"`
	Focus       string     `json:"focus,omitempty"`
	XP          int        `json:"xp"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	Progress    int        `json:"progress"`
	Target      int        `json:"target"`
	Date        string     `json:"date"`
}

func NewQuest(tpl QuestTemplate, id, day string) *Quest {
	return &Quest{
		ID:          id,
		TemplateID:  tpl.ID,
		Title:       tpl.Title,
		Description: tpl.Description,
		Category:    tpl.Category,
		Difficulty:  tpl.Difficulty,
		Focus:       tpl.Focus,
		XP:          tpl.XP,
		Target:      1,
		Date:        day,
	}
}

func (q *Quest) Complete(at time.Time) {
	t := at.UTC()
	q.Completed = true
	q.CompletedAt = &t
	q.Progress = q.Target
}

// QuestHistoryEntry is one generated quest as remembered for anti-repetition and stats.
type QuestHistoryEntry struct {
	QuestID    string   `json:"quest_id"`
	TemplateID string   `json:"template_id"`
	Category   Category `json:"category"`
	Date       string   `json:"date"`
	Completed  bool     `json:"completed"`
	XP         int      `json:"xp"`
}

// QuestLog is the persisted quest state of one player.
type QuestLog struct {
	Date      string              `json:"date"`
	Daily     []*Quest            `json:"daily"`
	Challenge *WeeklyChallenge    `json:"challenge,omitempty"`
	History   []QuestHistoryEntry `json:"history"`
}

func NewQuestLog() *QuestLog {
	return &QuestLog{
		Daily:   []*Quest{},
		History: []QuestHistoryEntry{},
	}
}

func (l *QuestLog) Find(id string) (*Quest, bool) {
	for _, q := range l.Daily {
		if q.ID == id {
			return q, true
		}
	}
	return nil, false
}

func (l *QuestLog) AllCompleted() bool {
	if len(l.Daily) == 0 {
		return false
	}
	for _, q := range l.Daily {
		if !q.Completed {
			return false
		}
	}
	return true
}

// CompletedCategories returns the distinct categories of today's completed quests.
func (l *QuestLog) CompletedCategories() []Category {
	var out []Category
	seen := make(map[Category]bool, len(Categories))
	for _, q := range l.Daily {
		if q.Completed && !seen[q.Category] {
			seen[q.Category] = true
			out = append(out, q.Category)
		}
	}
	return out
}

func (l *QuestLog) MarkHistoryCompleted(questID string) {
	for i := range l.History {
		if l.History[i].QuestID == questID {
			l.History[i].Completed = true
			return
		}
	}
}

// UsedSince reports the template ids generated on or after the given day key.
func (l *QuestLog) UsedSince(day string) map[string]bool {
	used := make(map[string]bool)
	for _, h := range l.History {
		if h.Date >= day {
			used[h.TemplateID] = true
		}
	}
	return used
}

// CompletedTemplatesSince counts distinct template ids completed on or after day.
func (l *QuestLog) CompletedTemplatesSince(day string) int {
	seen := make(map[string]bool)
	for _, h := range l.History {
		if h.Completed && h.Date >= day {
			seen[h.TemplateID] = true
		}
	}
	return len(seen)
}

// Prune drops history entries dated before cutoff.
func (l *QuestLog) Prune(cutoff string) {
	kept := l.History[:0]
	for _, h := range l.History {
		if h.Date >= cutoff {
			kept = append(kept, h)
		}
	}
	l.History = kept
}

func (l *QuestLog) Normalize() {
	if l.Daily == nil {
		l.Daily = []*Quest{}
	}
	if l.History == nil {
		l.History = []QuestHistoryEntry{}
	}
}

func (l *QuestLog) Clone() *QuestLog {
	c := &QuestLog{
		Date:    l.Date,
		Daily:   make([]*Quest, 0, len(l.Daily)),
		History: append([]QuestHistoryEntry(nil), l.History...),
	}
	for _, q := range l.Daily {
		cp := *q
		if q.CompletedAt != nil {
			t := *q.CompletedAt
			cp.CompletedAt = &t
		}
		c.Daily = append(c.Daily, &cp)
	}
	if l.Challenge != nil {
		ch := *l.Challenge
		if l.Challenge.CompletedAt != nil {
			t := *l.Challenge.CompletedAt
			ch.CompletedAt = &t
		}
		c.Challenge = &ch
	}
	return c
}
