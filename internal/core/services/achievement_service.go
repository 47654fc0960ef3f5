package services

import (
	"time"

	"github.com/comitanigiacomo/kanso-quest/internal/core/clock"
	"github.com/comitanigiacomo/kanso-quest/internal/core/domain"
)

// AchievementStatus is one catalogue entry joined with the player's progress.
type AchievementStatus struct {
	domain.Achievement
	Unlocked   bool       `json:"unlocked"`
	UnlockedAt *time.Time `json:"unlocked_at,omitempty"`
	Progress   int        `json:"progress"`
}

type AchievementService struct {
	progression *ProgressionService
	events      domain.EventSink
}

func NewAchievementService(progression *ProgressionService, events domain.EventSink) *AchievementService {
	return &AchievementService{
		progression: progression,
		events:      events,
	}
}

// Check scans the catalogue once and unlocks every achievement whose
// condition holds. Unlocked ids are skipped, so repeated calls never re-grant.
func (s *AchievementService) Check(p *domain.Player, ledger *domain.AchievementLedger, now time.Time) []domain.Achievement {
	var unlocked []domain.Achievement

	for _, a := range domain.Achievements() {
		if p.HasAchievement(a.ID) {
			continue
		}
		if !satisfied(a.ID, p, now) {
			continue
		}

		p.AddAchievement(a.ID)
		ledger.Record(a.ID, now)
		s.progression.GrantExperience(p, a.XP, domain.SourceAchievement)

		s.events.Publish(domain.AchievementUnlocked{
			EventBase:   domain.EventBase{Player: p.ID},
			Achievement: a,
		})
		unlocked = append(unlocked, a)
	}

	return unlocked
}

func satisfied(id domain.AchievementID, p *domain.Player, now time.Time) bool {
	switch id {
	case domain.AchFirstQuest:
		return p.Stats.QuestsCompleted >= 1
	case domain.AchFirstLevel:
		return p.Level >= 2
	case domain.AchAllHabits:
		return p.Today.CategoryCount() >= len(domain.Categories)
	case domain.AchStreak3:
		return p.Stats.Streak.Current >= 3
	case domain.AchStreak7:
		return p.Stats.Streak.Current >= 7
	case domain.AchStreak30:
		return p.Stats.Streak.Current >= 30
	case domain.AchQuests10:
		return p.Stats.QuestsCompleted >= 10
	case domain.AchQuests50:
		return p.Stats.QuestsCompleted >= 50
	case domain.AchQuests100:
		return p.Stats.QuestsCompleted >= 100
	case domain.AchSkill5:
		return highestSkill(p) >= 5
	case domain.AchSkill10:
		return highestSkill(p) >= 10
	case domain.AchAllSkills5:
		return lowestSkill(p) >= 5
	case domain.AchWAHDPerfect:
		return p.Stats.WAHD.Current >= domain.MaxWAHD
	case domain.AchWAHDMonth:
		return p.Stats.WAHD.Average >= 5
	case domain.AchEarlyBird:
		return p.Today.QuestBeforeNoon
	case domain.AchNightOwl:
		return p.Today.LoggedLate
	case domain.AchWeekendWarrior:
		return p.Today.AllQuestsDone && clock.IsWeekend(now)
	}
	return false
}

// progressValue is the counter an incremental achievement is measured by.
func progressValue(id domain.AchievementID, p *domain.Player) int {
	switch id {
	case domain.AchFirstQuest, domain.AchQuests10, domain.AchQuests50, domain.AchQuests100:
		return p.Stats.QuestsCompleted
	case domain.AchFirstLevel:
		return p.Level
	case domain.AchAllHabits:
		return p.Today.CategoryCount()
	case domain.AchStreak3, domain.AchStreak7, domain.AchStreak30:
		return p.Stats.Streak.Current
	case domain.AchSkill5, domain.AchSkill10:
		return highestSkill(p)
	case domain.AchAllSkills5:
		return lowestSkill(p)
	case domain.AchWAHDPerfect:
		return p.Stats.WAHD.Current
	case domain.AchWAHDMonth:
		return int(p.Stats.WAHD.Average)
	case domain.AchEarlyBird, domain.AchNightOwl, domain.AchWeekendWarrior:
		return 0
	}
	return 0
}

// Statuses lists the whole catalogue in order with unlock state and progress.
func (s *AchievementService) Statuses(p *domain.Player, ledger *domain.AchievementLedger) []AchievementStatus {
	unlockedAt := make(map[domain.AchievementID]time.Time, len(ledger.Unlocked))
	for _, r := range ledger.Unlocked {
		unlockedAt[r.ID] = r.UnlockedAt
	}

	catalog := domain.Achievements()
	out := make([]AchievementStatus, 0, len(catalog))
	for _, a := range catalog {
		st := AchievementStatus{Achievement: a, Unlocked: p.HasAchievement(a.ID)}
		if at, ok := unlockedAt[a.ID]; ok {
			t := at
			st.UnlockedAt = &t
		}
		if a.Target > 0 {
			st.Progress = progressValue(a.ID, p)
			if st.Unlocked || st.Progress > a.Target {
				st.Progress = a.Target
			}
		}
		out = append(out, st)
	}
	return out
}

func (s *AchievementService) Progress(p *domain.Player) domain.AchievementProgress {
	total := len(domain.Achievements())
	unlocked := len(p.Achievements)
	pct := 0
	if total > 0 {
		pct = (unlocked*100 + total/2) / total
	}
	return domain.AchievementProgress{Unlocked: unlocked, Total: total, Percentage: pct}
}

func highestSkill(p *domain.Player) int {
	best := 0
	for _, sk := range domain.Skills {
		if lvl := p.Skill(sk).Level; lvl > best {
			best = lvl
		}
	}
	return best
}

func lowestSkill(p *domain.Player) int {
	lowest := 0
	for i, sk := range domain.Skills {
		if lvl := p.Skill(sk).Level; i == 0 || lvl < lowest {
			lowest = lvl
		}
	}
	return lowest
}
