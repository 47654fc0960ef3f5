package services

import (
	"time"

	"github.com/comitanigiacomo/kanso-quest/internal/core/clock"
	"github.com/comitanigiacomo/kanso-quest/internal/core/domain"
)

const (
	ReasonQuestNotFound         = "Quest not found"
	ReasonQuestAlreadyCompleted = "Quest already completed"
	varietyWindowDays           = 7
	noonHour                    = 12
)

// ChallengeSignal carries what happened in one operation that may move the
// weekly challenge.
type ChallengeSignal struct {
	QuestCompleted bool
	SkillLevelUps  int
	Achievements   int
	WAHDChanged    bool
}

type ChallengeResult struct {
	Challenge  *domain.WeeklyChallenge `json:"challenge"`
	Completed  bool                    `json:"completed"`
	Experience *ExperienceResult       `json:"experience,omitempty"`
}

type QuestResult struct {
	Quest      *domain.Quest    `json:"quest"`
	Experience ExperienceResult `json:"experience"`
	Challenge  *ChallengeResult `json:"challenge,omitempty"`
}

type QuestService struct {
	progression *ProgressionService
	events      domain.EventSink
}

func NewQuestService(progression *ProgressionService, events domain.EventSink) *QuestService {
	return &QuestService{
		progression: progression,
		events:      events,
	}
}

// CompleteQuest marks one of today's quests done and grants its reward. The
// quest is completed even when the daily cap rejects the experience; the
// result then carries the cap reason.
func (s *QuestService) CompleteQuest(p *domain.Player, log *domain.QuestLog, questID string, now time.Time) (*QuestResult, error) {
	q, ok := log.Find(questID)
	if !ok {
		return nil, domain.NewValidationError(ReasonQuestNotFound, domain.ErrQuestNotFound)
	}
	if q.Completed {
		return nil, domain.NewAlreadyCompletedError(ReasonQuestAlreadyCompleted, domain.ErrQuestAlreadyCompleted)
	}

	q.Complete(now)
	log.MarkHistoryCompleted(q.ID)

	xp := s.progression.GrantExperience(p, q.XP, q.Category.Source())
	p.Stats.QuestsCompleted++

	p.Today.Mark(q.Category)
	if now.Hour() < noonHour {
		p.Today.QuestBeforeNoon = true
	}
	if log.AllCompleted() && !p.Today.AllQuestsDone {
		p.Today.AllQuestsDone = true
		p.Stats.PerfectDays++
	}

	s.events.Publish(domain.QuestCompleted{
		EventBase: domain.EventBase{Player: p.ID},
		QuestID:   q.ID,
		Category:  q.Category,
		XP:        xp.Granted,
	})

	res := &QuestResult{Quest: q, Experience: xp}
	res.Challenge = s.AdvanceChallenge(p, log, ChallengeSignal{
		QuestCompleted: true,
		SkillLevelUps:  len(xp.SkillLevelUps),
	}, now)
	return res, nil
}

// AdvanceChallenge applies signal to the active weekly challenge and completes
// it the first time progress reaches the target. It returns nil when there is
// no active challenge.
func (s *QuestService) AdvanceChallenge(p *domain.Player, log *domain.QuestLog, signal ChallengeSignal, now time.Time) *ChallengeResult {
	ch := log.Challenge
	if ch == nil || !ch.Active(now) {
		return nil
	}

	today := clock.Day(now)

	switch ch.Objective {
	case domain.ObjectiveBalanced:
		if signal.QuestCompleted && len(log.CompletedCategories()) == len(domain.Categories) && ch.LastProgressDate != today {
			ch.Progress++
			ch.LastProgressDate = today
		}
	case domain.ObjectiveStreak:
		if signal.QuestCompleted && log.AllCompleted() && ch.LastProgressDate != today {
			yesterday, err := clock.AddDays(today, -1)
			if err == nil && ch.LastProgressDate == yesterday {
				ch.Progress++
			} else {
				ch.Progress = 1
			}
			ch.LastProgressDate = today
		}
	case domain.ObjectiveSkill:
		ch.Progress += signal.SkillLevelUps
	case domain.ObjectiveVariety:
		if signal.QuestCompleted {
			from, err := clock.AddDays(today, -(varietyWindowDays - 1))
			if err == nil {
				ch.Progress = log.CompletedTemplatesSince(from)
			}
		}
	case domain.ObjectiveAchievements:
		ch.Progress += signal.Achievements
	case domain.ObjectiveWAHD:
		ch.Progress = p.Stats.WAHD.Current
	}

	res := &ChallengeResult{Challenge: ch}
	if !ch.Reached() {
		return res
	}

	completedAt := now.UTC()
	ch.Completed = true
	ch.CompletedAt = &completedAt
	p.Stats.ChallengesCompleted++

	xp := s.progression.GrantExperience(p, ch.XP, domain.SourceChallenge)
	res.Completed = true
	res.Experience = &xp

	s.events.Publish(domain.ChallengeCompleted{
		EventBase:   domain.EventBase{Player: p.ID},
		ChallengeID: ch.ID,
		XP:          xp.Granted,
	})
	return res
}
