package services

import (
	"github.com/comitanigiacomo/kanso-quest/internal/core/clock"
	"github.com/comitanigiacomo/kanso-quest/internal/core/domain"
)

const ReasonDailyLimit = "Daily XP limit reached"

type SkillGain struct {
	Skill domain.Skill `json:"skill"`
	Level int          `json:"level"`
}

// ExperienceResult describes one grant. Granted may be lower than Requested
// when the daily cap clamps the amount.
type ExperienceResult struct {
	Accepted      bool                 `json:"accepted"`
	Requested     int                  `json:"requested"`
	Granted       int                  `json:"granted"`
	Capped        bool                 `json:"capped"`
	Reason        string               `json:"reason,omitempty"`
	LevelsGained  int                  `json:"levels_gained"`
	NewLevel      int                  `json:"new_level"`
	SkillLevelUps []SkillGain          `json:"skill_level_ups,omitempty"`
	Perks         []domain.Perk        `json:"perks,omitempty"`
	Rewards       []domain.LevelReward `json:"rewards,omitempty"`
}

// Err reports a capped grant as a capacity error. Whatever was granted
// stands.
func (r ExperienceResult) Err() error {
	if !r.Capped {
		return nil
	}
	return domain.NewCapacityError(ReasonDailyLimit, domain.ErrDailyLimitReached)
}

type ProgressionService struct {
	cfg    domain.GameConfig
	clock  clock.Clock
	events domain.EventSink
}

func NewProgressionService(cfg domain.GameConfig, clk clock.Clock, events domain.EventSink) *ProgressionService {
	return &ProgressionService{
		cfg:    cfg,
		clock:  clk,
		events: events,
	}
}

// GrantExperience applies amount under source, honouring the daily cap, and
// runs the player and skill level-up loops.
func (s *ProgressionService) GrantExperience(p *domain.Player, amount int, source domain.Source) ExperienceResult {
	res := ExperienceResult{Requested: amount, NewLevel: p.Level}

	if amount <= 0 {
		res.Reason = "Experience amount must be positive"
		return res
	}

	if p.DailyXP >= s.cfg.MaxDailyXP {
		res.Capped = true
		res.Reason = ReasonDailyLimit
		s.events.Publish(domain.DailyLimitReached{
			EventBase: domain.EventBase{Player: p.ID},
			Requested: amount,
			DailyXP:   p.DailyXP,
			Cap:       s.cfg.MaxDailyXP,
		})
		return res
	}

	granted := amount
	if room := s.cfg.MaxDailyXP - p.DailyXP; granted > room {
		granted = room
		res.Capped = true
	}

	p.TotalXP += granted
	p.CurrentXP += granted
	p.DailyXP += granted

	res.Accepted = true
	res.Granted = granted

	if skill, ok := source.Skill(); ok {
		s.advanceSkill(p, skill, granted, &res)
	}
	s.advanceLevel(p, &res)

	s.events.Publish(domain.ExperienceGained{
		EventBase: domain.EventBase{Player: p.ID},
		Amount:    granted,
		Source:    source,
		DailyXP:   p.DailyXP,
		TotalXP:   p.TotalXP,
	})

	if res.Capped {
		res.Reason = ReasonDailyLimit
		s.events.Publish(domain.DailyLimitReached{
			EventBase: domain.EventBase{Player: p.ID},
			Requested: amount,
			DailyXP:   p.DailyXP,
			Cap:       s.cfg.MaxDailyXP,
		})
	}

	return res
}

func (s *ProgressionService) advanceSkill(p *domain.Player, skill domain.Skill, amount int, res *ExperienceResult) {
	sp := p.Skill(skill)
	sp.XP += amount
	sp.TotalXP += amount

	for sp.Level < s.cfg.MaxSkillLevel {
		threshold := sp.Level * s.cfg.SkillXPPerLevel
		if sp.XP < threshold {
			break
		}
		sp.XP -= threshold
		sp.Level++
		sp.Milestones = append(sp.Milestones, domain.Milestone{Level: sp.Level, ReachedAt: s.clock.Now().UTC()})
		res.SkillLevelUps = append(res.SkillLevelUps, SkillGain{Skill: skill, Level: sp.Level})

		s.events.Publish(domain.SkillLevelUp{
			EventBase: domain.EventBase{Player: p.ID},
			Skill:     skill,
			Level:     sp.Level,
		})

		if perk, ok := domain.PerkAt(skill, sp.Level); ok {
			sp.Perks = append(sp.Perks, perk)
			res.Perks = append(res.Perks, perk)
			s.events.Publish(domain.PerkUnlocked{
				EventBase: domain.EventBase{Player: p.ID},
				Skill:     skill,
				Perk:      perk,
			})
		}
	}

	// At the cap the bar stays just short of full.
	if sp.Level >= s.cfg.MaxSkillLevel {
		if ceiling := sp.Level*s.cfg.SkillXPPerLevel - 1; sp.XP > ceiling {
			sp.XP = ceiling
		}
	}
}

func (s *ProgressionService) advanceLevel(p *domain.Player, res *ExperienceResult) {
	from := p.Level

	for p.Level < s.cfg.MaxPlayerLevel {
		threshold := p.NextLevelXP(s.cfg)
		if p.CurrentXP < threshold {
			break
		}
		p.CurrentXP -= threshold
		p.Level++

		avatar := domain.AvatarForLevel(p.Level)
		if avatar.Stage != p.Avatar.Stage {
			p.Avatar = avatar
			s.events.Publish(domain.AvatarEvolved{
				EventBase: domain.EventBase{Player: p.ID},
				Avatar:    avatar,
			})
		}

		if reward, ok := domain.RewardForLevel(p.Level); ok && p.Inventory.Add(reward) {
			res.Rewards = append(res.Rewards, reward)
			s.events.Publish(domain.RewardUnlocked{
				EventBase: domain.EventBase{Player: p.ID},
				Reward:    reward,
			})
		}
	}

	if p.Level >= s.cfg.MaxPlayerLevel {
		if ceiling := p.NextLevelXP(s.cfg) - 1; p.CurrentXP > ceiling {
			p.CurrentXP = ceiling
		}
	}

	res.NewLevel = p.Level
	res.LevelsGained = p.Level - from
	if res.LevelsGained > 0 {
		s.events.Publish(domain.LevelUp{
			EventBase: domain.EventBase{Player: p.ID},
			From:      from,
			To:        p.Level,
		})
	}
}
