package domain

import "time"

type AchievementID string

const (
	AchFirstQuest     AchievementID = "first_quest"
	AchFirstLevel     AchievementID = "first_level"
	AchAllHabits      AchievementID = "all_habits"
	AchStreak3        AchievementID = "streak_3"
	AchStreak7        AchievementID = "streak_7"
	AchStreak30       AchievementID = "streak_30"
	AchQuests10       AchievementID = "quests_10"
	AchQuests50       AchievementID = "quests_50"
	AchQuests100      AchievementID = "quests_100"
	AchSkill5         AchievementID = "skill_5"
	AchSkill10        AchievementID = "skill_10"
	AchAllSkills5     AchievementID = "all_skills_5"
	AchWAHDPerfect    AchievementID = "wahd_perfect"
	AchWAHDMonth      AchievementID = "wahd_month"
	AchEarlyBird      AchievementID = "early_bird"
	AchNightOwl       AchievementID = "night_owl"
	AchWeekendWarrior AchievementID = "weekend_warrior"
)

type Tier string

const (
	TierBronze   Tier = "bronze"
	TierSilver   Tier = "silver"
	TierGold     Tier = "gold"
	TierPlatinum Tier = "platinum"
)

type AchievementCategory string

const (
	AchievementStarter AchievementCategory = "starter"
	AchievementBalance AchievementCategory = "balance"
	AchievementStreak  AchievementCategory = "streak"
	AchievementQuests  AchievementCategory = "quests"
	AchievementSkills  AchievementCategory = "skills"
	AchievementWAHD    AchievementCategory = "wahd"
	AchievementSpecial AchievementCategory = "special"
)

// Achievement is a catalogue entry. Target is set for incremental achievements.
type Achievement struct {
	ID          AchievementID       `json:"id"`
	Name        string              `json:"name"`
	Description string              `json:"description"`
	Icon        string              `json:"icon"`
	Category    AchievementCategory `json:"category"`
	XP          int                 `json:"xp"`
	Tier        Tier                `json:"tier"`
	Hidden      bool                `json:"hidden"`
	Target      int                 `json:"target,omitempty"`
}

var achievementCatalog = []Achievement{
	{ID: AchFirstQuest, Name: "First Steps", Description: "Complete your first quest", Icon: "🏆", XP: 50, Category: AchievementStarter, Tier: TierBronze, Target: 1},
	{ID: AchFirstLevel, Name: "Level Up!", Description: "Reach level 2", Icon: "⬆️", XP: 100, Category: AchievementStarter, Tier: TierBronze, Target: 2},
	{ID: AchAllHabits, Name: "Balanced Day", Description: "Complete all 4 habit types in one day", Icon: "⚖️", XP: 150, Category: AchievementBalance, Tier: TierSilver, Target: 4},

	{ID: AchStreak3, Name: "On Fire", Description: "3-day streak", Icon: "🔥", XP: 100, Category: AchievementStreak, Tier: TierBronze, Target: 3},
	{ID: AchStreak7, Name: "Week Warrior", Description: "7-day streak", Icon: "💪", XP: 200, Category: AchievementStreak, Tier: TierSilver, Target: 7},
	{ID: AchStreak30, Name: "Habit Master", Description: "30-day streak", Icon: "👑", XP: 500, Category: AchievementStreak, Tier: TierGold, Target: 30},

	{ID: AchQuests10, Name: "Quest Hunter", Description: "Complete 10 quests", Icon: "⚔️", XP: 150, Category: AchievementQuests, Tier: TierBronze, Target: 10},
	{ID: AchQuests50, Name: "Quest Champion", Description: "Complete 50 quests", Icon: "🏅", XP: 300, Category: AchievementQuests, Tier: TierSilver, Target: 50},
	{ID: AchQuests100, Name: "Quest Legend", Description: "Complete 100 quests", Icon: "🌟", XP: 500, Category: AchievementQuests, Tier: TierGold, Target: 100},

	{ID: AchSkill5, Name: "Skill Builder", Description: "Reach level 5 in any skill", Icon: "📈", XP: 200, Category: AchievementSkills, Tier: TierSilver, Target: 5},
	{ID: AchSkill10, Name: "Skill Expert", Description: "Reach level 10 in any skill", Icon: "🎯", XP: 400, Category: AchievementSkills, Tier: TierGold, Target: 10},
	{ID: AchAllSkills5, Name: "Well-Rounded", Description: "All skills to level 5", Icon: "💎", XP: 600, Category: AchievementSkills, Tier: TierPlatinum, Target: 5},

	{ID: AchWAHDPerfect, Name: "Perfect Week", Description: "Achieve 7/7 WAHD", Icon: "🌈", XP: 300, Category: AchievementWAHD, Tier: TierGold, Target: MaxWAHD},
	{ID: AchWAHDMonth, Name: "Consistent Month", Description: "Average 5+ WAHD for a month", Icon: "📅", XP: 500, Category: AchievementWAHD, Tier: TierPlatinum, Target: 5},

	{ID: AchEarlyBird, Name: "Early Bird", Description: "Complete quests before noon", Icon: "🌅", XP: 100, Category: AchievementSpecial, Tier: TierBronze},
	{ID: AchNightOwl, Name: "Night Owl", Description: "Log activities after 10pm", Icon: "🦉", XP: 100, Category: AchievementSpecial, Tier: TierBronze, Hidden: true},
	{ID: AchWeekendWarrior, Name: "Weekend Warrior", Description: "Complete all quests on weekend", Icon: "🎉", XP: 150, Category: AchievementSpecial, Tier: TierSilver, Hidden: true},
}

// Achievements returns a copy of the catalogue in evaluation order.
func Achievements() []Achievement {
	out := make([]Achievement, len(achievementCatalog))
	copy(out, achievementCatalog)
	return out
}

func AchievementByID(id AchievementID) (Achievement, bool) {
	for _, a := range achievementCatalog {
		if a.ID == id {
			return a, true
		}
	}
	return Achievement{}, false
}

type UnlockRecord struct {
	ID         AchievementID `json:"id"`
	UnlockedAt time.Time     `json:"unlocked_at"`
}

// AchievementLedger is the persisted unlock history, oldest first.
type AchievementLedger struct {
	Unlocked []UnlockRecord `json:"unlocked"`
}

func NewAchievementLedger() *AchievementLedger {
	return &AchievementLedger{Unlocked: []UnlockRecord{}}
}

// Record appends id unless it is already present.
func (l *AchievementLedger) Record(id AchievementID, at time.Time) bool {
	for _, r := range l.Unlocked {
		if r.ID == id {
			return false
		}
	}
	l.Unlocked = append(l.Unlocked, UnlockRecord{ID: id, UnlockedAt: at.UTC()})
	return true
}

// Recent returns up to n records, newest first.
func (l *AchievementLedger) Recent(n int) []UnlockRecord {
	if n > len(l.Unlocked) {
		n = len(l.Unlocked)
	}
	out := make([]UnlockRecord, 0, n)
	for i := len(l.Unlocked) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, l.Unlocked[i])
	}
	return out
}

func (l *AchievementLedger) Clone() *AchievementLedger {
	return &AchievementLedger{Unlocked: append([]UnlockRecord{}, l.Unlocked...)}
}
