package domain

type EventType string

const (
	EventExperienceGained      EventType = "experience-gained"
	EventDailyLimitReached     EventType = "daily-limit-reached"
	EventLevelUp               EventType = "level-up"
	EventSkillLevelUp          EventType = "skill-level-up"
	EventPerkUnlocked          EventType = "perk-unlocked"
	EventAvatarEvolved         EventType = "avatar-evolved"
	EventRewardUnlocked        EventType = "reward-unlocked"
	EventQuestCompleted        EventType = "quest-completed"
	EventChallengeGenerated    EventType = "challenge-generated"
	EventChallengeCompleted    EventType = "challenge-completed"
	EventAchievementUnlocked   EventType = "achievement-unlocked"
	EventStreakBroken          EventType = "streak-broken"
	EventStreakForgivenessUsed EventType = "streak-forgiveness-used"
	EventWAHDAchieved          EventType = "wahd-achieved"
	EventDailyReset            EventType = "daily-reset"
	EventWeeklyReset           EventType = "weekly-reset"
	EventHabitLogged           EventType = "habit-logged"
)

// Event is the closed set of signals emitted by the game rules.
type Event interface {
	Type() EventType
	PlayerID() string
	isEvent()
}

// EventSink receives events synchronously, in emission order.
type EventSink interface {
	Publish(e Event)
}

// EventBase carries the fields shared by every event.
type EventBase struct {
	Player string `json:"player_id"`
}

func (b EventBase) PlayerID() string { return b.Player }
func (EventBase) isEvent()           {}

type ExperienceGained struct {
	EventBase
	Amount  int    `json:"amount"`
	Source  Source `json:"source"`
	DailyXP int    `json:"daily_xp"`
	TotalXP int    `json:"total_xp"`
}

func (ExperienceGained) Type() EventType { return EventExperienceGained }

type DailyLimitReached struct {
	EventBase
	Requested int `json:"requested"`
	DailyXP   int `json:"daily_xp"`
	Cap       int `json:"cap"`
}

func (DailyLimitReached) Type() EventType { return EventDailyLimitReached }

type LevelUp struct {
	EventBase
	From int `json:"from"`
	To   int `json:"to"`
}

func (LevelUp) Type() EventType { return EventLevelUp }

type SkillLevelUp struct {
	EventBase
	Skill Skill `json:"skill"`
	Level int   `json:"level"`
}

func (SkillLevelUp) Type() EventType { return EventSkillLevelUp }

type PerkUnlocked struct {
	EventBase
	Skill Skill `json:"skill"`
	Perk  Perk  `json:"perk"`
}

func (PerkUnlocked) Type() EventType { return EventPerkUnlocked }

type AvatarEvolved struct {
	EventBase
	Avatar Avatar `json:"avatar"`
}

func (AvatarEvolved) Type() EventType { return EventAvatarEvolved }

type RewardUnlocked struct {
	EventBase
	Reward LevelReward `json:"reward"`
}

func (RewardUnlocked) Type() EventType { return EventRewardUnlocked }

type QuestCompleted struct {
	EventBase
	QuestID  string   `json:"quest_id"`
	Category Category `json:"category"`
	XP       int      `json:"xp"`
}

func (QuestCompleted) Type() EventType { return EventQuestCompleted }

type ChallengeGenerated struct {
	EventBase
	ChallengeID string    `json:"challenge_id"`
	Objective   Objective `json:"objective"`
}

func (ChallengeGenerated) Type() EventType { return EventChallengeGenerated }

type ChallengeCompleted struct {
	EventBase
	ChallengeID string `json:"challenge_id"`
	XP          int    `json:"xp"`
}

func (ChallengeCompleted) Type() EventType { return EventChallengeCompleted }

type AchievementUnlocked struct {
	EventBase
	Achievement Achievement `json:"achievement"`
}

func (AchievementUnlocked) Type() EventType { return EventAchievementUnlocked }

type StreakBroken struct {
	EventBase
	Previous int `json:"previous"`
}

func (StreakBroken) Type() EventType { return EventStreakBroken }

type StreakForgivenessUsed struct {
	EventBase
	Streak    int `json:"streak"`
	Remaining int `json:"remaining"`
}

func (StreakForgivenessUsed) Type() EventType { return EventStreakForgivenessUsed }

type WAHDAchieved struct {
	EventBase
	Date    string `json:"date"`
	Current int    `json:"current"`
}

func (WAHDAchieved) Type() EventType { return EventWAHDAchieved }

type DailyReset struct {
	EventBase
	Date string `json:"date"`
}

func (DailyReset) Type() EventType { return EventDailyReset }

type WeeklyReset struct {
	EventBase
	WeekStart string `json:"week_start"`
}

func (WeeklyReset) Type() EventType { return EventWeeklyReset }

type HabitLogged struct {
	EventBase
	Kind HabitKind `json:"kind"`
	XP   int       `json:"xp"`
}

func (HabitLogged) Type() EventType { return EventHabitLogged }
