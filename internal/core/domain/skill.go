package domain

import "time"

// Skill is one of the five parallel leveling tracks.
type Skill string

const (
	SkillNutrition   Skill = "nutrition"
	SkillStrength    Skill = "strength"
	SkillCardio      Skill = "cardio"
	SkillRecovery    Skill = "recovery"
	SkillMindfulness Skill = "mindfulness"
)

var Skills = []Skill{
	SkillNutrition,
	SkillStrength,
	SkillCardio,
	SkillRecovery,
	SkillMindfulness,
}

// Source tags an experience grant with where it came from.
type Source string

const (
	SourceNutrition   Source = "nutrition"
	SourceMeal        Source = "meal"
	SourceHydration   Source = "hydration"
	SourceStrength    Source = "strength"
	SourceWeights     Source = "weights"
	SourceMovement    Source = "movement"
	SourceCardio      Source = "cardio"
	SourceWalk        Source = "walk"
	SourceRun         Source = "run"
	SourceBike        Source = "bike"
	SourceSwim        Source = "swim"
	SourceRecovery    Source = "recovery"
	SourceSleep       Source = "sleep"
	SourceRest        Source = "rest"
	SourceMindfulness Source = "mindfulness"
	SourceMeditation  Source = "meditation"
	SourceBreathing   Source = "breathing"
	SourceGratitude   Source = "gratitude"
	SourceTracking    Source = "tracking"
	SourceAchievement Source = "achievement"
	SourceChallenge   Source = "challenge"
)

// Skill returns the skill track fed by s. Sources with no track report false.
func (s Source) Skill() (Skill, bool) {
	switch s {
	case SourceNutrition, SourceMeal, SourceHydration:
		return SkillNutrition, true
	case SourceStrength, SourceWeights:
		return SkillStrength, true
	case SourceMovement, SourceCardio, SourceWalk, SourceRun, SourceBike, SourceSwim:
		return SkillCardio, true
	case SourceRecovery, SourceSleep, SourceRest:
		return SkillRecovery, true
	case SourceMindfulness, SourceMeditation, SourceBreathing, SourceGratitude:
		return SkillMindfulness, true
	case SourceTracking, SourceAchievement, SourceChallenge:
		return "", false
	}
	return "", false
}

type Perk struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Bonus string `json:"bonus"`
	Level int    `json:"level"`
}

type Milestone struct {
	Level     int       `json:"level"`
	ReachedAt time.Time `json:"reached_at"`
}

// SkillProgress is the per-skill slice of a player's progression.
type SkillProgress struct {
	Level      int         `json:"level"`
	XP         int         `json:"xp"`
	TotalXP    int         `json:"total_xp"`
	Perks      []Perk      `json:"perks"`
	Milestones []Milestone `json:"milestones"`
}

func NewSkillProgress() *SkillProgress {
	return &SkillProgress{
		Level:      1,
		Perks:      []Perk{},
		Milestones: []Milestone{},
	}
}

var skillPerks = map[Skill]map[int]Perk{
	SkillNutrition: {
		5:  {ID: "meal_prep", Name: "Meal Prep Master", Bonus: "10% XP bonus for meal logging"},
		10: {ID: "intuitive", Name: "Intuitive Eater", Bonus: "Unlock mindful eating quests"},
		15: {ID: "chef", Name: "Home Chef", Bonus: "15% XP for home-cooked meals"},
		20: {ID: "nutritionist", Name: "Nutrition Expert", Bonus: "Unlock nutrition challenges"},
		25: {ID: "balanced", Name: "Balanced Plate", Bonus: "Double XP for balanced meals"},
	},
	SkillStrength: {
		5:  {ID: "iron_will", Name: "Iron Will", Bonus: "5% XP bonus for all activities"},
		10: {ID: "powerhouse", Name: "Powerhouse", Bonus: "Unlock strength challenges"},
		15: {ID: "titan", Name: "Titan Endurance", Bonus: "Reduced recovery time"},
		20: {ID: "hercules", Name: "Hercules Strength", Bonus: "20% XP for strength training"},
		25: {ID: "olympian", Name: "Olympian", Bonus: "Unlock legendary workouts"},
	},
	SkillCardio: {
		5:  {ID: "runner", Name: "Runner's High", Bonus: "Extra XP for cardio streaks"},
		10: {ID: "marathoner", Name: "Marathon Ready", Bonus: "Unlock endurance challenges"},
		15: {ID: "speedster", Name: "Speedster", Bonus: "15% XP for high-intensity cardio"},
		20: {ID: "ultrarunner", Name: "Ultra Runner", Bonus: "Double XP for long sessions"},
		25: {ID: "windrunner", Name: "Wind Runner", Bonus: "Unlock extreme challenges"},
	},
	SkillRecovery: {
		5:  {ID: "restful", Name: "Restful Sleeper", Bonus: "Bonus XP for consistent sleep"},
		10: {ID: "recovery_pro", Name: "Recovery Pro", Bonus: "Faster daily XP reset"},
		15: {ID: "zen_master", Name: "Zen Master", Bonus: "Stress resistance bonus"},
		20: {ID: "restoration", Name: "Restoration Expert", Bonus: "20% XP for recovery activities"},
		25: {ID: "phoenix", Name: "Phoenix Rising", Bonus: "Extra streak forgiveness"},
	},
	SkillMindfulness: {
		5:  {ID: "present", Name: "Present Mind", Bonus: "Unlock advanced meditations"},
		10: {ID: "serene", Name: "Serene Soul", Bonus: "10% XP for mindfulness activities"},
		15: {ID: "enlightened", Name: "Enlightened", Bonus: "Mood boost effects"},
		20: {ID: "sage", Name: "Mindful Sage", Bonus: "Double XP for meditation streaks"},
		25: {ID: "guru", Name: "Wellness Guru", Bonus: "Master meditation unlocked"},
	},
}

// PerkAt returns the perk unlocked when skill reaches level, if any.
func PerkAt(skill Skill, level int) (Perk, bool) {
	perk, ok := skillPerks[skill][level]
	if !ok {
		return Perk{}, false
	}
	perk.Level = level
	return perk, true
}
