package domain

// Avatar is derived display state. It is recomputed from the level, never set directly.
type Avatar struct {
	Stage int    `json:"stage"`
	Emoji string `json:"emoji"`
	Title string `json:"title"`
}

var avatarStages = []Avatar{
	{Stage: 1, Emoji: "🌱", Title: "Novice Wellness Warrior"},
	{Stage: 5, Emoji: "🌿", Title: "Growing Guardian"},
	{Stage: 10, Emoji: "🌳", Title: "Balanced Builder"},
	{Stage: 15, Emoji: "🏔️", Title: "Harmony Hero"},
	{Stage: 20, Emoji: "⭐", Title: "Wellness Wizard"},
	{Stage: 25, Emoji: "🌟", Title: "Health Champion"},
	{Stage: 30, Emoji: "💎", Title: "Lifestyle Legend"},
	{Stage: 40, Emoji: "👑", Title: "Sovereign of Self-Care"},
	{Stage: 50, Emoji: "🏆", Title: "Grand Master of Wellness"},
	{Stage: 75, Emoji: "🌈", Title: "Transcendent Being"},
	{Stage: 100, Emoji: "∞", Title: "Eternal Wellness Guardian"},
}

// AvatarForLevel picks the highest stage whose threshold is at or below level.
func AvatarForLevel(level int) Avatar {
	current := avatarStages[0]
	for _, stage := range avatarStages {
		if level >= stage.Stage {
			current = stage
		}
	}
	return current
}

type RewardKind string

const (
	RewardTitle   RewardKind = "title"
	RewardTheme   RewardKind = "theme"
	RewardBadge   RewardKind = "badge"
	RewardPowerup RewardKind = "powerup"
)

type LevelReward struct {
	Level int        `json:"level"`
	Kind  RewardKind `json:"kind"`
	Item  string     `json:"item"`
}

var levelRewards = map[int]LevelReward{
	5:   {Kind: RewardTitle, Item: "Dedicated Seeker"},
	10:  {Kind: RewardTheme, Item: "ocean"},
	15:  {Kind: RewardBadge, Item: "consistency_star"},
	20:  {Kind: RewardTitle, Item: "Wellness Warrior"},
	25:  {Kind: RewardTheme, Item: "sunset"},
	30:  {Kind: RewardBadge, Item: "master_badge"},
	40:  {Kind: RewardTitle, Item: "Legend"},
	50:  {Kind: RewardTheme, Item: "galaxy"},
	60:  {Kind: RewardPowerup, Item: "double_xp"},
	75:  {Kind: RewardBadge, Item: "transcendent"},
	100: {Kind: RewardTitle, Item: "Eternal Guardian"},
}

func RewardForLevel(level int) (LevelReward, bool) {
	r, ok := levelRewards[level]
	if !ok {
		return LevelReward{}, false
	}
	r.Level = level
	return r, true
}

type Inventory struct {
	Badges   []string `json:"badges"`
	Titles   []string `json:"titles"`
	Themes   []string `json:"themes"`
	Powerups []string `json:"powerups"`
}

func NewInventory() Inventory {
	return Inventory{
		Badges:   []string{},
		Titles:   []string{},
		Themes:   []string{"dark"},
		Powerups: []string{},
	}
}

// Add stores a reward item, ignoring duplicates.
func (inv *Inventory) Add(r LevelReward) bool {
	var bucket *[]string
	switch r.Kind {
	case RewardTitle:
		bucket = &inv.Titles
	case RewardTheme:
		bucket = &inv.Themes
	case RewardBadge:
		bucket = &inv.Badges
	case RewardPowerup:
		bucket = &inv.Powerups
	default:
		return false
	}
	for _, item := range *bucket {
		if item == r.Item {
			return false
		}
	}
	*bucket = append(*bucket, r.Item)
	return true
}
