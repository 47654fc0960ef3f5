package domain

type CategoryStats struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
}

// QuestStats summarises the retained quest history of one player.
type QuestStats struct {
	Total          int                        `json:"total"`
	Completed      int                        `json:"completed"`
	CompletionRate float64                    `json:"completion_rate"`
	XPEarned       int                        `json:"xp_earned"`
	ByCategory     map[Category]CategoryStats `json:"by_category"`
}

// AchievementProgress is the unlock summary shown next to the catalogue.
type AchievementProgress struct {
	Unlocked   int `json:"unlocked"`
	Total      int `json:"total"`
	Percentage int `json:"percentage"`
}
