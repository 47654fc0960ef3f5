package domain

// StreakRecord is a finished streak, kept for history display.
type StreakRecord struct {
	Streak    int    `json:"streak"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

type StreakState struct {
	Current        int            `json:"current"`
	Best           int            `json:"best"`
	Forgiveness    int            `json:"forgiveness"`
	LastActiveDate string         `json:"last_active_date,omitempty"`
	RefillWeek     string         `json:"refill_week,omitempty"`
	History        []StreakRecord `json:"history"`
}

// WAHDEntry records one qualifying active healthy day.
type WAHDEntry struct {
	Date   string `json:"date"`
	Habits int    `json:"habits"`
	Week   string `json:"week"`
}

type WAHDState struct {
	Current   int         `json:"current"`
	Best      int         `json:"best"`
	Average   float64     `json:"average"`
	WeekStart string      `json:"week_start,omitempty"`
	History   []WAHDEntry `json:"history"`
}

const MaxWAHD = 7

func (w *WAHDState) HasEntry(day string) bool {
	for _, e := range w.History {
		if e.Date == day {
			return true
		}
	}
	return false
}
