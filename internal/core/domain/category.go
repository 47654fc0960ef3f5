package domain

import "fmt"

// Category is one of the four habit categories a daily quest belongs to.
type Category string

const (
	CategoryNutrition   Category = "nutrition"
	CategoryMovement    Category = "movement"
	CategoryRecovery    Category = "recovery"
	CategoryMindfulness Category = "mindfulness"
)

// Categories lists every habit category in display order.
var Categories = []Category{
	CategoryNutrition,
	CategoryMovement,
	CategoryRecovery,
	CategoryMindfulness,
}

func (c Category) Valid() bool {
	switch c {
	case CategoryNutrition, CategoryMovement, CategoryRecovery, CategoryMindfulness:
		return true
	}
	return false
}

// Source is the experience source a completed quest of this category grants under.
func (c Category) Source() Source {
	return Source(c)
}

func (c Category) Icon() string {
	switch c {
	case CategoryNutrition:
		return "🥗"
	case CategoryMovement:
		return "🏃"
	case CategoryRecovery:
		return "😴"
	case CategoryMindfulness:
		return "🧘"
	}
	return "📋"
}

func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if !c.Valid() {
		return "", fmt.Errorf("unknown category %q", s)
	}
	return c, nil
}

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}
