package domain

import (
	"fmt"
	"strconv"
	"strings"
)

type NotificationSettings struct {
	Daily        bool `json:"daily"`
	Achievements bool `json:"achievements"`
	Streaks      bool `json:"streaks"`
	Hydration    bool `json:"hydration"`
	Movement     bool `json:"movement"`
}

type PrivacySettings struct {
	ShareProgress  bool `json:"share_progress"`
	AnonymousMode  bool `json:"anonymous_mode"`
	DataCollection bool `json:"data_collection"`
}

type GameplaySettings struct {
	Difficulty     string `json:"difficulty"`
	AutoQuests     bool   `json:"auto_quests"`
	SoundEnabled   bool   `json:"sound_enabled"`
	HapticFeedback bool   `json:"haptic_feedback"`
}

type DisplaySettings struct {
	Theme         string `json:"theme"`
	LargeText     bool   `json:"large_text"`
	HighContrast  bool   `json:"high_contrast"`
	ReducedMotion bool   `json:"reduced_motion"`
}

type Settings struct {
	Notifications NotificationSettings `json:"notifications"`
	Privacy       PrivacySettings      `json:"privacy"`
	Gameplay      GameplaySettings     `json:"gameplay"`
	Display       DisplaySettings      `json:"display"`
}

func DefaultSettings() Settings {
	return Settings{
		Notifications: NotificationSettings{Daily: true, Achievements: true, Streaks: true},
		Privacy:       PrivacySettings{ShareProgress: true, DataCollection: true},
		Gameplay:      GameplaySettings{Difficulty: "normal", AutoQuests: true, SoundEnabled: true, HapticFeedback: true},
		Display:       DisplaySettings{Theme: "dark"},
	}
}

var (
	gameplayDifficulties = []string{"easy", "normal", "hard"}
	displayThemes        = []string{"dark", "light", "ocean", "sunset", "galaxy"}
)

// Set updates one setting addressed as "category.setting", e.g. "display.theme".
func (s *Settings) Set(key, value string) error {
	var target *bool

	switch key {
	case "notifications.daily":
		target = &s.Notifications.Daily
	case "notifications.achievements":
		target = &s.Notifications.Achievements
	case "notifications.streaks":
		target = &s.Notifications.Streaks
	case "notifications.hydration":
		target = &s.Notifications.Hydration
	case "notifications.movement":
		target = &s.Notifications.Movement
	case "privacy.share_progress":
		target = &s.Privacy.ShareProgress
	case "privacy.anonymous_mode":
		target = &s.Privacy.AnonymousMode
	case "privacy.data_collection":
		target = &s.Privacy.DataCollection
	case "gameplay.auto_quests":
		target = &s.Gameplay.AutoQuests
	case "gameplay.sound_enabled":
		target = &s.Gameplay.SoundEnabled
	case "gameplay.haptic_feedback":
		target = &s.Gameplay.HapticFeedback
	case "display.large_text":
		target = &s.Display.LargeText
	case "display.high_contrast":
		target = &s.Display.HighContrast
	case "display.reduced_motion":
		target = &s.Display.ReducedMotion
	case "gameplay.difficulty":
		v, err := oneOf(value, gameplayDifficulties)
		if err != nil {
			return err
		}
		s.Gameplay.Difficulty = v
		return nil
	case "display.theme":
		v, err := oneOf(value, displayThemes)
		if err != nil {
			return err
		}
		s.Display.Theme = v
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrUnknownSetting, key)
	}

	b, err := strconv.ParseBool(strings.TrimSpace(value))
	if err != nil {
		return fmt.Errorf("%w: %s expects a boolean", ErrInvalidSettingValue, key)
	}
	*target = b
	return nil
}

func oneOf(value string, allowed []string) (string, error) {
	v := strings.ToLower(strings.TrimSpace(value))
	for _, a := range allowed {
		if v == a {
			return v, nil
		}
	}
	return "", fmt.Errorf("%w: %q (allowed: %s)", ErrInvalidSettingValue, value, strings.Join(allowed, ", "))
}
