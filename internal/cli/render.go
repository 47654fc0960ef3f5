package cli

import (
	"fmt"
	"io"

	"github.com/comitanigiacomo/kanso-quest/internal/core/domain"
	"github.com/comitanigiacomo/kanso-quest/internal/core/services"
	"github.com/comitanigiacomo/kanso-quest/internal/ui"
)

// renderOutcome prints the notable events of one operation, one per line.
func renderOutcome(w io.Writer, out services.Outcome) {
	for _, ev := range out.Events {
		if line := eventLine(ev.Payload); line != "" {
			fmt.Fprintln(w, line)
		}
	}
	if out.SaveError != "" {
		fmt.Fprintln(w, ui.Warn.Render(ui.IconWarn+" "+out.SaveError))
	}
}

func eventLine(payload any) string {
	switch e := payload.(type) {
	case domain.ExperienceGained:
		return ui.Good.Render(fmt.Sprintf("%s +%d XP", ui.IconBolt, e.Amount)) + ui.Muted.Render(fmt.Sprintf(" (%s, today %d)", e.Source, e.DailyXP))
	case domain.DailyLimitReached:
		return ui.Warn.Render(fmt.Sprintf("%s Daily XP limit reached (%d/%d)", ui.IconWarn, e.DailyXP, e.Cap))
	case domain.LevelUp:
		return fmt.Sprintf("%s %s %d → %d", ui.IconLevelUp, ui.BadgeLevelUp, e.From, e.To)
	case domain.SkillLevelUp:
		return ui.Gold.Render(fmt.Sprintf("%s %s reached level %d", ui.IconSparkle, e.Skill, e.Level))
	case domain.PerkUnlocked:
		return ui.Gold.Render(fmt.Sprintf("%s Perk unlocked: %s", ui.IconSparkle, e.Perk.Name)) + ui.Muted.Render(" ("+e.Perk.Bonus+")")
	case domain.AvatarEvolved:
		return ui.Gold.Render(fmt.Sprintf("%s You are now %s", e.Avatar.Emoji, e.Avatar.Title))
	case domain.AchievementUnlocked:
		return ui.Gold.Render(fmt.Sprintf("%s Achievement: %s %s", ui.IconTrophy, e.Achievement.Icon, e.Achievement.Name)) + ui.Muted.Render(fmt.Sprintf(" (+%d XP)", e.Achievement.XP))
	case domain.ChallengeCompleted:
		return ui.Gold.Render(fmt.Sprintf("%s Weekly challenge complete (+%d XP)", ui.IconTrophy, e.XP))
	case domain.StreakBroken:
		return ui.Bad.Render(fmt.Sprintf("%s Streak of %d days broken", ui.IconFire, e.Previous))
	case domain.StreakForgivenessUsed:
		return ui.Warn.Render(fmt.Sprintf("%s Forgiveness token used, streak kept at %d (%d left)", ui.IconShield, e.Streak, e.Remaining))
	case domain.WAHDAchieved:
		return ui.Good.Render(fmt.Sprintf("%s Active healthy day! %d/7 this week", ui.IconHeartbeat, e.Current))
	case domain.DailyReset:
		return ui.Muted.Render(fmt.Sprintf("%s New day: %s", ui.IconCalendar, e.Date))
	default:
		return ""
	}
}
