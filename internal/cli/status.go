package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/comitanigiacomo/kanso-quest/internal/core/domain"
	"github.com/comitanigiacomo/kanso-quest/internal/ui"
)

func (a *app) newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show level, streak, skills and this week's healthy days",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, state, cleanup, err := a.session(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			p, cfg := state.Player, svc.Config()
			out := cmd.OutOrStdout()

			fmt.Fprintln(out, ui.Heading(p.Avatar.Emoji, p.Name))
			fmt.Fprintln(out, ui.Muted.Render(p.Avatar.Title))
			fmt.Fprintln(out, ui.LabelValue("Level", p.Level))
			fmt.Fprintln(out, ui.LabelValue("XP", ui.ProgressBar(p.CurrentXP, state.NextLevelXP, 20)))
			fmt.Fprintln(out, ui.LabelValue("Today", ui.ProgressBar(p.DailyXP, cfg.MaxDailyXP, 20)))
			fmt.Fprintln(out, ui.LabelValue("Total XP", p.TotalXP))
			fmt.Fprintln(out, "")

			streak := p.Stats.Streak
			fmt.Fprintln(out, ui.H2.Render(ui.IconFire+" Streak"))
			fmt.Fprintf(out, "- %s %d days %s\n", ui.Key.Render("Current:"), streak.Current, ui.Muted.Render(fmt.Sprintf("(best %d)", streak.Best)))
			fmt.Fprintf(out, "- %s %d\n", ui.Key.Render("Forgiveness tokens:"), streak.Forgiveness)

			wahd := p.Stats.WAHD
			fmt.Fprintf(out, "- %s %s %s\n", ui.Key.Render("Healthy days this week:"),
				ui.ProgressBar(wahd.Current, domain.MaxWAHD, 7), ui.Muted.Render(fmt.Sprintf("(avg %.1f, best %d)", wahd.Average, wahd.Best)))
			fmt.Fprintln(out, "")

			fmt.Fprintln(out, ui.H2.Render(ui.IconChart+" Skills"))
			for _, s := range domain.Skills {
				sp := p.Skill(s)
				fmt.Fprintf(out, "- %-12s lvl %-3d %s\n", s, sp.Level, ui.ProgressBar(sp.XP, sp.Level*cfg.SkillXPPerLevel, 10))
				for _, perk := range sp.Perks {
					fmt.Fprintf(out, "    %s %s\n", ui.Gold.Render(perk.Name), ui.Muted.Render(perk.Bonus))
				}
			}

			return nil
		},
	}
}
