package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/comitanigiacomo/kanso-quest/internal/ui"
)

func (a *app) newAchievementsCmd() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "achievements",
		Short: "List unlocked achievements and progress toward the rest",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, _, cleanup, err := a.session(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			view, err := svc.Achievements(cmd.Context(), LocalPlayerID)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconTrophy, "Achievements"))
			fmt.Fprintln(out, ui.LabelValue("Unlocked", fmt.Sprintf("%d/%d (%d%%)", view.Progress.Unlocked, view.Progress.Total, view.Progress.Percentage)))
			fmt.Fprintln(out, "")

			for _, item := range view.Items {
				switch {
				case item.Unlocked:
					fmt.Fprintf(out, "%s %s %s\n", item.Icon, ui.Gold.Render(item.Name), ui.Muted.Render(item.Description))
				case !all:
					continue
				case item.Hidden:
					fmt.Fprintf(out, "%s %s\n", ui.IconLock, ui.Muted.Render("???"))
				case item.Target > 0:
					fmt.Fprintf(out, "%s %s %s\n", ui.IconLock, item.Name, ui.ProgressBar(item.Progress, item.Target, 10))
				default:
					fmt.Fprintf(out, "%s %s %s\n", ui.IconLock, item.Name, ui.Muted.Render(item.Description))
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "include locked achievements")
	return cmd
}
