package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/comitanigiacomo/kanso-quest/internal/core/services"
	"github.com/comitanigiacomo/kanso-quest/internal/ui"
)

func (a *app) newLogCmd() *cobra.Command {
	var input services.LogHabitInput

	cmd := &cobra.Command{
		Use:   "log <meal|activity|sleep|mood|meditation|weight>",
		Short: "Log a healthy habit",
		Example: "  hq log meal --notes \"big salad\"\n" +
			"  hq log activity --activity run --minutes 30\n" +
			"  hq log sleep --hours 7.5",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, _, cleanup, err := a.session(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			in := input
			in.Kind = args[0]

			res, err := svc.LogHabit(cmd.Context(), LocalPlayerID, in)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Good.Render(fmt.Sprintf("%s Logged %s", ui.IconDone, res.Log.Kind)))
			if res.CategoryMarked {
				fmt.Fprintln(out, ui.Muted.Render("New category for today"))
			}
			renderOutcome(out, res.Outcome)
			return nil
		},
	}

	cmd.Flags().StringVar(&input.Activity, "activity", "", "activity type: walk, run, bike, swim, strength, yoga, ...")
	cmd.Flags().IntVar(&input.Minutes, "minutes", 0, "duration in minutes")
	cmd.Flags().Float64Var(&input.Hours, "hours", 0, "hours slept")
	cmd.Flags().Float64Var(&input.Weight, "weight", 0, "body weight in kg")
	cmd.Flags().IntVar(&input.Mood, "mood", 0, "mood score from 1 to 10")
	cmd.Flags().StringVar(&input.Notes, "notes", "", "free text notes")

	return cmd
}
