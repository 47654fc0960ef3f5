package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/comitanigiacomo/kanso-quest/internal/ui"
)

func (a *app) newSettingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, state, cleanup, err := a.session(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			s := state.Player.Settings
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading("⚙️", "Settings"))
			fmt.Fprintln(out, ui.LabelValue("display.theme", s.Display.Theme))
			fmt.Fprintln(out, ui.LabelValue("gameplay.difficulty", s.Gameplay.Difficulty))
			fmt.Fprintln(out, ui.LabelValue("gameplay.auto_quests", s.Gameplay.AutoQuests))
			fmt.Fprintln(out, ui.LabelValue("notifications.daily", s.Notifications.Daily))
			fmt.Fprintln(out, ui.LabelValue("privacy.share_progress", s.Privacy.ShareProgress))
			return nil
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:     "set <category.key> <value>",
		Short:   "Change one setting",
		Example: "  hq settings set display.theme ocean",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, _, cleanup, err := a.session(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			res, err := svc.UpdateSetting(cmd.Context(), LocalPlayerID, args[0], args[1])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Good.Render(fmt.Sprintf("%s %s = %s", ui.IconDone, args[0], args[1])))
			renderOutcome(out, res.Outcome)
			return nil
		},
	})

	return cmd
}

func (a *app) newRenameCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rename <name>",
		Short: "Rename your player",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, _, cleanup, err := a.session(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			res, err := svc.Rename(cmd.Context(), LocalPlayerID, args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Good.Render(ui.IconDone+" Renamed to "+args[0]))
			renderOutcome(out, res)
			return nil
		},
	}
}

func (a *app) newResetCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete all progress and start a new profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return errors.New("reset deletes all progress; pass --yes to confirm")
			}

			svc, cleanup, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			state, err := svc.Reset(cmd.Context(), LocalPlayerID)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Warn.Render(fmt.Sprintf("%s Progress reset. Welcome back, %s.", ui.IconSparkle, state.Player.Name)))
			return nil
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "confirm deleting all progress")
	return cmd
}
