// Package cli implements hq, the local single-player HealthQuest command line.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/comitanigiacomo/kanso-quest/internal/core/domain"
	"github.com/comitanigiacomo/kanso-quest/internal/core/services"
	"github.com/comitanigiacomo/kanso-quest/internal/ui"
)

const (
	Version = "0.1.0"

	// LocalPlayerID is the only profile stored in a local database.
	LocalPlayerID = "local"
)

// Opener builds the game service for one command run and a cleanup func.
type Opener func(ctx context.Context) (*services.GameService, func(), error)

type app struct {
	open Opener
	name string
}

func NewRootCmd(open Opener) *cobra.Command {
	a := &app{open: open}

	cmd := &cobra.Command{
		Use:           "hq",
		Short:         "HealthQuest: level up by logging healthy habits",
		Long:          "HealthQuest turns meals, workouts, sleep and mindfulness into quests, streaks, skills and achievements.",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")
	cmd.PersistentFlags().StringVar(&a.name, "name", "", "player name used when creating a new profile")

	cmd.AddCommand(
		a.newStatusCmd(),
		a.newQuestsCmd(),
		a.newCompleteCmd(),
		a.newChallengeCmd(),
		a.newStatsCmd(),
		a.newLogCmd(),
		a.newAchievementsCmd(),
		a.newSettingsCmd(),
		a.newRenameCmd(),
		a.newResetCmd(),
	)

	return cmd
}

// Execute runs hq and exits non-zero on failure.
func Execute(open Opener) {
	if err := NewRootCmd(open).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Bad.Render(ui.IconError+" "+domain.ReasonOf(err)))
		os.Exit(1)
	}
}

// session opens the service and the local profile, printing whatever the
// day and week boundary check caused.
func (a *app) session(cmd *cobra.Command) (*services.GameService, *services.PlayerState, func(), error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	svc, cleanup, err := a.open(ctx)
	if err != nil {
		return nil, nil, nil, err
	}

	state, err := svc.Open(ctx, LocalPlayerID, a.name)
	if err != nil {
		cleanup()
		return nil, nil, nil, err
	}

	renderOutcome(cmd.OutOrStdout(), state.Outcome)
	return svc, state, cleanup, nil
}
