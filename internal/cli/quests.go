package cli

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/comitanigiacomo/kanso-quest/internal/core/domain"
	"github.com/comitanigiacomo/kanso-quest/internal/ui"
)

func (a *app) newQuestsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "quests",
		Short: "List today's quests",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, state, cleanup, err := a.session(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconQuest, "Quests for "+state.Date))
			for _, q := range state.Quests {
				renderQuest(out, q)
			}
			return nil
		},
	}
}

func renderQuest(w io.Writer, q *domain.Quest) {
	fmt.Fprintf(w, "%s %s %s %s %s\n",
		ui.Check(q.Completed),
		q.Category.Icon(),
		q.Title,
		ui.DifficultyText(string(q.Difficulty)),
		ui.Gold.Render(fmt.Sprintf("+%d XP", q.XP)),
	)
	fmt.Fprintf(w, "   %s %s\n", ui.Muted.Render(q.Description), ui.Muted.Render("["+q.ID+"]"))
}

func (a *app) newCompleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "complete <quest-id>",
		Short: "Complete one of today's quests",
		Long: "Complete one of today's quests. The argument is the quest id shown by\n" +
			"`hq quests`, a unique prefix of it, or the quest's template id.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, state, cleanup, err := a.session(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			questID, err := resolveQuestID(state.Quests, args[0])
			if err != nil {
				return err
			}

			res, err := svc.CompleteQuest(cmd.Context(), LocalPlayerID, questID)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Good.Render(ui.IconDone+" Completed: "+res.Quest.Title))
			if !res.Experience.Accepted && res.Experience.Reason != "" {
				fmt.Fprintln(out, ui.Warn.Render(ui.IconWarn+" "+res.Experience.Reason))
			}
			renderOutcome(out, res.Outcome)
			return nil
		},
	}
}

// resolveQuestID matches arg against today's quests by exact id, then
// template id, then unique id prefix.
func resolveQuestID(quests []*domain.Quest, arg string) (string, error) {
	arg = strings.TrimSpace(arg)
	if arg == "" {
		return "", errors.New("quest id is required")
	}

	for _, q := range quests {
		if q.ID == arg {
			return q.ID, nil
		}
	}
	for _, q := range quests {
		if q.TemplateID == arg {
			return q.ID, nil
		}
	}

	var matches []string
	for _, q := range quests {
		if strings.HasPrefix(q.ID, arg) {
			matches = append(matches, q.ID)
		}
	}
	switch len(matches) {
	case 0:
		// Let the service report the unknown id.
		return arg, nil
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("quest id %q is ambiguous: %s", arg, strings.Join(matches, ", "))
	}
}

func (a *app) newChallengeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "challenge",
		Short: "Show this week's challenge",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, state, cleanup, err := a.session(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			out := cmd.OutOrStdout()
			ch := state.Challenge
			if ch == nil {
				fmt.Fprintln(out, ui.Muted.Render("No weekly challenge available yet."))
				return nil
			}

			fmt.Fprintln(out, ui.Heading(ui.IconTrophy, ch.Title))
			fmt.Fprintln(out, ui.Muted.Render(ch.Description))
			fmt.Fprintln(out, ui.LabelValue("Progress", ui.ProgressBar(ch.Progress, ch.Target, 14)))
			fmt.Fprintln(out, ui.LabelValue("Reward", fmt.Sprintf("%d XP", ch.XP)))
			fmt.Fprintln(out, ui.LabelValue("Ends", ch.EndAt.Format("Mon 2 Jan")))
			if ch.Completed {
				fmt.Fprintln(out, ui.Good.Render(ui.IconDone+" Completed"))
			}
			return nil
		},
	}
}

func (a *app) newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Quest completion statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, _, cleanup, err := a.session(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			stats, err := svc.QuestStats(cmd.Context(), LocalPlayerID)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconChart, "Quest Stats"))
			fmt.Fprintln(out, ui.LabelValue("Completed", fmt.Sprintf("%d/%d (%.1f%%)", stats.Completed, stats.Total, stats.CompletionRate)))
			fmt.Fprintln(out, ui.LabelValue("XP earned", stats.XPEarned))

			categories := make([]string, 0, len(stats.ByCategory))
			for c := range stats.ByCategory {
				categories = append(categories, string(c))
			}
			sort.Strings(categories)
			for _, c := range categories {
				cs := stats.ByCategory[domain.Category(c)]
				fmt.Fprintf(out, "- %-12s %d/%d\n", c, cs.Completed, cs.Total)
			}
			return nil
		},
	}
}
