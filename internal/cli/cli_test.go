package cli

import (
	"bytes"
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/kanso-quest/internal/adapters/repository"
	"github.com/comitanigiacomo/kanso-quest/internal/catalog"
	"github.com/comitanigiacomo/kanso-quest/internal/core/clock"
	"github.com/comitanigiacomo/kanso-quest/internal/core/domain"
	"github.com/comitanigiacomo/kanso-quest/internal/core/services"
)

type cliFixture struct {
	store *repository.InMemorySnapshotRepository
	clock *clock.Fake
	open  Opener
}

func newCLIFixture(t *testing.T) *cliFixture {
	t.Helper()

	cat, err := catalog.Default()
	require.NoError(t, err)

	f := &cliFixture{
		store: repository.NewInMemorySnapshotRepository(),
		clock: clock.NewFake(time.Date(2024, 3, 13, 9, 0, 0, 0, time.UTC)),
	}
	f.open = func(ctx context.Context) (*services.GameService, func(), error) {
		svc := services.NewGameService(services.GameDependencies{
			Store:   f.store,
			Catalog: cat,
			Config:  domain.DefaultGameConfig(),
			Clock:   f.clock,
			Rand:    rand.New(rand.NewSource(3)),
		})
		return svc, func() {}, nil
	}
	return f
}

func (f *cliFixture) run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := NewRootCmd(f.open)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func (f *cliFixture) state(t *testing.T) *services.PlayerState {
	t.Helper()
	svc, _, _ := f.open(context.Background())
	state, err := svc.State(context.Background(), LocalPlayerID)
	require.NoError(t, err)
	return state
}

func TestStatusCmd(t *testing.T) {
	t.Run("Success: First run creates the default profile", func(t *testing.T) {
		f := newCLIFixture(t)

		out, err := f.run(t, "status")

		require.NoError(t, err)
		assert.Contains(t, out, domain.DefaultPlayerName)
		assert.Contains(t, out, "Level")
		assert.Contains(t, out, "nutrition")
		assert.Contains(t, out, "0/100")
	})

	t.Run("Success: Name flag is used for a new profile", func(t *testing.T) {
		f := newCLIFixture(t)

		out, err := f.run(t, "status", "--name", "Aria")

		require.NoError(t, err)
		assert.Contains(t, out, "Aria")
	})
}

func TestQuestCmds(t *testing.T) {
	f := newCLIFixture(t)

	out, err := f.run(t, "quests")
	require.NoError(t, err)
	assert.Contains(t, out, "Quests for 2024-03-13")

	quest := f.state(t).Quests[0]
	assert.Contains(t, out, quest.ID)

	out, err = f.run(t, "complete", quest.ID)
	require.NoError(t, err)
	assert.Contains(t, out, "Completed: "+quest.Title)
	assert.Contains(t, out, "XP")

	_, err = f.run(t, "complete", quest.ID)
	require.Error(t, err)
	assert.Equal(t, services.ReasonQuestAlreadyCompleted, domain.ReasonOf(err))

	_, err = f.run(t, "complete")
	assert.EqualError(t, err, "accepts 1 arg(s), received 0")

	byTemplate := f.state(t).Quests[1]
	out, err = f.run(t, "complete", byTemplate.TemplateID)
	require.NoError(t, err)
	assert.Contains(t, out, "Completed: "+byTemplate.Title)

	byPrefix := f.state(t).Quests[2]
	out, err = f.run(t, "complete", byPrefix.ID[:len(byPrefix.TemplateID)+5])
	require.NoError(t, err)
	assert.Contains(t, out, "Completed: "+byPrefix.Title)

	out, err = f.run(t, "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "Quest Stats")

	out, err = f.run(t, "challenge")
	require.NoError(t, err)
	assert.Contains(t, out, "Progress")
}

func TestResolveQuestID(t *testing.T) {
	quests := []*domain.Quest{
		{ID: "n_water_1_aaaa1111", TemplateID: "n_water_1"},
		{ID: "n_water_10_aaaa2222", TemplateID: "n_water_10"},
		{ID: "e_walk_1_bbbb3333", TemplateID: "e_walk_1"},
	}

	tests := []struct {
		name    string
		arg     string
		want    string
		wantErr string
	}{
		{name: "Success: Exact id", arg: "e_walk_1_bbbb3333", want: "e_walk_1_bbbb3333"},
		{name: "Success: Template id", arg: "n_water_1", want: "n_water_1_aaaa1111"},
		{name: "Success: Unique prefix", arg: "e_walk", want: "e_walk_1_bbbb3333"},
		{name: "Edge: Unknown id passes through", arg: "x_missing", want: "x_missing"},
		{name: "Fail: Ambiguous prefix", arg: "n_water", wantErr: `quest id "n_water" is ambiguous: n_water_1_aaaa1111, n_water_10_aaaa2222`},
		{name: "Fail: Blank id", arg: "  ", wantErr: "quest id is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolveQuestID(quests, tt.arg)
			if tt.wantErr != "" {
				assert.EqualError(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLogCmd(t *testing.T) {
	t.Run("Success: Activity with flags", func(t *testing.T) {
		f := newCLIFixture(t)

		out, err := f.run(t, "log", "activity", "--activity", "run", "--minutes", "30")

		require.NoError(t, err)
		assert.Contains(t, out, "Logged activity")
		assert.Contains(t, out, "+15 XP")
		assert.Equal(t, 30, f.state(t).Player.Stats.MinutesActive)
	})

	t.Run("Fail: Unknown habit kind", func(t *testing.T) {
		f := newCLIFixture(t)

		_, err := f.run(t, "log", "nap")

		require.Error(t, err)
		assert.Equal(t, "Unknown habit type", domain.ReasonOf(err))
	})
}

func TestSettingsAndRenameCmds(t *testing.T) {
	f := newCLIFixture(t)

	_, err := f.run(t, "settings", "set", "display.theme", "ocean")
	require.NoError(t, err)

	out, err := f.run(t, "settings")
	require.NoError(t, err)
	assert.Contains(t, out, "ocean")

	_, err = f.run(t, "settings", "set", "display.theme", "neon")
	assert.Error(t, err)

	_, err = f.run(t, "rename", "Sam")
	require.NoError(t, err)
	assert.Equal(t, "Sam", f.state(t).Player.Name)
}

func TestAchievementsCmd(t *testing.T) {
	f := newCLIFixture(t)

	out, err := f.run(t, "achievements", "--all")

	require.NoError(t, err)
	assert.Contains(t, out, "Achievements")
	assert.Contains(t, out, "Unlocked")
}

func TestResetCmd(t *testing.T) {
	f := newCLIFixture(t)
	_, err := f.run(t, "log", "meal")
	require.NoError(t, err)

	_, err = f.run(t, "reset")
	assert.ErrorContains(t, err, "--yes")
	assert.Equal(t, 10, f.state(t).Player.TotalXP)

	out, err := f.run(t, "reset", "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "Progress reset")
	assert.Equal(t, 0, f.state(t).Player.TotalXP)
}
