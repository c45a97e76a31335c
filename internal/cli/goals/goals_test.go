package goals

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/progresio/internal/cli"
	"github.com/julianstephens/progresio/internal/config"
	"github.com/julianstephens/progresio/internal/constants"
	"github.com/julianstephens/progresio/internal/storage"
	"github.com/julianstephens/progresio/internal/storage/sqlite"
)

func setupTestDB(t *testing.T) (*cli.Context, *bytes.Buffer) {
	t.Helper()
	store := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, store.Init())
	t.Cleanup(func() { store.Close() })

	out := &bytes.Buffer{}
	ctx := cli.NewContext(store, config.Default())
	ctx.Out = out
	return ctx, out
}

func TestGoalLifecycle(t *testing.T) {
	ctx, out := setupTestDB(t)

	require.NoError(t, (&GoalAddCmd{Title: "Run 10k", Deadline: "2026-03-01", Description: "spring race"}).Run(ctx))
	require.NoError(t, (&GoalAddCmd{Title: "Read a book", Deadline: "2026-02-01"}).Run(ctx))

	goals, err := ctx.Store.GetAllGoals()
	require.NoError(t, err)
	require.Len(t, goals, 2)
	book, race := goals[0], goals[1]
	assert.Equal(t, "Read a book", book.Title)
	assert.Equal(t, "spring race", race.Description)

	out.Reset()
	require.NoError(t, (&GoalCompleteCmd{IDs: []string{book.ID}}).Run(ctx))
	assert.Equal(t, "Completed goal: Read a book\n", out.String())

	out.Reset()
	require.NoError(t, (&GoalUpcomingCmd{}).Run(ctx))
	assert.Contains(t, out.String(), "Run 10k")
	assert.NotContains(t, out.String(), "Read a book")

	out.Reset()
	require.NoError(t, (&GoalListCmd{}).Run(ctx))
	assert.Contains(t, out.String(), "[x] 2026-02-01  Read a book")
	assert.Contains(t, out.String(), "[ ] 2026-03-01  Run 10k")

	require.NoError(t, (&GoalResetCmd{ID: book.ID}).Run(ctx))
	g, err := ctx.Store.GetGoal(book.ID)
	require.NoError(t, err)
	assert.Equal(t, constants.GoalActive, g.Status)
	assert.Nil(t, g.FinishedAt)

	require.NoError(t, (&GoalDeleteCmd{ID: race.ID}).Run(ctx))
	_, err = ctx.Store.GetGoal(race.ID)
	assert.True(t, errors.Is(err, storage.ErrNotFound))
}

func TestGoalAddCmd_Invalid(t *testing.T) {
	ctx, _ := setupTestDB(t)

	assert.Error(t, (&GoalAddCmd{Title: "x", Deadline: "next week"}).Run(ctx))
	assert.Error(t, (&GoalAddCmd{Title: " ", Deadline: "2026-02-01"}).Run(ctx))
}

func TestGoalCompleteCmd_PartialFailure(t *testing.T) {
	ctx, out := setupTestDB(t)
	require.NoError(t, (&GoalAddCmd{Title: "Taxes", Deadline: "2026-04-15"}).Run(ctx))
	goals, err := ctx.Store.GetAllGoals()
	require.NoError(t, err)

	out.Reset()
	err = (&GoalCompleteCmd{IDs: []string{"missing", goals[0].ID}}).Run(ctx)
	assert.ErrorIs(t, err, storage.ErrNotFound)
	assert.True(t, strings.HasPrefix(out.String(), "Completed goal: Taxes"))
}

func TestGoalListCmd_Empty(t *testing.T) {
	ctx, out := setupTestDB(t)
	require.NoError(t, (&GoalListCmd{}).Run(ctx))
	assert.Equal(t, "No goals found.\n", out.String())
}
