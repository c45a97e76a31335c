package parameters

import (
	"bytes"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"

	"github.com/julianstephens/progresio/internal/cli"
	"github.com/julianstephens/progresio/internal/config"
	"github.com/julianstephens/progresio/internal/storage"
	"github.com/julianstephens/progresio/internal/storage/sqlite"
)

func setupTestDB(t *testing.T) (*cli.Context, *bytes.Buffer) {
	t.Helper()
	store := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("failed to close store: %v", err)
		}
	})

	out := &bytes.Buffer{}
	ctx := cli.NewContext(store, config.Default())
	ctx.Out = out
	return ctx, out
}

func addParameter(t *testing.T, ctx *cli.Context, name, typ, op, goal string) {
	t.Helper()
	cmd := &ParameterAddCmd{Name: name, Type: typ, Op: op, Goal: goal}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("add %s failed: %v", name, err)
	}
}

func TestParameterAddCmd(t *testing.T) {
	ctx, out := setupTestDB(t)

	addParameter(t, ctx, "Sleep", "number", ">=", "8")
	if got := out.String(); got != "Added parameter: Sleep (number, goal >= 8)\n" {
		t.Errorf("unexpected output: %q", got)
	}

	p, err := ctx.Store.GetParameterByName("Sleep")
	if err != nil {
		t.Fatalf("parameter not stored: %v", err)
	}
	if p.GoalValue != "8" {
		t.Errorf("expected goal 8, got %q", p.GoalValue)
	}
}

func TestParameterAddCmd_Invalid(t *testing.T) {
	ctx, _ := setupTestDB(t)
	addParameter(t, ctx, "Sleep", "number", ">=", "8")

	tests := []struct {
		name string
		cmd  ParameterAddCmd
	}{
		{"duplicate", ParameterAddCmd{Name: "Sleep", Type: "number", Op: ">=", Goal: "7"}},
		{"non-numeric goal", ParameterAddCmd{Name: "Steps", Type: "number", Op: ">=", Goal: "many"}},
		{"bad boolean goal", ParameterAddCmd{Name: "Gym", Type: "boolean", Op: "=", Goal: "maybe"}},
		{"bad operator", ParameterAddCmd{Name: "Water", Type: "number", Op: "!=", Goal: "2"}},
		{"missing goal", ParameterAddCmd{Name: "Water", Type: "number", Op: ">="}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cmd.Run(ctx); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestParameterListCmd(t *testing.T) {
	ctx, out := setupTestDB(t)

	if err := (&ParameterListCmd{}).Run(ctx); err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if out.String() != "No parameters found.\n" {
		t.Errorf("unexpected output: %q", out.String())
	}

	addParameter(t, ctx, "Sleep", "number", ">=", "8")
	addParameter(t, ctx, "Workout", "boolean", ">", "Yes")
	if err := (&ParameterDeleteCmd{Name: "Sleep"}).Run(ctx); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	out.Reset()
	if err := (&ParameterListCmd{}).Run(ctx); err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if want := "Workout (boolean, goal = Yes)\n"; out.String() != want {
		t.Errorf("expected %q, got %q", want, out.String())
	}

	out.Reset()
	if err := (&ParameterListCmd{Deleted: true}).Run(ctx); err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if !bytes.Contains(out.Bytes(), []byte("Sleep (number, goal >= 8) [DELETED]")) {
		t.Errorf("deleted parameter missing from output: %q", out.String())
	}
}

func TestParameterShowCmd_JSON(t *testing.T) {
	ctx, out := setupTestDB(t)
	addParameter(t, ctx, "Sleep", "number", ">=", "8")
	if _, err := ctx.Tracker.LogEntry("Sleep", "", "9"); err != nil {
		t.Fatalf("log failed: %v", err)
	}

	out.Reset()
	if err := (&ParameterShowCmd{Name: "Sleep", JSON: true}).Run(ctx); err != nil {
		t.Fatalf("show failed: %v", err)
	}

	var got struct {
		Entries int `json:"entries"`
		Streak  struct {
			CurrentStreak  int `json:"current_streak"`
			TotalSuccesses int `json:"total_successes"`
		} `json:"streak"`
	}
	if err := json.Unmarshal(out.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON %q: %v", out.String(), err)
	}
	if got.Entries != 1 || got.Streak.CurrentStreak != 1 || got.Streak.TotalSuccesses != 1 {
		t.Errorf("unexpected show result: %+v", got)
	}
}

func TestParameterEditCmd(t *testing.T) {
	ctx, _ := setupTestDB(t)
	addParameter(t, ctx, "Sleep", "number", ">=", "8")

	newName, goal := "Rest", "7.5"
	if err := (&ParameterEditCmd{Name: "Sleep", NewName: &newName, Goal: &goal}).Run(ctx); err != nil {
		t.Fatalf("edit failed: %v", err)
	}
	p, err := ctx.Store.GetParameterByName("Rest")
	if err != nil {
		t.Fatalf("renamed parameter not found: %v", err)
	}
	if p.GoalValue != "7.5" {
		t.Errorf("expected goal 7.5, got %q", p.GoalValue)
	}

	if _, err := ctx.Tracker.LogEntry("Rest", "", "8"); err != nil {
		t.Fatalf("log failed: %v", err)
	}
	typ := "string"
	err = (&ParameterEditCmd{Name: "Rest", Type: &typ}).Run(ctx)
	if err == nil {
		t.Fatal("expected type change to be rejected once entries exist")
	}
}

func TestParameterDeleteAndRestore(t *testing.T) {
	ctx, _ := setupTestDB(t)
	addParameter(t, ctx, "Sleep", "number", ">=", "8")

	if err := (&ParameterDeleteCmd{Name: "Sleep"}).Run(ctx); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := ctx.Store.GetParameterByName("Sleep"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}

	if err := (&ParameterRestoreCmd{Name: "Sleep"}).Run(ctx); err != nil {
		t.Fatalf("restore failed: %v", err)
	}
	if _, err := ctx.Store.GetParameterByName("Sleep"); err != nil {
		t.Errorf("parameter not restored: %v", err)
	}

	if err := (&ParameterRestoreCmd{Name: "Sleep"}).Run(ctx); err == nil {
		t.Error("restoring over a live parameter should fail")
	}
	if err := (&ParameterRestoreCmd{Name: "Nope"}).Run(ctx); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
