package settings

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/julianstephens/progresio/internal/cli"
	"github.com/julianstephens/progresio/internal/config"
	"github.com/julianstephens/progresio/internal/storage/sqlite"
)

func setupTestDB(t *testing.T) (*cli.Context, *bytes.Buffer, func()) {
	store := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}

	out := &bytes.Buffer{}
	ctx := cli.NewContext(store, config.Default())
	ctx.Out = out

	cleanup := func() {
		if err := store.Close(); err != nil {
			t.Errorf("failed to close store: %v", err)
		}
	}
	return ctx, out, cleanup
}

func TestSettingsCmd_List(t *testing.T) {
	ctx, out, cleanup := setupTestDB(t)
	defer cleanup()

	if err := (&SettingsCmd{List: true}).Run(ctx); err != nil {
		t.Fatalf("settings list failed: %v", err)
	}
	for _, want := range []string{"Timezone:       Local", "Week Start:     monday", "Upcoming Limit: 5"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("expected %q in output %q", want, out.String())
		}
	}
}

func TestSettingsCmd_Update(t *testing.T) {
	ctx, _, cleanup := setupTestDB(t)
	defer cleanup()

	tz, start, limit := "Europe/Warsaw", "Sunday", 3
	cmd := &SettingsCmd{Timezone: &tz, WeekStart: &start, UpcomingLimit: &limit}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("settings update failed: %v", err)
	}

	settings, err := ctx.Store.GetSettings()
	if err != nil {
		t.Fatalf("failed to get settings: %v", err)
	}
	if settings.Timezone != "Europe/Warsaw" {
		t.Errorf("expected timezone Europe/Warsaw, got %q", settings.Timezone)
	}
	if settings.WeekStart != "sunday" {
		t.Errorf("expected week start sunday, got %q", settings.WeekStart)
	}
	if settings.UpcomingLimit != 3 {
		t.Errorf("expected upcoming limit 3, got %d", settings.UpcomingLimit)
	}
}

func TestSettingsCmd_Invalid(t *testing.T) {
	ctx, _, cleanup := setupTestDB(t)
	defer cleanup()

	badTZ := "Mars/Olympus"
	badDay := "someday"
	badLimit := 0

	tests := []struct {
		name string
		cmd  SettingsCmd
	}{
		{"timezone", SettingsCmd{Timezone: &badTZ}},
		{"week start", SettingsCmd{WeekStart: &badDay}},
		{"upcoming limit", SettingsCmd{UpcomingLimit: &badLimit}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cmd.Run(ctx); err == nil {
				t.Error("expected a validation error")
			}
		})
	}

	settings, err := ctx.Store.GetSettings()
	if err != nil {
		t.Fatal(err)
	}
	if settings.Timezone != "Local" {
		t.Errorf("invalid update was saved: %+v", settings)
	}
}
