package settings

import (
	"fmt"
	"strings"

	"github.com/julianstephens/progresio/internal/cli"
	"github.com/julianstephens/progresio/internal/models"
)

type SettingsCmd struct {
	List bool `help:"List current settings."`

	Timezone      *string `help:"IANA timezone used to decide which day it is (or 'Local')."`
	WeekStart     *string `help:"First day of the reporting week, e.g. monday."`
	UpcomingLimit *int    `help:"How many goals 'goal upcoming' shows."`
}

func (c *SettingsCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	if c.List {
		ctx.Println("Current Settings:")
		ctx.Printf("  Timezone:       %s\n", settings.Timezone)
		ctx.Printf("  Week Start:     %s\n", settings.WeekStart)
		ctx.Printf("  Upcoming Limit: %d\n", settings.UpcomingLimit)
		return nil
	}

	updated := false
	if c.Timezone != nil {
		settings.Timezone = strings.TrimSpace(*c.Timezone)
		updated = true
	}
	if c.WeekStart != nil {
		settings.WeekStart = strings.ToLower(strings.TrimSpace(*c.WeekStart))
		updated = true
	}
	if c.UpcomingLimit != nil {
		settings.UpcomingLimit = *c.UpcomingLimit
		updated = true
	}

	if !updated {
		ctx.Println("No changes specified. Use --list to view settings or flags to update them.")
		return nil
	}

	if err := models.Validate(settings); err != nil {
		return err
	}
	if err := ctx.Store.SaveSettings(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	ctx.Println("Settings updated successfully.")
	return nil
}
