package system

import (
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/progresio/internal/backup"
	"github.com/julianstephens/progresio/internal/cli"
	"github.com/julianstephens/progresio/internal/keyring"
	"github.com/julianstephens/progresio/internal/models"
	"github.com/julianstephens/progresio/internal/secure"
	"github.com/julianstephens/progresio/internal/utils"
)

type DoctorCmd struct{}

type check struct {
	name string
	run  func(*cli.Context) error
	// needsDB checks are skipped when the database cannot be loaded
	needsDB bool
	// warnOnly failures do not fail the command
	warnOnly bool
	// sqliteOnly checks are skipped for PostgreSQL
	sqliteOnly bool
}

var checks = []check{
	{name: "Schema version", run: checkSchemaVersion, needsDB: true},
	{name: "Settings", run: checkSettings, needsDB: true},
	{name: "Clock/timezone", run: checkClockTimezone, needsDB: true},
	{name: "Entry integrity", run: checkEntryIntegrity, needsDB: true},
	{name: "Backups present", run: checkBackupsPresent, warnOnly: true, sqliteOnly: true},
	{name: "OS keyring", run: checkKeyring, warnOnly: true},
	{name: "Encryption key", run: checkEncryptionKey},
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	ctx.Println("Running diagnostics...")
	ctx.Println()

	hasError := false
	dbReachable := true
	if err := checkDBReachable(ctx); err != nil {
		ctx.Printf("❌ Database reachable: FAIL\n")
		ctx.Printf("   Error: %v\n", err)
		hasError = true
		dbReachable = false
	} else {
		ctx.Printf("✓ Database reachable: OK\n")
	}

	for _, c := range checks {
		if c.sqliteOnly && !ctx.IsSQLite() {
			continue
		}
		if c.needsDB && !dbReachable {
			ctx.Printf("⊘ %s: SKIPPED (database not reachable)\n", c.name)
			continue
		}
		err := c.run(ctx)
		switch {
		case err == nil:
			ctx.Printf("✓ %s: OK\n", c.name)
		case c.warnOnly:
			ctx.Printf("⚠ %s: WARNING\n", c.name)
			ctx.Printf("   %v\n", err)
		default:
			ctx.Printf("❌ %s: FAIL\n", c.name)
			ctx.Printf("   Error: %v\n", err)
			hasError = true
		}
	}

	ctx.Println()
	if hasError {
		ctx.Println("Diagnostics completed with errors.")
		return errors.New("one or more health checks failed")
	}
	ctx.Println("All diagnostics passed!")
	return nil
}

func checkDBReachable(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}
	if _, err := ctx.Store.GetSettings(); err != nil {
		return fmt.Errorf("failed to query database: %w", err)
	}
	return nil
}

func checkSchemaVersion(ctx *cli.Context) error {
	status, err := ctx.Store.SchemaStatus()
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	if status.Current > status.Latest {
		return fmt.Errorf("database schema version (%d) is newer than supported version (%d)", status.Current, status.Latest)
	}
	if n := status.Pending(); n > 0 {
		return fmt.Errorf("%d migration(s) pending, run 'progresio migrate'", n)
	}
	return nil
}

func checkSettings(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return err
	}
	return models.Validate(settings)
}

func checkClockTimezone(ctx *cli.Context) error {
	now := time.Now()
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return err
	}
	if _, err := utils.TodayIn(settings.Timezone); err != nil {
		return err
	}
	return nil
}

// checkEntryIntegrity looks for entries that the engine would skip or
// reject: malformed days, missing parameters and same-day duplicates.
func checkEntryIntegrity(ctx *cli.Context) error {
	params, err := ctx.Store.GetAllParameters(true)
	if err != nil {
		return err
	}
	known := make(map[string]bool, len(params))
	for _, p := range params {
		known[p.ID] = true
	}

	entries, err := ctx.Store.GetEntriesInRange("0000-01-01", "9999-12-31")
	if err != nil {
		return err
	}
	var orphans, badDays, duplicates int
	seen := make(map[[2]string]bool, len(entries))
	for _, e := range entries {
		if !known[e.ParameterID] {
			orphans++
		}
		if !utils.IsDayKey(e.Day) {
			badDays++
		}
		k := [2]string{e.ParameterID, e.Day}
		if seen[k] {
			duplicates++
		}
		seen[k] = true
	}

	var errs []error
	if orphans > 0 {
		errs = append(errs, fmt.Errorf("found %d entries referencing missing parameters", orphans))
	}
	if badDays > 0 {
		errs = append(errs, fmt.Errorf("found %d entries with invalid date format", badDays))
	}
	if duplicates > 0 {
		errs = append(errs, fmt.Errorf("found %d duplicate parameter+day entries", duplicates))
	}
	return errors.Join(errs...)
}

func checkBackupsPresent(ctx *cli.Context) error {
	backups, err := backup.NewManager(ctx.Store.GetConfigPath()).List()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		return errors.New("no backups found - consider creating one with 'progresio backup create'")
	}
	return nil
}

func checkKeyring(ctx *cli.Context) error {
	if !keyring.IsAvailable() {
		return keyring.ErrKeyringUnavailable
	}
	return nil
}

func checkEncryptionKey(ctx *cli.Context) error {
	if !ctx.Config.EncryptFields {
		return nil
	}
	if _, err := secure.LoadKey(ctx.Config.EncryptionKey, false); err != nil {
		return fmt.Errorf("field encryption is enabled but no usable key was found: %w", err)
	}
	return nil
}
