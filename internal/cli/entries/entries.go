package entries

import (
	"errors"
	"fmt"

	"github.com/julianstephens/progresio/internal/analytics"
	"github.com/julianstephens/progresio/internal/cli"
	"github.com/julianstephens/progresio/internal/tracker"
)

type EntryCmd struct {
	Log    EntryLogCmd    `cmd:"" help:"Log a value for a parameter."`
	Bulk   EntryBulkCmd   `cmd:"" help:"Log several parameters for one day."`
	List   EntryListCmd   `cmd:"" help:"Show recent entries for a parameter."`
	Edit   EntryEditCmd   `cmd:"" help:"Change the value of an entry."`
	Delete EntryDeleteCmd `cmd:"" help:"Delete an entry."`
}

type EntryLogCmd struct {
	Name  string `arg:"" help:"Parameter name."`
	Value string `arg:"" help:"Value to log."`
	Date  string `short:"d" help:"Date in YYYY-MM-DD format, 'today' or 'yesterday' (default: today)." default:""`
}

func (c *EntryLogCmd) Run(ctx *cli.Context) error {
	e, err := ctx.Tracker.LogEntry(c.Name, c.Date, c.Value)
	if err != nil {
		return err
	}
	p, err := ctx.Tracker.Parameter(c.Name)
	if err != nil {
		return err
	}

	ok := analytics.TargetFor(p).Met(e.Value)
	ctx.Printf("Logged %s = %s for %s %s\n", p.Name, e.Value, e.Day, cli.Mark(ok))
	return nil
}

type EntryBulkCmd struct {
	Values []string `arg:"" help:"NAME=VALUE pairs."`
	Date   string   `short:"d" help:"Date in YYYY-MM-DD format (default: today)." default:""`
}

func (c *EntryBulkCmd) Run(ctx *cli.Context) error {
	if len(c.Values) == 0 {
		return errors.New("at least one NAME=VALUE pair is required")
	}
	assignments := make([]tracker.Assignment, 0, len(c.Values))
	for _, v := range c.Values {
		a, err := tracker.ParseAssignment(v)
		if err != nil {
			return err
		}
		assignments = append(assignments, a)
	}

	saved, err := ctx.Tracker.LogBulk(c.Date, assignments)
	if err != nil {
		if len(saved) > 0 {
			ctx.Printf("Logged %d of %d values before the error.\n", len(saved), len(assignments))
		}
		return err
	}

	for i, e := range saved {
		ctx.Printf("Logged %s = %s for %s\n", assignments[i].Name, e.Value, e.Day)
	}
	return nil
}

type EntryListCmd struct {
	Name string `arg:"" help:"Parameter name."`
	Days int    `help:"Number of days to show." default:"14"`
	JSON bool   `help:"Output as JSON."`
}

func (c *EntryListCmd) Run(ctx *cli.Context) error {
	p, rows, err := ctx.Tracker.History(c.Name, c.Days)
	if err != nil {
		return err
	}
	if c.JSON {
		return ctx.PrintJSON(rows)
	}

	if len(rows) == 0 {
		ctx.Printf("No entries for %s in the last %d days.\n", p.Name, c.Days)
		return nil
	}

	ctx.Printf("%s (goal %s):\n", p.Name, p.Describe())
	for _, r := range rows {
		ctx.Printf("  %s  %s  %-12s %s\n", cli.Mark(r.Success), r.Entry.Day, r.Entry.Value, r.Entry.ID)
	}
	return nil
}

type EntryEditCmd struct {
	ID    string `arg:"" help:"Entry ID."`
	Value string `arg:"" help:"New value."`
}

func (c *EntryEditCmd) Run(ctx *cli.Context) error {
	e, err := ctx.Tracker.UpdateEntryValue(c.ID, c.Value)
	if err != nil {
		return err
	}
	ctx.Printf("Updated entry %s for %s: %s\n", e.ID, e.Day, e.Value)
	return nil
}

type EntryDeleteCmd struct {
	ID string `arg:"" help:"Entry ID."`
}

func (c *EntryDeleteCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.DeleteEntry(c.ID); err != nil {
		return fmt.Errorf("failed to delete entry: %w", err)
	}
	ctx.Printf("Deleted entry %s\n", c.ID)
	return nil
}
