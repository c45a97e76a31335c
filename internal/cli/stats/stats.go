package stats

import (
	"context"

	"github.com/julianstephens/progresio/internal/analytics"
	"github.com/julianstephens/progresio/internal/cli"
	"github.com/julianstephens/progresio/internal/tracker"
)

type StatsCmd struct {
	Name string `arg:"" optional:"" help:"Only show this parameter."`
	JSON bool   `help:"Output as JSON."`
}

type parameterStats struct {
	Name   string                 `json:"name"`
	Target string                 `json:"target"`
	Streak analytics.StreakResult `json:"streak"`
}

func (c *StatsCmd) Run(ctx *cli.Context) error {
	var rows []parameterStats
	if c.Name != "" {
		p, err := ctx.Tracker.Parameter(c.Name)
		if err != nil {
			return err
		}
		res, err := ctx.Tracker.Stats(p)
		if err != nil {
			return err
		}
		rows = append(rows, parameterStats{Name: p.Name, Target: p.Describe(), Streak: res})
	} else {
		ov, err := ctx.Tracker.Overview(context.Background())
		if err != nil {
			return err
		}
		for _, st := range ov.Parameters {
			rows = append(rows, parameterStats{Name: st.Parameter.Name, Target: st.Target, Streak: st.Streak})
		}
	}

	if c.JSON {
		if rows == nil {
			rows = []parameterStats{}
		}
		return ctx.PrintJSON(rows)
	}
	if len(rows) == 0 {
		ctx.Println("No parameters found.")
		return nil
	}
	for _, r := range rows {
		ctx.Printf("%s (goal %s)\n  %s\n", r.Name, r.Target, cli.FormatStreak(r.Streak))
	}
	return nil
}

type WeekCmd struct {
	JSON bool `help:"Output as JSON."`
}

func (c *WeekCmd) Run(ctx *cli.Context) error {
	ov, err := ctx.Tracker.Overview(context.Background())
	if err != nil {
		return err
	}
	if c.JSON {
		return ctx.PrintJSON(weekReport(ov))
	}

	ctx.Printf("Week %s to %s (today %s)\n\n", ov.Week.Start, ov.Week.End, ov.Today)
	ctx.Printf("Parameters completed: %s\n", cli.FormatPercentage(ov.WeeklyPercentage))
	ctx.Printf("Goals finished:       %d/%d\n", ov.Goals.Finished, ov.Goals.Total)
	if len(ov.Parameters) > 0 {
		ctx.Println()
		for _, st := range ov.Parameters {
			today := "-"
			if st.TodaySuccess != nil {
				today = cli.Mark(*st.TodaySuccess)
			}
			ctx.Printf("  %s %s (streak %d)\n", today, st.Parameter.Name, st.Streak.CurrentStreak)
		}
	}
	return nil
}

type report struct {
	Today            string                   `json:"today"`
	Week             analytics.Week           `json:"week"`
	WeeklyPercentage *float64                 `json:"weekly_percentage"`
	Goals            analytics.GoalCompletion `json:"goals"`
}

func weekReport(ov tracker.Overview) report {
	return report{
		Today:            ov.Today,
		Week:             ov.Week,
		WeeklyPercentage: ov.WeeklyPercentage,
		Goals:            ov.Goals,
	}
}
