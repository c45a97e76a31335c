package goals

import (
	"github.com/julianstephens/progresio/internal/cli"
	"github.com/julianstephens/progresio/internal/models"
)

type GoalCmd struct {
	Add      GoalAddCmd      `cmd:"" help:"Add a goal with a deadline."`
	List     GoalListCmd     `cmd:"" help:"List all goals."`
	Upcoming GoalUpcomingCmd `cmd:"" help:"Show the next active goals by deadline."`
	Complete GoalCompleteCmd `cmd:"" help:"Mark goals as completed."`
	Reset    GoalResetCmd    `cmd:"" help:"Mark a goal as active again."`
	Delete   GoalDeleteCmd   `cmd:"" help:"Delete a goal."`
}

type GoalAddCmd struct {
	Title       string `arg:"" help:"Goal title."`
	Deadline    string `required:"" help:"Deadline in YYYY-MM-DD format."`
	Description string `help:"Optional description."`
}

func (c *GoalAddCmd) Run(ctx *cli.Context) error {
	deadline, err := ctx.Tracker.ResolveDay(c.Deadline)
	if err != nil {
		return err
	}
	g, err := ctx.Tracker.AddGoal(c.Title, deadline, c.Description)
	if err != nil {
		return err
	}
	ctx.Printf("Added goal: %s due %s (ID: %s)\n", g.Title, g.Deadline, g.ID)
	return nil
}

type GoalListCmd struct {
	JSON bool `help:"Output as JSON."`
}

func (c *GoalListCmd) Run(ctx *cli.Context) error {
	goals, err := ctx.Store.GetAllGoals()
	if err != nil {
		return err
	}
	if c.JSON {
		return ctx.PrintJSON(goals)
	}
	if len(goals) == 0 {
		ctx.Println("No goals found.")
		return nil
	}
	printGoals(ctx, goals)
	return nil
}

type GoalUpcomingCmd struct{}

func (c *GoalUpcomingCmd) Run(ctx *cli.Context) error {
	goals, err := ctx.Tracker.UpcomingGoals()
	if err != nil {
		return err
	}
	if len(goals) == 0 {
		ctx.Println("No upcoming goals.")
		return nil
	}
	printGoals(ctx, goals)
	return nil
}

func printGoals(ctx *cli.Context, goals []models.Goal) {
	for _, g := range goals {
		status := "[ ]"
		if g.IsCompleted() {
			status = "[x]"
		}
		ctx.Printf("%s %s  %s  %s\n", status, g.Deadline, g.Title, g.ID)
		if g.Description != "" {
			ctx.Printf("      %s\n", g.Description)
		}
	}
}

type GoalCompleteCmd struct {
	IDs []string `arg:"" name:"id" help:"Goal IDs."`
}

func (c *GoalCompleteCmd) Run(ctx *cli.Context) error {
	done, err := ctx.Tracker.CompleteGoals(c.IDs...)
	for _, g := range done {
		ctx.Printf("Completed goal: %s\n", g.Title)
	}
	return err
}

type GoalResetCmd struct {
	ID string `arg:"" help:"Goal ID."`
}

func (c *GoalResetCmd) Run(ctx *cli.Context) error {
	g, err := ctx.Tracker.ResetGoal(c.ID)
	if err != nil {
		return err
	}
	ctx.Printf("Goal is active again: %s\n", g.Title)
	return nil
}

type GoalDeleteCmd struct {
	ID string `arg:"" help:"Goal ID."`
}

func (c *GoalDeleteCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.DeleteGoal(c.ID); err != nil {
		return err
	}
	ctx.Printf("Deleted goal %s\n", c.ID)
	return nil
}
