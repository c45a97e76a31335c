package parameters

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/progresio/internal/analytics"
	"github.com/julianstephens/progresio/internal/cli"
	"github.com/julianstephens/progresio/internal/constants"
	"github.com/julianstephens/progresio/internal/models"
	"github.com/julianstephens/progresio/internal/storage"
)

type ParameterCmd struct {
	Add     ParameterAddCmd     `cmd:"" help:"Add a new parameter."`
	List    ParameterListCmd    `cmd:"" help:"List parameters."`
	Show    ParameterShowCmd    `cmd:"" help:"Show a parameter and its streak."`
	Edit    ParameterEditCmd    `cmd:"" help:"Edit a parameter."`
	Delete  ParameterDeleteCmd  `cmd:"" help:"Delete a parameter (soft delete)."`
	Restore ParameterRestoreCmd `cmd:"" help:"Restore a deleted parameter."`
}

type ParameterAddCmd struct {
	Name        string `arg:"" optional:"" help:"Parameter name."`
	Type        string `short:"t" help:"Value type (number|boolean|string)." enum:"number,boolean,string" default:"number"`
	Op          string `short:"o" help:"Goal operator (>=, <=, =, >, <). Ignored for booleans." default:">="`
	Goal        string `short:"g" help:"Goal value, e.g. 8 or Yes."`
	Interactive bool   `short:"i" help:"Fill in the parameter with a form."`
}

func (c *ParameterAddCmd) Run(ctx *cli.Context) error {
	if c.Interactive || c.Name == "" {
		if err := c.prompt(); err != nil {
			return err
		}
	}
	if c.Goal == "" {
		return errors.New("a goal value is required (--goal)")
	}

	p, err := ctx.Tracker.AddParameter(c.Name, constants.ParameterType(c.Type), constants.GoalOperator(c.Op), c.Goal)
	if err != nil {
		return err
	}

	ctx.Printf("Added parameter: %s (%s, goal %s)\n", p.Name, p.Type, p.Describe())
	return nil
}

func (c *ParameterAddCmd) prompt() error {
	typ := constants.ParameterType(c.Type)
	op := constants.GoalOperator(c.Op)

	typeOptions := make([]huh.Option[constants.ParameterType], 0, len(constants.ParameterTypes))
	for _, t := range constants.ParameterTypes {
		typeOptions = append(typeOptions, huh.NewOption(string(t), t))
	}
	opOptions := make([]huh.Option[constants.GoalOperator], 0, len(constants.GoalOperators))
	for _, o := range constants.GoalOperators {
		opOptions = append(opOptions, huh.NewOption(string(o), o))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Value(&c.Name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("name is required")
					}
					return nil
				}),
			huh.NewSelect[constants.ParameterType]().
				Title("Type").
				Options(typeOptions...).
				Value(&typ),
		),
		huh.NewGroup(
			huh.NewSelect[constants.GoalOperator]().
				Title("Operator").
				Description("Booleans always compare for equality").
				Options(opOptions...).
				Value(&op),
			huh.NewInput().
				Title("Goal").
				Value(&c.Goal).
				Validate(func(s string) error {
					if !analytics.ParseValue(typ, s).Valid() {
						return fmt.Errorf("not a valid %s", typ)
					}
					return nil
				}),
		),
	).WithTheme(huh.ThemeDracula())

	if err := form.Run(); err != nil {
		return err
	}
	c.Type = string(typ)
	c.Op = string(op)
	return nil
}

type ParameterListCmd struct {
	Deleted bool `help:"Include deleted parameters."`
}

func (c *ParameterListCmd) Run(ctx *cli.Context) error {
	params, err := ctx.Store.GetAllParameters(c.Deleted)
	if err != nil {
		return err
	}

	if len(params) == 0 {
		ctx.Println("No parameters found.")
		return nil
	}

	for _, p := range params {
		status := ""
		if p.DeletedAt != nil {
			status = " [DELETED]"
		}
		ctx.Printf("%s (%s, goal %s)%s\n", p.Name, p.Type, p.Describe(), status)
	}
	return nil
}

type ParameterShowCmd struct {
	Name string `arg:"" help:"Parameter name."`
	JSON bool   `help:"Output as JSON."`
}

func (c *ParameterShowCmd) Run(ctx *cli.Context) error {
	p, err := ctx.Tracker.Parameter(c.Name)
	if err != nil {
		return err
	}
	stats, err := ctx.Tracker.Stats(p)
	if err != nil {
		return err
	}
	count, err := ctx.Store.CountEntries(p.ID)
	if err != nil {
		return err
	}

	if c.JSON {
		return ctx.PrintJSON(struct {
			Parameter models.Parameter       `json:"parameter"`
			Entries   int                    `json:"entries"`
			Streak    analytics.StreakResult `json:"streak"`
		}{p, count, stats})
	}

	ctx.Printf("Name:    %s\n", p.Name)
	ctx.Printf("ID:      %s\n", p.ID)
	ctx.Printf("Type:    %s\n", p.Type)
	ctx.Printf("Goal:    %s\n", p.Describe())
	ctx.Printf("Created: %s\n", p.CreatedAt.Local().Format("2006-01-02 15:04"))
	ctx.Printf("Entries: %d\n", count)
	ctx.Printf("Streak:  %s\n", cli.FormatStreak(stats))
	return nil
}

type ParameterEditCmd struct {
	Name    string  `arg:"" help:"Parameter name."`
	NewName *string `name:"name" help:"New name."`
	Type    *string `help:"New value type (number|boolean|string). Rejected once entries exist."`
	Op      *string `help:"New goal operator."`
	Goal    *string `help:"New goal value."`
}

func (c *ParameterEditCmd) Run(ctx *cli.Context) error {
	p, err := ctx.Tracker.Parameter(c.Name)
	if err != nil {
		return err
	}

	updated := false
	if c.NewName != nil {
		p.Name = *c.NewName
		updated = true
	}
	if c.Type != nil {
		p.Type = constants.ParameterType(*c.Type)
		updated = true
	}
	if c.Op != nil {
		p.GoalOperator = constants.GoalOperator(*c.Op)
		updated = true
	}
	if c.Goal != nil {
		p.GoalValue = *c.Goal
		updated = true
	}
	if !updated {
		ctx.Println("No changes specified.")
		return nil
	}

	if err := ctx.Tracker.UpdateParameter(p); err != nil {
		if errors.Is(err, storage.ErrParameterTypeLocked) {
			return fmt.Errorf("cannot change the type of %q: entries already exist", c.Name)
		}
		return err
	}
	ctx.Printf("Updated parameter: %s (%s, goal %s)\n", p.Name, p.Type, p.Describe())
	return nil
}

type ParameterDeleteCmd struct {
	Name string `arg:"" help:"Parameter name."`
}

func (c *ParameterDeleteCmd) Run(ctx *cli.Context) error {
	p, err := ctx.Tracker.Parameter(c.Name)
	if err != nil {
		return err
	}
	if err := ctx.Store.DeleteParameter(p.ID); err != nil {
		return err
	}
	ctx.Printf("Deleted parameter: %s\n", p.Name)
	return nil
}

type ParameterRestoreCmd struct {
	Name string `arg:"" help:"Name of the deleted parameter."`
}

func (c *ParameterRestoreCmd) Run(ctx *cli.Context) error {
	if _, err := ctx.Store.GetParameterByName(c.Name); err == nil {
		return fmt.Errorf("a parameter named %q already exists", c.Name)
	} else if !errors.Is(err, storage.ErrNotFound) {
		return err
	}

	deleted, err := findDeleted(ctx.Store, c.Name)
	if err != nil {
		return err
	}
	if err := ctx.Store.RestoreParameter(deleted.ID); err != nil {
		return err
	}
	ctx.Printf("Restored parameter: %s\n", deleted.Name)
	return nil
}

// findDeleted returns the most recently deleted parameter with the given name.
func findDeleted(store storage.Provider, name string) (models.Parameter, error) {
	all, err := store.GetAllParameters(true)
	if err != nil {
		return models.Parameter{}, err
	}
	var found *models.Parameter
	for i := range all {
		p := &all[i]
		if p.DeletedAt == nil || p.Name != name {
			continue
		}
		if found == nil || p.DeletedAt.After(*found.DeletedAt) {
			found = p
		}
	}
	if found == nil {
		return models.Parameter{}, fmt.Errorf("deleted parameter %q: %w", name, storage.ErrNotFound)
	}
	return *found, nil
}
