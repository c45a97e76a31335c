package tui

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/progresio/internal/constants"
	"github.com/julianstephens/progresio/internal/tracker"
	"github.com/julianstephens/progresio/internal/utils"
)

// NewLogForm creates the form for logging a value for fm.Parameter.
func NewLogForm(fm *LogFormModel) *huh.Form {
	p := fm.Parameter

	var value huh.Field
	if p.Type == constants.ParameterBoolean {
		if fm.Value == "" {
			fm.Value = "Yes"
		}
		value = huh.NewSelect[string]().
			Title(p.Name).
			Description("Goal: " + p.Describe()).
			Options(huh.NewOptions("Yes", "No")...).
			Value(&fm.Value)
	} else {
		value = huh.NewInput().
			Title(p.Name).
			Description(fmt.Sprintf("Goal: %s (%s)", p.Describe(), p.Type)).
			Value(&fm.Value).
			Validate(func(s string) error {
				return tracker.CheckValue(p, s)
			})
	}

	return huh.NewForm(
		huh.NewGroup(
			value,
			huh.NewInput().
				Title("Date").
				Description("YYYY-MM-DD").
				Value(&fm.Date).
				Validate(func(s string) error {
					if !utils.IsDayKey(s) {
						return errors.New("expected YYYY-MM-DD")
					}
					return nil
				}),
		),
	).WithTheme(huh.ThemeDracula())
}
