package models

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/julianstephens/progresio/internal/constants"
)

// modelValidate is the validator instance for all records.
// Initialized in init() with the custom rules below.
var modelValidate *validator.Validate

func init() {
	modelValidate = validator.New(validator.WithRequiredStructEnabled())

	_ = modelValidate.RegisterValidation("daykey", validateDayKey)
	_ = modelValidate.RegisterValidation("paramtype", validateParameterType)
	_ = modelValidate.RegisterValidation("goaloperator", validateGoalOperator)
	_ = modelValidate.RegisterValidation("tzname", validateTimezoneName)
	_ = modelValidate.RegisterValidation("weekday", validateWeekdayName)
	modelValidate.RegisterStructValidation(validateParameterGoal, Parameter{})
}

// Validate checks a record against its struct tags and returns a single
// readable error listing every failed field.
func Validate(v any) error {
	err := modelValidate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, describeFieldError(fe))
	}
	record := verrs[0].StructNamespace()
	if i := strings.Index(record, "."); i >= 0 {
		record = record[:i]
	}
	return fmt.Errorf("invalid %s: %s", strings.ToLower(record), strings.Join(msgs, "; "))
}

func describeFieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "daykey":
		return fmt.Sprintf("%s must be a date in YYYY-MM-DD format (got %q)", fe.Field(), fe.Value())
	case "paramtype":
		return fmt.Sprintf("%s must be one of number, boolean, string (got %q)", fe.Field(), fe.Value())
	case "goaloperator":
		return fmt.Sprintf("%s must be one of =, >, <, >=, <= (got %q)", fe.Field(), fe.Value())
	case "tzname":
		return fmt.Sprintf("%s must be an IANA timezone name or Local (got %q)", fe.Field(), fe.Value())
	case "weekday":
		return fmt.Sprintf("%s must be a weekday name (got %q)", fe.Field(), fe.Value())
	case "goalvalue":
		return fmt.Sprintf("%s %q does not match the parameter type", fe.Field(), fe.Value())
	default:
		return fmt.Sprintf("%s failed %s=%s", fe.Field(), fe.Tag(), fe.Param())
	}
}

func validateDayKey(fl validator.FieldLevel) bool {
	_, err := time.Parse(constants.DateFormat, fl.Field().String())
	return err == nil
}

func validateParameterType(fl validator.FieldLevel) bool {
	for _, t := range constants.ParameterTypes {
		if fl.Field().String() == string(t) {
			return true
		}
	}
	return false
}

func validateGoalOperator(fl validator.FieldLevel) bool {
	for _, op := range constants.GoalOperators {
		if fl.Field().String() == string(op) {
			return true
		}
	}
	return false
}

func validateTimezoneName(fl validator.FieldLevel) bool {
	name := fl.Field().String()
	if name == "Local" {
		return true
	}
	_, err := time.LoadLocation(name)
	return err == nil && name != ""
}

func validateWeekdayName(fl validator.FieldLevel) bool {
	_, ok := ParseWeekday(fl.Field().String())
	return ok
}

// validateParameterGoal rejects goal values that can never be satisfied
// by the parameter's declared type.
func validateParameterGoal(sl validator.StructLevel) {
	p := sl.Current().Interface().(Parameter)
	if p.GoalValue == "" {
		return
	}
	switch p.Type {
	case constants.ParameterNumber:
		if _, err := strconv.ParseFloat(strings.TrimSpace(p.GoalValue), 64); err != nil {
			sl.ReportError(p.GoalValue, "GoalValue", "GoalValue", "goalvalue", "")
		}
	case constants.ParameterBoolean:
		switch strings.ToLower(strings.TrimSpace(p.GoalValue)) {
		case "yes", "no", "true", "false":
		default:
			sl.ReportError(p.GoalValue, "GoalValue", "GoalValue", "goalvalue", "")
		}
	}
}

// ParseWeekday parses an English weekday name or three-letter abbreviation.
func ParseWeekday(s string) (time.Weekday, bool) {
	dayMap := map[string]time.Weekday{
		"sun":       time.Sunday,
		"sunday":    time.Sunday,
		"mon":       time.Monday,
		"monday":    time.Monday,
		"tue":       time.Tuesday,
		"tuesday":   time.Tuesday,
		"wed":       time.Wednesday,
		"wednesday": time.Wednesday,
		"thu":       time.Thursday,
		"thursday":  time.Thursday,
		"fri":       time.Friday,
		"friday":    time.Friday,
		"sat":       time.Saturday,
		"saturday":  time.Saturday,
	}
	wd, ok := dayMap[strings.TrimSpace(strings.ToLower(s))]
	return wd, ok
}
