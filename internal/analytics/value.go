// Package analytics evaluates logged values against parameter goals and folds
// the results into streaks and weekly aggregates.
//
// Every function in this package is pure: callers pass calendar-day keys that
// are already resolved in the user's timezone, and inputs are never mutated.
package analytics

import (
	"math"
	"strconv"
	"strings"

	"github.com/julianstephens/progresio/internal/constants"
)

// Kind tags which field of a Value is meaningful.
type Kind int

const (
	// KindInvalid marks text that could not be parsed for the declared type.
	KindInvalid Kind = iota
	KindNumber
	KindBool
	KindText
)

func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindBool:
		return "boolean"
	case KindText:
		return "string"
	default:
		return "invalid"
	}
}

// Value is a stored text value parsed once according to its parameter type.
type Value struct {
	Kind   Kind
	Number float64
	Bool   bool
	Text   string
}

// Valid reports whether the raw text parsed for its type.
func (v Value) Valid() bool {
	return v.Kind != KindInvalid
}

// ParseValue interprets raw under the given parameter type. It never fails;
// unparseable input yields a Value of KindInvalid.
func ParseValue(typ constants.ParameterType, raw string) Value {
	switch typ {
	case constants.ParameterNumber:
		f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return Value{}
		}
		return Value{Kind: KindNumber, Number: f}
	case constants.ParameterBoolean:
		switch strings.ToLower(strings.TrimSpace(raw)) {
		case "yes", "true":
			return Value{Kind: KindBool, Bool: true}
		case "no", "false":
			return Value{Kind: KindBool, Bool: false}
		}
		return Value{}
	case constants.ParameterString:
		return Value{Kind: KindText, Text: raw}
	}
	return Value{}
}
