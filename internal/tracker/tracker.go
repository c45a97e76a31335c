// Package tracker is the application layer between the commands and the
// analytics engine. It resolves "today" and the reporting week in the
// configured timezone, loads records from storage, checks their integrity
// and hands plain data to the engine.
package tracker

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/progresio/internal/analytics"
	"github.com/julianstephens/progresio/internal/constants"
	"github.com/julianstephens/progresio/internal/logger"
	"github.com/julianstephens/progresio/internal/models"
	"github.com/julianstephens/progresio/internal/storage"
	"github.com/julianstephens/progresio/internal/utils"
)

var (
	// ErrOrphanEntry is returned when an entry points at a parameter that does not exist.
	ErrOrphanEntry = errors.New("entry references a missing parameter")
	// ErrDuplicateName is returned when a live parameter already uses the name.
	ErrDuplicateName = errors.New("a parameter with this name already exists")
	// ErrInvalidValue is returned when a logged value does not parse for the parameter type.
	ErrInvalidValue = errors.New("value does not match the parameter type")
)

// Service wraps a storage provider with the day and week rules.
type Service struct {
	store storage.Provider
	now   func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithClock replaces time.Now; tests use it to pin "today".
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// New creates a Service over store.
func New(store storage.Provider, opts ...Option) *Service {
	s := &Service{store: store, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Store exposes the underlying provider for commands that only need plain CRUD.
func (s *Service) Store() storage.Provider {
	return s.store
}

// Today returns today's day key in the configured timezone along with the settings used.
func (s *Service) Today() (string, models.Settings, error) {
	settings, err := s.store.GetSettings()
	if err != nil {
		return "", models.Settings{}, fmt.Errorf("failed to get settings: %w", err)
	}
	today, err := s.todayIn(settings)
	if err != nil {
		return "", models.Settings{}, err
	}
	return today, settings, nil
}

func (s *Service) todayIn(settings models.Settings) (string, error) {
	loc, err := utils.LoadLocation(settings.Timezone)
	if err != nil {
		return "", fmt.Errorf("invalid timezone %q: %w", settings.Timezone, err)
	}
	return s.now().In(loc).Format(constants.DateFormat), nil
}

// CurrentWeek returns the reporting week containing today, and today itself.
func (s *Service) CurrentWeek() (analytics.Week, string, error) {
	today, settings, err := s.Today()
	if err != nil {
		return analytics.Week{}, "", err
	}
	week, err := weekOf(today, settings)
	if err != nil {
		return analytics.Week{}, "", err
	}
	return week, today, nil
}

func weekOf(today string, settings models.Settings) (analytics.Week, error) {
	weekStart, ok := models.ParseWeekday(settings.WeekStart)
	if !ok {
		return analytics.Week{}, fmt.Errorf("invalid week_start setting %q", settings.WeekStart)
	}
	start, end, err := utils.WeekBounds(today, weekStart)
	if err != nil {
		return analytics.Week{}, err
	}
	return analytics.Week{Start: start, End: end}, nil
}

// ResolveDay returns day unchanged when set, otherwise today. Relative
// values "today" and "yesterday" are accepted as well.
func (s *Service) ResolveDay(day string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(day)) {
	case "", "today":
		today, _, err := s.Today()
		return today, err
	case "yesterday":
		today, _, err := s.Today()
		if err != nil {
			return "", err
		}
		return utils.AddDays(today, -1)
	}
	if !utils.IsDayKey(day) {
		return "", fmt.Errorf("invalid date %q, expected YYYY-MM-DD", day)
	}
	return day, nil
}

// AddParameter validates and stores a new parameter.
func (s *Service) AddParameter(name string, typ constants.ParameterType, op constants.GoalOperator, goal string) (models.Parameter, error) {
	p := models.Parameter{
		ID:           uuid.New().String(),
		Name:         strings.TrimSpace(name),
		Type:         typ,
		GoalOperator: op,
		GoalValue:    strings.TrimSpace(goal),
		CreatedAt:    s.now().UTC(),
	}
	if p.Type == constants.ParameterBoolean && p.GoalOperator == "" {
		p.GoalOperator = constants.OperatorEqual
	}
	if err := models.Validate(p); err != nil {
		return models.Parameter{}, err
	}
	if err := s.ensureNameFree(p.Name, ""); err != nil {
		return models.Parameter{}, err
	}
	if err := s.store.AddParameter(p); err != nil {
		return models.Parameter{}, fmt.Errorf("failed to add parameter: %w", err)
	}
	return p, nil
}

// UpdateParameter validates and saves changes to an existing parameter.
func (s *Service) UpdateParameter(p models.Parameter) error {
	p.Name = strings.TrimSpace(p.Name)
	if err := models.Validate(p); err != nil {
		return err
	}
	if err := s.ensureNameFree(p.Name, p.ID); err != nil {
		return err
	}
	return s.store.UpdateParameter(p)
}

// ensureNameFree is enforced here rather than by a unique index because
// encrypted names differ on every write.
func (s *Service) ensureNameFree(name, selfID string) error {
	existing, err := s.store.GetParameterByName(name)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return nil
	case err != nil:
		return fmt.Errorf("failed to check parameter name: %w", err)
	case existing.ID == selfID:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrDuplicateName, name)
	}
}

// Parameter looks up a live parameter by name.
func (s *Service) Parameter(name string) (models.Parameter, error) {
	p, err := s.store.GetParameterByName(strings.TrimSpace(name))
	if err != nil {
		return models.Parameter{}, fmt.Errorf("parameter %q: %w", name, err)
	}
	return p, nil
}

// CheckValue reports whether raw parses under the parameter's type.
func CheckValue(p models.Parameter, raw string) error {
	if p.Type == constants.ParameterString {
		return nil
	}
	if !analytics.ParseValue(p.Type, raw).Valid() {
		return fmt.Errorf("%w: %q is not a valid %s", ErrInvalidValue, raw, p.Type)
	}
	return nil
}

// LogEntry records value for the named parameter on day (empty means today).
// An existing entry for that day is replaced.
func (s *Service) LogEntry(name, day, value string) (models.DataEntry, error) {
	p, err := s.Parameter(name)
	if err != nil {
		return models.DataEntry{}, err
	}
	return s.logFor(p, day, value)
}

func (s *Service) logFor(p models.Parameter, day, value string) (models.DataEntry, error) {
	day, err := s.ResolveDay(day)
	if err != nil {
		return models.DataEntry{}, err
	}
	if err := CheckValue(p, value); err != nil {
		return models.DataEntry{}, err
	}

	now := s.now().UTC()
	entry := models.DataEntry{
		ID:          uuid.New().String(),
		ParameterID: p.ID,
		Day:         day,
		Value:       value,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := models.Validate(entry); err != nil {
		return models.DataEntry{}, err
	}
	if err := s.store.SaveEntry(entry); err != nil {
		return models.DataEntry{}, fmt.Errorf("failed to save entry: %w", err)
	}
	// The upsert keeps the original row id on conflict.
	saved, err := s.store.GetEntryForDay(p.ID, day)
	if err != nil {
		return models.DataEntry{}, err
	}
	return saved, nil
}

// Assignment is one NAME=VALUE pair of a bulk log.
type Assignment struct {
	Name  string
	Value string
}

// ParseAssignment splits "NAME=VALUE". The name may not be empty; the value may.
func ParseAssignment(s string) (Assignment, error) {
	name, value, ok := strings.Cut(s, "=")
	name = strings.TrimSpace(name)
	if !ok || name == "" {
		return Assignment{}, fmt.Errorf("invalid assignment %q, expected NAME=VALUE", s)
	}
	return Assignment{Name: name, Value: strings.TrimSpace(value)}, nil
}

// LogBulk records several parameters for the same day. Every name and value
// is checked before anything is written.
func (s *Service) LogBulk(day string, values []Assignment) ([]models.DataEntry, error) {
	params := make([]models.Parameter, len(values))
	seen := make(map[string]bool, len(values))
	for i, a := range values {
		p, err := s.Parameter(a.Name)
		if err != nil {
			return nil, err
		}
		if seen[p.ID] {
			return nil, fmt.Errorf("parameter %q given more than once", a.Name)
		}
		seen[p.ID] = true
		if err := CheckValue(p, a.Value); err != nil {
			return nil, fmt.Errorf("%s: %w", a.Name, err)
		}
		params[i] = p
	}

	day, err := s.ResolveDay(day)
	if err != nil {
		return nil, err
	}
	saved := make([]models.DataEntry, 0, len(values))
	for i, a := range values {
		e, err := s.logFor(params[i], day, a.Value)
		if err != nil {
			return saved, fmt.Errorf("%s: %w", a.Name, err)
		}
		saved = append(saved, e)
	}
	return saved, nil
}

// UpdateEntryValue replaces the value of an entry by id.
func (s *Service) UpdateEntryValue(id, value string) (models.DataEntry, error) {
	e, err := s.store.GetEntry(id)
	if err != nil {
		return models.DataEntry{}, fmt.Errorf("entry %s: %w", id, err)
	}
	p, err := s.store.GetParameter(e.ParameterID)
	if err != nil {
		return models.DataEntry{}, s.orphan(e, err)
	}
	if err := CheckValue(p, value); err != nil {
		return models.DataEntry{}, err
	}
	e.Value = value
	e.UpdatedAt = s.now().UTC()
	if err := s.store.UpdateEntry(e); err != nil {
		return models.DataEntry{}, err
	}
	return e, nil
}

func (s *Service) orphan(e models.DataEntry, err error) error {
	if errors.Is(err, storage.ErrNotFound) {
		logger.Warn("entry without parameter", "entry", e.ID, "parameter", e.ParameterID)
		return fmt.Errorf("%w: entry %s, parameter %s", ErrOrphanEntry, e.ID, e.ParameterID)
	}
	return err
}

// HistoryRow is an entry with its evaluation.
type HistoryRow struct {
	Entry   models.DataEntry `json:"entry"`
	Success bool             `json:"success"`
}

// History returns the entries of the last days days (including today), newest first.
func (s *Service) History(name string, days int) (models.Parameter, []HistoryRow, error) {
	p, err := s.Parameter(name)
	if err != nil {
		return models.Parameter{}, nil, err
	}
	if days <= 0 {
		days = constants.DefaultHistoryDays
	}
	today, _, err := s.Today()
	if err != nil {
		return models.Parameter{}, nil, err
	}
	from, err := utils.AddDays(today, -(days - 1))
	if err != nil {
		return models.Parameter{}, nil, err
	}
	entries, err := s.store.GetEntriesForParameter(p.ID, from, today)
	if err != nil {
		return models.Parameter{}, nil, err
	}

	target := analytics.TargetFor(p)
	rows := make([]HistoryRow, 0, len(entries))
	for i := len(entries) - 1; i >= 0; i-- {
		rows = append(rows, HistoryRow{Entry: entries[i], Success: target.Met(entries[i].Value)})
	}
	return p, rows, nil
}

// Stats computes the streak summary of a single parameter as of today.
func (s *Service) Stats(p models.Parameter) (analytics.StreakResult, error) {
	today, _, err := s.Today()
	if err != nil {
		return analytics.StreakResult{}, err
	}
	return s.statsAsOf(p, today)
}

func (s *Service) statsAsOf(p models.Parameter, today string) (analytics.StreakResult, error) {
	entries, err := s.store.GetEntriesForParameter(p.ID, "", today)
	if err != nil {
		return analytics.StreakResult{}, fmt.Errorf("failed to load entries for %q: %w", p.Name, err)
	}
	warnUnknownOperator(p)
	return analytics.ComputeStreak(p, entries, today), nil
}

func warnUnknownOperator(p models.Parameter) {
	if p.Type != constants.ParameterBoolean && !analytics.KnownOperator(p.GoalOperator) {
		logger.Warn("unknown goal operator, every entry counts as a failure",
			"parameter", p.ID, "operator", string(p.GoalOperator))
	}
}
