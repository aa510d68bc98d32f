// Package finance resolves budget periods into concrete date windows and
// aggregates transactions over them. Nothing in this package performs I/O
// or reads the clock: callers pass the transaction set and the reference
// instant explicitly.
package finance

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	apperrors "budgetdash/internal/errors"
	"budgetdash/internal/models"
)

var monthKeyRegex = regexp.MustCompile(`^(\d{4})-(0[1-9]|1[0-2])$`)

// Window is an inclusive [Start, End] range of instants.
type Window struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Contains reports whether t falls inside the window, bounds included.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// MonthKey identifies a calendar month. Its persisted form is "YYYY-MM".
type MonthKey struct {
	Year  int
	Month time.Month
}

// ParseMonthKey parses a "YYYY-MM" key.
func ParseMonthKey(s string) (MonthKey, error) {
	m := monthKeyRegex.FindStringSubmatch(s)
	if m == nil {
		return MonthKey{}, apperrors.WithMessage(apperrors.ErrInvalidMonth,
			fmt.Sprintf("invalid month %q: expected YYYY-MM", s))
	}
	year, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	return MonthKey{Year: year, Month: time.Month(month)}, nil
}

// MonthKeyOf returns the month containing t, in t's location.
func MonthKeyOf(t time.Time) MonthKey {
	return MonthKey{Year: t.Year(), Month: t.Month()}
}

// String returns the "YYYY-MM" form.
func (k MonthKey) String() string {
	return fmt.Sprintf("%04d-%02d", k.Year, int(k.Month))
}

// AddMonths shifts the key by n months, rolling over year boundaries.
func (k MonthKey) AddMonths(n int) MonthKey {
	// time.Date normalises out-of-range months, day 1 never overflows.
	t := time.Date(k.Year, k.Month+time.Month(n), 1, 0, 0, 0, 0, time.UTC)
	return MonthKeyOf(t)
}

// Previous returns the month immediately before k.
func (k MonthKey) Previous() MonthKey {
	return k.AddMonths(-1)
}

// Window returns the full calendar month in loc.
func (k MonthKey) Window(loc *time.Location) Window {
	start := time.Date(k.Year, k.Month, 1, 0, 0, 0, 0, loc)
	return Window{Start: start, End: endOfDay(start.AddDate(0, 1, -1))}
}

// Label is the short month name used in trend series, e.g. "Jan".
func (k MonthKey) Label() string {
	return k.Month.String()[:3]
}

// Descriptor is the abstract period of a budget before resolution.
// It is implemented by RangeDescriptor and MonthDescriptor.
type Descriptor interface {
	resolve(ref time.Time) (Window, error)
}

// RangeDescriptor is the period/startDate/endDate budget shape.
type RangeDescriptor struct {
	Period    models.BudgetPeriod
	StartDate time.Time
	EndDate   *time.Time
}

// MonthDescriptor is the "YYYY-MM" budget shape.
type MonthDescriptor struct {
	Month MonthKey
}

// Resolve maps a descriptor to a concrete window relative to ref. All
// calendar arithmetic happens in ref's location.
func Resolve(d Descriptor, ref time.Time) (Window, error) {
	return d.resolve(ref)
}

// DescriptorOf extracts the period descriptor of a stored budget.
func DescriptorOf(b *models.Budget) (Descriptor, error) {
	if b.BudgetMonth != nil {
		key, err := ParseMonthKey(*b.BudgetMonth)
		if err != nil {
			return nil, err
		}
		return MonthDescriptor{Month: key}, nil
	}
	if b.Period == nil {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "budget has neither a month nor a period")
	}
	d := RangeDescriptor{Period: *b.Period, EndDate: b.EndDate}
	if b.StartDate != nil {
		d.StartDate = *b.StartDate
	}
	return d, nil
}

func (d MonthDescriptor) resolve(ref time.Time) (Window, error) {
	return d.Month.Window(ref.Location()), nil
}

func (d RangeDescriptor) resolve(ref time.Time) (Window, error) {
	loc := ref.Location()
	day := startOfDay(ref)

	switch d.Period {
	case models.BudgetPeriodDaily:
		return Window{Start: day, End: endOfDay(day)}, nil
	case models.BudgetPeriodWeekly:
		// Weeks start on Sunday regardless of locale.
		start := day.AddDate(0, 0, -int(day.Weekday()))
		return Window{Start: start, End: endOfDay(start.AddDate(0, 0, 6))}, nil
	case models.BudgetPeriodMonthly:
		return MonthKeyOf(ref).Window(loc), nil
	case models.BudgetPeriodQuarterly:
		firstMonth := time.Month((int(ref.Month())-1)/3*3 + 1)
		start := time.Date(ref.Year(), firstMonth, 1, 0, 0, 0, 0, loc)
		return Window{Start: start, End: endOfDay(start.AddDate(0, 3, -1))}, nil
	case models.BudgetPeriodYearly:
		start := time.Date(ref.Year(), time.January, 1, 0, 0, 0, 0, loc)
		return Window{Start: start, End: endOfDay(time.Date(ref.Year(), time.December, 31, 0, 0, 0, 0, loc))}, nil
	case models.BudgetPeriodCustom:
		if d.StartDate.IsZero() {
			return Window{}, apperrors.WithMessage(apperrors.ErrInvalidInput, "custom budget requires a start date")
		}
		w := Window{Start: startOfDay(d.StartDate.In(loc)), End: ref}
		if d.EndDate != nil {
			w.End = endOfDay(d.EndDate.In(loc))
		}
		return w, nil
	}
	return Window{}, apperrors.WithMessage(apperrors.ErrInvalidInput,
		fmt.Sprintf("unsupported budget period %q", d.Period))
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 999999999, t.Location())
}
