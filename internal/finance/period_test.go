package finance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "budgetdash/internal/errors"
	"budgetdash/internal/models"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func periodPtr(p models.BudgetPeriod) *models.BudgetPeriod { return &p }

func TestParseMonthKey(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		key, err := ParseMonthKey("2024-06")
		require.NoError(t, err)
		assert.Equal(t, MonthKey{Year: 2024, Month: time.June}, key)
		assert.Equal(t, "2024-06", key.String())
	})

	for _, in := range []string{"", "2024-6", "2024-13", "2024-00", "24-06", "2024/06", "2024-06-01", " 2024-06"} {
		t.Run("rejects_"+in, func(t *testing.T) {
			_, err := ParseMonthKey(in)
			require.Error(t, err)
			assert.ErrorIs(t, err, apperrors.ErrInvalidMonth)
		})
	}
}

func TestMonthKey_AddMonths(t *testing.T) {
	tests := []struct {
		from MonthKey
		n    int
		want string
	}{
		{MonthKey{2024, time.January}, -1, "2023-12"},
		{MonthKey{2024, time.December}, 1, "2025-01"},
		{MonthKey{2024, time.March}, -5, "2023-10"},
		{MonthKey{2024, time.June}, 0, "2024-06"},
		{MonthKey{2024, time.February}, 12, "2025-02"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.from.AddMonths(tt.n).String())
	}
	assert.Equal(t, "2023-12", MonthKey{2024, time.January}.Previous().String())
}

func TestMonthKey_Window(t *testing.T) {
	tests := []struct {
		key     string
		lastDay int
	}{
		{"2024-02", 29},
		{"2023-02", 28},
		{"2024-04", 30},
		{"2024-12", 31},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			key, err := ParseMonthKey(tt.key)
			require.NoError(t, err)

			w := key.Window(time.UTC)
			assert.Equal(t, 1, w.Start.Day())
			assert.Equal(t, 0, w.Start.Hour())
			assert.Equal(t, tt.lastDay, w.End.Day())
			assert.Equal(t, key.Month, w.End.Month())
			assert.Equal(t, 23, w.End.Hour())
			assert.Equal(t, 59, w.End.Second())
			assert.Equal(t, 999999999, w.End.Nanosecond())
		})
	}
}

func TestWindow_ContainsBounds(t *testing.T) {
	w := MonthKey{2024, time.March}.Window(time.UTC)

	assert.True(t, w.Contains(w.Start))
	assert.True(t, w.Contains(w.End))
	assert.False(t, w.Contains(w.Start.Add(-time.Nanosecond)))
	assert.False(t, w.Contains(w.End.Add(time.Nanosecond)))
}

func TestResolve_RangeDescriptor(t *testing.T) {
	// Wednesday 2024-05-15 14:30 UTC
	ref := time.Date(2024, time.May, 15, 14, 30, 0, 0, time.UTC)

	tests := []struct {
		name      string
		period    models.BudgetPeriod
		wantStart time.Time
		wantEnd   time.Time
	}{
		{"daily", models.BudgetPeriodDaily, date(2024, time.May, 15), date(2024, time.May, 15)},
		{"weekly_starts_sunday", models.BudgetPeriodWeekly, date(2024, time.May, 12), date(2024, time.May, 18)},
		{"monthly", models.BudgetPeriodMonthly, date(2024, time.May, 1), date(2024, time.May, 31)},
		{"quarterly", models.BudgetPeriodQuarterly, date(2024, time.April, 1), date(2024, time.June, 30)},
		{"yearly", models.BudgetPeriodYearly, date(2024, time.January, 1), date(2024, time.December, 31)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, err := Resolve(RangeDescriptor{Period: tt.period, StartDate: date(2024, time.January, 1)}, ref)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStart, w.Start)
			assert.Equal(t, endOfDay(tt.wantEnd), w.End)
		})
	}
}

func TestResolve_WeeklyOnSunday(t *testing.T) {
	ref := time.Date(2024, time.May, 12, 8, 0, 0, 0, time.UTC) // Sunday
	w, err := Resolve(RangeDescriptor{Period: models.BudgetPeriodWeekly}, ref)
	require.NoError(t, err)
	assert.Equal(t, date(2024, time.May, 12), w.Start)
	assert.Equal(t, endOfDay(date(2024, time.May, 18)), w.End)
}

func TestResolve_Custom(t *testing.T) {
	ref := time.Date(2024, time.May, 15, 14, 30, 0, 0, time.UTC)

	t.Run("open_ended_runs_until_reference", func(t *testing.T) {
		w, err := Resolve(RangeDescriptor{Period: models.BudgetPeriodCustom, StartDate: date(2024, time.March, 10)}, ref)
		require.NoError(t, err)
		assert.Equal(t, date(2024, time.March, 10), w.Start)
		assert.Equal(t, ref, w.End)
	})

	t.Run("closed_range", func(t *testing.T) {
		end := date(2024, time.April, 20)
		w, err := Resolve(RangeDescriptor{Period: models.BudgetPeriodCustom, StartDate: date(2024, time.March, 10), EndDate: &end}, ref)
		require.NoError(t, err)
		assert.Equal(t, date(2024, time.March, 10), w.Start)
		assert.Equal(t, endOfDay(end), w.End)
	})

	t.Run("missing_start", func(t *testing.T) {
		_, err := Resolve(RangeDescriptor{Period: models.BudgetPeriodCustom}, ref)
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	})
}

func TestResolve_UnknownPeriod(t *testing.T) {
	_, err := Resolve(RangeDescriptor{Period: "fortnightly"}, time.Now())
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestResolve_MonthDescriptorIgnoresReferenceDate(t *testing.T) {
	ref := time.Date(2030, time.November, 2, 0, 0, 0, 0, time.UTC)
	w, err := Resolve(MonthDescriptor{Month: MonthKey{2024, time.February}}, ref)
	require.NoError(t, err)
	assert.Equal(t, date(2024, time.February, 1), w.Start)
	assert.Equal(t, endOfDay(date(2024, time.February, 29)), w.End)
}

func TestResolve_UsesReferenceLocation(t *testing.T) {
	loc := time.FixedZone("BRT", -3*60*60)
	ref := time.Date(2024, time.May, 15, 10, 0, 0, 0, loc)

	w, err := Resolve(RangeDescriptor{Period: models.BudgetPeriodMonthly}, ref)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.May, 1, 0, 0, 0, 0, loc), w.Start)
	assert.Equal(t, loc, w.End.Location())
}

func TestDescriptorOf(t *testing.T) {
	t.Run("month_keyed", func(t *testing.T) {
		month := "2024-05"
		d, err := DescriptorOf(&models.Budget{BudgetMonth: &month})
		require.NoError(t, err)
		assert.Equal(t, MonthDescriptor{Month: MonthKey{2024, time.May}}, d)
	})

	t.Run("range_keyed", func(t *testing.T) {
		start := date(2024, time.January, 1)
		d, err := DescriptorOf(&models.Budget{Period: periodPtr(models.BudgetPeriodYearly), StartDate: &start})
		require.NoError(t, err)
		assert.Equal(t, RangeDescriptor{Period: models.BudgetPeriodYearly, StartDate: start}, d)
	})

	t.Run("malformed_month", func(t *testing.T) {
		month := "2024-5"
		_, err := DescriptorOf(&models.Budget{BudgetMonth: &month})
		assert.ErrorIs(t, err, apperrors.ErrInvalidMonth)
	})

	t.Run("no_shape", func(t *testing.T) {
		_, err := DescriptorOf(&models.Budget{})
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	})
}
