package finance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "budgetdash/internal/errors"
	"budgetdash/internal/models"
)

func TestReplicationSource(t *testing.T) {
	assert.Equal(t, "2024-05", ReplicationSource(MonthKey{2024, time.June}).String())
	assert.Equal(t, "2023-12", ReplicationSource(MonthKey{2024, time.January}).String())
}

func TestPlanReplication(t *testing.T) {
	source := []models.Budget{
		monthBudget(food, "2024-05", "200"),
		monthBudget(rent, "2024-05", "50"),
	}

	rows, err := PlanReplication(source, nil, MonthKey{2024, time.June})
	require.NoError(t, err)
	require.Len(t, rows, 2)

	for i, row := range rows {
		assert.Empty(t, row.ID)
		assert.Equal(t, source[i].CategoryID, row.CategoryID)
		assert.True(t, source[i].Amount.Equal(row.Amount))
		require.NotNil(t, row.BudgetMonth)
		assert.Equal(t, "2024-06", *row.BudgetMonth)
	}
	// Source rows are never mutated.
	assert.Equal(t, "2024-05", *source[0].BudgetMonth)
}

func TestPlanReplication_EmptySource(t *testing.T) {
	rows, err := PlanReplication(nil, nil, MonthKey{2024, time.June})
	assert.Nil(t, rows)
	assert.ErrorIs(t, err, apperrors.ErrNoBudgetsToReplicate)
}

func TestPlanReplication_TargetNotEmpty(t *testing.T) {
	source := []models.Budget{monthBudget(food, "2024-05", "200")}
	existing := []models.Budget{monthBudget(rent, "2024-06", "75")}

	rows, err := PlanReplication(source, existing, MonthKey{2024, time.June})
	assert.Nil(t, rows)
	assert.ErrorIs(t, err, apperrors.ErrBudgetMonthNotEmpty)
}
