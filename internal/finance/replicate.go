package finance

import (
	"fmt"

	apperrors "budgetdash/internal/errors"
	"budgetdash/internal/models"
)

// ReplicationSource returns the month budgets are copied from when
// replicating into target: always the month immediately before it.
func ReplicationSource(target MonthKey) MonthKey {
	return target.Previous()
}

// PlanReplication builds the rows that copy source into target. It fails
// with NotFound when source is empty and with Conflict when target already
// holds any budget, so a month is never partially overwritten.
func PlanReplication(source, existing []models.Budget, target MonthKey) ([]models.Budget, error) {
	if len(source) == 0 {
		return nil, apperrors.WithMessage(apperrors.ErrNoBudgetsToReplicate,
			fmt.Sprintf("no budgets to replicate from %s", ReplicationSource(target)))
	}
	if len(existing) > 0 {
		return nil, apperrors.WithMessage(apperrors.ErrBudgetMonthNotEmpty,
			fmt.Sprintf("%d budget(s) already exist for %s", len(existing), target))
	}

	rows := make([]models.Budget, 0, len(source))
	for i := range source {
		month := target.String()
		rows = append(rows, models.Budget{
			Amount:      source[i].Amount,
			CategoryID:  source[i].CategoryID,
			BudgetMonth: &month,
		})
	}
	return rows, nil
}
