package validator

import (
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"budgetdash/internal/models"
)

func init() {
	Register()
}

type sample struct {
	Color  string                 `binding:"omitempty,hex_color"`
	Month  string                 `binding:"omitempty,month_key"`
	Amount decimal.Decimal        `binding:"required,gt=0"`
	Type   models.CategoryType    `binding:"omitempty,category_type"`
	Tag    *models.TransactionTag `binding:"omitempty,transaction_tag"`
	Period *models.BudgetPeriod   `binding:"omitempty,budget_period"`
}

func valid() sample {
	return sample{Amount: decimal.NewFromInt(1)}
}

func TestRegister_CustomRules(t *testing.T) {
	tag := func(v models.TransactionTag) *models.TransactionTag { return &v }
	period := func(v models.BudgetPeriod) *models.BudgetPeriod { return &v }

	tests := []struct {
		name   string
		mutate func(*sample)
		ok     bool
	}{
		{"baseline", func(*sample) {}, true},
		{"short hex", func(s *sample) { s.Color = "#abc" }, true},
		{"long hex", func(s *sample) { s.Color = "#A1B2C3" }, true},
		{"hex without hash", func(s *sample) { s.Color = "abcdef" }, false},
		{"month key", func(s *sample) { s.Month = "2024-12" }, true},
		{"month 13", func(s *sample) { s.Month = "2024-13" }, false},
		{"month without padding", func(s *sample) { s.Month = "2024-1" }, false},
		{"fractional amount", func(s *sample) { s.Amount = decimal.RequireFromString("0.01") }, true},
		{"zero amount", func(s *sample) { s.Amount = decimal.Zero }, false},
		{"negative amount", func(s *sample) { s.Amount = decimal.NewFromInt(-5) }, false},
		{"both category type", func(s *sample) { s.Type = models.CategoryTypeBoth }, true},
		{"unknown category type", func(s *sample) { s.Type = "transfer" }, false},
		{"to_return tag", func(s *sample) { s.Tag = tag(models.TransactionTagToReturn) }, true},
		{"unknown tag", func(s *sample) { s.Tag = tag("urgent") }, false},
		{"quarterly period", func(s *sample) { s.Period = period(models.BudgetPeriodQuarterly) }, true},
		{"unknown period", func(s *sample) { s.Period = period("fortnightly") }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := valid()
			tt.mutate(&s)
			err := binding.Validator.ValidateStruct(&s)
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}
