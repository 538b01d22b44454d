package core

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateValidate(t *testing.T) {
	cases := []struct {
		d  Date
		ok bool
	}{
		{NewDate(2025, 1, 1), true},
		{NewDate(2025, 12, 31), true},
		{NewDate(2024, 2, 29), true},
		{Date{Time: time.Time{}}, false}, // zero time
	}
	for i, tc := range cases {
		err := tc.d.Validate()
		if tc.ok {
			assert.NoError(t, err, "case %d", i)
		} else {
			assert.Error(t, err, "case %d", i)
		}
	}
}

func TestTransactionValidate(t *testing.T) {
	good := Transaction{
		Amount:      AmountFromInt(100),
		Type:        Expense,
		Category:    "1",
		Description: "ok",
		Date:        NewDate(2025, 1, 1),
	}
	require.NoError(t, good.Validate())

	long := good
	long.Description = strings.Repeat("x", 500)
	require.NoError(t, long.Validate())

	tests := []struct {
		name   string
		mutate func(*Transaction)
		field  string
		target error
	}{
		{"zero amount", func(tx *Transaction) { tx.Amount = AmountFromInt(0) }, "amount", ErrInvalidAmount},
		{"negative amount", func(tx *Transaction) { tx.Amount = AmountFromInt(-5) }, "amount", ErrInvalidAmount},
		{"bad type", func(tx *Transaction) { tx.Type = "transfer" }, "type", ErrInvalidType},
		{"empty category", func(tx *Transaction) { tx.Category = " " }, "category", ErrEmptyCategory},
		{"empty description", func(tx *Transaction) { tx.Description = "  " }, "description", ErrEmptyDescription},
		{"zero date", func(tx *Transaction) { tx.Date = Date{} }, "date", ErrInvalidDate},
		{"bad payment", func(tx *Transaction) { tx.PaymentMethod = "cheque" }, "paymentMethod", ErrInvalidPaymentMethod},
		{"recurring without interval", func(tx *Transaction) { tx.IsRecurring = true }, "recurringInterval", ErrInvalidInterval},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := good
			tt.mutate(&tx)
			err := tx.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.target))

			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.field, ve.Field)
		})
	}
}

func TestTransactionNormalizeClearsRecurrence(t *testing.T) {
	tx := Transaction{
		Description:       "  rent ",
		RecurringInterval: Monthly,
		NextRecurringDate: NewDate(2024, 2, 1),
	}
	got := tx.Normalize()
	assert.Equal(t, "rent", got.Description)
	assert.Empty(t, got.RecurringInterval)
	assert.True(t, got.NextRecurringDate.IsZero())
}

func TestBudgetValidate(t *testing.T) {
	assert.NoError(t, Budget{CategoryID: "1", Limit: AmountFromInt(10)}.Validate())
	assert.ErrorIs(t, Budget{CategoryID: "1", Limit: AmountFromInt(0)}.Validate(), ErrInvalidLimit)
	assert.ErrorIs(t, Budget{Limit: AmountFromInt(1)}.Validate(), ErrEmptyCategory)
}

func TestThemeToggle(t *testing.T) {
	assert.Equal(t, Dark, Light.Toggle())
	assert.Equal(t, Light, Dark.Toggle())
	assert.Equal(t, Light, Theme("").Toggle())
}

func TestInitialSnapshot(t *testing.T) {
	s := InitialSnapshot()
	require.Len(t, s.Categories, 8)
	assert.Equal(t, "Food", s.Categories[0].Name)
	assert.Equal(t, "Other", s.Categories[7].Name)
	assert.Empty(t, s.Transactions)
	assert.Empty(t, s.Budgets)
	assert.Equal(t, Light, s.Theme)
}

func TestSnapshotCloneIsIndependent(t *testing.T) {
	s := InitialSnapshot()
	c := s.Clone()
	c.Categories[0].Name = "Groceries"
	assert.Equal(t, "Food", s.Categories[0].Name)
}

func TestCategoryName(t *testing.T) {
	cats := DefaultCategories()
	assert.Equal(t, "Salary", CategoryName(cats, "7"))
	assert.Equal(t, "", CategoryName(cats, "missing"))
}
