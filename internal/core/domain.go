package core

import (
	"strings"
)

const (
	Income  TransactionType = "income"
	Expense TransactionType = "expense"

	Weekly  Interval = "weekly"
	Monthly Interval = "monthly"
	Yearly  Interval = "yearly"

	Light Theme = "light"
	Dark  Theme = "dark"

	Cash       PaymentMethod = "cash"
	Card       PaymentMethod = "card"
	UPI        PaymentMethod = "upi"
	NetBanking PaymentMethod = "netbanking"
)

type (
	TransactionType string

	// Interval is the repetition period of a recurring transaction.
	Interval string

	Theme string

	PaymentMethod string

	Category struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Icon  string `json:"icon"`
		Color string `json:"color"`
	}

	Transaction struct {
		ID                string          `json:"id"`
		Amount            Amount          `json:"amount"`
		Type              TransactionType `json:"type"`
		Category          string          `json:"category"` // Category ID
		Description       string          `json:"description"`
		Date              Date            `json:"date"`
		PaymentMethod     PaymentMethod   `json:"paymentMethod,omitempty"`
		IsRecurring       bool            `json:"isRecurring"`
		RecurringInterval Interval        `json:"recurringInterval,omitempty"`
		NextRecurringDate Date            `json:"nextRecurringDate,omitzero"`
	}

	Budget struct {
		CategoryID string `json:"categoryId"`
		Limit      Amount `json:"limit"`
	}
)

func (t TransactionType) Valid() bool {
	return t == Income || t == Expense
}

func (i Interval) Valid() bool {
	switch i {
	case Weekly, Monthly, Yearly:
		return true
	default:
		return false
	}
}

func (p PaymentMethod) Valid() bool {
	switch p {
	case Cash, Card, UPI, NetBanking:
		return true
	default:
		return false
	}
}

// Toggle flips light and dark. Anything else becomes light.
func (t Theme) Toggle() Theme {
	if t == Light {
		return Dark
	}
	return Light
}

func (t Theme) Valid() bool {
	return t == Light || t == Dark
}

func (c Category) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return Invalid("name", ErrEmptyName)
	}
	return nil
}

// Validate checks the fields a user submits. The category is only required
// to be non-empty; dangling ids are tolerated.
func (t Transaction) Validate() error {
	if err := t.Amount.Validate(); err != nil {
		return Invalid("amount", err)
	}
	if !t.Type.Valid() {
		return Invalid("type", ErrInvalidType)
	}
	if strings.TrimSpace(t.Category) == "" {
		return Invalid("category", ErrEmptyCategory)
	}
	if len(strings.TrimSpace(t.Description)) == 0 {
		return Invalid("description", ErrEmptyDescription)
	}
	if err := t.Date.Validate(); err != nil {
		return Invalid("date", err)
	}
	if t.PaymentMethod != "" && !t.PaymentMethod.Valid() {
		return Invalid("paymentMethod", ErrInvalidPaymentMethod)
	}
	if t.IsRecurring && !t.RecurringInterval.Valid() {
		return Invalid("recurringInterval", ErrInvalidInterval)
	}
	return nil
}

// Normalize drops recurrence fields from non-recurring transactions so the
// interval and the next date are present exactly when IsRecurring is set.
func (t Transaction) Normalize() Transaction {
	t.Description = strings.TrimSpace(t.Description)
	if !t.IsRecurring {
		t.RecurringInterval = ""
		t.NextRecurringDate = Date{}
	}
	return t
}

func (b Budget) Validate() error {
	if strings.TrimSpace(b.CategoryID) == "" {
		return Invalid("categoryId", ErrEmptyCategory)
	}
	if err := b.Limit.Validate(); err != nil {
		return Invalid("limit", ErrInvalidLimit)
	}
	return nil
}
