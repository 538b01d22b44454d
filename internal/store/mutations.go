package store

import (
	"context"
	"slices"
	"strings"

	"expenso/internal/core"
	"expenso/internal/recurrence"
)

// AddTransaction assigns a fresh id, computes the next recurring date for
// recurring input and appends the record.
func (s *Store) AddTransaction(ctx context.Context, in core.Transaction) (core.Transaction, error) {
	tx, err := prepareTransaction(in, true)
	if err != nil {
		return core.Transaction{}, err
	}
	tx.ID = s.newID()

	err = s.apply(ctx, OpAddTransaction, func(next *core.Snapshot) (bool, error) {
		next.Transactions = append(next.Transactions, tx)
		return true, nil
	})
	if err != nil {
		return core.Transaction{}, err
	}
	return tx, nil
}

// UpdateTransaction replaces the record with the same id. Unknown ids are
// ignored.
func (s *Store) UpdateTransaction(ctx context.Context, in core.Transaction) error {
	tx, err := prepareTransaction(in, false)
	if err != nil {
		return err
	}
	return s.apply(ctx, OpUpdateTransaction, func(next *core.Snapshot) (bool, error) {
		i := slices.IndexFunc(next.Transactions, func(t core.Transaction) bool { return t.ID == tx.ID })
		if i < 0 {
			return false, nil
		}
		next.Transactions[i] = tx
		return true, nil
	})
}

// DeleteTransaction removes the record with the given id, if present.
func (s *Store) DeleteTransaction(ctx context.Context, id string) error {
	return s.apply(ctx, OpDeleteTransaction, func(next *core.Snapshot) (bool, error) {
		before := len(next.Transactions)
		next.Transactions = slices.DeleteFunc(next.Transactions, func(t core.Transaction) bool { return t.ID == id })
		return len(next.Transactions) != before, nil
	})
}

// SetBudget replaces the budget of the category.
func (s *Store) SetBudget(ctx context.Context, b core.Budget) error {
	b.CategoryID = strings.TrimSpace(b.CategoryID)
	if err := b.Validate(); err != nil {
		return err
	}
	return s.apply(ctx, OpSetBudget, func(next *core.Snapshot) (bool, error) {
		next.Budgets = slices.DeleteFunc(next.Budgets, func(x core.Budget) bool { return x.CategoryID == b.CategoryID })
		next.Budgets = append(next.Budgets, b)
		return true, nil
	})
}

func (s *Store) AddCategory(ctx context.Context, c core.Category) (core.Category, error) {
	c.Name = strings.TrimSpace(c.Name)
	if err := c.Validate(); err != nil {
		return core.Category{}, err
	}
	c.ID = s.newID()

	err := s.apply(ctx, OpAddCategory, func(next *core.Snapshot) (bool, error) {
		next.Categories = append(next.Categories, c)
		return true, nil
	})
	if err != nil {
		return core.Category{}, err
	}
	return c, nil
}

// UpdateCategory replaces the category with the same id. Unknown ids are
// ignored.
func (s *Store) UpdateCategory(ctx context.Context, c core.Category) error {
	c.Name = strings.TrimSpace(c.Name)
	if err := c.Validate(); err != nil {
		return err
	}
	return s.apply(ctx, OpUpdateCategory, func(next *core.Snapshot) (bool, error) {
		i := slices.IndexFunc(next.Categories, func(x core.Category) bool { return x.ID == c.ID })
		if i < 0 {
			return false, nil
		}
		next.Categories[i] = c
		return true, nil
	})
}

// DeleteCategory removes the category together with its transactions and
// budget in a single commit.
func (s *Store) DeleteCategory(ctx context.Context, id string) error {
	return s.apply(ctx, OpDeleteCategory, func(next *core.Snapshot) (bool, error) {
		nc, nt, nb := len(next.Categories), len(next.Transactions), len(next.Budgets)
		next.Categories = slices.DeleteFunc(next.Categories, func(c core.Category) bool { return c.ID == id })
		next.Transactions = slices.DeleteFunc(next.Transactions, func(t core.Transaction) bool { return t.Category == id })
		next.Budgets = slices.DeleteFunc(next.Budgets, func(b core.Budget) bool { return b.CategoryID == id })
		return nc != len(next.Categories) || nt != len(next.Transactions) || nb != len(next.Budgets), nil
	})
}

// ToggleTheme flips between light and dark and returns the new theme.
func (s *Store) ToggleTheme(ctx context.Context) core.Theme {
	var theme core.Theme
	_ = s.apply(ctx, OpToggleTheme, func(next *core.Snapshot) (bool, error) {
		next.Theme = next.Theme.Toggle()
		theme = next.Theme
		return true, nil
	})
	return theme
}

// Reset restores the first-run state.
func (s *Store) Reset(ctx context.Context) {
	_ = s.apply(ctx, OpReset, func(next *core.Snapshot) (bool, error) {
		*next = core.InitialSnapshot()
		return true, nil
	})
}

// prepareTransaction normalizes and validates user input. Added records
// always get a fresh next date; updated ones keep theirs unless missing.
func prepareTransaction(in core.Transaction, fresh bool) (core.Transaction, error) {
	tx := in.Normalize()
	tx.Category = strings.TrimSpace(tx.Category)
	if err := tx.Validate(); err != nil {
		return core.Transaction{}, err
	}
	if tx.IsRecurring && (fresh || tx.NextRecurringDate.IsZero()) {
		next, err := recurrence.Advance(tx.Date, tx.RecurringInterval)
		if err != nil {
			return core.Transaction{}, core.Invalid("recurringInterval", err)
		}
		tx.NextRecurringDate = next
	}
	return tx, nil
}
