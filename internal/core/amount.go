// Package core provides money parsing and handling utilities.
//
// This file contains the Amount type used for transaction amounts and
// budget limits, and the parser for user-typed amount text.
package core

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Amount is an exact decimal value serialized as a bare JSON number.
type Amount struct {
	decimal.Decimal
}

// NewAmount wraps a decimal value.
func NewAmount(d decimal.Decimal) Amount {
	return Amount{Decimal: d}
}

// AmountFromInt is a shortcut for whole amounts.
func AmountFromInt(v int64) Amount {
	return Amount{Decimal: decimal.NewFromInt(v)}
}

// MustAmount parses s and panics on failure. Intended for tests and seeds.
func MustAmount(s string) Amount {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return Amount{Decimal: d}
}

// ParseAmount converts user text into a positive Amount.
//
// It accepts both dot (12.34) and comma (12,34) decimal separators.
// Signs, empty input, and zero are rejected.
//
// Examples:
//
//	ParseAmount("12.34") -> 12.34, nil
//	ParseAmount("12,5")  -> 12.5, nil
//	ParseAmount("-1")    -> ErrInvalidAmount
func ParseAmount(s string) (Amount, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Amount{}, ErrInvalidAmount
	}
	s = strings.ReplaceAll(s, ",", ".")
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		return Amount{}, ErrInvalidAmount
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Amount{}, ErrInvalidAmount
	}
	a := Amount{Decimal: d}
	if err := a.Validate(); err != nil {
		return Amount{}, err
	}
	return a, nil
}

func (a Amount) Validate() error {
	if !a.IsPositive() {
		return ErrInvalidAmount
	}
	return nil
}

// String renders the shortest decimal form: 1000, 12.5, 0.01.
func (a Amount) String() string {
	return a.Decimal.String()
}

func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.Decimal.String()), nil
}

func (a *Amount) UnmarshalJSON(data []byte) error {
	return a.Decimal.UnmarshalJSON(data)
}
