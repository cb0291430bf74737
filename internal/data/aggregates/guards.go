package aggregates

import (
	"fmt"
	"strings"

	"github.com/yungbote/ledger-backend/internal/domain/money"
)

// RequireCASSuccess converts a failed compare-and-set into a typed conflict error.
func RequireCASSuccess(ok bool, message string) error {
	if ok {
		return nil
	}
	return ConflictError(strings.TrimSpace(message))
}

// RequireNonNegative fails with an invariant violation when a balance dropped below zero.
func RequireNonNegative(what string, v money.Amount) error {
	if v.IsNegative() {
		return InvariantError(fmt.Sprintf("%s balance is negative: %s", strings.TrimSpace(what), v))
	}
	return nil
}

// RequireConserved fails with an invariant violation when a transfer created or destroyed money.
func RequireConserved(before, after []money.Amount) error {
	b, err := money.Sum(before...)
	if err != nil {
		return InvariantError("balance sum overflow")
	}
	a, err := money.Sum(after...)
	if err != nil {
		return InvariantError("balance sum overflow")
	}
	if a != b {
		return InvariantError(fmt.Sprintf("transfer not conserved: before=%s after=%s", b, a))
	}
	return nil
}
