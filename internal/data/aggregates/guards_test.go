package aggregates

import (
	"errors"
	"testing"

	"github.com/yungbote/ledger-backend/internal/domain/money"
)

func TestRequireCASSuccess(t *testing.T) {
	if err := RequireCASSuccess(true, "ok"); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if err := RequireCASSuccess(false, "stale"); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected conflict error, got %v", err)
	}
}

func TestRequireNonNegative(t *testing.T) {
	if err := RequireNonNegative("client", 0); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if err := RequireNonNegative("client", money.Cents(-1)); !errors.Is(err, ErrInvariant) {
		t.Fatalf("expected invariant error, got %v", err)
	}
}

func TestRequireConserved(t *testing.T) {
	before := []money.Amount{money.Cents(1000), money.Cents(50)}
	if err := RequireConserved(before, []money.Amount{money.Cents(800), money.Cents(250)}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if err := RequireConserved(before, []money.Amount{money.Cents(800), money.Cents(251)}); !errors.Is(err, ErrInvariant) {
		t.Fatalf("expected invariant error, got %v", err)
	}
}
