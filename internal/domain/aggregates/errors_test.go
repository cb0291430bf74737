package aggregates

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorFormatting(t *testing.T) {
	err := NewError(CodeAlreadyPaid, "Ledger.PayJob", "job 4 already paid", nil)
	if got := err.Error(); got != "Ledger.PayJob: job 4 already paid (already_paid)" {
		t.Fatalf("unexpected message: %q", got)
	}
	if got := (&Error{Code: CodeInternal}).Error(); got != "internal" {
		t.Fatalf("unexpected bare message: %q", got)
	}
}

func TestIsCodeThroughWrapping(t *testing.T) {
	base := NewError(CodeInsufficientFunds, "op", "short", nil)
	wrapped := fmt.Errorf("outer: %w", base)
	if !IsCode(wrapped, CodeInsufficientFunds) {
		t.Fatalf("expected insufficient_funds through wrap")
	}
	if CodeOf(errors.New("plain")) != "" {
		t.Fatalf("expected empty code for plain error")
	}
	if Wrap(CodeInternal, "op", nil) != nil {
		t.Fatalf("Wrap(nil) must be nil")
	}
}

func TestIsBusinessOutcome(t *testing.T) {
	if !IsBusinessOutcome(NewError(CodeDepositLimitExceeded, "op", "", nil)) {
		t.Fatalf("deposit limit is a business outcome")
	}
	if IsBusinessOutcome(NewError(CodeRetryable, "op", "", nil)) {
		t.Fatalf("retryable is not a business outcome")
	}
	if IsBusinessOutcome(errors.New("boom")) {
		t.Fatalf("untyped error is not a business outcome")
	}
}
