package apierr

import (
	"errors"
	"net/http"
	"testing"

	domainagg "github.com/yungbote/ledger-backend/internal/domain/aggregates"
)

func TestFromErrorStatuses(t *testing.T) {
	cases := []struct {
		code   domainagg.ErrorCode
		status int
	}{
		{domainagg.CodeNotFound, http.StatusNotFound},
		{domainagg.CodeForbidden, http.StatusForbidden},
		{domainagg.CodeInvalidAmount, http.StatusBadRequest},
		{domainagg.CodeInvalidRange, http.StatusBadRequest},
		{domainagg.CodeInvalidLimit, http.StatusBadRequest},
		{domainagg.CodeAlreadyPaid, http.StatusConflict},
		{domainagg.CodeInsufficientFunds, http.StatusUnprocessableEntity},
		{domainagg.CodeDepositLimitExceeded, http.StatusUnprocessableEntity},
		{domainagg.CodeRetryable, http.StatusServiceUnavailable},
		{domainagg.CodeInvariantViolation, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		got := FromError(domainagg.NewError(tc.code, "op", "msg", nil))
		if got.Status != tc.status || got.Code != string(tc.code) {
			t.Fatalf("%s: want status=%d got=%d code=%s", tc.code, tc.status, got.Status, got.Code)
		}
	}
}

func TestFromErrorUntyped(t *testing.T) {
	got := FromError(errors.New("boom"))
	if got.Status != http.StatusInternalServerError || got.Code != "internal" {
		t.Fatalf("unexpected: %+v", got)
	}
	if FromError(nil) != nil {
		t.Fatalf("expected nil for nil error")
	}
}
