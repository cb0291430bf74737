package apierr

import (
	"fmt"
	"net/http"

	domainagg "github.com/yungbote/ledger-backend/internal/domain/aggregates"
)

type Error struct {
	Status int
	Code   string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Code != "" {
		return e.Code
	}
	if e.Status != 0 {
		return fmt.Sprintf("api error (%d)", e.Status)
	}
	return "api error"
}

func (e *Error) Unwrap() error { return e.Err }

func New(status int, code string, err error) *Error {
	return &Error{Status: status, Code: code, Err: err}
}

// FromError maps an aggregate error code onto an HTTP status. Errors without a code become 500.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}
	code := domainagg.CodeOf(err)
	if code == "" {
		return New(http.StatusInternalServerError, string(domainagg.CodeInternal), err)
	}
	return New(statusForCode(code), string(code), err)
}

func statusForCode(code domainagg.ErrorCode) int {
	switch code {
	case domainagg.CodeNotFound:
		return http.StatusNotFound
	case domainagg.CodeForbidden:
		return http.StatusForbidden
	case domainagg.CodeValidation, domainagg.CodeInvalidAmount, domainagg.CodeInvalidRange, domainagg.CodeInvalidLimit:
		return http.StatusBadRequest
	case domainagg.CodeAlreadyPaid, domainagg.CodeConflict:
		return http.StatusConflict
	case domainagg.CodeInsufficientFunds, domainagg.CodeDepositLimitExceeded, domainagg.CodePreconditionFailed:
		return http.StatusUnprocessableEntity
	case domainagg.CodeRetryable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
