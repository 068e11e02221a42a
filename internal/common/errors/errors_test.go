package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	cases := map[ErrorCode]int{
		ErrCodeMissingAddress:         http.StatusBadRequest,
		ErrCodeMalformedState:         http.StatusBadRequest,
		ErrCodeTipNotFound:            http.StatusBadRequest,
		ErrCodeClaimRejected:          http.StatusForbidden,
		ErrCodeVerificationInProgress: http.StatusConflict,
		ErrCodeLedgerUnavailable:      http.StatusBadGateway,
		ErrCodeIdentityProvider:       http.StatusBadGateway,
		ErrCodeBroadcastFailed:        http.StatusBadGateway,
		ErrCodeLockUnavailable:        http.StatusServiceUnavailable,
		ErrCodeInternal:               http.StatusInternalServerError,
	}
	for code, status := range cases {
		assert.Equal(t, status, New(code, "x").HTTPStatus(), code)
	}
}

func TestWrapKeepsCause(t *testing.T) {
	cause := stderrors.New("dial tcp: timeout")
	err := Wrap(cause, ErrCodeLedgerUnavailable, "ledger unavailable")

	assert.ErrorIs(t, err, cause)
	assert.True(t, err.IsExternal())
	assert.Contains(t, err.Error(), "LEDGER_UNAVAILABLE")
}

func TestCodeOf(t *testing.T) {
	wrapped := fmt.Errorf("handler: %w", New(ErrCodeTipNotFound, "no tip"))
	assert.Equal(t, ErrCodeTipNotFound, CodeOf(wrapped))
	assert.Equal(t, ErrCodeInternal, CodeOf(stderrors.New("plain")))

	_, ok := AsAppError(nil)
	assert.False(t, ok)
}
