package reasoncodes_test

import (
	"errors"
	"fmt"
	"testing"

	reasoncodes "github.com/OluSmartDev/3mtt-module3-miniprojects/pkg/reason_codes"

	"github.com/stretchr/testify/assert"
)

func TestErrorMatchesSentinel(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
	}{
		{name: "validation", err: reasoncodes.Validation("bad body", nil), sentinel: reasoncodes.ErrValidationFailed},
		{name: "not found", err: reasoncodes.NotFound("missing"), sentinel: reasoncodes.ErrRecordNotFound},
		{name: "no fields", err: reasoncodes.NoFieldsProvided("empty"), sentinel: reasoncodes.ErrNoFields},
		{name: "store", err: reasoncodes.Store("query failed", errors.New("conn reset")), sentinel: reasoncodes.ErrStoreFailed},
		{name: "aborted", err: reasoncodes.Aborted("gave up", errors.New("refused")), sentinel: reasoncodes.ErrAborted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := fmt.Errorf("handler: %w", tt.err)
			assert.ErrorIs(t, wrapped, tt.sentinel)
		})
	}
}

func TestErrorDoesNotMatchOtherSentinels(t *testing.T) {
	err := reasoncodes.NotFound("missing")
	assert.NotErrorIs(t, err, reasoncodes.ErrValidationFailed)
	assert.NotErrorIs(t, err, reasoncodes.ErrStoreFailed)
}

func TestErrorUnwrapsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := reasoncodes.Store("insert failed", cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "StoreError: insert failed: connection refused", err.Error())
}

func TestCodeOf(t *testing.T) {
	assert.Equal(t, reasoncodes.ErrNoFieldsProvided, reasoncodes.CodeOf(fmt.Errorf("wrap: %w", reasoncodes.NoFieldsProvided("x"))))
	assert.Equal(t, reasoncodes.ReasonCode(""), reasoncodes.CodeOf(errors.New("plain")))
}
