package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorKinds(t *testing.T) {
	tests := []struct {
		name string
		err  error
		kind ErrorKind
	}{
		{
			name: "invalid argument",
			err:  NewInvalidArgument("asset id is required"),
			kind: KindInvalidArgument,
		},
		{
			name: "invalid argument with format args",
			err:  NewInvalidArgument("invalid %s event for asset %q", "transfer", "asset-1"),
			kind: KindInvalidArgument,
		},
		{
			name: "not found",
			err:  NewNotFound("no ownership record for asset %s", "asset-1"),
			kind: KindNotFound,
		},
		{
			name: "no valid claim",
			err:  NewNoValidClaim("no claim on asset %s passed verification", "asset-1"),
			kind: KindNoValidClaim,
		},
		{
			name: "upstream failure",
			err:  NewUpstreamFailure("event log unavailable", errors.New("connection refused")),
			kind: KindUpstreamFailure,
		},
		{
			name: "unresolved",
			err:  NewUnresolved("conflicting records flagged for review"),
			kind: KindUnresolved,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.kind, KindOf(tt.err))
			assert.True(t, IsKind(tt.err, tt.kind))
			assert.False(t, IsKind(tt.err, ErrorKind("other")))
		})
	}
}

func TestErrorMessageFormatting(t *testing.T) {
	err := NewInvalidArgument("invalid %s event for asset %q", "transfer", "asset-1")
	assert.Equal(t, `invalid_argument: invalid transfer event for asset "asset-1"`, err.Error())

	cause := errors.New("connection refused")
	wrapped := NewUpstreamFailure("event log unavailable", cause)
	assert.Equal(t, "upstream_failure: event log unavailable: connection refused", wrapped.Error())
}

func TestErrorUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewUpstreamFailure("event log unavailable", cause)

	assert.ErrorIs(t, err, cause)

	var de *Error
	assert.True(t, errors.As(err, &de))
	assert.Equal(t, KindUpstreamFailure, de.Kind)
	assert.Equal(t, "event log unavailable", de.Message)
}

func TestKindOfNonDomainError(t *testing.T) {
	assert.Equal(t, ErrorKind(""), KindOf(errors.New("plain error")))
	assert.False(t, IsKind(errors.New("plain error"), KindNotFound))
	assert.Equal(t, ErrorKind(""), KindOf(nil))
}
