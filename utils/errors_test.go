package utils

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindStatusAndCode(t *testing.T) {
	cases := []struct {
		kind   Kind
		status int
		code   string
	}{
		{KindValidationFailed, 400, "validation_failed"},
		{KindUnauthenticated, 401, "unauthenticated"},
		{KindForbidden, 403, "forbidden"},
		{KindNotFound, 404, "not_found"},
		{KindKYCRequired, 400, "kyc_required"},
		{KindVerificationUnavailable, 503, "verification_unavailable"},
		{KindInternal, 500, "server_error"},
	}
	for _, c := range cases {
		assert.Equal(t, c.status, c.kind.Status(), c.code)
		assert.Equal(t, c.code, c.kind.Code())
	}
}

func TestKindOfWrapped(t *testing.T) {
	err := fmt.Errorf("respond: %w", NotFound("Interest not found"))
	assert.Equal(t, KindNotFound, KindOf(err))
	assert.Equal(t, KindInternal, KindOf(errors.New("boom")))

	unavailable := VerificationUnavailable(errors.New("timeout"))
	assert.True(t, unavailable.Retryable())
	assert.False(t, Forbidden("no").Retryable())
}
