package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResult_OK(t *testing.T) {
	t.Run("empty result passes", func(t *testing.T) {
		var r Result

		assert.True(t, r.OK(), "result without failures should be OK")
		assert.NoError(t, r.Err(), "Err should be nil for a passing result")
	})

	t.Run("failed rule is reported", func(t *testing.T) {
		var r Result
		r.Fail("name", "Name is required")

		assert.False(t, r.OK(), "result with a failure should not be OK")

		err := r.Err()
		require.Error(t, err, "Err should return the accumulated error")

		var verr *Error
		require.True(t, errors.As(err, &verr), "error should be *validation.Error")
		assert.Equal(t, KindBadRequest, verr.Kind)
		assert.Equal(t, []FieldError{{Property: "name", Message: "Name is required"}}, verr.Fields)
	})
}

func TestResult_Accumulates(t *testing.T) {
	var r Result
	r.Fail("from", "From date is required")
	r.Fail("to", "To date is required")

	var verr *Error
	require.True(t, errors.As(r.Err(), &verr))
	assert.Len(t, verr.Fields, 2, "independent field failures should accumulate")
}

func TestResult_KeepsStrongestKind(t *testing.T) {
	tests := []struct {
		name  string
		kinds []Kind
		want  Kind
	}{
		{"bad request only", []Kind{KindBadRequest}, KindBadRequest},
		{"not found beats bad request", []Kind{KindBadRequest, KindNotFound}, KindNotFound},
		{"conflict beats not found", []Kind{KindNotFound, KindConflict, KindBadRequest}, KindConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var r Result
			for _, k := range tt.kinds {
				r.FailKind(k, "field", "message")
			}

			var verr *Error
			require.True(t, errors.As(r.Err(), &verr))
			assert.Equal(t, tt.want, verr.Kind)
		})
	}
}

func TestError_Error(t *testing.T) {
	err := &Error{Kind: KindBadRequest, Fields: []FieldError{{Property: "email", Message: "Email is required"}}}

	assert.Contains(t, err.Error(), "email")
	assert.Contains(t, err.Error(), "Email is required")
}
