package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestPostgresErrorClassifier_Classify(t *testing.T) {
	classifier := NewPostgresErrorClassifier()

	tests := []struct {
		name string
		err  error
		want ErrorClassification
	}{
		{
			name: "serialization failure is retryable",
			err:  &pgconn.PgError{Code: pgerrcode.SerializationFailure},
			want: Retryable,
		},
		{
			name: "deadlock is retryable",
			err:  &pgconn.PgError{Code: pgerrcode.DeadlockDetected},
			want: Retryable,
		},
		{
			name: "dropped connection is retryable",
			err:  &pgconn.PgError{Code: pgerrcode.ConnectionFailure},
			want: Retryable,
		},
		{
			name: "server restarting is retryable",
			err:  &pgconn.PgError{Code: pgerrcode.CannotConnectNow},
			want: Retryable,
		},
		{
			name: "unique violation is not",
			err:  &pgconn.PgError{Code: pgerrcode.UniqueViolation},
			want: NonRetryable,
		},
		{
			name: "bad sql is not",
			err:  &pgconn.PgError{Code: pgerrcode.SyntaxError},
			want: NonRetryable,
		},
		{
			// Repositories wrap driver errors twice before anyone
			// classifies them; the verdict must survive the wrapping.
			name: "wrapped driver error is unwrapped",
			err:  fmt.Errorf("%w: %w", ErrExecutingStatement, &pgconn.PgError{Code: pgerrcode.SerializationFailure}),
			want: Retryable,
		},
		{
			name: "plain error is not",
			err:  errors.New("something else entirely"),
			want: NonRetryable,
		},
		{
			name: "nil error is not",
			err:  nil,
			want: NonRetryable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, classifier.Classify(tt.err))
		})
	}
}

func TestPostgresError_ExtractsCode(t *testing.T) {
	wrapped := fmt.Errorf("%w: %w", ErrExecutingStatement, &pgconn.PgError{Code: pgerrcode.UniqueViolation})
	assert.Equal(t, pgerrcode.UniqueViolation, postgresError(wrapped))

	assert.Empty(t, postgresError(errors.New("not a driver error")))
	assert.Empty(t, postgresError(nil))
}
