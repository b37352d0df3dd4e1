package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
)

func TestSQLiteErrorClassifier_Classify(t *testing.T) {
	classifier := NewSQLiteErrorClassifier()

	tests := []struct {
		name string
		err  error
		want ErrorClassification
	}{
		{
			name: "busy file is retryable",
			err:  sqlite3.Error{Code: sqlite3.ErrBusy},
			want: Retryable,
		},
		{
			name: "locked file is retryable",
			err:  sqlite3.Error{Code: sqlite3.ErrLocked},
			want: Retryable,
		},
		{
			name: "constraint violation is not",
			err:  sqlite3.Error{Code: sqlite3.ErrConstraint},
			want: NonRetryable,
		},
		{
			name: "wrapped busy error is unwrapped",
			err:  fmt.Errorf("%w: %w", ErrExecutingStatement, sqlite3.Error{Code: sqlite3.ErrBusy}),
			want: Retryable,
		},
		{
			name: "plain error is not",
			err:  errors.New("not a driver error"),
			want: NonRetryable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, classifier.Classify(tt.err))
		})
	}
}
