package store

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrorClassificator decides whether a failed database operation is worth
// retrying. Implementations are driver-specific.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}

// ErrorClassification is the verdict of [ErrorClassificator.Classify]:
// either the failed operation may succeed on a second attempt, or
// retrying it is pointless.
type ErrorClassification int

const (
	// NonRetryable is the default verdict. Constraint violations, bad
	// SQL and unrecognised errors land here: running the same apply
	// again would only fail the same way.
	NonRetryable ErrorClassification = iota

	// Retryable marks transient failures. An apply that lost a
	// serialization race with another sync client, or hit a dropped
	// connection, is expected to go through on the next attempt.
	Retryable
)

// PostgresErrorClassifier implements [ErrorClassificator] for the shared
// Postgres catalog. Several sync clients can apply against one database,
// so serialization failures and deadlocks are a normal part of life
// there, not a reason to give up.
type PostgresErrorClassifier struct{}

func NewPostgresErrorClassifier() *PostgresErrorClassifier {
	return &PostgresErrorClassifier{}
}

// Classify unwraps err to a *pgconn.PgError and checks its code against
// the transient classes. Codes are listed in
// https://www.postgresql.org/docs/current/errcodes-appendix.html.
func (c *PostgresErrorClassifier) Classify(err error) ErrorClassification {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return NonRetryable
	}

	switch pgErr.Code {
	case pgerrcode.ConnectionException, // class 08: the connection dropped mid-operation
		pgerrcode.ConnectionDoesNotExist,
		pgerrcode.ConnectionFailure:
		return Retryable

	case pgerrcode.TransactionRollback, // class 40: lost a race with a concurrent apply
		pgerrcode.SerializationFailure,
		pgerrcode.DeadlockDetected:
		return Retryable

	case pgerrcode.CannotConnectNow: // 57P03: server is starting up or shutting down
		return Retryable
	}

	// Everything else (data exceptions, constraint violations, syntax
	// errors) stays broken on retry.
	return NonRetryable
}

// postgresError extracts the Postgres error code from err, or returns ""
// when err did not come from the pgx driver. Repositories switch on the
// result to special-case individual codes, unique violations mostly.
func postgresError(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}

	return ""
}
