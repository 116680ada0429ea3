package common

import (
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const txRetries = 3

// InTx runs fn inside a transaction, retrying a bounded number of times when
// the store reports a serialization conflict (MySQL deadlock or lock wait,
// SQLite busy). Validation and precondition rejections abort immediately and
// are returned as-is; exhausted retries come back as a ConflictError.
func InTx(db *gorm.DB, fn func(tx *gorm.DB) error) error {
	var err error
	for attempt := 0; attempt < txRetries; attempt++ {
		err = db.Transaction(fn)
		if err == nil || !isRetryable(err) {
			return err
		}
	}
	return &ConflictError{Err: err}
}

// Lock appends FOR UPDATE row locking on dialects that support it. SQLite
// has a single writer and rejects the syntax, so reads run unlocked there.
func Lock(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

func isRetryable(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "Deadlock found") ||
		strings.Contains(msg, "Lock wait timeout") ||
		strings.Contains(msg, "database is locked")
}
