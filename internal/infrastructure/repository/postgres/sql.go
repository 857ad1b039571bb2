package postgres

import (
	"database/sql"
	"strings"

	"github.com/cockroachdb/errors"
)

func isNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

// isUnnamedPreparedStatementMissing matches the error poolers in transaction mode return
// when the unnamed statement was prepared on another backend connection.
func isUnnamedPreparedStatementMissing(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	if strings.Contains(msg, "unnamed prepared statement does not exist") {
		return true
	}
	return strings.Contains(msg, "prepared statement") && strings.Contains(msg, "(26000)")
}

func nullString(v string) sql.NullString {
	if strings.TrimSpace(v) == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: v, Valid: true}
}
