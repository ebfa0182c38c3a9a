package postgres

import (
	"database/sql"
	"errors"

	"github.com/lib/pq"
)

// userMessages maps PostgreSQL error codes to messages safe to show
// to end users. Anything unmapped falls through to a generic message.
var userMessages = map[pq.ErrorCode]string{
	"23505": "This word is already in your dictionary.",             // unique_violation
	"23503": "That record no longer exists. Please refresh.",        // foreign_key_violation
	"42501": "Access denied. Please check your permissions.",        // insufficient_privilege
	"57P03": "Service is currently unavailable. Please try later.",  // cannot_connect_now
	"53300": "Service is currently unavailable. Please try later.",  // too_many_connections
	"40001": "Data is stale. Please refresh and try again.",         // serialization_failure
	"55P03": "Someone else is editing this. Please try again.",      // lock_not_available
	"22001": "That text is too long. Please shorten it and retry.",  // string_data_right_truncation
}

const fallbackMessage = "An unexpected error occurred. Please try again."

// UserMessage translates a storage error into a user-facing string
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	if errors.Is(err, sql.ErrNoRows) {
		return "That record no longer exists. Please refresh."
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		if msg, ok := userMessages[pqErr.Code]; ok {
			return msg
		}
	}

	return fallbackMessage
}
