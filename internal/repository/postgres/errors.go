package postgres

import (
	"errors"

	"github.com/gdugdh24/skillswap-backend/internal/domain"
	"github.com/lib/pq"
)

const uniqueViolation = "23505"

// uniqueFieldError converts a unique violation on one of the given
// constraints into a field validation error. Other errors pass through.
func uniqueFieldError(err error, fields map[string]string) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) || pqErr.Code != uniqueViolation {
		return err
	}
	if field, ok := fields[pqErr.Constraint]; ok {
		return domain.NewValidationError(field, "already exists")
	}
	return err
}

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return 20
	}
	return limit
}
