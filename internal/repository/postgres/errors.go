package postgres

import (
	"errors"
	"regexp"
	"strings"

	"blog-api/internal/domain"

	"github.com/jackc/pgerrcode"
	"github.com/lib/pq"
)

// reKeyField extracts the column list from "Key (field)=(value) already exists."
var reKeyField = regexp.MustCompile(`Key \(([^)]+)\)=`)

// IsUniqueViolation checks if an error is a PostgreSQL unique constraint violation
// If constraint is empty, it returns true for any unique violation
func IsUniqueViolation(err error, constraint string) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) || pqErr.Code != pgerrcode.UniqueViolation {
		return false
	}
	return constraint == "" || pqErr.Constraint == constraint
}

// IsForeignKeyViolation reports whether err is a missing-parent or still-referenced violation.
func IsForeignKeyViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == pgerrcode.ForeignKeyViolation
}

// uniqueViolationField names the column that collided. The constraint name is
// checked first because it identifies exactly one constraint even when the
// table has several unique columns; the Detail text is the fallback.
func uniqueViolationField(err error) (string, bool) {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) || pqErr.Code != pgerrcode.UniqueViolation {
		return "", false
	}

	if field := fieldFromConstraint(pqErr.Table, pqErr.Constraint); field != "" {
		return field, true
	}
	if m := reKeyField.FindStringSubmatch(pqErr.Detail); len(m) == 2 {
		return strings.TrimSpace(strings.Split(m[1], ",")[0]), true
	}
	return "", true
}

// fieldFromConstraint turns "users_email_key" into "email".
func fieldFromConstraint(table, constraint string) string {
	name := strings.TrimSuffix(constraint, "_key")
	if name == constraint {
		return ""
	}
	if table != "" {
		name = strings.TrimPrefix(name, table+"_")
	} else if i := strings.Index(name, "_"); i >= 0 {
		name = name[i+1:]
	}
	return name
}

// mapUserConflict converts a unique violation on users into a domain conflict.
func mapUserConflict(err error) error {
	field, ok := uniqueViolationField(err)
	if !ok {
		return err
	}

	switch field {
	case "email":
		return &domain.ConflictError{Field: "email", Err: domain.ErrEmailExists}
	case "username":
		return &domain.ConflictError{Field: "username", Err: domain.ErrUsernameExists}
	default:
		return &domain.ConflictError{Field: field, Err: err}
	}
}
