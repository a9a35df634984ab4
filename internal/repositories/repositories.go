package repositories

import (
	"errors"

	"github.com/mattn/go-sqlite3"
)

// dateLayout is the storage format for date-only columns
const dateLayout = "2006-01-02"

// IsUniqueConstraintErr reports whether err is a storage-level unique
// constraint violation. Conflict-aware writers treat this as "already
// exists" rather than a failure.
func IsUniqueConstraintErr(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	return false
}
