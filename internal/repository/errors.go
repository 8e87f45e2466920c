// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios without
// looking at driver-specific errors.
package repository

import (
	"errors"

	"github.com/go-sql-driver/mysql"
	"github.com/mattn/go-sqlite3"
)

// ErrInvalidReference is returned when a write names an episode or guest
// that does not exist, i.e. the store rejected it on a foreign key.
// Handlers should translate this into an HTTP 400 response.
var ErrInvalidReference = errors.New("invalid reference")

// mysqlNoReferencedRow is ER_NO_REFERENCED_ROW_2.
const mysqlNoReferencedRow = 1452

// isForeignKeyViolation recognises foreign key failures from both supported
// drivers.
func isForeignKeyViolation(err error) bool {
	var se sqlite3.Error
	if errors.As(err, &se) {
		return se.ExtendedCode == sqlite3.ErrConstraintForeignKey
	}
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		return me.Number == mysqlNoReferencedRow
	}
	return false
}
