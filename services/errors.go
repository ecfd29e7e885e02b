package services

import (
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
)

var (
	// ErrEmptyName is returned when a mapping is created with a blank
	// department name on either side.
	ErrEmptyName = errors.New("department names are required")

	// ErrRoomIDsRequired is returned when a room mapping is created
	// without both room ids.
	ErrRoomIDsRequired = errors.New("room ids are required")

	// ErrMappingExists / ErrRoomMappingExists signal that the exact
	// pair is already recorded.
	ErrMappingExists     = errors.New("department mapping already exists")
	ErrRoomMappingExists = errors.New("room mapping already exists")

	// ErrNotFound is returned when the referenced row does not exist.
	ErrNotFound = errors.New("record not found")
)

// isDuplicateErr reports whether err is a unique-index violation.
// MySQL surfaces error 1062; SQLite (used in tests) reports it as text.
func isDuplicateErr(err error) bool {
	if err == nil {
		return false
	}
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "Duplicate entry") || strings.Contains(msg, "UNIQUE constraint failed")
}
