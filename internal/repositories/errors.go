package repositories

import (
	"errors"

	"gorm.io/gorm"
)

// ErrNotFound is returned when a target row does not exist.
var ErrNotFound = errors.New("record not found")

// IsNotFoundError reports whether err represents a missing record, at
// either this package's or gorm's level.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, gorm.ErrRecordNotFound)
}
