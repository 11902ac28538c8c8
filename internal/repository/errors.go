package repository

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// ErrConcurrentUpdate is returned by compare-and-swap writes whose expected
// state no longer matches the stored row.
var ErrConcurrentUpdate = errors.New("row changed concurrently")

func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

func IsUniqueConstraintError(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") || strings.Contains(msg, "unique constraint") || strings.Contains(msg, "unique failed")
}

// ClampPage applies the listing defaults: limit 20, at most 100.
func ClampPage(limit, offset int) (int, int) {
	switch {
	case limit <= 0:
		limit = 20
	case limit > 100:
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
