package repo

import (
	"errors"

	"gorm.io/gorm"
)

// ErrNotFound is returned when a requested row does not exist. It
// aliases gorm.ErrRecordNotFound so callers can use errors.Is with
// either sentinel.
var ErrNotFound = gorm.ErrRecordNotFound

// ErrUnknownTable is returned when a cache operation names a table
// outside domain.CacheTables. The cache is a closed set of tables;
// arbitrary table names never reach SQL.
var ErrUnknownTable = errors.New("unknown cache table")
