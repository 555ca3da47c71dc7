//go:build !purego

package store

import (
	_ "github.com/mattn/go-sqlite3"
)

// driverName selects the cgo SQLite driver by default.
const driverName = "sqlite3"
