// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// store_test.go provides a shared test database helper for the store
// tests. Each test gets a fresh, migrated SQLite file.
package store

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"bannerkit/internal/database"
)

// testDB opens a migrated SQLite database in a temporary directory. A
// cleanup function is registered to close the connection when the test
// finishes.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := database.Connect(database.DriverSQLite, filepath.Join(t.TempDir(), "store.db"))
	require.NoError(t, err, "open test DB")
	t.Cleanup(func() { db.Close() })

	require.NoError(t, database.Migrate(db, database.DriverSQLite), "run migrations")
	return db
}
