package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotelbook/internal/pkg/logger"
)

func TestIsPostgres(t *testing.T) {
	assert.True(t, IsPostgres("postgres://u:p@localhost/db"))
	assert.True(t, IsPostgres("postgresql://localhost/db"))
	assert.False(t, IsPostgres("hotelbook.db"))
	assert.False(t, IsPostgres(":memory:"))
}

func TestConnectAndMigrate_SQLite(t *testing.T) {
	db, err := Connect("file:database_test?mode=memory&cache=shared", logger.Discard())
	require.NoError(t, err)

	require.NoError(t, Migrate(db))

	for _, table := range []string{"users", "hotels", "rooms", "negotiations", "negotiation_events", "bookings", "notifications"} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}
}
