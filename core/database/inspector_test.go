package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableColumns(t *testing.T) {
	db, err := Connect(Config{Driver: DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)

	err = db.Exec("CREATE TABLE test_cards (id INTEGER PRIMARY KEY, name TEXT, rarity TEXT)").Error
	require.NoError(t, err)

	columns, err := TableColumns(db, "test_cards")
	assert.NoError(t, err)
	assert.Len(t, columns, 3)

	colMap := make(map[string]string)
	for _, col := range columns {
		colMap[col.Field] = col.Type
	}

	assert.Equal(t, "integer", colMap["id"])
	assert.Equal(t, "text", colMap["name"])
	assert.Equal(t, "text", colMap["rarity"])

	// PRAGMA table_info returns no rows for a missing table
	cols, err := TableColumns(db, "non_existent")
	assert.NoError(t, err)
	assert.Empty(t, cols)
}

func TestMissingColumns(t *testing.T) {
	db, err := Connect(Config{Driver: DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, db.Exec("CREATE TABLE test_cards (id INTEGER PRIMARY KEY, name TEXT)").Error)

	missing, err := MissingColumns(db, "test_cards", []string{"id", "Name", "price", "rarity"})
	assert.NoError(t, err)
	assert.Equal(t, []string{"price", "rarity"}, missing)
}
