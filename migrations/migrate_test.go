package migrations

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNames_SortedAndEmbedded(t *testing.T) {
	names, err := Names()
	require.NoError(t, err)
	require.NotEmpty(t, names)

	assert.Equal(t, "0001_ledger.sql", names[0])
	for i := 1; i < len(names); i++ {
		assert.Less(t, names[i-1], names[i])
	}
}

func TestLedgerMigration_CreatesEveryTable(t *testing.T) {
	raw, err := files.ReadFile("0001_ledger.sql")
	require.NoError(t, err)

	sql := string(raw)
	for _, table := range []string{
		"ledger_sequences", "artists", "venues", "concerts",
		"tickets", "artist_balances", "venue_balances",
	} {
		assert.True(t, strings.Contains(sql, "CREATE TABLE IF NOT EXISTS "+table+" ("), table)
	}
}
