// Package infratest opens throwaway migrated databases for tests.
package infratest

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"edupanel/internal/config"
	"edupanel/internal/infra"
)

// NewDB returns a private in-memory SQLite database with the schema applied.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	url := "sqlite://file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := infra.OpenDatabase(config.DatabaseConfig{URL: url})
	require.NoError(t, err)
	require.NoError(t, infra.Migrate(db))

	t.Cleanup(func() { infra.CloseDatabase(db) })
	return db
}
