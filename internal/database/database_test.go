package database

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shdeco/internal/domain"
)

// Connect must be able to open the SQLite DSN branch on its own; a
// missing driver registration only surfaces at Open time.
func TestConnectSQLiteInMemory(t *testing.T) {
	db, err := Connect(":memory:")
	require.NoError(t, err)
	require.NoError(t, Migrate(db))

	rec := &domain.ProcessedEvent{EventID: "evt_drv_1", ProcessedAt: time.Now().UTC()}
	require.NoError(t, db.Create(rec).Error)

	var count int64
	require.NoError(t, db.Model(&domain.ProcessedEvent{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	require.NoError(t, Close(db))
}
