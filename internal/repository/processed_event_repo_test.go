package repository

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"shdeco/internal/database"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Connect(":memory:")
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func TestClaimOnce_FirstClaimWins(t *testing.T) {
	repo := NewProcessedEventRepository(setupDB(t))
	ctx := context.Background()

	already, err := repo.ClaimOnce(ctx, "evt_1")
	require.NoError(t, err)
	assert.False(t, already)

	already, err = repo.ClaimOnce(ctx, "evt_1")
	require.NoError(t, err)
	assert.True(t, already)
}

func TestClaimOnce_ConcurrentDeliveriesHaveOneWinner(t *testing.T) {
	repo := NewProcessedEventRepository(setupDB(t))
	ctx := context.Background()

	// Providers re-deliver aggressively; overlapping deliveries of the
	// same event must resolve to exactly one processing claim.
	const deliveries = 16

	var wg sync.WaitGroup
	var winners atomic.Int64
	errs := make(chan error, deliveries)

	for i := 0; i < deliveries; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			already, err := repo.ClaimOnce(ctx, "evt_contended")
			if err != nil {
				errs <- err
				return
			}
			if !already {
				winners.Add(1)
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}
	assert.Equal(t, int64(1), winners.Load())
}

func TestClaimOnce_DistinctEventsAreIndependent(t *testing.T) {
	repo := NewProcessedEventRepository(setupDB(t))
	ctx := context.Background()

	for _, id := range []string{"evt_a", "evt_b", "evt_c"} {
		already, err := repo.ClaimOnce(ctx, id)
		require.NoError(t, err)
		assert.False(t, already, "event %s", id)
	}
}

func TestPruneBefore(t *testing.T) {
	db := setupDB(t)
	repo := NewProcessedEventRepository(db)
	ctx := context.Background()

	_, err := repo.ClaimOnce(ctx, "evt_old")
	require.NoError(t, err)

	// Retention is a storage concern; pruned markers make the event
	// claimable again, which is acceptable after the retry horizon.
	pruned, err := repo.PruneBefore(ctx, time.Now().Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), pruned)

	already, err := repo.ClaimOnce(ctx, "evt_old")
	require.NoError(t, err)
	assert.False(t, already)
}
