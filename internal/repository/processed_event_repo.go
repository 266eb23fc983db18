package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"shdeco/internal/domain"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type ProcessedEventRepository struct {
	db *gorm.DB
}

func NewProcessedEventRepository(db *gorm.DB) *ProcessedEventRepository {
	return &ProcessedEventRepository{db: db}
}

// ClaimOnce inserts the idempotency marker for eventID. The primary-key
// constraint is the only concurrency control: of two concurrent
// deliveries exactly one insert succeeds, the other observes the
// duplicate and reports alreadyProcessed. Any other error is transient
// and must bubble up as a 5xx so the provider retries.
func (r *ProcessedEventRepository) ClaimOnce(ctx context.Context, eventID string) (bool, error) {
	rec := domain.ProcessedEvent{
		EventID:     eventID,
		ProcessedAt: time.Now().UTC(),
	}
	err := r.db.WithContext(ctx).Create(&rec).Error
	if err == nil {
		return false, nil
	}
	if isDuplicateKey(err) {
		return true, nil
	}
	return false, err
}

// PruneBefore drops markers older than the cutoff. Retention is a
// storage-growth concern only, never a correctness one.
func (r *ProcessedEventRepository) PruneBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	tx := r.db.WithContext(ctx).
		Where("processed_at < ?", cutoff).
		Delete(&domain.ProcessedEvent{})
	return tx.RowsAffected, tx.Error
}

func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	// modernc sqlite reports constraint violations by message only
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
