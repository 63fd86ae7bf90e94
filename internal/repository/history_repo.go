package repository

import (
	"context"

	"purchasing-backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// HistoryRepository is the append-only ledger of request status and content
// changes. There is deliberately no update or delete.
type HistoryRepository interface {
	Append(ctx context.Context, entry *model.PurchaseRequestHistory) error
	ListForRequest(ctx context.Context, requestID uuid.UUID) ([]model.PurchaseRequestHistory, error)
	CountForRequest(ctx context.Context, requestID uuid.UUID) (int64, error)
}

type historyRepository struct {
	db *gorm.DB
}

func NewHistoryRepository(db *gorm.DB) HistoryRepository {
	return &historyRepository{db: db}
}

func (r *historyRepository) Append(ctx context.Context, entry *model.PurchaseRequestHistory) error {
	return GetDB(ctx, r.db).Create(entry).Error
}

// ListForRequest returns every ledger entry for the request, newest first.
// Each call is a fresh read, not a cursor.
func (r *historyRepository) ListForRequest(ctx context.Context, requestID uuid.UUID) ([]model.PurchaseRequestHistory, error) {
	var entries []model.PurchaseRequestHistory
	if err := GetDB(ctx, r.db).
		Where("request_id = ?", requestID).
		Order("created_at DESC, id DESC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *historyRepository) CountForRequest(ctx context.Context, requestID uuid.UUID) (int64, error) {
	var total int64
	if err := GetDB(ctx, r.db).
		Model(&model.PurchaseRequestHistory{}).
		Where("request_id = ?", requestID).
		Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}
