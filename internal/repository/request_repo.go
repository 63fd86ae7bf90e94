package repository

import (
	"context"

	"purchasing-backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RequestRepository owns persistence of the PurchaseRequest aggregate.
type RequestRepository interface {
	Create(ctx context.Context, req *model.PurchaseRequest) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.PurchaseRequest, error)
	// FindByIDForUpdate locks the aggregate row for the duration of the
	// surrounding transaction, serializing concurrent writers on the same id.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.PurchaseRequest, error)
	FindByConsecutive(ctx context.Context, consecutive string) (*model.PurchaseRequest, error)
	List(ctx context.Context) ([]model.PurchaseRequest, error)
	Save(ctx context.Context, req *model.PurchaseRequest) error
}

type requestRepository struct {
	db *gorm.DB
}

func NewRequestRepository(db *gorm.DB) RequestRepository {
	return &requestRepository{db: db}
}

func (r *requestRepository) Create(ctx context.Context, req *model.PurchaseRequest) error {
	return GetDB(ctx, r.db).Create(req).Error
}

func (r *requestRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.PurchaseRequest, error) {
	var req model.PurchaseRequest
	if err := GetDB(ctx, r.db).First(&req, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *requestRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.PurchaseRequest, error) {
	var req model.PurchaseRequest
	if err := GetDB(ctx, r.db).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&req, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *requestRepository) FindByConsecutive(ctx context.Context, consecutive string) (*model.PurchaseRequest, error) {
	var req model.PurchaseRequest
	if err := GetDB(ctx, r.db).First(&req, "consecutive = ?", consecutive).Error; err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *requestRepository) List(ctx context.Context) ([]model.PurchaseRequest, error) {
	var requests []model.PurchaseRequest
	if err := GetDB(ctx, r.db).Order("created_at DESC").Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

func (r *requestRepository) Save(ctx context.Context, req *model.PurchaseRequest) error {
	return GetDB(ctx, r.db).Save(req).Error
}
