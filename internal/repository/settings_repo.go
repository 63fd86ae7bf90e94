package repository

import (
	"context"

	"purchasing-backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SettingsRepository persists the flat key/value configuration rows.
type SettingsRepository interface {
	GetAll(ctx context.Context) (map[string]string, error)
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	SetAll(ctx context.Context, kv map[string]string) error
	// LockCounter takes a transaction-scoped advisory lock keyed by the
	// request prefix, serializing concurrent consecutive-number allocations.
	LockCounter(ctx context.Context, prefix string) error
}

type settingsRepository struct {
	db *gorm.DB
}

func NewSettingsRepository(db *gorm.DB) SettingsRepository {
	return &settingsRepository{db: db}
}

func (r *settingsRepository) GetAll(ctx context.Context) (map[string]string, error) {
	var rows []model.RequestSetting
	if err := GetDB(ctx, r.db).Find(&rows).Error; err != nil {
		return nil, err
	}

	kv := make(map[string]string, len(rows))
	for _, row := range rows {
		kv[row.Key] = row.Value
	}
	return kv, nil
}

func (r *settingsRepository) Get(ctx context.Context, key string) (string, error) {
	var row model.RequestSetting
	if err := GetDB(ctx, r.db).First(&row, "key = ?", key).Error; err != nil {
		return "", err
	}
	return row.Value, nil
}

func (r *settingsRepository) Set(ctx context.Context, key, value string) error {
	row := model.RequestSetting{Key: key, Value: value}
	return GetDB(ctx, r.db).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&row).Error
}

func (r *settingsRepository) SetAll(ctx context.Context, kv map[string]string) error {
	for key, value := range kv {
		if err := r.Set(ctx, key, value); err != nil {
			return err
		}
	}
	return nil
}

func (r *settingsRepository) LockCounter(ctx context.Context, prefix string) error {
	return GetDB(ctx, r.db).Exec("SELECT pg_advisory_xact_lock(hashtext(?))", prefix).Error
}
