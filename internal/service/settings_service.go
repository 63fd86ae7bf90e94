package service

import (
	"context"
	"fmt"
	"strings"

	"purchasing-backend/internal/model"
	"purchasing-backend/internal/repository"
)

type SettingsService interface {
	GetSettings(ctx context.Context) (model.RequestSettings, error)
	SaveSettings(ctx context.Context, settings model.RequestSettings) (model.RequestSettings, error)
	// SeedDefaults writes the default configuration for any missing key.
	SeedDefaults(ctx context.Context) error
}

type settingsService struct {
	settingsRepo repository.SettingsRepository
	txManager    repository.TransactionManager
}

func NewSettingsService(settingsRepo repository.SettingsRepository, txManager repository.TransactionManager) SettingsService {
	return &settingsService{settingsRepo: settingsRepo, txManager: txManager}
}

func (s *settingsService) GetSettings(ctx context.Context) (model.RequestSettings, error) {
	kv, err := s.settingsRepo.GetAll(ctx)
	if err != nil {
		return model.RequestSettings{}, fmt.Errorf("failed to load settings: %w", err)
	}
	return model.SettingsFromKV(kv), nil
}

func (s *settingsService) SaveSettings(ctx context.Context, settings model.RequestSettings) (model.RequestSettings, error) {
	if strings.TrimSpace(settings.RequestPrefix) == "" {
		return model.RequestSettings{}, &ValidationError{Field: "request_prefix", Reason: "must not be empty"}
	}
	if settings.NextRequestNumber <= 0 {
		return model.RequestSettings{}, &ValidationError{Field: "next_request_number", Reason: "must be greater than zero"}
	}

	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		current, loadErr := s.settingsRepo.GetAll(txCtx)
		if loadErr != nil {
			return fmt.Errorf("failed to load settings: %w", loadErr)
		}
		currentSettings := model.SettingsFromKV(current)

		// Serialize against concurrent allocations before touching the
		// counter. Consecutives are never reused, so it may not move backward.
		if lockErr := s.settingsRepo.LockCounter(txCtx, currentSettings.RequestPrefix); lockErr != nil {
			return fmt.Errorf("failed to lock request counter: %w", lockErr)
		}
		if settings.NextRequestNumber < currentSettings.NextRequestNumber {
			return &ValidationError{
				Field:  "next_request_number",
				Reason: fmt.Sprintf("must not decrease (current %d)", currentSettings.NextRequestNumber),
			}
		}

		return s.settingsRepo.SetAll(txCtx, settings.ToKV())
	})

	if err != nil {
		return model.RequestSettings{}, err
	}

	return settings, nil
}

func (s *settingsService) SeedDefaults(ctx context.Context) error {
	kv, err := s.settingsRepo.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	for key, value := range model.DefaultRequestSettings().ToKV() {
		if _, ok := kv[key]; ok {
			continue
		}
		if err := s.settingsRepo.Set(ctx, key, value); err != nil {
			return fmt.Errorf("failed to seed setting %s: %w", key, err)
		}
	}
	return nil
}
