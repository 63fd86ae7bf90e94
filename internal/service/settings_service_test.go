package service

import (
	"context"
	"errors"
	"testing"

	"purchasing-backend/internal/model"
	"purchasing-backend/internal/repository"
	"purchasing-backend/internal/testutil"
)

func newSettingsTestService(t *testing.T) SettingsService {
	t.Helper()
	db := testutil.SetupTestDB(t)
	return NewSettingsService(
		repository.NewSettingsRepository(db),
		repository.NewTransactionManager(db),
	)
}

func TestSeedDefaultsFillsMissingKeysOnly(t *testing.T) {
	svc := newSettingsTestService(t)
	ctx := context.Background()

	if err := svc.SeedDefaults(ctx); err != nil {
		t.Fatalf("SeedDefaults failed: %v", err)
	}

	settings, err := svc.GetSettings(ctx)
	if err != nil {
		t.Fatalf("GetSettings failed: %v", err)
	}
	if settings.RequestPrefix != "SC-" || settings.NextRequestNumber != 1 {
		t.Errorf("unexpected defaults: %+v", settings)
	}

	settings.RequestPrefix = "PR-"
	settings.NextRequestNumber = 7
	if _, err := svc.SaveSettings(ctx, settings); err != nil {
		t.Fatalf("SaveSettings failed: %v", err)
	}

	// seeding again must not clobber stored values
	if err := svc.SeedDefaults(ctx); err != nil {
		t.Fatalf("second SeedDefaults failed: %v", err)
	}
	reloaded, err := svc.GetSettings(ctx)
	if err != nil {
		t.Fatalf("GetSettings failed: %v", err)
	}
	if reloaded.RequestPrefix != "PR-" || reloaded.NextRequestNumber != 7 {
		t.Errorf("seeding overwrote stored settings: %+v", reloaded)
	}
}

func TestSaveSettingsRoundTrip(t *testing.T) {
	svc := newSettingsTestService(t)
	ctx := context.Background()

	if err := svc.SeedDefaults(ctx); err != nil {
		t.Fatalf("SeedDefaults failed: %v", err)
	}

	in := model.RequestSettings{
		RequestPrefix:         "SC-",
		NextRequestNumber:     100,
		UseWarehouseReception: true,
		Routes:                []string{"Air", "Sea"},
		ShippingMethods:       []string{"Courier", "Freight"},
		ExportLogoURL:         "https://example.com/logo.png",
		ExportFooterNote:      "Thanks for your business",
	}
	if _, err := svc.SaveSettings(ctx, in); err != nil {
		t.Fatalf("SaveSettings failed: %v", err)
	}

	out, err := svc.GetSettings(ctx)
	if err != nil {
		t.Fatalf("GetSettings failed: %v", err)
	}
	if out.NextRequestNumber != 100 || !out.UseWarehouseReception {
		t.Errorf("settings not persisted: %+v", out)
	}
	if len(out.Routes) != 2 || out.Routes[0] != "Air" {
		t.Errorf("routes not persisted: %v", out.Routes)
	}
}

func TestSaveSettingsRejectsDecreasingCounter(t *testing.T) {
	svc := newSettingsTestService(t)
	ctx := context.Background()

	if err := svc.SeedDefaults(ctx); err != nil {
		t.Fatalf("SeedDefaults failed: %v", err)
	}

	settings, _ := svc.GetSettings(ctx)
	settings.NextRequestNumber = 50
	if _, err := svc.SaveSettings(ctx, settings); err != nil {
		t.Fatalf("SaveSettings failed: %v", err)
	}

	settings.NextRequestNumber = 10
	_, err := svc.SaveSettings(ctx, settings)
	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected ValidationError for decreasing counter, got %v", err)
	}

	reloaded, _ := svc.GetSettings(ctx)
	if reloaded.NextRequestNumber != 50 {
		t.Errorf("counter changed by rejected save: %d", reloaded.NextRequestNumber)
	}
}

func TestSaveSettingsValidation(t *testing.T) {
	svc := newSettingsTestService(t)
	ctx := context.Background()

	var validationErr *ValidationError

	_, err := svc.SaveSettings(ctx, model.RequestSettings{RequestPrefix: "  ", NextRequestNumber: 1})
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected ValidationError for blank prefix, got %v", err)
	}

	_, err = svc.SaveSettings(ctx, model.RequestSettings{RequestPrefix: "SC-", NextRequestNumber: 0})
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected ValidationError for zero counter, got %v", err)
	}
}
