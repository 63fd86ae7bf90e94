package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"purchasing-backend/internal/model"
	"purchasing-backend/internal/repository"
	"purchasing-backend/internal/testutil"

	"gorm.io/gorm"
)

func newTestService(t *testing.T) (RequestService, *gorm.DB) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	testutil.SeedSettings(t, db, model.DefaultRequestSettings())

	txManager := repository.NewTransactionManager(db)
	svc := NewRequestService(
		repository.NewRequestRepository(db),
		repository.NewHistoryRepository(db),
		repository.NewSettingsRepository(db),
		txManager,
		nil,
	)
	return svc, db
}

func createFixture(t *testing.T, svc RequestService, actor string) RequestResponse {
	t.Helper()
	resp, err := svc.CreateRequest(context.Background(), actor, CreateRequestDTO{
		ClientID:        "CL-001",
		ClientName:      "Acme Corp",
		ItemID:          "IT-100",
		ItemDescription: "Steel brackets",
		Quantity:        10,
		RequiredDate:    time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("CreateRequest failed: %v", err)
	}
	return resp
}

func historyCount(t *testing.T, db *gorm.DB, id string) int64 {
	t.Helper()
	var total int64
	if err := db.Model(&model.PurchaseRequestHistory{}).
		Where("request_id = ?", id).Count(&total).Error; err != nil {
		t.Fatalf("failed to count history: %v", err)
	}
	return total
}

func setWarehouseReception(t *testing.T, db *gorm.DB, enabled bool) {
	t.Helper()
	if err := db.Model(&model.RequestSetting{}).
		Where("key = ?", model.SettingUseWarehouseReception).
		Update("value", fmt.Sprintf("%v", enabled)).Error; err != nil {
		t.Fatalf("failed to toggle warehouse reception: %v", err)
	}
}

func intPtr(n int) *int { return &n }

func boolPtr(b bool) *bool { return &b }

func TestCreateRequestAllocatesConsecutive(t *testing.T) {
	svc, db := newTestService(t)

	resp := createFixture(t, svc, "alice")

	if resp.Status != model.StatusPending {
		t.Errorf("status = %s, want %s", resp.Status, model.StatusPending)
	}
	if resp.Consecutive != "SC-00001" {
		t.Errorf("consecutive = %s, want SC-00001", resp.Consecutive)
	}
	if resp.RequestedBy != "alice" {
		t.Errorf("requested_by = %s, want alice", resp.RequestedBy)
	}
	if got := historyCount(t, db, resp.ID); got != 1 {
		t.Errorf("history count after creation = %d, want 1", got)
	}

	second := createFixture(t, svc, "alice")
	if second.Consecutive != "SC-00002" {
		t.Errorf("second consecutive = %s, want SC-00002", second.Consecutive)
	}
}

func TestCreateRequestValidation(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.CreateRequest(context.Background(), "alice", CreateRequestDTO{
		ClientID:     "CL-001",
		ItemID:       "IT-100",
		Quantity:     0,
		RequiredDate: time.Now(),
	})

	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected ValidationError for zero quantity, got %v", err)
	}
}

func TestConsecutiveUniqueUnderConcurrency(t *testing.T) {
	svc, _ := newTestService(t)

	const workers = 8
	var wg sync.WaitGroup
	var mu sync.Mutex
	seen := make(map[string]bool)
	errs := make([]error, 0)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			resp, err := svc.CreateRequest(context.Background(), "alice", CreateRequestDTO{
				ClientID:     "CL-001",
				ItemID:       "IT-100",
				Quantity:     1,
				RequiredDate: time.Now().Add(24 * time.Hour),
			})
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs = append(errs, err)
				return
			}
			seen[resp.Consecutive] = true
		}()
	}
	wg.Wait()

	if len(errs) > 0 {
		t.Fatalf("concurrent creations failed: %v", errs)
	}
	if len(seen) != workers {
		t.Errorf("got %d distinct consecutives, want %d: %v", len(seen), workers, seen)
	}
}

func TestLifecycleToReceived(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	resp := createFixture(t, svc, "alice")

	resp, err := svc.UpdateStatus(ctx, resp.ID, "bob", UpdateStatusDTO{Status: model.StatusApproved, Notes: "looks good"})
	if err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	if resp.ApprovedBy != "bob" {
		t.Errorf("approved_by = %s, want bob", resp.ApprovedBy)
	}

	resp, err = svc.UpdateStatus(ctx, resp.ID, "bob", UpdateStatusDTO{Status: model.StatusOrdered})
	if err != nil {
		t.Fatalf("order failed: %v", err)
	}

	resp, err = svc.UpdateStatus(ctx, resp.ID, "carol", UpdateStatusDTO{
		Status:            model.StatusReceived,
		DeliveredQuantity: intPtr(8),
	})
	if err != nil {
		t.Fatalf("receive failed: %v", err)
	}

	if resp.Status != model.StatusReceived {
		t.Errorf("status = %s, want %s", resp.Status, model.StatusReceived)
	}
	if resp.ReceivedDate == nil {
		t.Error("received_date not set on terminal transition")
	}
	if resp.DeliveredQuantity == nil || *resp.DeliveredQuantity != 8 {
		t.Errorf("delivered_quantity = %v, want 8", resp.DeliveredQuantity)
	}

	// creation + 3 transitions
	if got := historyCount(t, db, resp.ID); got != 4 {
		t.Errorf("history count = %d, want 4", got)
	}
}

func TestApprovedByNeverOverwritten(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	resp := createFixture(t, svc, "alice")
	resp, _ = svc.UpdateStatus(ctx, resp.ID, "bob", UpdateStatusDTO{Status: model.StatusApproved})
	resp, _ = svc.UpdateStatus(ctx, resp.ID, "bob", UpdateStatusDTO{Status: model.StatusOrdered})

	// explicit revert, then approve again under a different actor
	resp, err := svc.UpdateStatus(ctx, resp.ID, "carol", UpdateStatusDTO{Status: model.StatusApproved})
	if err != nil {
		t.Fatalf("revert to approved failed: %v", err)
	}
	if resp.ApprovedBy != "bob" {
		t.Errorf("approved_by = %s, want the first approver bob", resp.ApprovedBy)
	}
}

func TestReceivedRequiresDeliveredQuantity(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	resp := createFixture(t, svc, "alice")
	resp, _ = svc.UpdateStatus(ctx, resp.ID, "bob", UpdateStatusDTO{Status: model.StatusApproved})
	resp, _ = svc.UpdateStatus(ctx, resp.ID, "bob", UpdateStatusDTO{Status: model.StatusOrdered})

	before := historyCount(t, db, resp.ID)

	_, err := svc.UpdateStatus(ctx, resp.ID, "carol", UpdateStatusDTO{Status: model.StatusReceived})
	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected ValidationError for missing delivered quantity, got %v", err)
	}

	_, err = svc.UpdateStatus(ctx, resp.ID, "carol", UpdateStatusDTO{
		Status:            model.StatusReceived,
		DeliveredQuantity: intPtr(-1),
	})
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected ValidationError for negative delivered quantity, got %v", err)
	}

	// rejected operations leave the ledger untouched
	if got := historyCount(t, db, resp.ID); got != before {
		t.Errorf("history count changed on rejected operation: %d -> %d", before, got)
	}
}

func TestWarehouseReceptionStep(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	setWarehouseReception(t, db, true)

	resp := createFixture(t, svc, "alice")
	resp, _ = svc.UpdateStatus(ctx, resp.ID, "bob", UpdateStatusDTO{Status: model.StatusApproved})
	resp, _ = svc.UpdateStatus(ctx, resp.ID, "bob", UpdateStatusDTO{Status: model.StatusOrdered})

	resp, err := svc.UpdateStatus(ctx, resp.ID, "carol", UpdateStatusDTO{
		Status:            model.StatusReceived,
		DeliveredQuantity: intPtr(10),
	})
	if err != nil {
		t.Fatalf("receive failed: %v", err)
	}
	if resp.ReceivedDate != nil {
		t.Error("received_date must not be set while the warehouse step is still pending")
	}

	resp, err = svc.UpdateStatus(ctx, resp.ID, "dave", UpdateStatusDTO{Status: model.StatusReceivedInWarehouse})
	if err != nil {
		t.Fatalf("warehouse reception failed: %v", err)
	}
	if resp.ReceivedDate == nil {
		t.Error("received_date not set on warehouse reception")
	}
	if resp.ReceivedInWarehouseBy != "dave" {
		t.Errorf("received_in_warehouse_by = %s, want dave", resp.ReceivedInWarehouseBy)
	}
}

func TestWarehouseReceptionDisabledRejectsStep(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	resp := createFixture(t, svc, "alice")
	resp, _ = svc.UpdateStatus(ctx, resp.ID, "bob", UpdateStatusDTO{Status: model.StatusApproved})
	resp, _ = svc.UpdateStatus(ctx, resp.ID, "bob", UpdateStatusDTO{Status: model.StatusOrdered})
	resp, _ = svc.UpdateStatus(ctx, resp.ID, "carol", UpdateStatusDTO{
		Status:            model.StatusReceived,
		DeliveredQuantity: intPtr(10),
	})

	_, err := svc.UpdateStatus(ctx, resp.ID, "dave", UpdateStatusDTO{Status: model.StatusReceivedInWarehouse})
	var transitionErr *InvalidTransitionError
	if !errors.As(err, &transitionErr) {
		t.Fatalf("expected InvalidTransitionError, got %v", err)
	}
}

func TestReceivedToPendingNeedsReopen(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	resp := createFixture(t, svc, "alice")
	resp, _ = svc.UpdateStatus(ctx, resp.ID, "bob", UpdateStatusDTO{Status: model.StatusApproved})
	resp, _ = svc.UpdateStatus(ctx, resp.ID, "bob", UpdateStatusDTO{Status: model.StatusOrdered})
	resp, _ = svc.UpdateStatus(ctx, resp.ID, "carol", UpdateStatusDTO{
		Status:            model.StatusReceived,
		DeliveredQuantity: intPtr(10),
	})

	_, err := svc.UpdateStatus(ctx, resp.ID, "carol", UpdateStatusDTO{Status: model.StatusPending})
	var transitionErr *InvalidTransitionError
	if !errors.As(err, &transitionErr) {
		t.Fatalf("expected InvalidTransitionError for received -> pending, got %v", err)
	}

	reopened, err := svc.Reopen(ctx, resp.ID, "boss")
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	if reopened.Status != model.StatusPending {
		t.Errorf("status after reopen = %s, want %s", reopened.Status, model.StatusPending)
	}
	if !reopened.Reopened {
		t.Error("reopened flag not set")
	}
}

func TestReopenIsIdempotent(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	resp := createFixture(t, svc, "alice")
	resp, _ = svc.UpdateStatus(ctx, resp.ID, "bob", UpdateStatusDTO{Status: model.StatusApproved})
	resp, _ = svc.UpdateStatus(ctx, resp.ID, "bob", UpdateStatusDTO{Status: model.StatusOrdered})
	resp, _ = svc.UpdateStatus(ctx, resp.ID, "carol", UpdateStatusDTO{
		Status:            model.StatusReceived,
		DeliveredQuantity: intPtr(10),
	})

	first, err := svc.Reopen(ctx, resp.ID, "boss")
	if err != nil {
		t.Fatalf("first reopen failed: %v", err)
	}
	afterFirst := historyCount(t, db, resp.ID)

	second, err := svc.Reopen(ctx, resp.ID, "boss")
	if err != nil {
		t.Fatalf("second reopen errored: %v", err)
	}
	if !first.Reopened || !second.Reopened {
		t.Error("reopened flag must stay true")
	}
	if got := historyCount(t, db, resp.ID); got != afterFirst {
		t.Errorf("no-op reopen appended history: %d -> %d", afterFirst, got)
	}
}

func TestReopenRejectsActiveRequest(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	resp := createFixture(t, svc, "alice")
	resp, _ = svc.UpdateStatus(ctx, resp.ID, "bob", UpdateStatusDTO{Status: model.StatusApproved})

	_, err := svc.Reopen(ctx, resp.ID, "boss")
	var transitionErr *InvalidTransitionError
	if !errors.As(err, &transitionErr) {
		t.Fatalf("expected InvalidTransitionError reopening an approved request, got %v", err)
	}
}

func TestDualControlRejectionRoundTrip(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	resp := createFixture(t, svc, "alice")
	resp, _ = svc.UpdateStatus(ctx, resp.ID, "bob", UpdateStatusDTO{Status: model.StatusApproved})
	before := historyCount(t, db, resp.ID)

	flagged, err := svc.RequestAdministrativeAction(ctx, resp.ID, "alice", AdministrativeActionDTO{
		Action: model.PendingActionCancellation,
		Notes:  "client withdrew",
	})
	if err != nil {
		t.Fatalf("requestAction failed: %v", err)
	}
	if flagged.Status != model.StatusApproved {
		t.Errorf("status changed on proposal: %s", flagged.Status)
	}
	if flagged.PendingAction != string(model.PendingActionCancellation) {
		t.Errorf("pending_action = %s, want %s", flagged.PendingAction, model.PendingActionCancellation)
	}
	if flagged.PreviousStatus == nil || *flagged.PreviousStatus != model.StatusApproved {
		t.Errorf("previous_status = %v, want %s", flagged.PreviousStatus, model.StatusApproved)
	}

	resolved, err := svc.ResolveAdministrativeAction(ctx, resp.ID, "boss", ResolveActionDTO{
		Approve: boolPtr(false),
		Notes:   "keep it",
	})
	if err != nil {
		t.Fatalf("resolveAction failed: %v", err)
	}
	if resolved.Status != model.StatusApproved {
		t.Errorf("status after rejection = %s, want %s", resolved.Status, model.StatusApproved)
	}
	if resolved.PendingAction != string(model.PendingActionNone) {
		t.Errorf("pending_action after rejection = %s, want NONE", resolved.PendingAction)
	}
	if resolved.PreviousStatus != nil {
		t.Errorf("previous_status after rejection = %v, want nil", resolved.PreviousStatus)
	}
	if got := historyCount(t, db, resp.ID); got != before+2 {
		t.Errorf("history count = %d, want %d (open + reject)", got, before+2)
	}
}

func TestDualControlApprovedCancellation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	resp := createFixture(t, svc, "alice")
	resp, _ = svc.UpdateStatus(ctx, resp.ID, "bob", UpdateStatusDTO{Status: model.StatusApproved})

	_, err := svc.RequestAdministrativeAction(ctx, resp.ID, "alice", AdministrativeActionDTO{
		Action: model.PendingActionCancellation,
	})
	if err != nil {
		t.Fatalf("requestAction failed: %v", err)
	}

	resolved, err := svc.ResolveAdministrativeAction(ctx, resp.ID, "boss", ResolveActionDTO{
		Approve: boolPtr(true),
		Notes:   "confirmed",
	})
	if err != nil {
		t.Fatalf("resolveAction failed: %v", err)
	}
	if resolved.Status != model.StatusCanceled {
		t.Errorf("status = %s, want %s", resolved.Status, model.StatusCanceled)
	}
	if resolved.PendingAction != string(model.PendingActionNone) {
		t.Errorf("pending_action = %s, want NONE", resolved.PendingAction)
	}
	// the pre-cancellation status survives as a restore point
	if resolved.PreviousStatus == nil || *resolved.PreviousStatus != model.StatusApproved {
		t.Errorf("previous_status = %v, want %s", resolved.PreviousStatus, model.StatusApproved)
	}
}

func TestDualControlUnapproval(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	resp := createFixture(t, svc, "alice")
	resp, _ = svc.UpdateStatus(ctx, resp.ID, "bob", UpdateStatusDTO{Status: model.StatusApproved})

	_, err := svc.RequestAdministrativeAction(ctx, resp.ID, "alice", AdministrativeActionDTO{
		Action: model.PendingActionUnapproval,
	})
	if err != nil {
		t.Fatalf("requestAction failed: %v", err)
	}

	resolved, err := svc.ResolveAdministrativeAction(ctx, resp.ID, "boss", ResolveActionDTO{
		Approve: boolPtr(true),
	})
	if err != nil {
		t.Fatalf("resolveAction failed: %v", err)
	}
	if resolved.Status != model.StatusPending {
		t.Errorf("status = %s, want %s", resolved.Status, model.StatusPending)
	}
	if resolved.ApprovedBy != "bob" {
		t.Errorf("approved_by = %s, want the original approver on record", resolved.ApprovedBy)
	}
}

func TestDualControlRequiresDistinctActor(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	resp := createFixture(t, svc, "alice")
	resp, _ = svc.UpdateStatus(ctx, resp.ID, "bob", UpdateStatusDTO{Status: model.StatusApproved})

	_, err := svc.RequestAdministrativeAction(ctx, resp.ID, "alice", AdministrativeActionDTO{
		Action: model.PendingActionCancellation,
	})
	if err != nil {
		t.Fatalf("requestAction failed: %v", err)
	}

	_, err = svc.ResolveAdministrativeAction(ctx, resp.ID, "alice", ResolveActionDTO{
		Approve: boolPtr(true),
	})
	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected ValidationError when the proposer resolves, got %v", err)
	}
}

func TestOneActionAtATime(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	resp := createFixture(t, svc, "alice")
	resp, _ = svc.UpdateStatus(ctx, resp.ID, "bob", UpdateStatusDTO{Status: model.StatusApproved})

	if _, err := svc.RequestAdministrativeAction(ctx, resp.ID, "alice", AdministrativeActionDTO{
		Action: model.PendingActionCancellation,
	}); err != nil {
		t.Fatalf("first requestAction failed: %v", err)
	}

	_, err := svc.RequestAdministrativeAction(ctx, resp.ID, "carol", AdministrativeActionDTO{
		Action: model.PendingActionUnapproval,
	})
	if !errors.Is(err, ErrActionAlreadyPending) {
		t.Fatalf("expected ErrActionAlreadyPending, got %v", err)
	}
}

func TestResolveWithoutPendingAction(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	resp := createFixture(t, svc, "alice")

	_, err := svc.ResolveAdministrativeAction(ctx, resp.ID, "boss", ResolveActionDTO{Approve: boolPtr(true)})
	if !errors.Is(err, ErrNoPendingAction) {
		t.Fatalf("expected ErrNoPendingAction, got %v", err)
	}
}

func TestUnapprovalOnlyFromApproved(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	resp := createFixture(t, svc, "alice")

	_, err := svc.RequestAdministrativeAction(ctx, resp.ID, "alice", AdministrativeActionDTO{
		Action: model.PendingActionUnapproval,
	})
	var transitionErr *InvalidTransitionError
	if !errors.As(err, &transitionErr) {
		t.Fatalf("expected InvalidTransitionError for un-approval of a pending request, got %v", err)
	}
}

func TestEditAfterApprovalIsFlagged(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	resp := createFixture(t, svc, "alice")

	// pending edits are silent
	edited, err := svc.UpdateRequest(ctx, resp.ID, "alice", UpdateRequestDTO{Quantity: intPtr(12)})
	if err != nil {
		t.Fatalf("pending edit failed: %v", err)
	}
	if edited.HasBeenModified {
		t.Error("has_been_modified set by a pre-approval edit")
	}
	if got := historyCount(t, db, resp.ID); got != 1 {
		t.Errorf("history count after pending edit = %d, want 1", got)
	}

	resp, _ = svc.UpdateStatus(ctx, resp.ID, "bob", UpdateStatusDTO{Status: model.StatusApproved})
	before := historyCount(t, db, resp.ID)

	edited, err = svc.UpdateRequest(ctx, resp.ID, "alice", UpdateRequestDTO{Quantity: intPtr(15)})
	if err != nil {
		t.Fatalf("post-approval edit failed: %v", err)
	}
	if !edited.HasBeenModified {
		t.Error("has_been_modified not set by a post-approval edit")
	}
	if edited.Quantity != 15 {
		t.Errorf("quantity = %d, want 15", edited.Quantity)
	}
	if edited.Status != model.StatusApproved {
		t.Errorf("status changed by content edit: %s", edited.Status)
	}
	if got := historyCount(t, db, resp.ID); got != before+1 {
		t.Errorf("history count = %d, want %d", got, before+1)
	}

	entries, err := svc.GetHistory(ctx, resp.ID)
	if err != nil {
		t.Fatalf("GetHistory failed: %v", err)
	}
	if entries[0].Status != model.StatusApproved {
		t.Errorf("edit entry tagged %s, want current status %s", entries[0].Status, model.StatusApproved)
	}
}

func TestEditRejectedOnFinishedRequest(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	resp := createFixture(t, svc, "alice")
	resp, _ = svc.UpdateStatus(ctx, resp.ID, "bob", UpdateStatusDTO{Status: model.StatusApproved})
	resp, _ = svc.UpdateStatus(ctx, resp.ID, "bob", UpdateStatusDTO{Status: model.StatusOrdered})
	resp, _ = svc.UpdateStatus(ctx, resp.ID, "carol", UpdateStatusDTO{
		Status:            model.StatusReceived,
		DeliveredQuantity: intPtr(10),
	})

	_, err := svc.UpdateRequest(ctx, resp.ID, "alice", UpdateRequestDTO{Quantity: intPtr(99)})
	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected ValidationError editing a received request, got %v", err)
	}
}

func TestGetHistoryNewestFirst(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	resp := createFixture(t, svc, "alice")
	time.Sleep(10 * time.Millisecond)
	if _, err := svc.UpdateStatus(ctx, resp.ID, "bob", UpdateStatusDTO{Status: model.StatusApproved, Notes: "ok"}); err != nil {
		t.Fatalf("approve failed: %v", err)
	}

	entries, err := svc.GetHistory(ctx, resp.ID)
	if err != nil {
		t.Fatalf("GetHistory failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("len(history) = %d, want 2", len(entries))
	}
	if entries[0].Status != model.StatusApproved || entries[1].Status != model.StatusPending {
		t.Errorf("history not newest-first: %s, %s", entries[0].Status, entries[1].Status)
	}
}

func TestNotFound(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.GetRequest(ctx, "4f9c1f4e-0000-0000-0000-000000000000")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	_, err = svc.UpdateStatus(ctx, "4f9c1f4e-0000-0000-0000-000000000000", "bob", UpdateStatusDTO{Status: model.StatusApproved})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
