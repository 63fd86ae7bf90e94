package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"purchasing-backend/internal/model"
	"purchasing-backend/internal/repository"
	ws "purchasing-backend/internal/websocket"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Fixed ledger notes written by the engine itself.
const (
	noteCreated             = "Purchase request created"
	noteReopened            = "Request reopened and returned to pending"
	noteEditedAfterApproval = "Edited after approval"
	noteCancellationOpened  = "Cancellation requested, awaiting second approval"
	noteUnapprovalOpened    = "Un-approval requested, awaiting second approval"
	noteActionRejected      = "Administrative action rejected"
)

// --- DTOs ---

type CreateRequestDTO struct {
	ClientID        string          `json:"client_id" binding:"required"`
	ClientName      string          `json:"client_name"`
	ItemID          string          `json:"item_id" binding:"required"`
	ItemDescription string          `json:"item_description"`
	Quantity        int             `json:"quantity" binding:"required,gt=0"`
	UnitSalePrice   decimal.Decimal `json:"unit_sale_price"`
	Priority        string          `json:"priority" binding:"omitempty,oneof=LOW MEDIUM HIGH URGENT"`
	PurchaseType    string          `json:"purchase_type" binding:"omitempty,oneof=SINGLE_SUPPLIER MULTI_SUPPLIER"`
	Supplier        string          `json:"supplier"`
	Route           string          `json:"route"`
	ShippingMethod  string          `json:"shipping_method"`
	Notes           string          `json:"notes"`
	RequiredDate    time.Time       `json:"required_date" binding:"required"`
	ArrivalDate     *time.Time      `json:"arrival_date"`
	Inventory       int             `json:"inventory"`
}

// UpdateRequestDTO is the whitelist of editable content fields. Status,
// consecutive and history are not reachable from here. Pointer fields
// distinguish "not provided" from zero values.
type UpdateRequestDTO struct {
	Quantity       *int             `json:"quantity" binding:"omitempty,gt=0"`
	UnitSalePrice  *decimal.Decimal `json:"unit_sale_price"`
	Priority       *string          `json:"priority" binding:"omitempty,oneof=LOW MEDIUM HIGH URGENT"`
	PurchaseType   *string          `json:"purchase_type" binding:"omitempty,oneof=SINGLE_SUPPLIER MULTI_SUPPLIER"`
	Supplier       *string          `json:"supplier"`
	Route          *string          `json:"route"`
	ShippingMethod *string          `json:"shipping_method"`
	Notes          *string          `json:"notes"`
	RequiredDate   *time.Time       `json:"required_date"`
	ArrivalDate    *time.Time       `json:"arrival_date"`
}

type UpdateStatusDTO struct {
	Status            model.Status `json:"status" binding:"required"`
	Notes             string       `json:"notes"`
	DeliveredQuantity *int         `json:"delivered_quantity"`
}

type AdministrativeActionDTO struct {
	Action model.PendingAction `json:"action" binding:"required,oneof=CANCELLATION_REQUEST UNAPPROVAL_REQUEST"`
	Notes  string              `json:"notes"`
}

type ResolveActionDTO struct {
	Approve *bool  `json:"approve" binding:"required"`
	Notes   string `json:"notes"`
}

type RequestResponse struct {
	ID                    string           `json:"id"`
	Consecutive           string           `json:"consecutive"`
	ClientID              string           `json:"client_id"`
	ClientName            string           `json:"client_name"`
	ItemID                string           `json:"item_id"`
	ItemDescription       string           `json:"item_description"`
	Quantity              int              `json:"quantity"`
	UnitSalePrice         string           `json:"unit_sale_price"`
	Priority              string           `json:"priority"`
	PurchaseType          string           `json:"purchase_type"`
	Supplier              string           `json:"supplier"`
	Route                 string           `json:"route"`
	ShippingMethod        string           `json:"shipping_method"`
	Notes                 string           `json:"notes"`
	RequestDate           string           `json:"request_date"`
	RequiredDate          string           `json:"required_date"`
	ReceivedDate          *string          `json:"received_date"`
	ArrivalDate           *string          `json:"arrival_date"`
	DeliveredQuantity     *int             `json:"delivered_quantity"`
	Inventory             int              `json:"inventory"`
	Status                model.Status     `json:"status"`
	StatusMeta            model.StatusMeta `json:"status_meta"`
	PendingAction         string           `json:"pending_action"`
	PreviousStatus        *model.Status    `json:"previous_status"`
	Reopened              bool             `json:"reopened"`
	RequestedBy           string           `json:"requested_by"`
	ApprovedBy            string           `json:"approved_by"`
	ReceivedInWarehouseBy string           `json:"received_in_warehouse_by"`
	LastStatusUpdateBy    string           `json:"last_status_update_by"`
	LastStatusUpdateNotes string           `json:"last_status_update_notes"`
	HasBeenModified       bool             `json:"has_been_modified"`
	LastModifiedBy        string           `json:"last_modified_by"`
	LastModifiedAt        *string          `json:"last_modified_at"`
	CreatedAt             string           `json:"created_at"`
}

type HistoryEntryResponse struct {
	ID        string       `json:"id"`
	RequestID string       `json:"request_id"`
	Status    model.Status `json:"status"`
	UpdatedBy string       `json:"updated_by"`
	Notes     string       `json:"notes"`
	CreatedAt string       `json:"created_at"`
}

// --- Interface ---

type RequestService interface {
	CreateRequest(ctx context.Context, actor string, req CreateRequestDTO) (RequestResponse, error)
	UpdateRequest(ctx context.Context, id string, actor string, req UpdateRequestDTO) (RequestResponse, error)
	UpdateStatus(ctx context.Context, id string, actor string, req UpdateStatusDTO) (RequestResponse, error)
	Reopen(ctx context.Context, id string, actor string) (RequestResponse, error)
	RequestAdministrativeAction(ctx context.Context, id string, actor string, req AdministrativeActionDTO) (RequestResponse, error)
	ResolveAdministrativeAction(ctx context.Context, id string, actor string, req ResolveActionDTO) (RequestResponse, error)
	GetRequest(ctx context.Context, id string) (RequestResponse, error)
	ListRequests(ctx context.Context) ([]RequestResponse, error)
	GetHistory(ctx context.Context, id string) ([]HistoryEntryResponse, error)
}

type requestService struct {
	requestRepo  repository.RequestRepository
	historyRepo  repository.HistoryRepository
	settingsRepo repository.SettingsRepository
	txManager    repository.TransactionManager
	hub          *ws.Hub
}

func NewRequestService(
	requestRepo repository.RequestRepository,
	historyRepo repository.HistoryRepository,
	settingsRepo repository.SettingsRepository,
	txManager repository.TransactionManager,
	hub *ws.Hub,
) RequestService {
	return &requestService{
		requestRepo:  requestRepo,
		historyRepo:  historyRepo,
		settingsRepo: settingsRepo,
		txManager:    txManager,
		hub:          hub,
	}
}

// --- Implementation ---

func (s *requestService) CreateRequest(ctx context.Context, actor string, req CreateRequestDTO) (RequestResponse, error) {
	if actor == "" {
		return RequestResponse{}, &ValidationError{Field: "actor", Reason: "must not be empty"}
	}
	if req.Quantity <= 0 {
		return RequestResponse{}, &ValidationError{Field: "quantity", Reason: "must be greater than zero"}
	}
	if req.RequiredDate.IsZero() {
		return RequestResponse{}, &ValidationError{Field: "required_date", Reason: "is required"}
	}

	priority := req.Priority
	if priority == "" {
		priority = model.PriorityMedium
	}
	purchaseType := req.PurchaseType
	if purchaseType == "" {
		purchaseType = model.PurchaseTypeSingleSupplier
	}

	request := model.PurchaseRequest{
		ClientID:        req.ClientID,
		ClientName:      req.ClientName,
		ItemID:          req.ItemID,
		ItemDescription: req.ItemDescription,
		Quantity:        req.Quantity,
		UnitSalePrice:   req.UnitSalePrice,
		Priority:        priority,
		PurchaseType:    purchaseType,
		Supplier:        req.Supplier,
		Route:           req.Route,
		ShippingMethod:  req.ShippingMethod,
		Notes:           req.Notes,
		RequestDate:     time.Now(),
		RequiredDate:    req.RequiredDate,
		ArrivalDate:     req.ArrivalDate,
		Inventory:       req.Inventory,
		Status:          model.StatusPending,
		PendingAction:   model.PendingActionNone,
		RequestedBy:     actor,
	}

	// Number allocation and creation share one transaction so a failed insert
	// never burns a consecutive, and two concurrent creations never read the
	// same counter value.
	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		consecutive, allocErr := s.allocateConsecutive(txCtx)
		if allocErr != nil {
			return fmt.Errorf("failed to allocate consecutive: %w", allocErr)
		}
		request.Consecutive = consecutive

		if createErr := s.requestRepo.Create(txCtx, &request); createErr != nil {
			return fmt.Errorf("failed to create purchase request: %w", createErr)
		}

		entry := &model.PurchaseRequestHistory{
			RequestID: request.ID,
			Status:    model.StatusPending,
			UpdatedBy: actor,
			Notes:     noteCreated,
		}
		if appendErr := s.historyRepo.Append(txCtx, entry); appendErr != nil {
			return fmt.Errorf("failed to append history: %w", appendErr)
		}

		return nil
	})

	if err != nil {
		return RequestResponse{}, err
	}

	s.broadcast("request.created", &request)
	return toRequestResponse(&request), nil
}

func (s *requestService) UpdateRequest(ctx context.Context, id string, actor string, req UpdateRequestDTO) (RequestResponse, error) {
	requestID, err := parseRequestID(id)
	if err != nil {
		return RequestResponse{}, err
	}
	if actor == "" {
		return RequestResponse{}, &ValidationError{Field: "actor", Reason: "must not be empty"}
	}
	if req.Quantity != nil && *req.Quantity <= 0 {
		return RequestResponse{}, &ValidationError{Field: "quantity", Reason: "must be greater than zero"}
	}

	var request *model.PurchaseRequest
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		var findErr error
		request, findErr = s.requestRepo.FindByIDForUpdate(txCtx, requestID)
		if findErr != nil {
			return wrapNotFound(findErr)
		}

		switch request.Status {
		case model.StatusPending, model.StatusApproved, model.StatusOrdered:
			// editable
		default:
			return &ValidationError{Field: "status", Reason: fmt.Sprintf("request in status %s can no longer be edited", request.Status)}
		}

		applyContentEdit(request, req)

		now := time.Now()
		request.LastModifiedBy = actor
		request.LastModifiedAt = &now

		// Edits after approval are flagged and mirrored into the ledger so
		// they stay visible without touching the status.
		postApproval := request.Status == model.StatusApproved || request.Status == model.StatusOrdered
		if postApproval {
			request.HasBeenModified = true
		}

		if saveErr := s.requestRepo.Save(txCtx, request); saveErr != nil {
			return fmt.Errorf("failed to update purchase request: %w", saveErr)
		}

		if postApproval {
			entry := &model.PurchaseRequestHistory{
				RequestID: request.ID,
				Status:    request.Status,
				UpdatedBy: actor,
				Notes:     noteEditedAfterApproval,
			}
			if appendErr := s.historyRepo.Append(txCtx, entry); appendErr != nil {
				return fmt.Errorf("failed to append history: %w", appendErr)
			}
		}

		return nil
	})

	if err != nil {
		return RequestResponse{}, err
	}

	s.broadcast("request.updated", request)
	return toRequestResponse(request), nil
}

func (s *requestService) UpdateStatus(ctx context.Context, id string, actor string, req UpdateStatusDTO) (RequestResponse, error) {
	requestID, err := parseRequestID(id)
	if err != nil {
		return RequestResponse{}, err
	}
	if actor == "" {
		return RequestResponse{}, &ValidationError{Field: "actor", Reason: "must not be empty"}
	}
	if !model.ValidStatus(req.Status) {
		return RequestResponse{}, &ValidationError{Field: "status", Reason: fmt.Sprintf("unknown status %q", req.Status)}
	}

	var request *model.PurchaseRequest
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		var findErr error
		// Re-read under lock so a stale caller is validated against the
		// freshly committed status, not the one it last saw.
		request, findErr = s.requestRepo.FindByIDForUpdate(txCtx, requestID)
		if findErr != nil {
			return wrapNotFound(findErr)
		}

		settings, settingsErr := s.loadSettings(txCtx)
		if settingsErr != nil {
			return settingsErr
		}

		return s.applyStatusLocked(txCtx, request, req.Status, actor, req.Notes, req.DeliveredQuantity, settings)
	})

	if err != nil {
		return RequestResponse{}, err
	}

	s.broadcast("request.status_changed", request)
	return toRequestResponse(request), nil
}

// applyStatusLocked performs one validated lifecycle transition on an
// aggregate already locked by the surrounding transaction, and appends the
// matching ledger entry. Every status write in the engine funnels through
// here except reopen.
func (s *requestService) applyStatusLocked(
	txCtx context.Context,
	request *model.PurchaseRequest,
	newStatus model.Status,
	actor, notes string,
	deliveredQuantity *int,
	settings model.RequestSettings,
) error {
	if !model.CanTransition(request.Status, newStatus, settings.UseWarehouseReception) {
		return &InvalidTransitionError{From: request.Status, To: newStatus}
	}

	if newStatus == model.StatusReceived {
		if deliveredQuantity == nil {
			return &ValidationError{Field: "delivered_quantity", Reason: "is required when receiving"}
		}
		if *deliveredQuantity < 0 {
			return &ValidationError{Field: "delivered_quantity", Reason: "must not be negative"}
		}
		request.DeliveredQuantity = deliveredQuantity
	}

	// previous_status doubles as the restore point for future un-cancel
	// tooling, so it survives a move into CANCELED and is cleared otherwise.
	if newStatus == model.StatusCanceled {
		snapshot := request.Status
		request.PreviousStatus = &snapshot
	} else {
		request.PreviousStatus = nil
	}

	if newStatus == model.StatusApproved && request.ApprovedBy == "" {
		request.ApprovedBy = actor
	}

	if newStatus.IsTerminal(settings.UseWarehouseReception) {
		now := time.Now()
		request.ReceivedDate = &now
		if newStatus == model.StatusReceivedInWarehouse {
			request.ReceivedInWarehouseBy = actor
		}
	}

	request.Status = newStatus
	request.PendingAction = model.PendingActionNone
	request.PendingActionBy = ""
	request.LastStatusUpdateBy = actor
	request.LastStatusUpdateNotes = notes

	if err := s.requestRepo.Save(txCtx, request); err != nil {
		return fmt.Errorf("failed to update purchase request: %w", err)
	}

	entry := &model.PurchaseRequestHistory{
		RequestID: request.ID,
		Status:    newStatus,
		UpdatedBy: actor,
		Notes:     notes,
	}
	if err := s.historyRepo.Append(txCtx, entry); err != nil {
		return fmt.Errorf("failed to append history: %w", err)
	}

	return nil
}

func (s *requestService) Reopen(ctx context.Context, id string, actor string) (RequestResponse, error) {
	requestID, err := parseRequestID(id)
	if err != nil {
		return RequestResponse{}, err
	}
	if actor == "" {
		return RequestResponse{}, &ValidationError{Field: "actor", Reason: "must not be empty"}
	}

	var request *model.PurchaseRequest
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		var findErr error
		request, findErr = s.requestRepo.FindByIDForUpdate(txCtx, requestID)
		if findErr != nil {
			return wrapNotFound(findErr)
		}

		// Reopening an already-pending request is a no-op rather than an
		// error, which makes retries harmless.
		if request.Status == model.StatusPending {
			return nil
		}

		settings, settingsErr := s.loadSettings(txCtx)
		if settingsErr != nil {
			return settingsErr
		}

		if !request.Status.IsTerminal(settings.UseWarehouseReception) && request.Status != model.StatusCanceled {
			return &InvalidTransitionError{From: request.Status, To: model.StatusPending}
		}

		request.Status = model.StatusPending
		request.Reopened = true // sticky, never reset
		request.PendingAction = model.PendingActionNone
		request.PendingActionBy = ""
		request.PreviousStatus = nil
		request.LastStatusUpdateBy = actor
		request.LastStatusUpdateNotes = noteReopened

		if saveErr := s.requestRepo.Save(txCtx, request); saveErr != nil {
			return fmt.Errorf("failed to reopen purchase request: %w", saveErr)
		}

		entry := &model.PurchaseRequestHistory{
			RequestID: request.ID,
			Status:    model.StatusPending,
			UpdatedBy: actor,
			Notes:     noteReopened,
		}
		if appendErr := s.historyRepo.Append(txCtx, entry); appendErr != nil {
			return fmt.Errorf("failed to append history: %w", appendErr)
		}

		return nil
	})

	if err != nil {
		return RequestResponse{}, err
	}

	s.broadcast("request.reopened", request)
	return toRequestResponse(request), nil
}

func (s *requestService) RequestAdministrativeAction(ctx context.Context, id string, actor string, req AdministrativeActionDTO) (RequestResponse, error) {
	requestID, err := parseRequestID(id)
	if err != nil {
		return RequestResponse{}, err
	}
	if actor == "" {
		return RequestResponse{}, &ValidationError{Field: "actor", Reason: "must not be empty"}
	}

	var request *model.PurchaseRequest
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		var findErr error
		request, findErr = s.requestRepo.FindByIDForUpdate(txCtx, requestID)
		if findErr != nil {
			return wrapNotFound(findErr)
		}

		if request.PendingAction != model.PendingActionNone {
			return ErrActionAlreadyPending
		}

		note := ""
		switch req.Action {
		case model.PendingActionCancellation:
			// Only statuses from which cancellation is a legal edge may be
			// flagged, so the later resolution cannot dead-end.
			if !model.CanTransition(request.Status, model.StatusCanceled, false) {
				return &InvalidTransitionError{From: request.Status, To: model.StatusCanceled}
			}
			note = noteCancellationOpened
		case model.PendingActionUnapproval:
			if request.Status != model.StatusApproved {
				return &InvalidTransitionError{From: request.Status, To: model.StatusPending}
			}
			note = noteUnapprovalOpened
		default:
			return &ValidationError{Field: "action", Reason: fmt.Sprintf("unknown action %q", req.Action)}
		}

		snapshot := request.Status
		request.PendingAction = req.Action
		request.PendingActionBy = actor
		request.PreviousStatus = &snapshot

		if saveErr := s.requestRepo.Save(txCtx, request); saveErr != nil {
			return fmt.Errorf("failed to flag purchase request: %w", saveErr)
		}

		entry := &model.PurchaseRequestHistory{
			RequestID: request.ID,
			Status:    request.Status,
			UpdatedBy: actor,
			Notes:     joinNotes(note, req.Notes),
		}
		if appendErr := s.historyRepo.Append(txCtx, entry); appendErr != nil {
			return fmt.Errorf("failed to append history: %w", appendErr)
		}

		return nil
	})

	if err != nil {
		return RequestResponse{}, err
	}

	s.broadcast("request.action_requested", request)
	return toRequestResponse(request), nil
}

func (s *requestService) ResolveAdministrativeAction(ctx context.Context, id string, actor string, req ResolveActionDTO) (RequestResponse, error) {
	requestID, err := parseRequestID(id)
	if err != nil {
		return RequestResponse{}, err
	}
	if actor == "" {
		return RequestResponse{}, &ValidationError{Field: "actor", Reason: "must not be empty"}
	}
	if req.Approve == nil {
		return RequestResponse{}, &ValidationError{Field: "approve", Reason: "is required"}
	}

	var request *model.PurchaseRequest
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		var findErr error
		request, findErr = s.requestRepo.FindByIDForUpdate(txCtx, requestID)
		if findErr != nil {
			return wrapNotFound(findErr)
		}

		if request.PendingAction == model.PendingActionNone {
			return ErrNoPendingAction
		}

		// Dual control: the actor who opened the proposal cannot resolve it.
		if request.PendingActionBy != "" && request.PendingActionBy == actor {
			return &ValidationError{Field: "actor", Reason: "the proposing actor cannot resolve their own administrative action"}
		}

		if !*req.Approve {
			// Rejection restores the proposal-free state and leaves the
			// status exactly as it was.
			request.PendingAction = model.PendingActionNone
			request.PendingActionBy = ""
			request.PreviousStatus = nil

			if saveErr := s.requestRepo.Save(txCtx, request); saveErr != nil {
				return fmt.Errorf("failed to update purchase request: %w", saveErr)
			}

			entry := &model.PurchaseRequestHistory{
				RequestID: request.ID,
				Status:    request.Status,
				UpdatedBy: actor,
				Notes:     joinNotes(noteActionRejected, req.Notes),
			}
			if appendErr := s.historyRepo.Append(txCtx, entry); appendErr != nil {
				return fmt.Errorf("failed to append history: %w", appendErr)
			}
			return nil
		}

		settings, settingsErr := s.loadSettings(txCtx)
		if settingsErr != nil {
			return settingsErr
		}

		switch request.PendingAction {
		case model.PendingActionCancellation:
			return s.applyStatusLocked(txCtx, request, model.StatusCanceled, actor, req.Notes, nil, settings)
		case model.PendingActionUnapproval:
			// Un-approval reverts an approved request to pending. approved_by
			// keeps the first approver on record.
			request.Status = model.StatusPending
			request.PendingAction = model.PendingActionNone
			request.PendingActionBy = ""
			request.PreviousStatus = nil
			request.LastStatusUpdateBy = actor
			request.LastStatusUpdateNotes = req.Notes

			if saveErr := s.requestRepo.Save(txCtx, request); saveErr != nil {
				return fmt.Errorf("failed to update purchase request: %w", saveErr)
			}

			entry := &model.PurchaseRequestHistory{
				RequestID: request.ID,
				Status:    model.StatusPending,
				UpdatedBy: actor,
				Notes:     req.Notes,
			}
			if appendErr := s.historyRepo.Append(txCtx, entry); appendErr != nil {
				return fmt.Errorf("failed to append history: %w", appendErr)
			}
			return nil
		default:
			return fmt.Errorf("unknown pending action: %s", request.PendingAction)
		}
	})

	if err != nil {
		return RequestResponse{}, err
	}

	s.broadcast("request.action_resolved", request)
	return toRequestResponse(request), nil
}

func (s *requestService) GetRequest(ctx context.Context, id string) (RequestResponse, error) {
	requestID, err := parseRequestID(id)
	if err != nil {
		return RequestResponse{}, err
	}

	request, err := s.requestRepo.FindByID(ctx, requestID)
	if err != nil {
		return RequestResponse{}, wrapNotFound(err)
	}

	return toRequestResponse(request), nil
}

func (s *requestService) ListRequests(ctx context.Context) ([]RequestResponse, error) {
	requests, err := s.requestRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list purchase requests: %w", err)
	}

	result := make([]RequestResponse, 0, len(requests))
	for i := range requests {
		result = append(result, toRequestResponse(&requests[i]))
	}
	return result, nil
}

func (s *requestService) GetHistory(ctx context.Context, id string) ([]HistoryEntryResponse, error) {
	requestID, err := parseRequestID(id)
	if err != nil {
		return nil, err
	}

	if _, err := s.requestRepo.FindByID(ctx, requestID); err != nil {
		return nil, wrapNotFound(err)
	}

	entries, err := s.historyRepo.ListForRequest(ctx, requestID)
	if err != nil {
		return nil, fmt.Errorf("failed to list history: %w", err)
	}

	result := make([]HistoryEntryResponse, 0, len(entries))
	for _, e := range entries {
		result = append(result, HistoryEntryResponse{
			ID:        e.ID.String(),
			RequestID: e.RequestID.String(),
			Status:    e.Status,
			UpdatedBy: e.UpdatedBy,
			Notes:     e.Notes,
			CreatedAt: e.CreatedAt.Format(time.RFC3339),
		})
	}
	return result, nil
}

// --- Helpers ---

// allocateConsecutive produces the next human-readable identifier inside the
// caller's transaction. The advisory lock serializes the read-increment-write
// against concurrent allocations on the same prefix.
func (s *requestService) allocateConsecutive(txCtx context.Context) (string, error) {
	settings, err := s.loadSettings(txCtx)
	if err != nil {
		return "", err
	}

	if err := s.settingsRepo.LockCounter(txCtx, settings.RequestPrefix); err != nil {
		return "", fmt.Errorf("failed to lock request counter: %w", err)
	}

	// Re-read the counter after acquiring the lock; another transaction may
	// have advanced it while we waited.
	next := settings.NextRequestNumber
	if raw, getErr := s.settingsRepo.Get(txCtx, model.SettingNextRequestNumber); getErr == nil {
		if n, convErr := parsePositiveInt(raw); convErr == nil {
			next = n
		}
	}

	consecutive := fmt.Sprintf("%s%05d", settings.RequestPrefix, next)

	if err := s.settingsRepo.Set(txCtx, model.SettingNextRequestNumber, fmt.Sprintf("%d", next+1)); err != nil {
		return "", fmt.Errorf("failed to advance request counter: %w", err)
	}

	return consecutive, nil
}

func (s *requestService) loadSettings(ctx context.Context) (model.RequestSettings, error) {
	kv, err := s.settingsRepo.GetAll(ctx)
	if err != nil {
		return model.RequestSettings{}, fmt.Errorf("failed to load settings: %w", err)
	}
	return model.SettingsFromKV(kv), nil
}

func (s *requestService) broadcast(event string, request *model.PurchaseRequest) {
	if s.hub == nil || request == nil {
		return
	}

	payload, err := json.Marshal(ws.RequestEvent{
		Event: event,
		Data: map[string]interface{}{
			"id":          request.ID.String(),
			"consecutive": request.Consecutive,
			"status":      request.Status,
		},
	})
	if err != nil {
		return
	}

	select {
	case s.hub.Broadcast <- payload:
	default:
		// never block a committed transaction on slow consumers
	}
}

func applyContentEdit(request *model.PurchaseRequest, req UpdateRequestDTO) {
	if req.Quantity != nil {
		request.Quantity = *req.Quantity
	}
	if req.UnitSalePrice != nil {
		request.UnitSalePrice = *req.UnitSalePrice
	}
	if req.Priority != nil && model.ValidPriority(*req.Priority) {
		request.Priority = *req.Priority
	}
	if req.PurchaseType != nil && model.ValidPurchaseType(*req.PurchaseType) {
		request.PurchaseType = *req.PurchaseType
	}
	if req.Supplier != nil {
		request.Supplier = *req.Supplier
	}
	if req.Route != nil {
		request.Route = *req.Route
	}
	if req.ShippingMethod != nil {
		request.ShippingMethod = *req.ShippingMethod
	}
	if req.Notes != nil {
		request.Notes = *req.Notes
	}
	if req.RequiredDate != nil {
		request.RequiredDate = *req.RequiredDate
	}
	if req.ArrivalDate != nil {
		request.ArrivalDate = req.ArrivalDate
	}
}

func parseRequestID(id string) (uuid.UUID, error) {
	requestID, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, &ValidationError{Field: "id", Reason: "must be a valid uuid"}
	}
	return requestID, nil
}

func parsePositiveInt(raw string) (int, error) {
	var n int
	if _, err := fmt.Sscanf(raw, "%d", &n); err != nil {
		return 0, err
	}
	if n <= 0 {
		return 0, fmt.Errorf("value %d is not positive", n)
	}
	return n, nil
}

func wrapNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return fmt.Errorf("database error: %w", err)
}

func joinNotes(fixed, extra string) string {
	if extra == "" {
		return fixed
	}
	return fixed + ": " + extra
}

func toRequestResponse(r *model.PurchaseRequest) RequestResponse {
	resp := RequestResponse{
		ID:                    r.ID.String(),
		Consecutive:           r.Consecutive,
		ClientID:              r.ClientID,
		ClientName:            r.ClientName,
		ItemID:                r.ItemID,
		ItemDescription:       r.ItemDescription,
		Quantity:              r.Quantity,
		UnitSalePrice:         r.UnitSalePrice.StringFixed(4),
		Priority:              r.Priority,
		PurchaseType:          r.PurchaseType,
		Supplier:              r.Supplier,
		Route:                 r.Route,
		ShippingMethod:        r.ShippingMethod,
		Notes:                 r.Notes,
		RequestDate:           r.RequestDate.Format(time.RFC3339),
		RequiredDate:          r.RequiredDate.Format(time.RFC3339),
		DeliveredQuantity:     r.DeliveredQuantity,
		Inventory:             r.Inventory,
		Status:                r.Status,
		StatusMeta:            model.MetaFor(r.Status),
		PendingAction:         string(r.PendingAction),
		PreviousStatus:        r.PreviousStatus,
		Reopened:              r.Reopened,
		RequestedBy:           r.RequestedBy,
		ApprovedBy:            r.ApprovedBy,
		ReceivedInWarehouseBy: r.ReceivedInWarehouseBy,
		LastStatusUpdateBy:    r.LastStatusUpdateBy,
		LastStatusUpdateNotes: r.LastStatusUpdateNotes,
		HasBeenModified:       r.HasBeenModified,
		LastModifiedBy:        r.LastModifiedBy,
		LastModifiedAt:        nil,
		CreatedAt:             r.CreatedAt.Format(time.RFC3339),
	}

	if r.ReceivedDate != nil {
		v := r.ReceivedDate.Format(time.RFC3339)
		resp.ReceivedDate = &v
	}
	if r.ArrivalDate != nil {
		v := r.ArrivalDate.Format(time.RFC3339)
		resp.ArrivalDate = &v
	}
	if r.LastModifiedAt != nil {
		v := r.LastModifiedAt.Format(time.RFC3339)
		resp.LastModifiedAt = &v
	}

	return resp
}
