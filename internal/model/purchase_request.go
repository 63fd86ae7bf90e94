package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Priority enum constants
const (
	PriorityLow    = "LOW"
	PriorityMedium = "MEDIUM"
	PriorityHigh   = "HIGH"
	PriorityUrgent = "URGENT"
)

// PurchaseType enum constants
const (
	PurchaseTypeSingleSupplier = "SINGLE_SUPPLIER"
	PurchaseTypeMultiSupplier  = "MULTI_SUPPLIER"
)

// PurchaseRequest is the aggregate root of the request lifecycle engine.
// It is created once with StatusPending, mutated only through the request
// service, and never deleted. Cancellation is a status, not a row removal.
type PurchaseRequest struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Consecutive string    `gorm:"type:varchar(30);uniqueIndex;not null" json:"consecutive"`

	ClientID        string `gorm:"type:varchar(50);index;not null" json:"client_id"`
	ClientName      string `gorm:"type:varchar(255)" json:"client_name"`
	ItemID          string `gorm:"type:varchar(50);index;not null" json:"item_id"`
	ItemDescription string `gorm:"type:varchar(255)" json:"item_description"`

	Quantity      int             `gorm:"type:int;not null" json:"quantity"`
	UnitSalePrice decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"unit_sale_price"`
	Priority      string          `gorm:"type:varchar(20);not null;default:'MEDIUM'" json:"priority"`
	PurchaseType  string          `gorm:"type:varchar(30);not null;default:'SINGLE_SUPPLIER'" json:"purchase_type"`
	Supplier      string          `gorm:"type:varchar(255)" json:"supplier"`
	Route         string          `gorm:"type:varchar(100)" json:"route"`
	ShippingMethod string         `gorm:"type:varchar(100)" json:"shipping_method"`
	Notes         string          `gorm:"type:text" json:"notes"`

	RequestDate  time.Time  `gorm:"not null" json:"request_date"`
	RequiredDate time.Time  `gorm:"not null" json:"required_date"`
	ReceivedDate *time.Time `json:"received_date"`
	ArrivalDate  *time.Time `json:"arrival_date"`

	DeliveredQuantity *int `gorm:"type:int" json:"delivered_quantity"`
	Inventory         int  `gorm:"type:int;not null;default:0" json:"inventory"` // stock snapshot at request time

	Status          Status        `gorm:"type:varchar(30);not null;default:'PENDING';index" json:"status"`
	PendingAction   PendingAction `gorm:"type:varchar(30);not null;default:'NONE'" json:"pending_action"`
	PendingActionBy string        `gorm:"type:varchar(255)" json:"pending_action_by"`
	PreviousStatus  *Status       `gorm:"type:varchar(30)" json:"previous_status"`
	Reopened        bool          `gorm:"not null;default:false" json:"reopened"`

	RequestedBy           string `gorm:"type:varchar(255);not null" json:"requested_by"`
	ApprovedBy            string `gorm:"type:varchar(255)" json:"approved_by"`
	ReceivedInWarehouseBy string `gorm:"type:varchar(255)" json:"received_in_warehouse_by"`
	LastStatusUpdateBy    string `gorm:"type:varchar(255)" json:"last_status_update_by"`
	LastStatusUpdateNotes string `gorm:"type:text" json:"last_status_update_notes"`

	HasBeenModified bool       `gorm:"not null;default:false" json:"has_been_modified"`
	LastModifiedBy  string     `gorm:"type:varchar(255)" json:"last_modified_by"`
	LastModifiedAt  *time.Time `json:"last_modified_at"`

	History []PurchaseRequestHistory `gorm:"foreignKey:RequestID" json:"history,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PurchaseRequestHistory is one row of the append-only audit ledger. Rows are
// inserted in the same transaction as the aggregate change they describe and
// are never updated or deleted.
type PurchaseRequestHistory struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	RequestID uuid.UUID `gorm:"type:uuid;not null;index" json:"request_id"`
	Status    Status    `gorm:"type:varchar(30);not null" json:"status"` // status as of this entry
	UpdatedBy string    `gorm:"type:varchar(255);not null" json:"updated_by"`
	Notes     string    `gorm:"type:text" json:"notes"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

// ValidPriority reports whether p is one of the known priority values.
func ValidPriority(p string) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// ValidPurchaseType reports whether t is one of the known purchase types.
func ValidPurchaseType(t string) bool {
	return t == PurchaseTypeSingleSupplier || t == PurchaseTypeMultiSupplier
}
