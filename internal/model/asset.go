package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Asset status constants
const (
	AssetAvailable = "AVAILABLE"
	AssetAssigned  = "ASSIGNED"
	AssetRetired   = "RETIRED"
)

// Assignment status constants
const (
	AssignmentActive   = "ACTIVE"
	AssignmentReturned = "RETURNED"
)

// Urgency levels shared by asset and supply requests
const (
	UrgencyLow    = "low"
	UrgencyNormal = "normal"
	UrgencyHigh   = "high"
)

// Asset is a physical item of company equipment that can be issued to users.
type Asset struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	AssetTag     string          `gorm:"type:varchar(50);uniqueIndex;not null" json:"asset_tag"`
	Name         string          `gorm:"type:varchar(255);not null" json:"name"`
	Category     string          `gorm:"type:varchar(100);not null;index" json:"category"`
	SerialNumber string          `gorm:"type:varchar(100)" json:"serial_number"`
	PurchaseCost decimal.Decimal `gorm:"type:decimal(12,2);default:0" json:"purchase_cost"`
	Status       string          `gorm:"type:varchar(20);not null;default:'AVAILABLE';index" json:"status"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

func (a *Asset) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// AssetRequest is an employee's ask for equipment, either a category in
// general or one specific asset. Approving it may bind an asset and open an
// AssetAssignment in the same transaction.
type AssetRequest struct {
	ID              uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
	UserID          uuid.UUID     `gorm:"type:uuid;not null;index" json:"user_id"`
	User            *User         `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Category        string        `gorm:"type:varchar(100);not null" json:"category"`
	AssetID         *uuid.UUID    `gorm:"type:uuid" json:"asset_id"` // optional: a specific asset was requested
	Asset           *Asset        `gorm:"foreignKey:AssetID" json:"asset,omitempty"`
	Urgency         string        `gorm:"type:varchar(10);not null;default:'normal'" json:"urgency"`
	DurationDays    int           `gorm:"not null;default:0" json:"duration_days"` // 0 means indefinite
	Status          RequestStatus `gorm:"type:varchar(20);not null;default:'PENDING';index" json:"status"`
	ApprovedBy      *uuid.UUID    `gorm:"type:uuid" json:"approved_by"`
	Approver        *User         `gorm:"foreignKey:ApprovedBy" json:"approver,omitempty"`
	ApprovedAt      *time.Time    `json:"approved_at"`
	RejectionReason string        `gorm:"type:text" json:"rejection_reason"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}

func (r *AssetRequest) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// AssetAssignment records one issue-and-return cycle of an asset.
type AssetAssignment struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	AssetID    uuid.UUID  `gorm:"type:uuid;not null;index" json:"asset_id"`
	Asset      *Asset     `gorm:"foreignKey:AssetID" json:"asset,omitempty"`
	UserID     uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	User       *User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	RequestID  *uuid.UUID `gorm:"type:uuid" json:"request_id"` // nil when issued directly by an admin
	IssueDate  time.Time  `gorm:"not null" json:"issue_date"`
	DueDate    *time.Time `json:"due_date"`
	ReturnDate *time.Time `json:"return_date"`
	ReturnedBy *uuid.UUID `gorm:"type:uuid" json:"returned_by"`
	Status     string     `gorm:"type:varchar(20);not null;default:'ACTIVE';index" json:"status"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

func (a *AssetAssignment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
