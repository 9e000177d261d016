package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SupplyRequest is an employee's ask for consumable office supplies.
// Unlike vacation requests it has no resubmission link; unlike asset requests
// an approved supply request can additionally be marked FULFILLED once the
// items have actually been handed out.
type SupplyRequest struct {
	ID              uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
	UserID          uuid.UUID     `gorm:"type:uuid;not null;index" json:"user_id"`
	User            *User         `gorm:"foreignKey:UserID" json:"user,omitempty"`
	ItemName        string        `gorm:"type:varchar(255);not null" json:"item_name"`
	Quantity        int           `gorm:"not null" json:"quantity"`
	Justification   string        `gorm:"type:text;not null" json:"justification"`
	Urgency         string        `gorm:"type:varchar(10);not null;default:'normal'" json:"urgency"`
	Status          RequestStatus `gorm:"type:varchar(20);not null;default:'PENDING';index" json:"status"`
	ApprovedBy      *uuid.UUID    `gorm:"type:uuid" json:"approved_by"`
	Approver        *User         `gorm:"foreignKey:ApprovedBy" json:"approver,omitempty"`
	ApprovedAt      *time.Time    `json:"approved_at"`
	RejectionReason string        `gorm:"type:text" json:"rejection_reason"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}

func (s *SupplyRequest) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
