package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// VacationRequest is an employee's ask for a block of days off.
// The owner is immutable after creation. A rejected request is never reopened;
// resubmission creates a fresh record whose OriginalRequestID points back at
// the rejected one (lookup only, chains allowed).
type VacationRequest struct {
	ID                uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	UserID            uuid.UUID        `gorm:"type:uuid;not null;index" json:"user_id"`
	User              *User            `gorm:"foreignKey:UserID" json:"user,omitempty"`
	StartDate         time.Time        `gorm:"type:date;not null" json:"start_date"`
	EndDate           time.Time        `gorm:"type:date;not null" json:"end_date"`
	Reason            string           `gorm:"type:text;not null" json:"reason"`
	Status            RequestStatus    `gorm:"type:varchar(20);not null;default:'PENDING';index" json:"status"`
	ApprovedBy        *uuid.UUID       `gorm:"type:uuid" json:"approved_by"`
	Approver          *User            `gorm:"foreignKey:ApprovedBy" json:"approver,omitempty"`
	ApprovedAt        *time.Time       `json:"approved_at"`
	RejectionReason   string           `gorm:"type:text" json:"rejection_reason"`
	OriginalRequestID *uuid.UUID       `gorm:"type:uuid;index" json:"original_request_id"`
	OriginalRequest   *VacationRequest `gorm:"foreignKey:OriginalRequestID" json:"-"`
	CreatedAt         time.Time        `json:"created_at"`
	UpdatedAt         time.Time        `json:"updated_at"`
}

func (v *VacationRequest) BeforeCreate(tx *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}

// DurationDays returns the inclusive number of days covered by the request
// (2025-06-01..2025-06-05 is 5 days).
func (v *VacationRequest) DurationDays() int {
	start := v.StartDate.Truncate(24 * time.Hour)
	end := v.EndDate.Truncate(24 * time.Hour)
	return int(end.Sub(start).Hours()/24) + 1
}
