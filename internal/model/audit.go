package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ActionCreateVacationRequest   = "CREATE_VACATION_REQUEST"
	ActionResubmitVacationRequest = "RESUBMIT_VACATION_REQUEST"
	ActionCancelVacationRequest   = "CANCEL_VACATION_REQUEST"
	ActionDeleteVacationRequest   = "DELETE_VACATION_REQUEST"
	ActionCreateAssetRequest      = "CREATE_ASSET_REQUEST"
	ActionDeleteAssetRequest      = "DELETE_ASSET_REQUEST"
	ActionCreateSupplyRequest     = "CREATE_SUPPLY_REQUEST"
	ActionDeleteSupplyRequest     = "DELETE_SUPPLY_REQUEST"
	ActionFulfillSupplyRequest    = "FULFILL_SUPPLY_REQUEST"

	// Approval workflow actions
	ActionApproveRequest = "APPROVE_REQUEST"
	ActionRejectRequest  = "REJECT_REQUEST"

	// Asset lifecycle actions
	ActionCreateAsset = "CREATE_ASSET"
	ActionAssignAsset = "ASSIGN_ASSET"
	ActionReturnAsset = "RETURN_ASSET"
)

// AuditLog tracks Who, What, and When for critical system changes
type AuditLog struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID     *uuid.UUID `gorm:"type:uuid;index" json:"user_id"` // Nullable gracefully if automated bot
	User       *User      `gorm:"foreignKey:UserID" json:"user"`
	Action     string     `gorm:"type:varchar(50);not null;index" json:"action"`
	EntityID   string     `gorm:"type:varchar(50);index" json:"entity_id"`        // Reference string (uuid/code)
	EntityName string     `gorm:"type:varchar(255)" json:"entity_name,omitempty"` // Human readable name
	Details    string     `gorm:"type:jsonb" json:"details"`                      // Serialized JSON payload of the action
	CreatedAt  time.Time  `gorm:"index" json:"created_at"`
}

func (a *AuditLog) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
