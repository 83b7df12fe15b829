package models

import "time"

type InterestStatus string

const (
	InterestPending  InterestStatus = "pending"
	InterestApproved InterestStatus = "approved"
	InterestRejected InterestStatus = "rejected"
)

// Decision reports whether s is a valid owner response.
func (s InterestStatus) Decision() bool {
	return s == InterestApproved || s == InterestRejected
}

type Interest struct {
	ID          string         `json:"interest_id" gorm:"primaryKey;column:interest_id;type:varchar(36)"`
	PropertyID  string         `json:"property_id" gorm:"type:varchar(36);not null;index"`
	TenantID    string         `json:"tenant_id" gorm:"type:varchar(36);not null;index"`
	OwnerID     string         `json:"owner_id" gorm:"type:varchar(36);not null;index"`
	Message     string         `json:"message" gorm:"type:text"`
	Status      InterestStatus `json:"status" gorm:"type:varchar(20);default:'pending';index"`
	RespondedBy *string        `json:"responded_by,omitempty" gorm:"type:varchar(36)"`
	RespondedAt *time.Time     `json:"responded_at,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

func (Interest) TableName() string { return "property_interests" }
