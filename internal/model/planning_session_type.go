package model

import "time"

// PlanningSessionType statuses. There is no deleted sentinel: removal is a
// hard delete.
const (
	PlanningSessionTypeStatusActive   = "active"
	PlanningSessionTypeStatusInactive = "inactive"
)

// PlanningSessionType is a catalog entry describing a kind of planning
// session (course, exam, ...) with an optional weighting coefficient.
type PlanningSessionType struct {
	ID          uint      `json:"id" gorm:"primarykey"`
	Title       string    `json:"title" gorm:"type:varchar(255);not null"`
	Type        string    `json:"type" gorm:"type:varchar(100);not null"`
	Coefficient *float64  `json:"coefficient,omitempty"`
	Status      string    `json:"status" gorm:"type:varchar(20);not null"`
	CompanyID   uint      `json:"company_id" gorm:"index;not null"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
