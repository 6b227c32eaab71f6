package model

import "time"

// LevelPricing lifecycle statuses. StatusDeleted is the soft-delete marker:
// the row stays in the table but default reads filter it out.
const (
	LevelPricingStatusDeleted  = -2
	LevelPricingStatusArchived = -1
	LevelPricingStatusDraft    = 0
	LevelPricingStatusInactive = 1
	LevelPricingStatusActive   = 2
)

// LevelPricing is a pricing plan attached to a level of the same company.
type LevelPricing struct {
	ID          uint      `json:"id" gorm:"primarykey"`
	LevelID     uint      `json:"level_id" gorm:"index;not null"`
	Level       Level     `json:"level,omitempty" gorm:"foreignKey:LevelID"`
	Title       string    `json:"title" gorm:"type:varchar(255);not null"`
	Amount      float64   `json:"amount" gorm:"not null"`
	Occurrences int       `json:"occurrences" gorm:"not null"`
	EveryMonth  int       `json:"every_month" gorm:"not null"`
	Status      int       `json:"status" gorm:"not null"`
	CompanyID   uint      `json:"company_id" gorm:"index;not null"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
