package model

import "time"

// Company is the root tenant entity. Every other back-office record hangs off
// a company through its company_id, and the caller's tenant context is the id
// of the company it belongs to.
type Company struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	Name      string    `json:"name" gorm:"type:varchar(255);not null"`
	Email     string    `json:"email" gorm:"type:varchar(255);not null;uniqueIndex"`
	Logo      string    `json:"logo,omitempty" gorm:"type:varchar(255)"`
	Phone     string    `json:"phone,omitempty" gorm:"type:varchar(50)"`
	Website   string    `json:"website,omitempty" gorm:"type:varchar(255)"`
	Status    int       `json:"status" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
