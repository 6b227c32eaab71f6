package model

import "time"

// Level represents a teaching level (grade) offered by a company.
// Pricing plans reference levels of the same company only.
type Level struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	Title     string    `json:"title" gorm:"type:varchar(255);not null"`
	Status    int       `json:"status" gorm:"not null"`
	CompanyID uint      `json:"company_id" gorm:"index;not null"`
	Company   Company   `json:"company,omitempty" gorm:"foreignKey:CompanyID"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
