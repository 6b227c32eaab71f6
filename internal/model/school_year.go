package model

import "time"

// SchoolYear represents an academic year belonging to a company.
// end_date must be strictly after start_date; the service rejects anything else.
type SchoolYear struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	Title     string    `json:"title" gorm:"type:varchar(255);not null"`
	StartDate time.Time `json:"start_date" gorm:"type:date;not null"`
	EndDate   time.Time `json:"end_date" gorm:"type:date;not null"`
	Status    int       `json:"status" gorm:"not null"`
	CompanyID uint      `json:"company_id" gorm:"index;not null"`
	Company   Company   `json:"company,omitempty" gorm:"foreignKey:CompanyID"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
