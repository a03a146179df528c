package models

import "time"

// Customer is a captured welcome-page contact. Phone is the dedup key.
type Customer struct {
	ID        string    `json:"_id" gorm:"primaryKey;type:varchar(36)"`
	Name      string    `json:"name" gorm:"type:varchar(255);not null"`
	Phone     string    `json:"phone" gorm:"type:varchar(32);uniqueIndex;not null"`
	Email     string    `json:"email,omitempty" gorm:"type:varchar(255)"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CustomerFilter narrows customers by calendar parts of CreatedAt. Zero
// means unset. A zero Limit returns every match.
type CustomerFilter struct {
	Year  int
	Month int
	Day   int
	Page  int
	Limit int
}

func (f CustomerFilter) Offset() int {
	if f.Limit <= 0 || f.Page <= 1 {
		return 0
	}
	return (f.Page - 1) * f.Limit
}

// CustomerExport is the row shape of the admin spreadsheet export.
type CustomerExport struct {
	Name      string `json:"Name"`
	Phone     string `json:"Phone"`
	CreatedAt string `json:"Created At"`
}
