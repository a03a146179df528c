package models

import "time"

// CartItem references one MenuItem; there is at most one row per MenuItemID.
type CartItem struct {
	ID         string    `json:"_id" gorm:"primaryKey;type:varchar(36)"`
	MenuItemID string    `json:"menuItemId" gorm:"type:varchar(64);uniqueIndex;not null"`
	Quantity   int       `json:"quantity" gorm:"not null"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}
