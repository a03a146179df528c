package models

import "time"

// MenuItem belongs to exactly one category. Category is stamped with the
// collection the item was read from when it is served by category.
type MenuItem struct {
	ID           string    `json:"_id" gorm:"primaryKey;type:varchar(36)"`
	Name         string    `json:"name" gorm:"type:varchar(255);not null"`
	Description  string    `json:"description" gorm:"type:text"`
	Price        Price     `json:"price" gorm:"type:varchar(64);not null"`
	Category     string    `json:"category" gorm:"type:varchar(191)"`
	IsVeg        bool      `json:"isVeg"`
	Image        string    `json:"image" gorm:"type:varchar(1024)"`
	IsAvailable  bool      `json:"isAvailable"`
	RestaurantID string    `json:"restaurantId" gorm:"type:varchar(64)"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
