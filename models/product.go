package models

import "time"

type Product struct {
	ID          string  `gorm:"primaryKey" json:"id"`
	Name        string  `gorm:"not null;index" json:"name"`
	Price       float64 `gorm:"not null;check:price >= 0" json:"price"`
	Description string  `json:"description"`
	Stock       int     `gorm:"not null;check:stock >= 0" json:"stock"`
	Image       string  `gorm:"not null" json:"image"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
