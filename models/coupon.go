package models

import "time"

type DiscountType string

const (
	DiscountPercentage DiscountType = "percentage"
	DiscountFixed      DiscountType = "fixed"
)

// Coupon is never hard-deleted: it is switched off via IsActive so historical
// orders keep a valid reference.
type Coupon struct {
	ID           string       `gorm:"primaryKey" json:"id"`
	Code         string       `gorm:"uniqueIndex;not null" json:"code"` // stored uppercase
	DiscountType DiscountType `gorm:"type:VARCHAR(20);not null" json:"discount_type"`
	Value        float64      `gorm:"not null" json:"value"`
	MaxUses      int          `gorm:"not null;default:1" json:"max_uses"`
	UsedCount    int          `gorm:"not null;default:0" json:"used_count"`
	ValidFrom    time.Time    `gorm:"not null" json:"valid_from"`
	ValidUntil   time.Time    `gorm:"not null" json:"valid_until"`
	IsActive     bool         `gorm:"not null;default:true" json:"is_active"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// Usable reports whether the coupon can be applied at the given instant.
// Callers deliberately get no reason on failure (anti-enumeration).
func (c *Coupon) Usable(now time.Time) bool {
	if !c.IsActive {
		return false
	}
	if c.UsedCount >= c.MaxUses {
		return false
	}
	if now.Before(c.ValidFrom) || now.After(c.ValidUntil) {
		return false
	}
	return true
}
