package models

import "time"

type PaymentStatus string
type DeliveryStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusFailed  PaymentStatus = "failed"

	DeliveryStatusProcessing DeliveryStatus = "processing"
	DeliveryStatusShipped    DeliveryStatus = "shipped"
	DeliveryStatusDelivered  DeliveryStatus = "delivered"
)

type ShippingAddress struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	Zip     string `json:"zip"`
	Country string `json:"country"`
}

type Order struct {
	ID              string          `gorm:"primaryKey" json:"id"`
	UserID          string          `gorm:"not null;index" json:"user_id"`
	User            User            `gorm:"foreignKey:UserID" json:"user"`
	Products        []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"products"`
	CouponID        *string         `json:"coupon_id"`
	Coupon          *Coupon         `gorm:"foreignKey:CouponID" json:"coupon,omitempty"`
	DiscountApplied float64         `gorm:"not null;default:0" json:"discount_applied"`
	Total           float64         `gorm:"not null;check:total >= 0" json:"total"`
	PaymentStatus   PaymentStatus   `gorm:"type:VARCHAR(20);default:'pending';index" json:"payment_status"`
	DeliveryStatus  DeliveryStatus  `gorm:"type:VARCHAR(20);default:'processing';index" json:"delivery_status"`
	ShippingAddress ShippingAddress `gorm:"embedded;embeddedPrefix:shipping_" json:"shipping_address"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

type OrderItem struct {
	ID        uint    `gorm:"primaryKey" json:"-"`
	OrderID   string  `gorm:"index;not null" json:"-"`
	ProductID string  `gorm:"not null" json:"product_id"`
	Product   Product `gorm:"foreignKey:ProductID" json:"product"`
	Quantity  int     `gorm:"not null" json:"quantity"`
}
