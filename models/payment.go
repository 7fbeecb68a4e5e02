package models

import "time"

// Payment mirrors the gateway's payment-intent lifecycle for auditability.
type Payment struct {
	ID        string  `gorm:"primaryKey" json:"id"`
	IntentID  string  `gorm:"uniqueIndex;not null" json:"intent_id"` // gateway payment-intent id
	UserID    string  `gorm:"not null;index" json:"user_id"`
	CartID    string  `gorm:"not null" json:"cart_id"`
	Amount    float64 `gorm:"not null" json:"amount"`
	Currency  string  `gorm:"not null" json:"currency"`
	Status    string  `gorm:"not null" json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// WebhookEvent records gateway event ids that were already processed so
// at-least-once deliveries stay idempotent.
type WebhookEvent struct {
	EventID     string    `gorm:"primaryKey" json:"event_id"`
	EventType   string    `gorm:"index" json:"event_type"`
	ProcessedAt time.Time `json:"processed_at"`
	CreatedAt   time.Time `json:"created_at"`
}
