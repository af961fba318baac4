package model

import "time"

// Order records one completed checkout session. Rows are insert-only; a
// checkout session id never appears twice.
type Order struct {
	ID                int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	CheckoutSessionID string    `gorm:"unique;not null;size:100" json:"checkout_session_id"`
	PaymentIntentID   string    `gorm:"size:100" json:"payment_intent_id,omitempty"`
	CustomerID        string    `gorm:"not null;size:100;index" json:"customer_id"`
	AmountSubtotal    int64     `json:"amount_subtotal"`
	AmountTotal       int64     `json:"amount_total"`
	Currency          string    `gorm:"size:3" json:"currency"`
	PaymentStatus     string    `gorm:"size:50" json:"payment_status"`
	Status            string    `gorm:"size:50" json:"status"`
	CreatedAt         time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TableName specifies the table name for GORM
func (Order) TableName() string {
	return "stripe_orders"
}
