package model

import (
	"time"

	"github.com/google/uuid"
)

// CustomerMapping maps Stripe customer IDs to Supabase user IDs.
type CustomerMapping struct {
	ID               int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	StripeCustomerID string    `gorm:"column:stripe_customer_id;unique;not null;size:100;index" json:"stripe_customer_id"`
	UserID           uuid.UUID `gorm:"column:user_id;type:uuid;not null;index" json:"user_id"`
	Email            string    `gorm:"size:255" json:"email"`
	CreatedAt        time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for GORM
func (CustomerMapping) TableName() string {
	return "stripe_customers"
}
