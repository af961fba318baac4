package model

import (
	"database/sql/driver"
	"time"
)

// SubscriptionStatus mirrors the Stripe subscription status values.
type SubscriptionStatus string

const (
	SubscriptionStatusActive            SubscriptionStatus = "active"
	SubscriptionStatusTrialing          SubscriptionStatus = "trialing"
	SubscriptionStatusPastDue           SubscriptionStatus = "past_due"
	SubscriptionStatusIncomplete        SubscriptionStatus = "incomplete"
	SubscriptionStatusIncompleteExpired SubscriptionStatus = "incomplete_expired"
	SubscriptionStatusCanceled          SubscriptionStatus = "canceled"
	SubscriptionStatusUnpaid            SubscriptionStatus = "unpaid"
)

// Scan implements sql.Scanner interface
func (s *SubscriptionStatus) Scan(src interface{}) error {
	switch v := src.(type) {
	case string:
		*s = SubscriptionStatus(v)
	case []byte:
		*s = SubscriptionStatus(v)
	default:
		*s = SubscriptionStatusIncomplete
	}
	return nil
}

// Value implements driver.Valuer interface
func (s SubscriptionStatus) Value() (driver.Value, error) {
	return string(s), nil
}

// Entitled reports whether the status grants access to paid features.
func (s SubscriptionStatus) Entitled() bool {
	return s == SubscriptionStatusActive || s == SubscriptionStatusTrialing
}

// Subscription mirrors one Stripe subscription into the hosted database. Rows
// are written only by the webhook sync handler and read-only everywhere else.
type Subscription struct {
	ID                 int64              `gorm:"primaryKey;autoIncrement" json:"id"`
	CustomerID         string             `gorm:"not null;size:100;index" json:"customer_id"`
	SubscriptionID     string             `gorm:"unique;not null;size:100" json:"subscription_id"`
	PriceID            string             `gorm:"size:100" json:"price_id"`
	CurrentPeriodStart time.Time          `json:"current_period_start"`
	CurrentPeriodEnd   time.Time          `gorm:"index" json:"current_period_end"`
	CancelAtPeriodEnd  bool               `gorm:"default:false" json:"cancel_at_period_end"`
	Status             SubscriptionStatus `gorm:"not null;default:'incomplete'" json:"status"`
	PaymentMethodBrand string             `gorm:"size:50" json:"payment_method_brand,omitempty"`
	PaymentMethodLast4 string             `gorm:"size:4" json:"payment_method_last4,omitempty"`
	// LastEventAt is the Stripe event timestamp of the last write. An inbound
	// event older than this is stale and must not overwrite the row.
	LastEventAt time.Time `json:"last_event_at"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for GORM
func (Subscription) TableName() string {
	return "stripe_subscriptions"
}
