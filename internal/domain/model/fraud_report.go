package model

import "time"

// FraudReportStatus tracks back-office review of a report.
type FraudReportStatus string

const (
	FraudReportStatusPending  FraudReportStatus = "pending"
	FraudReportStatusVerified FraudReportStatus = "verified"
	FraudReportStatusRejected FraudReportStatus = "rejected"
)

// FraudReport is one reported bank account. These rows back the check
// database and are managed through the admin endpoints.
type FraudReport struct {
	ID            int64             `gorm:"primaryKey;autoIncrement" json:"id"`
	AccountLast4  string            `gorm:"size:4;not null" json:"account_last4"`
	RoutingNumber string            `gorm:"size:9;not null;index" json:"routing_number"`
	BankName      string            `gorm:"size:255" json:"bank_name"`
	ReportType    string            `gorm:"size:50;not null" json:"report_type"`
	Description   string            `json:"description"`
	ReporterEmail string            `gorm:"size:255" json:"reporter_email"`
	Status        FraudReportStatus `gorm:"size:20;not null;default:'pending'" json:"status"`
	CreatedAt     time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time         `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for GORM
func (FraudReport) TableName() string {
	return "fraud_reports"
}
