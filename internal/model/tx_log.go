package model

import "time"

const (
	TxLogStateCreated = "CREATED"
	TxLogStateSuccess = "SUCCESS"
	TxLogStateFailed  = "FAILED"
)

// TxLog is the audit row for token purchases. Inquiries that move money get
// one of these in the same transaction that creates the inquiry.
type TxLog struct {
	ID              int64      `gorm:"primaryKey;autoIncrement;<-:create"`
	InquiryID       int64      `gorm:"not null;<-:create"`
	RequesterMSISDN string     `gorm:"type:varchar(255);not null"`
	AccountNumber   string     `gorm:"type:varchar(255);not null"`
	Amount          float64    `gorm:"not null"`
	State           string     `gorm:"type:enum('CREATED','SUCCESS','FAILED');not null"`
	TokenCode       *string    `gorm:"type:varchar(32);null"`
	ReferenceNumber *string    `gorm:"type:varchar(64);null"`
	LastError       *string    `gorm:"type:text;null"`
	CreatedAt       time.Time  `gorm:"type:timestamp;default:CURRENT_TIMESTAMP"`
	UpdatedAt       time.Time  `gorm:"type:timestamp;default:CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP"`

	Inquiry Inquiry `gorm:"foreignKey:InquiryID"`
}
