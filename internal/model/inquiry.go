package model

import "time"

type InquiryKind string

const (
	InquiryKindBalance       InquiryKind = "BALANCE"
	InquiryKindTokenPurchase InquiryKind = "TOKEN_PURCHASE"
	InquiryKindUnits         InquiryKind = "UNITS"
	InquiryKindLastPayment   InquiryKind = "LAST_PAYMENT"
)

type InquiryStatus string

const (
	InquiryStatusCreated    InquiryStatus = "CREATED"
	InquiryStatusRunning    InquiryStatus = "RUNNING"
	InquiryStatusCompleted  InquiryStatus = "COMPLETED"
	InquiryStatusFailedTemp InquiryStatus = "FAILED_TEMP"
	InquiryStatusFailedPerm InquiryStatus = "FAILED_PERM"
)

// Provenance marks whether a result row was parsed from a real utility reply
// or synthesized as a fallback after the reply window expired.
const (
	ProvenanceReplyDerived = "REPLY_DERIVED"
	ProvenanceFallback     = "FALLBACK"
)

type Inquiry struct {
	ID              int64         `gorm:"primaryKey;autoIncrement;column:id;<-:create"`
	ClientInquiryID string        `gorm:"column:client_inquiry_id;index:idx_client_inquiry_requester,unique"`
	RequesterMSISDN string        `gorm:"column:requester_msisdn;index:idx_client_inquiry_requester,unique"`
	Kind            InquiryKind   `gorm:"column:kind"`
	AccountNumber   string        `gorm:"column:account_number"`
	Amount          *float64      `gorm:"column:amount"`
	Status          InquiryStatus `gorm:"column:status"`
	AttemptCount    int           `gorm:"column:attempt_count"`
	LastAttemptAt   *time.Time    `gorm:"column:last_attempt_at"`
	LastError       *string       `gorm:"column:last_error;type:text"`
	Queued          bool          `gorm:"column:queued;default:false"`
	QueuedAt        *time.Time    `gorm:"column:queued_at"`

	Provenance      *string  `gorm:"column:provenance"`
	Balance         *float64 `gorm:"column:balance"`
	Units           *float64 `gorm:"column:units"`
	TokenCode       *string  `gorm:"column:token_code"`
	ReferenceNumber *string  `gorm:"column:reference_number"`
	CurrentReading  *int64   `gorm:"column:current_reading"`
	BillAmount      *float64 `gorm:"column:bill_amount"`
	DueDate         *string  `gorm:"column:due_date"`

	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}
