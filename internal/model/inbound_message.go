package model

import "time"

// InboundMessage is one SMS received from the utility's short code, appended
// by the provider webhook. Rows are never updated; the correlator only reads
// the newest row per recipient.
type InboundMessage struct {
	ID            int64     `gorm:"primaryKey;autoIncrement;column:id;<-:create"`
	Sender        string    `gorm:"column:sender"`
	Recipient     string    `gorm:"column:recipient;index:idx_recipient_received"`
	Text          string    `gorm:"column:text;type:text"`
	ProviderMsgID *string   `gorm:"column:provider_msg_id"`
	ReceivedAt    time.Time `gorm:"column:received_at;index:idx_recipient_received"`
	CreatedAt     time.Time `gorm:"column:created_at"`
}
