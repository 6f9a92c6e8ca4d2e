package repository

import (
	"context"
	"errors"
	"time"

	"github.com/aurora-energy/kplcgateway/internal/model"
	"gorm.io/gorm"
)

var ErrNoReplyFound = errors.New("NO_REPLY_FOUND")

type InboxRepository interface {
	Create(ctx context.Context, message *model.InboundMessage) error
	QueryLatest(recipient string, after time.Time) (*model.InboundMessage, error)
}

type Inbox struct {
	db *gorm.DB
}

func NewInboxRepository(db *gorm.DB) InboxRepository {
	return &Inbox{db: db}
}

func (i *Inbox) Create(ctx context.Context, message *model.InboundMessage) error {
	db := GetTx(ctx, i.db)
	return db.Create(message).Error
}

// QueryLatest returns the newest message for recipient received strictly after
// the given instant, or ErrNoReplyFound when none qualifies.
func (i *Inbox) QueryLatest(recipient string, after time.Time) (*model.InboundMessage, error) {
	var message model.InboundMessage

	err := i.db.Where("recipient = ? AND received_at > ?", recipient, after).
		Order("received_at DESC").
		First(&message).Error
	if err == nil {
		return &message, nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNoReplyFound
	}

	return nil, err
}
