package repository

import (
	"context"

	"github.com/aurora-energy/kplcgateway/internal/model"
	"gorm.io/gorm"
)

type TxLogRepository interface {
	Create(ctx context.Context, log *model.TxLog) error
	UpdateByInquiryID(ctx context.Context, log *model.TxLog) error
}

type TxLog struct {
	db *gorm.DB
}

func NewTxLogRepository(db *gorm.DB) TxLogRepository {
	return &TxLog{db: db}
}

func (r *TxLog) Create(ctx context.Context, log *model.TxLog) error {
	db := GetTx(ctx, r.db)
	return db.Create(log).Error
}

func (r *TxLog) UpdateByInquiryID(ctx context.Context, log *model.TxLog) error {
	db := GetTx(ctx, r.db)
	return db.Model(&model.TxLog{}).Where("inquiry_id = ?", log.InquiryID).Updates(log).Error
}
