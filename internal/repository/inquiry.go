package repository

import (
	"context"
	"errors"
	"time"

	"github.com/aurora-energy/kplcgateway/internal/model"
	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

var ErrInquiryNotFound = errors.New("INQUIRY_NOT_FOUND")
var ErrInquiryDuplicate = errors.New("INQUIRY_DUPLICATE")
var ErrNoRowsAffected = errors.New("NO_ROWS_AFFECTED")

type InquiryRepository interface {
	Create(ctx context.Context, inquiry *model.Inquiry) error
	Update(ctx context.Context, inquiry *model.Inquiry) error
	UpdateForProcessing(ctx context.Context, inquiry *model.Inquiry, staleThreshold time.Time) error
	MarkQueued(ctx context.Context, inquiryID int64, queuedAt time.Time) error
	GetByID(id int64) (*model.Inquiry, error)
	FindUnqueuedCreated(limit int) ([]model.Inquiry, error)
}

type Inquiry struct {
	db *gorm.DB
}

func NewInquiryRepository(db *gorm.DB) InquiryRepository {
	return &Inquiry{db: db}
}

func (r *Inquiry) Create(ctx context.Context, inquiry *model.Inquiry) error {
	db := GetTx(ctx, r.db)
	err := db.Create(inquiry).Error
	if err == nil {
		return nil
	}

	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
		return ErrInquiryDuplicate
	}

	return err
}

func (r *Inquiry) Update(ctx context.Context, inquiry *model.Inquiry) error {
	db := GetTx(ctx, r.db)
	return db.Model(inquiry).Where("id = ?", inquiry.ID).Updates(inquiry).Error
}

// UpdateForProcessing claims the inquiry for this worker. The status guard
// loses the race when another consumer already holds a fresh claim.
func (r *Inquiry) UpdateForProcessing(ctx context.Context, inquiry *model.Inquiry, staleThreshold time.Time) error {
	db := GetTx(ctx, r.db)
	result := db.Model(inquiry).Where("id = ? AND (status IN (?, ?) OR (status = ? AND last_attempt_at < ?))",
		inquiry.ID,
		model.InquiryStatusCreated,
		model.InquiryStatusFailedTemp,
		model.InquiryStatusRunning,
		staleThreshold).Updates(inquiry)

	if result.RowsAffected == 0 {
		return ErrNoRowsAffected
	}

	return result.Error
}

func (r *Inquiry) MarkQueued(ctx context.Context, inquiryID int64, queuedAt time.Time) error {
	db := GetTx(ctx, r.db)
	result := db.Model(&model.Inquiry{}).
		Where("id = ? AND queued = ?", inquiryID, false).
		Updates(map[string]interface{}{"queued": true, "queued_at": queuedAt})

	if result.RowsAffected == 0 {
		return ErrNoRowsAffected
	}

	return result.Error
}

func (r *Inquiry) GetByID(id int64) (*model.Inquiry, error) {
	var inquiry model.Inquiry

	err := r.db.Where("id = ?", id).First(&inquiry).Error
	if err == nil {
		return &inquiry, nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInquiryNotFound
	}

	return nil, err
}

func (r *Inquiry) FindUnqueuedCreated(limit int) ([]model.Inquiry, error) {
	var inquiries []model.Inquiry

	err := r.db.Where("status = ? AND queued = ?", model.InquiryStatusCreated, false).
		Order("created_at ASC").
		Limit(limit).
		Find(&inquiries).Error
	if err != nil {
		return nil, err
	}

	return inquiries, nil
}
