package service

import "errors"

var (
	ErrInvalidCommand          = errors.New("INVALID_COMMAND")
	ErrTransport               = errors.New("TRANSPORT_ERROR")
	ErrStore                   = errors.New("STORE_ERROR")
	ErrInquiryNotFound         = errors.New("INQUIRY_NOT_FOUND")
	ErrInquiryBeingProcessed   = errors.New("INQUIRY_BEING_PROCESSED")
	ErrInquiryAlreadyProcessed = errors.New("INQUIRY_ALREADY_PROCESSED")
	ErrUnknownInquiryStatus    = errors.New("UNKNOWN_INQUIRY_STATUS")
	ErrDatabase                = errors.New("DATABASE_ERROR")
)

type Error struct {
	Code  string
	Cause error
}

func NewServiceError(code string, cause error) error {
	return Error{Code: code, Cause: cause}
}

func (e Error) Error() string {
	return e.Cause.Error()
}

func (e Error) Unwrap() error {
	return e.Cause
}
