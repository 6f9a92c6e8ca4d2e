package service

type CreateInquiryResponse struct {
	InquiryID int64 `json:"inquiry_id"`
}
