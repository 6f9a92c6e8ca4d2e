package constants

const (
	ErrCodeInvalidCommand     = "INVALID_COMMAND"
	ErrCodeTransportError     = "TRANSPORT_ERROR"
	ErrCodeStoreError         = "STORE_ERROR"
	ErrCodeInquiryNotFound    = "INQUIRY_NOT_FOUND"
	ErrCodeDuplicateInquiry   = "DUPLICATE_INQUIRY"
	ErrCodeInternalError      = "INTERNAL_ERROR"
	ErrCodeInvalidRequestBody = "INVALID_REQUEST_BODY"
)

const (
	ErrMsgInvalidCommand     = "command is malformed"
	ErrMsgTransportError     = "failed to submit command to the messaging gateway"
	ErrMsgStoreError         = "inbox store is unavailable"
	ErrMsgInquiryNotFound    = "inquiry not found"
	ErrMsgDuplicateInquiry   = "duplicate inquiry"
	ErrMsgInternalError      = "Internal server error"
	ErrMsgInvalidRequestBody = "failed to parse request body"
)

var errorMessages = map[string]string{
	ErrCodeInvalidCommand:     ErrMsgInvalidCommand,
	ErrCodeTransportError:     ErrMsgTransportError,
	ErrCodeStoreError:         ErrMsgStoreError,
	ErrCodeInquiryNotFound:    ErrMsgInquiryNotFound,
	ErrCodeDuplicateInquiry:   ErrMsgDuplicateInquiry,
	ErrCodeInternalError:      ErrMsgInternalError,
	ErrCodeInvalidRequestBody: ErrMsgInvalidRequestBody,
}

func GetErrorMessage(code string) string {
	if msg, exists := errorMessages[code]; exists {
		return msg
	}
	return ErrMsgInternalError
}

func GetHTTPStatus(code string) int {
	switch code {
	case ErrCodeInvalidCommand, ErrCodeInvalidRequestBody:
		return 400
	case ErrCodeInquiryNotFound:
		return 404
	case ErrCodeDuplicateInquiry:
		return 409
	case ErrCodeTransportError:
		return 502
	case ErrCodeStoreError:
		return 503
	case ErrCodeInternalError:
		return 500
	default:
		return 500
	}
}
