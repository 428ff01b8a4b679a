package model

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error         string `json:"error"`
	Message       string `json:"message"`
	CorrelationID string `json:"correlationId,omitempty"`
}

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON         = "INVALID_JSON"
	ErrCodeMissingField        = "MISSING_FIELD"
	ErrCodeEmptyCart           = "EMPTY_CART"
	ErrCodeInvalidAddress      = "INVALID_ADDRESS"
	ErrCodeInvalidPhone        = "INVALID_PHONE"
	ErrCodeInvalidPincode      = "INVALID_PINCODE"
	ErrCodeNotServiceable      = "NOT_SERVICEABLE"
	ErrCodeInvalidCoupon       = "INVALID_COUPON_CODE"
	ErrCodeProductNotFound     = "PRODUCT_NOT_FOUND"
	ErrCodeInvalidQuantity     = "INVALID_QUANTITY"
	ErrCodeOrderNotFound       = "ORDER_NOT_FOUND"
	ErrCodeUnknownStatus       = "UNKNOWN_STATUS"
	ErrCodeIllegalStatusChange = "ILLEGAL_STATUS_CHANGE"
	ErrCodeAttemptNotFound     = "ATTEMPT_NOT_FOUND"
	ErrCodeAttemptFinished     = "ATTEMPT_FINISHED"
	ErrCodeInvalidSignature    = "INVALID_PAYMENT_SIGNATURE"
	ErrCodeGatewayFailure      = "GATEWAY_FAILURE"
	ErrCodeOrderNotRecorded    = "ORDER_NOT_RECORDED"
	ErrCodePaymentNotRecorded  = "PAYMENT_NOT_RECORDED"
	ErrCodeUnauthorised        = "UNAUTHORIZED"
	ErrCodeForbidden           = "FORBIDDEN"
	ErrCodeInternalError       = "INTERNAL_ERROR"
)

// Domain errors for business logic
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrEmptyCart           = NewDomainError(ErrCodeEmptyCart, "Cart is empty")
	ErrInvalidAddress      = NewDomainError(ErrCodeInvalidAddress, "Delivery address is incomplete")
	ErrInvalidPhone        = NewDomainError(ErrCodeInvalidPhone, "Contact phone must be 10 digits")
	ErrInvalidPincode      = NewDomainError(ErrCodeInvalidPincode, "Pincode must be a 6-digit postal code")
	ErrNotServiceable      = NewDomainError(ErrCodeNotServiceable, "Delivery is not available for this pincode")
	ErrInvalidCoupon       = NewDomainError(ErrCodeInvalidCoupon, "Coupon code is not valid")
	ErrProductNotFound     = NewDomainError(ErrCodeProductNotFound, "One or more products not found")
	ErrInvalidQuantity     = NewDomainError(ErrCodeInvalidQuantity, "Quantity must be greater than zero")
	ErrOrderNotFound       = NewDomainError(ErrCodeOrderNotFound, "Order not found")
	ErrUnknownStatus       = NewDomainError(ErrCodeUnknownStatus, "Unknown order status")
	ErrIllegalStatusChange = NewDomainError(ErrCodeIllegalStatusChange, "Order status transition is not allowed")
	ErrAttemptNotFound     = NewDomainError(ErrCodeAttemptNotFound, "Checkout attempt not found")
	ErrAttemptFinished     = NewDomainError(ErrCodeAttemptFinished, "Checkout attempt already finished")
	ErrInvalidSignature    = NewDomainError(ErrCodeInvalidSignature, "Payment signature verification failed")
	ErrOrderNotRecorded    = NewDomainError(ErrCodeOrderNotRecorded, "Payment captured but order could not be recorded, contact support")
	ErrPaymentNotRecorded  = NewDomainError(ErrCodePaymentNotRecorded, "Payment captured but could not be recorded, contact support")
	ErrUnauthorised        = NewDomainError(ErrCodeUnauthorised, "Sign in to continue")
)
