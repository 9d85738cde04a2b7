package walletpay

import (
	"errors"
	"fmt"
)

// ErrorCode is a machine-readable identifier for the specific failure.
type ErrorCode string

const (
	MissingMerchantID        ErrorCode = "missing_merchant_id"        // No wallet merchant identifier configured.
	InvalidConfiguration     ErrorCode = "invalid_configuration"      // Merchant configuration failed validation.
	MissingButton            ErrorCode = "missing_button"             // Button element not found on the page.
	UnsupportedDevice        ErrorCode = "unsupported_device"         // Wallet API absent or no usable card.
	SessionFailed            ErrorCode = "session_failed"             // Wallet session could not be started.
	MerchantValidationFailed ErrorCode = "merchant_validation_failed" // Gateway rejected or failed merchant validation.
	TokenizationFailed       ErrorCode = "tokenization_failed"        // Gateway failed to exchange the payment token.
)

const merchantValidationPrefix = "Failed to validate merchant. Contact payment gateway support."

var (
	// ErrNotInitialized is returned by BeginPayment before Init stored a configuration.
	ErrNotInitialized = errors.New("walletpay: adapter not initialized")
	// ErrAttemptInProgress is returned by BeginPayment while another attempt is open.
	ErrAttemptInProgress = errors.New("walletpay: payment attempt already in progress")
)

// Error is the failure reported to the [ResultHandler]. Message is the
// human-readable text surfaced as the outcome's Error field.
type Error struct {
	Code    ErrorCode `json:"-"`
	Message string    `json:"Error"`

	status int
	cause  error
}

// Error makes *Error satisfy the stdlib error interface.
func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	return e.Message
}

// Unwrap exposes the transport or decoding failure behind the error, if any.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.cause
}

// StatusCode returns the gateway HTTP status that produced the error, or 0.
func (e *Error) StatusCode() int {
	if e == nil {
		return 0
	}
	return e.status
}

type errorOption func(*Error)

// withStatusCode records the gateway HTTP status.
func withStatusCode(status int) errorOption {
	return func(er *Error) {
		er.status = status
	}
}

// withCause records the underlying failure.
func withCause(err error) errorOption {
	return func(er *Error) {
		er.cause = err
	}
}

func newError(code ErrorCode, message string, opts ...errorOption) *Error {
	errPayload := &Error{
		Code:    code,
		Message: message,
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(errPayload)
	}
	return errPayload
}

func errMissingMerchantID() *Error {
	return newError(MissingMerchantID, "No wallet merchant identifier is configured.")
}

func errInvalidConfiguration(err error) *Error {
	return newError(InvalidConfiguration, fmt.Sprintf("Invalid merchant configuration: %s", err), withCause(err))
}

func errMissingButton(id string) *Error {
	return newError(MissingButton, fmt.Sprintf("Unable to find wallet button element with ID %s.", id))
}

func errUnsupportedDevice(cause error) *Error {
	return newError(UnsupportedDevice, "Browser or device does not support wallet payments on the web", withCause(cause))
}

func errSessionFailed(err error) *Error {
	return newError(SessionFailed, fmt.Sprintf("Unable to start wallet session. Message: %s", err), withCause(err))
}

func errValidationStatus(status int, statusText string) *Error {
	return newError(MerchantValidationFailed, merchantValidationPrefix+" "+statusText, withStatusCode(status))
}

func errValidationMessage(message string, opts ...errorOption) *Error {
	return newError(MerchantValidationFailed, merchantValidationPrefix+" Message: "+message, opts...)
}

func errTokenStatus(status int) *Error {
	return newError(TokenizationFailed, "Failed to create token", withStatusCode(status))
}

func errTokenMessage(err error) *Error {
	return newError(TokenizationFailed, fmt.Sprintf("Failed to create token. Message: %s", err), withCause(err))
}
