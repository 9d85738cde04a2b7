package walletpay

import (
	"context"
	"encoding/json"
)

// SessionVersion is the wallet session protocol version requested for every attempt.
const SessionVersion = 6

// Platform is implemented by the host environment: the page, the device and
// its wallet API.
type Platform interface {
	// PaymentsAvailable reports whether the wallet payment API exists at all.
	PaymentsAvailable() bool
	// CanMakePayments reports whether the device can make wallet payments.
	CanMakePayments() bool
	// CanMakePaymentsWithActiveCard checks for a provisioned card usable with merchantID.
	CanMakePaymentsWithActiveCard(ctx context.Context, merchantID string) (bool, error)
	// ButtonByID returns the pre-existing button element with the given id.
	ButtonByID(id string) (Button, bool)
	// InjectStylesheet links a stylesheet into the page head.
	InjectStylesheet(href string) error
	// DocumentLanguage returns the document's language attribute, possibly empty.
	DocumentLanguage() string
	// Location describes the page the adapter runs on.
	Location() Location
	// NewSession creates a wallet session for a single payment attempt.
	NewSession(version int, req PaymentRequest) (Session, error)
}

// Location identifies the checkout page.
type Location struct {
	// Example: https://shop.example.com
	Origin string
	// Example: shop.example.com
	Hostname string
}

// Button is the page element that starts a payment attempt.
type Button interface {
	SetAttribute(name, value string)
	AddClass(names ...string)
	OnClick(handler func(ctx context.Context, ev ClickEvent))
}

// ClickEvent is the activation event delivered to the click handler.
type ClickEvent interface {
	PreventDefault()
}

// Session is a wallet payment session. It is owned by the platform; the adapter
// only registers handlers and reports completion.
type Session interface {
	OnValidateMerchant(handler func(ctx context.Context, ev ValidateMerchantEvent))
	OnPaymentAuthorized(handler func(ctx context.Context, ev PaymentAuthorizedEvent))
	OnCancel(handler func(ctx context.Context))
	Begin(ctx context.Context) error
	CompleteMerchantValidation(merchantSession json.RawMessage) error
	CompletePayment(result PaymentAuthorizationResult) error
}

// ValidateMerchantEvent is raised by the session when the merchant must prove its identity.
type ValidateMerchantEvent struct {
	ValidationURL string `json:"validationURL"`
}

// PaymentAuthorizedEvent is raised once the shopper authorized the payment.
type PaymentAuthorizedEvent struct {
	Payment Payment `json:"payment"`
}

// Payment carries the device-issued credential and the requested contacts.
type Payment struct {
	// Opaque payment token issued by the wallet.
	Token           json.RawMessage `json:"token"`
	BillingContact  *Contact        `json:"billingContact,omitempty"`
	ShippingContact *Contact        `json:"shippingContact,omitempty"`
}

// Contact is a wallet payment contact.
type Contact struct {
	GivenName          string   `json:"givenName,omitempty"`
	FamilyName         string   `json:"familyName,omitempty"`
	AddressLines       []string `json:"addressLines,omitempty"`
	Locality           string   `json:"locality,omitempty"`
	AdministrativeArea string   `json:"administrativeArea,omitempty"`
	PostalCode         string   `json:"postalCode,omitempty"`
	CountryCode        string   `json:"countryCode,omitempty"`
	EmailAddress       string   `json:"emailAddress,omitempty"`
	PhoneNumber        string   `json:"phoneNumber,omitempty"`
}

// CompletionStatus is reported to the wallet session when an attempt finishes.
type CompletionStatus int

// Defines values for CompletionStatus.
const (
	StatusSuccess CompletionStatus = 0
	StatusFailure CompletionStatus = 1
)

// PaymentAuthorizationResult is passed to [Session.CompletePayment].
type PaymentAuthorizationResult struct {
	Status CompletionStatus `json:"status"`
}
