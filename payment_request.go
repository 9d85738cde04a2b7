package walletpay

import (
	"time"
)

// MerchantCapability defines model for PaymentRequest.MerchantCapabilities.
type MerchantCapability string

// Defines values for MerchantCapability.
const (
	Supports3DS MerchantCapability = "supports3DS"
)

// Network is a card network accepted by the payment request.
type Network string

// Defines values for Network.
const (
	NetworkAmex       Network = "amex"
	NetworkMasterCard Network = "masterCard"
	NetworkVisa       Network = "visa"
	NetworkDiscover   Network = "discover"
)

// ContactField is a contact field the wallet must collect.
type ContactField string

// Defines values for ContactField.
const (
	ContactEmail         ContactField = "email"
	ContactName          ContactField = "name"
	ContactPhone         ContactField = "phone"
	ContactPostalAddress ContactField = "postalAddress"
)

// LineItemType defines model for LineItem.Type.
type LineItemType string

// Defines values for LineItemType.
const (
	LineItemFinal   LineItemType = "final"
	LineItemPending LineItemType = "pending"
)

// PaymentTiming defines model for LineItem.PaymentTiming.
type PaymentTiming string

// Defines values for PaymentTiming.
const (
	PaymentTimingRecurring PaymentTiming = "recurring"
)

// PaymentRequest is the descriptor handed to the wallet session. A new value is
// built for every attempt and never modified afterwards.
type PaymentRequest struct {
	CountryCode                   string                   `json:"countryCode"`
	CurrencyCode                  string                   `json:"currencyCode"`
	MerchantCapabilities          []MerchantCapability     `json:"merchantCapabilities"`
	SupportedNetworks             []Network                `json:"supportedNetworks"`
	Total                         LineItem                 `json:"total"`
	RequiredBillingContactFields  []ContactField           `json:"requiredBillingContactFields"`
	RequiredShippingContactFields []ContactField           `json:"requiredShippingContactFields"`
	RecurringPaymentRequest       *RecurringPaymentRequest `json:"recurringPaymentRequest,omitempty"`
}

// LineItem defines model for PaymentRequest.Total and recurring billing.
type LineItem struct {
	Label                         string        `json:"label"`
	Type                          LineItemType  `json:"type"`
	Amount                        string        `json:"amount"`
	PaymentTiming                 PaymentTiming `json:"paymentTiming,omitempty"`
	RecurringPaymentStartDate     *time.Time    `json:"recurringPaymentStartDate,omitempty"`
	RecurringPaymentIntervalUnit  IntervalUnit  `json:"recurringPaymentIntervalUnit,omitempty"`
	RecurringPaymentIntervalCount int           `json:"recurringPaymentIntervalCount,omitempty"`
}

// RecurringPaymentRequest defines model for PaymentRequest.RecurringPaymentRequest.
type RecurringPaymentRequest struct {
	PaymentDescription string   `json:"paymentDescription"`
	RegularBilling     LineItem `json:"regularBilling"`
	ManagementURL      string   `json:"managementURL"`
}

var requiredContactFields = []ContactField{ContactEmail, ContactName, ContactPhone, ContactPostalAddress}

type requestDefaults struct {
	countryCode  string
	currencyCode string
	networks     []Network
}

// buildPaymentRequest derives the descriptor for one attempt from a
// configuration snapshot. now and origin fill the recurring defaults.
func buildPaymentRequest(cfg MerchantConfig, defaults requestDefaults, now time.Time, origin string) PaymentRequest {
	req := PaymentRequest{
		CountryCode:                   defaults.countryCode,
		CurrencyCode:                  defaults.currencyCode,
		MerchantCapabilities:          []MerchantCapability{Supports3DS},
		SupportedNetworks:             append([]Network(nil), defaults.networks...),
		Total:                         LineItem{Label: cfg.StoreName, Type: LineItemFinal, Amount: cfg.Subtotal},
		RequiredBillingContactFields:  append([]ContactField(nil), requiredContactFields...),
		RequiredShippingContactFields: append([]ContactField(nil), requiredContactFields...),
	}
	if !cfg.recurring() {
		return req
	}

	opts := cfg.Recurring
	start := now.UTC()
	req.RecurringPaymentRequest = &RecurringPaymentRequest{
		PaymentDescription: orDefault(opts.Description, "Subscription"),
		RegularBilling: LineItem{
			Label:                         orDefault(opts.Label, cfg.StoreName+" Subscription"),
			Type:                          LineItemFinal,
			Amount:                        cfg.Subtotal,
			PaymentTiming:                 PaymentTimingRecurring,
			RecurringPaymentStartDate:     &start,
			RecurringPaymentIntervalUnit:  IntervalUnit(orDefault(string(opts.IntervalUnit), string(IntervalMonth))),
			RecurringPaymentIntervalCount: opts.IntervalCount,
		},
		ManagementURL: orDefault(opts.ManagementURL, origin),
	}
	if req.RecurringPaymentRequest.RegularBilling.RecurringPaymentIntervalCount <= 0 {
		req.RecurringPaymentRequest.RegularBilling.RecurringPaymentIntervalCount = 1
	}
	return req
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
