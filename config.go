package walletpay

// IntervalUnit is the calendar unit of a recurring billing interval.
type IntervalUnit string

// Defines values for IntervalUnit.
const (
	IntervalMinute IntervalUnit = "minute"
	IntervalHour   IntervalUnit = "hour"
	IntervalDay    IntervalUnit = "day"
	IntervalMonth  IntervalUnit = "month"
	IntervalYear   IntervalUnit = "year"
)

// MerchantConfig is the per-page merchant state held by an [Adapter].
type MerchantConfig struct {
	// Gateway token key identifying the merchant account.
	TokenKey string `json:"tokenKey"`
	// Store name shown as the wallet sheet's total label.
	StoreName string `json:"storeName"`
	// Wallet merchant identifier. Absence is reported through the result handler.
	MerchantID string `json:"merchantId"`
	// Current subtotal as a decimal string. The number of fraction digits
	// follows the currency.
	//
	// Example: 12.50
	Subtotal string `json:"subtotal" validate:"required,amount"`
	// Optional recurring billing parameters.
	Recurring *RecurringOptions `json:"recurring,omitempty" validate:"omitempty"`
}

// RecurringOptions describes an optional subscription attached to the payment request.
type RecurringOptions struct {
	IsRecurring bool `json:"isRecurring"`
	// Defaults to "Subscription".
	Description string `json:"description,omitempty"`
	// Defaults to "<store name> Subscription".
	Label string `json:"label,omitempty"`
	// Defaults to the page origin.
	ManagementURL string `json:"managementURL,omitempty" validate:"omitempty,url"`
	// Defaults to month.
	IntervalUnit IntervalUnit `json:"intervalUnit,omitempty" validate:"omitempty,oneof=minute hour day month year"`
	// Defaults to 1.
	IntervalCount int `json:"intervalCount,omitempty" validate:"gte=0"`
}

func (c MerchantConfig) recurring() bool {
	return c.Recurring != nil && c.Recurring.IsRecurring
}

// clone returns a copy that shares no pointers with c.
func (c MerchantConfig) clone() MerchantConfig {
	out := c
	if c.Recurring != nil {
		r := *c.Recurring
		out.Recurring = &r
	}
	return out
}
