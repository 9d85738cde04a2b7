package walletpay

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDefaults() requestDefaults {
	return defaultConfig().defaults
}

func TestBuildPaymentRequest(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 3, 4, 5, 6, 7, 0, time.UTC)
	cfg := MerchantConfig{TokenKey: "tk", StoreName: "Corner Shop", MerchantID: "merchant.shop", Subtotal: "24.00"}

	req := buildPaymentRequest(cfg, testDefaults(), now, "https://shop.example.com")

	assert.Equal(t, "US", req.CountryCode)
	assert.Equal(t, "USD", req.CurrencyCode)
	assert.Equal(t, []MerchantCapability{Supports3DS}, req.MerchantCapabilities)
	assert.Equal(t, []Network{NetworkAmex, NetworkMasterCard, NetworkVisa, NetworkDiscover}, req.SupportedNetworks)
	assert.Equal(t, LineItem{Label: "Corner Shop", Type: LineItemFinal, Amount: "24.00"}, req.Total)
	want := []ContactField{ContactEmail, ContactName, ContactPhone, ContactPostalAddress}
	assert.Equal(t, want, req.RequiredBillingContactFields)
	assert.Equal(t, want, req.RequiredShippingContactFields)
	assert.Nil(t, req.RecurringPaymentRequest)
}

func TestBuildPaymentRequestRecurring(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 3, 4, 5, 6, 7, 0, time.UTC)

	tests := map[string]struct {
		opts *RecurringOptions
		want *RecurringPaymentRequest
	}{
		"no options": {},
		"flag unset": {
			opts: &RecurringOptions{Description: "Ignored", IntervalUnit: IntervalYear},
		},
		"defaults": {
			opts: &RecurringOptions{IsRecurring: true},
			want: &RecurringPaymentRequest{
				PaymentDescription: "Subscription",
				RegularBilling: LineItem{
					Label:                         "Corner Shop Subscription",
					Type:                          LineItemFinal,
					Amount:                        "9.99",
					PaymentTiming:                 PaymentTimingRecurring,
					RecurringPaymentStartDate:     &now,
					RecurringPaymentIntervalUnit:  IntervalMonth,
					RecurringPaymentIntervalCount: 1,
				},
				ManagementURL: "https://shop.example.com",
			},
		},
		"explicit values": {
			opts: &RecurringOptions{
				IsRecurring:   true,
				Description:   "Coffee club",
				Label:         "Monthly beans",
				ManagementURL: "https://shop.example.com/account",
				IntervalUnit:  IntervalDay,
				IntervalCount: 14,
			},
			want: &RecurringPaymentRequest{
				PaymentDescription: "Coffee club",
				RegularBilling: LineItem{
					Label:                         "Monthly beans",
					Type:                          LineItemFinal,
					Amount:                        "9.99",
					PaymentTiming:                 PaymentTimingRecurring,
					RecurringPaymentStartDate:     &now,
					RecurringPaymentIntervalUnit:  IntervalDay,
					RecurringPaymentIntervalCount: 14,
				},
				ManagementURL: "https://shop.example.com/account",
			},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			cfg := MerchantConfig{StoreName: "Corner Shop", Subtotal: "9.99", Recurring: tt.opts}
			req := buildPaymentRequest(cfg, testDefaults(), now, "https://shop.example.com")
			assert.Equal(t, tt.want, req.RecurringPaymentRequest)
		})
	}
}

func TestBuildPaymentRequestJSON(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 3, 4, 5, 6, 7, 0, time.UTC)
	cfg := MerchantConfig{StoreName: "Shop", Subtotal: "5.00", Recurring: &RecurringOptions{IsRecurring: true}}
	raw, err := json.Marshal(buildPaymentRequest(cfg, testDefaults(), now, "https://shop.example.com"))
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	total := decoded["total"].(map[string]any)
	assert.Equal(t, "5.00", total["amount"])
	assert.NotContains(t, total, "paymentTiming")

	recurring := decoded["recurringPaymentRequest"].(map[string]any)
	billing := recurring["regularBilling"].(map[string]any)
	assert.Equal(t, "recurring", billing["paymentTiming"])
	assert.Equal(t, "2025-03-04T05:06:07Z", billing["recurringPaymentStartDate"])
	assert.Equal(t, "month", billing["recurringPaymentIntervalUnit"])
	assert.EqualValues(t, 1, billing["recurringPaymentIntervalCount"])
}

func TestBuildPaymentRequestDoesNotShareSlices(t *testing.T) {
	t.Parallel()

	defaults := testDefaults()
	first := buildPaymentRequest(MerchantConfig{Subtotal: "1.00"}, defaults, time.Now(), "")
	first.SupportedNetworks[0] = "mutated"
	first.RequiredBillingContactFields[0] = "mutated"

	second := buildPaymentRequest(MerchantConfig{Subtotal: "1.00"}, defaults, time.Now(), "")
	assert.Equal(t, NetworkAmex, second.SupportedNetworks[0])
	assert.Equal(t, ContactEmail, second.RequiredBillingContactFields[0])
	assert.Equal(t, NetworkAmex, defaults.networks[0])
}
