package walletpay

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMerchantConfigValidate(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		cfg     MerchantConfig
		wantErr string
	}{
		"valid": {
			cfg: MerchantConfig{TokenKey: "tk", StoreName: "Shop", MerchantID: "merchant.com.shop", Subtotal: "10.50"},
		},
		"whole amount": {
			cfg: MerchantConfig{TokenKey: "tk", Subtotal: "10"},
		},
		"token key optional": {
			cfg: MerchantConfig{Subtotal: "1.00"},
		},
		"three fraction digits": {
			cfg: MerchantConfig{TokenKey: "tk", Subtotal: "1.250"},
		},
		"missing subtotal": {
			cfg:     MerchantConfig{TokenKey: "tk"},
			wantErr: "subtotal is required",
		},
		"negative subtotal": {
			cfg:     MerchantConfig{TokenKey: "tk", Subtotal: "-1.00"},
			wantErr: "subtotal must be a non-negative decimal number",
		},
		"trailing dot": {
			cfg:     MerchantConfig{TokenKey: "tk", Subtotal: "1."},
			wantErr: "subtotal must be a non-negative decimal number",
		},
		"recurring with bad unit": {
			cfg: MerchantConfig{TokenKey: "tk", Subtotal: "1.00", Recurring: &RecurringOptions{
				IsRecurring:  true,
				IntervalUnit: "fortnight",
			}},
			wantErr: "recurring.intervalUnit must be one of [minute, hour, day, month, year]",
		},
		"recurring with bad management url": {
			cfg: MerchantConfig{TokenKey: "tk", Subtotal: "1.00", Recurring: &RecurringOptions{
				IsRecurring:   true,
				ManagementURL: "not a url",
			}},
			wantErr: "recurring.managementURL must be an absolute URL",
		},
		"recurring with negative count": {
			cfg: MerchantConfig{TokenKey: "tk", Subtotal: "1.00", Recurring: &RecurringOptions{
				IsRecurring:   true,
				IntervalCount: -2,
			}},
			wantErr: "recurring.intervalCount must be at least 0",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidateAmount(t *testing.T) {
	t.Parallel()

	require.NoError(t, validateAmount("0"))
	require.NoError(t, validateAmount("19.9"))
	require.NoError(t, validateAmount("19.99"))
	require.NoError(t, validateAmount("12.345"))

	err := validateAmount("")
	require.Error(t, err)
	assert.Equal(t, "subtotal is required", err.Error())

	err = validateAmount("ten")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "subtotal must be")
}

func TestMerchantConfigCloneIsIndependent(t *testing.T) {
	t.Parallel()

	orig := MerchantConfig{TokenKey: "tk", Subtotal: "1.00", Recurring: &RecurringOptions{IsRecurring: true, Label: "A"}}
	cp := orig.clone()
	cp.Recurring.Label = "B"

	assert.Equal(t, "A", orig.Recurring.Label)
}
