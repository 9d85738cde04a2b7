package walletpay

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/vitalink/walletpay/antiforgery"
)

const (
	// DefaultGatewayURL is the gateway's wallet API root.
	DefaultGatewayURL = "https://wallet.dcap.com/applepay"
	// DefaultStylesheetURL carries the wallet button branding.
	DefaultStylesheetURL = "https://wallet.dcap.com/css/applepay.css"
	// DefaultButtonID is the id of the pre-existing button element.
	DefaultButtonID = "apple-pay-button"
)

// buttonClasses style the revealed button.
var buttonClasses = []string{"apple-pay", "input-block-level", "apple-pay-button", "apple-pay-button-black"}

type config struct {
	gateway       Gateway
	gatewayURL    string
	httpClient    *http.Client
	antiForgery   antiforgery.Provider
	buttonID      string
	stylesheetURL string
	defaults      requestDefaults
	resultTimeout time.Duration
	logger        *zap.Logger
	clock         func() time.Time
}

func defaultConfig() config {
	return config{
		gatewayURL:    DefaultGatewayURL,
		antiForgery:   antiforgery.Static{Header: antiforgery.DefaultHeader},
		buttonID:      DefaultButtonID,
		stylesheetURL: DefaultStylesheetURL,
		defaults: requestDefaults{
			countryCode:  "US",
			currencyCode: "USD",
			networks:     []Network{NetworkAmex, NetworkMasterCard, NetworkVisa, NetworkDiscover},
		},
		logger: zap.NewNop(),
		clock:  time.Now,
	}
}

// Option customizes the adapter behavior.
type Option func(*config)

// WithGateway replaces the HTTP gateway client entirely. Gateway URL, HTTP
// client and anti-forgery options are ignored when it is set.
func WithGateway(gateway Gateway) Option {
	return func(cfg *config) {
		cfg.gateway = gateway
	}
}

// WithGatewayURL points the default gateway client at another API root.
func WithGatewayURL(baseURL string) Option {
	return func(cfg *config) {
		cfg.gatewayURL = baseURL
	}
}

// WithHTTPClient sets the HTTP client used for gateway calls.
func WithHTTPClient(client *http.Client) Option {
	return func(cfg *config) {
		cfg.httpClient = client
	}
}

// WithAntiForgery sets the provider of the anti-forgery header sent with
// gateway POSTs.
func WithAntiForgery(provider antiforgery.Provider) Option {
	return func(cfg *config) {
		cfg.antiForgery = provider
	}
}

// WithButtonID changes the id of the button element looked up during Init.
func WithButtonID(id string) Option {
	if id == "" {
		panic("walletpay: button id must not be empty")
	}
	return func(cfg *config) {
		cfg.buttonID = id
	}
}

// WithStylesheetURL changes the branding stylesheet injected during Init.
func WithStylesheetURL(href string) Option {
	return func(cfg *config) {
		cfg.stylesheetURL = href
	}
}

// WithCountryCode sets the merchant's ISO 3166 country code. Defaults to US.
func WithCountryCode(code string) Option {
	return func(cfg *config) {
		cfg.defaults.countryCode = code
	}
}

// WithCurrencyCode sets the ISO 4217 currency of the payment request. Defaults to USD.
func WithCurrencyCode(code string) Option {
	return func(cfg *config) {
		cfg.defaults.currencyCode = code
	}
}

// WithSupportedNetworks replaces the accepted card networks.
func WithSupportedNetworks(networks ...Network) Option {
	return func(cfg *config) {
		cfg.defaults.networks = append([]Network(nil), networks...)
	}
}

// WithResultTimeout bounds how long the result handler may take before the
// wallet session is completed with failure. Zero waits indefinitely.
func WithResultTimeout(d time.Duration) Option {
	if d < 0 {
		panic("walletpay: result timeout must not be negative")
	}
	return func(cfg *config) {
		cfg.resultTimeout = d
	}
}

// WithLogger sets the structured logger. Defaults to a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(cfg *config) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

// withClock provides deterministic time in tests.
func withClock(fn func() time.Time) Option {
	return func(cfg *config) {
		cfg.clock = fn
	}
}
