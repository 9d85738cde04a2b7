package walletpay

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"
)

// Adapter wires a checkout page's wallet button to the payment gateway.
// It holds the merchant configuration for the page's lifetime and runs at most
// one payment attempt at a time.
type Adapter struct {
	platform Platform
	gateway  Gateway
	cfg      config
	log      *zap.Logger

	mu       sync.Mutex
	merchant *MerchantConfig
	handler  ResultHandler
	inFlight *attempt
}

// New builds an [Adapter] for the given platform.
func New(platform Platform, opts ...Option) *Adapter {
	if platform == nil {
		panic("walletpay: platform is required")
	}
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	gateway := cfg.gateway
	if gateway == nil {
		gateway = &GatewayClient{
			BaseURL:     cfg.gatewayURL,
			Client:      cfg.httpClient,
			AntiForgery: cfg.antiForgery,
		}
	}
	return &Adapter{
		platform: platform,
		gateway:  gateway,
		cfg:      cfg,
		log:      cfg.logger,
	}
}

// Init stores the merchant configuration, checks device support and reveals
// the wallet button when the gateway allows it. Every failure is reported to
// handler exactly once; the returned error is non-nil only when handler is nil.
// A configuration without a merchant identifier is reported and not stored.
func (a *Adapter) Init(ctx context.Context, handler ResultHandler, merchant MerchantConfig) error {
	if handler == nil {
		return errors.New("walletpay: result handler is required")
	}
	if merchant.MerchantID == "" {
		a.mu.Lock()
		a.merchant = nil
		a.handler = nil
		a.mu.Unlock()
		a.report(ctx, handler, errMissingMerchantID())
		return nil
	}
	stored := merchant.clone()
	a.mu.Lock()
	a.merchant = &stored
	a.handler = handler
	a.mu.Unlock()

	log := a.log.With(zap.String("merchant_id", merchant.MerchantID))

	if err := a.probe(ctx, merchant.MerchantID); err != nil {
		a.report(ctx, handler, err)
		return nil
	}
	button, ok := a.platform.ButtonByID(a.cfg.buttonID)
	if !ok {
		a.report(ctx, handler, errMissingButton(a.cfg.buttonID))
		return nil
	}
	if a.cfg.stylesheetURL != "" {
		if err := a.platform.InjectStylesheet(a.cfg.stylesheetURL); err != nil {
			log.Warn("inject wallet stylesheet", zap.String("href", a.cfg.stylesheetURL), zap.Error(err))
		}
	}
	a.presentButton(ctx, log, button, merchant.TokenKey)
	return nil
}

// UpdateAmount replaces the subtotal used by later payment attempts. An
// attempt already in progress keeps the amount it started with.
func (a *Adapter) UpdateAmount(amount string) error {
	if err := validateAmount(amount); err != nil {
		return err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.merchant == nil {
		return ErrNotInitialized
	}
	a.merchant.Subtotal = amount
	return nil
}

// probe requires the wallet API and either general or active-card payment support.
func (a *Adapter) probe(ctx context.Context, merchantID string) *Error {
	if !a.platform.PaymentsAvailable() {
		return errUnsupportedDevice(nil)
	}
	if a.platform.CanMakePayments() {
		return nil
	}
	ok, err := a.platform.CanMakePaymentsWithActiveCard(ctx, merchantID)
	if err != nil {
		return errUnsupportedDevice(err)
	}
	if !ok {
		return errUnsupportedDevice(nil)
	}
	return nil
}

func (a *Adapter) presentButton(ctx context.Context, log *zap.Logger, button Button, tokenKey string) {
	supported, err := a.gateway.Supports3DS(ctx, tokenKey)
	if err != nil {
		log.Warn("wallet button stays hidden", zap.Error(err))
		return
	}
	if !supported {
		log.Info("wallet button stays hidden: 3-D Secure not supported for token key")
		return
	}
	lang := a.platform.DocumentLanguage()
	if lang == "" {
		lang = "en"
	}
	button.SetAttribute("lang", lang)
	button.OnClick(a.handleClick)
	button.AddClass(buttonClasses...)
	log.Debug("wallet button revealed", zap.String("lang", lang))
}

func (a *Adapter) handleClick(ctx context.Context, ev ClickEvent) {
	if err := a.BeginPayment(ctx, ev); err != nil {
		a.log.Warn("payment attempt not started", zap.Error(err))
	}
}

// report delivers an Init or attempt failure to the handler.
func (a *Adapter) report(ctx context.Context, handler ResultHandler, failure *Error) {
	a.log.Warn("wallet payment failure",
		zap.String("code", string(failure.Code)),
		zap.String("message", failure.Message),
		zap.NamedError("cause", failure.Unwrap()),
	)
	if err := handler.HandleResult(ctx, Outcome{Err: failure}); err != nil {
		a.log.Debug("result handler returned error for failure outcome", zap.Error(err))
	}
}
