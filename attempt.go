package walletpay

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BeginPayment starts a payment attempt. It is the button's click handler.
// The configuration snapshot is validated before a session is created; that
// and every later failure is reported to the result handler. The returned
// error covers only clicks that were refused outright.
func (a *Adapter) BeginPayment(ctx context.Context, ev ClickEvent) error {
	if ev != nil {
		ev.PreventDefault()
	}

	a.mu.Lock()
	if a.merchant == nil || a.handler == nil {
		a.mu.Unlock()
		return ErrNotInitialized
	}
	if a.inFlight != nil {
		a.mu.Unlock()
		return ErrAttemptInProgress
	}
	merchant := a.merchant.clone()
	handler := a.handler
	if err := merchant.Validate(); err != nil {
		a.mu.Unlock()
		a.report(ctx, handler, errInvalidConfiguration(err))
		return nil
	}
	at := &attempt{
		adapter:  a,
		merchant: merchant,
		handler:  handler,
		info: &AttemptInfo{
			ID:         uuid.NewString(),
			StartedAt:  a.cfg.clock(),
			MerchantID: merchant.MerchantID,
		},
	}
	a.inFlight = at
	a.mu.Unlock()

	location := a.platform.Location()
	req := buildPaymentRequest(merchant, a.cfg.defaults, at.info.StartedAt, location.Origin)
	at.info.Total = req.Total.Amount
	at.hostname = location.Hostname
	at.log = a.log.With(
		zap.String("attempt_id", at.info.ID),
		zap.String("merchant_id", merchant.MerchantID),
	)
	ctx = contextWithAttempt(ctx, at.info)

	if rec := req.RecurringPaymentRequest; rec != nil {
		at.log.Debug("recurring payment enabled",
			zap.String("description", rec.PaymentDescription),
			zap.String("interval_unit", string(rec.RegularBilling.RecurringPaymentIntervalUnit)),
			zap.Int("interval_count", rec.RegularBilling.RecurringPaymentIntervalCount),
			zap.String("management_url", rec.ManagementURL),
		)
	}

	session, err := a.platform.NewSession(SessionVersion, req)
	if err != nil {
		at.abort(ctx, errSessionFailed(err))
		return nil
	}
	at.session = session
	session.OnValidateMerchant(at.validateMerchant)
	session.OnPaymentAuthorized(at.authorizePayment)
	session.OnCancel(at.cancel)
	if err := session.Begin(ctx); err != nil {
		at.abort(ctx, errSessionFailed(err))
		return nil
	}
	at.log.Info("payment attempt started", zap.String("total", at.info.Total))
	return nil
}

// attempt is one wallet session's worth of state. Its merchant configuration
// is a snapshot taken when the button was activated.
type attempt struct {
	adapter  *Adapter
	merchant MerchantConfig
	handler  ResultHandler
	info     *AttemptInfo
	hostname string
	session  Session
	log      *zap.Logger

	reported  atomic.Bool
	completed atomic.Bool
	finished  atomic.Bool
}

func (at *attempt) validateMerchant(ctx context.Context, ev ValidateMerchantEvent) {
	ctx = contextWithAttempt(ctx, at.info)
	merchantSession, err := at.adapter.gateway.ValidateMerchant(ctx, ValidateMerchantRequest{
		ValidationURL:     ev.ValidationURL,
		MerchantStoreName: at.merchant.StoreName,
		AppleMerchantID:   at.merchant.MerchantID,
		MerchantHostName:  at.hostname,
	})
	if err != nil {
		at.abort(ctx, asError(err, func(err error) *Error { return errValidationMessage(err.Error(), withCause(err)) }))
		return
	}
	if err := at.session.CompleteMerchantValidation(merchantSession); err != nil {
		at.abort(ctx, errValidationMessage(err.Error(), withCause(err)))
		return
	}
	at.log.Debug("merchant validated")
}

func (at *attempt) authorizePayment(ctx context.Context, ev PaymentAuthorizedEvent) {
	ctx = contextWithAttempt(ctx, at.info)
	payload, err := at.adapter.gateway.Tokenize(ctx, TokenizeRequest{
		Token:    ev.Payment.Token,
		TokenKey: at.merchant.TokenKey,
	})
	if err != nil {
		at.decline(ctx, asError(err, errTokenMessage))
		return
	}
	payload, err = withCustomer(payload, ev.Payment.ShippingContact)
	if err != nil {
		at.decline(ctx, errTokenMessage(err))
		return
	}

	status := StatusSuccess
	if err := at.deliver(ctx, Outcome{Payload: payload}); err != nil {
		at.log.Warn("result handler rejected token", zap.Error(err))
		status = StatusFailure
	}
	at.complete(status)
	at.finish()
}

func (at *attempt) cancel(context.Context) {
	at.log.Info("payment attempt canceled by shopper")
	at.finish()
}

// abort reports a failure and ends the attempt without completing the session.
func (at *attempt) abort(ctx context.Context, failure *Error) {
	at.reportFailure(ctx, failure)
	at.finish()
}

// decline reports a failure and completes the session with failure.
func (at *attempt) decline(ctx context.Context, failure *Error) {
	at.reportFailure(ctx, failure)
	at.complete(StatusFailure)
	at.finish()
}

func (at *attempt) reportFailure(ctx context.Context, failure *Error) {
	if !at.reported.CompareAndSwap(false, true) {
		return
	}
	at.adapter.report(ctx, at.handler, failure)
}

// deliver hands the token payload to the result handler, bounded by the
// configured result timeout.
func (at *attempt) deliver(ctx context.Context, outcome Outcome) error {
	if !at.reported.CompareAndSwap(false, true) {
		return errors.New("walletpay: outcome already reported")
	}
	timeout := at.adapter.cfg.resultTimeout
	if timeout <= 0 {
		return handleSafely(ctx, at.handler, outcome)
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	done := make(chan error, 1)
	go func() {
		done <- handleSafely(ctx, at.handler, outcome)
	}()
	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return fmt.Errorf("walletpay: result handler: %w", ctx.Err())
	}
}

func (at *attempt) complete(status CompletionStatus) {
	if at.session == nil || !at.completed.CompareAndSwap(false, true) {
		return
	}
	if err := at.session.CompletePayment(PaymentAuthorizationResult{Status: status}); err != nil {
		at.log.Warn("complete payment", zap.Int("status", int(status)), zap.Error(err))
		return
	}
	at.log.Info("payment attempt completed", zap.Int("status", int(status)))
}

func (at *attempt) finish() {
	if !at.finished.CompareAndSwap(false, true) {
		return
	}
	a := at.adapter
	a.mu.Lock()
	if a.inFlight == at {
		a.inFlight = nil
	}
	a.mu.Unlock()
}

// handleSafely turns a panicking handler into an error.
func handleSafely(ctx context.Context, handler ResultHandler, outcome Outcome) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("walletpay: result handler panicked: %v", r)
		}
	}()
	return handler.HandleResult(ctx, outcome)
}

// asError keeps gateway *Error values and wraps anything else with fallback.
func asError(err error, fallback func(error) *Error) *Error {
	var gwErr *Error
	if errors.As(err, &gwErr) {
		return gwErr
	}
	return fallback(err)
}
