// Package walletpaytest provides in-memory implementations of the walletpay
// platform interfaces. Tests and demos drive the wallet session by hand.
package walletpaytest

import (
	"context"
	"encoding/json"
	"errors"
	"slices"
	"sync"

	"github.com/vitalink/walletpay"
)

// Platform is a scripted wallet-capable page. Configure its fields before
// passing it to walletpay.New.
type Platform struct {
	mu sync.Mutex

	Available        bool
	CanPay           bool
	ActiveCard       bool
	ActiveCardErr    error
	Language         string
	Page             walletpay.Location
	NewSessionErr    error
	BeginErr         error
	StylesheetErr    error
	buttons          map[string]*Button
	stylesheets      []string
	sessions         []*Session
	availableChecks  int
	activeCardChecks []string
}

// NewPlatform returns a platform that supports wallet payments and carries a
// button with walletpay.DefaultButtonID.
func NewPlatform() *Platform {
	p := &Platform{
		Available: true,
		CanPay:    true,
		Page:      walletpay.Location{Origin: "https://shop.example.com", Hostname: "shop.example.com"},
		buttons:   make(map[string]*Button),
	}
	p.AddButton(walletpay.DefaultButtonID)
	return p
}

// AddButton places a button element with the given id on the page.
func (p *Platform) AddButton(id string) *Button {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.buttons == nil {
		p.buttons = make(map[string]*Button)
	}
	b := &Button{attributes: make(map[string]string)}
	p.buttons[id] = b
	return b
}

// RemoveButton deletes the button element with the given id.
func (p *Platform) RemoveButton(id string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.buttons, id)
}

// Button returns the element with the given id, or nil.
func (p *Platform) Button(id string) *Button {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.buttons[id]
}

// PaymentsAvailable implements walletpay.Platform.
func (p *Platform) PaymentsAvailable() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.availableChecks++
	return p.Available
}

// CanMakePayments implements walletpay.Platform.
func (p *Platform) CanMakePayments() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.CanPay
}

// CanMakePaymentsWithActiveCard implements walletpay.Platform.
func (p *Platform) CanMakePaymentsWithActiveCard(_ context.Context, merchantID string) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.activeCardChecks = append(p.activeCardChecks, merchantID)
	return p.ActiveCard, p.ActiveCardErr
}

// ButtonByID implements walletpay.Platform.
func (p *Platform) ButtonByID(id string) (walletpay.Button, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	b, ok := p.buttons[id]
	if !ok {
		return nil, false
	}
	return b, true
}

// InjectStylesheet implements walletpay.Platform.
func (p *Platform) InjectStylesheet(href string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.StylesheetErr != nil {
		return p.StylesheetErr
	}
	p.stylesheets = append(p.stylesheets, href)
	return nil
}

// DocumentLanguage implements walletpay.Platform.
func (p *Platform) DocumentLanguage() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.Language
}

// Location implements walletpay.Platform.
func (p *Platform) Location() walletpay.Location {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.Page
}

// NewSession implements walletpay.Platform.
func (p *Platform) NewSession(version int, req walletpay.PaymentRequest) (walletpay.Session, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.NewSessionErr != nil {
		return nil, p.NewSessionErr
	}
	s := &Session{Version: version, Request: req, beginErr: p.BeginErr}
	p.sessions = append(p.sessions, s)
	return s, nil
}

// Stylesheets lists the injected stylesheet URLs.
func (p *Platform) Stylesheets() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return slices.Clone(p.stylesheets)
}

// Sessions lists every session created so far.
func (p *Platform) Sessions() []*Session {
	p.mu.Lock()
	defer p.mu.Unlock()
	return slices.Clone(p.sessions)
}

// LastSession returns the most recent session, or nil.
func (p *Platform) LastSession() *Session {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.sessions) == 0 {
		return nil
	}
	return p.sessions[len(p.sessions)-1]
}

// AvailabilityChecks counts PaymentsAvailable calls.
func (p *Platform) AvailabilityChecks() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.availableChecks
}

// ActiveCardChecks lists the merchant identifiers passed to the active-card check.
func (p *Platform) ActiveCardChecks() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return slices.Clone(p.activeCardChecks)
}

// Button is a page element. It becomes clickable once a handler is attached.
type Button struct {
	mu         sync.Mutex
	attributes map[string]string
	classes    []string
	onClick    func(context.Context, walletpay.ClickEvent)
}

// SetAttribute implements walletpay.Button.
func (b *Button) SetAttribute(name, value string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.attributes[name] = value
}

// AddClass implements walletpay.Button.
func (b *Button) AddClass(names ...string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, name := range names {
		if !slices.Contains(b.classes, name) {
			b.classes = append(b.classes, name)
		}
	}
}

// OnClick implements walletpay.Button.
func (b *Button) OnClick(handler func(context.Context, walletpay.ClickEvent)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.onClick = handler
}

// Attribute returns the value of an attribute.
func (b *Button) Attribute(name string) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.attributes[name]
}

// Classes lists the classes applied to the element.
func (b *Button) Classes() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return slices.Clone(b.classes)
}

// Visible reports whether the wallet branding classes were applied.
func (b *Button) Visible() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return slices.Contains(b.classes, "apple-pay-button")
}

// ErrNoClickHandler is returned by Click on a button nobody listens to.
var ErrNoClickHandler = errors.New("walletpaytest: button has no click handler")

// Click activates the button and returns the delivered event.
func (b *Button) Click(ctx context.Context) (*ClickEvent, error) {
	b.mu.Lock()
	handler := b.onClick
	b.mu.Unlock()
	if handler == nil {
		return nil, ErrNoClickHandler
	}
	ev := &ClickEvent{}
	handler(ctx, ev)
	return ev, nil
}

// ClickEvent records whether default navigation was prevented.
type ClickEvent struct {
	Prevented bool
}

// PreventDefault implements walletpay.ClickEvent.
func (e *ClickEvent) PreventDefault() {
	e.Prevented = true
}

// Session is a wallet session driven by the test. Handlers run synchronously
// on the caller's goroutine.
type Session struct {
	mu sync.Mutex

	Version int
	Request walletpay.PaymentRequest

	// Failures returned from the completion calls.
	MerchantValidationErr error
	CompletePaymentErr    error

	beginErr         error
	begun            bool
	onValidate       func(context.Context, walletpay.ValidateMerchantEvent)
	onAuthorized     func(context.Context, walletpay.PaymentAuthorizedEvent)
	onCancel         func(context.Context)
	merchantSessions []json.RawMessage
	completions      []walletpay.PaymentAuthorizationResult
}

// OnValidateMerchant implements walletpay.Session.
func (s *Session) OnValidateMerchant(handler func(context.Context, walletpay.ValidateMerchantEvent)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onValidate = handler
}

// OnPaymentAuthorized implements walletpay.Session.
func (s *Session) OnPaymentAuthorized(handler func(context.Context, walletpay.PaymentAuthorizedEvent)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onAuthorized = handler
}

// OnCancel implements walletpay.Session.
func (s *Session) OnCancel(handler func(context.Context)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onCancel = handler
}

// Begin implements walletpay.Session.
func (s *Session) Begin(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.beginErr != nil {
		return s.beginErr
	}
	s.begun = true
	return nil
}

// CompleteMerchantValidation implements walletpay.Session.
func (s *Session) CompleteMerchantValidation(merchantSession json.RawMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.MerchantValidationErr != nil {
		return s.MerchantValidationErr
	}
	s.merchantSessions = append(s.merchantSessions, slices.Clone(merchantSession))
	return nil
}

// CompletePayment implements walletpay.Session.
func (s *Session) CompletePayment(result walletpay.PaymentAuthorizationResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.completions = append(s.completions, result)
	return s.CompletePaymentErr
}

// Begun reports whether Begin succeeded.
func (s *Session) Begun() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.begun
}

// ValidateMerchant raises the merchant validation event.
func (s *Session) ValidateMerchant(ctx context.Context, validationURL string) {
	s.mu.Lock()
	handler := s.onValidate
	s.mu.Unlock()
	if handler != nil {
		handler(ctx, walletpay.ValidateMerchantEvent{ValidationURL: validationURL})
	}
}

// Authorize raises the payment authorized event.
func (s *Session) Authorize(ctx context.Context, payment walletpay.Payment) {
	s.mu.Lock()
	handler := s.onAuthorized
	s.mu.Unlock()
	if handler != nil {
		handler(ctx, walletpay.PaymentAuthorizedEvent{Payment: payment})
	}
}

// Cancel raises the cancel event, as when the shopper dismisses the sheet.
func (s *Session) Cancel(ctx context.Context) {
	s.mu.Lock()
	handler := s.onCancel
	s.mu.Unlock()
	if handler != nil {
		handler(ctx)
	}
}

// MerchantSessions lists the payloads passed to CompleteMerchantValidation.
func (s *Session) MerchantSessions() []json.RawMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.merchantSessions)
}

// Completions lists the results passed to CompletePayment.
func (s *Session) Completions() []walletpay.PaymentAuthorizationResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.completions)
}
