// Package antiforgery supplies the anti-forgery header attached to gateway
// requests that change state.
package antiforgery

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// DefaultHeader is the header name the gateway expects when none is configured.
const DefaultHeader = "x-antiforgery-token"

// Token is a header name and the server-issued value to send under it.
type Token struct {
	Header string
	Value  string
}

// Provider returns the token to attach to an outgoing request.
type Provider interface {
	Token(ctx context.Context) (Token, error)
}

// ProviderFunc lifts bare functions into [Provider].
type ProviderFunc func(ctx context.Context) (Token, error)

// Token delegates to the wrapped function.
func (f ProviderFunc) Token(ctx context.Context) (Token, error) {
	return f(ctx)
}

// Static always returns the same header and value.
type Static Token

// Token implements [Provider].
func (s Static) Token(context.Context) (Token, error) {
	return Token(s), nil
}

// Apply sets the provider's header on req. An empty value leaves the request
// untouched; an empty header name falls back to [DefaultHeader].
func Apply(ctx context.Context, p Provider, req *http.Request) error {
	if p == nil {
		return nil
	}
	tok, err := p.Token(ctx)
	if err != nil {
		return fmt.Errorf("antiforgery: obtain token: %w", err)
	}
	if tok.Value == "" {
		return nil
	}
	header := strings.TrimSpace(tok.Header)
	if header == "" {
		header = DefaultHeader
	}
	if strings.ContainsAny(header, " \t\r\n:") {
		return errors.New("antiforgery: invalid header name")
	}
	req.Header.Set(header, tok.Value)
	return nil
}
