package walletpay

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/vitalink/walletpay/antiforgery"
)

// Gateway relays wallet events to the payment gateway.
type Gateway interface {
	Supports3DS(ctx context.Context, tokenKey string) (bool, error)
	ValidateMerchant(ctx context.Context, req ValidateMerchantRequest) (json.RawMessage, error)
	Tokenize(ctx context.Context, req TokenizeRequest) (json.RawMessage, error)
}

// ValidateMerchantRequest is posted to the gateway's validate endpoint.
type ValidateMerchantRequest struct {
	ValidationURL     string `json:"validationUrl"`
	MerchantStoreName string `json:"merchantStoreName"`
	AppleMerchantID   string `json:"appleMerchantID"`
	MerchantHostName  string `json:"merchantHostName"`
}

// TokenizeRequest is posted to the gateway's tokenize endpoint.
type TokenizeRequest struct {
	Token    json.RawMessage `json:"token"`
	TokenKey string          `json:"tokenKey"`
}

// validationEnvelope is the error shape the validate endpoint may return with a 200.
type validationEnvelope struct {
	StatusCode    any `json:"statusCode"`
	StatusMessage any `json:"statusMessage"`
}

// GatewayClient talks to the gateway's wallet endpoints over HTTP.
type GatewayClient struct {
	// BaseURL is the wallet API root, e.g. "https://wallet.dcap.com/applepay".
	BaseURL string

	// Client is the HTTP client to use for requests. If nil, http.DefaultClient is used.
	Client *http.Client

	// AntiForgery supplies the header attached to POST requests.
	AntiForgery antiforgery.Provider
}

var _ Gateway = (*GatewayClient)(nil)

func (c *GatewayClient) httpClient() *http.Client {
	if c.Client != nil {
		return c.Client
	}
	return http.DefaultClient
}

func (c *GatewayClient) endpoint(path string) string {
	return strings.TrimRight(c.BaseURL, "/") + path
}

// Supports3DS asks whether the token key's merchant account supports 3-D
// Secure. Only a 2xx response with the exact body "true" reports support.
func (c *GatewayClient) Supports3DS(ctx context.Context, tokenKey string) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint("/supports3ds/"+url.PathEscape(tokenKey)), nil)
	if err != nil {
		return false, fmt.Errorf("walletpay: build supports3ds request: %w", err)
	}
	resp, err := c.httpClient().Do(req)
	if err != nil {
		return false, fmt.Errorf("walletpay: supports3ds: %w", err)
	}
	if !isSuccess(resp.StatusCode) {
		drain(resp.Body)
		return false, fmt.Errorf("walletpay: supports3ds returned %s", resp.Status)
	}
	body, err := readText(resp.Body, 64)
	if err != nil {
		return false, fmt.Errorf("walletpay: read supports3ds response: %w", err)
	}
	return body == "true", nil
}

// ValidateMerchant forwards the session's validation URL and returns the
// opaque merchant session to hand back to the wallet. Failures are *Error
// values with code [MerchantValidationFailed].
func (c *GatewayClient) ValidateMerchant(ctx context.Context, req ValidateMerchantRequest) (json.RawMessage, error) {
	body, err := encodeJSON(req)
	if err != nil {
		return nil, errValidationMessage(err.Error(), withCause(err))
	}
	resp, err := c.post(ctx, "/validate", body)
	if err != nil {
		return nil, errValidationMessage(err.Error(), withCause(err))
	}
	if !isSuccess(resp.StatusCode) {
		drain(resp.Body)
		return nil, errValidationStatus(resp.StatusCode, statusText(resp))
	}
	session, err := decodeJSONBody(resp.Body)
	if err != nil {
		return nil, errValidationMessage(err.Error(), withCause(err), withStatusCode(resp.StatusCode))
	}
	if !isJSONObject(session) {
		return nil, errValidationMessage("merchant session is not a JSON object", withStatusCode(resp.StatusCode))
	}
	var envelope validationEnvelope
	if err := json.Unmarshal(session, &envelope); err != nil {
		return nil, errValidationMessage(err.Error(), withCause(err), withStatusCode(resp.StatusCode))
	}
	if truthy(envelope.StatusCode) {
		return nil, errValidationMessage(stringify(envelope.StatusMessage), withStatusCode(resp.StatusCode))
	}
	return session, nil
}

// Tokenize exchanges the wallet payment token for a gateway token. The token
// is forwarded byte for byte. Any status other than 200 fails with code
// [TokenizationFailed].
func (c *GatewayClient) Tokenize(ctx context.Context, req TokenizeRequest) (json.RawMessage, error) {
	body, err := encodeTokenizeRequest(req)
	if err != nil {
		return nil, errTokenMessage(err)
	}
	resp, err := c.post(ctx, "/tokenize", body)
	if err != nil {
		return nil, errTokenMessage(err)
	}
	if resp.StatusCode != http.StatusOK {
		drain(resp.Body)
		return nil, errTokenStatus(resp.StatusCode)
	}
	token, err := decodeJSONBody(resp.Body)
	if err != nil {
		return nil, errTokenMessage(err)
	}
	return token, nil
}

func (c *GatewayClient) post(ctx context.Context, path string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(path), body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", contentTypeJSON)
	if err := antiforgery.Apply(ctx, c.AntiForgery, req); err != nil {
		return nil, err
	}
	return c.httpClient().Do(req)
}
