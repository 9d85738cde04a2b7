package walletpay

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/oapi-codegen/runtime"
)

// ResultHandler receives the terminal outcome of Init failures and payment
// attempts. For a successful tokenization, a nil return completes the wallet
// session with success; any error completes it with failure.
type ResultHandler interface {
	HandleResult(ctx context.Context, outcome Outcome) error
}

// ResultFunc lifts bare functions into [ResultHandler].
type ResultFunc func(ctx context.Context, outcome Outcome) error

// HandleResult delegates to the wrapped function.
func (f ResultFunc) HandleResult(ctx context.Context, outcome Outcome) error {
	return f(ctx, outcome)
}

// Outcome is either an error or the gateway's token payload.
type Outcome struct {
	Err     *Error
	Payload json.RawMessage
}

// Failed reports whether the outcome carries an error.
func (o Outcome) Failed() bool {
	return o.Err != nil
}

// MarshalJSON renders {"Error": "..."} for failures and the raw payload otherwise.
func (o Outcome) MarshalJSON() ([]byte, error) {
	if o.Err != nil {
		return json.Marshal(o.Err)
	}
	if len(o.Payload) == 0 {
		return []byte("null"), nil
	}
	return o.Payload, nil
}

// Decode unmarshals the payload into v.
func (o Outcome) Decode(v any) error {
	if o.Err != nil {
		return o.Err
	}
	if len(o.Payload) == 0 {
		return errors.New("walletpay: empty outcome payload")
	}
	return json.Unmarshal(o.Payload, v)
}

// TokenResult decodes the commonly used fields of the tokenize payload.
func (o Outcome) TokenResult() (*TokenResult, error) {
	var res TokenResult
	if err := o.Decode(&res); err != nil {
		return nil, err
	}
	return &res, nil
}

// TokenResult is the subset of the gateway token payload most merchants need.
type TokenResult struct {
	Token    string    `json:"Token"`
	Brand    string    `json:"Brand,omitempty"`
	Last4    string    `json:"Last4,omitempty"`
	Customer *Customer `json:"Customer,omitempty"`
}

// Customer is built from the wallet's shipping contact.
type Customer struct {
	FirstName string   `json:"FirstName"`
	LastName  string   `json:"LastName"`
	Address   []string `json:"Address"`
	City      string   `json:"City"`
	State     string   `json:"State"`
	Zip       string   `json:"Zip"`
	Email     string   `json:"Email"`
	Phone     string   `json:"Phone"`
}

func customerFromContact(c *Contact) Customer {
	address := append([]string(nil), c.AddressLines...)
	if address == nil {
		address = []string{}
	}
	return Customer{
		FirstName: c.GivenName,
		LastName:  c.FamilyName,
		Address:   address,
		City:      c.Locality,
		State:     c.AdministrativeArea,
		Zip:       c.PostalCode,
		Email:     c.EmailAddress,
		Phone:     c.PhoneNumber,
	}
}

// withCustomer sets the payload's Customer record from the shipping contact,
// replacing any Customer the gateway returned. The payload must be a JSON object.
func withCustomer(payload json.RawMessage, contact *Contact) (json.RawMessage, error) {
	if contact == nil {
		return payload, nil
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(payload, &fields); err != nil || fields == nil {
		return nil, errors.New("token payload is not a JSON object")
	}
	base := payload
	if _, ok := fields["Customer"]; ok {
		delete(fields, "Customer")
		stripped, err := json.Marshal(fields)
		if err != nil {
			return nil, fmt.Errorf("marshal token payload: %w", err)
		}
		base = stripped
	}
	patch, err := json.Marshal(struct {
		Customer Customer `json:"Customer"`
	}{Customer: customerFromContact(contact)})
	if err != nil {
		return nil, fmt.Errorf("marshal customer: %w", err)
	}
	merged, err := runtime.JSONMerge(base, patch)
	if err != nil {
		return nil, fmt.Errorf("merge customer: %w", err)
	}
	return merged, nil
}
