package walletpay

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutcomeMarshalJSON(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		outcome Outcome
		want    string
	}{
		"error": {
			outcome: Outcome{Err: errTokenStatus(500)},
			want:    `{"Error":"Failed to create token"}`,
		},
		"payload": {
			outcome: Outcome{Payload: json.RawMessage(`{"Token":"DC4:abc"}`)},
			want:    `{"Token":"DC4:abc"}`,
		},
		"empty": {
			want: `null`,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			raw, err := json.Marshal(tt.outcome)
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(raw))
		})
	}
}

func TestOutcomeTokenResult(t *testing.T) {
	t.Parallel()

	res, err := Outcome{Payload: json.RawMessage(`{"Token":"DC4:abc","Brand":"Visa","Last4":"1111","Extra":true}`)}.TokenResult()
	require.NoError(t, err)
	assert.Equal(t, &TokenResult{Token: "DC4:abc", Brand: "Visa", Last4: "1111"}, res)

	failure := errMissingMerchantID()
	_, err = Outcome{Err: failure}.TokenResult()
	assert.ErrorIs(t, err, failure)

	_, err = Outcome{}.TokenResult()
	assert.EqualError(t, err, "walletpay: empty outcome payload")
}

func TestWithCustomer(t *testing.T) {
	t.Parallel()

	contact := &Contact{
		GivenName:          "Ada",
		FamilyName:         "Lovelace",
		AddressLines:       []string{"12 St James's Square", "Flat 2"},
		Locality:           "London",
		AdministrativeArea: "LDN",
		PostalCode:         "SW1Y 4JH",
		EmailAddress:       "ada@example.com",
		PhoneNumber:        "+44 20 7946 0000",
	}

	tests := map[string]struct {
		payload string
		contact *Contact
		want    string
		wantErr string
	}{
		"no contact keeps payload": {
			payload: `{"Token":"DC4:abc"}`,
			want:    `{"Token":"DC4:abc"}`,
		},
		"contact merged": {
			payload: `{"Token":"DC4:abc","Brand":"Visa"}`,
			contact: contact,
			want: `{"Token":"DC4:abc","Brand":"Visa","Customer":{
				"FirstName":"Ada","LastName":"Lovelace",
				"Address":["12 St James's Square","Flat 2"],
				"City":"London","State":"LDN","Zip":"SW1Y 4JH",
				"Email":"ada@example.com","Phone":"+44 20 7946 0000"}}`,
		},
		"empty contact": {
			payload: `{"Token":"DC4:abc"}`,
			contact: &Contact{},
			want: `{"Token":"DC4:abc","Customer":{
				"FirstName":"","LastName":"","Address":[],
				"City":"","State":"","Zip":"","Email":"","Phone":""}}`,
		},
		"gateway customer replaced": {
			payload: `{"Token":"DC4:abc","Customer":{"CustomerId":"c-9","FirstName":"Old"}}`,
			contact: &Contact{GivenName: "Ada"},
			want: `{"Token":"DC4:abc","Customer":{
				"FirstName":"Ada","LastName":"","Address":[],
				"City":"","State":"","Zip":"","Email":"","Phone":""}}`,
		},
		"gateway customer with conflicting types": {
			payload: `{"Token":"DC4:abc","Customer":{"Address":{"line1":"Old"}}}`,
			contact: &Contact{AddressLines: []string{"1 Main St"}},
			want: `{"Token":"DC4:abc","Customer":{
				"FirstName":"","LastName":"","Address":["1 Main St"],
				"City":"","State":"","Zip":"","Email":"","Phone":""}}`,
		},
		"null payload": {
			payload: `null`,
			contact: contact,
			wantErr: "token payload is not a JSON object",
		},
		"array payload": {
			payload: `["DC4:abc"]`,
			contact: contact,
			wantErr: "token payload is not a JSON object",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, err := withCustomer(json.RawMessage(tt.payload), tt.contact)
			if tt.wantErr != "" {
				require.EqualError(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(got))
		})
	}
}

func TestCustomerFromContactCopiesAddress(t *testing.T) {
	t.Parallel()

	contact := &Contact{AddressLines: []string{"1 Main St"}}
	customer := customerFromContact(contact)
	customer.Address[0] = "changed"

	assert.Equal(t, "1 Main St", contact.AddressLines[0])
}
