package antiforgery

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApply(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		provider   Provider
		wantHeader string
		wantValue  string
		wantErr    bool
	}{
		"static token": {
			provider:   Static{Header: "X-CSRF", Value: "abc"},
			wantHeader: "X-CSRF",
			wantValue:  "abc",
		},
		"default header name": {
			provider:   Static{Value: "abc"},
			wantHeader: DefaultHeader,
			wantValue:  "abc",
		},
		"empty value skips header": {
			provider:   Static{Header: DefaultHeader},
			wantHeader: DefaultHeader,
		},
		"nil provider": {
			wantHeader: DefaultHeader,
		},
		"provider func": {
			provider: ProviderFunc(func(ctx context.Context) (Token, error) {
				return Token{Header: "x-token", Value: "dynamic"}, nil
			}),
			wantHeader: "x-token",
			wantValue:  "dynamic",
		},
		"provider error": {
			provider: ProviderFunc(func(ctx context.Context) (Token, error) {
				return Token{}, errors.New("expired")
			}),
			wantErr: true,
		},
		"invalid header name": {
			provider: Static{Header: "bad header", Value: "abc"},
			wantErr:  true,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodPost, "/validate", nil)
			err := Apply(context.Background(), tt.provider, req)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantValue, req.Header.Get(tt.wantHeader))
		})
	}
}
