package walletpay

import (
	"context"
	"time"
)

// AttemptInfo describes the payment attempt a handler runs for.
type AttemptInfo struct {
	// Unique identifier of the attempt, for correlating logs.
	//
	// Example: 3f2b6c1e-8d0a-4c53-9a55-2a0f1b7f4e21
	ID string
	// When the shopper activated the button.
	StartedAt time.Time
	// Wallet merchant identifier at attempt start.
	MerchantID string
	// Total amount of the attempt's payment request.
	//
	// Example: 12.50
	Total string
}

type attemptContextKey struct{}

func contextWithAttempt(ctx context.Context, info *AttemptInfo) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	if info == nil {
		return ctx
	}
	return context.WithValue(ctx, attemptContextKey{}, info)
}

// AttemptFromContext extracts the attempt metadata previously stored in the context.
func AttemptFromContext(ctx context.Context) *AttemptInfo {
	if ctx == nil {
		return nil
	}
	if info, ok := ctx.Value(attemptContextKey{}).(*AttemptInfo); ok {
		return info
	}
	return nil
}
