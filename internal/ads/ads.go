// Package ads describes the host's interstitial ad capability. Showing an
// ad is always best-effort: callers unlock the gated content whether the
// ad played, failed or is not available.
package ads

import (
	"context"
	"errors"
)

var ErrUnsupported = errors.New("ads not supported by host")

// Service shows one interstitial ad from adGroupID and returns once it is
// dismissed.
type Service interface {
	Show(ctx context.Context, adGroupID string) error
}

// Unsupported is the Service for hosts without an ad SDK.
type Unsupported struct{}

func (Unsupported) Show(context.Context, string) error { return ErrUnsupported }

// Func adapts an ordinary function to Service.
type Func func(ctx context.Context, adGroupID string) error

func (f Func) Show(ctx context.Context, adGroupID string) error { return f(ctx, adGroupID) }
