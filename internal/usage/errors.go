package usage

import "errors"

var (
	// ErrLimitReached indicates the free tier prompt cap is used up.
	ErrLimitReached = errors.New("limit reached")
	// ErrPremiumRequired indicates a premium-only feature.
	ErrPremiumRequired = errors.New("premium subscription required")
	// ErrLoginRequired indicates a guest tried an account-only feature.
	ErrLoginRequired = errors.New("login required")
)
