package subscription

import (
	"errors"
	"fmt"
)

var (
	ErrAccountNotFound  = errors.New("account not found")
	ErrForbidden        = errors.New("admin role required")
	ErrInvalidTier      = errors.New("invalid tier")
	ErrSameTier         = errors.New("account is already on the requested tier")
	ErrRequestPending   = errors.New("another payment request is already pending")
	ErrNoPendingRequest = errors.New("no such pending request")
	// ErrAlreadyResolved also matches ErrNoPendingRequest.
	ErrAlreadyResolved  = fmt.Errorf("%w: request already resolved", ErrNoPendingRequest)
	ErrInvalidCode      = errors.New("invalid access code")
	ErrCodeUsed         = errors.New("this access code has already been used")
	ErrRedeemFailed     = errors.New("failed to redeem access code")
	ErrInvalidDowngrade = errors.New("downgrade target must be a lower tier")
)
