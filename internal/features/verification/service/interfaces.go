package service

import (
	"context"

	sdkmath "cosmossdk.io/math"

	"arverify-node/internal/features/verification/models"
)

// Registry answers whether an address already holds an attestation.
type Registry interface {
	IsVerified(ctx context.Context, address string) (bool, error)
}

// TipLedger finds the single payment from sender to recipient of exactly amount.
// It returns models.ErrTipNotFound when zero or several candidates exist or the
// amount differs.
type TipLedger interface {
	FindTip(ctx context.Context, sender, recipient string, amount sdkmath.Int) (*models.TipEvidence, error)
}

// IdentityProvider is the OAuth2 authorization-code collaborator.
type IdentityProvider interface {
	AuthorizationURL(scopes []string, state string) string
	// ExchangeCode returns an empty token and nil error when the provider
	// answered without issuing one.
	ExchangeCode(ctx context.Context, code string) (string, error)
	// Introspect returns models.ErrTokenRejected when the provider refuses the token.
	Introspect(ctx context.Context, accessToken string) (*models.IdentityClaim, error)
}

// AttestationIssuer signs and broadcasts the attestation transaction.
type AttestationIssuer interface {
	Issue(ctx context.Context, address, method string) (string, error)
}

// AddressLocker serializes attestation for one address across requests.
type AddressLocker interface {
	// Acquire returns models.ErrLocked when the address is already held.
	Acquire(ctx context.Context, address string) (release func(context.Context), err error)
	Enabled() bool
}

// VerificationService is the verification orchestrator.
type VerificationService interface {
	RequestVerification(ctx context.Context, address, returnURI string) (*models.AuthorizationResult, error)
	CompleteAuthorization(ctx context.Context, code, state string) (*models.AttestationResult, error)
}

// NopLocker is used when no lock store is configured.
type NopLocker struct{}

func (NopLocker) Acquire(context.Context, string) (func(context.Context), error) {
	return func(context.Context) {}, nil
}

func (NopLocker) Enabled() bool { return false }
