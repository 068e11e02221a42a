package models

import (
	"errors"

	sdkmath "cosmossdk.io/math"
)

const (
	// MethodGoogle is the only supported verification method.
	MethodGoogle = "Google"

	TypeVerification = "Verification"
	TypeGenesis      = "Genesis"
)

// Scopes requested from the identity provider.
var Scopes = []string{"openid", "email", "profile"}

var (
	// ErrTipNotFound means no single matching tip exists on the ledger.
	ErrTipNotFound = errors.New("tip not found")
	// ErrTokenRejected means the provider answered but refused the token.
	ErrTokenRejected = errors.New("token rejected by identity provider")
	// ErrLocked means another attestation for the address is in flight.
	ErrLocked = errors.New("address is locked")
)

// TipEvidence is the single ledger payment accepted as a tip.
type TipEvidence struct {
	TransactionID string
	Sender        string
	Recipient     string
	// Amount in winston.
	Amount sdkmath.Int
}

// IdentityClaim is what the identity provider asserts about the token holder.
type IdentityClaim struct {
	AccessToken   string
	EmailVerified bool
	Email         string
}

// AuthorizationResult is the outcome of RequestVerification.
type AuthorizationResult struct {
	AlreadyVerified  bool
	AuthorizationURL string
}

// AttestationResult is the outcome of CompleteAuthorization.
type AttestationResult struct {
	TransactionID string
	Address       string
	ReturnURI     string
}
