package service

import (
	apperrors "arverify-node/internal/common/errors"
)

const (
	reasonNoAccessToken    = "no access token"
	reasonEmailNotVerified = "email not verified"
	reasonTokenRejected    = "invalid token"
)

func errMissingAddress() error {
	return apperrors.New(apperrors.ErrCodeMissingAddress, "address is required")
}

func errMissingCode() error {
	return apperrors.New(apperrors.ErrCodeMissingCode, "code is required")
}

func errMalformedState(cause error) error {
	return apperrors.Wrap(cause, apperrors.ErrCodeMalformedState, "invalid state")
}

func errTipNotFound(address string) error {
	return apperrors.New(apperrors.ErrCodeTipNotFound, "no tip").WithDetail("address", address)
}

func errClaimRejected(reason, address string) error {
	return apperrors.New(apperrors.ErrCodeClaimRejected, reason).WithDetail("address", address)
}

func errInProgress(address string) error {
	return apperrors.New(apperrors.ErrCodeVerificationInProgress, "verification in progress").WithDetail("address", address)
}

func errAlreadyVerified(address string) error {
	return apperrors.New(apperrors.ErrCodeVerificationInProgress, "already verified").WithDetail("address", address)
}

func errLedger(op string, cause error) error {
	return apperrors.Wrap(cause, apperrors.ErrCodeLedgerUnavailable, "ledger unavailable").WithDetail("operation", op)
}

func errProvider(op string, cause error) error {
	return apperrors.Wrap(cause, apperrors.ErrCodeIdentityProvider, "identity provider unavailable").WithDetail("operation", op)
}

func errBroadcast(cause error) error {
	return apperrors.Wrap(cause, apperrors.ErrCodeBroadcastFailed, "attestation broadcast failed")
}

func errLock(cause error) error {
	return apperrors.Wrap(cause, apperrors.ErrCodeLockUnavailable, "lock unavailable")
}
