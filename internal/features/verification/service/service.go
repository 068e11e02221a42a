package service

import (
	"context"
	"errors"
	"time"

	sdkmath "cosmossdk.io/math"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	apperrors "arverify-node/internal/common/errors"
	"arverify-node/internal/common/metrics"
	"arverify-node/internal/features/verification/models"
)

// Options are the immutable per-node settings the orchestrator needs.
type Options struct {
	// WalletAddress receives tips.
	WalletAddress string
	// Fee is the exact tip amount in winston.
	Fee sdkmath.Int
	// CallTimeout bounds every external call.
	CallTimeout time.Duration
}

type verificationService struct {
	registry Registry
	tips     TipLedger
	provider IdentityProvider
	issuer   AttestationIssuer
	locker   AddressLocker
	opts     Options
	logger   zerolog.Logger
}

func NewVerificationService(
	registry Registry,
	tips TipLedger,
	provider IdentityProvider,
	issuer AttestationIssuer,
	locker AddressLocker,
	opts Options,
	logger zerolog.Logger,
) VerificationService {
	if opts.CallTimeout <= 0 {
		opts.CallTimeout = 15 * time.Second
	}
	if locker == nil {
		locker = NopLocker{}
	}
	return &verificationService{
		registry: registry,
		tips:     tips,
		provider: provider,
		issuer:   issuer,
		locker:   locker,
		opts:     opts,
		logger:   logger,
	}
}

// RequestVerification checks for an existing attestation, then for the tip,
// and returns the authorization URL carrying the encoded request as state.
func (s *verificationService) RequestVerification(ctx context.Context, address, returnURI string) (*models.AuthorizationResult, error) {
	if address == "" {
		s.logger.Info().Msg("No address supplied")
		return nil, errMissingAddress()
	}
	log := s.logger.With().Str("address", address).Logger()
	log.Info().Msg("Received verification request")

	verified, err := s.isVerified(ctx, address)
	if err != nil {
		metrics.TipChecks().WithLabelValues("error").Inc()
		log.Warn().Err(err).Msg("Registry lookup failed")
		return nil, errLedger("is_verified", err)
	}
	if verified {
		metrics.TipChecks().WithLabelValues("already_verified").Inc()
		log.Info().Msg("Address already verified")
		return &models.AuthorizationResult{AlreadyVerified: true}, nil
	}

	tip, err := s.findTip(ctx, address)
	switch {
	case errors.Is(err, models.ErrTipNotFound):
		metrics.TipChecks().WithLabelValues("not_found").Inc()
		log.Info().Msg("No tip received from this address yet")
		return nil, errTipNotFound(address)
	case err != nil:
		metrics.TipChecks().WithLabelValues("error").Inc()
		log.Warn().Err(err).Msg("Tip lookup failed")
		return nil, errLedger("find_tip", err)
	}
	metrics.TipChecks().WithLabelValues("found").Inc()
	log.Info().Str("tip_tx", tip.TransactionID).Msg("Tip found")

	state, err := models.EncodeState(models.VerificationRequest{Address: address, ReturnURI: returnURI})
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "internal error")
	}
	uri := s.provider.AuthorizationURL(models.Scopes, state)
	log.Info().Msg("Generated authorization URI")

	return &models.AuthorizationResult{AuthorizationURL: uri}, nil
}

// CompleteAuthorization validates the identity claim for the address in state
// and issues the attestation. Every gate runs before the issuer is called;
// a broadcast cannot be undone.
func (s *verificationService) CompleteAuthorization(ctx context.Context, code, state string) (*models.AttestationResult, error) {
	req, err := models.DecodeState(state)
	if err != nil {
		s.logger.Info().Err(err).Msg("Rejected callback with malformed state")
		return nil, errMalformedState(err)
	}
	log := s.logger.With().Str("address", req.Address).Logger()
	if code == "" {
		log.Info().Msg("Callback without authorization code")
		return nil, errMissingCode()
	}
	log.Info().Msg("Received callback")

	claim, err := s.validateClaim(ctx, code, req.Address, log)
	if err != nil {
		return nil, err
	}
	log.Info().Str("email", claim.Email).Msg("Verified email")

	release, err := s.lock(ctx, req.Address, log)
	if err != nil {
		return nil, err
	}

	txID, err := s.issue(ctx, req.Address)
	if err != nil {
		release(context.WithoutCancel(ctx))
		metrics.Attestations().WithLabelValues("error").Inc()
		log.Error().Err(err).Msg("Attestation broadcast failed")
		return nil, errBroadcast(err)
	}
	// the lock is left to expire so the new transaction has time to be indexed
	metrics.Attestations().WithLabelValues("sent").Inc()
	log.Info().Str("tx_id", txID).Msg("Sent attestation transaction")

	return &models.AttestationResult{
		TransactionID: txID,
		Address:       req.Address,
		ReturnURI:     req.ReturnURI,
	}, nil
}

func (s *verificationService) validateClaim(ctx context.Context, code, address string, log zerolog.Logger) (*models.IdentityClaim, error) {
	token, err := s.exchangeCode(ctx, code)
	if err != nil {
		metrics.ClaimValidations().WithLabelValues("error").Inc()
		log.Warn().Err(err).Msg("Code exchange failed")
		return nil, errProvider("exchange_code", err)
	}
	if token == "" {
		metrics.ClaimValidations().WithLabelValues("no_access_token").Inc()
		log.Warn().Msg("No access token")
		return nil, errClaimRejected(reasonNoAccessToken, address)
	}

	claim, err := s.introspect(ctx, token)
	switch {
	case errors.Is(err, models.ErrTokenRejected):
		metrics.ClaimValidations().WithLabelValues("token_rejected").Inc()
		log.Warn().Err(err).Msg("Access token rejected")
		return nil, errClaimRejected(reasonTokenRejected, address)
	case err != nil:
		metrics.ClaimValidations().WithLabelValues("error").Inc()
		log.Warn().Err(err).Msg("Token introspection failed")
		return nil, errProvider("introspect", err)
	}
	if !claim.EmailVerified {
		metrics.ClaimValidations().WithLabelValues("email_unverified").Inc()
		log.Warn().Msg("Email address is not verified")
		return nil, errClaimRejected(reasonEmailNotVerified, address)
	}

	metrics.ClaimValidations().WithLabelValues("verified").Inc()
	return claim, nil
}

// lock acquires the per-address lock when enabled and re-checks the registry
// under it. The returned release is a no-op when locking is disabled.
func (s *verificationService) lock(ctx context.Context, address string, log zerolog.Logger) (func(context.Context), error) {
	if !s.locker.Enabled() {
		return func(context.Context) {}, nil
	}

	release, err := s.locker.Acquire(ctx, address)
	switch {
	case errors.Is(err, models.ErrLocked):
		log.Info().Msg("Attestation already in flight")
		return nil, errInProgress(address)
	case err != nil:
		log.Error().Err(err).Msg("Lock acquisition failed")
		return nil, errLock(err)
	}

	verified, err := s.isVerified(ctx, address)
	if err != nil {
		release(context.WithoutCancel(ctx))
		log.Warn().Err(err).Msg("Registry lookup failed")
		return nil, errLedger("is_verified", err)
	}
	if verified {
		release(context.WithoutCancel(ctx))
		log.Info().Msg("Address verified while callback was pending")
		return nil, errAlreadyVerified(address)
	}
	return release, nil
}

func (s *verificationService) bounded(ctx context.Context, call string) (context.Context, func()) {
	timer := prometheus.NewTimer(metrics.ExternalCallObserver(call))
	ctx, cancel := context.WithTimeout(ctx, s.opts.CallTimeout)
	return ctx, func() {
		cancel()
		timer.ObserveDuration()
	}
}

func (s *verificationService) isVerified(ctx context.Context, address string) (bool, error) {
	ctx, done := s.bounded(ctx, "is_verified")
	defer done()
	return s.registry.IsVerified(ctx, address)
}

func (s *verificationService) findTip(ctx context.Context, address string) (*models.TipEvidence, error) {
	ctx, done := s.bounded(ctx, "find_tip")
	defer done()
	return s.tips.FindTip(ctx, address, s.opts.WalletAddress, s.opts.Fee)
}

func (s *verificationService) exchangeCode(ctx context.Context, code string) (string, error) {
	ctx, done := s.bounded(ctx, "exchange_code")
	defer done()
	return s.provider.ExchangeCode(ctx, code)
}

func (s *verificationService) introspect(ctx context.Context, token string) (*models.IdentityClaim, error) {
	ctx, done := s.bounded(ctx, "introspect")
	defer done()
	return s.provider.Introspect(ctx, token)
}

func (s *verificationService) issue(ctx context.Context, address string) (string, error) {
	ctx, done := s.bounded(ctx, "issue")
	defer done()
	return s.issuer.Issue(ctx, address, models.MethodGoogle)
}
