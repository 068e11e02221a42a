package service

import (
	"context"
	"fmt"

	sdkmath "cosmossdk.io/math"
	"github.com/rs/zerolog"

	"arverify-node/internal/features/verification/models"
	"arverify-node/internal/platform/arweave"
	"arverify-node/internal/utils/random"
)

// StakeResult is the outcome of the startup stake check.
type StakeResult struct {
	Sufficient  bool
	Balance     sdkmath.Int
	GenesisTxID string
}

// StakeCheck gates node startup on the operator's wallet balance.
type StakeCheck struct {
	gateway  Gateway
	signer   Signer
	appName  string
	endpoint string
	minStake sdkmath.Int
	logger   zerolog.Logger
}

func NewStakeCheck(gateway Gateway, signer Signer, appName, endpoint string, minStake sdkmath.Int, logger zerolog.Logger) *StakeCheck {
	if minStake.IsNil() {
		minStake = sdkmath.ZeroInt()
	}
	return &StakeCheck{
		gateway:  gateway,
		signer:   signer,
		appName:  appName,
		endpoint: endpoint,
		minStake: minStake,
		logger:   logger,
	}
}

// Run reads the node balance and, when it is positive and at least the
// minimum stake, announces the node with a genesis transaction.
func (s *StakeCheck) Run(ctx context.Context) (*StakeResult, error) {
	address := s.signer.Address()
	balance, err := s.gateway.Balance(ctx, address)
	if err != nil {
		return nil, fmt.Errorf("read balance of %s: %w", address, err)
	}

	res := &StakeResult{Balance: balance}
	if balance.IsZero() || balance.LT(s.minStake) {
		s.logger.Warn().
			Str("address", address).
			Str("balance", balance.String()).
			Str("min_stake", s.minStake.String()).
			Msg("Insufficient stake")
		return res, nil
	}
	res.Sufficient = true

	data, err := random.Digits(4)
	if err != nil {
		return nil, err
	}
	tx, err := s.gateway.CreateTransaction(ctx, "", []byte(data),
		arweave.Tag{Name: TagAppName, Value: s.appName},
		arweave.Tag{Name: TagType, Value: models.TypeGenesis},
		arweave.Tag{Name: TagEndpoint, Value: s.endpoint},
	)
	if err != nil {
		return nil, fmt.Errorf("create genesis: %w", err)
	}
	issuer := Issuer{gateway: s.gateway, signer: s.signer, logger: s.logger}
	id, err := issuer.signAndSubmit(ctx, tx)
	if err != nil {
		return nil, err
	}
	res.GenesisTxID = id

	s.logger.Info().Str("address", address).Str("tx_id", id).Msg("Sent genesis transaction")
	return res, nil
}
