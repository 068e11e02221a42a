package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"arverify-node/internal/features/verification/models"
	"arverify-node/internal/platform/arweave"
	"arverify-node/internal/utils/random"
)

// Issuer signs and broadcasts attestation transactions from the node wallet.
type Issuer struct {
	gateway Gateway
	signer  Signer
	appName string
	logger  zerolog.Logger
}

func NewIssuer(gateway Gateway, signer Signer, appName string, logger zerolog.Logger) *Issuer {
	return &Issuer{gateway: gateway, signer: signer, appName: appName, logger: logger}
}

// Issue returns the id of the broadcast attestation for address. The
// transaction targets address and transfers nothing.
func (i *Issuer) Issue(ctx context.Context, address, method string) (string, error) {
	data, err := random.Digits(4)
	if err != nil {
		return "", err
	}

	tx, err := i.gateway.CreateTransaction(ctx, address, []byte(data),
		arweave.Tag{Name: TagAppName, Value: i.appName},
		arweave.Tag{Name: TagType, Value: models.TypeVerification},
		arweave.Tag{Name: TagMethod, Value: method},
		arweave.Tag{Name: TagAddress, Value: address},
	)
	if err != nil {
		return "", fmt.Errorf("create attestation: %w", err)
	}
	return i.signAndSubmit(ctx, tx)
}

func (i *Issuer) signAndSubmit(ctx context.Context, tx *arweave.Transaction) (string, error) {
	if err := i.signer.SignTransaction(tx); err != nil {
		return "", fmt.Errorf("sign transaction: %w", err)
	}
	if err := i.gateway.Submit(ctx, tx); err != nil {
		return "", fmt.Errorf("submit transaction %s: %w", tx.ID(), err)
	}
	i.logger.Debug().Str("tx_id", tx.ID()).Str("reward", tx.Reward.String()).Msg("Transaction submitted")
	return tx.ID(), nil
}
