package service

import (
	"context"
	"fmt"

	sdkmath "cosmossdk.io/math"
	"github.com/rs/zerolog"

	"arverify-node/internal/features/verification/models"
	"arverify-node/internal/platform/arweave"
)

// TipGateway finds tip payments on the ledger.
type TipGateway struct {
	gateway Gateway
	logger  zerolog.Logger
}

func NewTipGateway(gateway Gateway, logger zerolog.Logger) *TipGateway {
	return &TipGateway{gateway: gateway, logger: logger}
}

// FindTip requires exactly one transaction from sender to recipient. Two
// results are fetched so that ambiguity can be detected.
func (g *TipGateway) FindTip(ctx context.Context, sender, recipient string, amount sdkmath.Int) (*models.TipEvidence, error) {
	nodes, err := g.gateway.Transactions(ctx, arweave.TransactionFilter{
		Owners:     []string{sender},
		Recipients: []string{recipient},
		First:      2,
	})
	if err != nil {
		return nil, fmt.Errorf("query tips: %w", err)
	}
	if len(nodes) != 1 {
		g.logger.Debug().Str("sender", sender).Int("count", len(nodes)).Msg("Tip count mismatch")
		return nil, models.ErrTipNotFound
	}

	node := nodes[0]
	paid, ok := sdkmath.NewIntFromString(node.Quantity.Winston)
	if !ok {
		return nil, fmt.Errorf("tip %s: invalid quantity %q", node.ID, node.Quantity.Winston)
	}
	if !paid.Equal(amount) {
		g.logger.Debug().
			Str("sender", sender).
			Str("paid", paid.String()).
			Str("expected", amount.String()).
			Msg("Tip amount mismatch")
		return nil, models.ErrTipNotFound
	}

	return &models.TipEvidence{
		TransactionID: node.ID,
		Sender:        sender,
		Recipient:     recipient,
		Amount:        paid,
	}, nil
}
