package service

import (
	"context"

	sdkmath "cosmossdk.io/math"

	"arverify-node/internal/platform/arweave"
)

// Gateway is the part of the Arweave gateway client the ledger services use.
type Gateway interface {
	Transactions(ctx context.Context, f arweave.TransactionFilter) ([]arweave.TransactionNode, error)
	Balance(ctx context.Context, address string) (sdkmath.Int, error)
	CreateTransaction(ctx context.Context, target string, data []byte, tags ...arweave.Tag) (*arweave.Transaction, error)
	Submit(ctx context.Context, tx *arweave.Transaction) error
}

// Signer signs transactions on behalf of the node wallet.
type Signer interface {
	Address() string
	SignTransaction(tx *arweave.Transaction) error
}

type walletSigner struct {
	wallet *arweave.Wallet
}

// WalletSigner adapts a loaded wallet to Signer.
func WalletSigner(w *arweave.Wallet) Signer {
	return walletSigner{wallet: w}
}

func (s walletSigner) Address() string { return s.wallet.Address() }

func (s walletSigner) SignTransaction(tx *arweave.Transaction) error { return tx.Sign(s.wallet) }

const (
	TagAppName  = "App-Name"
	TagType     = "Type"
	TagMethod   = "Method"
	TagAddress  = "Address"
	TagEndpoint = "Endpoint"
)
