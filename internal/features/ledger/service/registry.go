package service

import (
	"context"
	"fmt"

	"arverify-node/internal/features/verification/models"
	"arverify-node/internal/platform/arweave"
)

// Registry reads attestations issued by this node or any trusted node.
type Registry struct {
	gateway Gateway
	appName string
	owners  []string
}

func NewRegistry(gateway Gateway, appName, nodeAddress string, trusted []string) *Registry {
	owners := []string{nodeAddress}
	for _, addr := range trusted {
		if addr != "" && addr != nodeAddress {
			owners = append(owners, addr)
		}
	}
	return &Registry{gateway: gateway, appName: appName, owners: owners}
}

func (r *Registry) IsVerified(ctx context.Context, address string) (bool, error) {
	nodes, err := r.gateway.Transactions(ctx, arweave.TransactionFilter{
		Owners: r.owners,
		Tags: []arweave.TagFilter{
			{Name: TagAppName, Values: []string{r.appName}},
			{Name: TagType, Values: []string{models.TypeVerification}},
			{Name: TagAddress, Values: []string{address}},
		},
		First: 1,
	})
	if err != nil {
		return false, fmt.Errorf("query attestations: %w", err)
	}
	return len(nodes) > 0, nil
}

// Owners returns the wallets whose attestations are honored.
func (r *Registry) Owners() []string {
	return append([]string(nil), r.owners...)
}
