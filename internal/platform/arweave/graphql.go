package arweave

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

const transactionsQuery = `query($owners: [String!], $recipients: [String!], $tags: [TagFilter!], $first: Int) {
  transactions(owners: $owners, recipients: $recipients, tags: $tags, first: $first) {
    edges {
      node {
        id
        owner { address }
        recipient
        quantity { winston ar }
        tags { name value }
      }
    }
  }
}`

// TagFilter matches transactions carrying tag Name with any of Values.
type TagFilter struct {
	Name   string   `json:"name"`
	Values []string `json:"values"`
}

// TransactionFilter narrows a GraphQL transactions query. Empty fields are not sent.
type TransactionFilter struct {
	Owners     []string
	Recipients []string
	Tags       []TagFilter
	First      int
}

// TransactionNode is a transaction as indexed by the gateway.
type TransactionNode struct {
	ID    string `json:"id"`
	Owner struct {
		Address string `json:"address"`
	} `json:"owner"`
	Recipient string `json:"recipient"`
	Quantity  struct {
		Winston string `json:"winston"`
		AR      string `json:"ar"`
	} `json:"quantity"`
	Tags []Tag `json:"tags"`
}

type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type graphQLError struct {
	Message string `json:"message"`
}

type transactionsResponse struct {
	Data struct {
		Transactions struct {
			Edges []struct {
				Node TransactionNode `json:"node"`
			} `json:"edges"`
		} `json:"transactions"`
	} `json:"data"`
	Errors []graphQLError `json:"errors"`
}

// Transactions runs the gateway GraphQL transactions query.
func (c *Client) Transactions(ctx context.Context, f TransactionFilter) ([]TransactionNode, error) {
	vars := map[string]any{}
	if len(f.Owners) > 0 {
		vars["owners"] = f.Owners
	}
	if len(f.Recipients) > 0 {
		vars["recipients"] = f.Recipients
	}
	if len(f.Tags) > 0 {
		vars["tags"] = f.Tags
	}
	if f.First > 0 {
		vars["first"] = f.First
	}

	payload, err := json.Marshal(graphQLRequest{Query: transactionsQuery, Variables: vars})
	if err != nil {
		return nil, fmt.Errorf("marshal graphql request: %w", err)
	}
	body, err := c.do(ctx, http.MethodPost, "/graphql", payload)
	if err != nil {
		return nil, err
	}

	var out transactionsResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("decode graphql response: %w", err)
	}
	if len(out.Errors) > 0 {
		return nil, fmt.Errorf("graphql: %s", out.Errors[0].Message)
	}

	nodes := make([]TransactionNode, 0, len(out.Data.Transactions.Edges))
	for _, e := range out.Data.Transactions.Edges {
		nodes = append(nodes, e.Node)
	}
	return nodes, nil
}
