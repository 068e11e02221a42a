package main

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/go-jose/go-jose/v4"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeGateway answers balance queries and records every path it serves.
type fakeGateway struct {
	mu      sync.Mutex
	balance string
	paths   []string
}

func (g *fakeGateway) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	g.mu.Lock()
	g.paths = append(g.paths, r.URL.Path)
	g.mu.Unlock()

	if strings.HasPrefix(r.URL.Path, "/wallet/") && strings.HasSuffix(r.URL.Path, "/balance") {
		_, _ = w.Write([]byte(g.balance))
		return
	}
	w.WriteHeader(http.StatusNotFound)
}

func (g *fakeGateway) requested(path string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	for _, p := range g.paths {
		if p == path {
			return true
		}
	}
	return false
}

func (g *fakeGateway) count() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.paths)
}

func setServeEnv(t *testing.T, gateway string) {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	jwk, err := jose.JSONWebKey{Key: key}.MarshalJSON()
	require.NoError(t, err)

	t.Setenv("ENDPOINT", "https://node.example")
	t.Setenv("GOOGLE_CLIENT_ID", "client")
	t.Setenv("GOOGLE_CLIENT_SECRET", "secret")
	t.Setenv("KEYFILE", string(jwk))
	t.Setenv("ARWEAVE_GATEWAY", gateway)
	t.Setenv("REDIS_ADDR", "")
	t.Setenv("PORT", "0")
}

func TestServeHaltsOnInsufficientStake(t *testing.T) {
	gw := &fakeGateway{balance: "0"}
	srv := httptest.NewServer(gw)
	defer srv.Close()
	setServeEnv(t, srv.URL)

	cmd := &cobra.Command{}
	cmd.SetContext(context.Background())

	err := runServe(cmd, nil)
	require.ErrorIs(t, err, errInsufficientStake)
	assert.Equal(t, 1, gw.count(), "only the balance is read")
	assert.False(t, gw.requested("/tx"), "no genesis transaction may be sent")
	assert.False(t, gw.requested("/tx_anchor"))
}

func TestServeHaltsBelowMinimumStake(t *testing.T) {
	gw := &fakeGateway{balance: "999"}
	srv := httptest.NewServer(gw)
	defer srv.Close()
	setServeEnv(t, srv.URL)
	t.Setenv("MIN_STAKE", "0.000000001")

	cmd := &cobra.Command{}
	cmd.SetContext(context.Background())

	err := runServe(cmd, nil)
	require.ErrorIs(t, err, errInsufficientStake)
	assert.False(t, gw.requested("/tx"))
}
