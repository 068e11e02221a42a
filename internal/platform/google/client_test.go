package google

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"arverify-node/internal/features/verification/models"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(Config{
		ClientID:     "client-id",
		ClientSecret: "secret",
		RedirectURL:  "https://node.example/verify/callback",
		TokenInfoURL: srv.URL + "/tokeninfo",
		Endpoint: &oauth2.Endpoint{
			AuthURL:   srv.URL + "/auth",
			TokenURL:  srv.URL + "/token",
			AuthStyle: oauth2.AuthStyleInParams,
		},
		HTTPClient: srv.Client(),
	})
}

func TestAuthorizationURL(t *testing.T) {
	c := NewClient(Config{ClientID: "client-id", RedirectURL: "https://node.example/verify/callback"})
	state := `{"address":"abc","returnUri":"https://x"}`

	raw := c.AuthorizationURL(models.Scopes, state)
	u, err := url.Parse(raw)
	require.NoError(t, err)

	q := u.Query()
	assert.Equal(t, "accounts.google.com", u.Host)
	assert.Equal(t, state, q.Get("state"))
	assert.Equal(t, "openid email profile", q.Get("scope"))
	assert.Equal(t, "https://node.example/verify/callback", q.Get("redirect_uri"))
	assert.Equal(t, "client-id", q.Get("client_id"))
	assert.Equal(t, "code", q.Get("response_type"))
}

func TestExchangeCode(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		w.Header().Set("Content-Type", "application/json")
		switch r.PostForm.Get("code") {
		case "good":
			_, _ = w.Write([]byte(`{"access_token":"tok","token_type":"Bearer","expires_in":3600}`))
		case "empty":
			_, _ = w.Write([]byte(`{"token_type":"Bearer"}`))
		case "blank":
			_, _ = w.Write([]byte(`{"access_token":"","token_type":"Bearer"}`))
		case "broken":
			w.WriteHeader(http.StatusBadGateway)
		default:
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":"invalid_grant"}`))
		}
	})

	tok, err := c.ExchangeCode(context.Background(), "good")
	require.NoError(t, err)
	assert.Equal(t, "tok", tok)

	tok, err = c.ExchangeCode(context.Background(), "bad")
	require.NoError(t, err)
	assert.Empty(t, tok)

	for _, code := range []string{"empty", "blank"} {
		tok, err = c.ExchangeCode(context.Background(), code)
		require.NoError(t, err, code)
		assert.Empty(t, tok, code)
	}

	_, err = c.ExchangeCode(context.Background(), "broken")
	assert.Error(t, err)
}

func TestIntrospect(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("access_token") {
		case "verified-bool":
			_, _ = w.Write([]byte(`{"email":"a@b.c","email_verified":true}`))
		case "verified-string":
			_, _ = w.Write([]byte(`{"email":"a@b.c","email_verified":"true"}`))
		case "unverified":
			_, _ = w.Write([]byte(`{"email":"a@b.c","email_verified":"false"}`))
		case "down":
			w.WriteHeader(http.StatusServiceUnavailable)
		default:
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error_description":"Invalid Value"}`))
		}
	})

	for _, tok := range []string{"verified-bool", "verified-string"} {
		claim, err := c.Introspect(context.Background(), tok)
		require.NoError(t, err, tok)
		assert.True(t, claim.EmailVerified, tok)
		assert.Equal(t, "a@b.c", claim.Email)
	}

	claim, err := c.Introspect(context.Background(), "unverified")
	require.NoError(t, err)
	assert.False(t, claim.EmailVerified)

	_, err = c.Introspect(context.Background(), "expired")
	assert.ErrorIs(t, err, models.ErrTokenRejected)

	_, err = c.Introspect(context.Background(), "down")
	require.Error(t, err)
	assert.NotErrorIs(t, err, models.ErrTokenRejected)
}
