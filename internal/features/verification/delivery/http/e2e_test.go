package http

import (
	"context"
	"net/http"
	"net/url"
	"testing"
	"time"

	sdkmath "cosmossdk.io/math"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"arverify-node/internal/common/config"
	"arverify-node/internal/common/middleware"
	"arverify-node/internal/features/verification/models"
	"arverify-node/internal/features/verification/service"
)

type stubRegistry struct{ verified map[string]bool }

func (s *stubRegistry) IsVerified(_ context.Context, address string) (bool, error) {
	return s.verified[address], nil
}

type stubLedger struct {
	payments map[string]sdkmath.Int
}

func (s *stubLedger) FindTip(_ context.Context, sender, recipient string, amount sdkmath.Int) (*models.TipEvidence, error) {
	paid, ok := s.payments[sender]
	if !ok || !paid.Equal(amount) {
		return nil, models.ErrTipNotFound
	}
	return &models.TipEvidence{TransactionID: "tip-" + sender, Sender: sender, Recipient: recipient, Amount: paid}, nil
}

type stubProvider struct{}

func (stubProvider) AuthorizationURL(scopes []string, state string) string {
	return "https://accounts.example/auth?" + url.Values{"state": {state}}.Encode()
}

func (stubProvider) ExchangeCode(_ context.Context, code string) (string, error) {
	if code != "abc" {
		return "", nil
	}
	return "tok", nil
}

func (stubProvider) Introspect(_ context.Context, token string) (*models.IdentityClaim, error) {
	return &models.IdentityClaim{AccessToken: token, EmailVerified: true, Email: "a@b.com"}, nil
}

type stubIssuer struct{ issued []string }

func (s *stubIssuer) Issue(_ context.Context, address, method string) (string, error) {
	s.issued = append(s.issued, address+":"+method)
	return "attestation-" + address, nil
}

func TestVerificationEndToEnd(t *testing.T) {
	fee, err := config.ARToWinston("0.001")
	require.NoError(t, err)
	paid, err := config.ARToWinston("0.001")
	require.NoError(t, err)

	issuer := &stubIssuer{}
	logger := zerolog.New(zerolog.NewTestWriter(t))
	svc := service.NewVerificationService(
		&stubRegistry{verified: map[string]bool{}},
		&stubLedger{payments: map[string]sdkmath.Int{"X1Y2Z3": paid}},
		stubProvider{},
		issuer,
		nil,
		service.Options{WalletAddress: "node", Fee: fee, CallTimeout: time.Second},
		logger,
	)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(middleware.RequestID())
	NewVerificationHandler(svc, logger).RegisterRoutes(router)

	w := get(router, "/verify?address=X1Y2Z3")
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, "success", body["status"])

	authURL, err := url.Parse(body["uri"].(string))
	require.NoError(t, err)
	state := authURL.Query().Get("state")
	assert.Contains(t, state, "X1Y2Z3")

	w = get(router, "/verify/callback?code=abc&state="+url.QueryEscape(state))
	require.Equal(t, http.StatusOK, w.Code)
	body = decode(t, w)
	assert.Equal(t, "success", body["status"])
	assert.NotEmpty(t, body["id"])
	assert.Equal(t, []string{"X1Y2Z3:Google"}, issuer.issued)

	w = get(router, "/verify?address=unpaid")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "no tip", decode(t, w)["message"])
}
