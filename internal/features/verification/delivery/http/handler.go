package http

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"arverify-node/internal/common/middleware"
	"arverify-node/internal/features/verification/service"
)

type VerificationHandler struct {
	service service.VerificationService
	logger  zerolog.Logger
}

func NewVerificationHandler(service service.VerificationService, logger zerolog.Logger) *VerificationHandler {
	return &VerificationHandler{
		service: service,
		logger:  logger,
	}
}

func (h *VerificationHandler) RegisterRoutes(router gin.IRouter) {
	wrap := middleware.HandleErrorWrapper(h.logger)

	verify := router.Group("/verify")
	{
		verify.GET("", wrap(h.verify))
		verify.GET("/callback", wrap(h.callback))
	}
}

// VerifyResponse is returned by GET /verify.
type VerifyResponse struct {
	Status  string `json:"status" example:"success"`
	Message string `json:"message,omitempty" example:"already verified"`
	URI     string `json:"uri,omitempty"`
}

// CallbackResponse is returned by GET /verify/callback.
type CallbackResponse struct {
	Status string `json:"status" example:"success"`
	ID     string `json:"id"`
}

// @Summary Start verification
// @Description Checks the address for an existing attestation and for a tip of exactly the verification fee, then returns the Google authorization URL.
// @Tags verification
// @Produce json
// @Param address query string true "Arweave wallet address"
// @Param return query string false "URI to redirect to after a successful attestation"
// @Success 200 {object} VerifyResponse
// @Failure 400 {object} middleware.ErrorResponse "Missing address or no tip"
// @Failure 502 {object} middleware.ErrorResponse "Ledger unavailable"
// @Router /verify [get]
func (h *VerificationHandler) verify(c *gin.Context) {
	res, err := h.service.RequestVerification(c.Request.Context(), c.Query("address"), c.Query("return"))
	if err != nil {
		_ = c.Error(err)
		return
	}

	if res.AlreadyVerified {
		c.JSON(http.StatusOK, VerifyResponse{Status: "success", Message: "already verified"})
		return
	}
	c.JSON(http.StatusOK, VerifyResponse{Status: "success", URI: res.AuthorizationURL})
}

// @Summary Complete verification
// @Description OAuth redirect target. Exchanges the code, checks the email is verified and broadcasts the attestation. Redirects to the return URI from state when one was given.
// @Tags verification
// @Produce json
// @Param code query string true "Authorization code"
// @Param state query string true "State issued by GET /verify"
// @Success 200 {object} CallbackResponse
// @Success 302 {object} CallbackResponse "Redirect to the return URI"
// @Failure 400 {object} middleware.ErrorResponse "Missing code or invalid state"
// @Failure 403 {object} middleware.ErrorResponse "No access token or email not verified"
// @Failure 409 {object} middleware.ErrorResponse "Verification in progress"
// @Failure 502 {object} middleware.ErrorResponse "Identity provider or ledger unavailable"
// @Router /verify/callback [get]
func (h *VerificationHandler) callback(c *gin.Context) {
	res, err := h.service.CompleteAuthorization(c.Request.Context(), c.Query("code"), c.Query("state"))
	if err != nil {
		_ = c.Error(err)
		return
	}

	body := CallbackResponse{Status: "success", ID: res.TransactionID}
	if res.ReturnURI != "" {
		if isRedirectable(res.ReturnURI) {
			c.Header("Location", res.ReturnURI)
			c.JSON(http.StatusFound, body)
			return
		}
		h.logger.Info().Str("address", res.Address).Msg("Ignoring non-http return URI")
	}
	c.JSON(http.StatusOK, body)
}

func isRedirectable(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
