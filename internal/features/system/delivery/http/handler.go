package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"arverify-node/internal/common/metrics"
	"arverify-node/internal/version"
)

type SystemHandler struct {
	address string
}

// NewSystemHandler serves liveness, metrics and API docs for the node wallet address.
func NewSystemHandler(address string) *SystemHandler {
	return &SystemHandler{address: address}
}

func (h *SystemHandler) RegisterRoutes(router gin.IRouter) {
	metrics.Register()

	router.GET("/ping", h.ping)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}

// PingResponse is returned by GET /ping.
type PingResponse struct {
	Status  string `json:"status" example:"alive"`
	Version string `json:"version" example:"1.0.0"`
	Address string `json:"address,omitempty"`
}

// @Summary Liveness
// @Tags system
// @Produce json
// @Success 200 {object} PingResponse
// @Router /ping [get]
func (h *SystemHandler) ping(c *gin.Context) {
	c.JSON(http.StatusOK, PingResponse{
		Status:  "alive",
		Version: version.Version,
		Address: h.address,
	})
}
