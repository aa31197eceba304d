package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// HealthResponse is the payload returned by the liveness endpoint.
type HealthResponse struct {
	Status    string `json:"status"`
	Message   string `json:"message"`
	Version   string `json:"version"`
	APISource string `json:"api_source"`
}

// HealthHandler handles the service liveness endpoint.
type HealthHandler struct {
	version string
	logger  zerolog.Logger
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(version string, logger zerolog.Logger) *HealthHandler {
	return &HealthHandler{
		version: version,
		logger:  logger.With().Str("component", "health_handler").Logger(),
	}
}

// RegisterPublicRoutes registers the liveness route on the engine root.
func (h *HealthHandler) RegisterPublicRoutes(r *gin.Engine) {
	r.GET("/", h.Check)
}

// Check reports service liveness. The payload is static; the relay keeps
// no connections or state that could be probed.
//
//	@Summary		Service liveness
//	@Description	Static health payload confirming the relay is running.
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	HealthResponse
//	@Router			/ [get]
func (h *HealthHandler) Check(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:    StatusSuccess,
		Message:   "Free Fire Ban Check API is running",
		Version:   h.version,
		APISource: apiSource,
	})
}
