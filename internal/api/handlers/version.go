package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// VersionInfo contains server build information.
type VersionInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit,omitempty"`
	BuildDate string `json:"build_date,omitempty"`
}

// VersionHandler handles the version endpoint.
type VersionHandler struct {
	info   VersionInfo
	logger zerolog.Logger
}

// NewVersionHandler creates a new VersionHandler.
func NewVersionHandler(version, commit, buildDate string, logger zerolog.Logger) *VersionHandler {
	return &VersionHandler{
		info: VersionInfo{
			Version:   version,
			Commit:    commit,
			BuildDate: buildDate,
		},
		logger: logger.With().Str("component", "version_handler").Logger(),
	}
}

// RegisterRoutes registers version routes on the given router group.
func (h *VersionHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/version", h.Get)
}

// Get returns the server build information.
//
//	@Summary		Server version
//	@Description	Build metadata for the running relay.
//	@Tags			Version
//	@Produce		json
//	@Success		200	{object}	APIResponse
//	@Router			/api/version [get]
func (h *VersionHandler) Get(c *gin.Context) {
	c.JSON(http.StatusOK, h.info)
}
