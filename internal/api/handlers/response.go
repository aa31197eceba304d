// Package handlers provides HTTP request handlers for the ban-check relay.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Envelope status values.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// apiSource identifies the upstream in every ban-check payload.
const apiSource = "Official Garena API"

// APIResponse is the uniform envelope returned by every API endpoint.
type APIResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

// NotFoundResponse is returned for requests that match no route.
type NotFoundResponse struct {
	Status             string   `json:"status"`
	Message            string   `json:"message"`
	AvailableEndpoints []string `json:"available_endpoints"`
}

// availableEndpoints is the advertised API surface, listed on 404 responses.
// Operational endpoints (metrics, swagger) are not part of it.
var availableEndpoints = []string{
	"GET /",
	"GET /api/check-ban/{uid}?lang={lang}",
	"POST /api/check-ban",
	"GET /api/version",
}

// NotFound answers unmatched routes with the list of valid endpoints.
func NotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, NotFoundResponse{
		Status:             StatusError,
		Message:            "Endpoint not found",
		AvailableEndpoints: availableEndpoints,
	})
}
