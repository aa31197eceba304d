package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/flamexhub/bancheck/internal/garena"
)

// Response messages for the ban-check endpoints. These are part of the
// public contract and must not drift.
const (
	msgCheckCompleted  = "Ban check completed successfully"
	msgInvalidUID      = "Invalid UID. Please provide a valid numeric user ID."
	msgMissingUID      = "Missing 'uid' in request body"
	msgUnreachable     = "Could not retrieve ban information. Please try again later."
	msgUpstreamFailure = "API returned an error"
)

// banChecker is the capability the handler needs from the upstream client.
type banChecker interface {
	CheckBan(ctx context.Context, uid, lang string) (map[string]any, error)
}

// BanCheckRequest is the request body for POST /api/check-ban.
type BanCheckRequest struct {
	UID  string `json:"uid" example:"123456789"`
	Lang string `json:"lang,omitempty" example:"en"`
}

// BanCheckResult is the data payload for a successful ban check.
type BanCheckResult struct {
	UID            string         `json:"uid"`
	Language       string         `json:"language"`
	GarenaResponse map[string]any `json:"garena_response"`
	APISource      string         `json:"api_source"`
}

// BanCheckHandler handles ban-status lookup endpoints.
type BanCheckHandler struct {
	checker banChecker
	logger  zerolog.Logger
}

// NewBanCheckHandler creates a new BanCheckHandler.
func NewBanCheckHandler(checker banChecker, logger zerolog.Logger) *BanCheckHandler {
	return &BanCheckHandler{
		checker: checker,
		logger:  logger.With().Str("component", "bancheck_handler").Logger(),
	}
}

// RegisterRoutes registers ban-check routes on the given router group.
func (h *BanCheckHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/check-ban/:uid", h.Get)
	r.POST("/check-ban", h.Post)
}

// Get checks a player's ban status by uid.
//
//	@Summary		Check ban status
//	@Description	Queries the official Garena API for the ban status of a Free Fire account.
//	@Tags			BanCheck
//	@Produce		json
//	@Param			uid		path		string	true	"Free Fire user ID, digits only"
//	@Param			lang	query		string	false	"Language code passed to Garena"	default(en)
//	@Success		200		{object}	APIResponse
//	@Failure		400		{object}	APIResponse
//	@Failure		503		{object}	APIResponse
//	@Router			/api/check-ban/{uid} [get]
func (h *BanCheckHandler) Get(c *gin.Context) {
	uid := c.Param("uid")
	if !isNumericUID(uid) {
		c.JSON(http.StatusBadRequest, APIResponse{
			Status:  StatusError,
			Message: msgInvalidUID,
			Data:    nil,
		})
		return
	}

	lang := c.DefaultQuery("lang", garena.DefaultLang)

	h.check(c, uid, lang)
}

// Post checks a player's ban status from a JSON request body.
//
//	@Summary		Check ban status (POST)
//	@Description	Same lookup as the GET variant, with uid and lang supplied in a JSON body.
//	@Tags			BanCheck
//	@Accept			json
//	@Produce		json
//	@Param			request	body		BanCheckRequest	true	"Lookup request"
//	@Success		200		{object}	APIResponse
//	@Failure		400		{object}	APIResponse
//	@Failure		503		{object}	APIResponse
//	@Router			/api/check-ban [post]
func (h *BanCheckHandler) Post(c *gin.Context) {
	body, err := parseJSONBody(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, APIResponse{
			Status:  StatusError,
			Message: "Invalid JSON format: " + err.Error(),
			Data:    nil,
		})
		return
	}

	rawUID, ok := body["uid"]
	if !ok {
		c.JSON(http.StatusBadRequest, APIResponse{
			Status:  StatusError,
			Message: msgMissingUID,
			Data:    nil,
		})
		return
	}

	uid := jsonValueToString(rawUID)
	if !isNumericUID(uid) {
		c.JSON(http.StatusBadRequest, APIResponse{
			Status:  StatusError,
			Message: msgInvalidUID,
			Data:    nil,
		})
		return
	}

	lang := garena.DefaultLang
	if rawLang, ok := body["lang"]; ok {
		lang = jsonValueToString(rawLang)
	}

	h.check(c, uid, lang)
}

// check runs the upstream lookup and maps its outcome onto the response
// contract: rejected upstream answers become 400, unreachable upstream
// becomes 503, anything else is a 200 with the payload attached.
func (h *BanCheckHandler) check(c *gin.Context, uid, lang string) {
	result, err := h.checker.CheckBan(c.Request.Context(), uid, lang)
	if err != nil {
		var apiErr *garena.APIError
		if errors.As(err, &apiErr) {
			message := apiErr.Message
			if message == "" {
				message = msgUpstreamFailure
			}
			c.JSON(http.StatusBadRequest, APIResponse{
				Status:  StatusError,
				Message: message,
				Data:    nil,
			})
			return
		}

		h.logger.Error().Err(err).Str("uid", uid).Msg("ban check failed")
		c.JSON(http.StatusServiceUnavailable, APIResponse{
			Status:  StatusError,
			Message: msgUnreachable,
			Data:    nil,
		})
		return
	}

	c.JSON(http.StatusOK, APIResponse{
		Status:  StatusSuccess,
		Message: msgCheckCompleted,
		Data: BanCheckResult{
			UID:            uid,
			Language:       lang,
			GarenaResponse: result,
			APISource:      apiSource,
		},
	})
}

// parseJSONBody decodes the request body as a JSON value and returns it as
// an object. Malformed JSON is an error; well-formed JSON that is not an
// object (null, arrays, scalars) yields a nil map, which callers treat the
// same as an object without the required keys.
func parseJSONBody(r io.Reader) (map[string]any, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, err
	}

	obj, _ := raw.(map[string]any)
	return obj, nil
}

// jsonValueToString renders a decoded JSON value the way the caller wrote
// it, so numeric uids like {"uid": 123456789} are accepted.
func jsonValueToString(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case json.Number:
		return val.String()
	default:
		return fmt.Sprintf("%v", val)
	}
}

// isNumericUID reports whether uid is non-empty and all ASCII digits.
func isNumericUID(uid string) bool {
	if uid == "" {
		return false
	}
	for _, r := range uid {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
