package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/meesho-backend/internal/app/search"
	"github.com/ikkim/meesho-backend/internal/app/service"
	apperrors "github.com/ikkim/meesho-backend/internal/errors"
	"github.com/ikkim/meesho-backend/internal/middleware"
)

type StylistController struct {
	stylistService service.StylistService
}

func NewStylistController(stylistService service.StylistService) *StylistController {
	return &StylistController{
		stylistService: stylistService,
	}
}

type ChatRequest struct {
	Message  string         `json:"message"`
	Language string         `json:"language"` // "en" (default) or "hi"
	Filters  FiltersPayload `json:"filters"`
	Page     interface{}    `json:"page"`
	Limit    interface{}    `json:"limit"`
}

// Chat answers a shopping message and runs the search it implies
// POST /api/stylist/chat
func (ctrl *StylistController) Chat(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid chat request")
		return
	}

	reply, err := ctrl.stylistService.Chat(
		c.Request.Context(), req.Message, req.Language, req.Filters.toFilters(),
		search.ParseInt(req.Page), search.ParseInt(req.Limit),
	)
	if err != nil {
		if errors.Is(err, service.ErrEmptyMessage) {
			apperrors.BadRequest(c, apperrors.ValidationRequired, "Message is required")
			return
		}
		log.Error("Stylist chat failed", err, nil)
		apperrors.InternalError(c, "")
		return
	}

	resp := searchResponse(reply.Results)
	resp["reply"] = reply.Reply
	resp["query"] = reply.Query
	resp["filters"] = filtersPayload(reply.Filters)
	c.JSON(http.StatusOK, resp)
}

// Outfits returns outfit combinations for a look
// GET /api/stylist/outfits?q=
func (ctrl *StylistController) Outfits(c *gin.Context) {
	query := c.Query("q")
	outfits := ctrl.stylistService.Outfits(query)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"query":   query,
		"outfits": outfits,
	})
}
