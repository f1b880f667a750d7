package orginfo

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/avtostart/avtostart-backend/internal/gate"
	"github.com/avtostart/avtostart-backend/pkg/envelope"
	"github.com/avtostart/avtostart-backend/pkg/logger"
	"github.com/avtostart/avtostart-backend/pkg/middleware"
	"github.com/gin-gonic/gin"
)

// fallbackUpdatedBy attributes writes when no authenticated subject is
// present (development mode, gate permitting).
const fallbackUpdatedBy = "admin"

// Handler maps the /info/basic endpoints onto the Service.
type Handler struct {
	svc        *Service
	gate       gate.Gate
	production bool
}

func NewHandler(svc *Service, g gate.Gate, production bool) *Handler {
	if g == nil {
		g = gate.RequireSubject{}
	}
	return &Handler{svc: svc, gate: g, production: production}
}

// Register attaches the basic-info routes to the given group.
func (h *Handler) Register(rg *gin.RouterGroup) {
	info := rg.Group("/info/basic")
	info.GET("", h.get)
	info.PUT("", h.update)
	info.GET("/history", h.history)
}

func (h *Handler) fail(c *gin.Context, err error) {
	logger.RequestErrorf(c.Request.Method, c.Request.URL.Path, c.ClientIP(), err)
	switch {
	case errors.Is(err, ErrNotFound):
		envelope.Fail(c, http.StatusNotFound, "organizational info not found")
	case errors.Is(err, ErrValidation):
		envelope.Fail(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, gate.ErrForbidden):
		envelope.Fail(c, http.StatusForbidden, "action not permitted")
	default:
		msg := err.Error()
		if h.production {
			msg = "internal error"
		}
		envelope.Fail(c, http.StatusInternalServerError, msg)
	}
}

func (h *Handler) get(c *gin.Context) {
	info, err := h.svc.Get(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	envelope.OK(c, http.StatusOK, info, "organizational info retrieved")
}

func (h *Handler) update(c *gin.Context) {
	subject := middleware.Subject(c)
	if err := h.gate.Allow(c.Request.Context(), subject, gate.ActionUpdate); err != nil {
		h.fail(c, err)
		return
	}
	var in UpdateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		envelope.Fail(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if subject == "" {
		subject = fallbackUpdatedBy
	}
	info, err := h.svc.Update(c.Request.Context(), in, subject)
	if err != nil {
		h.fail(c, err)
		return
	}
	envelope.OK(c, http.StatusOK, info, "organizational info updated")
}

func (h *Handler) history(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	hp, err := h.svc.History(c.Request.Context(), page, limit)
	if err != nil {
		h.fail(c, err)
		return
	}
	envelope.OK(c, http.StatusOK, hp, "history retrieved")
}
