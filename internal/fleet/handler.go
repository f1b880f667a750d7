package fleet

import (
	"errors"
	"net/http"

	"github.com/avtostart/avtostart-backend/internal/gate"
	"github.com/avtostart/avtostart-backend/pkg/envelope"
	"github.com/avtostart/avtostart-backend/pkg/logger"
	"github.com/avtostart/avtostart-backend/pkg/middleware"
	"github.com/gin-gonic/gin"
)

// Handler maps the /vehicles endpoints onto the Service.
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

func (h *Handler) Register(rg *gin.RouterGroup) {
	vehicles := rg.Group("/vehicles")
	vehicles.GET("", h.list)
	vehicles.GET("/:id", h.get)
	vehicles.POST("", h.create)
	vehicles.PUT("/:id", h.update)
	vehicles.DELETE("/:id", h.delete)
}

func (h *Handler) fail(c *gin.Context, err error) {
	logger.RequestErrorf(c.Request.Method, c.Request.URL.Path, c.ClientIP(), err)
	switch {
	case errors.Is(err, ErrNotFound):
		envelope.Fail(c, http.StatusNotFound, "vehicle not found")
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

func (h *Handler) list(c *gin.Context) {
	vs, err := h.svc.List(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	envelope.OK(c, http.StatusOK, vs, "vehicles retrieved")
}

func (h *Handler) get(c *gin.Context) {
	v, err := h.svc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	envelope.OK(c, http.StatusOK, v, "vehicle retrieved")
}

func (h *Handler) create(c *gin.Context) {
	if err := h.gate.Allow(c.Request.Context(), middleware.Subject(c), gate.ActionCreate); err != nil {
		h.fail(c, err)
		return
	}
	var in CreateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		envelope.Fail(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	v, err := h.svc.Create(c.Request.Context(), in)
	if err != nil {
		h.fail(c, err)
		return
	}
	envelope.OK(c, http.StatusCreated, v, "vehicle created")
}

func (h *Handler) update(c *gin.Context) {
	if err := h.gate.Allow(c.Request.Context(), middleware.Subject(c), gate.ActionUpdate); err != nil {
		h.fail(c, err)
		return
	}
	var upd Update
	if err := c.ShouldBindJSON(&upd); err != nil {
		envelope.Fail(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	v, err := h.svc.Update(c.Request.Context(), c.Param("id"), &upd)
	if err != nil {
		h.fail(c, err)
		return
	}
	envelope.OK(c, http.StatusOK, v, "vehicle updated")
}

func (h *Handler) delete(c *gin.Context) {
	if err := h.gate.Allow(c.Request.Context(), middleware.Subject(c), gate.ActionDelete); err != nil {
		h.fail(c, err)
		return
	}
	v, err := h.svc.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	envelope.OK(c, http.StatusOK, v, "vehicle deleted")
}
