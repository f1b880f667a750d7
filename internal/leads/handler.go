// Package leads accepts contact-form submissions and forwards each one as a
// single email to the school's office. One delivery attempt, no retry: a
// failed send is reported to the caller, who resubmits.
package leads

import (
	"fmt"
	"net/http"

	"github.com/avtostart/avtostart-backend/internal/mailer"
	"github.com/avtostart/avtostart-backend/pkg/envelope"
	"github.com/avtostart/avtostart-backend/pkg/logger"
	"github.com/avtostart/avtostart-backend/pkg/metrics"
	"github.com/gin-gonic/gin"
)

// Handler maps POST /leads onto the mail transport.
type Handler struct {
	mail       mailer.Mailer
	production bool
}

// NewHandler builds a leads handler. mail may be nil when the transport is
// not configured; submissions then fail with an internal error.
func NewHandler(mail mailer.Mailer, production bool) *Handler {
	return &Handler{mail: mail, production: production}
}

func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.POST("/leads", h.submit)
}

type leadRequest struct {
	Name    string `json:"name" binding:"required"`
	Phone   string `json:"phone" binding:"required"`
	Email   string `json:"email"`
	Course  string `json:"course"`
	Message string `json:"message"`
}

func (h *Handler) submit(c *gin.Context) {
	var req leadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		envelope.Fail(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	body := fmt.Sprintf("Name: %s\nPhone: %s\nEmail: %s\nCourse: %s\n\n%s",
		req.Name, req.Phone, req.Email, req.Course, req.Message)
	msg := mailer.Message{
		Subject: "New enrollment request: " + req.Name,
		Body:    body,
		ReplyTo: req.Email,
	}

	if h.mail == nil {
		h.fail(c, fmt.Errorf("mail transport not configured"))
		return
	}
	if err := h.mail.Send(c.Request.Context(), msg); err != nil {
		h.fail(c, err)
		return
	}
	metrics.LeadsSent.WithLabelValues("success").Inc()
	envelope.OK(c, http.StatusOK, nil, "lead submitted")
}

func (h *Handler) fail(c *gin.Context, err error) {
	logger.RequestErrorf(c.Request.Method, c.Request.URL.Path, c.ClientIP(), err)
	metrics.LeadsSent.WithLabelValues("error").Inc()
	msg := err.Error()
	if h.production {
		msg = "internal error"
	}
	envelope.Fail(c, http.StatusInternalServerError, msg)
}
