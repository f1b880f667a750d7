package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/avtostart/avtostart-backend/internal/documents"
	"github.com/avtostart/avtostart-backend/internal/documents/service"
	"github.com/avtostart/avtostart-backend/internal/gate"
	"github.com/avtostart/avtostart-backend/internal/storage"
	"github.com/avtostart/avtostart-backend/pkg/envelope"
	"github.com/avtostart/avtostart-backend/pkg/logger"
	"github.com/avtostart/avtostart-backend/pkg/metrics"
	"github.com/avtostart/avtostart-backend/pkg/middleware"
	"github.com/gin-gonic/gin"
)

const dateLayout = "2006-01-02"

// Handler maps the /documents endpoints onto the registry service.
type Handler struct {
	svc        service.Service
	assets     *storage.AssetStore
	gate       gate.Gate
	production bool
}

// New builds a documents handler. assets may be nil when no object storage
// is configured; the download endpoint then reports it as unavailable.
func New(svc service.Service, assets *storage.AssetStore, g gate.Gate, production bool) *Handler {
	if g == nil {
		g = gate.RequireSubject{}
	}
	return &Handler{svc: svc, assets: assets, gate: g, production: production}
}

// Register attaches the document routes to the given group.
func (h *Handler) Register(rg *gin.RouterGroup) {
	docs := rg.Group("/documents")
	docs.GET("", h.list)
	docs.GET("/search", h.search)
	docs.GET("/stats", h.stats)
	docs.GET("/:id", h.get)
	docs.GET("/:id/download", h.download)
	docs.POST("", h.create)
	docs.PUT("/:id", h.update)
	docs.DELETE("/:id", h.delete)
}

// docView serializes a document for responses: document timestamps render
// as YYYY-MM-DD.
func docView(d *documents.Document) gin.H {
	v := gin.H{
		"id":          d.ID,
		"title":       d.Title,
		"description": d.Description,
		"category":    d.Category,
		"status":      d.Status,
		"uploadDate":  d.UploadDate.Format(dateLayout),
		"lastUpdate":  d.LastUpdate.Format(dateLayout),
	}
	if d.ExpiryDate != nil {
		v["expiryDate"] = d.ExpiryDate.Format(dateLayout)
	}
	if d.FileURL != "" {
		v["fileUrl"] = d.FileURL
	}
	if d.FileName != "" {
		v["fileName"] = d.FileName
	}
	if d.FileSize != 0 {
		v["fileSize"] = d.FileSize
	}
	return v
}

func docViews(ds []*documents.Document) []gin.H {
	out := make([]gin.H, 0, len(ds))
	for _, d := range ds {
		out = append(out, docView(d))
	}
	return out
}

// fail logs the error with request context, records the metric and maps the
// error kind to a status code. Internal messages are redacted in production.
func (h *Handler) fail(c *gin.Context, op string, err error) {
	logger.RequestErrorf(c.Request.Method, c.Request.URL.Path, c.ClientIP(), err)
	metrics.RegistryOps.WithLabelValues(op, "error").Inc()
	switch {
	case errors.Is(err, service.ErrNotFound):
		envelope.Fail(c, http.StatusNotFound, "document not found")
	case errors.Is(err, service.ErrInvalidCategory):
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

func (h *Handler) ok(c *gin.Context, op string, code int, data interface{}, msg string) {
	metrics.RegistryOps.WithLabelValues(op, "success").Inc()
	envelope.OK(c, code, data, msg)
}

func (h *Handler) list(c *gin.Context) {
	if cat := c.Query("category"); cat != "" {
		ds, err := h.svc.ListByCategory(c.Request.Context(), cat)
		if err != nil {
			h.fail(c, "list", err)
			return
		}
		h.ok(c, "list", http.StatusOK, docViews(ds), "documents retrieved")
		return
	}
	grouped, err := h.svc.ListAll(c.Request.Context())
	if err != nil {
		h.fail(c, "list", err)
		return
	}
	out := gin.H{}
	for cat, ds := range grouped {
		out[string(cat)] = docViews(ds)
	}
	h.ok(c, "list", http.StatusOK, out, "documents retrieved")
}

func (h *Handler) get(c *gin.Context) {
	d, err := h.svc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, "get", err)
		return
	}
	h.ok(c, "get", http.StatusOK, docView(d), "document retrieved")
}

func (h *Handler) search(c *gin.Context) {
	ds, err := h.svc.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		h.fail(c, "search", err)
		return
	}
	h.ok(c, "search", http.StatusOK, docViews(ds), "search completed")
}

func (h *Handler) stats(c *gin.Context) {
	st, err := h.svc.Stats(c.Request.Context())
	if err != nil {
		h.fail(c, "stats", err)
		return
	}
	h.ok(c, "stats", http.StatusOK, st, "statistics computed")
}

type createRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Category    string `json:"category" binding:"required"`
	Status      string `json:"status"`
	ExpiryDate  string `json:"expiryDate"`
	FileURL     string `json:"fileUrl"`
	FileName    string `json:"fileName"`
	FileSize    int64  `json:"fileSize"`
}

// parseDate accepts either a bare date or a full RFC 3339 timestamp.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(dateLayout, s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

func (h *Handler) create(c *gin.Context) {
	if err := h.gate.Allow(c.Request.Context(), middleware.Subject(c), gate.ActionCreate); err != nil {
		h.fail(c, "create", err)
		return
	}
	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		envelope.Fail(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	in := service.CreateInput{
		Title:       req.Title,
		Description: req.Description,
		Category:    documents.Category(req.Category),
		Status:      documents.Status(req.Status),
		FileURL:     req.FileURL,
		FileName:    req.FileName,
		FileSize:    req.FileSize,
	}
	if req.ExpiryDate != "" {
		t, err := parseDate(req.ExpiryDate)
		if err != nil {
			envelope.Fail(c, http.StatusBadRequest, "invalid expiryDate")
			return
		}
		in.ExpiryDate = &t
	}
	d, err := h.svc.Create(c.Request.Context(), in)
	if err != nil {
		h.fail(c, "create", err)
		return
	}
	h.ok(c, "create", http.StatusCreated, docView(d), "document created")
}

type updateRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
	Status      *string `json:"status"`
	ExpiryDate  *string `json:"expiryDate"`
	FileURL     *string `json:"fileUrl"`
	FileName    *string `json:"fileName"`
	FileSize    *int64  `json:"fileSize"`
}

func (h *Handler) update(c *gin.Context) {
	if err := h.gate.Allow(c.Request.Context(), middleware.Subject(c), gate.ActionUpdate); err != nil {
		h.fail(c, "update", err)
		return
	}
	var req updateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		envelope.Fail(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	upd := &documents.Update{
		Title:       req.Title,
		Description: req.Description,
		FileURL:     req.FileURL,
		FileName:    req.FileName,
		FileSize:    req.FileSize,
	}
	if req.Category != nil {
		cat := documents.Category(*req.Category)
		upd.Category = &cat
	}
	if req.Status != nil {
		st := documents.Status(*req.Status)
		upd.Status = &st
	}
	if req.ExpiryDate != nil {
		t, err := parseDate(*req.ExpiryDate)
		if err != nil {
			envelope.Fail(c, http.StatusBadRequest, "invalid expiryDate")
			return
		}
		upd.ExpiryDate = &t
	}
	d, err := h.svc.Update(c.Request.Context(), c.Param("id"), upd)
	if err != nil {
		h.fail(c, "update", err)
		return
	}
	h.ok(c, "update", http.StatusOK, docView(d), "document updated")
}

func (h *Handler) delete(c *gin.Context) {
	if err := h.gate.Allow(c.Request.Context(), middleware.Subject(c), gate.ActionDelete); err != nil {
		h.fail(c, "delete", err)
		return
	}
	d, err := h.svc.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, "delete", err)
		return
	}
	h.ok(c, "delete", http.StatusOK, docView(d), "document deleted")
}

func (h *Handler) download(c *gin.Context) {
	d, err := h.svc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, "download", err)
		return
	}
	if h.assets == nil {
		envelope.Fail(c, http.StatusServiceUnavailable, "file storage not configured")
		return
	}
	if d.FileName == "" {
		envelope.Fail(c, http.StatusNotFound, "document has no attached file")
		return
	}
	url, err := h.assets.PresignedURL(c.Request.Context(), d.FileName, 15*time.Minute)
	if err != nil {
		h.fail(c, "download", err)
		return
	}
	h.ok(c, "download", http.StatusOK, gin.H{"url": url, "expiresIn": int((15 * time.Minute).Seconds())}, "download link issued")
}
