package documents

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"resume-builder/internal/shared/metrics"
	"resume-builder/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches document routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/documents", h.save)
	rg.POST("/documents/duplicate", h.duplicate)
	rg.GET("/documents/owner/:ownerId", h.list)
	rg.GET("/documents/owner/:ownerId/:documentId", h.get)
	rg.DELETE("/documents/:documentId/:ownerId", h.delete)
}

func (h *Handler) save(c *gin.Context) {
	var req SaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body")
		return
	}

	start := metrics.NowMillis()
	doc, err := h.Svc.Save(c.Request.Context(), SaveInput{
		OwnerID:    strings.TrimSpace(req.OwnerID),
		DocumentID: strings.TrimSpace(req.DocumentID),
		Title:      strings.TrimSpace(req.Title),
		Type:       req.Type,
		Content:    req.Content,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error())
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "document not found")
		default:
			metrics.IncSaveFailed()
			respond.Error(c, http.StatusInternalServerError, "storage_error", "failed to save document")
		}
		return
	}

	metrics.IncSaveCompleted()
	metrics.ObserveSaveDurationMs(metrics.NowMillis() - start)
	c.Set("documentId", doc.ID)
	respond.OK(c, gin.H{"document": toResponse(doc)})
}

func (h *Handler) list(c *gin.Context) {
	ownerID := c.Param("ownerId")

	docs, err := h.Svc.List(c.Request.Context(), ownerID)
	if err != nil {
		if errors.Is(err, ErrInvalidInput) {
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error())
			return
		}
		respond.Error(c, http.StatusInternalServerError, "storage_error", "failed to load documents")
		return
	}

	resp := make([]DocumentResponse, 0, len(docs))
	for _, doc := range docs {
		resp = append(resp, toResponse(doc))
	}
	respond.OK(c, gin.H{"documents": resp})
}

func (h *Handler) get(c *gin.Context) {
	ownerID := c.Param("ownerId")
	documentID := c.Param("documentId")

	doc, err := h.Svc.Get(c.Request.Context(), ownerID, documentID)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "document not found")
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error())
		default:
			respond.Error(c, http.StatusInternalServerError, "storage_error", "failed to load document")
		}
		return
	}

	c.Set("documentId", doc.ID)
	respond.OK(c, gin.H{"document": toResponse(doc)})
}

func (h *Handler) delete(c *gin.Context) {
	ownerID := c.Param("ownerId")
	documentID := c.Param("documentId")

	if err := h.Svc.Delete(c.Request.Context(), ownerID, documentID); err != nil {
		if errors.Is(err, ErrInvalidInput) {
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error())
			return
		}
		respond.Error(c, http.StatusInternalServerError, "storage_error", "failed to delete document")
		return
	}

	c.Set("documentId", documentID)
	respond.OK(c, gin.H{})
}

func (h *Handler) duplicate(c *gin.Context) {
	var req DuplicateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body")
		return
	}

	doc, err := h.Svc.Duplicate(c.Request.Context(), strings.TrimSpace(req.OwnerID), strings.TrimSpace(req.DocumentID))
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "original not found")
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error())
		default:
			respond.Error(c, http.StatusInternalServerError, "storage_error", "failed to duplicate document")
		}
		return
	}

	metrics.IncDuplicateCompleted()
	c.Set("documentId", doc.ID)
	respond.OK(c, gin.H{"document": toResponse(doc)})
}
