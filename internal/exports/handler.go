package exports

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"resume-builder/internal/documents"
	"resume-builder/internal/shared/metrics"
	"resume-builder/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches the authenticated share and export routes.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/documents/share", h.share)
	rg.POST("/exports/pdf", h.exportAs(FormatPDF))
	rg.POST("/exports/docx", h.exportAs(FormatDOCX))
}

// RegisterPublicRoutes attaches the unauthenticated shared-view route.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/shared/:token", h.shared)
}

func (h *Handler) share(c *gin.Context) {
	var req ShareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body")
		return
	}

	link, shareURL, err := h.Svc.CreateShare(c.Request.Context(), strings.TrimSpace(req.OwnerID), strings.TrimSpace(req.DocumentID))
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error())
		case errors.Is(err, documents.ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "document not found")
		case errors.Is(err, documents.ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error())
		default:
			respond.Error(c, http.StatusInternalServerError, "storage_error", "failed to create share link")
		}
		return
	}

	c.Set("documentId", link.DocumentID)
	respond.OK(c, gin.H{"share": ShareResponse{Token: link.Token, ShareURL: shareURL}})
}

func (h *Handler) shared(c *gin.Context) {
	link, err := h.Svc.GetShared(c.Request.Context(), c.Param("token"))
	if err != nil {
		switch {
		case errors.Is(err, ErrShareNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "share link not found")
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error())
		default:
			respond.Error(c, http.StatusInternalServerError, "storage_error", "failed to load shared document")
		}
		return
	}

	respond.OK(c, gin.H{"document": toSharedResponse(link)})
}

func (h *Handler) exportAs(format string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ExportRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body")
			return
		}

		artifact, err := h.Svc.Export(c.Request.Context(), strings.TrimSpace(req.OwnerID), strings.TrimSpace(req.DocumentID), format)
		if err != nil {
			metrics.IncExportFailed()
			switch {
			case errors.Is(err, ErrInvalidInput):
				respond.Error(c, http.StatusBadRequest, "validation_error", err.Error())
			case errors.Is(err, documents.ErrNotFound):
				respond.Error(c, http.StatusNotFound, "not_found", "document not found")
			case errors.Is(err, documents.ErrInvalidInput):
				respond.Error(c, http.StatusBadRequest, "validation_error", err.Error())
			default:
				respond.Error(c, http.StatusInternalServerError, "export_error", "failed to export document")
			}
			return
		}

		metrics.IncExportCompleted()
		c.Set("documentId", req.DocumentID)
		c.Header("Content-Disposition", `attachment; filename="`+artifact.FileName+`"`)
		c.Data(http.StatusOK, artifact.ContentType, artifact.Data)
	}
}
