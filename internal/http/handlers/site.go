package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dchamindu826/norcal-dubs/internal/http/middleware"
	"github.com/dchamindu826/norcal-dubs/internal/modules/site"
	"github.com/dchamindu826/norcal-dubs/internal/shared/apperr"
)

type SiteHandler struct {
	Svc *site.Service
}

func NewSiteHandler(svc *site.Service) *SiteHandler {
	return &SiteHandler{Svc: svc}
}

// Views handles GET /api/views: returns the counter and bumps it.
func (h *SiteHandler) Views(c *gin.Context) {
	views, err := h.Svc.BumpViews(c.Request.Context())
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"views": views})
}

// Backup handles GET /api/backup (admin): streams a zip of the database
// and all uploaded media.
func (h *SiteHandler) Backup(c *gin.Context) {
	c.Header("Content-Type", "application/zip")
	c.Header("Content-Disposition", `attachment; filename="norcal-backup.zip"`)
	if err := h.Svc.WriteBackup(c.Request.Context(), c.Writer); err != nil {
		middleware.Fail(c, apperr.Wrap(err))
	}
}
