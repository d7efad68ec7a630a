package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"cam_server/server/clipstore"
	commonauth "cam_server/server/common/auth"
	"cam_server/server/common/middleware"
	"cam_server/server/common/transport/httpresp"
	"cam_server/server/gallery/domain"
	"cam_server/server/gallery/service"
)

type Handler struct {
	gallery *service.GalleryService
	auth    *commonauth.Service
}

func NewHandler(gallery *service.GalleryService, auth *commonauth.Service) *Handler {
	return &Handler{gallery: gallery, auth: auth}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	authed := r.Group("/")
	authed.Use(middleware.AuthRequired(h.auth))
	{
		authed.GET("/list", h.list)
		authed.POST("/manage", h.manage)
	}
}

func (h *Handler) list(c *gin.Context) {
	entries, err := h.gallery.ListClips(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, httpresp.NewErrorResponse(err.Error()))
		return
	}
	c.JSON(http.StatusOK, entries)
}

// manage validates fully before any storage call: bad requests must be
// rejected without side effects.
func (h *Handler) manage(c *gin.Context) {
	var req domain.ManageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httpresp.NewErrorResponse(httpresp.ErrInvalidJSONBody))
		return
	}
	if req.Action == "" || req.ClipKey == "" {
		c.JSON(http.StatusBadRequest, httpresp.NewErrorResponse(httpresp.ErrMissingActionOrKey))
		return
	}
	if !clipstore.IsClipKey(req.ClipKey) {
		c.JSON(http.StatusBadRequest, httpresp.NewErrorResponse(httpresp.ErrBadClipKeyShape))
		return
	}

	ctx := c.Request.Context()
	var err error
	switch req.Action {
	case domain.ActionKeep:
		err = h.gallery.Keep(ctx, req.ClipKey)
	case domain.ActionUnkeep:
		err = h.gallery.Unkeep(ctx, req.ClipKey)
	case domain.ActionDelete:
		err = h.gallery.Delete(ctx, req.ClipKey)
	default:
		c.JSON(http.StatusBadRequest, httpresp.NewErrorResponse(fmt.Sprintf("Unknown action: %s", req.Action)))
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, httpresp.NewErrorResponse(err.Error()))
		return
	}
	c.JSON(http.StatusOK, httpresp.NewOKResponse())
}
