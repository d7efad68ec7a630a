package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cam_server/server/common/transport/httpresp"
	"cam_server/server/uplink/service"
)

type Handler struct {
	uplink *service.UplinkService
	apiKey string
}

func NewHandler(uplink *service.UplinkService, apiKey string) *Handler {
	return &Handler{uplink: uplink, apiKey: apiKey}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/presign", h.presign)
}

// presign authenticates the device by shared secret, then hands back one
// write URL for the clip and one for the thumbnail. The secret gate comes
// first: a bad key never reaches the store.
func (h *Handler) presign(c *gin.Context) {
	if c.GetHeader("x-api-key") != h.apiKey {
		c.JSON(http.StatusForbidden, httpresp.NewErrorResponse(httpresp.ErrForbidden))
		return
	}

	clip := c.Query("clip")
	thumb := c.Query("thumb")
	if clip == "" || thumb == "" {
		c.JSON(http.StatusBadRequest, httpresp.NewErrorResponse(httpresp.ErrMissingClipOrThumb))
		return
	}

	clipURL, thumbURL, err := h.uplink.PresignUpload(c.Request.Context(), clip, thumb)
	if err != nil {
		c.JSON(http.StatusInternalServerError, httpresp.NewErrorResponse(err.Error()))
		return
	}
	c.JSON(http.StatusOK, httpresp.NewPresignResponse(clipURL, thumbURL))
}
