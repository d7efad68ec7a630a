package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"cam_server/server/common/transport/httpresp"
)

type tokenVerifier interface {
	Verify(token string) error
}

func AuthRequired(auth tokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, httpresp.NewErrorResponse(httpresp.ErrMissingBearerToken))
			return
		}
		if err := auth.Verify(strings.TrimPrefix(header, "Bearer ")); err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, httpresp.NewErrorResponse(httpresp.ErrInvalidToken))
			return
		}
		c.Next()
	}
}
