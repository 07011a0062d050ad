package auth

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"voicedetect/common/models"
)

// Middleware rejects requests whose header credential does not pass a.
// A "Bearer " prefix is stripped only for bearer-token credentials: when the
// header is Authorization or a verifies Okta tokens. onReject, if non-nil,
// is called for every rejected request.
func Middleware(a Authenticator, header string, onReject func(context.Context)) gin.HandlerFunc {
	_, okta := a.(*OktaVerifier)
	bearer := okta || http.CanonicalHeaderKey(header) == "Authorization"

	return func(c *gin.Context) {
		credential := c.GetHeader(header)
		if bearer {
			credential = strings.TrimPrefix(credential, "Bearer ")
		}

		if err := a.Authenticate(c.Request.Context(), credential); err != nil {
			slog.WarnContext(c.Request.Context(), "authentication failed",
				slog.String("path", c.FullPath()),
				slog.String("client_ip", c.ClientIP()),
				slog.String("reason", err.Error()),
			)
			if onReject != nil {
				onReject(c.Request.Context())
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{
				Error:      "Invalid API key",
				StatusCode: http.StatusUnauthorized,
				Timestamp:  time.Now().UTC(),
			})
			return
		}
		c.Next()
	}
}
