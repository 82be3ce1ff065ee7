package middleware

import (
	"crypto/sha256"
	"crypto/subtle"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	appErrors "github.com/noah-isme/alumni-directory-api/pkg/errors"
	"github.com/noah-isme/alumni-directory-api/pkg/response"
)

// ContextReviewerKey marks a request that passed the volunteer check.
const ContextReviewerKey = "volunteerAuthenticated"

// VolunteerAuth guards reviewer routes with the shared bearer secret. An empty
// secret rejects every call.
func VolunteerAuth(secret string, logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}
	secret = strings.TrimSpace(secret)
	expected := sha256.Sum256([]byte(secret))
	if secret == "" {
		logger.Warn("volunteer token not configured, reviewer routes are locked")
	}

	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok || secret == "" {
			reject(c, logger, "missing or malformed authorization header")
			return
		}
		actual := sha256.Sum256([]byte(token))
		if subtle.ConstantTimeCompare(actual[:], expected[:]) != 1 {
			reject(c, logger, "invalid volunteer token")
			return
		}
		c.Set(ContextReviewerKey, true)
		c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	parts := strings.SplitN(strings.TrimSpace(header), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}

func reject(c *gin.Context, logger *zap.Logger, reason string) {
	logger.Warn("volunteer authorization failed",
		zap.String("reason", reason),
		zap.String("path", c.Request.URL.Path),
		zap.String("client_ip", c.ClientIP()),
	)
	response.Abort(c, appErrors.ErrUnauthorized)
}
