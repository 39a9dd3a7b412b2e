package middleware

import (
	"net/http"

	"devconnect/apperror"
	"devconnect/auth"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	IdentityKey = "identity"
	UserIDKey   = "userId"
)

// JWTAuthMiddleware verifies the session token in the Authorization header,
// with or without the "Bearer " prefix, and stores the identity on the context.
func JWTAuthMiddleware(tokens *auth.TokenService, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Skip middleware for OPTIONS requests (CORS preflight)
		if c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}

		tokenString := auth.FromHeader(c.GetHeader("Authorization"))
		if tokenString == "" {
			tokenString = c.Query("token")
		}

		identity, err := tokens.Verify(tokenString)
		if err != nil {
			appErr := apperror.As(err)
			if appErr.Kind == apperror.KindInvalidToken {
				log.Debug("token rejected", zap.Error(err), zap.String("path", c.Request.URL.Path))
			}
			c.AbortWithStatusJSON(appErr.Kind.HTTPStatus(), appErr.ToJSON())
			return
		}

		c.Set(IdentityKey, identity)
		c.Set(UserIDKey, identity.ID)
		c.Next()
	}
}

// Identity returns the identity stored by JWTAuthMiddleware.
func Identity(c *gin.Context) (*auth.Identity, bool) {
	v, ok := c.Get(IdentityKey)
	if !ok {
		return nil, false
	}
	id, ok := v.(*auth.Identity)
	return id, ok
}
