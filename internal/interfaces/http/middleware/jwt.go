package middleware

import (
	"net/http"
	"strings"

	"github.com/contractportal/backend/internal/infrastructure/auth"
	"github.com/contractportal/backend/internal/infrastructure/logger"
	"github.com/contractportal/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Context keys for authenticated request data
const (
	JWTClaimsKey   = "jwt_claims"
	JWTClientIDKey = "jwt_client_id"
	JWTEmailKey    = "jwt_email"
)

// JWTAuthConfig configures the JWT authentication middleware
type JWTAuthConfig struct {
	JWTService       *auth.JWTService
	TokenBlacklist   auth.TokenBlacklist
	Logger           *zap.Logger
	SkipPaths        []string
	SkipPathPrefixes []string
}

// JWTAuth returns JWT middleware with just the token service
func JWTAuth(jwtService *auth.JWTService) gin.HandlerFunc {
	return JWTAuthWithConfig(JWTAuthConfig{JWTService: jwtService})
}

// JWTAuthWithConfig returns JWT authentication middleware. Requests to
// skip paths pass through unauthenticated. Blacklist lookups fail open:
// a blacklist backend outage does not take authentication down with it,
// but the failure is logged.
func JWTAuthWithConfig(cfg JWTAuthConfig) gin.HandlerFunc {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	skipPaths := make(map[string]bool, len(cfg.SkipPaths))
	for _, p := range cfg.SkipPaths {
		skipPaths[p] = true
	}

	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if skipPaths[path] {
			c.Next()
			return
		}
		for _, prefix := range cfg.SkipPathPrefixes {
			if strings.HasPrefix(path, prefix) {
				c.Next()
				return
			}
		}

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			unauthorized(c, "missing authorization header")
			return
		}

		const bearerPrefix = "Bearer "
		if !strings.HasPrefix(authHeader, bearerPrefix) {
			unauthorized(c, "authorization header must use Bearer scheme")
			return
		}
		tokenString := strings.TrimSpace(authHeader[len(bearerPrefix):])
		if tokenString == "" {
			unauthorized(c, "missing bearer token")
			return
		}

		claims, err := cfg.JWTService.ValidateAccessToken(tokenString)
		if err != nil {
			unauthorized(c, "invalid or expired token")
			return
		}

		if cfg.TokenBlacklist != nil {
			blacklisted, blErr := cfg.TokenBlacklist.IsBlacklisted(c.Request.Context(), claims.ID)
			if blErr != nil {
				log.Error("token blacklist check failed",
					zap.Error(blErr),
					zap.String("request_id", GetRequestID(c)))
			} else if blacklisted {
				unauthorized(c, "token has been revoked")
				return
			}

			invalidated, invErr := cfg.TokenBlacklist.IsClientTokenInvalidated(
				c.Request.Context(), claims.ClientID, claims.GetIssuedAtTime())
			if invErr != nil {
				log.Error("client token invalidation check failed",
					zap.Error(invErr),
					zap.String("request_id", GetRequestID(c)))
			} else if invalidated {
				unauthorized(c, "token has been revoked")
				return
			}
		}

		c.Set(JWTClaimsKey, claims)
		c.Set(JWTClientIDKey, claims.ClientID)
		c.Set(JWTEmailKey, claims.Email)

		ctx, _ := logger.WithClientID(c.Request.Context(),
			logger.FromContext(c.Request.Context()), claims.ClientID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

func unauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized,
		dto.NewErrorResponseWithRequestID(dto.ErrCodeUnauthorized, message, GetRequestID(c)))
}

// GetClaims returns the validated JWT claims from the gin context
func GetClaims(c *gin.Context) (*auth.Claims, bool) {
	v, ok := c.Get(JWTClaimsKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*auth.Claims)
	return claims, ok
}
