package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"medlink/models"
	"medlink/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthStore is the token cache: confirmed subjects and revoked tokens.
type AuthStore interface {
	GetAccount(ctx context.Context, claims *utils.TokenClaims) (*utils.TokenClaims, error)
	SetAccount(ctx context.Context, claims *utils.TokenClaims, ttl time.Duration) error
	IsRevoked(ctx context.Context, token string) (bool, error)
}

// AccountChecker confirms a token subject still has an account.
type AccountChecker interface {
	Exists(ctx context.Context, role models.Role, id string) (bool, error)
}

// Authenticator validates bearer tokens for the role-restricted route groups.
type Authenticator struct {
	// Store may be nil, in which case every request hits Accounts.
	Store    AuthStore
	Accounts AccountChecker
}

func unauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, utils.ErrorResponse{Message: message})
}

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
}

// RequireRole admits requests carrying a valid token for one of roles and
// stores the account id, role, email and raw token on the context.
func (a *Authenticator) RequireRole(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := utils.GetLogger()
		ctx := c.Request.Context()

		token := bearerToken(c)
		if token == "" {
			unauthorized(c, "Not Authorized Login Again")
			return
		}
		claims, err := utils.ParseClaims(token)
		if err != nil {
			unauthorized(c, "Not Authorized Login Again")
			return
		}
		if !hasRole(claims.Role, roles) {
			c.AbortWithStatusJSON(http.StatusForbidden, utils.ErrorResponse{Message: "Access denied"})
			return
		}

		if a.Store != nil {
			revoked, err := a.Store.IsRevoked(ctx, token)
			if err != nil {
				logger.Warn("Auth: revocation check failed", zap.Error(err))
			}
			if revoked {
				unauthorized(c, "Session expired, please login again")
				return
			}
		}

		if !a.confirmed(ctx, claims) {
			unauthorized(c, "Account not found")
			return
		}

		c.Set(utils.CtxAccountID, claims.Subject)
		c.Set(utils.CtxRole, claims.Role)
		c.Set(utils.CtxEmail, claims.Email)
		c.Set(utils.CtxToken, token)
		c.Next()
	}
}

// confirmed checks the cache first and falls back to the database.
func (a *Authenticator) confirmed(ctx context.Context, claims *utils.TokenClaims) bool {
	logger := utils.GetLogger()
	if a.Store != nil {
		cached, err := a.Store.GetAccount(ctx, claims)
		if err != nil {
			logger.Warn("Auth: cache read failed", zap.Error(err))
		} else if cached != nil {
			return true
		}
	}

	exists, err := a.Accounts.Exists(ctx, claims.Role, claims.Subject)
	if err != nil {
		logger.Error("Auth: account lookup failed", zap.String("subject", claims.Subject), zap.Error(err))
		return false
	}
	if exists && a.Store != nil {
		if err := a.Store.SetAccount(ctx, claims, utils.AuthCacheTTL); err != nil {
			logger.Warn("Auth: cache write failed", zap.Error(err))
		}
	}
	return exists
}

func hasRole(role models.Role, allowed []models.Role) bool {
	for _, r := range allowed {
		if r == role {
			return true
		}
	}
	return false
}

// AccountID returns the authenticated account id set by RequireRole.
func AccountID(c *gin.Context) string {
	return c.GetString(utils.CtxAccountID)
}

// Role returns the authenticated role set by RequireRole.
func Role(c *gin.Context) models.Role {
	if v, ok := c.Get(utils.CtxRole); ok {
		if r, ok := v.(models.Role); ok {
			return r
		}
	}
	return ""
}
