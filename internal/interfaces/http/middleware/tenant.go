package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	appidentity "github.com/pos/backend/internal/application/identity"
	"github.com/pos/backend/internal/domain/identity"
	"github.com/pos/backend/internal/domain/shared"
	"github.com/pos/backend/internal/interfaces/http/dto"
)

// TenantContextKey is the gin context key for the resolved tenant context
const TenantContextKey = "tenant_context"

// TenantScope resolves the tenant slug and acting user from the JWT claims
// into a TenantContext and stores it in the gin context. Every tenant-scoped
// route runs behind JWTAuth plus this middleware; handlers never see raw
// claims.
func TenantScope(scope *appidentity.TenantScope) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetJWTClaims(c)
		if claims == nil {
			abortUnauthorized(c, "Missing authentication")
			return
		}

		actorID, err := uuid.Parse(claims.UserID)
		if err != nil {
			abortUnauthorized(c, "Invalid user ID in token")
			return
		}

		slug := claims.TenantSlug
		if slug == "" {
			slug = c.GetHeader("X-Tenant-Slug")
		}

		tctx, err := scope.Resolve(c.Request.Context(), slug, actorID)
		if err != nil {
			status := http.StatusForbidden
			code := dto.ErrCodeForbidden
			message := "Access to this store is forbidden"

			var domainErr *shared.DomainError
			switch {
			case errors.Is(err, shared.ErrNotFound):
				status = http.StatusNotFound
				code = dto.ErrCodeNotFound
				message = "Store not found"
			case errors.Is(err, shared.ErrUnauthorized):
				status = http.StatusUnauthorized
				code = dto.ErrCodeUnauthorized
				message = "Not authenticated"
			case errors.As(err, &domainErr):
				code = dto.NormalizeErrorCode(domainErr.Code)
				status = dto.GetHTTPStatus(code)
				message = domainErr.Message
			}

			c.AbortWithStatusJSON(status,
				dto.NewErrorResponseWithRequestID(code, message, GetRequestID(c)))
			return
		}

		c.Set(TenantContextKey, tctx)
		c.Next()
	}
}

// GetTenantContext returns the TenantContext stored by TenantScope
func GetTenantContext(c *gin.Context) (identity.TenantContext, bool) {
	value, exists := c.Get(TenantContextKey)
	if !exists {
		return identity.TenantContext{}, false
	}
	tctx, ok := value.(identity.TenantContext)
	if !ok || tctx.IsZero() {
		return identity.TenantContext{}, false
	}
	return tctx, true
}
