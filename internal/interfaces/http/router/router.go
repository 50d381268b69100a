package router

import (
	"github.com/gin-gonic/gin"

	appidentity "github.com/pos/backend/internal/application/identity"
	"github.com/pos/backend/internal/infrastructure/auth"
	"github.com/pos/backend/internal/interfaces/http/handler"
	"github.com/pos/backend/internal/interfaces/http/middleware"
)

// RouteRegistrar registers a handler's routes on a group
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// Config carries everything the router needs to assemble the API surface
type Config struct {
	JWTService  *auth.JWTService
	TenantScope *appidentity.TenantScope
	CORS        middleware.CORSConfig

	System      *handler.SystemHandler
	Auth        *handler.AuthHandler
	Tenant      *handler.TenantHandler
	User        *handler.UserHandler
	Product     *handler.ProductHandler
	Customer    *handler.CustomerHandler
	Transaction *handler.TransactionHandler
	Report      *handler.ReportHandler
}

// Setup wires middleware and routes onto the engine. Public routes carry
// only the request id and CORS middleware; everything under the scoped
// group additionally runs JWT validation and tenant resolution.
func Setup(engine *gin.Engine, cfg Config) {
	engine.Use(middleware.RequestID())
	engine.Use(middleware.CORS(cfg.CORS))

	root := engine.Group("")
	cfg.System.RegisterRoutes(root)

	public := engine.Group("/api/v1")
	cfg.Auth.RegisterRoutes(public)
	cfg.Tenant.RegisterPublicRoutes(public)

	scoped := engine.Group("/api/v1")
	scoped.Use(middleware.JWTAuth(cfg.JWTService))
	scoped.Use(middleware.TenantScope(cfg.TenantScope))

	for _, registrar := range []RouteRegistrar{
		cfg.Tenant,
		cfg.User,
		cfg.Product,
		cfg.Customer,
		cfg.Transaction,
		cfg.Report,
	} {
		registrar.RegisterRoutes(scoped)
	}
}
