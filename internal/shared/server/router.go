package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"resume-builder/internal/account"
	googleauth "resume-builder/internal/auth"
	"resume-builder/internal/documents"
	"resume-builder/internal/exports"
	"resume-builder/internal/shared/config"
	"resume-builder/internal/shared/metrics"
	"resume-builder/internal/shared/server/middleware"
	"resume-builder/internal/shared/server/respond"
	"resume-builder/internal/suggestions"
	"resume-builder/internal/users"
)

// RouterDeps carries the handlers the router wires up. Nil handlers are
// skipped, which keeps partial wiring possible in tests.
type RouterDeps struct {
	Config            config.Config
	DocumentHandler   *documents.Handler
	ExportHandler     *exports.Handler
	SuggestionHandler *suggestions.Handler
	AccountHandler    *account.Handler
	UserHandler       *users.Handler
	GoogleAuth        *googleauth.GoogleService
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.Auth(deps.Config.Env),
	)

	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})

	if deps.GoogleAuth != nil {
		deps.GoogleAuth.RegisterRoutes(api)
	}
	registerMeRoutes(api)
	if deps.UserHandler != nil {
		deps.UserHandler.RegisterRoutes(api)
	}
	if deps.DocumentHandler != nil {
		deps.DocumentHandler.RegisterRoutes(api)
	}
	if deps.ExportHandler != nil {
		deps.ExportHandler.RegisterRoutes(api)
		deps.ExportHandler.RegisterPublicRoutes(api)
	}
	if deps.AccountHandler != nil {
		deps.AccountHandler.RegisterRoutes(api)
	}
	if deps.SuggestionHandler != nil {
		ai := api.Group("")
		ai.Use(middleware.RateLimit(middleware.RateLimitConfig{
			Rules: map[string]middleware.RateLimitRule{
				"AI": {Rate: 0.5, Burst: 5},
			},
			DefaultGroup: "AI",
		}))
		deps.SuggestionHandler.RegisterRoutes(ai)
	}

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
