package router

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/asbhive/directory/api/internal/auth"
	"github.com/asbhive/directory/api/internal/config"
	"github.com/asbhive/directory/api/internal/handler"
	middlewarepkg "github.com/asbhive/directory/api/internal/middleware"
)

// Handlers aggregates HTTP handlers used by the router.
type Handlers struct {
	Auth        *handler.AuthHandler
	Companies   *handler.CompaniesHandler
	AdminUpload *handler.AdminUploadHandler
	Search      *handler.SearchHandler
	Report      *handler.ReportHandler
	News        *handler.NewsHandler
}

// Register wires all HTTP routes for the API.
func Register(e *echo.Echo, cfg *config.Config, jwtManager *auth.JWTManager, revocations *auth.Revocations, handlers Handlers, log zerolog.Logger) {
	e.GET("/healthz", func(c echo.Context) error {
		return handler.Success(c, http.StatusOK, "service healthy", map[string]any{"status": "ok"})
	})

	e.POST("/auth/check-email", handlers.Auth.CheckEmail)
	e.POST("/auth/register", handlers.Auth.Register)
	e.POST("/auth/claim", handlers.Auth.Claim)
	e.POST("/auth/login", handlers.Auth.Login)

	e.GET("/companies", handlers.Companies.List)
	e.GET("/companies/:id", handlers.Companies.Get)
	e.GET("/charts/sectors", handlers.Search.SectorChart)

	aiLimiter := middlewarepkg.RateLimiter("ai", cfg.RateLimitAI)
	e.POST("/search", handlers.Search.Search, aiLimiter)
	e.POST("/reports", handlers.Report.Generate, aiLimiter)

	e.POST("/news/update", handlers.News.Update,
		middlewarepkg.TriggerAuth(middlewarepkg.TriggerAuthConfig{
			JWT:         jwtManager,
			Revocations: revocations,
			Audience:    cfg.SchedulerAudience,
			Logger:      log,
		}),
		middlewarepkg.RateLimiter("news", cfg.RateLimitNews),
	)

	secured := e.Group("")
	secured.Use(middlewarepkg.JWT(jwtManager, revocations))

	secured.POST("/auth/logout", handlers.Auth.Logout)
	secured.GET("/me", handlers.Auth.Me)
	secured.PUT("/me/company", handlers.Companies.UpdateProfile)

	admin := secured.Group("/admin", middlewarepkg.RequireRole(auth.RoleAdmin))
	admin.POST("/upload-csv", handlers.AdminUpload.UploadCSV)
}
