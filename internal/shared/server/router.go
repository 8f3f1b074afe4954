package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"

	"career-backend/internal/industries"
	"career-backend/internal/resumes"
	"career-backend/internal/services/health"
	"career-backend/internal/shared/config"
	"career-backend/internal/shared/metrics"
	"career-backend/internal/shared/server/middleware"
	"career-backend/internal/shared/server/respond"
	"career-backend/internal/users"
)

const healthPath = "/api/v1/health"

// RouterDeps are the handlers and policies the router mounts.
type RouterDeps struct {
	Config            config.Config
	Health            *health.Service
	IndustriesHandler *industries.Handler
	UsersHandler      *users.Handler
	ResumesHandler    *resumes.Handler
	Onboarding        middleware.OnboardingChecker
	Limiter           *limiter.Limiter
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	if gin.Mode() != gin.TestMode {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.Metrics(),
		middleware.Secure(middleware.SecureOptions(config.IsDevLike(deps.Config.Env))),
		middleware.CORS(deps.Config.CORSAllowOrigin),
	)

	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api/v1")
	api.Use(middleware.Auth(healthPath))
	api.GET("/health", func(c *gin.Context) {
		status := deps.Health.Status(c.Request.Context())
		code := http.StatusOK
		if !status.OK {
			code = http.StatusServiceUnavailable
		}
		respond.JSON(c, code, status)
	})

	if deps.IndustriesHandler != nil {
		deps.IndustriesHandler.RegisterRoutes(api)
	}
	if deps.UsersHandler != nil {
		deps.UsersHandler.RegisterRoutes(api)
	}
	if deps.ResumesHandler != nil {
		gated := api.Group("",
			middleware.RequireOnboarded(deps.Onboarding),
			middleware.RateLimit(deps.Limiter),
		)
		deps.ResumesHandler.RegisterRoutes(gated)
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
