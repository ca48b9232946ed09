package handlers

import (
	"context"
	"log/slog"
	"time"

	"github.com/SscSPs/hk_loans_app/cmd/docs"
	portssvc "github.com/SscSPs/hk_loans_app/internal/core/ports/services"
	"github.com/SscSPs/hk_loans_app/internal/dto"
	"github.com/SscSPs/hk_loans_app/internal/middleware"
	"github.com/SscSPs/hk_loans_app/internal/platform/config"
	"github.com/SscSPs/hk_loans_app/internal/platform/metrics"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Infrastructure bundles the process-level collaborators the router needs besides the services.
type Infrastructure struct {
	Metrics *metrics.Metrics

	// Idempotency is skipped when nil.
	Idempotency middleware.IdempotencyStore

	ReadinessChecks map[string]ReadinessCheck

	// DocumentRoot is served read-only under cfg.DocumentBaseURL when set.
	DocumentRoot string
}

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	infra Infrastructure,
) error {
	dto.RegisterValidators()

	r.Use(cors.New(corsConfig(cfg)))
	if infra.Metrics != nil {
		r.Use(middleware.Metrics(infra.Metrics))
		r.GET("/metrics", gin.WrapH(infra.Metrics.Handler()))
	}

	registerHealthRoutes(r, infra.ReadinessChecks)

	if infra.DocumentRoot != "" && cfg.DocumentBaseURL != "" {
		r.Static(cfg.DocumentBaseURL, infra.DocumentRoot)
	}

	// Public authentication routes share the /api/v1 prefix
	loginLimiter, err := middleware.NewLoginLimiter(cfg.LoginRateLimit)
	if err != nil {
		return err
	}
	registerAuthRoutes(r.Group("/api/v1"), services.Auth, middleware.RateLimit(loginLimiter))

	setupAPIV1Routes(r, cfg, services, infra)

	setupSwaggerRoutes(r, cfg)
	return nil
}

// setupAPIV1Routes configures the authenticated /api/v1 routes and delegates to the per-resource registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	infra Infrastructure,
) {
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret), middleware.RequireActiveUser(activeUser(services.User)))

	// Ledger mutations replay their first response when retried with an Idempotency-Key
	var guard []gin.HandlerFunc
	if infra.Idempotency != nil {
		guard = append(guard, middleware.Idempotency(infra.Idempotency, cfg.IdempotencyTTL, infra.Metrics))
	} else {
		slog.Info("Idempotency store not configured; Idempotency-Key headers are ignored")
	}

	registerClientRoutes(v1, services.Client)
	registerPartnerRoutes(v1, services.Partner)
	registerLoanRoutes(v1, services.Loan, guard...)
	registerInstallmentRoutes(v1, services.Installment, guard...)
	registerTransactionRoutes(v1, services.Transaction)
	registerDashboardRoutes(v1, services.Dashboard)
	registerAdminRoutes(v1, services)
}

// activeUser checks the account on every request so deactivation takes effect before the token expires.
func activeUser(users portssvc.UserReaderSvc) middleware.ActiveUserFunc {
	return func(ctx context.Context, userID string) (bool, error) {
		user, err := users.GetUserByID(ctx, userID)
		if err != nil {
			return false, err
		}
		return user.IsActive, nil
	}
}

func corsConfig(cfg *config.Config) cors.Config {
	corsCfg := cors.DefaultConfig()
	if len(cfg.CORSAllowedOrigins) == 0 {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.CORSAllowedOrigins
	}
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization", middleware.IdempotencyKeyHeader)
	corsCfg.MaxAge = 12 * time.Hour
	return corsCfg
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
