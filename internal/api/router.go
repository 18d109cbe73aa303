package api

import (
	"database/sql"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"

	"github.com/openboard/board-api/internal/api/handler"
	"github.com/openboard/board-api/internal/api/middleware"
	"github.com/openboard/board-api/internal/core/domain"
	"github.com/openboard/board-api/internal/core/service"
	"github.com/openboard/board-api/internal/infrastructure/config"
	"github.com/openboard/board-api/internal/infrastructure/db/mysql"
	redisdb "github.com/openboard/board-api/internal/infrastructure/db/redis"
	"github.com/openboard/board-api/internal/pkg/token"
)

// NewRouter is the composition root: it wires the token codec, repositories,
// services, middleware and handlers with plain constructor calls and returns
// the Echo instance with all routes registered.
func NewRouter(db *sql.DB, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("board"))

	// --- Dependencies ---
	codec, err := token.NewCodec(cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	if err != nil {
		return nil, err
	}

	userRepo := mysql.NewUserRepository(db)
	articleRepo := mysql.NewArticleRepository(db)
	commentRepo := mysql.NewCommentRepository(db)
	throttle := redisdb.NewSignInThrottle(rdb, cfg.Throttle.MaxFailures, cfg.Throttle.Window)

	userService := service.NewUserService(userRepo, codec, throttle, log)
	articleService := service.NewArticleService(articleRepo, log)
	commentService := service.NewCommentService(articleRepo, commentRepo, log)
	adminService := service.NewAdminService(userRepo, log)

	userHandler := handler.NewUserHandler(userService)
	articleHandler := handler.NewArticleHandler(articleService)
	commentHandler := handler.NewCommentHandler(commentService)
	adminHandler := handler.NewAdminHandler(adminService)

	// --- Open endpoints (no auth middleware) ---
	e.POST("/api/users/sign-up", userHandler.SignUp)
	e.POST("/api/users/sign-in", userHandler.SignIn)

	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)
	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	// --- Authenticated API ---
	auth := middleware.Auth(codec, userRepo)
	api := e.Group("/api", auth)

	api.POST("/users/refresh", userHandler.Refresh)
	api.DELETE("/users", userHandler.Delete)

	api.POST("/articles", articleHandler.Create)
	api.PUT("/articles/:id", articleHandler.Update)
	api.DELETE("/articles/:id", articleHandler.Delete)

	api.POST("/articles/:id/comments", commentHandler.Create)
	api.PUT("/articles/:id/comments/:cid", commentHandler.Update)
	api.DELETE("/articles/:id/comments/:cid", commentHandler.Delete)

	api.GET("/show", adminHandler.Show, middleware.RBAC(domain.RoleAdmin))

	return e, nil
}
