package router

import (
	"fmt"

	"github.com/anonto42/movieshare/backend/internal/auth"
	"github.com/anonto42/movieshare/backend/internal/handlers"
	"github.com/anonto42/movieshare/backend/internal/middleware"
	"github.com/anonto42/movieshare/backend/internal/repositories"
	"github.com/anonto42/movieshare/backend/internal/services"
	"github.com/anonto42/movieshare/backend/internal/storage"
	"github.com/anonto42/movieshare/backend/internal/validators"
	"github.com/anonto42/movieshare/backend/pkg/config"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Dependencies are the clients the HTTP layer is built on.
type Dependencies struct {
	Logger      *zap.Logger
	DB          *gorm.DB
	UserCache   repositories.UserCache // nil disables caching
	Tokens      *auth.TokenManager
	Avatars     storage.AvatarStore
	Firebase    handlers.FirebaseVerifier // nil disables /login/firebase
	CORSOrigins []string
}

// New builds a ready-to-serve echo instance.
func New(deps Dependencies) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true
	e.Validator = validators.NewValidator()
	e.HTTPErrorHandler = handlers.NewHTTPErrorHandler(deps.Logger)

	config.SetupMiddleware(e, deps.Logger, deps.CORSOrigins)

	if err := SetupRoutes(e, deps); err != nil {
		return nil, err
	}
	return e, nil
}

// SetupRoutes migrates the schema and registers every route with its dependencies.
func SetupRoutes(e *echo.Echo, deps Dependencies) error {
	if err := repositories.Migrate(deps.DB); err != nil {
		return fmt.Errorf("failed to auto migrate models: %w", err)
	}
	deps.Logger.Info("Auto-migrations completed")

	repos := repositories.New(deps.DB)
	svc := services.New(deps.Logger, repos, deps.UserCache)
	requireAuth := middleware.JWTAuthMiddleware(deps.Tokens, svc.Identity)

	e.GET("/", handlers.Welcome)
	e.GET("/api/status", handlers.HealthCheck)

	root := e.Group("")

	handlers.NewAuthHandler(deps.Logger, svc.Identity, deps.Tokens, deps.Firebase).RegisterAuthRoutes(root, requireAuth)
	handlers.NewUserHandler(svc.Identity, deps.Avatars).RegisterProfileRoutes(root, requireAuth)
	handlers.NewPostHandler(svc.Content).RegisterPostRoutes(root, requireAuth)
	handlers.NewLikeHandler(svc.Engagement).RegisterLikeRoutes(root, requireAuth)
	handlers.NewBookmarkHandler(svc.Engagement).RegisterBookmarkRoutes(root, requireAuth)
	handlers.NewCommentHandler(svc.Content).RegisterCommentRoutes(root, requireAuth)
	handlers.NewNotificationHandler(svc.Engagement).RegisterNotificationRoutes(root, requireAuth)

	deps.Logger.Info("All routes configured", zap.Int("routes", len(e.Routes())))
	return nil
}
