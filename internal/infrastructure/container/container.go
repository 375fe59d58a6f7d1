package container

import (
	"context"
	"fmt"
	"log"

	"github.com/gdugdh24/skillswap-backend/internal/config"
	"github.com/gdugdh24/skillswap-backend/internal/delivery/http"
	"github.com/gdugdh24/skillswap-backend/internal/delivery/http/handler"
	"github.com/gdugdh24/skillswap-backend/internal/delivery/http/middleware"
	"github.com/gdugdh24/skillswap-backend/internal/infrastructure/database"
	"github.com/gdugdh24/skillswap-backend/internal/infrastructure/gemini"
	"github.com/gdugdh24/skillswap-backend/internal/infrastructure/server"
	"github.com/gdugdh24/skillswap-backend/internal/pkg/jwt"
	"github.com/gdugdh24/skillswap-backend/internal/repository/postgres"
	redisrepo "github.com/gdugdh24/skillswap-backend/internal/repository/redis"
	"github.com/gdugdh24/skillswap-backend/internal/usecase/auth"
	"github.com/gdugdh24/skillswap-backend/internal/usecase/catalog"
	"github.com/gdugdh24/skillswap-backend/internal/usecase/matching"
	"github.com/gdugdh24/skillswap-backend/internal/usecase/profile"
	"github.com/gdugdh24/skillswap-backend/internal/usecase/user"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
)

// Container holds all application dependencies
type Container struct {
	Config *config.Config
	DB     *sqlx.DB
	Redis  *redis.Client
	Server *server.Server
	Gemini *gemini.GeminiClient
	Logger *log.Logger
}

// NewContainer creates a new dependency injection container
func NewContainer(ctx context.Context, cfg *config.Config, logger *log.Logger) (*Container, error) {
	if logger == nil {
		logger = log.Default()
	}
	c := &Container{Config: cfg, Logger: logger}

	// Initialize database
	db, err := database.OpenPostgres(ctx, &cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	c.DB = db

	// Initialize Redis
	redisClient, err := database.OpenRedis(ctx, &cfg.Redis)
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("failed to initialize redis: %w", err)
	}
	c.Redis = redisClient

	// Gemini is optional; matches are created without explanations when
	// no key is configured.
	var explainer matching.Explainer
	if cfg.GeminiAPIKey != "" {
		geminiClient, err := gemini.NewGeminiClient(ctx, cfg.GeminiAPIKey, logger)
		if err != nil {
			logger.Printf("Warning: Failed to initialize Gemini client: %v", err)
		} else {
			c.Gemini = geminiClient
			explainer = geminiClient
		}
	}

	// Initialize repositories
	userRepo := postgres.NewUserRepository(db)
	profileRepo := postgres.NewProfileRepository(db)
	skillRepo := postgres.NewSkillRepository(db)
	interestRepo := postgres.NewInterestRepository(db)
	matchRepo := postgres.NewMatchRepository(db)
	tokenStore := redisrepo.NewRefreshTokenStore(redisClient)

	// Initialize use cases
	jwtService := jwt.NewHMACService(
		cfg.JWT.AccessSecret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessTTL(),
		cfg.JWT.RefreshTTL(),
	)

	userUseCase := user.NewUserUseCase(userRepo, bcrypt.DefaultCost)
	authUseCase := auth.NewAuthUseCase(userUseCase, tokenStore, jwtService)
	profileUseCase := profile.NewProfileUseCase(
		profileRepo,
		userRepo,
		skillRepo,
		interestRepo,
		userUseCase,
	)
	matchingUseCase := matching.NewMatchingUseCase(
		userRepo,
		profileRepo,
		matchRepo,
		explainer,
		logger,
	)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authUseCase)
	userHandler := handler.NewUserHandler(userUseCase)
	profileHandler := handler.NewProfileHandler(profileUseCase)
	skillHandler := handler.NewCatalogHandler(catalog.NewSkillUseCase(skillRepo))
	interestHandler := handler.NewCatalogHandler(catalog.NewInterestUseCase(interestRepo))
	matchHandler := handler.NewMatchHandler(matchingUseCase)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(authUseCase)

	// Initialize router
	router := http.NewRouter(
		authHandler,
		userHandler,
		profileHandler,
		skillHandler,
		interestHandler,
		matchHandler,
		authMiddleware,
		logger,
	)

	// Initialize server
	c.Server = server.NewServer(&cfg.Server, router.Setup(), logger)

	return c, nil
}

// Close closes all connections
func (c *Container) Close() error {
	if c.Gemini != nil {
		if err := c.Gemini.Close(); err != nil {
			c.Logger.Printf("Error closing Gemini client: %v", err)
		}
	}

	// Close Redis
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			c.Logger.Printf("Error closing Redis: %v", err)
		}
	}

	// Close database
	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			return fmt.Errorf("failed to close database: %w", err)
		}
	}

	return nil
}
