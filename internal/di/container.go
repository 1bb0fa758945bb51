package di

import (
	"github.com/adityakashyap5047/Evix/internal/handler"
	"github.com/adityakashyap5047/Evix/internal/repository"
	"github.com/adityakashyap5047/Evix/internal/service"
	"github.com/adityakashyap5047/Evix/pkg/config"
	"github.com/adityakashyap5047/Evix/pkg/database"
	"github.com/adityakashyap5047/Evix/pkg/logger"
	"github.com/adityakashyap5047/Evix/pkg/redis"
	"github.com/adityakashyap5047/Evix/pkg/webhook"
)

// Container holds all dependencies for the API server
type Container struct {
	// Infrastructure
	DB    *database.PostgresDB
	Redis *redis.Client

	// Repositories
	UserRepo         repository.UserRepository
	EventRepo        repository.EventRepository
	RegistrationRepo repository.RegistrationRepository

	// Services
	UserService         service.UserService
	EventService        service.EventService
	RegistrationService service.RegistrationService
	DiscoveryService    service.DiscoveryService
	ImageService        service.ImageService

	// Handlers
	HealthHandler       *handler.HealthHandler
	UserHandler         *handler.UserHandler
	EventHandler        *handler.EventHandler
	RegistrationHandler *handler.RegistrationHandler
	WebhookHandler      *handler.WebhookHandler
	ImageHandler        *handler.ImageHandler
}

// ContainerConfig contains configuration for building the container
type ContainerConfig struct {
	Config *config.Config
	DB     *database.PostgresDB
	Redis  *redis.Client
	Log    *logger.Logger
}

// NewContainer creates a new dependency injection container
func NewContainer(cfg *ContainerConfig) (*Container, error) {
	c := &Container{
		DB:    cfg.DB,
		Redis: cfg.Redis,
	}

	// Initialize repositories
	c.UserRepo = repository.NewPostgresUserRepository(c.DB.Pool())
	c.RegistrationRepo = repository.NewPostgresRegistrationRepository(c.DB.Pool())

	// Wrap the event repository with cache if Redis is available
	pgEventRepo := repository.NewPostgresEventRepository(c.DB.Pool())
	if c.Redis != nil {
		c.EventRepo = repository.NewCachedEventRepository(pgEventRepo, c.Redis)
	} else {
		c.EventRepo = pgEventRepo
	}

	// Initialize services
	c.UserService = service.NewUserService(c.UserRepo, cfg.Log)
	c.EventService = service.NewEventService(c.EventRepo, cfg.Log)
	c.RegistrationService = service.NewRegistrationService(c.RegistrationRepo, c.EventRepo, cfg.Log)
	c.DiscoveryService = service.NewDiscoveryService(c.EventRepo)
	c.ImageService = service.NewImageService(&service.ImageServiceConfig{
		AccessKey: cfg.Config.Unsplash.AccessKey,
		BaseURL:   cfg.Config.Unsplash.BaseURL,
		Timeout:   cfg.Config.Unsplash.Timeout,
	})

	verifier, err := webhook.NewVerifier(cfg.Config.Webhook.SigningSecret, cfg.Config.Webhook.Tolerance)
	if err != nil {
		return nil, err
	}

	// Initialize handlers
	c.HealthHandler = handler.NewHealthHandler(c.DB, c.Redis)
	c.UserHandler = handler.NewUserHandler(c.UserService)
	c.EventHandler = handler.NewEventHandler(c.EventService, c.DiscoveryService, c.UserService)
	c.RegistrationHandler = handler.NewRegistrationHandler(c.RegistrationService, c.UserService)
	c.WebhookHandler = handler.NewWebhookHandler(c.UserService, verifier)
	c.ImageHandler = handler.NewImageHandler(c.ImageService, c.UserService)

	return c, nil
}
