package container

import (
	"context"
	"fmt"
	"log"
	"time"

	"bookshelf-backend/internal/config"
	infraCache "bookshelf-backend/internal/infrastructure/cache"
	"bookshelf-backend/internal/infrastructure/database"
	"bookshelf-backend/pkg/cache"
	"bookshelf-backend/pkg/jwt"

	"bookshelf-backend/internal/domains/book"
	bookHandler "bookshelf-backend/internal/domains/book/handler"
	bookRepo "bookshelf-backend/internal/domains/book/repository"
	bookService "bookshelf-backend/internal/domains/book/service"

	"bookshelf-backend/internal/domains/catalog"
	"bookshelf-backend/internal/domains/catalog/gateway/googlebooks"
	catalogHandler "bookshelf-backend/internal/domains/catalog/handler"

	"bookshelf-backend/internal/domains/featured"
	"bookshelf-backend/internal/domains/featured/gateway/bestsellers"
	featuredHandler "bookshelf-backend/internal/domains/featured/handler"
	featuredRepo "bookshelf-backend/internal/domains/featured/repository"
	featuredService "bookshelf-backend/internal/domains/featured/service"

	"bookshelf-backend/internal/domains/user"
	userHandler "bookshelf-backend/internal/domains/user/handler"
	userRepo "bookshelf-backend/internal/domains/user/repository"
	userService "bookshelf-backend/internal/domains/user/service"
)

// Container holds every dependency of the application. Initialization
// order matters: config, infrastructure, repositories, services,
// handlers. All components are singletons for the app lifetime.
type Container struct {
	Config     *config.Config
	DB         *database.PostgresDB
	Cache      cache.Cache
	JWTManager *jwt.Manager

	CatalogClient     catalog.Client
	BestsellersClient featured.Client

	UserRepo     user.Repository
	BookRepo     book.Repository
	FeaturedRepo featured.Repository

	UserService     user.Service
	BookService     book.Service
	FeaturedService featured.Service

	UserHandler     *userHandler.UserHandler
	BookHandler     *bookHandler.BookHandler
	CatalogHandler  *catalogHandler.CatalogHandler
	FeaturedHandler *featuredHandler.FeaturedHandler

	redis *infraCache.RedisCache
}

// NewContainer builds the full dependency graph.
func NewContainer() (*Container, error) {
	c := &Container{}

	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg
	log.Printf("[CONTAINER] Config loaded (environment: %s)", cfg.App.Environment)

	// 2. Database
	db := database.NewPostgresDB(config.DatabaseConfigFor(cfg))

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.HealthCheck(context.Background()); err != nil {
		return nil, fmt.Errorf("database health check failed: %w", err)
	}
	c.DB = db

	// 3. Cache. Redis is preferred; when it is unreachable the app
	// degrades to a bounded in-process cache instead of failing.
	redisCache := infraCache.NewRedisCache(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	if err := redisCache.Connect(context.Background()); err != nil {
		log.Printf("[CONTAINER] Redis unavailable, using in-memory cache: %v", err)
		c.Cache = cache.NewMemory(cfg.Cache.MaxEntries)
	} else {
		c.Cache = redisCache
		c.redis = redisCache
	}

	// 4. Shared infrastructure
	c.JWTManager = jwt.NewManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry)
	c.CatalogClient = googlebooks.NewClient(cfg.Catalog.BaseURL, cfg.Catalog.APIKey, cfg.Catalog.Timeout)
	c.BestsellersClient = bestsellers.NewClient(cfg.Bestsellers.BaseURL, cfg.Bestsellers.APIKey, cfg.Bestsellers.Timeout)

	// 5. Repositories
	c.UserRepo = userRepo.NewPostgresRepository(db.Pool)
	c.BookRepo = bookRepo.NewPostgresRepository(db.Pool, c.Cache)
	c.FeaturedRepo = featuredRepo.NewPostgresRepository(db.Pool)

	// 6. Services
	c.UserService = userService.NewUserService(c.UserRepo, c.JWTManager)
	c.BookService = bookService.NewBookService(c.BookRepo, c.CatalogClient)
	c.FeaturedService = featuredService.NewFeaturedService(
		c.FeaturedRepo,
		c.BestsellersClient,
		c.CatalogClient,
		cfg.Bestsellers.FreshnessTTL,
	)

	// 7. Handlers
	c.UserHandler = userHandler.NewUserHandler(c.UserService, cfg.App.UploadDir)
	c.BookHandler = bookHandler.NewBookHandler(c.BookService)
	c.CatalogHandler = catalogHandler.NewCatalogHandler(c.CatalogClient, c.Cache, cfg.Cache.SearchTTL)
	c.FeaturedHandler = featuredHandler.NewFeaturedHandler(c.FeaturedService)

	log.Println("[CONTAINER] Dependency graph initialized")

	return c, nil
}

// Close releases infrastructure resources in reverse order.
func (c *Container) Close() {
	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			log.Printf("[CONTAINER] Redis close error: %v", err)
		}
	}
	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			log.Printf("[CONTAINER] Database close error: %v", err)
		}
	}
}
