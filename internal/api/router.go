package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Sakura-Echo/nwpu-mandarin/internal/api/handler"
	"github.com/Sakura-Echo/nwpu-mandarin/internal/api/middleware"
	"github.com/Sakura-Echo/nwpu-mandarin/internal/core/domain"
	"github.com/Sakura-Echo/nwpu-mandarin/internal/core/ports"
	"github.com/Sakura-Echo/nwpu-mandarin/internal/core/service"
	mongodb "github.com/Sakura-Echo/nwpu-mandarin/internal/infrastructure/db/mongo"
	redisdb "github.com/Sakura-Echo/nwpu-mandarin/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// audit may be nil, in which case no activity trail is recorded.
func NewRouter(db *mongo.Database, rdb *redis.Client, audit ports.AuditSink, sessionTTL time.Duration, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("mandarin"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	bookRepo := mongodb.NewBookRepository(db)
	lendingRepo := mongodb.NewLendingRepository(db)
	sessionStore := redisdb.NewSessionStore(rdb)

	authService := service.NewAuthService(userRepo, sessionStore, audit, sessionTTL, log)
	catalogService := service.NewCatalogService(bookRepo, log)
	lendingService := service.NewLendingService(lendingRepo, bookRepo, userRepo, audit, log)

	authHandler := handler.NewAuthHandler(authService)
	bookHandler := handler.NewBookHandler(catalogService)
	lendingHandler := handler.NewLendingHandler(lendingService, authService)

	sessionMW := middleware.Session(authService)
	librarianOnly := middleware.RequireRole(domain.RoleLibrarian)
	readerOnly := middleware.RequireRole(domain.RoleReader)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/logout", authHandler.Logout)
	e.GET("/auth/me", authHandler.Me, sessionMW)

	// --- Librarian routes ---
	librarian := e.Group("/librarian", sessionMW, librarianOnly)
	librarian.POST("/books", bookHandler.Add)
	librarian.PUT("/books/:id", bookHandler.Edit)
	librarian.DELETE("/books/:id", bookHandler.Delete)
	librarian.GET("/books/search", bookHandler.Search)
	librarian.POST("/lending/lend", lendingHandler.Lend)
	librarian.POST("/lending/return", lendingHandler.Return)
	librarian.GET("/lending/history", lendingHandler.History)
	librarian.POST("/readers", lendingHandler.RegisterReader)

	// --- Reader routes ---
	reader := e.Group("/reader", sessionMW, readerOnly)
	reader.GET("/books/search", bookHandler.Search)
	reader.GET("/lending/history", lendingHandler.MyHistory)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness)  // readiness – are dependencies up?

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
