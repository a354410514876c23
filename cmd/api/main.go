package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-campus-events/internal/config"
	"go-campus-events/internal/handler"
	"go-campus-events/internal/metrics"
	"go-campus-events/internal/middleware"
	"go-campus-events/internal/model"
	"go-campus-events/internal/repository"
	"go-campus-events/internal/service"
	"go-campus-events/internal/ws"
	"go-campus-events/pkg/database"
	"go-campus-events/pkg/extauth"
	"go-campus-events/pkg/jwt"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

func main() {
	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	log := cfg.NewLogger()
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 2. Setup Database
	db, err := database.Connect(cfg.DSN(), log, database.DefaultOptions)
	if err != nil {
		log.Error("failed to connect database", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := database.Close(db); err != nil {
			log.Warn("failed to close database", "error", err)
		}
	}()
	if err := database.Migrate(db, model.AllModels()...); err != nil {
		log.Error("failed to migrate", "error", err)
		os.Exit(1)
	}

	// 3. Repositories
	userRepo := repository.NewUserRepo(db)
	eventRepo := repository.NewEventRepo(db)
	registrationRepo := repository.NewRegistrationRepo(db)
	sessionRepo := repository.NewAttendanceSessionRepo(db)
	attendanceRepo := repository.NewAttendanceRepo(db)
	userRoleRepo := repository.NewUserRoleRepo(db)
	eventRoleRepo := repository.NewEventRoleRepo(db)
	userAssignRepo := repository.NewUserRoleAssignmentRepo(db)
	eventAssignRepo := repository.NewEventRoleAssignmentRepo(db)

	if cfg.SeedOnStart {
		seeder := service.NewSeeder(userRepo, userRoleRepo, eventRoleRepo, userAssignRepo, log)
		if err := seeder.Seed(ctx); err != nil {
			log.Warn("seed failed", "error", err)
		}
	}

	// 4. Setup WebSocket Hub, relayed through Redis when configured
	m := metrics.New()
	wsHub := ws.NewHub(log, m)
	go wsHub.Run(ctx)

	var publisher ws.Publisher = wsHub
	if cfg.RedisAddr != "" {
		client, err := ws.NewRedisClient(ctx, cfg.RedisAddr)
		if err != nil {
			log.Error("failed to connect redis", "addr", cfg.RedisAddr, "error", err)
			os.Exit(1)
		}
		defer client.Close()
		relay := ws.NewRelay(client, cfg.RedisChannel, wsHub, log, m)
		if err := relay.Listen(ctx); err != nil {
			log.Error("failed to start notification relay", "error", err)
			os.Exit(1)
		}
		publisher = relay
	}

	// 5. Dependency Injection (Wiring Layers)
	tokens := jwt.NewManager(cfg.JWTSecret, cfg.JWTTTL, cfg.JWTIssuer)
	verifier := extauth.NewClient(cfg.ExternalAuthURL, cfg.ExternalAuthTimeout)

	accessService := service.NewAccessService(userAssignRepo, eventAssignRepo, m, log)
	authService := service.NewAuthService(userRepo, verifier, tokens)
	userService := service.NewUserService(userRepo, eventRepo, attendanceRepo)
	eventService := service.NewEventService(eventRepo, registrationRepo)
	registrationService := service.NewRegistrationService(registrationRepo, eventRepo)
	attendanceService := service.NewAttendanceService(sessionRepo, attendanceRepo)
	assignmentService := service.NewAssignmentService(userAssignRepo, eventAssignRepo, eventRepo, eventRoleRepo)
	notificationService := service.NewNotificationService(publisher)

	router := &handler.Router{
		Auth:          handler.NewAuthHandler(authService),
		Users:         handler.NewUserHandler(userService, accessService),
		Events:        handler.NewEventHandler(eventService, assignmentService, accessService, notificationService),
		Registrations: handler.NewRegistrationHandler(registrationService),
		Attendance:    handler.NewAttendanceHandler(attendanceService),
		UserRoles:     handler.NewRoleHandler(service.NewUserRoleService(userRoleRepo)),
		EventRoles:    handler.NewRoleHandler(service.NewEventRoleService(eventRoleRepo)),
		Assignments:   handler.NewAssignmentHandler(assignmentService),
		Notifications: handler.NewNotificationHandler(notificationService),
		Authn:         middleware.RequireAuth(authService),
		Authz:         middleware.NewAuthorizer(accessService, log),
		Sessions:      attendanceService,
	}

	// 6. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ErrorHandler: handler.ErrorHandler(log),
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New())
	app.Use(helmet.New())

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"success": true, "message": "Campus events API is running"})
	})
	app.Get("/metrics", adaptor.HTTPHandler(m.Handler()))

	// WebSocket Route
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(wsHub.Serve))

	// 7. Routes
	api := app.Group("/api", middleware.RateLimit(cfg.RateLimitMax, cfg.RateLimitWindow))
	router.Mount(api)

	// 8. Graceful Shutdown
	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Error("server stopped", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down server")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Error("server forced to shutdown", "error", err)
	}
	log.Info("server exited")
}
