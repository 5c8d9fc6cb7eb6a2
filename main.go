package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"boulder-session-system/handlers"
	"boulder-session-system/middleware"
	"boulder-session-system/models"
	"boulder-session-system/services"
	"boulder-session-system/utils"
	"boulder-session-system/workers"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  No .env file found, reading environment variables directly")
	}

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL environment variable not set")
	}
	adminToken := os.Getenv("ADMIN_TOKEN")
	if adminToken == "" {
		log.Fatal("ADMIN_TOKEN environment variable not set")
	}
	cookieName := getEnv("SESSION_COOKIE", "boulder_user")
	loc := utils.LoadLocation(getEnv("APP_TIMEZONE", utils.DefaultTimezone))
	clock := services.NewClock(loc)

	retentionDays, err := strconv.Atoi(getEnv("RETENTION_DAYS", strconv.Itoa(services.DefaultRetentionDays)))
	if err != nil {
		log.Fatal("RETENTION_DAYS must be an integer:", err)
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("failed to connect to database:", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Gym{},
		&models.SetSchedule{},
		&models.ClimbingLog{},
		&models.Announcement{},
		&models.AccessLog{},
		&models.PageView{},
	); err != nil {
		log.Fatal("failed to migrate database:", err)
	}

	if seedPath := os.Getenv("SEED_FILE"); seedPath != "" {
		seed, err := utils.LoadSeedFile(seedPath)
		if err != nil {
			log.Fatal("failed to load seed file:", err)
		}
		if err := services.ImportSeed(db, seed); err != nil {
			log.Fatal("failed to import seed file:", err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	images, err := utils.NewImageStoreFromEnv(ctx)
	if err != nil {
		if !errors.Is(err, utils.ErrUploadsDisabled) {
			log.Fatal("failed to initialize R2 client:", err)
		}
		log.Println("⚠️  R2 not configured, icon and gym photo uploads disabled")
	}

	activityService := services.NewActivityService(db)
	userService := services.NewUserService(db, cookieName, activityService, images)
	logService := services.NewLogService(db, clock, activityService)
	gymService := services.NewGymService(db, clock, images)
	scheduleService := services.NewScheduleService(db, clock, activityService)
	connectionService := services.NewConnectionService(db, clock)
	analyticsService := services.NewAnalyticsService(db, clock)
	announcementService := services.NewAnnouncementService(db, clock, activityService)
	retentionService := services.NewRetentionService(db, clock, retentionDays)

	sched, err := retentionService.StartRetentionScheduler()
	if err != nil {
		log.Fatal("failed to start scheduler:", err)
	}

	if geocoderURL := os.Getenv("GEOCODER_URL"); geocoderURL != "" {
		rps, err := strconv.ParseFloat(getEnv("GEOCODER_RPS", "1"), 64)
		if err != nil {
			log.Fatal("GEOCODER_RPS must be a number:", err)
		}
		workers.NewGeocodeWorker(db, geocoderURL, rps).Start(ctx)
	} else {
		log.Println("⚠️  GEOCODER_URL not set, gyms without coordinates stay unknown-distance")
	}

	app := fiber.New(fiber.Config{
		BodyLimit:    utils.MaxImageBytes + 1024*1024,
		UnescapePath: true,
	})

	allowedOrigins := strings.Split(getEnv("ALLOWED_ORIGINS", "http://localhost:5173"), ",")
	for i, origin := range allowedOrigins {
		allowedOrigins[i] = strings.TrimSpace(origin)
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Join(allowedOrigins, ","),
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS,PATCH",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true, // session cookie
		MaxAge:           86400,
	}))

	app.Get("/healthz", func(c *fiber.Ctx) error {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(c.UserContext())
		}
		if err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "db unavailable"})
		}
		return c.JSON(fiber.Map{"status": "ok"})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	public := app.Group("/api/public")
	secured := app.Group("/api/s",
		middleware.UserContextMiddleware(cookieName, userService),
		middleware.PageViewMiddleware(activityService),
	)
	admin := app.Group("/api/admin", middleware.AdminAuthMiddleware(adminToken))

	handlers.SetupUserRoutes(public, secured, admin, userService)
	handlers.SetupLogRoutes(secured, logService, announcementService)
	handlers.SetupGymRoutes(secured, admin, gymService, scheduleService)
	handlers.SetupConnectionRoutes(secured, admin, connectionService, analyticsService)

	// Mobile web client bundle
	if err := os.MkdirAll("./public/app", os.ModePerm); err != nil {
		log.Fatal("failed to ensure public app dir:", err)
	}
	app.Use("/", filesystem.New(filesystem.Config{
		Root:         http.Dir("./public/app"),
		Index:        "index.html",
		MaxAge:       3600,
		NotFoundFile: "index.html",
	}))

	port := getEnv("PORT", "5300")
	go func() {
		if err := app.Listen(":" + port); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	log.Printf("✅ Server running on http://localhost:%s", port)
	log.Printf("✅ Civil timezone: %s (today is %s)", loc, clock.Today())
	log.Printf("✅ CORS configured for origins: %s", strings.Join(allowedOrigins, ","))

	<-ctx.Done()
	log.Println("Shutting down server...")

	if err := sched.Shutdown(); err != nil {
		log.Printf("Scheduler shutdown error: %v", err)
	}
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}
}
