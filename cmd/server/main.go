package main // Entry point package

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/driving-licence-admin/internal/config"
	"github.com/iliyamo/driving-licence-admin/internal/database"
	"github.com/iliyamo/driving-licence-admin/internal/handler"
	"github.com/iliyamo/driving-licence-admin/internal/middleware"
	"github.com/iliyamo/driving-licence-admin/internal/queue"
	"github.com/iliyamo/driving-licence-admin/internal/repository"
	"github.com/iliyamo/driving-licence-admin/internal/router"
	"github.com/iliyamo/driving-licence-admin/internal/service"
)

func main() {
	_ = godotenv.Load() // .env is optional; real deployments set the environment directly
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database connect failed: %v", err)
	}

	// Bring the schema to shape before anything touches the store.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := database.InitSchema(ctx, db); err != nil {
		cancel()
		log.Fatalf("schema init failed: %v", err)
	}
	cancel()

	store := repository.NewStore(db)
	apps := repository.NewApplicationRepo(store)
	users := repository.NewUserRepo(store)
	categories := repository.NewCategoryRepo(store)
	certificates := repository.NewCertificateRepo(store)
	sessions := repository.NewSessionRepo(store)

	// Response cache and admin guard both degrade to pass-throughs
	// when Redis or the key hash are not configured.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable; response cache disabled")
	}
	cache := middleware.ResponseCache(config.LoadCacheConfig(), rdb)
	adminKey := middleware.AdminKey(cfg.AdminKeyHash)
	identity := middleware.Identity(cfg.JWTSecret)

	e := echo.New()
	router.RegisterRoutes(e)
	router.RegisterApplications(e, handler.NewApplicationHandler(apps), cache, adminKey)
	router.RegisterEntities(e, handler.NewUserHandler(users), handler.NewCategoryHandler(categories),
		handler.NewCertificateHandler(certificates), adminKey)
	router.RegisterSessions(e, handler.NewSessionHandler(sessions), identity, adminKey)

	// Background collaborators: the broker consumer writing the audit
	// log and the hourly session reclaim.
	go func() {
		if err := queue.StartStatusConsumer(); err != nil {
			log.Printf("status consumer stopped: %v", err)
		}
	}()
	cleaner := service.StartSessionCleaner(sessions)
	defer cleaner.Stop()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
