package main

import (
	"checkout-service/internal/api"
	"checkout-service/internal/cache"
	"checkout-service/internal/config"
	"checkout-service/internal/notifier"
	"checkout-service/internal/repository"
	"checkout-service/internal/service"
	"checkout-service/migrations"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	_ "github.com/go-sql-driver/mysql"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"
)

func connectDB(cfg config.DBConfig) (*sql.DB, error) {
	if cfg.Driver == "sqlite" {
		if err := os.MkdirAll(filepath.Dir(cfg.SQLitePath), 0o755); err != nil {
			return nil, err
		}
	}

	var db *sql.DB
	var err error
	for i := 0; i < 10; i++ {
		db, err = sql.Open(cfg.Driver, cfg.DSN())
		if err == nil {
			err = db.Ping()
			if err == nil {
				log.Info().Str("driver", cfg.Driver).Msg("Connected to DB")
				return db, nil
			}
		}
		log.Warn().Err(err).Int("attempt", i+1).Str("driver", cfg.Driver).Msg("Failed to connect to DB, retrying")
		time.Sleep(3 * time.Second)
	}
	return nil, fmt.Errorf("failed to connect to %s DB after retries: %w", cfg.Driver, err)
}

func main() {
	cfg := config.Load()

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	db, err := connectDB(cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("Database unavailable")
	}
	defer db.Close()

	if err := migrations.AutoMigrate(3, db); err != nil {
		log.Fatal().Err(err).Msg("Failed to migrate tables")
	}

	deps := service.Deps{
		Orders:        repository.NewOrderRepository(db),
		Products:      repository.NewProductRepository(db),
		Notifications: repository.NewNotificationRepository(db),
		Dispatcher:    notifier.FromConfig(cfg.Notify, &http.Client{Timeout: cfg.Notify.Timeout}),
		Recipients:    cfg.Notify.Recipients,
		StoreName:     cfg.Notify.StoreName,
		CurrencySign:  cfg.Notify.CurrencySign,
	}

	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr: cfg.Redis.Addr,
		})
		defer rdb.Close()
		deps.NameCache = cache.NewProductNameCache(rdb, cfg.Redis.CacheTTL)
	}

	if kafkaWriter := config.NewKafkaWriter(cfg.Kafka); kafkaWriter != nil {
		defer kafkaWriter.Close()
		deps.Events = kafkaWriter
	}

	orderService := service.NewOrderService(deps)

	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowHeaders: []string{echo.HeaderAuthorization, echo.HeaderContentType, "x-client-info", "apikey"},
	}))

	if cfg.OwnerJWTSecret == "" {
		log.Warn().Msg("OWNER_JWT_SECRET not set, owner notification routes disabled")
	}
	api.RegisterRoutes(e, api.NewOrderHandler(orderService), api.NewOwnerHandler(orderService), api.RouteConfig{
		OwnerJWTSecret: cfg.OwnerJWTSecret,
		RateLimitRPS:   cfg.RateLimitRPS,
		RateLimitBurst: cfg.RateLimitBurst,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := e.Start(cfg.HTTPAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("HTTP server stopped")
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Graceful shutdown failed")
	}
}
