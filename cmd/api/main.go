package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/cmlabs-hris/hris-schedule-engine/internal/config"
	"github.com/cmlabs-hris/hris-schedule-engine/internal/domain/shift"
	appHTTP "github.com/cmlabs-hris/hris-schedule-engine/internal/handler/http"
	"github.com/cmlabs-hris/hris-schedule-engine/internal/pkg/cache"
	"github.com/cmlabs-hris/hris-schedule-engine/internal/pkg/calendar"
	"github.com/cmlabs-hris/hris-schedule-engine/internal/pkg/cron"
	"github.com/cmlabs-hris/hris-schedule-engine/internal/pkg/database"
	"github.com/cmlabs-hris/hris-schedule-engine/internal/pkg/i18n"
	"github.com/cmlabs-hris/hris-schedule-engine/internal/pkg/jwt"
	"github.com/cmlabs-hris/hris-schedule-engine/internal/repository/postgresql"
	scheduleService "github.com/cmlabs-hris/hris-schedule-engine/internal/service/schedule"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.App.LogLevel)); err != nil {
		logLevel = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), database.PoolOptions{
		MaxConns: cfg.Database.MaxConns,
		MinConns: cfg.Database.MinConns,
	})
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	scheduler := cron.NewScheduler()

	var actionableCache shift.ActionableShiftCache
	switch cfg.Cache.Driver {
	case config.CacheDriverMemory:
		memoryCache := cache.NewMemoryCache(cfg.Cache.TTL)
		cron.NewCacheJobs(memoryCache, 0).RegisterJobs(scheduler)
		actionableCache = memoryCache
	case config.CacheDriverRedis:
		redisCache, err := cache.NewRedisCache(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cfg.Cache.TTL)
		if err != nil {
			log.Fatal("Failed to initialize redis cache:", err)
		}
		defer redisCache.Close()
		actionableCache = redisCache
	default:
		log.Fatal("Unsupported cache driver: ", cfg.Cache.Driver)
	}

	translator, err := i18n.New("en")
	if err != nil {
		log.Fatal("Failed to load translations:", err)
	}

	shiftRepo := postgresql.NewShiftRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	scheduleSvc := scheduleService.NewScheduleService(
		shiftRepo,
		actionableCache,
		translator,
		scheduleService.Options{
			DefaultLocation: calendar.LoadLocation(cfg.Schedule.Timezone),
			WeekendDays:     cfg.Schedule.WeekendDays,
			MaxRangeDays:    cfg.Schedule.MaxRangeDays,
		},
	)

	scheduleHandler := appHTTP.NewScheduleHandler(scheduleSvc)

	router := appHTTP.NewRouter(JWTService, translator, scheduleHandler, appHTTP.RouterOptions{
		AppEnv:         cfg.App.Env,
		AllowedOrigins: cfg.App.CORSAllowedOrigins,
		LogLevel:       logLevel,
	})

	if err := scheduler.Start(ctx); err != nil {
		log.Fatal("Failed to start cron scheduler:", err)
	}
	defer scheduler.Stop()

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}
	}()

	slog.Info("Server running", "addr", "http://localhost"+server.Addr, "cache_driver", cfg.Cache.Driver)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server error", "error", err)
	}
}
