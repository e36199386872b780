package main

import (
	"context"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/cryptofolio/portfolio-service/internal/api"
	"github.com/cryptofolio/portfolio-service/internal/charts"
	"github.com/cryptofolio/portfolio-service/internal/coingecko"
	"github.com/cryptofolio/portfolio-service/internal/config"
	"github.com/cryptofolio/portfolio-service/internal/database"
	"github.com/cryptofolio/portfolio-service/internal/jobs"
	"github.com/cryptofolio/portfolio-service/internal/notify"
	"github.com/cryptofolio/portfolio-service/internal/portfolio"
	"github.com/cryptofolio/portfolio-service/internal/prices"
	"github.com/cryptofolio/portfolio-service/internal/recommendation"
	"github.com/cryptofolio/portfolio-service/internal/scheduler"
	"github.com/cryptofolio/portfolio-service/pkg/logger"
)

const migrationsPath = "db/migrations"

func main() {
	// .env is optional; real deployments use the environment directly
	_ = godotenv.Load()

	cfg := config.Load()

	log := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Pretty: cfg.Log.Pretty,
	})

	log.Info().Msg("starting portfolio service")

	db, err := database.New(cfg.Database.ConnectionString())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	if err := db.Migrate(migrationsPath); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	var priceCache prices.Cache
	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		priceCache = prices.NewRedisCache(redisClient, cfg.CoinGecko.CacheTTL, log)
		log.Info().Str("addr", cfg.Redis.Addr).Msg("using redis price cache")
	} else {
		priceCache = prices.NewMemoryCache(cfg.CoinGecko.CacheTTL)
	}

	provider := coingecko.NewClient(cfg.CoinGecko.BaseURL, cfg.CoinGecko.Timeout)
	priceSvc := prices.NewService(provider, priceCache, log)
	portfolioSvc := portfolio.NewService(db, priceSvc, log)
	recommender := recommendation.NewService(priceSvc, log)
	chartRenderer := charts.NewRenderer()

	publisher := notify.NewPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic)
	defer publisher.Close()

	sched := scheduler.New(log)
	dailyJob := jobs.NewDailyReportJob(db, portfolioSvc, chartRenderer, publisher, log)
	weeklyJob := jobs.NewWeeklyReportJob(db, portfolioSvc, chartRenderer, publisher, log)
	reminderJob := jobs.NewReminderJob(db, priceSvc, publisher, log)

	if err := sched.AddJob(cfg.Reports.DailySpec, dailyJob); err != nil {
		log.Fatal().Err(err).Msg("failed to register daily report job")
	}
	if err := sched.AddJob(cfg.Reports.WeeklySpec, weeklyJob); err != nil {
		log.Fatal().Err(err).Msg("failed to register weekly report job")
	}
	if err := sched.AddJob(cfg.Reports.ReminderSpec, reminderJob); err != nil {
		log.Fatal().Err(err).Msg("failed to register reminder sweep job")
	}
	sched.Start()
	defer sched.Stop()

	handler := api.NewHandler(db, portfolioSvc, recommender, priceSvc, chartRenderer, publisher, log)
	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, cfg.Server.Port),
		Handler:      api.SetupRoutes(handler),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("http server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("http server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
	}

	log.Info().Msg("stopped")
}
