package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
	"github.com/zain-cs/Social-Network-API/internal/graph"
	"github.com/zain-cs/Social-Network-API/internal/handler"
	"github.com/zain-cs/Social-Network-API/internal/rabbitmq"
	"github.com/zain-cs/Social-Network-API/internal/repository"
	"github.com/zain-cs/Social-Network-API/internal/service"
	"go.uber.org/zap"
)

func main() {
	ctx := context.Background()

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	if err := initEnv(); err != nil {
		logger.Sugar().Warnf("failed to load environment variables: %s", err.Error())
	}

	if err := initConfig(); err != nil {
		logger.Sugar().Fatalf("failed to initialize yaml config: %s", err.Error())
	}

	db, err := pgxpool.New(ctx, os.Getenv("POSTGRES_DSN"))
	if err != nil {
		logger.Sugar().Fatalf("failed to create postgres pool: %s", err.Error())
	}
	defer db.Close()

	if err := db.Ping(ctx); err != nil {
		logger.Sugar().Fatalf("failed to ping postgres: %s", err.Error())
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     os.Getenv("REDIS_ADDR"),
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})
	defer rdb.Close()

	mq, err := rabbitmq.Dial(os.Getenv("RABBITMQ_URL"))
	if err != nil {
		logger.Sugar().Fatalf("failed to connect to rabbitmq: %s", err.Error())
	}
	defer mq.Close()

	followGraph := graph.New(
		graph.WithTraversalBudget(viper.GetInt("graph.traversal_budget")),
	)

	repo := repository.New(db, rdb)
	services := service.New(logger, repo, followGraph, mq)
	handlers := handler.New(services)

	// The graph must mirror the followers table before we accept traffic.
	stats, err := services.Graph.LoadGraph(ctx)
	if err != nil {
		logger.Sugar().Fatalf("failed to load follow graph from postgres: %s", err.Error())
	}
	logger.Sugar().Infof(
		"follow graph loaded: %d users, %d connections, %.2f average following",
		stats.TotalUsers, stats.TotalConnections, stats.AverageFollowing,
	)

	srv := &http.Server{
		Addr:    viper.GetString("app.addr"),
		Handler: handlers.InitRoutes(),
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Sugar().Fatalf("failed to run http server: %s", err.Error())
		}
	}()
	logger.Sugar().Infof("social graph service is running on %s", srv.Addr)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(ctx, time.Second*10)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Sugar().Errorf("failed to shutdown http server gracefully: %s", err.Error())
	}
}

func initEnv() error {
	return godotenv.Load(".env")
}

func initConfig() error {
	viper.AddConfigPath("./")
	viper.SetConfigType("yaml")
	viper.SetConfigName("app")
	return viper.ReadInConfig()
}
