package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/openboard/board-api/docs"
	"github.com/openboard/board-api/internal/api"
	"github.com/openboard/board-api/internal/infrastructure/config"
	"github.com/openboard/board-api/internal/infrastructure/db/mysql"
	redisdb "github.com/openboard/board-api/internal/infrastructure/db/redis"
	"github.com/openboard/board-api/pkg/logger"
)

// @title           Board API
// @version         1.0
// @description     Discussion board backend: users, articles, comments.
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := mysql.Connect(ctx, mysql.Config{
		User:     cfg.MySQL.User,
		Password: cfg.MySQL.Password,
		Host:     cfg.MySQL.Host,
		Port:     cfg.MySQL.Port,
		Database: cfg.MySQL.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("connect mysql")
	}
	defer db.Close()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("connect redis")
	}
	defer rdb.Close()

	e, err := api.NewRouter(db, rdb, cfg, logger.Named("api"))
	if err != nil {
		log.Fatal().Err(err).Msg("build router")
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("starting http server")
		if err := e.Start(":" + cfg.Port); err != nil {
			log.Info().Err(err).Msg("http server stopped")
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown")
	}
}
