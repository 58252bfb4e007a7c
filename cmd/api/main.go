package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "go.uber.org/automaxprocs"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"products-api/internal/core/auth"
	"products-api/internal/core/config"
	"products-api/internal/core/database"
	"products-api/internal/core/logger"
	"products-api/internal/core/server"
	"products-api/internal/repo"
	"products-api/internal/service"
	"products-api/internal/transport/http/handler"
	"products-api/internal/transport/http/router"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load(os.Getenv("CONFIG_PATH"))
	log, cleanup := logger.New(cfg.Log.Level, cfg.Log.JSON)
	defer cleanup()

	productDB := mustOpenDB(cfg.DB, log)
	log.Info("product store connected", zap.String("driver", cfg.DB.Driver))

	authDB := productDB
	if cfg.AuthDB.DSN != cfg.DB.DSN || cfg.AuthDB.Driver != cfg.DB.Driver {
		authDB = mustOpenDB(cfg.AuthDB, log)
		log.Info("identity store connected", zap.String("driver", cfg.AuthDB.Driver))
	}

	if cfg.DB.AutoMigrate {
		if err := database.MigrateProducts(productDB); err != nil {
			log.Fatal("product automigrate failed", zap.Error(err))
		}
		if err := database.MigrateIdentity(authDB); err != nil {
			log.Fatal("identity automigrate failed", zap.Error(err))
		}
		log.Info("automigrate done")
	}

	jwter := &auth.JWTer{
		Secret: []byte(cfg.JWT.Secret),
		Issuer: cfg.JWT.Issuer,
		TTL:    time.Duration(cfg.JWT.ExpiryInMinutes) * time.Minute,
	}

	productSvc := service.NewProductService(repo.NewProductRepo(productDB))
	userSvc := service.NewUserService(repo.NewUserRepo(authDB), jwter, cfg.Password)

	r := router.NewAPIEngine(log, jwter,
		handler.NewProductHandler(productSvc),
		handler.NewUserHandler(userSvc),
	)

	addr := server.Addr(cfg.App.HTTP.Host, cfg.App.HTTP.Port)
	srv := server.BuildServer(
		addr, r,
		time.Duration(cfg.App.HTTP.ReadTimeoutSec)*time.Second,
		time.Duration(cfg.App.HTTP.WriteTimeoutSec)*time.Second,
		time.Duration(cfg.App.HTTP.IdleTimeoutSec)*time.Second,
	)

	host4human := cfg.App.HTTP.Host
	if host4human == "" || host4human == "0.0.0.0" {
		host4human = "127.0.0.1"
	}
	baseURL := "http://" + host4human + ":" + fmt.Sprint(cfg.App.HTTP.Port)
	log.Info("products api starting",
		zap.String("addr", addr),
		zap.String("open", baseURL),
		zap.String("health", baseURL+"/health"),
		zap.String("api", baseURL+"/api"),
	)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("products api start FAILED", zap.Error(err))
		}
	}()
	log.Info("products api started SUCCESS")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
	log.Info("products api stopped gracefully")
}

func mustOpenDB(cfg config.DB, l *zap.Logger) *gorm.DB {
	db, err := database.NewGorm(database.Opts{
		Driver:             cfg.Driver,
		DSN:                cfg.DSN,
		MaxOpenConns:       cfg.MaxOpenConns,
		MaxIdleConns:       cfg.MaxIdleConns,
		ConnMaxLifetimeMin: cfg.ConnMaxLifetimeMin,
		LogLevel:           cfg.LogLevel,
	})
	if err != nil {
		l.Fatal("db open", zap.Error(err))
	}
	return db
}
