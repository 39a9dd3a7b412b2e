package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"devconnect/auth"
	"devconnect/config"
	"devconnect/database"
	"devconnect/handlers"
	"devconnect/lock"
	"devconnect/logger"
	"devconnect/middleware"
	"devconnect/repository"
	"devconnect/routes"
	"devconnect/service"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		// logger settings live in the config, so this one goes to stderr
		_, _ = os.Stderr.WriteString("❌ " + err.Error() + "\n")
		os.Exit(1)
	}

	log, err := logger.New(cfg.GinMode, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		_, _ = os.Stderr.WriteString("❌ can't initialize zap logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	log.Info("🚀 Starting DevConnect API...")

	// ===== STORE =====
	var store *repository.Store
	switch cfg.StoreDriver {
	case config.StoreMemory:
		log.Warn("⚠️ Using in-memory store, data is lost on restart")
		store = repository.NewMemoryStore()
	default:
		log.Info("🔌 Connecting to MongoDB...")
		mongoDB, err := connectWithRetry(cfg, log)
		if err != nil {
			log.Fatal("❌ Failed to connect to MongoDB", zap.Error(err))
		}
		defer func() {
			if err := mongoDB.Disconnect(); err != nil {
				log.Error("❌ MongoDB disconnect failed", zap.Error(err))
			}
		}()
		store = mongoDB.Store()
	}

	// ===== DOCUMENT LOCK =====
	var locker lock.Locker = lock.Nop{}
	switch cfg.DocumentLock {
	case config.LockLocal:
		locker = lock.NewLocal()
	case config.LockRedis:
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword})
		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := rdb.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			log.Fatal("❌ Redis connection failed", zap.Error(err))
		}
		defer func() { _ = rdb.Close() }()
		locker = lock.NewRedis(rdb, cfg.LockTTL)
	}
	log.Info("🔒 Document lock", zap.String("mode", cfg.DocumentLock))

	// ===== GIN MODE =====
	if cfg.IsRelease() {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}
	log.Info("⚙️ Gin mode", zap.String("mode", gin.Mode()))

	// ===== ROUTER =====
	tokens := auth.NewTokenService(cfg.SecretKey, cfg.TokenTTL)
	svc := service.New(service.Deps{
		Store:  store,
		Hasher: auth.NewHasher(cfg.BcryptCost),
		Tokens: tokens,
		Locker: locker,
		Log:    log,
	})

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	router := routes.SetupRouter(routes.Deps{
		Handler:        handlers.New(svc, cfg.RequestTimeout, log),
		Tokens:         tokens,
		Metrics:        middleware.NewMetrics(reg),
		Log:            log,
		AllowedOrigins: cfg.Origins(),
	})

	// ===== SERVER CONFIG =====
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("🌐 Server running", zap.String("port", cfg.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("❌ Server error", zap.Error(err))
		}
	}()

	// ===== GRACEFUL SHUTDOWN =====
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("🛑 Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("❌ Forced shutdown", zap.Error(err))
	}

	log.Info("👋 Server stopped gracefully")
}

func connectWithRetry(cfg *config.Config, log *zap.Logger) (*database.Mongo, error) {
	var lastErr error
	for i := 1; i <= 3; i++ {
		m, err := database.ConnectMongo(context.Background(), cfg.MongoURI, cfg.MongoDatabase, log)
		if err == nil {
			return m, nil
		}
		lastErr = err
		log.Warn("❌ MongoDB connection attempt failed", zap.Int("attempt", i), zap.Error(err))
		time.Sleep(2 * time.Second)
	}
	return nil, lastErr
}
