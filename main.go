package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aditya-1310/Backend-Dynamic-Interface-Compiler/config"
	"github.com/aditya-1310/Backend-Dynamic-Interface-Compiler/internal/api"
	"github.com/aditya-1310/Backend-Dynamic-Interface-Compiler/internal/database"
	"github.com/aditya-1310/Backend-Dynamic-Interface-Compiler/internal/llm"
	"github.com/aditya-1310/Backend-Dynamic-Interface-Compiler/internal/services"
	"github.com/aditya-1310/Backend-Dynamic-Interface-Compiler/internal/utils"
	"github.com/aditya-1310/Backend-Dynamic-Interface-Compiler/pkg/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// @title Dynamic Interface Compiler API
// @version 1.0
// @description Stores UI schemas and generates them from natural language prompts.

// @host localhost:3001
// @BasePath /

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	if err := logger.InitLogger(&logger.Config{
		Level:       cfg.LogLevel,
		Filename:    cfg.LogFilename,
		MaxSize:     cfg.LogMaxSize,
		MaxBackups:  cfg.LogMaxBackups,
		MaxAge:      cfg.LogMaxAge,
		Compress:    cfg.LogCompress,
		Development: cfg.IsDevelopment(),
	}); err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync()

	if cfg.IsDevelopment() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.StoreTimeout)
	store, closeStore, err := openSchemaStore(ctx, cfg)
	cancel()
	if err != nil {
		logger.Log.Fatal("failed to open schema store", zap.Error(err))
	}
	services.InitSchemaStore(store, cfg.StoreTimeout)

	ctx, cancel = context.WithTimeout(context.Background(), cfg.StoreTimeout)
	err = database.ConnectRedis(ctx, cfg)
	cancel()
	if err != nil {
		logger.Log.Fatal("failed to connect redis", zap.String("addr", cfg.RedisFullAddr()), zap.Error(err))
	}
	if cfg.RedisEnabled() {
		logger.Log.Info("schema cache enabled", zap.String("addr", cfg.RedisFullAddr()))
	}

	client := newLLMClient(cfg)
	services.InitGenerator(client, cfg.GenerationTimeout)
	logger.Log.Info("LLM provider configured", zap.String("provider", client.Name()))

	srv := &http.Server{
		Addr:    cfg.Addr(),
		Handler: api.NewRouter(cfg),
	}

	go func() {
		logger.Log.Info("server listening", zap.String("addr", srv.Addr), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Fatal("failed to run server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("server forced to shutdown", zap.Error(err))
	}
	if err := closeStore(shutdownCtx); err != nil {
		logger.Log.Error("failed to close schema store", zap.Error(err))
	}
	if err := database.CloseRedis(); err != nil {
		logger.Log.Error("failed to close redis", zap.Error(err))
	}
}

// openSchemaStore connects the backend named by DATABASE_URL and creates
// its indexes before any request is served.
func openSchemaStore(ctx context.Context, cfg *config.Config) (services.SchemaStore, func(context.Context) error, error) {
	driver, err := database.DriverFor(cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}

	var (
		store     services.SchemaStore
		closeFunc func(context.Context) error
	)
	switch driver {
	case database.DriverMongo:
		db, err := database.ConnectMongo(ctx, cfg.DatabaseURL, cfg.MongoDatabase)
		if err != nil {
			return nil, nil, err
		}
		store = services.NewMongoSchemaStore(db)
		closeFunc = database.DisconnectMongo
	default:
		db, err := database.Connect(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		store = services.NewGormSchemaStore(db)
		closeFunc = func(context.Context) error { return database.Close() }
	}

	if err := store.Migrate(ctx); err != nil {
		_ = closeFunc(ctx)
		return nil, nil, err
	}

	logger.Log.Info("schema store ready", zap.String("driver", string(driver)))
	return store, closeFunc, nil
}

func newLLMClient(cfg *config.Config) llm.Client {
	httpClient := utils.NewHTTPClient(cfg.GenerationTimeout)

	switch cfg.LLMProvider {
	case config.LLMProviderOpenAI:
		if cfg.OpenAIAPIKey == "" {
			logger.Log.Warn("OPENAI_API_KEY is not set; generation requests will fail")
		}
		opts := []llm.Option{llm.WithModel(cfg.OpenAIModel), llm.WithHTTPClient(httpClient)}
		if cfg.OpenAIBaseURL != "" {
			opts = append(opts, llm.WithBaseURL(cfg.OpenAIBaseURL))
		}
		return llm.NewOpenAI(cfg.OpenAIAPIKey, opts...)
	default:
		if cfg.GeminiAPIKey == "" {
			logger.Log.Warn("GEMINI_API_KEY is not set; generation requests will fail")
		}
		return llm.NewGemini(cfg.GeminiAPIKey, llm.WithModel(cfg.GeminiModel), llm.WithHTTPClient(httpClient))
	}
}
