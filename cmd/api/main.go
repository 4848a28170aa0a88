package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"

	_ "github.com/redmonkez12/wardrobe-api/docs" // Swagger docs (generated)
	"github.com/redmonkez12/wardrobe-api/internal/auth"
	"github.com/redmonkez12/wardrobe-api/internal/closet"
	"github.com/redmonkez12/wardrobe-api/internal/config"
	"github.com/redmonkez12/wardrobe-api/internal/database"
	"github.com/redmonkez12/wardrobe-api/internal/email"
	"github.com/redmonkez12/wardrobe-api/internal/gate"
	httpServer "github.com/redmonkez12/wardrobe-api/internal/http"
	"github.com/redmonkez12/wardrobe-api/internal/logging"
	"github.com/redmonkez12/wardrobe-api/internal/onboarding"
	"github.com/redmonkez12/wardrobe-api/internal/ratelimit"
	"github.com/redmonkez12/wardrobe-api/internal/user"
	"github.com/redmonkez12/wardrobe-api/internal/vision"
)

// @title           Wardrobe API
// @version         1.0
// @description     Backend for the wardrobe app: accounts, the onboarding gate, the closet and AI clothing analysis.

// @contact.name   API Support
// @contact.email  support@example.com

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the access token.

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		log.Fatalf("Application error: %v", err)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger := logging.NewLogger(cfg.Server.IsDevelopment())
	logger.Info("starting application",
		"env", cfg.Server.Env,
		"port", cfg.Server.Port,
		"token_strategy", cfg.Auth.TokenStrategy,
		"gate_cache", cfg.Gate.CacheBackend,
	)

	if cfg.Database.AutoMigrate {
		if err := database.MigrateUp(cfg.Database.URL()); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
		logger.Info("migrations applied")
	}

	db, err := database.Open(cfg.Database.ConnectionString())
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	redisClient, err := initRedis(ctx, cfg.Redis)
	if err != nil {
		return fmt.Errorf("failed to initialize Redis: %w", err)
	}
	defer redisClient.Close()

	// Repositories
	userRepo := user.NewRepository(db)
	refreshTokenRepo := auth.NewRedisRepository(redisClient)
	passwordResetRepo := auth.NewPasswordResetRepository(redisClient)
	profileRepo := onboarding.NewRepository(db)
	closetRepo := closet.NewRepository(db)

	tokenService, err := auth.NewTokenService(cfg.Auth.TokenStrategy, cfg.Auth.TokenKey)
	if err != nil {
		return fmt.Errorf("failed to initialize token service: %w", err)
	}

	emailService, err := email.NewService(
		cfg.Email.SMTPHost,
		cfg.Email.SMTPPort,
		cfg.Email.SMTPUser,
		cfg.Email.SMTPPassword,
		cfg.Email.FrontendURL,
	)
	if err != nil {
		return fmt.Errorf("failed to initialize email service: %w", err)
	}
	if cfg.Email.SMTPHost == "" {
		logger.Warn("SMTP_HOST not set, emails will only be logged")
	}

	authService := auth.NewService(
		userRepo,
		refreshTokenRepo,
		passwordResetRepo,
		tokenService,
		emailService,
		logger,
		cfg.Auth.AccessTokenDuration,
		cfg.Auth.RefreshTokenDuration,
	)

	// Gate
	var cache gate.CompletionCache = gate.NewRedisCache(redisClient)
	if cfg.Gate.CacheBackend == "memory" {
		cache = gate.NewMemoryCache()
	}
	policy, err := gate.ParseFailurePolicy(cfg.Gate.FailurePolicy)
	if err != nil {
		return err
	}
	onboardingService := onboarding.NewService(profileRepo, cache)
	sequencer := gate.NewSequencer(onboardingService, cache,
		gate.WithFailurePolicy(policy),
		gate.WithLookupTimeout(cfg.Gate.LookupTimeout),
	)

	model, err := vision.NewGemini(ctx, cfg.Vision.APIKey, cfg.Vision.AnalysisModel, cfg.Vision.ImageModel)
	if err != nil {
		return fmt.Errorf("failed to initialize vision model: %w", err)
	}
	if cfg.Vision.APIKey == "" {
		logger.Warn("GEMINI_API_KEY not set, AI endpoints will fail")
	}

	router := httpServer.NewRouter(cfg, httpServer.Handlers{
		Auth: auth.NewHandler(
			authService,
			ratelimit.NewLimiter(redisClient),
			!cfg.Server.IsDevelopment(), // isProduction
			cfg.Auth.AccessTokenDuration,
			cfg.Auth.RefreshTokenDuration,
		),
		AuthMiddleware: auth.NewMiddleware(tokenService),
		Gate:           gate.NewHandler(sequencer, auth.NewSessions(userRepo)),
		Onboarding:     onboarding.NewHandler(onboardingService),
		Closet:         closet.NewHandler(closet.NewService(closetRepo)),
		Vision:         vision.NewHandler(model),
	}, logger)

	server := httpServer.NewServer(httpServer.ServerOptions{
		Addr:            ":" + cfg.Server.Port,
		ReadTimeout:     cfg.Server.ReadTimeout,
		WriteTimeout:    cfg.Server.WriteTimeout,
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	}, router, logger)

	if err := server.Run(ctx); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// initRedis initializes the Redis connection and returns a Redis client
func initRedis(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping Redis: %w", err)
	}

	return client, nil
}
