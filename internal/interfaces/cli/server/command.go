package server

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	bridgeusecases "lunaspay/internal/application/bridge/usecases"
	merchantusecases "lunaspay/internal/application/merchant/usecases"
	paymentusecases "lunaspay/internal/application/payment/usecases"
	qrusecases "lunaspay/internal/application/qr/usecases"
	domainbridge "lunaspay/internal/domain/bridge"
	"lunaspay/internal/infrastructure/auth"
	infrabridge "lunaspay/internal/infrastructure/bridge"
	"lunaspay/internal/infrastructure/cache"
	"lunaspay/internal/infrastructure/config"
	"lunaspay/internal/infrastructure/database"
	"lunaspay/internal/infrastructure/disbursement"
	"lunaspay/internal/infrastructure/migration"
	"lunaspay/internal/infrastructure/repository"
	"lunaspay/internal/infrastructure/signing"
	httpRouter "lunaspay/internal/interfaces/http"
	"lunaspay/internal/interfaces/http/handlers"
	"lunaspay/internal/interfaces/http/middleware"
	"lunaspay/internal/shared/biztime"
	"lunaspay/internal/shared/db"
	"lunaspay/internal/shared/logger"
)

var (
	env         string
	autoMigrate bool
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "server",
		Short: "Start the HTTP server",
		Long:  `Start the LunasPay HTTP server with the specified configuration.`,
		RunE:  run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")
	cmd.Flags().BoolVar(&autoMigrate, "auto-migrate", false, "Automatically run database migrations on startup (not recommended for production)")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	if envVar := os.Getenv("ENV"); envVar != "" {
		env = envVar
	}

	cfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	cfg.Server.Mode = mapEnvToGinMode(env)

	if err := logger.Init(&cfg.Logger); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.Sync()

	log := logger.NewLogger()
	log.Infow("starting server", "environment", env, "auto_migrate", autoMigrate)

	if err := biztime.Init(cfg.Server.Timezone); err != nil {
		return fmt.Errorf("failed to initialize business timezone: %w", err)
	}

	gin.SetMode(cfg.Server.Mode)
	gin.DefaultWriter = io.Discard
	gin.DebugPrintRouteFunc = func(httpMethod, absolutePath, handlerName string, nuHandlers int) {}

	if err := database.Init(&cfg.Database); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer database.Close()

	if err := handleMigrations(env, log); err != nil {
		return fmt.Errorf("migration handling failed: %w", err)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.GetAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	pingCtx, cancelPing := context.WithTimeout(context.Background(), 5*time.Second)
	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		cancelPing()
		return fmt.Errorf("failed to connect to redis: %w", err)
	}
	cancelPing()
	defer redisClient.Close()

	policy, err := paymentusecases.ParseDisbursementPolicy(cfg.Payment.UnmappedMerchantPolicy)
	if err != nil {
		return fmt.Errorf("invalid unmapped merchant policy: %w", err)
	}
	log.Infow("unmapped merchant policy active", "policy", string(policy))

	destChain, err := domainbridge.NewChainID(cfg.Bridge.DestinationChainID)
	if err != nil {
		return fmt.Errorf("invalid destination chain id: %w", err)
	}

	attemptRepo := repository.NewPaymentAttemptRepository(database.Get())
	registrationRepo := repository.NewMerchantRegistrationRepository(database.Get())

	resolver := merchantusecases.NewResolveMerchantUseCase(registrationRepo, log)
	txManager := db.NewTransactionManager(database.Get())
	registerMerchantUC := merchantusecases.NewRegisterMerchantUseCase(registrationRepo, txManager, log)
	listMerchantsUC := merchantusecases.NewListMerchantsUseCase(registrationRepo)
	setMerchantStatusUC := merchantusecases.NewSetMerchantStatusUseCase(registrationRepo, log)
	confirmLock := cache.NewConfirmLockStore(redisClient, "payment:confirm:",
		time.Duration(cfg.Payment.ConfirmLockTTLSeconds)*time.Second)
	gateway := disbursement.NewHTTPGateway(cfg.Disbursement.BaseURL, cfg.Disbursement.APIKey,
		time.Duration(cfg.Disbursement.TimeoutSeconds)*time.Second, log)

	signer := signing.NewHMACSigner(cfg.Bridge.SigningSecret)
	relayerClient := infrabridge.NewHTTPRelayerClient(cfg.Bridge.RelayerBaseURL, cfg.Bridge.SubmitPath,
		signer, time.Duration(cfg.Bridge.TimeoutSeconds)*time.Second, log)

	decodeQRUC := qrusecases.NewDecodeQRUseCase(log)
	createPaymentUC := paymentusecases.NewCreatePaymentUseCase(attemptRepo,
		int64(cfg.Payment.ServiceFeeBasisPoints), log)
	confirmPaymentUC := paymentusecases.NewConfirmPaymentUseCase(attemptRepo, resolver,
		gateway, confirmLock, policy, log)
	getPaymentUC := paymentusecases.NewGetPaymentUseCase(attemptRepo)
	listPaymentsUC := paymentusecases.NewListPaymentsUseCase(attemptRepo)
	buildBridgeUC := bridgeusecases.NewBuildBridgeRequestUseCase(signer, destChain,
		cfg.Bridge.MinTransferAmount, cfg.Bridge.SubmitPath, log)
	submitBridgeUC := bridgeusecases.NewSubmitBridgeRequestUseCase(buildBridgeUC, relayerClient, log)

	jwtService := auth.NewJWTService(cfg.Auth.JWT.Secret, cfg.Auth.JWT.AccessExpMinutes)
	authMiddleware := middleware.NewAuthMiddleware(jwtService, log)

	router := httpRouter.NewRouter(
		handlers.NewQRHandler(decodeQRUC, log),
		handlers.NewPaymentHandler(createPaymentUC, confirmPaymentUC, getPaymentUC, listPaymentsUC, log),
		handlers.NewBridgeHandler(submitBridgeUC, log),
		handlers.NewMerchantHandler(registerMerchantUC, listMerchantsUC, setMerchantStatusUC, log),
		authMiddleware,
		log,
	)
	router.SetupRoutes(cfg)

	srv := &http.Server{
		Addr:         cfg.Server.GetAddr(),
		Handler:      router.Engine(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Infow("server starting", "address", cfg.Server.GetAddr(), "mode", cfg.Server.Mode)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalw("failed to start server", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("server forced to shutdown", "error", err)
		return err
	}

	log.Info("server exited gracefully")
	return nil
}

func handleMigrations(environment string, log logger.Interface) error {
	if autoMigrate {
		if environment == "production" {
			log.Warn("auto-migration is enabled in production environment - this is not recommended!")
		}

		log.Info("running auto-migration")
		manager := migration.NewManager(environment)
		if err := manager.Migrate(database.Get(), migration.AutoMigrateModels()...); err != nil {
			return fmt.Errorf("auto-migration failed: %w", err)
		}
		log.Info("auto-migration completed successfully")
		return nil
	}

	scriptsPath, err := filepath.Abs("./internal/infrastructure/migration/scripts")
	if err != nil {
		log.Warnw("failed to resolve migration scripts path", "error", err)
		return nil
	}

	strategy := migration.NewGolangMigrateStrategy(scriptsPath)
	if migrateStrategy, ok := strategy.(*migration.GolangMigrateStrategy); ok {
		version, dirty, err := migrateStrategy.GetVersion(database.Get())
		if err != nil {
			log.Warnw("failed to check migration status", "error", err)
		} else {
			log.Infow("current migration version", "version", version, "dirty", dirty)
		}
	}

	return nil
}

func mapEnvToGinMode(environment string) string {
	switch environment {
	case "production", "prod", "release":
		return "release"
	case "test", "testing":
		return "test"
	default:
		return "debug"
	}
}
