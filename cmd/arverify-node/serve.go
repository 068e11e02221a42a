package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"arverify-node/internal/common/config"
	"arverify-node/internal/common/logger"
	"arverify-node/internal/common/middleware"
	ledgerService "arverify-node/internal/features/ledger/service"
	systemHttp "arverify-node/internal/features/system/delivery/http"
	verificationHttp "arverify-node/internal/features/verification/delivery/http"
	verificationRedis "arverify-node/internal/features/verification/repository/redis"
	verificationService "arverify-node/internal/features/verification/service"
	"arverify-node/internal/platform/arweave"
	"arverify-node/internal/platform/google"
	"arverify-node/internal/platform/redis"
	"arverify-node/internal/version"
)

var errInsufficientStake = errors.New("insufficient stake")

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Check stake, announce the node and serve the verification API",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger.Init("arverify-node", cfg.Debug, cfg.LogFormat)

	raw, err := cfg.KeyfileJSON()
	if err != nil {
		return err
	}
	wallet, err := arweave.LoadWallet(raw)
	if err != nil {
		return fmt.Errorf("load wallet: %w", err)
	}
	logger.Info().
		Str("version", version.Version).
		Str("address", wallet.Address()).
		Str("fee_winston", cfg.FeeWinston().String()).
		Bool("debug", cfg.Debug).
		Msg("Starting ArVerify node")

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	gateway := arweave.NewClient(cfg.Arweave.Gateway, cfg.ExternalTimeout())
	signer := ledgerService.WalletSigner(wallet)

	stakeCtx, cancel := context.WithTimeout(ctx, 2*cfg.ExternalTimeout())
	stake, err := ledgerService.NewStakeCheck(
		gateway, signer, cfg.Verification.AppName, cfg.Server.Endpoint,
		cfg.MinStakeWinston(), logger.Component("stake"),
	).Run(stakeCtx)
	cancel()
	if err != nil {
		return fmt.Errorf("stake check: %w", err)
	}
	if !stake.Sufficient {
		return errInsufficientStake
	}

	var registry verificationService.Registry = ledgerService.NewRegistry(
		gateway, cfg.Verification.AppName, wallet.Address(), cfg.Arweave.TrustedNodes,
	)
	var locker verificationService.AddressLocker = verificationService.NopLocker{}
	if cfg.Redis.Addr != "" {
		client, err := redis.Open(ctx, redis.Options{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		if err != nil {
			return err
		}
		defer client.Close()
		locker = verificationRedis.NewLocker(client, cfg.LockTTL(), logger.Component("locker"))
		logger.Info().Str("addr", cfg.Redis.Addr).Dur("ttl", cfg.LockTTL()).Msg("Per-address lock enabled")

		if ttl := cfg.CacheTTL(); ttl > 0 {
			registry = verificationRedis.NewCachedRegistry(registry, client, ttl, logger.Component("registry_cache"))
		}
	}

	provider := google.NewClient(google.Config{
		ClientID:     cfg.Google.ClientID,
		ClientSecret: cfg.Google.ClientSecret,
		RedirectURL:  cfg.CallbackURL(),
		TokenInfoURL: cfg.Google.TokenInfoURL,
		HTTPClient:   &http.Client{Timeout: cfg.ExternalTimeout()},
	})

	verificationSvc := verificationService.NewVerificationService(
		registry,
		ledgerService.NewTipGateway(gateway, logger.Component("tips")),
		provider,
		ledgerService.NewIssuer(gateway, signer, cfg.Verification.AppName, logger.Component("issuer")),
		locker,
		verificationService.Options{
			WalletAddress: wallet.Address(),
			Fee:           cfg.FeeWinston(),
			CallTimeout:   cfg.ExternalTimeout(),
		},
		logger.Component("verification"),
	)

	router := newRouter(cfg, wallet.Address(), verificationSvc)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 4 * cfg.ExternalTimeout(),
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Int("port", cfg.Server.Port).Msg("Starting HTTP server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info().Msg("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("Server forced to shutdown")
	}
	logger.Info().Msg("Server exited")
	return nil
}

func newRouter(cfg *config.Config, address string, svc verificationService.VerificationService) *gin.Engine {
	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	httpLogger := logger.Component("http")

	router := gin.New()
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(httpLogger))
	router.Use(middleware.Recovery(httpLogger))

	corsConfig := cors.DefaultConfig()
	if cfg.Server.Origin == "*" {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = []string{cfg.Server.Origin}
	}
	corsConfig.AllowMethods = []string{"GET", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Content-Type", "Accept", "X-Request-ID"}
	router.Use(cors.New(corsConfig))

	router.NoRoute(middleware.NotFound(httpLogger))

	systemHttp.NewSystemHandler(address).RegisterRoutes(router)
	verificationHttp.NewVerificationHandler(svc, logger.Component("verification_http")).RegisterRoutes(router)
	return router
}
