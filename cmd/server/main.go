package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/Anbarasu1710/projectflow-sub000/internal/application/dispatcher"
	"github.com/Anbarasu1710/projectflow-sub000/internal/application/port"
	"github.com/Anbarasu1710/projectflow-sub000/internal/application/resolver"
	"github.com/Anbarasu1710/projectflow-sub000/internal/application/service"
	"github.com/Anbarasu1710/projectflow-sub000/internal/config"
	"github.com/Anbarasu1710/projectflow-sub000/internal/domain/event"
	"github.com/Anbarasu1710/projectflow-sub000/internal/infrastructure/persistence/memory"
	"github.com/Anbarasu1710/projectflow-sub000/internal/infrastructure/persistence/sqlite"
	server "github.com/Anbarasu1710/projectflow-sub000/internal/interfaces/http"
	"github.com/Anbarasu1710/projectflow-sub000/internal/quotation"
	"github.com/Anbarasu1710/projectflow-sub000/pkg/utils"
)

func main() {
	configPath := "configs/config.yaml"
	if len(os.Args) > 1 {
		configPath = os.Args[1]
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := utils.NewLogger(utils.LoggerConfig{
		Level:      cfg.Logger.Level,
		OutputPath: cfg.Logger.OutputPath,
		Format:     cfg.Logger.Format,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting onboarding engine",
		zap.String("config", configPath),
		zap.Int("port", cfg.Server.Port))

	mirror, err := sqlite.Open(sqlite.Config{
		Path:            cfg.Database.Path,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	}, logger)
	if err != nil {
		logger.Fatal("Failed to open mirror database", zap.Error(err))
	}
	defer mirror.Close()

	kvLogger := utils.NewKVLogger(logger)

	disp := dispatcher.New(kvLogger)
	defer disp.Close()

	notifications := service.NewNotificationService(kvLogger)
	disp.Subscribe(event.TypeSubmissionCompleted, "notification", notifications.HandleSubmissionCompleted)

	var exporter port.QuotationExporter
	if cfg.Onboarding.ExportEnabled {
		writer, err := quotation.NewExcelWriter(cfg.Onboarding.ExportDir, logger)
		if err != nil {
			logger.Fatal("Failed to prepare export directory", zap.Error(err))
		}
		exporter = writer
	}

	rsv := resolver.New(resolver.Config{
		TokenParam:     cfg.Onboarding.TokenParam,
		RoleParam:      cfg.Onboarding.RoleParam,
		DemoParam:      cfg.Onboarding.DemoParam,
		DemoValue:      cfg.Onboarding.DemoValue,
		DemoToken:      cfg.Onboarding.DemoToken,
		InviterParam:   cfg.Onboarding.InviterParam,
		CompanyParam:   cfg.Onboarding.CompanyParam,
		ViewParam:      cfg.Onboarding.ViewParam,
		DefaultInviter: cfg.Onboarding.DefaultInviter,
		DefaultCompany: cfg.Onboarding.DefaultCompany,
	})

	onboarding := service.NewOnboardingService(rsv, memory.NewSessionStore(), mirror, exporter, disp, kvLogger)

	srv := server.NewServer(server.ServerConfig{
		Host:         cfg.Server.Host,
		Port:         cfg.Server.Port,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}, onboarding, notifications, kvLogger)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			logger.Fatal("Server failed", zap.Error(err))
		}
	case sig := <-quit:
		logger.Info("Received shutdown signal", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Graceful shutdown failed", zap.Error(err))
	}

	logger.Info("Onboarding engine stopped")
}
