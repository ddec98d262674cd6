package main

import (
	"context"
	"errors"
	"flag"
	"io/fs"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/cognicore/wortschatz/internal/httpapi"
	"github.com/cognicore/wortschatz/internal/logging"
	"github.com/cognicore/wortschatz/pkg/wortschatz"
	"github.com/cognicore/wortschatz/pkg/wortschatz/config"
)

func main() {
	configPath := flag.String("config", "", "Config YAML (optional; env vars and defaults otherwise)")
	flag.Parse()

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalf("load .env: %v", err)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	logger, err := logging.New(cfg.Log)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	svc, err := wortschatz.FromConfig(cfg, logger)
	if err != nil {
		logger.Fatal("build service", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sess := svc.NewSession()
	app := httpapi.New(ctx, sess, svc, logger)

	go func() {
		<-ctx.Done()
		logger.Info("shutting down")
		if err := app.ShutdownWithTimeout(cfg.Server.ShutdownTimeout); err != nil {
			logger.Error("shutdown", zap.Error(err))
		}
	}()

	logger.Info("listening",
		zap.String("addr", cfg.Server.Addr),
		zap.String("provider", cfg.LLM.Provider),
		zap.String("model", cfg.LLM.Model),
	)
	if err := app.Listen(cfg.Server.Addr); err != nil {
		logger.Fatal("listen", zap.Error(err))
	}
	sess.Wait()
}
