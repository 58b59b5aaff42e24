package main

import (
	"fmt"
	"log"
	"os"

	"go.uber.org/zap"

	"github.com/spec-kit/ticket-tokengen/internal/auth"
	"github.com/spec-kit/ticket-tokengen/internal/config"
	"github.com/spec-kit/ticket-tokengen/internal/domain"
	"github.com/spec-kit/ticket-tokengen/internal/fixture"
	"github.com/spec-kit/ticket-tokengen/internal/observability"
	"github.com/spec-kit/ticket-tokengen/pkg/util"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fail(err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	issuer := auth.NewTokenIssuer(cfg.Auth)
	generator := fixture.NewGenerator(fixture.Dependencies{
		Issuer:     issuer,
		Profiles:   domain.DefaultProfiles(),
		Output:     cfg.Output,
		BcryptCost: cfg.Auth.BcryptCost,
		Out:        os.Stdout,
		Logger:     logger,
	})

	if _, err := generator.Run(); err != nil {
		logger.Error("token generation failed", zap.Error(err))
		fail(err)
	}
}

func fail(err error) {
	runErr := util.ToRunError(err)
	fmt.Fprintf(os.Stderr, "Error: %s\n", runErr.Error())
	if runErr.Remedy != "" {
		fmt.Fprintf(os.Stderr, "%s\n", runErr.Remedy)
	}
	os.Exit(runErr.ExitCode())
}
