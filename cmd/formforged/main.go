// Command formforged runs the form generation and submission API server.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	sdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/spf13/cobra"

	"github.com/formforge/formforge/backend"
	"github.com/formforge/formforge/backend/anthropic"
	"github.com/formforge/formforge/backend/openai"
	"github.com/formforge/formforge/config"
	"github.com/formforge/formforge/core"
	"github.com/formforge/formforge/form"
	"github.com/formforge/formforge/form/mysql"
	"github.com/formforge/formforge/logging"
	"github.com/formforge/formforge/runner"
	"github.com/formforge/formforge/sandbox"
	"github.com/formforge/formforge/server"
	"github.com/formforge/formforge/telemetry"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:           "formforged",
		Short:         "formforged serves the form generation and submission API",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			return serve(cmd.Context(), cfg)
		},
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to config file")
	return cmd
}

func serve(parent context.Context, cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := logging.New(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})

	store, closeStore, err := buildStore(ctx, cfg.Storage)
	if err != nil {
		return err
	}
	defer closeStore()

	be, err := buildBackend(cfg.Backend)
	if err != nil {
		return err
	}
	logger.Info("backend ready", "provider", be.Info().Provider, "model", be.Info().Name)

	runnerOpts := []func(o *runner.Options){
		func(o *runner.Options) {
			o.Sink = telemetry.NewLoggingSink(logger)
			o.Logger = logger
		},
	}
	var sandboxConfig map[string]any
	if cfg.Sandbox.Enabled {
		provisioner, err := sandbox.NewHTTPProvisioner(cfg.Sandbox.BaseURL, func(o *sandbox.HTTPOptions) {
			o.Token = cfg.Sandbox.Token
		})
		if err != nil {
			return err
		}
		runnerOpts = append(runnerOpts, func(o *runner.Options) { o.Provisioner = provisioner })
		if cfg.Sandbox.Image != "" {
			sandboxConfig = map[string]any{"image": cfg.Sandbox.Image}
		}
	}

	svc := form.NewService(runner.New(be, runnerOpts...), store, func(o *form.Options) {
		o.UseSandbox = cfg.Sandbox.Enabled
		o.SandboxConfig = sandboxConfig
		o.Logger = logger
	})

	srv := server.New(svc, func(o *server.Options) {
		o.Addr = cfg.Server.Addr
		o.ReadTimeout = cfg.Server.ReadTimeout
		o.WriteTimeout = cfg.Server.WriteTimeout
		o.Debug = cfg.Server.Debug
		o.Logger = logger
	})
	return srv.Run(ctx)
}

func buildStore(ctx context.Context, cfg config.StorageConfig) (form.Store, func(), error) {
	switch cfg.Driver {
	case "mysql":
		store, err := mysql.Open(ctx, mysql.Config{DSN: cfg.DSN})
		if err != nil {
			return nil, nil, err
		}
		return store, func() { store.Close() }, nil
	default:
		return form.NewInMemoryStore(), func() {}, nil
	}
}

func buildBackend(cfg config.BackendConfig) (core.ExecutionBackend, error) {
	switch cfg.Provider {
	case "openai":
		if cfg.APIKey != "" {
			os.Setenv("OPENAI_API_KEY", cfg.APIKey)
		}
		return openai.New(func(o *openai.Options) {
			if cfg.Model != "" {
				o.Model = cfg.Model
			}
			o.Temperature = cfg.Temperature
			o.MaxCompletionTokens = int64(cfg.MaxTokens)
		}), nil
	case "anthropic":
		return anthropic.New(func(o *anthropic.Options) {
			if cfg.Model != "" {
				o.Model = sdk.Model(cfg.Model)
			}
			o.Temperature = cfg.Temperature
			o.MaxTokens = int64(cfg.MaxTokens)
			o.APIKey = cfg.APIKey
		}), nil
	case "mock":
		return backend.NewMock(), nil
	default:
		return nil, fmt.Errorf("unknown backend provider %q", cfg.Provider)
	}
}
