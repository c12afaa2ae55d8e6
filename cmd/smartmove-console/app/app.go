package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"

	"github.com/DVA506/SmartMove/cmd/smartmove-console/app/options"
	"github.com/DVA506/SmartMove/internal/pkg/metrics"
	"github.com/DVA506/SmartMove/pkg/log"
)

const (
	commandName = "smartmove-console"
	commandDesc = `The SmartMove operator console drives a shared-vehicle fleet through its
rental lifecycle: register vehicles, reserve/start/end rentals, inject
simulated telemetry and observe the resulting live state.

All state transitions and validation live in the remote fleet-management
service; the console is a thin, continuously refreshed view over it.`
)

// NewConsoleCommand builds the root cobra command.
func NewConsoleCommand() *cobra.Command {
	opts := options.NewConsoleOptions()

	cmd := &cobra.Command{
		Use:          commandName,
		Short:        "Launch the SmartMove fleet operator console",
		Long:         commandDesc,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := loadConfigFile(cmd, opts); err != nil {
				return err
			}
			if errs := opts.Validate(); len(errs) > 0 {
				return errors.Join(errs...)
			}
			return run(opts)
		},
	}

	opts.AddFlags(cmd.Flags())
	cmd.Flags().String("config", "", "Path to an optional smartmove.yaml configuration file.")

	return cmd
}

// loadConfigFile merges an optional YAML config file and SMARTMOVE_* env vars
// underneath the command-line flags.
func loadConfigFile(cmd *cobra.Command, opts *options.ConsoleOptions) error {
	v := viper.New()
	v.SetEnvPrefix("SMARTMOVE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return fmt.Errorf("bind flags: %w", err)
	}

	if path, _ := cmd.Flags().GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("smartmove")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(dir + "/smartmove")
		}
		var notFound viper.ConfigFileNotFoundError
		if err := v.ReadInConfig(); err != nil && !errors.As(err, &notFound) {
			return fmt.Errorf("read config: %w", err)
		}
	}

	return v.Unmarshal(opts)
}

func run(opts *options.ConsoleOptions) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Init(opts.Log)

	cfg := opts.Config()
	operatorConsole, err := cfg.NewConsole()
	if err != nil {
		return fmt.Errorf("failed to create console: %w", err)
	}

	g, ctx := errgroup.WithContext(ctx)

	if addr := opts.MetricsOptions.Addr; addr != "" {
		g.Go(func() error {
			return serveMetrics(ctx, addr)
		})
	}

	g.Go(func() error {
		defer stop()
		err := operatorConsole.Run(ctx)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})

	return g.Wait()
}

func serveMetrics(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())

	server := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	log.Info("Starting metrics server", "addr", addr)

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	}
}
