// Package commands implements the printdesk command line.
package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/printdesk/printdesk/internal/auth"
	"github.com/printdesk/printdesk/internal/config"
	"github.com/printdesk/printdesk/internal/metrics"
	"github.com/printdesk/printdesk/internal/models"
	"github.com/printdesk/printdesk/internal/service"
	"github.com/printdesk/printdesk/internal/storage"
	"github.com/printdesk/printdesk/internal/storage/sqlite"
	"github.com/printdesk/printdesk/pkg/logging"
)

// app holds what every command needs once configuration is loaded.
type app struct {
	cfg        *config.Config
	store      storage.Store
	collectors *metrics.Collectors
	orders     *service.OrderService
	dashboard  *service.DashboardService
}

type contextKey struct{}

// NewRootCommand creates the printdesk command tree.
func NewRootCommand() *cobra.Command {
	var opts config.Options

	rootCmd := &cobra.Command{
		Use:           "printdesk",
		Short:         "Order book for a small print shop",
		Long:          "printdesk tracks customer print orders, shows a PIN-protected revenue dashboard and reminds you daily about pending work.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&opts.ConfigFile, "config", "", "config file (yaml, toml or json)")
	rootCmd.PersistentFlags().StringVar(&opts.EnvFile, "env-file", ".env", "dotenv file to load")

	// Commands below need the store; version does not.
	withApp := func(cmd *cobra.Command) *cobra.Command {
		cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
			a, err := newApp(opts)
			if err != nil {
				return err
			}
			cmd.SetContext(contextWithApp(cmd.Context(), a))
			return nil
		}
		return cmd
	}

	rootCmd.AddCommand(withApp(newOrdersCommand()))
	rootCmd.AddCommand(withApp(newDashboardCommand()))
	rootCmd.AddCommand(withApp(newPinCommand()))
	rootCmd.AddCommand(withApp(newRemindCommand()))
	rootCmd.AddCommand(newVersionCommand())

	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return fmt.Errorf("%w\n\n%s", err, cmd.UsageString())
	})

	return rootCmd
}

// Execute runs root and closes the store opened for the executed command,
// whether or not the command succeeded.
func Execute(root *cobra.Command) error {
	cmd, err := root.ExecuteC()
	if a := openedApp(cmd); a != nil {
		if cerr := a.store.Close(); cerr != nil {
			slog.Error("Failed to close storage", "error", cerr)
			err = errors.Join(err, cerr)
		}
	}
	return err
}

func newApp(opts config.Options) (*app, error) {
	cfg, err := config.Load(opts)
	if err != nil {
		return nil, err
	}

	logging.Setup(cfg.Logger.Level)

	store, err := sqlite.New(cfg.Database.Path)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		return nil, err
	}
	slog.Debug("Storage initialized", "database", cfg.Database.Path)

	collectors := metrics.New()
	gate := auth.NewPinGate(store)
	tokens := auth.NewUnlockTokens(cfg.Auth.TokenSecret, cfg.Auth.TokenTTL)

	return &app{
		cfg:        cfg,
		store:      store,
		collectors: collectors,
		orders:     service.NewOrderService(store),
		dashboard:  service.NewDashboardService(store, gate, tokens, collectors),
	}, nil
}

// describe turns domain errors into messages for the shop owner.
func describe(err error) error {
	var verr *models.ValidationError
	switch {
	case errors.As(err, &verr):
		return fmt.Errorf("cannot save order: %s", verr.Error())
	case errors.Is(err, storage.ErrNotFound):
		return fmt.Errorf("no such order: %w", err)
	case errors.Is(err, auth.ErrPinNotSet):
		return errors.New("no PIN set yet; run `printdesk pin set` first")
	case errors.Is(err, auth.ErrMissingToken), errors.Is(err, auth.ErrInvalidToken):
		return errors.New("dashboard is locked; pass --pin or run `printdesk pin unlock`")
	default:
		return err
	}
}

func contextWithApp(ctx context.Context, a *app) context.Context {
	return context.WithValue(ctx, contextKey{}, a)
}

func appFrom(cmd *cobra.Command) *app {
	return cmd.Context().Value(contextKey{}).(*app)
}

// openedApp returns the app set up for cmd, or nil when setup never ran.
func openedApp(cmd *cobra.Command) *app {
	if cmd == nil || cmd.Context() == nil {
		return nil
	}
	a, _ := cmd.Context().Value(contextKey{}).(*app)
	return a
}
