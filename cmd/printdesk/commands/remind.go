package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/printdesk/printdesk/internal/middleware"
	"github.com/printdesk/printdesk/internal/notify"
	"github.com/printdesk/printdesk/internal/reminder"
)

func newRemindCommand() *cobra.Command {
	remindCmd := &cobra.Command{
		Use:   "remind",
		Short: "Pending-orders reminder",
	}
	remindCmd.AddCommand(newRemindRunCommand(), newRemindServeCommand())
	return remindCmd
}

func (a *app) pendingJob() *reminder.PendingJob {
	notifier := notify.Multi{
		notify.NewLogNotifier(slog.Default()),
		notify.NewSlotNotifier(a.cfg.Reminder.SlotDir),
	}
	return reminder.NewPendingJob(a.store, notifier,
		reminder.WithMetrics(a.collectors, a.cfg.Metrics.Textfile),
	)
}

func newRemindRunCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Check for pending orders once and notify",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := appFrom(cmd)
			ctx, cancel := context.WithTimeout(cmd.Context(), a.cfg.Reminder.Timeout)
			defer cancel()

			run := middleware.Logging("remind run", a.pendingJob().Run)
			if err := run(ctx); err != nil {
				return describe(err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Reminder check complete.")
			return nil
		},
	}
}

func newRemindServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the daily reminder until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := appFrom(cmd)
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			scheduler := reminder.NewTimerScheduler(ctx,
				reminder.WithRunTimeout(a.cfg.Reminder.Timeout),
				reminder.WithLogger(slog.Default()),
			)

			job := middleware.Logging(a.cfg.Reminder.Name, a.pendingJob().Run)
			handle, _ := reminder.Ensure(scheduler, a.cfg.Reminder.Schedule(), time.Now(), reminder.Job(job))
			slog.Info("Reminder scheduled",
				"task", handle.Name(),
				"next_run", handle.NextRun().Format(time.RFC3339),
			)

			err := scheduler.Wait()
			slog.Info("Reminder stopped")
			return err
		},
	}
}
