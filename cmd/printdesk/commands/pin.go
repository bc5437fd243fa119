package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newPinCommand() *cobra.Command {
	pinCmd := &cobra.Command{
		Use:   "pin",
		Short: "Manage the dashboard PIN",
	}

	pinCmd.AddCommand(
		newPinSetCommand(),
		newPinChangeCommand(),
		newPinUnlockCommand(),
		newPinLockCommand(),
	)
	return pinCmd
}

func newPinSetCommand() *cobra.Command {
	var pin, confirm string

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Set the first PIN",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("confirm") {
				confirm = pin
			}
			if err := appFrom(cmd).dashboard.SetPin(cmd.Context(), pin, confirm); err != nil {
				return describe(err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "PIN set.")
			return nil
		},
	}
	cmd.Flags().StringVar(&pin, "pin", "", "new 6-digit PIN")
	cmd.Flags().StringVar(&confirm, "confirm", "", "repeat the new PIN")
	cmd.MarkFlagRequired("pin")
	return cmd
}

func newPinChangeCommand() *cobra.Command {
	var oldPin, newPin, confirm string

	cmd := &cobra.Command{
		Use:   "change",
		Short: "Change the PIN",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := appFrom(cmd)
			if err := a.dashboard.ChangePin(cmd.Context(), oldPin, newPin, confirm); err != nil {
				return describe(err)
			}
			// Old tokens no longer validate; remove the stale file.
			if err := clearToken(a.cfg.Auth.TokenPath); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "PIN changed.")
			return nil
		},
	}
	cmd.Flags().StringVar(&oldPin, "old", "", "current PIN")
	cmd.Flags().StringVar(&newPin, "new", "", "new 6-digit PIN")
	cmd.Flags().StringVar(&confirm, "confirm", "", "repeat the new PIN")
	cmd.MarkFlagRequired("old")
	cmd.MarkFlagRequired("new")
	cmd.MarkFlagRequired("confirm")
	return cmd
}

func newPinUnlockCommand() *cobra.Command {
	var pin string

	cmd := &cobra.Command{
		Use:   "unlock",
		Short: "Unlock the dashboard for a while",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := appFrom(cmd)
			token, err := a.dashboard.Unlock(cmd.Context(), pin)
			if err != nil {
				return describe(err)
			}
			if err := saveToken(a.cfg.Auth.TokenPath, token); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Dashboard unlocked for %s.\n", a.cfg.Auth.TokenTTL)
			return nil
		},
	}
	cmd.Flags().StringVar(&pin, "pin", "", "dashboard PIN")
	cmd.MarkFlagRequired("pin")
	return cmd
}

func newPinLockCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "lock",
		Short: "Forget the saved unlock",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := clearToken(appFrom(cmd).cfg.Auth.TokenPath); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Dashboard locked.")
			return nil
		},
	}
}
