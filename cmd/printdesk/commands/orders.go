package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/printdesk/printdesk/internal/format"
	"github.com/printdesk/printdesk/internal/models"
	"github.com/printdesk/printdesk/internal/orders"
)

func newOrdersCommand() *cobra.Command {
	ordersCmd := &cobra.Command{
		Use:     "orders",
		Aliases: []string{"order", "o"},
		Short:   "Manage print orders",
	}

	ordersCmd.AddCommand(
		newOrdersListCommand(),
		newOrdersShowCommand(),
		newOrdersAddCommand(),
		newOrdersEditCommand(),
		newOrdersToggleCommand("paid", "Toggle whether the amount has been received", func(a *app) toggleFunc {
			return a.orders.ToggleAmountReceived
		}),
		newOrdersToggleCommand("done", "Toggle whether the order is completed", func(a *app) toggleFunc {
			return a.orders.ToggleCompleted
		}),
		newOrdersDeleteCommand(),
	)
	return ordersCmd
}

func newOrdersListCommand() *cobra.Command {
	var query string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List orders, unfinished work first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := appFrom(cmd)
			views, err := a.orders.List(cmd.Context(), query)
			if err != nil {
				return describe(err)
			}
			return printOrders(cmd.OutOrStdout(), views, time.Now())
		},
	}
	cmd.Flags().StringVarP(&query, "search", "s", "", "only orders whose customer or file name contains this text")
	return cmd
}

func newOrdersShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show one order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			v, err := appFrom(cmd).orders.Get(cmd.Context(), id)
			if err != nil {
				return describe(err)
			}
			return printOrder(cmd.OutOrStdout(), v.Order, time.Now())
		},
	}
}

// orderFlags are the form fields shared by add and edit.
type orderFlags struct {
	input       models.OrderInput
	singleSided bool
}

func (f *orderFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVar(&f.input.Customer, "customer", "", "customer name")
	fl.StringVar(&f.input.FileName, "file", "", "file to print")
	fl.StringVar(&f.input.Description, "description", "", "notes")
	fl.StringVar(&f.input.Quantity, "quantity", "1", "number of copies")
	fl.StringVar(&f.input.Amount, "amount", "", "price charged")
	fl.StringVar(&f.input.DueDate, "due", "", "due date (YYYY-MM-DD)")
	fl.BoolVar(&f.singleSided, "single-sided", false, "print on one side only")
	fl.BoolVar(&f.input.Spiral, "spiral", false, "spiral binding")
}

// overlay copies the flags the user actually set onto in.
func (f *orderFlags) overlay(cmd *cobra.Command, in models.OrderInput) models.OrderInput {
	changed := cmd.Flags().Changed
	if changed("customer") {
		in.Customer = f.input.Customer
	}
	if changed("file") {
		in.FileName = f.input.FileName
	}
	if changed("description") {
		in.Description = f.input.Description
	}
	if changed("quantity") {
		in.Quantity = f.input.Quantity
	}
	if changed("amount") {
		in.Amount = f.input.Amount
	}
	if changed("due") {
		in.DueDate = f.input.DueDate
	}
	if changed("single-sided") {
		in.DoubleSided = !f.singleSided
	}
	if changed("spiral") {
		in.Spiral = f.input.Spiral
	}
	return in
}

func newOrdersAddCommand() *cobra.Command {
	var flags orderFlags

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a new order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in := flags.input
			in.DoubleSided = !flags.singleSided

			o, err := appFrom(cmd).orders.SaveInput(cmd.Context(), 0, in)
			if err != nil {
				return describe(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added order %d for %s (%s, due %s)\n",
				o.ID, o.Customer, format.Currency(o.Amount), format.DueDate(o.DueDate))
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}

func newOrdersEditCommand() *cobra.Command {
	var flags orderFlags

	cmd := &cobra.Command{
		Use:   "edit ID",
		Short: "Change the details of an order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			a := appFrom(cmd)
			current, err := a.orders.Get(cmd.Context(), id)
			if err != nil {
				return describe(err)
			}

			in := flags.overlay(cmd, models.InputFrom(current.Order))
			o, err := a.orders.SaveInput(cmd.Context(), id, in)
			if err != nil {
				return describe(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated order %d\n", o.ID)
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}

type toggleFunc func(ctx context.Context, id int64) (*models.Order, error)

func newOrdersToggleCommand(use, short string, pick func(*app) toggleFunc) *cobra.Command {
	return &cobra.Command{
		Use:   use + " ID",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			o, err := pick(appFrom(cmd))(cmd.Context(), id)
			if err != nil {
				return describe(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Order %d is now %s\n", o.ID, format.Status(orders.Classify(*o)))
			return nil
		},
	}
}

func newOrdersDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "delete ID",
		Aliases: []string{"rm"},
		Short:   "Delete an order permanently",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := appFrom(cmd).orders.Delete(cmd.Context(), id); err != nil {
				return describe(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted order %d\n", id)
			return nil
		},
	}
}
