package commands

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/printdesk/printdesk/internal/calculator"
	"github.com/printdesk/printdesk/internal/format"
	"github.com/printdesk/printdesk/internal/models"
	"github.com/printdesk/printdesk/internal/service"
)

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func printOrders(w io.Writer, views []service.OrderView, now time.Time) error {
	if len(views) == 0 {
		_, err := fmt.Fprintln(w, "No orders.")
		return err
	}

	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tCUSTOMER\tFILE\tQTY\tAMOUNT\tDUE\t\tSTATUS\tADDED")
	for _, v := range views {
		o := v.Order
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%s\t%s\t%s\t%s\t%s\n",
			o.ID,
			o.Customer,
			o.FileName,
			o.Quantity,
			format.Currency(o.Amount),
			format.DueDate(o.DueDate),
			format.Urgency(v.Urgency),
			format.Status(v.Status),
			format.AddedTime(o.AddedTime, now),
		)
	}
	return tw.Flush()
}

func printOrder(w io.Writer, o models.Order, now time.Time) error {
	tw := newTable(w)
	rows := [][2]string{
		{"ID", strconv.FormatInt(o.ID, 10)},
		{"Customer", o.Customer},
		{"File", o.FileName},
		{"Description", o.Description},
		{"Quantity", strconv.Itoa(o.Quantity)},
		{"Amount", format.Currency(o.Amount)},
		{"Layout", format.Sides(o)},
		{"Due", format.DueDate(o.DueDate)},
		{"Added", format.AddedTime(o.AddedTime, now)},
		{"Amount received", yesNo(o.AmountReceived)},
		{"Completed", yesNo(o.Completed)},
	}
	for _, r := range rows {
		fmt.Fprintf(tw, "%s:\t%s\n", r[0], r[1])
	}
	return tw.Flush()
}

func printSummary(w io.Writer, s *service.Summary, now time.Time) error {
	tw := newTable(w)
	fmt.Fprintf(tw, "Total revenue:\t%s\n", format.Currency(s.Metrics.TotalRevenue))
	fmt.Fprintf(tw, "This month:\t%s\n", format.Currency(s.Metrics.MonthRevenue))
	fmt.Fprintf(tw, "Orders:\t%d\n", s.Metrics.TotalOrders)
	fmt.Fprintf(tw, "Pending:\t%d\n", s.Metrics.PendingOrders)
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Recent orders")
	if err := printOrders(w, s.Recent, now); err != nil {
		return err
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Outstanding (%s)\n", format.Currency(s.TotalOwed))
	return printBalances(w, s.Outstanding)
}

func printBalances(w io.Writer, balances []calculator.CustomerBalance) error {
	if len(balances) == 0 {
		_, err := fmt.Fprintln(w, "Nothing owed.")
		return err
	}

	tw := newTable(w)
	fmt.Fprintln(tw, "CUSTOMER\tORDERS\tOWED")
	for _, b := range balances {
		fmt.Fprintf(tw, "%s\t%d\t%s\n", b.Customer, b.Orders, format.Currency(b.Owed))
	}
	return tw.Flush()
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(arg), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid order id %q", arg)
	}
	return id, nil
}
