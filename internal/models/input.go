package models

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// OrderInput is an order as typed into a form: numbers and dates are still
// text. Use Apply to turn it into an Order.
type OrderInput struct {
	Customer    string
	FileName    string
	Description string
	Quantity    string
	Amount      string
	DueDate     string
	DoubleSided bool
	Spiral      bool
}

// InputFrom returns the form values for an existing order.
func InputFrom(o Order) OrderInput {
	return OrderInput{
		Customer:    o.Customer,
		FileName:    o.FileName,
		Description: o.Description,
		Quantity:    strconv.Itoa(o.Quantity),
		Amount:      o.Amount.String(),
		DueDate:     o.DueDate,
		DoubleSided: o.DoubleSided,
		Spiral:      o.Spiral,
	}
}

// Apply parses the input onto o. Identity, added time and status flags are
// left untouched. On error o is not modified.
func (in OrderInput) Apply(o *Order) error {
	if strings.TrimSpace(in.Customer) == "" {
		return &ValidationError{Field: "customer", Reason: "must not be blank"}
	}

	qtyText := strings.TrimSpace(in.Quantity)
	if qtyText == "" {
		return &ValidationError{Field: "quantity", Reason: "is required"}
	}
	qty, err := strconv.Atoi(qtyText)
	if err != nil {
		return &ValidationError{Field: "quantity", Reason: "must be a whole number"}
	}

	amountText := strings.TrimSpace(in.Amount)
	if amountText == "" {
		return &ValidationError{Field: "amount", Reason: "is required"}
	}
	amount, err := decimal.NewFromString(amountText)
	if err != nil {
		return &ValidationError{Field: "amount", Reason: "must be a number"}
	}

	next := *o
	next.Customer = strings.TrimSpace(in.Customer)
	next.FileName = strings.TrimSpace(in.FileName)
	next.Description = strings.TrimSpace(in.Description)
	next.Quantity = qty
	next.Amount = amount
	next.DueDate = NormalizeDueDate(in.DueDate)
	next.DoubleSided = in.DoubleSided
	next.Spiral = in.Spiral

	if err := next.Validate(); err != nil {
		return err
	}
	*o = next
	return nil
}
