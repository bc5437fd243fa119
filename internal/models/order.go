package models

import (
	"github.com/shopspring/decimal"
)

const (
	// DueDateLayout is the stored form of Order.DueDate.
	DueDateLayout = "2006-01-02"

	// AddedTimeLayout is the stored form of Order.AddedTime (minute precision).
	AddedTimeLayout = "2006-01-02T15:04"
)

// Order represents a customer print order.
type Order struct {
	// ID is assigned by the store on insert. Zero means not yet persisted.
	ID int64 `json:"id"`

	// Customer is the name of the person who placed the order.
	Customer string `json:"customer" validate:"notblank"`

	// FileName is the document to print (optional).
	FileName string `json:"file_name,omitempty"`

	// Description holds free-form notes (optional).
	Description string `json:"description,omitempty"`

	// Quantity is the number of copies.
	Quantity int `json:"quantity" validate:"min=1"`

	// Amount is the price charged for the order.
	Amount decimal.Decimal `json:"amount" validate:"gte=0"`

	DoubleSided bool `json:"double_sided"`
	Spiral      bool `json:"spiral"`

	// DueDate is the promised delivery date in DueDateLayout form.
	DueDate string `json:"due_date" validate:"required,duedate"`

	// AddedTime is set once by the store on insert, in AddedTimeLayout form.
	// It is never modified afterwards.
	AddedTime string `json:"added_time"`

	// AmountReceived and Completed vary independently.
	AmountReceived bool `json:"amount_received"`
	Completed      bool `json:"completed"`
}

// NewOrder returns an unsaved order carrying the form defaults.
func NewOrder() Order {
	return Order{
		Quantity:    1,
		Amount:      decimal.Zero,
		DoubleSided: true,
	}
}

// FullyComplete reports whether the order is both paid and completed.
func (o Order) FullyComplete() bool {
	return o.AmountReceived && o.Completed
}
