package order

import (
	"fmt"
	"math"
	"strings"

	"ordersim/internal/pkg/errs"
)

// Item is a value object for a single order line.
// The subtotal is always recomputed from price and quantity; it is never
// accepted from input or trusted from storage.
type Item struct {
	productID string
	title     string
	price     float64
	quantity  int
}

// NewItem creates a validated order line.
// Price must be a finite non-negative number and quantity at least 1.
func NewItem(productID, title string, price float64, quantity int) (Item, error) {
	item := Item{}

	productID = strings.TrimSpace(productID)
	if productID == "" {
		return Item{}, errs.NewValueIsRequiredError("productId")
	}
	item.productID = productID

	title = strings.TrimSpace(title)
	if title == "" {
		return Item{}, errs.NewValueIsRequiredError("title")
	}
	item.title = title

	if price < 0 || math.IsNaN(price) || math.IsInf(price, 0) {
		return Item{}, errs.NewValueIsInvalidErrorWithCause(
			"price", fmt.Errorf("%v is not a non-negative amount", price))
	}
	item.price = price

	if quantity < 1 {
		return Item{}, errs.NewValueIsInvalidErrorWithCause(
			"quantity", fmt.Errorf("%d is less than 1", quantity))
	}
	item.quantity = quantity

	return item, nil
}

// ProductID returns the referenced product identifier.
func (i Item) ProductID() string {
	return i.productID
}

// Title returns the display title of the line.
func (i Item) Title() string {
	return i.title
}

// Price returns the unit price.
func (i Item) Price() float64 {
	return i.price
}

// Quantity returns the ordered quantity.
func (i Item) Quantity() int {
	return i.quantity
}

// Subtotal returns price multiplied by quantity.
func (i Item) Subtotal() float64 {
	return i.price * float64(i.quantity)
}

// Validate rejects the zero value.
func (i Item) Validate() error {
	if i.productID == "" {
		return errs.NewValueIsRequiredError("item must be created via NewItem")
	}
	return nil
}
