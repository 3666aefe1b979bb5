package kernel

import (
	"strconv"
	"strings"
	"time"

	"ordersim/internal/pkg/errs"

	"github.com/google/uuid"
)

// ErrOrderIDIsNotConstructed indicates a zero-value OrderID that was not
// created via GenerateOrderID or OrderIDFromString.
var ErrOrderIDIsNotConstructed = errs.NewValueIsRequiredError(
	"OrderID must be created via GenerateOrderID or OrderIDFromString",
)

// OrderID is a value object identifying an order across all storefronts.
//
// The generated form is "<PREFIX>-<unix millis>-<8 uppercase hex>", e.g.
// "GLW-1756600000000-3FA85F64". The store prefix makes the owning storefront
// readable at a glance, the timestamp component keeps identifiers roughly
// sortable by creation time, and the random suffix disambiguates. Uniqueness
// is not cryptographically guaranteed; the record store enforces it with a
// unique constraint, and a collision surfaces as ObjectAlreadyExists.
type OrderID struct {
	value string
}

// GenerateOrderID produces a new identifier for an order placed under the
// given storefront at the given time.
func GenerateOrderID(store Store, now time.Time) OrderID {
	suffix := strings.ToUpper(uuid.New().String()[:8])
	return OrderID{value: store.Prefix() + "-" + strconv.FormatInt(now.UnixMilli(), 10) + "-" + suffix}
}

// OrderIDFromString reconstructs an OrderID from its string form, typically
// when parsing request paths or reading persisted rows.
func OrderIDFromString(s string) (OrderID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return OrderID{}, errs.NewValueIsRequiredError("orderId")
	}
	return OrderID{value: s}, nil
}

// String returns the identifier in its wire form.
func (id OrderID) String() string {
	return id.value
}

// IsEqual compares two identifiers by value.
func (id OrderID) IsEqual(other OrderID) bool {
	return id.value == other.value
}

// Validate rejects the zero value.
func (id OrderID) Validate() error {
	if id.value == "" {
		return ErrOrderIDIsNotConstructed
	}
	return nil
}
