package queries

import (
	"errors"

	"ordersim/internal/core/domain/model/order"
	"ordersim/internal/pkg/errs"
	"ordersim/internal/pkg/guard"
)

var ErrGetOrdersByUserQueryIsNotConstructed = errors.New(
	"GetOrdersByUserQuery must be created via NewGetOrdersByUserQuery constructor",
)

const (
	// DefaultOrdersPageLimit applies when the caller does not ask for a
	// specific page size.
	DefaultOrdersPageLimit = 50
	// MaxOrdersPageLimit caps how many orders one page may return.
	MaxOrdersPageLimit = 200
)

// GetOrdersByUserQuery retrieves a user's orders, newest first, with
// optional status and store filters and offset pagination.
//
// Example:
//
//	query, err := NewGetOrdersByUserQuery("user-42", 20, 0, "pending", "kapruka")
//	if err != nil {
//	    return err
//	}
//
//	handler := NewGetOrdersByUserQueryHandler(db)
//	page, err := handler.Handle(ctx, query)
type GetOrdersByUserQuery struct { //nolint:recvcheck //using for validation
	userID string
	limit  int
	skip   int
	status string
	store  string

	guard guard.ConstructorGuard
}

// NewGetOrdersByUserQuery creates a query for one user's order history.
// A zero limit falls back to DefaultOrdersPageLimit; otherwise the limit
// must be between 1 and MaxOrdersPageLimit. status and store are optional
// filters; an empty string disables the filter, and a non-empty status
// must name a known lifecycle status.
func NewGetOrdersByUserQuery(userID string, limit, skip int, status, store string) (GetOrdersByUserQuery, error) {
	query := GetOrdersByUserQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		query.setUserID(userID),
		query.setLimit(limit),
		query.setSkip(skip),
		query.setStatus(status),
	); err != nil {
		return GetOrdersByUserQuery{}, err
	}
	query.store = store

	return query, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetOrdersByUserQueryIsNotConstructed if validation fails.
func (q GetOrdersByUserQuery) Validate() error {
	return q.guard.Validate(ErrGetOrdersByUserQueryIsNotConstructed)
}

// UserID returns the owning user's identifier.
func (q GetOrdersByUserQuery) UserID() string {
	return q.userID
}

// Limit returns the page size.
func (q GetOrdersByUserQuery) Limit() int {
	return q.limit
}

// Skip returns the pagination offset.
func (q GetOrdersByUserQuery) Skip() int {
	return q.skip
}

// Status returns the optional status filter, empty when unset.
func (q GetOrdersByUserQuery) Status() string {
	return q.status
}

// Store returns the optional store filter, empty when unset.
func (q GetOrdersByUserQuery) Store() string {
	return q.store
}

func (q *GetOrdersByUserQuery) setUserID(userID string) error {
	if userID == "" {
		return errs.NewValueIsRequiredError("userId")
	}

	q.userID = userID
	return nil
}

func (q *GetOrdersByUserQuery) setLimit(limit int) error {
	if limit == 0 {
		limit = DefaultOrdersPageLimit
	}
	if limit < 1 || limit > MaxOrdersPageLimit {
		return errs.NewValueIsOutOfRangeError("limit", limit, 1, MaxOrdersPageLimit)
	}

	q.limit = limit
	return nil
}

func (q *GetOrdersByUserQuery) setSkip(skip int) error {
	if skip < 0 {
		return errs.NewValueIsInvalidError("skip")
	}

	q.skip = skip
	return nil
}

func (q *GetOrdersByUserQuery) setStatus(status string) error {
	if status == "" {
		return nil
	}
	if _, err := order.StatusFromString(status); err != nil {
		return err
	}

	q.status = status
	return nil
}

// GetOrdersByUserQueryResponse is one page of a user's order history.
type GetOrdersByUserQueryResponse struct {
	// Orders holds the page contents, newest first.
	Orders []OrderResponse
	// Total is the number of orders matching the filters across all pages.
	Total int
}
