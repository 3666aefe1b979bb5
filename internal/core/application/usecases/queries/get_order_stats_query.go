package queries

import (
	"errors"

	"ordersim/internal/core/domain/model/order"
	"ordersim/internal/pkg/guard"
)

var ErrGetOrderStatsQueryIsNotConstructed = errors.New(
	"GetOrderStatsQuery must be created via NewGetOrderStatsQuery constructor",
)

// GetOrderStatsQuery aggregates order counts and revenue across the store,
// optionally scoped to one user or one storefront.
//
// Example:
//
//	query, _ := NewGetOrderStatsQuery("", "kapruka")
//	handler := NewGetOrderStatsQueryHandler(db)
//
//	stats, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return err
//	}
//	fmt.Printf("%d orders, %d still active\n", stats.TotalOrders, stats.ActiveOrders)
type GetOrderStatsQuery struct { //nolint:recvcheck //using for validation
	userID string
	store  string

	guard guard.ConstructorGuard
}

// NewGetOrderStatsQuery creates a statistics query. Both filters are
// optional; empty strings aggregate over everything.
func NewGetOrderStatsQuery(userID, store string) (GetOrderStatsQuery, error) {
	query := GetOrderStatsQuery{
		userID: userID,
		store:  store,
		guard:  guard.NewConstructorGuard(),
	}

	return query, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetOrderStatsQueryIsNotConstructed if validation fails.
func (q GetOrderStatsQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderStatsQueryIsNotConstructed)
}

// UserID returns the optional user filter, empty when unset.
func (q GetOrderStatsQuery) UserID() string {
	return q.userID
}

// Store returns the optional store filter, empty when unset.
func (q GetOrderStatsQuery) Store() string {
	return q.store
}

// StatusStoreStatsResponse is one (status, store) aggregation cell: how
// many orders sit in that status under that storefront, and their summed
// total amount.
type StatusStoreStatsResponse struct {
	Status  string
	Store   string
	Orders  int
	Revenue float64
}

// StoreStatsResponse aggregates one storefront's orders.
type StoreStatsResponse struct {
	Store   string
	Orders  int
	Revenue float64
}

// GetOrderStatsQueryResponse summarizes order volume and revenue.
// Breakdown carries the per-(status, store) cells; ByStatus and ByStore are
// its marginals, kept for convenience. ByStatus always carries every
// lifecycle status, including those with a zero count. ActiveOrders counts
// orders in a non-terminal status.
type GetOrderStatsQueryResponse struct {
	TotalOrders  int
	ActiveOrders int
	TotalRevenue float64
	Breakdown    []StatusStoreStatsResponse
	ByStatus     map[string]int
	ByStore      []StoreStatsResponse
}

// emptyStatusCounts returns a by-status map with every lifecycle status
// zeroed, so responses always expose the full breakdown.
func emptyStatusCounts() map[string]int {
	counts := make(map[string]int)
	for _, status := range []order.Status{
		order.Pending, order.InTransit, order.StorePickup, order.Completed, order.Cancelled,
	} {
		counts[status.String()] = 0
	}
	return counts
}
