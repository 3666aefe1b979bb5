package queries

import (
	"context"

	"ordersim/internal/core/domain/model/order"

	"gorm.io/gorm"
)

// GetOrderStatsQueryHandler computes order statistics with one aggregate
// query grouped by (status, store); per-order rows are never materialized
// in application memory.
type GetOrderStatsQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderStatsQueryHandler creates a handler for statistics queries.
// Requires a GORM database connection for query execution.
func NewGetOrderStatsQueryHandler(db *gorm.DB) GetOrderStatsQueryHandler {
	return GetOrderStatsQueryHandler{db: db}
}

// Handle executes the aggregation. An empty store yields zero counts, an
// empty by-store list, and a fully zeroed by-status breakdown.
func (h GetOrderStatsQueryHandler) Handle(
	ctx context.Context,
	query GetOrderStatsQuery,
) (GetOrderStatsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderStatsQueryResponse{}, err
	}

	where := "WHERE 1=1"
	args := []any{}
	if query.UserID() != "" {
		where += " AND user_id = ?"
		args = append(args, query.UserID())
	}
	if query.Store() != "" {
		where += " AND store = ?"
		args = append(args, query.Store())
	}

	response := GetOrderStatsQueryResponse{
		ByStatus:  emptyStatusCounts(),
		ByStore:   make([]StoreStatsResponse, 0),
		Breakdown: make([]StatusStoreStatsResponse, 0),
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT status, store, COUNT(*), COALESCE(SUM(total_amount), 0)
		FROM orders
		`+where+`
		GROUP BY status, store
		ORDER BY store, status
	`, args...).Rows()
	if err != nil {
		return GetOrderStatsQueryResponse{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var cell StatusStoreStatsResponse
		if err = rows.Scan(&cell.Status, &cell.Store, &cell.Orders, &cell.Revenue); err != nil {
			return GetOrderStatsQueryResponse{}, err
		}
		response.Breakdown = append(response.Breakdown, cell)

		response.ByStatus[cell.Status] += cell.Orders
		response.TotalOrders += cell.Orders
		response.TotalRevenue += cell.Revenue
		if parsed, parseErr := order.StatusFromString(cell.Status); parseErr == nil && !parsed.IsTerminal() {
			response.ActiveOrders += cell.Orders
		}

		// Cells arrive sorted by store, so the store marginal folds up
		// without a second query.
		last := len(response.ByStore) - 1
		if last < 0 || response.ByStore[last].Store != cell.Store {
			response.ByStore = append(response.ByStore, StoreStatsResponse{Store: cell.Store})
			last++
		}
		response.ByStore[last].Orders += cell.Orders
		response.ByStore[last].Revenue += cell.Revenue
	}
	if err = rows.Err(); err != nil {
		return GetOrderStatsQueryResponse{}, err
	}

	return response, nil
}
