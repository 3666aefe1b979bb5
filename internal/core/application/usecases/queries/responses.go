// Package queries contains read-only operations against the order store.
// Implements the Query side of the CQRS architecture: handlers run raw SQL
// over the database connection and bypass the aggregate layer entirely.
package queries

import (
	"database/sql"
	"encoding/json"
	"time"
)

// ItemResponse is one order line in a read model. Subtotal is the
// persisted price times quantity.
type ItemResponse struct {
	ProductID string  `json:"productId"`
	Title     string  `json:"title"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	Subtotal  float64 `json:"subtotal"`
}

// HistoryEntryResponse is one status change in a read model.
type HistoryEntryResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Note      string    `json:"note"`
}

// OrderResponse is the full read model of one order.
//
// Example:
//
//	response := OrderResponse{
//	    OrderID:     "GLW-1756600000000-3FA85F64",
//	    UserID:      "user-42",
//	    Store:       "kapruka",
//	    Status:      "pending",
//	    TotalAmount: 4180,
//	}
type OrderResponse struct {
	OrderID           string
	UserID            string
	Store             string
	Status            string
	Items             []ItemResponse
	TotalAmount       float64
	History           []HistoryEntryResponse
	EstimatedDelivery time.Time
	NextStatusUpdate  *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// orderColumns is the column list every full-order query selects, in the
// order scanOrderRow expects.
const orderColumns = `
	order_id,
	user_id,
	store,
	status,
	items,
	total_amount,
	status_history,
	estimated_delivery,
	next_status_update,
	created_at,
	updated_at`

// scanOrderRow reads one full order row into a response, decoding the
// items and status_history JSON columns.
func scanOrderRow(rows *sql.Rows) (OrderResponse, error) {
	var (
		response    OrderResponse
		itemsJSON   []byte
		historyJSON []byte
		nextUpdate  sql.NullTime
	)

	if err := rows.Scan(
		&response.OrderID,
		&response.UserID,
		&response.Store,
		&response.Status,
		&itemsJSON,
		&response.TotalAmount,
		&historyJSON,
		&response.EstimatedDelivery,
		&nextUpdate,
		&response.CreatedAt,
		&response.UpdatedAt,
	); err != nil {
		return OrderResponse{}, err
	}

	if err := json.Unmarshal(itemsJSON, &response.Items); err != nil {
		return OrderResponse{}, err
	}
	if err := json.Unmarshal(historyJSON, &response.History); err != nil {
		return OrderResponse{}, err
	}
	if nextUpdate.Valid {
		due := nextUpdate.Time
		response.NextStatusUpdate = &due
	}

	return response, nil
}
