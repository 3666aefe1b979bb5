package queries

import (
	"context"

	"gorm.io/gorm"
)

// GetOrdersByUserQueryHandler retrieves pages of a user's order history
// from the database, newest first.
//
// Example:
//
//	handler := NewGetOrdersByUserQueryHandler(db)
//	query, _ := NewGetOrdersByUserQuery("user-42", 0, 0, "", "")
//
//	page, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return err
//	}
//	fmt.Printf("showing %d of %d orders\n", len(page.Orders), page.Total)
type GetOrdersByUserQueryHandler struct {
	db *gorm.DB
}

// NewGetOrdersByUserQueryHandler creates a handler for user order history queries.
// Requires a GORM database connection for query execution.
func NewGetOrdersByUserQueryHandler(db *gorm.DB) GetOrdersByUserQueryHandler {
	return GetOrdersByUserQueryHandler{db: db}
}

// Handle executes the paged lookup. A user with no matching orders gets an
// empty page, not an error.
func (h GetOrdersByUserQueryHandler) Handle(
	ctx context.Context,
	query GetOrdersByUserQuery,
) (GetOrdersByUserQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrdersByUserQueryResponse{}, err
	}

	where := "WHERE user_id = ?"
	args := []any{query.UserID()}
	if query.Status() != "" {
		where += " AND status = ?"
		args = append(args, query.Status())
	}
	if query.Store() != "" {
		where += " AND store = ?"
		args = append(args, query.Store())
	}

	var total int
	if err := h.db.WithContext(ctx).
		Raw("SELECT COUNT(*) FROM orders "+where, args...).
		Scan(&total).Error; err != nil {
		return GetOrdersByUserQueryResponse{}, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT `+orderColumns+`
		FROM orders
		`+where+`
		ORDER BY created_at DESC
		LIMIT ? OFFSET ?
	`, append(args, query.Limit(), query.Skip())...).Rows()
	if err != nil {
		return GetOrdersByUserQueryResponse{}, err
	}
	defer rows.Close()

	orders := make([]OrderResponse, 0)
	for rows.Next() {
		response, scanErr := scanOrderRow(rows)
		if scanErr != nil {
			return GetOrdersByUserQueryResponse{}, scanErr
		}
		orders = append(orders, response)
	}

	if err = rows.Err(); err != nil {
		return GetOrdersByUserQueryResponse{}, err
	}

	return GetOrdersByUserQueryResponse{Orders: orders, Total: total}, nil
}
