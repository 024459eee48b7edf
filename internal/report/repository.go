package report

import (
	"context"
	"database/sql"

	"shopcore-be/internal/logger"

	"go.uber.org/zap"
)

type StatusBreakdown struct {
	OrderStatus string  `json:"order_status"`
	Orders      int     `json:"orders"`
	Revenue     float64 `json:"revenue"`
}

type TopProduct struct {
	ProductID   string  `json:"product_id"`
	ProductName string  `json:"product_name"`
	UnitsSold   int     `json:"units_sold"`
	Revenue     float64 `json:"revenue"`
}

type SalesReport struct {
	TotalOrders  int               `json:"total_orders"`
	TotalRevenue float64           `json:"total_revenue"`
	ByStatus     []StatusBreakdown `json:"by_status"`
	TopProducts  []TopProduct      `json:"top_products"`
}

type Repository interface {
	SalesReport(ctx context.Context, topN int) (*SalesReport, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

// SalesReport aggregates over orders and order_items; cancelled orders
// are excluded from revenue but still counted per status.
func (r *repository) SalesReport(ctx context.Context, topN int) (*SalesReport, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "SalesReport"),
	)

	if topN <= 0 {
		topN = 5
	}

	report := &SalesReport{
		ByStatus:    []StatusBreakdown{},
		TopProducts: []TopProduct{},
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT order_status, COUNT(*), COALESCE(SUM(total_amount), 0)
		FROM orders
		GROUP BY order_status
		ORDER BY order_status
	`)
	if err != nil {
		log.Error("status breakdown query failed", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var b StatusBreakdown
		if err := rows.Scan(&b.OrderStatus, &b.Orders, &b.Revenue); err != nil {
			return nil, err
		}
		report.ByStatus = append(report.ByStatus, b)
		report.TotalOrders += b.Orders
		if b.OrderStatus != "cancelled" {
			report.TotalRevenue += b.Revenue
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	topRows, err := r.db.QueryContext(ctx, `
		SELECT
			oi.product_id,
			COALESCE(p.name, 'UNKNOWN'),
			SUM(oi.quantity),
			SUM(oi.price * oi.quantity)
		FROM order_items oi
		JOIN orders o ON oi.order_id = o.id
		LEFT JOIN products p ON oi.product_id = p.id
		WHERE o.order_status <> 'cancelled'
		GROUP BY oi.product_id, p.name
		ORDER BY SUM(oi.quantity) DESC
		LIMIT $1
	`, topN)
	if err != nil {
		log.Error("top products query failed", zap.Error(err))
		return nil, err
	}
	defer topRows.Close()

	for topRows.Next() {
		var t TopProduct
		if err := topRows.Scan(&t.ProductID, &t.ProductName, &t.UnitsSold, &t.Revenue); err != nil {
			return nil, err
		}
		report.TopProducts = append(report.TopProducts, t)
	}
	if err := topRows.Err(); err != nil {
		return nil, err
	}

	return report, nil
}
