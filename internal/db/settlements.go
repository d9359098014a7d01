package db

import (
	"fmt"
)

// Settlement is one saved ad-settlement record: a reviewed campaign row
// plus the order-level figures the operator filled in.
type Settlement struct {
	ID            int64   `json:"id"`
	Date          string  `json:"date"` // YYYY-MM-DD
	ProductName   string  `json:"product_name"`
	CampaignName  string  `json:"campaign_name"`
	TotalSalesQty float64 `json:"total_sales_qty"`
	TotalRevenue  float64 `json:"total_revenue"`
	CouponUnit    float64 `json:"coupon_unit"`
	AdSalesQty    float64 `json:"ad_sales_qty"`
	AdRevenue     float64 `json:"ad_revenue"`
	AdCost        float64 `json:"ad_cost"`
	CreatedAt     string  `json:"created_at,omitempty"`
}

// InsertSettlement stores one record and returns its assigned ID.
func (d *DB) InsertSettlement(s Settlement) (int64, error) {
	res, err := d.sql.Exec(`
		INSERT INTO settlements
			(date, product_name, campaign_name, total_sales_qty, total_revenue,
			 coupon_unit, ad_sales_qty, ad_revenue, ad_cost)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		s.Date, s.ProductName, s.CampaignName, s.TotalSalesQty, s.TotalRevenue,
		s.CouponUnit, s.AdSalesQty, s.AdRevenue, s.AdCost)
	if err != nil {
		return 0, fmt.Errorf("insert settlement: %w", err)
	}
	return res.LastInsertId()
}

// ListSettlements returns all records, newest first.
func (d *DB) ListSettlements() ([]Settlement, error) {
	rows, err := d.sql.Query(`
		SELECT id, date, product_name, campaign_name, total_sales_qty, total_revenue,
		       coupon_unit, ad_sales_qty, ad_revenue, ad_cost, created_at
		FROM settlements
		ORDER BY id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list settlements: %w", err)
	}
	defer rows.Close()

	var out []Settlement
	for rows.Next() {
		var s Settlement
		if err := rows.Scan(&s.ID, &s.Date, &s.ProductName, &s.CampaignName,
			&s.TotalSalesQty, &s.TotalRevenue, &s.CouponUnit,
			&s.AdSalesQty, &s.AdRevenue, &s.AdCost, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan settlement: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// DeleteSettlement removes one record; deleting an unknown ID is a no-op.
func (d *DB) DeleteSettlement(id int64) error {
	_, err := d.sql.Exec("DELETE FROM settlements WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete settlement: %w", err)
	}
	return nil
}
