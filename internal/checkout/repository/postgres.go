package repository

import (
	"context"
	"fmt"

	"github.com/fekuna/omnipos-sale-terminal/internal/model"
	"github.com/jmoiron/sqlx"
)

type PGHistoryRepository struct {
	DB *sqlx.DB
}

func NewPGHistoryRepository(db *sqlx.DB) *PGHistoryRepository {
	return &PGHistoryRepository{DB: db}
}

func (r *PGHistoryRepository) Append(ctx context.Context, sale *model.CompletedSale) error {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	saleQuery := `
        INSERT INTO sales (
            receipt_no, merchant_id, store_name, cashier_id, cashier_name,
            subtotal, tax, total, payment_method, cash_received, change_amount, created_at
        )
        VALUES (
            :receipt_no, :merchant_id, :store_name, :cashier_id, :cashier_name,
            :subtotal, :tax, :total, :payment_method, :cash_received, :change_amount, :created_at
        )
    `
	if _, err := tx.NamedExecContext(ctx, saleQuery, sale); err != nil {
		return fmt.Errorf("insert sale: %w", err)
	}

	itemQuery := `
        INSERT INTO sale_items (
            receipt_no, product_id, name, sku, quantity, unit_price, tax_rate, type
        )
        VALUES (
            :receipt_no, :product_id, :name, :sku, :quantity, :unit_price, :tax_rate, :type
        )
    `
	for _, item := range sale.Items {
		row := struct {
			ReceiptNo string `db:"receipt_no"`
			model.SaleItem
		}{ReceiptNo: sale.ReceiptNo, SaleItem: item}
		if _, err := tx.NamedExecContext(ctx, itemQuery, row); err != nil {
			return fmt.Errorf("insert sale item: %w", err)
		}
	}

	return tx.Commit()
}

func (r *PGHistoryRepository) List(ctx context.Context, merchantID string, limit int) ([]model.CompletedSale, error) {
	if limit <= 0 {
		limit = 20
	}

	var sales []model.CompletedSale
	query := `SELECT * FROM sales WHERE merchant_id = $1 ORDER BY created_at DESC LIMIT $2`
	if err := r.DB.SelectContext(ctx, &sales, query, merchantID, limit); err != nil {
		return nil, err
	}

	itemQuery := `SELECT product_id, name, sku, quantity, unit_price, tax_rate, type
        FROM sale_items WHERE receipt_no = $1`
	for i := range sales {
		var items []model.SaleItem
		if err := r.DB.SelectContext(ctx, &items, itemQuery, sales[i].ReceiptNo); err != nil {
			return nil, err
		}
		sales[i].Items = items
	}
	return sales, nil
}
