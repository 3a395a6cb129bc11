package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	intdb "backoffice/internal/db"
	"backoffice/internal/domain"
	"backoffice/internal/domain/models"
)

const (
	saleColumns     = `id, sale_number, sale_date, customer_id, customer_name, branch, total_amount, is_cancelled, created_at, updated_at`
	saleItemColumns = `id, sale_id, product_id, product_title, quantity, unit_price, discount_percent, total_amount, is_cancelled`
)

type SaleRepository struct {
	DB *sql.DB
}

func (r SaleRepository) db() *sql.DB { return dbOrDefault(r.DB) }

func scanSale(row rowScanner) (models.Sale, error) {
	var s models.Sale
	err := row.Scan(
		&s.ID,
		&s.SaleNumber,
		&s.SaleDate,
		&s.CustomerID,
		&s.CustomerName,
		&s.Branch,
		&s.TotalAmount,
		&s.IsCancelled,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	return s, err
}

// List returns one page of sales with their items loaded.
func (r SaleRepository) List(ctx context.Context, p domain.ListParams) ([]models.Sale, int, error) {
	clause := models.SaleFields.Clause(p.Order, p.Filters)
	total, stmt, args, err := countAndPage(ctx, r.db(), "sales", saleColumns, clause, p)
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.db().QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("query sales: %w", err)
	}
	defer rows.Close()

	sales := []models.Sale{}
	for rows.Next() {
		s, err := scanSale(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan sale: %w", err)
		}
		sales = append(sales, s)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	if err := r.attachItems(ctx, sales); err != nil {
		return nil, 0, err
	}
	return sales, total, nil
}

func (r SaleRepository) GetByID(ctx context.Context, id int64) (models.Sale, error) {
	row := r.db().QueryRowContext(ctx, `SELECT `+saleColumns+` FROM sales WHERE id=? LIMIT 1`, id)
	s, err := scanSale(row)
	if err != nil {
		return models.Sale{}, notFound(err, "sale", id)
	}
	sales := []models.Sale{s}
	if err := r.attachItems(ctx, sales); err != nil {
		return models.Sale{}, err
	}
	return sales[0], nil
}

func (r SaleRepository) attachItems(ctx context.Context, sales []models.Sale) error {
	if len(sales) == 0 {
		return nil
	}
	index := make(map[int64]int, len(sales))
	placeholders := make([]string, len(sales))
	args := make([]any, len(sales))
	for i, s := range sales {
		index[s.ID] = i
		placeholders[i] = "?"
		args[i] = s.ID
		sales[i].Items = []models.SaleItem{}
	}

	rows, err := r.db().QueryContext(ctx,
		`SELECT `+saleItemColumns+` FROM sale_items WHERE sale_id IN (`+strings.Join(placeholders, ",")+`) ORDER BY sale_id, id`,
		args...)
	if err != nil {
		return fmt.Errorf("query sale items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var it models.SaleItem
		if err := rows.Scan(
			&it.ID,
			&it.SaleID,
			&it.ProductID,
			&it.ProductTitle,
			&it.Quantity,
			&it.UnitPrice,
			&it.DiscountPercent,
			&it.TotalAmount,
			&it.IsCancelled,
		); err != nil {
			return fmt.Errorf("scan sale item: %w", err)
		}
		if i, ok := index[it.SaleID]; ok {
			sales[i].Items = append(sales[i].Items, it)
		}
	}
	return rows.Err()
}

// saveItems updates items that already have an id and inserts the rest.
func saveItems(ctx context.Context, q intdb.Querier, saleID int64, items []models.SaleItem) error {
	for i := range items {
		it := &items[i]
		if it.ID > 0 {
			res, err := q.ExecContext(ctx, `
				UPDATE sale_items SET quantity=?, unit_price=?, discount_percent=?, total_amount=?, is_cancelled=?
				WHERE id=? AND sale_id=?`,
				it.Quantity, it.UnitPrice, it.DiscountPercent, it.TotalAmount, it.IsCancelled, it.ID, saleID,
			)
			if err != nil {
				return err
			}
			if err := mustAffect(res, "sale item", it.ID); err != nil {
				return err
			}
			continue
		}
		res, err := q.ExecContext(ctx, `
			INSERT INTO sale_items (sale_id, product_id, product_title, quantity, unit_price, discount_percent, total_amount, is_cancelled)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			saleID, it.ProductID, it.ProductTitle, it.Quantity, it.UnitPrice, it.DiscountPercent, it.TotalAmount, it.IsCancelled,
		)
		if err != nil {
			return err
		}
		it.SaleID = saleID
		if it.ID, err = res.LastInsertId(); err != nil {
			return err
		}
	}
	return nil
}

// Create stores the sale and its items in one transaction.
func (r SaleRepository) Create(ctx context.Context, s models.Sale) (models.Sale, error) {
	err := intdb.WithTx(ctx, r.db(), func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
			INSERT INTO sales (sale_number, sale_date, customer_id, customer_name, branch, total_amount, is_cancelled, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			s.SaleNumber, s.SaleDate, s.CustomerID, s.CustomerName, s.Branch, s.TotalAmount, s.IsCancelled, s.CreatedAt, s.UpdatedAt,
		)
		if err != nil {
			return conflict(err, "sale", "sale number already used")
		}
		if s.ID, err = res.LastInsertId(); err != nil {
			return err
		}
		return saveItems(ctx, tx, s.ID, s.Items)
	})
	return s, err
}

// Save writes the sale header and every item in one transaction.
func (r SaleRepository) Save(ctx context.Context, s models.Sale) (models.Sale, error) {
	err := intdb.WithTx(ctx, r.db(), func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
			UPDATE sales SET sale_number=?, sale_date=?, customer_id=?, customer_name=?, branch=?, total_amount=?, is_cancelled=?, updated_at=?
			WHERE id=?`,
			s.SaleNumber, s.SaleDate, s.CustomerID, s.CustomerName, s.Branch, s.TotalAmount, s.IsCancelled, s.UpdatedAt, s.ID,
		)
		if err != nil {
			return conflict(err, "sale", "sale number already used")
		}
		if err := mustAffect(res, "sale", s.ID); err != nil {
			return err
		}
		return saveItems(ctx, tx, s.ID, s.Items)
	})
	return s, err
}
