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
	cartColumns        = `id, user_id, date, created_at, updated_at`
	cartProductColumns = `id, cart_id, product_id, quantity, unit_price, discount_percent, total_amount`
)

type CartRepository struct {
	DB *sql.DB
}

func (r CartRepository) db() *sql.DB { return dbOrDefault(r.DB) }

func scanCart(row rowScanner) (models.Cart, error) {
	var c models.Cart
	err := row.Scan(&c.ID, &c.UserID, &c.Date, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

// List returns one page of carts with their products loaded.
func (r CartRepository) List(ctx context.Context, p domain.ListParams) ([]models.Cart, int, error) {
	clause := models.CartFields.Clause(p.Order, p.Filters)
	total, stmt, args, err := countAndPage(ctx, r.db(), "carts", cartColumns, clause, p)
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.db().QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("query carts: %w", err)
	}
	defer rows.Close()

	carts := []models.Cart{}
	for rows.Next() {
		c, err := scanCart(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan cart: %w", err)
		}
		carts = append(carts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	if err := r.attachProducts(ctx, carts); err != nil {
		return nil, 0, err
	}
	return carts, total, nil
}

func (r CartRepository) GetByID(ctx context.Context, id int64) (models.Cart, error) {
	row := r.db().QueryRowContext(ctx, `SELECT `+cartColumns+` FROM carts WHERE id=? LIMIT 1`, id)
	c, err := scanCart(row)
	if err != nil {
		return models.Cart{}, notFound(err, "cart", id)
	}
	carts := []models.Cart{c}
	if err := r.attachProducts(ctx, carts); err != nil {
		return models.Cart{}, err
	}
	return carts[0], nil
}

func (r CartRepository) attachProducts(ctx context.Context, carts []models.Cart) error {
	if len(carts) == 0 {
		return nil
	}
	index := make(map[int64]int, len(carts))
	placeholders := make([]string, len(carts))
	args := make([]any, len(carts))
	for i, c := range carts {
		index[c.ID] = i
		placeholders[i] = "?"
		args[i] = c.ID
		carts[i].Products = []models.CartProduct{}
	}

	rows, err := r.db().QueryContext(ctx,
		`SELECT `+cartProductColumns+` FROM cart_products WHERE cart_id IN (`+strings.Join(placeholders, ",")+`) ORDER BY cart_id, id`,
		args...)
	if err != nil {
		return fmt.Errorf("query cart products: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var cp models.CartProduct
		if err := rows.Scan(&cp.ID, &cp.CartID, &cp.ProductID, &cp.Quantity, &cp.UnitPrice, &cp.DiscountPercent, &cp.TotalAmount); err != nil {
			return fmt.Errorf("scan cart product: %w", err)
		}
		if i, ok := index[cp.CartID]; ok {
			carts[i].Products = append(carts[i].Products, cp)
		}
	}
	return rows.Err()
}

func insertCartProducts(ctx context.Context, q intdb.Querier, cartID int64, products []models.CartProduct) error {
	for i := range products {
		p := &products[i]
		res, err := q.ExecContext(ctx, `
			INSERT INTO cart_products (cart_id, product_id, quantity, unit_price, discount_percent, total_amount)
			VALUES (?, ?, ?, ?, ?, ?)`,
			cartID, p.ProductID, p.Quantity, p.UnitPrice, p.DiscountPercent, p.TotalAmount,
		)
		if err != nil {
			return conflict(err, "cart", "unknown product in cart")
		}
		p.CartID = cartID
		if p.ID, err = res.LastInsertId(); err != nil {
			return err
		}
	}
	return nil
}

// Create stores the cart and its products in one transaction.
func (r CartRepository) Create(ctx context.Context, c models.Cart) (models.Cart, error) {
	err := intdb.WithTx(ctx, r.db(), func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx,
			`INSERT INTO carts (user_id, date, created_at, updated_at) VALUES (?, ?, ?, ?)`,
			c.UserID, c.Date, c.CreatedAt, c.UpdatedAt)
		if err != nil {
			return conflict(err, "cart", "unknown user")
		}
		if c.ID, err = res.LastInsertId(); err != nil {
			return err
		}
		return insertCartProducts(ctx, tx, c.ID, c.Products)
	})
	return c, err
}

// Update replaces the cart header and its full product list.
func (r CartRepository) Update(ctx context.Context, c models.Cart) (models.Cart, error) {
	err := intdb.WithTx(ctx, r.db(), func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx,
			`UPDATE carts SET user_id=?, date=?, updated_at=? WHERE id=?`,
			c.UserID, c.Date, c.UpdatedAt, c.ID)
		if err != nil {
			return conflict(err, "cart", "unknown user")
		}
		if err := mustAffect(res, "cart", c.ID); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM cart_products WHERE cart_id=?`, c.ID); err != nil {
			return err
		}
		return insertCartProducts(ctx, tx, c.ID, c.Products)
	})
	return c, err
}

func (r CartRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db().ExecContext(ctx, `DELETE FROM carts WHERE id=?`, id)
	if err != nil {
		return err
	}
	return mustAffect(res, "cart", id)
}
