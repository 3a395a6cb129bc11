package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"backoffice/internal/domain"
	"backoffice/internal/domain/models"
)

const productColumns = `id, title, price, description, category, image, rating_rate, rating_count, created_at, updated_at`

type ProductRepository struct {
	DB *sql.DB
}

func (r ProductRepository) db() *sql.DB { return dbOrDefault(r.DB) }

func scanProduct(row rowScanner) (models.Product, error) {
	var p models.Product
	err := row.Scan(
		&p.ID,
		&p.Title,
		&p.Price,
		&p.Description,
		&p.Category,
		&p.Image,
		&p.Rating.Rate,
		&p.Rating.Count,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	return p, err
}

func (r ProductRepository) queryProducts(ctx context.Context, stmt string, args ...any) ([]models.Product, error) {
	rows, err := r.db().QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	out := []models.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// List returns one page of products filtered and ordered per p.
func (r ProductRepository) List(ctx context.Context, p domain.ListParams) ([]models.Product, int, error) {
	clause := models.ProductFields.Clause(p.Order, p.Filters)
	total, stmt, args, err := countAndPage(ctx, r.db(), "products", productColumns, clause, p)
	if err != nil {
		return nil, 0, err
	}
	out, err := r.queryProducts(ctx, stmt, args...)
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r ProductRepository) GetByID(ctx context.Context, id int64) (models.Product, error) {
	row := r.db().QueryRowContext(ctx, `SELECT `+productColumns+` FROM products WHERE id=? LIMIT 1`, id)
	p, err := scanProduct(row)
	if err != nil {
		return models.Product{}, notFound(err, "product", id)
	}
	return p, nil
}

// GetByIDs loads the given products keyed by id; missing ids are simply absent.
func (r ProductRepository) GetByIDs(ctx context.Context, ids []int64) (map[int64]models.Product, error) {
	out := make(map[int64]models.Product, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	placeholders := make([]string, len(ids))
	args := make([]any, len(ids))
	for i, id := range ids {
		placeholders[i] = "?"
		args[i] = id
	}
	list, err := r.queryProducts(ctx,
		`SELECT `+productColumns+` FROM products WHERE id IN (`+strings.Join(placeholders, ",")+`)`, args...)
	if err != nil {
		return nil, err
	}
	for _, p := range list {
		out[p.ID] = p
	}
	return out, nil
}

// Categories lists the distinct product categories alphabetically.
func (r ProductRepository) Categories(ctx context.Context) ([]string, error) {
	rows, err := r.db().QueryContext(ctx, `SELECT DISTINCT category FROM products WHERE category <> '' ORDER BY category`)
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}
	defer rows.Close()

	out := []string{}
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r ProductRepository) Create(ctx context.Context, p models.Product) (models.Product, error) {
	res, err := r.db().ExecContext(ctx, `
		INSERT INTO products (title, price, description, category, image, rating_rate, rating_count, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.Title, p.Price, p.Description, p.Category, p.Image, p.Rating.Rate, p.Rating.Count, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return p, conflict(err, "product", "product already exists")
	}
	p.ID, err = res.LastInsertId()
	return p, err
}

func (r ProductRepository) Update(ctx context.Context, p models.Product) (models.Product, error) {
	res, err := r.db().ExecContext(ctx, `
		UPDATE products SET title=?, price=?, description=?, category=?, image=?, rating_rate=?, rating_count=?, updated_at=?
		WHERE id=?`,
		p.Title, p.Price, p.Description, p.Category, p.Image, p.Rating.Rate, p.Rating.Count, p.UpdatedAt, p.ID,
	)
	if err != nil {
		return p, err
	}
	return p, mustAffect(res, "product", p.ID)
}

func (r ProductRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db().ExecContext(ctx, `DELETE FROM products WHERE id=?`, id)
	if err != nil {
		return conflict(err, "product", "product is referenced by a cart")
	}
	return mustAffect(res, "product", id)
}
