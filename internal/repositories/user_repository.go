package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"backoffice/internal/domain"
	"backoffice/internal/domain/models"
)

const userColumns = `id, email, username, password_hash, first_name, last_name, phone,
	city, street, number, zipcode, geo_lat, geo_long, status, role, created_at, updated_at`

type UserRepository struct {
	DB *sql.DB
}

func (r UserRepository) db() *sql.DB { return dbOrDefault(r.DB) }

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (models.User, error) {
	var u models.User
	err := row.Scan(
		&u.ID,
		&u.Email,
		&u.Username,
		&u.PasswordHash,
		&u.Name.Firstname,
		&u.Name.Lastname,
		&u.Phone,
		&u.Address.City,
		&u.Address.Street,
		&u.Address.Number,
		&u.Address.Zipcode,
		&u.Address.Geolocation.Lat,
		&u.Address.Geolocation.Long,
		&u.Status,
		&u.Role,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	return u, err
}

// List returns one page of users filtered and ordered per p.
func (r UserRepository) List(ctx context.Context, p domain.ListParams) ([]models.User, int, error) {
	clause := models.UserFields.Clause(p.Order, p.Filters)
	total, stmt, args, err := countAndPage(ctx, r.db(), "users", userColumns, clause, p)
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.db().QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("query users: %w", err)
	}
	defer rows.Close()

	out := []models.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan user: %w", err)
		}
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r UserRepository) GetByID(ctx context.Context, id int64) (models.User, error) {
	row := r.db().QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id=? LIMIT 1`, id)
	u, err := scanUser(row)
	if err != nil {
		return models.User{}, notFound(err, "user", id)
	}
	return u, nil
}

func (r UserRepository) Create(ctx context.Context, u models.User) (models.User, error) {
	res, err := r.db().ExecContext(ctx, `
		INSERT INTO users (email, username, password_hash, first_name, last_name, phone,
			city, street, number, zipcode, geo_lat, geo_long, status, role, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		u.Email, u.Username, u.PasswordHash, u.Name.Firstname, u.Name.Lastname, u.Phone,
		u.Address.City, u.Address.Street, u.Address.Number, u.Address.Zipcode,
		u.Address.Geolocation.Lat, u.Address.Geolocation.Long,
		string(u.Status), string(u.Role), u.CreatedAt, u.UpdatedAt,
	)
	if err != nil {
		return u, conflict(err, "user", "email or username already registered")
	}
	u.ID, err = res.LastInsertId()
	return u, err
}

func (r UserRepository) Update(ctx context.Context, u models.User) (models.User, error) {
	res, err := r.db().ExecContext(ctx, `
		UPDATE users SET email=?, username=?, password_hash=?, first_name=?, last_name=?, phone=?,
			city=?, street=?, number=?, zipcode=?, geo_lat=?, geo_long=?, status=?, role=?, updated_at=?
		WHERE id=?`,
		u.Email, u.Username, u.PasswordHash, u.Name.Firstname, u.Name.Lastname, u.Phone,
		u.Address.City, u.Address.Street, u.Address.Number, u.Address.Zipcode,
		u.Address.Geolocation.Lat, u.Address.Geolocation.Long,
		string(u.Status), string(u.Role), u.UpdatedAt, u.ID,
	)
	if err != nil {
		return u, conflict(err, "user", "email or username already registered")
	}
	return u, mustAffect(res, "user", u.ID)
}

func (r UserRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db().ExecContext(ctx, `DELETE FROM users WHERE id=?`, id)
	if err != nil {
		return err
	}
	return mustAffect(res, "user", id)
}
