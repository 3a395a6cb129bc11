package models

import (
	"time"

	"backoffice/internal/query"

	"github.com/shopspring/decimal"
)

// Filterable and sortable fields per entity. Names follow the JSON field
// names; columns are the MySQL columns the repositories select from.

var UserFields = query.NewSchema(
	query.Int("id", "id", func(u User) int64 { return u.ID }),
	query.String("email", "email", func(u User) string { return u.Email }),
	query.String("username", "username", func(u User) string { return u.Username }),
	query.String("firstname", "first_name", func(u User) string { return u.Name.Firstname }),
	query.String("lastname", "last_name", func(u User) string { return u.Name.Lastname }),
	query.String("city", "city", func(u User) string { return u.Address.City }),
	query.String("phone", "phone", func(u User) string { return u.Phone }),
	query.Enum("status", "status", func(u User) UserStatus { return u.Status }, UserActive, UserInactive, UserSuspended),
	query.Enum("role", "role", func(u User) UserRole { return u.Role }, RoleCustomer, RoleManager, RoleAdmin),
	query.Time("createdAt", "created_at", func(u User) time.Time { return u.CreatedAt }),
).WithDefaultOrder("id ASC")

var ProductFields = query.NewSchema(
	query.Int("id", "id", func(p Product) int64 { return p.ID }),
	query.String("title", "title", func(p Product) string { return p.Title }),
	query.Decimal("price", "price", func(p Product) decimal.Decimal { return p.Price }),
	query.String("description", "description", func(p Product) string { return p.Description }),
	query.String("category", "category", func(p Product) string { return p.Category }),
	query.Float("rate", "rating_rate", func(p Product) float64 { return p.Rating.Rate }),
	query.Int("count", "rating_count", func(p Product) int { return p.Rating.Count }),
	query.Time("createdAt", "created_at", func(p Product) time.Time { return p.CreatedAt }),
).WithDefaultOrder("id ASC")

var CartFields = query.NewSchema(
	query.Int("id", "id", func(c Cart) int64 { return c.ID }),
	query.Int("userId", "user_id", func(c Cart) int64 { return c.UserID }),
	query.Time("date", "date", func(c Cart) time.Time { return c.Date }),
).WithDefaultOrder("id ASC")

// CartProductFields is used in memory over the lines of one cart.
var CartProductFields = query.NewSchema(
	query.Int("productId", "", func(p CartProduct) int64 { return p.ProductID }),
	query.Int("quantity", "", func(p CartProduct) int { return p.Quantity }),
	query.Decimal("unitPrice", "", func(p CartProduct) decimal.Decimal { return p.UnitPrice }),
	query.Decimal("discount", "", func(p CartProduct) decimal.Decimal { return p.DiscountPercent }),
	query.Decimal("totalAmount", "", func(p CartProduct) decimal.Decimal { return p.TotalAmount }),
)

var SaleFields = query.NewSchema(
	query.Int("id", "id", func(s Sale) int64 { return s.ID }),
	query.String("saleNumber", "sale_number", func(s Sale) string { return s.SaleNumber }),
	query.Time("saleDate", "sale_date", func(s Sale) time.Time { return s.SaleDate }),
	query.Int("customerId", "customer_id", func(s Sale) int64 { return s.CustomerID }),
	query.String("customerName", "customer_name", func(s Sale) string { return s.CustomerName }),
	query.String("branch", "branch", func(s Sale) string { return s.Branch }),
	query.Decimal("totalAmount", "total_amount", func(s Sale) decimal.Decimal { return s.TotalAmount }),
	query.Bool("isCancelled", "is_cancelled", func(s Sale) bool { return s.IsCancelled }),
).WithDefaultOrder("id ASC")

// SaleItemFields is used in memory over the items of one sale.
var SaleItemFields = query.NewSchema(
	query.Int("productId", "", func(i SaleItem) int64 { return i.ProductID }),
	query.String("productTitle", "", func(i SaleItem) string { return i.ProductTitle }),
	query.Int("quantity", "", func(i SaleItem) int { return i.Quantity }),
	query.Decimal("unitPrice", "", func(i SaleItem) decimal.Decimal { return i.UnitPrice }),
	query.Decimal("discount", "", func(i SaleItem) decimal.Decimal { return i.DiscountPercent }),
	query.Decimal("totalAmount", "", func(i SaleItem) decimal.Decimal { return i.TotalAmount }),
	query.Bool("isCancelled", "", func(i SaleItem) bool { return i.IsCancelled }),
)
