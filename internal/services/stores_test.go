package services

import (
	"context"
	"slices"

	"backoffice/internal/domain"
	"backoffice/internal/domain/models"

	"github.com/shopspring/decimal"
)

type memUsers struct {
	rows   map[int64]models.User
	nextID int64
}

func newMemUsers(users ...models.User) *memUsers {
	m := &memUsers{rows: map[int64]models.User{}}
	for _, u := range users {
		m.rows[u.ID] = u
		m.nextID = max(m.nextID, u.ID)
	}
	return m
}

func (m *memUsers) List(_ context.Context, p domain.ListParams) ([]models.User, int, error) {
	all := make([]models.User, 0, len(m.rows))
	for _, u := range m.rows {
		all = append(all, u)
	}
	all = models.UserFields.Apply(all, p.Order+", id ASC", p.Filters)
	page := domain.Paginate(all, p)
	return page.Data, page.TotalItems, nil
}

func (m *memUsers) GetByID(_ context.Context, id int64) (models.User, error) {
	u, ok := m.rows[id]
	if !ok {
		return models.User{}, domain.NotFoundError{Resource: "user", ID: id}
	}
	return u, nil
}

func (m *memUsers) Create(_ context.Context, u models.User) (models.User, error) {
	for _, other := range m.rows {
		if other.Email == u.Email || other.Username == u.Username {
			return u, domain.ConflictError{Resource: "user", Msg: "email or username already registered"}
		}
	}
	m.nextID++
	u.ID = m.nextID
	m.rows[u.ID] = u
	return u, nil
}

func (m *memUsers) Update(_ context.Context, u models.User) (models.User, error) {
	if _, ok := m.rows[u.ID]; !ok {
		return u, domain.NotFoundError{Resource: "user", ID: u.ID}
	}
	m.rows[u.ID] = u
	return u, nil
}

func (m *memUsers) Delete(_ context.Context, id int64) error {
	if _, ok := m.rows[id]; !ok {
		return domain.NotFoundError{Resource: "user", ID: id}
	}
	delete(m.rows, id)
	return nil
}

type memProducts struct {
	rows   map[int64]models.Product
	nextID int64
}

func newMemProducts(products ...models.Product) *memProducts {
	m := &memProducts{rows: map[int64]models.Product{}}
	for _, p := range products {
		m.rows[p.ID] = p
		m.nextID = max(m.nextID, p.ID)
	}
	return m
}

func (m *memProducts) List(_ context.Context, p domain.ListParams) ([]models.Product, int, error) {
	all := make([]models.Product, 0, len(m.rows))
	for _, pr := range m.rows {
		all = append(all, pr)
	}
	all = models.ProductFields.Apply(all, p.Order+", id ASC", p.Filters)
	page := domain.Paginate(all, p)
	return page.Data, page.TotalItems, nil
}

func (m *memProducts) GetByID(_ context.Context, id int64) (models.Product, error) {
	p, ok := m.rows[id]
	if !ok {
		return models.Product{}, domain.NotFoundError{Resource: "product", ID: id}
	}
	return p, nil
}

func (m *memProducts) GetByIDs(_ context.Context, ids []int64) (map[int64]models.Product, error) {
	out := map[int64]models.Product{}
	for _, id := range ids {
		if p, ok := m.rows[id]; ok {
			out[id] = p
		}
	}
	return out, nil
}

func (m *memProducts) Categories(context.Context) ([]string, error) {
	out := []string{}
	for _, p := range m.rows {
		if p.Category != "" && !slices.Contains(out, p.Category) {
			out = append(out, p.Category)
		}
	}
	slices.Sort(out)
	return out, nil
}

func (m *memProducts) Create(_ context.Context, p models.Product) (models.Product, error) {
	m.nextID++
	p.ID = m.nextID
	m.rows[p.ID] = p
	return p, nil
}

func (m *memProducts) Update(_ context.Context, p models.Product) (models.Product, error) {
	if _, ok := m.rows[p.ID]; !ok {
		return p, domain.NotFoundError{Resource: "product", ID: p.ID}
	}
	m.rows[p.ID] = p
	return p, nil
}

func (m *memProducts) Delete(_ context.Context, id int64) error {
	if _, ok := m.rows[id]; !ok {
		return domain.NotFoundError{Resource: "product", ID: id}
	}
	delete(m.rows, id)
	return nil
}

type memCarts struct {
	rows   map[int64]models.Cart
	nextID int64
	lineID int64
}

func newMemCarts() *memCarts { return &memCarts{rows: map[int64]models.Cart{}} }

func (m *memCarts) List(_ context.Context, p domain.ListParams) ([]models.Cart, int, error) {
	all := make([]models.Cart, 0, len(m.rows))
	for _, c := range m.rows {
		all = append(all, c)
	}
	all = models.CartFields.Apply(all, p.Order+", id ASC", p.Filters)
	page := domain.Paginate(all, p)
	return page.Data, page.TotalItems, nil
}

func (m *memCarts) GetByID(_ context.Context, id int64) (models.Cart, error) {
	c, ok := m.rows[id]
	if !ok {
		return models.Cart{}, domain.NotFoundError{Resource: "cart", ID: id}
	}
	c.Products = slices.Clone(c.Products)
	return c, nil
}

func (m *memCarts) store(c models.Cart) models.Cart {
	c.Products = slices.Clone(c.Products)
	for i := range c.Products {
		m.lineID++
		c.Products[i].ID = m.lineID
		c.Products[i].CartID = c.ID
	}
	m.rows[c.ID] = c
	return c
}

func (m *memCarts) Create(_ context.Context, c models.Cart) (models.Cart, error) {
	m.nextID++
	c.ID = m.nextID
	return m.store(c), nil
}

func (m *memCarts) Update(_ context.Context, c models.Cart) (models.Cart, error) {
	if _, ok := m.rows[c.ID]; !ok {
		return c, domain.NotFoundError{Resource: "cart", ID: c.ID}
	}
	return m.store(c), nil
}

func (m *memCarts) Delete(_ context.Context, id int64) error {
	if _, ok := m.rows[id]; !ok {
		return domain.NotFoundError{Resource: "cart", ID: id}
	}
	delete(m.rows, id)
	return nil
}

type memSales struct {
	rows   map[int64]models.Sale
	nextID int64
	itemID int64
}

func newMemSales() *memSales { return &memSales{rows: map[int64]models.Sale{}} }

func (m *memSales) List(_ context.Context, p domain.ListParams) ([]models.Sale, int, error) {
	all := make([]models.Sale, 0, len(m.rows))
	for _, s := range m.rows {
		all = append(all, s)
	}
	all = models.SaleFields.Apply(all, p.Order+", id ASC", p.Filters)
	page := domain.Paginate(all, p)
	return page.Data, page.TotalItems, nil
}

func (m *memSales) GetByID(_ context.Context, id int64) (models.Sale, error) {
	s, ok := m.rows[id]
	if !ok {
		return models.Sale{}, domain.NotFoundError{Resource: "sale", ID: id}
	}
	s.Items = slices.Clone(s.Items)
	return s, nil
}

func (m *memSales) store(s models.Sale) models.Sale {
	s.Items = slices.Clone(s.Items)
	for i := range s.Items {
		if s.Items[i].ID == 0 {
			m.itemID++
			s.Items[i].ID = m.itemID
		}
		s.Items[i].SaleID = s.ID
	}
	m.rows[s.ID] = s
	return s
}

func (m *memSales) Create(_ context.Context, s models.Sale) (models.Sale, error) {
	m.nextID++
	s.ID = m.nextID
	return m.store(s), nil
}

func (m *memSales) Save(_ context.Context, s models.Sale) (models.Sale, error) {
	if _, ok := m.rows[s.ID]; !ok {
		return s, domain.NotFoundError{Resource: "sale", ID: s.ID}
	}
	return m.store(s), nil
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func catalog() *memProducts {
	return newMemProducts(
		models.Product{ID: 1, Title: "Backpack", Price: dec("100.00"), Category: "bags"},
		models.Product{ID: 2, Title: "T-Shirt", Price: dec("20.00"), Category: "clothing"},
		models.Product{ID: 3, Title: "Jacket", Price: dec("55.50"), Category: "clothing"},
	)
}

func customers() *memUsers {
	return newMemUsers(models.User{
		ID:       7,
		Email:    "jane@example.com",
		Username: "jane",
		Name:     models.Name{Firstname: "Jane", Lastname: "Doe"},
		Status:   models.UserActive,
		Role:     models.RoleCustomer,
	})
}
