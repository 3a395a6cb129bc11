package services

import (
	"context"

	"backoffice/internal/domain"
	"backoffice/internal/domain/models"
	"backoffice/internal/repositories"
)

// The stores below are satisfied by the MySQL repositories. Services fall
// back to a repository on the global connection when a store is not set.

type UserStore interface {
	List(ctx context.Context, p domain.ListParams) ([]models.User, int, error)
	GetByID(ctx context.Context, id int64) (models.User, error)
	Create(ctx context.Context, u models.User) (models.User, error)
	Update(ctx context.Context, u models.User) (models.User, error)
	Delete(ctx context.Context, id int64) error
}

type ProductStore interface {
	List(ctx context.Context, p domain.ListParams) ([]models.Product, int, error)
	GetByID(ctx context.Context, id int64) (models.Product, error)
	GetByIDs(ctx context.Context, ids []int64) (map[int64]models.Product, error)
	Categories(ctx context.Context) ([]string, error)
	Create(ctx context.Context, p models.Product) (models.Product, error)
	Update(ctx context.Context, p models.Product) (models.Product, error)
	Delete(ctx context.Context, id int64) error
}

type CartStore interface {
	List(ctx context.Context, p domain.ListParams) ([]models.Cart, int, error)
	GetByID(ctx context.Context, id int64) (models.Cart, error)
	Create(ctx context.Context, c models.Cart) (models.Cart, error)
	Update(ctx context.Context, c models.Cart) (models.Cart, error)
	Delete(ctx context.Context, id int64) error
}

type SaleStore interface {
	List(ctx context.Context, p domain.ListParams) ([]models.Sale, int, error)
	GetByID(ctx context.Context, id int64) (models.Sale, error)
	Create(ctx context.Context, s models.Sale) (models.Sale, error)
	Save(ctx context.Context, s models.Sale) (models.Sale, error)
}

var (
	_ UserStore    = repositories.UserRepository{}
	_ ProductStore = repositories.ProductRepository{}
	_ CartStore    = repositories.CartRepository{}
	_ SaleStore    = repositories.SaleRepository{}
)

func userStore(s UserStore) UserStore {
	if s != nil {
		return s
	}
	return repositories.UserRepository{}
}

func productStore(s ProductStore) ProductStore {
	if s != nil {
		return s
	}
	return repositories.ProductRepository{}
}

func cartStore(s CartStore) CartStore {
	if s != nil {
		return s
	}
	return repositories.CartRepository{}
}

func saleStore(s SaleStore) SaleStore {
	if s != nil {
		return s
	}
	return repositories.SaleRepository{}
}
