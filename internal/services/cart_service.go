package services

import (
	"context"
	"fmt"
	"time"

	"backoffice/internal/discount"
	"backoffice/internal/domain"
	"backoffice/internal/domain/models"
	"backoffice/internal/utils"
)

type CartInput struct {
	UserID   int64       `json:"userId" validate:"required,gt=0"`
	Date     time.Time   `json:"date"`
	Products []LineInput `json:"products" validate:"dive"`
}

type CartService struct {
	Carts     CartStore
	Products  ProductStore
	Sales     SaleService
	RequestID string
}

func (s CartService) List(ctx context.Context, p domain.ListParams) (domain.Page[models.Cart], error) {
	p = p.Normalize()
	carts, total, err := cartStore(s.Carts).List(ctx, p)
	if err != nil {
		return domain.Page[models.Cart]{}, err
	}
	return domain.NewPage(carts, total, p), nil
}

func (s CartService) Get(ctx context.Context, id int64) (models.Cart, error) {
	return cartStore(s.Carts).GetByID(ctx, id)
}

// ListProducts filters, orders and pages the lines of one cart.
func (s CartService) ListProducts(ctx context.Context, id int64, p domain.ListParams) (domain.Page[models.CartProduct], error) {
	cart, err := cartStore(s.Carts).GetByID(ctx, id)
	if err != nil {
		return domain.Page[models.CartProduct]{}, err
	}
	lines := models.CartProductFields.Apply(cart.Products, p.Order, p.Filters)
	return domain.Paginate(lines, p), nil
}

func (s CartService) Create(ctx context.Context, in CartInput) (models.Cart, error) {
	if err := validateStruct(in); err != nil {
		return models.Cart{}, err
	}
	now := utils.NowUTC()
	cart := models.Cart{UserID: in.UserID, Date: dateOr(in.Date, now), CreatedAt: now, UpdatedAt: now}

	lines, err := s.priceLines(ctx, cart, in.Products)
	if err != nil {
		return models.Cart{}, err
	}
	cart.Products = lines

	cart, err = cartStore(s.Carts).Create(ctx, cart)
	if err != nil {
		return models.Cart{}, err
	}
	utils.LogEvent(s.RequestID, "cart", "created", fmt.Sprintf("cart_id=%d lines=%d", cart.ID, len(cart.Products)))
	return cart, nil
}

// Update replaces the product lines of a cart. Lines already in the cart keep
// their unit price and are repriced from their stored discount state.
func (s CartService) Update(ctx context.Context, id int64, in CartInput) (models.Cart, error) {
	if err := validateStruct(in); err != nil {
		return models.Cart{}, err
	}
	store := cartStore(s.Carts)
	current, err := store.GetByID(ctx, id)
	if err != nil {
		return models.Cart{}, err
	}

	lines, err := s.priceLines(ctx, current, in.Products)
	if err != nil {
		return models.Cart{}, err
	}
	cart := current
	cart.UserID = in.UserID
	cart.Date = dateOr(in.Date, current.Date)
	cart.Products = lines
	cart.UpdatedAt = utils.NowUTC()

	cart, err = store.Update(ctx, cart)
	if err != nil {
		return models.Cart{}, err
	}
	utils.LogEvent(s.RequestID, "cart", "modified", fmt.Sprintf("cart_id=%d lines=%d", cart.ID, len(cart.Products)))
	return cart, nil
}

func (s CartService) Delete(ctx context.Context, id int64) error {
	if err := cartStore(s.Carts).Delete(ctx, id); err != nil {
		return err
	}
	utils.LogEvent(s.RequestID, "cart", "deleted", fmt.Sprintf("cart_id=%d", id))
	return nil
}

// Checkout turns the cart into a sale for the cart's user.
func (s CartService) Checkout(ctx context.Context, id int64, branch string) (models.Sale, error) {
	cart, err := cartStore(s.Carts).GetByID(ctx, id)
	if err != nil {
		return models.Sale{}, err
	}
	if len(cart.Products) == 0 {
		return models.Sale{}, domain.ValidationError{Field: "Products", Msg: "cart is empty"}
	}
	in := SaleInput{CustomerID: cart.UserID, Branch: branch}
	for _, p := range cart.Products {
		in.Items = append(in.Items, LineInput{ProductID: p.ProductID, Quantity: p.Quantity})
	}

	sales := s.Sales
	if sales.Products == nil {
		sales.Products = s.Products
	}
	if sales.RequestID == "" {
		sales.RequestID = s.RequestID
	}
	sale, err := sales.Create(ctx, in)
	if err != nil {
		return models.Sale{}, err
	}
	utils.LogEvent(s.RequestID, "cart", "checked_out", fmt.Sprintf("cart_id=%d sale_id=%d", cart.ID, sale.ID))
	return sale, nil
}

func (s CartService) priceLines(ctx context.Context, current models.Cart, in []LineInput) ([]models.CartProduct, error) {
	merged := mergeLines(in)
	products, err := loadProducts(ctx, productStore(s.Products), merged)
	if err != nil {
		return nil, err
	}

	out := make([]models.CartProduct, 0, len(merged))
	for _, l := range merged {
		line := discount.LineItem{UnitPrice: products[l.ProductID].Price}
		if prev, ok := current.Find(l.ProductID); ok {
			line = prev.LineItem
		}
		priced, err := reprice(line, l.Quantity)
		if err != nil {
			return nil, err
		}
		out = append(out, models.CartProduct{CartID: current.ID, ProductID: l.ProductID, LineItem: priced})
	}
	return out, nil
}

func dateOr(in, fallback time.Time) time.Time {
	if in.IsZero() {
		return fallback
	}
	return in.UTC().Truncate(time.Second)
}
