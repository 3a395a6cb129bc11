package services

import (
	"context"
	"fmt"
	"strings"

	"backoffice/internal/domain"
	"backoffice/internal/domain/models"
	"backoffice/internal/utils"

	"github.com/shopspring/decimal"
)

type ProductInput struct {
	Title       string          `json:"title" validate:"required,max=255"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
	Category    string          `json:"category" validate:"max=100"`
	Image       string          `json:"image" validate:"omitempty,url,max=512"`
	Rating      models.Rating   `json:"rating"`
}

type ProductService struct {
	Products  ProductStore
	RequestID string
}

func (s ProductService) List(ctx context.Context, p domain.ListParams) (domain.Page[models.Product], error) {
	p = p.Normalize()
	products, total, err := productStore(s.Products).List(ctx, p)
	if err != nil {
		return domain.Page[models.Product]{}, err
	}
	return domain.NewPage(products, total, p), nil
}

// ListByCategory is List with an exact category filter on top of p's filters.
func (s ProductService) ListByCategory(ctx context.Context, category string, p domain.ListParams) (domain.Page[models.Product], error) {
	filters := make(map[string]string, len(p.Filters)+1)
	for k, v := range p.Filters {
		if !strings.EqualFold(k, "category") {
			filters[k] = v
		}
	}
	filters["category"] = category
	p.Filters = filters
	return s.List(ctx, p)
}

func (s ProductService) Categories(ctx context.Context) ([]string, error) {
	return productStore(s.Products).Categories(ctx)
}

func (s ProductService) Get(ctx context.Context, id int64) (models.Product, error) {
	return productStore(s.Products).GetByID(ctx, id)
}

func (s ProductService) Create(ctx context.Context, in ProductInput) (models.Product, error) {
	in, err := checkProductInput(in)
	if err != nil {
		return models.Product{}, err
	}
	now := utils.NowUTC()
	p := applyProductInput(models.Product{CreatedAt: now}, in)
	p.UpdatedAt = now

	p, err = productStore(s.Products).Create(ctx, p)
	if err != nil {
		return models.Product{}, err
	}
	utils.LogEvent(s.RequestID, "product", "created", fmt.Sprintf("product_id=%d", p.ID))
	return p, nil
}

func (s ProductService) Update(ctx context.Context, id int64, in ProductInput) (models.Product, error) {
	in, err := checkProductInput(in)
	if err != nil {
		return models.Product{}, err
	}
	store := productStore(s.Products)
	current, err := store.GetByID(ctx, id)
	if err != nil {
		return models.Product{}, err
	}
	p := applyProductInput(current, in)
	p.UpdatedAt = utils.NowUTC()

	p, err = store.Update(ctx, p)
	if err != nil {
		return models.Product{}, err
	}
	utils.LogEvent(s.RequestID, "product", "modified", fmt.Sprintf("product_id=%d", p.ID))
	return p, nil
}

func (s ProductService) Delete(ctx context.Context, id int64) error {
	if err := productStore(s.Products).Delete(ctx, id); err != nil {
		return err
	}
	utils.LogEvent(s.RequestID, "product", "deleted", fmt.Sprintf("product_id=%d", id))
	return nil
}

func checkProductInput(in ProductInput) (ProductInput, error) {
	in.Title = utils.NormalizeSpace(in.Title)
	in.Category = strings.TrimSpace(in.Category)
	in.Image = strings.TrimSpace(in.Image)
	if err := validateStruct(in); err != nil {
		return in, err
	}
	if in.Price.IsNegative() {
		return in, domain.ValidationError{Field: "Price", Msg: "must not be negative"}
	}
	if in.Rating.Rate < 0 || in.Rating.Rate > 5 {
		return in, domain.ValidationError{Field: "Rate", Msg: "must be between 0 and 5"}
	}
	if in.Rating.Count < 0 {
		return in, domain.ValidationError{Field: "Count", Msg: "must not be negative"}
	}
	in.Price = utils.RoundMoney(in.Price)
	return in, nil
}

func applyProductInput(p models.Product, in ProductInput) models.Product {
	p.Title = in.Title
	p.Price = in.Price
	p.Description = in.Description
	p.Category = in.Category
	p.Image = in.Image
	p.Rating = in.Rating
	return p
}
