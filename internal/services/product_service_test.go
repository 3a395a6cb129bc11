package services

import (
	"context"
	"testing"

	"backoffice/internal/domain"
	"backoffice/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductCreate(t *testing.T) {
	svc := ProductService{Products: newMemProducts()}

	p, err := svc.Create(context.Background(), ProductInput{
		Title:    "  Field   Watch ",
		Price:    dec("19.999"),
		Category: "accessories",
		Image:    "https://img.example.com/watch.png",
		Rating:   models.Rating{Rate: 4.1, Count: 12},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), p.ID)
	assert.Equal(t, "Field Watch", p.Title)
	assertMoney(t, "20", p.Price)
}

func TestProductCreateValidation(t *testing.T) {
	svc := ProductService{Products: newMemProducts()}
	ctx := context.Background()

	_, err := svc.Create(ctx, ProductInput{Price: dec("1")})
	requireFieldError(t, err, "Title")

	_, err = svc.Create(ctx, ProductInput{Title: "Mug", Price: dec("-1")})
	requireFieldError(t, err, "Price")

	_, err = svc.Create(ctx, ProductInput{Title: "Mug", Price: dec("1"), Rating: models.Rating{Rate: 6}})
	requireFieldError(t, err, "Rate")

	_, err = svc.Create(ctx, ProductInput{Title: "Mug", Price: dec("1"), Image: "not a url"})
	requireFieldError(t, err, "Image")
}

func TestProductUpdate(t *testing.T) {
	svc := ProductService{Products: catalog()}

	p, err := svc.Update(context.Background(), 2, ProductInput{Title: "Tee", Price: dec("18"), Category: "clothing"})
	require.NoError(t, err)
	assert.Equal(t, "Tee", p.Title)

	_, err = svc.Update(context.Background(), 42, ProductInput{Title: "Tee", Price: dec("18")})
	assert.True(t, domain.IsNotFound(err))
}

func TestProductCategoriesAndListByCategory(t *testing.T) {
	svc := ProductService{Products: catalog()}
	ctx := context.Background()

	cats, err := svc.Categories(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"bags", "clothing"}, cats)

	page, err := svc.ListByCategory(ctx, "clothing", domain.ListParams{
		Order:   "price desc",
		Filters: map[string]string{"Category": "bags"},
	})
	require.NoError(t, err)
	require.Len(t, page.Data, 2)
	assert.Equal(t, "Jacket", page.Data[0].Title)
	assert.Equal(t, "T-Shirt", page.Data[1].Title)

	page, err = svc.ListByCategory(ctx, "Clothing", domain.ListParams{})
	require.NoError(t, err)
	assert.Empty(t, page.Data)
	assert.Equal(t, 0, page.TotalPages)
}

func TestProductDelete(t *testing.T) {
	store := catalog()
	svc := ProductService{Products: store}

	require.NoError(t, svc.Delete(context.Background(), 1))
	assert.NotContains(t, store.rows, int64(1))
}
