package services

import (
	"context"
	"fmt"

	"backoffice/internal/discount"
	"backoffice/internal/domain"
	"backoffice/internal/domain/models"
)

// LineInput asks for quantity units of one product.
type LineInput struct {
	ProductID int64 `json:"productId" validate:"required,gt=0"`
	Quantity  int   `json:"quantity" validate:"required,gt=0"`
}

// mergeLines folds repeated products into a single line, keeping first-seen order.
func mergeLines(in []LineInput) []LineInput {
	out := make([]LineInput, 0, len(in))
	index := make(map[int64]int, len(in))
	for _, l := range in {
		if i, ok := index[l.ProductID]; ok {
			out[i].Quantity += l.Quantity
			continue
		}
		index[l.ProductID] = len(out)
		out = append(out, l)
	}
	return out
}

// loadProducts fetches every product referenced by lines.
func loadProducts(ctx context.Context, store ProductStore, lines []LineInput) (map[int64]models.Product, error) {
	ids := make([]int64, 0, len(lines))
	for _, l := range lines {
		ids = append(ids, l.ProductID)
	}
	products, err := store.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		if _, ok := products[id]; !ok {
			return nil, domain.ValidationError{Field: "ProductID", Msg: fmt.Sprintf("product %d does not exist", id)}
		}
	}
	return products, nil
}

// reprice sets the quantity of line and runs the discount engine on it.
// line carries the stored state of the line, or only a unit price for a new one.
func reprice(line discount.LineItem, quantity int) (discount.LineItem, error) {
	line.Quantity = quantity
	if err := discount.Apply(&line); err != nil {
		return line, discountError(err)
	}
	return line, nil
}
