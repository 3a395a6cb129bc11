package models

import (
	"time"

	"backoffice/internal/discount"

	"github.com/shopspring/decimal"
)

// CartProduct is one product line of a cart. UnitPrice is copied from the
// product when the line is created; the discount fields follow the quantity.
type CartProduct struct {
	ID        int64 `json:"id"`
	CartID    int64 `json:"cartId"`
	ProductID int64 `json:"productId"`
	discount.LineItem
}

type Cart struct {
	ID        int64         `json:"id"`
	UserID    int64         `json:"userId"`
	Date      time.Time     `json:"date"`
	Products  []CartProduct `json:"products"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

// Total sums the discounted line totals.
func (c Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, p := range c.Products {
		total = total.Add(p.TotalAmount)
	}
	return total
}

// Find returns the line holding productID.
func (c Cart) Find(productID int64) (CartProduct, bool) {
	for _, p := range c.Products {
		if p.ProductID == productID {
			return p, true
		}
	}
	return CartProduct{}, false
}
