package models

import (
	"time"

	"backoffice/internal/discount"

	"github.com/shopspring/decimal"
)

type SaleItem struct {
	ID           int64  `json:"id"`
	SaleID       int64  `json:"saleId"`
	ProductID    int64  `json:"productId"`
	ProductTitle string `json:"productTitle"`
	discount.LineItem
	IsCancelled bool `json:"isCancelled"`
}

type Sale struct {
	ID           int64           `json:"id"`
	SaleNumber   string          `json:"saleNumber"`
	SaleDate     time.Time       `json:"saleDate"`
	CustomerID   int64           `json:"customerId"`
	CustomerName string          `json:"customerName"`
	Branch       string          `json:"branch"`
	TotalAmount  decimal.Decimal `json:"totalAmount"`
	IsCancelled  bool            `json:"isCancelled"`
	Items        []SaleItem      `json:"items"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

// Recalculate sets TotalAmount to the sum of the active item totals.
func (s *Sale) Recalculate() {
	total := decimal.Zero
	for _, it := range s.Items {
		if it.IsCancelled {
			continue
		}
		total = total.Add(it.TotalAmount)
	}
	s.TotalAmount = total
}

// Item returns a pointer into Items for id, or nil.
func (s *Sale) Item(id int64) *SaleItem {
	for i := range s.Items {
		if s.Items[i].ID == id {
			return &s.Items[i]
		}
	}
	return nil
}
