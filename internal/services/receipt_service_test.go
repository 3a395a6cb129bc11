package services

import (
	"bytes"
	"context"
	"testing"
	"time"

	"backoffice/internal/discount"
	"backoffice/internal/domain"
	"backoffice/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReceiptGenerate(t *testing.T) {
	store := newMemSales()
	store.rows[1] = models.Sale{
		ID:           1,
		SaleNumber:   "S-0001",
		SaleDate:     time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
		CustomerID:   7,
		CustomerName: "Jane Doe",
		Branch:       "Downtown",
		TotalAmount:  dec("450"),
		Items: []models.SaleItem{
			{ID: 1, ProductID: 1, ProductTitle: "Backpack", LineItem: discount.LineItem{
				Quantity: 5, UnitPrice: dec("100"), DiscountPercent: dec("10"), TotalAmount: dec("450"),
			}},
			{ID: 2, ProductID: 2, ProductTitle: "T-Shirt", IsCancelled: true, LineItem: discount.LineItem{
				Quantity: 1, UnitPrice: dec("20"), TotalAmount: dec("20"),
			}},
		},
	}

	svc := ReceiptService{Sales: store}
	pdf, filename, err := svc.Receipt(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")))
	assert.Equal(t, "RECEIPT_S-0001.pdf", filename)
}

func TestReceiptMissingSale(t *testing.T) {
	svc := ReceiptService{Sales: newMemSales()}

	_, _, err := svc.Receipt(context.Background(), 5)
	assert.True(t, domain.IsNotFound(err))
}
