package services

import (
	"bytes"
	"context"
	"fmt"

	"backoffice/internal/domain/models"
	"backoffice/internal/utils"

	"github.com/phpdave11/gofpdf"
)

// ReceiptService renders a sale as a PDF receipt.
type ReceiptService struct {
	Sales     SaleStore
	RequestID string
}

// Receipt returns the PDF bytes and a download file name for sale id.
func (s ReceiptService) Receipt(ctx context.Context, id int64) ([]byte, string, error) {
	sale, err := saleStore(s.Sales).GetByID(ctx, id)
	if err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.RequestID, "receipt", "generate_receipt", fmt.Sprintf("sale_id=%d", id))
	return buildReceiptPDF(sale)
}

func buildReceiptPDF(sale models.Sale) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Receipt "+sale.SaleNumber, false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "SALES RECEIPT")
	pdf.Ln(12)
	if sale.IsCancelled {
		pdf.SetTextColor(200, 0, 0)
		pdf.Cell(0, 8, "CANCELLED")
		pdf.SetTextColor(0, 0, 0)
		pdf.Ln(10)
	}

	pdf.SetFont("Helvetica", "", 12)
	header := []string{
		fmt.Sprintf("Sale number : %s", utils.Safe(sale.SaleNumber, "-")),
		fmt.Sprintf("Date        : %s", utils.FormatDateTime(sale.SaleDate)),
		fmt.Sprintf("Customer    : %s (#%d)", utils.Safe(sale.CustomerName, "-"), sale.CustomerID),
		fmt.Sprintf("Branch      : %s", utils.Safe(sale.Branch, "-")),
	}
	for _, line := range header {
		pdf.Cell(0, 7, line)
		pdf.Ln(7)
	}
	pdf.Ln(4)

	widths := []float64{70, 18, 28, 22, 32}
	pdf.SetFont("Helvetica", "B", 11)
	for i, h := range []string{"Product", "Qty", "Unit price", "Discount", "Total"} {
		pdf.CellFormat(widths[i], 8, h, "B", 0, "L", false, 0, "")
	}
	pdf.Ln(9)

	pdf.SetFont("Helvetica", "", 10)
	for _, it := range sale.Items {
		title := utils.Safe(it.ProductTitle, fmt.Sprintf("product #%d", it.ProductID))
		if it.IsCancelled {
			title += " (cancelled)"
		}
		row := []string{
			title,
			fmt.Sprintf("%d", it.Quantity),
			utils.FormatMoney(it.UnitPrice),
			utils.FormatPercent(it.DiscountPercent),
			utils.FormatMoney(it.TotalAmount),
		}
		for i, v := range row {
			pdf.CellFormat(widths[i], 7, v, "", 0, "L", false, 0, "")
		}
		pdf.Ln(7)
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Total: "+utils.FormatMoney(sale.TotalAmount))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "I", 9)
	pdf.MultiCell(0, 5, "Cancelled items are listed for reference and are not part of the total.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("RECEIPT_%s.pdf", utils.SafeFilenamePart(sale.SaleNumber))
	return buf.Bytes(), filename, nil
}
