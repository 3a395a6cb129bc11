package handlers

import (
	"net/http"

	"backoffice/internal/http/middleware"
	"backoffice/internal/services"

	"github.com/gin-gonic/gin"
)

func saleService(c *gin.Context) services.SaleService {
	return services.SaleService{RequestID: middleware.GetRequestID(c)}
}

func GetSales(c *gin.Context) {
	p, ok := listParams(c)
	if !ok {
		return
	}
	page, err := saleService(c).List(c.Request.Context(), p)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func GetSaleByID(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	sale, err := saleService(c).Get(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, sale)
}

func GetSaleItems(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	p, ok := listParams(c)
	if !ok {
		return
	}
	page, err := saleService(c).ListItems(c.Request.Context(), id, p)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func CreateSale(c *gin.Context) {
	var in services.SaleInput
	if !BindJSONOrError(c, &in) {
		return
	}
	sale, err := saleService(c).Create(c.Request.Context(), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, sale)
}

func UpdateSale(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var in services.SaleInput
	if !BindJSONOrError(c, &in) {
		return
	}
	sale, err := saleService(c).Update(c.Request.Context(), id, in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, sale)
}

func CancelSale(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	sale, err := saleService(c).Cancel(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, sale)
}

func CancelSaleItem(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	itemID, ok := pathID(c, "itemId")
	if !ok {
		return
	}
	sale, err := saleService(c).CancelItem(c.Request.Context(), id, itemID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, sale)
}

// GetSaleReceiptPDF returns the sale receipt inline.
func GetSaleReceiptPDF(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	svc := services.ReceiptService{RequestID: middleware.GetRequestID(c)}
	pdfBytes, filename, err := svc.Receipt(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Header("Content-Disposition", `inline; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}
