package handlers

import (
	"net/http"
	"strings"

	"backoffice/internal/http/middleware"
	"backoffice/internal/services"

	"github.com/gin-gonic/gin"
)

func productService(c *gin.Context) services.ProductService {
	return services.ProductService{RequestID: middleware.GetRequestID(c)}
}

func GetProducts(c *gin.Context) {
	p, ok := listParams(c)
	if !ok {
		return
	}
	page, err := productService(c).List(c.Request.Context(), p)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func GetProductCategories(c *gin.Context) {
	cats, err := productService(c).Categories(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, cats)
}

func GetProductsByCategory(c *gin.Context) {
	category := strings.TrimSpace(c.Param("category"))
	if category == "" {
		respondError(c, http.StatusBadRequest, "invalid_category", "category is required", nil)
		return
	}
	p, ok := listParams(c)
	if !ok {
		return
	}
	page, err := productService(c).ListByCategory(c.Request.Context(), category, p)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func GetProductByID(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	p, err := productService(c).Get(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func CreateProduct(c *gin.Context) {
	var in services.ProductInput
	if !BindJSONOrError(c, &in) {
		return
	}
	p, err := productService(c).Create(c.Request.Context(), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

func UpdateProduct(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var in services.ProductInput
	if !BindJSONOrError(c, &in) {
		return
	}
	p, err := productService(c).Update(c.Request.Context(), id, in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func DeleteProduct(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := productService(c).Delete(c.Request.Context(), id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
