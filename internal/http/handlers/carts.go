package handlers

import (
	"net/http"

	"backoffice/internal/http/middleware"
	"backoffice/internal/services"

	"github.com/gin-gonic/gin"
)

type checkoutRequest struct {
	Branch string `json:"branch"`
}

func cartService(c *gin.Context) services.CartService {
	reqID := middleware.GetRequestID(c)
	return services.CartService{
		Sales:     services.SaleService{RequestID: reqID},
		RequestID: reqID,
	}
}

func GetCarts(c *gin.Context) {
	p, ok := listParams(c)
	if !ok {
		return
	}
	page, err := cartService(c).List(c.Request.Context(), p)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func GetCartByID(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	cart, err := cartService(c).Get(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

// GetCartProducts lists the lines of one cart with the usual list parameters.
func GetCartProducts(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	p, ok := listParams(c)
	if !ok {
		return
	}
	page, err := cartService(c).ListProducts(c.Request.Context(), id, p)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func CreateCart(c *gin.Context) {
	var in services.CartInput
	if !BindJSONOrError(c, &in) {
		return
	}
	cart, err := cartService(c).Create(c.Request.Context(), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, cart)
}

func UpdateCart(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var in services.CartInput
	if !BindJSONOrError(c, &in) {
		return
	}
	cart, err := cartService(c).Update(c.Request.Context(), id, in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

func DeleteCart(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := cartService(c).Delete(c.Request.Context(), id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func CheckoutCart(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req checkoutRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	sale, err := cartService(c).Checkout(c.Request.Context(), id, req.Branch)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, sale)
}
