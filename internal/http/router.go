package api

import (
	stdhttp "net/http"

	intconfig "backoffice/internal/config"
	h "backoffice/internal/http/handlers"
	"backoffice/internal/http/middleware"
	"backoffice/internal/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func NewRouter(env intconfig.Env) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS(env.CORSOrigins))

	if err := r.SetTrustedProxies(nil); err != nil {
		utils.Logger().Warn("failed to set trusted proxies", zap.Error(err))
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"code":   "not_found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", h.DBCheck)
		api.GET("/routes", h.Routes)

		users := api.Group("/users")
		users.GET("", h.GetUsers)
		users.GET("/:id", h.GetUserByID)
		users.POST("", h.CreateUser)
		users.PUT("/:id", h.UpdateUser)
		users.DELETE("/:id", h.DeleteUser)

		products := api.Group("/products")
		products.GET("", h.GetProducts)
		products.GET("/categories", h.GetProductCategories)
		products.GET("/category/:category", h.GetProductsByCategory)
		products.GET("/:id", h.GetProductByID)
		products.POST("", h.CreateProduct)
		products.PUT("/:id", h.UpdateProduct)
		products.DELETE("/:id", h.DeleteProduct)

		carts := api.Group("/carts")
		carts.GET("", h.GetCarts)
		carts.GET("/:id", h.GetCartByID)
		carts.GET("/:id/products", h.GetCartProducts)
		carts.POST("", h.CreateCart)
		carts.POST("/:id/checkout", h.CheckoutCart)
		carts.PUT("/:id", h.UpdateCart)
		carts.DELETE("/:id", h.DeleteCart)

		sales := api.Group("/sales")
		sales.GET("", h.GetSales)
		sales.GET("/:id", h.GetSaleByID)
		sales.GET("/:id/items", h.GetSaleItems)
		sales.GET("/:id/receipt", h.GetSaleReceiptPDF)
		sales.POST("", h.CreateSale)
		sales.PUT("/:id", h.UpdateSale)
		sales.PATCH("/:id/cancel", h.CancelSale)
		sales.PATCH("/:id/items/:itemId/cancel", h.CancelSaleItem)
	}

	h.SetRouter(r)
	return r
}
