package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shopkart/shopkart-api/controllers"
	"github.com/shopkart/shopkart-api/middleware"
	"github.com/shopkart/shopkart-api/services"
)

// Controllers bundles everything Register wires into the engine.
type Controllers struct {
	Auth    *controllers.AuthController
	Product *controllers.ProductController
	Cart    *controllers.CartController
	Address *controllers.AddressController
	Payment *controllers.PaymentController
}

// Register mounts the full HTTP surface: public catalog and gateway-key
// reads, owner-scoped cart/address/checkout operations, and the
// admin-only listings.
func Register(r *gin.Engine, c Controllers, tokens *services.TokenService) {
	requireAuth := middleware.RequireAuth(tokens)
	requireAdmin := middleware.RequireAdmin()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK"})
	})

	users := r.Group("/api/users")
	{
		users.POST("/register", c.Auth.Register)
		users.POST("/login", c.Auth.Login)
		users.POST("/logout", c.Auth.Logout)
		users.GET("/refresh", c.Auth.Refresh)
		users.GET("/customers", requireAuth, requireAdmin, c.Auth.GetCustomers)
	}

	products := r.Group("/api/products")
	{
		products.GET("/", c.Product.GetProducts)
		products.GET("/:id", c.Product.GetProductByID)
		products.POST("/", requireAuth, requireAdmin, c.Product.CreateProduct)
		products.PUT("/:id", requireAuth, requireAdmin, c.Product.UpdateProduct)
		products.DELETE("/:id", requireAuth, requireAdmin, c.Product.DeleteProduct)
	}

	cart := r.Group("/api/cart", requireAuth)
	{
		cart.POST("/add", c.Cart.AddItem)
		cart.GET("/user", c.Cart.GetCart)
		cart.POST("/decrease", c.Cart.DecreaseItem)
		cart.DELETE("/remove/:productId", c.Cart.RemoveItem)
		cart.DELETE("/clear", c.Cart.ClearCart)
	}

	addresses := r.Group("/api/addresses", requireAuth)
	{
		addresses.POST("/", c.Address.AddAddress)
		addresses.GET("/", c.Address.GetAllAddresses)
		addresses.GET("/latest", c.Address.GetLatestAddress)
		addresses.DELETE("/:id", c.Address.DeleteAddress)
	}

	payments := r.Group("/api/payments")
	{
		payments.GET("/getkey", c.Payment.GetKey)
		payments.POST("/checkout", requireAuth, c.Payment.Checkout)
		payments.POST("/verify", requireAuth, c.Payment.Verify)
		payments.POST("/cod", requireAuth, c.Payment.Cod)
		payments.GET("/userorder", requireAuth, c.Payment.UserOrders)
		payments.GET("/orders", requireAuth, requireAdmin, c.Payment.AllOrders)
	}
}
