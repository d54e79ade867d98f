package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/shopkart/shopkart-api/common/errors"
	"github.com/shopkart/shopkart-api/middleware"
	"github.com/shopkart/shopkart-api/models"
	"github.com/shopkart/shopkart-api/services"
)

type CartController struct {
	cartService *services.CartService
}

func NewCartController(cartService *services.CartService) *CartController {
	return &CartController{cartService: cartService}
}

type addItemRequest struct {
	ProductID string  `json:"productId" binding:"required"`
	Title     string  `json:"title" binding:"required"`
	Price     float64 `json:"price" binding:"required,gt=0"` // major units
	Qty       int     `json:"qty" binding:"required,gt=0"`
	ImgSrc    string  `json:"imgSrc"`
}

// AddItem merges an item into the caller's cart. The major-unit price is
// converted to minor units here, at the boundary, and nowhere else.
func (cc *CartController) AddItem(c *gin.Context) {
	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperrors.Validation("Missing required fields: productId, title, price, qty"))
		return
	}

	cart, err := cc.cartService.AddItem(c, middleware.Username(c), req.ProductID, req.Title, models.MinorUnits(req.Price), req.Qty, req.ImgSrc)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Items added to cart", "cart": cart})
}

// GetCart returns the caller's cart, or a not-found outcome when none
// exists yet.
func (cc *CartController) GetCart(c *gin.Context) {
	cart, err := cc.cartService.GetCart(c, middleware.Username(c))
	if err != nil {
		respondError(c, err)
		return
	}
	if cart == nil {
		respondError(c, apperrors.NotFound("Cart not found"))
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User cart", "cart": cart})
}

type decreaseRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Qty       int    `json:"qty" binding:"required,gt=0"`
}

// DecreaseItem lowers a line's quantity, removing the line when the
// decrease covers all of it.
func (cc *CartController) DecreaseItem(c *gin.Context) {
	var req decreaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperrors.Validation("Missing required fields: productId, qty"))
		return
	}

	cart, err := cc.cartService.DecreaseItem(c, middleware.Username(c), req.ProductID, req.Qty)
	if err != nil {
		respondError(c, err)
		return
	}
	if cart == nil {
		respondError(c, apperrors.NotFound("Invalid product id"))
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Item quantity decreased", "cart": cart})
}

// RemoveItem drops a product line from the cart entirely.
func (cc *CartController) RemoveItem(c *gin.Context) {
	productID := c.Param("productId")

	cart, err := cc.cartService.RemoveItem(c, middleware.Username(c), productID)
	if err != nil {
		respondError(c, err)
		return
	}
	if cart == nil {
		respondError(c, apperrors.NotFound("Cart not found"))
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Product removed from cart", "cart": cart})
}

// ClearCart empties the caller's cart.
func (cc *CartController) ClearCart(c *gin.Context) {
	if _, err := cc.cartService.ClearCart(c, middleware.Username(c)); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Cart cleared"})
}
