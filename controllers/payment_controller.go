package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/shopkart/shopkart-api/common/errors"
	"github.com/shopkart/shopkart-api/middleware"
	"github.com/shopkart/shopkart-api/models"
	"github.com/shopkart/shopkart-api/services"
)

type PaymentController struct {
	paymentService *services.PaymentService
}

func NewPaymentController(paymentService *services.PaymentService) *PaymentController {
	return &PaymentController{paymentService: paymentService}
}

// orderItemRequest carries line prices already in minor units, as served
// by the cart endpoints. The order amount is the one field clients supply
// in major units; it is converted exactly once, here.
type orderItemRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Title     string `json:"title" binding:"required"`
	Qty       int    `json:"qty" binding:"required,gt=0"`
	Price     int64  `json:"price" binding:"gte=0"`
	ImgSrc    string `json:"imgSrc"`
}

func toOrderItems(reqs []orderItemRequest) []models.OrderItem {
	items := make([]models.OrderItem, 0, len(reqs))
	for _, r := range reqs {
		items = append(items, models.OrderItem{
			ProductID: r.ProductID,
			Title:     r.Title,
			Qty:       r.Qty,
			Price:     r.Price,
			ImgSrc:    r.ImgSrc,
		})
	}
	return items
}

type checkoutRequest struct {
	Amount       float64                `json:"amount" binding:"required,gt=0"` // major units
	CartItems    []orderItemRequest     `json:"cartItems" binding:"required,min=1,dive"`
	UserShipping models.ShippingAddress `json:"userShipping"`
}

// Checkout initiates a gateway order and returns the transient session
// descriptor for the client to complete payment with.
func (pc *PaymentController) Checkout(c *gin.Context) {
	var req checkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperrors.Validation("Valid amount and non-empty cartItems are required"))
		return
	}

	session, err := pc.paymentService.InitiateCheckout(c, models.MinorUnits(req.Amount), toOrderItems(req.CartItems), req.UserShipping, middleware.Username(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, session)
}

type verifyRequest struct {
	OrderID      string                 `json:"orderId" binding:"required"`
	PaymentID    string                 `json:"paymentId" binding:"required"`
	Signature    string                 `json:"signature" binding:"required"`
	Amount       float64                `json:"amount" binding:"required,gt=0"` // major units
	OrderItems   []orderItemRequest     `json:"orderItems" binding:"dive"`
	UserShipping models.ShippingAddress `json:"userShipping"`
}

// Verify confirms a gateway payment by signature and persists the paid
// order.
func (pc *PaymentController) Verify(c *gin.Context) {
	var req verifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperrors.Validation("orderId, paymentId and signature are required"))
		return
	}

	order, err := pc.paymentService.ConfirmPayment(c, req.OrderID, req.PaymentID, req.Signature, models.MinorUnits(req.Amount), toOrderItems(req.OrderItems), req.UserShipping, middleware.Username(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Payment successful", "success": true, "orderConfirm": order})
}

type codRequest struct {
	Amount       float64                `json:"amount" binding:"required,gt=0"` // major units
	OrderItems   []orderItemRequest     `json:"orderItems" binding:"required,min=1,dive"`
	UserShipping models.ShippingAddress `json:"userShipping"`
}

// Cod records a cash-on-delivery order without a gateway leg.
func (pc *PaymentController) Cod(c *gin.Context) {
	var req codRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperrors.Validation("Valid amount and non-empty orderItems are required"))
		return
	}

	order, err := pc.paymentService.CreateCodOrder(c, models.MinorUnits(req.Amount), toOrderItems(req.OrderItems), req.UserShipping, middleware.Username(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "COD order created", "success": true, "order": order})
}

// UserOrders lists the caller's order history, newest first.
func (pc *PaymentController) UserOrders(c *gin.Context) {
	orders, err := pc.paymentService.ListUserOrders(c, middleware.Username(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

// AllOrders is the administrative listing across all users.
func (pc *PaymentController) AllOrders(c *gin.Context) {
	orders, err := pc.paymentService.ListAllOrders(c)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

// GetKey serves the gateway's public client key for front-end
// initialization. Unauthenticated on purpose.
func (pc *PaymentController) GetKey(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"key": pc.paymentService.GatewayKey()})
}
