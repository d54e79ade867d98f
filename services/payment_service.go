package services

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"go.uber.org/zap"

	apperrors "github.com/shopkart/shopkart-api/common/errors"
	"github.com/shopkart/shopkart-api/models"
	"github.com/shopkart/shopkart-api/repository"
)

// PaymentService drives the order state machine: created -> paid via
// signature verification, or straight to the terminal cod state on the
// no-gateway path. Failed and refunded are administrative states; nothing
// here writes them. A record only ever reaches the store after the
// signature gate or on the COD path.
type PaymentService struct {
	paymentRepo repository.PaymentRepository
	gateway     PaymentGateway
	keyID       string
	keySecret   string
}

func NewPaymentService(paymentRepo repository.PaymentRepository, gateway PaymentGateway, keyID, keySecret string) *PaymentService {
	return &PaymentService{
		paymentRepo: paymentRepo,
		gateway:     gateway,
		keyID:       keyID,
		keySecret:   keySecret,
	}
}

// InitiateCheckout registers a gateway order for amount (minor units) and
// returns the transient session descriptor. Nothing is persisted; the
// descriptor only hands the client enough state to complete payment and
// call Confirm. Gateway failure propagates immediately, never retried.
func (s *PaymentService) InitiateCheckout(ctx context.Context, amount int64, cartItems []models.OrderItem, shipping models.ShippingAddress, userID string) (*models.CheckoutSession, error) {
	if amount <= 0 {
		return nil, apperrors.Validation("Valid amount is required")
	}
	if len(cartItems) == 0 {
		return nil, apperrors.Validation("cartItems must be a non-empty array")
	}

	receipt := fmt.Sprintf("receipt_%d", time.Now().UnixMilli())
	orderID, err := s.gateway.CreateOrder(ctx, amount, "INR", receipt)
	if err != nil {
		return nil, apperrors.Upstream("Failed to initiate checkout", err)
	}

	zap.L().Info("checkout initiated",
		zap.String("user", userID),
		zap.String("order_id", orderID),
		zap.Int64("amount", amount),
	)

	return &models.CheckoutSession{
		OrderID:      orderID,
		Amount:       amount,
		CartItems:    cartItems,
		UserShipping: shipping,
		UserID:       userID,
		PayStatus:    models.PayStatusCreated,
	}, nil
}

// ConfirmPayment verifies the gateway signature and persists the paid
// order. The expected signature is HMAC-SHA256 over "orderId|paymentId"
// keyed with the gateway secret; comparison is constant-time and
// exact-match. On mismatch nothing is persisted. A duplicate orderId is a
// conflict courtesy of the unique index, never a silent overwrite.
func (s *PaymentService) ConfirmPayment(ctx context.Context, orderID, paymentID, signature string, amount int64, orderItems []models.OrderItem, shipping models.ShippingAddress, userID string) (*models.Payment, error) {
	if orderID == "" || paymentID == "" || signature == "" {
		return nil, apperrors.Validation("orderId, paymentId and signature are required")
	}
	if amount <= 0 {
		return nil, apperrors.Validation("Valid amount is required")
	}

	expected := SignPayment(s.keySecret, orderID, paymentID)
	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return nil, apperrors.SignatureInvalid()
	}

	payment := &models.Payment{
		OrderID:      orderID,
		PaymentID:    paymentID,
		Signature:    signature,
		Amount:       amount,
		OrderItems:   orderItems,
		UserID:       userID,
		UserShipping: shipping,
		OrderDate:    time.Now().UTC(),
		PayStatus:    models.PayStatusPaid,
	}
	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		if repository.IsDuplicateKey(err) {
			return nil, apperrors.Conflict("Order already recorded", err)
		}
		return nil, apperrors.Internal("Payment verification failed", err)
	}

	zap.L().Info("payment confirmed",
		zap.String("user", userID),
		zap.String("order_id", orderID),
		zap.String("payment_id", paymentID),
	)
	return payment, nil
}

// CreateCodOrder persists a cash-on-delivery order immediately under a
// locally generated "cod_"-prefixed id. No signature check applies; there
// is no gateway leg.
func (s *PaymentService) CreateCodOrder(ctx context.Context, amount int64, orderItems []models.OrderItem, shipping models.ShippingAddress, userID string) (*models.Payment, error) {
	if amount <= 0 {
		return nil, apperrors.Validation("Valid amount is required")
	}
	if len(orderItems) == 0 {
		return nil, apperrors.Validation("orderItems must be a non-empty array")
	}

	payment := &models.Payment{
		OrderID:      fmt.Sprintf("cod_%d", time.Now().UnixMilli()),
		Amount:       amount,
		OrderItems:   orderItems,
		UserID:       userID,
		UserShipping: shipping,
		OrderDate:    time.Now().UTC(),
		PayStatus:    models.PayStatusCOD,
	}
	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		if repository.IsDuplicateKey(err) {
			return nil, apperrors.Conflict("Order already recorded", err)
		}
		return nil, apperrors.Internal("Failed to create COD order", err)
	}

	zap.L().Info("cod order created",
		zap.String("user", userID),
		zap.String("order_id", payment.OrderID),
		zap.Int64("amount", amount),
	)
	return payment, nil
}

// ListUserOrders returns the user's order history newest first; an empty
// history is an empty slice.
func (s *PaymentService) ListUserOrders(ctx context.Context, userID string) ([]models.Payment, error) {
	orders, err := s.paymentRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, apperrors.Internal("Failed to fetch user orders", err)
	}
	return orders, nil
}

// ListAllOrders returns every order across all users, newest first. Role
// enforcement happens at the middleware boundary.
func (s *PaymentService) ListAllOrders(ctx context.Context) ([]models.Payment, error) {
	orders, err := s.paymentRepo.FindAll(ctx)
	if err != nil {
		return nil, apperrors.Internal("Failed to fetch orders", err)
	}
	return orders, nil
}

// GatewayKey exposes the gateway's public client key. Intentionally
// unauthenticated; it is not a secret.
func (s *PaymentService) GatewayKey() string {
	return s.keyID
}

// SignPayment computes the gateway signature for an order/payment pair:
// HMAC-SHA256 over "orderId|paymentId", hex-encoded.
func SignPayment(secret, orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}
