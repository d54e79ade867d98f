package models

import (
	"math"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Payment statuses. A record is persisted only as paid (after signature
// verification) or cod; failed and refunded are reachable by administrative
// action alone.
const (
	PayStatusCreated  = "created"
	PayStatusPaid     = "paid"
	PayStatusFailed   = "failed"
	PayStatusRefunded = "refunded"
	PayStatusCOD      = "cod"
)

// OrderItem is a snapshot line within an order, copied from the cart at
// checkout time.
type OrderItem struct {
	ProductID string `json:"productId" bson:"productId"`
	Title     string `json:"title" bson:"title"`
	Qty       int    `json:"qty" bson:"qty"`
	Price     int64  `json:"price" bson:"price"` // minor units, >= 0
	ImgSrc    string `json:"imgSrc,omitempty" bson:"imgSrc,omitempty"`
}

// Payment records one completed checkout attempt. Immutable once written;
// orderId carries a unique index.
type Payment struct {
	ID           primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	OrderID      string             `json:"orderId" bson:"orderId"`
	PaymentID    string             `json:"paymentId,omitempty" bson:"paymentId,omitempty"`
	Signature    string             `json:"signature,omitempty" bson:"signature,omitempty"`
	Amount       int64              `json:"amount" bson:"amount"` // minor units, >= 1
	OrderItems   []OrderItem        `json:"orderItems" bson:"orderItems"`
	UserID       string             `json:"userId" bson:"userId"`
	UserShipping ShippingAddress    `json:"userShipping" bson:"userShipping"`
	OrderDate    time.Time          `json:"orderDate" bson:"orderDate"`
	PayStatus    string             `json:"payStatus" bson:"payStatus"`
}

// CheckoutSession is the transient descriptor handed back from checkout
// initiation. It is never persisted; it carries just enough state for the
// client to complete payment and call verify.
type CheckoutSession struct {
	OrderID      string          `json:"orderId"`
	Amount       int64           `json:"amount"` // minor units
	CartItems    []OrderItem     `json:"cartItems"`
	UserShipping ShippingAddress `json:"userShipping"`
	UserID       string          `json:"userId"`
	PayStatus    string          `json:"payStatus"`
}

// MinorUnits converts a major-unit decimal amount into the smallest
// currency unit. This is the single place a money field may be rescaled;
// services and storage deal in minor units only.
func MinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}
