package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CartItem is one product line in a cart. Price is the accumulated line
// total in minor units, not the unit price: every AddItem contributes
// unitPrice*qty on top of whatever is already there.
type CartItem struct {
	ProductID string `json:"productId" bson:"productId"`
	Title     string `json:"title" bson:"title"`
	Price     int64  `json:"price" bson:"price"`
	Qty       int    `json:"qty" bson:"qty"`
	ImgSrc    string `json:"imgSrc,omitempty" bson:"imgSrc,omitempty"`
}

// Cart holds the single active cart for a user. The userId carries a
// unique index; no two items may share a productId.
type Cart struct {
	ID        primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	UserID    string             `json:"userId" bson:"userId"`
	Items     []CartItem         `json:"items" bson:"items"`
	UpdatedAt time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// Item returns a pointer to the line for productID, or nil.
func (c *Cart) Item(productID string) *CartItem {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			return &c.Items[i]
		}
	}
	return nil
}
