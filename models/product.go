package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Product struct {
	ID          primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	Title       string             `json:"title" bson:"title"`
	Description string             `json:"description,omitempty" bson:"description,omitempty"`
	Price       int64              `json:"price" bson:"price"` // minor units
	Category    string             `json:"category,omitempty" bson:"category,omitempty"`
	Qty         int                `json:"qty" bson:"qty"`
	ImgSrc      string             `json:"imgSrc,omitempty" bson:"imgSrc,omitempty"`
	CreatedAt   time.Time          `json:"createdAt" bson:"createdAt"`
}
