package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Address struct {
	ID          primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	UserID      string             `json:"userId" bson:"userId"`
	FullName    string             `json:"fullName" bson:"fullName"`
	Address     string             `json:"address" bson:"address"`
	City        string             `json:"city" bson:"city"`
	State       string             `json:"state" bson:"state"`
	Country     string             `json:"country" bson:"country"`
	Pincode     string             `json:"pincode" bson:"pincode"`
	PhoneNumber string             `json:"phoneNumber" bson:"phoneNumber"`
	CreatedAt   time.Time          `json:"createdAt" bson:"createdAt"`
}

// ShippingAddress is the denormalized snapshot embedded in an order. It is
// a copy, not a reference, so later address edits never rewrite history.
type ShippingAddress struct {
	FullName    string `json:"fullName,omitempty" bson:"fullName,omitempty"`
	Address     string `json:"address,omitempty" bson:"address,omitempty"`
	City        string `json:"city,omitempty" bson:"city,omitempty"`
	State       string `json:"state,omitempty" bson:"state,omitempty"`
	Country     string `json:"country,omitempty" bson:"country,omitempty"`
	Pincode     string `json:"pincode,omitempty" bson:"pincode,omitempty"`
	PhoneNumber string `json:"phoneNumber,omitempty" bson:"phoneNumber,omitempty"`
}

// Snapshot copies the persistent address into an order-embeddable form.
func (a *Address) Snapshot() ShippingAddress {
	return ShippingAddress{
		FullName:    a.FullName,
		Address:     a.Address,
		City:        a.City,
		State:       a.State,
		Country:     a.Country,
		Pincode:     a.Pincode,
		PhoneNumber: a.PhoneNumber,
	}
}
