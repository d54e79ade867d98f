package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// RoleCustomer is assigned to every new account.
const RoleCustomer = "Customer"

// RoleAdmin unlocks the administrative surface. Role comparison is
// case-insensitive at the middleware boundary.
const RoleAdmin = "Admin"

type User struct {
	ID       primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	Username string             `json:"username" bson:"username"`
	Password string             `json:"-" bson:"password"`
	Roles    []string           `json:"roles" bson:"roles"`
	Active   bool               `json:"active" bson:"active"`
}
