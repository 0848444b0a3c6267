package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CreatedAt time.Time          `bson:"createdAt" json:"created_at"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updated_at"`

	Email    string `bson:"email" json:"email"`
	Name     string `bson:"name,omitempty" json:"name,omitempty"`
	Password string `bson:"password,omitempty" json:"-"` // Don't return password in JSON
	IsAdmin  bool   `bson:"isAdmin" json:"is_admin"`

	DeletedAt *time.Time `bson:"deletedAt,omitempty" json:"-"`
}
