package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents a registered account. The phone number is the login
// identity and is unique across the collection.
type User struct {
	ID             primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	PhoneNumber    string               `bson:"phone_number" json:"phoneNumber"`
	HashedPassword string               `bson:"hashed_password" json:"-"`
	Name           string               `bson:"name" json:"name"`
	Image          string               `bson:"image,omitempty" json:"image,omitempty"`
	Friends        []primitive.ObjectID `bson:"friends,omitempty" json:"friends,omitempty"`
	LastActiveAt   time.Time            `bson:"last_active_at,omitempty" json:"lastActiveAt,omitempty"`
	CreatedAt      time.Time            `bson:"created_at" json:"createdAt"`
	UpdatedAt      time.Time            `bson:"updated_at" json:"updatedAt"`
}

// PublicUser is the profile shape exposed to other users (friend lists,
// request listings).
type PublicUser struct {
	ID          primitive.ObjectID `json:"id"`
	PhoneNumber string             `json:"phoneNumber"`
	Name        string             `json:"name"`
	Image       string             `json:"image,omitempty"`
}

// Public strips the user down to the fields other users may see.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:          u.ID,
		PhoneNumber: u.PhoneNumber,
		Name:        u.Name,
		Image:       u.Image,
	}
}
