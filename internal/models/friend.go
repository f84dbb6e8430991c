package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FriendRequest statuses. Accepted and rejected are terminal.
const (
	RequestStatusPending  = "pending"
	RequestStatusAccepted = "accepted"
	RequestStatusRejected = "rejected"
)

// FriendRequest is a directional request from one user to another. Pair is
// the order-normalized key for the {from, to} pair; a partial unique index on
// it guarantees at most one pending request per pair in either direction.
type FriendRequest struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	From      primitive.ObjectID `bson:"from" json:"from"`
	To        primitive.ObjectID `bson:"to" json:"to"`
	Pair      string             `bson:"pair" json:"-"`
	Status    string             `bson:"status" json:"status"`
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updatedAt"`
}

// FriendRequestDetail is a request joined with both participants' public
// profiles for API responses.
type FriendRequestDetail struct {
	FriendRequest
	FromUser PublicUser `json:"fromUser"`
	ToUser   PublicUser `json:"toUser"`
}

// PairKey normalizes two user IDs into a canonical unordered-pair key, so
// {A,B} and {B,A} map to the same value.
func PairKey(a, b primitive.ObjectID) string {
	ah, bh := a.Hex(), b.Hex()
	if strings.Compare(ah, bh) > 0 {
		ah, bh = bh, ah
	}
	return ah + ":" + bh
}
