package services

import (
	"context"
	"time"

	"github.com/Aslan2004/Social_Network/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserStore is the persistence surface the services need for users.
// *repository.UserRepository satisfies it; tests substitute in-memory fakes.
type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) (*models.User, error)
	GetUserByPhone(ctx context.Context, phoneNumber string) (*models.User, error)
	GetUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	GetUsersPage(ctx context.Context, page, limit int64) ([]models.User, int64, error)
	GetUsersByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.User, error)
	AddFriend(ctx context.Context, userID, friendID primitive.ObjectID) error
	RemoveFriend(ctx context.Context, userID, friendID primitive.ObjectID) error
	UpdateLastActive(ctx context.Context, userID primitive.ObjectID) error
}

// FriendStore is the persistence surface for friend requests.
type FriendStore interface {
	CreateRequest(ctx context.Context, req *models.FriendRequest) (*models.FriendRequest, error)
	GetRequestByID(ctx context.Context, id primitive.ObjectID) (*models.FriendRequest, error)
	FindPendingByPair(ctx context.Context, a, b primitive.ObjectID) (*models.FriendRequest, error)
	ListPendingByReceiver(ctx context.Context, userID primitive.ObjectID) ([]models.FriendRequest, error)
	ListPendingBySender(ctx context.Context, userID primitive.ObjectID) ([]models.FriendRequest, error)
	MarkResponded(ctx context.Context, id primitive.ObjectID, status string) error
	DeleteByPair(ctx context.Context, a, b primitive.ObjectID) error
	DeleteRejectedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// PostStore is the persistence surface for posts.
type PostStore interface {
	CreatePost(ctx context.Context, post *models.Post) (*models.Post, error)
	GetPostByID(ctx context.Context, id primitive.ObjectID) (*models.Post, error)
	GetPostsPage(ctx context.Context, filter bson.M, page, limit int64) ([]models.Post, int64, error)
	UpdatePost(ctx context.Context, id primitive.ObjectID, update bson.M) error
	DeletePost(ctx context.Context, id primitive.ObjectID) error
	AddLike(ctx context.Context, postID, userID primitive.ObjectID) (*models.Post, error)
	RemoveLike(ctx context.Context, postID, userID primitive.ObjectID) (*models.Post, error)
	AddComment(ctx context.Context, postID primitive.ObjectID, comment models.Comment) error
	RemoveComment(ctx context.Context, postID, commentID primitive.ObjectID) error
}
