package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Aslan2004/Social_Network/internal/models"
	"github.com/Aslan2004/Social_Network/pkg/apperrors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// FriendRepository handles database operations on friend requests.
type FriendRepository struct {
	collection *mongo.Collection
}

// NewFriendRepository creates a new FriendRepository.
func NewFriendRepository(db *mongo.Database) *FriendRepository {
	return &FriendRepository{
		collection: db.Collection("friend_requests"),
	}
}

// CreateRequest inserts a new pending request. The unique pair index is the
// authority on uniqueness: a duplicate-key error here means another pending
// request for the pair already exists, in either direction.
func (r *FriendRepository) CreateRequest(ctx context.Context, req *models.FriendRequest) (*models.FriendRequest, error) {
	req.Status = models.RequestStatusPending
	req.Pair = models.PairKey(req.From, req.To)
	req.CreatedAt = time.Now()
	req.UpdatedAt = req.CreatedAt

	result, err := r.collection.InsertOne(ctx, req)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, fmt.Errorf("friend request already exists for this pair: %w", apperrors.ErrConflict)
		}
		return nil, fmt.Errorf("failed to create friend request: %v", err)
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("failed to cast inserted ID")
	}
	req.ID = insertedID

	return req, nil
}

// GetRequestByID fetches a single request.
func (r *FriendRepository) GetRequestByID(ctx context.Context, id primitive.ObjectID) (*models.FriendRequest, error) {
	var request models.FriendRequest
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&request)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("friend request %s: %w", id.Hex(), apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find friend request: %v", err)
	}
	return &request, nil
}

// FindPendingByPair returns the pending request between two users in either
// direction, or ErrNotFound.
func (r *FriendRepository) FindPendingByPair(ctx context.Context, a, b primitive.ObjectID) (*models.FriendRequest, error) {
	var request models.FriendRequest
	filter := bson.M{"pair": models.PairKey(a, b), "status": models.RequestStatusPending}
	err := r.collection.FindOne(ctx, filter).Decode(&request)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("pending request for pair: %w", apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find pending request: %v", err)
	}
	return &request, nil
}

// ListPendingByReceiver fetches all pending requests addressed to a user.
func (r *FriendRepository) ListPendingByReceiver(ctx context.Context, userID primitive.ObjectID) ([]models.FriendRequest, error) {
	return r.listPending(ctx, bson.M{"to": userID, "status": models.RequestStatusPending})
}

// ListPendingBySender fetches all pending requests a user has sent.
func (r *FriendRepository) ListPendingBySender(ctx context.Context, userID primitive.ObjectID) ([]models.FriendRequest, error) {
	return r.listPending(ctx, bson.M{"from": userID, "status": models.RequestStatusPending})
}

func (r *FriendRepository) listPending(ctx context.Context, filter bson.M) ([]models.FriendRequest, error) {
	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to find friend requests: %v", err)
	}
	defer cursor.Close(ctx)

	var requests []models.FriendRequest
	for cursor.Next(ctx) {
		var req models.FriendRequest
		if err := cursor.Decode(&req); err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}

	return requests, nil
}

// MarkResponded flips a pending request to a terminal status. The filter
// matches on pending so that two concurrent responses cannot both win;
// the loser sees ErrInvalidOperation.
func (r *FriendRepository) MarkResponded(ctx context.Context, id primitive.ObjectID, status string) error {
	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id, "status": models.RequestStatusPending},
		bson.M{"$set": bson.M{"status": status, "updated_at": time.Now()}},
	)
	if err != nil {
		return fmt.Errorf("failed to update request status: %v", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("request is no longer pending: %w", apperrors.ErrInvalidOperation)
	}
	return nil
}

// DeleteByPair removes any request document for the unordered pair,
// whatever its status. Deleting nothing is fine.
func (r *FriendRepository) DeleteByPair(ctx context.Context, a, b primitive.ObjectID) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"pair": models.PairKey(a, b)})
	if err != nil {
		return fmt.Errorf("failed to delete friend request: %v", err)
	}
	return nil
}

// DeleteRejectedBefore purges rejected requests older than the cutoff and
// returns how many were removed.
func (r *FriendRepository) DeleteRejectedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := r.collection.DeleteMany(ctx, bson.M{
		"status":     models.RequestStatusRejected,
		"updated_at": bson.M{"$lt": cutoff},
	})
	if err != nil {
		return 0, fmt.Errorf("failed to purge rejected requests: %v", err)
	}
	return result.DeletedCount, nil
}
