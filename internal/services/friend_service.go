package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Aslan2004/Social_Network/internal/models"
	"github.com/Aslan2004/Social_Network/pkg/apperrors"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FriendService owns the friend request lifecycle and the resulting
// symmetric friendship edges between two user records.
type FriendService struct {
	friendRepo FriendStore
	userRepo   UserStore
}

// NewFriendService creates a new FriendService.
func NewFriendService(friendRepo FriendStore, userRepo UserStore) *FriendService {
	return &FriendService{
		friendRepo: friendRepo,
		userRepo:   userRepo,
	}
}

// SendRequest creates a pending friend request from one user to another.
// The explicit checks give precise errors; the pair unique index is what
// actually closes the race between two concurrent sends.
func (s *FriendService) SendRequest(ctx context.Context, fromID, toID primitive.ObjectID) (*models.FriendRequestDetail, error) {
	if fromID == toID {
		return nil, fmt.Errorf("cannot send a friend request to yourself: %w", apperrors.ErrInvalidOperation)
	}

	if _, err := s.userRepo.GetUserByID(ctx, toID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("target user not found: %w", apperrors.ErrNotFound)
		}
		return nil, err
	}

	sender, err := s.userRepo.GetUserByID(ctx, fromID)
	if err != nil {
		return nil, err
	}
	for _, friendID := range sender.Friends {
		if friendID == toID {
			return nil, fmt.Errorf("already friends with this user: %w", apperrors.ErrConflict)
		}
	}

	if _, err := s.friendRepo.FindPendingByPair(ctx, fromID, toID); err == nil {
		return nil, fmt.Errorf("a friend request already exists between these users: %w", apperrors.ErrConflict)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	request := &models.FriendRequest{
		From: fromID,
		To:   toID,
	}

	created, err := s.friendRepo.CreateRequest(ctx, request)
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"from":      fromID.Hex(),
		"to":        toID.Hex(),
		"requestID": created.ID.Hex(),
	}).Info("Friend request sent")

	details, err := s.withProfiles(ctx, []models.FriendRequest{*created})
	if err != nil {
		return nil, err
	}
	return &details[0], nil
}

// GetPendingRequests fetches all pending requests addressed to the user,
// with both participants' profiles resolved.
func (s *FriendService) GetPendingRequests(ctx context.Context, userID primitive.ObjectID) ([]models.FriendRequestDetail, error) {
	requests, err := s.friendRepo.ListPendingByReceiver(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.withProfiles(ctx, requests)
}

// GetSentRequests fetches all pending requests the user has sent, with both
// participants' profiles resolved.
func (s *FriendService) GetSentRequests(ctx context.Context, userID primitive.ObjectID) ([]models.FriendRequestDetail, error) {
	requests, err := s.friendRepo.ListPendingBySender(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.withProfiles(ctx, requests)
}

// withProfiles joins requests with the public profiles of both sides.
func (s *FriendService) withProfiles(ctx context.Context, requests []models.FriendRequest) ([]models.FriendRequestDetail, error) {
	details := make([]models.FriendRequestDetail, 0, len(requests))
	if len(requests) == 0 {
		return details, nil
	}

	seen := make(map[primitive.ObjectID]struct{}, len(requests)*2)
	ids := make([]primitive.ObjectID, 0, len(requests)*2)
	for _, req := range requests {
		for _, id := range []primitive.ObjectID{req.From, req.To} {
			if _, ok := seen[id]; !ok {
				seen[id] = struct{}{}
				ids = append(ids, id)
			}
		}
	}

	users, err := s.userRepo.GetUsersByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve request profiles: %v", err)
	}

	profiles := make(map[primitive.ObjectID]models.PublicUser, len(users))
	for i := range users {
		profiles[users[i].ID] = users[i].Public()
	}

	for _, req := range requests {
		details = append(details, models.FriendRequestDetail{
			FriendRequest: req,
			FromUser:      profiles[req.From],
			ToUser:        profiles[req.To],
		})
	}

	return details, nil
}

// AcceptRequest accepts a pending request. Only the request's target may
// accept; terminal requests cannot be re-processed. On success both users
// gain each other in their friend sets.
func (s *FriendService) AcceptRequest(ctx context.Context, requestID, actingUserID primitive.ObjectID) error {
	request, err := s.respond(ctx, requestID, actingUserID, models.RequestStatusAccepted)
	if err != nil {
		return err
	}

	// $addToSet on both sides, so a retry cannot produce duplicates.
	if err := s.userRepo.AddFriend(ctx, request.From, request.To); err != nil {
		return fmt.Errorf("failed to add friend to sender: %v", err)
	}
	if err := s.userRepo.AddFriend(ctx, request.To, request.From); err != nil {
		return fmt.Errorf("failed to add friend to receiver: %v", err)
	}

	logrus.WithField("requestID", requestID.Hex()).Info("Friend request accepted")
	return nil
}

// RejectRequest rejects a pending request. No friend set mutation; a
// rejected request does not block a future request for the same pair.
func (s *FriendService) RejectRequest(ctx context.Context, requestID, actingUserID primitive.ObjectID) error {
	if _, err := s.respond(ctx, requestID, actingUserID, models.RequestStatusRejected); err != nil {
		return err
	}
	logrus.WithField("requestID", requestID.Hex()).Info("Friend request rejected")
	return nil
}

func (s *FriendService) respond(ctx context.Context, requestID, actingUserID primitive.ObjectID, status string) (*models.FriendRequest, error) {
	request, err := s.friendRepo.GetRequestByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	if request.To != actingUserID {
		return nil, fmt.Errorf("only the request's target may respond: %w", apperrors.ErrForbidden)
	}

	if request.Status != models.RequestStatusPending {
		return nil, fmt.Errorf("request has already been processed: %w", apperrors.ErrInvalidOperation)
	}

	if err := s.friendRepo.MarkResponded(ctx, requestID, status); err != nil {
		return nil, err
	}

	return request, nil
}

// RemoveFriend dissolves the friendship between two users and deletes any
// request record for the pair, returning it to the "no relationship" state.
// Calling it when no friendship exists is a successful no-op.
func (s *FriendService) RemoveFriend(ctx context.Context, userID, friendID primitive.ObjectID) error {
	if err := s.userRepo.RemoveFriend(ctx, userID, friendID); err != nil {
		return err
	}
	if err := s.friendRepo.DeleteByPair(ctx, userID, friendID); err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{
		"userID":   userID.Hex(),
		"friendID": friendID.Hex(),
	}).Info("Friendship removed")
	return nil
}

// GetFriends resolves a user's friend set into public profiles.
func (s *FriendService) GetFriends(ctx context.Context, userID primitive.ObjectID) ([]models.PublicUser, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if len(user.Friends) == 0 {
		return []models.PublicUser{}, nil
	}

	users, err := s.userRepo.GetUsersByIDs(ctx, user.Friends)
	if err != nil {
		return nil, fmt.Errorf("failed to get users: %v", err)
	}

	friends := make([]models.PublicUser, 0, len(users))
	for i := range users {
		friends = append(friends, users[i].Public())
	}

	return friends, nil
}

// PurgeStaleRejected deletes rejected requests whose last update is older
// than maxAge. Run from the maintenance cron.
func (s *FriendService) PurgeStaleRejected(ctx context.Context, maxAge time.Duration) (int64, error) {
	deleted, err := s.friendRepo.DeleteRejectedBefore(ctx, time.Now().Add(-maxAge))
	if err != nil {
		return 0, err
	}
	if deleted > 0 {
		logrus.WithField("count", deleted).Info("Purged stale rejected friend requests")
	}
	return deleted, nil
}
