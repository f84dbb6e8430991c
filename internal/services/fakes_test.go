package services

import (
	"context"
	"fmt"
	"time"

	"github.com/Aslan2004/Social_Network/internal/models"
	"github.com/Aslan2004/Social_Network/pkg/apperrors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// In-memory stores mirroring the guarantees the mongo repositories provide:
// unique phone numbers, a unique pending-pair constraint and set semantics
// for friend and like membership.

type fakeUserStore struct {
	users map[primitive.ObjectID]*models.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[primitive.ObjectID]*models.User)}
}

func (s *fakeUserStore) addUser(phone, name string) *models.User {
	user := &models.User{
		ID:          primitive.NewObjectID(),
		PhoneNumber: phone,
		Name:        name,
		CreatedAt:   time.Now(),
	}
	s.users[user.ID] = user
	return user
}

func (s *fakeUserStore) CreateUser(_ context.Context, user *models.User) (*models.User, error) {
	for _, existing := range s.users {
		if existing.PhoneNumber == user.PhoneNumber {
			return nil, fmt.Errorf("phone number already registered: %w", apperrors.ErrConflict)
		}
	}
	user.ID = primitive.NewObjectID()
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	s.users[user.ID] = user
	return user, nil
}

func (s *fakeUserStore) GetUserByPhone(_ context.Context, phone string) (*models.User, error) {
	for _, user := range s.users {
		if user.PhoneNumber == phone {
			return user, nil
		}
	}
	return nil, fmt.Errorf("user with phone %s: %w", phone, apperrors.ErrNotFound)
}

func (s *fakeUserStore) GetUserByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	user, ok := s.users[id]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", id.Hex(), apperrors.ErrNotFound)
	}
	return user, nil
}

func (s *fakeUserStore) GetUsersPage(_ context.Context, page, limit int64) ([]models.User, int64, error) {
	var users []models.User
	for _, user := range s.users {
		users = append(users, *user)
	}
	total := int64(len(users))
	start := (page - 1) * limit
	if start >= total {
		return nil, total, nil
	}
	end := start + limit
	if end > total {
		end = total
	}
	return users[start:end], total, nil
}

func (s *fakeUserStore) GetUsersByIDs(_ context.Context, ids []primitive.ObjectID) ([]models.User, error) {
	var users []models.User
	for _, id := range ids {
		if user, ok := s.users[id]; ok {
			users = append(users, *user)
		}
	}
	return users, nil
}

func (s *fakeUserStore) AddFriend(_ context.Context, userID, friendID primitive.ObjectID) error {
	user, ok := s.users[userID]
	if !ok {
		return nil
	}
	for _, id := range user.Friends {
		if id == friendID {
			return nil
		}
	}
	user.Friends = append(user.Friends, friendID)
	return nil
}

func (s *fakeUserStore) RemoveFriend(_ context.Context, userID, friendID primitive.ObjectID) error {
	s.pull(userID, friendID)
	s.pull(friendID, userID)
	return nil
}

func (s *fakeUserStore) pull(userID, friendID primitive.ObjectID) {
	user, ok := s.users[userID]
	if !ok {
		return
	}
	for i, id := range user.Friends {
		if id == friendID {
			user.Friends = append(user.Friends[:i], user.Friends[i+1:]...)
			return
		}
	}
}

func (s *fakeUserStore) UpdateLastActive(_ context.Context, userID primitive.ObjectID) error {
	if user, ok := s.users[userID]; ok {
		user.LastActiveAt = time.Now()
	}
	return nil
}

type fakeFriendStore struct {
	requests map[primitive.ObjectID]*models.FriendRequest
}

func newFakeFriendStore() *fakeFriendStore {
	return &fakeFriendStore{requests: make(map[primitive.ObjectID]*models.FriendRequest)}
}

func (s *fakeFriendStore) CreateRequest(_ context.Context, req *models.FriendRequest) (*models.FriendRequest, error) {
	pair := models.PairKey(req.From, req.To)
	for _, existing := range s.requests {
		if existing.Pair == pair && existing.Status == models.RequestStatusPending {
			return nil, fmt.Errorf("friend request already exists for this pair: %w", apperrors.ErrConflict)
		}
	}
	req.ID = primitive.NewObjectID()
	req.Pair = pair
	req.Status = models.RequestStatusPending
	req.CreatedAt = time.Now()
	req.UpdatedAt = req.CreatedAt
	s.requests[req.ID] = req
	return req, nil
}

func (s *fakeFriendStore) GetRequestByID(_ context.Context, id primitive.ObjectID) (*models.FriendRequest, error) {
	req, ok := s.requests[id]
	if !ok {
		return nil, fmt.Errorf("friend request %s: %w", id.Hex(), apperrors.ErrNotFound)
	}
	copied := *req
	return &copied, nil
}

func (s *fakeFriendStore) FindPendingByPair(_ context.Context, a, b primitive.ObjectID) (*models.FriendRequest, error) {
	pair := models.PairKey(a, b)
	for _, req := range s.requests {
		if req.Pair == pair && req.Status == models.RequestStatusPending {
			copied := *req
			return &copied, nil
		}
	}
	return nil, fmt.Errorf("pending request for pair: %w", apperrors.ErrNotFound)
}

func (s *fakeFriendStore) ListPendingByReceiver(_ context.Context, userID primitive.ObjectID) ([]models.FriendRequest, error) {
	var out []models.FriendRequest
	for _, req := range s.requests {
		if req.To == userID && req.Status == models.RequestStatusPending {
			out = append(out, *req)
		}
	}
	return out, nil
}

func (s *fakeFriendStore) ListPendingBySender(_ context.Context, userID primitive.ObjectID) ([]models.FriendRequest, error) {
	var out []models.FriendRequest
	for _, req := range s.requests {
		if req.From == userID && req.Status == models.RequestStatusPending {
			out = append(out, *req)
		}
	}
	return out, nil
}

func (s *fakeFriendStore) MarkResponded(_ context.Context, id primitive.ObjectID, status string) error {
	req, ok := s.requests[id]
	if !ok || req.Status != models.RequestStatusPending {
		return fmt.Errorf("request is no longer pending: %w", apperrors.ErrInvalidOperation)
	}
	req.Status = status
	req.UpdatedAt = time.Now()
	return nil
}

func (s *fakeFriendStore) DeleteByPair(_ context.Context, a, b primitive.ObjectID) error {
	pair := models.PairKey(a, b)
	for id, req := range s.requests {
		if req.Pair == pair {
			delete(s.requests, id)
		}
	}
	return nil
}

func (s *fakeFriendStore) DeleteRejectedBefore(_ context.Context, cutoff time.Time) (int64, error) {
	var deleted int64
	for id, req := range s.requests {
		if req.Status == models.RequestStatusRejected && req.UpdatedAt.Before(cutoff) {
			delete(s.requests, id)
			deleted++
		}
	}
	return deleted, nil
}

type fakePostStore struct {
	posts map[primitive.ObjectID]*models.Post
}

func newFakePostStore() *fakePostStore {
	return &fakePostStore{posts: make(map[primitive.ObjectID]*models.Post)}
}

func (s *fakePostStore) CreatePost(_ context.Context, post *models.Post) (*models.Post, error) {
	post.ID = primitive.NewObjectID()
	post.CreatedAt = time.Now()
	post.UpdatedAt = post.CreatedAt
	if post.Likes == nil {
		post.Likes = []primitive.ObjectID{}
	}
	if post.Comments == nil {
		post.Comments = []models.Comment{}
	}
	s.posts[post.ID] = post
	return post, nil
}

func (s *fakePostStore) GetPostByID(_ context.Context, id primitive.ObjectID) (*models.Post, error) {
	post, ok := s.posts[id]
	if !ok {
		return nil, fmt.Errorf("post %s: %w", id.Hex(), apperrors.ErrNotFound)
	}
	copied := *post
	return &copied, nil
}

func (s *fakePostStore) GetPostsPage(_ context.Context, filter bson.M, page, limit int64) ([]models.Post, int64, error) {
	var posts []models.Post
	for _, post := range s.posts {
		if userID, ok := filter["user"]; ok && post.UserID != userID {
			continue
		}
		posts = append(posts, *post)
	}
	total := int64(len(posts))
	start := (page - 1) * limit
	if start >= total {
		return nil, total, nil
	}
	end := start + limit
	if end > total {
		end = total
	}
	return posts[start:end], total, nil
}

func (s *fakePostStore) UpdatePost(_ context.Context, id primitive.ObjectID, update bson.M) error {
	post, ok := s.posts[id]
	if !ok {
		return fmt.Errorf("post %s: %w", id.Hex(), apperrors.ErrNotFound)
	}
	if v, ok := update["description"]; ok {
		post.Description = v.(string)
	}
	if v, ok := update["image"]; ok {
		post.Image = v.(string)
	}
	post.UpdatedAt = time.Now()
	return nil
}

func (s *fakePostStore) DeletePost(_ context.Context, id primitive.ObjectID) error {
	delete(s.posts, id)
	return nil
}

func (s *fakePostStore) AddLike(_ context.Context, postID, userID primitive.ObjectID) (*models.Post, error) {
	post, ok := s.posts[postID]
	if !ok {
		return nil, fmt.Errorf("post %s: %w", postID.Hex(), apperrors.ErrNotFound)
	}
	found := false
	for _, id := range post.Likes {
		if id == userID {
			found = true
			break
		}
	}
	if !found {
		post.Likes = append(post.Likes, userID)
	}
	copied := *post
	return &copied, nil
}

func (s *fakePostStore) RemoveLike(_ context.Context, postID, userID primitive.ObjectID) (*models.Post, error) {
	post, ok := s.posts[postID]
	if !ok {
		return nil, fmt.Errorf("post %s: %w", postID.Hex(), apperrors.ErrNotFound)
	}
	for i, id := range post.Likes {
		if id == userID {
			post.Likes = append(post.Likes[:i], post.Likes[i+1:]...)
			break
		}
	}
	copied := *post
	return &copied, nil
}

func (s *fakePostStore) AddComment(_ context.Context, postID primitive.ObjectID, comment models.Comment) error {
	post, ok := s.posts[postID]
	if !ok {
		return fmt.Errorf("post %s: %w", postID.Hex(), apperrors.ErrNotFound)
	}
	post.Comments = append(post.Comments, comment)
	return nil
}

func (s *fakePostStore) RemoveComment(_ context.Context, postID, commentID primitive.ObjectID) error {
	post, ok := s.posts[postID]
	if !ok {
		return nil
	}
	for i, c := range post.Comments {
		if c.ID == commentID {
			post.Comments = append(post.Comments[:i], post.Comments[i+1:]...)
			return nil
		}
	}
	return nil
}
