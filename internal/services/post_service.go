package services

import (
	"context"
	"fmt"
	"time"

	"github.com/Aslan2004/Social_Network/internal/models"
	"github.com/Aslan2004/Social_Network/pkg/apperrors"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PostService encapsulates the business logic for posts, likes and comments.
type PostService struct {
	repo PostStore
}

// NewPostService creates a new instance of PostService.
func NewPostService(repo PostStore) *PostService {
	return &PostService{
		repo: repo,
	}
}

// CreatePost stores a new post. The image arrives already encoded as a
// base64 data URI.
func (s *PostService) CreatePost(ctx context.Context, userID primitive.ObjectID, description, image string) (*models.Post, error) {
	if description == "" {
		return nil, fmt.Errorf("description is required: %w", apperrors.ErrValidation)
	}
	if image == "" {
		return nil, fmt.Errorf("image is required: %w", apperrors.ErrValidation)
	}

	post := &models.Post{
		Description: description,
		Image:       image,
		UserID:      userID,
	}

	created, err := s.repo.CreatePost(ctx, post)
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"postID": created.ID.Hex(),
		"userID": userID.Hex(),
	}).Info("Post created")

	return created, nil
}

// GetPost fetches a single post.
func (s *PostService) GetPost(ctx context.Context, id primitive.ObjectID) (*models.Post, error) {
	return s.repo.GetPostByID(ctx, id)
}

// GetPosts returns one page of all posts, newest first.
func (s *PostService) GetPosts(ctx context.Context, page, limit int64) ([]models.Post, int64, error) {
	return s.repo.GetPostsPage(ctx, bson.M{}, page, limit)
}

// GetPostsByUser returns one page of a single user's posts.
func (s *PostService) GetPostsByUser(ctx context.Context, userID primitive.ObjectID, page, limit int64) ([]models.Post, int64, error) {
	return s.repo.GetPostsPage(ctx, bson.M{"user": userID}, page, limit)
}

// UpdatePost changes a post's description and/or image. Only the owner may
// update.
func (s *PostService) UpdatePost(ctx context.Context, postID, actingUserID primitive.ObjectID, description, image string) (*models.Post, error) {
	post, err := s.repo.GetPostByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	if post.UserID != actingUserID {
		return nil, fmt.Errorf("only the author may update this post: %w", apperrors.ErrForbidden)
	}

	update := bson.M{}
	if description != "" {
		update["description"] = description
		post.Description = description
	}
	if image != "" {
		update["image"] = image
		post.Image = image
	}
	if len(update) == 0 {
		return post, nil
	}

	if err := s.repo.UpdatePost(ctx, postID, update); err != nil {
		return nil, err
	}

	return post, nil
}

// DeletePost removes a post. Only the owner may delete.
func (s *PostService) DeletePost(ctx context.Context, postID, actingUserID primitive.ObjectID) error {
	post, err := s.repo.GetPostByID(ctx, postID)
	if err != nil {
		return err
	}

	if post.UserID != actingUserID {
		return fmt.Errorf("only the author may delete this post: %w", apperrors.ErrForbidden)
	}

	return s.repo.DeletePost(ctx, postID)
}

// ToggleLike likes the post when the user has not liked it yet and unlikes
// it otherwise. The count comes from the document the update returned, so
// concurrent toggles from other users are reflected.
func (s *PostService) ToggleLike(ctx context.Context, postID, userID primitive.ObjectID) (int, bool, error) {
	post, err := s.repo.GetPostByID(ctx, postID)
	if err != nil {
		return 0, false, err
	}

	liked := false
	for _, id := range post.Likes {
		if id == userID {
			liked = true
			break
		}
	}

	var updated *models.Post
	if liked {
		updated, err = s.repo.RemoveLike(ctx, postID, userID)
	} else {
		updated, err = s.repo.AddLike(ctx, postID, userID)
	}
	if err != nil {
		return 0, false, err
	}

	return len(updated.Likes), !liked, nil
}

// AddComment appends a comment to the post and returns it.
func (s *PostService) AddComment(ctx context.Context, postID, userID primitive.ObjectID, text string) (*models.Comment, error) {
	if text == "" {
		return nil, fmt.Errorf("comment text is required: %w", apperrors.ErrValidation)
	}

	if _, err := s.repo.GetPostByID(ctx, postID); err != nil {
		return nil, err
	}

	comment := models.Comment{
		ID:        primitive.NewObjectID(),
		UserID:    userID,
		Text:      text,
		CreatedAt: time.Now(),
	}

	if err := s.repo.AddComment(ctx, postID, comment); err != nil {
		return nil, err
	}

	return &comment, nil
}

// DeleteComment removes a comment. The comment author and the post owner
// are both allowed to delete.
func (s *PostService) DeleteComment(ctx context.Context, postID, commentID, actingUserID primitive.ObjectID) error {
	post, err := s.repo.GetPostByID(ctx, postID)
	if err != nil {
		return err
	}

	var comment *models.Comment
	for i := range post.Comments {
		if post.Comments[i].ID == commentID {
			comment = &post.Comments[i]
			break
		}
	}
	if comment == nil {
		return fmt.Errorf("comment %s: %w", commentID.Hex(), apperrors.ErrNotFound)
	}

	if comment.UserID != actingUserID && post.UserID != actingUserID {
		return fmt.Errorf("not allowed to delete this comment: %w", apperrors.ErrForbidden)
	}

	return s.repo.RemoveComment(ctx, postID, commentID)
}
