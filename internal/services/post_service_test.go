package services

import (
	"context"
	"testing"

	"github.com/Aslan2004/Social_Network/internal/models"
	"github.com/Aslan2004/Social_Network/pkg/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const testImage = "data:image/png;base64,iVBORw0KGgo="

func newPostFixture() (*PostService, *fakePostStore, primitive.ObjectID) {
	store := newFakePostStore()
	return NewPostService(store), store, primitive.NewObjectID()
}

func TestCreatePost(t *testing.T) {
	svc, _, author := newPostFixture()

	post, err := svc.CreatePost(context.Background(), author, "first post", testImage)
	require.NoError(t, err)
	assert.False(t, post.ID.IsZero())
	assert.Equal(t, author, post.UserID)
	assert.Empty(t, post.Likes)
	assert.Empty(t, post.Comments)
}

func TestCreatePostValidation(t *testing.T) {
	svc, _, author := newPostFixture()

	_, err := svc.CreatePost(context.Background(), author, "", testImage)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = svc.CreatePost(context.Background(), author, "no image", "")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestUpdatePostOwnership(t *testing.T) {
	svc, _, author := newPostFixture()
	stranger := primitive.NewObjectID()

	post, err := svc.CreatePost(context.Background(), author, "original", testImage)
	require.NoError(t, err)

	_, err = svc.UpdatePost(context.Background(), post.ID, stranger, "hijacked", "")
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	updated, err := svc.UpdatePost(context.Background(), post.ID, author, "edited", "")
	require.NoError(t, err)
	assert.Equal(t, "edited", updated.Description)
	assert.Equal(t, testImage, updated.Image)
}

func TestDeletePost(t *testing.T) {
	svc, _, author := newPostFixture()
	stranger := primitive.NewObjectID()

	post, err := svc.CreatePost(context.Background(), author, "short lived", testImage)
	require.NoError(t, err)

	err = svc.DeletePost(context.Background(), post.ID, stranger)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	require.NoError(t, svc.DeletePost(context.Background(), post.ID, author))

	_, err = svc.GetPost(context.Background(), post.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestToggleLike(t *testing.T) {
	svc, store, author := newPostFixture()
	liker := primitive.NewObjectID()

	post, err := svc.CreatePost(context.Background(), author, "likeable", testImage)
	require.NoError(t, err)

	count, liked, err := svc.ToggleLike(context.Background(), post.ID, liker)
	require.NoError(t, err)
	assert.True(t, liked)
	assert.Equal(t, 1, count)

	// Toggling again removes the like.
	count, liked, err = svc.ToggleLike(context.Background(), post.ID, liker)
	require.NoError(t, err)
	assert.False(t, liked)
	assert.Equal(t, 0, count)
	assert.Empty(t, store.posts[post.ID].Likes)
}

// stalePostStore serves reads from a fixed snapshot while writes go to the
// live store, the way a read can race another user's like in mongo.
type stalePostStore struct {
	*fakePostStore
	snapshot *models.Post
}

func (s *stalePostStore) GetPostByID(context.Context, primitive.ObjectID) (*models.Post, error) {
	copied := *s.snapshot
	return &copied, nil
}

func TestToggleLikeCountReflectsConcurrentLikes(t *testing.T) {
	store := newFakePostStore()
	svc := NewPostService(store)
	author := primitive.NewObjectID()

	post, err := svc.CreatePost(context.Background(), author, "popular", testImage)
	require.NoError(t, err)

	snapshot := *store.posts[post.ID]

	// Another user likes the post after our snapshot was taken.
	otherLiker := primitive.NewObjectID()
	_, err = store.AddLike(context.Background(), post.ID, otherLiker)
	require.NoError(t, err)

	staleSvc := NewPostService(&stalePostStore{fakePostStore: store, snapshot: &snapshot})

	count, liked, err := staleSvc.ToggleLike(context.Background(), post.ID, primitive.NewObjectID())
	require.NoError(t, err)
	assert.True(t, liked)
	assert.Equal(t, 2, count)
}

func TestToggleLikeMissingPost(t *testing.T) {
	svc, _, _ := newPostFixture()

	_, _, err := svc.ToggleLike(context.Background(), primitive.NewObjectID(), primitive.NewObjectID())
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestAddComment(t *testing.T) {
	svc, store, author := newPostFixture()
	commenter := primitive.NewObjectID()

	post, err := svc.CreatePost(context.Background(), author, "discuss", testImage)
	require.NoError(t, err)

	comment, err := svc.AddComment(context.Background(), post.ID, commenter, "nice one")
	require.NoError(t, err)
	assert.False(t, comment.ID.IsZero())
	assert.Equal(t, commenter, comment.UserID)
	require.Len(t, store.posts[post.ID].Comments, 1)

	_, err = svc.AddComment(context.Background(), post.ID, commenter, "")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestDeleteCommentPermissions(t *testing.T) {
	svc, store, author := newPostFixture()
	commenter := primitive.NewObjectID()
	stranger := primitive.NewObjectID()

	post, err := svc.CreatePost(context.Background(), author, "discuss", testImage)
	require.NoError(t, err)

	comment, err := svc.AddComment(context.Background(), post.ID, commenter, "first")
	require.NoError(t, err)

	err = svc.DeleteComment(context.Background(), post.ID, comment.ID, stranger)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	// The post owner may remove someone else's comment.
	require.NoError(t, svc.DeleteComment(context.Background(), post.ID, comment.ID, author))
	assert.Empty(t, store.posts[post.ID].Comments)

	// The comment author may remove their own.
	comment, err = svc.AddComment(context.Background(), post.ID, commenter, "second")
	require.NoError(t, err)
	require.NoError(t, svc.DeleteComment(context.Background(), post.ID, comment.ID, commenter))

	err = svc.DeleteComment(context.Background(), post.ID, comment.ID, commenter)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestGetPostsByUserFilters(t *testing.T) {
	svc, _, author := newPostFixture()
	other := primitive.NewObjectID()

	for i := 0; i < 3; i++ {
		_, err := svc.CreatePost(context.Background(), author, "mine", testImage)
		require.NoError(t, err)
	}
	_, err := svc.CreatePost(context.Background(), other, "theirs", testImage)
	require.NoError(t, err)

	posts, total, err := svc.GetPostsByUser(context.Background(), author, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	for _, post := range posts {
		assert.Equal(t, author, post.UserID)
	}

	_, total, err = svc.GetPosts(context.Background(), 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(4), total)
}
