package handlers

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/Aslan2004/Social_Network/internal/services"
	"github.com/Aslan2004/Social_Network/pkg/logger"
	"github.com/Aslan2004/Social_Network/pkg/middleware"
	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const maxImageSize = 10 << 20 // 10MB

var errNoImage = errors.New("no image file in request")

// PostHandler manages HTTP endpoints for posts, likes and comments.
type PostHandler struct {
	Service *services.PostService
}

// NewPostHandler initializes a new PostHandler.
func NewPostHandler(service *services.PostService) *PostHandler {
	return &PostHandler{Service: service}
}

// readImageFile pulls the "image" file out of a multipart form and encodes
// it as a base64 data URI for inline storage. Returns errNoImage when the
// form has no image part.
func readImageFile(r *http.Request) (string, error) {
	if err := r.ParseMultipartForm(maxImageSize); err != nil {
		return "", errors.New("file too big or invalid form")
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		return "", errNoImage
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if contentType != "image/jpeg" && contentType != "image/png" {
		return "", errors.New("only JPEG and PNG images are allowed")
	}

	data, err := io.ReadAll(io.LimitReader(file, maxImageSize))
	if err != nil {
		return "", errors.New("failed to read image file")
	}

	return "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

// CreatePostHandler creates a post from a multipart form carrying a
// description field and an image file.
func (h *PostHandler) CreatePostHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	image, err := readImageFile(r)
	if err != nil {
		if errors.Is(err, errNoImage) {
			respondError(w, http.StatusBadRequest, "Image file is required")
			return
		}
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	userID, _ := primitive.ObjectIDFromHex(claims.UserID)

	post, err := h.Service.CreatePost(r.Context(), userID, r.FormValue("description"), image)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	logger.Log.WithField("postID", post.ID.Hex()).Info("Post created")
	respondSuccess(w, http.StatusCreated, "Post created successfully", post)
}

// GetPostsHandler returns a paginated feed of all posts.
func (h *PostHandler) GetPostsHandler(w http.ResponseWriter, r *http.Request) {
	page, limit := parsePagination(r)

	posts, total, err := h.Service.GetPosts(r.Context(), page, limit)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondPage(w, posts, NewPagination(page, limit, total))
}

// GetPostHandler fetches a single post.
func (h *PostHandler) GetPostHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := primitive.ObjectIDFromHex(vars["id"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid post ID")
		return
	}

	post, err := h.Service.GetPost(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondSuccess(w, http.StatusOK, "", post)
}

// GetPostsByUserHandler returns a paginated list of one user's posts.
func (h *PostHandler) GetPostsByUserHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	userID, err := primitive.ObjectIDFromHex(vars["userId"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	page, limit := parsePagination(r)

	posts, total, err := h.Service.GetPostsByUser(r.Context(), userID, page, limit)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondPage(w, posts, NewPagination(page, limit, total))
}

// UpdatePostHandler updates a post's description and/or image.
func (h *PostHandler) UpdatePostHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	vars := mux.Vars(r)
	postID, err := primitive.ObjectIDFromHex(vars["id"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid post ID")
		return
	}

	// The image part is optional on update.
	image, err := readImageFile(r)
	if err != nil && !errors.Is(err, errNoImage) {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	userID, _ := primitive.ObjectIDFromHex(claims.UserID)

	post, err := h.Service.UpdatePost(r.Context(), postID, userID, r.FormValue("description"), image)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondSuccess(w, http.StatusOK, "Post updated successfully", post)
}

// DeletePostHandler deletes a post.
func (h *PostHandler) DeletePostHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	vars := mux.Vars(r)
	postID, err := primitive.ObjectIDFromHex(vars["id"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid post ID")
		return
	}

	userID, _ := primitive.ObjectIDFromHex(claims.UserID)

	if err := h.Service.DeletePost(r.Context(), postID, userID); err != nil {
		respondServiceError(w, err)
		return
	}

	respondSuccess(w, http.StatusOK, "Post deleted successfully", nil)
}

// ToggleLikeHandler likes or unlikes a post.
func (h *PostHandler) ToggleLikeHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	vars := mux.Vars(r)
	postID, err := primitive.ObjectIDFromHex(vars["id"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid post ID")
		return
	}

	userID, _ := primitive.ObjectIDFromHex(claims.UserID)

	likesCount, isLiked, err := h.Service.ToggleLike(r.Context(), postID, userID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	message := "Post unliked"
	if isLiked {
		message = "Post liked"
	}
	respondSuccess(w, http.StatusOK, message, map[string]interface{}{
		"likesCount": likesCount,
		"isLiked":    isLiked,
	})
}

// AddCommentHandler appends a comment to a post.
func (h *PostHandler) AddCommentHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	vars := mux.Vars(r)
	postID, err := primitive.ObjectIDFromHex(vars["id"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid post ID")
		return
	}

	var body struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	userID, _ := primitive.ObjectIDFromHex(claims.UserID)

	comment, err := h.Service.AddComment(r.Context(), postID, userID, body.Text)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondSuccess(w, http.StatusCreated, "Comment added successfully", comment)
}

// DeleteCommentHandler removes a comment from a post.
func (h *PostHandler) DeleteCommentHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	vars := mux.Vars(r)
	postID, err := primitive.ObjectIDFromHex(vars["id"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid post ID")
		return
	}
	commentID, err := primitive.ObjectIDFromHex(vars["commentId"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid comment ID")
		return
	}

	userID, _ := primitive.ObjectIDFromHex(claims.UserID)

	if err := h.Service.DeleteComment(r.Context(), postID, commentID, userID); err != nil {
		respondServiceError(w, err)
		return
	}

	respondSuccess(w, http.StatusOK, "Comment deleted successfully", nil)
}
