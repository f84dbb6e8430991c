package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/Aslan2004/Social_Network/internal/services"
	"github.com/Aslan2004/Social_Network/pkg/logger"
	"github.com/Aslan2004/Social_Network/pkg/middleware"
	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FriendHandler manages HTTP endpoints for the friend request workflow.
type FriendHandler struct {
	Service *services.FriendService
}

// NewFriendHandler initializes a new FriendHandler.
func NewFriendHandler(service *services.FriendService) *FriendHandler {
	return &FriendHandler{Service: service}
}

// SendFriendRequestHandler creates a friend request to the user named in
// the body.
func (h *FriendHandler) SendFriendRequestHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var body struct {
		ToUserID string `json:"toUserId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	if body.ToUserID == "" {
		respondError(w, http.StatusBadRequest, "Target user ID is required")
		return
	}

	toUserID, err := primitive.ObjectIDFromHex(body.ToUserID)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid target user ID")
		return
	}

	fromUserID, _ := primitive.ObjectIDFromHex(claims.UserID)

	request, err := h.Service.SendRequest(r.Context(), fromUserID, toUserID)
	if err != nil {
		logger.Log.WithError(err).Warnf("Failed to send friend request from %s", claims.UserID)
		respondServiceError(w, err)
		return
	}

	respondSuccess(w, http.StatusCreated, "Friend request sent successfully", request)
}

// GetPendingRequestsHandler lists incoming pending requests.
func (h *FriendHandler) GetPendingRequestsHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	userID, _ := primitive.ObjectIDFromHex(claims.UserID)

	requests, err := h.Service.GetPendingRequests(r.Context(), userID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondSuccess(w, http.StatusOK, "", requests)
}

// GetSentRequestsHandler lists outgoing pending requests.
func (h *FriendHandler) GetSentRequestsHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	userID, _ := primitive.ObjectIDFromHex(claims.UserID)

	requests, err := h.Service.GetSentRequests(r.Context(), userID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondSuccess(w, http.StatusOK, "", requests)
}

// AcceptFriendRequestHandler accepts an incoming request.
func (h *FriendHandler) AcceptFriendRequestHandler(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, true)
}

// RejectFriendRequestHandler rejects an incoming request.
func (h *FriendHandler) RejectFriendRequestHandler(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, false)
}

func (h *FriendHandler) respond(w http.ResponseWriter, r *http.Request, accept bool) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	vars := mux.Vars(r)
	requestID, err := primitive.ObjectIDFromHex(vars["requestId"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request ID")
		return
	}

	userID, _ := primitive.ObjectIDFromHex(claims.UserID)

	if accept {
		err = h.Service.AcceptRequest(r.Context(), requestID, userID)
	} else {
		err = h.Service.RejectRequest(r.Context(), requestID, userID)
	}
	if err != nil {
		logger.Log.WithError(err).Warnf("User %s failed to respond to request %s", claims.UserID, vars["requestId"])
		respondServiceError(w, err)
		return
	}

	message := "Friend request rejected"
	if accept {
		message = "Friend request accepted"
	}
	respondSuccess(w, http.StatusOK, message, nil)
}

// RemoveFriendHandler dissolves a friendship. Succeeds even when there was
// nothing to remove.
func (h *FriendHandler) RemoveFriendHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	vars := mux.Vars(r)
	friendID, err := primitive.ObjectIDFromHex(vars["friendId"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid friend ID")
		return
	}

	userID, _ := primitive.ObjectIDFromHex(claims.UserID)

	if err := h.Service.RemoveFriend(r.Context(), userID, friendID); err != nil {
		respondServiceError(w, err)
		return
	}

	respondSuccess(w, http.StatusOK, "Friend removed successfully", nil)
}

// GetFriendsHandler returns a user's friends as public profiles.
func (h *FriendHandler) GetFriendsHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	vars := mux.Vars(r)
	userID, err := primitive.ObjectIDFromHex(vars["id"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	friends, err := h.Service.GetFriends(r.Context(), userID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondSuccess(w, http.StatusOK, "", friends)
}
