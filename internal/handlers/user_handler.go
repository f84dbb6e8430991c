package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/Aslan2004/Social_Network/internal/config"
	"github.com/Aslan2004/Social_Network/internal/models"
	"github.com/Aslan2004/Social_Network/internal/services"
	jwtutil "github.com/Aslan2004/Social_Network/pkg/jwt"
	"github.com/Aslan2004/Social_Network/pkg/logger"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserHandler handles HTTP requests related to accounts and profiles.
type UserHandler struct {
	Service *services.UserService
	Config  *config.Config
}

// NewUserHandler creates a new instance of UserHandler.
func NewUserHandler(service *services.UserService, cfg *config.Config) *UserHandler {
	return &UserHandler{
		Service: service,
		Config:  cfg,
	}
}

type credentialsPayload struct {
	PhoneNumber string `json:"phoneNumber"`
	Password    string `json:"password"`
	Name        string `json:"name"`
}

type authResponse struct {
	AccessToken string            `json:"accessToken"`
	User        models.PublicUser `json:"user"`
}

// RegisterUserHandler handles user registration and returns an access token
// alongside the created profile.
func (h *UserHandler) RegisterUserHandler(w http.ResponseWriter, r *http.Request) {
	var payload credentialsPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		log.WithError(err).Warn("Failed to decode registration request")
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	user, err := h.Service.RegisterUser(r.Context(), payload.PhoneNumber, payload.Password, payload.Name)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	token, err := jwtutil.GenerateToken(user.ID.Hex(), user.PhoneNumber, h.Config.JWTSecret, h.Config.TokenExpiry)
	if err != nil {
		log.WithError(err).Error("Failed to generate JWT token")
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondSuccess(w, http.StatusCreated, "User registered successfully", authResponse{
		AccessToken: token,
		User:        user.Public(),
	})
}

// LoginUserHandler handles user login.
func (h *UserHandler) LoginUserHandler(w http.ResponseWriter, r *http.Request) {
	var payload credentialsPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		log.WithError(err).Warn("Failed to decode login request")
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	user, err := h.Service.AuthenticateUser(r.Context(), payload.PhoneNumber, payload.Password)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	token, err := jwtutil.GenerateToken(user.ID.Hex(), user.PhoneNumber, h.Config.JWTSecret, h.Config.TokenExpiry)
	if err != nil {
		log.WithError(err).Error("Failed to generate JWT token")
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	logger.Log.WithField("userID", user.ID.Hex()).Info("User logged in successfully")
	respondSuccess(w, http.StatusOK, "Login successful", authResponse{
		AccessToken: token,
		User:        user.Public(),
	})
}

// GetUsersHandler returns a paginated list of users.
func (h *UserHandler) GetUsersHandler(w http.ResponseWriter, r *http.Request) {
	page, limit := parsePagination(r)

	users, total, err := h.Service.GetUsers(r.Context(), page, limit)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	publicUsers := make([]models.PublicUser, 0, len(users))
	for i := range users {
		publicUsers = append(publicUsers, users[i].Public())
	}

	respondPage(w, publicUsers, NewPagination(page, limit, total))
}

// GetUserHandler fetches a single user by ID.
func (h *UserHandler) GetUserHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := primitive.ObjectIDFromHex(vars["id"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	user, err := h.Service.GetUser(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondSuccess(w, http.StatusOK, "", user.Public())
}
