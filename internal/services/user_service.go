package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"golang.org/x/crypto/bcrypt"

	"github.com/Aslan2004/Social_Network/internal/models"
	"github.com/Aslan2004/Social_Network/pkg/apperrors"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var phoneRegex = regexp.MustCompile(`^\+?[0-9]{7,15}$`)

// UserService encapsulates the business logic for user operations.
type UserService struct {
	repo UserStore
}

// NewUserService creates a new instance of UserService.
func NewUserService(repo UserStore) *UserService {
	return &UserService{
		repo: repo,
	}
}

// RegisterUser registers a new user after hashing their password.
func (s *UserService) RegisterUser(ctx context.Context, phoneNumber, password, name string) (*models.User, error) {
	if phoneNumber == "" || password == "" {
		return nil, fmt.Errorf("phone number and password are required: %w", apperrors.ErrValidation)
	}

	if !phoneRegex.MatchString(phoneNumber) {
		logrus.WithField("phone", phoneNumber).Warn("Invalid phone number format during registration")
		return nil, fmt.Errorf("invalid phone number format: %w", apperrors.ErrValidation)
	}

	existing, err := s.repo.GetUserByPhone(ctx, phoneNumber)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		logrus.WithField("phone", phoneNumber).Warn("Phone number already in use")
		return nil, fmt.Errorf("user with this phone number already exists: %w", apperrors.ErrConflict)
	}

	hashedPwd, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		logrus.WithError(err).Error("Password hashing failed")
		return nil, fmt.Errorf("failed to hash password: %v", err)
	}

	user := &models.User{
		PhoneNumber:    phoneNumber,
		HashedPassword: string(hashedPwd),
		Name:           name,
	}

	// The unique phone_number index catches the race where two registrations
	// for the same number slip past the lookup above.
	created, err := s.repo.CreateUser(ctx, user)
	if err != nil {
		return nil, err
	}

	logrus.WithField("userID", created.ID.Hex()).Info("User registered successfully")
	return created, nil
}

// AuthenticateUser verifies the phone number and password and returns the
// user when the credentials are valid. Unknown phone and wrong password
// produce the same error so the response does not leak which one failed.
func (s *UserService) AuthenticateUser(ctx context.Context, phoneNumber, password string) (*models.User, error) {
	if phoneNumber == "" || password == "" {
		return nil, fmt.Errorf("phone number and password are required: %w", apperrors.ErrValidation)
	}

	user, err := s.repo.GetUserByPhone(ctx, phoneNumber)
	if err != nil {
		logrus.WithField("phone", phoneNumber).Warn("Login attempt for unknown phone number")
		return nil, fmt.Errorf("invalid phone number or password: %w", apperrors.ErrUnauthenticated)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(password)); err != nil {
		logrus.WithField("userID", user.ID.Hex()).Warn("Login attempt with wrong password")
		return nil, fmt.Errorf("invalid phone number or password: %w", apperrors.ErrUnauthenticated)
	}

	return user, nil
}

// GetUser fetches a single user by ID.
func (s *UserService) GetUser(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	return s.repo.GetUserByID(ctx, id)
}

// GetUsers returns one page of users plus the total count.
func (s *UserService) GetUsers(ctx context.Context, page, limit int64) ([]models.User, int64, error) {
	return s.repo.GetUsersPage(ctx, page, limit)
}

// UpdateLastActive stamps the user's activity time. Used by middleware;
// errors are logged, not surfaced.
func (s *UserService) UpdateLastActive(ctx context.Context, userID primitive.ObjectID) error {
	if err := s.repo.UpdateLastActive(ctx, userID); err != nil {
		logrus.WithError(err).WithField("userID", userID.Hex()).Warn("Failed to update last active")
		return err
	}
	return nil
}
