package service

import (
	"fmt"

	"idiomastery/internal/domain"
	"idiomastery/internal/repository"
)

// AuthService handles authentication logic
type AuthService struct {
	userRepo    repository.UserRepository
	botPassword string
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo repository.UserRepository, botPassword string) *AuthService {
	return &AuthService{
		userRepo:    userRepo,
		botPassword: botPassword,
	}
}

// CheckPassword verifies if provided password matches
func (s *AuthService) CheckPassword(password string) bool {
	return password == s.botPassword
}

// IsAuthorized checks if user is authorized
func (s *AuthService) IsAuthorized(userID int64) (bool, error) {
	return s.userRepo.IsAuthorized(userID)
}

// AuthorizeUser authorizes a user
func (s *AuthService) AuthorizeUser(userID int64) error {
	return s.userRepo.AuthorizeUser(userID)
}

// EnsureUserExists creates user record if doesn't exist
func (s *AuthService) EnsureUserExists(userID int64) error {
	return s.userRepo.EnsureUserExists(userID)
}

// User returns the stored user record, nil when unknown
func (s *AuthService) User(userID int64) (*domain.User, error) {
	return s.userRepo.GetUser(userID)
}

// UpdateProfile sets the user's display name, keeping the current photo
// URL when the new one is empty
func (s *AuthService) UpdateProfile(userID int64, displayName, photoURL string) error {
	if displayName == "" {
		return fmt.Errorf("display name cannot be empty")
	}

	if photoURL == "" {
		user, err := s.userRepo.GetUser(userID)
		if err != nil {
			return err
		}
		if user != nil {
			photoURL = user.PhotoURL
		}
	}

	return s.userRepo.UpdateProfile(userID, displayName, photoURL)
}

// DeleteAccount removes the user and everything they own. The caller
// must re-confirm the password first.
func (s *AuthService) DeleteAccount(userID int64, password string) error {
	if !s.CheckPassword(password) {
		return fmt.Errorf("password confirmation failed")
	}
	return s.userRepo.DeleteUser(userID)
}
