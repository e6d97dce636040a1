package services

import (
	"errors"
	"fmt"

	"github.com/yukikurage/deep-thoughts-api/internal/models"
	"github.com/yukikurage/deep-thoughts-api/internal/repository"
	"gorm.io/gorm"
)

// UserService handles reads over the user collection and the friend set.
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{
		userRepo: userRepo,
	}
}

// Users returns all users with friends and thoughts populated.
func (s *UserService) Users() ([]models.User, error) {
	return s.userRepo.List()
}

// User returns one user by username, or nil when no such user exists.
func (s *UserService) User(username string) (*models.User, error) {
	user, err := s.userRepo.FindByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// AddFriend adds friendID to the user's friend set. Repeated adds of the
// same friend leave the set unchanged.
func (s *UserService) AddFriend(userID, friendID uint64) (*models.User, error) {
	user, err := s.userRepo.AddFriend(userID, friendID)
	if err != nil {
		return nil, fmt.Errorf("failed to add friend: %w", err)
	}
	return user, nil
}
