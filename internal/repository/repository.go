package repository

import (
	"github.com/yukikurage/deep-thoughts-api/internal/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID with friends and thoughts populated
	FindByID(id uint64) (*models.User, error)

	// FindByEmail finds a user by email (login path, no population)
	FindByEmail(email string) (*models.User, error)

	// FindByUsername finds a user by username with friends and thoughts populated
	FindByUsername(username string) (*models.User, error)

	// List retrieves all users with friends and thoughts populated
	List() ([]models.User, error)

	// AddFriend adds friendID to the user's friend set and returns the
	// updated user with friends populated. Adding the same friend twice
	// is a no-op.
	AddFriend(userID, friendID uint64) (*models.User, error)
}

// ThoughtRepository defines the interface for thought data access
type ThoughtRepository interface {
	// Create creates a new thought
	Create(thought *models.Thought) error

	// FindByID finds a thought by ID with reactions populated
	FindByID(id uint64) (*models.Thought, error)

	// List retrieves thoughts newest first, optionally filtered by the
	// author's username
	List(username string) ([]models.Thought, error)

	// AddReaction appends a reaction to a thought and returns the updated
	// thought with reactions populated
	AddReaction(thoughtID uint64, reaction *models.Reaction) (*models.Thought, error)
}
