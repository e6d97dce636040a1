package services

import (
	"errors"
	"fmt"

	"github.com/yukikurage/deep-thoughts-api/internal/models"
	"github.com/yukikurage/deep-thoughts-api/internal/repository"
	"gorm.io/gorm"
)

var ErrThoughtNotFound = errors.New("thought not found")

// ThoughtService handles the thought feed and reactions.
type ThoughtService struct {
	thoughtRepo repository.ThoughtRepository
}

// NewThoughtService creates a new ThoughtService.
func NewThoughtService(thoughtRepo repository.ThoughtRepository) *ThoughtService {
	return &ThoughtService{
		thoughtRepo: thoughtRepo,
	}
}

// Thoughts returns the feed newest first, optionally filtered by the
// author's username.
func (s *ThoughtService) Thoughts(username string) ([]models.Thought, error) {
	return s.thoughtRepo.List(username)
}

// Thought returns one thought by id, or nil when no such thought exists.
func (s *ThoughtService) Thought(id uint64) (*models.Thought, error) {
	thought, err := s.thoughtRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find thought: %w", err)
	}
	return thought, nil
}

// AddThought creates a thought authored by the given user.
func (s *ThoughtService) AddThought(userID uint64, username, thoughtText string) (*models.Thought, error) {
	thought := &models.Thought{
		ThoughtText: thoughtText,
		Username:    username,
		UserID:      userID,
	}

	if err := s.thoughtRepo.Create(thought); err != nil {
		return nil, fmt.Errorf("failed to create thought: %w", err)
	}

	return thought, nil
}

// AddReaction appends a reaction authored by the given username and
// returns the updated thought.
func (s *ThoughtService) AddReaction(thoughtID uint64, username, reactionBody string) (*models.Thought, error) {
	reaction := &models.Reaction{
		ReactionBody: reactionBody,
		Username:     username,
	}

	thought, err := s.thoughtRepo.AddReaction(thoughtID, reaction)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrThoughtNotFound
		}
		return nil, fmt.Errorf("failed to add reaction: %w", err)
	}

	return thought, nil
}
