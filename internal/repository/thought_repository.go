package repository

import (
	"github.com/yukikurage/deep-thoughts-api/internal/models"
	"gorm.io/gorm"
)

// GormThoughtRepository is a GORM implementation of ThoughtRepository
type GormThoughtRepository struct {
	db *gorm.DB
}

// NewThoughtRepository creates a new ThoughtRepository
func NewThoughtRepository(db *gorm.DB) ThoughtRepository {
	return &GormThoughtRepository{db: db}
}

// Create creates a new thought
func (r *GormThoughtRepository) Create(thought *models.Thought) error {
	return r.db.Create(thought).Error
}

// FindByID finds a thought by ID with reactions populated
func (r *GormThoughtRepository) FindByID(id uint64) (*models.Thought, error) {
	var thought models.Thought
	if err := r.db.Preload("Reactions").First(&thought, id).Error; err != nil {
		return nil, err
	}
	return &thought, nil
}

// List retrieves thoughts ordered by creation time descending, optionally
// filtered by the author's username.
func (r *GormThoughtRepository) List(username string) ([]models.Thought, error) {
	var thoughts []models.Thought

	query := r.db.Preload("Reactions").Order("created_at DESC")
	if username != "" {
		query = query.Where("username = ?", username)
	}

	if err := query.Find(&thoughts).Error; err != nil {
		return nil, err
	}
	return thoughts, nil
}

// AddReaction appends a reaction to the thought's reaction list and
// returns the updated thought. A missing thought surfaces as
// gorm.ErrRecordNotFound before anything is written.
func (r *GormThoughtRepository) AddReaction(thoughtID uint64, reaction *models.Reaction) (*models.Thought, error) {
	var thought models.Thought
	if err := r.db.First(&thought, thoughtID).Error; err != nil {
		return nil, err
	}

	reaction.ThoughtID = thought.ID
	if err := r.db.Create(reaction).Error; err != nil {
		return nil, err
	}

	return r.FindByID(thought.ID)
}
