package repository

import (
	"github.com/yukikurage/deep-thoughts-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormUserRepository is a GORM implementation of UserRepository
type GormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db}
}

// Create creates a new user
func (r *GormUserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

// FindByID finds a user by ID with friends and thoughts populated
func (r *GormUserRepository) FindByID(id uint64) (*models.User, error) {
	var user models.User
	if err := r.populated().First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmail finds a user by email. No population: this serves the login
// path, which only needs the stored password hash.
func (r *GormUserRepository) FindByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByUsername finds a user by username with friends and thoughts populated
func (r *GormUserRepository) FindByUsername(username string) (*models.User, error) {
	var user models.User
	if err := r.populated().Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// List retrieves all users with friends and thoughts populated
func (r *GormUserRepository) List() ([]models.User, error) {
	var users []models.User
	if err := r.populated().Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// AddFriend inserts the friendship row, ignoring the insert when the pair
// already exists, then re-reads the user with the friend set populated.
func (r *GormUserRepository) AddFriend(userID, friendID uint64) (*models.User, error) {
	friendship := models.Friendship{
		UserID:   userID,
		FriendID: friendID,
	}

	if err := r.db.
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&friendship).Error; err != nil {
		return nil, err
	}

	return r.FindByID(userID)
}

// populated preloads the friend set and the user's thoughts, newest
// first. Reactions ride along with each thought: they are embedded in
// the thought, so a populated thought always carries them.
func (r *GormUserRepository) populated() *gorm.DB {
	return r.db.
		Preload("Friends").
		Preload("Thoughts", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC")
		}).
		Preload("Thoughts.Reactions")
}
