package user

import (
	"errors"

	"gorm.io/gorm"
)

type UserRepository interface {
	GetByID(id uint) (*User, error)
	GetByUsername(username string) (*User, error)
	Update(u *User) error
	GetSkillProfile(userID uint) (*SkillProfile, error)
}

type GormUserRepository struct {
	db *gorm.DB
}

func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// GetByID returns nil, nil when no user exists with the given ID.
func (r *GormUserRepository) GetByID(id uint) (*User, error) {
	var u User
	if err := r.db.Preload("Roles").First(&u, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *GormUserRepository) GetByUsername(username string) (*User, error) {
	var u User
	if err := r.db.Preload("Roles").Where("username = ?", username).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *GormUserRepository) Update(u *User) error {
	return r.db.Save(u).Error
}

// GetSkillProfile returns nil, nil when the user has never been rated.
func (r *GormUserRepository) GetSkillProfile(userID uint) (*SkillProfile, error) {
	var profile SkillProfile
	if err := r.db.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}
