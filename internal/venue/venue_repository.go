package venue

import (
	"errors"

	"github.com/tunislock/tunislock-api/pkg/apperrors"
	"gorm.io/gorm"
)

// VenueRepository defines all database operations for venue management
type VenueRepository interface {
	CreateVenue(venue *Venue) error
	GetVenueByID(id uint) (*Venue, error)
	GetAllVenues(page, limit int, filters map[string]interface{}) ([]Venue, int64, error)
	UpdateVenue(venue *Venue) error
	DeleteVenue(id uint) error
	VerifyVenue(id uint) (*Venue, error)
}

type venueRepository struct {
	db *gorm.DB
}

// NewVenueRepository creates a new venue repository
func NewVenueRepository(db *gorm.DB) VenueRepository {
	return &venueRepository{db: db}
}

// CreateVenue adds a new venue to the database
func (r *venueRepository) CreateVenue(venue *Venue) error {
	var count int64
	if err := r.db.Model(&Venue{}).Where("name = ?", venue.Name).Count(&count).Error; err != nil {
		return apperrors.Internal("failed to check venue name", err)
	}
	if count > 0 {
		return apperrors.Conflict("a venue with this name already exists")
	}
	if err := r.db.Create(venue).Error; err != nil {
		return apperrors.Internal("failed to create venue", err)
	}
	return nil
}

// GetVenueByID retrieves a venue by its ID, nil when absent
func (r *venueRepository) GetVenueByID(id uint) (*Venue, error) {
	var venue Venue
	if err := r.db.First(&venue, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &venue, nil
}

// GetAllVenues retrieves all venues with pagination and filters
func (r *venueRepository) GetAllVenues(page, limit int, filters map[string]interface{}) ([]Venue, int64, error) {
	var venues []Venue
	var totalCount int64

	offset := (page - 1) * limit

	query := r.db.Model(&Venue{})

	for key, value := range filters {
		switch key {
		case "city":
			query = query.Where("city ILIKE ?", value)
		case "pitch_type":
			query = query.Where("pitch_type = ?", value)
		case "verified":
			query = query.Where("verified = ?", value)
		case "min_capacity":
			query = query.Where("capacity >= ?", value)
		}
	}

	if err := query.Count(&totalCount).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Order("name asc").Offset(offset).Limit(limit).Find(&venues).Error; err != nil {
		return nil, 0, err
	}

	return venues, totalCount, nil
}

// UpdateVenue updates venue information
func (r *venueRepository) UpdateVenue(venue *Venue) error {
	return r.db.Save(venue).Error
}

// DeleteVenue removes a venue. Matches keep their rows; venue_id just dangles to NULL.
func (r *venueRepository) DeleteVenue(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Table("matches").Where("venue_id = ?", id).Update("venue_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&Venue{}, id).Error
	})
}

// VerifyVenue flags a venue as verified by an admin
func (r *venueRepository) VerifyVenue(id uint) (*Venue, error) {
	venue, err := r.GetVenueByID(id)
	if err != nil {
		return nil, err
	}
	if venue == nil {
		return nil, apperrors.NotFound("venue not found")
	}
	if !venue.Verified {
		venue.Verified = true
		if err := r.db.Save(venue).Error; err != nil {
			return nil, err
		}
	}
	return venue, nil
}
