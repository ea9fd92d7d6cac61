package venue

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tunislock/tunislock-api/internal/models"
	"github.com/tunislock/tunislock-api/pkg/apperrors"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// matchRow is the minimal slice of the matches table that DeleteVenue
// touches; migrating it here avoids importing the match package, which
// itself depends on venue.
type matchRow struct {
	ID      uint `gorm:"primarykey"`
	VenueID *uint
}

func (matchRow) TableName() string { return "matches" }

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err, "Failed to connect to in-memory DB")

	// One connection so every session sees the same in-memory database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(&Venue{}, &matchRow{})
	require.NoError(t, err, "Failed to migrate schema")

	return db
}

func sampleVenue(name string) *Venue {
	return &Venue{
		Name:      name,
		Address:   "12 Avenue Habib Bourguiba",
		City:      "Tunis",
		PitchType: "turf",
		Capacity:  14,
		Amenities: models.StringSlice{"showers", "parking"},
		Coordinates: models.Coordinates{
			Latitude:  36.8065,
			Longitude: 10.1815,
		},
	}
}

func TestCreateVenue(t *testing.T) {
	db := setupTestDB(t)
	repo := NewVenueRepository(db)

	t.Run("serialized columns survive a round trip", func(t *testing.T) {
		require.NoError(t, repo.CreateVenue(sampleVenue("Stade El Menzah")))

		got, err := repo.GetVenueByID(1)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, 36.8065, got.Coordinates.Latitude)
		assert.Equal(t, 10.1815, got.Coordinates.Longitude)
		assert.Equal(t, models.StringSlice{"showers", "parking"}, got.Amenities)
	})

	t.Run("duplicate name rejected", func(t *testing.T) {
		err := repo.CreateVenue(sampleVenue("Stade El Menzah"))
		require.Error(t, err)
		assert.Equal(t, apperrors.KindConflict, apperrors.KindOf(err))
	})
}

func TestGetVenueByIDMissing(t *testing.T) {
	db := setupTestDB(t)
	repo := NewVenueRepository(db)

	got, err := repo.GetVenueByID(42)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestVerifyVenue(t *testing.T) {
	db := setupTestDB(t)
	repo := NewVenueRepository(db)
	require.NoError(t, repo.CreateVenue(sampleVenue("Parc B")))

	v, err := repo.VerifyVenue(1)
	require.NoError(t, err)
	assert.True(t, v.Verified)

	// Verifying twice is a no-op, not an error.
	v, err = repo.VerifyVenue(1)
	require.NoError(t, err)
	assert.True(t, v.Verified)

	_, err = repo.VerifyVenue(99)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
}

func TestDeleteVenueDetachesMatches(t *testing.T) {
	db := setupTestDB(t)
	repo := NewVenueRepository(db)

	v := sampleVenue("Terrain Municipal")
	require.NoError(t, repo.CreateVenue(v))
	require.NoError(t, db.Create(&matchRow{VenueID: &v.ID}).Error)

	require.NoError(t, repo.DeleteVenue(v.ID))

	got, err := repo.GetVenueByID(v.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	var m matchRow
	require.NoError(t, db.First(&m).Error)
	assert.Nil(t, m.VenueID)
}
